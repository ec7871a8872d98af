package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"genfly-deploy/internal/pkg/config"
)

// RedisBroadcaster Redis Pub/Sub 广播器
// 自部署场景下替代Supabase的广播渠道，语义相同：
// 只投递给当前订阅者，不持久化
type RedisBroadcaster struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisBroadcaster 创建Redis广播器
func NewRedisBroadcaster(cfg *config.RedisConfig, logger *zap.Logger) *RedisBroadcaster {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &RedisBroadcaster{
		client: client,
		logger: logger,
	}
}

// Broadcast 向指定主题广播一条事件
func (b *RedisBroadcaster) Broadcast(ctx context.Context, topic, event string, payload map[string]interface{}) error {
	message, err := json.Marshal(map[string]interface{}{
		"event":   event,
		"payload": payload,
	})
	if err != nil {
		return fmt.Errorf("序列化广播消息失败: %w", err)
	}

	if err := b.client.Publish(ctx, topic, message).Err(); err != nil {
		return fmt.Errorf("Redis广播失败: %w", err)
	}

	b.logger.Debug("Redis广播成功",
		zap.String("topic", topic),
		zap.String("event", event))

	return nil
}

// Close 关闭Redis连接
func (b *RedisBroadcaster) Close() error {
	return b.client.Close()
}
