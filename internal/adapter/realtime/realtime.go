package realtime

import (
	"context"

	"go.uber.org/zap"

	"genfly-deploy/internal/pkg/config"
)

// Broadcaster 实时广播接口
// 每个应用一个主题（private:<appId>），仅对当前在线的订阅者
// 做 at-most-once 投递；不持久化、不重放，掉线的客户端
// 通过查询接口补齐状态
type Broadcaster interface {
	// Broadcast 向指定主题广播一条事件
	Broadcast(ctx context.Context, topic, event string, payload map[string]interface{}) error
}

// New 根据配置创建广播器
func New(cfg *config.RealtimeConfig, logger *zap.Logger) Broadcaster {
	switch cfg.Provider {
	case "supabase":
		return NewSupabaseBroadcaster(&cfg.Supabase, logger)
	case "redis":
		return NewRedisBroadcaster(&cfg.Redis, logger)
	default:
		logger.Warn("未配置实时广播渠道,状态变更仅记录日志", zap.String("provider", cfg.Provider))
		return NewLogBroadcaster(logger)
	}
}

// ============= 日志广播器(仅记录日志,不实际推送) =============

// LogBroadcaster 日志广播器
type LogBroadcaster struct {
	logger *zap.Logger
}

// NewLogBroadcaster 创建日志广播器
func NewLogBroadcaster(logger *zap.Logger) *LogBroadcaster {
	return &LogBroadcaster{logger: logger}
}

// Broadcast 记录广播到日志
func (b *LogBroadcaster) Broadcast(ctx context.Context, topic, event string, payload map[string]interface{}) error {
	b.logger.Info("📢 状态广播",
		zap.String("topic", topic),
		zap.String("event", event),
		zap.Any("payload", payload))
	return nil
}
