package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"genfly-deploy/internal/pkg/config"
)

// SupabaseBroadcaster Supabase Realtime 广播器
// 通过 Broadcast REST 接口推送，无需维护websocket连接
type SupabaseBroadcaster struct {
	baseURL    string
	anonKey    string
	logger     *zap.Logger
	httpClient *http.Client
}

// NewSupabaseBroadcaster 创建Supabase广播器
func NewSupabaseBroadcaster(cfg *config.SupabaseConfig, logger *zap.Logger) *SupabaseBroadcaster {
	return &SupabaseBroadcaster{
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		anonKey: cfg.AnonKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Broadcast 向指定主题广播一条事件
func (b *SupabaseBroadcaster) Broadcast(ctx context.Context, topic, event string, payload map[string]interface{}) error {
	if b.baseURL == "" || b.anonKey == "" {
		b.logger.Warn("Supabase未配置,跳过广播", zap.String("topic", topic))
		return nil
	}

	body, err := json.Marshal(map[string]interface{}{
		"messages": []map[string]interface{}{
			{
				"topic":   topic,
				"event":   event,
				"payload": payload,
				"private": true,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("序列化广播消息失败: %w", err)
	}

	url := fmt.Sprintf("%s/realtime/v1/api/broadcast", b.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}

	req.Header.Set("apikey", b.anonKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", b.anonKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("发送广播失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("Supabase广播返回错误 (状态码: %d): %s", resp.StatusCode, string(respBody))
	}

	b.logger.Debug("Supabase广播成功",
		zap.String("topic", topic),
		zap.String("event", event))

	return nil
}
