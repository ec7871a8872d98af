package ci

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"genfly-deploy/internal/pkg/config"
)

// Dispatcher CI工作流触发接口
type Dispatcher interface {
	// Dispatch 触发指定工作流（workflow_dispatch）
	// 成功触发仅代表GitHub已接受请求，构建结果经由回调接口上报
	Dispatch(ctx context.Context, workflow string, inputs map[string]string) error
}

// GitHubClient GitHub Actions 客户端
// 所有工作流托管在一个固定的actions仓库中（如 wordixai/clone-action）
type GitHubClient struct {
	cfg        *config.GitHubConfig
	catalog    *Catalog
	httpClient *http.Client
}

// NewGitHubClient 创建GitHub Actions客户端
func NewGitHubClient(cfg *config.GitHubConfig, catalog *Catalog) *GitHubClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.github.com"
	}

	return &GitHubClient{
		cfg:     cfg,
		catalog: catalog,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Dispatch 触发工作流
func (c *GitHubClient) Dispatch(ctx context.Context, workflow string, inputs map[string]string) error {
	wf, ok := c.catalog.Get(workflow)
	if !ok {
		return fmt.Errorf("未登记的工作流: %s", workflow)
	}

	if err := wf.ValidateInputs(inputs); err != nil {
		return err
	}

	payload, err := json.Marshal(map[string]interface{}{
		"ref":    wf.Ref,
		"inputs": inputs,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/repos/%s/%s/actions/workflows/%s/dispatches",
		strings.TrimSuffix(c.cfg.BaseURL, "/"),
		c.cfg.ActionsOwner,
		c.cfg.ActionsRepo,
		wf.File,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.cfg.Token))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// workflow_dispatch 成功时返回204空响应
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("触发工作流失败 (状态码: %d): %s", resp.StatusCode, string(body))
	}

	return nil
}
