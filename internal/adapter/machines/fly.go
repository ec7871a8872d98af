package machines

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

// Machine 远程机器信息
type Machine struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	State  string `json:"state"`
	Region string `json:"region"`
}

// ExecResult 远程命令执行结果
type ExecResult struct {
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
}

// Client 远程机器操作接口
type Client interface {
	// ListMachines 列出应用下的所有机器
	ListMachines(ctx context.Context, appName string) ([]Machine, error)

	// Exec 在指定机器上执行命令
	Exec(ctx context.Context, appName, machineID string, cmd []string, timeoutSec int) (*ExecResult, error)
}

// FlyClient Fly Machines API 客户端
type FlyClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewFlyClient 创建Fly Machines客户端
func NewFlyClient(cfg *config.FlyConfig) *FlyClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.machines.dev"
	}

	return &FlyClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ListMachines 列出应用下的所有机器
func (c *FlyClient) ListMachines(ctx context.Context, appName string) ([]Machine, error) {
	url := fmt.Sprintf("%s/v1/apps/%s/machines", c.baseURL, appName)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	c.setAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("查询机器列表失败 (状态码: %d): %s", resp.StatusCode, string(body))
	}

	var machineList []Machine
	if err := json.NewDecoder(resp.Body).Decode(&machineList); err != nil {
		return nil, err
	}

	return machineList, nil
}

// Exec 在指定机器上执行命令
func (c *FlyClient) Exec(ctx context.Context, appName, machineID string, cmd []string, timeoutSec int) (*ExecResult, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"cmd":     strings.Join(cmd, " "),
		"timeout": timeoutSec,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/apps/%s/machines/%s/exec", c.baseURL, appName, machineID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}

	c.setAuthHeader(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("执行远程命令失败 (状态码: %d): %s", resp.StatusCode, string(body))
	}

	var result ExecResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// setAuthHeader 设置认证头
func (c *FlyClient) setAuthHeader(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
}
