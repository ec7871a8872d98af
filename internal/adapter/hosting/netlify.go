package hosting

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

// Site 托管站点信息
type Site struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	SSLURL   string `json:"ssl_url"`
	AdminURL string `json:"admin_url"`
	State    string `json:"state"`
}

// SiteProvider 托管服务商接口
type SiteProvider interface {
	// CreateSite 创建站点，站点创建即返回可访问URL（内容上线前即存在）
	CreateSite(ctx context.Context, name string) (*Site, error)

	// GetSiteByName 按名称查找站点，不存在返回nil
	GetSiteByName(ctx context.Context, name string) (*Site, error)
}

// NetlifyClient Netlify Sites API 客户端
type NetlifyClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewNetlifyClient 创建Netlify客户端
func NewNetlifyClient(cfg *config.NetlifyConfig) *NetlifyClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.netlify.com"
	}

	return &NetlifyClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateSite 创建站点
func (c *NetlifyClient) CreateSite(ctx context.Context, name string) (*Site, error) {
	payload, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/v1/sites", c.baseURL)
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

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("创建站点失败 (状态码: %d): %s", resp.StatusCode, string(body))
	}

	var site Site
	if err := json.NewDecoder(resp.Body).Decode(&site); err != nil {
		return nil, err
	}

	return &site, nil
}

// GetSiteByName 按名称查找站点
func (c *NetlifyClient) GetSiteByName(ctx context.Context, name string) (*Site, error) {
	url := fmt.Sprintf("%s/api/v1/sites", c.baseURL)
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
		return nil, fmt.Errorf("查询站点失败 (状态码: %d): %s", resp.StatusCode, string(body))
	}

	var sites []Site
	if err := json.NewDecoder(resp.Body).Decode(&sites); err != nil {
		return nil, err
	}

	for i := range sites {
		if sites[i].Name == name {
			return &sites[i], nil
		}
	}

	return nil, nil
}

// setAuthHeader 设置认证头
func (c *NetlifyClient) setAuthHeader(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
}
