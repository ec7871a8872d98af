package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"genfly-deploy/internal/dto"
	"genfly-deploy/internal/pkg/config"
	"genfly-deploy/pkg/utils"
)

// MockDeployService 部署服务mock
type MockDeployService struct {
	mock.Mock
}

func (m *MockDeployService) DeploySite(ctx context.Context, userID string, req *dto.DeploySiteRequest) (*dto.DeploySiteResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DeploySiteResponse), args.Error(1)
}

func (m *MockDeployService) DeployMachine(ctx context.Context, req *dto.DeployMachineRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockDeployService) GetDeployInfo(appID string) (*dto.DeployInfoResponse, error) {
	args := m.Called(appID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DeployInfoResponse), args.Error(1)
}

func (m *MockDeployService) ProcessStatusCallback(ctx context.Context, req *dto.StatusCallbackRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockDeployService) Revert(ctx context.Context, req *dto.RevertRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockDeployService) ReapStalePending(ctx context.Context, timeout time.Duration) (int, error) {
	args := m.Called(ctx, timeout)
	return args.Int(0), args.Error(1)
}

func setupNotifyRouter(svc *MockDeployService, callbackToken string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewDeployHandler(svc, &config.DeployConfig{CallbackToken: callbackToken})
	r.POST("/api/v1/deploy/notify", h.Notify)
	r.GET("/api/v1/deploy/info/:app_id", h.GetInfo)
	return r
}

func doRequest(r *gin.Engine, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, utils.Response) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp utils.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestDeployHandler_Notify(t *testing.T) {
	t.Run("合法回调更新状态", func(t *testing.T) {
		svc := new(MockDeployService)
		svc.On("ProcessStatusCallback", mock.Anything, &dto.StatusCallbackRequest{
			ClientID: "chat-1",
			Status:   "completed",
		}).Return(nil)

		r := setupNotifyRouter(svc, "")

		w, resp := doRequest(r, "POST", "/api/v1/deploy/notify", map[string]string{
			"clientId": "chat-1",
			"status":   "completed",
		}, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 200, resp.Code)
		svc.AssertExpectations(t)
	})

	t.Run("缺少必填字段", func(t *testing.T) {
		svc := new(MockDeployService)
		r := setupNotifyRouter(svc, "")

		_, resp := doRequest(r, "POST", "/api/v1/deploy/notify", map[string]string{
			"clientId": "chat-1",
		}, nil)

		assert.Equal(t, 400, resp.Code)
		svc.AssertNotCalled(t, "ProcessStatusCallback", mock.Anything, mock.Anything)
	})

	t.Run("回调Token校验失败", func(t *testing.T) {
		svc := new(MockDeployService)
		r := setupNotifyRouter(svc, "secret-token")

		_, resp := doRequest(r, "POST", "/api/v1/deploy/notify", map[string]string{
			"clientId": "chat-1",
			"status":   "completed",
		}, map[string]string{"X-Callback-Token": "wrong"})

		assert.Equal(t, 401, resp.Code)
		svc.AssertNotCalled(t, "ProcessStatusCallback", mock.Anything, mock.Anything)
	})

	t.Run("回调Token校验通过", func(t *testing.T) {
		svc := new(MockDeployService)
		svc.On("ProcessStatusCallback", mock.Anything, mock.Anything).Return(nil)

		r := setupNotifyRouter(svc, "secret-token")

		_, resp := doRequest(r, "POST", "/api/v1/deploy/notify", map[string]string{
			"clientId": "chat-1",
			"status":   "error",
		}, map[string]string{"X-Callback-Token": "secret-token"})

		assert.Equal(t, 200, resp.Code)
		svc.AssertExpectations(t)
	})
}

func TestDeployHandler_GetInfo(t *testing.T) {
	svc := new(MockDeployService)
	svc.On("GetDeployInfo", "chat-1").Return(&dto.DeployInfoResponse{
		Status: "completed",
		SiteID: "site-1",
	}, nil)

	r := setupNotifyRouter(svc, "")

	w, resp := doRequest(r, "GET", "/api/v1/deploy/info/chat-1", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 200, resp.Code)

	data, _ := json.Marshal(resp.Data)
	var info dto.DeployInfoResponse
	_ = json.Unmarshal(data, &info)
	assert.Equal(t, "completed", info.Status)
	assert.Equal(t, "site-1", info.SiteID)
}

func TestDeployHandler_DeploySite_InvalidRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := new(MockDeployService)
	h := NewDeployHandler(svc, &config.DeployConfig{})

	r := gin.New()
	r.POST("/api/v1/deploy/site", h.DeploySite)

	_, resp := doRequest(r, "POST", "/api/v1/deploy/site", map[string]string{
		"site_name": "my-site",
	}, nil)

	assert.Equal(t, 400, resp.Code)
	svc.AssertNotCalled(t, "DeploySite", mock.Anything, mock.Anything, mock.Anything)
}
