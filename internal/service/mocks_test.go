package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"genfly-deploy/internal/adapter/hosting"
	"genfly-deploy/internal/adapter/machines"
	"genfly-deploy/internal/model"
	"genfly-deploy/pkg/constants"
)

// MockDeployRepository 部署仓储mock
type MockDeployRepository struct {
	mock.Mock
}

func (m *MockDeployRepository) FindByChatID(chatID string) (*model.Deploy, error) {
	args := m.Called(chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Deploy), args.Error(1)
}

func (m *MockDeployRepository) UpsertPending(dep *model.Deploy) error {
	args := m.Called(dep)
	return args.Error(0)
}

func (m *MockDeployRepository) UpdateStatus(chatID string, status constants.DeployStatus) error {
	args := m.Called(chatID, status)
	return args.Error(0)
}

func (m *MockDeployRepository) SetLastError(chatID string, message string) error {
	args := m.Called(chatID, message)
	return args.Error(0)
}

func (m *MockDeployRepository) ListStalePending(before time.Time) ([]*model.Deploy, error) {
	args := m.Called(before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Deploy), args.Error(1)
}

func (m *MockDeployRepository) MarkError(chatIDs []string, message string) error {
	args := m.Called(chatIDs, message)
	return args.Error(0)
}

// MockSiteProvider 托管服务商mock
type MockSiteProvider struct {
	mock.Mock
}

func (m *MockSiteProvider) CreateSite(ctx context.Context, name string) (*hosting.Site, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hosting.Site), args.Error(1)
}

func (m *MockSiteProvider) GetSiteByName(ctx context.Context, name string) (*hosting.Site, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hosting.Site), args.Error(1)
}

// MockDispatcher CI触发mock
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, workflow string, inputs map[string]string) error {
	args := m.Called(ctx, workflow, inputs)
	return args.Error(0)
}

// MockBroadcaster 实时广播mock
type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) Broadcast(ctx context.Context, topic, event string, payload map[string]interface{}) error {
	args := m.Called(ctx, topic, event, payload)
	return args.Error(0)
}

// MockMachineClient 远程机器mock
type MockMachineClient struct {
	mock.Mock
}

func (m *MockMachineClient) ListMachines(ctx context.Context, appName string) ([]machines.Machine, error) {
	args := m.Called(ctx, appName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]machines.Machine), args.Error(1)
}

func (m *MockMachineClient) Exec(ctx context.Context, appName, machineID string, cmd []string, timeoutSec int) (*machines.ExecResult, error) {
	args := m.Called(ctx, appName, machineID, cmd, timeoutSec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*machines.ExecResult), args.Error(1)
}
