package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"genfly-deploy/internal/adapter/machines"
	"genfly-deploy/internal/dto"
	"genfly-deploy/internal/pkg/config"
	pkgErrors "genfly-deploy/pkg/errors"
)

func testFlyConfig() *config.FlyConfig {
	return &config.FlyConfig{Token: "fly-token"}
}

func TestMachineService_PullRemote(t *testing.T) {
	t.Run("选择运行中的机器执行git pull", func(t *testing.T) {
		client := new(MockMachineClient)
		client.On("ListMachines", mock.Anything, "myapp").Return([]machines.Machine{
			{ID: "m1", State: "stopped"},
			{ID: "m2", State: "started"},
		}, nil)
		client.On("Exec", mock.Anything, "myapp", "m2", []string{"git", "pull", "origin", "main"}, 60).
			Return(&machines.ExecResult{ExitCode: 0, Stdout: "Already up to date."}, nil)

		svc := NewMachineService(client, testFlyConfig(), zap.NewNop())

		resp, err := svc.PullRemote(context.Background(), &dto.MachinePullRequest{AppName: "myapp"})
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, 0, resp.Result.ExitCode)

		client.AssertExpectations(t)
	})

	t.Run("没有运行中的机器时退回第一台", func(t *testing.T) {
		client := new(MockMachineClient)
		client.On("ListMachines", mock.Anything, "myapp").Return([]machines.Machine{
			{ID: "m1", State: "stopped"},
		}, nil)
		client.On("Exec", mock.Anything, "myapp", "m1", mock.Anything, 60).
			Return(&machines.ExecResult{ExitCode: 0}, nil)

		svc := NewMachineService(client, testFlyConfig(), zap.NewNop())

		resp, err := svc.PullRemote(context.Background(), &dto.MachinePullRequest{AppName: "myapp"})
		require.NoError(t, err)
		assert.True(t, resp.Success)
	})

	t.Run("命令非零退出码返回失败结果", func(t *testing.T) {
		client := new(MockMachineClient)
		client.On("ListMachines", mock.Anything, "myapp").Return([]machines.Machine{
			{ID: "m1", State: "started"},
		}, nil)
		client.On("Exec", mock.Anything, "myapp", "m1", mock.Anything, 60).
			Return(&machines.ExecResult{ExitCode: 1, Stderr: "merge conflict"}, nil)

		svc := NewMachineService(client, testFlyConfig(), zap.NewNop())

		resp, err := svc.PullRemote(context.Background(), &dto.MachinePullRequest{AppName: "myapp"})
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "merge conflict", resp.Result.Stderr)
	})

	t.Run("应用下没有机器", func(t *testing.T) {
		client := new(MockMachineClient)
		client.On("ListMachines", mock.Anything, "empty").Return([]machines.Machine{}, nil)

		svc := NewMachineService(client, testFlyConfig(), zap.NewNop())

		_, err := svc.PullRemote(context.Background(), &dto.MachinePullRequest{AppName: "empty"})
		require.Error(t, err)
		appErr, ok := err.(*pkgErrors.AppError)
		require.True(t, ok)
		assert.Equal(t, pkgErrors.CodeNotFound, appErr.Code)
	})

	t.Run("缺少Fly Token", func(t *testing.T) {
		client := new(MockMachineClient)
		svc := NewMachineService(client, &config.FlyConfig{}, zap.NewNop())

		_, err := svc.PullRemote(context.Background(), &dto.MachinePullRequest{AppName: "myapp"})
		assert.Equal(t, pkgErrors.ErrFlyNotConfigured, err)

		client.AssertNotCalled(t, "ListMachines", mock.Anything, mock.Anything)
	})
}
