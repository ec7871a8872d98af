package service

import (
	"context"

	"go.uber.org/zap"

	"genfly-deploy/internal/adapter/machines"
	"genfly-deploy/internal/dto"
	"genfly-deploy/internal/pkg/config"
	pkgErrors "genfly-deploy/pkg/errors"
)

// 远程git pull的最长等待秒数
const pullTimeoutSec = 60

// MachineService 远程机器操作服务接口
type MachineService interface {
	// PullRemote 在应用的机器上执行git pull，同步仓库的最新代码
	PullRemote(ctx context.Context, req *dto.MachinePullRequest) (*dto.MachinePullResponse, error)
}

type machineService struct {
	machines machines.Client
	cfg      *config.FlyConfig
	logger   *zap.Logger
}

// NewMachineService 创建机器操作服务实例
func NewMachineService(client machines.Client, cfg *config.FlyConfig, logger *zap.Logger) MachineService {
	return &machineService{
		machines: client,
		cfg:      cfg,
		logger:   logger,
	}
}

// PullRemote 在远程机器上拉取最新代码
func (s *machineService) PullRemote(ctx context.Context, req *dto.MachinePullRequest) (*dto.MachinePullResponse, error) {
	if s.cfg.Token == "" {
		return nil, pkgErrors.ErrFlyNotConfigured
	}

	machineList, err := s.machines.ListMachines(ctx, req.AppName)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeProviderError, "查询机器列表失败", err)
	}
	if len(machineList) == 0 {
		return nil, pkgErrors.New(pkgErrors.CodeNotFound, "应用下没有机器")
	}

	// 优先选运行中的机器，没有则退回第一台
	target := machineList[0]
	for _, m := range machineList {
		if m.State == "started" {
			target = m
			break
		}
	}

	result, err := s.machines.Exec(ctx, req.AppName, target.ID, []string{"git", "pull", "origin", "main"}, pullTimeoutSec)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeProviderError, "执行远程命令失败", err)
	}

	execResult := &dto.MachineExecResult{
		ExitCode: result.ExitCode,
		Stdout:   result.Stdout,
		Stderr:   result.Stderr,
	}

	if result.ExitCode != 0 {
		s.logger.Error("远程git pull失败",
			zap.String("app_name", req.AppName),
			zap.String("machine_id", target.ID),
			zap.Int("exit_code", result.ExitCode),
			zap.String("stderr", result.Stderr))
		return &dto.MachinePullResponse{
			Success: false,
			Message: "远程git pull失败",
			Result:  execResult,
		}, nil
	}

	s.logger.Info("远程代码已同步",
		zap.String("app_name", req.AppName),
		zap.String("machine_id", target.ID))

	return &dto.MachinePullResponse{
		Success: true,
		Message: "远程代码已同步",
		Result:  execResult,
	}, nil
}
