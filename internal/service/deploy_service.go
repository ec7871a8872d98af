package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"genfly-deploy/internal/adapter/ci"
	"genfly-deploy/internal/adapter/hosting"
	"genfly-deploy/internal/adapter/realtime"
	"genfly-deploy/internal/dto"
	"genfly-deploy/internal/model"
	"genfly-deploy/internal/pkg/config"
	"genfly-deploy/internal/repository"
	"genfly-deploy/pkg/constants"
	pkgErrors "genfly-deploy/pkg/errors"
)

// DeployService 部署编排服务接口
type DeployService interface {
	// DeploySite 为一个chat/app触发站点部署
	// 站点不存在则先创建；触发CI为fire-and-forget，接口立即返回pending
	DeploySite(ctx context.Context, userID string, req *dto.DeploySiteRequest) (*dto.DeploySiteResponse, error)

	// DeployMachine 克隆源码仓库并部署到远程机器
	DeployMachine(ctx context.Context, req *dto.DeployMachineRequest) error

	// GetDeployInfo 查询部署状态，无记录返回status=no
	GetDeployInfo(appID string) (*dto.DeployInfoResponse, error)

	// ProcessStatusCallback 处理CI回调：先广播后落库
	ProcessStatusCallback(ctx context.Context, req *dto.StatusCallbackRequest) error

	// Revert 将应用回退到指定commit
	Revert(ctx context.Context, req *dto.RevertRequest) error

	// ReapStalePending 将超时未回调的pending记录标记为error并广播
	ReapStalePending(ctx context.Context, timeout time.Duration) (int, error)
}

type deployService struct {
	deployRepo  repository.DeployRepository
	sites       hosting.SiteProvider
	ci          ci.Dispatcher
	broadcaster realtime.Broadcaster
	cfg         *config.DeployConfig
	logger      *zap.Logger
}

// NewDeployService 创建部署编排服务实例
func NewDeployService(
	deployRepo repository.DeployRepository,
	sites hosting.SiteProvider,
	dispatcher ci.Dispatcher,
	broadcaster realtime.Broadcaster,
	cfg *config.DeployConfig,
	logger *zap.Logger,
) DeployService {
	return &deployService{
		deployRepo:  deployRepo,
		sites:       sites,
		ci:          dispatcher,
		broadcaster: broadcaster,
		cfg:         cfg,
		logger:      logger,
	}
}

// DeploySite 触发站点部署
func (s *deployService) DeploySite(ctx context.Context, userID string, req *dto.DeploySiteRequest) (*dto.DeploySiteResponse, error) {
	// 凭证预检：缺配置时不做任何外部调用、不写库
	if s.cfg.GitHub.Token == "" {
		return nil, pkgErrors.ErrGitHubNotConfigured
	}
	if s.cfg.Netlify.Token == "" {
		return nil, pkgErrors.ErrNetlifyNotConfigured
	}

	existing, err := s.deployRepo.FindByChatID(req.AppID)
	if err != nil && err != pkgErrors.ErrRecordNotFound {
		return nil, err
	}

	var dep *model.Deploy
	if existing != nil {
		dep = existing
	} else {
		site, err := s.sites.CreateSite(ctx, req.SiteName)
		if err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeProviderError, "创建托管站点失败", err)
		}

		s.logger.Info("托管站点已创建",
			zap.String("app_id", req.AppID),
			zap.String("site_id", site.ID),
			zap.String("url", site.URL))

		dep = &model.Deploy{
			ChatID:   req.AppID,
			SiteName: req.SiteName,
			SiteID:   &site.ID,
			URL:      site.URL,
		}
		if userID != "" {
			dep.UserID = &userID
		}
	}

	// 历史记录可能缺少站点ID（站点创建成功但写库失败的残留），此时无法部署
	if dep.SiteID == nil || *dep.SiteID == "" {
		return nil, pkgErrors.New(pkgErrors.CodeInternalError, "部署记录缺少站点ID")
	}

	inputs := map[string]string{
		"repository_url":     req.Repo,
		"netlify_auth_token": s.cfg.Netlify.Token,
		"netlify_site_id":    *dep.SiteID,
		"github_token":       s.cfg.GitHub.Token,
		"app_id":             req.AppID,
	}

	// 落库的dispatch信息不含凭证
	dep.LastDispatch = datatypes.JSONMap{
		"workflow":        constants.WorkflowDeploySite,
		"repository_url":  req.Repo,
		"netlify_site_id": *dep.SiteID,
		"app_id":          req.AppID,
	}

	if err := s.deployRepo.UpsertPending(dep); err != nil {
		return nil, err
	}

	// fire-and-forget：触发失败不影响返回，记录错误后由超时清理任务兜底
	if err := s.ci.Dispatch(ctx, constants.WorkflowDeploySite, inputs); err != nil {
		s.logger.Error("触发站点部署工作流失败",
			zap.String("app_id", req.AppID),
			zap.Error(err))
		if dbErr := s.deployRepo.SetLastError(req.AppID, err.Error()); dbErr != nil {
			s.logger.Error("记录部署错误失败", zap.Error(dbErr))
		}
	}

	return &dto.DeploySiteResponse{
		URL:    dep.URL,
		SiteID: lo.FromPtr(dep.SiteID),
		Status: constants.DeployStatusPending.String(),
	}, nil
}

// DeployMachine 克隆仓库并部署到远程机器
// 与站点部署不同，此处触发失败直接返回错误
func (s *deployService) DeployMachine(ctx context.Context, req *dto.DeployMachineRequest) error {
	if s.cfg.GitHub.Token == "" {
		return pkgErrors.ErrGitHubNotConfigured
	}
	if s.cfg.Fly.Token == "" {
		return pkgErrors.ErrFlyNotConfigured
	}

	image := lo.Ternary(req.DockerImage != "", req.DockerImage, s.cfg.Fly.DockerImage)

	inputs := map[string]string{
		"source_repo_url": req.SourceRepoURL,
		"new_repo_name":   s.cfg.Fly.RepoPrefix + req.AppName,
		"github_token":    s.cfg.GitHub.Token,
		"fly_api_token":   s.cfg.Fly.Token,
		"fly_app_name":    req.AppName,
		"docker_image":    image,
	}

	if err := s.ci.Dispatch(ctx, constants.WorkflowCloneMachine, inputs); err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeProviderError, "触发机器部署工作流失败", err)
	}

	s.logger.Info("机器部署工作流已触发",
		zap.String("app_name", req.AppName),
		zap.String("docker_image", image))

	return nil
}

// GetDeployInfo 查询部署状态
func (s *deployService) GetDeployInfo(appID string) (*dto.DeployInfoResponse, error) {
	dep, err := s.deployRepo.FindByChatID(appID)
	if err != nil {
		if err == pkgErrors.ErrRecordNotFound {
			return &dto.DeployInfoResponse{Status: constants.DeployStatusNone.String()}, nil
		}
		return nil, err
	}

	return &dto.DeployInfoResponse{
		SiteName:  dep.SiteName,
		SiteID:    lo.FromPtr(dep.SiteID),
		Status:    dep.Status,
		URL:       dep.URL,
		CreatedAt: &dep.CreatedAt,
		UpdatedAt: &dep.UpdatedAt,
	}, nil
}

// ProcessStatusCallback 处理CI状态回调
// 先广播后落库：订阅方的实时性优先，掉线的客户端靠查询接口补齐
func (s *deployService) ProcessStatusCallback(ctx context.Context, req *dto.StatusCallbackRequest) error {
	status := constants.DeployStatus(req.Status)
	if !status.Valid() {
		return pkgErrors.New(pkgErrors.CodeBadRequest, "无效的部署状态: "+req.Status)
	}

	payload := map[string]interface{}{
		"status": status.String(),
		"appId":  req.ClientID,
	}
	if err := s.broadcaster.Broadcast(ctx, constants.RealtimeTopic(req.ClientID), constants.RealtimeEventMessage, payload); err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "状态广播失败", err)
	}

	if err := s.deployRepo.UpdateStatus(req.ClientID, status); err != nil {
		return err
	}

	s.logger.Info("部署状态已更新",
		zap.String("app_id", req.ClientID),
		zap.String("status", status.String()))

	return nil
}

// Revert 回退应用到指定commit
func (s *deployService) Revert(ctx context.Context, req *dto.RevertRequest) error {
	if s.cfg.GitHub.Token == "" {
		return pkgErrors.ErrGitHubNotConfigured
	}

	branch := lo.Ternary(req.Branch != "", req.Branch, "main")

	inputs := map[string]string{
		"commit_sha":   req.CommitSHA,
		"branch":       branch,
		"repo_name":    s.cfg.Fly.RepoPrefix + req.AppName,
		"github_token": s.cfg.GitHub.Token,
		"fly_app_name": req.AppName,
	}

	if err := s.ci.Dispatch(ctx, constants.WorkflowRevertRemote, inputs); err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeProviderError, "触发回退工作流失败", err)
	}

	s.logger.Info("回退工作流已触发",
		zap.String("app_name", req.AppName),
		zap.String("commit_sha", req.CommitSHA),
		zap.String("branch", branch))

	return nil
}

// ReapStalePending 清理超时的pending记录
// CI失联（dispatch被吞或runner丢任务）时pending会永久悬挂，由定时任务兜底
func (s *deployService) ReapStalePending(ctx context.Context, timeout time.Duration) (int, error) {
	stale, err := s.deployRepo.ListStalePending(time.Now().Add(-timeout))
	if err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	chatIDs := lo.Map(stale, func(d *model.Deploy, _ int) string {
		return d.ChatID
	})

	if err := s.deployRepo.MarkError(chatIDs, "部署超时，未收到CI回调"); err != nil {
		return 0, err
	}

	// 逐个广播error，单个失败不阻塞其余
	for _, chatID := range chatIDs {
		payload := map[string]interface{}{
			"status": constants.DeployStatusError.String(),
			"appId":  chatID,
		}
		if err := s.broadcaster.Broadcast(ctx, constants.RealtimeTopic(chatID), constants.RealtimeEventMessage, payload); err != nil {
			s.logger.Warn("超时状态广播失败",
				zap.String("app_id", chatID),
				zap.Error(err))
		}
	}

	s.logger.Info("已清理超时部署记录", zap.Int("count", len(chatIDs)))

	return len(chatIDs), nil
}
