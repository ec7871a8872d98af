package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"genfly-deploy/internal/pkg/config"
	"genfly-deploy/internal/service"
)

// pending记录的默认超时时长
const defaultPendingTimeout = 30 * time.Minute

// Scheduler 调度器
type Scheduler struct {
	cron          *cron.Cron
	logger        *zap.Logger
	deploySvc     service.DeployService
	cronSchedules map[string]cron.EntryID // 存储任务ID，便于管理
}

// NewScheduler 创建调度器
func NewScheduler(deploySvc service.DeployService, logger *zap.Logger) *Scheduler {
	// 创建 cron 实例（带秒级支持）
	c := cron.New(cron.WithSeconds())

	return &Scheduler{
		cron:          c,
		logger:        logger,
		deploySvc:     deploySvc,
		cronSchedules: make(map[string]cron.EntryID),
	}
}

// Start 启动调度器
func (s *Scheduler) Start(cfg *config.Config) error {
	log := s.logger.Sugar()

	log.Info("启动定时任务调度器...")

	// cron 表达式格式: 秒 分 时 日 月 周
	cronExpr := cfg.Scheduler.ReaperCron
	if cronExpr == "" {
		log.Info("未配置scheduler.reaper_cron，超时清理任务不启动")
		return nil
	}

	timeout := parsePendingTimeout(cfg.Deploy.PendingTimeout, log)

	entryID, err := s.cron.AddFunc(cronExpr, func() {
		log.Info("执行定时任务: 部署超时清理")
		count, err := s.deploySvc.ReapStalePending(context.Background(), timeout)
		if err != nil {
			log.Errorf("部署超时清理任务执行失败: %v", err)
			return
		}
		if count > 0 {
			log.Infof("部署超时清理完成: %d条记录已标记error", count)
		}
	})

	if err != nil {
		log.Errorf("注册超时清理任务失败: %v cron=%s", err, cronExpr)
		return err
	}

	s.cronSchedules["deploy_reaper"] = entryID
	log.Infof("部署超时清理任务已注册: %s entry_id=%d timeout=%v", cronExpr, entryID, timeout)

	// 启动 cron
	s.cron.Start()
	log.Info("定时任务调度器启动成功")

	return nil
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.logger.Info("正在停止定时任务调度器...")

	// 停止 cron（等待正在执行的任务完成）
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.logger.Info("定时任务调度器已停止")
}

// TriggerReap 手动触发超时清理（用于测试或手动触发）
func (s *Scheduler) TriggerReap(timeout time.Duration) (int, error) {
	s.logger.Info("手动触发部署超时清理")
	return s.deploySvc.ReapStalePending(context.Background(), timeout)
}

// parsePendingTimeout 解析pending超时时长配置
func parsePendingTimeout(raw string, log *zap.SugaredLogger) time.Duration {
	if raw == "" {
		return defaultPendingTimeout
	}
	timeout, err := time.ParseDuration(raw)
	if err != nil {
		log.Warnf("解析deploy.pending_timeout失败，使用默认值%v: %v", defaultPendingTimeout, err)
		return defaultPendingTimeout
	}
	return timeout
}
