package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"genfly-deploy/internal/model"
	"genfly-deploy/pkg/constants"
	pkgErrors "genfly-deploy/pkg/errors"
)

// DeployRepository 部署记录仓储接口
type DeployRepository interface {
	FindByChatID(chatID string) (*model.Deploy, error)
	UpsertPending(dep *model.Deploy) error
	UpdateStatus(chatID string, status constants.DeployStatus) error
	SetLastError(chatID string, message string) error
	ListStalePending(before time.Time) ([]*model.Deploy, error)
	MarkError(chatIDs []string, message string) error
}

type deployRepository struct {
	db *gorm.DB
}

// NewDeployRepository 创建部署记录仓储实例
func NewDeployRepository(db *gorm.DB) DeployRepository {
	return &deployRepository{db: db}
}

// FindByChatID 根据chat_id查询部署记录
func (r *deployRepository) FindByChatID(chatID string) (*model.Deploy, error) {
	var dep model.Deploy
	err := r.db.Where("chat_id = ?", chatID).First(&dep).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询部署记录失败", err)
	}
	return &dep, nil
}

// UpsertPending 原子写入pending记录
// chat_id 冲突时只重置状态与dispatch信息，站点身份字段保持不变
func (r *deployRepository) UpsertPending(dep *model.Deploy) error {
	dep.Status = constants.DeployStatusPending.String()

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "chat_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":        constants.DeployStatusPending.String(),
			"last_dispatch": dep.LastDispatch,
			"last_error":    nil,
			"updated_at":    gorm.Expr("NOW()"),
		}),
	}).Create(dep).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "写入部署记录失败", err)
	}
	return nil
}

// UpdateStatus 更新部署状态
// 不存在的chat_id不报错（与回调方约定：匹配0行视为正常）
func (r *deployRepository) UpdateStatus(chatID string, status constants.DeployStatus) error {
	err := r.db.Model(&model.Deploy{}).
		Where("chat_id = ?", chatID).
		Update("status", status.String()).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新部署状态失败", err)
	}
	return nil
}

// SetLastError 记录最近一次失败详情
func (r *deployRepository) SetLastError(chatID string, message string) error {
	err := r.db.Model(&model.Deploy{}).
		Where("chat_id = ?", chatID).
		Update("last_error", message).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "记录部署错误失败", err)
	}
	return nil
}

// ListStalePending 查询超时未完成的pending记录
func (r *deployRepository) ListStalePending(before time.Time) ([]*model.Deploy, error) {
	var deps []*model.Deploy
	err := r.db.Where("status = ? AND updated_at < ?", constants.DeployStatusPending.String(), before).
		Order("updated_at ASC").
		Find(&deps).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询超时部署记录失败", err)
	}
	return deps, nil
}

// MarkError 批量标记为error
func (r *deployRepository) MarkError(chatIDs []string, message string) error {
	if len(chatIDs) == 0 {
		return nil
	}
	err := r.db.Model(&model.Deploy{}).
		Where("chat_id IN ?", chatIDs).
		Updates(map[string]interface{}{
			"status":     constants.DeployStatusError.String(),
			"last_error": message,
		}).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "标记部署失败状态失败", err)
	}
	return nil
}
