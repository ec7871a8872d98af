package model

import (
	"gorm.io/datatypes"
)

const DeployTableName = "deploy"

// Deploy 部署记录，每个chat/app一行
// chat_id 上有唯一索引，触发部署时通过原子upsert写入，
// 避免并发触发时出现同一应用多行记录
type Deploy struct {
	BaseModel

	UserID *string `gorm:"column:user_id;size:64;index" json:"user_id"`
	ChatID string  `gorm:"column:chat_id;size:64;not null;uniqueIndex" json:"chat_id"`

	// 站点信息（站点创建后不再变化）
	SiteName string  `gorm:"size:100" json:"site_name"`
	SiteID   *string `gorm:"column:site_id;size:100" json:"site_id"`
	URL      string  `gorm:"size:500" json:"url"`

	// 状态追踪
	Status string `gorm:"size:20;not null;default:pending;index" json:"status"` // pending/building/completed/error

	// 最近一次 workflow dispatch 的输入，便于排查 fire-and-forget 的CI任务
	LastDispatch datatypes.JSONMap `gorm:"type:json" json:"last_dispatch,omitempty"`

	// 最近一次失败详情（dispatch失败或超时清理写入）
	LastError *string `gorm:"type:text" json:"last_error,omitempty"`
}

// TableName 指定表名
func (Deploy) TableName() string {
	return DeployTableName
}
