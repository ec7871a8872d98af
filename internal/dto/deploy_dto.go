package dto

import "time"

// DeploySiteRequest 站点部署请求
type DeploySiteRequest struct {
	SiteName string `json:"site_name" binding:"required"`
	Repo     string `json:"repo" binding:"required"` // 应用源码仓库
	AppID    string `json:"app_id" binding:"required"`
}

// DeploySiteResponse 站点部署响应
// 部署为异步流程，此处只返回pending与站点地址
type DeploySiteResponse struct {
	URL    string `json:"url"`
	SiteID string `json:"site_id"`
	Status string `json:"status"`
}

// DeployMachineRequest 机器部署请求
type DeployMachineRequest struct {
	AppName       string `json:"app_name" binding:"required"`
	SourceRepoURL string `json:"source_repo_url" binding:"required"`
	DockerImage   string `json:"docker_image"` // 为空使用配置的默认镜像
}

// DeployInfoResponse 部署状态查询响应
// 无记录时只返回 status=no
type DeployInfoResponse struct {
	SiteName  string     `json:"site_name,omitempty"`
	SiteID    string     `json:"site_id,omitempty"`
	Status    string     `json:"status"`
	URL       string     `json:"url,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// StatusCallbackRequest CI状态回调请求
// 字段名与actions仓库中工作流的调用约定保持一致
type StatusCallbackRequest struct {
	ClientID string `json:"clientId" binding:"required"`
	Status   string `json:"status" binding:"required"`
}

// RevertRequest 回退请求
type RevertRequest struct {
	AppName   string `json:"app_name" binding:"required"`
	CommitSHA string `json:"commit_sha" binding:"required"`
	Branch    string `json:"branch"` // 默认main
}

// RevertResponse 回退响应
type RevertResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MachinePullRequest 远程机器拉取请求
type MachinePullRequest struct {
	AppName string `json:"app_name" binding:"required"`
}

// MachineExecResult 远程命令执行结果
type MachineExecResult struct {
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
}

// MachinePullResponse 远程机器拉取响应
type MachinePullResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Result  *MachineExecResult `json:"result,omitempty"`
}
