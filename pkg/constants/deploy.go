package constants

// DeployStatus 部署状态
// Store、触发接口、回调接口共用同一封闭集合，避免散落的状态字符串
type DeployStatus string

const (
	DeployStatusPending   DeployStatus = "pending"   // 已触发，等待 CI 完成
	DeployStatusBuilding  DeployStatus = "building"  // CI 构建中（中间态回调）
	DeployStatusCompleted DeployStatus = "completed" // 部署完成
	DeployStatusError     DeployStatus = "error"     // 部署失败

	// DeployStatusNone 查询无记录时的哨兵值，仅出现在API响应中，不落库
	DeployStatusNone DeployStatus = "no"
)

// Valid 是否为可落库的状态
func (s DeployStatus) Valid() bool {
	switch s {
	case DeployStatusPending, DeployStatusBuilding, DeployStatusCompleted, DeployStatusError:
		return true
	}
	return false
}

// Terminal 是否为终态
func (s DeployStatus) Terminal() bool {
	return s == DeployStatusCompleted || s == DeployStatusError
}

func (s DeployStatus) String() string {
	return string(s)
}

// 工作流名称（configs/workflows.yaml 中登记）
const (
	WorkflowDeploySite   = "deploy-netlify" // 构建并部署到 Netlify 站点
	WorkflowCloneMachine = "clone-machine"  // 克隆仓库并部署到 Fly 机器
	WorkflowRevertRemote = "revert-remote"  // 回退指定 commit
)

// 实时广播
const (
	RealtimeTopicPrefix  = "private:"
	RealtimeEventMessage = "message"
)

// RealtimeTopic 每个应用一个广播主题
func RealtimeTopic(appID string) string {
	return RealtimeTopicPrefix + appID
}
