package handler

import (
	"github.com/gin-gonic/gin"

	"genfly-deploy/internal/dto"
	"genfly-deploy/internal/pkg/config"
	"genfly-deploy/internal/service"
	"genfly-deploy/pkg/constants"
	"genfly-deploy/pkg/utils"
)

type DeployHandler struct {
	deployService service.DeployService
	cfg           *config.DeployConfig
}

func NewDeployHandler(deployService service.DeployService, cfg *config.DeployConfig) *DeployHandler {
	return &DeployHandler{
		deployService: deployService,
		cfg:           cfg,
	}
}

// DeploySite 触发站点部署
// @Summary 触发站点部署
// @Description 为应用创建托管站点（如不存在）并触发CI部署工作流，立即返回pending状态
// @Tags 部署
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.DeploySiteRequest true "站点部署请求"
// @Success 200 {object} dto.DeploySiteResponse
// @Router /api/v1/deploy/site [post]
func (h *DeployHandler) DeploySite(c *gin.Context) {
	var req dto.DeploySiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	userID := c.GetString("user_id")

	resp, err := h.deployService.DeploySite(c.Request.Context(), userID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// DeployMachine 触发机器部署
// @Summary 触发机器部署
// @Description 克隆源码仓库并部署到远程机器
// @Tags 部署
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.DeployMachineRequest true "机器部署请求"
// @Success 200 {object} utils.Response
// @Router /api/v1/deploy/machine [post]
func (h *DeployHandler) DeployMachine(c *gin.Context) {
	var req dto.DeployMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.deployService.DeployMachine(c.Request.Context(), &req); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "机器部署工作流已触发", nil)
}

// GetInfo 查询部署状态
// @Summary 查询部署状态
// @Description 按应用ID查询部署状态，无记录时返回status=no
// @Tags 部署
// @Produce json
// @Security ApiKeyAuth
// @Param app_id path string true "应用ID"
// @Success 200 {object} dto.DeployInfoResponse
// @Router /api/v1/deploy/info/{app_id} [get]
func (h *DeployHandler) GetInfo(c *gin.Context) {
	appID := c.Param("app_id")
	if appID == "" {
		utils.ErrorWithCode(c, 400, "缺少app_id")
		return
	}

	resp, err := h.deployService.GetDeployInfo(appID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Notify 部署状态回调
// @Summary 部署状态回调
// @Description 由CI工作流调用，上报部署状态并广播给订阅的客户端
// @Tags 部署
// @Accept json
// @Produce json
// @Param request body dto.StatusCallbackRequest true "状态回调请求"
// @Success 200 {object} utils.Response
// @Router /api/v1/deploy/notify [post]
func (h *DeployHandler) Notify(c *gin.Context) {
	// 配置了回调Token时校验请求头，未配置保持开放（与CI工作流的约定一致）
	if h.cfg.CallbackToken != "" {
		if c.GetHeader(constants.HeaderCallbackToken) != h.cfg.CallbackToken {
			utils.ErrorWithCode(c, 401, "回调Token校验失败")
			return
		}
	}

	var req dto.StatusCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.deployService.ProcessStatusCallback(c.Request.Context(), &req); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "状态已更新", nil)
}

// Revert 回退部署
// @Summary 回退部署
// @Description 将应用回退到指定commit并重新部署
// @Tags 部署
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.RevertRequest true "回退请求"
// @Success 200 {object} dto.RevertResponse
// @Router /api/v1/deploy/revert [post]
func (h *DeployHandler) Revert(c *gin.Context) {
	var req dto.RevertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.deployService.Revert(c.Request.Context(), &req); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, &dto.RevertResponse{
		Success: true,
		Message: "回退工作流已触发",
	})
}
