package handler

import (
	"github.com/gin-gonic/gin"

	"genfly-deploy/internal/dto"
	"genfly-deploy/internal/service"
	"genfly-deploy/pkg/utils"
)

type MachineHandler struct {
	machineService service.MachineService
}

func NewMachineHandler(machineService service.MachineService) *MachineHandler {
	return &MachineHandler{
		machineService: machineService,
	}
}

// Pull 远程机器拉取最新代码
// @Summary 远程机器拉取最新代码
// @Description 在应用的机器上执行git pull，同步仓库的最新代码
// @Tags 机器
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.MachinePullRequest true "拉取请求"
// @Success 200 {object} dto.MachinePullResponse
// @Router /api/v1/machine/pull [post]
func (h *MachineHandler) Pull(c *gin.Context) {
	var req dto.MachinePullRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.machineService.PullRemote(c.Request.Context(), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}
