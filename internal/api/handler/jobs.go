package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/gym_go_server/internal/pkg/response"
	"github.com/qs3c/gym_go_server/internal/scheduler"
)

type JobsHandler struct {
	schedulerService *scheduler.Service
}

func NewJobsHandler(schedulerService *scheduler.Service) *JobsHandler {
	return &JobsHandler{schedulerService: schedulerService}
}

// Run 手动触发一个会费生命周期任务
// POST /api/v1/jobs/:name/run
func (h *JobsHandler) Run(c *gin.Context) {
	name := c.Param("name")

	if err := h.schedulerService.RunJob(c.Request.Context(), name); err != nil {
		switch err {
		case scheduler.ErrUnknownJob:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "任务执行失败")
		}
		return
	}

	response.SuccessWithMessage(c, "任务执行完成", gin.H{"job": name})
}
