package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/gym_go_server/internal/pkg/response"
	"github.com/qs3c/gym_go_server/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats 首页看板统计
// GET /api/v1/dashboard
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, stats)
}
