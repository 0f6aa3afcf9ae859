package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/response"
	"github.com/qs3c/gym_go_server/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List 短信记录列表
// GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := h.notificationService.List(page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// SendBulk 群发短信
// POST /api/v1/notifications/bulk
func (h *NotificationHandler) SendBulk(c *gin.Context) {
	var req dto.BulkSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.notificationService.SendBulk(c.Request.Context(), &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, resp)
}

// DeliveryCallback 运营商投递状态回调（公开接口，Twilio 以表单 POST）
// POST /api/v1/notifications/delivery-callback
func (h *NotificationHandler) DeliveryCallback(c *gin.Context) {
	sid := c.PostForm("MessageSid")
	status := c.PostForm("MessageStatus")
	if sid == "" || status == "" {
		response.ParamError(c, "缺少 MessageSid 或 MessageStatus")
		return
	}

	if err := h.notificationService.HandleDeliveryCallback(sid, status); err != nil {
		switch err {
		case service.ErrUnknownSMSStatus:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, nil)
}
