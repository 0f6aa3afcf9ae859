package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/response"
	"github.com/qs3c/gym_go_server/internal/service"
)

type ClientHandler struct {
	clientService       *service.ClientService
	notificationService *service.NotificationService
}

func NewClientHandler(clientService *service.ClientService, notificationService *service.NotificationService) *ClientHandler {
	return &ClientHandler{
		clientService:       clientService,
		notificationService: notificationService,
	}
}

// Create 创建会员
// POST /api/v1/clients
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	detail, err := h.clientService.Create(&req)
	if err != nil {
		switch err {
		case service.ErrInvalidDate:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "创建成功", detail)
}

// List 会员列表
// GET /api/v1/clients
func (h *ClientHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	search := c.Query("search")
	paymentStatus := c.Query("payment_status")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := h.clientService.List(search, paymentStatus, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// ListDeleted 回收站列表
// GET /api/v1/clients/deleted
func (h *ClientHandler) ListDeleted(c *gin.Context) {
	items, err := h.clientService.ListDeleted()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, items)
}

// Get 会员详情
// GET /api/v1/clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的会员ID")
		return
	}

	detail, err := h.clientService.GetByID(id)
	if err != nil {
		switch err {
		case service.ErrClientNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, detail)
}

// Update 更新会员
// PUT /api/v1/clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的会员ID")
		return
	}

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	detail, err := h.clientService.Update(id, &req)
	if err != nil {
		switch err {
		case service.ErrClientNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrInvalidDate:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, detail)
}

// Delete 移入回收站
// DELETE /api/v1/clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的会员ID")
		return
	}

	if err := h.clientService.SoftDelete(id); err != nil {
		switch err {
		case service.ErrClientNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "已移入回收站", nil)
}

// Restore 从回收站恢复
// POST /api/v1/clients/:id/restore
func (h *ClientHandler) Restore(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的会员ID")
		return
	}

	if err := h.clientService.Restore(id); err != nil {
		switch err {
		case service.ErrClientNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrClientNotDeleted:
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "已恢复", nil)
}

// HardDelete 彻底删除
// DELETE /api/v1/clients/:id/purge
func (h *ClientHandler) HardDelete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的会员ID")
		return
	}

	if err := h.clientService.HardDelete(id); err != nil {
		switch err {
		case service.ErrClientNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrClientNotDeleted:
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "已彻底删除", nil)
}

// Renew 会籍续费
// POST /api/v1/clients/:id/renew
func (h *ClientHandler) Renew(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的会员ID")
		return
	}

	detail, err := h.clientService.Renew(id)
	if err != nil {
		switch err {
		case service.ErrClientNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "续费成功", detail)
}

// SendSMS 向单个会员发送短信
// POST /api/v1/clients/:id/sms
func (h *ClientHandler) SendSMS(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的会员ID")
		return
	}

	var req dto.SendSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.notificationService.SendToClient(c.Request.Context(), id, req.Message)
	if err != nil {
		switch err {
		case service.ErrClientNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "短信发送失败")
		}
		return
	}

	response.SuccessWithMessage(c, "发送成功", item)
}
