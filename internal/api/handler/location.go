package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/response"
	"github.com/qs3c/gym_go_server/internal/service"
)

type LocationHandler struct {
	locationService *service.LocationService
}

func NewLocationHandler(locationService *service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// Create 创建场地
// POST /api/v1/locations
func (h *LocationHandler) Create(c *gin.Context) {
	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	detail, err := h.locationService.Create(&req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "创建成功", detail)
}

// List 场地列表
// GET /api/v1/locations
func (h *LocationHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	items, err := h.locationService.List(activeOnly)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, items)
}

// Get 场地详情
// GET /api/v1/locations/:id
func (h *LocationHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的场地ID")
		return
	}

	detail, err := h.locationService.GetByID(id)
	if err != nil {
		switch err {
		case service.ErrLocationNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, detail)
}

// Update 更新场地
// PUT /api/v1/locations/:id
func (h *LocationHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的场地ID")
		return
	}

	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	detail, err := h.locationService.Update(id, &req)
	if err != nil {
		switch err {
		case service.ErrLocationNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, detail)
}

// Delete 删除场地
// DELETE /api/v1/locations/:id
func (h *LocationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的场地ID")
		return
	}

	if err := h.locationService.Delete(id); err != nil {
		switch err {
		case service.ErrLocationNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrLocationHasClasses:
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}
