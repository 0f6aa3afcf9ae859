package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/response"
	"github.com/qs3c/gym_go_server/internal/repository"
	"github.com/qs3c/gym_go_server/internal/service"
)

type ClassHandler struct {
	classService *service.ClassService
}

func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// Create 创建课程（支持周期展开）
// POST /api/v1/classes
func (h *ClassHandler) Create(c *gin.Context) {
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.classService.Create(&req)
	if err != nil {
		switch err {
		case service.ErrInvalidDate, service.ErrInvalidTime, service.ErrInvalidTimeRange,
			service.ErrInvalidRecurring, service.ErrRecurringUntilPast:
			response.ParamError(c, err.Error())
		case service.ErrInstructorNotFound, service.ErrLocationNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "创建成功", resp)
}

// List 课程列表
// GET /api/v1/classes
func (h *ClassHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var filter repository.ClassFilter
	if v := c.Query("date"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.ParamError(c, "日期格式不正确")
			return
		}
		filter.Date = &date
	}
	if v := c.Query("date_from"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.ParamError(c, "日期格式不正确")
			return
		}
		filter.DateFrom = &date
	}
	if v := c.Query("date_to"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.ParamError(c, "日期格式不正确")
			return
		}
		filter.DateTo = &date
	}
	filter.InstructorID, _ = strconv.ParseInt(c.Query("instructor_id"), 10, 64)
	filter.LocationID, _ = strconv.ParseInt(c.Query("location_id"), 10, 64)
	filter.Difficulty = c.Query("difficulty")
	filter.Status = c.Query("status")

	items, total, err := h.classService.List(filter, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// Get 课程详情（含预约名单）
// GET /api/v1/classes/:id
func (h *ClassHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的课程ID")
		return
	}

	detail, err := h.classService.GetByID(id)
	if err != nil {
		switch err {
		case service.ErrClassNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, detail)
}

// Update 更新课程
// PUT /api/v1/classes/:id
func (h *ClassHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的课程ID")
		return
	}

	var req dto.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	detail, err := h.classService.Update(id, &req)
	if err != nil {
		switch err {
		case service.ErrClassNotFound, service.ErrInstructorNotFound, service.ErrLocationNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrClassCancelled:
			response.ConflictError(c, err.Error())
		case service.ErrInvalidDate, service.ErrInvalidTime, service.ErrInvalidTimeRange:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, detail)
}

// Cancel 取消课程并级联取消预约
// POST /api/v1/classes/:id/cancel
func (h *ClassHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的课程ID")
		return
	}

	if err := h.classService.Cancel(c.Request.Context(), id); err != nil {
		switch err {
		case service.ErrClassNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrClassNotCancellable:
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "课程已取消", nil)
}

// Delete 删除课程（仅限无预约记录）
// DELETE /api/v1/classes/:id
func (h *ClassHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的课程ID")
		return
	}

	if err := h.classService.Delete(id); err != nil {
		switch err {
		case service.ErrClassNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrClassHasBookings:
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}
