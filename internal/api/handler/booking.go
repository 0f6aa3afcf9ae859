package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/gym_go_server/internal/api/middleware"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/clock"
	"github.com/qs3c/gym_go_server/internal/pkg/response"
	"github.com/qs3c/gym_go_server/internal/service"
)

type BookingHandler struct {
	bookingService *service.BookingService
	clk            clock.Clock
	listRangeDays  int
}

func NewBookingHandler(bookingService *service.BookingService, clk clock.Clock, listRangeDays int) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		clk:            clk,
		listRangeDays:  listRangeDays,
	}
}

// Create 为会员预约课程
// POST /api/v1/classes/:id/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	classID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的课程ID")
		return
	}

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	staffID, _ := middleware.GetStaffID(c)
	item, err := h.bookingService.Create(classID, staffID, &req)
	if err != nil {
		switch err {
		case service.ErrClassNotFound, service.ErrClientNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrClassFull, service.ErrDuplicateBooking, service.ErrClassNotBookable, service.ErrClientInactive:
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "预约成功", item)
}

// List 预约列表，默认查询今天起配置区间内的预约
// GET /api/v1/bookings
func (h *BookingHandler) List(c *gin.Context) {
	today := clock.Today(h.clk)
	from := c.DefaultQuery("date_from", today.Format("2006-01-02"))
	to := c.DefaultQuery("date_to", today.AddDate(0, 0, h.listRangeDays).Format("2006-01-02"))
	status := c.Query("status")

	items, err := h.bookingService.ListByDateRange(from, to, status)
	if err != nil {
		switch err {
		case service.ErrInvalidDate:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, items)
}

// Get 预约详情
// GET /api/v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的预约ID")
		return
	}

	item, err := h.bookingService.GetByID(id)
	if err != nil {
		switch err {
		case service.ErrBookingNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, item)
}

// Cancel 取消预约并释放名额
// POST /api/v1/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的预约ID")
		return
	}

	if err := h.bookingService.Cancel(id); err != nil {
		switch err {
		case service.ErrBookingNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrBookingTerminal:
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "预约已取消", nil)
}

// Attend 签到
// POST /api/v1/bookings/:id/attend
func (h *BookingHandler) Attend(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的预约ID")
		return
	}

	item, err := h.bookingService.ConfirmAttendance(id)
	if err != nil {
		switch err {
		case service.ErrBookingNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrBookingTerminal:
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "签到成功", item)
}

// NoShow 标记缺席
// POST /api/v1/bookings/:id/no-show
func (h *BookingHandler) NoShow(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的预约ID")
		return
	}

	item, err := h.bookingService.MarkNoShow(id)
	if err != nil {
		switch err {
		case service.ErrBookingNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrBookingTerminal:
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "已标记缺席", item)
}
