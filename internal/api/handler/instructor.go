package handler

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/response"
	"github.com/qs3c/gym_go_server/internal/service"
)

// 照片上传限制
const maxPhotoSize = 5 << 20 // 5MB

var allowedPhotoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type InstructorHandler struct {
	instructorService *service.InstructorService
}

func NewInstructorHandler(instructorService *service.InstructorService) *InstructorHandler {
	return &InstructorHandler{instructorService: instructorService}
}

// Create 创建教练
// POST /api/v1/instructors
func (h *InstructorHandler) Create(c *gin.Context) {
	var req dto.CreateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	detail, err := h.instructorService.Create(&req)
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

// List 教练列表
// GET /api/v1/instructors
func (h *InstructorHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	items, err := h.instructorService.List(activeOnly)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, items)
}

// Get 教练详情
// GET /api/v1/instructors/:id
func (h *InstructorHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的教练ID")
		return
	}

	detail, err := h.instructorService.GetByID(id)
	if err != nil {
		switch err {
		case service.ErrInstructorNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, detail)
}

// Update 更新教练
// PUT /api/v1/instructors/:id
func (h *InstructorHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的教练ID")
		return
	}

	var req dto.UpdateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	detail, err := h.instructorService.Update(id, &req)
	if err != nil {
		switch err {
		case service.ErrInstructorNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, detail)
}

// UploadPhoto 上传教练照片
// POST /api/v1/instructors/:id/photo
func (h *InstructorHandler) UploadPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的教练ID")
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		response.ParamError(c, "请上传 photo 文件")
		return
	}
	defer file.Close()

	if header.Size > maxPhotoSize {
		response.ParamError(c, "文件大小超过限制")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedPhotoExts[ext] {
		response.ParamError(c, "不支持的文件格式")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		response.ServerError(c, "文件读取失败")
		return
	}

	url, err := h.instructorService.UploadPhoto(id, data, ext)
	if err != nil {
		switch err {
		case service.ErrInstructorNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "上传失败")
		}
		return
	}

	response.SuccessWithMessage(c, "上传成功", gin.H{"photo_url": url})
}

// Delete 删除教练
// DELETE /api/v1/instructors/:id
func (h *InstructorHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的教练ID")
		return
	}

	if err := h.instructorService.Delete(id); err != nil {
		switch err {
		case service.ErrInstructorNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrInstructorHasClasses:
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}
