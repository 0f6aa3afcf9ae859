package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/oss"
	"github.com/qs3c/gym_go_server/internal/repository"
)

var (
	ErrInstructorNotFound   = errors.New("教练不存在")
	ErrInstructorHasClasses = errors.New("教练名下仍有课程，无法删除")
)

type InstructorService struct {
	instructorRepo *repository.InstructorRepository
	classRepo      *repository.ClassRepository
	ossClient      *oss.Client
}

func NewInstructorService(
	instructorRepo *repository.InstructorRepository,
	classRepo *repository.ClassRepository,
	ossClient *oss.Client,
) *InstructorService {
	return &InstructorService{
		instructorRepo: instructorRepo,
		classRepo:      classRepo,
		ossClient:      ossClient,
	}
}

// Create 创建教练
func (s *InstructorService) Create(req *dto.CreateInstructorRequest) (*dto.InstructorDetail, error) {
	instructor := &model.Instructor{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Email:          req.Email,
		Specialization: req.Specialization,
		Bio:            req.Bio,
		Active:         true,
	}
	if req.HireDate != "" {
		hireDate, err := time.Parse(dateLayout, req.HireDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		instructor.HireDate = hireDate
	}

	if err := s.instructorRepo.Create(instructor); err != nil {
		return nil, err
	}
	return buildInstructorDetail(instructor), nil
}

// GetByID 获取教练详情
func (s *InstructorService) GetByID(id int64) (*dto.InstructorDetail, error) {
	instructor, err := s.instructorRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstructorNotFound
		}
		return nil, err
	}
	return buildInstructorDetail(instructor), nil
}

// List 获取教练列表
func (s *InstructorService) List(activeOnly bool) ([]*dto.InstructorDetail, error) {
	instructors, err := s.instructorRepo.List(activeOnly)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.InstructorDetail, len(instructors))
	for i, ins := range instructors {
		items[i] = buildInstructorDetail(ins)
	}
	return items, nil
}

// Update 更新教练资料
func (s *InstructorService) Update(id int64, req *dto.UpdateInstructorRequest) (*dto.InstructorDetail, error) {
	instructor, err := s.instructorRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstructorNotFound
		}
		return nil, err
	}

	if req.FirstName != nil {
		instructor.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		instructor.LastName = *req.LastName
	}
	if req.Phone != nil {
		instructor.Phone = *req.Phone
	}
	if req.Email != nil {
		instructor.Email = req.Email
	}
	if req.Specialization != nil {
		instructor.Specialization = *req.Specialization
	}
	if req.Bio != nil {
		instructor.Bio = *req.Bio
	}
	if req.Active != nil {
		instructor.Active = *req.Active
	}

	if err := s.instructorRepo.Update(instructor); err != nil {
		return nil, err
	}
	return buildInstructorDetail(instructor), nil
}

// UploadPhoto 上传教练照片到 OSS 并更新 photo_url
func (s *InstructorService) UploadPhoto(id int64, data []byte, ext string) (string, error) {
	if _, err := s.instructorRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInstructorNotFound
		}
		return "", err
	}

	url, err := s.ossClient.UploadInstructorPhoto(id, data, ext)
	if err != nil {
		return "", err
	}
	if err := s.instructorRepo.UpdateFields(id, map[string]interface{}{"photo_url": url}); err != nil {
		return "", err
	}
	return url, nil
}

// Delete 删除教练。名下仍有课程时拒绝删除（历史排课不丢引用）
func (s *InstructorService) Delete(id int64) error {
	if _, err := s.instructorRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInstructorNotFound
		}
		return err
	}

	count, err := s.classRepo.CountByInstructor(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrInstructorHasClasses
	}
	return s.instructorRepo.Delete(id)
}

func buildInstructorDetail(i *model.Instructor) *dto.InstructorDetail {
	detail := &dto.InstructorDetail{
		ID:             i.ID,
		FirstName:      i.FirstName,
		LastName:       i.LastName,
		Phone:          i.Phone,
		Specialization: i.Specialization,
		Bio:            i.Bio,
		PhotoURL:       i.PhotoURL,
		Active:         i.Active,
		CreatedAt:      i.CreatedAt.Format(time.RFC3339),
	}
	if i.Email != nil {
		detail.Email = *i.Email
	}
	if !i.HireDate.IsZero() {
		detail.HireDate = i.HireDate.Format(dateLayout)
	}
	return detail
}
