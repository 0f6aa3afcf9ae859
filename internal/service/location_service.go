package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/repository"
)

var (
	ErrLocationNotFound   = errors.New("场地不存在")
	ErrLocationHasClasses = errors.New("场地仍有课程安排，无法删除")
)

type LocationService struct {
	locationRepo *repository.LocationRepository
	classRepo    *repository.ClassRepository
}

func NewLocationService(locationRepo *repository.LocationRepository, classRepo *repository.ClassRepository) *LocationService {
	return &LocationService{locationRepo: locationRepo, classRepo: classRepo}
}

// Create 创建场地
func (s *LocationService) Create(req *dto.CreateLocationRequest) (*dto.LocationDetail, error) {
	location := &model.Location{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		IsActive: true,
	}
	if req.Capacity > 0 {
		location.Capacity = req.Capacity
	}
	if req.OpeningTime != "" {
		location.OpeningTime = req.OpeningTime
	}
	if req.ClosingTime != "" {
		location.ClosingTime = req.ClosingTime
	}

	if err := s.locationRepo.Create(location); err != nil {
		return nil, err
	}
	return buildLocationDetail(location), nil
}

// GetByID 获取场地详情
func (s *LocationService) GetByID(id int64) (*dto.LocationDetail, error) {
	location, err := s.locationRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return buildLocationDetail(location), nil
}

// List 获取场地列表
func (s *LocationService) List(activeOnly bool) ([]*dto.LocationDetail, error) {
	locations, err := s.locationRepo.List(activeOnly)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.LocationDetail, len(locations))
	for i, loc := range locations {
		items[i] = buildLocationDetail(loc)
	}
	return items, nil
}

// Update 更新场地
func (s *LocationService) Update(id int64, req *dto.UpdateLocationRequest) (*dto.LocationDetail, error) {
	location, err := s.locationRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		location.Name = *req.Name
	}
	if req.Address != nil {
		location.Address = *req.Address
	}
	if req.Phone != nil {
		location.Phone = *req.Phone
	}
	if req.Email != nil {
		location.Email = req.Email
	}
	if req.Capacity != nil {
		location.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		location.IsActive = *req.IsActive
	}
	if req.OpeningTime != nil {
		location.OpeningTime = *req.OpeningTime
	}
	if req.ClosingTime != nil {
		location.ClosingTime = *req.ClosingTime
	}

	if err := s.locationRepo.Update(location); err != nil {
		return nil, err
	}
	return buildLocationDetail(location), nil
}

// Delete 删除场地。仍有课程引用时拒绝删除
func (s *LocationService) Delete(id int64) error {
	if _, err := s.locationRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLocationNotFound
		}
		return err
	}

	count, err := s.classRepo.CountByLocation(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrLocationHasClasses
	}
	return s.locationRepo.Delete(id)
}

func buildLocationDetail(l *model.Location) *dto.LocationDetail {
	detail := &dto.LocationDetail{
		ID:          l.ID,
		Name:        l.Name,
		Address:     l.Address,
		Phone:       l.Phone,
		Capacity:    l.Capacity,
		IsActive:    l.IsActive,
		OpeningTime: l.OpeningTime,
		ClosingTime: l.ClosingTime,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
	if l.Email != nil {
		detail.Email = *l.Email
	}
	return detail
}
