package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(location *model.Location) error {
	return r.db.Create(location).Error
}

func (r *LocationRepository) GetByID(id int64) (*model.Location, error) {
	var location model.Location
	err := r.db.Where("id = ?", id).First(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *LocationRepository) List(activeOnly bool) ([]*model.Location, error) {
	query := r.db.Model(&model.Location{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var locations []*model.Location
	err := query.Order("name ASC").Find(&locations).Error
	return locations, err
}

func (r *LocationRepository) Update(location *model.Location) error {
	return r.db.Save(location).Error
}

func (r *LocationRepository) Delete(id int64) error {
	return r.db.Delete(&model.Location{}, id).Error
}

func (r *LocationRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.Location{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
