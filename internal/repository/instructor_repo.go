package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
)

type InstructorRepository struct {
	db *gorm.DB
}

func NewInstructorRepository(db *gorm.DB) *InstructorRepository {
	return &InstructorRepository{db: db}
}

func (r *InstructorRepository) Create(instructor *model.Instructor) error {
	return r.db.Create(instructor).Error
}

func (r *InstructorRepository) GetByID(id int64) (*model.Instructor, error) {
	var instructor model.Instructor
	err := r.db.Where("id = ?", id).First(&instructor).Error
	if err != nil {
		return nil, err
	}
	return &instructor, nil
}

func (r *InstructorRepository) List(activeOnly bool) ([]*model.Instructor, error) {
	query := r.db.Model(&model.Instructor{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var instructors []*model.Instructor
	err := query.Order("first_name ASC, last_name ASC").Find(&instructors).Error
	return instructors, err
}

func (r *InstructorRepository) Update(instructor *model.Instructor) error {
	return r.db.Save(instructor).Error
}

func (r *InstructorRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.Instructor{}).Where("id = ?", id).Updates(fields).Error
}

func (r *InstructorRepository) Delete(id int64) error {
	return r.db.Delete(&model.Instructor{}, id).Error
}

func (r *InstructorRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.Instructor{}).Where("active = ?", true).Count(&count).Error
	return count, err
}
