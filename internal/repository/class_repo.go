package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
)

type ClassRepository struct {
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

func (r *ClassRepository) Create(class *model.ClassInstance) error {
	return r.db.Create(class).Error
}

// CreateWithDerived 原子写入基准课程与展开生成的课程，任一失败则全部回滚
func (r *ClassRepository) CreateWithDerived(base *model.ClassInstance, derived []*model.ClassInstance) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(base).Error; err != nil {
			return err
		}
		for _, c := range derived {
			if err := tx.Create(c).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ClassRepository) GetByID(id int64) (*model.ClassInstance, error) {
	var class model.ClassInstance
	err := r.db.Preload("Instructor").Preload("Location").Where("id = ?", id).First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// ClassFilter 课程列表过滤条件
type ClassFilter struct {
	Date         *time.Time
	DateFrom     *time.Time
	DateTo       *time.Time
	LocationID   int64
	InstructorID int64
	Difficulty   string
	Status       string
}

func (r *ClassRepository) List(f ClassFilter, page, pageSize int) ([]*model.ClassInstance, int64, error) {
	query := r.db.Model(&model.ClassInstance{})

	if f.Date != nil {
		query = query.Where("date = ?", *f.Date)
	}
	if f.DateFrom != nil {
		query = query.Where("date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		query = query.Where("date <= ?", *f.DateTo)
	}
	if f.LocationID > 0 {
		query = query.Where("location_id = ?", f.LocationID)
	}
	if f.InstructorID > 0 {
		query = query.Where("instructor_id = ?", f.InstructorID)
	}
	if f.Difficulty != "" {
		query = query.Where("difficulty = ?", f.Difficulty)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var classes []*model.ClassInstance
	offset := (page - 1) * pageSize
	err := query.Preload("Instructor").Preload("Location").
		Order("date ASC, start_time ASC").Offset(offset).Limit(pageSize).Find(&classes).Error
	return classes, total, err
}

func (r *ClassRepository) Update(class *model.ClassInstance) error {
	return r.db.Save(class).Error
}

func (r *ClassRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.ClassInstance{}).Where("id = ?", id).Updates(fields).Error
}

// UpdateStatus 持久化状态引擎的计算结果，cancelled 为粘滞状态不被覆盖
func (r *ClassRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&model.ClassInstance{}).
		Where("id = ? AND status <> ?", id, model.ClassCancelled).
		Update("status", status).Error
}

func (r *ClassRepository) Delete(id int64) error {
	return r.db.Delete(&model.ClassInstance{}, id).Error
}

func (r *ClassRepository) CountByInstructor(instructorID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.ClassInstance{}).Where("instructor_id = ?", instructorID).Count(&count).Error
	return count, err
}

func (r *ClassRepository) CountByLocation(locationID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.ClassInstance{}).Where("location_id = ?", locationID).Count(&count).Error
	return count, err
}

// ListByDateAndStatuses 按日期与状态集合查询（看板用）
func (r *ClassRepository) ListByDateAndStatuses(date time.Time, statuses []string) ([]*model.ClassInstance, error) {
	var classes []*model.ClassInstance
	err := r.db.Where("date = ? AND status IN ?", date, statuses).
		Order("start_time ASC").Find(&classes).Error
	return classes, err
}
