package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// 课程状态
const (
	ClassScheduled  = "scheduled"
	ClassInProgress = "in_progress"
	ClassCompleted  = "completed"
	ClassCancelled  = "cancelled"
	ClassFull       = "full"
)

// 课程难度
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
	DifficultyAll          = "all"
)

// IntArray 用于 JSON 数组字段（星期索引，0=周一）
type IntArray []int

func (a IntArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	return json.Marshal(a)
}

func (a *IntArray) Scan(value interface{}) error {
	if value == nil {
		*a = []int{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return nil
}

// Contains 判断星期索引是否在集合内
func (a IntArray) Contains(day int) bool {
	for _, d := range a {
		if d == day {
			return true
		}
	}
	return false
}

type ClassInstance struct {
	ID                  int64      `gorm:"primaryKey" json:"id"`
	Name                string     `gorm:"size:100;not null" json:"name"`
	Description         string     `gorm:"type:text" json:"description"`
	InstructorID        int64      `gorm:"not null;index:idx_classes_instructor_date" json:"instructor_id"`
	LocationID          int64      `gorm:"not null;index:idx_classes_location_date" json:"location_id"`
	Date                time.Time  `gorm:"not null;index:idx_classes_date_status,priority:1;index:idx_classes_instructor_date,priority:2;index:idx_classes_location_date,priority:2" json:"date"`
	StartTime           string     `gorm:"size:5;not null" json:"start_time"` // HH:MM
	EndTime             string     `gorm:"size:5;not null" json:"end_time"`   // HH:MM
	Duration            int        `gorm:"default:60" json:"duration"`
	Capacity            int        `gorm:"default:20" json:"capacity"`
	CurrentParticipants int        `gorm:"default:0" json:"current_participants"`
	Difficulty          string     `gorm:"size:20;default:all" json:"difficulty"`
	Status              string     `gorm:"size:20;default:scheduled;index:idx_classes_date_status,priority:2" json:"status"`
	Price               float64    `gorm:"type:decimal(10,2);default:150.00" json:"price"`
	RequiresEquipment   bool       `gorm:"default:true" json:"requires_equipment"`
	EquipmentAvailable  int        `gorm:"default:15" json:"equipment_available"`
	Recurring           bool       `gorm:"default:false" json:"recurring"`
	RecurringDays       IntArray   `gorm:"type:json" json:"recurring_days,omitempty"`
	RecurringUntil      *time.Time `json:"recurring_until,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	Instructor *Instructor `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Location   *Location   `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

func (ClassInstance) TableName() string {
	return "class_instances"
}

// AvailableSpots 剩余名额
func (c *ClassInstance) AvailableSpots() int {
	return c.Capacity - c.CurrentParticipants
}

// IsFull 是否满员
func (c *ClassInstance) IsFull() bool {
	return c.CurrentParticipants >= c.Capacity
}
