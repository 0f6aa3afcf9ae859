package model

import (
	"time"
)

type Location struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Address     string    `gorm:"type:text" json:"address"`
	Phone       string    `gorm:"size:15" json:"phone"`
	Email       *string   `gorm:"size:100" json:"email,omitempty"`
	Capacity    int       `gorm:"default:20" json:"capacity"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	OpeningTime string    `gorm:"size:5;default:'06:00'" json:"opening_time"`
	ClosingTime string    `gorm:"size:5;default:'22:00'" json:"closing_time"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Location) TableName() string {
	return "locations"
}
