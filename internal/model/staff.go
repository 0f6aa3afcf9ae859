package model

import (
	"time"
)

type Staff struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FullName     string    `gorm:"size:200" json:"full_name"`
	Role         string    `gorm:"size:20;default:recep" json:"role"` // admin, recep
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Staff) TableName() string {
	return "staff"
}
