package model

import (
	"time"
)

type Instructor struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	FirstName      string    `gorm:"size:100;not null" json:"first_name"`
	LastName       string    `gorm:"size:100;not null" json:"last_name"`
	Phone          string    `gorm:"size:15;not null" json:"phone"`
	Email          *string   `gorm:"size:100" json:"email,omitempty"`
	Specialization string    `gorm:"size:200" json:"specialization"`
	Bio            string    `gorm:"type:text" json:"bio"`
	PhotoURL       string    `gorm:"size:500" json:"photo_url"`
	Active         bool      `gorm:"default:true" json:"active"`
	HireDate       time.Time `json:"hire_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Instructor) TableName() string {
	return "instructors"
}

func (i *Instructor) FullName() string {
	return i.FirstName + " " + i.LastName
}
