package model

import (
	"time"
)

// 会员付费状态
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentOverdue = "overdue"
)

type Client struct {
	ID              int64      `gorm:"primaryKey" json:"id"`
	FirstName       string     `gorm:"size:100;not null" json:"first_name"`
	LastName        string     `gorm:"size:100;not null" json:"last_name"`
	Phone           string     `gorm:"size:15;not null" json:"phone"`
	Email           *string    `gorm:"size:100" json:"email,omitempty"`
	Active          bool       `gorm:"default:true;index:idx_clients_deleted_active" json:"active"`
	IsDeleted       bool       `gorm:"default:false;index:idx_clients_deleted_active,priority:1" json:"is_deleted"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
	LastPaymentDate *time.Time `json:"last_payment_date,omitempty"`
	NextPaymentDate *time.Time `gorm:"index:idx_clients_payment,priority:2" json:"next_payment_date,omitempty"`
	PaymentStatus   string     `gorm:"size:20;default:pending;index:idx_clients_payment,priority:1" json:"payment_status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// DaysUntilDue 距下次付费日的天数，派生值不落库
func (c *Client) DaysUntilDue(today time.Time) int {
	if c.NextPaymentDate == nil {
		return 0
	}
	return int(c.NextPaymentDate.Sub(today).Hours() / 24)
}
