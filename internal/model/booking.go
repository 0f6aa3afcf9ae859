package model

import (
	"time"
)

// 预约状态
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingAttended  = "attended"
	BookingNoShow    = "no_show"
)

type Booking struct {
	ID            int64      `gorm:"primaryKey" json:"id"`
	ClientID      int64      `gorm:"not null;uniqueIndex:uniq_bookings_client_class" json:"client_id"`
	ClassID       int64      `gorm:"not null;uniqueIndex:uniq_bookings_client_class;index:idx_bookings_class_status,priority:1" json:"class_id"`
	Status        string     `gorm:"size:20;default:confirmed;index:idx_bookings_class_status,priority:2" json:"status"`
	PaymentStatus bool       `gorm:"default:false" json:"payment_status"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	AmountPaid    float64    `gorm:"type:decimal(10,2);default:0" json:"amount_paid"`
	Attended      bool       `gorm:"default:false" json:"attended"`
	CheckInTime   *time.Time `json:"check_in_time,omitempty"`
	Notes         string     `gorm:"type:text" json:"notes"`
	CreatedBy     *int64     `json:"created_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Client *Client        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Class  *ClassInstance `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsTerminal 终态预约不再允许任何状态转换
func (b *Booking) IsTerminal() bool {
	return b.Status != BookingConfirmed
}
