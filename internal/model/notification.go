package model

import (
	"time"
)

// 短信状态，queued/sent/delivered/failed/undelivered 来自运营商回调，
// error 表示本地发送失败（未取得 sid）
const (
	SMSQueued      = "queued"
	SMSSent        = "sent"
	SMSDelivered   = "delivered"
	SMSFailed      = "failed"
	SMSUndelivered = "undelivered"
	SMSError       = "error"
)

type SMSNotification struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	ClientID  int64     `gorm:"not null;index" json:"client_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	SID       *string   `gorm:"column:sid;size:100;index" json:"sid,omitempty"`
	Status    string    `gorm:"size:20;not null" json:"status"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

func (SMSNotification) TableName() string {
	return "sms_notifications"
}
