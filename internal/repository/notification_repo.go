package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *model.SMSNotification) error {
	return r.db.Create(n).Error
}

// UpdateStatusBySID 运营商回调：按 sid 更新投递状态，未知 sid 命中 0 行即无操作
func (r *NotificationRepository) UpdateStatusBySID(sid, status string) (int64, error) {
	res := r.db.Model(&model.SMSNotification{}).
		Where("sid = ?", sid).Update("status", status)
	return res.RowsAffected, res.Error
}

// ListRecent 最近的短信记录
func (r *NotificationRepository) ListRecent(page, pageSize int) ([]*model.SMSNotification, int64, error) {
	var total int64
	if err := r.db.Model(&model.SMSNotification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []*model.SMSNotification
	offset := (page - 1) * pageSize
	err := r.db.Preload("Client").Order("created_at DESC").
		Offset(offset).Limit(pageSize).Find(&notifications).Error
	return notifications, total, err
}

// ListByClient 某会员的短信记录
func (r *NotificationRepository) ListByClient(clientID int64) ([]*model.SMSNotification, error) {
	var notifications []*model.SMSNotification
	err := r.db.Where("client_id = ?", clientID).
		Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}
