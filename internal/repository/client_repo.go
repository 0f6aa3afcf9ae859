package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(client *model.Client) error {
	return r.db.Create(client).Error
}

func (r *ClientRepository) GetByID(id int64) (*model.Client, error) {
	var client model.Client
	err := r.db.Where("id = ?", id).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// List 未删除会员列表，可按姓名/电话搜索、按付费状态过滤
func (r *ClientRepository) List(search, paymentStatus string, page, pageSize int) ([]*model.Client, int64, error) {
	query := r.db.Model(&model.Client{}).Where("is_deleted = ?", false)

	if search != "" {
		like := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR phone LIKE ?", like, like, like)
	}
	if paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []*model.Client
	offset := (page - 1) * pageSize
	err := query.Order("first_name ASC, last_name ASC").Offset(offset).Limit(pageSize).Find(&clients).Error
	return clients, total, err
}

// ListDeleted 回收站列表
func (r *ClientRepository) ListDeleted() ([]*model.Client, error) {
	var clients []*model.Client
	err := r.db.Where("is_deleted = ?", true).Order("deleted_at DESC").Find(&clients).Error
	return clients, err
}

// ListByIDs 按 ID 集合查询未删除会员（群发短信用）
func (r *ClientRepository) ListByIDs(ids []int64) ([]*model.Client, error) {
	var clients []*model.Client
	err := r.db.Where("id IN ? AND is_deleted = ?", ids, false).Find(&clients).Error
	return clients, err
}

func (r *ClientRepository) Update(client *model.Client) error {
	return r.db.Save(client).Error
}

func (r *ClientRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.Client{}).Where("id = ?", id).Updates(fields).Error
}

// SoftDelete 移入回收站（可恢复）
func (r *ClientRepository) SoftDelete(id int64, now time.Time) error {
	return r.db.Model(&model.Client{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": now,
	}).Error
}

// Restore 从回收站恢复
func (r *ClientRepository) Restore(id int64) error {
	return r.db.Model(&model.Client{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_deleted": false,
		"deleted_at": nil,
	}).Error
}

// HardDelete 彻底删除会员，预约与短信记录一并级联删除
func (r *ClientRepository) HardDelete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&model.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&model.SMSNotification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Client{}, id).Error
	})
}

// Renew 会籍续费：付费日推进 30 天，状态回到 paid 并重新激活
func (r *ClientRepository) Renew(id int64, today, next time.Time) error {
	return r.db.Model(&model.Client{}).Where("id = ?", id).Updates(map[string]interface{}{
		"last_payment_date": today,
		"next_payment_date": next,
		"payment_status":    model.PaymentPaid,
		"active":            true,
	}).Error
}

// MarkOverdue 逾期扫描：一条守卫更新完成整批转换。
// WHERE 即资格复查——先提交的续费会把行改成 paid + 未来到期日，从而不再命中，
// 过期的 overdue 写入不会覆盖它。
func (r *ClientRepository) MarkOverdue(today time.Time) (int64, error) {
	res := r.db.Model(&model.Client{}).
		Where("is_deleted = ? AND payment_status IN ? AND next_payment_date < ?",
			false, []string{model.PaymentPending, model.PaymentPaid}, today).
		Update("payment_status", model.PaymentOverdue)
	return res.RowsAffected, res.Error
}

// ListReminderOverdue 催缴对象：逾期超过宽限期且仍激活的会员
func (r *ClientRepository) ListReminderOverdue(cutoff time.Time) ([]*model.Client, error) {
	var clients []*model.Client
	err := r.db.Where("is_deleted = ? AND payment_status = ? AND active = ? AND next_payment_date < ?",
		false, model.PaymentOverdue, true, cutoff).Find(&clients).Error
	return clients, err
}

// ListReminderUpcoming 到期提醒对象：恰好在 due 当日到期的 pending 会员
func (r *ClientRepository) ListReminderUpcoming(due time.Time) ([]*model.Client, error) {
	var clients []*model.Client
	err := r.db.Where("is_deleted = ? AND payment_status = ? AND active = ? AND next_payment_date = ?",
		false, model.PaymentPending, true, due).Find(&clients).Error
	return clients, err
}

// ListDeactivatable 停用对象：逾期超过停用阈值且仍激活的会员
func (r *ClientRepository) ListDeactivatable(cutoff time.Time) ([]*model.Client, error) {
	var clients []*model.Client
	err := r.db.Where("is_deleted = ? AND payment_status = ? AND active = ? AND next_payment_date < ?",
		false, model.PaymentOverdue, true, cutoff).Find(&clients).Error
	return clients, err
}

// Deactivate 守卫停用：资格在 WHERE 中复查，并发续费先提交则本次不命中
func (r *ClientRepository) Deactivate(id int64) (bool, error) {
	res := r.db.Model(&model.Client{}).
		Where("id = ? AND active = ? AND payment_status = ?", id, true, model.PaymentOverdue).
		Update("active", false)
	return res.RowsAffected > 0, res.Error
}

// ListPurgeable 回收站保留期已过的会员
func (r *ClientRepository) ListPurgeable(cutoff time.Time) ([]*model.Client, error) {
	var clients []*model.Client
	err := r.db.Where("is_deleted = ? AND deleted_at < ?", true, cutoff).Find(&clients).Error
	return clients, err
}

// CountByPaymentStatus 看板统计
func (r *ClientRepository) CountByPaymentStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Client{}).
		Where("is_deleted = ? AND payment_status = ?", false, status).Count(&count).Error
	return count, err
}

func (r *ClientRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.Client{}).Where("is_deleted = ?", false).Count(&count).Error
	return count, err
}

func (r *ClientRepository) CountDeleted() (int64, error) {
	var count int64
	err := r.db.Model(&model.Client{}).Where("is_deleted = ?", true).Count(&count).Error
	return count, err
}

// ListUpcomingPayments 即将到期的 pending 会员（看板用）
func (r *ClientRepository) ListUpcomingPayments(today time.Time, limit int) ([]*model.Client, error) {
	var clients []*model.Client
	err := r.db.Where("is_deleted = ? AND payment_status = ? AND next_payment_date >= ?",
		false, model.PaymentPending, today).
		Order("next_payment_date ASC").Limit(limit).Find(&clients).Error
	return clients, err
}
