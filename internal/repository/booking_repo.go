package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateConfirmed 并发安全的占位预约。
//
// 名额校验与占用必须原子完成：两个并发请求同时读到"还剩 1 个名额"会导致超订。
// 这里不做先读后写，而是用一条守卫更新占位：
//
//	UPDATE class_instances SET current_participants = current_participants + 1
//	WHERE id = ? AND current_participants < capacity AND status NOT IN ('cancelled','completed')
//
// 数据库对单行更新天然串行，WHERE 不命中即 RowsAffected = 0，此时在同一事务内
// 回查课程行以区分满员 / 不可预约 / 不存在。重复预约由 (client_id, class_id)
// 唯一索引兜底，事务内先行查重以便返回明确错误。
func (r *BookingRepository) CreateConfirmed(booking *model.Booking) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var dup int64
		if err := tx.Model(&model.Booking{}).
			Where("client_id = ? AND class_id = ?", booking.ClientID, booking.ClassID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrDuplicate
		}

		res := tx.Model(&model.ClassInstance{}).
			Where("id = ? AND current_participants < capacity AND status NOT IN ?",
				booking.ClassID, []string{model.ClassCancelled, model.ClassCompleted}).
			Update("current_participants", gorm.Expr("current_participants + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var class model.ClassInstance
			if err := tx.Where("id = ?", booking.ClassID).First(&class).Error; err != nil {
				return err // 含 gorm.ErrRecordNotFound
			}
			if class.Status == model.ClassCancelled || class.Status == model.ClassCompleted {
				return ErrNotBookable
			}
			return ErrNoCapacity
		}

		booking.Status = model.BookingConfirmed
		return tx.Create(booking).Error
	})
}

// Cancel 取消预约并释放一个名额，与 CreateConfirmed 严格互逆。
// 已取消的预约是幂等空操作；attended/no_show 为终态，拒绝取消。
func (r *BookingRepository) Cancel(id int64) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&booking).Error; err != nil {
			return err
		}

		switch booking.Status {
		case model.BookingCancelled:
			return nil // 幂等
		case model.BookingConfirmed:
			// 继续取消
		default:
			return ErrTerminalState
		}

		if err := tx.Model(&model.Booking{}).Where("id = ?", id).
			Update("status", model.BookingCancelled).Error; err != nil {
			return err
		}
		booking.Status = model.BookingCancelled

		// 守卫递减，计数器不得为负
		return tx.Model(&model.ClassInstance{}).
			Where("id = ? AND current_participants > 0", booking.ClassID).
			Update("current_participants", gorm.Expr("current_participants - 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ConfirmAttendance 签到：confirmed -> attended，重复签到为幂等空操作
func (r *BookingRepository) ConfirmAttendance(id int64, checkIn time.Time) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&booking).Error; err != nil {
			return err
		}

		switch booking.Status {
		case model.BookingAttended:
			return nil // 幂等
		case model.BookingConfirmed:
			// 继续签到
		default:
			return ErrTerminalState
		}

		fields := map[string]interface{}{
			"status":        model.BookingAttended,
			"attended":      true,
			"check_in_time": checkIn,
		}
		if err := tx.Model(&model.Booking{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}
		booking.Status = model.BookingAttended
		booking.Attended = true
		booking.CheckInTime = &checkIn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// MarkNoShow 管理员手动标记缺席：仅 confirmed 可转换，课程已结束，名额计数保持历史值
func (r *BookingRepository) MarkNoShow(id int64) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&booking).Error; err != nil {
			return err
		}
		if booking.Status != model.BookingConfirmed {
			if booking.Status == model.BookingNoShow {
				return nil // 幂等
			}
			return ErrTerminalState
		}
		if err := tx.Model(&model.Booking{}).Where("id = ?", id).
			Update("status", model.BookingNoShow).Error; err != nil {
			return err
		}
		booking.Status = model.BookingNoShow
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) GetByID(id int64) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.Preload("Client").Preload("Class").Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListByClass 课程的全部预约
func (r *BookingRepository) ListByClass(classID int64) ([]*model.Booking, error) {
	var bookings []*model.Booking
	err := r.db.Preload("Client").Where("class_id = ?", classID).
		Order("created_at ASC").Find(&bookings).Error
	return bookings, err
}

// ListConfirmedByClass 课程的 confirmed 预约（课程取消级联用）
func (r *BookingRepository) ListConfirmedByClass(classID int64) ([]*model.Booking, error) {
	var bookings []*model.Booking
	err := r.db.Preload("Client").
		Where("class_id = ? AND status = ?", classID, model.BookingConfirmed).
		Find(&bookings).Error
	return bookings, err
}

// CancelAllConfirmedByClass 课程取消级联：confirmed -> cancelled，不回退名额计数
func (r *BookingRepository) CancelAllConfirmedByClass(classID int64) (int64, error) {
	res := r.db.Model(&model.Booking{}).
		Where("class_id = ? AND status = ?", classID, model.BookingConfirmed).
		Update("status", model.BookingCancelled)
	return res.RowsAffected, res.Error
}

// ListByDateRange 按课程日期区间查询预约
func (r *BookingRepository) ListByDateRange(from, to time.Time, status string) ([]*model.Booking, error) {
	query := r.db.Preload("Client").Preload("Class").
		Joins("JOIN class_instances ON class_instances.id = bookings.class_id").
		Where("class_instances.date BETWEEN ? AND ?", from, to)
	if status != "" {
		query = query.Where("bookings.status = ?", status)
	}

	var bookings []*model.Booking
	err := query.Order("bookings.created_at DESC").Find(&bookings).Error
	return bookings, err
}

// CountByClassDateAndStatus 看板统计：某日课程的预约数
func (r *BookingRepository) CountByClassDateAndStatus(date time.Time, status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Booking{}).
		Joins("JOIN class_instances ON class_instances.id = bookings.class_id").
		Where("class_instances.date = ? AND bookings.status = ?", date, status).
		Count(&count).Error
	return count, err
}
