package service

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/clock"
	"github.com/qs3c/gym_go_server/internal/repository"
)

var (
	ErrBookingNotFound  = errors.New("预约不存在")
	ErrClassFull        = errors.New("课程名额已满")
	ErrDuplicateBooking = errors.New("该会员已预约此课程")
	ErrClassNotBookable = errors.New("课程已取消或已结束，无法预约")
	ErrBookingTerminal  = errors.New("预约已处于终态，无法变更")
	ErrClientInactive   = errors.New("会员已停用，无法预约")
)

type BookingService struct {
	bookingRepo *repository.BookingRepository
	classRepo   *repository.ClassRepository
	clientRepo  *repository.ClientRepository
	clk         clock.Clock
}

func NewBookingService(
	bookingRepo *repository.BookingRepository,
	classRepo *repository.ClassRepository,
	clientRepo *repository.ClientRepository,
	clk clock.Clock,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		classRepo:   classRepo,
		clientRepo:  clientRepo,
		clk:         clk,
	}
}

// Create 创建预约。名额检查与占用在同一事务内通过守卫更新完成，
// 并发抢最后一个名额时只有一个请求成功。
func (s *BookingService) Create(classID int64, staffID int64, req *dto.CreateBookingRequest) (*dto.BookingListItem, error) {
	client, err := s.clientRepo.GetByID(req.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if client.IsDeleted || !client.Active {
		return nil, ErrClientInactive
	}

	booking := &model.Booking{
		ClientID:      req.ClientID,
		ClassID:       classID,
		Status:        model.BookingConfirmed,
		PaymentStatus: req.PaymentStatus,
		AmountPaid:    req.AmountPaid,
		Notes:         req.Notes,
	}
	if staffID > 0 {
		booking.CreatedBy = &staffID
	}
	if req.PaymentStatus {
		now := s.clk.Now()
		booking.PaymentDate = &now
	}

	if err := s.bookingRepo.CreateConfirmed(booking); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrDuplicateBooking
		case errors.Is(err, repository.ErrNoCapacity):
			return nil, ErrClassFull
		case errors.Is(err, repository.ErrNotBookable):
			return nil, ErrClassNotBookable
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	// 占满最后一个名额后刷新课程状态
	s.refreshClassStatus(classID)

	created, err := s.bookingRepo.GetByID(booking.ID)
	if err != nil {
		return nil, err
	}
	return buildBookingListItem(created), nil
}

// Cancel 取消预约并释放名额。取消已取消的预约为幂等空操作，
// attended/no_show 为终态，拒绝取消。
func (s *BookingService) Cancel(id int64) error {
	booking, err := s.bookingRepo.Cancel(id)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrBookingNotFound
		case errors.Is(err, repository.ErrTerminalState):
			return ErrBookingTerminal
		}
		return err
	}

	// 释放名额后课程可能由 full 回到 scheduled
	s.refreshClassStatus(booking.ClassID)
	return nil
}

// ConfirmAttendance 签到。重复签到幂等，其余终态拒绝
func (s *BookingService) ConfirmAttendance(id int64) (*dto.BookingListItem, error) {
	booking, err := s.bookingRepo.ConfirmAttendance(id, s.clk.Now())
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrBookingNotFound
		case errors.Is(err, repository.ErrTerminalState):
			return nil, ErrBookingTerminal
		}
		return nil, err
	}
	return buildBookingListItem(booking), nil
}

// MarkNoShow 标记缺席。仅 confirmed 可标记，重复标记幂等，名额计数不变
func (s *BookingService) MarkNoShow(id int64) (*dto.BookingListItem, error) {
	booking, err := s.bookingRepo.MarkNoShow(id)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrBookingNotFound
		case errors.Is(err, repository.ErrTerminalState):
			return nil, ErrBookingTerminal
		}
		return nil, err
	}
	return buildBookingListItem(booking), nil
}

// GetByID 获取预约详情
func (s *BookingService) GetByID(id int64) (*dto.BookingListItem, error) {
	booking, err := s.bookingRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return buildBookingListItem(booking), nil
}

// ListByDateRange 按课程日期区间查询预约
func (s *BookingService) ListByDateRange(from, to string, status string) ([]*dto.BookingListItem, error) {
	fromDate, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, ErrInvalidDate
	}
	toDate, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, ErrInvalidDate
	}

	bookings, err := s.bookingRepo.ListByDateRange(fromDate, toDate, status)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.BookingListItem, len(bookings))
	for i, b := range bookings {
		items[i] = buildBookingListItem(b)
	}
	return items, nil
}

func (s *BookingService) refreshClassStatus(classID int64) {
	class, err := s.classRepo.GetByID(classID)
	if err != nil {
		log.Printf("Failed to reload class %d after booking change: %v", classID, err)
		return
	}
	want := EvaluateStatus(class, s.clk.Now())
	if want != class.Status {
		if err := s.classRepo.UpdateStatus(classID, want); err != nil {
			log.Printf("Failed to refresh class %d status: %v", classID, err)
		}
	}
}

func buildBookingListItem(b *model.Booking) *dto.BookingListItem {
	item := &dto.BookingListItem{
		ID:            b.ID,
		ClientID:      b.ClientID,
		ClassID:       b.ClassID,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		AmountPaid:    b.AmountPaid,
		Attended:      b.Attended,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
	if b.Client != nil {
		item.ClientName = b.Client.FullName()
	}
	if b.Class != nil {
		item.ClassName = b.Class.Name
		item.ClassDate = b.Class.Date.Format(dateLayout)
	}
	if b.CheckInTime != nil {
		item.CheckInTime = b.CheckInTime.Format(time.RFC3339)
	}
	return item
}
