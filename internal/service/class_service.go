package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/clock"
	"github.com/qs3c/gym_go_server/internal/pkg/sms"
	"github.com/qs3c/gym_go_server/internal/repository"
)

var (
	ErrClassNotFound       = errors.New("课程不存在")
	ErrClassCancelled      = errors.New("课程已取消，无法修改")
	ErrClassNotCancellable = errors.New("课程已结束或已取消，无法取消")
	ErrInvalidDate         = errors.New("日期格式不正确，应为 YYYY-MM-DD")
	ErrInvalidTime         = errors.New("时间格式不正确，应为 HH:MM")
	ErrInvalidTimeRange    = errors.New("结束时间必须晚于开始时间")
	ErrInvalidRecurring    = errors.New("周期课程必须指定星期和截止日期")
	ErrRecurringUntilPast  = errors.New("周期截止日期不能早于首节课日期")
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type ClassService struct {
	classRepo      *repository.ClassRepository
	bookingRepo    *repository.BookingRepository
	clientRepo     *repository.ClientRepository
	instructorRepo *repository.InstructorRepository
	locationRepo   *repository.LocationRepository
	notifier       *NotificationService
	clk            clock.Clock
}

func NewClassService(
	classRepo *repository.ClassRepository,
	bookingRepo *repository.BookingRepository,
	clientRepo *repository.ClientRepository,
	instructorRepo *repository.InstructorRepository,
	locationRepo *repository.LocationRepository,
	notifier *NotificationService,
	clk clock.Clock,
) *ClassService {
	return &ClassService{
		classRepo:      classRepo,
		bookingRepo:    bookingRepo,
		clientRepo:     clientRepo,
		instructorRepo: instructorRepo,
		locationRepo:   locationRepo,
		notifier:       notifier,
		clk:            clk,
	}
}

// Create 创建课程。recurring=true 时按 recurring_days（0=周一）在
// (date, recurring_until] 区间内展开生成后续课程，基准日当天不重复生成，
// 全部课程在同一事务内落库。
func (s *ClassService) Create(req *dto.CreateClassRequest) (*dto.CreateClassResponse, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	if _, err := s.instructorRepo.GetByID(req.InstructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstructorNotFound
		}
		return nil, err
	}
	if _, err := s.locationRepo.GetByID(req.LocationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}

	base := &model.ClassInstance{
		Name:                req.Name,
		Description:         req.Description,
		InstructorID:        req.InstructorID,
		LocationID:          req.LocationID,
		Date:                date,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		Duration:            req.Duration,
		Capacity:            req.Capacity,
		CurrentParticipants: 0,
		Difficulty:          req.Difficulty,
		Status:              model.ClassScheduled,
		Price:               req.Price,
		Recurring:           req.Recurring,
	}
	if base.Duration <= 0 {
		base.Duration = durationMinutes(req.StartTime, req.EndTime)
	}
	if base.Difficulty == "" {
		base.Difficulty = model.DifficultyAll
	}
	if req.RequiresEquipment != nil {
		base.RequiresEquipment = *req.RequiresEquipment
	} else {
		base.RequiresEquipment = true
	}
	if req.EquipmentAvailable > 0 {
		base.EquipmentAvailable = req.EquipmentAvailable
	}

	var derived []*model.ClassInstance
	if req.Recurring {
		if len(req.RecurringDays) == 0 || req.RecurringUntil == "" {
			return nil, ErrInvalidRecurring
		}
		until, err := time.Parse(dateLayout, req.RecurringUntil)
		if err != nil {
			return nil, ErrInvalidDate
		}
		if until.Before(date) {
			return nil, ErrRecurringUntilPast
		}

		base.RecurringDays = model.IntArray(req.RecurringDays)
		base.RecurringUntil = &until

		for _, d := range ExpandRecurrence(date, req.RecurringDays, until) {
			inst := *base
			inst.Date = d
			derived = append(derived, &inst)
		}
	}

	if err := s.classRepo.CreateWithDerived(base, derived); err != nil {
		return nil, err
	}

	if len(derived) > 0 {
		log.Printf("Recurring class created: base=%d generated=%d until=%s",
			base.ID, len(derived), req.RecurringUntil)
	}

	return &dto.CreateClassResponse{
		ClassID:   base.ID,
		Generated: len(derived),
	}, nil
}

// ExpandRecurrence 展开周期课程的日期序列。weekdays 使用 0=周一 的索引，
// 区间为 (base, until]，基准日即使命中星期也不包含。
func ExpandRecurrence(base time.Time, weekdays []int, until time.Time) []time.Time {
	set := make(map[int]bool, len(weekdays))
	for _, d := range weekdays {
		set[d] = true
	}

	var dates []time.Time
	for d := base.AddDate(0, 0, 1); !d.After(until); d = d.AddDate(0, 0, 1) {
		// time.Weekday 以周日为 0，转换为周一为 0 的索引
		idx := (int(d.Weekday()) + 6) % 7
		if set[idx] {
			dates = append(dates, d)
		}
	}
	return dates
}

// EvaluateStatus 根据当前时刻计算课程应处的状态。cancelled 为终态不再变化；
// full 只在 scheduled 且满员时成立，开课后让位于 in_progress/completed。
func EvaluateStatus(c *model.ClassInstance, now time.Time) string {
	if c.Status == model.ClassCancelled {
		return model.ClassCancelled
	}

	start := combineDateTime(c.Date, c.StartTime)
	end := combineDateTime(c.Date, c.EndTime)

	switch {
	case !now.Before(end):
		return model.ClassCompleted
	case !now.Before(start):
		return model.ClassInProgress
	case c.CurrentParticipants >= c.Capacity:
		return model.ClassFull
	default:
		return model.ClassScheduled
	}
}

// CanCancel 课程是否还能取消：未取消、未结束且尚未开课
func CanCancel(c *model.ClassInstance, now time.Time) bool {
	if c.Status == model.ClassCancelled || c.Status == model.ClassCompleted {
		return false
	}
	return now.Before(combineDateTime(c.Date, c.StartTime))
}

// RefreshStatus 重新计算并持久化课程状态，返回刷新后的课程
func (s *ClassService) RefreshStatus(c *model.ClassInstance) error {
	want := EvaluateStatus(c, s.clk.Now())
	if want == c.Status {
		return nil
	}
	if err := s.classRepo.UpdateStatus(c.ID, want); err != nil {
		return err
	}
	c.Status = want
	return nil
}

// GetByID 获取课程详情（含预约名单）
func (s *ClassService) GetByID(id int64) (*dto.ClassDetail, error) {
	class, err := s.classRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	if err := s.RefreshStatus(class); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByClass(id)
	if err != nil {
		return nil, err
	}

	detail := &dto.ClassDetail{
		ClassListItem:      *buildClassListItem(class),
		Description:        class.Description,
		Duration:           class.Duration,
		RequiresEquipment:  class.RequiresEquipment,
		EquipmentAvailable: class.EquipmentAvailable,
		Recurring:          class.Recurring,
		CanCancel:          CanCancel(class, s.clk.Now()),
	}
	if class.Recurring {
		detail.RecurringDays = class.RecurringDays
		if class.RecurringUntil != nil {
			detail.RecurringUntil = class.RecurringUntil.Format(dateLayout)
		}
	}
	for _, b := range bookings {
		detail.Bookings = append(detail.Bookings, *buildBookingListItem(b))
	}
	return detail, nil
}

// List 获取课程列表，列表项的状态按当前时刻即时计算（不回写）
func (s *ClassService) List(f repository.ClassFilter, page, pageSize int) ([]*dto.ClassListItem, int64, error) {
	classes, total, err := s.classRepo.List(f, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	now := s.clk.Now()
	items := make([]*dto.ClassListItem, len(classes))
	for i, c := range classes {
		c.Status = EvaluateStatus(c, now)
		items[i] = buildClassListItem(c)
	}
	return items, total, nil
}

// Update 更新课程。已取消的课程不可修改；缩容不会低于当前报名人数
func (s *ClassService) Update(id int64, req *dto.UpdateClassRequest) (*dto.ClassDetail, error) {
	class, err := s.classRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	if class.Status == model.ClassCancelled {
		return nil, ErrClassCancelled
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.Description != nil {
		class.Description = *req.Description
	}
	if req.InstructorID != nil {
		if _, err := s.instructorRepo.GetByID(*req.InstructorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInstructorNotFound
			}
			return nil, err
		}
		class.InstructorID = *req.InstructorID
		class.Instructor = nil
	}
	if req.LocationID != nil {
		if _, err := s.locationRepo.GetByID(*req.LocationID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLocationNotFound
			}
			return nil, err
		}
		class.LocationID = *req.LocationID
		class.Location = nil
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		class.Date = date
	}
	if req.StartTime != nil {
		class.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		class.EndTime = *req.EndTime
	}
	if err := validateTimeRange(class.StartTime, class.EndTime); err != nil {
		return nil, err
	}
	if req.Duration != nil {
		class.Duration = *req.Duration
	}
	if req.Capacity != nil {
		capacity := *req.Capacity
		if capacity < class.CurrentParticipants {
			capacity = class.CurrentParticipants
		}
		class.Capacity = capacity
	}
	if req.Difficulty != nil {
		class.Difficulty = *req.Difficulty
	}
	if req.Price != nil {
		class.Price = *req.Price
	}
	if req.RequiresEquipment != nil {
		class.RequiresEquipment = *req.RequiresEquipment
	}
	if req.EquipmentAvailable != nil {
		class.EquipmentAvailable = *req.EquipmentAvailable
	}

	class.Status = EvaluateStatus(class, s.clk.Now())
	if err := s.classRepo.Update(class); err != nil {
		return nil, err
	}

	return s.GetByID(id)
}

// Cancel 取消课程：置为 cancelled（终态），级联取消全部 confirmed 预约
// （不回退名额计数），并向这些会员发送取消通知。通知为尽力而为，
// 发送失败不影响取消结果。
func (s *ClassService) Cancel(ctx context.Context, id int64) error {
	class, err := s.classRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}
	if !CanCancel(class, s.clk.Now()) {
		return ErrClassNotCancellable
	}

	// 先取到受影响的会员再改状态
	confirmed, err := s.bookingRepo.ListConfirmedByClass(id)
	if err != nil {
		return err
	}

	if err := s.classRepo.UpdateStatus(id, model.ClassCancelled); err != nil {
		return err
	}
	cancelled, err := s.bookingRepo.CancelAllConfirmedByClass(id)
	if err != nil {
		return err
	}
	log.Printf("Class %d cancelled, %d bookings cascaded", id, cancelled)

	if s.notifier != nil {
		clientIDs := make([]int64, 0, len(confirmed))
		for _, b := range confirmed {
			clientIDs = append(clientIDs, b.ClientID)
		}
		clients, err := s.clientRepo.ListByIDs(clientIDs)
		if err != nil {
			log.Printf("Failed to load clients for cancel notice: %v", err)
			return nil
		}
		for _, c := range clients {
			msg := sms.ClassCancelledMessage(c.FirstName, class.Name, class.Date, class.StartTime)
			if _, err := s.notifier.Send(ctx, c, msg); err != nil {
				log.Printf("Cancel notice to client %d failed: %v", c.ID, err)
			}
		}
	}
	return nil
}

// Delete 删除课程（仅限无任何预约记录的课程，有记录的应走取消）
func (s *ClassService) Delete(id int64) error {
	if _, err := s.classRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}
	bookings, err := s.bookingRepo.ListByClass(id)
	if err != nil {
		return err
	}
	if len(bookings) > 0 {
		return ErrClassHasBookings
	}
	return s.classRepo.Delete(id)
}

var ErrClassHasBookings = errors.New("课程存在预约记录，请改用取消")

func buildClassListItem(c *model.ClassInstance) *dto.ClassListItem {
	item := &dto.ClassListItem{
		ID:                  c.ID,
		Name:                c.Name,
		InstructorID:        c.InstructorID,
		LocationID:          c.LocationID,
		Date:                c.Date.Format(dateLayout),
		StartTime:           c.StartTime,
		EndTime:             c.EndTime,
		Capacity:            c.Capacity,
		CurrentParticipants: c.CurrentParticipants,
		AvailableSpots:      c.AvailableSpots(),
		Difficulty:          c.Difficulty,
		Status:              c.Status,
		Price:               c.Price,
	}
	if c.Instructor != nil {
		item.InstructorName = c.Instructor.FullName()
	}
	if c.Location != nil {
		item.LocationName = c.Location.Name
	}
	return item
}

func combineDateTime(date time.Time, hhmm string) time.Time {
	t, err := time.Parse(timeLayout, hhmm)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func durationMinutes(start, end string) int {
	st, err1 := time.Parse(timeLayout, start)
	et, err2 := time.Parse(timeLayout, end)
	if err1 != nil || err2 != nil {
		return 60
	}
	return int(et.Sub(st).Minutes())
}

func validateTimeRange(start, end string) error {
	st, err := time.Parse(timeLayout, start)
	if err != nil {
		return ErrInvalidTime
	}
	et, err := time.Parse(timeLayout, end)
	if err != nil {
		return ErrInvalidTime
	}
	if !et.After(st) {
		return ErrInvalidTimeRange
	}
	return nil
}
