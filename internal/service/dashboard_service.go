package service

import (
	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/clock"
	"github.com/qs3c/gym_go_server/internal/repository"
)

// 看板上展示的即将到期会员条数
const upcomingPaymentsLimit = 5

type DashboardService struct {
	clientRepo     *repository.ClientRepository
	classRepo      *repository.ClassRepository
	bookingRepo    *repository.BookingRepository
	instructorRepo *repository.InstructorRepository
	locationRepo   *repository.LocationRepository
	clk            clock.Clock
}

func NewDashboardService(
	clientRepo *repository.ClientRepository,
	classRepo *repository.ClassRepository,
	bookingRepo *repository.BookingRepository,
	instructorRepo *repository.InstructorRepository,
	locationRepo *repository.LocationRepository,
	clk clock.Clock,
) *DashboardService {
	return &DashboardService{
		clientRepo:     clientRepo,
		classRepo:      classRepo,
		bookingRepo:    bookingRepo,
		instructorRepo: instructorRepo,
		locationRepo:   locationRepo,
		clk:            clk,
	}
}

// Stats 汇总首页看板数据
func (s *DashboardService) Stats() (*dto.DashboardStats, error) {
	today := clock.Today(s.clk)
	stats := &dto.DashboardStats{}

	var err error
	if stats.TotalClients, err = s.clientRepo.CountActive(); err != nil {
		return nil, err
	}
	if stats.PaidClients, err = s.clientRepo.CountByPaymentStatus(model.PaymentPaid); err != nil {
		return nil, err
	}
	if stats.OverdueClients, err = s.clientRepo.CountByPaymentStatus(model.PaymentOverdue); err != nil {
		return nil, err
	}
	if stats.DeletedClients, err = s.clientRepo.CountDeleted(); err != nil {
		return nil, err
	}
	if stats.ActiveInstructors, err = s.instructorRepo.CountActive(); err != nil {
		return nil, err
	}
	if stats.ActiveLocations, err = s.locationRepo.CountActive(); err != nil {
		return nil, err
	}

	classes, err := s.classRepo.ListByDateAndStatuses(today, []string{
		model.ClassScheduled, model.ClassInProgress, model.ClassCompleted, model.ClassFull,
	})
	if err != nil {
		return nil, err
	}
	stats.ClassesToday = int64(len(classes))

	var capacity, participants int
	for _, c := range classes {
		capacity += c.Capacity
		participants += c.CurrentParticipants
	}
	if capacity > 0 {
		stats.OccupancyToday = float64(participants) / float64(capacity) * 100
	}

	if stats.BookingsToday, err = s.bookingRepo.CountByClassDateAndStatus(today, model.BookingConfirmed); err != nil {
		return nil, err
	}

	upcoming, err := s.clientRepo.ListUpcomingPayments(today, upcomingPaymentsLimit)
	if err != nil {
		return nil, err
	}
	stats.UpcomingPayments = make([]dto.UpcomingPayment, len(upcoming))
	for i, c := range upcoming {
		stats.UpcomingPayments[i] = dto.UpcomingPayment{
			ClientID:     c.ID,
			ClientName:   c.FullName(),
			DaysUntilDue: c.DaysUntilDue(today),
		}
		if c.NextPaymentDate != nil {
			stats.UpcomingPayments[i].NextPaymentDate = c.NextPaymentDate.Format(dateLayout)
		}
	}

	return stats, nil
}
