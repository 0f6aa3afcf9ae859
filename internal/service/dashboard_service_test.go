package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/pkg/clock"
	"github.com/qs3c/gym_go_server/internal/repository"
	"github.com/qs3c/gym_go_server/internal/testutil"
)

func TestDashboardService_Stats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	today := date(2024, 1, 10)

	svc := NewDashboardService(
		repository.NewClientRepository(db),
		repository.NewClassRepository(db),
		repository.NewBookingRepository(db),
		repository.NewInstructorRepository(db),
		repository.NewLocationRepository(db),
		clock.Fixed{T: now},
	)

	paid := testutil.TestClient(t, db, testutil.WithPaymentStatus(model.PaymentPaid))
	testutil.TestClient(t, db, testutil.WithPaymentStatus(model.PaymentOverdue))
	testutil.TestClient(t, db, testutil.WithDeleted(now))
	upcoming := testutil.TestClient(t, db,
		testutil.WithNextPaymentDate(date(2024, 1, 12)))

	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)

	classToday := testutil.TestClass(t, db, instructor.ID, location.ID,
		testutil.WithDate(today), testutil.WithCapacity(10, 5))
	testutil.TestClass(t, db, instructor.ID, location.ID,
		testutil.WithDate(today), testutil.WithCapacity(10, 0),
		testutil.WithStatus(model.ClassCancelled))
	testutil.TestClass(t, db, instructor.ID, location.ID,
		testutil.WithDate(date(2024, 1, 11)))

	testutil.TestBooking(t, db, paid.ID, classToday.ID)

	stats, err := svc.Stats()
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalClients)
	assert.Equal(t, int64(1), stats.PaidClients)
	assert.Equal(t, int64(1), stats.OverdueClients)
	assert.Equal(t, int64(1), stats.DeletedClients)
	assert.Equal(t, int64(1), stats.ClassesToday) // 已取消的课程不计
	assert.Equal(t, int64(1), stats.BookingsToday)
	assert.InDelta(t, 50.0, stats.OccupancyToday, 0.01)
	assert.Equal(t, int64(1), stats.ActiveInstructors)
	assert.Equal(t, int64(1), stats.ActiveLocations)

	require.NotEmpty(t, stats.UpcomingPayments)
	assert.Equal(t, upcoming.ID, stats.UpcomingPayments[0].ClientID)
	assert.Equal(t, 2, stats.UpcomingPayments[0].DaysUntilDue)
}
