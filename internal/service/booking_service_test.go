package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/clock"
	"github.com/qs3c/gym_go_server/internal/repository"
	"github.com/qs3c/gym_go_server/internal/testutil"
)

func setupBookingService(t *testing.T, now time.Time) (*BookingService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	// 内存 SQLite 按连接隔离，并发测试必须收敛到单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	svc := NewBookingService(
		repository.NewBookingRepository(db),
		repository.NewClassRepository(db),
		repository.NewClientRepository(db),
		clock.Fixed{T: now},
	)
	return svc, db
}

func TestBookingService_Create(t *testing.T) {
	now := time.Date(2024, 1, 9, 9, 0, 0, 0, time.UTC)
	svc, db := setupBookingService(t, now)

	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)

	t.Run("success increments participants", func(t *testing.T) {
		class := testutil.TestClass(t, db, instructor.ID, location.ID,
			testutil.WithDate(date(2024, 1, 10)))
		client := testutil.TestClient(t, db)

		item, err := svc.Create(class.ID, 1, &dto.CreateBookingRequest{ClientID: client.ID})
		require.NoError(t, err)
		assert.Equal(t, model.BookingConfirmed, item.Status)

		var reloaded model.ClassInstance
		require.NoError(t, db.First(&reloaded, class.ID).Error)
		assert.Equal(t, 1, reloaded.CurrentParticipants)
	})

	t.Run("duplicate booking rejected", func(t *testing.T) {
		class := testutil.TestClass(t, db, instructor.ID, location.ID,
			testutil.WithDate(date(2024, 1, 10)))
		client := testutil.TestClient(t, db)

		_, err := svc.Create(class.ID, 1, &dto.CreateBookingRequest{ClientID: client.ID})
		require.NoError(t, err)

		_, err = svc.Create(class.ID, 1, &dto.CreateBookingRequest{ClientID: client.ID})
		assert.ErrorIs(t, err, ErrDuplicateBooking)

		var reloaded model.ClassInstance
		require.NoError(t, db.First(&reloaded, class.ID).Error)
		assert.Equal(t, 1, reloaded.CurrentParticipants)
	})

	t.Run("full class rejected", func(t *testing.T) {
		class := testutil.TestClass(t, db, instructor.ID, location.ID,
			testutil.WithDate(date(2024, 1, 10)),
			testutil.WithCapacity(1, 1))
		client := testutil.TestClient(t, db)

		_, err := svc.Create(class.ID, 1, &dto.CreateBookingRequest{ClientID: client.ID})
		assert.ErrorIs(t, err, ErrClassFull)
	})

	t.Run("cancelled class rejected", func(t *testing.T) {
		class := testutil.TestClass(t, db, instructor.ID, location.ID,
			testutil.WithDate(date(2024, 1, 10)),
			testutil.WithStatus(model.ClassCancelled))
		client := testutil.TestClient(t, db)

		_, err := svc.Create(class.ID, 1, &dto.CreateBookingRequest{ClientID: client.ID})
		assert.ErrorIs(t, err, ErrClassNotBookable)
	})

	t.Run("inactive client rejected", func(t *testing.T) {
		class := testutil.TestClass(t, db, instructor.ID, location.ID)
		client := testutil.TestClient(t, db, testutil.WithInactive())

		_, err := svc.Create(class.ID, 1, &dto.CreateBookingRequest{ClientID: client.ID})
		assert.ErrorIs(t, err, ErrClientInactive)
	})

	t.Run("unknown class rejected", func(t *testing.T) {
		client := testutil.TestClient(t, db)
		_, err := svc.Create(99999, 1, &dto.CreateBookingRequest{ClientID: client.ID})
		assert.ErrorIs(t, err, ErrClassNotFound)
	})

	t.Run("booking last slot marks class full", func(t *testing.T) {
		class := testutil.TestClass(t, db, instructor.ID, location.ID,
			testutil.WithDate(date(2024, 1, 10)),
			testutil.WithCapacity(1, 0))
		client := testutil.TestClient(t, db)

		_, err := svc.Create(class.ID, 1, &dto.CreateBookingRequest{ClientID: client.ID})
		require.NoError(t, err)

		var reloaded model.ClassInstance
		require.NoError(t, db.First(&reloaded, class.ID).Error)
		assert.Equal(t, model.ClassFull, reloaded.Status)
	})
}

func TestBookingService_Create_LastSlotRace(t *testing.T) {
	now := time.Date(2024, 1, 9, 9, 0, 0, 0, time.UTC)
	svc, db := setupBookingService(t, now)

	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)
	class := testutil.TestClass(t, db, instructor.ID, location.ID,
		testutil.WithDate(date(2024, 1, 10)),
		testutil.WithCapacity(1, 0))

	clientA := testutil.TestClient(t, db)
	clientB := testutil.TestClient(t, db)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, clientID := range []int64{clientA.ID, clientB.ID} {
		wg.Add(1)
		go func(i int, clientID int64) {
			defer wg.Done()
			_, errs[i] = svc.Create(class.ID, 1, &dto.CreateBookingRequest{ClientID: clientID})
		}(i, clientID)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrClassFull)
		}
	}
	assert.Equal(t, 1, succeeded)

	var reloaded model.ClassInstance
	require.NoError(t, db.First(&reloaded, class.ID).Error)
	assert.Equal(t, 1, reloaded.CurrentParticipants)
}

func TestBookingService_Cancel(t *testing.T) {
	now := time.Date(2024, 1, 9, 9, 0, 0, 0, time.UTC)
	svc, db := setupBookingService(t, now)

	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)

	t.Run("cancel releases slot and reopens full class", func(t *testing.T) {
		class := testutil.TestClass(t, db, instructor.ID, location.ID,
			testutil.WithDate(date(2024, 1, 10)),
			testutil.WithCapacity(1, 0))
		client := testutil.TestClient(t, db)

		item, err := svc.Create(class.ID, 1, &dto.CreateBookingRequest{ClientID: client.ID})
		require.NoError(t, err)

		require.NoError(t, svc.Cancel(item.ID))

		var reloaded model.ClassInstance
		require.NoError(t, db.First(&reloaded, class.ID).Error)
		assert.Equal(t, 0, reloaded.CurrentParticipants)
		assert.Equal(t, model.ClassScheduled, reloaded.Status)
	})

	t.Run("cancel twice is idempotent", func(t *testing.T) {
		class := testutil.TestClass(t, db, instructor.ID, location.ID,
			testutil.WithDate(date(2024, 1, 10)),
			testutil.WithCapacity(5, 0))
		client := testutil.TestClient(t, db)

		item, err := svc.Create(class.ID, 1, &dto.CreateBookingRequest{ClientID: client.ID})
		require.NoError(t, err)

		require.NoError(t, svc.Cancel(item.ID))
		require.NoError(t, svc.Cancel(item.ID))

		var reloaded model.ClassInstance
		require.NoError(t, db.First(&reloaded, class.ID).Error)
		assert.Equal(t, 0, reloaded.CurrentParticipants)
	})

	t.Run("attended booking cannot be cancelled", func(t *testing.T) {
		class := testutil.TestClass(t, db, instructor.ID, location.ID)
		client := testutil.TestClient(t, db)
		booking := testutil.TestBooking(t, db, client.ID, class.ID,
			testutil.WithBookingStatus(model.BookingAttended))

		assert.ErrorIs(t, svc.Cancel(booking.ID), ErrBookingTerminal)
	})
}

func TestBookingService_ConfirmAttendance(t *testing.T) {
	now := time.Date(2024, 1, 10, 10, 5, 0, 0, time.UTC)
	svc, db := setupBookingService(t, now)

	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)
	class := testutil.TestClass(t, db, instructor.ID, location.ID,
		testutil.WithDate(date(2024, 1, 10)))
	client := testutil.TestClient(t, db)
	booking := testutil.TestBooking(t, db, client.ID, class.ID)

	item, err := svc.ConfirmAttendance(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingAttended, item.Status)
	assert.True(t, item.Attended)
	assert.NotEmpty(t, item.CheckInTime)

	// 重复签到幂等
	again, err := svc.ConfirmAttendance(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingAttended, again.Status)

	// 已取消的预约不能签到
	cancelled := testutil.TestBooking(t, db, testutil.TestClient(t, db).ID, class.ID,
		testutil.WithBookingStatus(model.BookingCancelled))
	_, err = svc.ConfirmAttendance(cancelled.ID)
	assert.ErrorIs(t, err, ErrBookingTerminal)
}

func TestBookingService_MarkNoShow(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	svc, db := setupBookingService(t, now)

	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)
	class := testutil.TestClass(t, db, instructor.ID, location.ID,
		testutil.WithDate(date(2024, 1, 10)),
		testutil.WithCapacity(10, 1))
	client := testutil.TestClient(t, db)
	booking := testutil.TestBooking(t, db, client.ID, class.ID)

	item, err := svc.MarkNoShow(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingNoShow, item.Status)

	// 重复标记幂等
	_, err = svc.MarkNoShow(booking.ID)
	require.NoError(t, err)

	// 缺席不释放名额
	var reloaded model.ClassInstance
	require.NoError(t, db.First(&reloaded, class.ID).Error)
	assert.Equal(t, 1, reloaded.CurrentParticipants)

	// 已签到的预约不能改标缺席
	attended := testutil.TestBooking(t, db, testutil.TestClient(t, db).ID, class.ID,
		testutil.WithBookingStatus(model.BookingAttended))
	_, err = svc.MarkNoShow(attended.ID)
	assert.ErrorIs(t, err, ErrBookingTerminal)
}
