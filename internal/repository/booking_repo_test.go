package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/testutil"
)

func TestBookingRepository_CreateConfirmed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewBookingRepository(db)
	client := testutil.TestClient(t, db)
	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)
	class := testutil.TestClass(t, db, instructor.ID, location.ID)

	booking := &model.Booking{ClientID: client.ID, ClassID: class.ID}
	err := repo.CreateConfirmed(booking)
	require.NoError(t, err)
	assert.NotZero(t, booking.ID)
	assert.Equal(t, model.BookingConfirmed, booking.Status)

	// 占位成功后课程计数 +1
	var updated model.ClassInstance
	require.NoError(t, db.First(&updated, class.ID).Error)
	assert.Equal(t, 1, updated.CurrentParticipants)
}

func TestBookingRepository_CreateConfirmed_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewBookingRepository(db)
	client := testutil.TestClient(t, db)
	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)
	class := testutil.TestClass(t, db, instructor.ID, location.ID)

	require.NoError(t, repo.CreateConfirmed(&model.Booking{ClientID: client.ID, ClassID: class.ID}))

	err := repo.CreateConfirmed(&model.Booking{ClientID: client.ID, ClassID: class.ID})
	assert.ErrorIs(t, err, ErrDuplicate)

	// 重复请求不得重复占位
	var updated model.ClassInstance
	require.NoError(t, db.First(&updated, class.ID).Error)
	assert.Equal(t, 1, updated.CurrentParticipants)
}

func TestBookingRepository_CreateConfirmed_NoCapacity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewBookingRepository(db)
	client := testutil.TestClient(t, db)
	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)
	class := testutil.TestClass(t, db, instructor.ID, location.ID,
		testutil.WithCapacity(2, 2))

	err := repo.CreateConfirmed(&model.Booking{ClientID: client.ID, ClassID: class.ID})
	assert.ErrorIs(t, err, ErrNoCapacity)
}

func TestBookingRepository_CreateConfirmed_NotBookable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewBookingRepository(db)
	client := testutil.TestClient(t, db)
	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)

	cancelled := testutil.TestClass(t, db, instructor.ID, location.ID,
		testutil.WithStatus(model.ClassCancelled))
	err := repo.CreateConfirmed(&model.Booking{ClientID: client.ID, ClassID: cancelled.ID})
	assert.ErrorIs(t, err, ErrNotBookable)

	completed := testutil.TestClass(t, db, instructor.ID, location.ID,
		testutil.WithStatus(model.ClassCompleted))
	err = repo.CreateConfirmed(&model.Booking{ClientID: client.ID, ClassID: completed.ID})
	assert.ErrorIs(t, err, ErrNotBookable)
}

func TestBookingRepository_CreateConfirmed_ClassNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewBookingRepository(db)
	client := testutil.TestClient(t, db)

	err := repo.CreateConfirmed(&model.Booking{ClientID: client.ID, ClassID: 99999})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestBookingRepository_Cancel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewBookingRepository(db)
	client := testutil.TestClient(t, db)
	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)
	class := testutil.TestClass(t, db, instructor.ID, location.ID,
		testutil.WithCapacity(10, 1))
	booking := testutil.TestBooking(t, db, client.ID, class.ID)

	cancelled, err := repo.Cancel(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, cancelled.Status)

	// 取消释放名额
	var updated model.ClassInstance
	require.NoError(t, db.First(&updated, class.ID).Error)
	assert.Equal(t, 0, updated.CurrentParticipants)

	// 重复取消幂等，计数不再递减
	_, err = repo.Cancel(booking.ID)
	require.NoError(t, err)
	require.NoError(t, db.First(&updated, class.ID).Error)
	assert.Equal(t, 0, updated.CurrentParticipants)
}

func TestBookingRepository_Cancel_TerminalState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewBookingRepository(db)
	client := testutil.TestClient(t, db)
	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)
	class := testutil.TestClass(t, db, instructor.ID, location.ID,
		testutil.WithCapacity(10, 1))
	booking := testutil.TestBooking(t, db, client.ID, class.ID,
		testutil.WithBookingStatus(model.BookingAttended))

	_, err := repo.Cancel(booking.ID)
	assert.ErrorIs(t, err, ErrTerminalState)
}

func TestBookingRepository_ConfirmAttendance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewBookingRepository(db)
	client := testutil.TestClient(t, db)
	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)
	class := testutil.TestClass(t, db, instructor.ID, location.ID,
		testutil.WithCapacity(10, 1))
	booking := testutil.TestBooking(t, db, client.ID, class.ID)

	checkIn := time.Date(2024, 1, 10, 10, 5, 0, 0, time.UTC)
	attended, err := repo.ConfirmAttendance(booking.ID, checkIn)
	require.NoError(t, err)
	assert.Equal(t, model.BookingAttended, attended.Status)
	assert.True(t, attended.Attended)
	require.NotNil(t, attended.CheckInTime)

	// 签到不释放名额
	var updated model.ClassInstance
	require.NoError(t, db.First(&updated, class.ID).Error)
	assert.Equal(t, 1, updated.CurrentParticipants)
}

func TestBookingRepository_MarkNoShow_OnlyFromConfirmed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewBookingRepository(db)
	client := testutil.TestClient(t, db)
	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)
	class := testutil.TestClass(t, db, instructor.ID, location.ID,
		testutil.WithCapacity(10, 1))

	booking := testutil.TestBooking(t, db, client.ID, class.ID)
	marked, err := repo.MarkNoShow(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingNoShow, marked.Status)

	// 重复标记幂等
	_, err = repo.MarkNoShow(booking.ID)
	require.NoError(t, err)

	client2 := testutil.TestClient(t, db)
	cancelled := testutil.TestBooking(t, db, client2.ID, class.ID,
		testutil.WithBookingStatus(model.BookingCancelled))
	_, err = repo.MarkNoShow(cancelled.ID)
	assert.ErrorIs(t, err, ErrTerminalState)
}

func TestBookingRepository_CancelAllConfirmedByClass(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewBookingRepository(db)
	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)
	class := testutil.TestClass(t, db, instructor.ID, location.ID,
		testutil.WithCapacity(10, 3))

	c1 := testutil.TestClient(t, db)
	c2 := testutil.TestClient(t, db)
	c3 := testutil.TestClient(t, db)
	testutil.TestBooking(t, db, c1.ID, class.ID)
	testutil.TestBooking(t, db, c2.ID, class.ID)
	testutil.TestBooking(t, db, c3.ID, class.ID,
		testutil.WithBookingStatus(model.BookingCancelled))

	affected, err := repo.CancelAllConfirmedByClass(class.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	// 级联取消保留历史计数
	var updated model.ClassInstance
	require.NoError(t, db.First(&updated, class.ID).Error)
	assert.Equal(t, 3, updated.CurrentParticipants)
}

func TestBookingRepository_ListByDateRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewBookingRepository(db)
	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)

	day1 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	inRange := testutil.TestClass(t, db, instructor.ID, location.ID, testutil.WithDate(day1))
	outOfRange := testutil.TestClass(t, db, instructor.ID, location.ID, testutil.WithDate(day2))

	client := testutil.TestClient(t, db)
	kept := testutil.TestBooking(t, db, client.ID, inRange.ID)
	testutil.TestBooking(t, db, client.ID, outOfRange.ID)

	from := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	bookings, err := repo.ListByDateRange(from, to, "")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, kept.ID, bookings[0].ID)

	// 状态过滤
	bookings, err = repo.ListByDateRange(from, to, model.BookingCancelled)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}
