package service

import (
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

func setupClientService(t *testing.T, now time.Time) (*ClientService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	svc := NewClientService(repository.NewClientRepository(db), clock.Fixed{T: now})
	return svc, db
}

func TestClientService_Create(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := setupClientService(t, now)

	t.Run("defaults next payment to 30 days out", func(t *testing.T) {
		detail, err := svc.Create(&dto.CreateClientRequest{
			FirstName: "明",
			LastName:  "李",
			Phone:     "+8613800000001",
		})
		require.NoError(t, err)
		assert.Equal(t, model.PaymentPending, detail.PaymentStatus)
		assert.Equal(t, "2024-02-09", detail.NextPaymentDate)
		assert.Equal(t, 30, detail.DaysUntilDue)
		assert.True(t, detail.Active)
	})

	t.Run("explicit next payment date", func(t *testing.T) {
		detail, err := svc.Create(&dto.CreateClientRequest{
			FirstName:       "华",
			LastName:        "王",
			Phone:           "+8613800000002",
			NextPaymentDate: "2024-03-01",
		})
		require.NoError(t, err)
		assert.Equal(t, "2024-03-01", detail.NextPaymentDate)
	})
}

func TestClientService_Renew(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	svc, db := setupClientService(t, now)

	t.Run("overdue client recovers on renewal", func(t *testing.T) {
		client := testutil.TestClient(t, db,
			testutil.WithPaymentStatus(model.PaymentOverdue),
			testutil.WithNextPaymentDate(date(2023, 12, 1)),
			testutil.WithInactive())

		detail, err := svc.Renew(client.ID)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentPaid, detail.PaymentStatus)
		assert.Equal(t, "2024-01-10", detail.LastPaymentDate)
		assert.Equal(t, "2024-02-09", detail.NextPaymentDate)
		assert.True(t, detail.Active)
	})

	t.Run("deleted client cannot renew", func(t *testing.T) {
		client := testutil.TestClient(t, db, testutil.WithDeleted(now))
		_, err := svc.Renew(client.ID)
		assert.ErrorIs(t, err, ErrClientNotFound)
	})
}

func TestClientService_DeleteLifecycle(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	svc, db := setupClientService(t, now)

	t.Run("soft delete then restore", func(t *testing.T) {
		client := testutil.TestClient(t, db)

		require.NoError(t, svc.SoftDelete(client.ID))
		var reloaded model.Client
		require.NoError(t, db.First(&reloaded, client.ID).Error)
		assert.True(t, reloaded.IsDeleted)
		require.NotNil(t, reloaded.DeletedAt)

		require.NoError(t, svc.Restore(client.ID))
		var restored model.Client
		require.NoError(t, db.First(&restored, client.ID).Error)
		assert.False(t, restored.IsDeleted)
		assert.Nil(t, restored.DeletedAt)
	})

	t.Run("restore requires deleted state", func(t *testing.T) {
		client := testutil.TestClient(t, db)
		assert.ErrorIs(t, svc.Restore(client.ID), ErrClientNotDeleted)
	})

	t.Run("hard delete cascades bookings and notifications", func(t *testing.T) {
		client := testutil.TestClient(t, db, testutil.WithDeleted(now))
		instructor := testutil.TestInstructor(t, db)
		location := testutil.TestLocation(t, db)
		class := testutil.TestClass(t, db, instructor.ID, location.ID)
		testutil.TestBooking(t, db, client.ID, class.ID)
		require.NoError(t, db.Create(&model.SMSNotification{
			ClientID: client.ID,
			Message:  "hello",
			Status:   model.SMSSent,
		}).Error)

		require.NoError(t, svc.HardDelete(client.ID))

		assert.ErrorIs(t, db.First(&model.Client{}, client.ID).Error, gorm.ErrRecordNotFound)

		var bookings, notices int64
		db.Model(&model.Booking{}).Where("client_id = ?", client.ID).Count(&bookings)
		db.Model(&model.SMSNotification{}).Where("client_id = ?", client.ID).Count(&notices)
		assert.Equal(t, int64(0), bookings)
		assert.Equal(t, int64(0), notices)
	})

	t.Run("hard delete requires deleted state", func(t *testing.T) {
		client := testutil.TestClient(t, db)
		assert.ErrorIs(t, svc.HardDelete(client.ID), ErrClientNotDeleted)
	})
}

func TestClientService_List(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	svc, db := setupClientService(t, now)

	testutil.TestClient(t, db, testutil.WithPaymentStatus(model.PaymentPaid))
	testutil.TestClient(t, db, testutil.WithPaymentStatus(model.PaymentOverdue))
	testutil.TestClient(t, db, testutil.WithDeleted(now))

	items, total, err := svc.List("", "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	items, total, err = svc.List("", model.PaymentOverdue, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, model.PaymentOverdue, items[0].PaymentStatus)

	deleted, err := svc.ListDeleted()
	require.NoError(t, err)
	assert.Len(t, deleted, 1)
}
