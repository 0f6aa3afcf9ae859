package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/config"
	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/pkg/clock"
	"github.com/qs3c/gym_go_server/internal/pkg/joblock"
	"github.com/qs3c/gym_go_server/internal/repository"
	"github.com/qs3c/gym_go_server/internal/service"
	"github.com/qs3c/gym_go_server/internal/testutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setupScheduler(t *testing.T, now time.Time) (*Service, *gorm.DB, *testutil.FakeSMSSender) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})

	clientRepo := repository.NewClientRepository(db)
	sender := testutil.NewFakeSMSSender()
	notifier := service.NewNotificationService(
		repository.NewNotificationRepository(db), clientRepo, sender)
	locker := joblock.NewLocker(rdb, "gym:jobs", 5*time.Minute)

	cfg := &config.SchedulerConfig{
		SweepIntervalHours: 1,
		OverdueGraceDays:   7,
		UpcomingDueDays:    3,
		DeactivateDays:     15,
		PurgeRetentionDays: 30,
	}

	svc := NewService(clientRepo, notifier, locker, cfg, clock.Fixed{T: now})
	return svc, db, sender
}

func TestRunOverdueSweep(t *testing.T) {
	// today = 2024-01-10
	now := time.Date(2024, 1, 10, 2, 0, 0, 0, time.UTC)
	svc, db, _ := setupScheduler(t, now)

	dueYesterday := testutil.TestClient(t, db,
		testutil.WithNextPaymentDate(date(2024, 1, 9)))
	paidButExpired := testutil.TestClient(t, db,
		testutil.WithPaymentStatus(model.PaymentPaid),
		testutil.WithNextPaymentDate(date(2024, 1, 1)))
	dueToday := testutil.TestClient(t, db,
		testutil.WithNextPaymentDate(date(2024, 1, 10)))
	deleted := testutil.TestClient(t, db,
		testutil.WithNextPaymentDate(date(2024, 1, 1)),
		testutil.WithDeleted(now))

	require.NoError(t, svc.RunOverdueSweep(context.Background()))

	status := func(id int64) string {
		var c model.Client
		require.NoError(t, db.First(&c, id).Error)
		return c.PaymentStatus
	}

	assert.Equal(t, model.PaymentOverdue, status(dueYesterday.ID))
	assert.Equal(t, model.PaymentOverdue, status(paidButExpired.ID))
	// 当天到期尚未逾期
	assert.Equal(t, model.PaymentPending, status(dueToday.ID))
	// 回收站会员不参与
	assert.Equal(t, model.PaymentPending, status(deleted.ID))

	// 重复运行幂等
	require.NoError(t, svc.RunOverdueSweep(context.Background()))
	assert.Equal(t, model.PaymentOverdue, status(dueYesterday.ID))
}

func TestRunPaymentReminders(t *testing.T) {
	now := time.Date(2024, 1, 10, 2, 0, 0, 0, time.UTC)
	svc, db, sender := setupScheduler(t, now)

	// 逾期 8 天，超过 7 天宽限期，应收催缴
	longOverdue := testutil.TestClient(t, db,
		testutil.WithPaymentStatus(model.PaymentOverdue),
		testutil.WithNextPaymentDate(date(2024, 1, 2)))
	// 刚逾期 2 天，在宽限期内，不发
	testutil.TestClient(t, db,
		testutil.WithPaymentStatus(model.PaymentOverdue),
		testutil.WithNextPaymentDate(date(2024, 1, 8)))
	// 3 天后到期，应收提醒
	upcomingDue := testutil.TestClient(t, db,
		testutil.WithNextPaymentDate(date(2024, 1, 13)))
	// 5 天后到期，不发
	testutil.TestClient(t, db,
		testutil.WithNextPaymentDate(date(2024, 1, 15)))

	require.NoError(t, svc.RunPaymentReminders(context.Background()))

	sent := sender.Sent()
	require.Len(t, sent, 2)

	phones := []string{sent[0].Phone, sent[1].Phone}
	assert.Contains(t, phones, longOverdue.Phone)
	assert.Contains(t, phones, upcomingDue.Phone)

	var notices int64
	require.NoError(t, db.Model(&model.SMSNotification{}).
		Where("status = ?", model.SMSSent).Count(&notices).Error)
	assert.Equal(t, int64(2), notices)
}

func TestRunDeactivationSweep(t *testing.T) {
	now := time.Date(2024, 1, 20, 2, 0, 0, 0, time.UTC)
	svc, db, sender := setupScheduler(t, now)

	// 逾期 16 天，超过 15 天阈值，应停用
	expired := testutil.TestClient(t, db,
		testutil.WithPaymentStatus(model.PaymentOverdue),
		testutil.WithNextPaymentDate(date(2024, 1, 4)))
	// 逾期 10 天，保留
	kept := testutil.TestClient(t, db,
		testutil.WithPaymentStatus(model.PaymentOverdue),
		testutil.WithNextPaymentDate(date(2024, 1, 10)))

	require.NoError(t, svc.RunDeactivationSweep(context.Background()))

	var c model.Client
	require.NoError(t, db.First(&c, expired.ID).Error)
	assert.False(t, c.Active)

	var k model.Client
	require.NoError(t, db.First(&k, kept.ID).Error)
	assert.True(t, k.Active)

	// 停用通知只发给被停用的会员
	require.Len(t, sender.Sent(), 1)
	assert.Equal(t, expired.Phone, sender.Sent()[0].Phone)

	// 重复运行不再发通知
	require.NoError(t, svc.RunDeactivationSweep(context.Background()))
	assert.Len(t, sender.Sent(), 1)
}

func TestRunRetentionPurge(t *testing.T) {
	now := time.Date(2024, 2, 15, 2, 0, 0, 0, time.UTC)
	svc, db, _ := setupScheduler(t, now)

	// 删除 31 天，应清除
	old := testutil.TestClient(t, db,
		testutil.WithDeleted(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)))
	// 删除 10 天，保留
	recent := testutil.TestClient(t, db,
		testutil.WithDeleted(time.Date(2024, 2, 5, 10, 0, 0, 0, time.UTC)))
	// 未删除，保留
	active := testutil.TestClient(t, db)

	require.NoError(t, svc.RunRetentionPurge(context.Background()))

	assert.ErrorIs(t, db.First(&model.Client{}, old.ID).Error, gorm.ErrRecordNotFound)
	assert.NoError(t, db.First(&model.Client{}, recent.ID).Error)
	assert.NoError(t, db.First(&model.Client{}, active.ID).Error)
}

func TestRunJob(t *testing.T) {
	now := time.Date(2024, 1, 10, 2, 0, 0, 0, time.UTC)
	svc, db, _ := setupScheduler(t, now)

	client := testutil.TestClient(t, db,
		testutil.WithNextPaymentDate(date(2024, 1, 1)))

	require.NoError(t, svc.RunJob(context.Background(), JobOverdueSweep))

	var c model.Client
	require.NoError(t, db.First(&c, client.ID).Error)
	assert.Equal(t, model.PaymentOverdue, c.PaymentStatus)

	assert.ErrorIs(t, svc.RunJob(context.Background(), "nonsense"), ErrUnknownJob)
}
