package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/qs3c/gym_go_server/config"
	"github.com/qs3c/gym_go_server/internal/pkg/clock"
	"github.com/qs3c/gym_go_server/internal/pkg/joblock"
	"github.com/qs3c/gym_go_server/internal/pkg/sms"
	"github.com/qs3c/gym_go_server/internal/repository"
	"github.com/qs3c/gym_go_server/internal/service"
)

// 任务名，手动触发接口用同一组名字
const (
	JobOverdueSweep     = "overdue-sweep"
	JobPaymentReminders = "payment-reminders"
	JobDeactivateSweep  = "deactivation-sweep"
	JobRetentionPurge   = "retention-purge"
)

var ErrUnknownJob = errors.New("未知的任务名")

// Service 会费生命周期任务调度器。四个任务都满足幂等：重复运行不产生
// 重复效果（守卫更新的 WHERE 即资格复查），多实例并发靠 Redis 锁互斥。
type Service struct {
	clientRepo *repository.ClientRepository
	notifier   *service.NotificationService
	locker     *joblock.Locker
	cfg        *config.SchedulerConfig
	clk        clock.Clock
	stopChan   chan struct{}
}

func NewService(
	clientRepo *repository.ClientRepository,
	notifier *service.NotificationService,
	locker *joblock.Locker,
	cfg *config.SchedulerConfig,
	clk clock.Clock,
) *Service {
	return &Service{
		clientRepo: clientRepo,
		notifier:   notifier,
		locker:     locker,
		cfg:        cfg,
		clk:        clk,
		stopChan:   make(chan struct{}),
	}
}

// Start 启动调度循环：逾期扫描按小时间隔运行，其余任务每日零点后运行
func (s *Service) Start() {
	go s.runHourly()
	go s.runDaily()
	log.Printf("Scheduler started (sweep every %dh, daily jobs at midnight UTC)", s.cfg.SweepIntervalHours)
}

// Stop 停止调度循环
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Scheduler stopped")
}

func (s *Service) runHourly() {
	interval := time.Duration(s.cfg.SweepIntervalHours) * time.Hour
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// 启动时先跑一轮，进程重启不漏扫
	s.runLocked(context.Background(), JobOverdueSweep, s.RunOverdueSweep)

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.runLocked(context.Background(), JobOverdueSweep, s.RunOverdueSweep)
		}
	}
}

func (s *Service) runDaily() {
	now := s.clk.Now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	timer := time.NewTimer(nextMidnight.Sub(now))

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			ctx := context.Background()
			s.runLocked(ctx, JobOverdueSweep, s.RunOverdueSweep)
			s.runLocked(ctx, JobPaymentReminders, s.RunPaymentReminders)
			s.runLocked(ctx, JobDeactivateSweep, s.RunDeactivationSweep)
			s.runLocked(ctx, JobRetentionPurge, s.RunRetentionPurge)
			timer.Reset(24 * time.Hour)
		}
	}
}

// RunJob 按名字立即执行一个任务（手动触发接口用）
func (s *Service) RunJob(ctx context.Context, name string) error {
	switch name {
	case JobOverdueSweep:
		return s.RunOverdueSweep(ctx)
	case JobPaymentReminders:
		return s.RunPaymentReminders(ctx)
	case JobDeactivateSweep:
		return s.RunDeactivationSweep(ctx)
	case JobRetentionPurge:
		return s.RunRetentionPurge(ctx)
	}
	return ErrUnknownJob
}

// runLocked 拿到 Redis 锁才执行，拿不到说明别的实例正在跑这轮
func (s *Service) runLocked(ctx context.Context, name string, job func(context.Context) error) {
	ok, err := s.locker.Acquire(ctx, name)
	if err != nil {
		log.Printf("Job %s: failed to acquire lock: %v", name, err)
		return
	}
	if !ok {
		log.Printf("Job %s: lock held by another instance, skipped", name)
		return
	}
	defer func() {
		if err := s.locker.Release(ctx, name); err != nil {
			log.Printf("Job %s: failed to release lock: %v", name, err)
		}
	}()

	if err := job(ctx); err != nil {
		log.Printf("Job %s failed: %v", name, err)
	}
}

// RunOverdueSweep 把付费日已过的 pending/paid 会员整批转为 overdue。
// 单条守卫更新完成，天然幂等。
func (s *Service) RunOverdueSweep(ctx context.Context) error {
	today := clock.Today(s.clk)
	marked, err := s.clientRepo.MarkOverdue(today)
	if err != nil {
		return err
	}
	if marked > 0 {
		log.Printf("Overdue sweep: %d clients marked overdue", marked)
	}
	return nil
}

// RunPaymentReminders 发送两类付费提醒短信：
// 逾期超过宽限期的会员收催缴，恰好在提前期当日到期的 pending 会员收到期提醒。
// 逐人发送互相隔离，单人失败只记审计不中断。
func (s *Service) RunPaymentReminders(ctx context.Context) error {
	today := clock.Today(s.clk)

	overdueCutoff := today.AddDate(0, 0, -s.cfg.OverdueGraceDays)
	overdue, err := s.clientRepo.ListReminderOverdue(overdueCutoff)
	if err != nil {
		return err
	}
	for _, c := range overdue {
		if _, err := s.notifier.Send(ctx, c, sms.OverdueMessage(c.FirstName, *c.NextPaymentDate)); err != nil {
			log.Printf("Overdue reminder to client %d failed: %v", c.ID, err)
		}
	}

	dueDate := today.AddDate(0, 0, s.cfg.UpcomingDueDays)
	upcoming, err := s.clientRepo.ListReminderUpcoming(dueDate)
	if err != nil {
		return err
	}
	for _, c := range upcoming {
		if _, err := s.notifier.Send(ctx, c, sms.UpcomingDueMessage(c.FirstName, *c.NextPaymentDate)); err != nil {
			log.Printf("Upcoming reminder to client %d failed: %v", c.ID, err)
		}
	}

	log.Printf("Payment reminders: %d overdue, %d upcoming", len(overdue), len(upcoming))
	return nil
}

// RunDeactivationSweep 停用逾期超过阈值的会员并发送停用通知。
// 逐个守卫停用：并发续费先提交则该会员本轮不命中，也不发通知。
func (s *Service) RunDeactivationSweep(ctx context.Context) error {
	today := clock.Today(s.clk)
	cutoff := today.AddDate(0, 0, -s.cfg.DeactivateDays)

	candidates, err := s.clientRepo.ListDeactivatable(cutoff)
	if err != nil {
		return err
	}

	deactivated := 0
	for _, c := range candidates {
		ok, err := s.clientRepo.Deactivate(c.ID)
		if err != nil {
			log.Printf("Deactivation of client %d failed: %v", c.ID, err)
			continue
		}
		if !ok {
			continue
		}
		deactivated++
		if _, err := s.notifier.Send(ctx, c, sms.DeactivatedMessage(c.FirstName)); err != nil {
			log.Printf("Deactivation notice to client %d failed: %v", c.ID, err)
		}
	}

	if deactivated > 0 {
		log.Printf("Deactivation sweep: %d clients deactivated", deactivated)
	}
	return nil
}

// RunRetentionPurge 彻底删除回收站中超过保留期的会员（含预约与短信记录）
func (s *Service) RunRetentionPurge(ctx context.Context) error {
	cutoff := s.clk.Now().AddDate(0, 0, -s.cfg.PurgeRetentionDays)
	purgeable, err := s.clientRepo.ListPurgeable(cutoff)
	if err != nil {
		return err
	}

	purged := 0
	for _, c := range purgeable {
		if err := s.clientRepo.HardDelete(c.ID); err != nil {
			log.Printf("Purge of client %d failed: %v", c.ID, err)
			continue
		}
		purged++
	}

	if purged > 0 {
		log.Printf("Retention purge: %d clients permanently deleted", purged)
	}
	return nil
}
