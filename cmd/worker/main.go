package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qs3c/gym_go_server/config"
	"github.com/qs3c/gym_go_server/internal/database"
	"github.com/qs3c/gym_go_server/internal/pkg/clock"
	"github.com/qs3c/gym_go_server/internal/pkg/joblock"
	"github.com/qs3c/gym_go_server/internal/pkg/sms"
	"github.com/qs3c/gym_go_server/internal/repository"
	"github.com/qs3c/gym_go_server/internal/scheduler"
	"github.com/qs3c/gym_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	clk := clock.Real{}
	sender := sms.NewTwilioSender(&cfg.Twilio)

	clientRepo := repository.NewClientRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	notificationService := service.NewNotificationService(notificationRepo, clientRepo, sender)

	locker := joblock.NewLocker(rdb, cfg.Scheduler.LockPrefix, time.Duration(cfg.Scheduler.LockTTLSeconds)*time.Second)
	schedulerService := scheduler.NewService(clientRepo, notificationService, locker, &cfg.Scheduler, clk)
	schedulerService.Start()

	log.Println("Worker started")

	// 监听退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Received shutdown signal")
	schedulerService.Stop()
}
