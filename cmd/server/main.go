package main

import (
	"fmt"
	"log"
	"time"

	"github.com/qs3c/gym_go_server/config"
	"github.com/qs3c/gym_go_server/internal/api"
	"github.com/qs3c/gym_go_server/internal/api/handler"
	"github.com/qs3c/gym_go_server/internal/database"
	"github.com/qs3c/gym_go_server/internal/pkg/clock"
	"github.com/qs3c/gym_go_server/internal/pkg/joblock"
	"github.com/qs3c/gym_go_server/internal/pkg/oss"
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

	// 初始化 OSS（可选）
	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" && cfg.OSS.AccessKeyID != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Printf("Warning: Failed to init OSS client: %v", err)
		} else {
			log.Println("OSS client initialized")
		}
	}

	clk := clock.Real{}
	sender := sms.NewTwilioSender(&cfg.Twilio)

	// 初始化 Repository
	staffRepo := repository.NewStaffRepository(db)
	clientRepo := repository.NewClientRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	classRepo := repository.NewClassRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// 初始化 Service
	authService := service.NewAuthService(staffRepo, cfg)
	clientService := service.NewClientService(clientRepo, clk)
	notificationService := service.NewNotificationService(notificationRepo, clientRepo, sender)
	classService := service.NewClassService(classRepo, bookingRepo, clientRepo, instructorRepo, locationRepo, notificationService, clk)
	bookingService := service.NewBookingService(bookingRepo, classRepo, clientRepo, clk)
	instructorService := service.NewInstructorService(instructorRepo, classRepo, ossClient)
	locationService := service.NewLocationService(locationRepo, classRepo)
	dashboardService := service.NewDashboardService(clientRepo, classRepo, bookingRepo, instructorRepo, locationRepo, clk)

	// 初始化调度器（可内嵌运行，也可用独立 worker 进程）
	locker := joblock.NewLocker(rdb, cfg.Scheduler.LockPrefix, time.Duration(cfg.Scheduler.LockTTLSeconds)*time.Second)
	schedulerService := scheduler.NewService(clientRepo, notificationService, locker, &cfg.Scheduler, clk)
	if cfg.Scheduler.Enabled {
		schedulerService.Start()
		defer schedulerService.Stop()
	}

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService, notificationService)
	classHandler := handler.NewClassHandler(classService)
	bookingHandler := handler.NewBookingHandler(bookingService, clk, cfg.Booking.ListRangeDays)
	instructorHandler := handler.NewInstructorHandler(instructorService)
	locationHandler := handler.NewLocationHandler(locationService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	jobsHandler := handler.NewJobsHandler(schedulerService)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		clientHandler,
		classHandler,
		bookingHandler,
		instructorHandler,
		locationHandler,
		notificationHandler,
		dashboardHandler,
		jobsHandler,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
