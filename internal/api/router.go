package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/gym_go_server/config"
	"github.com/qs3c/gym_go_server/internal/api/handler"
	"github.com/qs3c/gym_go_server/internal/api/middleware"
)

type Router struct {
	authHandler         *handler.AuthHandler
	clientHandler       *handler.ClientHandler
	classHandler        *handler.ClassHandler
	bookingHandler      *handler.BookingHandler
	instructorHandler   *handler.InstructorHandler
	locationHandler     *handler.LocationHandler
	notificationHandler *handler.NotificationHandler
	dashboardHandler    *handler.DashboardHandler
	jobsHandler         *handler.JobsHandler
	cfg                 *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	clientHandler *handler.ClientHandler,
	classHandler *handler.ClassHandler,
	bookingHandler *handler.BookingHandler,
	instructorHandler *handler.InstructorHandler,
	locationHandler *handler.LocationHandler,
	notificationHandler *handler.NotificationHandler,
	dashboardHandler *handler.DashboardHandler,
	jobsHandler *handler.JobsHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:         authHandler,
		clientHandler:       clientHandler,
		classHandler:        classHandler,
		bookingHandler:      bookingHandler,
		instructorHandler:   instructorHandler,
		locationHandler:     locationHandler,
		notificationHandler: notificationHandler,
		dashboardHandler:    dashboardHandler,
		jobsHandler:         jobsHandler,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		// 公开接口 - 运营商短信回调
		api.POST("/notifications/delivery-callback", r.notificationHandler.DeliveryCallback)

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			authenticated.GET("/auth/me", r.authHandler.Me)
			authenticated.GET("/dashboard", r.dashboardHandler.Stats)

			// 会员
			clients := authenticated.Group("/clients")
			{
				clients.POST("", r.clientHandler.Create)
				clients.GET("", r.clientHandler.List)
				clients.GET("/deleted", r.clientHandler.ListDeleted)
				clients.GET("/:id", r.clientHandler.Get)
				clients.PUT("/:id", r.clientHandler.Update)
				clients.DELETE("/:id", r.clientHandler.Delete)
				clients.DELETE("/:id/purge", r.clientHandler.HardDelete)
				clients.POST("/:id/restore", r.clientHandler.Restore)
				clients.POST("/:id/renew", r.clientHandler.Renew)
				clients.POST("/:id/sms", r.clientHandler.SendSMS)
			}

			// 教练
			instructors := authenticated.Group("/instructors")
			{
				instructors.POST("", r.instructorHandler.Create)
				instructors.GET("", r.instructorHandler.List)
				instructors.GET("/:id", r.instructorHandler.Get)
				instructors.PUT("/:id", r.instructorHandler.Update)
				instructors.DELETE("/:id", r.instructorHandler.Delete)
				instructors.POST("/:id/photo", r.instructorHandler.UploadPhoto)
			}

			// 场地
			locations := authenticated.Group("/locations")
			{
				locations.POST("", r.locationHandler.Create)
				locations.GET("", r.locationHandler.List)
				locations.GET("/:id", r.locationHandler.Get)
				locations.PUT("/:id", r.locationHandler.Update)
				locations.DELETE("/:id", r.locationHandler.Delete)
			}

			// 课程
			classes := authenticated.Group("/classes")
			{
				classes.POST("", r.classHandler.Create)
				classes.GET("", r.classHandler.List)
				classes.GET("/:id", r.classHandler.Get)
				classes.PUT("/:id", r.classHandler.Update)
				classes.DELETE("/:id", r.classHandler.Delete)
				classes.POST("/:id/cancel", r.classHandler.Cancel)
				classes.POST("/:id/bookings", r.bookingHandler.Create)
			}

			// 预约
			bookings := authenticated.Group("/bookings")
			{
				bookings.GET("", r.bookingHandler.List)
				bookings.GET("/:id", r.bookingHandler.Get)
				bookings.POST("/:id/cancel", r.bookingHandler.Cancel)
				bookings.POST("/:id/attend", r.bookingHandler.Attend)
				bookings.POST("/:id/no-show", r.bookingHandler.NoShow)
			}

			// 短信
			notifications := authenticated.Group("/notifications")
			{
				notifications.GET("", r.notificationHandler.List)
				notifications.POST("/bulk", r.notificationHandler.SendBulk)
			}

			// 手动触发会费生命周期任务
			authenticated.POST("/jobs/:name/run", r.jobsHandler.Run)
		}
	}

	// 健康检查
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return engine
}
