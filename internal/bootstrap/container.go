package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/config"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/controller"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/handler"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/pkg/logger"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/pkg/mailer"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/implementation"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/repository/unitofwork"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/service"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/websocket"
	"github.com/Aravind210193/E-Shikshan-sub002/pkg/admin/dashboard"
	adminEnrollment "github.com/Aravind210193/E-Shikshan-sub002/pkg/admin/enrollment"
	adminEvents "github.com/Aravind210193/E-Shikshan-sub002/pkg/admin/events"
	"github.com/Aravind210193/E-Shikshan-sub002/pkg/cache"

	pktNats "github.com/Aravind210193/E-Shikshan-sub002/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	CourseController     controller.ICourseController
	EnrollmentController controller.IEnrollmentController
	AdminController      controller.IAdminController

	// Background Services (Exposed for main.go to run)
	AuditConsumerService service.IAuditConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus (in-process, carries entitlement transitions to the audit writer)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	courseCache := cache.NewCourseCache(rdb, time.Duration(cfg.App.CatalogCacheTTL)*time.Second)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	publisherService := service.NewPublisherService(cfg.Keys.AuditTopic, pubSub)
	auditConsumerService := service.NewAuditConsumerService(
		pubSub,
		cfg.Keys.AuditTopic,
		uowFactory,
	)

	// 3. Services
	adminEventPublisher := adminEvents.NewNatsPublisher(natsPub, sysLogger)

	enrollmentService := service.NewEnrollmentService(
		uowFactory,
		publisherService,
		adminEventPublisher,
		cfg.Payment.UpiId,
		cfg.Payment.PayeeName,
	)
	verificationService := service.NewVerificationService(
		uowFactory,
		publisherService,
		adminEventPublisher,
		sysLogger,
	)
	catalogService := service.NewCatalogService(uowFactory, courseCache)

	// Admin Domain Components
	enrollmentManager := adminEnrollment.NewManager(sysLogger)
	dashboardAggregator := dashboard.NewAggregator(sysLogger)

	adminService := service.NewAdminService(
		uowFactory,
		enrollmentManager,
		dashboardAggregator,
		adminEventPublisher,
		publisherService,
		courseCache,
		sysLogger,
	)

	// 3.5 Notification System Infrastructure
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, emailService, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	// Handler
	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 4. Controllers
	// Note: We return the container with public fields for the server to register
	return &Container{
		NotificationHandler:  notifHandler,
		WebSocketHub:         wsHub,
		CourseController:     controller.NewCourseController(catalogService),
		EnrollmentController: controller.NewEnrollmentController(enrollmentService, verificationService),
		AdminController:      controller.NewAdminController(adminService, sysLogger),

		AuditConsumerService: auditConsumerService,
	}
}
