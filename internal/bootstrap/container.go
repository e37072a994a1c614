package bootstrap

import (
	"context"
	"log"

	"booknest-be/internal/config"
	"booknest-be/internal/controller"
	"booknest-be/internal/handler"
	"booknest-be/internal/pkg/logger"
	"booknest-be/internal/repository/cache"
	"booknest-be/internal/repository/memory"
	"booknest-be/internal/repository/unitofwork"
	"booknest-be/internal/service"
	"booknest-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	VaultController   controller.IVaultController
	LibraryController controller.ILibraryController
	ScanController    controller.IScanController

	// Background services, run by main
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub  *websocket.Hub
	StreamHandler *handler.StreamHandler
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Offline snapshots disabled", err)
	}

	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	snapshotCache := cache.NewRedisSnapshotCache(rdb, cfg.SnapshotTTL())
	scanSessions := memory.NewScanSessionRepository()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.LibraryTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.LibraryTopic,
		uowFactory,
		wsHub,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, cfg.Auth.JwtSecret, cfg.TokenTTL(), sysLogger)
	vaultService := service.NewVaultService(uowFactory, cfg.App.ClientURL, sysLogger)
	lookupService := service.NewLookupService(service.LookupConfig{
		OpenLibraryBaseUrl: cfg.Lookup.OpenLibraryBaseURL,
		GoogleBooksBaseUrl: cfg.Lookup.GoogleBooksBaseURL,
		GoogleBooksApiKey:  cfg.Lookup.GoogleBooksAPIKey,
		Timeout:            cfg.LookupTimeout(),
	}, sysLogger)
	libraryService := service.NewLibraryService(uowFactory, vaultService, snapshotCache, publisherService, sysLogger)
	scanService := service.NewScanService(scanSessions, lookupService, libraryService, sysLogger)

	return &Container{
		AuthController:    controller.NewAuthController(authService),
		VaultController:   controller.NewVaultController(vaultService),
		LibraryController: controller.NewLibraryController(libraryService),
		ScanController:    controller.NewScanController(scanService),

		ConsumerService: consumerService,

		WebSocketHub:  wsHub,
		StreamHandler: handler.NewStreamHandler(wsHub, scanService, sysLogger),
	}
}
