package bootstrap

import (
	"context"
	"log"

	"neurax-chat-be/internal/config"
	"neurax-chat-be/internal/controller"
	"neurax-chat-be/internal/mapper"
	"neurax-chat-be/internal/pkg/logger"
	"neurax-chat-be/internal/repository/contract"
	"neurax-chat-be/internal/repository/implementation"
	"neurax-chat-be/internal/repository/memory"
	"neurax-chat-be/internal/service"
	"neurax-chat-be/internal/websocket"
	"neurax-chat-be/pkg/database"
	"neurax-chat-be/pkg/llm/factory"

	pktNats "neurax-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	SettingsController controller.ISettingsController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Document store: postgres when a DSN is configured, JSON files otherwise.
	var store contract.DocumentStore
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Fatalf("[FATAL] Failed to connect to database: %v", err)
		}
		store, err = implementation.NewGormDocumentStore(db)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize document store: %v", err)
		}
		log.Printf("[INFO] Using Document Store: POSTGRES")
	} else {
		var err error
		store, err = implementation.NewFileDocumentStore(cfg.App.DataDir)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize document store: %v", err)
		}
		log.Printf("[INFO] Using Document Store: FILES (%s)", cfg.App.DataDir)
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS (optional)
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	// Redis (optional)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Repositories
	chatMapper := mapper.NewChatMapper()
	conversationRepo := memory.NewConversationRepository(store, chatMapper)
	if err := conversationRepo.Load(context.Background()); err != nil {
		log.Printf("[WARN] Failed to load conversations: %v", err)
	}
	presenceRepo := memory.NewPresenceRepository()

	// 4. Services
	presenceService := service.NewPresenceService(presenceRepo)

	settingsService := service.NewSettingsService(store, chatMapper, presenceService, sysLogger)
	if err := settingsService.Load(context.Background()); err != nil {
		log.Printf("[WARN] Failed to load settings: %v", err)
	}

	publisherService := service.NewPublisherService(pubSub, cfg.Keys.TurnTopic, natsPub, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.TurnTopic, wsHub, sysLogger)

	chatService := service.NewChatService(
		conversationRepo,
		settingsService,
		presenceService,
		publisherService,
		sysLogger,
		cfg.Keys.GoogleGemini,
		factory.NewChatProvider,
	)

	// 5. Controllers
	return &Container{
		ChatController:     controller.NewChatController(chatService),
		SettingsController: controller.NewSettingsController(settingsService),
		ConsumerService:    consumerService,
		WebSocketHub:       wsHub,
	}
}
