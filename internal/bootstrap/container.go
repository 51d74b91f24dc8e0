package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"

	"machinity-be/internal/config"
	"machinity-be/internal/controller"
	"machinity-be/internal/pkg/logger"
	"machinity-be/internal/repository/contract"
	"machinity-be/internal/repository/implementation"
	"machinity-be/internal/repository/jsonfile"
	"machinity-be/internal/service"
	"machinity-be/pkg/audit"
	"machinity-be/pkg/collation"
	"machinity-be/pkg/database"
	"machinity-be/pkg/llm/factory"
)

type Container struct {
	// Controllers
	ProductController controller.IProductController
	AIController      controller.IAIController

	// Background (exposed for main.go to run)
	AuditWriter *audit.JSONLWriter

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	comparator := collation.NewTurkish()

	// 2. Product store (selected by config)
	var productRepo contract.IProductRepository
	if cfg.Store.Backend == "postgres" {
		gormDB, err := database.NewGormDBFromDSN(cfg.Store.Connection)
		if err != nil {
			log.Fatalf("[FATAL] Unable to connect to GORM DB: %v", err)
		}
		productRepo = implementation.NewProductRepository(gormDB)
		log.Println("[INFO] Using product store: POSTGRES")
	} else {
		productRepo = jsonfile.NewProductRepository(cfg.Store.ProductsFile, 30*time.Second)
		log.Printf("[INFO] Using product store: JSON file (%s)", cfg.Store.ProductsFile)
	}

	// 3. Event bus + audit trail
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	auditWriter := audit.NewJSONLWriter(pubSub, cfg.Ai.AuditLogDir)

	// 4. LLM provider, wrapped so every invocation lands in the audit trail
	llmProvider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, factory.Settings{
		ModelName:         cfg.Ai.LLMModel,
		OpenRouterBaseURL: cfg.Ai.OpenRouterBaseURL,
		OpenRouterAPIKey:  cfg.Ai.OpenRouterAPIKey,
		Referer:           cfg.App.BaseURL,
		Title:             "Machinity",
		OllamaBaseURL:     cfg.Ai.OllamaBaseURL,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	auditedProvider := audit.NewProvider(llmProvider, pubSub)

	// 5. Redis (optional; NL filter caching degrades gracefully without it)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. NL filter caching disabled", err)
			rdb = nil
		}
	}

	// 6. Services
	catalogService := service.NewCatalogService(productRepo, comparator.Compare, sysLogger)
	filterService := service.NewAIFilterService(productRepo, auditedProvider, comparator.Compare, rdb, sysLogger)
	summaryService := service.NewAISummaryService(productRepo, auditedProvider, sysLogger)

	// 7. Controllers
	return &Container{
		ProductController: controller.NewProductController(catalogService),
		AIController:      controller.NewAIController(filterService, summaryService),
		AuditWriter:       auditWriter,
		Logger:            sysLogger,
	}
}
