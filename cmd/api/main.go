package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"craftlab/careers/internal/config"
	"craftlab/careers/internal/handlers"
	"craftlab/careers/internal/logger"
	"craftlab/careers/internal/metrics"
	"craftlab/careers/internal/repositories"
	"craftlab/careers/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	defer log.Sync()
	log.Info("config loaded", zap.String("env", cfg.Server.Env))

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}

	redisClient, err := config.InitRedis(cfg)
	if err != nil {
		log.Fatal("failed to initialize redis", zap.Error(err))
	}
	defer redisClient.Close()

	profileRepo := repositories.NewCachedProfileRepository(
		repositories.NewProfileRepository(db),
		redisClient,
		cfg.Redis.ProfileTTL,
		log,
	)
	opportunityRepo := repositories.NewOpportunityRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	log.Info("repositories initialized")

	collector := metrics.New()
	matchService := services.NewMatchService(profileRepo, opportunityRepo, collector, log)
	messagingService := services.NewMessagingService(messageRepo, redisClient, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Semantic search and insight need both Gemini and Qdrant. Without a
	// key the API still serves deterministic matching.
	var (
		worker         services.Worker
		searchService  services.SearchService
		insightService services.InsightService
	)

	if cfg.Gemini.APIKey != "" {
		geminiService, err := services.NewGeminiService(ctx, cfg.Gemini, log)
		if err != nil {
			log.Fatal("failed to initialize gemini", zap.Error(err))
		}

		qdrantService, err := services.NewQdrantService(cfg.Qdrant, log)
		if err != nil {
			log.Fatal("failed to initialize qdrant", zap.Error(err))
		}
		if err := qdrantService.InitCollection(ctx); err != nil {
			log.Fatal("failed to initialize qdrant collection", zap.Error(err))
		}

		indexer := services.NewIndexerService(opportunityRepo, geminiService, qdrantService, log)
		worker = services.NewWorker(opportunityRepo, indexer, cfg.Worker.Concurrency, cfg.Worker.PollInterval, log)
		worker.Start(ctx)

		searchService = services.NewSearchService(profileRepo, opportunityRepo, geminiService, qdrantService, matchService, log)
		insightService = services.NewInsightService(profileRepo, opportunityRepo, geminiService, qdrantService, cfg.Worker.RetryMaxAttempts, log)
		log.Info("semantic search enabled", zap.String("collection", cfg.Qdrant.Collection))
	} else {
		log.Warn("GEMINI_API_KEY not set, semantic search and match insight disabled")
	}

	h := &handlers.Handlers{
		Profile:     handlers.NewProfileHandler(profileRepo, log),
		Opportunity: handlers.NewOpportunityHandler(opportunityRepo, worker, searchService, cfg.Match, log),
		Match:       handlers.NewMatchHandler(matchService, insightService, cfg.Match, log),
		Application: handlers.NewApplicationHandler(applicationRepo, opportunityRepo, matchService, log),
		Message:     handlers.NewMessageHandler(messagingService, log),
	}

	app := fiber.New(fiber.Config{
		AppName:      "Craftlab Careers API",
		ReadTimeout:  30 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	h.Register(app.Group("/api/v1"))
	app.Get("/metrics", handlers.MetricsHandler(collector.Registry))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Craftlab Careers API",
			"version": "1.0.0",
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		cancel()
		if worker != nil {
			worker.Stop()
		}
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
