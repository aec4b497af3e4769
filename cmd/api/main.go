// @title Studion API
// @version 1.0
// @description Turns uploaded documents into summaries and quizzes, and scores quiz attempts.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey UserID
// @in header
// @name X-User-ID
// @description Caller identity set by the gateway.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "studion/cmd/api/docs"
	"studion/internal/adapter"
	"studion/internal/adapter/llm"
	"studion/internal/cache"
	"studion/internal/config"
	"studion/internal/database"
	"studion/internal/domain"
	"studion/internal/extractor"
	"studion/internal/handler"
	"studion/internal/logger"
	"studion/internal/middleware"
	"studion/internal/parser"
	"studion/internal/repository"
	"studion/internal/service"
	"studion/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// Connect to database
	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN(), database.DefaultPoolConfig, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if os.Getenv("AUTO_MIGRATE") == "true" {
		migrations, err := database.LoadMigrations()
		if err != nil {
			appLogger.Fatal("Failed to load migrations", zap.Error(err))
		}
		if _, err := database.NewMigrator(db, migrations, appLogger).Up(ctx); err != nil {
			appLogger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Redis is optional: without it quizzes are read straight from the database
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, quiz cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("RedisCacheAdapter initialized")
	}

	// Completion client
	ai, aiCloser, err := llm.NewFromConfig(ctx, cfg.LLM, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	defer aiCloser.Close()
	appLogger.Info("LLM client initialized", zap.String("provider", cfg.LLM.Provider), zap.String("model", cfg.LLM.Model))

	// Initialize repositories
	documentRepository := repository.NewDocumentRepository(db)
	quizRepository := repository.NewQuizRepository(db)
	attemptRepository := repository.NewQuizAttemptRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db, appLogger)

	// Initialize services
	quizCache := service.NewQuizCache(cacheAdapter, quizRepository, cfg.Attempt.QuizCacheTTL, appLogger)
	documentService := service.NewDocumentService(service.DocumentServiceDeps{
		Documents: documentRepository,
		Quizzes:   quizRepository,
		Tx:        txManager,
		Extractor: extractor.NewPlainTextExtractor(cfg.Storage.Root),
		AI:        ai,
		Parser:    parser.New(appLogger),
		Config:    cfg,
		Logger:    appLogger,
	})
	quizService := service.NewQuizService(documentRepository, quizRepository, quizCache, appLogger)
	attemptService := service.NewAttemptService(attemptRepository, quizRepository, quizCache, txManager, cfg.Attempt, appLogger)

	// Initialize handlers
	validator := validation.NewValidator()
	checks := map[string]handler.HealthCheck{"database": db.PingContext}
	if cacheAdapter != nil {
		checks["cache"] = cacheAdapter.Ping
	}
	handlers := handler.Handlers{
		Documents: handler.NewDocumentHandler(documentService, quizService, validator),
		Quizzes:   handler.NewQuizHandler(quizService, validator),
		Attempts:  handler.NewAttemptHandler(attemptService, validator),
		Health:    handler.NewHealthHandler(checks),
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger(appLogger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-User-ID,X-Request-ID",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	handler.RegisterRoutes(app.Group("/api"), handlers)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
