// @title Quiz Progression API
// @version 1.0
// @description Adaptive assessment and weekly progression for online courses.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "quiz-progression/cmd/api/docs"
	"quiz-progression/internal/adapter"
	"quiz-progression/internal/adapter/quizgen"
	"quiz-progression/internal/cache"
	"quiz-progression/internal/config"
	"quiz-progression/internal/curriculum"
	"quiz-progression/internal/database"
	"quiz-progression/internal/domain"
	"quiz-progression/internal/handler"
	"quiz-progression/internal/logger"
	"quiz-progression/internal/middleware"
	"quiz-progression/internal/repository"
	"quiz-progression/internal/service"
	"quiz-progression/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis is optional: without it Main quizzes are served from the database only.
	var quizCache domain.Cache
	healthChecks := map[string]handler.HealthCheck{
		"database": db.PingContext,
		"redis":    nil,
	}
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		quizCache = adapter.NewRedisCacheAdapter(redisClient)
		healthChecks["redis"] = quizCache.Ping
		appLogger.Info("Successfully connected to Redis")
	}

	model, err := quizgen.NewModel(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	generator, err := quizgen.NewLLMQuizGenerator(model, cfg.LLM.GenerationTimeout)
	if err != nil {
		appLogger.Fatal("Failed to create quiz generator", zap.Error(err))
	}

	courses, err := curriculum.NewLoader(cfg.Curriculum.Dir)
	if err != nil {
		appLogger.Fatal("Failed to load curriculum", zap.Error(err))
	}

	// Repositories
	definitionRepo := repository.NewQuizDefinitionRepository(db)
	attemptRepo := repository.NewQuizAttemptRepository(db)
	pretestRepo := repository.NewPretestRepository(db)
	pretestAttemptRepo := repository.NewPretestAttemptRepository(db)
	settingsRepo := repository.NewCourseSettingsRepository(db)

	// Services
	pretestService := service.NewPretestService(pretestRepo, pretestAttemptRepo, settingsRepo, courses, cfg.Assessment)
	progressionService := service.NewProgressionService(attemptRepo, pretestService, courses)
	performanceService := service.NewPerformanceService(attemptRepo)
	quizCatalog := service.NewQuizCatalog(definitionRepo, attemptRepo, generator, quizCache, courses, cfg)
	quizService := service.NewQuizService(definitionRepo, attemptRepo)

	sessionCtx, cancelSessions := context.WithCancel(context.Background())
	defer cancelSessions()
	sessionManager := service.NewSessionManager(quizCatalog, quizService, cfg.Assessment.SessionIdleTimeout,
		session.WithContext[*service.SubmissionResult](sessionCtx))
	defer sessionManager.Close()

	handlers := handler.Handlers{
		Pretest: handler.NewPretestHandler(pretestService),
		Course:  handler.NewCourseHandler(progressionService, performanceService, pretestService),
		Quiz:    handler.NewQuizHandler(quizCatalog, quizService),
		Session: handler.NewSessionHandler(sessionManager),
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", handler.NewHealthHandler(healthChecks).Check)

	handler.RegisterRoutes(app.Group("/api"), middleware.NewValidationMiddleware(), handlers)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
