package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/scrumscribe-team/scrumscribe/internal/adapter/handler"
	"github.com/scrumscribe-team/scrumscribe/internal/adapter/repository"
	"github.com/scrumscribe-team/scrumscribe/internal/infrastructure/database"
	"github.com/scrumscribe-team/scrumscribe/internal/infrastructure/queue"
	"github.com/scrumscribe-team/scrumscribe/internal/infrastructure/storage"
	"github.com/scrumscribe-team/scrumscribe/internal/infrastructure/telemetry"
	"github.com/scrumscribe-team/scrumscribe/internal/usecase/ingest"
	"github.com/scrumscribe-team/scrumscribe/internal/usecase/meeting"
	"github.com/scrumscribe-team/scrumscribe/internal/usecase/push"
	"github.com/scrumscribe-team/scrumscribe/internal/usecase/review"
	pkgai "github.com/scrumscribe-team/scrumscribe/pkg/ai"
	"github.com/scrumscribe-team/scrumscribe/pkg/config"
	"github.com/scrumscribe-team/scrumscribe/pkg/jira"
	pkgvalidator "github.com/scrumscribe-team/scrumscribe/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize object storage
	log.Println("📦 Connecting to MinIO...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	// Initialize the job queue
	log.Printf("📬 Initializing job queue (driver: %s)...", cfg.Worker.QueueDriver)
	var jobQueue queue.Queue
	switch cfg.Worker.QueueDriver {
	case "redis":
		jobQueue, err = queue.NewRedisQueue(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis queue: %v", err)
		}
	default:
		jobQueue = queue.NewMemoryQueue()
	}
	defer jobQueue.Close()

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize AI clients
	log.Println("🤖 Initializing AI components...")
	speechClient := pkgai.NewSpeechClient(&cfg.Speech)
	var extractor ingest.Extractor
	if cfg.Extraction.APIKey != "" {
		extractor = pkgai.NewGroqClient(&cfg.Extraction)
	} else {
		log.Println("⚠️  GROQ_API_KEY not set, using the deterministic stub extractor")
		extractor = ingest.NewStubExtractor()
	}
	telemetryClient := telemetry.NewClient(cfg.Telemetry.URL, logger)

	// Initialize ingestion service
	log.Println("🎙️  Initializing ingestion service...")
	ingestService := ingest.NewService(meetingRepo, userRepo, minioClient, speechClient, extractor, telemetryClient, jobQueue, logger)

	// The memory driver has no external worker process; run the pool here.
	if cfg.Worker.QueueDriver == "memory" {
		ingestService.StartWorkerPool(cfg.Worker.Count)
		defer ingestService.StopWorkerPool()
	}

	// Initialize tracker client and push service. Without Jira config the
	// approve endpoint reports the tracker as unavailable instead of pushing.
	var tracker push.Tracker
	if cfg.JiraEnabled() {
		log.Println("🎯 Initializing Jira client...")
		tracker = jira.NewClient(&cfg.Jira)
	} else {
		log.Println("⚠️  Jira is not configured; approved tasks cannot be pushed")
	}
	pushService := push.NewService(taskRepo, userRepo, tracker, logger)

	// Initialize services and handlers
	log.Println("🚀 Initializing handlers...")
	meetingService := meeting.NewService(meetingRepo, taskRepo, jobQueue, logger)
	reviewService := review.NewService(taskRepo, pushService, logger)

	meetingHandler := handler.NewMeeting(meetingService, minioClient, logger)
	taskHandler := handler.NewTask(reviewService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, meetingHandler, taskHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
