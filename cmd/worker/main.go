package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/scrumscribe-team/scrumscribe/internal/adapter/repository"
	"github.com/scrumscribe-team/scrumscribe/internal/infrastructure/database"
	"github.com/scrumscribe-team/scrumscribe/internal/infrastructure/queue"
	"github.com/scrumscribe-team/scrumscribe/internal/infrastructure/storage"
	"github.com/scrumscribe-team/scrumscribe/internal/infrastructure/telemetry"
	"github.com/scrumscribe-team/scrumscribe/internal/usecase/ingest"
	pkgai "github.com/scrumscribe-team/scrumscribe/pkg/ai"
	"github.com/scrumscribe-team/scrumscribe/pkg/config"
)

// The worker binary consumes the Redis job queue. It exists for
// deployments that split the API from ingestion; with QUEUE_DRIVER=memory
// the API process runs the pool itself and this binary is not needed.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Worker.QueueDriver != "redis" {
		log.Fatalf("The worker binary requires QUEUE_DRIVER=redis (got %q); the memory driver runs workers inside the API process", cfg.Worker.QueueDriver)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("📦 Connecting to MinIO...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	log.Println("📬 Connecting to Redis queue...")
	jobQueue, err := queue.NewRedisQueue(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis queue: %v", err)
	}
	defer jobQueue.Close()

	meetingRepo := repository.NewMeetingRepository(db)
	userRepo := repository.NewUserRepository(db)

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

	ingestService := ingest.NewService(meetingRepo, userRepo, minioClient, speechClient, extractor, telemetryClient, jobQueue, logger)
	ingestService.StartWorkerPool(cfg.Worker.Count)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down worker...")
	ingestService.StopWorkerPool()
	log.Println("✅ Worker stopped gracefully")
}
