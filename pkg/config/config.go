package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Storage    StorageConfig
	Speech     SpeechConfig
	Extraction ExtractionConfig
	Jira       JiraConfig
	Telemetry  TelemetryConfig
	Worker     WorkerConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"scrumscribe"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// StorageConfig holds MinIO object storage configuration
type StorageConfig struct {
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"scrumscribe-recordings"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL       string `envconfig:"STORAGE_PUBLIC_URL" default:""`
}

// SpeechConfig holds AssemblyAI transcription configuration
type SpeechConfig struct {
	APIKey       string `envconfig:"ASSEMBLYAI_API_KEY" default:""`
	LanguageHint string `envconfig:"SPEECH_LANGUAGE" default:"en"`
}

// ExtractionConfig holds Groq task-extraction configuration
type ExtractionConfig struct {
	APIKey  string `envconfig:"GROQ_API_KEY" default:""`
	BaseURL string `envconfig:"GROQ_API_URL" default:"https://api.groq.com"`
	Model   string `envconfig:"GROQ_EXTRACTION_MODEL" default:"llama-3.1-70b-versatile"`
}

// JiraConfig holds issue tracker configuration
type JiraConfig struct {
	BaseURL          string `envconfig:"JIRA_BASE_URL" default:""`
	Email            string `envconfig:"JIRA_EMAIL" default:""`
	APIToken         string `envconfig:"JIRA_API_TOKEN" default:""`
	ProjectKey       string `envconfig:"JIRA_PROJECT_KEY" default:""`
	StoryPointsField string `envconfig:"JIRA_STORY_POINTS_FIELD" default:""`
}

// TelemetryConfig holds the run-telemetry sink configuration.
// Empty URL disables the sink; LogRun becomes a no-op.
type TelemetryConfig struct {
	URL string `envconfig:"TELEMETRY_URL" default:""`
}

// WorkerConfig holds ingestion worker configuration
type WorkerConfig struct {
	QueueDriver string `envconfig:"QUEUE_DRIVER" default:"memory"` // "memory" or "redis"
	QueueName   string `envconfig:"QUEUE_NAME" default:"meeting-imports"`
	Count       int    `envconfig:"WORKER_COUNT" default:"2"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Worker.QueueDriver {
	case "memory", "redis":
	default:
		return fmt.Errorf("QUEUE_DRIVER must be \"memory\" or \"redis\", got %q", c.Worker.QueueDriver)
	}
	if c.Jira.BaseURL != "" {
		if c.Jira.Email == "" || c.Jira.APIToken == "" || c.Jira.ProjectKey == "" {
			return fmt.Errorf("JIRA_EMAIL, JIRA_API_TOKEN and JIRA_PROJECT_KEY are required when JIRA_BASE_URL is set")
		}
	}
	return nil
}

// JiraEnabled reports whether the tracker client is configured
func (c *Config) JiraEnabled() bool {
	return c.Jira.BaseURL != ""
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
