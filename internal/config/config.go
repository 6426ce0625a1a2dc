package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	NATS        NATSConfig
	Reddit      RedditConfig
	YouTube     YouTubeConfig
	Twitter     TwitterConfig
	OpenAI      OpenAIConfig
	Analysis    AnalysisConfig
	Ingest      IngestConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// URL renders the pgx connection string.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
	)
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// RedditConfig holds reddit ingestion configuration
type RedditConfig struct {
	UserAgent  string
	Timeout    time.Duration
	Subreddits []string
}

// YouTubeConfig holds youtube ingestion configuration
type YouTubeConfig struct {
	APIKey     string
	RegionCode string
	Timeout    time.Duration
}

// TwitterConfig holds twitter ingestion configuration
type TwitterConfig struct {
	BearerToken string
	Timeout     time.Duration
}

// OpenAIConfig holds content generation configuration
type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// AnalysisConfig holds pattern analysis configuration
type AnalysisConfig struct {
	ViralThreshold   float64
	ReportWindowDays int
}

// IngestConfig holds the scheduled ingestion configuration
type IngestConfig struct {
	Interval   time.Duration
	FetchLimit int
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Database: getEnv("DB_NAME", "signalscout"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", "nats://localhost:4222"),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
		Reddit: RedditConfig{
			UserAgent:  getEnv("REDDIT_USER_AGENT", "signalscout/1.0"),
			Timeout:    getEnvAsDuration("REDDIT_TIMEOUT", 15*time.Second),
			Subreddits: getEnvAsSlice("REDDIT_SUBREDDITS", []string{"popular"}),
		},
		YouTube: YouTubeConfig{
			APIKey:     getEnv("YOUTUBE_API_KEY", ""),
			RegionCode: getEnv("YOUTUBE_REGION_CODE", "US"),
			Timeout:    getEnvAsDuration("YOUTUBE_TIMEOUT", 15*time.Second),
		},
		Twitter: TwitterConfig{
			BearerToken: getEnv("TWITTER_BEARER_TOKEN", ""),
			Timeout:     getEnvAsDuration("TWITTER_TIMEOUT", 15*time.Second),
		},
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Temperature: getEnvAsFloat("OPENAI_TEMPERATURE", 0.8),
			MaxTokens:   getEnvAsInt("OPENAI_MAX_TOKENS", 1000),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 60*time.Second),
		},
		Analysis: AnalysisConfig{
			ViralThreshold:   getEnvAsFloat("ANALYSIS_VIRAL_THRESHOLD", 70.0),
			ReportWindowDays: getEnvAsInt("ANALYSIS_REPORT_WINDOW_DAYS", 7),
		},
		Ingest: IngestConfig{
			Interval:   getEnvAsDuration("INGEST_INTERVAL", 30*time.Minute),
			FetchLimit: getEnvAsInt("INGEST_FETCH_LIMIT", 25),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Analysis.ViralThreshold < 0 || config.Analysis.ViralThreshold > 100 {
		return fmt.Errorf("viral threshold must be between 0 and 100")
	}
	if config.Ingest.FetchLimit <= 0 {
		return fmt.Errorf("ingest fetch limit must be positive")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
