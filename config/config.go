package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Storage backends
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	Port             string
	StoreBackend     string
	PGURL            string
	SQLitePath       string
	DataDir          string
	DocumentKey      string
	MaxUploadBytes   int64
	// CacheTTL bounds how long GET /api/data may serve a Document that was
	// replaced by another process sharing the store. Uploads always merge
	// into the stored copy.
	CacheTTL         time.Duration
	UploadRatePerMin int
	LogLevel         log.Level
}

// Load reads configuration from a .env file (if present) and environment
// variables. Variables already set in the shell take precedence over .env.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		StoreBackend: getEnv("STORE_BACKEND", BackendFile),
		PGURL:        os.Getenv("PG_URL"),
		SQLitePath:   getEnv("SQLITE_PATH", "dashboard.db"),
		DataDir:      getEnv("DATA_DIR", "data"),
		DocumentKey:  getEnv("DOCUMENT_KEY", "data.json"),
	}

	switch cfg.StoreBackend {
	case BackendFile, BackendSQLite:
	case BackendPostgres:
		if cfg.PGURL == "" {
			return nil, fmt.Errorf("PG_URL environment variable is required for the %s backend", BackendPostgres)
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	maxUpload, err := strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", "10485760"), 10, 64)
	if err != nil || maxUpload <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be a positive integer")
	}
	cfg.MaxUploadBytes = maxUpload

	ttl, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil || ttl < 0 {
		return nil, fmt.Errorf("CACHE_TTL must be a non-negative duration")
	}
	cfg.CacheTTL = ttl

	rate, err := strconv.Atoi(getEnv("UPLOAD_RATE_PER_MIN", "30"))
	if err != nil || rate <= 0 {
		return nil, fmt.Errorf("UPLOAD_RATE_PER_MIN must be a positive integer")
	}
	cfg.UploadRatePerMin = rate

	level, err := log.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
