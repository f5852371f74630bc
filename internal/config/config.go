package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	DBPath               string
	LogLevel             string
	SeedPath             string
	DefaultEpsilon       float64
	TargetMinutes        float64
	WinbackIntervalHours int
	WinbackBatchSize     int
	JobWorkerCount       int
	JobQueueSize         int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:barmentor.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		SeedPath:             envOr("SEED_PATH", ""),
		DefaultEpsilon:       envFloatOr("BANDIT_EPSILON", 0.1),
		TargetMinutes:        envFloatOr("TARGET_MINUTES", 5),
		WinbackIntervalHours: envIntOr("WINBACK_INTERVAL_HOURS", 24),
		WinbackBatchSize:     envIntOr("WINBACK_BATCH_SIZE", 200),
		JobWorkerCount:       envIntOr("JOB_WORKER_COUNT", 2),
		JobQueueSize:         envIntOr("JOB_QUEUE_SIZE", 32),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}
