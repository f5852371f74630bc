package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:barmentor.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 0.1, cfg.DefaultEpsilon)
	assert.Equal(t, 5.0, cfg.TargetMinutes)
	assert.Equal(t, 24, cfg.WinbackIntervalHours)
	assert.Equal(t, 200, cfg.WinbackBatchSize)
	assert.Equal(t, 2, cfg.JobWorkerCount)
	assert.Equal(t, 32, cfg.JobQueueSize)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("BANDIT_EPSILON", "0.25")
	t.Setenv("WINBACK_BATCH_SIZE", "10")

	cfg := Load()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 0.25, cfg.DefaultEpsilon)
	assert.Equal(t, 10, cfg.WinbackBatchSize)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("BANDIT_EPSILON", "not-a-number")
	t.Setenv("WINBACK_INTERVAL_HOURS", "soon")

	cfg := Load()

	assert.Equal(t, 0.1, cfg.DefaultEpsilon)
	assert.Equal(t, 24, cfg.WinbackIntervalHours)
}
