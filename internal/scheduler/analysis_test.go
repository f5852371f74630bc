package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/barmentor/barmentor/internal/models"
	"github.com/barmentor/barmentor/internal/scheduler"
)

func attemptsWith(correct int, total int, latency time.Duration) []models.Attempt {
	attempts := make([]models.Attempt, 0, total)
	for i := 0; i < total; i++ {
		attempts = append(attempts, models.Attempt{
			Correct: i < correct,
			Latency: latency,
		})
	}
	return attempts
}

func TestAnalyzeSession(t *testing.T) {
	tests := []struct {
		name     string
		attempts []models.Attempt
		expected scheduler.Adjustment
	}{
		{name: "low accuracy suggests easier", attempts: attemptsWith(2, 10, 8*time.Second), expected: scheduler.AdjustEasier},
		{name: "high accuracy and fast answers suggest harder", attempts: attemptsWith(10, 10, 3*time.Second), expected: scheduler.AdjustHarder},
		{name: "high accuracy but slow answers maintains", attempts: attemptsWith(10, 10, 8*time.Second), expected: scheduler.AdjustMaintain},
		{name: "middling accuracy maintains", attempts: attemptsWith(7, 10, 4*time.Second), expected: scheduler.AdjustMaintain},
		{name: "no attempts maintains", attempts: nil, expected: scheduler.AdjustMaintain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := scheduler.AnalyzeSession(tt.attempts)
			assert.Equal(t, tt.expected, analysis.RecommendedAdjustment)
		})
	}
}

func TestAnalyzeSession_Averages(t *testing.T) {
	analysis := scheduler.AnalyzeSession(attemptsWith(3, 4, 6*time.Second))

	assert.InDelta(t, 0.75, analysis.AverageAccuracy, 1e-9)
	assert.Equal(t, 6*time.Second, analysis.AverageTime)
}
