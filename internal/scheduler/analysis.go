package scheduler

import (
	"time"

	"github.com/barmentor/barmentor/internal/models"
)

// Adjustment is the advisory difficulty recommendation after a session.
type Adjustment string

const (
	AdjustEasier   Adjustment = "easier"
	AdjustHarder   Adjustment = "harder"
	AdjustMaintain Adjustment = "maintain"
)

const (
	lowAccuracy  = 0.6
	highAccuracy = 0.9
	fastAnswer   = 5 * time.Second
)

// SessionAnalysis summarizes one completed session.
type SessionAnalysis struct {
	AverageAccuracy       float64       `json:"average_accuracy"`
	AverageTime           time.Duration `json:"average_time_ms"`
	RecommendedAdjustment Adjustment    `json:"recommended_adjustment"`
}

// AnalyzeSession produces a post-session heuristic: low accuracy suggests
// easing off, high accuracy with fast answers suggests harder content.
// Purely advisory; whatever personalization layer consumes it decides
// whether to act.
func AnalyzeSession(attempts []models.Attempt) SessionAnalysis {
	if len(attempts) == 0 {
		return SessionAnalysis{RecommendedAdjustment: AdjustMaintain}
	}

	correct := 0
	var totalTime time.Duration
	for _, a := range attempts {
		if a.Correct {
			correct++
		}
		totalTime += a.Latency
	}

	accuracy := float64(correct) / float64(len(attempts))
	avgTime := totalTime / time.Duration(len(attempts))

	adjustment := AdjustMaintain
	switch {
	case accuracy < lowAccuracy:
		adjustment = AdjustEasier
	case accuracy > highAccuracy && avgTime < fastAnswer:
		adjustment = AdjustHarder
	}

	return SessionAnalysis{
		AverageAccuracy:       accuracy,
		AverageTime:           avgTime,
		RecommendedAdjustment: adjustment,
	}
}
