package srs

import (
	"math"
	"time"

	"github.com/barmentor/barmentor/internal/models"
)

const (
	masteryBoost    = 0.35
	masteryDecay    = 0.7
	stabilityGrowth = 1.6
	stabilityShrink = 0.8
	minStability    = 0.1

	baseInterval = 4 * time.Hour
	// Floor on the retry delay after a failure. Re-showing a just-failed
	// item within the same session frustrates learners more than it helps.
	failFloor  = 12 * time.Hour
	failFactor = 0.3
)

// Initialize seeds the review state for an item seen for the first time.
// Mastery is seeded inversely from difficulty and the item is due
// immediately.
func Initialize(difficulty float64, now time.Time) models.ReviewState {
	return models.ReviewState{
		Mastery:   round3(math.Max(0.1, 1-difficulty)),
		Stability: 1.0,
		DueAt:     now,
	}
}

// Apply updates a review state from one pass/fail outcome, Leitner-style:
// correct answers push mastery toward 1 with diminishing returns and grow
// the interval multiplier, failures decay both.
func Apply(prev models.ReviewState, correct bool, now time.Time) models.ReviewState {
	mastery := prev.Mastery
	stability := prev.Stability

	if correct {
		mastery += (1 - mastery) * masteryBoost
		stability *= stabilityGrowth
	} else {
		mastery *= masteryDecay
		stability *= stabilityShrink
	}

	mastery = clamp01(mastery)
	if stability < minStability {
		stability = minStability
	}

	interval := time.Duration(float64(baseInterval) * stability)
	if !correct {
		interval = time.Duration(float64(interval) * failFactor)
		if interval < failFloor {
			interval = failFloor
		}
	}

	return models.ReviewState{
		Mastery:   round3(mastery),
		Stability: round3(stability),
		DueAt:     now.Add(interval),
	}
}

// IsDue reports whether the item is eligible for review at now.
func IsDue(state models.ReviewState, now time.Time) bool {
	return !state.DueAt.After(now)
}

// Urgency scores how badly an item needs review: 0 when not due, otherwise
// hours overdue weighted by how poorly the item is known.
func Urgency(state models.ReviewState, now time.Time) float64 {
	if !IsDue(state, now) {
		return 0
	}
	hoursOverdue := now.Sub(state.DueAt).Hours()
	return hoursOverdue * (1 - state.Mastery)
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// Values are rounded to 3 decimals so serialized state stays stable across
// round-trips.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
