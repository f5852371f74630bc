package srs_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/barmentor/barmentor/internal/models"
	"github.com/barmentor/barmentor/internal/srs"
)

func TestInitialize_SeedsFromDifficulty(t *testing.T) {
	now := time.UnixMilli(1000)

	state := srs.Initialize(0.5, now)

	assert.Equal(t, 0.5, state.Mastery, "mastery should be seeded inversely from difficulty")
	assert.Equal(t, 1.0, state.Stability)
	assert.Equal(t, now, state.DueAt)
}

func TestInitialize_HardItemsKeepMinimumMastery(t *testing.T) {
	state := srs.Initialize(0.95, time.Now())
	assert.Equal(t, 0.1, state.Mastery, "mastery floor should apply for very hard items")
}

func TestInitialize_DueImmediately(t *testing.T) {
	now := time.Now()
	for _, difficulty := range []float64{0, 0.25, 0.5, 0.75, 1} {
		state := srs.Initialize(difficulty, now)
		assert.True(t, srs.IsDue(state, now), "a new item must be due on first encounter")
	}
}

func TestApply_Correct(t *testing.T) {
	now := time.UnixMilli(1000)
	state := models.ReviewState{Mastery: 0.5, Stability: 1.0, DueAt: now}

	updated := srs.Apply(state, true, now)

	assert.Equal(t, 0.675, updated.Mastery, "mastery should rise with diminishing returns")
	assert.Equal(t, 1.6, updated.Stability)
	assert.Equal(t, now.Add(time.Duration(1.6*float64(4*time.Hour))), updated.DueAt)
}

func TestApply_Incorrect(t *testing.T) {
	now := time.Now()
	state := models.ReviewState{Mastery: 0.5, Stability: 1.0, DueAt: now}

	updated := srs.Apply(state, false, now)

	assert.Equal(t, 0.35, updated.Mastery, "mastery should decay multiplicatively")
	assert.Equal(t, 0.8, updated.Stability)
	assert.Equal(t, now.Add(12*time.Hour), updated.DueAt, "retry delay should hit the 12h floor")
}

func TestApply_IncorrectAboveFloor(t *testing.T) {
	now := time.Now()
	state := models.ReviewState{Mastery: 0.9, Stability: 20, DueAt: now}

	updated := srs.Apply(state, false, now)

	// 4h * 16 * 0.3 = 19.2h, above the 12h floor
	assert.Equal(t, now.Add(time.Duration(19.2*float64(time.Hour))), updated.DueAt)
}

func TestApply_RepeatedFailuresKeepBounds(t *testing.T) {
	now := time.Now()
	state := models.ReviewState{Mastery: 0.9, Stability: 1.0, DueAt: now}

	for i := 0; i < 25; i++ {
		state = srs.Apply(state, false, now)
		assert.GreaterOrEqual(t, state.Mastery, 0.0)
		assert.GreaterOrEqual(t, state.Stability, 0.1, "stability must never drop below 0.1")
		assert.True(t, state.DueAt.Sub(now) >= 12*time.Hour, "failed items must wait at least 12h")
	}
}

func TestApply_RandomInputsStayClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	now := time.Now()

	for i := 0; i < 1000; i++ {
		state := models.ReviewState{
			Mastery:   rng.Float64(),
			Stability: 0.1 + rng.Float64()*10,
			DueAt:     now,
		}
		updated := srs.Apply(state, rng.Intn(2) == 0, now)

		assert.GreaterOrEqual(t, updated.Mastery, 0.0)
		assert.LessOrEqual(t, updated.Mastery, 1.0)
		assert.GreaterOrEqual(t, updated.Stability, 0.1)
	}
}

func TestUrgency(t *testing.T) {
	now := time.Now()

	notDue := models.ReviewState{Mastery: 0.2, Stability: 1, DueAt: now.Add(time.Hour)}
	assert.Equal(t, 0.0, srs.Urgency(notDue, now), "urgency should be zero before due")

	overdue := models.ReviewState{Mastery: 0.5, Stability: 1, DueAt: now.Add(-2 * time.Hour)}
	assert.InDelta(t, 1.0, srs.Urgency(overdue, now), 1e-9, "2h overdue * 0.5 unknown")

	wellKnown := models.ReviewState{Mastery: 1.0, Stability: 1, DueAt: now.Add(-2 * time.Hour)}
	assert.Equal(t, 0.0, srs.Urgency(wellKnown, now), "fully mastered items are never urgent")
}

func TestUrgency_GrowsWithLatenessAndLowMastery(t *testing.T) {
	now := time.Now()
	late := models.ReviewState{Mastery: 0.3, Stability: 1, DueAt: now.Add(-10 * time.Hour)}
	later := models.ReviewState{Mastery: 0.3, Stability: 1, DueAt: now.Add(-20 * time.Hour)}
	weaker := models.ReviewState{Mastery: 0.1, Stability: 1, DueAt: now.Add(-10 * time.Hour)}

	assert.Greater(t, srs.Urgency(later, now), srs.Urgency(late, now))
	assert.Greater(t, srs.Urgency(weaker, now), srs.Urgency(late, now))
}
