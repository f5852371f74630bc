package elo_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/barmentor/barmentor/internal/elo"
)

func TestExpectedProbability_EqualRatings(t *testing.T) {
	assert.Equal(t, 0.5, elo.ExpectedProbability(0.5, 0.5))
}

func TestExpectedProbability_Complementary(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		a, b := rng.Float64(), rng.Float64()
		sum := elo.ExpectedProbability(a, b) + elo.ExpectedProbability(b, a)
		assert.InDelta(t, 1.0, sum, 1e-9, "P(a beats b) + P(b beats a) must be 1")
	}
}

func TestUpdateSkill_EvenMatchCorrect(t *testing.T) {
	update := elo.UpdateSkill(0.5, 0.5, true)

	assert.Equal(t, 0.55, update.UserSkill)
	assert.Equal(t, 0.475, update.ItemDifficulty)
	assert.Equal(t, 0.5, update.Confidence)
}

func TestUpdateSkill_Monotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		skill, difficulty := rng.Float64(), rng.Float64()

		up := elo.UpdateSkill(skill, difficulty, true)
		assert.GreaterOrEqual(t, up.UserSkill, round3(skill), "correct answers never lower skill")

		down := elo.UpdateSkill(skill, difficulty, false)
		assert.LessOrEqual(t, down.UserSkill, round3(skill), "wrong answers never raise skill")
	}
}

func TestUpdateSkill_ItemDriftsSlowerThanUser(t *testing.T) {
	update := elo.UpdateSkill(0.3, 0.7, true)

	userDelta := update.UserSkill - 0.3
	itemDelta := 0.7 - update.ItemDifficulty
	assert.InDelta(t, userDelta/2, itemDelta, 1e-3, "item learning rate should be half the user's")
}

func TestUpdateSkill_StaysClamped(t *testing.T) {
	up := elo.UpdateSkill(0.99, 0.01, true)
	assert.LessOrEqual(t, up.UserSkill, 1.0)
	assert.GreaterOrEqual(t, up.ItemDifficulty, 0.0)

	down := elo.UpdateSkill(0.01, 0.99, false)
	assert.GreaterOrEqual(t, down.UserSkill, 0.0)
	assert.LessOrEqual(t, down.ItemDifficulty, 1.0)
}

func TestUpdateSkill_ConfidenceFloor(t *testing.T) {
	// A very skilled learner failing a very easy item is maximally
	// surprising; confidence still keeps its floor.
	update := elo.UpdateSkill(1.0, 0.0, false)
	assert.GreaterOrEqual(t, update.Confidence, 0.1)
}

func TestRecommendDifficulty(t *testing.T) {
	// ln(0.8/0.2) = 1.386; 0.6 - 1.386/5 = 0.3228
	assert.InDelta(t, 0.323, elo.RecommendDifficulty(0.6, 0.8), 1e-3)
}

func TestRecommendDifficulty_HitsTargetRate(t *testing.T) {
	for _, skill := range []float64{0.3, 0.5, 0.7} {
		difficulty := elo.RecommendDifficulty(skill, 0.8)
		assert.InDelta(t, 0.8, elo.ExpectedProbability(skill, difficulty), 1e-2,
			"recommended difficulty should produce the target success rate")
	}
}

func TestInitializeUserSkill(t *testing.T) {
	tests := []struct {
		name     string
		correct  int
		total    int
		factor   float64
		expected float64
	}{
		{name: "perfect placement pins to 0.9", correct: 10, total: 10, factor: 1.0, expected: 0.9},
		{name: "zero score pins to 0.1", correct: 0, total: 10, factor: 1.0, expected: 0.1},
		{name: "midline score", correct: 6, total: 10, factor: 1.0, expected: 0.6},
		{name: "adjustment factor scales", correct: 5, total: 10, factor: 1.2, expected: 0.6},
		{name: "no questions defaults to neutral", correct: 0, total: 0, factor: 1.0, expected: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, elo.InitializeUserSkill(tt.correct, tt.total, tt.factor))
		})
	}
}

func round3(v float64) float64 {
	return float64(int(v*1000+0.5)) / 1000
}
