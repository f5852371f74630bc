package bandit_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barmentor/barmentor/internal/bandit"
	"github.com/barmentor/barmentor/internal/models"
)

func TestInitialize_SeedsAllArms(t *testing.T) {
	history := bandit.Initialize(0.1)

	require.Len(t, history.Arms, len(models.ExerciseTypes))
	for _, exerciseType := range models.ExerciseTypes {
		arm, ok := history.Arms[exerciseType]
		require.True(t, ok, "every exercise type must have an arm")
		assert.Equal(t, 0.5, arm.AverageReward, "arms start at the neutral prior")
		assert.Equal(t, 1, arm.AttemptCount)
	}
	assert.Equal(t, 0.1, history.Epsilon)
}

func TestPick_ExploitsBestArm(t *testing.T) {
	history := bandit.Initialize(0) // never explore
	history = bandit.Update(history, models.ExerciseOrder, 1.0)

	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		assert.Equal(t, models.ExerciseOrder, bandit.Pick(history, rng))
	}
}

func TestPick_TiesGoToFirstDeclaredType(t *testing.T) {
	// All arms share the prior, so everything is tied.
	history := bandit.Initialize(0)

	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		assert.Equal(t, models.ExerciseTypes[0], bandit.Pick(history, rng),
			"ties must resolve to the first declared exercise type")
	}
}

func TestPick_ExploresWithFullEpsilon(t *testing.T) {
	history := bandit.Initialize(1) // always explore
	history = bandit.Update(history, models.ExerciseMCQ, 1.0)

	rng := rand.New(rand.NewSource(5))
	seen := map[models.ExerciseType]bool{}
	for i := 0; i < 200; i++ {
		seen[bandit.Pick(history, rng)] = true
	}
	assert.Len(t, seen, len(models.ExerciseTypes), "full exploration should eventually hit every arm")
}

func TestUpdate_RunningMean(t *testing.T) {
	history := bandit.Initialize(0.1)

	history = bandit.Update(history, models.ExerciseShort, 1.0)

	arm := history.Arms[models.ExerciseShort]
	// Prior (0.5, 1 attempt) plus one observation of 1.0.
	assert.Equal(t, 2, arm.AttemptCount)
	assert.InDelta(t, 0.75, arm.AverageReward, 1e-9)
	assert.Equal(t, 1, history.TotalAttempts)
}

func TestUpdate_DoesNotMutateInput(t *testing.T) {
	history := bandit.Initialize(0.1)

	_ = bandit.Update(history, models.ExerciseMCQ, 1.0)

	assert.Equal(t, 1, history.Arms[models.ExerciseMCQ].AttemptCount, "updates must be copy-on-write")
	assert.Equal(t, 0, history.TotalAttempts)
}

func TestUpdate_ArmSetStaysComplete(t *testing.T) {
	history := bandit.Initialize(0.1)
	rng := rand.New(rand.NewSource(23))

	for i := 0; i < 300; i++ {
		arm := models.ExerciseTypes[rng.Intn(len(models.ExerciseTypes))]
		history = bandit.Update(history, arm, rng.Float64())

		require.Len(t, history.Arms, len(models.ExerciseTypes))
		for _, exerciseType := range models.ExerciseTypes {
			_, ok := history.Arms[exerciseType]
			require.True(t, ok)
		}
	}
}

func TestReward(t *testing.T) {
	tests := []struct {
		name     string
		gain     float64
		latency  time.Duration
		correct  bool
		expected float64
	}{
		{name: "fast correct answer", gain: 0.2, latency: 5 * time.Second, correct: true, expected: 0.52},
		{name: "slow correct answer", gain: 0.2, latency: 30 * time.Second, correct: true, expected: 0.42},
		{name: "beyond the window earns no time credit", gain: 0.2, latency: 2 * time.Minute, correct: true, expected: 0.42},
		{name: "fast wrong answer", gain: 0, latency: 3 * time.Second, correct: false, expected: 0.1},
		{name: "mid window", gain: 0, latency: 17500 * time.Millisecond, correct: false, expected: 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, bandit.Reward(tt.gain, tt.latency, tt.correct), 1e-9)
		})
	}
}

func TestReward_Clamped(t *testing.T) {
	assert.LessOrEqual(t, bandit.Reward(5, 0, true), 1.0)
	assert.GreaterOrEqual(t, bandit.Reward(-5, time.Hour, false), 0.0)
}

func TestAdaptEpsilon(t *testing.T) {
	history := bandit.Initialize(0.1)

	assert.InDelta(t, 0.15, bandit.AdaptEpsilon(history, bandit.StageBeginner), 1e-9)
	assert.InDelta(t, 0.07, bandit.AdaptEpsilon(history, bandit.StageAdvanced), 1e-9)
	assert.Equal(t, 0.1, bandit.AdaptEpsilon(history, bandit.StageIntermediate))

	capped := bandit.Initialize(0.18)
	assert.Equal(t, 0.2, bandit.AdaptEpsilon(capped, bandit.StageBeginner), "beginner exploration caps at 0.2")

	floored := bandit.Initialize(0.05)
	assert.Equal(t, 0.05, bandit.AdaptEpsilon(floored, bandit.StageAdvanced), "advanced exploration floors at 0.05")
}

func TestStats(t *testing.T) {
	history := bandit.Initialize(0.1)
	for i := 0; i < 9; i++ {
		history = bandit.Update(history, models.ExerciseMCQ, 0.9)
	}

	stats := bandit.Stats(history)

	require.Len(t, stats, len(models.ExerciseTypes))
	assert.Equal(t, models.ExerciseMCQ, stats[0].Type)
	assert.Equal(t, 10, stats[0].Attempts)
	assert.InDelta(t, 0.86, stats[0].AverageReward, 1e-9, "(0.5 + 9*0.9)/10 rounded to 3 decimals")
	assert.Equal(t, 1.0, stats[0].Confidence, "arms are fully confident after 10 observations")
	assert.InDelta(t, 0.1, stats[1].Confidence, 1e-9)
}

func TestStats_Idempotent(t *testing.T) {
	history := bandit.Initialize(0.1)
	history = bandit.Update(history, models.ExerciseOrder, 0.7)

	first := bandit.Stats(history)
	second := bandit.Stats(history)

	assert.Equal(t, first, second, "stats are a read-only projection")
}
