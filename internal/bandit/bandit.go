// Package bandit selects which exercise type to surface next using an
// epsilon-greedy multi-armed bandit over the known exercise types.
package bandit

import (
	"math"
	"math/rand"
	"time"

	"github.com/barmentor/barmentor/internal/models"
)

const (
	// DefaultEpsilon is the exploration probability for a fresh learner.
	DefaultEpsilon = 0.1

	// Neutral prior: each arm starts with one pretend attempt at reward
	// 0.5 so a single lucky observation cannot lock in exploitation.
	priorReward   = 0.5
	priorAttempts = 1

	rewardMasteryWeight = 0.6
	rewardCorrectWeight = 0.3
	rewardTimeWeight    = 0.1

	// Linear time-efficiency window: answering within optimalAnswerTime
	// earns full credit, anything past maxAnswerTime earns none.
	optimalAnswerTime = 5 * time.Second
	maxAnswerTime     = 30 * time.Second

	confidentAttempts = 10
)

// LearningStage coarsely buckets how much the system knows about a learner.
type LearningStage string

const (
	StageBeginner     LearningStage = "beginner"
	StageIntermediate LearningStage = "intermediate"
	StageAdvanced     LearningStage = "advanced"
)

// ArmStats is a read-only projection of one arm for observability.
type ArmStats struct {
	Type          models.ExerciseType `json:"type"`
	AverageReward float64             `json:"average_reward"`
	Attempts      int                 `json:"attempts"`
	Confidence    float64             `json:"confidence"`
}

// Initialize creates a fresh history with every exercise type seeded at the
// neutral prior.
func Initialize(epsilon float64) models.BanditHistory {
	arms := make(map[models.ExerciseType]models.BanditArm, len(models.ExerciseTypes))
	for _, t := range models.ExerciseTypes {
		arms[t] = models.BanditArm{
			Type:          t,
			TotalReward:   priorReward,
			AttemptCount:  priorAttempts,
			AverageReward: priorReward,
		}
	}
	return models.BanditHistory{Arms: arms, Epsilon: epsilon}
}

// Pick returns the exercise type to surface next: a uniform random arm with
// probability epsilon, otherwise the arm with the best average reward.
// Ties go to the first type in declaration order.
func Pick(history models.BanditHistory, rng *rand.Rand) models.ExerciseType {
	if rng.Float64() < history.Epsilon {
		return models.ExerciseTypes[rng.Intn(len(models.ExerciseTypes))]
	}

	best := models.ExerciseTypes[0]
	bestReward := math.Inf(-1)
	for _, t := range models.ExerciseTypes {
		if arm, ok := history.Arms[t]; ok && arm.AverageReward > bestReward {
			best = t
			bestReward = arm.AverageReward
		}
	}
	return best
}

// Update folds one observed reward into the given arm and returns a new
// history. The running mean has no decay: old observations keep full weight.
func Update(history models.BanditHistory, armType models.ExerciseType, reward float64) models.BanditHistory {
	next := history.Clone()

	arm, ok := next.Arms[armType]
	if !ok {
		arm = models.BanditArm{Type: armType}
	}
	arm.TotalReward += reward
	arm.AttemptCount++
	arm.AverageReward = arm.TotalReward / float64(arm.AttemptCount)

	next.Arms[armType] = arm
	next.TotalAttempts++
	return next
}

// Reward scores one attempt as a weighted composite of mastery gained,
// correctness, and response speed, clamped to [0,1].
func Reward(masteryGain float64, timeToAnswer time.Duration, wasCorrect bool) float64 {
	correct := 0.0
	if wasCorrect {
		correct = 1.0
	}

	window := (maxAnswerTime - optimalAnswerTime).Seconds()
	efficiency := clamp01((maxAnswerTime - timeToAnswer).Seconds() / window)

	reward := rewardMasteryWeight*masteryGain + rewardCorrectWeight*correct + rewardTimeWeight*efficiency
	return clamp01(reward)
}

// AdaptEpsilon tunes exploration to the learner's stage: beginners explore
// more while the system has little data on them, advanced learners explore
// less once their behavior is well characterized.
func AdaptEpsilon(history models.BanditHistory, stage LearningStage) float64 {
	switch stage {
	case StageBeginner:
		return math.Min(0.2, history.Epsilon*1.5)
	case StageAdvanced:
		return math.Max(0.05, history.Epsilon*0.7)
	default:
		return history.Epsilon
	}
}

// Stats projects per-arm statistics in declaration order. An arm counts as
// fully confident after ten observations.
func Stats(history models.BanditHistory) []ArmStats {
	stats := make([]ArmStats, 0, len(models.ExerciseTypes))
	for _, t := range models.ExerciseTypes {
		arm, ok := history.Arms[t]
		if !ok {
			continue
		}
		stats = append(stats, ArmStats{
			Type:          t,
			AverageReward: round3(arm.AverageReward),
			Attempts:      arm.AttemptCount,
			Confidence:    math.Min(1, float64(arm.AttemptCount)/confidentAttempts),
		})
	}
	return stats
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
