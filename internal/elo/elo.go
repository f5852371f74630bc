// Package elo implements logistic mutual rating updates between a learner's
// skill and an item's difficulty. Both live on a [0,1] scale; after each
// attempt the learner rating moves toward the observed outcome and the item
// rating drifts the other way.
package elo

import (
	"math"
)

const (
	// Learner ratings move twice as fast as item ratings: many learners
	// share one item, so item difficulty should drift slowly.
	kUser = 0.1
	kItem = 0.05

	// Controls how sharply the sigmoid separates skill levels. Tuned by
	// hand, not derived.
	steepness = 5.0

	minConfidence = 0.1

	// DefaultTargetSuccessRate is the success rate RecommendDifficulty aims
	// for when callers have no opinion: high enough to feel achievable,
	// low enough to still challenge.
	DefaultTargetSuccessRate = 0.8
)

// SkillUpdate is the result of one mutual rating update.
type SkillUpdate struct {
	UserSkill      float64 `json:"user_skill"`
	ItemDifficulty float64 `json:"item_difficulty"`
	Confidence     float64 `json:"confidence"`
}

// ExpectedProbability predicts the chance a learner of the given skill
// answers an item of the given difficulty correctly.
func ExpectedProbability(userSkill, itemDifficulty float64) float64 {
	return 1 / (1 + math.Exp(-(userSkill-itemDifficulty)*steepness))
}

// UpdateSkill applies one attempt outcome to both ratings. Confidence is
// high when the outcome matched the prediction and low when it surprised.
func UpdateSkill(userSkill, itemDifficulty float64, correct bool) SkillUpdate {
	expected := ExpectedProbability(userSkill, itemDifficulty)
	actual := 0.0
	if correct {
		actual = 1.0
	}

	newSkill := clamp01(userSkill + kUser*(actual-expected))
	newDifficulty := clamp01(itemDifficulty + kItem*(expected-actual))
	confidence := math.Max(minConfidence, 1-math.Abs(actual-expected))

	return SkillUpdate{
		UserSkill:      round3(newSkill),
		ItemDifficulty: round3(newDifficulty),
		Confidence:     round3(confidence),
	}
}

// RecommendDifficulty inverts the sigmoid to find the item difficulty at
// which a learner of the given skill should succeed at targetSuccessRate.
func RecommendDifficulty(userSkill, targetSuccessRate float64) float64 {
	difficulty := userSkill - math.Log(targetSuccessRate/(1-targetSuccessRate))/steepness
	return round3(clamp01(difficulty))
}

// InitializeUserSkill derives a starting skill from a placement quiz score.
// The result is pinned to [0.1, 0.9] so the rating always has room to move
// in both directions. A zero-question placement yields the neutral 0.5
// rather than NaN.
func InitializeUserSkill(correctAnswers, totalQuestions int, adjustmentFactor float64) float64 {
	if totalQuestions <= 0 {
		return 0.5
	}
	skill := float64(correctAnswers) / float64(totalQuestions) * adjustmentFactor
	return round3(math.Min(0.9, math.Max(0.1, skill)))
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
