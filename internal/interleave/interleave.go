// Package interleave plans one practice session by mixing fresh items with
// due reviews instead of blocking them separately, which is what actually
// helps long-term retention.
package interleave

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/barmentor/barmentor/internal/models"
)

// MinutesPerItem is the fixed average cost of answering one item, used both
// to size plans and to estimate session length.
const MinutesPerItem = 1.2

// DefaultTargetMinutes is the session length planned when the caller has no
// preference.
const DefaultTargetMinutes = 5

// Target is the desired share of each pool in the final plan.
type Target struct {
	Current float64
	Review  float64
	Older   float64
}

// DefaultTarget favors new material while keeping reviews in the mix.
var DefaultTarget = Target{Current: 0.7, Review: 0.2, Older: 0.1}

// Candidate pairs an item with its review state so urgency can be computed
// without reaching back into the progress store.
type Candidate struct {
	Item  models.Item
	State models.ReviewState
}

// Plan selects and orders items for one session.
//
// Fresh items are sampled across the difficulty range rather than randomly,
// review pools are taken most-urgent first, and the final order is a
// weighted random draw without replacement across the three pools so new
// material and reviews are genuinely interleaved.
func Plan(due []Candidate, fresh []models.Item, older []Candidate, targetMinutes float64, target Target, now time.Time, rng *rand.Rand) models.SessionPlan {
	targetCount := int(math.Round(targetMinutes / MinutesPerItem))
	if targetCount < 0 {
		targetCount = 0
	}

	// The per-pool targets are rounded independently and may not sum to
	// targetCount; the mix is recomputed from what was actually selected.
	current := sampleByDifficulty(fresh, int(math.Round(float64(targetCount)*target.Current)))
	review := mostUrgent(due, int(math.Round(float64(targetCount)*target.Review)), now)
	olderPicks := mostUrgent(older, int(math.Round(float64(targetCount)*target.Older)), now)

	mix := models.PlanMix{
		Current: len(current),
		Review:  len(review),
		Older:   len(olderPicks),
	}

	items := weightedDraw(current, review, olderPicks, target, rng)

	return models.SessionPlan{
		Items:            items,
		Mix:              mix,
		EstimatedMinutes: float64(len(items)) * MinutesPerItem,
	}
}

// AdaptTarget shifts the pool ratios based on the learner's recent success
// rate: struggling learners get more reinforcement, excelling learners get
// more new material.
func AdaptTarget(recentCorrectRate float64) Target {
	switch {
	case recentCorrectRate < 0.6:
		return Target{Current: 0.5, Review: 0.4, Older: 0.1}
	case recentCorrectRate > 0.9:
		return Target{Current: 0.8, Review: 0.15, Older: 0.05}
	default:
		return DefaultTarget
	}
}

// sampleByDifficulty picks count items spread evenly across the sorted
// difficulty range, guaranteeing variety instead of the clustering a random
// sample can produce.
func sampleByDifficulty(pool []models.Item, count int) []models.Item {
	if count <= 0 || len(pool) == 0 {
		return nil
	}
	sorted := make([]models.Item, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Difficulty < sorted[j].Difficulty
	})

	if count >= len(sorted) {
		return sorted
	}
	picked := make([]models.Item, 0, count)
	for i := 0; i < count; i++ {
		picked = append(picked, sorted[i*len(sorted)/count])
	}
	return picked
}

// mostUrgent takes the top count candidates by urgency, where urgency grows
// with both lateness and low mastery.
func mostUrgent(pool []Candidate, count int, now time.Time) []models.Item {
	if count <= 0 || len(pool) == 0 {
		return nil
	}
	sorted := make([]Candidate, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		return urgency(sorted[i].State, now) > urgency(sorted[j].State, now)
	})

	if count > len(sorted) {
		count = len(sorted)
	}
	items := make([]models.Item, 0, count)
	for _, c := range sorted[:count] {
		items = append(items, c.Item)
	}
	return items
}

func urgency(state models.ReviewState, now time.Time) float64 {
	if state.DueAt.After(now) {
		return 0
	}
	return now.Sub(state.DueAt).Hours() * (1 - state.Mastery)
}

// weightedDraw interleaves the three selected lists by repeatedly picking a
// non-empty pool with probability proportional to its configured weight and
// popping that pool's next item. Exhausted pools drop out of the draw.
func weightedDraw(current, review, older []models.Item, target Target, rng *rand.Rand) []models.Item {
	pools := []*[]models.Item{&current, &review, &older}
	weights := []float64{target.Current, target.Review, target.Older}

	items := make([]models.Item, 0, len(current)+len(review)+len(older))
	for {
		total := 0.0
		for i, pool := range pools {
			if len(*pool) > 0 {
				total += weights[i]
			}
		}
		if total == 0 {
			// Zero-weight pools with items left: flush in pool order.
			for _, pool := range pools {
				items = append(items, *pool...)
			}
			break
		}

		r := rng.Float64() * total
		for i, pool := range pools {
			if len(*pool) == 0 {
				continue
			}
			r -= weights[i]
			if r < 0 {
				items = append(items, (*pool)[0])
				*pool = (*pool)[1:]
				break
			}
		}
	}
	return items
}
