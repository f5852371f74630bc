// Package scheduler composes the spaced repetition engine, the difficulty
// adaptation engine, the interleaving planner, and the exercise-type bandit
// into one scheduling decision per practice session.
package scheduler

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/barmentor/barmentor/internal/bandit"
	"github.com/barmentor/barmentor/internal/elo"
	"github.com/barmentor/barmentor/internal/interleave"
	"github.com/barmentor/barmentor/internal/logger"
	"github.com/barmentor/barmentor/internal/models"
	"github.com/barmentor/barmentor/internal/repository"
	"github.com/barmentor/barmentor/internal/srs"
)

const (
	// Progress older than recentWindow but within staleWindow counts as an
	// "older" review; anything overdue past staleWindow is left for the
	// win-back scan instead of flooding the session.
	recentWindow = 7 * 24 * time.Hour
	staleWindow  = 14 * 24 * time.Hour

	// How many recent attempts feed the adaptive pool ratios.
	adaptiveSampleSize = 20
	// Minimum attempts before the ratios adapt at all.
	adaptiveMinSample = 5
)

// StaleWindow is the staleness cutoff, exported for the win-back scan.
const StaleWindow = staleWindow

// Scheduler decides which items a learner should practice next.
type Scheduler struct {
	content  repository.ContentRepository
	progress repository.ProgressRepository
	bandits  repository.BanditRepository

	epsilon float64

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithRand sets the random source, mainly for deterministic tests.
func WithRand(rng *rand.Rand) Option {
	return func(s *Scheduler) { s.rng = rng }
}

// WithEpsilon sets the exploration probability seeded into fresh bandit
// histories.
func WithEpsilon(epsilon float64) Option {
	return func(s *Scheduler) { s.epsilon = epsilon }
}

// New creates a Scheduler over the given collaborators.
func New(content repository.ContentRepository, progress repository.ProgressRepository, bandits repository.BanditRepository, opts ...Option) *Scheduler {
	s := &Scheduler{
		content:  content,
		progress: progress,
		bandits:  bandits,
		epsilon:  bandit.DefaultEpsilon,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NextSessionPlan builds the session plan for one learner and module.
// Missing content degrades to an empty plan: "nothing to study" is a valid
// outcome, not an error.
func (s *Scheduler) NextSessionPlan(ctx context.Context, learnerID, moduleID string, targetMinutes float64, now time.Time) (models.SessionPlan, error) {
	log := logger.FromContext(ctx).WithPrefix("scheduler")

	if targetMinutes <= 0 {
		targetMinutes = interleave.DefaultTargetMinutes
	}

	module, err := s.content.GetModule(ctx, moduleID)
	if err != nil {
		return models.SessionPlan{}, err
	}
	if module == nil {
		log.Debug("module not found, returning empty plan: module_id=%s", moduleID)
		return emptyPlan(), nil
	}

	items, err := s.moduleItems(ctx, moduleID)
	if err != nil {
		return models.SessionPlan{}, err
	}
	if len(items) == 0 {
		log.Debug("module has no items: module_id=%s", moduleID)
		return emptyPlan(), nil
	}

	progressByItem, err := s.progressByItem(ctx, learnerID)
	if err != nil {
		return models.SessionPlan{}, err
	}

	history, err := s.loadBandit(ctx, learnerID)
	if err != nil {
		return models.SessionPlan{}, err
	}

	fresh, dueRecent, dueOlder := s.classify(items, progressByItem, history, now)
	log.Debug("classified items: fresh=%d, due_recent=%d, due_older=%d", len(fresh), len(dueRecent), len(dueOlder))

	target, err := s.adaptiveTarget(ctx, learnerID)
	if err != nil {
		return models.SessionPlan{}, err
	}

	s.mu.Lock()
	plan := interleave.Plan(dueRecent, fresh, dueOlder, targetMinutes, target, now, s.rng)
	s.mu.Unlock()

	log.Info("session plan built: items=%d, current=%d, review=%d, older=%d",
		len(plan.Items), plan.Mix.Current, plan.Mix.Review, plan.Mix.Older)
	return plan, nil
}

// NextItems is a convenience wrapper returning just the planned items.
func (s *Scheduler) NextItems(ctx context.Context, learnerID, moduleID string, now time.Time) ([]models.Item, error) {
	plan, err := s.NextSessionPlan(ctx, learnerID, moduleID, interleave.DefaultTargetMinutes, now)
	if err != nil {
		return nil, err
	}
	return plan.Items, nil
}

// ApplyReview updates a review state from one attempt outcome.
func (s *Scheduler) ApplyReview(prev models.ReviewState, correct bool, now time.Time) models.ReviewState {
	return srs.Apply(prev, correct, now)
}

// AdjustSkill mutually updates learner skill and item difficulty.
func (s *Scheduler) AdjustSkill(userSkill, itemDifficulty float64, correct bool) elo.SkillUpdate {
	return elo.UpdateSkill(userSkill, itemDifficulty, correct)
}

// RecordExercise folds one attempt's reward into the learner's bandit state
// and persists it.
func (s *Scheduler) RecordExercise(ctx context.Context, learnerID string, exerciseType models.ExerciseType, masteryGain float64, latency time.Duration, correct bool) error {
	log := logger.FromContext(ctx).WithPrefix("scheduler")

	history, err := s.loadBandit(ctx, learnerID)
	if err != nil {
		return err
	}

	reward := bandit.Reward(masteryGain, latency, correct)
	updated := bandit.Update(history, exerciseType, reward)

	log.Debug("bandit updated: learner_id=%s, type=%s, reward=%.3f", learnerID, exerciseType, reward)
	return s.bandits.Save(ctx, learnerID, updated)
}

// BanditStats returns the per-arm projection for one learner.
func (s *Scheduler) BanditStats(ctx context.Context, learnerID string) ([]bandit.ArmStats, error) {
	history, err := s.loadBandit(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	return bandit.Stats(history), nil
}

// classify buckets every candidate item. Items without progress are new and
// pass through the bandit gate: only items whose type matches the bandit's
// pick for that draw are admitted. Items with progress are due-recent,
// due-older, stale, or simply not due yet.
func (s *Scheduler) classify(items []models.Item, progressByItem map[string]models.UserProgress, history models.BanditHistory, now time.Time) (fresh []models.Item, dueRecent, dueOlder []interleave.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		p, seen := progressByItem[item.ID]
		if !seen {
			if bandit.Pick(history, s.rng) == item.Type {
				fresh = append(fresh, item)
			}
			continue
		}
		if !srs.IsDue(p.State, now) {
			continue
		}
		overdue := now.Sub(p.State.DueAt)
		switch {
		case overdue <= recentWindow:
			dueRecent = append(dueRecent, interleave.Candidate{Item: item, State: p.State})
		case overdue <= staleWindow:
			dueOlder = append(dueOlder, interleave.Candidate{Item: item, State: p.State})
		default:
			// Abandoned rather than urgently owed; the win-back scan
			// reschedules these.
		}
	}
	return fresh, dueRecent, dueOlder
}

func (s *Scheduler) moduleItems(ctx context.Context, moduleID string) ([]models.Item, error) {
	lessons, err := s.content.LessonsForModule(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	var items []models.Item
	for _, lesson := range lessons {
		lessonItems, err := s.content.ItemsForLesson(ctx, lesson.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, lessonItems...)
	}
	return items, nil
}

func (s *Scheduler) progressByItem(ctx context.Context, learnerID string) (map[string]models.UserProgress, error) {
	records, err := s.progress.ListForLearner(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	byItem := make(map[string]models.UserProgress, len(records))
	for _, p := range records {
		byItem[p.ItemID] = p
	}
	return byItem, nil
}

func (s *Scheduler) loadBandit(ctx context.Context, learnerID string) (models.BanditHistory, error) {
	history, err := s.bandits.Get(ctx, learnerID)
	if err != nil {
		return models.BanditHistory{}, err
	}
	if history == nil {
		return bandit.Initialize(s.epsilon), nil
	}
	return *history, nil
}

// adaptiveTarget shifts the pool ratios based on recent accuracy once there
// is enough signal to go on.
func (s *Scheduler) adaptiveTarget(ctx context.Context, learnerID string) (interleave.Target, error) {
	attempts, err := s.progress.RecentAttempts(ctx, learnerID, adaptiveSampleSize)
	if err != nil {
		return interleave.Target{}, err
	}
	if len(attempts) < adaptiveMinSample {
		return interleave.DefaultTarget, nil
	}
	correct := 0
	for _, a := range attempts {
		if a.Correct {
			correct++
		}
	}
	return interleave.AdaptTarget(float64(correct) / float64(len(attempts))), nil
}

func emptyPlan() models.SessionPlan {
	return models.SessionPlan{Items: []models.Item{}}
}
