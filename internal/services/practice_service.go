package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/barmentor/barmentor/internal/apperr"
	"github.com/barmentor/barmentor/internal/elo"
	"github.com/barmentor/barmentor/internal/logger"
	"github.com/barmentor/barmentor/internal/models"
	"github.com/barmentor/barmentor/internal/repository"
	"github.com/barmentor/barmentor/internal/scheduler"
	"github.com/barmentor/barmentor/internal/srs"
)

// SubmitAttemptInput is one answered exercise.
type SubmitAttemptInput struct {
	LearnerID string
	ItemID    string
	Correct   bool
	Latency   time.Duration
}

// AttemptResult reports the state changes one attempt produced.
type AttemptResult struct {
	State       models.ReviewState `json:"state"`
	Skill       elo.SkillUpdate    `json:"skill"`
	MasteryGain float64            `json:"mastery_gain"`
}

// PracticeService is the layer above the scheduling core: it owns
// persistence of everything the pure engines compute.
type PracticeService interface {
	GetSessionPlan(ctx context.Context, learnerID, moduleID string, targetMinutes float64, now time.Time) (models.SessionPlan, error)
	SubmitAttempt(ctx context.Context, in SubmitAttemptInput) (*AttemptResult, error)
}

type practiceService struct {
	sched    *scheduler.Scheduler
	content  repository.ContentRepository
	progress repository.ProgressRepository
	learners repository.LearnerRepository
}

// NewPracticeService creates a new PracticeService.
func NewPracticeService(sched *scheduler.Scheduler, content repository.ContentRepository, progress repository.ProgressRepository, learners repository.LearnerRepository) PracticeService {
	return &practiceService{
		sched:    sched,
		content:  content,
		progress: progress,
		learners: learners,
	}
}

func (s *practiceService) GetSessionPlan(ctx context.Context, learnerID, moduleID string, targetMinutes float64, now time.Time) (models.SessionPlan, error) {
	log := logger.FromContext(ctx)

	learner, err := s.learners.Get(ctx, learnerID)
	if err != nil {
		log.Error("failed to get learner: %v", err)
		return models.SessionPlan{}, apperr.Internal(err)
	}
	if learner == nil {
		return models.SessionPlan{}, apperr.NotFound("learner", learnerID)
	}

	plan, err := s.sched.NextSessionPlan(ctx, learnerID, moduleID, targetMinutes, now)
	if err != nil {
		log.Error("failed to build session plan: %v", err)
		return models.SessionPlan{}, apperr.Internal(err)
	}
	return plan, nil
}

// SubmitAttempt applies one attempt to every piece of adaptive state: the
// review schedule, the learner/item ratings, the bandit, and the attempt
// log. Updates for one learner must arrive in attempt order; callers retrying
// over the network are responsible for not submitting duplicates.
func (s *practiceService) SubmitAttempt(ctx context.Context, in SubmitAttemptInput) (*AttemptResult, error) {
	log := logger.FromContext(ctx)

	if in.Latency < 0 {
		return nil, apperr.Validation("latency", "cannot be negative")
	}

	learner, err := s.learners.Get(ctx, in.LearnerID)
	if err != nil {
		log.Error("failed to get learner: %v", err)
		return nil, apperr.Internal(err)
	}
	if learner == nil {
		return nil, apperr.NotFound("learner", in.LearnerID)
	}

	item, err := s.content.GetItem(ctx, in.ItemID)
	if err != nil {
		log.Error("failed to get item: %v", err)
		return nil, apperr.Internal(err)
	}
	if item == nil {
		return nil, apperr.NotFound("item", in.ItemID)
	}

	now := time.Now().UTC()

	prev, err := s.progress.Get(ctx, in.LearnerID, in.ItemID)
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, apperr.Internal(err)
	}

	firstSeen := now
	prevState := srs.Initialize(item.Difficulty, now)
	if prev != nil {
		firstSeen = prev.FirstSeenAt
		prevState = prev.State
	}

	nextState := s.sched.ApplyReview(prevState, in.Correct, now)
	masteryGain := nextState.Mastery - prevState.Mastery
	skill := s.sched.AdjustSkill(learner.Skill, item.Difficulty, in.Correct)

	log.Debug("attempt applied: item_id=%s, correct=%t, mastery=%.3f->%.3f, skill=%.3f->%.3f",
		in.ItemID, in.Correct, prevState.Mastery, nextState.Mastery, learner.Skill, skill.UserSkill)

	if err := s.progress.Upsert(ctx, models.UserProgress{
		LearnerID:   in.LearnerID,
		ItemID:      in.ItemID,
		State:       nextState,
		FirstSeenAt: firstSeen,
		UpdatedAt:   now,
	}); err != nil {
		log.Error("failed to upsert progress: %v", err)
		return nil, apperr.Internal(err)
	}

	if err := s.learners.UpdateSkill(ctx, in.LearnerID, skill.UserSkill); err != nil {
		log.Error("failed to update learner skill: %v", err)
		return nil, apperr.Internal(err)
	}

	if err := s.content.UpdateItemDifficulty(ctx, in.ItemID, skill.ItemDifficulty); err != nil {
		log.Error("failed to update item difficulty: %v", err)
		return nil, apperr.Internal(err)
	}

	if err := s.progress.LogAttempt(ctx, models.Attempt{
		ID:          uuid.NewString(),
		LearnerID:   in.LearnerID,
		ItemID:      in.ItemID,
		Correct:     in.Correct,
		Latency:     in.Latency,
		MasteryGain: masteryGain,
		AnsweredAt:  now,
	}); err != nil {
		// The review itself succeeded; a lost log entry is not worth
		// failing the attempt over.
		log.Warn("failed to log attempt: %v", err)
	}

	if err := s.sched.RecordExercise(ctx, in.LearnerID, item.Type, masteryGain, in.Latency, in.Correct); err != nil {
		log.Error("failed to update bandit state: %v", err)
		return nil, apperr.Internal(err)
	}

	return &AttemptResult{
		State:       nextState,
		Skill:       skill,
		MasteryGain: masteryGain,
	}, nil
}
