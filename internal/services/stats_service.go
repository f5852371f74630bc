package services

import (
	"context"

	"github.com/barmentor/barmentor/internal/apperr"
	"github.com/barmentor/barmentor/internal/bandit"
	"github.com/barmentor/barmentor/internal/logger"
	"github.com/barmentor/barmentor/internal/repository"
	"github.com/barmentor/barmentor/internal/scheduler"
)

const sessionAnalysisWindow = 20

// LearnerStats bundles the observability projections for one learner.
type LearnerStats struct {
	Skill         float64                   `json:"skill"`
	ExerciseArms  []bandit.ArmStats         `json:"exercise_arms"`
	RecentSession scheduler.SessionAnalysis `json:"recent_session"`
}

// StatsService exposes read-only learner statistics.
type StatsService interface {
	GetLearnerStats(ctx context.Context, learnerID string) (*LearnerStats, error)
}

type statsService struct {
	sched    *scheduler.Scheduler
	progress repository.ProgressRepository
	learners repository.LearnerRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(sched *scheduler.Scheduler, progress repository.ProgressRepository, learners repository.LearnerRepository) StatsService {
	return &statsService{sched: sched, progress: progress, learners: learners}
}

func (s *statsService) GetLearnerStats(ctx context.Context, learnerID string) (*LearnerStats, error) {
	log := logger.FromContext(ctx)

	learner, err := s.learners.Get(ctx, learnerID)
	if err != nil {
		log.Error("failed to get learner: %v", err)
		return nil, apperr.Internal(err)
	}
	if learner == nil {
		return nil, apperr.NotFound("learner", learnerID)
	}

	arms, err := s.sched.BanditStats(ctx, learnerID)
	if err != nil {
		log.Error("failed to get bandit stats: %v", err)
		return nil, apperr.Internal(err)
	}

	attempts, err := s.progress.RecentAttempts(ctx, learnerID, sessionAnalysisWindow)
	if err != nil {
		log.Error("failed to get recent attempts: %v", err)
		return nil, apperr.Internal(err)
	}

	return &LearnerStats{
		Skill:         learner.Skill,
		ExerciseArms:  arms,
		RecentSession: scheduler.AnalyzeSession(attempts),
	}, nil
}
