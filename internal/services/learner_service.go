package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/barmentor/barmentor/internal/apperr"
	"github.com/barmentor/barmentor/internal/elo"
	"github.com/barmentor/barmentor/internal/logger"
	"github.com/barmentor/barmentor/internal/models"
	"github.com/barmentor/barmentor/internal/repository"
)

// LearnerService handles learner-related business logic.
type LearnerService interface {
	ListLearners(ctx context.Context) ([]models.Learner, error)
	CreateLearner(ctx context.Context, name string) (*models.Learner, error)
	GetLearner(ctx context.Context, id string) (*models.Learner, error)
	DeleteLearner(ctx context.Context, id string) error
	ApplyPlacement(ctx context.Context, id string, correct, total int) (*models.Learner, error)
}

type learnerService struct {
	learners repository.LearnerRepository
}

// NewLearnerService creates a new LearnerService.
func NewLearnerService(learners repository.LearnerRepository) LearnerService {
	return &learnerService{learners: learners}
}

func (s *learnerService) ListLearners(ctx context.Context) ([]models.Learner, error) {
	log := logger.FromContext(ctx)

	learners, err := s.learners.List(ctx)
	if err != nil {
		log.Error("failed to list learners: %v", err)
		return nil, apperr.Internal(err)
	}
	return learners, nil
}

func (s *learnerService) CreateLearner(ctx context.Context, name string) (*models.Learner, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating learner: name=%s", name)

	if name == "" {
		return nil, apperr.Validation("name", "cannot be empty")
	}

	learner := models.Learner{
		ID:    uuid.NewString(),
		Name:  name,
		Skill: 0.5,
	}
	if err := s.learners.Insert(ctx, learner); err != nil {
		log.Error("failed to create learner: %v", err)
		return nil, apperr.Internal(err)
	}
	return &learner, nil
}

func (s *learnerService) GetLearner(ctx context.Context, id string) (*models.Learner, error) {
	log := logger.FromContext(ctx)

	learner, err := s.learners.Get(ctx, id)
	if err != nil {
		log.Error("failed to get learner: %v", err)
		return nil, apperr.Internal(err)
	}
	if learner == nil {
		return nil, apperr.NotFound("learner", id)
	}
	return learner, nil
}

func (s *learnerService) DeleteLearner(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting learner: id=%s", id)

	if err := s.learners.Delete(ctx, id); err != nil {
		log.Error("failed to delete learner: %v", err)
		return apperr.Internal(err)
	}
	return nil
}

// ApplyPlacement seeds the learner's skill from a placement quiz score.
func (s *learnerService) ApplyPlacement(ctx context.Context, id string, correct, total int) (*models.Learner, error) {
	log := logger.FromContext(ctx)

	if correct < 0 || total < 0 || correct > total {
		return nil, apperr.Validation("placement", "correct must be between 0 and total")
	}

	learner, err := s.GetLearner(ctx, id)
	if err != nil {
		return nil, err
	}

	skill := elo.InitializeUserSkill(correct, total, 1.0)
	if err := s.learners.UpdateSkill(ctx, id, skill); err != nil {
		log.Error("failed to update learner skill: %v", err)
		return nil, apperr.Internal(err)
	}

	log.Info("placement applied: learner_id=%s, skill=%.3f", id, skill)
	learner.Skill = skill
	return learner, nil
}
