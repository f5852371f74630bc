package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/barmentor/barmentor/internal/models"
)

// MockLearnerRepository is a mock implementation of repository.LearnerRepository
type MockLearnerRepository struct {
	mock.Mock
}

func (m *MockLearnerRepository) Get(ctx context.Context, id string) (*models.Learner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Learner), args.Error(1)
}

func (m *MockLearnerRepository) List(ctx context.Context) ([]models.Learner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Learner), args.Error(1)
}

func (m *MockLearnerRepository) Insert(ctx context.Context, l models.Learner) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLearnerRepository) UpdateSkill(ctx context.Context, id string, skill float64) error {
	args := m.Called(ctx, id, skill)
	return args.Error(0)
}

func (m *MockLearnerRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
