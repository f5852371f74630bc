package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/barmentor/barmentor/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, learnerID, itemID string) (*models.UserProgress, error) {
	args := m.Called(ctx, learnerID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProgress), args.Error(1)
}

func (m *MockProgressRepository) ListForLearner(ctx context.Context, learnerID string) ([]models.UserProgress, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserProgress), args.Error(1)
}

func (m *MockProgressRepository) DueItems(ctx context.Context, learnerID string, before time.Time) ([]models.UserProgress, error) {
	args := m.Called(ctx, learnerID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserProgress), args.Error(1)
}

func (m *MockProgressRepository) Upsert(ctx context.Context, p models.UserProgress) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProgressRepository) LogAttempt(ctx context.Context, a models.Attempt) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockProgressRepository) RecentAttempts(ctx context.Context, learnerID string, limit int) ([]models.Attempt, error) {
	args := m.Called(ctx, learnerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attempt), args.Error(1)
}

func (m *MockProgressRepository) StaleBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.UserProgress, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserProgress), args.Error(1)
}
