package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/barmentor/barmentor/internal/models"
)

// MockBanditRepository is a mock implementation of repository.BanditRepository
type MockBanditRepository struct {
	mock.Mock
}

func (m *MockBanditRepository) Get(ctx context.Context, learnerID string) (*models.BanditHistory, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BanditHistory), args.Error(1)
}

func (m *MockBanditRepository) Save(ctx context.Context, learnerID string, h models.BanditHistory) error {
	args := m.Called(ctx, learnerID, h)
	return args.Error(0)
}
