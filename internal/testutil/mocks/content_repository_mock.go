package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/barmentor/barmentor/internal/models"
)

// MockContentRepository is a mock implementation of repository.ContentRepository
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) GetModule(ctx context.Context, id string) (*models.Module, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Module), args.Error(1)
}

func (m *MockContentRepository) ListModules(ctx context.Context) ([]models.Module, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Module), args.Error(1)
}

func (m *MockContentRepository) GetLesson(ctx context.Context, id string) (*models.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockContentRepository) LessonsForModule(ctx context.Context, moduleID string) ([]models.Lesson, error) {
	args := m.Called(ctx, moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lesson), args.Error(1)
}

func (m *MockContentRepository) ItemsForLesson(ctx context.Context, lessonID string) ([]models.Item, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockContentRepository) GetItem(ctx context.Context, id string) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockContentRepository) UpdateItemDifficulty(ctx context.Context, id string, difficulty float64) error {
	args := m.Called(ctx, id, difficulty)
	return args.Error(0)
}

func (m *MockContentRepository) InsertModule(ctx context.Context, mod models.Module) error {
	args := m.Called(ctx, mod)
	return args.Error(0)
}

func (m *MockContentRepository) InsertLesson(ctx context.Context, l models.Lesson) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockContentRepository) InsertItem(ctx context.Context, item models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockContentRepository) ImportCatalog(ctx context.Context, modules []models.Module, lessons []models.Lesson, items []models.Item) error {
	args := m.Called(ctx, modules, lessons, items)
	return args.Error(0)
}

func (m *MockContentRepository) CountItems(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
