package repository

import (
	"context"
	"time"

	"github.com/barmentor/barmentor/internal/models"
)

// ContentRepository handles curriculum data access.
type ContentRepository interface {
	GetModule(ctx context.Context, id string) (*models.Module, error)
	ListModules(ctx context.Context) ([]models.Module, error)
	GetLesson(ctx context.Context, id string) (*models.Lesson, error)
	LessonsForModule(ctx context.Context, moduleID string) ([]models.Lesson, error)
	ItemsForLesson(ctx context.Context, lessonID string) ([]models.Item, error)
	GetItem(ctx context.Context, id string) (*models.Item, error)
	UpdateItemDifficulty(ctx context.Context, id string, difficulty float64) error
	InsertModule(ctx context.Context, m models.Module) error
	InsertLesson(ctx context.Context, l models.Lesson) error
	InsertItem(ctx context.Context, item models.Item) error
	ImportCatalog(ctx context.Context, modules []models.Module, lessons []models.Lesson, items []models.Item) error
	CountItems(ctx context.Context) (int, error)
}

// ProgressRepository handles per-learner review state and attempt history.
type ProgressRepository interface {
	Get(ctx context.Context, learnerID, itemID string) (*models.UserProgress, error)
	ListForLearner(ctx context.Context, learnerID string) ([]models.UserProgress, error)
	DueItems(ctx context.Context, learnerID string, before time.Time) ([]models.UserProgress, error)
	Upsert(ctx context.Context, p models.UserProgress) error
	LogAttempt(ctx context.Context, a models.Attempt) error
	RecentAttempts(ctx context.Context, learnerID string, limit int) ([]models.Attempt, error)
	StaleBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.UserProgress, error)
}

// BanditRepository persists per-learner exercise-type bandit state.
type BanditRepository interface {
	Get(ctx context.Context, learnerID string) (*models.BanditHistory, error)
	Save(ctx context.Context, learnerID string, h models.BanditHistory) error
}

// LearnerRepository handles learner profiles.
type LearnerRepository interface {
	Get(ctx context.Context, id string) (*models.Learner, error)
	List(ctx context.Context) ([]models.Learner, error)
	Insert(ctx context.Context, l models.Learner) error
	UpdateSkill(ctx context.Context, id string, skill float64) error
	Delete(ctx context.Context, id string) error
}
