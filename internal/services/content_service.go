package services

import (
	"context"

	"github.com/barmentor/barmentor/internal/apperr"
	"github.com/barmentor/barmentor/internal/logger"
	"github.com/barmentor/barmentor/internal/models"
	"github.com/barmentor/barmentor/internal/repository"
)

// ModuleDetail is a module with its lessons and their items.
type ModuleDetail struct {
	Module  models.Module  `json:"module"`
	Lessons []LessonDetail `json:"lessons"`
}

type LessonDetail struct {
	Lesson models.Lesson `json:"lesson"`
	Items  []models.Item `json:"items"`
}

// ContentService handles curriculum reads.
type ContentService interface {
	ListModules(ctx context.Context) ([]models.Module, error)
	GetModuleDetail(ctx context.Context, id string) (*ModuleDetail, error)
}

type contentService struct {
	content repository.ContentRepository
}

// NewContentService creates a new ContentService.
func NewContentService(content repository.ContentRepository) ContentService {
	return &contentService{content: content}
}

func (s *contentService) ListModules(ctx context.Context) ([]models.Module, error) {
	log := logger.FromContext(ctx)

	modules, err := s.content.ListModules(ctx)
	if err != nil {
		log.Error("failed to list modules: %v", err)
		return nil, apperr.Internal(err)
	}
	return modules, nil
}

func (s *contentService) GetModuleDetail(ctx context.Context, id string) (*ModuleDetail, error) {
	log := logger.FromContext(ctx)

	module, err := s.content.GetModule(ctx, id)
	if err != nil {
		log.Error("failed to get module: %v", err)
		return nil, apperr.Internal(err)
	}
	if module == nil {
		return nil, apperr.NotFound("module", id)
	}

	lessons, err := s.content.LessonsForModule(ctx, id)
	if err != nil {
		log.Error("failed to list lessons: %v", err)
		return nil, apperr.Internal(err)
	}

	detail := &ModuleDetail{Module: *module}
	for _, lesson := range lessons {
		items, err := s.content.ItemsForLesson(ctx, lesson.ID)
		if err != nil {
			log.Error("failed to list items: %v", err)
			return nil, apperr.Internal(err)
		}
		detail.Lessons = append(detail.Lessons, LessonDetail{Lesson: lesson, Items: items})
	}
	return detail, nil
}
