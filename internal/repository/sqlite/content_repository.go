package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/barmentor/barmentor/internal/logger"
	"github.com/barmentor/barmentor/internal/models"
	"github.com/barmentor/barmentor/internal/repository"
)

type contentRepository struct {
	db *sql.DB
}

// NewContentRepository creates a new ContentRepository implementation.
func NewContentRepository(db *sql.DB) repository.ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) GetModule(ctx context.Context, id string) (*models.Module, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")

	var m models.Module
	err := r.db.QueryRowContext(ctx, `
SELECT id, title, description, position, created_at
FROM modules
WHERE id = ?
`, id).Scan(&m.ID, &m.Title, &m.Description, &m.Position, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("module not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get module: %v", err)
		return nil, err
	}
	return &m, nil
}

func (r *contentRepository) ListModules(ctx context.Context) ([]models.Module, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, description, position, created_at
FROM modules
ORDER BY position, title
`)
	if err != nil {
		log.Error("failed to list modules: %v", err)
		return nil, err
	}
	defer rows.Close()

	var modules []models.Module
	for rows.Next() {
		var m models.Module
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Position, &m.CreatedAt); err != nil {
			log.Error("failed to scan module row: %v", err)
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

func (r *contentRepository) GetLesson(ctx context.Context, id string) (*models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")

	var l models.Lesson
	err := r.db.QueryRowContext(ctx, `
SELECT id, module_id, title, position
FROM lessons
WHERE id = ?
`, id).Scan(&l.ID, &l.ModuleID, &l.Title, &l.Position)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("lesson not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get lesson: %v", err)
		return nil, err
	}
	return &l, nil
}

func (r *contentRepository) LessonsForModule(ctx context.Context, moduleID string) ([]models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, module_id, title, position
FROM lessons
WHERE module_id = ?
ORDER BY position, title
`, moduleID)
	if err != nil {
		log.Error("failed to list lessons: %v", err)
		return nil, err
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(&l.ID, &l.ModuleID, &l.Title, &l.Position); err != nil {
			log.Error("failed to scan lesson row: %v", err)
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func (r *contentRepository) ItemsForLesson(ctx context.Context, lessonID string) ([]models.Item, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, lesson_id, type, prompt, answer, difficulty, tags, created_at
FROM items
WHERE lesson_id = ?
ORDER BY created_at, id
`, lessonID)
	if err != nil {
		log.Error("failed to list items: %v", err)
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			log.Error("failed to scan item row: %v", err)
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *contentRepository) GetItem(ctx context.Context, id string) (*models.Item, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")

	row := r.db.QueryRowContext(ctx, `
SELECT id, lesson_id, type, prompt, answer, difficulty, tags, created_at
FROM items
WHERE id = ?
`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("item not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get item: %v", err)
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) UpdateItemDifficulty(ctx context.Context, id string, difficulty float64) error {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("updating item difficulty: id=%s, difficulty=%.3f", id, difficulty)

	_, err := r.db.ExecContext(ctx, `UPDATE items SET difficulty = ? WHERE id = ?`, difficulty, id)
	if err != nil {
		log.Error("failed to update item difficulty: %v", err)
	}
	return err
}

func (r *contentRepository) InsertModule(ctx context.Context, m models.Module) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO modules (id, title, description, position)
VALUES (?, ?, ?, ?)
`, m.ID, m.Title, m.Description, m.Position)
	return err
}

func (r *contentRepository) InsertLesson(ctx context.Context, l models.Lesson) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO lessons (id, module_id, title, position)
VALUES (?, ?, ?, ?)
`, l.ID, l.ModuleID, l.Title, l.Position)
	return err
}

func (r *contentRepository) InsertItem(ctx context.Context, item models.Item) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO items (id, lesson_id, type, prompt, answer, difficulty, tags)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, item.ID, item.LessonID, string(item.Type), item.Prompt, item.Answer, item.Difficulty, joinTags(item.Tags))
	return err
}

// ImportCatalog inserts a whole curriculum atomically. Used by seeding so a
// partial catalog never becomes visible.
func (r *contentRepository) ImportCatalog(ctx context.Context, modules []models.Module, lessons []models.Lesson, items []models.Item) error {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Info("importing catalog: %d modules, %d lessons, %d items", len(modules), len(lessons), len(items))

	return tx(ctx, r.db, func(t *sql.Tx) error {
		for _, m := range modules {
			if _, err := t.ExecContext(ctx, `
INSERT INTO modules (id, title, description, position)
VALUES (?, ?, ?, ?)
`, m.ID, m.Title, m.Description, m.Position); err != nil {
				return err
			}
		}
		for _, l := range lessons {
			if _, err := t.ExecContext(ctx, `
INSERT INTO lessons (id, module_id, title, position)
VALUES (?, ?, ?, ?)
`, l.ID, l.ModuleID, l.Title, l.Position); err != nil {
				return err
			}
		}
		for _, item := range items {
			if _, err := t.ExecContext(ctx, `
INSERT INTO items (id, lesson_id, type, prompt, answer, difficulty, tags)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, item.ID, item.LessonID, string(item.Type), item.Prompt, item.Answer, item.Difficulty, joinTags(item.Tags)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *contentRepository) CountItems(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (models.Item, error) {
	var item models.Item
	var itemType, tags string
	err := row.Scan(&item.ID, &item.LessonID, &itemType, &item.Prompt, &item.Answer, &item.Difficulty, &tags, &item.CreatedAt)
	if err != nil {
		return item, err
	}
	item.Type = models.ExerciseType(itemType)
	item.Tags = splitTags(tags)
	return item, nil
}
