package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/barmentor/barmentor/internal/logger"
	"github.com/barmentor/barmentor/internal/models"
	"github.com/barmentor/barmentor/internal/repository"
)

type learnerRepository struct {
	db *sql.DB
}

// NewLearnerRepository creates a new LearnerRepository implementation.
func NewLearnerRepository(db *sql.DB) repository.LearnerRepository {
	return &learnerRepository{db: db}
}

func (r *learnerRepository) Get(ctx context.Context, id string) (*models.Learner, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")

	var l models.Learner
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, skill, created_at
FROM learners
WHERE id = ?
`, id).Scan(&l.ID, &l.Name, &l.Skill, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get learner: %v", err)
		return nil, err
	}
	return &l, nil
}

func (r *learnerRepository) List(ctx context.Context) ([]models.Learner, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, skill, created_at
FROM learners
ORDER BY created_at
`)
	if err != nil {
		log.Error("failed to list learners: %v", err)
		return nil, err
	}
	defer rows.Close()

	var learners []models.Learner
	for rows.Next() {
		var l models.Learner
		if err := rows.Scan(&l.ID, &l.Name, &l.Skill, &l.CreatedAt); err != nil {
			log.Error("failed to scan learner row: %v", err)
			return nil, err
		}
		learners = append(learners, l)
	}
	return learners, rows.Err()
}

func (r *learnerRepository) Insert(ctx context.Context, l models.Learner) error {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("inserting learner: id=%s, name=%s", l.ID, l.Name)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO learners (id, name, skill)
VALUES (?, ?, ?)
`, l.ID, l.Name, l.Skill)
	if err != nil {
		log.Error("failed to insert learner: %v", err)
	}
	return err
}

func (r *learnerRepository) UpdateSkill(ctx context.Context, id string, skill float64) error {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("updating learner skill: id=%s, skill=%.3f", id, skill)

	_, err := r.db.ExecContext(ctx, `UPDATE learners SET skill = ? WHERE id = ?`, skill, id)
	if err != nil {
		log.Error("failed to update learner skill: %v", err)
	}
	return err
}

func (r *learnerRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("deleting learner: id=%s", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM learners WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete learner: %v", err)
	}
	return err
}
