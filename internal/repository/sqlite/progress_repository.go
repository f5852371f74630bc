package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/barmentor/barmentor/internal/logger"
	"github.com/barmentor/barmentor/internal/models"
	"github.com/barmentor/barmentor/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation.
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

const progressColumns = "learner_id, item_id, mastery, stability, due_at, first_seen_at, updated_at"

func (r *progressRepository) Get(ctx context.Context, learnerID, itemID string) (*models.UserProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	row := r.db.QueryRowContext(ctx, `
SELECT `+progressColumns+`
FROM user_progress
WHERE learner_id = ? AND item_id = ?
`, learnerID, itemID)
	p, err := scanProgress(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *progressRepository) ListForLearner(ctx context.Context, learnerID string) ([]models.UserProgress, error) {
	return r.queryProgress(ctx, sq.Select(progressColumns).
		From("user_progress").
		Where(sq.Eq{"learner_id": learnerID}))
}

func (r *progressRepository) DueItems(ctx context.Context, learnerID string, before time.Time) ([]models.UserProgress, error) {
	return r.queryProgress(ctx, sq.Select(progressColumns).
		From("user_progress").
		Where(sq.Eq{"learner_id": learnerID}).
		Where(sq.LtOrEq{"due_at": before}).
		OrderBy("due_at"))
}

func (r *progressRepository) StaleBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.UserProgress, error) {
	return r.queryProgress(ctx, sq.Select(progressColumns).
		From("user_progress").
		Where(sq.Lt{"due_at": cutoff}).
		OrderBy("due_at").
		Limit(uint64(limit)))
}

func (r *progressRepository) queryProgress(ctx context.Context, builder sq.SelectBuilder) ([]models.UserProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	query, args, err := builder.ToSql()
	if err != nil {
		log.Error("failed to build progress query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.UserProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			log.Error("failed to scan progress row: %v", err)
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

func (r *progressRepository) Upsert(ctx context.Context, p models.UserProgress) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("upserting progress: learner_id=%s, item_id=%s, mastery=%.3f", p.LearnerID, p.ItemID, p.State.Mastery)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_progress (learner_id, item_id, mastery, stability, due_at, first_seen_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (learner_id, item_id) DO UPDATE SET
    mastery = excluded.mastery,
    stability = excluded.stability,
    due_at = excluded.due_at,
    updated_at = excluded.updated_at
`, p.LearnerID, p.ItemID, p.State.Mastery, p.State.Stability, p.State.DueAt, p.FirstSeenAt, p.UpdatedAt)
	if err != nil {
		log.Error("failed to upsert progress: %v", err)
	}
	return err
}

func (r *progressRepository) LogAttempt(ctx context.Context, a models.Attempt) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	_, err := r.db.ExecContext(ctx, `
INSERT INTO attempts (id, learner_id, item_id, correct, latency_ms, mastery_gain, answered_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, a.ID, a.LearnerID, a.ItemID, a.Correct, a.Latency.Milliseconds(), a.MasteryGain, a.AnsweredAt)
	if err != nil {
		log.Error("failed to log attempt: %v", err)
	}
	return err
}

func (r *progressRepository) RecentAttempts(ctx context.Context, learnerID string, limit int) ([]models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	query, args, err := sq.Select("id", "learner_id", "item_id", "correct", "latency_ms", "mastery_gain", "answered_at").
		From("attempts").
		Where(sq.Eq{"learner_id": learnerID}).
		OrderBy("answered_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		log.Error("failed to build attempts query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var a models.Attempt
		var latencyMS int64
		if err := rows.Scan(&a.ID, &a.LearnerID, &a.ItemID, &a.Correct, &latencyMS, &a.MasteryGain, &a.AnsweredAt); err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		a.Latency = time.Duration(latencyMS) * time.Millisecond
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func scanProgress(row rowScanner) (models.UserProgress, error) {
	var p models.UserProgress
	err := row.Scan(&p.LearnerID, &p.ItemID, &p.State.Mastery, &p.State.Stability, &p.State.DueAt, &p.FirstSeenAt, &p.UpdatedAt)
	return p, err
}
