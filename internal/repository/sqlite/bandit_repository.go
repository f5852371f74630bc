package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/barmentor/barmentor/internal/logger"
	"github.com/barmentor/barmentor/internal/models"
	"github.com/barmentor/barmentor/internal/repository"
)

type banditRepository struct {
	db *sql.DB
}

// NewBanditRepository creates a new BanditRepository implementation.
// Arm statistics are stored as a JSON column so the bandit state survives
// restarts and is shared across server instances.
func NewBanditRepository(db *sql.DB) repository.BanditRepository {
	return &banditRepository{db: db}
}

func (r *banditRepository) Get(ctx context.Context, learnerID string) (*models.BanditHistory, error) {
	log := logger.FromContext(ctx).WithPrefix("bandit_repo")

	var epsilon float64
	var totalAttempts int
	var armsJSON string
	err := r.db.QueryRowContext(ctx, `
SELECT epsilon, total_attempts, arms
FROM bandit_state
WHERE learner_id = ?
`, learnerID).Scan(&epsilon, &totalAttempts, &armsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get bandit state: %v", err)
		return nil, err
	}

	var arms map[models.ExerciseType]models.BanditArm
	if err := json.Unmarshal([]byte(armsJSON), &arms); err != nil {
		log.Error("failed to decode bandit arms: %v", err)
		return nil, err
	}

	return &models.BanditHistory{
		Arms:          arms,
		Epsilon:       epsilon,
		TotalAttempts: totalAttempts,
	}, nil
}

func (r *banditRepository) Save(ctx context.Context, learnerID string, h models.BanditHistory) error {
	log := logger.FromContext(ctx).WithPrefix("bandit_repo")

	armsJSON, err := json.Marshal(h.Arms)
	if err != nil {
		log.Error("failed to encode bandit arms: %v", err)
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO bandit_state (learner_id, epsilon, total_attempts, arms, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (learner_id) DO UPDATE SET
    epsilon = excluded.epsilon,
    total_attempts = excluded.total_attempts,
    arms = excluded.arms,
    updated_at = excluded.updated_at
`, learnerID, h.Epsilon, h.TotalAttempts, string(armsJSON), time.Now().UTC())
	if err != nil {
		log.Error("failed to save bandit state: %v", err)
	}
	return err
}
