package moodlogs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/orionapp/companion/internal/common"
	"github.com/orionapp/companion/internal/dbx"
	"github.com/orionapp/companion/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, log *models.MoodLog) (*models.MoodLog, error) {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}

	query := `
		INSERT INTO mood_logs (id, user_id, mood)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, log.ID, log.UserID, log.Mood).
		Scan(&log.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return log, nil
}

func (r *PostgresRepository) LatestByUser(ctx context.Context, userID string) (*models.MoodLog, error) {
	query := `
		SELECT id, user_id, mood, created_at
		FROM mood_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	log := &models.MoodLog{}
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&log.ID, &log.UserID, &log.Mood, &log.Timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return log, nil
}

// ListByUser returns the newest logs first, at most limit of them.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.MoodLog, error) {
	if limit < 1 {
		limit = 30
	}

	query := `
		SELECT id, user_id, mood, created_at
		FROM mood_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.MoodLog, 0)
	for rows.Next() {
		log := &models.MoodLog{}
		if err := rows.Scan(&log.ID, &log.UserID, &log.Mood, &log.Timestamp); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
