package chatmessages

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/orionapp/companion/internal/dbx"
	"github.com/orionapp/companion/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Append stores one message and prunes the user's history down to
// HistoryLimit entries.
func (r *PostgresRepository) Append(ctx context.Context, msg *models.ChatMessage) (*models.ChatMessage, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	query := `
		INSERT INTO chat_messages (id, user_id, text, is_bot)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, msg.ID, msg.UserID, msg.Text, msg.IsBot).
		Scan(&msg.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	prune := `
		DELETE FROM chat_messages
		WHERE user_id = $1 AND id NOT IN (
			SELECT id FROM chat_messages
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		)
	`
	if _, err := r.db.ExecContext(ctx, prune, msg.UserID, HistoryLimit); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return msg, nil
}

// ListByUser returns the conversation oldest-first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.ChatMessage, error) {
	query := `
		SELECT id, user_id, text, is_bot, created_at
		FROM chat_messages
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.ChatMessage, 0)
	for rows.Next() {
		msg := &models.ChatMessage{}
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Text, &msg.IsBot, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Clear(ctx context.Context, userID string) error {
	query := `DELETE FROM chat_messages WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Stats aggregates the conversation in one query.
func (r *PostgresRepository) Stats(ctx context.Context, userID string) (*models.ChatStats, error) {
	query := `
		SELECT
			count(*),
			count(*) FILTER (WHERE NOT is_bot),
			count(*) FILTER (WHERE is_bot),
			max(created_at),
			COALESCE(round(avg(length(text))), 0)
		FROM chat_messages
		WHERE user_id = $1
	`

	stats := &models.ChatStats{}
	var last sql.NullTime
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&stats.TotalMessages, &stats.UserMessages, &stats.BotMessages,
			&last, &stats.AverageMessageLength)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if last.Valid {
		stats.LastActivity = &last.Time
	}
	return stats, nil
}
