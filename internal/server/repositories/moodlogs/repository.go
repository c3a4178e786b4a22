package moodlogs

import (
	"context"

	"github.com/orionapp/companion/internal/server/models"
)

// Repository stores mood selections. Logs are append-only.
type Repository interface {
	Create(ctx context.Context, log *models.MoodLog) (*models.MoodLog, error)
	LatestByUser(ctx context.Context, userID string) (*models.MoodLog, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.MoodLog, error)
}
