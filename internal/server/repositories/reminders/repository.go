package reminders

import (
	"context"

	"github.com/orionapp/companion/internal/server/models"
)

// Repository stores per-user reminder schedules.
type Repository interface {
	Create(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error)
	GetByID(ctx context.Context, userID, id string) (*models.Reminder, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Reminder, error)
	Update(ctx context.Context, reminder *models.Reminder) error
	Delete(ctx context.Context, userID, id string) error
}
