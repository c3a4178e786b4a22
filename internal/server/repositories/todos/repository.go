// Package todos provides persistence for todo items.
package todos

import (
	"context"

	"github.com/orionapp/companion/internal/server/models"
)

// Repository is the persistence contract for todo items. Every method is
// scoped by the owning user id; a row belonging to someone else behaves as
// if it did not exist.
type Repository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	GetByID(ctx context.Context, userID, id string) (*models.Todo, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) error
	Delete(ctx context.Context, userID, id string) error
	DeleteCompleted(ctx context.Context, userID string) (int64, error)
	Stats(ctx context.Context, userID string) (*models.TodoStats, error)
}
