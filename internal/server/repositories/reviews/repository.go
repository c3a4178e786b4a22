// Package reviews provides persistence for the review/rating board.
package reviews

import (
	"context"

	"github.com/orionapp/companion/internal/server/models"
)

// ListFilter narrows and orders a page of reviews. Zero values mean
// "no filter". Sort is one of: newest (default), rating_high, rating_low,
// helpful.
type ListFilter struct {
	Category string
	Rating   int
	Sort     string
	Page     int
	Limit    int
}

// Repository is the persistence contract for reviews.
type Repository interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	GetByID(ctx context.Context, id string) (*models.Review, error)
	List(ctx context.Context, filter ListFilter) ([]*models.Review, int, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id string) error
}
