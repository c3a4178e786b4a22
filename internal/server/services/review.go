package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/orionapp/companion/internal/common"
	"github.com/orionapp/companion/internal/server/models"
	"github.com/orionapp/companion/internal/server/repositories/repomanager"
	"github.com/orionapp/companion/internal/server/repositories/reviews"
)

// ReviewService owns the review board rules. Updates and deletes are
// restricted to the review's author.
type ReviewService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewReviewService(db *sql.DB, m repomanager.RepositoryManager) *ReviewService {
	return &ReviewService{db: db, repomanager: m}
}

// ReviewInput carries the creatable review fields.
type ReviewInput struct {
	Title    string
	Content  string
	Rating   int
	Category string
	Author   string
}

// ReviewPage is one page of the public listing.
type ReviewPage struct {
	Reviews    []*models.Review   `json:"reviews"`
	Pagination *models.Pagination `json:"pagination"`
}

func (s *ReviewService) Create(ctx context.Context, userID, userName string, in ReviewInput) (*models.Review, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" || in.Rating == 0 {
		return nil, common.NewValidationError("Please provide title, content, and rating")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, common.NewValidationError("Rating must be between 1 and 5")
	}
	if len(title) > 100 {
		return nil, common.NewValidationError("Title cannot exceed 100 characters")
	}
	if len(content) > 1000 {
		return nil, common.NewValidationError("Content cannot exceed 1000 characters")
	}

	category := in.Category
	if category == "" {
		category = "general"
	}
	if !models.ValidReviewCategory(category) {
		return nil, common.NewValidationError("Category must be one of robot, app, feature, support, general")
	}

	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = userName
	}
	if author == "" {
		author = "Anonymous"
	}
	if len(author) > 50 {
		return nil, common.NewValidationError("Author name cannot exceed 50 characters")
	}

	review := &models.Review{
		UserID:   userID,
		Title:    title,
		Content:  content,
		Rating:   in.Rating,
		Author:   author,
		Category: category,
	}
	created, err := s.repomanager.Reviews(s.db).Create(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("creating review: %w", err)
	}
	return created, nil
}

// List returns one page of visible reviews plus pagination metadata.
func (s *ReviewService) List(ctx context.Context, filter reviews.ListFilter) (*ReviewPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 50 {
		filter.Limit = 10
	}
	if filter.Category != "" && !models.ValidReviewCategory(filter.Category) {
		filter.Category = ""
	}

	list, total, err := s.repomanager.Reviews(s.db).List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}

	pages := total / filter.Limit
	if total%filter.Limit != 0 {
		pages++
	}
	return &ReviewPage{
		Reviews: list,
		Pagination: &models.Pagination{
			Page:  filter.Page,
			Limit: filter.Limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

// ReviewUpdate carries partial update fields.
type ReviewUpdate struct {
	Title    *string
	Content  *string
	Rating   *int
	Category *string
	Author   *string
}

// Update applies a partial update. Only the author may touch the review.
func (s *ReviewService) Update(ctx context.Context, userID, id string, upd ReviewUpdate) (*models.Review, error) {
	repo := s.repomanager.Reviews(s.db)
	review, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, common.ErrorForbidden
	}

	if upd.Title != nil {
		t := strings.TrimSpace(*upd.Title)
		if t == "" || len(t) > 100 {
			return nil, common.NewValidationError("Title cannot exceed 100 characters")
		}
		review.Title = t
	}
	if upd.Content != nil {
		c := strings.TrimSpace(*upd.Content)
		if c == "" || len(c) > 1000 {
			return nil, common.NewValidationError("Content cannot exceed 1000 characters")
		}
		review.Content = c
	}
	if upd.Rating != nil {
		if *upd.Rating < 1 || *upd.Rating > 5 {
			return nil, common.NewValidationError("Rating must be between 1 and 5")
		}
		review.Rating = *upd.Rating
	}
	if upd.Category != nil {
		if !models.ValidReviewCategory(*upd.Category) {
			return nil, common.NewValidationError("Category must be one of robot, app, feature, support, general")
		}
		review.Category = *upd.Category
	}
	if upd.Author != nil {
		a := strings.TrimSpace(*upd.Author)
		if a == "" || len(a) > 50 {
			return nil, common.NewValidationError("Author name cannot exceed 50 characters")
		}
		review.Author = a
	}

	if err := repo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("updating review: %w", err)
	}
	return review, nil
}

// Delete removes the caller's own review.
func (s *ReviewService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Reviews(s.db)
	review, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return common.ErrorForbidden
	}
	return repo.Delete(ctx, id)
}
