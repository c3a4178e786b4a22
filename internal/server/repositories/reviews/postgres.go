package reviews

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

// PostgresRepository implements Repository over dbx.DBTX. List joins the
// users table so every page carries the reviewer's name and image.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}

	query := `
		INSERT INTO reviews (id, user_id, title, content, rating, author, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING is_active, is_approved, helpful_votes, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		review.ID, review.UserID, review.Title, review.Content,
		review.Rating, review.Author, review.Category).
		Scan(&review.IsActive, &review.IsApproved, &review.HelpfulVotes,
			&review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return review, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	query := `
		SELECT id, user_id, title, content, rating, author, category,
			is_active, is_approved, helpful_votes, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`

	rev := &models.Review{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&rev.ID, &rev.UserID, &rev.Title, &rev.Content, &rev.Rating,
			&rev.Author, &rev.Category, &rev.IsActive, &rev.IsApproved,
			&rev.HelpfulVotes, &rev.CreatedAt, &rev.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rev, nil
}

// orderClause maps a ListFilter sort name to SQL. Unknown names fall back
// to newest-first.
func orderClause(sort string) string {
	switch sort {
	case "rating_high":
		return "r.rating DESC, r.created_at DESC"
	case "rating_low":
		return "r.rating ASC, r.created_at DESC"
	case "helpful":
		return "r.helpful_votes DESC, r.created_at DESC"
	default:
		return "r.created_at DESC"
	}
}

// List returns one page of visible (active and approved) reviews plus the
// total count matching the filter.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*models.Review, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	where := "r.is_active AND r.is_approved"
	args := []any{}
	idx := 1
	if filter.Category != "" {
		where += fmt.Sprintf(" AND r.category = $%d", idx)
		args = append(args, filter.Category)
		idx++
	}
	if filter.Rating != 0 {
		where += fmt.Sprintf(" AND r.rating = $%d", idx)
		args = append(args, filter.Rating)
		idx++
	}

	countQuery := `SELECT count(*) FROM reviews r WHERE ` + where
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT r.id, r.user_id, r.title, r.content, r.rating, r.author, r.category,
			r.is_active, r.is_approved, r.helpful_votes, r.created_at, r.updated_at,
			u.name, u.image_key, u.image_url
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, where, orderClause(filter.Sort), idx, idx+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Review, 0)
	for rows.Next() {
		rev := &models.Review{}
		var name, imageKey, imageURL string
		err := rows.Scan(&rev.ID, &rev.UserID, &rev.Title, &rev.Content, &rev.Rating,
			&rev.Author, &rev.Category, &rev.IsActive, &rev.IsApproved,
			&rev.HelpfulVotes, &rev.CreatedAt, &rev.UpdatedAt,
			&name, &imageKey, &imageURL)
		if err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		reviewer := &models.Reviewer{ID: rev.UserID, Name: name}
		if imageKey != "" || imageURL != "" {
			reviewer.ProfileImage = &models.ProfileImage{PublicID: imageKey, URL: imageURL}
		}
		rev.Reviewer = reviewer
		result = append(result, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return result, total, nil
}

func (r *PostgresRepository) Update(ctx context.Context, review *models.Review) error {
	query := `
		UPDATE reviews
		SET title = $2, content = $3, rating = $4, author = $5,
			category = $6, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		review.ID, review.Title, review.Content, review.Rating,
		review.Author, review.Category)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM reviews WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
