package todos

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

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const todoColumns = `id, user_id, text, completed, priority, due_date, category,
	completed_at, created_at, updated_at`

func scanTodo(scan func(dest ...any) error) (*models.Todo, error) {
	t := &models.Todo{}
	var dueDate, completedAt sql.NullTime

	err := scan(&t.ID, &t.UserID, &t.Text, &t.Completed, &t.Priority,
		&dueDate, &t.Category, &completedAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		t.DueDate = &dueDate.Time
	}
	if completedAt.Valid {
		t.CompletedAt = &completedAt.Time
	}
	return t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}

	query := `
		INSERT INTO todos (id, user_id, text, priority, due_date, category)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING completed, completed_at, created_at, updated_at
	`

	var completedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query,
		todo.ID, todo.UserID, todo.Text, todo.Priority, todo.DueDate, todo.Category).
		Scan(&todo.Completed, &completedAt, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1 AND user_id = $2`

	row := r.db.QueryRowContext(ctx, query, id, userID)
	t, err := scanTodo(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// ListByUser returns the user's todos, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Update writes the mutable fields of todo, keyed by id and owner.
func (r *PostgresRepository) Update(ctx context.Context, todo *models.Todo) error {
	query := `
		UPDATE todos
		SET text = $3, completed = $4, priority = $5, due_date = $6,
			category = $7, completed_at = $8, updated_at = now()
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query,
		todo.ID, todo.UserID, todo.Text, todo.Completed, todo.Priority,
		todo.DueDate, todo.Category, todo.CompletedAt)
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

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
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

// DeleteCompleted removes all completed todos and returns how many went away.
func (r *PostgresRepository) DeleteCompleted(ctx context.Context, userID string) (int64, error) {
	query := `DELETE FROM todos WHERE user_id = $1 AND completed = TRUE`

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return affected, nil
}

// Stats aggregates the user's todo counters in a single query.
func (r *PostgresRepository) Stats(ctx context.Context, userID string) (*models.TodoStats, error) {
	query := `
		SELECT count(*),
			count(*) FILTER (WHERE completed),
			count(*) FILTER (WHERE NOT completed AND priority = 'high'),
			count(*) FILTER (WHERE NOT completed AND due_date IS NOT NULL AND due_date < now())
		FROM todos
		WHERE user_id = $1
	`

	s := &models.TodoStats{}
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&s.Total, &s.Completed, &s.HighPriority, &s.Overdue)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = int(float64(s.Completed)/float64(s.Total)*100 + 0.5)
	}
	return s, nil
}
