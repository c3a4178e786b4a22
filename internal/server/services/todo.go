package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/orionapp/companion/internal/common"
	"github.com/orionapp/companion/internal/server/models"
	"github.com/orionapp/companion/internal/server/repositories/repomanager"
)

// TodoService owns the todo list rules: text and category limits, priority
// whitelist, and the completed/completedAt coupling.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTodoService(db *sql.DB, m repomanager.RepositoryManager) *TodoService {
	return &TodoService{db: db, repomanager: m}
}

// TodoInput carries the creatable/updatable todo fields.
type TodoInput struct {
	Text     string
	Priority string
	DueDate  *time.Time
	Category string
}

func validateTodoText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", common.NewValidationError("Todo text is required")
	}
	if len(text) > 200 {
		return "", common.NewValidationError("Todo text cannot exceed 200 characters")
	}
	return text, nil
}

func (s *TodoService) Create(ctx context.Context, userID string, in TodoInput) (*models.Todo, error) {
	text, err := validateTodoText(in.Text)
	if err != nil {
		return nil, err
	}

	todo := &models.Todo{
		UserID:   userID,
		Text:     text,
		Priority: models.PriorityMedium,
		Category: "general",
		DueDate:  in.DueDate,
	}
	if in.Priority != "" && models.ValidPriority(in.Priority) {
		todo.Priority = in.Priority
	}
	if c := strings.TrimSpace(in.Category); c != "" {
		if len(c) > 50 {
			return nil, common.NewValidationError("Category cannot exceed 50 characters")
		}
		todo.Category = c
	}

	created, err := s.repomanager.Todos(s.db).Create(ctx, todo)
	if err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}
	return created, nil
}

func (s *TodoService) Get(ctx context.Context, userID, id string) (*models.Todo, error) {
	return s.repomanager.Todos(s.db).GetByID(ctx, userID, id)
}

func (s *TodoService) List(ctx context.Context, userID string) ([]*models.Todo, error) {
	return s.repomanager.Todos(s.db).ListByUser(ctx, userID)
}

// TodoUpdate carries partial update fields; nil means "leave unchanged".
type TodoUpdate struct {
	Text      *string
	Completed *bool
	Priority  *string
	DueDate   *time.Time
	Category  *string
}

// Update applies a partial update. Flipping completed keeps completedAt in
// step: set on completing, cleared on un-completing.
func (s *TodoService) Update(ctx context.Context, userID, id string, upd TodoUpdate) (*models.Todo, error) {
	repo := s.repomanager.Todos(s.db)
	todo, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if upd.Text != nil {
		text, err := validateTodoText(*upd.Text)
		if err != nil {
			return nil, err
		}
		todo.Text = text
	}
	if upd.Priority != nil {
		if !models.ValidPriority(*upd.Priority) {
			return nil, common.NewValidationError("Priority must be low, medium or high")
		}
		todo.Priority = *upd.Priority
	}
	if upd.DueDate != nil {
		todo.DueDate = upd.DueDate
	}
	if upd.Category != nil {
		c := strings.TrimSpace(*upd.Category)
		if len(c) > 50 {
			return nil, common.NewValidationError("Category cannot exceed 50 characters")
		}
		if c == "" {
			c = "general"
		}
		todo.Category = c
	}
	if upd.Completed != nil && *upd.Completed != todo.Completed {
		s.setCompleted(todo, *upd.Completed)
	}

	if err := repo.Update(ctx, todo); err != nil {
		return nil, fmt.Errorf("updating todo: %w", err)
	}
	return todo, nil
}

func (s *TodoService) setCompleted(todo *models.Todo, completed bool) {
	todo.Completed = completed
	if completed {
		now := time.Now()
		todo.CompletedAt = &now
	} else {
		todo.CompletedAt = nil
	}
}

// Toggle flips the completed flag.
func (s *TodoService) Toggle(ctx context.Context, userID, id string) (*models.Todo, error) {
	repo := s.repomanager.Todos(s.db)
	todo, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	s.setCompleted(todo, !todo.Completed)
	if err := repo.Update(ctx, todo); err != nil {
		return nil, fmt.Errorf("toggling todo: %w", err)
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Todos(s.db).Delete(ctx, userID, id)
}

// DeleteCompleted removes all completed todos, returning how many went.
func (s *TodoService) DeleteCompleted(ctx context.Context, userID string) (int64, error) {
	return s.repomanager.Todos(s.db).DeleteCompleted(ctx, userID)
}

func (s *TodoService) Stats(ctx context.Context, userID string) (*models.TodoStats, error) {
	return s.repomanager.Todos(s.db).Stats(ctx, userID)
}
