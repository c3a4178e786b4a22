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

// ReminderService owns the reminder schedule rules.
type ReminderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewReminderService(db *sql.DB, m repomanager.RepositoryManager) *ReminderService {
	return &ReminderService{db: db, repomanager: m}
}

// ReminderInput carries the creatable/updatable reminder fields.
type ReminderInput struct {
	Title    string
	Notes    string
	RemindAt time.Time
	Repeat   string
	Done     bool
}

func (s *ReminderService) validate(in *ReminderInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return common.NewValidationError("Reminder title is required")
	}
	if in.RemindAt.IsZero() {
		return common.NewValidationError("Reminder time is required")
	}
	if in.Repeat == "" {
		in.Repeat = models.RepeatNone
	}
	if !models.ValidRepeat(in.Repeat) {
		return common.NewValidationError("Repeat must be none, daily or weekly")
	}
	return nil
}

func (s *ReminderService) Create(ctx context.Context, userID string, in ReminderInput) (*models.Reminder, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	reminder := &models.Reminder{
		UserID:   userID,
		Title:    in.Title,
		Notes:    in.Notes,
		RemindAt: in.RemindAt,
		Repeat:   in.Repeat,
		Done:     in.Done,
	}
	created, err := s.repomanager.Reminders(s.db).Create(ctx, reminder)
	if err != nil {
		return nil, fmt.Errorf("creating reminder: %w", err)
	}
	return created, nil
}

func (s *ReminderService) List(ctx context.Context, userID string) ([]*models.Reminder, error) {
	return s.repomanager.Reminders(s.db).ListByUser(ctx, userID)
}

// Update replaces the reminder's fields. The row must belong to the caller.
func (s *ReminderService) Update(ctx context.Context, userID, id string, in ReminderInput) (*models.Reminder, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	repo := s.repomanager.Reminders(s.db)
	reminder, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	reminder.Title = in.Title
	reminder.Notes = in.Notes
	reminder.RemindAt = in.RemindAt
	reminder.Repeat = in.Repeat
	reminder.Done = in.Done

	if err := repo.Update(ctx, reminder); err != nil {
		return nil, fmt.Errorf("updating reminder: %w", err)
	}
	return reminder, nil
}

func (s *ReminderService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Reminders(s.db).Delete(ctx, userID, id)
}
