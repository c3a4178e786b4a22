package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/orionapp/companion/internal/common"
	"github.com/orionapp/companion/internal/dbx"
	smail "github.com/orionapp/companion/internal/server/mail"
	"github.com/orionapp/companion/internal/server/models"
	"github.com/orionapp/companion/internal/server/repositories/chatmessages"
	"github.com/orionapp/companion/internal/server/repositories/moodlogs"
	"github.com/orionapp/companion/internal/server/repositories/reminders"
	"github.com/orionapp/companion/internal/server/repositories/reviews"
	"github.com/orionapp/companion/internal/server/repositories/todos"
	"github.com/orionapp/companion/internal/server/repositories/users"
)

// In-memory repository fakes. They implement enough of the repository
// contracts to drive the services through real flows without a database.

type fakeUsersRepo struct {
	byID map[string]*models.User
	// forced errors
	createErr error
	updateErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, common.ErrorConflict
		}
	}
	c := *u
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.IsActive = true
	c.Theme = models.ThemeAuto
	c.NotifyEmail = true
	c.NotifyPush = true
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.byID[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) UpdateLastLogin(ctx context.Context, id string) error {
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.LastLogin = time.Now()
	return nil
}

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, id string, hash string) error {
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	u.PasswordResetHash = ""
	u.PasswordResetExpires = time.Time{}
	return nil
}

func (f *fakeUsersRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	u, ok := f.byID[user.ID]
	if !ok {
		return common.ErrorNotFound
	}
	u.Name, u.Phone, u.Bio, u.Location = user.Name, user.Phone, user.Bio, user.Location
	u.ImageKey, u.ImageURL = user.ImageKey, user.ImageURL
	return nil
}

func (f *fakeUsersRepo) UpdatePreferences(ctx context.Context, id string, notifyEmail, notifyPush bool, theme string) error {
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.NotifyEmail, u.NotifyPush, u.Theme = notifyEmail, notifyPush, theme
	return nil
}

func (f *fakeUsersRepo) SetPasswordResetSecret(ctx context.Context, id string, hash string, expires time.Time) error {
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordResetHash, u.PasswordResetExpires = hash, expires
	return nil
}

func (f *fakeUsersRepo) FindByPasswordResetHash(ctx context.Context, hash string, now time.Time) (*models.User, error) {
	for _, u := range f.byID {
		if u.PasswordResetHash == hash && u.PasswordResetExpires.After(now) {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) SetEmailVerificationSecret(ctx context.Context, id string, hash string, expires time.Time) error {
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.EmailVerificationHash, u.EmailVerificationExpires = hash, expires
	return nil
}

func (f *fakeUsersRepo) FindByEmailVerificationHash(ctx context.Context, hash string, now time.Time) (*models.User, error) {
	for _, u := range f.byID {
		if u.EmailVerificationHash == hash && u.EmailVerificationExpires.After(now) {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) MarkEmailVerified(ctx context.Context, id string) error {
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.IsEmailVerified = true
	u.EmailVerificationHash = ""
	u.EmailVerificationExpires = time.Time{}
	return nil
}

func (f *fakeUsersRepo) Deactivate(ctx context.Context, id string, rewrittenEmail string) error {
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.IsActive = false
	u.Email = rewrittenEmail
	return nil
}

type fakeTodosRepo struct {
	byID map[string]*models.Todo
}

func newFakeTodosRepo() *fakeTodosRepo {
	return &fakeTodosRepo{byID: map[string]*models.Todo{}}
}

func (f *fakeTodosRepo) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	c := *todo
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.byID[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeTodosRepo) GetByID(ctx context.Context, userID, id string) (*models.Todo, error) {
	t, ok := f.byID[id]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	c := *t
	return &c, nil
}

func (f *fakeTodosRepo) ListByUser(ctx context.Context, userID string) ([]*models.Todo, error) {
	out := make([]*models.Todo, 0)
	for _, t := range f.byID {
		if t.UserID == userID {
			c := *t
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTodosRepo) Update(ctx context.Context, todo *models.Todo) error {
	t, ok := f.byID[todo.ID]
	if !ok || t.UserID != todo.UserID {
		return common.ErrorNotFound
	}
	c := *todo
	f.byID[todo.ID] = &c
	return nil
}

func (f *fakeTodosRepo) Delete(ctx context.Context, userID, id string) error {
	t, ok := f.byID[id]
	if !ok || t.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeTodosRepo) DeleteCompleted(ctx context.Context, userID string) (int64, error) {
	var n int64
	for id, t := range f.byID {
		if t.UserID == userID && t.Completed {
			delete(f.byID, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeTodosRepo) Stats(ctx context.Context, userID string) (*models.TodoStats, error) {
	stats := &models.TodoStats{}
	now := time.Now()
	for _, t := range f.byID {
		if t.UserID != userID {
			continue
		}
		stats.Total++
		if t.Completed {
			stats.Completed++
		} else {
			stats.Pending++
			if t.Priority == models.PriorityHigh {
				stats.HighPriority++
			}
			if t.DueDate != nil && t.DueDate.Before(now) {
				stats.Overdue++
			}
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = int(float64(stats.Completed)/float64(stats.Total)*100 + 0.5)
	}
	return stats, nil
}

type fakeReviewsRepo struct {
	byID map[string]*models.Review
}

func newFakeReviewsRepo() *fakeReviewsRepo {
	return &fakeReviewsRepo{byID: map[string]*models.Review{}}
}

func (f *fakeReviewsRepo) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	c := *review
	c.ID = uuid.NewString()
	c.IsActive = true
	c.IsApproved = true
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.byID[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeReviewsRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *r
	return &c, nil
}

func (f *fakeReviewsRepo) List(ctx context.Context, filter reviews.ListFilter) ([]*models.Review, int, error) {
	matching := make([]*models.Review, 0)
	for _, r := range f.byID {
		if !r.IsActive || !r.IsApproved {
			continue
		}
		if filter.Category != "" && r.Category != filter.Category {
			continue
		}
		if filter.Rating != 0 && r.Rating != filter.Rating {
			continue
		}
		c := *r
		matching = append(matching, &c)
	}
	sort.Slice(matching, func(i, j int) bool {
		a, b := matching[i], matching[j]
		switch filter.Sort {
		case "rating_high":
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
		case "rating_low":
			if a.Rating != b.Rating {
				return a.Rating < b.Rating
			}
		case "helpful":
			if a.HelpfulVotes != b.HelpfulVotes {
				return a.HelpfulVotes > b.HelpfulVotes
			}
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	total := len(matching)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return matching[start:end], total, nil
}

func (f *fakeReviewsRepo) Update(ctx context.Context, review *models.Review) error {
	if _, ok := f.byID[review.ID]; !ok {
		return common.ErrorNotFound
	}
	c := *review
	f.byID[review.ID] = &c
	return nil
}

func (f *fakeReviewsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeRemindersRepo struct {
	byID map[string]*models.Reminder
}

func newFakeRemindersRepo() *fakeRemindersRepo {
	return &fakeRemindersRepo{byID: map[string]*models.Reminder{}}
}

func (f *fakeRemindersRepo) Create(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	c := *reminder
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.byID[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeRemindersRepo) GetByID(ctx context.Context, userID, id string) (*models.Reminder, error) {
	r, ok := f.byID[id]
	if !ok || r.UserID != userID {
		return nil, common.ErrorNotFound
	}
	c := *r
	return &c, nil
}

func (f *fakeRemindersRepo) ListByUser(ctx context.Context, userID string) ([]*models.Reminder, error) {
	out := make([]*models.Reminder, 0)
	for _, r := range f.byID {
		if r.UserID == userID {
			c := *r
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RemindAt.Before(out[j].RemindAt) })
	return out, nil
}

func (f *fakeRemindersRepo) Update(ctx context.Context, reminder *models.Reminder) error {
	r, ok := f.byID[reminder.ID]
	if !ok || r.UserID != reminder.UserID {
		return common.ErrorNotFound
	}
	c := *reminder
	f.byID[reminder.ID] = &c
	return nil
}

func (f *fakeRemindersRepo) Delete(ctx context.Context, userID, id string) error {
	r, ok := f.byID[id]
	if !ok || r.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeMoodRepo struct {
	logs []*models.MoodLog
}

func newFakeMoodRepo() *fakeMoodRepo { return &fakeMoodRepo{} }

func (f *fakeMoodRepo) Create(ctx context.Context, log *models.MoodLog) (*models.MoodLog, error) {
	c := *log
	c.ID = uuid.NewString()
	c.Timestamp = time.Now()
	f.logs = append(f.logs, &c)
	out := c
	return &out, nil
}

func (f *fakeMoodRepo) LatestByUser(ctx context.Context, userID string) (*models.MoodLog, error) {
	for i := len(f.logs) - 1; i >= 0; i-- {
		if f.logs[i].UserID == userID {
			c := *f.logs[i]
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeMoodRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*models.MoodLog, error) {
	out := make([]*models.MoodLog, 0)
	for i := len(f.logs) - 1; i >= 0 && len(out) < limit; i-- {
		if f.logs[i].UserID == userID {
			c := *f.logs[i]
			out = append(out, &c)
		}
	}
	return out, nil
}

type fakeChatRepo struct {
	msgs []*models.ChatMessage
}

func newFakeChatRepo() *fakeChatRepo { return &fakeChatRepo{} }

func (f *fakeChatRepo) Append(ctx context.Context, msg *models.ChatMessage) (*models.ChatMessage, error) {
	c := *msg
	c.ID = uuid.NewString()
	c.Timestamp = time.Now()
	f.msgs = append(f.msgs, &c)

	var mine []*models.ChatMessage
	for _, m := range f.msgs {
		if m.UserID == msg.UserID {
			mine = append(mine, m)
		}
	}
	if extra := len(mine) - chatmessages.HistoryLimit; extra > 0 {
		drop := map[string]bool{}
		for _, m := range mine[:extra] {
			drop[m.ID] = true
		}
		kept := f.msgs[:0]
		for _, m := range f.msgs {
			if !drop[m.ID] {
				kept = append(kept, m)
			}
		}
		f.msgs = kept
	}
	out := c
	return &out, nil
}

func (f *fakeChatRepo) ListByUser(ctx context.Context, userID string) ([]*models.ChatMessage, error) {
	out := make([]*models.ChatMessage, 0)
	for _, m := range f.msgs {
		if m.UserID == userID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeChatRepo) Clear(ctx context.Context, userID string) error {
	kept := f.msgs[:0]
	for _, m := range f.msgs {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	f.msgs = kept
	return nil
}

func (f *fakeChatRepo) Stats(ctx context.Context, userID string) (*models.ChatStats, error) {
	stats := &models.ChatStats{}
	var totalLen int
	for _, m := range f.msgs {
		if m.UserID != userID {
			continue
		}
		stats.TotalMessages++
		if m.IsBot {
			stats.BotMessages++
		} else {
			stats.UserMessages++
		}
		totalLen += len(m.Text)
		ts := m.Timestamp
		stats.LastActivity = &ts
	}
	if stats.TotalMessages > 0 {
		stats.AverageMessageLength = int(float64(totalLen)/float64(stats.TotalMessages) + 0.5)
	}
	return stats, nil
}

// fakeRepoManager hands out the in-memory fakes regardless of the DBTX.
type fakeRepoManager struct {
	users     *fakeUsersRepo
	todos     *fakeTodosRepo
	reviews   *fakeReviewsRepo
	reminders *fakeRemindersRepo
	moods     *fakeMoodRepo
	chat      *fakeChatRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:     newFakeUsersRepo(),
		todos:     newFakeTodosRepo(),
		reviews:   newFakeReviewsRepo(),
		reminders: newFakeRemindersRepo(),
		moods:     newFakeMoodRepo(),
		chat:      newFakeChatRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository                 { return m.users }
func (m *fakeRepoManager) Todos(db dbx.DBTX) todos.Repository                 { return m.todos }
func (m *fakeRepoManager) Reviews(db dbx.DBTX) reviews.Repository             { return m.reviews }
func (m *fakeRepoManager) Reminders(db dbx.DBTX) reminders.Repository         { return m.reminders }
func (m *fakeRepoManager) MoodLogs(db dbx.DBTX) moodlogs.Repository           { return m.moods }
func (m *fakeRepoManager) ChatMessages(db dbx.DBTX) chatmessages.Repository   { return m.chat }

// fakeMailer records outbound mail and can be told to fail.
type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg smail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg.Body)
	return nil
}
