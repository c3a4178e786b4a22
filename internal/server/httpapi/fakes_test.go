package httpapi

import (
	"context"

	"github.com/orionapp/companion/internal/server/models"
	"github.com/orionapp/companion/internal/server/repositories/reviews"
	"github.com/orionapp/companion/internal/server/services"
)

// Stub services for handler tests. Each stub returns canned values, records
// the arguments the handlers pass through, and fails every call when err is
// set.

type stubUsers struct {
	res     *services.AuthResult
	profile *models.Profile
	prefs   *models.Preferences
	err     error

	lastUserID string
	lastEmail  string
	lastSecret string
	lastUpdate services.ProfileUpdate
}

func (s *stubUsers) Register(_ context.Context, _, email, _ string) (*services.AuthResult, error) {
	s.lastEmail = email
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

func (s *stubUsers) Login(_ context.Context, email, _ string) (*services.AuthResult, error) {
	s.lastEmail = email
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

func (s *stubUsers) Me(_ context.Context, userID string) (*models.Profile, error) {
	s.lastUserID = userID
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

func (s *stubUsers) UpdateProfile(_ context.Context, userID string, upd services.ProfileUpdate) (*models.Profile, error) {
	s.lastUserID = userID
	s.lastUpdate = upd
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

func (s *stubUsers) UpdatePassword(_ context.Context, userID, _, _, _ string) (*services.AuthResult, error) {
	s.lastUserID = userID
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

func (s *stubUsers) ForgotPassword(_ context.Context, email string) error {
	s.lastEmail = email
	return s.err
}

func (s *stubUsers) ResetPassword(_ context.Context, secret, _, _ string) (*services.AuthResult, error) {
	s.lastSecret = secret
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

func (s *stubUsers) VerifyEmail(_ context.Context, secret string) error {
	s.lastSecret = secret
	return s.err
}

func (s *stubUsers) Preferences(_ context.Context, userID string) (*models.Preferences, error) {
	s.lastUserID = userID
	if s.err != nil {
		return nil, s.err
	}
	return s.prefs, nil
}

func (s *stubUsers) UpdatePreferences(_ context.Context, userID string, _ services.PreferencesUpdate) (*models.Preferences, error) {
	s.lastUserID = userID
	if s.err != nil {
		return nil, s.err
	}
	return s.prefs, nil
}

func (s *stubUsers) DeleteAccount(_ context.Context, userID, _ string) error {
	s.lastUserID = userID
	return s.err
}

type stubProfiles struct {
	profile *models.Profile
	err     error

	lastSize        int
	lastContentType string
}

func (s *stubProfiles) UploadImage(_ context.Context, _ string, data []byte, contentType string) (*models.Profile, error) {
	s.lastSize = len(data)
	s.lastContentType = contentType
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

func (s *stubProfiles) DeleteImage(_ context.Context, _ string) (*models.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

type stubTodos struct {
	todo    *models.Todo
	todos   []*models.Todo
	stats   *models.TodoStats
	deleted int64
	err     error

	lastID     string
	lastInput  services.TodoInput
	lastUpdate services.TodoUpdate
	toggled    string
}

func (s *stubTodos) Create(_ context.Context, _ string, in services.TodoInput) (*models.Todo, error) {
	s.lastInput = in
	if s.err != nil {
		return nil, s.err
	}
	return s.todo, nil
}

func (s *stubTodos) Get(_ context.Context, _, id string) (*models.Todo, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.todo, nil
}

func (s *stubTodos) List(_ context.Context, _ string) ([]*models.Todo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.todos, nil
}

func (s *stubTodos) Update(_ context.Context, _, id string, upd services.TodoUpdate) (*models.Todo, error) {
	s.lastID = id
	s.lastUpdate = upd
	if s.err != nil {
		return nil, s.err
	}
	return s.todo, nil
}

func (s *stubTodos) Toggle(_ context.Context, _, id string) (*models.Todo, error) {
	s.toggled = id
	if s.err != nil {
		return nil, s.err
	}
	return s.todo, nil
}

func (s *stubTodos) Delete(_ context.Context, _, id string) error {
	s.lastID = id
	return s.err
}

func (s *stubTodos) DeleteCompleted(_ context.Context, _ string) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.deleted, nil
}

func (s *stubTodos) Stats(_ context.Context, _ string) (*models.TodoStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.stats, nil
}

type stubReviews struct {
	review *models.Review
	page   *services.ReviewPage
	err    error

	lastID       string
	lastUserName string
	lastFilter   reviews.ListFilter
}

func (s *stubReviews) Create(_ context.Context, _, userName string, _ services.ReviewInput) (*models.Review, error) {
	s.lastUserName = userName
	if s.err != nil {
		return nil, s.err
	}
	return s.review, nil
}

func (s *stubReviews) List(_ context.Context, filter reviews.ListFilter) (*services.ReviewPage, error) {
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return s.page, nil
}

func (s *stubReviews) Update(_ context.Context, _, id string, _ services.ReviewUpdate) (*models.Review, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.review, nil
}

func (s *stubReviews) Delete(_ context.Context, _, id string) error {
	s.lastID = id
	return s.err
}

type stubReminders struct {
	reminder  *models.Reminder
	reminders []*models.Reminder
	err       error

	lastID    string
	lastInput services.ReminderInput
}

func (s *stubReminders) Create(_ context.Context, _ string, in services.ReminderInput) (*models.Reminder, error) {
	s.lastInput = in
	if s.err != nil {
		return nil, s.err
	}
	return s.reminder, nil
}

func (s *stubReminders) List(_ context.Context, _ string) ([]*models.Reminder, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.reminders, nil
}

func (s *stubReminders) Update(_ context.Context, _, id string, in services.ReminderInput) (*models.Reminder, error) {
	s.lastID = id
	s.lastInput = in
	if s.err != nil {
		return nil, s.err
	}
	return s.reminder, nil
}

func (s *stubReminders) Delete(_ context.Context, _, id string) error {
	s.lastID = id
	return s.err
}

type stubMoods struct {
	log  *models.MoodLog
	logs []*models.MoodLog
	recs []string
	err  error

	lastMood  string
	lastLimit int
}

func (s *stubMoods) Log(_ context.Context, _, mood string) (*models.MoodLog, error) {
	s.lastMood = mood
	if s.err != nil {
		return nil, s.err
	}
	return s.log, nil
}

func (s *stubMoods) Latest(_ context.Context, _ string) (*models.MoodLog, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.log, nil
}

func (s *stubMoods) History(_ context.Context, _ string, limit int) ([]*models.MoodLog, error) {
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.logs, nil
}

func (s *stubMoods) Recommendations(mood string) []string {
	s.lastMood = mood
	return s.recs
}

type stubChat struct {
	msg   *models.ChatMessage
	msgs  []*models.ChatMessage
	stats *models.ChatStats
	err   error

	lastText  string
	lastIsBot bool
	cleared   bool
}

func (s *stubChat) SaveMessage(_ context.Context, _, text string, isBot bool) (*models.ChatMessage, error) {
	s.lastText = text
	s.lastIsBot = isBot
	if s.err != nil {
		return nil, s.err
	}
	return s.msg, nil
}

func (s *stubChat) History(_ context.Context, _ string) ([]*models.ChatMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.msgs, nil
}

func (s *stubChat) ClearHistory(_ context.Context, _ string) error {
	s.cleared = true
	return s.err
}

func (s *stubChat) Stats(_ context.Context, _ string) (*models.ChatStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.stats, nil
}

// stubSet bundles one stub per service interface with canned defaults.
type stubSet struct {
	users     *stubUsers
	profiles  *stubProfiles
	todos     *stubTodos
	reviews   *stubReviews
	reminders *stubReminders
	moods     *stubMoods
	chat      *stubChat
}

func newStubs() *stubSet {
	profile := &models.Profile{ID: "u1", Name: "Alice", Email: "alice@example.com"}
	return &stubSet{
		users: &stubUsers{
			res:     &services.AuthResult{Token: "tok-123", Profile: profile},
			profile: profile,
			prefs:   &models.Preferences{Theme: models.ThemeAuto},
		},
		profiles: &stubProfiles{profile: profile},
		todos: &stubTodos{
			todo:  &models.Todo{ID: "t1", UserID: "u1", Text: "water the plants", Priority: "medium", Category: "general"},
			stats: &models.TodoStats{},
		},
		reviews: &stubReviews{
			review: &models.Review{ID: "r1", UserID: "u1", Title: "Great robot", Rating: 5},
			page:   &services.ReviewPage{Reviews: []*models.Review{}, Pagination: &models.Pagination{Page: 1, Limit: 10}},
		},
		reminders: &stubReminders{
			reminder: &models.Reminder{ID: "rem1", UserID: "u1", Title: "Charge the robot"},
		},
		moods: &stubMoods{
			log:  &models.MoodLog{ID: "m1", UserID: "u1", Mood: "happy"},
			recs: []string{"Happy - Pharrell Williams"},
		},
		chat: &stubChat{
			msg:   &models.ChatMessage{ID: "c1", UserID: "u1", Text: "hello"},
			stats: &models.ChatStats{},
		},
	}
}

func (s *stubSet) services() Services {
	return Services{
		Users:     s.users,
		Profiles:  s.profiles,
		Todos:     s.todos,
		Reviews:   s.reviews,
		Reminders: s.reminders,
		Moods:     s.moods,
		Chat:      s.chat,
	}
}
