package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/orionapp/companion/internal/logging"
	"github.com/orionapp/companion/internal/server/config"
	"github.com/orionapp/companion/internal/server/models"
	"github.com/orionapp/companion/internal/server/repositories/reviews"
	"github.com/orionapp/companion/internal/server/services"
)

// Service contracts consumed by the handlers. The concrete implementations
// live in the services package.

type UserService interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Me(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, upd services.ProfileUpdate) (*models.Profile, error)
	UpdatePassword(ctx context.Context, userID, current, newPassword, confirm string) (*services.AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, secret, password, confirm string) (*services.AuthResult, error)
	VerifyEmail(ctx context.Context, secret string) error
	Preferences(ctx context.Context, userID string) (*models.Preferences, error)
	UpdatePreferences(ctx context.Context, userID string, upd services.PreferencesUpdate) (*models.Preferences, error)
	DeleteAccount(ctx context.Context, userID, password string) error
}

type ProfileService interface {
	UploadImage(ctx context.Context, userID string, data []byte, contentType string) (*models.Profile, error)
	DeleteImage(ctx context.Context, userID string) (*models.Profile, error)
}

type TodoService interface {
	Create(ctx context.Context, userID string, in services.TodoInput) (*models.Todo, error)
	Get(ctx context.Context, userID, id string) (*models.Todo, error)
	List(ctx context.Context, userID string) ([]*models.Todo, error)
	Update(ctx context.Context, userID, id string, upd services.TodoUpdate) (*models.Todo, error)
	Toggle(ctx context.Context, userID, id string) (*models.Todo, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteCompleted(ctx context.Context, userID string) (int64, error)
	Stats(ctx context.Context, userID string) (*models.TodoStats, error)
}

type ReviewService interface {
	Create(ctx context.Context, userID, userName string, in services.ReviewInput) (*models.Review, error)
	List(ctx context.Context, filter reviews.ListFilter) (*services.ReviewPage, error)
	Update(ctx context.Context, userID, id string, upd services.ReviewUpdate) (*models.Review, error)
	Delete(ctx context.Context, userID, id string) error
}

type ReminderService interface {
	Create(ctx context.Context, userID string, in services.ReminderInput) (*models.Reminder, error)
	List(ctx context.Context, userID string) ([]*models.Reminder, error)
	Update(ctx context.Context, userID, id string, in services.ReminderInput) (*models.Reminder, error)
	Delete(ctx context.Context, userID, id string) error
}

type MoodService interface {
	Log(ctx context.Context, userID, mood string) (*models.MoodLog, error)
	Latest(ctx context.Context, userID string) (*models.MoodLog, error)
	History(ctx context.Context, userID string, limit int) ([]*models.MoodLog, error)
	Recommendations(mood string) []string
}

type ChatService interface {
	SaveMessage(ctx context.Context, userID, text string, isBot bool) (*models.ChatMessage, error)
	History(ctx context.Context, userID string) ([]*models.ChatMessage, error)
	ClearHistory(ctx context.Context, userID string) error
	Stats(ctx context.Context, userID string) (*models.ChatStats, error)
}

// Server bundles the REST handlers with their middleware stack.
type Server struct {
	config  *config.Config
	logger  logging.Logger
	limiter *ipLimiter

	users     UserService
	profiles  ProfileService
	todos     TodoService
	reviews   ReviewService
	reminders ReminderService
	moods     MoodService
	chat      ChatService
}

type Services struct {
	Users     UserService
	Profiles  ProfileService
	Todos     TodoService
	Reviews   ReviewService
	Reminders ReminderService
	Moods     MoodService
	Chat      ChatService
}

func NewServer(cfg *config.Config, logger logging.Logger, svcs Services) *Server {
	return &Server{
		config:    cfg,
		logger:    logger,
		limiter:   newIPLimiter(cfg.RateLimitMax, cfg.RateLimitWindow),
		users:     svcs.Users,
		profiles:  svcs.Profiles,
		todos:     svcs.Todos,
		reviews:   svcs.Reviews,
		reminders: svcs.Reminders,
		moods:     svcs.Moods,
		chat:      svcs.Chat,
	}
}

// Handler builds the full route tree with the middleware stack applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/test", s.handleTest).Methods("GET")

	// public auth routes
	api.HandleFunc("/auth/register", s.handleRegister).Methods("POST")
	api.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
	api.HandleFunc("/auth/forgot-password", s.handleForgotPassword).Methods("POST")
	api.HandleFunc("/auth/reset-password/{token}", s.handleResetPassword).Methods("PATCH")
	api.HandleFunc("/auth/verify-email/{token}", s.handleVerifyEmail).Methods("PATCH")

	// bearer-protected routes
	authed := api.NewRoute().Subrouter()
	authed.Use(mux.MiddlewareFunc(s.authMiddleware))

	authed.HandleFunc("/auth/me", s.handleMe).Methods("GET")
	authed.HandleFunc("/auth/update-password", s.handleUpdatePassword).Methods("PATCH")

	authed.HandleFunc("/user/profile", s.handleGetProfile).Methods("GET")
	authed.HandleFunc("/user/profile", s.handleUpdateProfile).Methods("PATCH")
	authed.HandleFunc("/user/account", s.handleDeleteAccount).Methods("DELETE")
	authed.HandleFunc("/user/preferences", s.handleGetPreferences).Methods("GET")
	authed.HandleFunc("/user/preferences", s.handleUpdatePreferences).Methods("PATCH")

	authed.HandleFunc("/profile/upload-image", s.handleUploadImage).Methods("POST")
	authed.HandleFunc("/profile/delete-image", s.handleDeleteImage).Methods("DELETE")
	authed.HandleFunc("/profile/update", s.handleProfileUpdate).Methods("PATCH")

	authed.HandleFunc("/todos", s.handleListTodos).Methods("GET")
	authed.HandleFunc("/todos", s.handleCreateTodo).Methods("POST")
	authed.HandleFunc("/todos/stats", s.handleTodoStats).Methods("GET")
	authed.HandleFunc("/todos/completed", s.handleDeleteCompletedTodos).Methods("DELETE")
	authed.HandleFunc("/todos/{id}", s.handleGetTodo).Methods("GET")
	authed.HandleFunc("/todos/{id}", s.handleUpdateTodo).Methods("PUT")
	authed.HandleFunc("/todos/{id}", s.handleDeleteTodo).Methods("DELETE")
	authed.HandleFunc("/todos/{id}/toggle", s.handleToggleTodo).Methods("PATCH")

	authed.HandleFunc("/reviews", s.handleListReviews).Methods("GET")
	authed.HandleFunc("/reviews", s.handleCreateReview).Methods("POST")
	authed.HandleFunc("/reviews/{id}", s.handleUpdateReview).Methods("PATCH")
	authed.HandleFunc("/reviews/{id}", s.handleDeleteReview).Methods("DELETE")

	authed.HandleFunc("/reminders", s.handleCreateReminder).Methods("POST")
	authed.HandleFunc("/reminders", s.handleListReminders).Methods("GET")
	authed.HandleFunc("/reminders/{id}", s.handleUpdateReminder).Methods("PUT")
	authed.HandleFunc("/reminders/{id}", s.handleDeleteReminder).Methods("DELETE")

	authed.HandleFunc("/moods", s.handleLogMood).Methods("POST")
	authed.HandleFunc("/moods", s.handleMoodHistory).Methods("GET")
	authed.HandleFunc("/moods/latest", s.handleLatestMood).Methods("GET")
	authed.HandleFunc("/moods/recommendations", s.handleMoodRecommendations).Methods("GET")

	authed.HandleFunc("/chat/history", s.handleChatHistory).Methods("GET")
	authed.HandleFunc("/chat/history", s.handleClearChatHistory).Methods("DELETE")
	authed.HandleFunc("/chat/message", s.handleChatMessage).Methods("POST")
	authed.HandleFunc("/chat/stats", s.handleChatStats).Methods("GET")

	var handler http.Handler = r
	handler = s.rateLimitMiddleware(handler)
	handler = s.corsHandler().Handler(handler)
	handler = recoveryMiddleware(s.logger)(handler)
	if s.config.DevMode {
		handler = requestLogMiddleware(s.logger)(handler)
	}
	return handler
}

// corsHandler allows the configured origins plus any localhost or LAN
// origin, matching how the mobile app connects during development.
func (s *Server) corsHandler() *cors.Cors {
	allowed := s.config.AllowedOrigins
	return cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			for _, o := range allowed {
				if o == "*" || o == origin {
					return true
				}
			}
			return strings.Contains(origin, "localhost") ||
				strings.Contains(origin, "127.0.0.1") ||
				strings.Contains(origin, "192.168.")
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
}
