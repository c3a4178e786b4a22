// Package server wires configuration, storage, services, and the HTTP API
// into a runnable application. It owns the database handle and shuts the
// HTTP server down gracefully on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/orionapp/companion/internal/logging"
	"github.com/orionapp/companion/internal/server/config"
	"github.com/orionapp/companion/internal/server/httpapi"
	"github.com/orionapp/companion/internal/server/imagestore"
	smail "github.com/orionapp/companion/internal/server/mail"
	"github.com/orionapp/companion/internal/server/repositories/repomanager"
	"github.com/orionapp/companion/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *http.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	// Mail is disabled when no SMTP host is configured; outgoing messages
	// are logged instead so reset links stay reachable in development.
	var mailer smail.Sender
	if cfg.SMTPHost == "" {
		mailer = smail.NewLogSender(logger)
	} else {
		mailer = smail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	}

	images := imagestore.NewS3Store(cfg)

	api := httpapi.NewServer(cfg, logger, httpapi.Services{
		Users:     services.NewUserService(db, rm, mailer, logger, cfg),
		Profiles:  services.NewProfileService(db, rm, images, logger),
		Todos:     services.NewTodoService(db, rm),
		Reviews:   services.NewReviewService(db, rm),
		Reminders: services.NewReminderService(db, rm),
		Moods:     services.NewMoodService(db, rm),
		Chat:      services.NewChatService(db, rm),
	})

	srv := &http.Server{
		Addr:              cfg.EndpointAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

// Run serves the API until the context is cancelled or a signal arrives,
// then drains in-flight requests and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", app.server.Addr)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return app.db.Close()
}
