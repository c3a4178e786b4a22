// Package cli implements the interactive companion shell: account and
// session commands, todos, moods, music search, reminders, and the chatbot.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/orionapp/companion/internal/client/api"
	"github.com/orionapp/companion/internal/client/config"
	"github.com/orionapp/companion/internal/client/gemini"
	"github.com/orionapp/companion/internal/client/jamendo"
	"github.com/orionapp/companion/internal/client/session"
)

type App struct {
	config  *config.Config
	session *session.Store
	api     *api.Client
	music   *jamendo.Client
	bot     *gemini.Client
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := session.Open(ctx, cfg.SessionDBPath)
	if err != nil {
		return nil, err
	}

	// A stored session is adopted as-is; a stale token surfaces on the
	// first server call.
	if err := store.Restore(ctx); err != nil {
		store.Close()
		return nil, err
	}

	return &App{
		config:  cfg,
		session: store,
		api:     api.New(cfg.ServerBaseURL, store),
		music:   jamendo.New(cfg.JamendoClientID, cfg.JamendoLimit),
		bot:     gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.session.Close()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// status labels the prompt with the logged-in user's name.
func (a *App) status() string {
	if profile := a.session.Profile(); profile != nil {
		if name, ok := profile["name"].(string); ok && name != "" {
			return name
		}
	}
	return "guest"
}
