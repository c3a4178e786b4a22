// Package session persists the CLI's authenticated session: the bearer
// token and the account profile, mirrored between memory and a local SQLite
// database so a session survives restarts.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/orionapp/companion/internal/dbx"
)

const (
	keyToken   = "token"
	keyProfile = "profile"
)

// Store holds the current session. The in-memory state only changes after
// the durable write succeeds, so the UI never observes a half-applied
// login or logout.
type Store struct {
	db *sql.DB

	mu      sync.RWMutex
	token   string
	profile map[string]any
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) get(ctx context.Context, db dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

// Login persists the token and profile in one transaction and then adopts
// them in memory. Both arguments are required.
func (s *Store) Login(ctx context.Context, token string, profile map[string]any) error {
	if token == "" || len(profile) == 0 {
		return errors.New("token and profile are required")
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.set(ctx, tx, keyToken, []byte(token)); err != nil {
			return err
		}
		return s.set(ctx, tx, keyProfile, data)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.profile = profile
	s.mu.Unlock()
	return nil
}

// Logout clears durable storage and memory. Logging out twice is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.mu.Lock()
	s.token = ""
	s.profile = nil
	s.mu.Unlock()
	return nil
}

// UpdateProfile merges partial into the stored profile and persists the
// result before swapping it in memory.
func (s *Store) UpdateProfile(ctx context.Context, partial map[string]any) error {
	s.mu.RLock()
	if s.token == "" {
		s.mu.RUnlock()
		return errors.New("no active session")
	}
	merged := make(map[string]any, len(s.profile)+len(partial))
	for k, v := range s.profile {
		merged[k] = v
	}
	s.mu.RUnlock()
	for k, v := range partial {
		merged[k] = v
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := s.set(ctx, s.db, keyProfile, data); err != nil {
		return err
	}

	s.mu.Lock()
	s.profile = merged
	s.mu.Unlock()
	return nil
}

// Restore silently adopts a previously stored session. A missing or
// incomplete record leaves the store logged out; the token is not
// revalidated against the server.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.get(ctx, s.db, keyToken)
	if err != nil {
		return err
	}
	data, err := s.get(ctx, s.db, keyProfile)
	if err != nil {
		return err
	}
	if len(token) == 0 || len(data) == 0 {
		return nil
	}

	var profile map[string]any
	if err := json.Unmarshal(data, &profile); err != nil {
		return fmt.Errorf("decoding profile: %w", err)
	}

	s.mu.Lock()
	s.token = string(token)
	s.profile = profile
	s.mu.Unlock()
	return nil
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Profile returns a copy of the current profile.
func (s *Store) Profile() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	cp := make(map[string]any, len(s.profile))
	for k, v := range s.profile {
		cp[k] = v
	}
	return cp
}

func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Store) Close() error {
	return s.db.Close()
}
