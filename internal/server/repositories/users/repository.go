// Package users provides persistence for account records.
package users

import (
	"context"
	"time"

	"github.com/orionapp/companion/internal/server/models"
)

// Repository is the persistence contract for accounts.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdatePreferences(ctx context.Context, id string, notifyEmail, notifyPush bool, theme string) error
	SetPasswordResetSecret(ctx context.Context, id string, hash string, expires time.Time) error
	FindByPasswordResetHash(ctx context.Context, hash string, now time.Time) (*models.User, error)
	SetEmailVerificationSecret(ctx context.Context, id string, hash string, expires time.Time) error
	FindByEmailVerificationHash(ctx context.Context, hash string, now time.Time) (*models.User, error)
	MarkEmailVerified(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string, rewrittenEmail string) error
}
