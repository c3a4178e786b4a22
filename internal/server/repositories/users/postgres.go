package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/orionapp/companion/internal/common"
	"github.com/orionapp/companion/internal/dbx"
	"github.com/orionapp/companion/internal/server/models"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX (satisfied by both
// *sql.DB and *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, name, email, password_hash, phone, bio, location,
	image_key, image_url, is_active, is_email_verified,
	password_reset_hash, password_reset_expires,
	email_verification_hash, email_verification_expires,
	last_login, notify_email, notify_push, theme, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var resetExpires, verifyExpires sql.NullTime

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Bio, &u.Location,
		&u.ImageKey, &u.ImageURL, &u.IsActive, &u.IsEmailVerified,
		&u.PasswordResetHash, &resetExpires,
		&u.EmailVerificationHash, &verifyExpires,
		&u.LastLogin, &u.NotifyEmail, &u.NotifyPush, &u.Theme, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	u.PasswordResetExpires = resetExpires.Time
	u.EmailVerificationExpires = verifyExpires.Time
	return u, nil
}

// Create inserts a new account. A duplicate email yields common.ErrorConflict.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query := `
		INSERT INTO users (id, name, email, password_hash, phone, bio, location, theme)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at, last_login, is_active, is_email_verified,
			notify_email, notify_push
	`

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash,
		user.Phone, user.Bio, user.Location, models.ThemeLight).
		Scan(&user.CreatedAt, &user.UpdatedAt, &user.LastLogin,
			&user.IsActive, &user.IsEmailVerified, &user.NotifyEmail, &user.NotifyPush)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.Theme = models.ThemeLight
	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail looks up an account by its lowercase email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) UpdateLastLogin(ctx context.Context, id string) error {
	query := `UPDATE users SET last_login = now() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// UpdatePassword stores a new password hash and clears any pending reset secret.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2,
			password_reset_hash = '',
			password_reset_expires = NULL,
			updated_at = now()
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id, passwordHash); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// UpdateProfile writes the mutable profile fields of user.
func (r *PostgresRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = $2, phone = $3, bio = $4, location = $5,
			image_key = $6, image_url = $7, updated_at = now()
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Phone, user.Bio, user.Location,
		user.ImageKey, user.ImageURL); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdatePreferences(ctx context.Context, id string, notifyEmail, notifyPush bool, theme string) error {
	query := `
		UPDATE users
		SET notify_email = $2, notify_push = $3, theme = $4, updated_at = now()
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id, notifyEmail, notifyPush, theme); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetPasswordResetSecret(ctx context.Context, id string, hash string, expires time.Time) error {
	query := `
		UPDATE users
		SET password_reset_hash = $2, password_reset_expires = $3
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id, hash, expires); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// FindByPasswordResetHash returns the account whose stored reset hash matches
// and whose expiry is still in the future.
func (r *PostgresRepository) FindByPasswordResetHash(ctx context.Context, hash string, now time.Time) (*models.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE password_reset_hash = $1 AND password_reset_hash <> ''
			AND password_reset_expires > $2`
	return scanUser(r.db.QueryRowContext(ctx, query, hash, now))
}

func (r *PostgresRepository) SetEmailVerificationSecret(ctx context.Context, id string, hash string, expires time.Time) error {
	query := `
		UPDATE users
		SET email_verification_hash = $2, email_verification_expires = $3
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id, hash, expires); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindByEmailVerificationHash(ctx context.Context, hash string, now time.Time) (*models.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE email_verification_hash = $1 AND email_verification_hash <> ''
			AND email_verification_expires > $2`
	return scanUser(r.db.QueryRowContext(ctx, query, hash, now))
}

func (r *PostgresRepository) MarkEmailVerified(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET is_email_verified = TRUE,
			email_verification_hash = '',
			email_verification_expires = NULL,
			updated_at = now()
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Deactivate soft-deletes an account: the active flag is dropped and the
// email rewritten so the uniqueness slot is freed for re-registration.
func (r *PostgresRepository) Deactivate(ctx context.Context, id string, rewrittenEmail string) error {
	query := `
		UPDATE users
		SET is_active = FALSE, email = $2, updated_at = now()
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id, rewrittenEmail); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
