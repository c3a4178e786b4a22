// Package services contains server-side business logic. This file implements
// UserService: registration, login, password lifecycle, email verification,
// profile and preference management, and account deletion.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/orionapp/companion/internal/common"
	"github.com/orionapp/companion/internal/dbx"
	"github.com/orionapp/companion/internal/logging"
	"github.com/orionapp/companion/internal/server/auth"
	"github.com/orionapp/companion/internal/server/config"
	smail "github.com/orionapp/companion/internal/server/mail"
	"github.com/orionapp/companion/internal/server/models"
	"github.com/orionapp/companion/internal/server/repositories/repomanager"
)

// UserService owns the account lifecycle. Every client-facing failure is a
// common.ValidationError (400-class) or one of the shared sentinels.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	mailer      smail.Sender
	logger      logging.Logger
	config      *config.Config
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, mailer smail.Sender, logger logging.Logger, cfg *config.Config) *UserService {
	return &UserService{db: db, repomanager: m, mailer: mailer, logger: logger, config: cfg}
}

// AuthResult is returned by every operation that mints a session token.
type AuthResult struct {
	Token   string
	Profile *models.Profile
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func (s *UserService) mintToken(userID string) (string, error) {
	token, err := auth.GenerateToken(userID, []byte(s.config.SecretKey), s.config.TokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return token, nil
}

// Register creates an account and mints a session token. A verification
// secret is generated and emailed best-effort; a mail failure never fails
// registration.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return nil, common.NewValidationError("Please provide name, email, and password")
	}
	if len(name) > 50 {
		return nil, common.NewValidationError("Name cannot exceed 50 characters")
	}
	if !validEmail(email) {
		return nil, common.NewValidationError("Please provide a valid email")
	}
	if len(password) < 6 {
		return nil, common.NewValidationError("Password must be at least 6 characters long")
	}

	hash, err := auth.HashPassword([]byte(password))
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	plaintext, secretHash, err := auth.NewOneTimeSecret()
	if err != nil {
		return nil, fmt.Errorf("generating verification secret: %w", err)
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		user, err = repo.Create(ctx, &models.User{
			Name:         name,
			Email:        email,
			PasswordHash: hash,
		})
		if err != nil {
			return err
		}
		return repo.SetEmailVerificationSecret(ctx, user.ID, secretHash,
			time.Now().Add(s.config.VerificationTokenValidity))
	})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.NewValidationError("User already exists with this email")
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.sendVerificationMail(ctx, user.Email, plaintext)

	token, err := s.mintToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Profile: user.FullProfile()}, nil
}

func (s *UserService) sendVerificationMail(ctx context.Context, email, secret string) {
	url := fmt.Sprintf("%s/verify-email/%s", s.config.FrontendURL, secret)
	err := s.mailer.Send(ctx, smail.Message{
		To:      email,
		Subject: "Email Verification - ORION Robot App",
		Body:    fmt.Sprintf("Welcome to ORION Robot App! Please verify your email by clicking: %s", url),
	})
	if err != nil {
		s.logger.Warn(ctx, "verification email failed", "error", err)
	}
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller; deactivated accounts get a distinct
// message.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, common.NewValidationError("Please provide email and password")
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, []byte(password)) {
		return nil, common.ErrorUnauthorized
	}
	if !user.IsActive {
		return nil, common.ErrorForbidden
	}

	if err := repo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("updating last login: %w", err)
	}
	user.LastLogin = time.Now()

	token, err := s.mintToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Profile: user.FullProfile()}, nil
}

// Me returns the caller's profile.
func (s *UserService) Me(ctx context.Context, userID string) (*models.Profile, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.FullProfile(), nil
}

// ProfileUpdate carries partial profile fields; nil means "leave unchanged".
type ProfileUpdate struct {
	Name     *string
	Phone    *string
	Bio      *string
	Location *string
}

// UpdateProfile applies a partial update and returns the fresh profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*models.Profile, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, common.NewValidationError("Name is required")
		}
		if len(name) > 50 {
			return nil, common.NewValidationError("Name cannot exceed 50 characters")
		}
		user.Name = name
	}
	if upd.Phone != nil {
		if len(*upd.Phone) > 20 {
			return nil, common.NewValidationError("Phone number cannot exceed 20 characters")
		}
		user.Phone = *upd.Phone
	}
	if upd.Bio != nil {
		if len(*upd.Bio) > 200 {
			return nil, common.NewValidationError("Bio cannot exceed 200 characters")
		}
		user.Bio = *upd.Bio
	}
	if upd.Location != nil {
		if len(*upd.Location) > 100 {
			return nil, common.NewValidationError("Location cannot exceed 100 characters")
		}
		user.Location = *upd.Location
	}

	if err := repo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return user.FullProfile(), nil
}

// UpdatePassword verifies the current password and rotates it. A fresh
// token is minted so the client keeps a valid session.
func (s *UserService) UpdatePassword(ctx context.Context, userID, current, newPassword, confirm string) (*AuthResult, error) {
	if current == "" || newPassword == "" || confirm == "" {
		return nil, common.NewValidationError("Please provide current password, new password, and confirm password")
	}
	if newPassword != confirm {
		return nil, common.NewValidationError("New passwords do not match")
	}
	if len(newPassword) < 6 {
		return nil, common.NewValidationError("Password must be at least 6 characters long")
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, []byte(current)) {
		return nil, common.NewValidationError("Current password is incorrect")
	}

	hash, err := auth.HashPassword([]byte(newPassword))
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	if err := repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return nil, fmt.Errorf("storing password: %w", err)
	}

	token, err := s.mintToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Profile: user.FullProfile()}, nil
}

// ForgotPassword mints a short-lived reset secret and emails it. If the
// mail cannot be sent the secret is still stored and the call succeeds;
// only a storage failure is an error.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return common.NewValidationError("Please provide email address")
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("looking up user: %w", err)
	}

	plaintext, secretHash, err := auth.NewOneTimeSecret()
	if err != nil {
		return fmt.Errorf("generating reset secret: %w", err)
	}
	err = repo.SetPasswordResetSecret(ctx, user.ID, secretHash,
		time.Now().Add(s.config.ResetTokenValidity))
	if err != nil {
		return fmt.Errorf("storing reset secret: %w", err)
	}

	url := fmt.Sprintf("%s/reset-password/%s", s.config.FrontendURL, plaintext)
	err = s.mailer.Send(ctx, smail.Message{
		To:      user.Email,
		Subject: "Password Reset Request - ORION Robot App",
		Body: fmt.Sprintf("You have requested a password reset. Please click the following link to reset your password: %s\n\n"+
			"This link will expire in 10 minutes.\n\nIf you didn't request this, please ignore this email.", url),
	})
	if err != nil {
		s.logger.Warn(ctx, "reset email failed", "error", err)
	}
	return nil
}

// ResetPassword consumes a reset secret from the email link. The stored
// hash must match and must not be expired.
func (s *UserService) ResetPassword(ctx context.Context, secret, password, confirm string) (*AuthResult, error) {
	if password == "" || confirm == "" {
		return nil, common.NewValidationError("Please provide password and confirm password")
	}
	if password != confirm {
		return nil, common.NewValidationError("Passwords do not match")
	}
	if len(password) < 6 {
		return nil, common.NewValidationError("Password must be at least 6 characters long")
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.FindByPasswordResetHash(ctx, auth.HashOneTimeSecret(secret), time.Now())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewValidationError("Token is invalid or has expired")
		}
		return nil, fmt.Errorf("looking up reset secret: %w", err)
	}

	hash, err := auth.HashPassword([]byte(password))
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	if err := repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return nil, fmt.Errorf("storing password: %w", err)
	}

	token, err := s.mintToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Profile: user.FullProfile()}, nil
}

// VerifyEmail consumes a verification secret from the email link.
func (s *UserService) VerifyEmail(ctx context.Context, secret string) error {
	repo := s.repomanager.Users(s.db)
	user, err := repo.FindByEmailVerificationHash(ctx, auth.HashOneTimeSecret(secret), time.Now())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.NewValidationError("Token is invalid or has expired")
		}
		return fmt.Errorf("looking up verification secret: %w", err)
	}
	if err := repo.MarkEmailVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("marking email verified: %w", err)
	}
	return nil
}

// Preferences returns the caller's preference projection.
func (s *UserService) Preferences(ctx context.Context, userID string) (*models.Preferences, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.PreferencesView(), nil
}

// PreferencesUpdate carries partial preference fields.
type PreferencesUpdate struct {
	NotifyEmail *bool
	NotifyPush  *bool
	Theme       *string
}

// UpdatePreferences applies a partial preference update.
func (s *UserService) UpdatePreferences(ctx context.Context, userID string, upd PreferencesUpdate) (*models.Preferences, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.NotifyEmail != nil {
		user.NotifyEmail = *upd.NotifyEmail
	}
	if upd.NotifyPush != nil {
		user.NotifyPush = *upd.NotifyPush
	}
	if upd.Theme != nil {
		t := *upd.Theme
		if t != models.ThemeLight && t != models.ThemeDark && t != models.ThemeAuto {
			return nil, common.NewValidationError("Theme must be light, dark or auto")
		}
		user.Theme = t
	}

	err = repo.UpdatePreferences(ctx, user.ID, user.NotifyEmail, user.NotifyPush, user.Theme)
	if err != nil {
		return nil, fmt.Errorf("updating preferences: %w", err)
	}
	return user.PreferencesView(), nil
}

// DeleteAccount soft-deletes after re-verifying the password. The email is
// rewritten so the address can be registered again later.
func (s *UserService) DeleteAccount(ctx context.Context, userID, password string) error {
	if password == "" {
		return common.NewValidationError("Please provide your password to confirm account deletion")
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, []byte(password)) {
		return common.NewValidationError("Incorrect password")
	}

	rewritten := fmt.Sprintf("deleted_%d_%s", time.Now().UnixMilli(), user.Email)
	if err := repo.Deactivate(ctx, user.ID, rewritten); err != nil {
		return fmt.Errorf("deactivating account: %w", err)
	}
	return nil
}
