package users

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orionapp/companion/internal/common"
	"github.com/orionapp/companion/internal/server/models"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func userRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "email", "password_hash", "phone", "bio", "location",
		"image_key", "image_url", "is_active", "is_email_verified",
		"password_reset_hash", "password_reset_expires",
		"email_verification_hash", "email_verification_expires",
		"last_login", "notify_email", "notify_push", "theme", "created_at", "updated_at",
	}).AddRow(
		"u1", "Alice", "a@x.com", "hash", "", "", "",
		"", "", true, false,
		"", nil,
		"", nil,
		now, true, true, "light", now, now,
	)
}

func TestCreate_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows([]string{
			"created_at", "updated_at", "last_login", "is_active",
			"is_email_verified", "notify_email", "notify_push",
		}).AddRow(now, now, now, true, false, true, true))

	u, err := repo.Create(context.Background(), &models.User{
		Name: "Alice", Email: "a@x.com", PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.True(t, u.IsActive)
	assert.Equal(t, models.ThemeLight, u.Theme)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT .* FROM users WHERE email`).
		WithArgs("missing@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "missing@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByEmail_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT .* FROM users WHERE email`).
		WithArgs("a@x.com").
		WillReturnRows(userRows())

	u, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "hash", u.PasswordHash)
}

func TestFindByPasswordResetHash_Expired(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT .* FROM users WHERE password_reset_hash`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByPasswordResetHash(context.Background(), "deadbeef", time.Now())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdatePassword(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectExec(`UPDATE users`).
		WithArgs("u1", "newhash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdatePassword(context.Background(), "u1", "newhash"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectExec(`UPDATE users`).
		WithArgs("u1", "deleted_1700000000_a@x.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Deactivate(context.Background(), "u1", "deleted_1700000000_a@x.com"))
	require.NoError(t, mock.ExpectationsWereMet())
}
