package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.db")
	store, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func testProfile() map[string]any {
	return map[string]any{"id": "u1", "name": "Alice", "email": "alice@example.com"}
}

func TestLogin_RequiresTokenAndProfile(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	require.Error(t, store.Login(ctx, "", testProfile()))
	require.Error(t, store.Login(ctx, "tok", nil))
	assert.False(t, store.IsAuthenticated())
}

func TestLogin_AdoptsState(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Login(ctx, "tok-123", testProfile()))

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "tok-123", store.Token())
	assert.Equal(t, "Alice", store.Profile()["name"])
}

func TestRestore_RoundTrip(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Login(ctx, "tok-123", testProfile()))
	require.NoError(t, store.Close())

	fresh, err := Open(ctx, path)
	require.NoError(t, err)
	defer fresh.Close()

	assert.False(t, fresh.IsAuthenticated())
	require.NoError(t, fresh.Restore(ctx))
	assert.True(t, fresh.IsAuthenticated())
	assert.Equal(t, "tok-123", fresh.Token())
	assert.Equal(t, "alice@example.com", fresh.Profile()["email"])
}

func TestRestore_EmptyStoreStaysLoggedOut(t *testing.T) {
	store, _ := openTestStore(t)

	require.NoError(t, store.Restore(context.Background()))
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.Profile())
}

func TestLogout_Idempotent(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Login(ctx, "tok-123", testProfile()))
	require.NoError(t, store.Logout(ctx))
	require.NoError(t, store.Logout(ctx))

	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.Profile())
	require.NoError(t, store.Close())

	// nothing left to restore
	fresh, err := Open(ctx, path)
	require.NoError(t, err)
	defer fresh.Close()
	require.NoError(t, fresh.Restore(ctx))
	assert.False(t, fresh.IsAuthenticated())
}

func TestUpdateProfile_MergesAndPersists(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Login(ctx, "tok-123", testProfile()))
	require.NoError(t, store.UpdateProfile(ctx, map[string]any{"name": "Alice B", "bio": "robot fan"}))

	profile := store.Profile()
	assert.Equal(t, "Alice B", profile["name"])
	assert.Equal(t, "robot fan", profile["bio"])
	assert.Equal(t, "alice@example.com", profile["email"])
	require.NoError(t, store.Close())

	fresh, err := Open(ctx, path)
	require.NoError(t, err)
	defer fresh.Close()
	require.NoError(t, fresh.Restore(ctx))
	assert.Equal(t, "Alice B", fresh.Profile()["name"])
}

func TestUpdateProfile_RequiresSession(t *testing.T) {
	store, _ := openTestStore(t)

	err := store.UpdateProfile(context.Background(), map[string]any{"name": "X"})
	require.Error(t, err)
}
