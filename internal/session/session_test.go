package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/models"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := NewStore(path)
	require.NoError(t, err)
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := NewStore(path)
	require.NoError(t, err)
	assert.False(t, s.LoggedIn())

	admin := &models.User{ID: "u1", FullName: "Abeba T.", Email: "abeba@campus.edu", Role: models.RoleAdmin}
	require.NoError(t, s.Set("access-1", "refresh-1", admin))

	// A fresh store over the same file sees the persisted session.
	reloaded, err := NewStore(path)
	require.NoError(t, err)
	assert.Equal(t, "access-1", reloaded.AccessToken())
	assert.Equal(t, "refresh-1", reloaded.RefreshToken())
	require.NotNil(t, reloaded.User())
	assert.Equal(t, "u1", reloaded.User().ID)
	assert.True(t, reloaded.LoggedIn())
}

func TestStore_SetAccessToken_KeepsRefreshAndUser(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Set("access-1", "refresh-1", &models.User{ID: "u1"}))

	require.NoError(t, s.SetAccessToken("access-2"))

	assert.Equal(t, "access-2", s.AccessToken())
	assert.Equal(t, "refresh-1", s.RefreshToken())
	require.NotNil(t, s.User())
}

func TestStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("access-1", "refresh-1", &models.User{ID: "u1"}))

	require.NoError(t, s.Clear())

	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.RefreshToken())
	assert.Nil(t, s.User())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "session file should be removed")

	// Clearing an already-cleared store is fine.
	require.NoError(t, s.Clear())
}

func TestNewStore_CorruptFileMeansLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := NewStore(path)
	require.NoError(t, err)
	assert.False(t, s.LoggedIn())
}
