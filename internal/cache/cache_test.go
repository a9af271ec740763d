package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/models"
)

func tempCache(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "snapshots.db"))
}

func TestSnapshot_RoundTrip(t *testing.T) {
	s := tempCache(t)
	zones := []models.Zone{
		{ID: "z1", Name: "Library Steps", Severity: models.SeverityHigh, Radius: 120},
		{ID: "z2", Name: "South Gate", Severity: models.SeverityLow, Radius: 50},
	}

	require.NoError(t, SaveSnapshot(s, "zones", zones))

	got, fetchedAt, ok, err := LoadSnapshot[models.Zone](s, "zones")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, zones, got)
	assert.False(t, fetchedAt.IsZero())
}

func TestSnapshot_Replace(t *testing.T) {
	s := tempCache(t)
	require.NoError(t, SaveSnapshot(s, "zones", []models.Zone{{ID: "z1"}}))
	require.NoError(t, SaveSnapshot(s, "zones", []models.Zone{{ID: "z2"}, {ID: "z3"}}))

	got, _, ok, err := LoadSnapshot[models.Zone](s, "zones")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "z2", got[0].ID)
}

func TestSnapshot_Missing(t *testing.T) {
	s := tempCache(t)

	_, _, ok, err := LoadSnapshot[models.Zone](s, "zones")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshot_DomainsAreIndependent(t *testing.T) {
	s := tempCache(t)
	require.NoError(t, SaveSnapshot(s, "zones", []models.Zone{{ID: "z1"}}))
	require.NoError(t, SaveSnapshot(s, "users", []models.User{{ID: "u1"}}))

	zones, _, ok, err := LoadSnapshot[models.Zone](s, "zones")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "z1", zones[0].ID)

	users, _, ok, err := LoadSnapshot[models.User](s, "users")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "u1", users[0].ID)
}
