package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/models"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/session"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testClient(t *testing.T, serverURL string) (*Client, *session.Store) {
	t.Helper()
	sessions, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	return New(serverURL, 5*time.Second, sessions, testLogger()), sessions
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data": []}`)
	}))
	defer server.Close()

	client, sessions := testClient(t, server.URL)
	require.NoError(t, sessions.Set("tok-123", "", nil))

	_, err := client.ListZones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_RequestIDOnWritesOnly(t *testing.T) {
	ids := map[string]string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids[r.Method] = r.Header.Get("X-Request-ID")
		io.WriteString(w, `{"data": {}}`)
	}))
	defer server.Close()

	client, _ := testClient(t, server.URL)
	ctx := context.Background()

	_, err := client.ListZones(ctx)
	require.NoError(t, err)
	_, err = client.CreateZone(ctx, ZonePayload{Name: "n"})
	require.NoError(t, err)

	assert.Empty(t, ids[http.MethodGet])
	assert.NotEmpty(t, ids[http.MethodPost])
}

func TestClient_Unauthorized_NoRefreshToken(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, sessions := testClient(t, server.URL)
	require.NoError(t, sessions.Set("stale-token", "", &models.User{ID: "u1"}))

	_, err := client.ListZones(context.Background())

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, calls, "basic path must not retry")
	assert.False(t, sessions.LoggedIn(), "session must be cleared")
	assert.Nil(t, sessions.User())
}

func TestClient_Unauthorized_RefreshThenRetryOnce(t *testing.T) {
	var refreshCalls, listCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refresh-1", body["refresh_token"])
		io.WriteString(w, `{"data": {"access_token": "fresh-token"}}`)
	})
	mux.HandleFunc("/danger-area", func(w http.ResponseWriter, r *http.Request) {
		listCalls++
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		io.WriteString(w, `{"data": [{"id": "z1", "name": "Quad"}]}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, sessions := testClient(t, server.URL)
	require.NoError(t, sessions.Set("stale-token", "refresh-1", nil))

	zones, err := client.ListZones(context.Background())

	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "z1", zones[0].ID)
	assert.Equal(t, 1, refreshCalls, "exactly one refresh")
	assert.Equal(t, 2, listCalls, "original call replayed exactly once")
	assert.Equal(t, "fresh-token", sessions.AccessToken())
	assert.True(t, sessions.LoggedIn())
}

func TestClient_Unauthorized_RefreshFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/danger-area", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, sessions := testClient(t, server.URL)
	require.NoError(t, sessions.Set("stale-token", "dead-refresh", nil))

	_, err := client.ListZones(context.Background())

	assert.True(t, IsUnauthorized(err))
	assert.False(t, sessions.LoggedIn())
}

func TestClient_Unauthorized_ReplayStillUnauthorized(t *testing.T) {
	listCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data": {"access_token": "still-bad"}}`)
	})
	mux.HandleFunc("/danger-area", func(w http.ResponseWriter, r *http.Request) {
		listCalls++
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, sessions := testClient(t, server.URL)
	require.NoError(t, sessions.Set("stale-token", "refresh-1", nil))

	_, err := client.ListZones(context.Background())

	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 2, listCalls, "no second replay")
	assert.False(t, sessions.LoggedIn())
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
		wantMsg  string
	}{
		{"validation", http.StatusUnprocessableEntity, `{"message": "radius out of range"}`, KindValidation, "radius out of range"},
		{"bad request", http.StatusBadRequest, `{"error": "missing name"}`, KindValidation, "missing name"},
		{"not found", http.StatusNotFound, `{}`, KindNotFound, ""},
		{"server", http.StatusInternalServerError, `{}`, KindServer, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer server.Close()

			client, _ := testClient(t, server.URL)
			_, err := client.ListZones(context.Background())

			var apiErr *Error
			require.Error(t, err)
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestClient_NetworkErrorKind(t *testing.T) {
	client, _ := testClient(t, "http://127.0.0.1:1")

	_, err := client.ListZones(context.Background())

	var apiErr *Error
	require.Error(t, err)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindNetwork, apiErr.Kind)
}

func TestClient_Login_PersistsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin@campus.edu", body["email"])
		io.WriteString(w, `{"data": {"access_token": "a1", "refresh_token": "r1", "user": {"id": "u1", "role": "admin"}}}`)
	}))
	defer server.Close()

	client, sessions := testClient(t, server.URL)
	user, err := client.Login(context.Background(), "admin@campus.edu", "hunter2")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, "a1", sessions.AccessToken())
	assert.Equal(t, "r1", sessions.RefreshToken())
}

func TestClient_UpdateIncidentStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/report/i1", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "resolved", body["status"])
		io.WriteString(w, `{"data": {"id": "i1", "status": "resolved"}}`)
	}))
	defer server.Close()

	client, _ := testClient(t, server.URL)
	incident, err := client.UpdateIncidentStatus(context.Background(), "i1", models.IncidentResolved)

	require.NoError(t, err)
	assert.Equal(t, models.IncidentResolved, incident.Status)
}
