package presence

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
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

func loggedInStore(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	require.NoError(t, s.Set("tok-1", "", &models.User{ID: "admin-1", Role: models.RoleAdmin}))
	return s
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestClient_Connect_RegistersOnline(t *testing.T) {
	upgrader := websocket.Upgrader{}
	gotToken := make(chan string, 1)
	gotRegister := make(chan registerEvent, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken <- r.URL.Query().Get("token")
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		var ev registerEvent
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &ev))
		gotRegister <- ev
	}))
	defer server.Close()

	c := New(wsURL(server), loggedInStore(t), testLogger())
	require.Equal(t, Disconnected, c.State())

	require.NoError(t, c.Connect(context.Background()))
	assert.Equal(t, Connected, c.State())

	select {
	case tok := <-gotToken:
		assert.Equal(t, "tok-1", tok)
	case <-time.After(time.Second):
		t.Fatal("server never saw the connect")
	}
	select {
	case ev := <-gotRegister:
		assert.Equal(t, "register_online", ev.Event)
		assert.Equal(t, "admin-1", ev.UserID)
	case <-time.After(time.Second):
		t.Fatal("server never saw register_online")
	}

	require.NoError(t, c.Close())
	assert.Equal(t, Disconnected, c.State())
}

func TestClient_Connect_RequiresToken(t *testing.T) {
	s, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	c := New("ws://localhost:1", s, testLogger())
	err = c.Connect(context.Background())

	require.Error(t, err)
	assert.Equal(t, Disconnected, c.State())
}

func TestClient_Connect_DialFailureReturnsToDisconnected(t *testing.T) {
	c := New("ws://127.0.0.1:1", loggedInStore(t), testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := c.Connect(ctx)

	require.Error(t, err)
	assert.Equal(t, Disconnected, c.State())
}

func TestClient_JoinLocationFeed(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/location", r.URL.Path)
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		update := LocationUpdate{UserID: "student-9", Latitude: 8.89, Longitude: 38.81}
		require.NoError(t, conn.WriteJSON(update))
		// Give the client a moment to read before tearing down.
		time.Sleep(100 * time.Millisecond)
	}))
	defer server.Close()

	c := New(wsURL(server), loggedInStore(t), testLogger())
	updates := make(chan LocationUpdate, 1)
	require.NoError(t, c.JoinLocationFeed(context.Background(), func(u LocationUpdate) {
		updates <- u
	}))
	defer c.Close()

	select {
	case u := <-updates:
		assert.Equal(t, "student-9", u.UserID)
		assert.InDelta(t, 8.89, u.Latitude, 0.001)
	case <-time.After(2 * time.Second):
		t.Fatal("no location update delivered")
	}
}
