// Package session owns the persisted login state: access token,
// refresh token and the serialized admin record. All reads and writes
// go through one Store so there is no global session state.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/models"
)

type record struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user,omitempty"`
}

// Store holds the current session in memory and mirrors it to a JSON
// file so logins survive restarts.
type Store struct {
	path string

	mu  sync.RWMutex
	rec record
}

// NewStore creates a store backed by the given file and loads any
// previously persisted session. A missing file just means logged out.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}
	if err := json.Unmarshal(data, &s.rec); err != nil {
		// A corrupt session file is treated as logged out rather
		// than blocking startup.
		s.rec = record{}
	}
	return s, nil
}

// Set replaces the whole session and persists it
func (s *Store) Set(accessToken, refreshToken string, user *models.User) error {
	s.mu.Lock()
	s.rec = record{AccessToken: accessToken, RefreshToken: refreshToken, User: user}
	s.mu.Unlock()
	return s.persist()
}

// SetAccessToken swaps the access token after a refresh, keeping the
// refresh token and user record.
func (s *Store) SetAccessToken(token string) error {
	s.mu.Lock()
	s.rec.AccessToken = token
	s.mu.Unlock()
	return s.persist()
}

// SetUser stores the admin record fetched from /profile
func (s *Store) SetUser(user *models.User) error {
	s.mu.Lock()
	s.rec.User = user
	s.mu.Unlock()
	return s.persist()
}

// Clear wipes the session in memory and on disk. Called on logout and
// on authorization failure.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.rec = record{}
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// AccessToken returns the current bearer token, empty when logged out
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.AccessToken
}

// RefreshToken returns the current refresh token
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.RefreshToken
}

// User returns the persisted admin record, nil when logged out
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.User
}

// LoggedIn reports whether an access token is present
func (s *Store) LoggedIn() bool {
	return s.AccessToken() != ""
}

func (s *Store) persist() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.rec, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}
