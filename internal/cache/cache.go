// Package cache persists the last successfully loaded copy of each
// collection so the console can show stale-but-usable data when the
// API is unreachable.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a sqlite-backed snapshot store keyed by domain name
type Store struct {
	dbPath string
}

// NewStore creates a snapshot store at dbPath
func NewStore(dbPath string) *Store {
	return &Store{dbPath: dbPath}
}

// ensureSchema creates the snapshot table (safe to call repeatedly)
func (s *Store) ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS collection_snapshots (
			domain TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			fetched_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating collection_snapshots table: %w", err)
	}
	return nil
}

func (s *Store) open() (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := s.ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// SaveSnapshot stores the JSON-encoded collection for a domain,
// replacing any previous snapshot.
func SaveSnapshot[T any](s *Store, domain string, items []T) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s snapshot: %w", domain, err)
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec(`
		INSERT INTO collection_snapshots (domain, payload, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(domain) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
	`, domain, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving %s snapshot: %w", domain, err)
	}
	return nil
}

// LoadSnapshot retrieves the stored collection for a domain along
// with when it was fetched. A missing snapshot returns ok=false.
func LoadSnapshot[T any](s *Store, domain string) ([]T, time.Time, bool, error) {
	db, err := s.open()
	if err != nil {
		return nil, time.Time{}, false, err
	}
	defer db.Close()

	var payload string
	var fetchedAt time.Time
	err = db.QueryRow(
		"SELECT payload, fetched_at FROM collection_snapshots WHERE domain = ?",
		domain,
	).Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("querying %s snapshot: %w", domain, err)
	}

	var items []T
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, time.Time{}, false, fmt.Errorf("decoding %s snapshot: %w", domain, err)
	}
	return items, fetchedAt, true, nil
}
