// Package storage persists the application snapshot to a local SQLite
// file, used as a small key-value store: the whole state is one JSON blob
// under a fixed key, overwritten on every save.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"tasklist/internal/model"
)

const snapshotKey = "tasklist_app_state"

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	dsn := sqliteDSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

// Load reads the persisted snapshot. The boolean is false when no
// snapshot has ever been written, which callers treat as first launch.
func (s *Store) Load() (model.AppState, bool, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?;`, snapshotKey).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return model.AppState{}, false, nil
	}
	if err != nil {
		return model.AppState{}, false, err
	}
	var state model.AppState
	if err := json.Unmarshal(blob, &state); err != nil {
		return model.AppState{}, false, err
	}
	return state, true, nil
}

// Save overwrites the snapshot wholesale. There is no versioning or
// migration; the blob is the single source of durable truth.
func (s *Store) Save(state model.AppState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value;`,
		snapshotKey, blob)
	return err
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
