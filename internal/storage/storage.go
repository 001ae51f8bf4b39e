// Package storage is the durable key-value store behind the session
// collection and the theme/accent preferences, backed by a small sqlite
// database so state survives restarts.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/glebarez/go-sqlite"

	"github.com/vedantk/helixar-go/internal/session"
)

// Well-known keys for the serialized collection and preferences.
const (
	KeySessions = "helixar_sessions"
	KeyTheme    = "helixar_theme"
	KeyAccent   = "helixar_accent"
)

// Store is a sqlite-backed key-value store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and bootstraps the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_busy_timeout=10000")
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get reads a key. The second return is false when the key is absent.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?;`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read key %s: %w", key, err)
	}
	return value, true, nil
}

// Set writes a key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value;`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("write key %s: %w", key, err)
	}
	return nil
}

// SaveSessions serializes the collection under KeySessions. An empty
// collection is never written: the store must not clobber prior state
// while the app holds only a draft.
func (s *Store) SaveSessions(sessions []session.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}
	return s.Set(KeySessions, string(data))
}

// LoadSessions reads the stored collection. The second return is false on
// first run, before anything was persisted. Malformed stored JSON is a
// startup fault and propagates to the caller.
func (s *Store) LoadSessions() ([]session.Session, bool, error) {
	raw, ok, err := s.Get(KeySessions)
	if err != nil || !ok {
		return nil, false, err
	}
	var sessions []session.Session
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		return nil, false, fmt.Errorf("parse stored sessions: %w", err)
	}
	return sessions, true, nil
}

// Bootstrap produces the initial collection and selection. First run
// yields exactly the seed set with the first seed selected. Otherwise the
// stored collection is loaded, missing seeds are merged in at the front,
// and the first stored session is selected; an empty stored collection
// yields an empty selection, which the caller resolves with a fresh draft.
func (s *Store) Bootstrap() ([]session.Session, string, error) {
	stored, ok, err := s.LoadSessions()
	if err != nil {
		return nil, "", err
	}
	if !ok {
		seeds := Seeds()
		return seeds, seeds[0].ID, nil
	}

	merged := MergeSeeds(stored)
	currentID := ""
	if len(stored) > 0 {
		currentID = stored[0].ID
	}
	return merged, currentID, nil
}

// Theme returns the stored theme preference, defaulting to dark.
func (s *Store) Theme() (string, error) {
	theme, ok, err := s.Get(KeyTheme)
	if err != nil {
		return "", err
	}
	if !ok {
		return "dark", nil
	}
	return theme, nil
}

// SetTheme stores the theme preference ("dark" or "light").
func (s *Store) SetTheme(theme string) error {
	return s.Set(KeyTheme, theme)
}

// Accent returns the stored accent color, defaulting to the Helixar pink.
func (s *Store) Accent() (string, error) {
	accent, ok, err := s.Get(KeyAccent)
	if err != nil {
		return "", err
	}
	if !ok {
		return "#b33a72", nil
	}
	return accent, nil
}

// SetAccent stores the accent color (a CSS color string).
func (s *Store) SetAccent(accent string) error {
	return s.Set(KeyAccent, accent)
}
