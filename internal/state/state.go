// Package state persists playlists, library folders and settings in SQLite.
package state

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "vimusic"
	dbFileName = "vimusic.db"
)

const (
	keyDefaultFolder = "default_folder"
	keySettings      = "settings"
)

// Manager is the SQLite-backed store.
type Manager struct {
	db *sql.DB
}

// Open opens the database in the XDG data directory.
func Open() (*Manager, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the database at dsn, which may be ":memory:".
func OpenPath(dsn string) (*Manager, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: SQLite serialises writers anyway and ":memory:" is
	// per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Manager{db: db}, nil
}

// Close closes the database.
func (m *Manager) Close() error {
	return m.db.Close()
}

func (m *Manager) getSetting(key string) (string, bool, error) {
	var value string
	err := m.db.QueryRow(`SELECT value FROM app_settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (m *Manager) setSetting(key, value string) error {
	_, err := m.db.Exec(`
		INSERT INTO app_settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (m *Manager) deleteSetting(key string) error {
	_, err := m.db.Exec(`DELETE FROM app_settings WHERE key = ?`, key)
	return err
}

// DefaultFolder returns the folder opened at startup, or "".
func (m *Manager) DefaultFolder() (string, error) {
	v, _, err := m.getSetting(keyDefaultFolder)
	return v, err
}

// SetDefaultFolder stores the folder opened at startup.
func (m *Manager) SetDefaultFolder(path string) error {
	return m.setSetting(keyDefaultFolder, path)
}

// ClearDefaultFolder forgets the startup folder.
func (m *Manager) ClearDefaultFolder() error {
	return m.deleteSetting(keyDefaultFolder)
}

// Settings returns the persisted settings JSON, or "" if never saved.
func (m *Manager) Settings() (string, error) {
	v, _, err := m.getSetting(keySettings)
	return v, err
}

// SaveSettings stores the settings JSON.
func (m *Manager) SaveSettings(data string) error {
	return m.setSetting(keySettings, data)
}

// withTx executes fn within a transaction, rolling back when fn fails.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
