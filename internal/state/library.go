package state

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

var (
	// ErrFolderExists is returned when adding a library folder twice.
	ErrFolderExists = errors.New("library folder already added")
	// ErrFolderNotFound is returned when removing an unknown library folder.
	ErrFolderNotFound = errors.New("library folder not found")
)

// LibraryFolders returns library folders in the order they were added.
func (m *Manager) LibraryFolders() ([]string, error) {
	rows, err := m.db.Query(`SELECT path FROM library_folders ORDER BY added_at, path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// AddLibraryFolder registers a folder as part of the library.
func (m *Manager) AddLibraryFolder(path string) error {
	path = filepath.Clean(path)
	res, err := m.db.Exec(`
		INSERT INTO library_folders (path, added_at) VALUES (?, ?)
		ON CONFLICT(path) DO NOTHING
	`, path, time.Now().UnixNano())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrFolderExists, path)
	}
	return nil
}

// RemoveLibraryFolder unregisters a library folder.
func (m *Manager) RemoveLibraryFolder(path string) error {
	res, err := m.db.Exec(`DELETE FROM library_folders WHERE path = ?`, filepath.Clean(path))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrFolderNotFound, path)
	}
	return nil
}
