package state

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/llehouerou/vimusic/internal/playlist"
)

var (
	// ErrPlaylistNotFound is returned for names with no saved playlist.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrPlaylistExists is returned when a rename target is taken.
	ErrPlaylistExists = errors.New("playlist already exists")
	// ErrEmptyName is returned for blank playlist names.
	ErrEmptyName = errors.New("playlist name required")
)

// PlaylistInfo summarises a saved playlist.
type PlaylistInfo struct {
	Name       string
	TrackCount int
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

func playlistID(q querier, name string) (int64, error) {
	var id int64
	err := q.QueryRow(`SELECT id FROM playlists WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrPlaylistNotFound, name)
	}
	return id, err
}

// SavePlaylist stores tracks under name, replacing any playlist with that name.
func (m *Manager) SavePlaylist(name string, tracks []playlist.Track) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	return withTx(m.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO playlists (name, created_at, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET updated_at = excluded.updated_at
		`, name, now, now)
		if err != nil {
			return err
		}
		id, err := playlistID(tx, name)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM playlist_tracks WHERE playlist_id = ?`, id); err != nil {
			return err
		}
		return insertTracks(tx, id, 0, tracks)
	})
}

func insertTracks(tx *sql.Tx, id int64, start int, tracks []playlist.Track) error {
	stmt, err := tx.Prepare(`
		INSERT INTO playlist_tracks (playlist_id, position, path, name, artist, album, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, t := range tracks {
		_, err := stmt.Exec(id, start+i, t.Path, t.Name,
			nullString(t.Artist), nullString(t.Album), t.Duration.Milliseconds())
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadPlaylist returns the tracks of a saved playlist in order.
func (m *Manager) LoadPlaylist(name string) ([]playlist.Track, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	id, err := playlistID(m.db, name)
	if err != nil {
		return nil, err
	}
	rows, err := m.db.Query(`
		SELECT path, name, artist, album, duration_ms
		FROM playlist_tracks WHERE playlist_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tracks := make([]playlist.Track, 0)
	for rows.Next() {
		var t playlist.Track
		var artist, album sql.NullString
		var ms int64
		if err := rows.Scan(&t.Path, &t.Name, &artist, &album, &ms); err != nil {
			return nil, err
		}
		t.Artist = artist.String
		t.Album = album.String
		t.Duration = time.Duration(ms) * time.Millisecond
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// ListPlaylists returns saved playlists ordered by name.
func (m *Manager) ListPlaylists() ([]PlaylistInfo, error) {
	rows, err := m.db.Query(`
		SELECT p.name, COUNT(t.position)
		FROM playlists p
		LEFT JOIN playlist_tracks t ON t.playlist_id = p.id
		GROUP BY p.id
		ORDER BY p.name COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PlaylistInfo
	for rows.Next() {
		var info PlaylistInfo
		if err := rows.Scan(&info.Name, &info.TrackCount); err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// DeletePlaylist removes a saved playlist.
func (m *Manager) DeletePlaylist(name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	return withTx(m.db, func(tx *sql.Tx) error {
		id, err := playlistID(tx, name)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM playlist_tracks WHERE playlist_id = ?`, id); err != nil {
			return err
		}
		_, err = tx.Exec(`DELETE FROM playlists WHERE id = ?`, id)
		return err
	})
}

// RenamePlaylist renames a saved playlist.
func (m *Manager) RenamePlaylist(oldName, newName string) error {
	oldName, err := cleanName(oldName)
	if err != nil {
		return err
	}
	newName, err = cleanName(newName)
	if err != nil {
		return err
	}
	return withTx(m.db, func(tx *sql.Tx) error {
		id, err := playlistID(tx, oldName)
		if err != nil {
			return err
		}
		if oldName == newName {
			return nil
		}
		if _, err := playlistID(tx, newName); err == nil {
			return fmt.Errorf("%w: %s", ErrPlaylistExists, newName)
		} else if !errors.Is(err, ErrPlaylistNotFound) {
			return err
		}
		_, err = tx.Exec(`UPDATE playlists SET name = ?, updated_at = ? WHERE id = ?`,
			newName, time.Now().Unix(), id)
		return err
	})
}

// AddTracksToPlaylist appends tracks not already in the playlist and returns
// how many were added.
func (m *Manager) AddTracksToPlaylist(name string, tracks []playlist.Track) (int, error) {
	name, err := cleanName(name)
	if err != nil {
		return 0, err
	}
	added := 0
	err = withTx(m.db, func(tx *sql.Tx) error {
		id, err := playlistID(tx, name)
		if err != nil {
			return err
		}

		existing := make(map[string]bool)
		rows, err := tx.Query(`SELECT path FROM playlist_tracks WHERE playlist_id = ?`, id)
		if err != nil {
			return err
		}
		for rows.Next() {
			var p string
			if err := rows.Scan(&p); err != nil {
				rows.Close()
				return err
			}
			existing[p] = true
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		var next int
		if err := tx.QueryRow(
			`SELECT COALESCE(MAX(position) + 1, 0) FROM playlist_tracks WHERE playlist_id = ?`, id,
		).Scan(&next); err != nil {
			return err
		}

		var fresh []playlist.Track
		for _, t := range tracks {
			if existing[t.Path] {
				continue
			}
			existing[t.Path] = true
			fresh = append(fresh, t)
		}
		if err := insertTracks(tx, id, next, fresh); err != nil {
			return err
		}
		added = len(fresh)
		_, err = tx.Exec(`UPDATE playlists SET updated_at = ? WHERE id = ?`, time.Now().Unix(), id)
		return err
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
