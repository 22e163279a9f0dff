package state

import (
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/llehouerou/vimusic/internal/playlist"
)

// Mock is an in-memory Interface for tests.
type Mock struct {
	mu            sync.Mutex
	defaultFolder string
	settings      string
	playlists     map[string][]playlist.Track
	folders       []string
	err           error
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)

// NewMock creates an empty Mock.
func NewMock() *Mock {
	return &Mock{playlists: make(map[string][]playlist.Track)}
}

// SetError makes every subsequent call fail with err (nil to reset).
func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Mock) DefaultFolder() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.defaultFolder, m.err
}

func (m *Mock) SetDefaultFolder(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.defaultFolder = path
	return nil
}

func (m *Mock) ClearDefaultFolder() error {
	return m.SetDefaultFolder("")
}

func (m *Mock) Settings() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings, m.err
}

func (m *Mock) SaveSettings(data string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.settings = data
	return nil
}

func (m *Mock) SavePlaylist(name string, tracks []playlist.Track) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	m.playlists[name] = slices.Clone(tracks)
	return nil
}

func (m *Mock) LoadPlaylist(name string) ([]playlist.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	tracks, ok := m.playlists[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlaylistNotFound, name)
	}
	return slices.Clone(tracks), nil
}

func (m *Mock) ListPlaylists() ([]PlaylistInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]PlaylistInfo, 0, len(m.playlists))
	for name, tracks := range m.playlists {
		out = append(out, PlaylistInfo{Name: name, TrackCount: len(tracks)})
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (m *Mock) DeletePlaylist(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	name = strings.TrimSpace(name)
	if _, ok := m.playlists[name]; !ok {
		return fmt.Errorf("%w: %s", ErrPlaylistNotFound, name)
	}
	delete(m.playlists, name)
	return nil
}

func (m *Mock) RenamePlaylist(oldName, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	oldName = strings.TrimSpace(oldName)
	newName, err := cleanName(newName)
	if err != nil {
		return err
	}
	tracks, ok := m.playlists[oldName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlaylistNotFound, oldName)
	}
	if oldName == newName {
		return nil
	}
	if _, taken := m.playlists[newName]; taken {
		return fmt.Errorf("%w: %s", ErrPlaylistExists, newName)
	}
	delete(m.playlists, oldName)
	m.playlists[newName] = tracks
	return nil
}

func (m *Mock) AddTracksToPlaylist(name string, tracks []playlist.Track) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	name = strings.TrimSpace(name)
	existing, ok := m.playlists[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrPlaylistNotFound, name)
	}
	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		seen[t.Path] = true
	}
	added := 0
	for _, t := range tracks {
		if seen[t.Path] {
			continue
		}
		seen[t.Path] = true
		existing = append(existing, t)
		added++
	}
	m.playlists[name] = existing
	return added, nil
}

func (m *Mock) LibraryFolders() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.folders), m.err
}

func (m *Mock) AddLibraryFolder(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	path = filepath.Clean(path)
	if slices.Contains(m.folders, path) {
		return fmt.Errorf("%w: %s", ErrFolderExists, path)
	}
	m.folders = append(m.folders, path)
	return nil
}

func (m *Mock) RemoveLibraryFolder(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	path = filepath.Clean(path)
	i := slices.Index(m.folders, path)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrFolderNotFound, path)
	}
	m.folders = slices.Delete(m.folders, i, i+1)
	return nil
}

func (m *Mock) Close() error { return nil }
