package state

import "github.com/llehouerou/vimusic/internal/playlist"

// Interface is the persistence surface used by the app.
type Interface interface {
	DefaultFolder() (string, error)
	SetDefaultFolder(path string) error
	ClearDefaultFolder() error

	Settings() (string, error)
	SaveSettings(data string) error

	SavePlaylist(name string, tracks []playlist.Track) error
	LoadPlaylist(name string) ([]playlist.Track, error)
	ListPlaylists() ([]PlaylistInfo, error)
	DeletePlaylist(name string) error
	RenamePlaylist(oldName, newName string) error
	AddTracksToPlaylist(name string, tracks []playlist.Track) (int, error)

	LibraryFolders() ([]string, error)
	AddLibraryFolder(path string) error
	RemoveLibraryFolder(path string) error

	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
