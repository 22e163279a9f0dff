package app

import (
	"github.com/llehouerou/vimusic/internal/keymap"
	"github.com/llehouerou/vimusic/internal/library"
	"github.com/llehouerou/vimusic/internal/mpris"
	"github.com/llehouerou/vimusic/internal/playlist"
)

// folderLoadedMsg carries the tracks of a scanned folder.
type folderLoadedMsg struct {
	path   string
	tracks []playlist.Track
	reload bool
	err    error
}

// libraryLoadedMsg carries the merged tracks of all library folders.
type libraryLoadedMsg struct {
	result library.ScanResult
	reload bool
	err    error
}

// browseLoadedMsg carries one directory listing for the folder view.
// from is the directory we came from, selected after going up.
type browseLoadedMsg struct {
	path    string
	listing library.Listing
	from    string
	err     error
}

// statusClearMsg expires the status message with the same sequence number.
type statusClearMsg struct {
	seq int
}

// configChangedMsg is sent when a watched config file was written.
type configChangedMsg struct {
	path string
}

// KeymapReloadedMsg replaces the key resolver. Errs lists skipped entries.
type KeymapReloadedMsg struct {
	Keys *keymap.Resolver
	Errs []error
}

// RemoteMsg is a remote-control request posted from the MPRIS bridge.
type RemoteMsg mpris.Command
