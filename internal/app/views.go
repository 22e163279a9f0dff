package app

import (
	"context"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/llehouerou/vimusic/internal/errmsg"
	"github.com/llehouerou/vimusic/internal/library"
	"github.com/llehouerou/vimusic/internal/playlist"
	"github.com/llehouerou/vimusic/internal/search"
	"github.com/llehouerou/vimusic/internal/ui/cursor"
)

const scrollMargin = 3

// pane is one navigable list: its selection and its filter. Selection and
// match indices are both in original item space.
type pane struct {
	cursor cursor.Cursor
	filter search.State
}

func newPane() pane {
	return pane{cursor: cursor.New(scrollMargin)}
}

// refresh re-applies the filter and clamps the selection after the items
// changed.
func (p *pane) refresh(values []string) {
	p.filter.Refresh(values)
	p.cursor.Clamp(len(values))
}

type folderView struct {
	pane
	listing library.Listing
	loaded  bool
}

// artistView is the artist list and, once an artist is opened, its tracks.
// Each level keeps its own selection.
type artistView struct {
	artists  pane
	tracks   pane
	list     []library.Artist
	selected string
	songs    []playlist.Track
	inTracks bool
}

func (m *Model) activePane() *pane {
	switch m.view {
	case ViewFolder:
		return &m.folder.pane
	case ViewArtist:
		if m.artist.inTracks {
			return &m.artist.tracks
		}
		return &m.artist.artists
	default:
		return &m.list
	}
}

// activeValues returns the filter values of the active view's items.
func (m *Model) activeValues() []string {
	switch m.view {
	case ViewFolder:
		return filterValues(m.folder.listing.Items)
	case ViewArtist:
		if m.artist.inTracks {
			return filterValues(m.artist.songs)
		}
		return filterValues(m.artist.list)
	default:
		return m.playlist.Names()
	}
}

func (m *Model) activeLen() int {
	switch m.view {
	case ViewFolder:
		return len(m.folder.listing.Items)
	case ViewArtist:
		if m.artist.inTracks {
			return len(m.artist.songs)
		}
		return len(m.artist.list)
	default:
		return m.playlist.Len()
	}
}

func filterValues[T search.Item](items []T) []string {
	return lo.Map(items, func(it T, _ int) string { return it.FilterValue() })
}

// bodyHeight is the number of list rows on screen.
func (m *Model) bodyHeight() int {
	if m.height <= 0 {
		return defaultBodyHeight
	}
	return max(m.height-chromeHeight, 1)
}

// root is the loaded folder, or "" when the playlist came from elsewhere.
func (m *Model) root() string {
	if m.source.kind != sourceFolder {
		return ""
	}
	return m.source.path
}

// cycleView toggles List and Folder, or returns from the artist browser.
func (m *Model) cycleView() tea.Cmd {
	switch m.view {
	case ViewList:
		if m.root() == "" {
			m.setStatus("No folder loaded")
			return nil
		}
		m.view = ViewFolder
		if !m.folder.loaded {
			return m.browseCmd(m.root(), "")
		}
	case ViewFolder, ViewArtist:
		m.view = ViewList
	}
	return nil
}

// goParent walks up one level in the folder or artist view.
func (m *Model) goParent() tea.Cmd {
	switch m.view {
	case ViewFolder:
		if m.folder.listing.Parent == "" {
			return nil
		}
		return m.browseCmd(m.folder.listing.Parent, m.folder.listing.Path)
	case ViewArtist:
		if m.artist.inTracks {
			m.artist.inTracks = false
			return nil
		}
		m.view = ViewList
	case ViewList:
	}
	return nil
}

func (m *Model) browseCmd(path, from string) tea.Cmd {
	lib, root := m.lib, m.root()
	return func() tea.Msg {
		listing, err := lib.BrowseFolder(context.Background(), path, root)
		return browseLoadedMsg{path: path, listing: listing, from: from, err: err}
	}
}

func (m *Model) handleBrowseLoaded(msg browseLoadedMsg) {
	if msg.err != nil {
		m.log.Warn("browse failed", "path", msg.path, "err", msg.err)
		m.setError(errmsg.FormatWith(errmsg.OpFolderBrowse, msg.path, msg.err))
		return
	}
	m.folder.listing = msg.listing
	m.folder.loaded = true
	m.folder.cursor.Reset()
	if msg.from != "" {
		if i := slices.IndexFunc(msg.listing.Items, func(it library.Item) bool { return it.Path == msg.from }); i >= 0 {
			m.folder.cursor.Jump(i, len(msg.listing.Items), m.bodyHeight())
		}
	}
	m.folder.refresh(filterValues(msg.listing.Items))
}

// openArtists shows the artists of the current playlist.
func (m *Model) openArtists() {
	if m.playlist.Len() == 0 {
		m.setStatus("No tracks loaded")
		return
	}
	m.exitVisual()
	m.view = ViewArtist
	m.artist.inTracks = false
	m.refreshArtists()
}

// refreshArtists regroups the playlist after it changed.
func (m *Model) refreshArtists() {
	tracks := m.playlist.Tracks()
	m.artist.list = library.Artists(tracks)
	m.artist.artists.refresh(filterValues(m.artist.list))
	if !m.artist.inTracks {
		return
	}
	m.artist.songs = library.ArtistTracks(m.artist.selected, tracks)
	if len(m.artist.songs) == 0 {
		m.artist.inTracks = false
		return
	}
	m.artist.tracks.refresh(filterValues(m.artist.songs))
}

func (m *Model) enterArtist() {
	i := m.artist.artists.cursor.Pos()
	if i >= len(m.artist.list) {
		return
	}
	m.artist.selected = m.artist.list[i].Name
	m.artist.songs = library.ArtistTracks(m.artist.selected, m.playlist.Tracks())
	m.artist.inTracks = true
	m.artist.tracks.cursor.Reset()
	m.artist.tracks.filter.Clear()
}

// playSelected is Enter: play the track under the cursor, enter a folder
// or open an artist.
func (m *Model) playSelected() tea.Cmd {
	if m.activeLen() == 0 {
		return nil
	}
	pos := m.activePane().cursor.Pos()
	switch m.view {
	case ViewFolder:
		item := m.folder.listing.Items[pos]
		if item.IsFolder {
			return m.browseCmd(item.Path, "")
		}
		m.playPath(item.Path, item.Name)
	case ViewArtist:
		if !m.artist.inTracks {
			m.enterArtist()
			return nil
		}
		t := m.artist.songs[pos]
		m.playPath(t.Path, t.Name)
	case ViewList:
		m.playIndex(pos)
	}
	return nil
}

func (m *Model) playPath(path, name string) {
	i := m.playlist.IndexOf(path)
	if i < 0 {
		m.setError("Not in playlist: " + name)
		return
	}
	m.playIndex(i)
}

func (m *Model) playIndex(i int) {
	t, ok := m.playlist.Track(i)
	if !ok {
		return
	}
	if err := m.session.PlayTrack(i, 0); err != nil {
		m.setError(errmsg.FormatWith(errmsg.OpPlaybackStart, t.Name, err))
	}
}

// rowTracks resolves rows from..to of the active view to tracks. Folders
// are skipped; an artist row stands for all of its tracks.
func (m *Model) rowTracks(from, to int) []playlist.Track {
	if m.activeLen() == 0 {
		return nil
	}
	to = min(to, m.activeLen()-1)
	var out []playlist.Track
	switch m.view {
	case ViewFolder:
		for _, item := range m.folder.listing.Items[from : to+1] {
			if item.IsFolder {
				continue
			}
			out = append(out, m.trackForItem(item))
		}
	case ViewArtist:
		if m.artist.inTracks {
			return append(out, m.artist.songs[from:to+1]...)
		}
		tracks := m.playlist.Tracks()
		for _, a := range m.artist.list[from : to+1] {
			out = append(out, library.ArtistTracks(a.Name, tracks)...)
		}
	case ViewList:
		tracks := m.playlist.Tracks()
		out = append(out, tracks[from:to+1]...)
	}
	return out
}

// trackForItem prefers the playlist's copy of a file, which carries tags.
func (m *Model) trackForItem(item library.Item) playlist.Track {
	if t, ok := m.playlist.Track(m.playlist.IndexOf(item.Path)); ok {
		return t
	}
	return playlist.Track{Path: item.Path, Name: item.Name, Duration: item.Duration}
}

// selectedPath is the file under the cursor, or the folder in folder view.
func (m *Model) selectedPath() string {
	if m.activeLen() == 0 {
		return ""
	}
	pos := m.activePane().cursor.Pos()
	switch m.view {
	case ViewFolder:
		return m.folder.listing.Items[pos].Path
	case ViewArtist:
		if m.artist.inTracks {
			return m.artist.songs[pos].Path
		}
		return ""
	default:
		t, _ := m.playlist.Track(pos)
		return t.Path
	}
}
