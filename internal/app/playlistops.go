package app

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize/english"

	"github.com/llehouerou/vimusic/internal/errmsg"
	"github.com/llehouerou/vimusic/internal/playlist"
)

// deleteTracks removes playlist positions. The session re-maps the playing
// index and the queue; the list selection is clamped.
func (m *Model) deleteTracks(indices []int) {
	removed := m.playlist.DeleteIndices(indices)
	if len(removed) == 0 {
		return
	}
	m.session.TracksRemoved(removed)
	m.afterPlaylistChange("")
	m.setStatus("Deleted " + tracksWord(len(removed)))
}

// deleteLines is :N,Md with 1-based inclusive lines.
func (m *Model) deleteLines(from, to int) {
	indices, err := m.playlist.LineRange(from, to)
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.deleteTracks(indices)
}

// replaceTracks swaps the whole playlist, keeping the playing and selected
// tracks by path. Queue positions lose their meaning and are dropped.
// Reports whether the queue had entries.
func (m *Model) replaceTracks(tracks []playlist.Track) bool {
	playing := m.session.PlayingPath()
	selected := m.listSelectedPath()
	queued := m.queue.Len() > 0
	m.exitVisual()
	m.playlist.Replace(tracks)
	m.session.Reindexed(m.playlist.IndexOf(playing))
	m.afterPlaylistChange(selected)
	return queued
}

// sortPlaylist reorders the playlist, keeping identity like replaceTracks.
func (m *Model) sortPlaylist(key playlist.SortKey, reverse bool) {
	playing := m.session.PlayingPath()
	selected := m.listSelectedPath()
	queued := m.queue.Len() > 0
	m.exitVisual()
	m.playlist.Sort(key, reverse)
	m.session.Reindexed(m.playlist.IndexOf(playing))
	m.afterPlaylistChange(selected)

	text := "Sorted by " + key.String()
	if reverse {
		text += " (reversed)"
	}
	if queued {
		text += ", queue cleared"
	}
	m.setStatus(text)
}

func (m *Model) listSelectedPath() string {
	t, _ := m.playlist.Track(m.list.cursor.Pos())
	return t.Path
}

// afterPlaylistChange re-selects selected (if still present), re-applies
// filters and regroups the artist view.
func (m *Model) afterPlaylistChange(selected string) {
	n := m.playlist.Len()
	if i := m.playlist.IndexOf(selected); i >= 0 {
		m.list.cursor.Jump(i, n, m.bodyHeight())
	}
	m.list.refresh(m.playlist.Names())
	if m.view == ViewArtist {
		m.refreshArtists()
		if n == 0 {
			m.view = ViewList
		}
	}
}

// enqueueTracks queues tracks by their playlist position. Tracks missing
// from the playlist are rejected with a message.
func (m *Model) enqueueTracks(tracks []playlist.Track) {
	var indices []int
	var missing []string
	for _, t := range tracks {
		if i := m.playlist.IndexOf(t.Path); i >= 0 {
			indices = append(indices, i)
			continue
		}
		missing = append(missing, t.Name)
	}
	if len(indices) > 0 {
		m.queue.Enqueue(indices...)
	}
	switch {
	case len(missing) > 0:
		m.setError(fmt.Sprintf("Not in playlist: %s (queued %s)", missing[0], tracksWord(len(indices))))
	case len(indices) == 1:
		t, _ := m.playlist.Track(indices[0])
		m.setStatus(fmt.Sprintf("Queued %s (#%d)", t.Name, m.queue.Len()))
	case len(indices) > 1:
		m.setStatus(fmt.Sprintf("Queued %s", tracksWord(len(indices))))
	}
}

func (m *Model) loadFolderCmd(path string, reload bool) tea.Cmd {
	lib := m.lib
	return func() tea.Msg {
		tracks, err := lib.LoadFolder(context.Background(), path)
		return folderLoadedMsg{path: path, tracks: tracks, reload: reload, err: err}
	}
}

func (m *Model) openFolder(path string) tea.Cmd {
	m.setStatus("Loading " + path + "...")
	return m.loadFolderCmd(path, false)
}

func (m *Model) handleFolderLoaded(msg folderLoadedMsg) tea.Cmd {
	if msg.err != nil {
		op := errmsg.OpFolderOpen
		if msg.reload {
			op = errmsg.OpFolderReload
		}
		m.log.Warn("folder load failed", "path", msg.path, "err", msg.err)
		m.setError(errmsg.FormatWith(op, msg.path, msg.err))
		return nil
	}
	cleared := m.replaceTracks(msg.tracks)
	m.source = source{kind: sourceFolder, path: msg.path}
	m.setStatus(loadedText(len(msg.tracks), filepath.Base(msg.path), cleared))

	if msg.reload {
		if m.view == ViewFolder && m.folder.loaded {
			return m.browseCmd(m.folder.listing.Path, m.selectedPath())
		}
		return nil
	}
	m.view = ViewList
	m.folder = folderView{pane: newPane()}
	return m.browseCmd(msg.path, "")
}

func loadedText(n int, from string, queueCleared bool) string {
	text := fmt.Sprintf("Loaded %s from %s", tracksWord(n), from)
	if queueCleared {
		text += ", queue cleared"
	}
	return text
}

// scanLibrary loads and merges every library folder.
func (m *Model) scanLibrary(reload bool) tea.Cmd {
	folders, err := m.store.LibraryFolders()
	if err != nil {
		m.setError(errmsg.Format(errmsg.OpLibraryList, err))
		return nil
	}
	if len(folders) == 0 {
		m.setError("No library folders (use :addlib)")
		return nil
	}
	m.setStatus(fmt.Sprintf("Scanning %s...", english.Plural(len(folders), "library folder", "")))
	lib := m.lib
	return func() tea.Msg {
		res, err := lib.LoadLibrary(context.Background(), folders)
		return libraryLoadedMsg{result: res, reload: reload, err: err}
	}
}

func (m *Model) handleLibraryLoaded(msg libraryLoadedMsg) {
	if msg.err != nil {
		m.log.Warn("library load failed", "err", msg.err)
		m.setError(errmsg.Format(errmsg.OpLibraryLoad, msg.err))
		return
	}
	cleared := m.replaceTracks(msg.result.Tracks)
	m.source = source{kind: sourceLibrary}
	// A library has no single root to browse, so a folder listing would
	// describe the previous source.
	if !msg.reload || m.view == ViewFolder {
		m.view = ViewList
	}
	text := loadedText(len(msg.result.Tracks), "library", cleared)
	if n := len(msg.result.Failed); n > 0 {
		m.setError(fmt.Sprintf("%s (%s failed)", text, english.Plural(n, "folder", "")))
		return
	}
	m.setStatus(text)
}

// loadPlaylist replaces the playlist with a saved one.
func (m *Model) loadPlaylist(name string) {
	tracks, err := m.store.LoadPlaylist(name)
	if err != nil {
		m.setError(errmsg.FormatWith(errmsg.OpPlaylistLoad, name, err))
		return
	}
	cleared := m.replaceTracks(tracks)
	m.source = source{kind: sourcePlaylist, path: name}
	m.setStatus(loadedText(len(tracks), "playlist '"+name+"'", cleared))
}

func (m *Model) savePlaylist(name string) {
	if err := m.store.SavePlaylist(name, m.playlist.Tracks()); err != nil {
		m.setError(errmsg.FormatWith(errmsg.OpPlaylistSave, name, err))
		return
	}
	m.setStatus(fmt.Sprintf("Saved playlist '%s' (%s)", name, tracksWord(m.playlist.Len())))
}

// reload re-fetches whatever the playlist was loaded from.
func (m *Model) reload() tea.Cmd {
	switch m.source.kind {
	case sourceFolder:
		m.setStatus("Reloading " + m.source.path + "...")
		return m.loadFolderCmd(m.source.path, true)
	case sourceLibrary:
		return m.scanLibrary(true)
	case sourcePlaylist:
		m.loadPlaylist(m.source.path)
	case sourceNone:
		m.setError("Nothing to reload")
	}
	return nil
}
