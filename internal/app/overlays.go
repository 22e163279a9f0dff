package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vimusic/internal/errmsg"
	"github.com/llehouerou/vimusic/internal/keymap"
	"github.com/llehouerou/vimusic/internal/playlist"
)

// helpLine is one row of the help overlay; a line without keys is a
// section heading.
type helpLine struct {
	keys string
	desc string
}

// buildHelp lists every action under its context with its effective keys.
func buildHelp(r *keymap.Resolver) []helpLine {
	var lines []helpLine
	for _, ctx := range keymap.Contexts {
		lines = append(lines, helpLine{desc: strings.ToUpper(ctx[:1]) + ctx[1:]})
		for _, b := range keymap.ByContext(ctx) {
			keys := r.KeysFor(b.Action)
			if len(keys) == 0 {
				keys = []string{"(unbound)"}
			}
			lines = append(lines, helpLine{keys: strings.Join(keys, ", "), desc: b.Description})
		}
	}
	return lines
}

// openOverlay shows an overlay and resets its selection. The playlist
// overlays read the store first and stay closed on error.
func (m *Model) openOverlay(o Overlay) {
	switch o {
	case OverlayPlaylists, OverlayPicker:
		infos, err := m.store.ListPlaylists()
		if err != nil {
			m.setError(errmsg.Format(errmsg.OpPlaylistList, err))
			return
		}
		m.playlists = infos
	case OverlayHelp:
		m.helpLines = buildHelp(m.keys)
	case OverlayQueue, OverlayNone:
	}
	m.exitVisual()
	m.pending = pending{}
	m.count = 0
	m.overlay = o
	m.overlayCursor = newPane()
}

func (m *Model) closeOverlay() {
	m.overlay = OverlayNone
	m.pending = pending{}
	m.pickerTracks = nil
}

// openPicker asks which saved playlist tracks go to.
func (m *Model) openPicker(tracks []playlist.Track) {
	if len(tracks) == 0 {
		m.setError("No tracks selected")
		return
	}
	m.openOverlay(OverlayPicker)
	if m.overlay != OverlayPicker {
		return
	}
	if len(m.playlists) == 0 {
		m.closeOverlay()
		m.setError("No saved playlists (use :save <name>)")
		return
	}
	m.pickerTracks = tracks
}

func (m *Model) overlayLen() int {
	switch m.overlay {
	case OverlayQueue:
		return m.queue.Len()
	case OverlayPlaylists, OverlayPicker:
		return len(m.playlists)
	case OverlayHelp:
		return len(m.helpLines)
	case OverlayNone:
	}
	return 0
}

// handleOverlayKey owns all input while an overlay is open: j/k and gg/G
// move, Enter confirms, Escape or q closes. The queue also takes J/K to
// reorder, dd to remove and c to clear; the playlist manager takes dd.
func (m *Model) handleOverlayKey(ev keymap.KeyEvent) tea.Cmd {
	chord := ev.Chord()
	c := &m.overlayCursor.cursor
	n, h := m.overlayLen(), m.bodyHeight()

	if m.pending.active() {
		p := m.pending
		m.pending = pending{}
		if chord != p.chord {
			return nil
		}
		switch p.kind {
		case pendingGoto:
			c.Top(n, h)
		case pendingDelete:
			m.overlayDelete()
		case pendingNone, pendingScroll, pendingMarkSet, pendingMarkJump:
		}
		return nil
	}

	switch chord {
	case "j", "ArrowDown":
		c.Move(1, 1, n, h)
	case "k", "ArrowUp":
		c.Move(-1, 1, n, h)
	case "Ctrl+d":
		c.Page(1, 1, true, n, h)
	case "Ctrl+u":
		c.Page(-1, 1, true, n, h)
	case "g":
		m.startPending(pendingGoto, ev)
	case "G", "End":
		c.Bottom(n, h)
	case "Escape", "q":
		m.closeOverlay()
	case "?":
		if m.overlay == OverlayHelp {
			m.closeOverlay()
		}
	case "Enter":
		m.overlayConfirm()
	case "d":
		if m.overlay == OverlayQueue || m.overlay == OverlayPlaylists {
			m.startPending(pendingDelete, ev)
		}
	case "J", "K":
		if m.overlay == OverlayQueue {
			dir := 1
			if chord == "K" {
				dir = -1
			}
			if pos, ok := m.queue.Reorder(c.Pos(), dir); ok {
				c.Jump(pos, n, h)
			}
		}
	case "c":
		if m.overlay == OverlayQueue {
			m.queue.Clear()
			c.Reset()
			m.setStatus("Queue cleared")
		}
	}
	return nil
}

func (m *Model) overlayConfirm() {
	pos := m.overlayCursor.cursor.Pos()
	switch m.overlay {
	case OverlayQueue:
		if m.queue.Len() == 0 {
			return
		}
		m.closeOverlay()
		if err := m.session.PlayQueued(pos); err != nil {
			m.setError(errmsg.Format(errmsg.OpPlaybackStart, err))
		}
	case OverlayPlaylists:
		if pos >= len(m.playlists) {
			return
		}
		name := m.playlists[pos].Name
		m.closeOverlay()
		m.loadPlaylist(name)
	case OverlayPicker:
		if pos >= len(m.playlists) {
			return
		}
		name, tracks := m.playlists[pos].Name, m.pickerTracks
		m.closeOverlay()
		added, err := m.store.AddTracksToPlaylist(name, tracks)
		if err != nil {
			m.setError(errmsg.FormatWith(errmsg.OpPlaylistAdd, name, err))
			return
		}
		m.setStatus(fmt.Sprintf("Added %s to %s", tracksWord(added), name))
	case OverlayHelp:
		m.closeOverlay()
	case OverlayNone:
	}
}

// overlayDelete is dd in the queue (drop the entry) or the playlist
// manager (delete the saved playlist).
func (m *Model) overlayDelete() {
	c := &m.overlayCursor.cursor
	pos := c.Pos()
	switch m.overlay {
	case OverlayQueue:
		if _, ok := m.queue.Remove(pos); ok {
			c.Clamp(m.queue.Len())
		}
	case OverlayPlaylists:
		if pos >= len(m.playlists) {
			return
		}
		name := m.playlists[pos].Name
		if err := m.store.DeletePlaylist(name); err != nil {
			m.setError(errmsg.FormatWith(errmsg.OpPlaylistDelete, name, err))
			return
		}
		infos, err := m.store.ListPlaylists()
		if err != nil {
			m.setError(errmsg.Format(errmsg.OpPlaylistList, err))
			return
		}
		m.playlists = infos
		c.Clamp(len(infos))
		m.setStatus("Deleted playlist '" + name + "'")
	case OverlayPicker, OverlayHelp, OverlayNone:
	}
}
