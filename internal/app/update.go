package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vimusic/internal/errmsg"
	"github.com/llehouerou/vimusic/internal/mpris"
	"github.com/llehouerou/vimusic/internal/playback"
)

const (
	chromeHeight      = 4 // header, now playing, status, spacer
	defaultBodyHeight = 20
)

// Update handles one message to completion, then re-syncs the periodic
// tasks, the status expiry, notifications and the MPRIS snapshot.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.handle(msg)
	return m, tea.Batch(cmd, m.afterUpdate())
}

func (m *Model) handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.activePane().cursor.EnsureVisible(m.activeLen(), m.bodyHeight())
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		return m.handleTick(msg)

	case statusClearMsg:
		m.handleStatusClear(msg)

	case folderLoadedMsg:
		return m.handleFolderLoaded(msg)

	case libraryLoadedMsg:
		m.handleLibraryLoaded(msg)

	case browseLoadedMsg:
		m.handleBrowseLoaded(msg)

	case configChangedMsg:
		m.log.Debug("config changed", "path", msg.path)
		if m.loadKeys != nil {
			m.applyKeymap(m.loadKeys())
		}
		return waitForConfigChange(m.configChanges)

	case KeymapReloadedMsg:
		m.applyKeymap(msg)

	case RemoteMsg:
		return m.handleRemote(mpris.Command(msg))
	}
	return nil
}

func (m *Model) afterUpdate() tea.Cmd {
	if m.overlay != OverlayNone {
		m.overlayCursor.cursor.Clamp(m.overlayLen())
	}
	m.announceTrack()
	m.publish()
	return tea.Batch(m.syncTickers(), m.scheduleStatusClear())
}

func (m *Model) handlePlaybackEvent(ev playback.Event) {
	switch ev {
	case playback.EventPlaylistEnded:
		m.setStatus("End of playlist")
	case playback.EventStopped:
		m.setError("Playback stopped: next track failed to start")
	case playback.EventNone, playback.EventTrackChanged:
	}
}

// announceTrack sends a desktop notification when the playing track
// changed since the last update.
func (m *Model) announceTrack() {
	path := m.session.PlayingPath()
	if path == m.announced {
		return
	}
	m.announced = path
	if path == "" || m.announcer == nil {
		return
	}
	t, _ := m.playlist.Track(m.session.PlayingIndex())
	if err := m.announcer.TrackChanged(t.Path, t.Name, t.Artist, t.Album); err != nil {
		m.log.Debug("track notification failed", "err", err)
	}
}

func (m *Model) applyKeymap(msg KeymapReloadedMsg) {
	for _, err := range msg.Errs {
		m.log.Warn("key binding skipped", "err", err)
	}
	if msg.Keys != nil {
		m.keys = msg.Keys
		if m.overlay == OverlayHelp {
			m.helpLines = buildHelp(m.keys)
		}
	}
	if len(msg.Errs) > 0 {
		m.setError(errmsg.Format(errmsg.OpKeymapReload, msg.Errs[0]))
		return
	}
	m.setStatus("Key bindings reloaded")
}
