package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vimusic/internal/mpris"
)

// handleRemote applies a remote-control request with the same operations
// the keys use.
func (m *Model) handleRemote(c mpris.Command) tea.Cmd {
	switch c.Kind {
	case mpris.CmdPlay:
		if !m.session.IsPlaying() || m.session.IsPaused() {
			return m.togglePause()
		}
	case mpris.CmdPause:
		if m.session.IsPlaying() && !m.session.IsPaused() {
			return m.togglePause()
		}
	case mpris.CmdPlayPause:
		return m.togglePause()
	case mpris.CmdStop:
		m.session.Stop()
	case mpris.CmdNext:
		m.step(m.session.NextTrack, 1)
	case mpris.CmdPrevious:
		m.step(m.session.PrevTrack, 1)
	case mpris.CmdSeek:
		m.session.SeekRelative(c.Offset)
	case mpris.CmdSetPosition:
		m.session.SeekTo(c.Position)
	case mpris.CmdSetRepeat:
		m.session.SetRepeatMode(c.Repeat)
	case mpris.CmdSetShuffle:
		m.session.SetShuffle(c.Shuffle)
	case mpris.CmdSetVolume:
		m.session.SetVolume(c.Volume)
	case mpris.CmdSetRate:
		m.session.SetSpeed(c.Rate)
	}
	return nil
}

// publish hands the D-Bus side a copy of the transport state.
func (m *Model) publish() {
	if m.bridge == nil {
		return
	}
	snap := mpris.Snapshot{
		State:     mpris.Stopped,
		Duration:  m.session.Duration(),
		Position:  m.session.Elapsed(),
		Volume:    m.session.Volume(),
		Rate:      m.session.Speed(),
		Repeat:    m.session.RepeatMode(),
		Shuffle:   m.session.Shuffle(),
		HasTracks: m.playlist.Len() > 0,
	}
	switch {
	case m.session.IsPaused():
		snap.State = mpris.Paused
	case m.session.IsPlaying():
		snap.State = mpris.Playing
	}
	if t, ok := m.playlist.Track(m.session.PlayingIndex()); ok {
		snap.Path, snap.Title, snap.Artist, snap.Album = t.Path, t.Name, t.Artist, t.Album
	}
	m.bridge.Publish(snap)
}
