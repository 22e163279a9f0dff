package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize/english"

	"github.com/llehouerou/vimusic/internal/errmsg"
	"github.com/llehouerou/vimusic/internal/keymap"
	"github.com/llehouerou/vimusic/internal/playback"
)

// dispatch performs a Normal mode action. Actions that take a count consume
// it; prefixes leave it for the second key.
func (m *Model) dispatch(action keymap.Action, ev keymap.KeyEvent) tea.Cmd {
	p := m.activePane()
	n, h := m.activeLen(), m.bodyHeight()

	switch action {
	case keymap.ActionMoveDown:
		p.cursor.Move(1, m.takeCount(), n, h)
	case keymap.ActionMoveUp:
		p.cursor.Move(-1, m.takeCount(), n, h)
	case keymap.ActionHalfPageDown:
		p.cursor.Page(1, m.takeCount(), true, n, h)
	case keymap.ActionHalfPageUp:
		p.cursor.Page(-1, m.takeCount(), true, n, h)
	case keymap.ActionPageDown:
		p.cursor.Page(1, m.takeCount(), false, n, h)
	case keymap.ActionPageUp:
		p.cursor.Page(-1, m.takeCount(), false, n, h)
	case keymap.ActionGoToBottom:
		if m.count > 0 {
			p.cursor.GoToLine(m.takeCount(), n, h)
		} else {
			p.cursor.Bottom(n, h)
		}
	case keymap.ActionGotoPrefix:
		m.startPending(pendingGoto, ev)
	case keymap.ActionScrollPrefix:
		m.startPending(pendingScroll, ev)
	case keymap.ActionJumpPercent:
		m.jumpPercent()

	case keymap.ActionPlaySelected:
		m.count = 0
		return m.playSelected()
	case keymap.ActionTogglePause:
		m.count = 0
		return m.togglePause()
	case keymap.ActionStop:
		m.count = 0
		m.session.Stop()
		m.setStatus("Stopped")
	case keymap.ActionNextTrack:
		m.step(m.session.NextTrack, m.takeCount())
	case keymap.ActionPrevTrack:
		m.step(m.session.PrevTrack, m.takeCount())
	case keymap.ActionSeekForward:
		m.seek(m.settings.SeekTime, m.takeCount())
	case keymap.ActionSeekBackward:
		m.seek(-m.settings.SeekTime, m.takeCount())
	case keymap.ActionSeekForwardLarge:
		m.seek(m.settings.SeekTimeLarge, m.takeCount())
	case keymap.ActionSeekBackwardLarge:
		m.seek(-m.settings.SeekTimeLarge, m.takeCount())
	case keymap.ActionVolumeUp:
		m.session.AdjustVolume(float64(m.takeCount()) * m.settings.VolumeStep)
		m.showVolume()
	case keymap.ActionVolumeDown:
		m.session.AdjustVolume(-float64(m.takeCount()) * m.settings.VolumeStep)
		m.showVolume()
	case keymap.ActionSpeedUp:
		m.session.ChangeSpeed(float64(m.takeCount()) * m.settings.SpeedStep)
		m.showSpeed()
	case keymap.ActionSpeedDown:
		m.session.ChangeSpeed(-float64(m.takeCount()) * m.settings.SpeedStep)
		m.showSpeed()
	case keymap.ActionSpeedReset:
		m.count = 0
		m.session.SetSpeed(1)
		m.showSpeed()
	case keymap.ActionCycleRepeat:
		m.count = 0
		m.setStatus("Repeat: " + m.session.CycleRepeat().String())
	case keymap.ActionToggleShuffle:
		m.count = 0
		m.showShuffle(m.session.ToggleShuffle())
	case keymap.ActionLoopCycle:
		m.count = 0
		loop, err := m.session.CycleLoop()
		m.showLoop(loop, err)
	case keymap.ActionLoopSetA:
		m.count = 0
		_, err := m.session.SetLoopA()
		m.showLoop(m.session.Loop(), err)
	case keymap.ActionLoopSetB:
		m.count = 0
		_, err := m.session.SetLoopB()
		m.showLoop(m.session.Loop(), err)
	case keymap.ActionLoopClear:
		m.count = 0
		m.session.ClearLoop()
		m.setStatus("Loop cleared")

	case keymap.ActionAddToQueue:
		m.enqueueAtCursor(m.takeCount())
	case keymap.ActionAddToPlaylist:
		pos := p.cursor.Pos()
		m.openPicker(m.rowTracks(pos, pos+m.takeCount()-1))
	case keymap.ActionQueueView:
		m.count = 0
		m.openOverlay(OverlayQueue)
	case keymap.ActionPlaylistManager:
		m.count = 0
		m.openOverlay(OverlayPlaylists)
	case keymap.ActionDeletePrefix:
		m.startPending(pendingDelete, ev)

	case keymap.ActionVisualMode:
		m.count = 0
		m.enterVisual()
	case keymap.ActionCommandMode:
		return m.enterInput(ModeCommand, "")
	case keymap.ActionFilterMode:
		return m.enterInput(ModeFilter, p.filter.Query())
	case keymap.ActionNextMatch:
		m.nextMatch(1, m.takeCount())
	case keymap.ActionPrevMatch:
		m.nextMatch(-1, m.takeCount())
	case keymap.ActionCancel:
		m.count = 0
		if p.filter.Active() {
			p.filter.Clear()
			return nil
		}
		m.clearStatus()
	case keymap.ActionOpenPrompt:
		return m.enterInput(ModeCommand, "open ")

	case keymap.ActionCycleView:
		m.count = 0
		return m.cycleView()
	case keymap.ActionParent:
		m.count = 0
		return m.goParent()
	case keymap.ActionArtists:
		m.count = 0
		m.openArtists()
	case keymap.ActionReload:
		m.count = 0
		return m.reload()

	case keymap.ActionMarkPrefix:
		m.startPending(pendingMarkSet, ev)
	case keymap.ActionJumpMarkPrefix:
		m.startPending(pendingMarkJump, ev)

	case keymap.ActionHelp:
		m.count = 0
		m.openOverlay(OverlayHelp)
	case keymap.ActionQuit:
		return m.quit()

	case keymap.ActionNone:
		m.count = 0
	}
	return nil
}

// dispatchVisual limits Visual mode to moving the range, playback keys
// and the bulk operations on the selection.
func (m *Model) dispatchVisual(action keymap.Action, ev keymap.KeyEvent) tea.Cmd {
	switch action {
	case keymap.ActionVisualMode, keymap.ActionCancel:
		m.count = 0
		m.exitVisual()
		return nil
	case keymap.ActionAddToQueue:
		m.count = 0
		m.visualEnqueue()
		return nil
	case keymap.ActionAddToPlaylist:
		m.count = 0
		lo, hi := m.visualRange()
		m.exitVisual()
		m.openPicker(m.rowTracks(lo, hi))
		return nil
	case keymap.ActionDeletePrefix:
		m.count = 0
		m.visualDelete()
		return nil
	case keymap.ActionMoveDown, keymap.ActionMoveUp,
		keymap.ActionHalfPageDown, keymap.ActionHalfPageUp,
		keymap.ActionPageDown, keymap.ActionPageUp,
		keymap.ActionGoToBottom, keymap.ActionGotoPrefix, keymap.ActionScrollPrefix,
		keymap.ActionJumpPercent, keymap.ActionTogglePause, keymap.ActionStop,
		keymap.ActionNextTrack, keymap.ActionPrevTrack,
		keymap.ActionSeekForward, keymap.ActionSeekBackward,
		keymap.ActionSeekForwardLarge, keymap.ActionSeekBackwardLarge,
		keymap.ActionVolumeUp, keymap.ActionVolumeDown,
		keymap.ActionNextMatch, keymap.ActionPrevMatch, keymap.ActionQuit:
		return m.dispatch(action, ev)
	default:
		m.count = 0
		if action != keymap.ActionNone {
			m.setError(keymap.Describe(action) + ": not available in Visual mode")
		}
		return nil
	}
}

// togglePause falls back to playing the selection when nothing is loaded.
func (m *Model) togglePause() tea.Cmd {
	err := m.session.TogglePause()
	if errors.Is(err, playback.ErrNothingPlaying) {
		return m.playSelected()
	}
	return nil
}

// step runs a next/prev transport call count times.
func (m *Model) step(fn func() error, count int) {
	for range count {
		if err := fn(); err != nil {
			if errors.Is(err, playback.ErrShuffleHistoryStart) {
				m.setStatus("Start of shuffle history")
				return
			}
			m.setError(errmsg.Format(errmsg.OpPlaybackStart, err))
			return
		}
	}
}

func (m *Model) seek(seconds float64, count int) {
	m.session.SeekRelative(time.Duration(seconds * float64(count) * float64(time.Second)))
}

// jumpPercent is N%: seek to N percent of the track.
func (m *Model) jumpPercent() {
	if m.count == 0 {
		m.setError("Usage: N% (seek to N percent)")
		return
	}
	p := min(m.takeCount(), 100)
	if err := m.session.JumpToPercent(float64(p)); err != nil {
		m.setError(errmsg.Format(errmsg.OpPlaybackSeek, err))
	}
}

func (m *Model) nextMatch(dir, count int) {
	p := m.activePane()
	if !p.filter.Active() {
		m.setStatus("No active filter")
		return
	}
	pos := p.cursor.Pos()
	for range count {
		var next int
		var ok bool
		if dir > 0 {
			next, ok = p.filter.Next(pos)
		} else {
			next, ok = p.filter.Prev(pos)
		}
		if !ok {
			m.setError("Pattern not found: " + p.filter.Query())
			return
		}
		pos = next
	}
	p.cursor.Jump(pos, m.activeLen(), m.bodyHeight())
}

func (m *Model) showVolume() {
	m.setStatus(fmt.Sprintf("Volume %d%%", int(m.session.Volume()*100+0.5)))
}

func (m *Model) showSpeed() {
	m.setStatus(fmt.Sprintf("Speed %gx", m.session.Speed()))
}

func (m *Model) showShuffle(on bool) {
	if on {
		m.setStatus("Shuffle on")
		return
	}
	m.setStatus("Shuffle off")
}

func (m *Model) showLoop(loop playback.Loop, err error) {
	switch {
	case err != nil:
		m.setError(err.Error())
	case loop.Active():
		m.setStatus(fmt.Sprintf("Loop %s - %s", formatClock(loop.A), formatClock(loop.B)))
	case loop.HasA:
		m.setStatus("Loop start " + formatClock(loop.A))
	default:
		m.setStatus("Loop cleared")
	}
}

func (m *Model) setMark(r rune) {
	b, err := m.session.SetBookmark(r)
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.setStatus(fmt.Sprintf("Mark '%c set at %s in %s", b.Key, formatClock(b.Position), b.Name))
}

func (m *Model) jumpMark(r rune) {
	b, err := m.session.JumpToBookmark(r)
	if err != nil {
		m.setError(err.Error())
		return
	}
	if i := m.playlist.IndexOf(b.Path); i >= 0 && m.view == ViewList {
		m.list.cursor.Jump(i, m.playlist.Len(), m.bodyHeight())
	}
	m.setStatus(fmt.Sprintf("Jumped to '%c at %s", b.Key, formatClock(b.Position)))
}

// deleteCountLines is dd: delete count lines from the cursor.
func (m *Model) deleteCountLines() {
	if m.view != ViewList {
		m.setError("Delete works in list view only")
		return
	}
	if m.playlist.Len() == 0 {
		return
	}
	pos := m.list.cursor.Pos()
	count := m.takeCount()
	indices := make([]int, 0, count)
	for i := pos; i < min(pos+count, m.playlist.Len()); i++ {
		indices = append(indices, i)
	}
	m.deleteTracks(indices)
}

// enqueueAtCursor is a: queue count rows from the cursor. Rows are queued
// by playlist position, so files outside the playlist are rejected.
func (m *Model) enqueueAtCursor(count int) {
	if m.activeLen() == 0 {
		return
	}
	pos := m.activePane().cursor.Pos()
	if m.view == ViewFolder {
		if item := m.folder.listing.Items[pos]; item.IsFolder {
			m.setError("Cannot queue a folder: " + item.Name)
			return
		}
	}
	m.enqueueTracks(m.rowTracks(pos, pos+count-1))
}

func (m *Model) visualEnqueue() {
	if m.view != ViewList {
		m.setError("Visual add to queue works in list view only")
		return
	}
	lo, hi := m.visualRange()
	m.exitVisual()
	m.enqueueTracks(m.rowTracks(lo, hi))
}

func (m *Model) visualDelete() {
	if m.view != ViewList {
		m.setError("Visual delete works in list view only")
		return
	}
	lo, hi := m.visualRange()
	m.exitVisual()
	indices := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		indices = append(indices, i)
	}
	m.deleteTracks(indices)
}

func (m *Model) enterVisual() {
	if m.activeLen() == 0 {
		return
	}
	m.mode = ModeVisual
	m.visualStart = m.activePane().cursor.Pos()
}

func (m *Model) exitVisual() {
	if m.mode == ModeVisual {
		m.mode = ModeNormal
	}
	m.visualStart = -1
}

// visualRange is the selection between the anchor and the live cursor.
func (m *Model) visualRange() (int, int) {
	cur := m.activePane().cursor.Pos()
	start := min(max(m.visualStart, 0), max(m.activeLen()-1, 0))
	return min(start, cur), max(start, cur)
}

func formatClock(d time.Duration) string {
	secs := int(d / time.Second)
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func tracksWord(n int) string {
	return english.Plural(n, "track", "")
}
