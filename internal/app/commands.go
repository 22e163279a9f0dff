package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/vimusic/internal/cmdline"
	"github.com/llehouerou/vimusic/internal/errmsg"
	"github.com/llehouerou/vimusic/internal/playback"
	"github.com/llehouerou/vimusic/internal/state"
)

// executeCommand runs one ':' line. Parse and argument errors are user
// errors: shown as they are, nothing changes.
func (m *Model) executeCommand(line string) tea.Cmd {
	cmd, err := cmdline.Parse(line)
	if err != nil {
		m.setError(err.Error())
		return nil
	}
	p := m.activePane()
	n, h := m.activeLen(), m.bodyHeight()

	switch cmd.Verb {
	case cmdline.VerbNone:
	case cmdline.VerbGotoLine:
		p.cursor.GoToLine(cmd.Line, n, h)
	case cmdline.VerbRelativeLine:
		p.cursor.Move(cmd.Offset, 1, n, h)
	case cmdline.VerbDeleteLines:
		m.deleteLines(cmd.From, cmd.To)

	case cmdline.VerbOpen:
		return m.cmdOpen(cmd.Rest)
	case cmdline.VerbPlay:
		return m.cmdPlay(cmd.Arg(0))
	case cmdline.VerbStop:
		m.session.Stop()
		m.setStatus("Stopped")
	case cmdline.VerbNext:
		m.step(m.session.NextTrack, 1)
	case cmdline.VerbPrev:
		m.step(m.session.PrevTrack, 1)
	case cmdline.VerbVolume:
		m.cmdVolume(cmd.Arg(0))
	case cmdline.VerbSpeed:
		m.cmdSpeed(cmd.Arg(0))
	case cmdline.VerbJump:
		m.cmdJump(cmd.Rest)

	case cmdline.VerbSetDefault:
		m.cmdSetDefault(cmd.Rest)
	case cmdline.VerbClearDefault:
		if err := m.store.ClearDefaultFolder(); err != nil {
			m.setError(errmsg.Format(errmsg.OpDefaultClear, err))
			return nil
		}
		m.setStatus("Default folder cleared")

	case cmdline.VerbSave:
		if cmd.Rest == "" {
			m.setError(cmdline.ErrMissingArgument.Error() + ": save <name>")
			return nil
		}
		m.savePlaylist(cmd.Rest)
	case cmdline.VerbLoad:
		if cmd.Rest == "" {
			m.openOverlay(OverlayPlaylists)
			return nil
		}
		m.loadPlaylist(cmd.Rest)
	case cmdline.VerbPlaylists:
		m.openOverlay(OverlayPlaylists)
	case cmdline.VerbRename:
		m.cmdRename(cmd.Rest)
	case cmdline.VerbDelPlaylist:
		m.cmdDelPlaylist(cmd.Rest)
	case cmdline.VerbReload:
		return m.reload()

	case cmdline.VerbAddLib:
		m.cmdAddLib(cmd.Rest)
	case cmdline.VerbLibs:
		m.cmdLibs()
	case cmdline.VerbRemoveLib:
		m.cmdRemoveLib(cmd.Arg(0))
	case cmdline.VerbScanLib:
		return m.scanLibrary(false)

	case cmdline.VerbBack:
		return m.goParent()
	case cmdline.VerbArtists:
		m.openArtists()
	case cmdline.VerbDevices:
		m.cmdDevices()
	case cmdline.VerbDevice:
		m.cmdDevice(cmd.Rest)

	case cmdline.VerbSleep:
		m.cmdSleep(cmd.Rest)
	case cmdline.VerbMark:
		r, err := cmdline.ParseMark(cmd.Rest)
		if err != nil {
			m.setError(err.Error())
			return nil
		}
		m.setMark(r)
	case cmdline.VerbMarks:
		m.cmdMarks()
	case cmdline.VerbDelMark:
		m.cmdDelMark(cmd.Rest)

	case cmdline.VerbSet:
		m.cmdSet(cmd.Rest)
	case cmdline.VerbSort:
		key, reverse, err := cmdline.ParseSort(cmd.Arg(0), cmd.Bang)
		if err != nil {
			m.setError(err.Error())
			return nil
		}
		m.sortPlaylist(key, reverse)
	case cmdline.VerbReveal:
		m.cmdReveal()

	case cmdline.VerbRepeat:
		m.cmdRepeat(cmd.Arg(0))
	case cmdline.VerbShuffle:
		m.cmdShuffle(cmd.Arg(0))
	case cmdline.VerbLoop:
		m.cmdLoop(cmd.Arg(0))
	case cmdline.VerbQueue:
		if strings.EqualFold(cmd.Arg(0), "clear") {
			m.queue.Clear()
			m.setStatus("Queue cleared")
			return nil
		}
		m.openOverlay(OverlayQueue)
	case cmdline.VerbHelp:
		m.openOverlay(OverlayHelp)
	case cmdline.VerbQuit:
		return m.quit()
	}
	return nil
}

// cmdOpen loads a folder, or the default folder without an argument.
func (m *Model) cmdOpen(arg string) tea.Cmd {
	path := expandHome(arg)
	if path == "" {
		path = m.defaultFolder()
	}
	if path == "" {
		m.setError("No folder given and no default folder set")
		return nil
	}
	return m.openFolder(path)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func (m *Model) cmdPlay(arg string) tea.Cmd {
	if arg == "" {
		return m.playSelected()
	}
	i, err := cmdline.ParseIndex(arg, m.playlist.Len())
	if err != nil {
		m.setError(err.Error())
		return nil
	}
	m.playIndex(i)
	return nil
}

func (m *Model) cmdVolume(arg string) {
	if arg != "" {
		v, err := cmdline.ParseVolume(arg)
		if err != nil {
			m.setError(err.Error())
			return
		}
		m.session.SetVolume(v)
	}
	m.showVolume()
}

func (m *Model) cmdSpeed(arg string) {
	if arg != "" {
		v, err := cmdline.ParseSpeed(arg)
		if err != nil {
			m.setError(err.Error())
			return
		}
		m.session.SetSpeed(v)
	}
	m.showSpeed()
}

func (m *Model) cmdJump(arg string) {
	target, err := cmdline.ParseJump(arg)
	if err != nil {
		m.setError(err.Error())
		return
	}
	if target.IsPercent {
		if err := m.session.JumpToPercent(target.Percent); err != nil {
			m.setError(errmsg.Format(errmsg.OpPlaybackSeek, err))
		}
		return
	}
	if !m.session.IsPlaying() {
		m.setError(errmsg.Format(errmsg.OpPlaybackSeek, playback.ErrNothingPlaying))
		return
	}
	m.session.SeekTo(target.Position)
}

func (m *Model) cmdSetDefault(arg string) {
	path := expandHome(arg)
	if path == "" {
		path = m.root()
	}
	if path == "" {
		m.setError("No folder loaded")
		return
	}
	if err := m.store.SetDefaultFolder(path); err != nil {
		m.setError(errmsg.Format(errmsg.OpDefaultSet, err))
		return
	}
	m.setStatus("Default folder: " + path)
}

func (m *Model) cmdRename(rest string) {
	oldName, newName, err := cmdline.ParseRename(rest)
	if err != nil {
		m.setError(err.Error())
		return
	}
	if err := m.store.RenamePlaylist(oldName, newName); err != nil {
		m.setError(errmsg.FormatWith(errmsg.OpPlaylistRename, oldName, err))
		return
	}
	if m.source.kind == sourcePlaylist && m.source.path == oldName {
		m.source.path = newName
	}
	m.setStatus(fmt.Sprintf("Renamed playlist '%s' to '%s'", oldName, newName))
}

func (m *Model) cmdDelPlaylist(name string) {
	if name == "" {
		m.setError(cmdline.ErrMissingArgument.Error() + ": delplaylist <name>")
		return
	}
	if err := m.store.DeletePlaylist(name); err != nil {
		m.setError(errmsg.FormatWith(errmsg.OpPlaylistDelete, name, err))
		return
	}
	m.setStatus("Deleted playlist '" + name + "'")
}

func (m *Model) cmdAddLib(arg string) {
	path := expandHome(arg)
	if path == "" {
		path = m.root()
	}
	if path == "" {
		m.setError("No folder loaded")
		return
	}
	err := m.store.AddLibraryFolder(path)
	switch {
	case errors.Is(err, state.ErrFolderExists):
		m.setStatus("Already in library: " + path)
	case err != nil:
		m.setError(errmsg.FormatWith(errmsg.OpLibraryAdd, path, err))
	default:
		m.setStatus("Added to library: " + path)
	}
}

func (m *Model) cmdLibs() {
	folders, err := m.store.LibraryFolders()
	if err != nil {
		m.setError(errmsg.Format(errmsg.OpLibraryList, err))
		return
	}
	if len(folders) == 0 {
		m.setStatus("No library folders (use :addlib)")
		return
	}
	m.setStatus("Library: " + numbered(folders))
}

func (m *Model) cmdRemoveLib(arg string) {
	folders, err := m.store.LibraryFolders()
	if err != nil {
		m.setError(errmsg.Format(errmsg.OpLibraryList, err))
		return
	}
	if len(folders) == 0 {
		m.setError("No library folders")
		return
	}
	i, err := cmdline.ParseIndex(arg, len(folders))
	if err != nil {
		m.setError(err.Error())
		return
	}
	if err := m.store.RemoveLibraryFolder(folders[i]); err != nil {
		m.setError(errmsg.FormatWith(errmsg.OpLibraryRemove, folders[i], err))
		return
	}
	m.setStatus("Removed from library: " + folders[i])
}

func (m *Model) cmdDevices() {
	devices, err := m.engine.Devices()
	if err != nil {
		m.setError(errmsg.Format(errmsg.OpDeviceList, err))
		return
	}
	m.setStatus("Devices: " + numbered(devices))
}

// cmdDevice selects an output device by list number or name.
func (m *Model) cmdDevice(arg string) {
	if arg == "" {
		m.setError(cmdline.ErrMissingArgument.Error() + ": device <n|name>")
		return
	}
	name := arg
	if _, err := strconv.Atoi(arg); err == nil {
		devices, err := m.engine.Devices()
		if err != nil {
			m.setError(errmsg.Format(errmsg.OpDeviceList, err))
			return
		}
		i, err := cmdline.ParseIndex(arg, len(devices))
		if err != nil {
			m.setError(err.Error())
			return
		}
		name = devices[i]
	}
	if err := m.engine.SetDevice(name); err != nil {
		m.setError(errmsg.FormatWith(errmsg.OpDeviceSet, name, err))
		return
	}
	m.setStatus("Output device: " + name)
}

func (m *Model) cmdSleep(arg string) {
	mode, d, err := cmdline.ParseSleep(arg)
	if err != nil {
		m.setError(err.Error())
		return
	}
	switch mode {
	case cmdline.SleepSet:
		m.session.SetSleep(d)
	case cmdline.SleepAdd:
		m.session.AdjustSleep(d)
	case cmdline.SleepCancel:
		m.session.CancelSleep()
	case cmdline.SleepShow:
	}
	m.showSleep()
}

func (m *Model) showSleep() {
	remaining, ok := m.session.SleepRemaining()
	if !ok {
		m.setStatus("Sleep timer off")
		return
	}
	m.setStatus("Sleep timer: stops " + humanize.Time(time.Now().Add(remaining)))
}

func (m *Model) cmdMarks() {
	marks := m.session.Bookmarks()
	if len(marks) == 0 {
		m.setStatus("No marks set")
		return
	}
	parts := make([]string, len(marks))
	for i, b := range marks {
		parts[i] = fmt.Sprintf("'%c %s %s", b.Key, b.Name, formatClock(b.Position))
	}
	m.setStatus(strings.Join(parts, "  "))
}

func (m *Model) cmdDelMark(arg string) {
	r, err := cmdline.ParseMark(arg)
	if err != nil {
		m.setError(err.Error())
		return
	}
	if err := m.session.DeleteBookmark(r); err != nil {
		m.setError(err.Error())
		return
	}
	m.setStatus(fmt.Sprintf("Mark '%c deleted", r))
}

// cmdSet applies a :set argument and persists the result.
func (m *Model) cmdSet(arg string) {
	text, err := m.settings.Apply(arg)
	if err != nil {
		m.setError(err.Error())
		return
	}
	if arg != "" && !strings.HasSuffix(arg, "?") {
		data, err := m.settings.Marshal()
		if err == nil {
			err = m.store.SaveSettings(data)
		}
		if err != nil {
			m.setError(errmsg.Format(errmsg.OpSettingsSave, err))
			return
		}
	}
	if text != "" {
		m.setStatus(text)
	}
}

func (m *Model) cmdReveal() {
	path := m.selectedPath()
	if path == "" {
		path = m.session.PlayingPath()
	}
	if path == "" {
		m.setError("Nothing to reveal")
		return
	}
	if err := m.reveal(path); err != nil {
		m.setError(errmsg.FormatWith(errmsg.OpReveal, filepath.Base(path), err))
	}
}

func (m *Model) cmdRepeat(arg string) {
	if arg == "" {
		m.setStatus("Repeat: " + m.session.CycleRepeat().String())
		return
	}
	mode, ok := playback.ParseRepeatMode(arg)
	if !ok {
		m.setError(fmt.Sprintf("%s: repeat <off|all|one>: %s", cmdline.ErrInvalidArgument, arg))
		return
	}
	m.session.SetRepeatMode(mode)
	m.setStatus("Repeat: " + mode.String())
}

func (m *Model) cmdShuffle(arg string) {
	switch strings.ToLower(arg) {
	case "":
		m.showShuffle(m.session.ToggleShuffle())
	case "on":
		m.session.SetShuffle(true)
		m.showShuffle(true)
	case "off":
		m.session.SetShuffle(false)
		m.showShuffle(false)
	default:
		m.setError(fmt.Sprintf("%s: shuffle [on|off]: %s", cmdline.ErrInvalidArgument, arg))
	}
}

func (m *Model) cmdLoop(arg string) {
	switch strings.ToLower(arg) {
	case "":
		loop := m.session.Loop()
		if !loop.HasA {
			m.setStatus("No loop set")
			return
		}
		m.showLoop(loop, nil)
	case "clear", "off":
		m.session.ClearLoop()
		m.setStatus("Loop cleared")
	default:
		m.setError(fmt.Sprintf("%s: loop [clear]: %s", cmdline.ErrInvalidArgument, arg))
	}
}

func numbered(items []string) string {
	parts := make([]string, len(items))
	for i, s := range items {
		parts[i] = fmt.Sprintf("%d) %s", i+1, s)
	}
	return strings.Join(parts, "  ")
}
