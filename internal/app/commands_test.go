//nolint:goconst // test cases intentionally repeat strings for readability
package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/vimusic/internal/library"
	"github.com/llehouerou/vimusic/internal/playback"
)

func TestCommand_Lines(t *testing.T) {
	tests := []struct {
		name string
		line string
		want int
	}{
		{"go to line", "10", 9},
		{"relative down", "+3", 3},
		{"past end clamps", "100", 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := loadedModel(t, 25)
			m = runCommand(t, m, tt.line)
			assert.Equal(t, tt.want, pos(m))
			assert.Equal(t, ModeNormal, m.mode)
		})
	}
}

func TestCommand_DeleteRange(t *testing.T) {
	m, _ := loadedModel(t, 25)

	m = runCommand(t, m, "10,20d")

	assert.Equal(t, 14, m.playlist.Len())
	got, _ := m.playlist.Track(9)
	assert.Equal(t, "/music/20.mp3", got.Path)
	assert.Equal(t, "Deleted 11 tracks", m.status.text)
}

func TestCommand_DeleteRangeOutOfBounds(t *testing.T) {
	m, _ := loadedModel(t, 25)

	m = runCommand(t, m, "20,30d")

	assert.Equal(t, 25, m.playlist.Len())
	assert.True(t, m.status.isError)
}

func TestCommand_Unknown(t *testing.T) {
	m, _ := loadedModel(t, 3)

	m = runCommand(t, m, "bogus")

	assert.True(t, m.status.isError)
	assert.Contains(t, m.status.text, "bogus")
}

func TestCommand_Empty(t *testing.T) {
	m, _ := loadedModel(t, 3)
	before := m.status.text

	m = runCommand(t, m, "")

	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, before, m.status.text)
}

func TestCommand_Sort(t *testing.T) {
	m, _ := loadedModel(t, 5)
	m = press(t, m, "a", "j", "Enter")
	require.Equal(t, 1, m.session.PlayingIndex())

	m = runCommand(t, m, "sort name!")

	names := make([]string, 0, m.playlist.Len())
	for _, tr := range m.playlist.Tracks() {
		names = append(names, tr.Name)
	}
	assert.Equal(t, []string{"epsilon 04", "delta 03", "gamma 02", "beta 01", "alpha 00"}, names)
	assert.Equal(t, 3, m.session.PlayingIndex())
	assert.Equal(t, 3, pos(m), "selection follows the track")
	assert.Equal(t, 0, m.queue.Len())
	assert.Equal(t, "Sorted by name (reversed), queue cleared", m.status.text)
}

func TestCommand_SortInvalidKey(t *testing.T) {
	m, _ := loadedModel(t, 3)

	m = runCommand(t, m, "sort color")

	assert.True(t, m.status.isError)
	assert.Equal(t, "alpha 00", m.playlist.Tracks()[0].Name)
}

func TestCommand_SetPersists(t *testing.T) {
	m, env := loadedModel(t, 3)

	m = runCommand(t, m, "set rnu")

	assert.True(t, m.settings.RelativeNumber)
	data, err := env.store.Settings()
	require.NoError(t, err)
	assert.Contains(t, data, `"relativenumber":true`)
}

func TestCommand_SetQueryDoesNotPersist(t *testing.T) {
	m, env := loadedModel(t, 3)

	m = runCommand(t, m, "set seektime?")

	assert.NotEmpty(t, m.status.text)
	data, err := env.store.Settings()
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestCommand_SetUnknown(t *testing.T) {
	m, _ := loadedModel(t, 3)

	m = runCommand(t, m, "set wrap")

	assert.True(t, m.status.isError)
}

func TestCommand_Sleep(t *testing.T) {
	m, _ := loadedModel(t, 3)

	m = runCommand(t, m, "sleep 30")
	assert.True(t, m.session.SleepArmed())
	assert.True(t, strings.HasPrefix(m.status.text, "Sleep timer: stops"), m.status.text)

	m = runCommand(t, m, "sleep off")
	assert.False(t, m.session.SleepArmed())
	assert.Equal(t, "Sleep timer off", m.status.text)

	m = runCommand(t, m, "sleep abc")
	assert.True(t, m.status.isError)
}

func TestCommand_Marks(t *testing.T) {
	m, env := loadedModel(t, 3)

	m = runCommand(t, m, "marks")
	assert.Equal(t, "No marks set", m.status.text)

	m = press(t, m, "Enter")
	env.engine.SetElapsed(5 * time.Second)
	m = runCommand(t, m, "mark b")
	assert.Equal(t, "Mark 'b set at 0:05 in alpha 00", m.status.text)

	m = runCommand(t, m, "marks")
	assert.Equal(t, "'b alpha 00 0:05", m.status.text)

	m = runCommand(t, m, "delmark b")
	assert.Equal(t, "Mark 'b deleted", m.status.text)
	assert.Empty(t, m.session.Bookmarks())
}

func TestCommand_Jump(t *testing.T) {
	m, env := loadedModel(t, 3)

	m = runCommand(t, m, "jump 1:30")
	assert.True(t, m.status.isError, "nothing is playing")

	m = press(t, m, "Enter")
	m = runCommand(t, m, "jump 1:30")
	assert.Equal(t, []time.Duration{90 * time.Second}, env.engine.SeekCalls())

	m = runCommand(t, m, "jump 10%")
	assert.Equal(t, 18*time.Second, env.engine.SeekCalls()[1])
	assert.False(t, m.status.isError)
}

func TestCommand_PlayAndStop(t *testing.T) {
	m, _ := loadedModel(t, 3)

	m = runCommand(t, m, "play 3")
	assert.Equal(t, 2, m.session.PlayingIndex())

	m = runCommand(t, m, "play 9")
	assert.True(t, m.status.isError)
	assert.Equal(t, 2, m.session.PlayingIndex())

	m = runCommand(t, m, "stop")
	assert.False(t, m.session.IsPlaying())
	assert.Equal(t, "Stopped", m.status.text)
}

func TestCommand_VolumeAndSpeed(t *testing.T) {
	m, _ := loadedModel(t, 3)

	m = runCommand(t, m, "vol 40")
	assert.Equal(t, "Volume 40%", m.status.text)

	m = runCommand(t, m, "vol 140")
	assert.True(t, m.status.isError)
	assert.InDelta(t, 0.4, m.session.Volume(), 1e-9)

	m = runCommand(t, m, "speed 1.5")
	assert.Equal(t, "Speed 1.5x", m.status.text)

	for _, bad := range []string{"vol nan", "vol +Inf", "speed nan", "speed inf"} {
		m = runCommand(t, m, bad)
		assert.True(t, m.status.isError, bad)
	}
	assert.InDelta(t, 0.4, m.session.Volume(), 1e-9)
	assert.InDelta(t, 1.5, m.session.Speed(), 1e-9)
}

func TestCommand_NonFiniteArguments(t *testing.T) {
	m, _ := loadedModel(t, 3)
	m = press(t, m, "Enter")

	m = runCommand(t, m, "jump NaN")
	assert.True(t, m.status.isError)

	m = runCommand(t, m, "sleep 10")
	require.True(t, m.session.SleepArmed())
	m = runCommand(t, m, "sleep +inf")
	assert.True(t, m.status.isError)
	assert.True(t, m.session.SleepArmed(), "timer survives a rejected argument")
}

func TestCommand_RepeatShuffle(t *testing.T) {
	m, _ := loadedModel(t, 3)

	m = runCommand(t, m, "repeat one")
	assert.Equal(t, playback.RepeatOne, m.session.RepeatMode())

	m = runCommand(t, m, "shuffle on")
	assert.True(t, m.session.Shuffle())
	assert.Equal(t, playback.RepeatOff, m.session.RepeatMode(), "shuffle turns repeat-one off")
}

func TestCommand_SaveAndLoad(t *testing.T) {
	m, env := loadedModel(t, 3)

	m = runCommand(t, m, "save mix")
	assert.Equal(t, "Saved playlist 'mix' (3 tracks)", m.status.text)
	saved, err := env.store.LoadPlaylist("mix")
	require.NoError(t, err)
	assert.Len(t, saved, 3)

	m = press(t, m, "d", "d")
	require.Equal(t, 2, m.playlist.Len())

	m = runCommand(t, m, "load mix")
	assert.Equal(t, 3, m.playlist.Len())
	assert.Equal(t, sourcePlaylist, m.source.kind)
	assert.Equal(t, "Loaded 3 tracks from playlist 'mix'", m.status.text)

	m = runCommand(t, m, "save")
	assert.True(t, m.status.isError)
}

func TestCommand_LoadMissing(t *testing.T) {
	m, _ := loadedModel(t, 3)

	m = runCommand(t, m, "load nope")

	assert.True(t, m.status.isError)
	assert.Equal(t, 3, m.playlist.Len())
}

func TestCommand_RenamePlaylist(t *testing.T) {
	m, env := loadedModel(t, 3)
	require.NoError(t, env.store.SavePlaylist("old", testTracks(1)))
	m = runCommand(t, m, "load old")

	m = runCommand(t, m, "rename old > new")

	assert.Equal(t, "Renamed playlist 'old' to 'new'", m.status.text)
	assert.Equal(t, "new", m.source.path)
}

func TestCommand_Reload(t *testing.T) {
	m, _ := newTestModel(t)

	m = runCommand(t, m, "reload")
	assert.True(t, m.status.isError)
	assert.Equal(t, "Nothing to reload", m.status.text)

	m, env := loadedModel(t, 3)
	env.lib.folders["/music"] = testTracks(4)
	msg := m.reload()()
	m = send(t, m, msg)
	assert.Equal(t, 4, m.playlist.Len())
}

func TestCommand_DefaultFolder(t *testing.T) {
	m, env := loadedModel(t, 3)

	m = runCommand(t, m, "setdefault")
	assert.Equal(t, "Default folder: /music", m.status.text)
	folder, err := env.store.DefaultFolder()
	require.NoError(t, err)
	assert.Equal(t, "/music", folder)

	m = runCommand(t, m, "cleardefault")
	assert.Equal(t, "Default folder cleared", m.status.text)
	folder, err = env.store.DefaultFolder()
	require.NoError(t, err)
	assert.Empty(t, folder)
}

func TestCommand_Open(t *testing.T) {
	m, _ := newTestModel(t)

	m = runCommand(t, m, "open")
	assert.True(t, m.status.isError)
	assert.Equal(t, "No folder given and no default folder set", m.status.text)

	m = runCommand(t, m, "open /music")
	assert.Equal(t, "Loading /music...", m.status.text)
}

func TestCommand_Library(t *testing.T) {
	m, env := loadedModel(t, 3)

	m = runCommand(t, m, "scanlib")
	assert.Equal(t, "No library folders (use :addlib)", m.status.text)

	m = runCommand(t, m, "addlib")
	assert.Equal(t, "Added to library: /music", m.status.text)
	m = runCommand(t, m, "addlib /music")
	assert.Equal(t, "Already in library: /music", m.status.text)
	m = runCommand(t, m, "addlib /more")

	m = runCommand(t, m, "libs")
	assert.Equal(t, "Library: 1) /music  2) /more", m.status.text)

	env.lib.scan = library.ScanResult{
		Tracks: testTracks(6),
		Failed: []library.FolderError{{Folder: "/more", Err: errors.New("denied")}},
	}
	msg := m.scanLibrary(false)()
	m = send(t, m, msg)
	assert.Equal(t, 6, m.playlist.Len())
	assert.Equal(t, sourceLibrary, m.source.kind)
	assert.True(t, m.status.isError)
	assert.Equal(t, "Loaded 6 tracks from library (1 folder failed)", m.status.text)

	m = runCommand(t, m, "removelib 2")
	assert.Equal(t, "Removed from library: /more", m.status.text)
	folders, err := env.store.LibraryFolders()
	require.NoError(t, err)
	assert.Equal(t, []string{"/music"}, folders)
}

func TestCommand_Devices(t *testing.T) {
	m, _ := loadedModel(t, 3)

	m = runCommand(t, m, "devices")
	assert.Equal(t, "Devices: 1) default  2) headphones", m.status.text)

	m = runCommand(t, m, "device 2")
	assert.Equal(t, "Output device: headphones", m.status.text)

	m = runCommand(t, m, "device speakers")
	assert.True(t, m.status.isError)
}

func TestCommand_Reveal(t *testing.T) {
	m, _ := loadedModel(t, 3)
	var revealed string
	m.reveal = func(path string) error {
		revealed = path
		return nil
	}

	m = press(t, m, "j")
	runCommand(t, m, "reveal")

	assert.Equal(t, "/music/01.mp3", revealed)
}

func TestCommand_QueueClear(t *testing.T) {
	m, _ := loadedModel(t, 3)
	m = press(t, m, "a", "j", "a")
	require.Equal(t, 2, m.queue.Len())

	m = runCommand(t, m, "queue clear")

	assert.Equal(t, 0, m.queue.Len())
	assert.Equal(t, "Queue cleared", m.status.text)
}

func TestCommand_Quit(t *testing.T) {
	m, _ := loadedModel(t, 3)

	m = runCommand(t, m, "q")

	assert.True(t, m.Quitting())
}

func TestLibraryReload_LeavesFolderView(t *testing.T) {
	m, _ := loadedModel(t, 3)
	m = send(t, m, browseLoadedMsg{path: "/music", listing: folderListing()})
	m = press(t, m, "Tab")
	require.Equal(t, ViewFolder, m.view)

	m = send(t, m, libraryLoadedMsg{result: library.ScanResult{Tracks: testTracks(4)}, reload: true})

	assert.Equal(t, ViewList, m.view)
	assert.Equal(t, sourceLibrary, m.source.kind)
	assert.Equal(t, "Loaded 4 tracks from library", m.status.text)
}
