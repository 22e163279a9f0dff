//nolint:goconst // test cases intentionally repeat strings for readability
package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/vimusic/internal/library"
	"github.com/llehouerou/vimusic/internal/mpris"
	"github.com/llehouerou/vimusic/internal/playback"
)

func TestMotions(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"j moves down", []string{"j"}, 1},
		{"count j", []string{"5", "j"}, 5},
		{"k at top stays", []string{"k"}, 0},
		{"G goes to bottom", []string{"G"}, 24},
		{"count G goes to line", []string{"1", "0", "G"}, 9},
		{"gg goes to top", []string{"G", "g", "g"}, 0},
		{"count gg goes to line", []string{"3", "g", "g"}, 2},
		{"count past end clamps", []string{"9", "9", "j"}, 24},
		{"half page down", []string{"Ctrl+d"}, 10},
		{"zero alone is not a count", []string{"0", "j"}, 1},
		{"zero extends a count", []string{"1", "0", "j"}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := loadedModel(t, 25)
			m = press(t, m, tt.keys...)
			assert.Equal(t, tt.want, pos(m))
			assert.Equal(t, 0, m.count)
		})
	}
}

func TestPending_ConsumesNextKey(t *testing.T) {
	m, _ := loadedModel(t, 10)

	m = press(t, m, "g", "j")
	assert.Equal(t, 0, pos(m), "j completes the pending g and does nothing")
	assert.False(t, m.pending.active())

	m = press(t, m, "4", "g", "x", "j")
	assert.Equal(t, 1, pos(m), "the count is dropped with the cancelled sequence")
}

func TestScrollCenter(t *testing.T) {
	m, _ := loadedModel(t, 50)
	m = press(t, m, "2", "5", "G")
	require.Equal(t, 24, pos(m))
	require.NotEqual(t, 14, m.list.cursor.Offset())

	m = press(t, m, "z", "z")

	assert.Equal(t, 24, pos(m), "zz keeps the selection")
	assert.Equal(t, 14, m.list.cursor.Offset(), "selection sits mid-screen")

	m = press(t, m, "z", "j")
	assert.Equal(t, 14, m.list.cursor.Offset(), "z then another key scrolls nothing")
	assert.Equal(t, 24, pos(m))
}

func TestDeleteCountLines(t *testing.T) {
	m, _ := loadedModel(t, 25)

	m = press(t, m, "j", "3", "d", "d")

	assert.Equal(t, 22, m.playlist.Len())
	got, _ := m.playlist.Track(1)
	assert.Equal(t, "epsilon 04", got.Name)
	assert.Equal(t, "Deleted 3 tracks", m.status.text)
}

func TestDelete_NeedsRepeatedKey(t *testing.T) {
	m, _ := loadedModel(t, 5)

	m = press(t, m, "d", "j")

	assert.Equal(t, 5, m.playlist.Len())
	assert.Equal(t, 0, pos(m))
}

func TestDelete_PlayingTrackStops(t *testing.T) {
	m, env := loadedModel(t, 5)
	m = press(t, m, "Enter")
	require.True(t, m.session.IsPlaying())

	m = press(t, m, "d", "d")

	assert.False(t, m.session.IsPlaying())
	assert.Equal(t, -1, m.session.PlayingIndex())
	assert.Equal(t, 1, env.engine.StopCalls())
}

func TestDelete_RemapsQueueAndPlaying(t *testing.T) {
	m, _ := loadedModel(t, 10)
	m = press(t, m, "3", "j", "a", "2", "j", "a", "Enter")
	require.Equal(t, []int{3, 5}, m.queue.Entries())
	require.Equal(t, 5, m.session.PlayingIndex())

	m = press(t, m, "g", "g", "d", "d")

	assert.Equal(t, []int{2, 4}, m.queue.Entries())
	assert.Equal(t, 4, m.session.PlayingIndex())
	assert.True(t, m.session.IsPlaying())
}

func TestDelete_OutsideListView(t *testing.T) {
	m, _ := loadedModel(t, 5)
	m = press(t, m, "I", "d", "d")

	assert.Equal(t, 5, m.playlist.Len())
	assert.True(t, m.status.isError)
	assert.Equal(t, "Delete works in list view only", m.status.text)
}

func TestVisual_Enqueue(t *testing.T) {
	m, _ := loadedModel(t, 10)

	m = press(t, m, "j", "v")
	require.Equal(t, ModeVisual, m.mode)
	m = press(t, m, "j", "j", "a")

	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, []int{1, 2, 3}, m.queue.Entries())
	assert.Equal(t, "Queued 3 tracks", m.status.text)
}

func TestVisual_RangeUpward(t *testing.T) {
	m, _ := loadedModel(t, 10)

	m = press(t, m, "5", "j", "v", "k", "k")
	from, to := m.visualRange()

	assert.Equal(t, 3, from)
	assert.Equal(t, 5, to)
}

func TestVisual_Delete(t *testing.T) {
	m, _ := loadedModel(t, 10)

	m = press(t, m, "v", "j", "d")

	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 8, m.playlist.Len())
	assert.Equal(t, "Deleted 2 tracks", m.status.text)
}

func TestVisual_EscapeCancels(t *testing.T) {
	m, _ := loadedModel(t, 10)

	m = press(t, m, "v", "j", "Escape")

	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 10, m.playlist.Len())
	assert.Equal(t, -1, m.visualStart)
}

func TestVisual_EmptyListStaysNormal(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "v")

	assert.Equal(t, ModeNormal, m.mode)
}

func folderListing() library.Listing {
	return library.Listing{
		Path: "/music",
		Items: []library.Item{
			{Name: "sub", Path: "/music/sub", IsFolder: true, TrackCount: 2},
			{Name: "00.mp3", Path: "/music/00.mp3"},
			{Name: "01.mp3", Path: "/music/01.mp3"},
		},
	}
}

func TestFolderView(t *testing.T) {
	m, _ := loadedModel(t, 3)
	m = send(t, m, browseLoadedMsg{path: "/music", listing: folderListing()})

	m = press(t, m, "Tab")
	require.Equal(t, ViewFolder, m.view)

	m = press(t, m, "a")
	assert.True(t, m.status.isError)
	assert.Equal(t, "Cannot queue a folder: sub", m.status.text)

	m = press(t, m, "j", "a")
	assert.Equal(t, []int{0}, m.queue.Entries())
	assert.Equal(t, "Queued alpha 00 (#1)", m.status.text)

	m = press(t, m, "v", "a")
	assert.True(t, m.status.isError)
	assert.Equal(t, "Visual add to queue works in list view only", m.status.text)

	m = press(t, m, "Escape", "j", "Enter")
	assert.Equal(t, 1, m.session.PlayingIndex())

	m = press(t, m, "Tab")
	assert.Equal(t, ViewList, m.view)
}

func TestFolderView_BrowseSelectsChildAfterParent(t *testing.T) {
	m, env := loadedModel(t, 3)
	env.lib.listings["/music"] = folderListing()
	m = send(t, m, browseLoadedMsg{path: "/music/sub", listing: library.Listing{Path: "/music/sub", Parent: "/music"}})

	msg := m.browseCmd("/music", "/music/01.mp3")()
	m = send(t, m, msg)

	assert.Equal(t, "/music", m.folder.listing.Path)
	assert.Equal(t, 2, m.folder.cursor.Pos())
}

func TestCycleView_NeedsFolder(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "Tab")

	assert.Equal(t, ViewList, m.view)
	assert.Equal(t, "No folder loaded", m.status.text)
}

func TestArtistView(t *testing.T) {
	m, _ := loadedModel(t, 5)

	m = press(t, m, "I")
	require.Equal(t, ViewArtist, m.view)
	require.Len(t, m.artist.list, 2)

	m = press(t, m, "j", "Enter")
	assert.True(t, m.artist.inTracks)
	assert.Equal(t, "Band B", m.artist.selected)
	assert.Len(t, m.artist.songs, 2)

	m = press(t, m, "Enter")
	assert.Equal(t, 1, m.session.PlayingIndex())

	m = press(t, m, "Backspace")
	assert.False(t, m.artist.inTracks)
	assert.Equal(t, 1, pos(m), "artist selection is kept")

	m = press(t, m, "Backspace")
	assert.Equal(t, ViewList, m.view)
}

func TestArtistView_QueueArtist(t *testing.T) {
	m, _ := loadedModel(t, 5)

	m = press(t, m, "I", "a")

	assert.Equal(t, []int{0, 2, 4}, m.queue.Entries())
}

func TestFilter(t *testing.T) {
	m, _ := loadedModel(t, 10)

	m = press(t, m, "/")
	require.Equal(t, ModeFilter, m.mode)
	m = typeText(t, m, "beta")
	assert.Equal(t, []int{1, 6}, m.list.filter.Indices(), "filter updates while typing")
	assert.Equal(t, 0, pos(m))

	m = press(t, m, "Enter")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 1, pos(m))

	m = press(t, m, "n")
	assert.Equal(t, 6, pos(m))
	m = press(t, m, "n")
	assert.Equal(t, 1, pos(m), "n wraps around")
	m = press(t, m, "N")
	assert.Equal(t, 6, pos(m), "N wraps around")

	m = press(t, m, "Escape")
	assert.False(t, m.list.filter.Active())
	assert.Equal(t, 6, pos(m))
}

func TestFilter_Prefilled(t *testing.T) {
	m, _ := loadedModel(t, 10)
	m = press(t, m, "/")
	m = typeText(t, m, "beta")
	m = press(t, m, "Enter", "/")

	assert.Equal(t, "beta", m.input.Value())
}

func TestFilter_NotFound(t *testing.T) {
	m, _ := loadedModel(t, 10)

	m = press(t, m, "/")
	m = typeText(t, m, "zzz")
	m = press(t, m, "Enter")

	assert.True(t, m.status.isError)
	assert.Equal(t, "Pattern not found: zzz", m.status.text)
}

func TestFilter_EscapeClears(t *testing.T) {
	m, _ := loadedModel(t, 10)

	m = press(t, m, "/")
	m = typeText(t, m, "gamma")
	m = press(t, m, "Escape")

	assert.Equal(t, ModeNormal, m.mode)
	assert.False(t, m.list.filter.Active())
}

func TestNextMatch_NoFilter(t *testing.T) {
	m, _ := loadedModel(t, 3)

	m = press(t, m, "n")

	assert.Equal(t, "No active filter", m.status.text)
}

func TestInput_BackspaceOnEmptyLeaves(t *testing.T) {
	m, _ := loadedModel(t, 3)

	m = press(t, m, ":", "Backspace")

	assert.Equal(t, ModeNormal, m.mode)
}

func TestCommandCompletion(t *testing.T) {
	m, _ := loadedModel(t, 3)

	m = press(t, m, ":")
	m = typeText(t, m, "shu")
	m = press(t, m, "Tab")

	assert.Equal(t, "shuffle ", m.input.Value())
}

func TestTogglePause_StartsSelection(t *testing.T) {
	m, env := loadedModel(t, 3)

	m = press(t, m, "j", "Space")
	assert.Equal(t, []int{1}, env.engine.PlayCalls())
	assert.True(t, m.session.IsPlaying())

	m = press(t, m, "Space")
	assert.True(t, m.session.IsPaused())
}

func TestTransportKeys(t *testing.T) {
	m, env := loadedModel(t, 5)
	m = press(t, m, "Enter")

	m = press(t, m, "2", ">")
	assert.Equal(t, 2, m.session.PlayingIndex())

	m = press(t, m, "<")
	assert.Equal(t, 1, m.session.PlayingIndex())

	m = press(t, m, "-")
	assert.Equal(t, "Volume 95%", m.status.text)

	m = press(t, m, "]")
	assert.Equal(t, "Speed 1.25x", m.status.text)
	m = press(t, m, "=")
	assert.Equal(t, "Speed 1x", m.status.text)

	m = press(t, m, "r")
	assert.Equal(t, playback.RepeatAll, m.session.RepeatMode())

	m = press(t, m, "3", "l")
	assert.Equal(t, []time.Duration{15 * time.Second}, env.engine.SeekCalls())
}

func TestJumpPercent(t *testing.T) {
	m, env := loadedModel(t, 3)
	m = press(t, m, "Enter", "5", "0", "%")

	assert.Equal(t, []time.Duration{90 * time.Second}, env.engine.SeekCalls())

	m = press(t, m, "%")
	assert.True(t, m.status.isError)
	assert.Equal(t, "Usage: N% (seek to N percent)", m.status.text)
}

func TestLoopKeys(t *testing.T) {
	m, env := loadedModel(t, 3)
	m = press(t, m, "Enter")
	env.engine.SetElapsed(10 * time.Second)
	m = send(t, m, tickMsg{kind: tickPoll, gen: m.tickers.poll.gen})

	m = press(t, m, "b")
	assert.Equal(t, "Loop start 0:10", m.status.text)

	env.engine.SetElapsed(20 * time.Second)
	m = send(t, m, tickMsg{kind: tickPoll, gen: m.tickers.poll.gen})
	m = press(t, m, "b")
	assert.Equal(t, "Loop 0:10 - 0:20", m.status.text)
	assert.True(t, m.tickers.loop.running)

	m = press(t, m, "b")
	assert.Equal(t, "Loop cleared", m.status.text)
	assert.False(t, m.tickers.loop.running)
}

func TestMarks(t *testing.T) {
	m, env := loadedModel(t, 5)
	m = press(t, m, "2", "j", "Enter")
	env.engine.SetElapsed(75 * time.Second)

	m = press(t, m, "m", "a")
	assert.Equal(t, "Mark 'a set at 1:15 in gamma 02", m.status.text)

	m = press(t, m, "g", "g", "Enter")
	require.Equal(t, 0, m.session.PlayingIndex())

	m = press(t, m, "'", "a")
	assert.Equal(t, 2, m.session.PlayingIndex())
	assert.Equal(t, 75*time.Second, m.session.Elapsed())
	assert.Equal(t, 2, pos(m))
	assert.Equal(t, "Jumped to 'a at 1:15", m.status.text)
}

func TestMarks_Errors(t *testing.T) {
	m, _ := loadedModel(t, 5)

	m = press(t, m, "m", "a")
	assert.True(t, m.status.isError)

	m = press(t, m, "'", "z")
	assert.True(t, m.status.isError)
}

func TestRemote(t *testing.T) {
	m, _ := loadedModel(t, 3)

	m = send(t, m, RemoteMsg(mpris.Command{Kind: mpris.CmdPlayPause}))
	assert.Equal(t, 0, m.session.PlayingIndex())

	m = send(t, m, RemoteMsg(mpris.Command{Kind: mpris.CmdNext}))
	assert.Equal(t, 1, m.session.PlayingIndex())

	m = send(t, m, RemoteMsg(mpris.Command{Kind: mpris.CmdPause}))
	assert.True(t, m.session.IsPaused())
	m = send(t, m, RemoteMsg(mpris.Command{Kind: mpris.CmdPause}))
	assert.True(t, m.session.IsPaused(), "pause is not a toggle")

	m = send(t, m, RemoteMsg(mpris.Command{Kind: mpris.CmdSetVolume, Volume: 0.5}))
	assert.InDelta(t, 0.5, m.session.Volume(), 1e-9)

	m = send(t, m, RemoteMsg(mpris.Command{Kind: mpris.CmdSetShuffle, Shuffle: true}))
	assert.True(t, m.session.Shuffle())

	m = send(t, m, RemoteMsg(mpris.Command{Kind: mpris.CmdStop}))
	assert.False(t, m.session.IsPlaying())
}

func TestVisual_UnavailableActionReported(t *testing.T) {
	m, _ := loadedModel(t, 3)
	m = press(t, m, "v", "?")

	assert.Equal(t, ModeVisual, m.mode)
	assert.True(t, m.status.isError)
	assert.Equal(t, "Help: not available in Visual mode", m.status.text)

	m = press(t, m, "Escape")
	m.status = status{}
	m = press(t, m, "v", "#")
	assert.Equal(t, ModeVisual, m.mode)
	assert.Empty(t, m.status.text)
}
