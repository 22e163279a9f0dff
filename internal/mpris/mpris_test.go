//go:build linux

package mpris

import (
	"testing"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/vimusic/internal/playback"
)

func newTestAdapter() (*playerAdapter, *Bridge, *[]Command) {
	var sent []Command
	b := NewBridge(func(c Command) { sent = append(sent, c) })
	return &playerAdapter{bridge: b}, b, &sent
}

func TestPlayerAdapterCommands(t *testing.T) {
	p, _, sent := newTestAdapter()

	require.NoError(t, p.PlayPause())
	require.NoError(t, p.Next())
	require.NoError(t, p.Seek(types.Microseconds(5_000_000)))
	require.NoError(t, p.SetPosition("", types.Microseconds(90_000_000)))
	require.NoError(t, p.SetLoopStatus(types.LoopStatusTrack))
	require.NoError(t, p.SetShuffle(true))
	require.NoError(t, p.SetVolume(0.4))

	require.Len(t, *sent, 7)
	assert.Equal(t, CmdPlayPause, (*sent)[0].Kind)
	assert.Equal(t, CmdNext, (*sent)[1].Kind)
	assert.Equal(t, 5*time.Second, (*sent)[2].Offset)
	assert.Equal(t, 90*time.Second, (*sent)[3].Position)
	assert.Equal(t, playback.RepeatOne, (*sent)[4].Repeat)
	assert.True(t, (*sent)[5].Shuffle)
	assert.InDelta(t, 0.4, (*sent)[6].Volume, 1e-9)
}

func TestPlayerAdapterProperties(t *testing.T) {
	p, b, _ := newTestAdapter()

	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Empty(t, meta.Title)

	b.Publish(Snapshot{
		State:     Paused,
		Path:      "/music/song.mp3",
		Title:     "song.mp3",
		Artist:    "Band",
		Duration:  2 * time.Minute,
		Position:  30 * time.Second,
		Volume:    0.5,
		Rate:      1.25,
		Repeat:    playback.RepeatAll,
		Shuffle:   true,
		HasTracks: true,
	})

	status, _ := p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPaused, status)
	loop, _ := p.LoopStatus()
	assert.Equal(t, types.LoopStatusPlaylist, loop)
	pos, _ := p.Position()
	assert.Equal(t, int64(30_000_000), pos)
	rate, _ := p.Rate()
	assert.InDelta(t, 1.25, rate, 1e-9)
	shuffle, _ := p.Shuffle()
	assert.True(t, shuffle)
	canNext, _ := p.CanGoNext()
	assert.True(t, canNext)

	meta, err = p.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "song.mp3", meta.Title)
	assert.Equal(t, []string{"Band"}, meta.Artist)
	assert.Equal(t, types.Microseconds(120_000_000), meta.Length)
}

func TestFormatTrackID(t *testing.T) {
	a := formatTrackID("/music/a.mp3")
	assert.Equal(t, a, formatTrackID("/music/a.mp3"))
	assert.NotEqual(t, a, formatTrackID("/music/b.mp3"))
	assert.Contains(t, a, "/org/mpris/MediaPlayer2/Track/")
}
