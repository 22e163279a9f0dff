package mpris

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/vimusic/internal/playback"
)

func TestBridgeDefaults(t *testing.T) {
	b := NewBridge(nil)
	s := b.Snapshot()
	assert.Equal(t, Stopped, s.State)
	assert.InDelta(t, 1.0, s.Volume, 1e-9)
	assert.InDelta(t, 1.0, s.Rate, 1e-9)

	b.Send(Command{Kind: CmdNext}) // nil sender is ignored
}

func TestBridgePublish(t *testing.T) {
	b := NewBridge(nil)
	b.Publish(Snapshot{
		State:    Playing,
		Path:     "/m/a.mp3",
		Title:    "a.mp3",
		Position: 3 * time.Second,
		Repeat:   playback.RepeatAll,
	})

	s := b.Snapshot()
	assert.Equal(t, Playing, s.State)
	assert.Equal(t, "/m/a.mp3", s.Path)
	assert.Equal(t, 3*time.Second, s.Position)
	assert.Equal(t, playback.RepeatAll, s.Repeat)
}

func TestBridgeSendConcurrent(t *testing.T) {
	var mu sync.Mutex
	var got []CommandKind
	b := NewBridge(func(c Command) {
		mu.Lock()
		got = append(got, c.Kind)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() {
			b.Send(Command{Kind: CmdPlayPause})
			b.Publish(Snapshot{State: Paused})
			_ = b.Snapshot()
		})
	}
	wg.Wait()

	assert.Len(t, got, 10)
}
