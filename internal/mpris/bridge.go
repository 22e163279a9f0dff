// Package mpris exposes the player over the MPRIS D-Bus interface.
package mpris

import (
	"sync"
	"time"

	"github.com/llehouerou/vimusic/internal/playback"
)

// CommandKind identifies a remote-control request.
type CommandKind int

const (
	CmdPlay CommandKind = iota
	CmdPause
	CmdPlayPause
	CmdStop
	CmdNext
	CmdPrevious
	CmdSeek        // relative, Offset
	CmdSetPosition // absolute, Position
	CmdSetRepeat   // Repeat
	CmdSetShuffle  // Shuffle
	CmdSetVolume   // Volume
	CmdSetRate     // Rate
)

// Command is posted into the event loop; the model applies it.
type Command struct {
	Kind     CommandKind
	Offset   time.Duration
	Position time.Duration
	Repeat   playback.RepeatMode
	Shuffle  bool
	Volume   float64
	Rate     float64
}

// PlayState mirrors the MPRIS playback status.
type PlayState int

const (
	Stopped PlayState = iota
	Playing
	Paused
)

// Snapshot is the read-only view of the model served to D-Bus clients.
type Snapshot struct {
	State     PlayState
	Path      string
	Title     string
	Artist    string
	Album     string
	Duration  time.Duration
	Position  time.Duration
	Volume    float64
	Rate      float64
	Repeat    playback.RepeatMode
	Shuffle   bool
	HasTracks bool
}

// Bridge carries commands from D-Bus goroutines into the event loop and
// snapshots from the event loop back to D-Bus.
type Bridge struct {
	mu   sync.RWMutex
	snap Snapshot
	send func(Command)
}

// NewBridge creates a bridge that delivers commands with send.
func NewBridge(send func(Command)) *Bridge {
	return &Bridge{send: send, snap: Snapshot{Volume: 1, Rate: 1}}
}

// Publish replaces the snapshot.
func (b *Bridge) Publish(s Snapshot) {
	b.mu.Lock()
	b.snap = s
	b.mu.Unlock()
}

// Snapshot returns the last published snapshot.
func (b *Bridge) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snap
}

// Send posts a command to the event loop.
func (b *Bridge) Send(c Command) {
	if b.send != nil {
		b.send(c)
	}
}
