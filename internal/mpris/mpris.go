//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/vimusic/internal/player"
	"github.com/llehouerou/vimusic/internal/playback"
)

// Adapter serves a Bridge over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(bridge *Bridge) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("vimusic", &rootAdapter{}, &playerAdapter{bridge: bridge}),
	}

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil
}

func (r *rootAdapter) Quit() error {
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "vimusic", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the
// loop-status and shuffle extensions.
type playerAdapter struct {
	bridge *Bridge
}

func (p *playerAdapter) send(kind CommandKind) error {
	p.bridge.Send(Command{Kind: kind})
	return nil
}

func (p *playerAdapter) Next() error      { return p.send(CmdNext) }
func (p *playerAdapter) Previous() error  { return p.send(CmdPrevious) }
func (p *playerAdapter) Pause() error     { return p.send(CmdPause) }
func (p *playerAdapter) PlayPause() error { return p.send(CmdPlayPause) }
func (p *playerAdapter) Stop() error      { return p.send(CmdStop) }
func (p *playerAdapter) Play() error      { return p.send(CmdPlay) }

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.bridge.Send(Command{Kind: CmdSeek, Offset: time.Duration(offset) * time.Microsecond})
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.bridge.Send(Command{Kind: CmdSetPosition, Position: time.Duration(position) * time.Microsecond})
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.bridge.Snapshot().State {
	case Playing:
		return types.PlaybackStatusPlaying, nil
	case Paused:
		return types.PlaybackStatusPaused, nil
	case Stopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return p.bridge.Snapshot().Rate, nil
}

func (p *playerAdapter) SetRate(rate float64) error {
	p.bridge.Send(Command{Kind: CmdSetRate, Rate: rate})
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	s := p.bridge.Snapshot()
	if s.Path == "" {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(s.Path)),
		Length:  types.Microseconds(s.Duration.Microseconds()),
		Title:   s.Title,
		Artist:  []string{s.Artist},
		Album:   s.Album,
	}

	if artPath := FindAlbumArt(s.Path); artPath != "" {
		meta.ArtUrl = "file://" + artPath
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.bridge.Snapshot().Volume, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	p.bridge.Send(Command{Kind: CmdSetVolume, Volume: v})
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.bridge.Snapshot().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return player.MinSpeed, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return player.MaxSpeed, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.bridge.Snapshot().HasTracks, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.bridge.Snapshot().HasTracks, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.bridge.Snapshot().HasTracks, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	switch p.bridge.Snapshot().Repeat {
	case playback.RepeatOne:
		return types.LoopStatusTrack, nil
	case playback.RepeatAll:
		return types.LoopStatusPlaylist, nil
	case playback.RepeatOff:
		return types.LoopStatusNone, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	mode := playback.RepeatOff
	switch status {
	case types.LoopStatusTrack:
		mode = playback.RepeatOne
	case types.LoopStatusPlaylist:
		mode = playback.RepeatAll
	case types.LoopStatusNone:
	}
	p.bridge.Send(Command{Kind: CmdSetRepeat, Repeat: mode})
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.bridge.Snapshot().Shuffle, nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	p.bridge.Send(Command{Kind: CmdSetShuffle, Shuffle: shuffle})
	return nil
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
