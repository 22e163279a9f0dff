// Package player is the audio engine the playback session drives.
package player

import (
	"errors"
	"math"
	"time"
)

var (
	// ErrNothingLoaded is returned by transport calls when no track is active.
	ErrNothingLoaded = errors.New("no track is playing")
	// ErrEmptyPlaylist is returned when stepping through an empty playlist.
	ErrEmptyPlaylist = errors.New("playlist is empty")
	// ErrIndexOutOfRange is returned for playlist positions that do not exist.
	ErrIndexOutOfRange = errors.New("track index out of range")
	// ErrUnsupportedFormat is returned for files the decoders cannot read.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrUnknownDevice is returned when selecting an output device that does not exist.
	ErrUnknownDevice = errors.New("unknown audio device")
)

// Volume and speed bounds enforced by every implementation.
const (
	MinVolume = 0.0
	MaxVolume = 1.0
	MinSpeed  = 0.25
	MaxSpeed  = 3.0
)

// DefaultDevice is the only output device of the speaker backend.
const DefaultDevice = "default"

// TrackInfo describes the track a transport call started.
type TrackInfo struct {
	Index    int
	Name     string
	Duration time.Duration // 0 if unknown
}

// Status is a snapshot of the engine.
type Status struct {
	Elapsed      time.Duration
	Duration     time.Duration
	Speed        float64
	Volume       float64
	IsPlaying    bool
	IsPaused     bool
	IsFinished   bool
	CurrentTrack int
}

// Interface defines the engine contract for dependency injection and testing.
type Interface interface {
	SetPlaylist(paths []string, current int)
	PlayTrack(index int, skip time.Duration) (TrackInfo, error)
	TogglePause() (paused bool, err error)
	Stop() error
	NextTrack() (TrackInfo, error)
	PrevTrack() (TrackInfo, error)
	SetVolume(v float64) (float64, error)
	SetSpeed(v float64) (float64, error)
	Seek(pos time.Duration) (time.Duration, error)
	SeekRelative(delta time.Duration) (time.Duration, error)
	Status() Status
	Devices() ([]string, error)
	SetDevice(name string) error
	Close() error
}

// ClampVolume limits v to [MinVolume, MaxVolume]. NaN becomes MinVolume.
func ClampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return MinVolume
	}
	return min(max(v, MinVolume), MaxVolume)
}

// ClampSpeed limits v to [MinSpeed, MaxSpeed]. NaN becomes the normal rate.
func ClampSpeed(v float64) float64 {
	if math.IsNaN(v) {
		return 1
	}
	return min(max(v, MinSpeed), MaxSpeed)
}

// Verify implementations satisfy Interface at compile time.
var (
	_ Interface = (*Player)(nil)
	_ Interface = (*Mock)(nil)
)
