package player

import (
	"fmt"
	"path/filepath"
	"time"
)

// Mock is a test double for Player. Track durations default to three
// minutes and can be overridden per path.
type Mock struct {
	paths     []string
	current   int
	state     transport
	elapsed   time.Duration
	durations map[string]time.Duration
	volume    float64
	speed     float64
	finished  bool
	playErr   error

	playCalls []int
	seekCalls []time.Duration
	stopCalls int
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{
		current:   -1,
		durations: make(map[string]time.Duration),
		volume:    MaxVolume,
		speed:     1,
	}
}

// SetPlaylist records the track list.
func (m *Mock) SetPlaylist(paths []string, current int) {
	m.paths = append([]string(nil), paths...)
	m.current = current
}

// PlayTrack records the call and starts the track.
func (m *Mock) PlayTrack(index int, skip time.Duration) (TrackInfo, error) {
	m.playCalls = append(m.playCalls, index)
	if m.playErr != nil {
		return TrackInfo{}, m.playErr
	}
	if index < 0 || index >= len(m.paths) {
		return TrackInfo{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	m.current = index
	m.state = running
	m.finished = false
	m.elapsed = min(max(skip, 0), m.duration())
	return TrackInfo{Index: index, Name: filepath.Base(m.paths[index]), Duration: m.duration()}, nil
}

func (m *Mock) duration() time.Duration {
	if m.current < 0 || m.current >= len(m.paths) {
		return 0
	}
	if d, ok := m.durations[m.paths[m.current]]; ok {
		return d
	}
	return 3 * time.Minute
}

// TogglePause flips between running and held.
func (m *Mock) TogglePause() (bool, error) {
	if !m.state.loaded() || m.finished {
		return false, ErrNothingLoaded
	}
	if m.state == running {
		m.state = held
	} else {
		m.state = running
	}
	return m.state == held, nil
}

// Stop stops playback.
func (m *Mock) Stop() error {
	m.stopCalls++
	m.state = idle
	m.elapsed = 0
	m.finished = false
	return nil
}

// NextTrack plays the following track, wrapping.
func (m *Mock) NextTrack() (TrackInfo, error) {
	if len(m.paths) == 0 {
		return TrackInfo{}, ErrEmptyPlaylist
	}
	return m.PlayTrack((max(m.current, 0)+1)%len(m.paths), 0)
}

// PrevTrack plays the preceding track, wrapping.
func (m *Mock) PrevTrack() (TrackInfo, error) {
	n := len(m.paths)
	if n == 0 {
		return TrackInfo{}, ErrEmptyPlaylist
	}
	return m.PlayTrack((max(m.current, 0)-1+n)%n, 0)
}

// SetVolume clamps and stores the volume.
func (m *Mock) SetVolume(v float64) (float64, error) {
	m.volume = ClampVolume(v)
	return m.volume, nil
}

// SetSpeed clamps and stores the speed.
func (m *Mock) SetSpeed(v float64) (float64, error) {
	m.speed = ClampSpeed(v)
	return m.speed, nil
}

// Seek records the call and moves the position.
func (m *Mock) Seek(pos time.Duration) (time.Duration, error) {
	m.seekCalls = append(m.seekCalls, pos)
	if !m.state.loaded() {
		return 0, ErrNothingLoaded
	}
	m.elapsed = min(max(pos, 0), m.duration())
	return m.elapsed, nil
}

// SeekRelative moves by delta.
func (m *Mock) SeekRelative(delta time.Duration) (time.Duration, error) {
	if !m.state.loaded() {
		return 0, ErrNothingLoaded
	}
	return m.Seek(m.elapsed + delta)
}

// Status reports the simulated transport.
func (m *Mock) Status() Status {
	st := Status{
		Elapsed:      m.elapsed,
		Speed:        m.speed,
		Volume:       m.volume,
		CurrentTrack: m.current,
		IsFinished:   m.finished,
	}
	if m.state.loaded() {
		st.Duration = m.duration()
	}
	st.IsPlaying = m.state.loaded() && !m.finished
	st.IsPaused = m.state == held && !m.finished
	return st
}

// Devices lists the mock devices.
func (m *Mock) Devices() ([]string, error) {
	return []string{DefaultDevice, "headphones"}, nil
}

// SetDevice accepts the mock devices only.
func (m *Mock) SetDevice(name string) error {
	if name != DefaultDevice && name != "headphones" {
		return fmt.Errorf("%w: %s", ErrUnknownDevice, name)
	}
	return nil
}

// Close stops playback.
func (m *Mock) Close() error {
	m.state = idle
	return nil
}

// Test helpers


func (m *Mock) SetPlayError(err error) { m.playErr = err }

func (m *Mock) SetDuration(path string, d time.Duration) { m.durations[path] = d }

func (m *Mock) SetElapsed(d time.Duration) { m.elapsed = d }

func (m *Mock) PlayCalls() []int { return m.playCalls }

func (m *Mock) SeekCalls() []time.Duration { return m.seekCalls }

func (m *Mock) StopCalls() int { return m.stopCalls }

func (m *Mock) Paths() []string { return m.paths }

// SimulateFinished marks the current track as played to the end.
func (m *Mock) SimulateFinished() {
	m.elapsed = m.duration()
	m.finished = true
}
