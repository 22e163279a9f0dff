package player

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// speakerRate is the fixed output rate; every track is resampled to it.
const speakerRate = beep.SampleRate(44100)

const resampleQuality = 4

// Player plays a list of files through the speaker.
type Player struct {
	mu sync.Mutex

	paths   []string
	current int
	state   transport

	streamer  beep.StreamSeekCloser
	format    beep.Format
	file      *os.File
	ctrl      *beep.Ctrl
	resampler *beep.Resampler
	volume    *effects.Volume

	level float64
	speed float64

	speakerReady bool
	gen          atomic.Uint64
	finished     atomic.Bool
}

// New creates a stopped player at full volume and normal speed.
func New() *Player {
	return &Player{
		current: -1,
		level:   MaxVolume,
		speed:   1,
	}
}

// SetPlaylist replaces the list of files addressed by index.
func (p *Player) SetPlaylist(paths []string, current int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paths = append([]string(nil), paths...)
	p.current = current
}

// PlayTrack starts the track at index, skipping into it by skip.
func (p *Player) PlayTrack(index int, skip time.Duration) (TrackInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playLocked(index, skip)
}

func (p *Player) playLocked(index int, skip time.Duration) (TrackInfo, error) {
	if index < 0 || index >= len(p.paths) {
		return TrackInfo{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	path := p.paths[index]

	f, streamer, format, err := open(path)
	if err != nil {
		return TrackInfo{}, err
	}
	if err := p.initSpeaker(); err != nil {
		streamer.Close()
		f.Close()
		return TrackInfo{}, err
	}

	p.stopLocked()

	if skip > 0 {
		_ = streamer.Seek(min(format.SampleRate.N(skip), streamer.Len()))
	}

	p.file = f
	p.streamer = streamer
	p.format = format
	p.ctrl = &beep.Ctrl{Streamer: streamer}
	p.resampler = beep.ResampleRatio(resampleQuality, p.ratio(), p.ctrl)
	p.volume = &effects.Volume{
		Streamer: p.resampler,
		Base:     2,
		Volume:   levelToVolume(p.level),
		Silent:   p.level <= 0,
	}
	p.current = index
	p.state = running
	p.finished.Store(false)

	gen := p.gen.Add(1)
	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker lock held.
		if p.gen.Load() == gen {
			p.finished.Store(true)
		}
	})))

	return TrackInfo{
		Index:    index,
		Name:     filepath.Base(path),
		Duration: format.SampleRate.D(streamer.Len()),
	}, nil
}

func (p *Player) initSpeaker() error {
	if p.speakerReady {
		return nil
	}
	if err := speaker.Init(speakerRate, speakerRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	p.speakerReady = true
	return nil
}

// ratio maps the track rate onto the speaker rate, scaled by speed.
func (p *Player) ratio() float64 {
	rate := float64(p.format.SampleRate)
	if rate == 0 {
		rate = float64(speakerRate)
	}
	return p.speed * rate / float64(speakerRate)
}

// TogglePause pauses or resumes the active track.
func (p *Player) TogglePause() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.state.loaded() || p.finished.Load() {
		return false, ErrNothingLoaded
	}
	speaker.Lock()
	p.ctrl.Paused = !p.ctrl.Paused
	paused := p.ctrl.Paused
	speaker.Unlock()
	if paused {
		p.state = held
	} else {
		p.state = running
	}
	return paused, nil
}

// Stop stops playback and releases the decoder.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	return nil
}

func (p *Player) stopLocked() {
	if p.state == idle && p.streamer == nil {
		return
	}
	p.gen.Add(1)
	speaker.Clear()
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}
	p.ctrl = nil
	p.resampler = nil
	p.volume = nil
	p.state = idle
	p.finished.Store(false)
}

// NextTrack plays the following track, wrapping at the end.
func (p *Player) NextTrack() (TrackInfo, error) {
	return p.step(1)
}

// PrevTrack plays the preceding track, wrapping at the start.
func (p *Player) PrevTrack() (TrackInfo, error) {
	return p.step(-1)
}

func (p *Player) step(dir int) (TrackInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.paths)
	if n == 0 {
		return TrackInfo{}, ErrEmptyPlaylist
	}
	cur := max(p.current, 0)
	return p.playLocked(((cur+dir)%n+n)%n, 0)
}

// SetVolume sets the output level in [0, 1].
func (p *Player) SetVolume(v float64) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = ClampVolume(v)
	if p.volume != nil {
		speaker.Lock()
		p.volume.Volume = levelToVolume(p.level)
		p.volume.Silent = p.level <= 0
		speaker.Unlock()
	}
	return p.level, nil
}

// SetSpeed sets the playback rate in [0.25, 3].
func (p *Player) SetSpeed(v float64) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.speed = ClampSpeed(v)
	if p.resampler != nil {
		speaker.Lock()
		p.resampler.SetRatio(p.ratio())
		speaker.Unlock()
	}
	return p.speed, nil
}

// Seek moves to an absolute position, clamped to the track.
func (p *Player) Seek(pos time.Duration) (time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seekLocked(func(time.Duration) time.Duration { return pos })
}

// SeekRelative moves by delta from the current position.
func (p *Player) SeekRelative(delta time.Duration) (time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seekLocked(func(cur time.Duration) time.Duration { return cur + delta })
}

func (p *Player) seekLocked(target func(cur time.Duration) time.Duration) (time.Duration, error) {
	if p.streamer == nil {
		return 0, ErrNothingLoaded
	}
	speaker.Lock()
	defer speaker.Unlock()
	cur := p.format.SampleRate.D(p.streamer.Position())
	n := p.format.SampleRate.N(max(target(cur), 0))
	n = min(n, p.streamer.Len())
	if err := p.streamer.Seek(n); err != nil {
		return cur, fmt.Errorf("seek: %w", err)
	}
	return p.format.SampleRate.D(n), nil
}

// Status returns a snapshot of the transport.
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	st := Status{
		Speed:        p.speed,
		Volume:       p.level,
		CurrentTrack: p.current,
		IsFinished:   p.finished.Load(),
	}
	if p.streamer != nil {
		speaker.Lock()
		st.Elapsed = p.format.SampleRate.D(p.streamer.Position())
		st.Duration = p.format.SampleRate.D(p.streamer.Len())
		speaker.Unlock()
	}
	st.IsPlaying = p.state.loaded() && !st.IsFinished
	st.IsPaused = p.state == held && !st.IsFinished
	return st
}

// Devices lists output devices.
func (p *Player) Devices() ([]string, error) {
	return []string{DefaultDevice}, nil
}

// SetDevice selects an output device.
func (p *Player) SetDevice(name string) error {
	if name != DefaultDevice {
		return fmt.Errorf("%w: %s", ErrUnknownDevice, name)
	}
	return nil
}

// Close stops playback and shuts the speaker down.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	if p.speakerReady {
		speaker.Close()
		p.speakerReady = false
	}
	return nil
}

// levelToVolume converts a 0-1 level to beep's base-2 gain: 1 -> 0,
// 0.5 -> -1, 0.25 -> -2.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}

// Supported reports whether path has an extension the decoders handle.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".flac", ".wav":
		return true
	}
	return false
}

func open(path string) (*os.File, beep.StreamSeekCloser, beep.Format, error) {
	if !Supported(path) {
		return nil, nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, beep.Format{}, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, nil, beep.Format{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return f, streamer, format, nil
}

// ReadDuration returns the length of an audio file by reading its headers.
func ReadDuration(path string) (time.Duration, error) {
	f, streamer, format, err := open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	defer streamer.Close()
	return format.SampleRate.D(streamer.Len()), nil
}
