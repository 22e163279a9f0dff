// Package playback owns the transport state of the player: what is playing,
// volume and speed, repeat and shuffle, the A-B loop, bookmarks and the
// sleep timer. It drives a player.Interface and reacts to its status.
package playback

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/llehouerou/vimusic/internal/player"
	"github.com/llehouerou/vimusic/internal/playlist"
)

var (
	// ErrNothingPlaying is returned by operations that need an active track.
	ErrNothingPlaying = errors.New("nothing is playing")
	// ErrUnknownDuration is returned when the track length is not known.
	ErrUnknownDuration = errors.New("track duration unknown")
	// ErrEmptyPlaylist is returned when there is nothing to play.
	ErrEmptyPlaylist = errors.New("playlist is empty")
	// ErrInvalidPercent is returned for a NaN jump target.
	ErrInvalidPercent = errors.New("percent is not a number")
)

// Session is the playback state machine. It is not safe for concurrent use;
// the event loop owns it.
type Session struct {
	engine   player.Interface
	playlist *playlist.Playlist
	queue    *playlist.Queue
	log      *slog.Logger
	rng      *rand.Rand
	now      func() time.Time

	playingIndex int
	trackName    string
	isPlaying    bool
	isPaused     bool
	elapsed      time.Duration
	duration     time.Duration
	volume       float64
	speed        float64
	repeat       RepeatMode

	shuffle   shuffleState
	loop      Loop
	bookmarks map[rune]Bookmark
	sleep     sleepTimer
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for collaborator failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithRand sets the random source used for shuffle picks.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithClock sets the time source used by the sleep timer.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates a stopped session over the given playlist and queue.
func New(engine player.Interface, pl *playlist.Playlist, q *playlist.Queue, opts ...Option) *Session {
	s := &Session{
		engine:       engine,
		playlist:     pl,
		queue:        q,
		log:          slog.Default(),
		rng:          rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
		now:          time.Now,
		playingIndex: -1,
		volume:       player.MaxVolume,
		speed:        1,
		shuffle:      newShuffleState(),
		bookmarks:    make(map[rune]Bookmark),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State queries

func (s *Session) PlayingIndex() int { return s.playingIndex }

func (s *Session) TrackName() string { return s.trackName }

func (s *Session) IsPlaying() bool { return s.isPlaying }

func (s *Session) IsPaused() bool { return s.isPaused }

func (s *Session) Elapsed() time.Duration { return s.elapsed }

func (s *Session) Duration() time.Duration { return s.duration }

func (s *Session) Volume() float64 { return s.volume }

func (s *Session) Speed() float64 { return s.speed }

func (s *Session) RepeatMode() RepeatMode { return s.repeat }

func (s *Session) Shuffle() bool { return s.shuffle.enabled }

func (s *Session) Loop() Loop { return s.loop }

func (s *Session) Queue() *playlist.Queue { return s.queue }

func (s *Session) Playlist() *playlist.Playlist { return s.playlist }

// PlayingPath returns the path of the current track, or "".
func (s *Session) PlayingPath() string {
	t, ok := s.playlist.Track(s.playingIndex)
	if !ok {
		return ""
	}
	return t.Path
}

// SyncEngine hands the current playlist to the engine. Call it after every
// structural change of the playlist.
func (s *Session) SyncEngine() {
	s.engine.SetPlaylist(s.playlist.Paths(), s.playingIndex)
}

// PlayTrack starts the track at index, skipping into it by skip. The index
// must be inside the playlist. Switching to another track clears the A-B loop.
func (s *Session) PlayTrack(index int, skip time.Duration) error {
	info, err := s.engine.PlayTrack(index, skip)
	if err != nil {
		s.log.Warn("play track failed", "index", index, "err", err)
		return err
	}
	if index != s.playingIndex {
		s.loop.Clear()
	}
	s.playingIndex = index
	s.trackName = info.Name
	if t, ok := s.playlist.Track(index); ok && t.Name != "" {
		s.trackName = t.Name
	}
	s.isPlaying = true
	s.isPaused = false
	s.duration = info.Duration
	s.elapsed = skip
	return nil
}

// TogglePause pauses or resumes. ErrNothingPlaying means the engine had no
// active track; the caller starts the selection instead.
func (s *Session) TogglePause() error {
	paused, err := s.engine.TogglePause()
	if err != nil {
		s.log.Debug("toggle pause rejected", "err", err)
		return fmt.Errorf("%w: %w", ErrNothingPlaying, err)
	}
	s.isPlaying = true
	s.isPaused = paused
	return nil
}

// Stop stops playback and forgets the current track.
func (s *Session) Stop() {
	if err := s.engine.Stop(); err != nil {
		s.log.Warn("stop failed", "err", err)
	}
	s.playingIndex = -1
	s.trackName = ""
	s.isPlaying = false
	s.isPaused = false
	s.duration = 0
	s.elapsed = 0
	s.loop.Clear()
}

// NextTrack advances. With shuffle on and something playing, it walks the
// shuffle history instead of the playlist order.
func (s *Session) NextTrack() error {
	if s.shuffle.enabled && s.isPlaying {
		return s.nextShuffle()
	}
	return s.applyStep(s.engine.NextTrack())
}

// PrevTrack goes back, through the shuffle history when shuffling.
func (s *Session) PrevTrack() error {
	if s.shuffle.enabled && s.isPlaying {
		return s.prevShuffle()
	}
	return s.applyStep(s.engine.PrevTrack())
}

func (s *Session) applyStep(info player.TrackInfo, err error) error {
	if err != nil {
		s.log.Warn("track step failed", "err", err)
		return err
	}
	if info.Index != s.playingIndex {
		s.loop.Clear()
	}
	s.playingIndex = info.Index
	s.trackName = info.Name
	if t, ok := s.playlist.Track(info.Index); ok && t.Name != "" {
		s.trackName = t.Name
	}
	s.isPlaying = true
	s.isPaused = false
	s.duration = info.Duration
	s.elapsed = 0
	return nil
}

// AdjustVolume changes the volume by delta.
func (s *Session) AdjustVolume(delta float64) {
	s.SetVolume(s.volume + delta)
}

// SetVolume sets the volume, clamped to [0, 1].
func (s *Session) SetVolume(v float64) {
	v = round2(player.ClampVolume(v))
	got, err := s.engine.SetVolume(v)
	if err != nil {
		s.log.Warn("set volume failed", "err", err)
		return
	}
	s.volume = got
}

// ChangeSpeed changes the speed by delta.
func (s *Session) ChangeSpeed(delta float64) {
	s.SetSpeed(s.speed + delta)
}

// SetSpeed sets the speed, clamped to [0.25, 3].
func (s *Session) SetSpeed(v float64) {
	v = round2(player.ClampSpeed(v))
	got, err := s.engine.SetSpeed(v)
	if err != nil {
		s.log.Warn("set speed failed", "err", err)
		return
	}
	s.speed = got
}

// SeekRelative moves by delta. Failures mean nothing is loaded and are
// ignored.
func (s *Session) SeekRelative(delta time.Duration) {
	if !s.isPlaying {
		return
	}
	pos, err := s.engine.SeekRelative(delta)
	if err != nil {
		s.log.Debug("seek ignored", "err", err)
		return
	}
	s.elapsed = pos
}

// SeekTo moves to an absolute position. Failures are ignored.
func (s *Session) SeekTo(pos time.Duration) {
	if !s.isPlaying {
		return
	}
	got, err := s.engine.Seek(pos)
	if err != nil {
		s.log.Debug("seek ignored", "err", err)
		return
	}
	s.elapsed = got
}

// JumpToPercent seeks to floor(p% of the duration) in whole seconds.
func (s *Session) JumpToPercent(p float64) error {
	if !s.isPlaying {
		return ErrNothingPlaying
	}
	if s.duration <= 0 {
		return ErrUnknownDuration
	}
	if math.IsNaN(p) {
		return ErrInvalidPercent
	}
	p = min(max(p, 0), 100)
	secs := math.Floor(p / 100 * s.duration.Seconds())
	s.SeekTo(time.Duration(secs) * time.Second)
	return nil
}

// CycleRepeat moves to the next repeat mode.
func (s *Session) CycleRepeat() RepeatMode {
	s.SetRepeatMode(s.repeat.Next())
	return s.repeat
}

// SetRepeatMode sets the repeat mode. Repeat-one turns shuffle off.
func (s *Session) SetRepeatMode(m RepeatMode) {
	s.repeat = m
	if m == RepeatOne {
		s.shuffle.enabled = false
	}
}

// ToggleShuffle flips shuffle and returns the new state.
func (s *Session) ToggleShuffle() bool {
	s.SetShuffle(!s.shuffle.enabled)
	return s.shuffle.enabled
}

// SetShuffle turns shuffle on or off. Turning it on starts a fresh history
// and turns repeat-one off.
func (s *Session) SetShuffle(on bool) {
	if on && !s.shuffle.enabled {
		s.shuffle.reset()
	}
	s.shuffle.enabled = on
	if on && s.repeat == RepeatOne {
		s.repeat = RepeatOff
	}
}

// Poll syncs elapsed, duration and speed from the engine and applies the
// track-end policy when the engine reports the track finished.
func (s *Session) Poll() Event {
	if !s.isPlaying {
		return EventNone
	}
	st := s.engine.Status()
	s.elapsed = st.Elapsed
	if st.Duration > 0 {
		s.duration = st.Duration
	}
	if st.Speed > 0 {
		s.speed = st.Speed
	}
	if st.IsFinished {
		return s.TrackEnded()
	}
	return EventNone
}

// TrackEnded decides what plays after the current track, first match wins:
// the first live queue entry (unless repeating one), the same track on
// repeat-one, the next shuffle pick, the wrapped next track on repeat-all,
// the next track, or nothing. Stale queue entries are dropped and the
// decision moves on.
func (s *Session) TrackEnded() Event {
	n := s.playlist.Len()
	queued, fromQueue := -1, false
	if s.repeat != RepeatOne {
		queued, fromQueue = s.popQueued()
	}
	var err error
	switch {
	case fromQueue:
		err = s.PlayTrack(queued, 0)
	case s.repeat == RepeatOne && s.playingIndex >= 0 && s.playingIndex < n:
		err = s.PlayTrack(s.playingIndex, 0)
	case s.shuffle.enabled && n > 0:
		err = s.nextShuffle()
	case s.repeat == RepeatAll && n > 0:
		err = s.PlayTrack((s.playingIndex+1)%n, 0)
	case s.playingIndex >= 0 && s.playingIndex < n-1:
		err = s.PlayTrack(s.playingIndex+1, 0)
	default:
		s.isPlaying = false
		s.isPaused = false
		return EventPlaylistEnded
	}
	if err != nil {
		s.isPlaying = false
		s.isPaused = false
		return EventStopped
	}
	return EventTrackChanged
}

// popQueued dequeues the first entry that still names a playlist track,
// dropping stale ones on the way.
func (s *Session) popQueued() (int, bool) {
	for {
		idx, ok := s.queue.DequeueFront()
		if !ok {
			return 0, false
		}
		if idx >= 0 && idx < s.playlist.Len() {
			return idx, true
		}
	}
}

// PlayQueued plays the entry at queue position pos now and removes it from
// the queue. The entry stays queued when the engine fails to start it.
func (s *Session) PlayQueued(pos int) error {
	idx, ok := s.queue.At(pos)
	if !ok {
		return fmt.Errorf("queue position %d: %w", pos+1, playlist.ErrOutOfRange)
	}
	if err := s.PlayTrack(idx, 0); err != nil {
		return err
	}
	s.queue.Remove(pos)
	return nil
}

// TracksRemoved re-maps indices after the given playlist positions were
// deleted. Removing the playing track stops playback.
func (s *Session) TracksRemoved(removed []int) {
	if len(removed) == 0 {
		return
	}
	s.queue.Remap(removed)
	s.shuffle.remap(removed)
	next := playlist.Remap(s.playingIndex, removed)
	if s.playingIndex >= 0 && next < 0 {
		s.Stop()
	}
	s.playingIndex = next
	s.SyncEngine()
}

// Reindexed is called after the playlist was reordered or replaced, with the
// new position of the playing track (-1 if it is gone). Queue positions and
// shuffle history lose their meaning and are dropped.
func (s *Session) Reindexed(playingIndex int) {
	s.queue.Clear()
	s.shuffle.reset()
	if s.playingIndex >= 0 && playingIndex < 0 && s.isPlaying {
		s.Stop()
	}
	s.playingIndex = playingIndex
	s.SyncEngine()
}

// Close releases the engine.
func (s *Session) Close() error {
	return s.engine.Close()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
