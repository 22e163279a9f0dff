package playback

import (
	"errors"
	"time"
)

// ErrLoopBBeforeA is returned when the loop end is not after its start.
var ErrLoopBBeforeA = errors.New("loop end must be after loop start")

// ErrLoopNoStart is returned when setting the loop end before its start.
var ErrLoopNoStart = errors.New("loop start not set")

// Loop holds the A-B repeat bounds of the current track.
type Loop struct {
	A, B       time.Duration
	HasA, HasB bool
}

// Active reports whether both bounds are set.
func (l Loop) Active() bool {
	return l.HasA && l.HasB
}

// Clear removes both bounds.
func (l *Loop) Clear() {
	*l = Loop{}
}

// SetLoopA marks the current position as loop start. Any end is dropped.
func (s *Session) SetLoopA() (time.Duration, error) {
	if !s.isPlaying {
		return 0, ErrNothingPlaying
	}
	pos := s.engine.Status().Elapsed
	s.loop = Loop{A: pos, HasA: true}
	return pos, nil
}

// SetLoopB marks the current position as loop end, enabling the loop.
func (s *Session) SetLoopB() (time.Duration, error) {
	if !s.isPlaying {
		return 0, ErrNothingPlaying
	}
	if !s.loop.HasA {
		return 0, ErrLoopNoStart
	}
	pos := s.engine.Status().Elapsed
	if pos <= s.loop.A {
		return 0, ErrLoopBBeforeA
	}
	s.loop.B = pos
	s.loop.HasB = true
	return pos, nil
}

// ClearLoop removes the A-B loop.
func (s *Session) ClearLoop() {
	s.loop.Clear()
}

// CycleLoop sets A, then B, then clears, returning the resulting loop.
func (s *Session) CycleLoop() (Loop, error) {
	var err error
	switch {
	case !s.loop.HasA:
		_, err = s.SetLoopA()
	case !s.loop.HasB:
		_, err = s.SetLoopB()
	default:
		s.loop.Clear()
	}
	return s.loop, err
}

// CheckLoop seeks back to A when playback has reached B. It reports whether
// a seek was issued; the loop stays active either way.
func (s *Session) CheckLoop() bool {
	if !s.loop.Active() || !s.isPlaying || s.isPaused {
		return false
	}
	st := s.engine.Status()
	if st.Elapsed < s.loop.B {
		return false
	}
	pos, err := s.engine.Seek(s.loop.A)
	if err != nil {
		s.log.Debug("loop seek failed", "err", err)
		return false
	}
	s.elapsed = pos
	return true
}
