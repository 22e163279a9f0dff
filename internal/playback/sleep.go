package playback

import "time"

// sleepTimer stops playback at end while armed.
type sleepTimer struct {
	end   time.Time
	armed bool
}

// SetSleep arms the sleep timer to fire after d. A non-positive d cancels it.
func (s *Session) SetSleep(d time.Duration) {
	if d <= 0 {
		s.CancelSleep()
		return
	}
	s.sleep = sleepTimer{end: s.now().Add(d), armed: true}
}

// AdjustSleep moves the deadline by delta, arming the timer from now when it
// was not armed. The timer is cancelled if no time would remain.
func (s *Session) AdjustSleep(delta time.Duration) {
	remaining, _ := s.SleepRemaining()
	s.SetSleep(remaining + delta)
}

// CancelSleep disarms the sleep timer.
func (s *Session) CancelSleep() {
	s.sleep = sleepTimer{}
}

// SleepArmed reports whether the sleep timer is armed.
func (s *Session) SleepArmed() bool {
	return s.sleep.armed
}

// SleepRemaining returns the time left before the sleep timer fires.
func (s *Session) SleepRemaining() (time.Duration, bool) {
	if !s.sleep.armed {
		return 0, false
	}
	return max(s.sleep.end.Sub(s.now()), 0), true
}

// SleepTick fires the timer when its deadline has passed: playback stops
// and the timer disarms. Reports whether it fired.
func (s *Session) SleepTick() bool {
	if !s.sleep.armed || s.now().Before(s.sleep.end) {
		return false
	}
	s.CancelSleep()
	s.Stop()
	return true
}
