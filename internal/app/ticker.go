package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	pollInterval  = 500 * time.Millisecond
	loopInterval  = 100 * time.Millisecond
	sleepInterval = time.Second
)

type tickKind int

const (
	tickPoll tickKind = iota
	tickLoop
	tickSleep
)

// tickMsg is one tick of a ticker. Ticks from an older generation are stale.
type tickMsg struct {
	kind tickKind
	gen  int
}

// ticker is a cancelable periodic task driven by tea.Tick. start is
// idempotent while running; stop bumps the generation so an in-flight tick
// is dropped.
type ticker struct {
	kind     tickKind
	interval time.Duration
	gen      int
	running  bool
}

func newTicker(kind tickKind, interval time.Duration) ticker {
	return ticker{kind: kind, interval: interval}
}

func (t *ticker) start() tea.Cmd {
	if t.running {
		return nil
	}
	t.running = true
	t.gen++
	return t.schedule()
}

func (t *ticker) stop() {
	if !t.running {
		return
	}
	t.running = false
	t.gen++
}

// accept reports whether msg is the live tick of this ticker.
func (t *ticker) accept(msg tickMsg) bool {
	return t.running && msg.kind == t.kind && msg.gen == t.gen
}

func (t *ticker) schedule() tea.Cmd {
	kind, gen := t.kind, t.gen
	return tea.Tick(t.interval, func(time.Time) tea.Msg {
		return tickMsg{kind: kind, gen: gen}
	})
}

// sync starts or stops the ticker to match want.
func (t *ticker) sync(want bool) tea.Cmd {
	if want {
		return t.start()
	}
	t.stop()
	return nil
}

type tickers struct {
	poll  ticker
	loop  ticker
	sleep ticker
}

func newTickers() tickers {
	return tickers{
		poll:  newTicker(tickPoll, pollInterval),
		loop:  newTicker(tickLoop, loopInterval),
		sleep: newTicker(tickSleep, sleepInterval),
	}
}

func (t *tickers) get(kind tickKind) *ticker {
	switch kind {
	case tickLoop:
		return &t.loop
	case tickSleep:
		return &t.sleep
	default:
		return &t.poll
	}
}

// syncTickers runs each periodic task exactly while it has work: the poll
// while a track is active, the loop monitor while both bounds are set, the
// sleep tick while the timer is armed.
func (m *Model) syncTickers() tea.Cmd {
	return tea.Batch(
		m.tickers.poll.sync(m.session.IsPlaying()),
		m.tickers.loop.sync(m.session.Loop().Active()),
		m.tickers.sleep.sync(m.session.SleepArmed()),
	)
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	t := m.tickers.get(msg.kind)
	if !t.accept(msg) {
		return nil
	}
	switch msg.kind {
	case tickPoll:
		m.handlePlaybackEvent(m.session.Poll())
		if !m.session.IsPlaying() {
			return nil
		}
	case tickLoop:
		m.session.CheckLoop()
		if !m.session.Loop().Active() {
			return nil
		}
	case tickSleep:
		if m.session.SleepTick() {
			m.setStatus("Sleep timer expired, playback stopped")
			if m.announcer != nil {
				if err := m.announcer.SleepExpired(); err != nil {
					m.log.Debug("sleep notification failed", "err", err)
				}
			}
			return nil
		}
	}
	return t.schedule()
}
