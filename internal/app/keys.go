package app

import (
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vimusic/internal/cmdline"
	"github.com/llehouerou/vimusic/internal/keymap"
)

const (
	maxCount  = 9999
	quitChord = "Ctrl+c"
)

// handleKey routes a key: the open overlay first, then the input line of
// Command and Filter mode, then Normal/Visual dispatch.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	ev := keymap.FromTea(msg)
	if m.overlay != OverlayNone {
		if ev.Chord() == quitChord {
			return m.quit()
		}
		return m.handleOverlayKey(ev)
	}
	switch m.mode {
	case ModeCommand, ModeFilter:
		if ev.Chord() == quitChord {
			return m.quit()
		}
		return m.handleInputKey(msg, ev)
	case ModeNormal, ModeVisual:
	}
	return m.handleNormalKey(ev)
}

// handleNormalKey resolves keys of Normal and Visual mode. A pending
// sequence consumes the next key whatever it is; digits build the count.
func (m *Model) handleNormalKey(ev keymap.KeyEvent) tea.Cmd {
	if m.pending.active() {
		p := m.pending
		m.pending = pending{}
		cmd := m.continuePending(p, ev)
		m.count = 0
		return cmd
	}
	if d, ok := countDigit(ev); ok && (d > 0 || m.count > 0) {
		m.count = min(m.count*10+d, maxCount)
		return nil
	}
	action := m.keys.ResolveKey(ev)
	if m.mode == ModeVisual {
		return m.dispatchVisual(action, ev)
	}
	return m.dispatch(action, ev)
}

func countDigit(ev keymap.KeyEvent) (int, bool) {
	if ev.Ctrl || ev.Alt || ev.Meta || len(ev.Key) != 1 {
		return 0, false
	}
	c := ev.Key[0]
	if c < '0' || c > '9' {
		return 0, false
	}
	return int(c - '0'), true
}

// takeCount returns the count prefix, 1 when none was typed, and resets it.
func (m *Model) takeCount() int {
	n := max(m.count, 1)
	m.count = 0
	return n
}

func (m *Model) startPending(kind pendingKind, ev keymap.KeyEvent) {
	m.pending = pending{kind: kind, chord: ev.Chord()}
}

// continuePending completes a two-key sequence. The second key must repeat
// the first for gg, zz and dd, and be a letter for marks.
func (m *Model) continuePending(p pending, ev keymap.KeyEvent) tea.Cmd {
	switch p.kind {
	case pendingGoto:
		if ev.Chord() == p.chord {
			m.goToLine()
		}
	case pendingScroll:
		if ev.Chord() == p.chord {
			m.activePane().cursor.Center(m.activeLen(), m.bodyHeight())
		}
	case pendingDelete:
		if ev.Chord() == p.chord {
			m.deleteCountLines()
		}
	case pendingMarkSet:
		if r, ok := markRune(ev); ok {
			m.setMark(r)
		}
	case pendingMarkJump:
		if r, ok := markRune(ev); ok {
			m.jumpMark(r)
		}
	case pendingNone:
	}
	return nil
}

func markRune(ev keymap.KeyEvent) (rune, bool) {
	if ev.Ctrl || ev.Alt || ev.Meta || utf8.RuneCountInString(ev.Key) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(ev.Key)
	return r, true
}

// goToLine is gg: the top, or line N with a count.
func (m *Model) goToLine() {
	p := m.activePane()
	if m.count > 0 {
		p.cursor.GoToLine(m.takeCount(), m.activeLen(), m.bodyHeight())
		return
	}
	p.cursor.Top(m.activeLen(), m.bodyHeight())
}

func (m *Model) enterInput(mode Mode, value string) tea.Cmd {
	m.count = 0
	m.mode = mode
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) leaveInput() {
	m.mode = ModeNormal
	m.input.Blur()
	m.input.SetValue("")
}

// handleInputKey edits the ':' or '/' line. Enter runs the command or
// confirms the filter; Escape leaves, clearing the filter.
func (m *Model) handleInputKey(msg tea.KeyMsg, ev keymap.KeyEvent) tea.Cmd {
	switch ev.Chord() {
	case "Escape":
		if m.mode == ModeFilter {
			m.activePane().filter.Clear()
		}
		m.leaveInput()
		return nil
	case "Enter":
		value, mode := m.input.Value(), m.mode
		m.leaveInput()
		if mode == ModeCommand {
			return m.executeCommand(value)
		}
		m.confirmFilter()
		return nil
	case "Backspace":
		if m.input.Value() == "" {
			if m.mode == ModeFilter {
				m.activePane().filter.Clear()
			}
			m.leaveInput()
			return nil
		}
	case "Tab":
		if m.mode == ModeCommand {
			m.completeCommand()
			return nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == ModeFilter {
		m.activePane().filter.Set(m.input.Value(), m.activeValues())
	}
	return cmd
}

// confirmFilter jumps to the first match of the filter just typed.
func (m *Model) confirmFilter() {
	p := m.activePane()
	if !p.filter.Active() {
		return
	}
	i, ok := p.filter.First()
	if !ok {
		m.setError("Pattern not found: " + p.filter.Query())
		return
	}
	p.cursor.Jump(i, m.activeLen(), m.bodyHeight())
}

// completeCommand extends the verb being typed to the longest prefix shared
// by the matching command names.
func (m *Model) completeCommand() {
	value := m.input.Value()
	if strings.ContainsRune(value, ' ') {
		return
	}
	var matches []string
	for _, name := range cmdline.Names() {
		if strings.HasPrefix(name, strings.ToLower(value)) {
			matches = append(matches, name)
		}
	}
	switch len(matches) {
	case 0:
		return
	case 1:
		m.input.SetValue(matches[0] + " ")
	default:
		m.input.SetValue(commonPrefix(matches))
		m.setStatus(strings.Join(matches, "  "))
	}
	m.input.CursorEnd()
}

func commonPrefix(words []string) string {
	prefix := words[0]
	for _, w := range words[1:] {
		for !strings.HasPrefix(w, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	return tea.Quit
}
