package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const statusTimeout = 4 * time.Second

// status is the transient message of the status line. Each message gets a
// sequence number so that only the clear tick of the latest one applies.
type status struct {
	text      string
	isError   bool
	seq       int
	scheduled int
}

func (m *Model) setStatus(text string) {
	m.status.seq++
	m.status.text = text
	m.status.isError = false
}

func (m *Model) setError(text string) {
	m.setStatus(text)
	m.status.isError = true
}

func (m *Model) clearStatus() {
	m.status.seq++
	m.status.scheduled = m.status.seq
	m.status.text = ""
	m.status.isError = false
}

// scheduleStatusClear arms the expiry of a message set during this update.
func (m *Model) scheduleStatusClear() tea.Cmd {
	if m.status.text == "" || m.status.scheduled == m.status.seq {
		return nil
	}
	seq := m.status.seq
	m.status.scheduled = seq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

func (m *Model) handleStatusClear(msg statusClearMsg) {
	if msg.seq == m.status.seq {
		m.status.text = ""
		m.status.isError = false
	}
}
