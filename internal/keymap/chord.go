package keymap

import (
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyEvent is a key press reduced to a base key and its modifiers.
type KeyEvent struct {
	Key   string // literal character, or a name such as "Enter" or "ArrowUp"
	Ctrl  bool
	Alt   bool
	Meta  bool
	Shift bool
}

var keyNames = map[string]string{
	" ":          "Space",
	"space":      "Space",
	"enter":      "Enter",
	"return":     "Enter",
	"esc":        "Escape",
	"escape":     "Escape",
	"backspace":  "Backspace",
	"tab":        "Tab",
	"delete":     "Delete",
	"del":        "Delete",
	"insert":     "Insert",
	"up":         "ArrowUp",
	"arrowup":    "ArrowUp",
	"down":       "ArrowDown",
	"arrowdown":  "ArrowDown",
	"left":       "ArrowLeft",
	"arrowleft":  "ArrowLeft",
	"right":      "ArrowRight",
	"arrowright": "ArrowRight",
	"home":       "Home",
	"end":        "End",
	"pgup":       "PageUp",
	"pageup":     "PageUp",
	"pgdown":     "PageDown",
	"pagedown":   "PageDown",
}

func canonicalKey(k string) string {
	if name, ok := keyNames[strings.ToLower(k)]; ok {
		return name
	}
	if len(k) >= 2 && (k[0] == 'f' || k[0] == 'F') {
		if n := k[1:]; strings.Trim(n, "0123456789") == "" {
			return "F" + n
		}
	}
	return k
}

// printable reports whether key is a literal character rather than a named key.
func printable(key string) bool {
	if utf8.RuneCountInString(key) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(key)
	return unicode.IsPrint(r) && r != ' '
}

// Chord renders the event as "[Ctrl+][Alt+][Meta+][Shift+]<base>". Shift is
// kept only for named keys or alongside another modifier, so Shift+j is "J".
func (e KeyEvent) Chord() string {
	key := canonicalKey(e.Key)
	if key == "" {
		return ""
	}
	other := e.Ctrl || e.Alt || e.Meta
	shift := e.Shift
	if shift && printable(key) && !other {
		key = strings.ToUpper(key)
		shift = false
	}

	var b strings.Builder
	if e.Ctrl {
		b.WriteString("Ctrl+")
	}
	if e.Alt {
		b.WriteString("Alt+")
	}
	if e.Meta {
		b.WriteString("Meta+")
	}
	if shift {
		b.WriteString("Shift+")
	}
	b.WriteString(key)
	return b.String()
}

// ParseChord reads a chord written by hand ("ctrl+d", "Shift+Tab", "esc")
// or by the terminal layer into a KeyEvent.
func ParseChord(s string) KeyEvent {
	var e KeyEvent
	for {
		i := strings.IndexByte(s, '+')
		if i <= 0 || i == len(s)-1 {
			break
		}
		switch strings.ToLower(s[:i]) {
		case "ctrl", "control":
			e.Ctrl = true
		case "alt", "option":
			e.Alt = true
		case "meta", "cmd", "super":
			e.Meta = true
		case "shift":
			e.Shift = true
		default:
			e.Key = canonicalKey(s)
			return e
		}
		s = s[i+1:]
	}
	e.Key = canonicalKey(s)
	return e
}

// NormalizeChord rewrites a chord into canonical form.
func NormalizeChord(s string) string {
	return ParseChord(s).Chord()
}

// FromTea converts a terminal key message. Pasted text yields an empty event.
func FromTea(msg tea.KeyMsg) KeyEvent {
	if msg.Paste {
		return KeyEvent{}
	}
	switch msg.Type {
	case tea.KeyRunes:
		return KeyEvent{Key: string(msg.Runes), Alt: msg.Alt}
	case tea.KeySpace:
		return KeyEvent{Key: "Space", Alt: msg.Alt}
	}
	return ParseChord(msg.String())
}
