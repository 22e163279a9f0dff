package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Highlight renders text with the byte ranges in spans styled as match and
// everything else as rest. Spans must be sorted and non-overlapping.
func Highlight(text string, spans [][2]int, match, rest lipgloss.Style) string {
	if len(spans) == 0 {
		return rest.Render(text)
	}

	var b strings.Builder
	pos := 0
	for _, s := range spans {
		if s[0] < pos || s[1] > len(text) {
			continue
		}
		if s[0] > pos {
			b.WriteString(rest.Render(text[pos:s[0]]))
		}
		b.WriteString(match.Render(text[s[0]:s[1]]))
		pos = s[1]
	}
	if pos < len(text) {
		b.WriteString(rest.Render(text[pos:]))
	}
	return b.String()
}
