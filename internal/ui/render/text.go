// Package render provides text helpers for the list views.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Sanitize removes control characters (except tab) and invalid UTF-8 so file
// names with odd bytes cannot break the terminal.
func Sanitize(s string) string {
	clean := true
	for _, r := range s {
		if r == utf8.RuneError || (r != '\t' && unicode.IsControl(r)) || r == '\u00a0' {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == utf8.RuneError && size <= 1:
		case r != '\t' && unicode.IsControl(r):
		case r == '\u00a0':
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Truncate shortens s to maxWidth cells, ending with "..." when cut.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "...")
}

// TruncateAndPad truncates then pads s to exactly width cells.
func TruncateAndPad(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}

// Row joins left and right with at least one space so that the result is
// width cells wide. Left is truncated when both do not fit.
func Row(left, right string, width int) string {
	rightWidth := lipgloss.Width(right)
	avail := width - rightWidth - 1
	if avail < 1 {
		return Truncate(left, width)
	}
	if lipgloss.Width(left) > avail {
		left = Truncate(left, avail)
	}
	gap := max(width-lipgloss.Width(left)-rightWidth, 1)
	return left + strings.Repeat(" ", gap) + right
}

// Duration formats d as m:ss, or h:mm:ss from one hour. Zero renders as
// "--:--" since it means unknown.
func Duration(d time.Duration) string {
	if d <= 0 {
		return "--:--"
	}
	secs := int(d / time.Second)
	h, m, s := secs/3600, secs/60%60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Position formats elapsed/total.
func Position(elapsed, total time.Duration) string {
	e := Duration(elapsed)
	if elapsed <= 0 {
		e = "0:00"
	}
	return e + " / " + Duration(total)
}

// LineNumber renders the gutter for row i (0-based) with the cursor at cur,
// vim-style: absolute numbers, relative distances, or both (hybrid: the
// cursor row shows its absolute number). Returns "" when both are off.
func LineNumber(i, cur int, number, relative bool, width int) string {
	var n int
	switch {
	case relative && i != cur:
		n = i - cur
		if n < 0 {
			n = -n
		}
	case relative && !number:
		n = 0
	case number || relative:
		n = i + 1
	default:
		return ""
	}
	s := strconv.Itoa(n)
	if relative && number && i == cur {
		return runewidth.FillRight(s, width)
	}
	return runewidth.FillLeft(s, width)
}

// GutterWidth is the width needed to number n rows.
func GutterWidth(n int) int {
	return max(len(strconv.Itoa(max(n, 1))), 3)
}

// ProgressBar draws a bar of width cells filled proportionally.
func ProgressBar(elapsed, total time.Duration, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if total > 0 {
		filled = int(float64(width) * float64(min(elapsed, total)) / float64(total))
	}
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}
