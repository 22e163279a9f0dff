package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/vimusic/internal/keymap"
	"github.com/llehouerou/vimusic/internal/playback"
	"github.com/llehouerou/vimusic/internal/search"
	"github.com/llehouerou/vimusic/internal/ui/render"
	"github.com/llehouerou/vimusic/internal/ui/styles"
)

const defaultWidth = 80

// row is one line of a list before styling.
type row struct {
	text    string
	right   string
	playing bool
	folder  bool
}

// View renders the header, the active list or overlay, the now-playing
// line and the status line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	h := m.bodyHeight()

	var body []string
	if m.overlay != OverlayNone {
		body = m.renderOverlay(width, h)
	} else {
		body = m.renderRows(m.activePane(), m.activeRows(), m.emptyHint(), width, h)
	}
	if len(body) > h {
		body = body[:h]
	}
	for len(body) < h {
		body = append(body, "")
	}

	return strings.Join([]string{
		m.renderHeader(width),
		strings.Join(body, "\n"),
		m.renderNowPlaying(width),
		m.renderStatus(width),
	}, "\n")
}

func (m *Model) renderHeader(width int) string {
	s := styles.T().S()
	left := styles.T().Title("vimusic")
	switch m.source.kind {
	case sourceFolder:
		left += s.Muted.Render("  " + render.Sanitize(m.source.path))
	case sourceLibrary:
		left += s.Muted.Render("  library")
	case sourcePlaylist:
		left += s.Muted.Render("  playlist: " + render.Sanitize(m.source.path))
	case sourceNone:
	}
	where := m.view.String()
	switch {
	case m.view == ViewFolder && m.folder.loaded:
		where = render.Sanitize(m.folder.listing.Path)
	case m.view == ViewArtist && m.artist.inTracks:
		where = "artists / " + render.Sanitize(m.artist.selected)
	}
	right := s.Subtle.Render(fmt.Sprintf("[%s] %s", where, tracksWord(m.playlist.Len())))
	return render.Row(left, right, width)
}

// activeRows builds the rows of the active view.
func (m *Model) activeRows() []row {
	playing := m.session.PlayingPath()
	switch m.view {
	case ViewFolder:
		rows := make([]row, len(m.folder.listing.Items))
		for i, it := range m.folder.listing.Items {
			if it.IsFolder {
				rows[i] = row{text: it.Name + "/", right: strconv.Itoa(it.TrackCount), folder: true}
				continue
			}
			rows[i] = row{text: it.Name, right: render.Duration(it.Duration), playing: it.Path == playing}
		}
		return rows
	case ViewArtist:
		if m.artist.inTracks {
			rows := make([]row, len(m.artist.songs))
			for i, t := range m.artist.songs {
				rows[i] = row{text: t.Name, right: render.Duration(t.Duration), playing: t.Path == playing}
			}
			return rows
		}
		rows := make([]row, len(m.artist.list))
		for i, a := range m.artist.list {
			rows[i] = row{text: a.Name, right: strconv.Itoa(a.TrackCount)}
		}
		return rows
	default:
		tracks := m.playlist.Tracks()
		playingIndex := m.session.PlayingIndex()
		rows := make([]row, len(tracks))
		for i, t := range tracks {
			rows[i] = row{text: t.Name, right: render.Duration(t.Duration), playing: i == playingIndex}
		}
		return rows
	}
}

// renderRows draws the visible rows with line numbers, the cursor, the
// visual range and filter matches.
func (m *Model) renderRows(p *pane, rows []row, empty string, width, h int) []string {
	s := styles.T().S()
	if len(rows) == 0 {
		return []string{s.Muted.Render("  " + empty)}
	}
	cur := p.cursor.Pos()
	start, end := p.cursor.VisibleRange(len(rows), h)
	gutter := render.GutterWidth(len(rows))
	vFrom, vTo := -1, -1
	if m.mode == ModeVisual {
		vFrom, vTo = m.visualRange()
	}

	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		r := rows[i]
		num := render.LineNumber(i, cur, m.settings.Number, m.settings.RelativeNumber, gutter)
		marker := "  "
		if r.playing {
			marker = "▶ "
		}
		prefix := marker
		if num != "" {
			prefix = s.Gutter.Render(num) + " " + marker
		}
		avail := width - lipgloss.Width(prefix) - lipgloss.Width(r.right) - 1
		text := render.Truncate(render.Sanitize(r.text), max(avail, 1))

		base := s.Base
		switch {
		case r.playing:
			base = s.Playing
		case r.folder:
			base = s.Folder
		}
		var styled string
		if p.filter.Active() && p.filter.Matches(i) {
			styled = render.Highlight(text, search.Spans(p.filter.Query(), text), s.Match, base)
		} else {
			styled = base.Render(text)
		}

		line := render.Row(prefix+styled, s.Muted.Render(r.right), width)
		switch {
		case i >= vFrom && i <= vTo:
			line = s.Visual.Render(line)
		case i == cur:
			line = s.Cursor.Render(line)
		}
		out = append(out, line)
	}
	return out
}

// emptyHint is shown in place of an empty list. An empty playlist points at
// the key that opens a folder.
func (m *Model) emptyHint() string {
	if m.view == ViewList {
		return m.keyHint(keymap.ActionOpenPrompt, "(empty, %s opens a folder)")
	}
	return "(empty)"
}

// keyHint formats the effective key of an action into format, falling back
// to a plain "(empty)" when the action is unbound.
func (m *Model) keyHint(action keymap.Action, format string) string {
	key, ok := m.keys.KeyFor(action)
	if !ok {
		return "(empty)"
	}
	return fmt.Sprintf(format, key)
}

func (m *Model) renderOverlay(width, h int) []string {
	s := styles.T().S()
	var title string
	var rows []row
	switch m.overlay {
	case OverlayQueue:
		title = fmt.Sprintf("Queue (%s)", tracksWord(m.queue.Len()))
		for _, idx := range m.queue.Entries() {
			t, _ := m.playlist.Track(idx)
			rows = append(rows, row{text: t.Name, right: render.Duration(t.Duration)})
		}
	case OverlayPlaylists, OverlayPicker:
		title = "Playlists"
		if m.overlay == OverlayPicker {
			title = fmt.Sprintf("Add %s to playlist", tracksWord(len(m.pickerTracks)))
		}
		for _, info := range m.playlists {
			rows = append(rows, row{text: info.Name, right: strconv.Itoa(info.TrackCount)})
		}
	case OverlayHelp:
		title = "Help"
		for _, l := range m.helpLines {
			if l.keys == "" {
				rows = append(rows, row{text: l.desc, folder: true})
				continue
			}
			rows = append(rows, row{text: fmt.Sprintf("%-18s %s", l.keys, l.desc)})
		}
	case OverlayNone:
	}

	// Width covers the padding but not the border.
	boxWidth := max(width-2, 12)
	saved := m.settings
	m.settings.Number, m.settings.RelativeNumber = false, false
	empty := "(empty)"
	if m.overlay == OverlayQueue {
		empty = m.keyHint(keymap.ActionAddToQueue, "(empty, %s queues the selected track)")
	}
	lines := m.renderRows(&m.overlayCursor, rows, empty, boxWidth-2, max(h-3, 1))
	m.settings = saved

	box := s.Overlay.Width(boxWidth).Render(s.Title.Render(title) + "\n" + strings.Join(lines, "\n"))
	return strings.Split(box, "\n")
}

func (m *Model) renderNowPlaying(width int) string {
	s := styles.T().S()
	icon := "■"
	switch {
	case m.session.IsPaused():
		icon = "⏸"
	case m.session.IsPlaying():
		icon = "▶"
	}
	name := m.session.TrackName()
	if name == "" {
		name = "Not playing"
	}

	var flags []string
	flags = append(flags, fmt.Sprintf("vol %d%%", int(m.session.Volume()*100+0.5)))
	if sp := m.session.Speed(); sp != 1 {
		flags = append(flags, fmt.Sprintf("%gx", sp))
	}
	if r := m.session.RepeatMode(); r != playback.RepeatOff {
		flags = append(flags, "repeat:"+r.String())
	}
	if m.session.Shuffle() {
		flags = append(flags, "shuffle")
	}
	if loop := m.session.Loop(); loop.HasA {
		b := "?"
		if loop.HasB {
			b = formatClock(loop.B)
		}
		flags = append(flags, fmt.Sprintf("loop %s-%s", formatClock(loop.A), b))
	}
	if rem, ok := m.session.SleepRemaining(); ok {
		flags = append(flags, "sleep "+formatClock(rem))
	}
	if n := m.queue.Len(); n > 0 {
		flags = append(flags, fmt.Sprintf("queue %d", n))
	}

	elapsed, total := m.session.Elapsed(), m.session.Duration()
	right := render.Position(elapsed, total) + "  " + strings.Join(flags, "  ")
	barWidth := max(width/5, 5)
	left := s.Playing.Render(icon+" "+render.Truncate(render.Sanitize(name), max(width-lipgloss.Width(right)-barWidth-4, 1))) +
		" " + s.Subtle.Render(render.ProgressBar(elapsed, total, barWidth))
	return render.Row(left, s.Muted.Render(right), width)
}

func (m *Model) renderStatus(width int) string {
	s := styles.T().S()
	var label lipgloss.Style
	switch m.mode {
	case ModeCommand:
		label = s.ModeCommand
	case ModeFilter:
		label = s.ModeFilter
	case ModeVisual:
		label = s.ModeVisual
	default:
		label = s.ModeNormal
	}
	left := label.Render(" "+m.mode.String()+" ") + " "

	switch m.mode {
	case ModeCommand:
		left += ":" + m.input.View()
	case ModeFilter:
		left += "/" + m.input.View()
	case ModeNormal, ModeVisual:
		if m.status.text != "" {
			st := s.Info
			if m.status.isError {
				st = s.Error
			}
			left += st.Render(render.Sanitize(m.status.text))
		}
	}

	var right []string
	if f := m.activePane().filter; f.Active() {
		right = append(right, fmt.Sprintf("/%s [%d]", f.Query(), f.Count()))
	}
	if cmd := m.showCmd(); cmd != "" {
		right = append(right, cmd)
	}
	return render.Row(left, s.Subtle.Render(strings.Join(right, "  ")), width)
}

// showCmd is the typed count and pending prefix, like vim's showcmd.
func (m *Model) showCmd() string {
	var b strings.Builder
	if m.count > 0 {
		b.WriteString(strconv.Itoa(m.count))
	}
	if m.pending.active() {
		b.WriteString(m.pending.chord)
	}
	return b.String()
}
