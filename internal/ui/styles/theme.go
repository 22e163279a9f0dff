// Package styles holds the color palette and lipgloss styles of the UI.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette.
type Theme struct {
	Primary   lipgloss.Color // accent: playing track, active mode
	Secondary lipgloss.Color // second accent: gradient end, marks

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color
	BgVisual lipgloss.Color
	BgMatch  lipgloss.Color

	Border lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	styles *Styles
}

// Styles contains pre-built styles.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Playing lipgloss.Style
	Cursor  lipgloss.Style
	Visual  lipgloss.Style
	Match   lipgloss.Style
	Folder  lipgloss.Style
	Gutter  lipgloss.Style
	Overlay lipgloss.Style
	Info    lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Mode labels in the status line.
	ModeNormal  lipgloss.Style
	ModeCommand lipgloss.Style
	ModeFilter  lipgloss.Style
	ModeVisual  lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#7dcfff"),
	Secondary: lipgloss.Color("#bb9af7"),

	FgBase:   lipgloss.Color("#c0caf5"),
	FgMuted:  lipgloss.Color("#7f849c"),
	FgSubtle: lipgloss.Color("#565f89"),

	BgCursor: lipgloss.Color("#2f334d"),
	BgVisual: lipgloss.Color("#3d59a1"),
	BgMatch:  lipgloss.Color("#e0af68"),

	Border: lipgloss.Color("#565f89"),

	Success: lipgloss.Color("#9ece6a"),
	Error:   lipgloss.Color("#f7768e"),
	Warning: lipgloss.Color("#e0af68"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	label := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#1a1b26"))

	return &Styles{
		Base:    base,
		Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:   base.Bold(true),
		Playing: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Cursor:  lipgloss.NewStyle().Background(t.BgCursor).Foreground(t.FgBase),
		Visual:  lipgloss.NewStyle().Background(t.BgVisual).Foreground(t.FgBase),
		Match:   lipgloss.NewStyle().Background(t.BgMatch).Foreground(lipgloss.Color("#1a1b26")),
		Folder:  lipgloss.NewStyle().Foreground(t.Secondary),
		Gutter:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Info:    lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),

		ModeNormal:  label.Background(t.Primary),
		ModeCommand: label.Background(t.Warning),
		ModeFilter:  label.Background(t.Success),
		ModeVisual:  label.Background(t.Secondary),
	}
}
