package keymap

// Binding describes the default keys of an action for dispatch and help.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "navigation", "playback", "queue", "mode", "view", "marks", "global"
}

// Defaults is the built-in binding table for Normal mode. Keys are chords
// in the form produced by Chord.
var Defaults = []Binding{
	// Navigation
	{ActionMoveDown, []string{"j", "ArrowDown"}, "Move down", "navigation"},
	{ActionMoveUp, []string{"k", "ArrowUp"}, "Move up", "navigation"},
	{ActionHalfPageDown, []string{"Ctrl+d"}, "Half page down", "navigation"},
	{ActionHalfPageUp, []string{"Ctrl+u"}, "Half page up", "navigation"},
	{ActionPageDown, []string{"Ctrl+f", "PageDown"}, "Page down", "navigation"},
	{ActionPageUp, []string{"Ctrl+b", "PageUp"}, "Page up", "navigation"},
	{ActionGoToBottom, []string{"G", "End"}, "Bottom (or line N)", "navigation"},
	{ActionGotoPrefix, []string{"g"}, "gg: top (or line N)", "navigation"},
	{ActionScrollPrefix, []string{"z"}, "zz: center selection", "navigation"},
	{ActionJumpPercent, []string{"%"}, "N%: seek to N percent", "navigation"},

	// Playback
	{ActionPlaySelected, []string{"Enter"}, "Play selected / open", "playback"},
	{ActionTogglePause, []string{"Space"}, "Play/pause", "playback"},
	{ActionStop, []string{"s"}, "Stop", "playback"},
	{ActionNextTrack, []string{">"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"<"}, "Previous track", "playback"},
	{ActionSeekForward, []string{"l", "ArrowRight"}, "Seek forward", "playback"},
	{ActionSeekBackward, []string{"h", "ArrowLeft"}, "Seek backward", "playback"},
	{ActionSeekForwardLarge, []string{"L"}, "Seek forward (large)", "playback"},
	{ActionSeekBackwardLarge, []string{"H"}, "Seek backward (large)", "playback"},
	{ActionVolumeUp, []string{"+"}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionSpeedUp, []string{"]"}, "Speed up", "playback"},
	{ActionSpeedDown, []string{"["}, "Speed down", "playback"},
	{ActionSpeedReset, []string{"="}, "Reset speed", "playback"},
	{ActionCycleRepeat, []string{"r"}, "Cycle repeat mode", "playback"},
	{ActionToggleShuffle, []string{"S"}, "Toggle shuffle", "playback"},
	{ActionLoopCycle, []string{"b"}, "A-B loop: set A, set B, clear", "playback"},
	{ActionLoopSetA, []string{"{"}, "Set loop start", "playback"},
	{ActionLoopSetB, []string{"}"}, "Set loop end", "playback"},
	{ActionLoopClear, []string{"|"}, "Clear loop", "playback"},

	// Queue and playlists
	{ActionAddToQueue, []string{"a"}, "Add to queue", "queue"},
	{ActionAddToPlaylist, []string{"A"}, "Add to playlist", "queue"},
	{ActionQueueView, []string{"q"}, "Queue view", "queue"},
	{ActionPlaylistManager, []string{"P"}, "Playlist manager", "queue"},
	{ActionDeletePrefix, []string{"d"}, "dd: delete from playlist", "queue"},

	// Modes
	{ActionVisualMode, []string{"v"}, "Visual select", "mode"},
	{ActionCommandMode, []string{":"}, "Command line", "mode"},
	{ActionFilterMode, []string{"/"}, "Filter", "mode"},
	{ActionNextMatch, []string{"n"}, "Next match", "mode"},
	{ActionPrevMatch, []string{"N"}, "Previous match", "mode"},
	{ActionCancel, []string{"Escape"}, "Cancel / clear filter", "mode"},
	{ActionOpenPrompt, []string{"o"}, "Open folder prompt", "mode"},

	// Views
	{ActionCycleView, []string{"Tab"}, "Cycle list/folder view", "view"},
	{ActionParent, []string{"Backspace"}, "Parent folder / back", "view"},
	{ActionArtists, []string{"I"}, "Artist browser", "view"},
	{ActionReload, []string{"R"}, "Reload", "view"},

	// Marks
	{ActionMarkPrefix, []string{"m"}, "m{a-z}: set bookmark", "marks"},
	{ActionJumpMarkPrefix, []string{"'"}, "'{a-z}: jump to bookmark", "marks"},

	// Global
	{ActionHelp, []string{"?"}, "Help", "global"},
	{ActionQuit, []string{"Ctrl+c"}, "Quit", "global"},
}

// Contexts lists binding contexts in help display order.
var Contexts = []string{"navigation", "playback", "queue", "mode", "view", "marks", "global"}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Defaults {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Describe returns the help description of an action.
func Describe(a Action) string {
	for _, kb := range Defaults {
		if kb.Action == a {
			return kb.Description
		}
	}
	return a.String()
}
