// Package keymap defines key bindings and action dispatch for the application.
package keymap

import "strings"

// Action is a user-triggerable action. The set is closed: dispatch switches
// over these values and user configuration can only refer to them by name.
type Action int

const (
	ActionNone Action = iota

	// Navigation
	ActionMoveDown
	ActionMoveUp
	ActionHalfPageDown
	ActionHalfPageUp
	ActionPageDown
	ActionPageUp
	ActionGoToBottom
	ActionGotoPrefix
	ActionScrollPrefix
	ActionJumpPercent

	// Playback
	ActionPlaySelected
	ActionTogglePause
	ActionStop
	ActionNextTrack
	ActionPrevTrack
	ActionSeekForward
	ActionSeekBackward
	ActionSeekForwardLarge
	ActionSeekBackwardLarge
	ActionVolumeUp
	ActionVolumeDown
	ActionSpeedUp
	ActionSpeedDown
	ActionSpeedReset
	ActionCycleRepeat
	ActionToggleShuffle
	ActionLoopCycle
	ActionLoopSetA
	ActionLoopSetB
	ActionLoopClear

	// Queue and playlists
	ActionAddToQueue
	ActionAddToPlaylist
	ActionQueueView
	ActionPlaylistManager
	ActionDeletePrefix

	// Modes
	ActionVisualMode
	ActionCommandMode
	ActionFilterMode
	ActionNextMatch
	ActionPrevMatch
	ActionCancel
	ActionOpenPrompt

	// Views
	ActionCycleView
	ActionParent
	ActionArtists
	ActionReload

	// Marks
	ActionMarkPrefix
	ActionJumpMarkPrefix

	// Global
	ActionHelp
	ActionQuit

	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:              "none",
	ActionMoveDown:          "move_down",
	ActionMoveUp:            "move_up",
	ActionHalfPageDown:      "half_page_down",
	ActionHalfPageUp:        "half_page_up",
	ActionPageDown:          "page_down",
	ActionPageUp:            "page_up",
	ActionGoToBottom:        "go_to_bottom",
	ActionGotoPrefix:        "goto_prefix",
	ActionScrollPrefix:      "scroll_prefix",
	ActionJumpPercent:       "jump_percent",
	ActionPlaySelected:      "play_selected",
	ActionTogglePause:       "toggle_pause",
	ActionStop:              "stop",
	ActionNextTrack:         "next_track",
	ActionPrevTrack:         "prev_track",
	ActionSeekForward:       "seek_forward",
	ActionSeekBackward:      "seek_backward",
	ActionSeekForwardLarge:  "seek_forward_large",
	ActionSeekBackwardLarge: "seek_backward_large",
	ActionVolumeUp:          "volume_up",
	ActionVolumeDown:        "volume_down",
	ActionSpeedUp:           "speed_up",
	ActionSpeedDown:         "speed_down",
	ActionSpeedReset:        "speed_reset",
	ActionCycleRepeat:       "cycle_repeat",
	ActionToggleShuffle:     "toggle_shuffle",
	ActionLoopCycle:         "loop_cycle",
	ActionLoopSetA:          "loop_set_a",
	ActionLoopSetB:          "loop_set_b",
	ActionLoopClear:         "loop_clear",
	ActionAddToQueue:        "add_to_queue",
	ActionAddToPlaylist:     "add_to_playlist",
	ActionQueueView:         "queue_view",
	ActionPlaylistManager:   "playlist_manager",
	ActionDeletePrefix:      "delete_prefix",
	ActionVisualMode:        "visual_mode",
	ActionCommandMode:       "command_mode",
	ActionFilterMode:        "filter_mode",
	ActionNextMatch:         "next_match",
	ActionPrevMatch:         "prev_match",
	ActionCancel:            "cancel",
	ActionOpenPrompt:        "open_prompt",
	ActionCycleView:         "cycle_view",
	ActionParent:            "parent",
	ActionArtists:           "artists",
	ActionReload:            "reload",
	ActionMarkPrefix:        "mark_prefix",
	ActionJumpMarkPrefix:    "jump_mark_prefix",
	ActionHelp:              "help",
	ActionQuit:              "quit",
}

var actionsByName = func() map[string]Action {
	m := make(map[string]Action, actionCount)
	for a := ActionNone + 1; a < actionCount; a++ {
		m[normalizeName(actionNames[a])] = a
	}
	return m
}()

// String returns the snake_case name used in configuration files.
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction looks up an action by name. Case, underscores, dashes and
// spaces are ignored, so "togglePause" and "toggle_pause" are the same.
func ParseAction(name string) (Action, bool) {
	a, ok := actionsByName[normalizeName(name)]
	return a, ok
}

// All returns every bindable action in declaration order.
func All() []Action {
	out := make([]Action, 0, actionCount-1)
	for a := ActionNone + 1; a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

func normalizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r == '_' || r == '-' || r == ' ' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
