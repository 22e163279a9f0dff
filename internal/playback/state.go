package playback

import "strings"

// RepeatMode defines what happens when a track ends.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "off"
	case RepeatAll:
		return "all"
	case RepeatOne:
		return "one"
	default:
		return "unknown"
	}
}

// Next returns the mode that follows m in the Off -> All -> One cycle.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatOff
	}
}

// ParseRepeatMode reads "off", "all" or "one".
func ParseRepeatMode(s string) (RepeatMode, bool) {
	switch strings.ToLower(s) {
	case "off", "none":
		return RepeatOff, true
	case "all":
		return RepeatAll, true
	case "one", "single":
		return RepeatOne, true
	}
	return RepeatOff, false
}

// Event reports what a poll or track-end step did to the transport.
type Event int

const (
	EventNone Event = iota
	// EventTrackChanged means a different (or the same, repeated) track started.
	EventTrackChanged
	// EventPlaylistEnded means the last track finished with nothing to follow.
	EventPlaylistEnded
	// EventStopped means the track ended and the follow-up could not start.
	EventStopped
)
