package app

// Mode is the input mode. Exactly one is active.
type Mode int

const (
	ModeNormal Mode = iota
	ModeCommand
	ModeFilter
	ModeVisual
)

// String returns the label shown in the status line.
func (m Mode) String() string {
	switch m {
	case ModeCommand:
		return "COMMAND"
	case ModeFilter:
		return "FILTER"
	case ModeVisual:
		return "VISUAL"
	default:
		return "NORMAL"
	}
}

// Overlay is a modal sub-view that owns key input while open.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayQueue
	OverlayPlaylists
	OverlayPicker
	OverlayHelp
)

// ViewMode says which item collection is navigable.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewFolder
	ViewArtist
)

// String returns the view name shown in the header.
func (v ViewMode) String() string {
	switch v {
	case ViewFolder:
		return "folder"
	case ViewArtist:
		return "artists"
	default:
		return "list"
	}
}

// pendingKind is the single-slot register of a two-key sequence awaiting
// its second key.
type pendingKind int

const (
	pendingNone pendingKind = iota
	pendingGoto
	pendingScroll
	pendingDelete
	pendingMarkSet
	pendingMarkJump
)

// pending holds the awaited continuation and the chord that started it.
type pending struct {
	kind  pendingKind
	chord string
}

func (p pending) active() bool {
	return p.kind != pendingNone
}

// sourceKind records where the playlist came from, for reload.
type sourceKind int

const (
	sourceNone sourceKind = iota
	sourceFolder
	sourceLibrary
	sourcePlaylist
)

type source struct {
	kind sourceKind
	path string // folder root or playlist name
}
