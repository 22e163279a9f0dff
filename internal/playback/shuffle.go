package playback

import "errors"

// ErrShuffleHistoryStart is returned when stepping back past the first pick.
var ErrShuffleHistoryStart = errors.New("start of shuffle history")

// shuffleState is an append-only history of shuffle picks with a cursor.
// cursor is -1 while the history is empty.
type shuffleState struct {
	enabled bool
	history []int
	cursor  int
}

func newShuffleState() shuffleState {
	return shuffleState{cursor: -1}
}

func (h *shuffleState) reset() {
	h.history = nil
	h.cursor = -1
}

// remap drops picks of deleted tracks and shifts the rest.
func (h *shuffleState) remap(removed []int) {
	kept := h.history[:0]
	cursor := -1
	for i, idx := range h.history {
		n := idx
		for _, r := range removed {
			if r == idx {
				n = -1
				break
			}
			if r < idx {
				n--
			}
		}
		if n < 0 {
			continue
		}
		kept = append(kept, n)
		if i <= h.cursor {
			cursor = len(kept) - 1
		}
	}
	h.history = kept
	h.cursor = cursor
}

// nextShuffle replays the next pick when the cursor is behind the end of
// the history; otherwise it draws a new random track other than the
// current one and appends it.
func (s *Session) nextShuffle() error {
	h := &s.shuffle
	if h.cursor < len(h.history)-1 {
		h.cursor++
		return s.PlayTrack(h.history[h.cursor], 0)
	}

	n := s.playlist.Len()
	if n == 0 {
		return ErrEmptyPlaylist
	}
	pick := 0
	switch {
	case n == 1:
	case s.playingIndex < 0 || s.playingIndex >= n:
		pick = s.rng.IntN(n)
	default:
		pick = s.rng.IntN(n - 1)
		if pick >= s.playingIndex {
			pick++
		}
	}
	h.history = append(h.history, pick)
	h.cursor = len(h.history) - 1
	return s.PlayTrack(pick, 0)
}

// prevShuffle steps back through the history. It never draws a new pick.
func (s *Session) prevShuffle() error {
	h := &s.shuffle
	if h.cursor <= 0 {
		return ErrShuffleHistoryStart
	}
	h.cursor--
	return s.PlayTrack(h.history[h.cursor], 0)
}
