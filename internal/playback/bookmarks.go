package playback

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

var (
	// ErrInvalidMark is returned for bookmark keys outside a-z.
	ErrInvalidMark = errors.New("invalid mark, use a-z")
	// ErrMarkNotSet is returned for keys with no bookmark.
	ErrMarkNotSet = errors.New("mark not set")
	// ErrMarkTrackMissing is returned when the bookmarked track is no longer
	// in the playlist.
	ErrMarkTrackMissing = errors.New("bookmarked track not in playlist")
)

// Bookmark remembers a position in a track.
type Bookmark struct {
	Key      rune
	Path     string
	Name     string
	Position time.Duration
}

// ValidMark reports whether r is a usable bookmark key.
func ValidMark(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// SetBookmark stores the current track and position under key, replacing
// any previous bookmark with the same key.
func (s *Session) SetBookmark(key rune) (Bookmark, error) {
	if !ValidMark(key) {
		return Bookmark{}, fmt.Errorf("%w: %q", ErrInvalidMark, key)
	}
	t, ok := s.playlist.Track(s.playingIndex)
	if !ok || !s.isPlaying {
		return Bookmark{}, ErrNothingPlaying
	}
	b := Bookmark{Key: key, Path: t.Path, Name: t.Name, Position: s.engine.Status().Elapsed}
	s.bookmarks[key] = b
	return b, nil
}

// JumpToBookmark plays the bookmarked track from its saved position. The
// track is found by path, so bookmarks survive sorting and reloads.
func (s *Session) JumpToBookmark(key rune) (Bookmark, error) {
	b, ok := s.bookmarks[key]
	if !ok {
		if !ValidMark(key) {
			return Bookmark{}, fmt.Errorf("%w: %q", ErrInvalidMark, key)
		}
		return Bookmark{}, fmt.Errorf("%w: '%c", ErrMarkNotSet, key)
	}
	idx := s.playlist.IndexOf(b.Path)
	if idx < 0 {
		return b, fmt.Errorf("%w: %s", ErrMarkTrackMissing, b.Name)
	}
	return b, s.PlayTrack(idx, b.Position)
}

// DeleteBookmark removes a bookmark.
func (s *Session) DeleteBookmark(key rune) error {
	if _, ok := s.bookmarks[key]; !ok {
		return fmt.Errorf("%w: '%c", ErrMarkNotSet, key)
	}
	delete(s.bookmarks, key)
	return nil
}

// Bookmarks lists bookmarks ordered by key.
func (s *Session) Bookmarks() []Bookmark {
	out := make([]Bookmark, 0, len(s.bookmarks))
	for _, b := range s.bookmarks {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b Bookmark) int { return int(a.Key - b.Key) })
	return out
}
