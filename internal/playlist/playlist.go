// Package playlist holds the in-memory track list and the play queue.
package playlist

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// ErrOutOfRange is returned for line numbers outside the playlist.
var ErrOutOfRange = errors.New("line out of range")

// Track represents a single track in a playlist. Path is its identity.
type Track struct {
	Path     string
	Name     string
	Artist   string
	Album    string
	Duration time.Duration // 0 if unknown
}

// FilterValue returns the string the filter matches against.
func (t Track) FilterValue() string {
	return t.Name
}

// Playlist holds an ordered collection of tracks.
type Playlist struct {
	tracks []Track
}

// New creates a playlist holding tracks.
func New(tracks ...Track) *Playlist {
	p := &Playlist{}
	p.Replace(tracks)
	return p
}

// Replace swaps the whole track list.
func (p *Playlist) Replace(tracks []Track) {
	p.tracks = slices.Clone(tracks)
	if p.tracks == nil {
		p.tracks = make([]Track, 0)
	}
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []Track {
	return slices.Clone(p.tracks)
}

// Track returns the track at index.
func (p *Playlist) Track(index int) (Track, bool) {
	if index < 0 || index >= len(p.tracks) {
		return Track{}, false
	}
	return p.tracks[index], true
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// Paths returns the track paths in order.
func (p *Playlist) Paths() []string {
	out := make([]string, len(p.tracks))
	for i, t := range p.tracks {
		out[i] = t.Path
	}
	return out
}

// Names returns the track names in order.
func (p *Playlist) Names() []string {
	out := make([]string, len(p.tracks))
	for i, t := range p.tracks {
		out[i] = t.Name
	}
	return out
}

// IndexOf returns the position of the track with path, or -1.
func (p *Playlist) IndexOf(path string) int {
	if path == "" {
		return -1
	}
	return slices.IndexFunc(p.tracks, func(t Track) bool { return t.Path == path })
}

// DeleteIndices removes the tracks at the given positions and returns the
// positions actually removed, highest first. Duplicates and out-of-range
// positions are ignored.
func (p *Playlist) DeleteIndices(indices []int) []int {
	sorted := slices.Clone(indices)
	slices.SortFunc(sorted, func(a, b int) int { return cmp.Compare(b, a) })
	sorted = slices.Compact(sorted)

	removed := make([]int, 0, len(sorted))
	for _, i := range sorted {
		if i < 0 || i >= len(p.tracks) {
			continue
		}
		p.tracks = slices.Delete(p.tracks, i, i+1)
		removed = append(removed, i)
	}
	return removed
}

// LineRange converts a 1-based inclusive line range into positions.
func (p *Playlist) LineRange(from, to int) ([]int, error) {
	if from > to {
		from, to = to, from
	}
	if from < 1 || to > len(p.tracks) {
		return nil, fmt.Errorf("%w: %d,%d (playlist has %d tracks)", ErrOutOfRange, from, to, len(p.tracks))
	}
	out := make([]int, 0, to-from+1)
	for line := from; line <= to; line++ {
		out = append(out, line-1)
	}
	return out, nil
}

// Remap returns where position old ends up after removed positions were
// deleted, or -1 if old itself was removed.
func Remap(old int, removed []int) int {
	if old < 0 {
		return old
	}
	shift := 0
	for _, r := range removed {
		switch {
		case r == old:
			return -1
		case r < old:
			shift++
		}
	}
	return old - shift
}

// SortKey selects the field a playlist is sorted by.
type SortKey int

const (
	SortByName SortKey = iota
	SortByDuration
	SortByPath
)

func (k SortKey) String() string {
	switch k {
	case SortByName:
		return "name"
	case SortByDuration:
		return "duration"
	case SortByPath:
		return "path"
	}
	return "unknown"
}

// ParseSortKey reads "name", "duration" or "path".
func ParseSortKey(s string) (SortKey, bool) {
	switch strings.ToLower(s) {
	case "name":
		return SortByName, true
	case "duration", "time", "length":
		return SortByDuration, true
	case "path":
		return SortByPath, true
	}
	return SortByName, false
}

// Sort reorders the playlist stably. Positions are not preserved; callers
// re-derive them by path with IndexOf.
func (p *Playlist) Sort(key SortKey, reverse bool) {
	compare := func(a, b Track) int {
		switch key {
		case SortByDuration:
			return cmp.Compare(a.Duration, b.Duration)
		case SortByPath:
			return cmp.Compare(a.Path, b.Path)
		default:
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	}
	slices.SortStableFunc(p.tracks, func(a, b Track) int {
		if reverse {
			return compare(b, a)
		}
		return compare(a, b)
	})
}
