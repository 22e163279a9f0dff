// Package search implements the incremental regex-or-literal filter used by
// every list view, along with wraparound next/previous match navigation.
package search

import (
	"regexp"
	"slices"
	"strings"
)

// Item represents a filterable item.
type Item interface {
	// FilterValue returns the string to match against.
	FilterValue() string
}

// Matcher reports whether a value matches a query.
type Matcher func(value string) bool

// Compile builds a matcher for query. The query is tried as a
// case-insensitive regular expression first; if it does not compile, a
// case-insensitive substring match is used instead. An empty query yields
// nil: an empty filter matches nothing rather than everything.
func Compile(query string) Matcher {
	if query == "" {
		return nil
	}
	if re, err := regexp.Compile("(?i)" + query); err == nil {
		return re.MatchString
	}
	needle := strings.ToLower(query)
	return func(value string) bool {
		return strings.Contains(strings.ToLower(value), needle)
	}
}

// Indices filters values by query and returns the matching positions in
// the unfiltered list, ascending.
func Indices(query string, values []string) []int {
	match := Compile(query)
	if match == nil {
		return nil
	}
	var out []int
	for i, v := range values {
		if match(v) {
			out = append(out, i)
		}
	}
	return out
}

// State is the filter of one view: the query and the cached match indices,
// ascending and in original item space.
type State struct {
	query   string
	indices []int
}

// Query returns the current query.
func (s *State) Query() string {
	return s.query
}

// Active reports whether a filter is applied.
func (s *State) Active() bool {
	return s.query != ""
}

// Indices returns the matching item positions.
func (s *State) Indices() []int {
	return s.indices
}

// Count returns the number of matches.
func (s *State) Count() int {
	return len(s.indices)
}

// Set replaces the query and re-evaluates it over values.
func (s *State) Set(query string, values []string) {
	s.query = query
	s.Refresh(values)
}

// Refresh re-evaluates the current query after the item list changed.
func (s *State) Refresh(values []string) {
	s.indices = Indices(s.query, values)
}

// Clear drops the query and its matches.
func (s *State) Clear() {
	s.query = ""
	s.indices = nil
}

// Matches reports whether the item at index i matches.
func (s *State) Matches(i int) bool {
	_, found := slices.BinarySearch(s.indices, i)
	return found
}

// First returns the first match.
func (s *State) First() (int, bool) {
	if len(s.indices) == 0 {
		return 0, false
	}
	return s.indices[0], true
}

// Next returns the first match strictly after current, wrapping to the
// first match.
func (s *State) Next(current int) (int, bool) {
	if len(s.indices) == 0 {
		return 0, false
	}
	i, found := slices.BinarySearch(s.indices, current)
	if found {
		i++
	}
	if i >= len(s.indices) {
		return s.indices[0], true
	}
	return s.indices[i], true
}

// Prev returns the last match strictly before current, wrapping to the
// last match.
func (s *State) Prev(current int) (int, bool) {
	if len(s.indices) == 0 {
		return 0, false
	}
	i, _ := slices.BinarySearch(s.indices, current)
	if i == 0 {
		return s.indices[len(s.indices)-1], true
	}
	return s.indices[i-1], true
}

// Spans returns the byte ranges of value matched by query, using the same
// rules as Compile. Empty matches are dropped.
func Spans(query, value string) [][2]int {
	if query == "" || value == "" {
		return nil
	}
	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	}
	var spans [][2]int
	for _, loc := range re.FindAllStringIndex(value, -1) {
		if loc[1] > loc[0] {
			spans = append(spans, [2]int{loc[0], loc[1]})
		}
	}
	return spans
}
