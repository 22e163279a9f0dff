//nolint:goconst // test cases intentionally repeat strings for readability
package playlist

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(n int) []Track {
	tracks := make([]Track, n)
	for i := range tracks {
		tracks[i] = Track{
			Path: fmt.Sprintf("/music/%02d.mp3", i+1),
			Name: fmt.Sprintf("%02d.mp3", i+1),
		}
	}
	return tracks
}

func TestNew_Empty(t *testing.T) {
	p := New()
	assert.Equal(t, 0, p.Len())
	assert.NotNil(t, p.Tracks())
	_, ok := p.Track(0)
	assert.False(t, ok)
}

func TestPlaylist_TracksIsCopy(t *testing.T) {
	p := New(numbered(2)...)
	tracks := p.Tracks()
	tracks[0].Name = "changed"
	got, _ := p.Track(0)
	assert.Equal(t, "01.mp3", got.Name)
}

func TestPlaylist_IndexOf(t *testing.T) {
	p := New(numbered(3)...)
	assert.Equal(t, 1, p.IndexOf("/music/02.mp3"))
	assert.Equal(t, -1, p.IndexOf("/missing.mp3"))
	assert.Equal(t, -1, p.IndexOf(""))
}

func TestPlaylist_DeleteIndices(t *testing.T) {
	p := New(numbered(5)...)

	removed := p.DeleteIndices([]int{1, 3, 3, 9, -1})

	assert.Equal(t, []int{3, 1}, removed, "highest first, invalid dropped")
	assert.Equal(t, []string{"/music/01.mp3", "/music/03.mp3", "/music/05.mp3"}, p.Paths())
}

func TestRemap(t *testing.T) {
	tests := []struct {
		name    string
		old     int
		removed []int
		want    int
	}{
		{"playing track removed", 3, []int{3, 1}, -1},
		{"one removed below", 3, []int{1}, 2},
		{"all removed above", 1, []int{4, 3}, 1},
		{"nothing playing", -1, []int{0}, -1},
		{"two removed below", 4, []int{2, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Remap(tt.old, tt.removed))
		})
	}
}

func TestPlaylist_LineRange(t *testing.T) {
	p := New(numbered(25)...)

	idx, err := p.LineRange(10, 20)
	require.NoError(t, err)
	assert.Len(t, idx, 11)
	assert.Equal(t, 9, idx[0])
	assert.Equal(t, 19, idx[10])

	removed := p.DeleteIndices(idx)
	assert.Len(t, removed, 11)
	assert.Equal(t, 14, p.Len())
	got, _ := p.Track(9)
	assert.Equal(t, "21.mp3", got.Name)
}

func TestPlaylist_LineRangeSwapsAndValidates(t *testing.T) {
	p := New(numbered(5)...)

	idx, err := p.LineRange(3, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, idx)

	_, err = p.LineRange(0, 2)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = p.LineRange(4, 6)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestPlaylist_Sort(t *testing.T) {
	base := []Track{
		{Path: "/c", Name: "beta", Duration: 3 * time.Minute},
		{Path: "/a", Name: "Alpha", Duration: time.Minute},
		{Path: "/b", Name: "alpha", Duration: 2 * time.Minute},
		{Path: "/d", Name: "Gamma", Duration: time.Minute},
	}

	tests := []struct {
		name    string
		key     SortKey
		reverse bool
		want    []string
	}{
		{"name case insensitive and stable", SortByName, false, []string{"/a", "/b", "/c", "/d"}},
		{"name reversed", SortByName, true, []string{"/d", "/c", "/a", "/b"}},
		{"duration stable on ties", SortByDuration, false, []string{"/a", "/d", "/b", "/c"}},
		{"path", SortByPath, false, []string{"/a", "/b", "/c", "/d"}},
		{"path reversed", SortByPath, true, []string{"/d", "/c", "/b", "/a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(base...)
			p.Sort(tt.key, tt.reverse)
			assert.Equal(t, tt.want, p.Paths())
		})
	}
}

func TestParseSortKey(t *testing.T) {
	k, ok := ParseSortKey("Duration")
	assert.True(t, ok)
	assert.Equal(t, SortByDuration, k)

	_, ok = ParseSortKey("rating")
	assert.False(t, ok)

	assert.Equal(t, "path", SortByPath.String())
}
