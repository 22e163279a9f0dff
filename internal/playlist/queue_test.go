package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()
	q.Enqueue(3, 1)
	q.Enqueue(4)

	front, ok := q.DequeueFront()
	require.True(t, ok)
	assert.Equal(t, 3, front)
	assert.Equal(t, []int{1, 4}, q.Entries())

	q.Clear()
	_, ok = q.DequeueFront()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_Remove(t *testing.T) {
	q := NewQueue()
	q.Enqueue(5, 6, 7)

	idx, ok := q.Remove(1)
	require.True(t, ok)
	assert.Equal(t, 6, idx)
	assert.Equal(t, []int{5, 7}, q.Entries())

	_, ok = q.Remove(2)
	assert.False(t, ok)
}

func TestQueue_Reorder(t *testing.T) {
	tests := []struct {
		name    string
		pos     int
		dir     int
		want    []int
		wantPos int
		ok      bool
	}{
		{"move down", 0, 1, []int{2, 1, 3}, 1, true},
		{"move up", 2, -1, []int{1, 3, 2}, 1, true},
		{"top cannot move up", 0, -1, []int{1, 2, 3}, 0, false},
		{"bottom cannot move down", 2, 1, []int{1, 2, 3}, 2, false},
		{"out of range", 5, 1, []int{1, 2, 3}, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueue()
			q.Enqueue(1, 2, 3)
			pos, ok := q.Reorder(tt.pos, tt.dir)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.wantPos, pos)
			assert.Equal(t, tt.want, q.Entries())
		})
	}
}

func TestQueue_Remap(t *testing.T) {
	q := NewQueue()
	q.Enqueue(0, 2, 4, 2)

	q.Remap([]int{3, 2})

	assert.Equal(t, []int{0, 2}, q.Entries(), "entries for deleted tracks dropped, later ones shifted")
}

func TestQueue_At(t *testing.T) {
	q := NewQueue()
	q.Enqueue(9)
	idx, ok := q.At(0)
	assert.True(t, ok)
	assert.Equal(t, 9, idx)
	_, ok = q.At(1)
	assert.False(t, ok)
}
