package playlist

import "slices"

// Queue is a FIFO of playlist positions waiting to be played. Entries are
// positions, not tracks, so the owner must Remap after deletions and Clear
// after any reorder of the playlist.
type Queue struct {
	entries []int
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Len returns the number of queued entries.
func (q *Queue) Len() int {
	return len(q.entries)
}

// Entries returns a copy of the queued positions, front first.
func (q *Queue) Entries() []int {
	return slices.Clone(q.entries)
}

// At returns the playlist position queued at pos.
func (q *Queue) At(pos int) (int, bool) {
	if pos < 0 || pos >= len(q.entries) {
		return 0, false
	}
	return q.entries[pos], true
}

// Enqueue appends playlist positions to the back.
func (q *Queue) Enqueue(indices ...int) {
	q.entries = append(q.entries, indices...)
}

// DequeueFront pops the front entry.
func (q *Queue) DequeueFront() (int, bool) {
	if len(q.entries) == 0 {
		return 0, false
	}
	front := q.entries[0]
	q.entries = q.entries[1:]
	return front, true
}

// Remove drops the entry at queue position pos and returns its playlist
// position.
func (q *Queue) Remove(pos int) (int, bool) {
	if pos < 0 || pos >= len(q.entries) {
		return 0, false
	}
	index := q.entries[pos]
	q.entries = slices.Delete(q.entries, pos, pos+1)
	return index, true
}

// Reorder swaps the entry at pos with its neighbour in direction dir (-1 up,
// +1 down). Returns the entry's new queue position.
func (q *Queue) Reorder(pos, dir int) (int, bool) {
	target := pos + dir
	if dir == 0 || pos < 0 || pos >= len(q.entries) || target < 0 || target >= len(q.entries) {
		return pos, false
	}
	q.entries[pos], q.entries[target] = q.entries[target], q.entries[pos]
	return target, true
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.entries = nil
}

// Remap rewrites entries after the given playlist positions were deleted.
// Entries pointing at deleted tracks are dropped.
func (q *Queue) Remap(removed []int) {
	if len(removed) == 0 {
		return
	}
	out := q.entries[:0]
	for _, idx := range q.entries {
		if n := Remap(idx, removed); n >= 0 {
			out = append(out, n)
		}
	}
	q.entries = out
}
