// Package cursor tracks the selected row and scroll window of a list view.
package cursor

// Cursor is a selection index plus scroll offset. The list length and
// viewport height are passed to each call since both change between frames.
// Every operation is a no-op on an empty list.
type Cursor struct {
	pos    int // selected row, 0-indexed
	offset int // first visible row
	margin int // rows kept visible above/below the selection
}

// New creates a Cursor with the given scroll margin.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos returns the selected row.
func (c Cursor) Pos() int {
	return c.pos
}

// Offset returns the first visible row.
func (c Cursor) Offset() int {
	return c.offset
}

// Move moves the selection by delta rows, count times, clamped to the list.
func (c *Cursor) Move(delta, count, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(c.pos+delta*max(count, 1), listLen-1)
	c.ensureVisible(listLen, height)
}

// Page moves by whole (or half) viewports.
func (c *Cursor) Page(dir, count int, half bool, listLen, height int) {
	step := max(height, 1)
	if half {
		step = max(height/2, 1)
	}
	c.Move(dir*step, count, listLen, height)
}

// Jump selects an absolute row, clamped to the list.
func (c *Cursor) Jump(pos, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.ensureVisible(listLen, height)
}

// GoToLine selects 1-based line n, clamped to the last line.
func (c *Cursor) GoToLine(n, listLen, height int) {
	c.Jump(n-1, listLen, height)
}

// Top selects the first row.
func (c *Cursor) Top(listLen, height int) {
	c.Jump(0, listLen, height)
}

// Bottom selects the last row.
func (c *Cursor) Bottom(listLen, height int) {
	c.Jump(listLen-1, listLen, height)
}

// Clamp pulls the selection back inside a list that may have shrunk.
// Returns true if the selection moved.
func (c *Cursor) Clamp(listLen int) bool {
	if listLen == 0 {
		changed := c.pos != 0 || c.offset != 0
		c.pos, c.offset = 0, 0
		return changed
	}
	old := c.pos
	c.pos = clamp(c.pos, listLen-1)
	c.offset = clamp(c.offset, c.pos)
	return c.pos != old
}

// EnsureVisible adjusts the scroll offset after an external change.
func (c *Cursor) EnsureVisible(listLen, height int) {
	c.ensureVisible(listLen, height)
}

func (c *Cursor) ensureVisible(listLen, height int) {
	if height <= 0 || listLen == 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)

	if c.pos < c.offset+margin {
		c.offset = max(c.pos-margin, 0)
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

// Center scrolls so the selection sits mid-viewport.
func (c *Cursor) Center(listLen, height int) {
	if height <= 0 || listLen == 0 {
		return
	}
	c.offset = clamp(c.pos-height/2, max(listLen-height, 0))
}

// VisibleRange returns the visible rows as [start, end).
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	start = min(c.offset, listLen-1)
	return start, min(start+height, listLen)
}

// Reset selects the first row and scrolls to the top.
func (c *Cursor) Reset() {
	c.pos, c.offset = 0, 0
}

func clamp(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
