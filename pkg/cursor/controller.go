// Package cursor tracks a (line, column) caret over a GapBuffer and applies
// the editor's navigation rules to it.
//
// Columns count runes within a line. Every line except the last ends in a
// newline, so the last navigable column of an interior line is its length
// minus one while the final line extends to its full length.
package cursor

import "example.com/gapedit/pkg/buffer"

// Position is a zero-based line and column.
type Position struct {
	Line int
	Col  int
}

// Controller owns the caret position for one buffer. It only touches the
// buffer through its public edit and line-index methods.
type Controller struct {
	buf  *buffer.GapBuffer
	line int
	col  int
}

// New returns a controller at (0, 0) on buf.
func New(buf *buffer.GapBuffer) *Controller {
	return &Controller{buf: buf}
}

// Reset swaps in a new buffer and moves the caret to (0, 0).
func (c *Controller) Reset(buf *buffer.GapBuffer) {
	c.buf = buf
	c.line = 0
	c.col = 0
}

// Buffer returns the buffer being edited.
func (c *Controller) Buffer() *buffer.GapBuffer { return c.buf }

// Position returns the current caret position.
func (c *Controller) Position() Position {
	return Position{Line: c.line, Col: c.col}
}

// Offset returns the absolute offset of the caret. A line past the index
// falls back to the end of the text.
func (c *Controller) Offset() int {
	start := c.buf.LineStart(c.line)
	if start < 0 {
		return c.buf.Len()
	}
	return start + c.col
}

// maxCol is the last navigable column of line n.
func (c *Controller) maxCol(n int) int {
	l := c.buf.LineLen(n)
	if c.buf.IsLastLine(n) {
		return l
	}
	return l - 1
}

// SetPosition moves the caret to (line, col), clamped to the navigable
// range.
func (c *Controller) SetPosition(line, col int) {
	line = clamp(line, 0, c.buf.LineCount()-1)
	c.line = line
	c.col = clamp(col, 0, c.maxCol(line))
}

// SetOffset moves the caret to the line and column of an absolute offset.
func (c *Controller) SetOffset(pos int) {
	c.line, c.col = c.buf.LineOf(pos)
}

// InsertChar inserts r at the caret and advances one column. A newline is
// handled as InsertNewline.
func (c *Controller) InsertChar(r rune) error {
	if r == '\n' {
		return c.InsertNewline()
	}
	if err := c.buf.Insert(r, c.Offset()); err != nil {
		return err
	}
	c.col++
	return nil
}

// InsertNewline splits the line at the caret and moves to the start of the
// new line.
func (c *Controller) InsertNewline() error {
	if err := c.buf.Insert('\n', c.Offset()); err != nil {
		return err
	}
	c.line++
	c.col = 0
	return nil
}

// InsertString types s one rune at a time.
func (c *Controller) InsertString(s string) error {
	for _, r := range s {
		if err := c.InsertChar(r); err != nil {
			return err
		}
	}
	return nil
}

// DeleteBackward removes the rune before the caret. At the start of a line
// it joins the line onto the previous one. It reports whether anything was
// removed.
func (c *Controller) DeleteBackward() bool {
	switch {
	case c.col > 0:
		c.buf.DeleteBackward(c.Offset())
		c.col--
		return true
	case c.line > 0:
		prevLen := c.buf.LineLen(c.line - 1)
		c.buf.DeleteBackward(c.Offset())
		c.line--
		// the joined newline is gone
		c.col = prevLen - 1
		return true
	default:
		return false
	}
}

// DeleteForward removes the rune under the caret. The caret never moves,
// including when the removed rune is the newline ending the current line.
func (c *Controller) DeleteForward() bool {
	pos := c.Offset()
	if pos >= c.buf.Len() {
		return false
	}
	c.buf.DeleteForward(pos)
	return true
}

// Move performs one navigation step. Callers pass either a horizontal step
// (dy == 0) or a vertical one (dx == 0).
func (c *Controller) Move(dx, dy int) {
	last := c.buf.LineCount() - 1
	line := clamp(c.line+dy, 0, last)
	col := c.col

	switch {
	case dx < 0:
		switch {
		case c.col > 0:
			col = c.col - 1
		case c.line > 0:
			line--
			col = c.buf.LineLen(line) - 1
		default:
			col = 0
		}
	case dx > 0:
		n := c.buf.LineLen(line)
		switch {
		case c.col < n-1:
			col = c.col + 1
		case c.line < last:
			line++
			col = 0
		default:
			col = n
		}
	default:
		col = min(c.col, c.maxCol(line))
	}

	c.line = line
	c.col = max(col, 0)
}

// MoveLeft steps one rune left, wrapping to the end of the previous line.
func (c *Controller) MoveLeft() { c.Move(-1, 0) }

// MoveRight steps one rune right, wrapping to the start of the next line.
func (c *Controller) MoveRight() { c.Move(1, 0) }

// MoveUp moves to the previous line, clamping the column.
func (c *Controller) MoveUp() { c.Move(0, -1) }

// MoveDown moves to the next line, clamping the column.
func (c *Controller) MoveDown() { c.Move(0, 1) }

// LineHome moves to column 0.
func (c *Controller) LineHome() { c.col = 0 }

// LineEnd moves to the last navigable column of the current line.
func (c *Controller) LineEnd() { c.col = max(c.maxCol(c.line), 0) }

// WordForward moves to the start of the next word.
func (c *Controller) WordForward() {
	c.SetOffset(buffer.NextWordStart(c.buf, c.Offset()))
}

// WordEnd moves to the last rune of the current or next word.
func (c *Controller) WordEnd() {
	c.SetOffset(buffer.WordEnd(c.buf, c.Offset()))
}

// WordBackward moves to the start of the previous word.
func (c *Controller) WordBackward() {
	c.SetOffset(buffer.WordStart(c.buf, c.Offset()))
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
