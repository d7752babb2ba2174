package buffer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DefaultGapCapacity is the number of empty slots added whenever the gap is
// exhausted.
const DefaultGapCapacity = 50

// ErrOutOfRange is returned by Insert when the offset lies outside [0, Len()].
var ErrOutOfRange = errors.New("buffer: position out of range")

// Debug enables an invariant check after every mutation. A failed check
// panics; it means the mutation logic is broken, not that the input was bad.
var Debug = false

// GapBuffer is a gap buffer of runes with a line-start index kept in step
// with every edit. The logical text is buf[:gapStart] followed by
// buf[gapEnd:].
type GapBuffer struct {
	buf      []rune
	gapStart int
	gapEnd   int
	gapCap   int

	// lineStarts[0] is always 0; lineStarts[i] is the offset just after the
	// i-th newline.
	lineStarts []int
}

// New creates a GapBuffer seeded with text, using DefaultGapCapacity.
func New(text string) *GapBuffer {
	return NewWithCapacity(text, DefaultGapCapacity)
}

// NewWithCapacity creates a GapBuffer seeded with text. The gap is placed
// right after the text and holds gapCap slots; gapCap < 1 selects
// DefaultGapCapacity.
func NewWithCapacity(text string, gapCap int) *GapBuffer {
	if gapCap < 1 {
		gapCap = DefaultGapCapacity
	}
	runes := []rune(text)
	b := make([]rune, len(runes)+gapCap)
	copy(b, runes)
	g := &GapBuffer{
		buf:      b,
		gapStart: len(runes),
		gapEnd:   len(runes) + gapCap,
		gapCap:   gapCap,
	}
	g.rebuildLineIndex()
	return g
}

// Len returns the logical length in runes.
func (g *GapBuffer) Len() int {
	return len(g.buf) - (g.gapEnd - g.gapStart)
}

// GapCapacity returns the growth increment used when the gap runs out.
func (g *GapBuffer) GapCapacity() int { return g.gapCap }

// String returns the logical text.
func (g *GapBuffer) String() string {
	var sb strings.Builder
	sb.Grow(g.Len())
	for _, r := range g.buf[:g.gapStart] {
		sb.WriteRune(r)
	}
	for _, r := range g.buf[g.gapEnd:] {
		sb.WriteRune(r)
	}
	return sb.String()
}

// RuneAt returns the rune at logical index i. If i is out of bounds, it
// returns 0.
func (g *GapBuffer) RuneAt(i int) rune {
	if i < 0 || i >= g.Len() {
		return 0
	}
	return g.runeAt(i)
}

func (g *GapBuffer) runeAt(i int) rune {
	if i < g.gapStart {
		return g.buf[i]
	}
	return g.buf[g.gapEnd+(i-g.gapStart)]
}

// Slice returns a copy of the runes in [start,end), clamped to the text.
func (g *GapBuffer) Slice(start, end int) []rune {
	if start < 0 {
		start = 0
	}
	if end > g.Len() {
		end = g.Len()
	}
	if start >= end {
		return []rune{}
	}
	out := make([]rune, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, g.runeAt(i))
	}
	return out
}

// Insert places r at logical offset pos (0..Len()).
func (g *GapBuffer) Insert(r rune, pos int) error {
	if pos < 0 || pos > g.Len() {
		return fmt.Errorf("%w: insert at %d, length %d", ErrOutOfRange, pos, g.Len())
	}
	if g.gapStart == g.gapEnd {
		g.growGap()
	}
	g.moveGap(pos)
	g.buf[g.gapStart] = r
	g.gapStart++

	if r == '\n' {
		g.rebuildLineIndex()
	} else {
		for i := range g.lineStarts {
			if g.lineStarts[i] > pos {
				g.lineStarts[i]++
			}
		}
	}
	g.debugCheck()
	return nil
}

// InsertString inserts s at pos one rune at a time and returns the number of
// runes inserted.
func (g *GapBuffer) InsertString(s string, pos int) (int, error) {
	n := 0
	for _, r := range s {
		if err := g.Insert(r, pos+n); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// DeleteBackward removes the rune just before pos. It is a no-op when there
// is nothing before pos.
func (g *GapBuffer) DeleteBackward(pos int) {
	if pos <= 0 || pos > g.Len() {
		return
	}
	g.moveGap(pos)
	g.gapStart--
	deleted := g.buf[g.gapStart]
	g.buf[g.gapStart] = 0

	if deleted == '\n' {
		g.rebuildLineIndex()
	} else {
		for i := range g.lineStarts {
			if g.lineStarts[i] >= pos {
				g.lineStarts[i]--
			}
		}
	}
	g.debugCheck()
}

// DeleteForward removes the rune at pos. It is a no-op when pos is at or
// past the end of the text.
func (g *GapBuffer) DeleteForward(pos int) {
	if pos < 0 || pos >= g.Len() {
		return
	}
	g.moveGap(pos)
	deleted := g.buf[g.gapEnd]
	g.buf[g.gapEnd] = 0
	g.gapEnd++

	if deleted == '\n' {
		g.rebuildLineIndex()
	} else {
		for i := range g.lineStarts {
			if g.lineStarts[i] > pos {
				g.lineStarts[i]--
			}
		}
	}
	g.debugCheck()
}

// growGap splices gapCap empty slots in at gapEnd. Only called with an empty
// gap.
func (g *GapBuffer) growGap() {
	nb := make([]rune, len(g.buf)+g.gapCap)
	copy(nb, g.buf[:g.gapEnd])
	copy(nb[g.gapEnd+g.gapCap:], g.buf[g.gapEnd:])
	g.buf = nb
	g.gapEnd += g.gapCap
}

// moveGap shifts runes across the gap one slot at a time until
// gapStart == pos. pos must already be within [0, Len()].
func (g *GapBuffer) moveGap(pos int) {
	if g.gapStart == g.gapEnd {
		// an empty gap can sit anywhere; nothing to shift
		g.gapStart, g.gapEnd = pos, pos
		return
	}
	for g.gapStart > pos {
		g.gapStart--
		g.gapEnd--
		g.buf[g.gapEnd] = g.buf[g.gapStart]
		g.buf[g.gapStart] = 0
	}
	for g.gapStart < pos {
		g.buf[g.gapStart] = g.buf[g.gapEnd]
		g.buf[g.gapEnd] = 0
		g.gapStart++
		g.gapEnd++
	}
}

func (g *GapBuffer) rebuildLineIndex() {
	starts := g.lineStarts[:0]
	starts = append(starts, 0)
	n := g.Len()
	for i := 0; i < n; i++ {
		if g.runeAt(i) == '\n' {
			starts = append(starts, i+1)
		}
	}
	g.lineStarts = starts
}

// LineCount returns the number of lines, which is one more than the number
// of newlines.
func (g *GapBuffer) LineCount() int {
	return len(g.lineStarts)
}

// LineStart returns the offset of the first rune of line n, or -1 if there
// is no such line.
func (g *GapBuffer) LineStart(n int) int {
	if n < 0 || n >= len(g.lineStarts) {
		return -1
	}
	return g.lineStarts[n]
}

// lineBounds returns [start,end) for line n; end includes the newline of
// every line except the last.
func (g *GapBuffer) lineBounds(n int) (start, end int, ok bool) {
	if n < 0 || n >= len(g.lineStarts) {
		return 0, 0, false
	}
	start = g.lineStarts[n]
	end = g.Len()
	if n+1 < len(g.lineStarts) {
		end = g.lineStarts[n+1]
	}
	return start, end, true
}

// Line returns the text of line n, including its trailing newline. The last
// line has no newline. An unknown line yields "".
func (g *GapBuffer) Line(n int) string {
	start, end, ok := g.lineBounds(n)
	if !ok {
		return ""
	}
	return string(g.Slice(start, end))
}

// LineLen returns the rune length of Line(n).
func (g *GapBuffer) LineLen(n int) int {
	start, end, ok := g.lineBounds(n)
	if !ok {
		return 0
	}
	return end - start
}

// IsLastLine reports whether n is the final line, the only one without a
// terminating newline.
func (g *GapBuffer) IsLastLine(n int) bool {
	return n == len(g.lineStarts)-1
}

// LineOf maps an offset to its (line, column). pos is clamped to
// [0, Len()].
func (g *GapBuffer) LineOf(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	}
	if pos > g.Len() {
		pos = g.Len()
	}
	line = sort.SearchInts(g.lineStarts, pos+1) - 1
	return line, pos - g.lineStarts[line]
}

// Check panics if the gap bounds or the line index are inconsistent with
// the stored text.
func (g *GapBuffer) Check() {
	if g.gapStart < 0 || g.gapStart > g.gapEnd || g.gapEnd > len(g.buf) {
		panic(fmt.Sprintf("buffer: gap bounds corrupt: start=%d end=%d cap=%d", g.gapStart, g.gapEnd, len(g.buf)))
	}
	if len(g.lineStarts) == 0 || g.lineStarts[0] != 0 {
		panic(fmt.Sprintf("buffer: line index must start at 0: %v", g.lineStarts))
	}
	want := 1
	n := g.Len()
	for i := 0; i < n; i++ {
		if g.runeAt(i) != '\n' {
			continue
		}
		if want >= len(g.lineStarts) || g.lineStarts[want] != i+1 {
			panic(fmt.Sprintf("buffer: line index out of sync at newline %d (offset %d): %v", want, i, g.lineStarts))
		}
		want++
	}
	if want != len(g.lineStarts) {
		panic(fmt.Sprintf("buffer: line index has %d entries, text has %d lines", len(g.lineStarts), want))
	}
}

func (g *GapBuffer) debugCheck() {
	if Debug {
		g.Check()
	}
}
