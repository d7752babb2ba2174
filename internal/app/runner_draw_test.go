package app

import (
	"testing"

	"example.com/gapedit/pkg/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	// Use a simulation screen to avoid /dev/tty dependencies in CI/sandbox.
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return s
}

func rowText(s tcell.SimulationScreen, y, n int) string {
	out := make([]rune, 0, n)
	for x := 0; x < n; x++ {
		r, _, _, _ := s.GetContent(x, y)
		out = append(out, r)
	}
	return string(out)
}

func TestDrawUI(t *testing.T) {
	s := simScreen(t, 80, 24)
	drawUI(s)
	msg := "TextEditor: No File"
	msgX := (80 - len(msg)) / 2
	assert.Equal(t, msg, rowText(s, 12, msgX+len(msg))[msgX:])
}

func TestDrawBuffer_LinesAndCaret(t *testing.T) {
	s := simScreen(t, 20, 5)
	buf := buffer.New("hi\nthere")
	drawBuffer(s, buf, "f.txt", 0, 1, 3, 4)

	assert.Equal(t, "hi", rowText(s, 0, 2))
	assert.Equal(t, "there", rowText(s, 1, 5))
	assert.Equal(t, "f.txt", rowText(s, 4, 5))
	x, y, visible := s.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 3, x)
	assert.Equal(t, 1, y)
}

// TestDrawBuffer_Viewport ensures that topLine offsets the rendered lines.
func TestDrawBuffer_Viewport(t *testing.T) {
	s := simScreen(t, 10, 3)
	buf := buffer.New("l1\nl2\nl3")
	drawBuffer(s, buf, "", 1, 2, 0, 4)
	assert.Equal(t, "l2", rowText(s, 0, 2))
	assert.Equal(t, "l3", rowText(s, 1, 2))
	x, y, _ := s.GetCursor()
	assert.Equal(t, 0, x)
	assert.Equal(t, 1, y)
}

func TestDisplayColumn(t *testing.T) {
	assert.Equal(t, 0, displayColumn("abc", 0, 4))
	assert.Equal(t, 2, displayColumn("abc", 2, 4))
	assert.Equal(t, 4, displayColumn("\tb", 1, 4))
	assert.Equal(t, 5, displayColumn("\tb", 2, 4))
	assert.Equal(t, 4, displayColumn("a\tb", 2, 4))
	// wide runes take two cells
	assert.Equal(t, 4, displayColumn("日本語", 2, 4))
}

func TestRunner_DrawScrollsToCursor(t *testing.T) {
	r := runnerWith("0\n1\n2\n3\n4\n5", 0, 0)
	r.Screen = simScreen(t, 10, 4)
	r.Session.Dirty = true
	for i := 0; i < 5; i++ {
		r.handleKeyEvent(key(tcell.KeyDown))
	}
	// three text rows, cursor on line 5
	assert.Equal(t, 3, r.TopLine)
	sim := r.Screen.(tcell.SimulationScreen)
	assert.Equal(t, "3", rowText(sim, 0, 1))
	_, y, _ := sim.GetCursor()
	assert.Equal(t, 2, y)

	for i := 0; i < 5; i++ {
		r.handleKeyEvent(key(tcell.KeyUp))
	}
	assert.Equal(t, 0, r.TopLine)
}

func TestRunner_StatusLine(t *testing.T) {
	r := runnerWith("ab\ncd", 1, 1)
	r.Session.FilePath = "f.txt"
	r.Session.Dirty = true
	assert.Equal(t, "f.txt [+] | 2:2", r.statusLine())
	r.Message = "Saved f.txt"
	assert.Equal(t, "f.txt [+] | 2:2 | Saved f.txt", r.statusLine())
}

func TestRunner_DrawHelpThenDismiss(t *testing.T) {
	r := runnerWith("x", 0, 0)
	r.Screen = simScreen(t, 60, 20)
	r.handleKeyEvent(key(tcell.KeyF1))
	assert.True(t, r.ShowHelp)
}
