package app

import (
	"fmt"
	"strings"

	"example.com/gapedit/pkg/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var (
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// Minimal UI helpers (kept here so runner does not depend on package main)
func drawUI(s tcell.Screen) {
	s.Clear()
	width, height := s.Size()
	msg := "TextEditor: No File"
	drawString(s, (width-len(msg))/2, height/2, msg, textStyle)
	status := "Press Ctrl+Q to exit, F1 for help"
	drawString(s, (width-len(status))/2, height-1, status, statusStyle)
	s.Show()
}

func drawHelp(s tcell.Screen) {
	width, height := s.Size()
	s.Clear()
	s.SetStyle(tcell.StyleDefault)
	lines := []string{
		"Help:",
		"- F1: Show this help",
		"- Ctrl+Q: Quit",
		"- Ctrl+S: Save",
		"- Arrow keys or Ctrl+B/F/P/N: Move cursor",
		"- Ctrl+Left/Right: Previous/next word; Alt+E: End of word",
		"- Home/End or Ctrl+A/Ctrl+E: Line start/end",
		"- Enter: New line; Backspace/Delete: Remove",
		"- Typing: Inserts characters",
	}
	y := (height - len(lines)) / 2
	for i, line := range lines {
		drawString(s, (width-len(line))/2, y+i, line, textStyle)
	}
	s.Show()
}

func drawString(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
}

// runeCells is the number of screen cells r occupies when it starts at
// cell x.
func runeCells(r rune, x, tabWidth int) int {
	if r == '\t' {
		if tabWidth < 1 {
			tabWidth = 1
		}
		return tabWidth - x%tabWidth
	}
	return max(runewidth.RuneWidth(r), 1)
}

// displayColumn maps a rune column in line to the screen cell the caret
// sits on.
func displayColumn(line string, col, tabWidth int) int {
	x := 0
	for i, r := range []rune(line) {
		if i >= col {
			break
		}
		x += runeCells(r, x, tabWidth)
	}
	return x
}

// textRows is the number of rows available for buffer text.
func textRows(height int) int {
	return max(height-1, 0)
}

// ensureCursorVisible scrolls TopLine so the cursor line is on screen.
func (r *Runner) ensureCursorVisible() {
	if r.Screen == nil {
		return
	}
	_, height := r.Screen.Size()
	rows := textRows(height)
	line := r.session().Cursor().Position().Line
	if line < r.TopLine {
		r.TopLine = line
	}
	if rows > 0 && line >= r.TopLine+rows {
		r.TopLine = line - rows + 1
	}
}

// draw renders the session to the screen, or the splash screen when there
// is neither a file nor any text.
func (r *Runner) draw() {
	if r.Screen == nil {
		return
	}
	if r.ShowHelp {
		drawHelp(r.Screen)
		return
	}
	s := r.session()
	if s.FilePath == "" && s.Buffer().Len() == 0 && !s.Dirty {
		drawUI(r.Screen)
		return
	}
	r.ensureCursorVisible()
	drawBuffer(r.Screen, s.Buffer(), r.statusLine(), r.TopLine, s.Cursor().Position().Line, s.Cursor().Position().Col, r.TabWidth)
}

func (r *Runner) statusLine() string {
	s := r.session()
	display := s.FilePath
	if display == "" {
		display = "[No File]"
	}
	if s.Dirty {
		display += " [+]"
	}
	p := s.Cursor().Position()
	status := fmt.Sprintf("%s | %d:%d", display, p.Line+1, p.Col+1)
	if r.Message != "" {
		status += " | " + r.Message
	}
	return status
}

// drawBuffer renders lines starting at topLine, the status bar on the last
// row, and places the terminal caret at (line, col).
func drawBuffer(s tcell.Screen, buf *buffer.GapBuffer, status string, topLine, line, col, tabWidth int) {
	width, height := s.Size()
	s.Clear()
	rows := textRows(height)
	for y := 0; y < rows && topLine+y < buf.LineCount(); y++ {
		text := strings.TrimSuffix(buf.Line(topLine+y), "\n")
		x := 0
		for _, ch := range text {
			w := runeCells(ch, x, tabWidth)
			if x+w > width {
				break
			}
			if ch == '\t' {
				for i := 0; i < w; i++ {
					s.SetContent(x+i, y, ' ', nil, textStyle)
				}
			} else {
				s.SetContent(x, y, ch, nil, textStyle)
			}
			x += w
		}
	}

	for x := 0; x < width; x++ {
		s.SetContent(x, height-1, ' ', nil, statusStyle)
	}
	drawString(s, 0, height-1, runewidth.Truncate(status, width, ""), statusStyle)

	if line >= topLine && line < topLine+rows {
		cx := displayColumn(buf.Line(line), col, tabWidth)
		s.ShowCursor(min(cx, max(width-1, 0)), line-topLine)
	} else {
		s.HideCursor()
	}
	s.Show()
}
