// Package editor ties one GapBuffer and its cursor to a file on disk.
package editor

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"example.com/gapedit/pkg/buffer"
	"example.com/gapedit/pkg/cursor"
	"example.com/gapedit/pkg/logs"
)

// ErrNoPath is returned by Save when the session has never been given a
// file name.
var ErrNoPath = errors.New("editor: no file path")

// Session holds the state of a single editing session.
type Session struct {
	FilePath string
	Dirty    bool
	Logger   *logs.Logger

	gapCap int
	buf    *buffer.GapBuffer
	cur    *cursor.Controller
}

// NewSession starts a session on text. gapCap < 1 selects the buffer default.
func NewSession(text string, gapCap int) *Session {
	s := &Session{gapCap: gapCap}
	s.replace(text)
	return s
}

func (s *Session) replace(text string) {
	s.buf = buffer.NewWithCapacity(text, s.gapCap)
	if s.cur == nil {
		s.cur = cursor.New(s.buf)
	} else {
		s.cur.Reset(s.buf)
	}
	s.Dirty = false
}

// Buffer returns the current buffer. It changes on Load.
func (s *Session) Buffer() *buffer.GapBuffer { return s.buf }

// Cursor returns the session's cursor controller.
func (s *Session) Cursor() *cursor.Controller { return s.cur }

// Load reads path into a fresh buffer, replacing the old one, and puts the
// cursor at the start of the text. CRLF line endings are normalized to LF.
func (s *Session) Load(path string) error {
	s.Logger.Event("open.attempt", map[string]any{"file": path})
	data, err := os.ReadFile(path)
	if err != nil {
		s.Logger.Event("open.error", map[string]any{"file": path, "error": err.Error()})
		return fmt.Errorf("open %s: %w", path, err)
	}
	normalized := strings.ReplaceAll(string(data), "\r\n", "\n")
	s.replace(normalized)
	s.FilePath = path
	s.Logger.Event("open.success", map[string]any{"file": path, "bytes": len(data), "runes": s.buf.Len(), "lines": s.buf.LineCount()})
	return nil
}

// Save writes the buffer to FilePath and clears Dirty.
func (s *Session) Save() error {
	if s.FilePath == "" {
		return ErrNoPath
	}
	return s.SaveAs(s.FilePath)
}

// SaveAs writes the buffer to path and makes it the session's file.
func (s *Session) SaveAs(path string) error {
	data := []byte(s.buf.String())
	if err := os.WriteFile(path, data, 0644); err != nil {
		s.Logger.Event("save.error", map[string]any{"file": path, "error": err.Error()})
		return fmt.Errorf("save %s: %w", path, err)
	}
	s.FilePath = path
	s.Dirty = false
	s.Logger.Event("save.success", map[string]any{"file": path, "bytes": len(data)})
	return nil
}

// InsertChar types r at the cursor.
func (s *Session) InsertChar(r rune) error {
	if err := s.cur.InsertChar(r); err != nil {
		return err
	}
	s.Dirty = true
	return nil
}

// InsertNewline splits the current line at the cursor.
func (s *Session) InsertNewline() error {
	if err := s.cur.InsertNewline(); err != nil {
		return err
	}
	s.Dirty = true
	return nil
}

// InsertString types text at the cursor, e.g. for a paste.
func (s *Session) InsertString(text string) error {
	if text == "" {
		return nil
	}
	if err := s.cur.InsertString(strings.ReplaceAll(text, "\r\n", "\n")); err != nil {
		return err
	}
	s.Dirty = true
	return nil
}

// DeleteBackward is backspace.
func (s *Session) DeleteBackward() {
	if s.cur.DeleteBackward() {
		s.Dirty = true
	}
}

// DeleteForward is the delete key.
func (s *Session) DeleteForward() {
	if s.cur.DeleteForward() {
		s.Dirty = true
	}
}
