package logs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Logger writes JSON lines with a timestamp, an event name and fields.
// A nil or disabled Logger discards everything.
type Logger struct {
	mu      sync.Mutex
	f       *os.File
	sl      *slog.Logger
	enabled bool
}

// NewFromEnv returns a logger if TEXTEDITOR_LOG is set to a truthy value
// or if TEXTEDITOR_LOG_FILE is provided. Otherwise it returns a disabled logger.
// When enabled and no file is specified, it writes to ./texteditor.log.
func NewFromEnv() *Logger {
	lf := os.Getenv("TEXTEDITOR_LOG_FILE")
	enabled := lf != ""
	if v := os.Getenv("TEXTEDITOR_LOG"); v != "" && v != "0" && v != "false" {
		enabled = true
	}
	if !enabled {
		return &Logger{}
	}
	if lf == "" {
		lf = filepath.Join(".", "texteditor.log")
	}
	l, err := New(lf)
	if err != nil {
		// If we cannot open the requested file, disable logging silently.
		return &Logger{}
	}
	return l
}

// New opens path for appending and logs to it.
func New(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	l := NewWriter(f)
	l.f = f
	return l, nil
}

// NewWriter logs to w. The caller keeps ownership of w.
func NewWriter(w io.Writer) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{ReplaceAttr: renameAttr})
	return &Logger{sl: slog.New(h), enabled: true}
}

// renameAttr turns slog's record layout into {"time","event",...}.
func renameAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.LevelKey:
		return slog.Attr{}
	case slog.MessageKey:
		a.Key = "event"
	}
	return a
}

// Enabled reports whether events are written anywhere.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

// Close closes the underlying file if the logger opened one.
func (l *Logger) Close() {
	if !l.Enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = false
	if l.f != nil {
		_ = l.f.Close()
	}
}

// Event writes a JSON line with the event name and fields.
// Common fields: key, rune, action, line, col, buffer_len, file.
func (l *Logger) Event(event string, fields map[string]any) {
	if !l.Enabled() {
		return
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sl.LogAttrs(context.Background(), slog.LevelInfo, event, attrs...)
}
