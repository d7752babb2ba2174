package config

import (
	"os"
	"path/filepath"
	"testing"

	"example.com/gapedit/pkg/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeybinding(t *testing.T) {
	kb, err := ParseKeybinding("Ctrl+X")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	ev := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl)
	if !kb.Matches(ev) {
		t.Fatalf("expected match for Ctrl+X")
	}
	if !kb.Matches(tcell.NewEventKey(tcell.KeyCtrlX, 0, tcell.ModCtrl)) {
		t.Fatalf("expected match for KeyCtrlX")
	}
	if kb.Matches(tcell.NewEventKey(tcell.KeyRune, 'x', 0)) {
		t.Fatalf("plain x must not match Ctrl+X")
	}
}

func TestParseKeybinding_Invalid(t *testing.T) {
	for _, s := range []string{"Ctrl+", "Alt+S", "Ctrl+1", "S"} {
		_, err := ParseKeybinding(s)
		assert.ErrorIs(t, err, ErrInvalidKeybinding, s)
	}
}

func TestLoadConfigRemap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("keymap:\n  quit: Ctrl+X\ngap_capacity: 8\nlog_file: /tmp/editor.log\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ev := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl)
	if !cfg.Keymap["quit"].Matches(ev) {
		t.Fatalf("expected remapped quit to Ctrl+X")
	}
	assert.True(t, cfg.Keymap["save"].Matches(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)))
	assert.Equal(t, 8, cfg.GapCapacity)
	assert.Equal(t, 4, cfg.TabWidth)
	assert.Equal(t, "/tmp/editor.log", cfg.LogFile)
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, buffer.DefaultGapCapacity, cfg.GapCapacity)
	assert.Len(t, cfg.Keymap, 2)
}

func TestLoadRejectsBadBinding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keymap:\n  save: Meta+S\n"), 0644))
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidKeybinding)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keymap: [unterminated\n"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}
