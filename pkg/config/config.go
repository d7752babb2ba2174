package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"example.com/gapedit/pkg/buffer"
	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidKeybinding is returned for key descriptions ParseKeybinding
// does not understand.
var ErrInvalidKeybinding = errors.New("invalid keybinding")

// Keybinding represents a single key combination.
type Keybinding struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// Config holds user configuration values.
type Config struct {
	Keymap      map[string]Keybinding
	GapCapacity int
	TabWidth    int
	LogFile     string
}

// fileConfig is the on-disk YAML layout.
type fileConfig struct {
	Keymap      map[string]string `yaml:"keymap"`
	GapCapacity int               `yaml:"gap_capacity"`
	TabWidth    int               `yaml:"tab_width"`
	LogFile     string            `yaml:"log_file"`
}

// Default returns a Config with default key mappings.
func Default() *Config {
	return &Config{
		Keymap:      DefaultKeymap(),
		GapCapacity: buffer.DefaultGapCapacity,
		TabWidth:    4,
	}
}

// DefaultKeymap provides builtin command bindings.
func DefaultKeymap() map[string]Keybinding {
	return map[string]Keybinding{
		"quit": mustParse("Ctrl+Q"),
		"save": mustParse("Ctrl+S"),
	}
}

// Load loads configuration from the provided path. If the file does not
// exist, defaults are returned. Values missing from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	for cmd, binding := range fc.Keymap {
		kb, err := ParseKeybinding(binding)
		if err != nil {
			return nil, fmt.Errorf("keymap %q: %w", cmd, err)
		}
		cfg.Keymap[cmd] = kb
	}
	if fc.GapCapacity > 0 {
		cfg.GapCapacity = fc.GapCapacity
	}
	if fc.TabWidth > 0 {
		cfg.TabWidth = fc.TabWidth
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	return cfg, nil
}

// DefaultPath returns ~/.texteditor/config.yaml, or "" when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".texteditor", "config.yaml")
}

// LoadDefault attempts to read ~/.texteditor/config.yaml.
func LoadDefault() (*Config, error) {
	path := DefaultPath()
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// ParseKeybinding converts a textual key description like "Ctrl+S" into a
// Keybinding. Currently only Ctrl+<letter> is supported.
func ParseKeybinding(s string) (Keybinding, error) {
	parts := strings.Split(s, "+")
	if len(parts) != 2 {
		return Keybinding{}, fmt.Errorf("%w: %s", ErrInvalidKeybinding, s)
	}
	if !strings.EqualFold(strings.TrimSpace(parts[0]), "ctrl") {
		return Keybinding{}, fmt.Errorf("%w: bad modifier in %s", ErrInvalidKeybinding, s)
	}
	r := []rune(strings.ToLower(strings.TrimSpace(parts[1])))
	if len(r) != 1 || r[0] < 'a' || r[0] > 'z' {
		return Keybinding{}, fmt.Errorf("%w: bad key in %s", ErrInvalidKeybinding, s)
	}
	return Keybinding{Key: tcell.KeyRune, Rune: r[0], Mod: tcell.ModCtrl}, nil
}

func mustParse(s string) Keybinding {
	kb, err := ParseKeybinding(s)
	if err != nil {
		panic(err)
	}
	return kb
}

// Matches returns true if the binding matches the provided event.
// Terminals report Ctrl+<letter> either as a rune with ModCtrl or as the
// dedicated control key (KeyCtrlA..KeyCtrlZ).
func (k Keybinding) Matches(ev *tcell.EventKey) bool {
	if k.Key == ev.Key() && k.Rune == ev.Rune() && k.Mod == ev.Modifiers() {
		return true
	}
	if k.Key == tcell.KeyRune && k.Mod == tcell.ModCtrl && k.Rune >= 'a' && k.Rune <= 'z' {
		return ev.Key() == tcell.KeyCtrlA+tcell.Key(k.Rune-'a')
	}
	return false
}
