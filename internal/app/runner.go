package app

import (
	"example.com/gapedit/pkg/config"
	"example.com/gapedit/pkg/editor"
	"example.com/gapedit/pkg/logs"
	"github.com/gdamore/tcell/v2"
)

// Runner owns the terminal lifecycle and a minimal event loop. It turns key
// events into cursor operations on the session and redraws after each one.
type Runner struct {
	Screen   tcell.Screen
	Session  *editor.Session
	Logger   *logs.Logger
	Keymap   map[string]config.Keybinding
	TabWidth int
	ShowHelp bool
	Message  string
	TopLine  int
}

// New creates a Runner with an empty session configured from cfg. A nil cfg
// selects the defaults.
func New(cfg *config.Config) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Runner{
		Session:  editor.NewSession("", cfg.GapCapacity),
		Keymap:   cfg.Keymap,
		TabWidth: cfg.TabWidth,
	}
}

func (r *Runner) session() *editor.Session {
	if r.Session == nil {
		r.Session = editor.NewSession("", 0)
	}
	return r.Session
}

// LoadFile loads a file into a fresh buffer, replacing the current one.
func (r *Runner) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	s := r.session()
	s.Logger = r.Logger
	if err := s.Load(path); err != nil {
		return err
	}
	r.TopLine = 0
	return nil
}

// Save writes the buffer contents to the session's file.
func (r *Runner) Save() error {
	s := r.session()
	s.Logger = r.Logger
	return s.Save()
}

// InitScreen initializes a tcell screen if one is not already set.
func (r *Runner) InitScreen() error {
	if r.Screen != nil {
		return nil
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.SetStyle(tcell.StyleDefault)
	s.Clear()
	r.Screen = s
	return nil
}

// Fini finalizes the screen if initialized.
func (r *Runner) Fini() {
	if r.Screen != nil {
		r.Screen.Fini()
		r.Screen = nil
	}
	if r.Logger != nil {
		r.Logger.Close()
	}
}

// Run starts the event loop. It will initialize the screen if needed and
// return when the user requests quit.
func (r *Runner) Run() error {
	if r.Screen == nil {
		if err := r.InitScreen(); err != nil {
			return err
		}
		defer r.Fini()
	}

	// Initialize logger from env (no-op if disabled)
	if r.Logger == nil {
		r.Logger = logs.NewFromEnv()
	}
	r.session().Logger = r.Logger
	r.Logger.Event("run.start", map[string]any{"file": r.session().FilePath})
	defer r.Logger.Event("run.end", map[string]any{"file": r.session().FilePath})

	r.draw()
	for {
		ev := r.Screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			// screen finalized
			return nil
		case *tcell.EventKey:
			r.Logger.Event("key", map[string]any{
				"key":       int(ev.Key()),
				"rune":      string(ev.Rune()),
				"modifiers": int(ev.Modifiers()),
			})
			// If help is currently shown, consume this key to dismiss it
			if r.ShowHelp {
				r.ShowHelp = false
				r.draw()
				continue
			}
			if r.handleKeyEvent(ev) {
				r.Logger.Event("action", map[string]any{"name": "quit"})
				return nil
			}
		case *tcell.EventResize:
			r.Screen.Sync()
			r.draw()
		}
	}
}
