package app

import (
	"errors"

	"example.com/gapedit/pkg/config"
	"example.com/gapedit/pkg/editor"
	"github.com/gdamore/tcell/v2"
)

func (r *Runner) binding(name string) (config.Keybinding, bool) {
	if r.Keymap == nil {
		kb, ok := config.DefaultKeymap()[name]
		return kb, ok
	}
	kb, ok := r.Keymap[name]
	return kb, ok
}

func (r *Runner) matches(name string, ev *tcell.EventKey) bool {
	kb, ok := r.binding(name)
	return ok && kb.Matches(ev)
}

// ctrlRune reports whether ev is Ctrl+<ch>, in either of the two ways
// terminals deliver it.
func ctrlRune(ev *tcell.EventKey, ch rune) bool {
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 && ev.Rune() == ch {
		return true
	}
	return ev.Key() == tcell.KeyCtrlA+tcell.Key(ch-'a')
}

// handleKeyEvent processes a key event. It returns true if the event signals
// the runner should quit.
func (r *Runner) handleKeyEvent(ev *tcell.EventKey) bool {
	s := r.session()
	c := s.Cursor()
	r.Message = ""

	switch {
	case r.matches("quit", ev):
		return true
	case r.matches("save", ev):
		r.save()
	case ev.Key() == tcell.KeyF1:
		r.ShowHelp = true
	case ev.Key() == tcell.KeyEnter:
		r.edit("newline", s.InsertNewline())
	case ev.Key() == tcell.KeyTab:
		r.edit("insert", s.InsertChar('\t'))
	case ev.Key() == tcell.KeyBackspace || ev.Key() == tcell.KeyBackspace2:
		s.DeleteBackward()
		r.action("delete.backward")
	case ev.Key() == tcell.KeyDelete || ctrlRune(ev, 'd'):
		s.DeleteForward()
		r.action("delete.forward")
	case ev.Key() == tcell.KeyLeft && ev.Modifiers()&tcell.ModCtrl != 0:
		c.WordBackward()
	case ev.Key() == tcell.KeyRight && ev.Modifiers()&tcell.ModCtrl != 0:
		c.WordForward()
	case ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModAlt != 0 && ev.Rune() == 'e':
		c.WordEnd()
	case ev.Key() == tcell.KeyLeft || ctrlRune(ev, 'b'):
		c.MoveLeft()
	case ev.Key() == tcell.KeyRight || ctrlRune(ev, 'f'):
		c.MoveRight()
	case ev.Key() == tcell.KeyUp || ctrlRune(ev, 'p'):
		c.MoveUp()
	case ev.Key() == tcell.KeyDown || ctrlRune(ev, 'n'):
		c.MoveDown()
	case ev.Key() == tcell.KeyHome || ctrlRune(ev, 'a'):
		c.LineHome()
	case ev.Key() == tcell.KeyEnd || ctrlRune(ev, 'e'):
		c.LineEnd()
	case ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0:
		r.edit("insert", s.InsertChar(ev.Rune()))
	default:
		return false
	}
	r.draw()
	return false
}

func (r *Runner) save() {
	s := r.session()
	s.Logger = r.Logger
	err := s.Save()
	switch {
	case errors.Is(err, editor.ErrNoPath):
		r.Message = "No file name; start the editor with a path to save"
	case err != nil:
		r.Message = "Save failed: " + err.Error()
	default:
		r.Message = "Saved " + s.FilePath
	}
}

func (r *Runner) edit(name string, err error) {
	if err != nil {
		r.Logger.Event("action.error", map[string]any{"name": name, "error": err.Error()})
		r.Message = err.Error()
		return
	}
	r.action(name)
}

func (r *Runner) action(name string) {
	if !r.Logger.Enabled() {
		return
	}
	s := r.session()
	p := s.Cursor().Position()
	r.Logger.Event("action", map[string]any{
		"name":       name,
		"line":       p.Line,
		"col":        p.Col,
		"buffer_len": s.Buffer().Len(),
	})
}
