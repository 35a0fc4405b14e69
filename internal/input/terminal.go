package input

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/justyntemme/dragboard/internal/dnd"
)

// TerminalModifiers converts tcell modifier flags.
func TerminalModifiers(m tcell.ModMask) dnd.Modifiers {
	var mods dnd.Modifiers
	if m&tcell.ModShift != 0 {
		mods |= dnd.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= dnd.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= dnd.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= dnd.ModMeta
	}
	return mods
}

// TerminalKey looks up a tcell key by its display name ("Esc", "F5").
// "Escape" is accepted for Esc. Unknown names report false.
func TerminalKey(name string) (tcell.Key, bool) {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, "escape") {
		return tcell.KeyEscape, true
	}
	for k, n := range tcell.KeyNames {
		if strings.EqualFold(n, name) {
			return k, true
		}
	}
	return tcell.KeyNUL, false
}

// TerminalDriver feeds a Tracker from tcell events. Coordinates are cells
// and serve as both client and page positions.
type TerminalDriver struct {
	tracker *Tracker
	cancel  tcell.Key
	held    bool
}

// NewTerminalDriver returns a driver for t. cancel aborts a drag; KeyNUL
// selects Esc.
func NewTerminalDriver(t *Tracker, cancel tcell.Key) *TerminalDriver {
	if cancel == tcell.KeyNUL {
		cancel = tcell.KeyEscape
	}
	return &TerminalDriver{tracker: t, cancel: cancel}
}

// Tracker returns the driven tracker.
func (d *TerminalDriver) Tracker() *Tracker { return d.tracker }

// HandleEvent processes ev and reports whether the screen should be
// redrawn. Events other than mouse and key events are ignored.
func (d *TerminalDriver) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventMouse:
		return d.handleMouse(e)
	case *tcell.EventKey:
		if e.Key() == d.cancel {
			if d.tracker.CancelKey() {
				d.held = false
				return true
			}
		}
	}
	return false
}

func (d *TerminalDriver) handleMouse(e *tcell.EventMouse) bool {
	cx, cy := e.Position()
	x, y := float64(cx), float64(cy)
	mods := TerminalModifiers(e.Modifiers())
	primary := e.Buttons()&tcell.Button1 != 0

	switch {
	case primary && !d.held:
		d.held = true
		d.tracker.Press(x, y, mods)
		return false
	case primary && d.held:
		d.tracker.Move(x, y, mods)
		return d.tracker.Pressed()
	case !primary && d.held:
		d.held = false
		if d.tracker.Pressed() {
			d.tracker.Release(x, y, mods)
			return true
		}
		return false
	default:
		d.tracker.SetModifiers(mods)
		return false
	}
}
