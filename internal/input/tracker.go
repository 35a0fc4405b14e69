// Package input turns raw pointer and key events into drag-and-drop manager
// calls. Tracker holds the toolkit-neutral gesture logic; GioDriver and
// TerminalDriver feed it from a Gio window and a tcell screen.
package input

import (
	"slices"

	"github.com/justyntemme/dragboard/internal/debug"
	"github.com/justyntemme/dragboard/internal/dnd"
)

// DefaultDeadZone is the distance in pixels a press must travel before it
// becomes a drag.
const DefaultDeadZone = 4

// Tracker converts press/move/release sequences into a gesture on a
// dnd.Manager. Candidates are taken from the surface at press time, topmost
// first.
type Tracker struct {
	m       *dnd.Manager
	surface *dnd.Surface

	deadZone  float64
	operation string

	pressed    bool
	candidates []string
	pressX     float64
	pressY     float64

	// Source id once BeginDrag succeeded.
	sourceID string
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithDeadZone sets the press-to-drag distance. Negative values are treated
// as zero.
func WithDeadZone(d float64) TrackerOption {
	return func(t *Tracker) {
		if d < 0 {
			d = 0
		}
		t.deadZone = d
	}
}

// WithOperation sets the operation requested when the source has no table
// entry for the held modifiers.
func WithOperation(op string) TrackerOption {
	return func(t *Tracker) { t.operation = op }
}

// NewTracker returns a tracker driving m with sources looked up on surface.
func NewTracker(m *dnd.Manager, surface *dnd.Surface, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		m:         m,
		surface:   surface,
		deadZone:  DefaultDeadZone,
		operation: "move",
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Manager returns the driven manager.
func (t *Tracker) Manager() *dnd.Manager { return t.m }

// Pressed reports whether a press is being tracked.
func (t *Tracker) Pressed() bool { return t.pressed }

// Dragging reports whether the tracked press turned into a live gesture.
func (t *Tracker) Dragging() bool {
	return t.sourceID != "" && t.m.Phase() == dnd.PhaseDragging && t.m.GetSourceID() == t.sourceID
}

// Press starts tracking at (x, y) and reports whether any source lies under
// the point. A press while another press is tracked is ignored.
func (t *Tracker) Press(x, y float64, mods dnd.Modifiers) bool {
	t.m.SetModifiers(mods)
	if t.pressed {
		return false
	}

	candidates := t.surface.SourceIDsAt(x, y)
	if len(candidates) == 0 {
		return false
	}
	t.pressed = true
	t.candidates = candidates
	t.pressX, t.pressY = x, y
	t.sourceID = ""
	debug.Log(debug.INPUT, "Press: (%.1f,%.1f) candidates=%v", x, y, candidates)
	return true
}

// Move advances the tracked press. Past the dead zone the gesture begins at
// the press point; later moves drag it.
func (t *Tracker) Move(x, y float64, mods dnd.Modifiers) {
	t.m.SetModifiers(mods)
	if !t.pressed {
		return
	}

	if t.sourceID == "" {
		dx, dy := x-t.pressX, y-t.pressY
		if dx*dx+dy*dy < t.deadZone*t.deadZone {
			return
		}
		if t.m.Phase() != dnd.PhaseIdle {
			// Someone else's gesture; never adopt it
			debug.Log(debug.INPUT, "Move: manager busy (%s), dropping press", t.m.Phase())
			t.reset()
			return
		}
		t.m.BeginDrag(t.candidates, t.operation, t.pressX, t.pressY, t.pressX, t.pressY)
		if t.m.Phase() != dnd.PhaseDragging || !slices.Contains(t.candidates, t.m.GetSourceID()) {
			debug.Log(debug.INPUT, "Move: no candidate could drag, dropping press")
			t.reset()
			return
		}
		t.sourceID = t.m.GetSourceID()
	}

	if !t.Dragging() {
		// The gesture ended underneath us (cancel key, source removed).
		t.reset()
		return
	}
	t.m.Drag(x, y, x, y)
}

// Release ends the tracked press at (x, y). A live gesture is dropped on the
// hovered targets and ended; the return value reports whether a target took
// the drop.
func (t *Tracker) Release(x, y float64, mods dnd.Modifiers) bool {
	t.m.SetModifiers(mods)
	if !t.pressed {
		return false
	}
	defer t.reset()

	if !t.Dragging() {
		return false
	}
	if ev := t.m.GetDragEvent(); ev == nil || ev.X != x || ev.Y != y {
		t.m.Drag(x, y, x, y)
	}
	if t.m.Phase() == dnd.PhaseDragging {
		t.m.Drop()
	}
	dropped := t.m.DidDrop()
	t.m.EndDrag()
	debug.Log(debug.INPUT, "Release: (%.1f,%.1f) dropped=%v", x, y, dropped)
	return dropped
}

// Abort handles a pointer that went away mid-press. The gesture is
// cancelled; when the source refuses, it is ended anyway.
func (t *Tracker) Abort() {
	if !t.pressed {
		return
	}
	defer t.reset()

	if !t.Dragging() {
		return
	}
	if !t.m.Cancel() {
		debug.Log(debug.INPUT, "Abort: cancel refused, ending gesture")
		t.m.EndDrag()
	}
}

// CancelKey handles the cancel key. It reports whether a gesture was
// cancelled; a refused cancel keeps the gesture running.
func (t *Tracker) CancelKey() bool {
	if !t.Dragging() {
		return false
	}
	if !t.m.Cancel() {
		return false
	}
	t.reset()
	return true
}

// SetModifiers forwards a modifier change that arrived without pointer
// movement.
func (t *Tracker) SetModifiers(mods dnd.Modifiers) {
	t.m.SetModifiers(mods)
}

func (t *Tracker) reset() {
	t.pressed = false
	t.candidates = nil
	t.sourceID = ""
}
