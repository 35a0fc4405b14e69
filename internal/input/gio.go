package input

import (
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"

	"github.com/justyntemme/dragboard/internal/debug"
	"github.com/justyntemme/dragboard/internal/dnd"
)

// allModifiers lets modifier key filters match whatever else is held.
const allModifiers = key.ModCtrl | key.ModCommand | key.ModShift | key.ModAlt | key.ModSuper

// modifierKeys are reported so operation changes apply without pointer
// movement.
var modifierKeys = map[key.Name]key.Modifiers{
	key.NameCtrl:    key.ModCtrl,
	key.NameCommand: key.ModCommand,
	key.NameShift:   key.ModShift,
	key.NameAlt:     key.ModAlt,
	key.NameSuper:   key.ModSuper,
}

// GioModifiers converts Gio modifier flags. Command and Super both map to
// Meta.
func GioModifiers(m key.Modifiers) dnd.Modifiers {
	var mods dnd.Modifiers
	if m.Contain(key.ModCtrl) {
		mods |= dnd.ModCtrl
	}
	if m.Contain(key.ModShift) {
		mods |= dnd.ModShift
	}
	if m.Contain(key.ModAlt) {
		mods |= dnd.ModAlt
	}
	if m.Contain(key.ModCommand) || m.Contain(key.ModSuper) {
		mods |= dnd.ModMeta
	}
	return mods
}

// GioDriver feeds a Tracker from a Gio window. Its pointer area passes
// events through, so widgets underneath keep receiving clicks.
type GioDriver struct {
	tracker *Tracker

	cancel         key.Name
	cancelRequired key.Modifiers

	pid     pointer.ID
	tracked bool
	grabbed bool
}

// NewGioDriver returns a driver for t. cancel is the key that aborts a
// drag; required lists modifiers that must be held with it.
func NewGioDriver(t *Tracker, cancel key.Name, required key.Modifiers) *GioDriver {
	if cancel == "" {
		cancel = key.NameEscape
	}
	return &GioDriver{tracker: t, cancel: cancel, cancelRequired: required}
}

// Tracker returns the driven tracker.
func (d *GioDriver) Tracker() *Tracker { return d.tracker }

// Update drains pending pointer and key events. It reports whether the
// drag state may have changed and the frame should be redrawn.
func (d *GioDriver) Update(gtx layout.Context) bool {
	changed := false

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: d,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		if e, ok := ev.(pointer.Event); ok {
			if d.handlePointer(gtx, e) {
				changed = true
			}
		}
	}

	filters := []event.Filter{key.Filter{Name: d.cancel, Required: d.cancelRequired}}
	for name := range modifierKeys {
		filters = append(filters, key.Filter{Name: name, Optional: allModifiers})
	}
	for {
		ev, ok := gtx.Event(filters...)
		if !ok {
			break
		}
		if e, ok := ev.(key.Event); ok {
			if d.handleKey(e) {
				changed = true
			}
		}
	}
	return changed
}

func (d *GioDriver) handlePointer(gtx layout.Context, e pointer.Event) bool {
	x, y := float64(e.Position.X), float64(e.Position.Y)
	mods := GioModifiers(e.Modifiers)

	switch e.Kind {
	case pointer.Press:
		if d.tracked || !e.Buttons.Contain(pointer.ButtonPrimary) {
			return false
		}
		if d.tracker.Press(x, y, mods) {
			d.pid = e.PointerID
			d.tracked = true
			d.grabbed = false
		}
		return false
	case pointer.Drag:
		if !d.tracked || e.PointerID != d.pid {
			return false
		}
		d.tracker.Move(x, y, mods)
		if d.tracker.Dragging() && !d.grabbed && e.Priority < pointer.Grabbed {
			gtx.Execute(pointer.GrabCmd{Tag: d, ID: d.pid})
			d.grabbed = true
			debug.Log(debug.INPUT, "GioDriver: grabbed pointer %v", d.pid)
		}
		if !d.tracker.Pressed() {
			d.tracked = false
		}
		return true
	case pointer.Release:
		if !d.tracked || e.PointerID != d.pid {
			return false
		}
		d.tracked = false
		d.tracker.Release(x, y, mods)
		return true
	case pointer.Cancel:
		if !d.tracked {
			return false
		}
		d.tracked = false
		d.tracker.Abort()
		return true
	}
	return false
}

func (d *GioDriver) handleKey(e key.Event) bool {
	if bit, ok := modifierKeys[e.Name]; ok {
		mods := e.Modifiers
		if e.State == key.Press {
			mods |= bit
		} else {
			mods &^= bit
		}
		d.tracker.SetModifiers(GioModifiers(mods))
		return d.tracker.Dragging()
	}

	if e.Name == d.cancel && e.State == key.Press {
		if d.tracker.CancelKey() {
			d.tracked = false
			debug.Log(debug.INPUT, "GioDriver: cancelled by %s", e.Name)
			return true
		}
	}
	return false
}

// Layout drains events and registers the driver's pointer area over the
// full constraints. Call it after the board content so the area sits on
// top.
func (d *GioDriver) Layout(gtx layout.Context) layout.Dimensions {
	d.Update(gtx)

	size := gtx.Constraints.Max
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	defer pointer.PassOp{}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, d)

	if d.tracker.Dragging() {
		m := d.tracker.Manager()
		cursor := pointer.CursorNotAllowed
		for _, id := range m.GetTargetIDs() {
			if m.CanDropOnTarget(id) {
				cursor = pointer.CursorGrabbing
				break
			}
		}
		cursor.Add(gtx.Ops)
	}
	return layout.Dimensions{Size: size}
}
