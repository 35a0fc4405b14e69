package dnd

import "testing"

func TestMonitors_DelegateToManager(t *testing.T) {
	m := NewManager()
	s1, _ := m.RegisterSource(DragSource{Type: "NODE", BeginDrag: func(*Manager) any { return "item" }})
	s2, _ := m.RegisterSource(DragSource{Type: "NODE"})
	outer, _ := m.RegisterTarget(DropTarget{Accept: Accept("NODE"), HitTest: band(0, 100)})
	inner, _ := m.RegisterTarget(DropTarget{Accept: Accept("NODE"), HitTest: band(40, 60), Drop: func(*Manager) any { return "res" }})

	src1 := NewDragSourceMonitor(m, s1)
	src2 := NewDragSourceMonitor(m, s2)
	outerMon := NewDropTargetMonitor(m, outer)
	innerMon := NewDropTargetMonitor(m, inner)

	if !src1.CanDrag() || src1.IsDragging() || outerMon.IsDragging() {
		t.Fatal("idle monitors report wrong state")
	}
	if outerMon.CanDrop() {
		t.Error("CanDrop while idle: expected false")
	}

	m.BeginDrag([]string{s1}, "move", 50, 0, 50, 0)
	m.Drag(50, 0, 50, 0)

	if !src1.IsDragging() || src2.IsDragging() {
		t.Errorf("source monitors: s1 dragging=%v s2 dragging=%v", src1.IsDragging(), src2.IsDragging())
	}
	if src2.CanDrag() {
		t.Error("CanDrag on another source during a drag: expected false")
	}
	if !outerMon.IsDragging() {
		t.Error("target monitor IsDragging should be global")
	}
	if !outerMon.IsOver(false) || outerMon.IsOver(true) {
		t.Error("outer: expected deep over but not shallow over")
	}
	if !innerMon.IsOver(true) {
		t.Error("inner: expected shallow over")
	}
	if innerMon.GetItem() != "item" || innerMon.GetItemType() != "NODE" || src1.GetOperation() != "move" {
		t.Error("monitor projections do not match manager state")
	}
	if src1.GetDragEvent() == nil || innerMon.GetDragEvent().X != 50 {
		t.Error("GetDragEvent should reflect the manager")
	}

	m.Drop()
	if !src1.DidDrop() || src1.GetDropResult() != "res" || !innerMon.DidDrop() {
		t.Error("drop state not visible through monitors")
	}
	m.EndDrag()
	if src1.IsCancelled() || outerMon.IsCancelled() {
		t.Error("IsCancelled after drop: expected false")
	}
}

func TestMonitors_HandlerBinding(t *testing.T) {
	m := NewManager()
	s, _ := m.RegisterSource(DragSource{Type: "NODE"})

	mon := NewDragSourceMonitor(m, "")
	if mon.CanDrag() {
		t.Error("unbound monitor must not report CanDrag")
	}
	mon.ReceiveHandlerID(s)
	if got := mon.HandlerID(); got != s {
		t.Errorf("HandlerID(): expected %q, got %q", s, got)
	}
	if !mon.CanDrag() {
		t.Error("bound monitor should delegate CanDrag")
	}

	tm := NewDropTargetMonitor(m, "T1")
	tm.ReceiveHandlerID("")
	if tm.HandlerID() != "" || tm.IsOver(false) {
		t.Error("unbound target monitor reports state")
	}
}
