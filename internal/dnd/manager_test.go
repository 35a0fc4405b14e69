package dnd

import (
	"reflect"
	"testing"
)

// band returns a hit test true for x in [min, max].
func band(min, max float64) func(x, y float64) bool {
	return func(x, y float64) bool { return x >= min && x <= max }
}

func TestManager_ExampleScenario(t *testing.T) {
	m := NewManager()
	s, _ := m.RegisterSource(DragSource{Type: "NODE"})
	tgt, _ := m.RegisterTarget(DropTarget{
		Accept:  Accept("NODE"),
		HitTest: band(0, 10),
		Drop:    func(*Manager) any { return "placed" },
	})

	m.BeginDrag([]string{s}, "move", 5, 5, 5, 5)
	if !m.IsDragging() {
		t.Fatal("expected dragging after BeginDrag")
	}
	if got := m.GetItemType(); got != "NODE" {
		t.Errorf("GetItemType(): expected %q, got %q", "NODE", got)
	}
	if got := m.GetOperation(); got != "move" {
		t.Errorf("GetOperation(): expected %q, got %q", "move", got)
	}

	m.Drag(5, 5, 5, 5)
	if got := m.GetTargetIDs(); !reflect.DeepEqual(got, []string{tgt}) {
		t.Errorf("GetTargetIDs(): expected %v, got %v", []string{tgt}, got)
	}

	m.Drop()
	if !m.DidDrop() {
		t.Error("DidDrop(): expected true")
	}
	if got := m.GetDropResult(); got != "placed" {
		t.Errorf("GetDropResult(): expected %q, got %v", "placed", got)
	}
	if m.Phase() != PhaseDropped {
		t.Errorf("Phase(): expected %s, got %s", PhaseDropped, m.Phase())
	}

	m.EndDrag()
	if m.Phase() != PhaseIdle || m.IsDragging() {
		t.Errorf("expected idle after EndDrag, got %s", m.Phase())
	}
	if m.GetSourceID() != "" || m.GetItemType() != "" || len(m.GetTargetIDs()) != 0 {
		t.Error("EndDrag should clear source, item type and targets")
	}
	if !m.DidDrop() || m.GetDropResult() != "placed" {
		t.Error("drop result should stay readable after EndDrag")
	}
}

func TestManager_SingleActiveDrag(t *testing.T) {
	m := NewManager()
	a, _ := m.RegisterSource(DragSource{Type: "A"})
	b, _ := m.RegisterSource(DragSource{Type: "B"})

	m.BeginDrag([]string{a}, "", 0, 0, 0, 0)
	m.BeginDrag([]string{b}, "", 1, 1, 1, 1)

	if got := m.GetSourceID(); got != a {
		t.Errorf("GetSourceID(): expected %q, got %q", a, got)
	}
	if got := m.GetItemType(); got != "A" {
		t.Errorf("GetItemType(): expected %q, got %q", "A", got)
	}
	if m.CanDragSource(b) {
		t.Error("CanDragSource should be false while another drag is active")
	}

	m.EndDrag()
	m.BeginDrag([]string{b}, "", 1, 1, 1, 1)
	if got := m.GetSourceID(); got != b {
		t.Errorf("after EndDrag, GetSourceID(): expected %q, got %q", b, got)
	}
}

func TestManager_BeginDragPicksFirstDraggable(t *testing.T) {
	m := NewManager()
	locked, _ := m.RegisterSource(DragSource{Type: "X", CanDrag: func(*Manager) bool { return false }})
	open, _ := m.RegisterSource(DragSource{Type: "Y"})

	m.BeginDrag([]string{"S404", locked, open}, "", 0, 0, 0, 0)
	if got := m.GetSourceID(); got != open {
		t.Errorf("GetSourceID(): expected %q, got %q", open, got)
	}
}

func TestManager_BeginDragNoCandidate(t *testing.T) {
	m := NewManager()
	locked, _ := m.RegisterSource(DragSource{Type: "X", CanDrag: func(*Manager) bool { return false }})

	m.BeginDrag([]string{locked}, "move", 0, 0, 0, 0)
	if m.Phase() != PhaseIdle {
		t.Errorf("Phase(): expected idle, got %s", m.Phase())
	}
	if m.GetOperation() != "" || m.GetDragEvent() != nil {
		t.Error("failed BeginDrag must not touch state")
	}
}

func TestManager_BeginDragItemAndEvent(t *testing.T) {
	m := NewManager()
	var sawDragging bool
	s, _ := m.RegisterSource(DragSource{
		Type: "NODE",
		BeginDrag: func(m *Manager) any {
			sawDragging = m.IsDragging()
			return map[string]int{"id": 7}
		},
	})

	m.BeginDrag([]string{s}, "", 3, 4, 30, 40)
	if !sawDragging {
		t.Error("source BeginDrag should observe the drag as active")
	}
	item, ok := m.GetItem().(map[string]int)
	if !ok || item["id"] != 7 {
		t.Errorf("GetItem(): expected payload from BeginDrag, got %v", m.GetItem())
	}
	want := DragEvent{InitialX: 3, InitialY: 4, X: 3, Y: 4, InitialPageX: 30, InitialPageY: 40, PageX: 30, PageY: 40}
	if got := m.GetDragEvent(); got == nil || *got != want {
		t.Errorf("GetDragEvent(): expected %+v, got %+v", want, got)
	}
}

func TestManager_DragDeltas(t *testing.T) {
	m := NewManager()
	s, _ := m.RegisterSource(DragSource{Type: "NODE"})
	m.BeginDrag([]string{s}, "", 10, 10, 110, 110)

	m.Drag(15, 12, 115, 112)
	m.Drag(20, 20, 120, 120)

	ev := m.GetDragEvent()
	if ev.DX != 5 || ev.DY != 8 {
		t.Errorf("deltas: expected (5,8) from previous step, got (%v,%v)", ev.DX, ev.DY)
	}
	if ev.InitialX != 10 || ev.InitialPageY != 110 {
		t.Errorf("initial coordinates changed: %+v", ev)
	}
	if ev.PageX != 120 || ev.PageY != 120 {
		t.Errorf("page coordinates: expected (120,120), got (%v,%v)", ev.PageX, ev.PageY)
	}

	// The returned event is a copy.
	ev.X = -1
	if m.GetDragEvent().X != 20 {
		t.Error("GetDragEvent must return a copy")
	}
}

func TestManager_HoverSetMatchesHitAndType(t *testing.T) {
	m := NewManager()
	s, _ := m.RegisterSource(DragSource{Type: "NODE"})
	outer, _ := m.RegisterTarget(DropTarget{Accept: Accept("NODE"), HitTest: band(0, 100)})
	_, _ = m.RegisterTarget(DropTarget{Accept: Accept("EDGE"), HitTest: band(0, 100)})
	inner, _ := m.RegisterTarget(DropTarget{Accept: Accept("EDGE", "NODE"), HitTest: band(40, 60)})
	_, _ = m.RegisterTarget(DropTarget{Accept: Accept("NODE")}) // no hit test

	m.BeginDrag([]string{s}, "", 0, 0, 0, 0)

	testCases := []struct {
		x        float64
		expected []string
	}{
		{50, []string{outer, inner}},
		{10, []string{outer}},
		{500, []string{}},
	}
	for _, tc := range testCases {
		m.Drag(tc.x, 0, tc.x, 0)
		if got := m.GetTargetIDs(); !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("Drag(%v): expected targets %v, got %v", tc.x, tc.expected, got)
		}
	}
}

func TestManager_HoverAndDragCallbacks(t *testing.T) {
	m := NewManager()
	var calls []string
	s, _ := m.RegisterSource(DragSource{
		Type: "NODE",
		Drag: func(*Manager) { calls = append(calls, "source") },
	})
	_, _ = m.RegisterTarget(DropTarget{
		Accept:  Accept("NODE"),
		HitTest: band(0, 10),
		Hover:   func(*Manager) { calls = append(calls, "a") },
	})
	_, _ = m.RegisterTarget(DropTarget{
		Accept:  Accept("NODE"),
		HitTest: band(5, 10),
		Hover:   func(*Manager) { calls = append(calls, "b") },
	})

	m.BeginDrag([]string{s}, "", 0, 0, 0, 0)
	m.Drag(7, 0, 7, 0)

	expected := []string{"a", "b", "source"}
	if !reflect.DeepEqual(calls, expected) {
		t.Errorf("callbacks: expected %v, got %v", expected, calls)
	}
}

func TestManager_ExplicitHover(t *testing.T) {
	m := NewManager()
	s, _ := m.RegisterSource(DragSource{Type: "NODE"})
	a, _ := m.RegisterTarget(DropTarget{Accept: Accept("NODE")})
	b, _ := m.RegisterTarget(DropTarget{Accept: Accept("NODE")})
	wrong, _ := m.RegisterTarget(DropTarget{Accept: Accept("EDGE")})

	m.Hover([]string{a})
	if len(m.GetTargetIDs()) != 0 {
		t.Error("Hover while idle must be a no-op")
	}

	m.BeginDrag([]string{s}, "", 0, 0, 0, 0)
	m.Hover([]string{b, wrong, "T999", a, b})

	expected := []string{b, a}
	if got := m.GetTargetIDs(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Hover: expected %v, got %v", expected, got)
	}
	if !m.IsOverTarget(a, true) || m.IsOverTarget(b, true) {
		t.Error("shallow over should be the last hovered id")
	}
	if !m.IsOverTarget(b, false) {
		t.Error("deep over should include every hovered id")
	}
}

func TestManager_DropSelectsInnermostEligible(t *testing.T) {
	for run := 0; run < 3; run++ {
		m := NewManager()
		s, _ := m.RegisterSource(DragSource{Type: "NODE"})
		_, _ = m.RegisterTarget(DropTarget{
			Accept:  Accept("NODE"),
			HitTest: band(0, 100),
			Drop:    func(*Manager) any { return "outer" },
		})
		_, _ = m.RegisterTarget(DropTarget{
			Accept:  Accept("NODE"),
			HitTest: band(40, 60),
			Drop:    func(*Manager) any { return "inner" },
		})

		m.BeginDrag([]string{s}, "", 50, 0, 50, 0)
		m.Drag(50, 0, 50, 0)
		m.Drop()
		if got := m.GetDropResult(); got != "inner" {
			t.Fatalf("run %d: expected drop on inner target, got %v", run, got)
		}
	}
}

func TestManager_DropSkipsTargetsThatRefuse(t *testing.T) {
	m := NewManager()
	s, _ := m.RegisterSource(DragSource{Type: "NODE"})
	outer, _ := m.RegisterTarget(DropTarget{
		Accept:  Accept("NODE"),
		HitTest: band(0, 100),
		Drop:    func(*Manager) any { return "outer" },
	})
	inner, _ := m.RegisterTarget(DropTarget{
		Accept:  Accept("NODE"),
		HitTest: band(40, 60),
		CanDrop: func(*Manager) bool { return false },
		Drop:    func(*Manager) any { return "inner" },
	})

	m.BeginDrag([]string{s}, "", 50, 0, 50, 0)
	m.Drag(50, 0, 50, 0)

	if m.CanDropOnTarget(inner) {
		t.Error("CanDropOnTarget(inner): expected false")
	}
	if !m.CanDropOnTarget(outer) {
		t.Error("CanDropOnTarget(outer): expected true")
	}

	m.Drop()
	if got := m.GetDropResult(); got != "outer" {
		t.Errorf("GetDropResult(): expected %q, got %v", "outer", got)
	}
}

func TestManager_DropWithoutEligibleTarget(t *testing.T) {
	m := NewManager()
	s, _ := m.RegisterSource(DragSource{Type: "NODE"})
	_, _ = m.RegisterTarget(DropTarget{Accept: Accept("NODE"), HitTest: band(0, 10)})

	m.BeginDrag([]string{s}, "", 50, 0, 50, 0)
	m.Drag(50, 0, 50, 0)
	m.Drop()

	if m.DidDrop() {
		t.Error("DidDrop(): expected false with no hovered target")
	}
	if m.Phase() != PhaseDragging {
		t.Errorf("Phase(): expected dragging, got %s", m.Phase())
	}
}

func TestManager_InvalidStateCallsAreNoops(t *testing.T) {
	m := NewManager()
	s, _ := m.RegisterSource(DragSource{Type: "NODE"})

	m.Drag(1, 1, 1, 1)
	m.Drop()
	m.EndDrag()
	if m.Cancel() {
		t.Error("Cancel while idle: expected false")
	}
	if m.Phase() != PhaseIdle {
		t.Errorf("Phase(): expected idle, got %s", m.Phase())
	}

	// Drag and Drop after a drop do nothing.
	_, _ = m.RegisterTarget(DropTarget{Accept: Accept("NODE"), HitTest: band(0, 10), Drop: func(*Manager) any { return 1 }})
	m.BeginDrag([]string{s}, "", 5, 5, 5, 5)
	m.Drag(5, 5, 5, 5)
	m.Drop()
	m.Drag(500, 500, 500, 500)
	if ev := m.GetDragEvent(); ev.X != 5 {
		t.Errorf("Drag after Drop moved the event to %v", ev.X)
	}
	if m.Cancel() {
		t.Error("Cancel after Drop: expected false")
	}
	m.EndDrag()
	m.EndDrag()
	if m.Phase() != PhaseIdle || !m.DidDrop() {
		t.Error("second EndDrag must not disturb the finished gesture")
	}
}

func TestManager_CancelGating(t *testing.T) {
	allow := false
	var ended int
	m := NewManager()
	s, _ := m.RegisterSource(DragSource{
		Type:      "NODE",
		CanCancel: func(*Manager) bool { return allow },
		EndDrag:   func(*Manager) { ended++ },
	})

	m.BeginDrag([]string{s}, "", 0, 0, 0, 0)
	if m.Cancel() {
		t.Fatal("Cancel(): expected false when CanCancel refuses")
	}
	if m.Phase() != PhaseDragging || m.IsCancelled() {
		t.Errorf("refused cancel changed state: phase=%s cancelled=%v", m.Phase(), m.IsCancelled())
	}

	allow = true
	if !m.Cancel() {
		t.Fatal("Cancel(): expected true when CanCancel allows")
	}
	if m.Phase() != PhaseIdle {
		t.Errorf("Phase(): expected idle after cancel, got %s", m.Phase())
	}
	if !m.IsCancelled() || m.DidDrop() {
		t.Errorf("expected cancelled=true didDrop=false, got %v %v", m.IsCancelled(), m.DidDrop())
	}
	if ended != 1 {
		t.Errorf("EndDrag callback: expected 1 call, got %d", ended)
	}
}

func TestManager_BeginDragResetsFlags(t *testing.T) {
	m := NewManager()
	s, _ := m.RegisterSource(DragSource{Type: "NODE"})
	_, _ = m.RegisterTarget(DropTarget{Accept: Accept("NODE"), HitTest: band(0, 10), Drop: func(*Manager) any { return "r" }})

	m.BeginDrag([]string{s}, "", 5, 5, 5, 5)
	m.Cancel()
	if !m.IsCancelled() {
		t.Fatal("expected cancelled")
	}

	m.BeginDrag([]string{s}, "", 5, 5, 5, 5)
	if m.IsCancelled() || m.DidDrop() || m.GetDropResult() != nil {
		t.Error("BeginDrag must reset cancelled, didDrop and dropResult")
	}
	m.Drag(5, 5, 5, 5)
	m.Drop()
	m.EndDrag()

	m.BeginDrag([]string{s}, "", 5, 5, 5, 5)
	if m.DidDrop() || m.GetDropResult() != nil {
		t.Error("BeginDrag must reset the previous drop")
	}
}

func TestManager_EndDragSeesFinalState(t *testing.T) {
	m := NewManager()
	var seen State
	s, _ := m.RegisterSource(DragSource{
		Type:    "NODE",
		EndDrag: func(m *Manager) { seen = m.Snapshot() },
	})
	tgt, _ := m.RegisterTarget(DropTarget{Accept: Accept("NODE"), HitTest: band(0, 10), Drop: func(*Manager) any { return 42 }})

	m.BeginDrag([]string{s}, "copy", 5, 5, 5, 5)
	m.Drag(6, 5, 6, 5)
	m.Drop()
	m.EndDrag()

	if seen.SourceID != s || seen.ItemType != "NODE" || seen.Operation != "copy" {
		t.Errorf("EndDrag callback saw %+v", seen)
	}
	if !seen.DidDrop || seen.DropResult != 42 || seen.Phase != PhaseDropped {
		t.Errorf("EndDrag callback should see the drop, got %+v", seen)
	}
	if !reflect.DeepEqual(seen.TargetIDs, []string{tgt}) {
		t.Errorf("EndDrag callback targets: expected %v, got %v", []string{tgt}, seen.TargetIDs)
	}
}

func TestManager_IdempotentUnregister(t *testing.T) {
	var events []EventKind
	m := NewManager(WithObserver(ObserverFunc(func(ev Event) { events = append(events, ev.Kind) })))
	s, unregS := m.RegisterSource(DragSource{Type: "NODE"})
	tid, unregT := m.RegisterTarget(DropTarget{Accept: Accept("NODE")})

	unregS()
	unregS()
	unregT()
	unregT()

	if m.CanDragSource(s) {
		t.Error("unregistered source should not be draggable")
	}
	m.BeginDrag([]string{s}, "", 0, 0, 0, 0)
	if m.IsDragging() {
		t.Error("BeginDrag with an unregistered source should be a no-op")
	}
	if m.CanDropOnTarget(tid) {
		t.Error("unregistered target should not accept drops")
	}

	expected := []EventKind{EventSourceRegistered, EventTargetRegistered, EventSourceUnregistered, EventTargetUnregistered}
	if !reflect.DeepEqual(events, expected) {
		t.Errorf("events: expected %v, got %v", expected, events)
	}
}

func TestManager_UnregisterDraggingSourceCancels(t *testing.T) {
	var ended int
	m := NewManager()
	s, unreg := m.RegisterSource(DragSource{
		Type:      "NODE",
		CanCancel: func(*Manager) bool { return false },
		EndDrag:   func(*Manager) { ended++ },
	})

	m.BeginDrag([]string{s}, "", 0, 0, 0, 0)
	unreg()

	if m.Phase() != PhaseIdle {
		t.Errorf("Phase(): expected idle, got %s", m.Phase())
	}
	if !m.IsCancelled() {
		t.Error("IsCancelled(): expected true after removing the dragging source")
	}
	if ended != 1 {
		t.Errorf("EndDrag callback: expected exactly 1 call, got %d", ended)
	}
	unreg()
	if ended != 1 {
		t.Errorf("second unregister re-ran EndDrag (%d calls)", ended)
	}
}

func TestManager_SourceUnregistersItselfOnEnd(t *testing.T) {
	var ended int
	var unreg Unregister
	m := NewManager()
	var s string
	s, unreg = m.RegisterSource(DragSource{
		Type:    "NODE",
		EndDrag: func(*Manager) { ended++; unreg() },
	})

	m.BeginDrag([]string{s}, "", 0, 0, 0, 0)
	m.EndDrag()

	if ended != 1 {
		t.Errorf("EndDrag callback: expected 1 call, got %d", ended)
	}
	if m.IsCancelled() {
		t.Error("self-unregister during EndDrag must not mark the gesture cancelled")
	}
	if m.CanDragSource(s) {
		t.Error("source should be gone")
	}
}

func TestManager_GestureEndedInsideBeginDrag(t *testing.T) {
	testCases := []struct {
		name string
		end  func(m *Manager, unreg Unregister)
	}{
		{"unregister", func(m *Manager, unreg Unregister) { unreg() }},
		{"cancel", func(m *Manager, unreg Unregister) { m.Cancel() }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var kinds []EventKind
			m := NewManager(WithObserver(ObserverFunc(func(ev Event) {
				if ev.Kind == EventBeginDrag || ev.Kind == EventCancel || ev.Kind == EventEndDrag {
					kinds = append(kinds, ev.Kind)
				}
			})))
			var unreg Unregister
			var s string
			ended := 0
			s, unreg = m.RegisterSource(DragSource{
				Type: "NODE",
				BeginDrag: func(m *Manager) any {
					tc.end(m, unreg)
					return "payload"
				},
				EndDrag: func(*Manager) { ended++ },
			})

			m.BeginDrag([]string{s}, "move", 0, 0, 0, 0)

			if m.Phase() != PhaseIdle {
				t.Errorf("Phase(): expected idle, got %s", m.Phase())
			}
			if m.GetItem() != nil || m.GetItemType() != "" || m.GetSourceID() != "" {
				t.Errorf("expected a cleared gesture, got item=%v type=%q source=%q", m.GetItem(), m.GetItemType(), m.GetSourceID())
			}
			if !m.IsCancelled() {
				t.Error("IsCancelled(): expected true")
			}
			if ended != 1 {
				t.Errorf("EndDrag callback: expected 1 call, got %d", ended)
			}
			want := []EventKind{EventBeginDrag, EventCancel, EventEndDrag}
			if !reflect.DeepEqual(kinds, want) {
				t.Errorf("events: expected %v, got %v", want, kinds)
			}
		})
	}
}

func TestManager_UnregisterHoveredTarget(t *testing.T) {
	m := NewManager()
	s, _ := m.RegisterSource(DragSource{Type: "NODE"})
	a, unregA := m.RegisterTarget(DropTarget{Accept: Accept("NODE"), HitTest: band(0, 10), Drop: func(*Manager) any { return "a" }})
	b, _ := m.RegisterTarget(DropTarget{Accept: Accept("NODE"), HitTest: band(0, 10), Drop: func(*Manager) any { return "b" }})

	m.BeginDrag([]string{s}, "", 5, 5, 5, 5)
	m.Drag(5, 5, 5, 5)
	unregA()

	if m.Phase() != PhaseDragging {
		t.Fatalf("unregistering a target must not end the drag, phase=%s", m.Phase())
	}
	m.Drag(6, 5, 6, 5)
	if got := m.GetTargetIDs(); !reflect.DeepEqual(got, []string{b}) {
		t.Errorf("after recomputation expected %v, got %v (removed %s)", []string{b}, got, a)
	}
	m.Drop()
	if m.GetDropResult() != "b" {
		t.Errorf("GetDropResult(): expected %q, got %v", "b", m.GetDropResult())
	}
}

func TestManager_OperationFromModifiers(t *testing.T) {
	m := NewManager()
	s, _ := m.RegisterSource(DragSource{
		Type:      "NODE",
		Operation: Operation{0: "move", ModCtrl: "copy", ModCtrl | ModShift: "link"},
	})
	plain, _ := m.RegisterSource(DragSource{Type: "NODE"})

	m.SetModifiers(ModCtrl)
	m.BeginDrag([]string{s}, "ignored", 0, 0, 0, 0)
	if got := m.GetOperation(); got != "copy" {
		t.Errorf("GetOperation() with Ctrl: expected %q, got %q", "copy", got)
	}

	m.SetModifiers(ModCtrl | ModShift)
	if got := m.GetOperation(); got != "link" {
		t.Errorf("GetOperation() after Ctrl+Shift mid-drag: expected %q, got %q", "link", got)
	}
	m.SetModifiers(0)
	if got := m.GetOperation(); got != "move" {
		t.Errorf("GetOperation() after release: expected %q, got %q", "move", got)
	}
	m.EndDrag()

	m.SetModifiers(ModCtrl)
	m.BeginDrag([]string{plain}, "move", 0, 0, 0, 0)
	if got := m.GetOperation(); got != "move" {
		t.Errorf("source without table: expected caller operation %q, got %q", "move", got)
	}
}

func TestManager_ObserverSeesGesture(t *testing.T) {
	var events []Event
	m := NewManager(WithObserver(ObserverFunc(func(ev Event) { events = append(events, ev) })))
	s, _ := m.RegisterSource(DragSource{Type: "NODE"})
	tgt, _ := m.RegisterTarget(DropTarget{Accept: Accept("NODE"), HitTest: band(0, 10), Drop: func(*Manager) any { return "ok" }})
	events = nil

	m.BeginDrag([]string{s}, "move", 5, 5, 5, 5)
	m.Drag(5, 5, 5, 5)
	m.Drop()
	m.EndDrag()

	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d: %+v", len(events), events)
	}
	if events[0].Kind != EventBeginDrag || events[0].SourceID != s {
		t.Errorf("first event: %+v", events[0])
	}
	if events[1].Kind != EventDrop || events[1].TargetID != tgt || events[1].DropResult != "ok" {
		t.Errorf("second event: %+v", events[1])
	}
	if events[2].Kind != EventEndDrag || !events[2].DidDrop || events[2].Operation != "move" {
		t.Errorf("third event: %+v", events[2])
	}
}

func TestPhase_String(t *testing.T) {
	testCases := []struct {
		phase    Phase
		expected string
	}{
		{PhaseIdle, "idle"},
		{PhaseDragging, "dragging"},
		{PhaseDropped, "dropped"},
		{PhaseCancelled, "cancelled"},
		{Phase(99), "idle"},
	}
	for _, tc := range testCases {
		if got := tc.phase.String(); got != tc.expected {
			t.Errorf("Phase(%d).String(): expected %q, got %q", tc.phase, tc.expected, got)
		}
	}
}
