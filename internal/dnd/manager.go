package dnd

import (
	"strconv"

	"github.com/justyntemme/dragboard/internal/debug"
)

// Manager is the single owner of drag-and-drop state.
//
// All methods run synchronously to completion. Methods called outside the
// phase they are valid in are no-ops; the state machine is always in one of
// the four phases.
type Manager struct {
	sources map[string]*DragSource
	targets map[string]*DropTarget

	// Registration order of live targets; hover results follow it.
	targetOrder []string

	nextSource int
	nextTarget int

	modifiers Modifiers

	phase      Phase
	sourceID   string
	targetIDs  []string
	itemType   Identifier
	item       any
	dropResult any
	didDrop    bool
	cancelled  bool
	event      *DragEvent
	operation  string

	// Operation passed to BeginDrag, used when re-resolving on
	// modifier changes.
	requestedOp string

	// Set while the source's EndDrag callback runs.
	ending bool

	observers []Observer
}

// NewManager creates an idle manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sources: make(map[string]*DragSource),
		targets: make(map[string]*DropTarget),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// --- Registration ---

// RegisterSource stores src under a fresh handler id.
//
// Unregistering the source while it is being dragged ends the gesture as a
// forced cancel: CanCancel is not consulted and the source's EndDrag still
// runs exactly once.
func (m *Manager) RegisterSource(src DragSource) (string, Unregister) {
	m.nextSource++
	id := "S" + strconv.Itoa(m.nextSource)
	s := src
	m.sources[id] = &s
	debug.Log(debug.DND, "RegisterSource: %s type=%q", id, src.Type)
	m.notify(Event{Kind: EventSourceRegistered, HandlerID: id, ItemType: src.Type})

	done := false
	return id, func() {
		if done {
			return
		}
		done = true
		m.removeSource(id)
	}
}

// RegisterTarget stores tgt under a fresh handler id. Unregistering a
// target never disturbs the gesture; its id leaves the hovered set on the
// next hover recomputation.
func (m *Manager) RegisterTarget(tgt DropTarget) (string, Unregister) {
	m.nextTarget++
	id := "T" + strconv.Itoa(m.nextTarget)
	t := tgt
	t.Accept = append(TargetType(nil), tgt.Accept...)
	m.targets[id] = &t
	m.targetOrder = append(m.targetOrder, id)
	debug.Log(debug.DND, "RegisterTarget: %s accept=%v", id, tgt.Accept)
	m.notify(Event{Kind: EventTargetRegistered, HandlerID: id})

	done := false
	return id, func() {
		if done {
			return
		}
		done = true
		m.removeTarget(id)
	}
}

func (m *Manager) removeSource(id string) {
	if _, ok := m.sources[id]; !ok {
		return
	}

	if id == m.sourceID && m.phase != PhaseIdle && !m.ending {
		debug.Log(debug.DND, "removeSource: %s is dragging, ending gesture", id)
		if m.phase == PhaseDragging {
			m.markCancelled()
		}
		m.EndDrag()
	}

	delete(m.sources, id)
	debug.Log(debug.DND, "removeSource: %s", id)
	m.notify(Event{Kind: EventSourceUnregistered, HandlerID: id})
}

func (m *Manager) removeTarget(id string) {
	if _, ok := m.targets[id]; !ok {
		return
	}
	delete(m.targets, id)
	for i, tid := range m.targetOrder {
		if tid == id {
			m.targetOrder = append(m.targetOrder[:i], m.targetOrder[i+1:]...)
			break
		}
	}
	debug.Log(debug.DND, "removeTarget: %s", id)
	m.notify(Event{Kind: EventTargetUnregistered, HandlerID: id})
}

// --- Queries ---

// CanDragSource reports whether id is registered, no gesture is active and
// the source's CanDrag allows it.
func (m *Manager) CanDragSource(id string) bool {
	src, ok := m.sources[id]
	if !ok || m.phase != PhaseIdle {
		return false
	}
	return src.CanDrag == nil || src.CanDrag(m)
}

// CanDropOnTarget reports whether a drag is active, id accepts the dragged
// item type and the target's CanDrop allows it.
func (m *Manager) CanDropOnTarget(id string) bool {
	tgt, ok := m.targets[id]
	if !ok || !m.IsDragging() {
		return false
	}
	if !tgt.Accept.Accepts(m.itemType) {
		return false
	}
	return tgt.CanDrop == nil || tgt.CanDrop(m)
}

// IsDragging reports whether a source is held, including the window
// between Drop and EndDrag.
func (m *Manager) IsDragging() bool {
	return m.phase != PhaseIdle
}

// IsDraggingSource reports whether id is the source being dragged.
func (m *Manager) IsDraggingSource(id string) bool {
	return m.IsDragging() && id != "" && id == m.sourceID
}

// IsOverTarget reports whether id is hovered. With shallow set only the
// innermost hovered target counts.
func (m *Manager) IsOverTarget(id string, shallow bool) bool {
	if !m.IsDragging() || id == "" || len(m.targetIDs) == 0 {
		return false
	}
	if shallow {
		return m.targetIDs[len(m.targetIDs)-1] == id
	}
	for _, tid := range m.targetIDs {
		if tid == id {
			return true
		}
	}
	return false
}

// IsCancelled reports whether the current or last gesture was cancelled.
func (m *Manager) IsCancelled() bool { return m.cancelled }

// GetItemType returns the dragged item type, or "" when idle.
func (m *Manager) GetItemType() Identifier { return m.itemType }

// GetItem returns the dragged item payload, or nil when idle.
func (m *Manager) GetItem() any { return m.item }

// GetSourceID returns the dragging source id, or "" when idle.
func (m *Manager) GetSourceID() string { return m.sourceID }

// GetTargetIDs returns a copy of the hovered target ids, outermost first.
func (m *Manager) GetTargetIDs() []string {
	if len(m.targetIDs) == 0 {
		return []string{}
	}
	ids := make([]string, len(m.targetIDs))
	copy(ids, m.targetIDs)
	return ids
}

// GetDropResult returns the drop result of the current or last gesture.
func (m *Manager) GetDropResult() any { return m.dropResult }

// DidDrop reports whether the current or last gesture dropped.
func (m *Manager) DidDrop() bool { return m.didDrop }

// GetDragEvent returns a copy of the drag geometry, or nil when idle.
func (m *Manager) GetDragEvent() *DragEvent {
	if m.event == nil {
		return nil
	}
	ev := *m.event
	return &ev
}

// GetOperation returns the resolved operation, or "" when idle.
func (m *Manager) GetOperation() string { return m.operation }

// Phase returns the current state machine phase.
func (m *Manager) Phase() Phase { return m.phase }

// Modifiers returns the modifier keys last reported by SetModifiers.
func (m *Manager) Modifiers() Modifiers { return m.modifiers }

// Snapshot returns a copy of the interaction state.
func (m *Manager) Snapshot() State {
	return State{
		Phase:      m.phase,
		IsDragging: m.IsDragging(),
		SourceID:   m.sourceID,
		TargetIDs:  m.GetTargetIDs(),
		ItemType:   m.itemType,
		Item:       m.item,
		DropResult: m.dropResult,
		DidDrop:    m.didDrop,
		Event:      m.GetDragEvent(),
		Operation:  m.operation,
		Cancelled:  m.cancelled,
	}
}

// --- Gesture lifecycle ---

// BeginDrag starts a gesture with the first id in sourceIDs that can be
// dragged. Nothing happens if a gesture is active or no id qualifies.
// operation is used unless the source's Operation table resolves one for
// the held modifiers.
func (m *Manager) BeginDrag(sourceIDs []string, operation string, x, y, pageX, pageY float64) {
	if m.phase != PhaseIdle {
		debug.Log(debug.DND, "BeginDrag: ignored, phase=%s", m.phase)
		return
	}

	var id string
	for _, candidate := range sourceIDs {
		if m.CanDragSource(candidate) {
			id = candidate
			break
		}
	}
	if id == "" {
		debug.Log(debug.DND, "BeginDrag: no draggable source in %v", sourceIDs)
		return
	}
	src := m.sources[id]

	m.reset()
	m.phase = PhaseDragging
	m.sourceID = id
	m.itemType = src.Type
	m.requestedOp = operation
	m.operation = m.resolveOperation(src)
	m.event = &DragEvent{
		InitialX:     x,
		InitialY:     y,
		X:            x,
		Y:            y,
		InitialPageX: pageX,
		InitialPageY: pageY,
		PageX:        pageX,
		PageY:        pageY,
	}
	debug.Log(debug.DND, "BeginDrag: source=%s type=%q op=%q at (%.1f,%.1f)", id, m.itemType, m.operation, x, y)
	m.notify(Event{Kind: EventBeginDrag, SourceID: id, ItemType: m.itemType, Operation: m.operation})

	if src.BeginDrag != nil {
		item := src.BeginDrag(m)
		// The callback may have ended the gesture by unregistering its
		// source or cancelling
		if m.phase != PhaseDragging || m.sourceID != id {
			debug.Log(debug.DND, "BeginDrag: gesture for %s ended inside its BeginDrag", id)
			return
		}
		m.item = item
	}
}

// Drag moves the gesture to (x, y), recomputes the hovered targets by hit
// testing and calls the hover and drag callbacks.
func (m *Manager) Drag(x, y, pageX, pageY float64) {
	if m.phase != PhaseDragging {
		debug.Log(debug.DND_HOVER, "Drag: ignored, phase=%s", m.phase)
		return
	}

	ev := m.event
	ev.DX = x - ev.X
	ev.DY = y - ev.Y
	ev.X, ev.Y = x, y
	ev.PageX, ev.PageY = pageX, pageY

	order := append([]string(nil), m.targetOrder...)
	var hit []string
	for _, id := range order {
		tgt, ok := m.targets[id]
		if !ok || tgt.HitTest == nil || !tgt.Accept.Accepts(m.itemType) {
			continue
		}
		if tgt.HitTest(x, y) {
			hit = append(hit, id)
		}
	}
	debug.Log(debug.DND_HOVER, "Drag: (%.1f,%.1f) hit=%v", x, y, hit)

	m.setHovered(hit)
	if m.phase != PhaseDragging {
		return
	}
	if src, ok := m.sources[m.sourceID]; ok && src.Drag != nil {
		src.Drag(m)
	}
}

// Hover replaces the hovered set with targetIDs, for hosts that hit-test
// themselves. Unknown and type-incompatible ids are dropped; the given
// order is kept.
func (m *Manager) Hover(targetIDs []string) {
	if m.phase != PhaseDragging {
		debug.Log(debug.DND_HOVER, "Hover: ignored, phase=%s", m.phase)
		return
	}

	seen := make(map[string]bool, len(targetIDs))
	ids := make([]string, 0, len(targetIDs))
	for _, id := range targetIDs {
		tgt, ok := m.targets[id]
		if !ok || seen[id] || !tgt.Accept.Accepts(m.itemType) {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	m.setHovered(ids)
}

func (m *Manager) setHovered(ids []string) {
	m.targetIDs = ids
	for _, id := range append([]string(nil), ids...) {
		if m.phase != PhaseDragging {
			return
		}
		if tgt, ok := m.targets[id]; ok && tgt.Hover != nil {
			tgt.Hover(m)
		}
	}
}

// Drop delivers the gesture to the innermost hovered target that can take
// it. Without such a target nothing happens.
func (m *Manager) Drop() {
	if m.phase != PhaseDragging {
		debug.Log(debug.DND, "Drop: ignored, phase=%s", m.phase)
		return
	}

	hovered := m.GetTargetIDs()
	for i := len(hovered) - 1; i >= 0; i-- {
		id := hovered[i]
		if !m.CanDropOnTarget(id) {
			continue
		}

		var result any
		if tgt := m.targets[id]; tgt.Drop != nil {
			result = tgt.Drop(m)
		}
		if m.phase != PhaseDragging {
			// the drop callback ended the gesture itself
			return
		}
		m.dropResult = result
		m.didDrop = true
		m.phase = PhaseDropped

		debug.Log(debug.DND, "Drop: source=%s target=%s op=%q", m.sourceID, id, m.operation)
		m.notify(Event{
			Kind:       EventDrop,
			SourceID:   m.sourceID,
			TargetID:   id,
			ItemType:   m.itemType,
			Operation:  m.operation,
			DropResult: result,
			DidDrop:    true,
		})
		return
	}
	debug.Log(debug.DND, "Drop: no eligible target in %v", m.targetIDs)
}

// EndDrag finishes the gesture: the source's EndDrag runs against the final
// state, then everything but the drop result, drop flag and cancel flag is
// cleared and the manager returns to idle.
func (m *Manager) EndDrag() {
	if m.phase == PhaseIdle || m.ending {
		debug.Log(debug.DND, "EndDrag: ignored, phase=%s", m.phase)
		return
	}

	m.ending = true
	if src, ok := m.sources[m.sourceID]; ok && src.EndDrag != nil {
		src.EndDrag(m)
	}
	m.ending = false

	ev := Event{
		Kind:       EventEndDrag,
		SourceID:   m.sourceID,
		ItemType:   m.itemType,
		Operation:  m.operation,
		DropResult: m.dropResult,
		DidDrop:    m.didDrop,
		Cancelled:  m.cancelled,
	}

	m.phase = PhaseIdle
	m.sourceID = ""
	m.targetIDs = nil
	m.itemType = ""
	m.item = nil
	m.event = nil
	m.operation = ""
	m.requestedOp = ""

	debug.Log(debug.DND, "EndDrag: source=%s didDrop=%v cancelled=%v", ev.SourceID, ev.DidDrop, ev.Cancelled)
	m.notify(ev)
}

// Cancel aborts the gesture if the source's CanCancel allows it and reports
// whether it did.
func (m *Manager) Cancel() bool {
	if m.phase != PhaseDragging {
		debug.Log(debug.DND, "Cancel: ignored, phase=%s", m.phase)
		return false
	}
	src, ok := m.sources[m.sourceID]
	if ok && src.CanCancel != nil && !src.CanCancel(m) {
		debug.Log(debug.DND, "Cancel: refused by source %s", m.sourceID)
		return false
	}
	if m.phase != PhaseDragging {
		return false
	}

	m.markCancelled()
	m.EndDrag()
	return true
}

// SetModifiers records the held modifier keys. During a drag the operation
// is re-resolved from the source's table.
func (m *Manager) SetModifiers(mods Modifiers) {
	if m.modifiers == mods {
		return
	}
	m.modifiers = mods
	if m.phase != PhaseDragging {
		return
	}
	if src, ok := m.sources[m.sourceID]; ok {
		if op := m.resolveOperation(src); op != m.operation {
			debug.Log(debug.DND, "SetModifiers: %s operation %q -> %q", mods, m.operation, op)
			m.operation = op
		}
	}
}

// --- Internal helpers ---

func (m *Manager) reset() {
	m.phase = PhaseIdle
	m.sourceID = ""
	m.targetIDs = nil
	m.itemType = ""
	m.item = nil
	m.dropResult = nil
	m.didDrop = false
	m.cancelled = false
	m.event = nil
	m.operation = ""
	m.requestedOp = ""
}

func (m *Manager) markCancelled() {
	m.cancelled = true
	m.didDrop = false
	m.dropResult = nil
	m.phase = PhaseCancelled
	m.notify(Event{
		Kind:      EventCancel,
		SourceID:  m.sourceID,
		ItemType:  m.itemType,
		Operation: m.operation,
		Cancelled: true,
	})
}

func (m *Manager) resolveOperation(src *DragSource) string {
	if src.Operation != nil {
		if op := src.Operation.Resolve(m.modifiers); op != "" {
			return op
		}
	}
	return m.requestedOp
}

func (m *Manager) notify(ev Event) {
	for _, o := range m.observers {
		o.Observe(ev)
	}
}
