// Package dnd implements a drag-and-drop interaction manager.
//
// Drag sources and drop targets register with a Manager and receive a
// handler id. A host input layer drives the gesture through BeginDrag, Drag,
// Hover, Drop, EndDrag and Cancel, and rendering code reads the interaction
// state through monitors bound to a handler id. The Manager is the only
// owner of mutable interaction state and is meant to be driven from a single
// goroutine (the UI event loop); it performs no locking.
package dnd

// Identifier classifies dragged items. Sources produce one type, targets
// accept a set of types.
type Identifier = string

// TargetType is the set of item types a drop target accepts.
type TargetType []Identifier

// Accepts reports whether t contains itemType.
func (t TargetType) Accepts(itemType Identifier) bool {
	for _, id := range t {
		if id == itemType {
			return true
		}
	}
	return false
}

// Accept builds a TargetType from one or more identifiers.
func Accept(types ...Identifier) TargetType {
	return TargetType(types)
}

// Unregister releases a registered source or target. Calling it more than
// once has no further effect.
type Unregister func()

// DragEvent is the geometry of the current drag. X/Y are in subject space
// (the coordinate space of the surface the targets live in), PageX/PageY in
// page (window) space. DX/DY are the delta from the previous drag step.
type DragEvent struct {
	InitialX float64
	InitialY float64
	X        float64
	Y        float64
	DX       float64
	DY       float64

	InitialPageX float64
	InitialPageY float64
	PageX        float64
	PageY        float64
}

// DragSource is the capability set of a draggable handler.
// Nil funcs fall back to: draggable, nil item, no-op callbacks, cancellable.
type DragSource struct {
	Type Identifier

	// Operation resolves the drag operation from held modifiers. When nil,
	// the operation passed to BeginDrag is used.
	Operation Operation

	CanDrag   func(m *Manager) bool
	BeginDrag func(m *Manager) any
	Drag      func(m *Manager)
	EndDrag   func(m *Manager)
	CanCancel func(m *Manager) bool
}

// DropTarget is the capability set of a drop handler.
// Nil funcs fall back to: droppable, no-op hover, nil drop result, never hit.
type DropTarget struct {
	Accept TargetType

	CanDrop func(m *Manager) bool
	Hover   func(m *Manager)
	Drop    func(m *Manager) any

	// HitTest must be a pure geometric predicate in subject space.
	HitTest func(x, y float64) bool
}

// Phase is the position of the manager in the gesture state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseDropped
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseDropped:
		return "dropped"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

// State is a copy of the interaction state. Snapshot returns one; mutating
// it has no effect on the manager.
type State struct {
	Phase      Phase
	IsDragging bool
	SourceID   string
	TargetIDs  []string
	ItemType   Identifier
	Item       any
	DropResult any
	DidDrop    bool
	Event      *DragEvent
	Operation  string
	Cancelled  bool
}
