package dnd

// EventKind identifies a manager notification.
type EventKind int

const (
	EventSourceRegistered EventKind = iota
	EventSourceUnregistered
	EventTargetRegistered
	EventTargetUnregistered
	EventBeginDrag
	EventDrop
	EventCancel
	EventEndDrag
)

func (k EventKind) String() string {
	switch k {
	case EventSourceRegistered:
		return "source_registered"
	case EventSourceUnregistered:
		return "source_unregistered"
	case EventTargetRegistered:
		return "target_registered"
	case EventTargetUnregistered:
		return "target_unregistered"
	case EventBeginDrag:
		return "begin_drag"
	case EventDrop:
		return "drop"
	case EventCancel:
		return "cancel"
	case EventEndDrag:
		return "end_drag"
	default:
		return "unknown"
	}
}

// Event describes a registration change or a gesture transition.
// HandlerID is set for registration events; TargetID for drops.
type Event struct {
	Kind       EventKind
	HandlerID  string
	SourceID   string
	TargetID   string
	ItemType   Identifier
	Operation  string
	DropResult any
	DidDrop    bool
	Cancelled  bool
}

// Observer is notified after each transition. Observers run synchronously
// on the caller's goroutine and must not call mutating Manager methods.
type Observer interface {
	Observe(ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev Event)

// Observe calls f(ev).
func (f ObserverFunc) Observe(ev Event) { f(ev) }

// Option configures a Manager.
type Option func(*Manager)

// WithObserver adds an observer. May be given several times.
func WithObserver(o Observer) Option {
	return func(m *Manager) {
		if o != nil {
			m.observers = append(m.observers, o)
		}
	}
}
