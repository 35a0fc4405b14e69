package dnd

// DragObject is an item that knows its own type.
type DragObject interface {
	DragType() Identifier
}

// DragSourceSpec describes a drag source declaratively. D is the item, R the
// drop result the source expects back, C what Collect produces for
// rendering, P the props of the owning component.
type DragSourceSpec[D DragObject, R, C, P any] struct {
	Item      D
	Operation Operation

	// Begin may return a payload replacing Item for this gesture.
	Begin func(m *DragSourceMonitor, props P) any
	Drag  func(ev DragEvent, m *DragSourceMonitor, props P)
	// End receives the drop result; ok is false when the gesture produced
	// no result of type R.
	End       func(result R, ok bool, m *DragSourceMonitor, props P)
	CanDrag   func(m *DragSourceMonitor, props P) bool
	Collect   func(m *DragSourceMonitor, props P) C
	CanCancel func(m *DragSourceMonitor, props P) bool
}

// DropTargetSpec describes a drop target declaratively. Without HitTest the
// target is hit-tested against its connected element.
type DropTargetSpec[D, R, C, P any] struct {
	Accept  TargetType
	HitTest func(x, y float64, props P) bool
	Drop    func(item D, m *DropTargetMonitor, props P) R
	Hover   func(item D, m *DropTargetMonitor, props P)
	CanDrop func(item D, m *DropTargetMonitor, props P) bool
	Collect func(m *DropTargetMonitor, props P) C
}

// DragSourceHandle is a registered DragSourceSpec.
type DragSourceHandle[D DragObject, R, C, P any] struct {
	monitor    *DragSourceMonitor
	surface    *Surface
	spec       DragSourceSpec[D, R, C, P]
	props      P
	unregister Unregister
}

// UseDragSource registers spec with m. surface may be nil when the host
// picks sources itself.
func UseDragSource[D DragObject, R, C, P any](m *Manager, surface *Surface, spec DragSourceSpec[D, R, C, P], props P) *DragSourceHandle[D, R, C, P] {
	h := &DragSourceHandle[D, R, C, P]{
		monitor: NewDragSourceMonitor(m, ""),
		surface: surface,
		spec:    spec,
		props:   props,
	}

	src := DragSource{
		Type:      spec.Item.DragType(),
		Operation: spec.Operation,
		BeginDrag: func(*Manager) any {
			if h.spec.Begin != nil {
				if item := h.spec.Begin(h.monitor, h.props); item != nil {
					return item
				}
			}
			return h.spec.Item
		},
	}
	if spec.CanDrag != nil {
		src.CanDrag = func(*Manager) bool { return h.spec.CanDrag(h.monitor, h.props) }
	}
	if spec.Drag != nil {
		src.Drag = func(m *Manager) {
			if ev := m.GetDragEvent(); ev != nil {
				h.spec.Drag(*ev, h.monitor, h.props)
			}
		}
	}
	if spec.End != nil {
		src.EndDrag = func(m *Manager) {
			result, ok := m.GetDropResult().(R)
			h.spec.End(result, ok && m.DidDrop(), h.monitor, h.props)
		}
	}
	if spec.CanCancel != nil {
		src.CanCancel = func(*Manager) bool { return h.spec.CanCancel(h.monitor, h.props) }
	}

	id, unregister := m.RegisterSource(src)
	h.monitor.ReceiveHandlerID(id)
	h.unregister = unregister
	return h
}

// ID returns the handler id.
func (h *DragSourceHandle[D, R, C, P]) ID() string { return h.monitor.HandlerID() }

// Monitor returns the bound monitor.
func (h *DragSourceHandle[D, R, C, P]) Monitor() *DragSourceMonitor { return h.monitor }

// SetProps replaces the props passed to the spec callbacks.
func (h *DragSourceHandle[D, R, C, P]) SetProps(props P) { h.props = props }

// Props returns the current props.
func (h *DragSourceHandle[D, R, C, P]) Props() P { return h.props }

// Collect runs the spec's Collect against the current state.
func (h *DragSourceHandle[D, R, C, P]) Collect() C {
	var zero C
	if h.spec.Collect == nil {
		return zero
	}
	return h.spec.Collect(h.monitor, h.props)
}

// Connect returns the element connector for this source.
func (h *DragSourceHandle[D, R, C, P]) Connect() ConnectDragSource {
	if h.surface == nil {
		return func(Element) {}
	}
	return h.surface.ConnectDragSource(h.ID())
}

// Unregister removes the source and its element binding. Safe to call
// twice.
func (h *DragSourceHandle[D, R, C, P]) Unregister() {
	if h.surface != nil {
		h.surface.Disconnect(h.ID())
	}
	h.unregister()
}

// DropTargetHandle is a registered DropTargetSpec.
type DropTargetHandle[D, R, C, P any] struct {
	id         string
	monitor    *DropTargetMonitor
	surface    *Surface
	spec       DropTargetSpec[D, R, C, P]
	props      P
	unregister Unregister
}

// UseDropTarget registers spec with m. surface must be non-nil when spec
// has no HitTest.
func UseDropTarget[D, R, C, P any](m *Manager, surface *Surface, spec DropTargetSpec[D, R, C, P], props P) *DropTargetHandle[D, R, C, P] {
	h := &DropTargetHandle[D, R, C, P]{
		monitor: NewDropTargetMonitor(m, ""),
		surface: surface,
		spec:    spec,
		props:   props,
	}

	tgt := DropTarget{Accept: spec.Accept}
	switch {
	case spec.HitTest != nil:
		tgt.HitTest = func(x, y float64) bool { return h.spec.HitTest(x, y, h.props) }
	case surface != nil:
		tgt.HitTest = surface.HitTarget(&h.id)
	}
	if spec.CanDrop != nil {
		tgt.CanDrop = func(m *Manager) bool {
			item, ok := m.GetItem().(D)
			return ok && h.spec.CanDrop(item, h.monitor, h.props)
		}
	}
	if spec.Hover != nil {
		tgt.Hover = func(m *Manager) {
			if item, ok := m.GetItem().(D); ok {
				h.spec.Hover(item, h.monitor, h.props)
			}
		}
	}
	if spec.Drop != nil {
		tgt.Drop = func(m *Manager) any {
			item, ok := m.GetItem().(D)
			if !ok {
				return nil
			}
			return h.spec.Drop(item, h.monitor, h.props)
		}
	}

	id, unregister := m.RegisterTarget(tgt)
	h.id = id
	h.monitor.ReceiveHandlerID(id)
	h.unregister = unregister
	return h
}

// ID returns the handler id.
func (h *DropTargetHandle[D, R, C, P]) ID() string { return h.id }

// Monitor returns the bound monitor.
func (h *DropTargetHandle[D, R, C, P]) Monitor() *DropTargetMonitor { return h.monitor }

// SetProps replaces the props passed to the spec callbacks.
func (h *DropTargetHandle[D, R, C, P]) SetProps(props P) { h.props = props }

// Props returns the current props.
func (h *DropTargetHandle[D, R, C, P]) Props() P { return h.props }

// Collect runs the spec's Collect against the current state.
func (h *DropTargetHandle[D, R, C, P]) Collect() C {
	var zero C
	if h.spec.Collect == nil {
		return zero
	}
	return h.spec.Collect(h.monitor, h.props)
}

// Connect returns the element connector for this target.
func (h *DropTargetHandle[D, R, C, P]) Connect() ConnectDropTarget {
	if h.surface == nil {
		return func(Element) {}
	}
	return h.surface.ConnectDropTarget(h.id)
}

// Unregister removes the target and its element binding. Safe to call
// twice.
func (h *DropTargetHandle[D, R, C, P]) Unregister() {
	if h.surface != nil {
		h.surface.Disconnect(h.id)
	}
	h.unregister()
}
