package dnd

// handlerBinding is the only state a monitor carries: which handler it
// speaks for.
type handlerBinding struct {
	m  *Manager
	id string
}

// ReceiveHandlerID binds the monitor to a handler id. An empty id unbinds.
func (h *handlerBinding) ReceiveHandlerID(id string) { h.id = id }

// HandlerID returns the bound handler id.
func (h *handlerBinding) HandlerID() string { return h.id }

// DragSourceMonitor is a read-only view of the manager for one source.
type DragSourceMonitor struct {
	handlerBinding
}

// NewDragSourceMonitor returns a monitor over m bound to id.
func NewDragSourceMonitor(m *Manager, id string) *DragSourceMonitor {
	return &DragSourceMonitor{handlerBinding{m: m, id: id}}
}

func (s *DragSourceMonitor) CanDrag() bool           { return s.m.CanDragSource(s.id) }
func (s *DragSourceMonitor) IsCancelled() bool       { return s.m.IsCancelled() }
func (s *DragSourceMonitor) IsDragging() bool        { return s.m.IsDraggingSource(s.id) }
func (s *DragSourceMonitor) GetItemType() Identifier { return s.m.GetItemType() }
func (s *DragSourceMonitor) GetItem() any            { return s.m.GetItem() }
func (s *DragSourceMonitor) GetDropResult() any      { return s.m.GetDropResult() }
func (s *DragSourceMonitor) DidDrop() bool           { return s.m.DidDrop() }
func (s *DragSourceMonitor) GetDragEvent() *DragEvent {
	return s.m.GetDragEvent()
}
func (s *DragSourceMonitor) GetOperation() string { return s.m.GetOperation() }

// DropTargetMonitor is a read-only view of the manager for one target.
type DropTargetMonitor struct {
	handlerBinding
}

// NewDropTargetMonitor returns a monitor over m bound to id.
func NewDropTargetMonitor(m *Manager, id string) *DropTargetMonitor {
	return &DropTargetMonitor{handlerBinding{m: m, id: id}}
}

func (t *DropTargetMonitor) CanDrop() bool     { return t.m.CanDropOnTarget(t.id) }
func (t *DropTargetMonitor) IsCancelled() bool { return t.m.IsCancelled() }

// IsDragging reports whether any source is being dragged.
func (t *DropTargetMonitor) IsDragging() bool { return t.m.IsDragging() }

// IsOver reports whether the bound target is hovered; shallow restricts it
// to the innermost hovered target.
func (t *DropTargetMonitor) IsOver(shallow bool) bool {
	return t.m.IsOverTarget(t.id, shallow)
}

func (t *DropTargetMonitor) GetItemType() Identifier { return t.m.GetItemType() }
func (t *DropTargetMonitor) GetItem() any            { return t.m.GetItem() }
func (t *DropTargetMonitor) GetDropResult() any      { return t.m.GetDropResult() }
func (t *DropTargetMonitor) DidDrop() bool           { return t.m.DidDrop() }
func (t *DropTargetMonitor) GetDragEvent() *DragEvent {
	return t.m.GetDragEvent()
}
func (t *DropTargetMonitor) GetOperation() string { return t.m.GetOperation() }
