package dnd

import "image"

// Element is a connectable region in subject space.
type Element interface {
	Contains(x, y float64) bool
}

// Rect is an axis-aligned rectangle. The left and top edges are inside,
// the right and bottom edges are not, so adjacent tiles never overlap.
type Rect struct {
	X, Y, Width, Height float64
}

// RectFrom converts an image.Rectangle.
func RectFrom(r image.Rectangle) Rect {
	return Rect{
		X:      float64(r.Min.X),
		Y:      float64(r.Min.Y),
		Width:  float64(r.Dx()),
		Height: float64(r.Dy()),
	}
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Circle is a circular region.
type Circle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c Circle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// DragElementWrapper binds an element to a handler. Passing nil unbinds.
// Binding again replaces the element; repeated calls with the same element
// change nothing.
type DragElementWrapper func(el Element)

type (
	ConnectDragSource = DragElementWrapper
	ConnectDropTarget = DragElementWrapper
)

// Surface tracks which element each handler is connected to. The gesture
// driver asks it which sources lie under the pointer, and targets without
// their own hit test use their element.
type Surface struct {
	sources     map[string]Element
	sourceOrder []string
	targets     map[string]Element
}

// NewSurface creates an empty surface.
func NewSurface() *Surface {
	return &Surface{
		sources: make(map[string]Element),
		targets: make(map[string]Element),
	}
}

// ConnectDragSource returns the connector for source id.
func (s *Surface) ConnectDragSource(id string) ConnectDragSource {
	return func(el Element) {
		if el == nil {
			s.disconnectSource(id)
			return
		}
		if _, ok := s.sources[id]; !ok {
			s.sourceOrder = append(s.sourceOrder, id)
		}
		s.sources[id] = el
	}
}

// ConnectDropTarget returns the connector for target id.
func (s *Surface) ConnectDropTarget(id string) ConnectDropTarget {
	return func(el Element) {
		if el == nil {
			delete(s.targets, id)
			return
		}
		s.targets[id] = el
	}
}

// Disconnect unbinds id whether it is a source or a target.
func (s *Surface) Disconnect(id string) {
	s.disconnectSource(id)
	delete(s.targets, id)
}

func (s *Surface) disconnectSource(id string) {
	if _, ok := s.sources[id]; !ok {
		return
	}
	delete(s.sources, id)
	for i, sid := range s.sourceOrder {
		if sid == id {
			s.sourceOrder = append(s.sourceOrder[:i], s.sourceOrder[i+1:]...)
			break
		}
	}
}

// SourceIDsAt returns the connected sources containing (x, y), most
// recently connected first.
func (s *Surface) SourceIDsAt(x, y float64) []string {
	var ids []string
	for i := len(s.sourceOrder) - 1; i >= 0; i-- {
		id := s.sourceOrder[i]
		if s.sources[id].Contains(x, y) {
			ids = append(ids, id)
		}
	}
	return ids
}

// SourceElement returns the element connected to source id.
func (s *Surface) SourceElement(id string) (Element, bool) {
	el, ok := s.sources[id]
	return el, ok
}

// TargetElement returns the element connected to target id.
func (s *Surface) TargetElement(id string) (Element, bool) {
	el, ok := s.targets[id]
	return el, ok
}

// HitTarget returns a hit test that follows whatever element is connected
// to target id at call time. Unconnected targets are never hit.
func (s *Surface) HitTarget(id *string) func(x, y float64) bool {
	return func(x, y float64) bool {
		el, ok := s.targets[*id]
		return ok && el.Contains(x, y)
	}
}
