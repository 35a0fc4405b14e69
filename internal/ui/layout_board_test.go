package ui

import (
	"image"
	"testing"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"

	"github.com/justyntemme/dragboard/internal/dnd"
)

func TestGridColumns(t *testing.T) {
	testCases := []struct {
		width, size, gap, want int
		expected               int
	}{
		{800, 96, 12, 0, 7},
		{100, 96, 12, 0, 1},
		{10, 96, 12, 0, 1},
		{800, 96, 12, 3, 3},
	}
	for _, tc := range testCases {
		if got := gridColumns(tc.width, tc.size, tc.gap, tc.want); got != tc.expected {
			t.Errorf("gridColumns(%d, %d, %d, %d): expected %d, got %d", tc.width, tc.size, tc.gap, tc.want, tc.expected, got)
		}
	}
}

func TestGridRect(t *testing.T) {
	testCases := []struct {
		i        int
		expected image.Rectangle
	}{
		{0, image.Rect(10, 10, 50, 50)},
		{1, image.Rect(60, 10, 100, 50)},
		{3, image.Rect(10, 60, 50, 100)},
	}
	for _, tc := range testCases {
		if got := gridRect(tc.i, 3, 40, 10); got != tc.expected {
			t.Errorf("gridRect(%d): expected %v, got %v", tc.i, tc.expected, got)
		}
	}
}

func TestFormatSize(t *testing.T) {
	testCases := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1 << 20, "1.0 MB"},
	}
	for _, tc := range testCases {
		if got := formatSize(tc.bytes); got != tc.expected {
			t.Errorf("formatSize(%d): expected %q, got %q", tc.bytes, tc.expected, got)
		}
	}
}

func TestTileCaption(t *testing.T) {
	if got := tileCaption(&TileView{Parent: true, IsDir: true}); got != "parent" {
		t.Errorf("parent caption: got %q", got)
	}
	if got := tileCaption(&TileView{IsDir: true}); got != "folder" {
		t.Errorf("folder caption: got %q", got)
	}
	if got := tileCaption(&TileView{Size: 10}); got != "10 B" {
		t.Errorf("file caption: got %q", got)
	}
}

func TestLayout_ConnectsVisibleTiles(t *testing.T) {
	r := NewRenderer()
	r.TileSize = 100
	r.Columns = 2

	var bg dnd.Element
	connected := make(map[string]dnd.Element)
	connect := func(name string) func(dnd.Element) {
		return func(el dnd.Element) { connected[name] = el }
	}

	state := &State{
		Root:              "/r",
		ConnectBackground: func(el dnd.Element) { bg = el },
	}
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		state.Tiles = append(state.Tiles, TileView{Name: name, Path: "/r/" + name, Connect: connect(name)})
	}

	gtx := layout.Context{
		Ops:         new(op.Ops),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Constraints: layout.Exact(image.Pt(400, 360)),
	}
	if evt := r.Layout(gtx, state); evt.Action != ActionNone {
		t.Errorf("Layout without input: expected no action, got %v", evt.Action)
	}

	bgRect, ok := bg.(dnd.Rect)
	if !ok {
		t.Fatalf("background: expected a dnd.Rect, got %T", bg)
	}
	if bgRect.X != 0 || bgRect.Y <= 0 || bgRect.Width != 400 {
		t.Errorf("background rect: got %+v", bgRect)
	}

	a, ok := connected["a"].(dnd.Rect)
	if !ok {
		t.Fatalf("tile a: expected a dnd.Rect, got %T", connected["a"])
	}
	expected := dnd.Rect{X: 12, Y: bgRect.Y + 12, Width: 100, Height: 100}
	if a != expected {
		t.Errorf("tile a: expected %+v, got %+v", expected, a)
	}
	b := connected["b"].(dnd.Rect)
	if b.X != 124 || b.Y != a.Y {
		t.Errorf("tile b: got %+v", b)
	}

	// Rows past the board's bottom edge are unbound
	if el, ok := connected["f"]; !ok || el != nil {
		t.Errorf("tile f: expected an explicit unbind, got %v (called=%v)", el, ok)
	}
}

func TestLayout_TrashStripBelowTiles(t *testing.T) {
	r := NewRenderer()
	r.TileSize = 100
	r.Columns = 2

	var bg, trash dnd.Element
	connected := make(map[string]dnd.Element)
	state := &State{
		Root:              "/r",
		ConnectBackground: func(el dnd.Element) { bg = el },
		Trash: &TrashView{
			Label:   "Trash",
			Connect: func(el dnd.Element) { trash = el },
		},
	}
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		name := name
		state.Tiles = append(state.Tiles, TileView{Name: name, Path: "/r/" + name, Connect: func(el dnd.Element) { connected[name] = el }})
	}

	gtx := layout.Context{
		Ops:         new(op.Ops),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Constraints: layout.Exact(image.Pt(400, 360)),
	}
	r.Layout(gtx, state)

	bgRect := bg.(dnd.Rect)
	strip, ok := trash.(dnd.Rect)
	if !ok {
		t.Fatalf("trash: expected a dnd.Rect, got %T", trash)
	}
	expected := dnd.Rect{X: 12, Y: bgRect.Y + bgRect.Height - 52, Width: 376, Height: 40}
	if strip != expected {
		t.Errorf("trash strip: expected %+v, got %+v", expected, strip)
	}

	if _, ok := connected["a"].(dnd.Rect); !ok {
		t.Errorf("tile a should be bound, got %v", connected["a"])
	}
	for name, el := range connected {
		if rect, ok := el.(dnd.Rect); ok && rect.Y+rect.Height > strip.Y {
			t.Errorf("tile %s overlaps the trash strip: %+v", name, rect)
		}
	}
}
