package app

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/justyntemme/dragboard/internal/debug"
	"github.com/justyntemme/dragboard/internal/dnd"
	"github.com/justyntemme/dragboard/internal/fs"
	"github.com/justyntemme/dragboard/internal/metrics"
	"github.com/justyntemme/dragboard/internal/store"
)

// Item types carried by board tiles
const (
	TypeFile dnd.Identifier = "file"
	TypeDir  dnd.Identifier = "dir"

	// TypeExternal is journaled for files dropped on the window by another
	// program
	TypeExternal = "external"
)

// Item is the payload of a dragged tile
type Item struct {
	Path  string
	IsDir bool
}

// DragType implements dnd.DragObject
func (i Item) DragType() dnd.Identifier {
	if i.IsDir {
		return TypeDir
	}
	return TypeFile
}

// Placement is the drop result a folder hands back to the dragged tile
type Placement struct {
	Dir       string
	Operation string
}

// TileState is what a renderer needs to draw one tile
type TileState struct {
	Dragging bool // This tile is the dragged source
	Over     bool // Innermost hovered target
	CanDrop  bool // Over and the drop would be accepted
}

type (
	sourceHandle = dnd.DragSourceHandle[Item, Placement, bool, fs.Entry]
	targetHandle = dnd.DropTargetHandle[Item, Placement, TileState, string]
)

// Tile is one board entry with its drag handlers. Files only drag; folders
// drag and take drops. The parent tile only takes drops.
type Tile struct {
	Entry  fs.Entry
	Parent bool

	source *sourceHandle
	target *targetHandle
}

// Connect binds the tile's handlers to its on-screen element.
func (t *Tile) Connect(el dnd.Element) {
	if t.source != nil {
		t.source.Connect()(el)
	}
	if t.target != nil {
		t.target.Connect()(el)
	}
}

// State collects the tile's current drag state.
func (t *Tile) State() TileState {
	var st TileState
	if t.target != nil {
		st = t.target.Collect()
	}
	if t.source != nil {
		st.Dragging = t.source.Collect()
	}
	return st
}

// SourceID returns the tile's drag source id, or "" for the parent tile.
func (t *Tile) SourceID() string {
	if t.source == nil {
		return ""
	}
	return t.source.ID()
}

// TargetID returns the tile's drop target id, or "" for files.
func (t *Tile) TargetID() string {
	if t.target == nil {
		return ""
	}
	return t.target.ID()
}

func (t *Tile) unregister() {
	// Source first: removing a dragged tile cancels its gesture while the
	// folder it may hover is still registered.
	if t.source != nil {
		t.source.Unregister()
	}
	if t.target != nil {
		t.target.Unregister()
	}
}

// Effects carries the board's side effects to the workers that run them.
type Effects interface {
	Transfer(req fs.Request)
	Record(g store.Gesture)
}

// BoardOption configures a Board
type BoardOption func(*Board)

// WithOperations sets the modifier table every tile drags with.
func WithOperations(ops dnd.Operation) BoardOption {
	return func(b *Board) { b.operations = ops }
}

// WithMetrics counts applied transfers on c.
func WithMetrics(c *metrics.Collector) BoardOption {
	return func(b *Board) { b.metrics = c }
}

// WithTrash adds a drop target labelled name that sends items to the
// system trash.
func WithTrash(name string) BoardOption {
	return func(b *Board) { b.trashName = name }
}

// Board is the single owner of the shown directory, its tiles and their
// registrations. It drives the dnd manager and must only be used from the
// goroutine that feeds the manager input.
type Board struct {
	m       *dnd.Manager
	surface *dnd.Surface
	effects Effects
	metrics *metrics.Collector

	operations dnd.Operation

	root       string
	tiles      []*Tile
	byPath     map[string]*Tile
	parent     *Tile
	background *targetHandle
	trash      *targetHandle
	trashName  string

	gen     int64
	pending map[int64]store.Gesture
	status  string
}

// NewBoard returns an empty board. Call SetRoot to show a directory.
func NewBoard(m *dnd.Manager, surface *dnd.Surface, effects Effects, opts ...BoardOption) *Board {
	b := &Board{
		m:       m,
		surface: surface,
		effects: effects,
		byPath:  make(map[string]*Tile),
		pending: make(map[int64]store.Gesture),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Manager returns the driven manager.
func (b *Board) Manager() *dnd.Manager { return b.m }

// Surface returns the surface tiles connect to.
func (b *Board) Surface() *dnd.Surface { return b.surface }

// Root returns the shown directory.
func (b *Board) Root() string { return b.root }

// Status returns the last status line.
func (b *Board) Status() string { return b.status }

// SetStatus replaces the status line.
func (b *Board) SetStatus(s string) { b.status = s }

// Tiles returns the tiles in display order, parent tile first.
func (b *Board) Tiles() []*Tile {
	tiles := make([]*Tile, 0, len(b.tiles)+1)
	if b.parent != nil {
		tiles = append(tiles, b.parent)
	}
	return append(tiles, b.tiles...)
}

// Tile returns the tile showing path.
func (b *Board) Tile(path string) (*Tile, bool) {
	t, ok := b.byPath[path]
	return t, ok
}

// ConnectBackground binds the root drop target to the board's area.
func (b *Board) ConnectBackground(el dnd.Element) {
	if b.background != nil {
		b.background.Connect()(el)
	}
}

// BackgroundState collects the root target's drag state.
func (b *Board) BackgroundState() TileState {
	if b.background == nil {
		return TileState{}
	}
	return b.background.Collect()
}

// TrashName returns the trash target's label, or "" when the board has none.
func (b *Board) TrashName() string { return b.trashName }

// ConnectTrash binds the trash target to its on-screen element.
func (b *Board) ConnectTrash(el dnd.Element) {
	if b.trash != nil {
		b.trash.Connect()(el)
	}
}

// TrashState collects the trash target's drag state.
func (b *Board) TrashState() TileState {
	if b.trash == nil {
		return TileState{}
	}
	return b.trash.Collect()
}

// SetRoot shows root with entries. Changing the root drops every
// registration, a running gesture included.
func (b *Board) SetRoot(root string, entries []fs.Entry) {
	root = filepath.Clean(root)
	if root == b.root && b.background != nil {
		b.Rebuild(entries)
		return
	}
	debug.Log(debug.APP, "Board.SetRoot: %s", root)

	b.clear()
	b.root = root

	// Registered before any tile so tiles are always the inner targets
	b.background = b.registerTarget(root)
	if b.trashName != "" {
		b.trash = b.registerTrash()
	}
	if parent := filepath.Dir(root); parent != root {
		b.parent = &Tile{
			Entry:  fs.Entry{Name: "..", Path: parent, IsDir: true},
			Parent: true,
			target: b.registerTarget(parent),
		}
	}
	b.Rebuild(entries)
}

// Rebuild replaces the shown entries. Tiles whose path and kind survive
// keep their handler ids; removed tiles are unregistered, which cancels a
// gesture that was dragging one of them.
func (b *Board) Rebuild(entries []fs.Entry) {
	keep := make(map[string]bool, len(entries))
	for _, e := range entries {
		if t, ok := b.byPath[e.Path]; ok && t.Entry.IsDir == e.IsDir {
			keep[e.Path] = true
		}
	}

	for _, t := range b.tiles {
		if !keep[t.Entry.Path] {
			debug.Log(debug.APP, "Board.Rebuild: removing %s", t.Entry.Path)
			t.unregister()
			delete(b.byPath, t.Entry.Path)
		}
	}

	tiles := make([]*Tile, 0, len(entries))
	for _, e := range entries {
		if t, ok := b.byPath[e.Path]; ok {
			t.Entry = e
			t.source.SetProps(e)
			tiles = append(tiles, t)
			continue
		}
		t := b.newTile(e)
		b.byPath[e.Path] = t
		tiles = append(tiles, t)
	}
	b.tiles = tiles
	debug.Log(debug.APP, "Board.Rebuild: %d tiles in %s", len(tiles), b.root)
}

// Close unregisters everything.
func (b *Board) Close() {
	b.clear()
	b.root = ""
}

func (b *Board) clear() {
	for _, t := range b.tiles {
		t.unregister()
	}
	b.tiles = nil
	b.byPath = make(map[string]*Tile)
	if b.parent != nil {
		b.parent.unregister()
		b.parent = nil
	}
	if b.trash != nil {
		b.trash.Unregister()
		b.trash = nil
	}
	if b.background != nil {
		b.background.Unregister()
		b.background = nil
	}
}

func (b *Board) newTile(e fs.Entry) *Tile {
	t := &Tile{Entry: e}
	item := Item{Path: e.Path, IsDir: e.IsDir}

	t.source = dnd.UseDragSource(b.m, b.surface, dnd.DragSourceSpec[Item, Placement, bool, fs.Entry]{
		Item:      item,
		Operation: b.operations,
		Collect: func(m *dnd.DragSourceMonitor, _ fs.Entry) bool {
			return m.IsDragging()
		},
		End: func(result Placement, ok bool, m *dnd.DragSourceMonitor, e fs.Entry) {
			b.endGesture(e, result, ok, m)
		},
	}, e)

	if e.IsDir {
		t.target = b.registerTarget(e.Path)
	}
	return t
}

func (b *Board) registerTarget(dir string) *targetHandle {
	return dnd.UseDropTarget(b.m, b.surface, dnd.DropTargetSpec[Item, Placement, TileState, string]{
		Accept: dnd.Accept(TypeFile, TypeDir),
		// Only the innermost hovered target takes drops: a tile that refuses
		// must not hand the drop on to the background behind it.
		CanDrop: func(item Item, m *dnd.DropTargetMonitor, dir string) bool {
			return m.IsOver(true) && fs.CheckTransfer(item.Path, dir, m.GetOperation()) == nil
		},
		Drop: func(_ Item, m *dnd.DropTargetMonitor, dir string) Placement {
			return Placement{Dir: dir, Operation: m.GetOperation()}
		},
		Collect: func(m *dnd.DropTargetMonitor, _ string) TileState {
			over := m.IsOver(true)
			return TileState{Over: over, CanDrop: over && m.CanDrop()}
		},
	}, dir)
}

// registerTrash registers the trash target. It takes any tile; whether the
// system trash works is only known once the worker tries.
func (b *Board) registerTrash() *targetHandle {
	return dnd.UseDropTarget(b.m, b.surface, dnd.DropTargetSpec[Item, Placement, TileState, string]{
		Accept: dnd.Accept(TypeFile, TypeDir),
		CanDrop: func(_ Item, m *dnd.DropTargetMonitor, _ string) bool {
			return m.IsOver(true)
		},
		Drop: func(Item, *dnd.DropTargetMonitor, string) Placement {
			return Placement{Operation: fs.OpTrash}
		},
		Collect: func(m *dnd.DropTargetMonitor, _ string) TileState {
			over := m.IsOver(true)
			return TileState{Over: over, CanDrop: over && m.CanDrop()}
		},
	}, b.trashName)
}

// endGesture runs inside the manager's EndDrag; it only queues effects.
func (b *Board) endGesture(e fs.Entry, result Placement, ok bool, m *dnd.DragSourceMonitor) {
	g := store.Gesture{
		Source:    e.Path,
		ItemType:  string(m.GetItemType()),
		Operation: m.GetOperation(),
	}

	if !ok {
		g.Outcome = store.OutcomeEnded
		b.status = fmt.Sprintf("%s: no drop", e.Name)
		if m.IsCancelled() {
			g.Outcome = store.OutcomeCancelled
			b.status = fmt.Sprintf("%s: cancelled", e.Name)
		}
		b.record(g)
		return
	}

	g.Target = result.Dir
	g.Operation = result.Operation
	b.startTransfer(g)
	b.status = fmt.Sprintf("%s %s...", progressVerb(result.Operation), e.Name)
}

// Import copies paths dropped on the window from outside into the shown
// directory. Paths that cannot go there are journaled as failed.
func (b *Board) Import(paths []string) {
	if b.root == "" || len(paths) == 0 {
		return
	}

	started, last := 0, ""
	for _, p := range paths {
		g := store.Gesture{Source: p, Target: b.root, ItemType: TypeExternal, Operation: fs.OpCopy}
		if err := fs.CheckTransfer(p, b.root, fs.OpCopy); err != nil {
			g.Outcome = store.OutcomeFailed
			g.Error = err.Error()
			b.status = fmt.Sprintf("%s: %v", filepath.Base(p), err)
			b.record(g)
			continue
		}
		b.startTransfer(g)
		started++
		last = filepath.Base(p)
	}

	switch {
	case started == 1:
		b.status = fmt.Sprintf("Copying %s...", last)
	case started > 1:
		b.status = fmt.Sprintf("Copying %d items...", started)
	}
}

// startTransfer hands g's transfer to the fs worker and remembers it until
// TransferDone.
func (b *Board) startTransfer(g store.Gesture) {
	b.gen++
	b.pending[b.gen] = g
	debug.Log(debug.APP, "Board: transfer %d %s %q -> %q", b.gen, g.Operation, g.Source, g.Target)

	if b.effects != nil {
		b.effects.Transfer(fs.Request{
			Op:        fs.TransferItem,
			Path:      g.Source,
			Dest:      g.Target,
			Operation: g.Operation,
			Gen:       b.gen,
		})
	}
}

// TransferDone applies the worker's answer to a transfer the board asked
// for. It reports whether the response belonged to this board.
func (b *Board) TransferDone(resp fs.Response) bool {
	g, ok := b.pending[resp.Gen]
	if !ok || resp.Op != fs.TransferItem {
		return false
	}
	delete(b.pending, resp.Gen)

	b.metrics.RecordTransfer(g.Operation, resp.Err)
	name := filepath.Base(g.Source)
	if resp.Err != nil {
		g.Outcome = store.OutcomeFailed
		g.Error = resp.Err.Error()
		b.status = fmt.Sprintf("%s failed: %v", name, resp.Err)
		if errors.Is(resp.Err, fs.ErrSameLocation) || errors.Is(resp.Err, fs.ErrIntoSelf) {
			b.status = fmt.Sprintf("%s: %v", name, resp.Err)
		}
	} else {
		g.Outcome = store.OutcomeDropped
		b.status = fmt.Sprintf("%s %s to %s", pastVerb(g.Operation), name, g.Target)
		if g.Operation == fs.OpTrash {
			b.status = fmt.Sprintf("Moved %s to %s", name, b.trashName)
		}
	}
	b.record(g)
	return true
}

// Pending reports how many transfers are still running.
func (b *Board) Pending() int { return len(b.pending) }

func (b *Board) record(g store.Gesture) {
	debug.Log(debug.APP, "Board: gesture %s %q -> %q: %s", g.Operation, g.Source, g.Target, g.Outcome)
	if b.effects != nil {
		b.effects.Record(g)
	}
}

func progressVerb(op string) string {
	switch op {
	case fs.OpMove:
		return "Moving"
	case fs.OpCopy:
		return "Copying"
	case fs.OpLink:
		return "Linking"
	case fs.OpTrash:
		return "Trashing"
	default:
		return op
	}
}

func pastVerb(op string) string {
	switch op {
	case fs.OpMove:
		return "Moved"
	case fs.OpCopy:
		return "Copied"
	case fs.OpLink:
		return "Linked"
	default:
		return op
	}
}
