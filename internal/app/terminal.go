package app

import (
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/justyntemme/dragboard/internal/config"
	"github.com/justyntemme/dragboard/internal/debug"
	"github.com/justyntemme/dragboard/internal/dnd"
	"github.com/justyntemme/dragboard/internal/input"
)

// Terminal tile geometry, in cells
const (
	termTileW = 16
	termTileH = 3
)

// cellTile is where a tile was drawn in the last frame
type cellTile struct {
	rect  dnd.Rect
	path  string
	isDir bool
}

// Terminal runs the board on a tcell screen. Folders open on click, tiles
// drag with the left button, Esc cancels, r or F5 refreshes, Backspace goes
// up and q quits.
type Terminal struct {
	screen  tcell.Screen
	session *Session
	driver  *input.TerminalDriver

	cells []cellTile

	pressed        bool
	dragged        bool
	pressX, pressY int
}

// NewTerminal prepares a board for screen, which must already be
// initialised.
func NewTerminal(session *Session, screen tcell.Screen) *Terminal {
	cancel, _ := input.TerminalKey(config.ParseHotkey(session.Config().Keys.Cancel).Raw)
	return &Terminal{
		screen:  screen,
		session: session,
		// Cells are coarse: any move off the pressed cell starts a drag
		driver: input.NewTerminalDriver(session.NewTracker(input.WithDeadZone(1)), cancel),
	}
}

// Run shows startPath and processes events until the user quits.
func (t *Terminal) Run(startPath string) error {
	t.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	defer t.screen.DisableMouse()

	t.session.Start(func() {
		// Wake the event loop so it drains on its own goroutine
		t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer t.session.Close()
	t.session.Navigate(startPath)

	t.draw()
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !t.handleEvent(ev) {
			return nil
		}
		t.draw()
	}
}

// handleEvent applies ev and reports whether to keep running.
func (t *Terminal) handleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventInterrupt:
		t.session.Drain()
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		return t.handleKey(e)
	case *tcell.EventMouse:
		t.handleMouse(e)
	}
	return true
}

func (t *Terminal) handleKey(e *tcell.EventKey) bool {
	ctrlC := e.Key() == tcell.KeyCtrlC ||
		e.Key() == tcell.KeyRune && e.Rune() == 'c' && e.Modifiers()&tcell.ModCtrl != 0
	switch {
	case ctrlC, e.Key() == tcell.KeyRune && e.Rune() == 'q':
		return false
	case e.Key() == tcell.KeyF5, e.Key() == tcell.KeyRune && e.Rune() == 'r':
		t.session.Refresh()
	case e.Key() == tcell.KeyBackspace, e.Key() == tcell.KeyBackspace2:
		root := t.session.Board().Root()
		if parent := filepath.Dir(root); root != "" && parent != root {
			t.session.Navigate(parent)
		}
	default:
		t.driver.HandleEvent(e)
	}
	return true
}

func (t *Terminal) handleMouse(e *tcell.EventMouse) {
	x, y := e.Position()
	primary := e.Buttons()&tcell.Button1 != 0
	if t.driver.Tracker().Dragging() {
		t.dragged = true
	}

	t.driver.HandleEvent(e)

	switch {
	case primary && !t.pressed:
		t.pressed, t.dragged = true, false
		t.pressX, t.pressY = x, y
	case primary && t.driver.Tracker().Dragging():
		t.dragged = true
	case !primary && t.pressed:
		t.pressed = false
		// A release where the press happened, without a drag, is a click
		if !t.dragged && x == t.pressX && y == t.pressY {
			if c, ok := t.cellAt(x, y); ok && c.isDir {
				debug.Log(debug.APP, "Terminal: open %s", c.path)
				t.session.Navigate(c.path)
			}
		}
	}
}

func (t *Terminal) cellAt(x, y int) (cellTile, bool) {
	for _, c := range t.cells {
		if c.rect.Contains(float64(x), float64(y)) {
			return c, true
		}
	}
	return cellTile{}, false
}

func (t *Terminal) draw() {
	b := t.session.Board()
	m := b.Manager()
	s := t.screen

	s.Clear()
	w, h := s.Size()

	header := tcell.StyleDefault.Reverse(true)
	fillRow(s, 0, w, header)
	drawText(s, 1, 0, w-2, b.Root(), header)

	// Board area between the header and status rows
	bg := b.BackgroundState()
	b.ConnectBackground(dnd.Rect{X: 0, Y: 1, Width: float64(w), Height: float64(max(h-2, 0))})
	if bg.Over && bg.CanDrop {
		for row := 1; row < h-1; row++ {
			fillRow(s, row, w, tcell.StyleDefault.Background(tcell.ColorDarkGreen))
		}
	}

	// Trash strip above the status row; tiles stop above it
	bottom := h - 1
	if name := b.TrashName(); name != "" && h > 8 {
		bottom = h - 1 - termTileH
		rect := dnd.Rect{X: 1, Y: float64(bottom), Width: float64(w - 2), Height: termTileH}
		b.ConnectTrash(rect)

		st := b.TrashState()
		style := tcell.StyleDefault.Dim(true)
		if st.Over {
			style = tcell.StyleDefault.Foreground(tcell.ColorRed)
		}
		drawBox(s, 1, bottom, w-2, termTileH, style)
		drawText(s, 3, bottom+1, w-6, "Drop here to move to "+name, style)
	} else {
		b.ConnectTrash(nil)
	}

	cols := max((w-1)/(termTileW+1), 1)
	t.cells = t.cells[:0]
	for i, tile := range b.Tiles() {
		x := 1 + (i%cols)*(termTileW+1)
		y := 2 + (i/cols)*(termTileH+1)
		if y+termTileH > bottom {
			tile.Connect(nil)
			continue
		}
		rect := dnd.Rect{X: float64(x), Y: float64(y), Width: termTileW, Height: termTileH}
		tile.Connect(rect)
		t.cells = append(t.cells, cellTile{rect: rect, path: tile.Entry.Path, isDir: tile.Entry.IsDir})

		st := tile.State()
		style := tcell.StyleDefault
		if tile.Entry.IsDir {
			style = style.Foreground(tcell.ColorBlue).Bold(true)
		}
		switch {
		case st.Dragging:
			style = style.Reverse(true)
		case st.Over && st.CanDrop:
			style = style.Foreground(tcell.ColorGreen)
		case st.Over:
			style = style.Foreground(tcell.ColorRed)
		}
		drawBox(s, x, y, termTileW, termTileH, style)
		drawText(s, x+1, y+1, termTileW-2, tile.Entry.Name, style)
	}

	status := b.Status()
	if m.IsDragging() {
		name := ""
		if item, ok := m.GetItem().(Item); ok {
			name = filepath.Base(item.Path)
		}
		status = fmt.Sprintf("Dragging %s (%s), Esc cancels", name, m.GetOperation())
	}
	drawText(s, 0, h-1, w, status, tcell.StyleDefault.Dim(true))
	s.Show()
}

func fillRow(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

// drawText writes str from (x, y), cut to width cells
func drawText(s tcell.Screen, x, y, width int, str string, style tcell.Style) {
	runes := []rune(str)
	if len(runes) > width && width > 1 {
		runes = append(runes[:width-1], '…')
	}
	for i, r := range runes {
		if i >= width {
			break
		}
		s.SetContent(x+i, y, r, nil, style)
	}
}

func drawBox(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	for i := 1; i < w-1; i++ {
		s.SetContent(x+i, y, '─', nil, style)
		s.SetContent(x+i, y+h-1, '─', nil, style)
	}
	for j := 1; j < h-1; j++ {
		s.SetContent(x, y+j, '│', nil, style)
		s.SetContent(x+w-1, y+j, '│', nil, style)
		for i := 1; i < w-1; i++ {
			s.SetContent(x+i, y+j, ' ', nil, style)
		}
	}
	s.SetContent(x, y, '┌', nil, style)
	s.SetContent(x+w-1, y, '┐', nil, style)
	s.SetContent(x, y+h-1, '└', nil, style)
	s.SetContent(x+w-1, y+h-1, '┘', nil, style)
}
