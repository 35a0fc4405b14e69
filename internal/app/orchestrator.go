package app

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"

	"github.com/justyntemme/dragboard/internal/config"
	"github.com/justyntemme/dragboard/internal/debug"
	"github.com/justyntemme/dragboard/internal/input"
	"github.com/justyntemme/dragboard/internal/platform"
	"github.com/justyntemme/dragboard/internal/ui"
)

// Image tile previews
const (
	thumbCacheSize = 256
	thumbMaxPixels = 192
)

// Orchestrator runs the board in a Gio window.
type Orchestrator struct {
	window  *app.Window
	session *Session
	ui      *ui.Renderer
	driver  *input.GioDriver
	state   ui.State
}

func NewOrchestrator(session *Session) *Orchestrator {
	cfg := session.Config()

	r := ui.NewRenderer()
	r.TileSize = unit.Dp(cfg.Board.TileSize)
	r.Columns = cfg.Board.Columns
	r.SetDarkMode(cfg.Board.Theme == "dark")
	r.SetHotkeys(cfg.Keys)

	cancel := config.ParseHotkey(cfg.Keys.Cancel)
	return &Orchestrator{
		window:  new(app.Window),
		session: session,
		ui:      r,
		driver:  input.NewGioDriver(session.NewTracker(), cancel.Key, cancel.Modifiers),
	}
}

func (o *Orchestrator) Run(startPath string) error {
	debug.Log(debug.APP, "Orchestrator: starting at %q", startPath)
	o.window.Option(app.Title("dragboard"))

	o.session.Start(o.window.Invalidate)
	defer o.session.Close()
	o.ui.Thumbs = ui.NewThumbnails(thumbCacheSize, thumbMaxPixels, o.window.Invalidate)
	defer o.ui.Thumbs.Stop()
	platform.SetDropHandler(o.session.ExternalDrop)
	defer platform.SetDropHandler(nil)
	o.session.Navigate(startPath)

	var ops op.Ops
	for {
		switch e := o.window.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			o.session.Drain()

			gtx := app.NewContext(&ops, e)
			// Apply pending input first so this frame shows its result
			o.driver.Update(gtx)
			o.syncState()
			evt := o.ui.Layout(gtx, &o.state)
			o.driver.Layout(gtx)

			if o.handleUIEvent(evt) {
				return nil
			}
			e.Frame(gtx.Ops)
		}
	}
}

// syncState copies the board into the renderer's view. Connect funcs point
// back at the live tiles so the renderer can bind them where it draws.
func (o *Orchestrator) syncState() {
	b := o.session.Board()
	m := b.Manager()

	o.state.Root = b.Root()
	o.state.Status = b.Status()
	o.state.Tiles = o.state.Tiles[:0]
	for _, t := range b.Tiles() {
		st := t.State()
		o.state.Tiles = append(o.state.Tiles, ui.TileView{
			Name:     t.Entry.Name,
			Path:     t.Entry.Path,
			IsDir:    t.Entry.IsDir,
			Parent:   t.Parent,
			Size:     t.Entry.Size,
			ModTime:  t.Entry.ModTime,
			Dragging: st.Dragging,
			Over:     st.Over,
			CanDrop:  st.CanDrop,
			Connect:  t.Connect,
		})
	}

	bg := b.BackgroundState()
	o.state.BackgroundOver = bg.Over
	o.state.BackgroundCanDrop = bg.CanDrop
	o.state.ConnectBackground = b.ConnectBackground

	o.state.Trash = nil
	if name := b.TrashName(); name != "" {
		st := b.TrashState()
		o.state.Trash = &ui.TrashView{Label: name, Over: st.Over, CanDrop: st.CanDrop, Connect: b.ConnectTrash}
	}

	o.state.Drag = nil
	if ev := m.GetDragEvent(); ev != nil && m.IsDragging() {
		label := ""
		if item, ok := m.GetItem().(Item); ok {
			if t, ok := b.Tile(item.Path); ok {
				label = t.Entry.Name
			}
		}
		o.state.Drag = &ui.DragView{
			Label:     label,
			Operation: m.GetOperation(),
			X:         float32(ev.X),
			Y:         float32(ev.Y),
		}
	}
}

// handleUIEvent applies a renderer action and reports whether to quit.
func (o *Orchestrator) handleUIEvent(evt ui.UIEvent) bool {
	switch evt.Action {
	case ui.ActionNavigate:
		o.session.Navigate(evt.Path)
	case ui.ActionOpen:
		if err := platformOpen(evt.Path); err != nil {
			log.Printf("Open Error: %v", err)
			o.session.Board().SetStatus(fmt.Sprintf("Cannot open %s: %v", filepath.Base(evt.Path), err))
		}
	case ui.ActionRefresh:
		o.session.Refresh()
	case ui.ActionQuit:
		return true
	}
	return false
}

// Main runs the Gio board. It does not return.
func Main(session *Session, startPath string) {
	go func() {
		o := NewOrchestrator(session)
		if err := o.Run(startPath); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
