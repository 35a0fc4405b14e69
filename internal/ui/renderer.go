package ui

import (
	"image"
	"time"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/dragboard/internal/config"
	"github.com/justyntemme/dragboard/internal/debug"
	"github.com/justyntemme/dragboard/internal/dnd"
)

type UIAction int

const (
	ActionNone UIAction = iota
	ActionNavigate
	ActionOpen // Open a file with its default application
	ActionRefresh
	ActionQuit
)

type UIEvent struct {
	Action UIAction
	Path   string
}

// TileView is one board tile as the renderer draws it
type TileView struct {
	Name    string
	Path    string
	IsDir   bool
	Parent  bool // ".." tile
	Size    int64
	ModTime time.Time

	Dragging bool
	Over     bool
	CanDrop  bool

	// Connect binds the tile's drag handlers to where it was drawn
	Connect func(el dnd.Element)
}

// DragView describes the gesture in flight, drawn under the pointer
type DragView struct {
	Label     string
	Operation string
	X, Y      float32
}

// TrashView is the drop strip along the board's bottom edge
type TrashView struct {
	Label   string
	Over    bool
	CanDrop bool
	Connect func(el dnd.Element)
}

type State struct {
	Root   string
	Status string
	Tiles  []TileView

	BackgroundOver    bool
	BackgroundCanDrop bool
	ConnectBackground func(el dnd.Element)

	Trash *TrashView // nil hides the trash strip

	Drag *DragView // nil while idle
}

type Renderer struct {
	Theme    *material.Theme
	DarkMode bool
	TileSize unit.Dp
	Columns  int         // 0 fits as many as the width allows
	Thumbs   *Thumbnails // nil draws image tiles without previews

	hotkeys    *config.HotkeyMatcher
	keyTag     struct{}
	focused    bool
	refreshBtn widget.Clickable
	upBtn      widget.Clickable

	clicks       map[string]*widget.Clickable
	headerHeight int
}

func NewRenderer() *Renderer {
	r := &Renderer{
		Theme:    material.NewTheme(),
		TileSize: 96,
		clicks:   make(map[string]*widget.Clickable),
	}
	r.applyTheme()
	return r
}

// SetHotkeys configures the keyboard shortcuts from config
func (r *Renderer) SetHotkeys(cfg config.KeysConfig) {
	r.hotkeys = config.NewHotkeyMatcher(cfg)
	debug.Log(debug.UI, "Hotkeys configured: Refresh=%s, Quit=%s", r.hotkeys.Refresh.String(), r.hotkeys.Quit.String())
}

func (r *Renderer) SetDarkMode(dark bool) {
	r.DarkMode = dark
	r.applyTheme()
}

// Layout draws the board and returns the action the user asked for.
func (r *Renderer) Layout(gtx layout.Context, state *State) UIEvent {
	var eventOut UIEvent

	event.Op(gtx.Ops, &r.keyTag)
	if !r.focused {
		gtx.Execute(key.FocusCmd{Tag: &r.keyTag})
		r.focused = true
	}
	if evt := r.processHotkeys(gtx); evt.Action != ActionNone {
		eventOut = evt
	}

	fill(gtx, colBackground, gtx.Constraints.Max)

	layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			dims := r.layoutHeader(gtx, state, &eventOut)
			r.headerHeight = dims.Size.Y
			return dims
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return r.layoutBoard(gtx, state, image.Pt(0, r.headerHeight), &eventOut)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.layoutStatus(gtx, state)
		}),
	)

	if state.Drag != nil {
		r.layoutDragGhost(gtx, state.Drag)
	}
	r.pruneClicks(state.Tiles)
	return eventOut
}

func (r *Renderer) processHotkeys(gtx layout.Context) UIEvent {
	if r.hotkeys == nil {
		return UIEvent{}
	}

	var filters []event.Filter
	for _, hk := range []config.Hotkey{r.hotkeys.Refresh, r.hotkeys.Quit} {
		if !hk.IsEmpty() {
			filters = append(filters, hk.Filter(&r.keyTag))
		}
	}

	var evt UIEvent
	for {
		e, ok := gtx.Event(filters...)
		if !ok {
			break
		}
		k, ok := e.(key.Event)
		if !ok || k.State != key.Press {
			continue
		}
		debug.Log(debug.UI, "Key pressed: name=%q mods=0x%x", k.Name, k.Modifiers)
		switch {
		case r.hotkeys.Refresh.Matches(k):
			evt = UIEvent{Action: ActionRefresh}
		case r.hotkeys.Quit.Matches(k):
			evt = UIEvent{Action: ActionQuit}
		}
	}
	return evt
}

func (r *Renderer) clickable(path string) *widget.Clickable {
	c, ok := r.clicks[path]
	if !ok {
		c = new(widget.Clickable)
		r.clicks[path] = c
	}
	return c
}

// pruneClicks forgets clickables of tiles that are gone
func (r *Renderer) pruneClicks(tiles []TileView) {
	if len(r.clicks) <= len(tiles) {
		return
	}
	live := make(map[string]bool, len(tiles))
	for _, t := range tiles {
		live[t.Path] = true
	}
	for path := range r.clicks {
		if !live[path] {
			delete(r.clicks, path)
		}
	}
}
