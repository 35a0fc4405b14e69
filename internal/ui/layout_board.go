package ui

import (
	"image"
	"path/filepath"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/dragboard/internal/dnd"
)

// Board layout: a header with the shown directory, a grid of square tiles
// and a status line. Tiles are placed by hand so their window bounds are
// known when they are connected to the drag surface.

// gridColumns returns how many tiles of size px with gap px between them fit
// in width. want > 0 overrides the fit.
func gridColumns(width, size, gap, want int) int {
	if want > 0 {
		return want
	}
	cols := (width - gap) / (size + gap)
	if cols < 1 {
		cols = 1
	}
	return cols
}

// gridRect returns the bounds of tile i, relative to the grid's top-left
func gridRect(i, cols, size, gap int) image.Rectangle {
	col, row := i%cols, i/cols
	min := image.Pt(gap+col*(size+gap), gap+row*(size+gap))
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(size, size))}
}

func (r *Renderer) layoutHeader(gtx layout.Context, state *State, eventOut *UIEvent) layout.Dimensions {
	parent := filepath.Dir(state.Root)
	canUp := state.Root != "" && parent != state.Root

	if r.upBtn.Clicked(gtx) && canUp {
		*eventOut = UIEvent{Action: ActionNavigate, Path: parent}
	}
	if r.refreshBtn.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionRefresh}
	}

	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			fill(gtx, colHeader, gtx.Constraints.Min)
			return layout.Dimensions{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						if !canUp {
							gtx = gtx.Disabled()
						}
						return material.Button(r.Theme, &r.upBtn, "Up").Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(material.Button(r.Theme, &r.refreshBtn, "Refresh").Layout),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						lbl := material.Body1(r.Theme, state.Root)
						lbl.Color = colText
						lbl.MaxLines = 1
						return lbl.Layout(gtx)
					}),
				)
			})
		}),
	)
}

// layoutBoard draws the tiles and connects them, and the board itself as
// the background target, at their window bounds. origin is the board's
// top-left in window coordinates.
func (r *Renderer) layoutBoard(gtx layout.Context, state *State, origin image.Point, eventOut *UIEvent) layout.Dimensions {
	size := gtx.Constraints.Max
	tileSize := gtx.Dp(r.TileSize)
	gap := gtx.Dp(12)
	cols := gridColumns(size.X, tileSize, gap, r.Columns)

	if state.ConnectBackground != nil {
		state.ConnectBackground(dnd.RectFrom(image.Rectangle{Min: origin, Max: origin.Add(size)}))
	}
	if state.BackgroundOver && state.BackgroundCanDrop {
		fill(gtx, colDropZoneBg, size)
	}

	// Tiles stop above the trash strip
	tilesBottom := size.Y
	if state.Trash != nil {
		strip := image.Rect(gap, size.Y-gap-gtx.Dp(trashHeight), size.X-gap, size.Y-gap)
		tilesBottom = strip.Min.Y
		if state.Trash.Connect != nil {
			state.Trash.Connect(dnd.RectFrom(strip.Add(origin)))
		}
		r.layoutTrash(gtx, state.Trash, strip)
	}

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	for i := range state.Tiles {
		t := &state.Tiles[i]
		rect := gridRect(i, cols, tileSize, gap)
		if rect.Max.Y > tilesBottom {
			// Not visible: must not catch drops meant for the status line
			if t.Connect != nil {
				t.Connect(nil)
			}
			continue
		}
		if t.Connect != nil {
			t.Connect(dnd.RectFrom(rect.Add(origin)))
		}
		r.layoutTile(gtx, t, rect, eventOut)
	}
	return layout.Dimensions{Size: size}
}

func (r *Renderer) layoutTile(gtx layout.Context, t *TileView, rect image.Rectangle, eventOut *UIEvent) {
	defer op.Offset(rect.Min).Push(gtx.Ops).Pop()
	gtx.Constraints = layout.Exact(rect.Size())

	click := r.clickable(t.Path)
	for {
		c, ok := click.Update(gtx)
		if !ok {
			break
		}
		// Folders and files open on double click; ".." on a single one
		switch {
		case t.IsDir && (t.Parent || c.NumClicks >= 2):
			*eventOut = UIEvent{Action: ActionNavigate, Path: t.Path}
		case !t.IsDir && c.NumClicks >= 2:
			*eventOut = UIEvent{Action: ActionOpen, Path: t.Path}
		}
	}

	bg, border, width := colTile, colTileBorder, unit.Dp(1)
	if t.Dragging {
		bg = colDragging
	}
	switch {
	case t.Over && t.CanDrop:
		border, width = colDropOK, unit.Dp(3)
	case t.Over:
		border, width = colDropNo, unit.Dp(3)
	}

	click.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return widget.Border{Color: border, Width: width, CornerRadius: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			sz := gtx.Constraints.Min
			paint.FillShape(gtx.Ops, bg, clip.UniformRRect(image.Rectangle{Max: sz}, gtx.Dp(6)).Op(gtx.Ops))
			return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				children := []layout.FlexChild{
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						name := material.Body2(r.Theme, t.Name)
						name.Alignment = text.Middle
						name.MaxLines = 2
						name.Color = colText
						if t.IsDir {
							name.Color = colDirBlue
							name.Font.Weight = font.Bold
						}
						return name.Layout(gtx)
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						info := material.Caption(r.Theme, tileCaption(t))
						info.Alignment = text.Middle
						info.Color = colSubtle
						return info.Layout(gtx)
					}),
				}
				if thumb, ok := r.thumbFor(t); ok {
					children = append([]layout.FlexChild{layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						return widget.Image{Src: thumb, Fit: widget.Contain, Position: layout.Center}.Layout(gtx)
					})}, children...)
				}
				return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle, Spacing: layout.SpaceSides}.Layout(gtx, children...)
			})
		})
	})
}

// thumbFor returns the preview of an image tile, asking the loader for it
// when it is not cached yet.
func (r *Renderer) thumbFor(t *TileView) (paint.ImageOp, bool) {
	if r.Thumbs == nil || t.IsDir || !isImage(t.Path) {
		return paint.ImageOp{}, false
	}
	img, ok := r.Thumbs.Get(t.Path, t.ModTime)
	if !ok {
		r.Thumbs.Request(t.Path, t.ModTime)
	}
	return img, ok
}

const trashHeight = unit.Dp(40)

func (r *Renderer) layoutTrash(gtx layout.Context, t *TrashView, rect image.Rectangle) {
	defer op.Offset(rect.Min).Push(gtx.Ops).Pop()
	gtx.Constraints = layout.Exact(rect.Size())

	bg, border := colTile, colTileBorder
	switch {
	case t.Over && t.CanDrop:
		bg, border = colDropNoBg, colDropNo
	case t.Over:
		border = colDropNo
	}

	widget.Border{Color: border, Width: unit.Dp(1), CornerRadius: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		sz := gtx.Constraints.Min
		paint.FillShape(gtx.Ops, bg, clip.UniformRRect(image.Rectangle{Max: sz}, gtx.Dp(6)).Op(gtx.Ops))
		return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			lbl := material.Body2(r.Theme, "Drop here to move to "+t.Label)
			lbl.Color = colSubtle
			lbl.MaxLines = 1
			return lbl.Layout(gtx)
		})
	})
}

func tileCaption(t *TileView) string {
	switch {
	case t.Parent:
		return "parent"
	case t.IsDir:
		return "folder"
	default:
		return formatSize(t.Size)
	}
}

func (r *Renderer) layoutStatus(gtx layout.Context, state *State) layout.Dimensions {
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			fill(gtx, colHeader, gtx.Constraints.Min)
			return layout.Dimensions{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				lbl := material.Caption(r.Theme, state.Status)
				lbl.Color = colSubtle
				lbl.MaxLines = 1
				return lbl.Layout(gtx)
			})
		}),
	)
}

// layoutDragGhost draws the dragged item's label next to the pointer
func (r *Renderer) layoutDragGhost(gtx layout.Context, d *DragView) {
	pos := image.Pt(int(d.X)+gtx.Dp(12), int(d.Y)+gtx.Dp(12))
	defer op.Offset(pos).Push(gtx.Ops).Pop()
	gtx.Constraints.Min = image.Point{}

	label := d.Label
	if d.Operation != "" {
		label += " (" + d.Operation + ")"
	}
	layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			paint.FillShape(gtx.Ops, colGhost, clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, gtx.Dp(4)).Op(gtx.Ops))
			return layout.Dimensions{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body2(r.Theme, label)
				lbl.Color = colGhostText
				lbl.MaxLines = 1
				return lbl.Layout(gtx)
			})
		}),
	)
}
