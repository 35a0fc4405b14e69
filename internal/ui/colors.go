package ui

import "image/color"

// Theme colors - these are variables so they can be modified for dark mode
var (
	colBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colText       = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	colSubtle     = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colTile       = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colTileBorder = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	colDirBlue    = color.NRGBA{R: 0, G: 0, B: 128, A: 255}
	colHeader     = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colAccent     = color.NRGBA{R: 66, G: 133, B: 244, A: 255}
	// Drag feedback
	colDropOK     = color.NRGBA{R: 40, G: 167, B: 69, A: 255}   // Hovered target accepts
	colDropNo     = color.NRGBA{R: 220, G: 53, B: 69, A: 255}   // Hovered target refuses
	colDropZoneBg = color.NRGBA{R: 40, G: 167, B: 69, A: 30}    // Background takes the drop
	colDropNoBg   = color.NRGBA{R: 220, G: 53, B: 69, A: 40}    // Trash armed
	colDragging   = color.NRGBA{R: 200, G: 220, B: 255, A: 255} // Source tile while dragged
	colGhost      = color.NRGBA{R: 66, G: 133, B: 244, A: 200}
	colGhostText  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

var lightPalette = [...]color.NRGBA{
	{R: 255, G: 255, B: 255, A: 255},
	{R: 0, G: 0, B: 0, A: 255},
	{R: 100, G: 100, B: 100, A: 255},
	{R: 245, G: 245, B: 245, A: 255},
	{R: 200, G: 200, B: 200, A: 255},
	{R: 0, G: 0, B: 128, A: 255},
	{R: 245, G: 245, B: 245, A: 255},
	{R: 200, G: 220, B: 255, A: 255},
}

var darkPalette = [...]color.NRGBA{
	{R: 30, G: 30, B: 30, A: 255},
	{R: 230, G: 230, B: 230, A: 255},
	{R: 150, G: 150, B: 150, A: 255},
	{R: 45, G: 45, B: 48, A: 255},
	{R: 70, G: 70, B: 70, A: 255},
	{R: 130, G: 170, B: 255, A: 255},
	{R: 37, G: 37, B: 38, A: 255},
	{R: 50, G: 70, B: 110, A: 255},
}

// applyTheme swaps the palette and updates the material theme
func (r *Renderer) applyTheme() {
	p := lightPalette
	if r.DarkMode {
		p = darkPalette
	}
	colBackground, colText, colSubtle, colTile = p[0], p[1], p[2], p[3]
	colTileBorder, colDirBlue, colHeader, colDragging = p[4], p[5], p[6], p[7]

	r.Theme.Palette.Bg = colBackground
	r.Theme.Palette.Fg = colText
	r.Theme.Palette.ContrastBg = colAccent
	r.Theme.Palette.ContrastFg = colGhostText
}
