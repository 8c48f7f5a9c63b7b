// Package render is the software rasterizer for the board: a pure painter
// that draws scene elements, selection decorations, grid, rulers, minimap,
// and the laser trail onto an RGBA image. It has no toolkit dependency; the
// canvas widget feeds it a Frame and presents the result.
package render

import (
	"image/color"

	"chart-board/pkg/colorutil"
)

// Palette holds the per-theme colors of everything the renderer draws that
// is not an element's own stroke color.
type Palette struct {
	Background color.RGBA
	Grid       color.RGBA

	// Accent is used for selection borders, handles, and the viewport
	// rectangle in the minimap.
	Accent     color.RGBA
	HandleFill color.RGBA

	// BoxFill is the translucent interior of the rubber-band selection.
	BoxFill color.RGBA

	Laser color.RGBA

	// Position marker zones.
	Profit color.RGBA
	Loss   color.RGBA

	// DefaultStroke substitutes for unparseable element colors.
	DefaultStroke color.RGBA

	RulerBackground color.RGBA
	RulerLine       color.RGBA
	RulerText       color.RGBA

	MinimapBackground color.RGBA
	MinimapBorder     color.RGBA
	MinimapElement    color.RGBA
}

// DarkPalette returns the colors for the dark theme.
func DarkPalette() Palette {
	return Palette{
		Background:        color.RGBA{R: 18, G: 18, B: 18, A: 255},
		Grid:              color.RGBA{R: 255, G: 255, B: 255, A: 18},
		Accent:            color.RGBA{R: 77, G: 171, B: 247, A: 255},
		HandleFill:        color.RGBA{R: 32, G: 32, B: 32, A: 255},
		BoxFill:           color.RGBA{R: 77, G: 171, B: 247, A: 36},
		Laser:             color.RGBA{R: 255, G: 82, B: 82, A: 255},
		Profit:            color.RGBA{R: 46, G: 160, B: 67, A: 70},
		Loss:              color.RGBA{R: 229, G: 57, B: 53, A: 70},
		DefaultStroke:     colorutil.White,
		RulerBackground:   color.RGBA{R: 30, G: 30, B: 30, A: 235},
		RulerLine:         color.RGBA{R: 120, G: 120, B: 120, A: 255},
		RulerText:         color.RGBA{R: 160, G: 160, B: 160, A: 255},
		MinimapBackground: color.RGBA{R: 28, G: 28, B: 28, A: 225},
		MinimapBorder:     color.RGBA{R: 90, G: 90, B: 90, A: 255},
		MinimapElement:    color.RGBA{R: 140, G: 140, B: 140, A: 255},
	}
}

// LightPalette returns the colors for the light theme.
func LightPalette() Palette {
	return Palette{
		Background:        color.RGBA{R: 250, G: 250, B: 250, A: 255},
		Grid:              color.RGBA{R: 0, G: 0, B: 0, A: 18},
		Accent:            color.RGBA{R: 25, G: 113, B: 194, A: 255},
		HandleFill:        colorutil.White,
		BoxFill:           color.RGBA{R: 25, G: 113, B: 194, A: 36},
		Laser:             color.RGBA{R: 224, G: 49, B: 49, A: 255},
		Profit:            color.RGBA{R: 46, G: 160, B: 67, A: 60},
		Loss:              color.RGBA{R: 229, G: 57, B: 53, A: 60},
		DefaultStroke:     colorutil.Black,
		RulerBackground:   color.RGBA{R: 242, G: 242, B: 242, A: 235},
		RulerLine:         color.RGBA{R: 150, G: 150, B: 150, A: 255},
		RulerText:         color.RGBA{R: 110, G: 110, B: 110, A: 255},
		MinimapBackground: color.RGBA{R: 245, G: 245, B: 245, A: 225},
		MinimapBorder:     color.RGBA{R: 180, G: 180, B: 180, A: 255},
		MinimapElement:    color.RGBA{R: 120, G: 120, B: 120, A: 255},
	}
}

// PaletteFor selects the palette matching the theme flag.
func PaletteFor(dark bool) Palette {
	if dark {
		return DarkPalette()
	}
	return LightPalette()
}

// strokeColor resolves an element's stroke color and opacity into a single
// RGBA value, falling back to the theme default for unparseable colors.
func strokeColor(hex string, opacity int, pal Palette) color.RGBA {
	c, ok := colorutil.ParseHex(hex)
	if !ok {
		c = pal.DefaultStroke
	}
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 100 {
		opacity = 100
	}
	c.A = uint8(opacity * 255 / 100)
	return c
}
