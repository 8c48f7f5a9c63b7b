package render

import (
	"image"
	"math"
	"strconv"

	"chart-board/internal/scene"
	"chart-board/pkg/geometry"
)

// Minimap inset geometry in screen pixels.
const (
	minimapWidth   = 160
	minimapHeight  = 120
	minimapMargin  = 12
	minimapPadding = 6
)

// rulerSizePx is the height of the top ruler band and width of the left one.
const rulerSizePx = 22

// drawMinimap paints a proportional miniature of the board into a fixed
// inset at the bottom-right: element bounds as small rectangles, the
// current viewport as an accent outline.
func drawMinimap(dst *image.RGBA, els []scene.Element, cam geometry.Camera, w, h int, pal Palette) {
	x1 := w - minimapWidth - minimapMargin
	y1 := h - minimapHeight - minimapMargin
	x2 := x1 + minimapWidth
	y2 := y1 + minimapHeight
	if x1 < 0 || y1 < 0 {
		return
	}

	fillRect(dst, x1, y1, x2, y2, pal.MinimapBackground)
	strokeRect(dst, x1, y1, x2, y2, pal.MinimapBorder, 1, dashSpec{})

	viewport := cam.VisibleWorldRect(float64(w), float64(h))
	world := viewport
	for _, el := range els {
		world = world.Union(el.Bounds())
	}
	if world.Width <= 0 || world.Height <= 0 {
		return
	}

	availW := float64(minimapWidth - 2*minimapPadding)
	availH := float64(minimapHeight - 2*minimapPadding)
	scale := math.Min(availW/world.Width, availH/world.Height)

	// Center the world union inside the inset.
	offX := float64(x1+minimapPadding) + (availW-world.Width*scale)/2
	offY := float64(y1+minimapPadding) + (availH-world.Height*scale)/2

	project := func(r geometry.Rect) (int, int, int, int) {
		px1 := int(offX + (r.X-world.X)*scale)
		py1 := int(offY + (r.Y-world.Y)*scale)
		px2 := int(offX + (r.X+r.Width-world.X)*scale)
		py2 := int(offY + (r.Y+r.Height-world.Y)*scale)
		return px1, py1, px2, py2
	}

	for _, el := range els {
		ex1, ey1, ex2, ey2 := project(el.Bounds())
		if ex2-ex1 < 2 && ey2-ey1 < 2 {
			blendPixel(dst, ex1, ey1, pal.MinimapElement)
			continue
		}
		strokeRect(dst, ex1, ey1, ex2, ey2, pal.MinimapElement, 1, dashSpec{})
	}

	vx1, vy1, vx2, vy2 := project(viewport)
	strokeRect(dst, vx1, vy1, vx2, vy2, pal.Accent, 1, dashSpec{})
}

// rulerStep picks the world-unit tick spacing whose projection lands in the
// 60..140 pixel band, doubling or halving from 100.
func rulerStep(scale float64) float64 {
	step := 100.0
	for step*scale < 60 {
		step *= 2
	}
	for step*scale > 140 {
		step /= 2
	}
	return step
}

// drawRulers paints the top and left coordinate bands in screen space with
// adaptive tick spacing.
func drawRulers(dst *image.RGBA, cam geometry.Camera, w, h int, pal Palette) {
	fillRect(dst, 0, 0, w-1, rulerSizePx, pal.RulerBackground)
	fillRect(dst, 0, 0, rulerSizePx, h-1, pal.RulerBackground)

	step := rulerStep(cam.Scale)
	vis := cam.VisibleWorldRect(float64(w), float64(h))

	for wx := math.Ceil(vis.X/step) * step; wx <= vis.X+vis.Width; wx += step {
		sx := int(wx*cam.Scale + cam.Pan.X)
		if sx <= rulerSizePx {
			continue
		}
		drawSeg(dst, sx, rulerSizePx-6, sx, rulerSizePx-1, pal.RulerLine, 1, dashSpec{}, 0)
		drawTickLabel(dst, strconv.Itoa(int(wx)), sx+3, 3, pal)
	}

	for wy := math.Ceil(vis.Y/step) * step; wy <= vis.Y+vis.Height; wy += step {
		sy := int(wy*cam.Scale + cam.Pan.Y)
		if sy <= rulerSizePx {
			continue
		}
		drawSeg(dst, rulerSizePx-6, sy, rulerSizePx-1, sy, pal.RulerLine, 1, dashSpec{}, 0)
		drawTickLabel(dst, strconv.Itoa(int(wy)), 3, sy+3, pal)
	}

	drawSeg(dst, 0, rulerSizePx, w-1, rulerSizePx, pal.RulerLine, 1, dashSpec{}, 0)
	drawSeg(dst, rulerSizePx, 0, rulerSizePx, h-1, pal.RulerLine, 1, dashSpec{}, 0)
	fillRect(dst, 0, 0, rulerSizePx, rulerSizePx, pal.RulerBackground)
}

// tickDigits contains 3x5 pixel patterns for the ruler label glyphs, five
// rows of three bits each.
var tickDigits = map[rune][5]uint8{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b001, 0b001, 0b001},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
}

// drawTickLabel draws a coordinate value with the built-in bitmap digits.
// Rasterized text would be overkill at this size.
func drawTickLabel(dst *image.RGBA, label string, x, y int, pal Palette) {
	for i, ch := range label {
		pattern, ok := tickDigits[ch]
		if !ok {
			continue
		}
		charX := x + i*4
		for row := 0; row < 5; row++ {
			for c := 0; c < 3; c++ {
				if pattern[row]&(1<<(2-c)) != 0 {
					blendPixel(dst, charX+c, y+row, pal.RulerText)
				}
			}
		}
	}
}
