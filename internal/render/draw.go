package render

import (
	"image"
	"image/color"
	"math"
	"sort"
)

// dashSpec is an on/off pixel pattern advanced along a stroke. The zero
// value draws solid.
type dashSpec struct {
	on, off int
}

func (d dashSpec) solid() bool {
	return d.on <= 0
}

// dashFor maps a stroke style to a pattern sized relative to the thickness
// so dashes stay legible at every width.
func dashFor(style string, thickness int) dashSpec {
	switch style {
	case "dashed":
		return dashSpec{on: 4*thickness + 4, off: 3*thickness + 3}
	case "dotted":
		return dashSpec{on: thickness, off: 2*thickness + 2}
	default:
		return dashSpec{}
	}
}

// blendPixel composites col over the destination pixel, honoring col's
// alpha. Fully opaque colors are stored directly.
func blendPixel(dst *image.RGBA, x, y int, col color.RGBA) {
	b := dst.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	if col.A == 0xff {
		dst.SetRGBA(x, y, col)
		return
	}
	if col.A == 0 {
		return
	}

	existing := dst.RGBAAt(x, y)
	alpha := float64(col.A) / 255
	inv := 1 - alpha
	dst.SetRGBA(x, y, color.RGBA{
		R: uint8(float64(col.R)*alpha + float64(existing.R)*inv),
		G: uint8(float64(col.G)*alpha + float64(existing.G)*inv),
		B: uint8(float64(col.B)*alpha + float64(existing.B)*inv),
		A: 255,
	})
}

// brush stamps a thickness x thickness block centered on (x, y).
func brush(dst *image.RGBA, x, y, thickness int, col color.RGBA) {
	if thickness <= 1 {
		blendPixel(dst, x, y, col)
		return
	}
	half := thickness / 2
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			blendPixel(dst, x+dx, y+dy, col)
		}
	}
}

// drawSeg draws one segment using Bresenham's algorithm with a square brush.
// dashOffset is the pattern position carried in from the previous segment of
// a polyline; the advanced offset is returned so dashes flow across joints.
func drawSeg(dst *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int, dash dashSpec, dashOffset int) int {
	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	period := dash.on + dash.off

	for {
		if dash.solid() || dashOffset%period < dash.on {
			brush(dst, x1, y1, thickness, col)
		}
		dashOffset++

		if x1 == x2 && y1 == y2 {
			return dashOffset
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// drawPolyline strokes consecutive points with round joins: a filled circle
// at each interior vertex hides the square brush corners.
func drawPolyline(dst *image.RGBA, pts []image.Point, col color.RGBA, thickness int, dash dashSpec) {
	if len(pts) == 0 {
		return
	}
	if len(pts) == 1 {
		brush(dst, pts[0].X, pts[0].Y, thickness, col)
		return
	}

	offset := 0
	for i := 0; i < len(pts)-1; i++ {
		offset = drawSeg(dst, pts[i].X, pts[i].Y, pts[i+1].X, pts[i+1].Y, col, thickness, dash, offset)
	}

	if thickness >= 3 && dash.solid() {
		r := thickness / 2
		for _, p := range pts {
			fillCircle(dst, p.X, p.Y, r, col)
		}
	}
}

// strokeRect outlines an axis-aligned rectangle.
func strokeRect(dst *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int, dash dashSpec) {
	offset := 0
	offset = drawSeg(dst, x1, y1, x2, y1, col, thickness, dash, offset)
	offset = drawSeg(dst, x2, y1, x2, y2, col, thickness, dash, offset)
	offset = drawSeg(dst, x2, y2, x1, y2, col, thickness, dash, offset)
	drawSeg(dst, x1, y2, x1, y1, col, thickness, dash, offset)
}

// fillRect fills an axis-aligned rectangle.
func fillRect(dst *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			blendPixel(dst, x, y, col)
		}
	}
}

// fillCircle fills a circle using the squared-distance test.
func fillCircle(dst *image.RGBA, cx, cy, r int, col color.RGBA) {
	if r <= 0 {
		blendPixel(dst, cx, cy, col)
		return
	}
	r2 := r * r
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r2 {
				blendPixel(dst, cx+x, cy+y, col)
			}
		}
	}
}

// strokeCircle draws a circle outline as a ring between two radii.
func strokeCircle(dst *image.RGBA, cx, cy, r, thickness int, col color.RGBA) {
	if r <= 0 {
		return
	}
	outer := float64(r) + float64(thickness)/2
	inner := outer - float64(thickness)
	if inner < 0 {
		inner = 0
	}
	o2 := outer * outer
	i2 := inner * inner

	bound := int(outer) + 1
	for y := -bound; y <= bound; y++ {
		for x := -bound; x <= bound; x++ {
			d2 := float64(x*x + y*y)
			if d2 <= o2 && d2 >= i2 {
				blendPixel(dst, cx+x, cy+y, col)
			}
		}
	}
}

// strokeEllipse draws an axis-aligned ellipse outline fitted to the given
// box, as a ring in normalized-distance space.
func strokeEllipse(dst *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int, dash dashSpec) {
	rx := float64(x2-x1) / 2
	ry := float64(y2-y1) / 2
	cx := float64(x1+x2) / 2
	cy := float64(y1+y2) / 2
	if rx <= 0 || ry <= 0 {
		drawSeg(dst, x1, y1, x2, y2, col, thickness, dash, 0)
		return
	}

	// Stepping the parameter angle keeps the dash pattern advancing evenly
	// along the circumference.
	circumference := math.Pi * (3*(rx+ry) - math.Sqrt((3*rx+ry)*(rx+3*ry)))
	steps := int(circumference)
	if steps < 32 {
		steps = 32
	}

	period := dash.on + dash.off
	prevX := cx + rx
	prevY := cy
	offset := 0
	for i := 1; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + rx*math.Cos(a)
		y := cy + ry*math.Sin(a)
		if dash.solid() || offset%period < dash.on {
			drawSeg(dst, int(prevX), int(prevY), int(x), int(y), col, thickness, dashSpec{}, 0)
		}
		offset++
		prevX, prevY = x, y
	}
}

// fillPolygon fills a polygon with the scanline algorithm.
func fillPolygon(dst *image.RGBA, pts []image.Point, col color.RGBA) {
	if len(pts) < 3 {
		return
	}

	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	n := len(pts)
	for y := minY; y <= maxY; y++ {
		var xs []float64
		for i := 0; i < n; i++ {
			p1 := pts[i]
			p2 := pts[(i+1)%n]
			if (p1.Y <= y && p2.Y > y) || (p2.Y <= y && p1.Y > y) {
				t := float64(y-p1.Y) / float64(p2.Y-p1.Y)
				xs = append(xs, float64(p1.X)+t*float64(p2.X-p1.X))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(xs[i]); x <= int(xs[i+1]); x++ {
				blendPixel(dst, x, y, col)
			}
		}
	}
}

// strokePolygon outlines a closed polygon.
func strokePolygon(dst *image.RGBA, pts []image.Point, col color.RGBA, thickness int, dash dashSpec) {
	n := len(pts)
	if n < 2 {
		return
	}
	offset := 0
	for i := 0; i < n; i++ {
		p1 := pts[i]
		p2 := pts[(i+1)%n]
		offset = drawSeg(dst, p1.X, p1.Y, p2.X, p2.Y, col, thickness, dash, offset)
	}
}

// drawArrowhead decorates a segment end. tipX/tipY is the segment endpoint;
// fromX/fromY the other end, giving the tangent direction.
func drawArrowhead(dst *image.RGBA, kind string, tipX, tipY, fromX, fromY float64, col color.RGBA, thickness int) {
	dx := tipX - fromX
	dy := tipY - fromY
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length

	size := float64(4*thickness + 8)

	switch kind {
	case "dot":
		fillCircle(dst, int(tipX), int(tipY), int(size/2), col)
	case "arrow":
		// Two barbs swept back from the tip.
		const spread = 0.45 // radians off the shaft
		sin, cos := math.Sin(spread), math.Cos(spread)
		bx1 := tipX - size*(ux*cos-uy*sin)
		by1 := tipY - size*(uy*cos+ux*sin)
		bx2 := tipX - size*(ux*cos+uy*sin)
		by2 := tipY - size*(uy*cos-ux*sin)
		fillPolygon(dst, []image.Point{
			{X: int(tipX), Y: int(tipY)},
			{X: int(bx1), Y: int(by1)},
			{X: int(bx2), Y: int(by2)},
		}, col)
	}
}
