package geometry

import (
	"math"
)

// Zoom limits shared by every consumer of the camera.
const (
	MinScale = 0.1
	MaxScale = 5.0
)

// Camera is the view transform mapping world coordinates to screen pixels:
// screen = world*Scale + Pan. Pan is expressed in screen pixels.
type Camera struct {
	Scale float64 `json:"scale"`
	Pan   Point2D `json:"pan"`
}

// NewCamera returns a camera at 1:1 scale with no pan.
func NewCamera() Camera {
	return Camera{Scale: 1}
}

// ScreenToWorld converts a screen-space point to world space.
func (c Camera) ScreenToWorld(p Point2D) Point2D {
	return Point2D{
		X: (p.X - c.Pan.X) / c.Scale,
		Y: (p.Y - c.Pan.Y) / c.Scale,
	}
}

// WorldToScreen converts a world-space point to screen space.
func (c Camera) WorldToScreen(p Point2D) Point2D {
	return Point2D{
		X: p.X*c.Scale + c.Pan.X,
		Y: p.Y*c.Scale + c.Pan.Y,
	}
}

// WorldRectToScreen converts a world-space rectangle to screen space.
func (c Camera) WorldRectToScreen(r Rect) Rect {
	tl := c.WorldToScreen(Point2D{X: r.X, Y: r.Y})
	return Rect{X: tl.X, Y: tl.Y, Width: r.Width * c.Scale, Height: r.Height * c.Scale}
}

// VisibleWorldRect returns the world-space rectangle covered by a
// width x height screen under this camera.
func (c Camera) VisibleWorldRect(width, height float64) Rect {
	tl := c.ScreenToWorld(Point2D{})
	br := c.ScreenToWorld(Point2D{X: width, Y: height})
	return Rect{X: tl.X, Y: tl.Y, Width: br.X - tl.X, Height: br.Y - tl.Y}
}

// ZoomAt multiplies the scale by factor, clamped to [MinScale, MaxScale],
// keeping the world point under screenPt stationary on screen.
func (c Camera) ZoomAt(factor float64, screenPt Point2D) Camera {
	scale := ClampScale(c.Scale * factor)
	if scale == c.Scale {
		return c
	}
	world := c.ScreenToWorld(screenPt)
	return Camera{
		Scale: scale,
		Pan: Point2D{
			X: screenPt.X - world.X*scale,
			Y: screenPt.Y - world.Y*scale,
		},
	}
}

// FitTo returns a camera framing the given world bounds inside a
// width x height screen with a fixed pixel margin.
func (c Camera) FitTo(bounds Rect, width, height float64) Camera {
	const margin = 40.0

	if bounds.Width <= 0 && bounds.Height <= 0 {
		// Nothing to frame; center the world origin.
		return Camera{Scale: 1, Pan: Point2D{X: width / 2, Y: height / 2}}
	}

	availW := math.Max(width-2*margin, 1)
	availH := math.Max(height-2*margin, 1)

	scale := math.Inf(1)
	if bounds.Width > 0 {
		scale = availW / bounds.Width
	}
	if bounds.Height > 0 {
		scale = math.Min(scale, availH/bounds.Height)
	}
	scale = ClampScale(scale)

	center := bounds.Center()
	return Camera{
		Scale: scale,
		Pan: Point2D{
			X: width/2 - center.X*scale,
			Y: height/2 - center.Y*scale,
		},
	}
}

// ClampScale restricts a zoom factor to the supported range.
func ClampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
