package scene

import (
	"chart-board/pkg/geometry"
)

// Screen-space interaction margins, converted to world units by dividing by
// the camera scale so they feel constant at every zoom level.
const (
	hitTolerancePx = 10.0
	handleRadiusPx = 8.0
)

// Handle identifies a resize grip on a selected element.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleNE
	HandleSW
	HandleSE
	HandleN
	HandleS
	HandleEntry
)

// String returns the handle name used in logs.
func (h Handle) String() string {
	switch h {
	case HandleNW:
		return "nw"
	case HandleNE:
		return "ne"
	case HandleSW:
		return "sw"
	case HandleSE:
		return "se"
	case HandleN:
		return "n"
	case HandleS:
		return "s"
	case HandleEntry:
		return "entry"
	default:
		return "none"
	}
}

// HitTest reports whether the world point lies within the element's bounds
// expanded by the fixed screen-space tolerance.
func HitTest(el Element, p geometry.Point2D, scale float64) bool {
	tol := hitTolerancePx / scale
	return el.Bounds().Expand(tol).Contains(p)
}

// Resizable reports whether the element kind exposes resize handles.
// Paths, lines, pencil strokes, and text resize with their content only.
func Resizable(el Element) bool {
	switch el.ElementKind() {
	case KindRectangle, KindDiamond, KindEllipse, KindImage,
		KindLongPosition, KindShortPosition:
		return true
	default:
		return false
	}
}

// HandleAt returns the resize handle under the world point, or HandleNone.
// Corner handles apply to every resizable kind; position markers add the
// top/bottom midpoint handles and the entry-divider handle on the right
// edge. The hit radius is a fixed screen-space size divided by scale.
func HandleAt(el Element, p geometry.Point2D, scale float64) Handle {
	if !Resizable(el) {
		return HandleNone
	}

	radius := handleRadiusPx / scale
	b := el.Bounds()

	if pos, ok := el.(*Position); ok {
		entry := geometry.Point2D{X: b.X + b.Width, Y: b.Y + pos.EntryRatio*b.Height}
		if p.Distance(entry) <= radius {
			return HandleEntry
		}
		top := geometry.Point2D{X: b.X + b.Width/2, Y: b.Y}
		if p.Distance(top) <= radius {
			return HandleN
		}
		bottom := geometry.Point2D{X: b.X + b.Width/2, Y: b.Y + b.Height}
		if p.Distance(bottom) <= radius {
			return HandleS
		}
	}

	corners := []struct {
		h  Handle
		at geometry.Point2D
	}{
		{HandleNW, geometry.Point2D{X: b.X, Y: b.Y}},
		{HandleNE, geometry.Point2D{X: b.X + b.Width, Y: b.Y}},
		{HandleSW, geometry.Point2D{X: b.X, Y: b.Y + b.Height}},
		{HandleSE, geometry.Point2D{X: b.X + b.Width, Y: b.Y + b.Height}},
	}
	for _, c := range corners {
		if p.Distance(c.at) <= radius {
			return c.h
		}
	}
	return HandleNone
}

// Normalize rewrites negative box extents so width/height become
// non-negative while preserving the visual rectangle. Point-sequence kinds
// and lines keep their geometry untouched. Idempotent.
func Normalize(el Element) {
	switch e := el.(type) {
	case *Shape:
		e.X, e.Y, e.Width, e.Height = normalizeBox(e.X, e.Y, e.Width, e.Height)
	case *Text:
		e.X, e.Y, e.Width, e.Height = normalizeBox(e.X, e.Y, e.Width, e.Height)
	case *Image:
		e.X, e.Y, e.Width, e.Height = normalizeBox(e.X, e.Y, e.Width, e.Height)
	case *Position:
		// A vertical flip mirrors the divider so it keeps its on-screen
		// position.
		if e.Height < 0 {
			e.EntryRatio = 1 - e.EntryRatio
		}
		e.X, e.Y, e.Width, e.Height = normalizeBox(e.X, e.Y, e.Width, e.Height)
	}
}

func normalizeBox(x, y, w, h float64) (float64, float64, float64, float64) {
	if w < 0 {
		x += w
		w = -w
	}
	if h < 0 {
		y += h
		h = -h
	}
	return x, y, w, h
}
