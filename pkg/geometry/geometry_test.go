package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectFromCorners(t *testing.T) {
	tests := []struct {
		name string
		a, b Point2D
		want Rect
	}{
		{"forward", Point2D{10, 10}, Point2D{110, 60}, Rect{10, 10, 100, 50}},
		{"backward", Point2D{50, 50}, Point2D{10, 10}, Rect{10, 10, 40, 40}},
		{"mixed", Point2D{50, 10}, Point2D{10, 50}, Rect{10, 10, 40, 40}},
		{"degenerate", Point2D{5, 5}, Point2D{5, 5}, Rect{5, 5, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RectFromCorners(tt.a, tt.b))
		})
	}
}

func TestRectContainsRect(t *testing.T) {
	outer := NewRect(0, 0, 100, 100)

	assert.True(t, outer.ContainsRect(NewRect(10, 10, 50, 50)))
	assert.True(t, outer.ContainsRect(outer), "a rect contains itself")
	assert.False(t, outer.ContainsRect(NewRect(90, 90, 20, 20)), "partial overlap is not containment")
	assert.False(t, outer.ContainsRect(NewRect(-10, 10, 50, 50)))
}

func TestRectUnionExpand(t *testing.T) {
	u := NewRect(0, 0, 10, 10).Union(NewRect(20, 30, 10, 10))
	assert.Equal(t, Rect{0, 0, 30, 40}, u)

	e := NewRect(10, 10, 20, 20).Expand(5)
	assert.Equal(t, Rect{5, 5, 30, 30}, e)
}

func TestBoundingBox(t *testing.T) {
	pts := []Point2D{{5, 7}, {-3, 2}, {10, -1}}
	assert.Equal(t, Rect{-3, -1, 13, 8}, BoundingBox(pts))
	assert.Equal(t, Rect{}, BoundingBox(nil))
}

func TestCameraRoundTrip(t *testing.T) {
	cam := Camera{Scale: 2.5, Pan: Point2D{X: 120, Y: -40}}
	p := Point2D{X: 33.5, Y: -17.25}

	got := cam.ScreenToWorld(cam.WorldToScreen(p))
	assert.InDelta(t, p.X, got.X, 1e-9)
	assert.InDelta(t, p.Y, got.Y, 1e-9)
}

func TestCameraScreenToWorld(t *testing.T) {
	cam := Camera{Scale: 2, Pan: Point2D{X: 100, Y: 50}}
	w := cam.ScreenToWorld(Point2D{X: 300, Y: 250})
	assert.Equal(t, Point2D{X: 100, Y: 100}, w)
}

func TestCameraZoomAtKeepsCursorFixed(t *testing.T) {
	cam := Camera{Scale: 1, Pan: Point2D{X: 20, Y: 30}}
	cursor := Point2D{X: 400, Y: 300}
	before := cam.ScreenToWorld(cursor)

	zoomed := cam.ZoomAt(1.25, cursor)
	require.InDelta(t, 1.25, zoomed.Scale, 1e-9)

	after := zoomed.ScreenToWorld(cursor)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestCameraZoomClamped(t *testing.T) {
	cam := NewCamera()
	for i := 0; i < 50; i++ {
		cam = cam.ZoomAt(1.25, Point2D{})
	}
	assert.Equal(t, MaxScale, cam.Scale)

	for i := 0; i < 100; i++ {
		cam = cam.ZoomAt(0.8, Point2D{})
	}
	assert.Equal(t, MinScale, cam.Scale)
}

func TestCameraFitTo(t *testing.T) {
	cam := NewCamera().FitTo(NewRect(0, 0, 100, 100), 800, 600)

	// The framed bounds must be fully visible and centered.
	vis := cam.VisibleWorldRect(800, 600)
	assert.True(t, vis.ContainsRect(NewRect(0, 0, 100, 100)))

	center := cam.WorldToScreen(Point2D{X: 50, Y: 50})
	assert.InDelta(t, 400, center.X, 1e-6)
	assert.InDelta(t, 300, center.Y, 1e-6)
}

func TestCameraFitToEmpty(t *testing.T) {
	cam := NewCamera().FitTo(Rect{}, 640, 480)
	assert.Equal(t, 1.0, cam.Scale)
	origin := cam.WorldToScreen(Point2D{})
	assert.Equal(t, Point2D{X: 320, Y: 240}, origin)
}
