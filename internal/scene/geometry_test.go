package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chart-board/pkg/geometry"
)

func TestNormalizeNegativeExtents(t *testing.T) {
	// Dragging from (50,50) to (10,10) leaves a negative extent that
	// normalization rewrites to the same visual rectangle.
	e := &Shape{ID: NewID(), Kind: KindRectangle, X: 50, Y: 50, Width: -40, Height: -40}
	before := e.Bounds()

	Normalize(e)

	assert.Equal(t, 10.0, e.X)
	assert.Equal(t, 10.0, e.Y)
	assert.Equal(t, 40.0, e.Width)
	assert.Equal(t, 40.0, e.Height)
	assert.Equal(t, before, e.Bounds(), "normalization preserves bounds")
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, el := range sampleElements() {
		Normalize(el)
		once := el.Clone()
		Normalize(el)
		assert.Equal(t, once, el, "kind %s", el.ElementKind())
	}
}

func TestNormalizePositionFlipsEntryRatio(t *testing.T) {
	p := &Position{ID: NewID(), Kind: KindShortPosition, X: 0, Y: 100, Width: 40, Height: -100, EntryRatio: 0.3}

	// Divider world position before normalization.
	dividerY := p.Y + p.EntryRatio*p.Height

	Normalize(p)

	require.Equal(t, 0.0, p.Y)
	require.Equal(t, 100.0, p.Height)
	assert.InDelta(t, 0.7, p.EntryRatio, 1e-9)
	assert.InDelta(t, dividerY, p.Y+p.EntryRatio*p.Height, 1e-9,
		"divider keeps its world position across the flip")
}

func TestHitTestToleranceScalesWithZoom(t *testing.T) {
	e := &Shape{ID: NewID(), Kind: KindRectangle, X: 0, Y: 0, Width: 100, Height: 100}

	// 10px screen tolerance at scale 1 reaches 10 world units out.
	assert.True(t, HitTest(e, geometry.Point2D{X: 109, Y: 50}, 1))
	assert.False(t, HitTest(e, geometry.Point2D{X: 111, Y: 50}, 1))

	// At scale 2 the same margin shrinks to 5 world units.
	assert.True(t, HitTest(e, geometry.Point2D{X: 104, Y: 50}, 2))
	assert.False(t, HitTest(e, geometry.Point2D{X: 106, Y: 50}, 2))
}

func TestHandleAtCorners(t *testing.T) {
	e := &Shape{ID: NewID(), Kind: KindEllipse, X: 0, Y: 0, Width: 100, Height: 60}

	tests := []struct {
		at   geometry.Point2D
		want Handle
	}{
		{geometry.Point2D{X: 0, Y: 0}, HandleNW},
		{geometry.Point2D{X: 100, Y: 0}, HandleNE},
		{geometry.Point2D{X: 0, Y: 60}, HandleSW},
		{geometry.Point2D{X: 100, Y: 60}, HandleSE},
		{geometry.Point2D{X: 50, Y: 30}, HandleNone},
		{geometry.Point2D{X: 100, Y: 30}, HandleNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HandleAt(e, tt.at, 1), "point %+v", tt.at)
	}

	// Hit radius shrinks with zoom: 6 world units off misses at scale 2.
	assert.Equal(t, HandleNW, HandleAt(e, geometry.Point2D{X: 6, Y: 0}, 1))
	assert.Equal(t, HandleNone, HandleAt(e, geometry.Point2D{X: 6, Y: 0}, 2))
}

func TestHandleAtPositionMarker(t *testing.T) {
	p := &Position{ID: NewID(), Kind: KindLongPosition, X: 0, Y: 0, Width: 100, Height: 100, EntryRatio: 0.4}

	assert.Equal(t, HandleN, HandleAt(p, geometry.Point2D{X: 50, Y: 0}, 1))
	assert.Equal(t, HandleS, HandleAt(p, geometry.Point2D{X: 50, Y: 100}, 1))
	assert.Equal(t, HandleEntry, HandleAt(p, geometry.Point2D{X: 100, Y: 40}, 1))

	// Corners still resolve.
	assert.Equal(t, HandleNW, HandleAt(p, geometry.Point2D{X: 0, Y: 0}, 1))
}

func TestHandleAtNonResizableKinds(t *testing.T) {
	els := []Element{
		&Line{ID: NewID(), Kind: KindLine, Width: 50, Height: 50},
		NewStroke(geometry.Point2D{}, testStyle()),
		NewPath(geometry.Point2D{}, testStyle()),
		&Text{ID: NewID(), Kind: KindText, Width: 40, Height: 20},
	}
	for _, el := range els {
		b := el.Bounds()
		corner := geometry.Point2D{X: b.X, Y: b.Y}
		assert.Equal(t, HandleNone, HandleAt(el, corner, 1), "kind %s", el.ElementKind())
		assert.False(t, Resizable(el), "kind %s", el.ElementKind())
	}
}
