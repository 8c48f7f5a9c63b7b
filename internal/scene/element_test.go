package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chart-board/pkg/geometry"
)

func testStyle() Style {
	return Style{Color: "#e03131", Width: 1, Stroke: StrokeSolid, Opacity: 100}
}

// sampleElements returns one element of every kind family, including a
// negative-extent shape.
func sampleElements() []Element {
	stroke := NewStroke(geometry.Point2D{X: 5, Y: 5}, testStyle())
	stroke.AppendPoint(geometry.Point2D{X: 15, Y: -5})
	stroke.AppendPoint(geometry.Point2D{X: 25, Y: 20})

	path := NewPath(geometry.Point2D{X: 0, Y: 0}, testStyle())
	path.Points = append(path.Points, geometry.Point2D{X: 40, Y: 10})

	return []Element{
		&Shape{ID: NewID(), Kind: KindRectangle, X: 10, Y: 10, Width: 100, Height: 50, Style: testStyle()},
		&Shape{ID: NewID(), Kind: KindEllipse, X: 50, Y: 50, Width: -40, Height: -40, Style: testStyle()},
		&Line{ID: NewID(), Kind: KindArrow, X: 0, Y: 0, Width: 30, Height: -20, EndArrowhead: ArrowheadArrow, Style: testStyle()},
		stroke,
		path,
		&Text{ID: NewID(), Kind: KindText, X: 5, Y: 5, Width: 60, Height: 20, Content: "entry", FontSize: 16, FontFamily: FontSans, Align: AlignLeft, Style: testStyle()},
		&Image{ID: NewID(), Kind: KindImage, X: -10, Y: -10, Width: 80, Height: 60, Data: []byte{1, 2, 3}, Style: testStyle()},
		&Position{ID: NewID(), Kind: KindLongPosition, X: 100, Y: 100, Width: 50, Height: 80, EntryRatio: 0.4, Style: testStyle()},
	}
}

func TestBounds(t *testing.T) {
	rect := &Shape{Kind: KindRectangle, X: 10, Y: 10, Width: 100, Height: 50}
	assert.Equal(t, geometry.NewRect(10, 10, 100, 50), rect.Bounds())

	// Negative extents resolve to the same visual box.
	neg := &Shape{Kind: KindRectangle, X: 110, Y: 60, Width: -100, Height: -50}
	assert.Equal(t, rect.Bounds(), neg.Bounds())

	stroke := NewStroke(geometry.Point2D{X: 5, Y: 5}, testStyle())
	stroke.AppendPoint(geometry.Point2D{X: 15, Y: -5})
	stroke.AppendPoint(geometry.Point2D{X: 25, Y: 20})
	assert.Equal(t, geometry.NewRect(5, -5, 20, 25), stroke.Bounds())
}

func TestBoundsTranslationEquivariant(t *testing.T) {
	const dx, dy = 13.5, -7.25

	for _, el := range sampleElements() {
		before := el.Bounds()
		el.Translate(dx, dy)
		after := el.Bounds()

		assert.InDelta(t, before.X+dx, after.X, 1e-9, "kind %s", el.ElementKind())
		assert.InDelta(t, before.Y+dy, after.Y, 1e-9, "kind %s", el.ElementKind())
		assert.InDelta(t, before.Width, after.Width, 1e-9, "kind %s", el.ElementKind())
		assert.InDelta(t, before.Height, after.Height, 1e-9, "kind %s", el.ElementKind())
	}
}

func TestCloneIndependence(t *testing.T) {
	for _, el := range sampleElements() {
		clone := el.Clone()
		require.Equal(t, el, clone, "clone must start identical (kind %s)", el.ElementKind())

		clone.Translate(100, 100)
		assert.NotEqual(t, el.Bounds(), clone.Bounds(),
			"translating the clone must not move the original (kind %s)", el.ElementKind())
	}
}

func TestCloneSharesImageData(t *testing.T) {
	img := &Image{ID: NewID(), Kind: KindImage, Width: 10, Height: 10, Data: []byte{9, 9, 9}}
	clone := img.Clone().(*Image)
	assert.Equal(t, img.Data, clone.Data)
}

func TestStrokeRunningMaxima(t *testing.T) {
	s := NewStroke(geometry.Point2D{X: 10, Y: 10}, testStyle())
	s.AppendPoint(geometry.Point2D{X: 30, Y: 15})
	s.AppendPoint(geometry.Point2D{X: 20, Y: 40})
	s.AppendPoint(geometry.Point2D{X: 5, Y: 5}) // maxima never shrink

	assert.Equal(t, 20.0, s.Width)
	assert.Equal(t, 30.0, s.Height)

	// Bounds come from the points, not the bookkeeping extent.
	assert.Equal(t, geometry.NewRect(5, 5, 25, 35), s.Bounds())
}

func TestNewPathStartsWithCoincidentPoints(t *testing.T) {
	p := NewPath(geometry.Point2D{X: 7, Y: 9}, testStyle())
	require.Len(t, p.Points, 2)
	assert.Equal(t, p.Points[0], p.Points[1])
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestOriginIsStoredOrigin(t *testing.T) {
	// A negative-extent shape keeps its stored origin, which differs from
	// its bounds corner.
	neg := &Shape{Kind: KindEllipse, X: 50, Y: 50, Width: -40, Height: -40}
	assert.Equal(t, geometry.NewPoint2D(50, 50), neg.Origin())
	assert.Equal(t, geometry.NewPoint2D(10, 10), neg.Bounds().TopLeft())

	path := NewPath(geometry.Point2D{X: 7, Y: 9}, testStyle())
	assert.Equal(t, geometry.NewPoint2D(7, 9), path.Origin())
}

func TestAssignNewID(t *testing.T) {
	for _, el := range sampleElements() {
		old := el.ElementID()
		id := AssignNewID(el)
		assert.NotEqual(t, old, id, "kind %s", el.ElementKind())
		assert.Equal(t, id, el.ElementID(), "kind %s", el.ElementKind())
	}
}
