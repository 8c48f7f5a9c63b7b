package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chart-board/internal/scene"
	"chart-board/pkg/geometry"
)

func strokeOf(pts ...geometry.Point2D) *scene.Stroke {
	s := scene.NewStroke(pts[0], scene.Style{Color: "#1e1e1e", Width: 1, Stroke: scene.StrokeSolid, Opacity: 100})
	for _, p := range pts[1:] {
		s.AppendPoint(p)
	}
	return s
}

func TestSmoothPreservesEndpoints(t *testing.T) {
	st := strokeOf(pt(0, 0), pt(10, 8), pt(20, 3), pt(30, 12), pt(40, 5))

	SmoothStroke(st)

	require.Equal(t, 15, len(st.Points), "resampled at three points per input point")
	assert.Equal(t, pt(0, 0), st.Points[0])
	assert.Equal(t, pt(40, 5), st.Points[len(st.Points)-1])
}

func TestSmoothShortStrokeUntouched(t *testing.T) {
	st := strokeOf(pt(0, 0), pt(5, 5), pt(10, 0))
	before := append([]geometry.Point2D(nil), st.Points...)

	SmoothStroke(st)

	assert.Equal(t, before, st.Points)
}

func TestSmoothReproducesStraightLines(t *testing.T) {
	st := strokeOf(pt(0, 0), pt(10, 20), pt(25, 50), pt(40, 80), pt(60, 120))

	SmoothStroke(st)

	for _, p := range st.Points {
		assert.InDelta(t, 2*p.X, p.Y, 1e-6, "collinear input stays on its line")
	}
}

func TestSmoothDropsDuplicatePressurePoints(t *testing.T) {
	// Touch input repeats coordinates while the pointer rests.
	st := strokeOf(pt(0, 0), pt(0, 0), pt(10, 5), pt(10, 5), pt(10, 5), pt(20, 0), pt(30, 7))

	SmoothStroke(st)

	assert.Equal(t, 12, len(st.Points), "duplicates collapse before resampling")
	assert.Equal(t, pt(0, 0), st.Points[0])
	assert.Equal(t, pt(30, 7), st.Points[len(st.Points)-1])
}

func TestSmoothAllCoincidentUntouched(t *testing.T) {
	st := strokeOf(pt(3, 3), pt(3, 3), pt(3, 3), pt(3, 3), pt(3, 3))
	before := append([]geometry.Point2D(nil), st.Points...)

	SmoothStroke(st)

	assert.Equal(t, before, st.Points)
}

func TestSmoothCapsResampleCount(t *testing.T) {
	pts := make([]geometry.Point2D, 300)
	for i := range pts {
		pts[i] = pt(float64(i), float64(i%7))
	}
	st := strokeOf(pts...)

	SmoothStroke(st)

	assert.Equal(t, 512, len(st.Points))
}

func TestSmoothingAppliedOnPencilCommit(t *testing.T) {
	s := newTestSession()
	require.True(t, s.Smoothing(), "smoothing is on by default")
	s.LockTool(ToolPencil)

	s.PointerDown(pt(0, 0), Modifiers{})
	for i := 1; i <= 5; i++ {
		s.PointerDrag(pt(float64(i*10), float64(i%2*8)))
	}
	s.PointerUp(pt(50, 8))

	st := s.Scene().Elements()[0].(*scene.Stroke)
	assert.Greater(t, len(st.Points), 6, "commit resamples the raw points")
	assert.Equal(t, pt(0, 0), st.Points[0])
	assert.Equal(t, pt(50, 8), st.Points[len(st.Points)-1])
}
