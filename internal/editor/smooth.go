package editor

import (
	"gonum.org/v1/gonum/interp"

	"chart-board/internal/scene"
	"chart-board/pkg/geometry"
)

const (
	// Strokes shorter than this are left alone.
	smoothMinPoints = 4
	// Resample density relative to the raw point count.
	smoothFactor = 3
	// Upper bound on resampled points for very long strokes.
	smoothMaxPoints = 512
)

// SmoothStroke resamples a committed freehand stroke through Akima splines
// fitted over a chord-length parameterization, removing pointer jitter.
// The first and last points are preserved exactly; strokes too short or
// degenerate are left untouched.
func SmoothStroke(s *scene.Stroke) {
	pts := dedupePoints(s.Points)
	if len(pts) < smoothMinPoints {
		return
	}

	// Chord-length parameter, strictly increasing after deduplication.
	t := make([]float64, len(pts))
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		if i > 0 {
			t[i] = t[i-1] + pts[i-1].Distance(p)
		}
		xs[i] = p.X
		ys[i] = p.Y
	}
	if t[len(t)-1] == 0 {
		return
	}

	var sx, sy interp.AkimaSpline
	if err := sx.Fit(t, xs); err != nil {
		return
	}
	if err := sy.Fit(t, ys); err != nil {
		return
	}

	n := len(pts) * smoothFactor
	if n > smoothMaxPoints {
		n = smoothMaxPoints
	}
	total := t[len(t)-1]
	out := make([]geometry.Point2D, n)
	for i := range out {
		u := total * float64(i) / float64(n-1)
		out[i] = geometry.NewPoint2D(sx.Predict(u), sy.Predict(u))
	}
	out[0] = pts[0]
	out[n-1] = pts[len(pts)-1]

	s.Points = out
}

// dedupePoints drops consecutive duplicates, which would collapse the
// chord-length parameterization.
func dedupePoints(pts []geometry.Point2D) []geometry.Point2D {
	if len(pts) == 0 {
		return nil
	}
	out := make([]geometry.Point2D, 0, len(pts))
	out = append(out, pts[0])
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
