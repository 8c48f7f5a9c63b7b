package editor

import (
	"chart-board/internal/app"
	"chart-board/internal/config"
	"chart-board/internal/scene"
)

// Style controls apply twice: they become the default for new elements and
// are pushed onto the current selection immediately, committing one history
// step per control change when anything was selected.

// StyleDefaults returns the stroke attributes applied to new elements.
func (s *Session) StyleDefaults() scene.Style {
	return s.style
}

// SetStrokeColor sets the stroke color as a #rrggbb string.
func (s *Session) SetStrokeColor(hex string) {
	s.style.Color = hex
	s.applyToSelection(func(el scene.Element) {
		el.StyleRef().Color = hex
	})
}

// SetStrokeWidth sets the stroke width in world units.
func (s *Session) SetStrokeWidth(w float64) {
	if w <= 0 {
		return
	}
	s.style.Width = w
	s.applyToSelection(func(el scene.Element) {
		el.StyleRef().Width = w
	})
}

// SetStrokeStyle sets the dash pattern.
func (s *Session) SetStrokeStyle(st scene.StrokeStyle) {
	s.style.Stroke = st
	s.applyToSelection(func(el scene.Element) {
		el.StyleRef().Stroke = st
	})
}

// SetOpacity sets the opacity percentage, clamped to 0-100.
func (s *Session) SetOpacity(op int) {
	if op < 0 {
		op = 0
	}
	if op > 100 {
		op = 100
	}
	s.style.Opacity = op
	s.applyToSelection(func(el scene.Element) {
		el.StyleRef().Opacity = op
	})
}

// FontSize returns the default font size for new text.
func (s *Session) FontSize() float64 { return s.fontSize }

// FontFamily returns the default font family for new text.
func (s *Session) FontFamily() scene.FontFamily { return s.fontFamily }

// Bold reports the default bold flag for new text.
func (s *Session) Bold() bool { return s.bold }

// Italic reports the default italic flag for new text.
func (s *Session) Italic() bool { return s.italic }

// Align returns the default alignment for new text.
func (s *Session) Align() scene.TextAlign { return s.align }

// SetFontSize applies a font size to new and selected text elements,
// re-measuring their extent.
func (s *Session) SetFontSize(size float64) {
	if size <= 0 {
		return
	}
	s.fontSize = size
	s.applyToText(func(t *scene.Text) {
		t.FontSize = size
	})
}

// SetFontFamily applies a font family to new and selected text elements.
func (s *Session) SetFontFamily(family scene.FontFamily) {
	s.fontFamily = family
	s.applyToText(func(t *scene.Text) {
		t.FontFamily = family
	})
}

// SetBold applies the bold flag to new and selected text elements.
func (s *Session) SetBold(bold bool) {
	s.bold = bold
	s.applyToText(func(t *scene.Text) {
		t.Bold = bold
	})
}

// SetItalic applies the italic flag to new and selected text elements.
func (s *Session) SetItalic(italic bool) {
	s.italic = italic
	s.applyToText(func(t *scene.Text) {
		t.Italic = italic
	})
}

// SetAlign applies the horizontal alignment to new and selected text
// elements.
func (s *Session) SetAlign(align scene.TextAlign) {
	s.align = align
	s.applyToText(func(t *scene.Text) {
		t.Align = align
	})
}

// Arrowheads returns the default start and end arrowheads.
func (s *Session) Arrowheads() (start, end scene.Arrowhead) {
	return s.startArrow, s.endArrow
}

// SetStartArrowhead applies the start decoration to new and selected
// lines, arrows, and paths.
func (s *Session) SetStartArrowhead(a scene.Arrowhead) {
	s.startArrow = a
	s.applyToSelection(func(el scene.Element) {
		switch e := el.(type) {
		case *scene.Line:
			e.StartArrowhead = a
		case *scene.Path:
			e.StartArrowhead = a
		}
	})
}

// SetEndArrowhead applies the end decoration to new and selected lines,
// arrows, and paths.
func (s *Session) SetEndArrowhead(a scene.Arrowhead) {
	s.endArrow = a
	s.applyToSelection(func(el scene.Element) {
		switch e := el.(type) {
		case *scene.Line:
			e.EndArrowhead = a
		case *scene.Path:
			e.EndArrowhead = a
		}
	})
}

// EraserRadius returns the eraser radius in screen pixels.
func (s *Session) EraserRadius() float64 { return s.eraserRadius }

// SetEraserRadius sets the eraser radius, clamped to the supported range.
func (s *Session) SetEraserRadius(r float64) {
	if r < config.EraserMin {
		r = config.EraserMin
	}
	if r > config.EraserMax {
		r = config.EraserMax
	}
	s.eraserRadius = r
	s.state.Emit(app.EventStyleChanged, nil)
}

// Smoothing reports whether freehand strokes are spline-smoothed on
// commit.
func (s *Session) Smoothing() bool { return s.smoothing }

// SetSmoothing toggles freehand smoothing.
func (s *Session) SetSmoothing(on bool) {
	s.smoothing = on
	s.state.Emit(app.EventStyleChanged, nil)
}

// applyToSelection runs apply over every selected element, then commits if
// that changed the scene.
func (s *Session) applyToSelection(apply func(scene.Element)) {
	for _, el := range s.state.Scene.SelectedElements() {
		apply(el)
	}
	s.state.Emit(app.EventStyleChanged, nil)
	if s.state.Scene.SelectionCount() > 0 {
		s.commitIfChanged()
	}
}

// applyToText runs apply over every selected text element and re-measures
// it.
func (s *Session) applyToText(apply func(*scene.Text)) {
	s.applyToSelection(func(el scene.Element) {
		if t, ok := el.(*scene.Text); ok {
			apply(t)
			t.Width, t.Height = s.measure(t)
		}
	})
}
