package panels

import (
	"fmt"
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"chart-board/internal/config"
	"chart-board/internal/editor"
	"chart-board/internal/scene"
	"chart-board/pkg/colorutil"
)

const swatchSize = 22

// colorSwatch is a small tappable color cell of the palette grid.
type colorSwatch struct {
	widget.BaseWidget
	rect  *fynecanvas.Rectangle
	onTap func()
}

func newColorSwatch(c color.RGBA, onTap func()) *colorSwatch {
	s := &colorSwatch{
		rect:  fynecanvas.NewRectangle(c),
		onTap: onTap,
	}
	s.rect.SetMinSize(fyne.NewSize(swatchSize, swatchSize))
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) Tapped(*fyne.PointEvent) {
	if s.onTap != nil {
		s.onTap()
	}
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.rect)
}

// StylePanel holds the live style controls. Every control updates the
// session defaults and restyles the current selection in place.
type StylePanel struct {
	session   *editor.Session
	container fyne.CanvasObject

	current *fynecanvas.Rectangle
}

// NewStylePanel creates the style panel bound to a session.
func NewStylePanel(session *editor.Session) *StylePanel {
	sp := &StylePanel{session: session}

	// Color swatches, 5 per row, with the active color shown above.
	sp.current = fynecanvas.NewRectangle(hexColor(session.StyleDefaults().Color))
	sp.current.SetMinSize(fyne.NewSize(swatchSize*2, swatchSize))

	swatches := make([]fyne.CanvasObject, 0, 15)
	for _, hex := range colorutil.Palette() {
		hex := hex
		swatches = append(swatches, newColorSwatch(hexColor(hex), func() {
			session.SetStrokeColor(hex)
			sp.current.FillColor = hexColor(hex)
			sp.current.Refresh()
		}))
	}
	swatchGrid := container.NewGridWithColumns(5, swatches...)

	// Stroke width presets.
	widths := widget.NewRadioGroup([]string{"1", "3", "5"}, func(sel string) {
		if w, err := strconv.ParseFloat(sel, 64); err == nil {
			session.SetStrokeWidth(w)
		}
	})
	widths.Horizontal = true
	widths.SetSelected(strconv.FormatFloat(session.StyleDefaults().Width, 'f', -1, 64))

	strokeStyle := widget.NewSelect([]string{"solid", "dashed", "dotted"}, func(sel string) {
		session.SetStrokeStyle(scene.StrokeStyle(sel))
	})
	strokeStyle.SetSelected(string(session.StyleDefaults().Stroke))

	opacity := widget.NewSlider(0, 100)
	opacity.Step = 1
	opacity.Value = float64(session.StyleDefaults().Opacity)
	opacity.OnChanged = func(v float64) {
		session.SetOpacity(int(v))
	}

	// Arrowheads for lines, arrows, and paths.
	heads := []string{"none", "arrow", "dot"}
	startHead := widget.NewSelect(heads, func(sel string) {
		session.SetStartArrowhead(scene.Arrowhead(sel))
	})
	endHead := widget.NewSelect(heads, func(sel string) {
		session.SetEndArrowhead(scene.Arrowhead(sel))
	})
	start, end := session.Arrowheads()
	startHead.SetSelected(string(start))
	endHead.SetSelected(string(end))

	// Font attributes for text elements.
	fontSize := widget.NewSelect([]string{"16", "20", "28", "36"}, func(sel string) {
		if size, err := strconv.ParseFloat(sel, 64); err == nil {
			session.SetFontSize(size)
		}
	})
	fontSize.SetSelected(strconv.FormatFloat(session.FontSize(), 'f', -1, 64))

	fontFamily := widget.NewSelect([]string{"sans", "mono"}, func(sel string) {
		session.SetFontFamily(scene.FontFamily(sel))
	})
	fontFamily.SetSelected(string(session.FontFamily()))

	bold := widget.NewCheck("Bold", func(on bool) {
		session.SetBold(on)
	})
	bold.SetChecked(session.Bold())

	italic := widget.NewCheck("Italic", func(on bool) {
		session.SetItalic(on)
	})
	italic.SetChecked(session.Italic())

	align := widget.NewSelect([]string{"left", "center", "right"}, func(sel string) {
		session.SetAlign(scene.TextAlign(sel))
	})
	align.SetSelected(string(session.Align()))

	// Eraser radius in screen pixels.
	eraser := widget.NewSlider(config.EraserMin, config.EraserMax)
	eraser.Step = 1
	eraser.Value = session.EraserRadius()
	eraserLabel := widget.NewLabel(eraserCaption(session.EraserRadius()))
	eraser.OnChanged = func(v float64) {
		session.SetEraserRadius(v)
		eraserLabel.SetText(eraserCaption(v))
	}

	smooth := widget.NewCheck("Smooth freehand", func(on bool) {
		session.SetSmoothing(on)
	})
	smooth.SetChecked(session.Smoothing())

	sp.container = container.NewVScroll(container.NewVBox(
		widget.NewLabel("Stroke"),
		container.NewHBox(widget.NewLabel("Color:"), sp.current),
		swatchGrid,
		container.NewHBox(widget.NewLabel("Width:"), widths),
		container.NewHBox(widget.NewLabel("Style:"), strokeStyle),
		widget.NewLabel("Opacity"),
		opacity,
		widget.NewSeparator(),
		widget.NewLabel("Arrowheads"),
		container.NewHBox(widget.NewLabel("Start:"), startHead),
		container.NewHBox(widget.NewLabel("End:"), endHead),
		widget.NewSeparator(),
		widget.NewLabel("Text"),
		container.NewHBox(widget.NewLabel("Size:"), fontSize, fontFamily),
		container.NewHBox(bold, italic),
		container.NewHBox(widget.NewLabel("Align:"), align),
		widget.NewSeparator(),
		eraserLabel,
		eraser,
		smooth,
	))

	return sp
}

// Container returns the panel's root object.
func (sp *StylePanel) Container() fyne.CanvasObject {
	return sp.container
}

func eraserCaption(r float64) string {
	return fmt.Sprintf("Eraser: %.0f px", r)
}

func hexColor(hex string) color.RGBA {
	c, ok := colorutil.ParseHex(hex)
	if !ok {
		return colorutil.Black
	}
	return c
}
