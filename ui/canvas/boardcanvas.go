// Package canvas provides the board canvas widget: a software-rendered
// raster surface that translates Fyne pointer events into editor gestures.
package canvas

import (
	"image"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"chart-board/internal/app"
	"chart-board/internal/editor"
	"chart-board/internal/render"
	"chart-board/pkg/geometry"
)

// laserFrameInterval paces the self-scheduled repaints while the laser
// trail is fading.
const laserFrameInterval = 33 * time.Millisecond

// BoardCanvas displays the scene and feeds pointer events to the editor
// session. All drawing happens in the draw callback onto a plain RGBA
// image; Fyne only blits the result.
type BoardCanvas struct {
	widget.BaseWidget

	session  *editor.Session
	renderer *render.Renderer
	raster   *fynecanvas.Raster

	showGrid    bool
	showRulers  bool
	showMinimap bool
	gridSpacing float64

	pressed bool

	// lastFrame is the most recent painted surface, kept for external
	// capture and snapshot-style consumers.
	lastFrame *image.RGBA

	laserTick atomic.Bool

	onCursorMoved func(world geometry.Point2D)
}

// NewBoardCanvas creates the canvas over an editor session. The canvas
// repaints whenever the observed application state changes.
func NewBoardCanvas(session *editor.Session, renderer *render.Renderer, gridSpacing float64) *BoardCanvas {
	bc := &BoardCanvas{
		session:     session,
		renderer:    renderer,
		showGrid:    true,
		gridSpacing: gridSpacing,
	}
	bc.raster = fynecanvas.NewRaster(bc.draw)
	bc.raster.ScaleMode = fynecanvas.ImageScalePixels
	bc.ExtendBaseWidget(bc)

	// Exact text measurement replaces the session's built-in estimate.
	session.SetTextMeasurer(render.MeasureText)

	state := session.State()
	for _, ev := range []app.EventType{
		app.EventSceneChanged,
		app.EventSelectionChanged,
		app.EventHoverChanged,
		app.EventViewChanged,
		app.EventThemeChanged,
	} {
		state.On(ev, func(interface{}) {
			bc.Refresh()
		})
	}
	state.On(app.EventBoardLoaded, func(interface{}) {
		renderer.Images().Clear()
		bc.Refresh()
	})

	return bc
}

// Session returns the interaction session driving this canvas.
func (bc *BoardCanvas) Session() *editor.Session {
	return bc.session
}

// Renderer returns the renderer, which owns the decoded-image cache.
func (bc *BoardCanvas) Renderer() *render.Renderer {
	return bc.renderer
}

// Surface returns the last painted frame for external capture. Callers
// must treat it as read-only; it is replaced on the next repaint.
func (bc *BoardCanvas) Surface() *image.RGBA {
	return bc.lastFrame
}

// OnCursorMoved sets a callback reporting the pointer's world position,
// used by the status bar.
func (bc *BoardCanvas) OnCursorMoved(cb func(world geometry.Point2D)) {
	bc.onCursorMoved = cb
}

// ViewSize returns the canvas extent in screen pixels.
func (bc *BoardCanvas) ViewSize() (w, h float64) {
	size := bc.Size()
	return float64(size.Width), float64(size.Height)
}

// ShowGrid reports whether the world-space grid is drawn.
func (bc *BoardCanvas) ShowGrid() bool { return bc.showGrid }

// SetShowGrid toggles the world-space grid.
func (bc *BoardCanvas) SetShowGrid(on bool) {
	bc.showGrid = on
	bc.Refresh()
}

// ShowRulers reports whether the screen-space rulers are drawn.
func (bc *BoardCanvas) ShowRulers() bool { return bc.showRulers }

// SetShowRulers toggles the screen-space rulers.
func (bc *BoardCanvas) SetShowRulers(on bool) {
	bc.showRulers = on
	bc.Refresh()
}

// ShowMinimap reports whether the minimap inset is drawn.
func (bc *BoardCanvas) ShowMinimap() bool { return bc.showMinimap }

// SetShowMinimap toggles the minimap inset.
func (bc *BoardCanvas) SetShowMinimap(on bool) {
	bc.showMinimap = on
	bc.Refresh()
}

// Refresh repaints the raster.
func (bc *BoardCanvas) Refresh() {
	bc.raster.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (bc *BoardCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(bc.raster)
}

// draw assembles a frame from the session and paints it. Re-invoked by
// Fyne on every Refresh and on resize.
func (bc *BoardCanvas) draw(w, h int) image.Image {
	if w < 1 || h < 1 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	if bc.lastFrame == nil || bc.lastFrame.Bounds().Dx() != w || bc.lastFrame.Bounds().Dy() != h {
		bc.lastFrame = image.NewRGBA(image.Rect(0, 0, w, h))
	}

	state := bc.session.State()
	sc := state.Scene

	frame := &render.Frame{
		Elements:    sc.Elements(),
		Draft:       sc.Draft(),
		Selected:    sc.SelectedIDs(),
		Hover:       sc.Hover(),
		Cam:         bc.session.Camera(),
		Dark:        state.DarkMode(),
		ShowGrid:    bc.showGrid,
		GridSpacing: bc.gridSpacing,
		ShowRulers:  bc.showRulers,
		ShowMinimap: bc.showMinimap,
		Laser:       bc.laserDots(),
	}
	if box, ok := bc.session.SelectionBox(); ok {
		frame.SelectionBox = &box
	}

	bc.renderer.Paint(bc.lastFrame, frame)
	bc.scheduleLaserFrame()
	return bc.lastFrame
}

// laserDots converts the session's timestamped trail into faded screen
// dots for this frame.
func (bc *BoardCanvas) laserDots() []render.LaserDot {
	pts := bc.session.LaserPoints()
	if len(pts) == 0 {
		return nil
	}
	now := time.Now()
	dots := make([]render.LaserDot, 0, len(pts))
	for _, p := range pts {
		if a := bc.session.LaserAlpha(p, now); a > 0 {
			dots = append(dots, render.LaserDot{Pos: p.At, Alpha: a})
		}
	}
	return dots
}

// scheduleLaserFrame keeps the canvas repainting while trail points are
// still fading, one pending tick at a time. The loop self-terminates once
// the trail drains.
func (bc *BoardCanvas) scheduleLaserFrame() {
	if !bc.session.LaserActive() {
		return
	}
	if !bc.laserTick.CompareAndSwap(false, true) {
		return
	}
	time.AfterFunc(laserFrameInterval, func() {
		bc.laserTick.Store(false)
		bc.Refresh()
	})
}

func toPoint(pos fyne.Position) geometry.Point2D {
	return geometry.NewPoint2D(float64(pos.X), float64(pos.Y))
}

// MouseDown implements desktop.Mouseable, starting a gesture.
func (bc *BoardCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	bc.pressed = true
	bc.session.PointerDown(toPoint(ev.Position), editor.Modifiers{
		Shift: ev.Modifier&fyne.KeyModifierShift != 0,
	})
}

// MouseUp implements desktop.Mouseable, finishing the gesture.
func (bc *BoardCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	if bc.pressed {
		bc.pressed = false
		bc.session.PointerUp(toPoint(ev.Position))
	}
}

// Dragged implements fyne.Draggable. Button-held movement arrives here,
// not through MouseMoved.
func (bc *BoardCanvas) Dragged(ev *fyne.DragEvent) {
	if !bc.pressed {
		return
	}
	pt := toPoint(ev.Position)
	bc.session.PointerDrag(pt)
	bc.reportCursor(pt)
}

// DragEnd implements fyne.Draggable. The gesture is finished by MouseUp,
// which carries the release position.
func (bc *BoardCanvas) DragEnd() {}

// MouseIn implements desktop.Hoverable.
func (bc *BoardCanvas) MouseIn(ev *desktop.MouseEvent) {
	bc.reportCursor(toPoint(ev.Position))
}

// MouseMoved implements desktop.Hoverable, tracking hover highlights and
// rubber-banding a path under construction.
func (bc *BoardCanvas) MouseMoved(ev *desktop.MouseEvent) {
	if bc.pressed {
		return
	}
	pt := toPoint(ev.Position)
	bc.session.PointerHover(pt)
	bc.reportCursor(pt)
}

// MouseOut implements desktop.Hoverable.
func (bc *BoardCanvas) MouseOut() {}

// Tapped implements fyne.Tappable. Presses are handled by MouseDown; the
// method exists so taps are not forwarded to widgets underneath.
func (bc *BoardCanvas) Tapped(*fyne.PointEvent) {}

// DoubleTapped finalizes a path under construction or opens the text
// editor on a text element.
func (bc *BoardCanvas) DoubleTapped(ev *fyne.PointEvent) {
	bc.session.DoubleTap(toPoint(ev.Position))
}

// Scrolled zooms at the cursor on wheel movement.
func (bc *BoardCanvas) Scrolled(ev *fyne.ScrollEvent) {
	at := toPoint(ev.Position)
	if ev.Scrolled.DY > 0 {
		bc.session.ZoomIn(at)
	} else if ev.Scrolled.DY < 0 {
		bc.session.ZoomOut(at)
	}
}

func (bc *BoardCanvas) reportCursor(screen geometry.Point2D) {
	if bc.onCursorMoved != nil {
		bc.onCursorMoved(bc.session.Camera().ScreenToWorld(screen))
	}
}
