// Package editor implements the canvas interaction engine: a pointer and
// keyboard driven state machine that mutates the scene through the active
// tool and records committed steps in the undo history.
//
// The package is toolkit-free. The UI layer translates widget events into
// the Pointer*/key methods here, so the whole engine runs headless in tests.
package editor

import (
	"time"

	"chart-board/internal/app"
	"chart-board/internal/config"
	"chart-board/internal/scene"
	"chart-board/pkg/geometry"
)

// Tool identifies the active interaction tool.
type Tool int

const (
	ToolSelect Tool = iota
	ToolHand
	ToolRectangle
	ToolDiamond
	ToolEllipse
	ToolArrow
	ToolLine
	ToolPencil
	ToolPath
	ToolText
	ToolImage
	ToolEraser
	ToolLaser
	ToolLongPosition
	ToolShortPosition
)

// String returns a human-readable tool name for the status bar.
func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolHand:
		return "hand"
	case ToolRectangle:
		return "rectangle"
	case ToolDiamond:
		return "diamond"
	case ToolEllipse:
		return "ellipse"
	case ToolArrow:
		return "arrow"
	case ToolLine:
		return "line"
	case ToolPencil:
		return "pencil"
	case ToolPath:
		return "path"
	case ToolText:
		return "text"
	case ToolImage:
		return "image"
	case ToolEraser:
		return "eraser"
	case ToolLaser:
		return "laser"
	case ToolLongPosition:
		return "long position"
	case ToolShortPosition:
		return "short position"
	}
	return "unknown"
}

// Mode is the pointer interaction mode between press and release.
type Mode int

const (
	ModeNone Mode = iota
	ModeDraw
	ModeMove
	ModeResize
	ModePan
	ModeSelectBox
	ModeErase
	ModeLaser
)

// Modifiers carries the keyboard modifier state of a pointer event.
type Modifiers struct {
	Shift bool
}

// Pasted copies land this many screen pixels away from their source.
const pasteOffsetPx = 20.0

// zoomStep is the per-notch zoom factor for wheel and keyboard zoom.
const zoomStep = 1.25

// TextMeasurer computes the world-space extent of a text element from its
// content and font attributes.
type TextMeasurer func(t *scene.Text) (w, h float64)

// gesture is the transient payload of one pointer-down..pointer-up cycle.
// Snapshots are clones taken at pointer-down; deltas always apply to them,
// never to the live elements, so a long drag cannot accumulate error.
type gesture struct {
	mode        Mode
	startScreen geometry.Point2D
	startWorld  geometry.Point2D
	lastScreen  geometry.Point2D
	snapshots   map[string]scene.Element
	handle      scene.Handle
	target      string
	boxCurrent  geometry.Point2D
	additive    bool
}

// Session is the per-canvas interaction context: active tool, style
// defaults, clipboard, camera, laser trail, and the in-flight gesture.
// All methods must be called from the UI goroutine.
type Session struct {
	state *app.State

	cam geometry.Camera

	tool     Tool
	locked   bool
	spacePan bool

	gesture gesture

	// Style defaults applied to new elements.
	style      scene.Style
	fontSize   float64
	fontFamily scene.FontFamily
	bold       bool
	italic     bool
	align      scene.TextAlign
	startArrow scene.Arrowhead
	endArrow   scene.Arrowhead

	eraserRadius float64
	smoothing    bool

	clipboard []scene.Element

	laser     []LaserPoint
	laserFade time.Duration

	measure      TextMeasurer
	textPrompt   func(at geometry.Point2D, existing *scene.Text)
	imagePrompt  func(el *scene.Image)
	confirmClear func()

	now func() time.Time
}

// NewSession creates an interaction session over the given state, seeded
// with the configured style defaults.
func NewSession(state *app.State, cfg *config.Config) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Session{
		state: state,
		cam:   geometry.NewCamera(),
		tool:  ToolSelect,
		style: scene.Style{
			Color:   cfg.Style.Color,
			Width:   cfg.Style.Width,
			Stroke:  scene.StrokeStyle(cfg.Style.Stroke),
			Opacity: cfg.Style.Opacity,
		},
		fontSize:     cfg.Style.FontSize,
		fontFamily:   scene.FontFamily(cfg.Style.FontFamily),
		align:        scene.AlignLeft,
		startArrow:   scene.ArrowheadNone,
		endArrow:     scene.ArrowheadNone,
		eraserRadius: cfg.Canvas.EraserRadius,
		smoothing:    cfg.Canvas.SmoothFreehand,
		laserFade:    time.Duration(cfg.Canvas.LaserFadeMs) * time.Millisecond,
		measure:      estimateTextSize,
		now:          time.Now,
	}
}

// State returns the application state this session mutates.
func (s *Session) State() *app.State {
	return s.state
}

// Scene returns the scene this session mutates.
func (s *Session) Scene() *scene.Scene {
	return s.state.Scene
}

// Tool returns the user-selected tool, ignoring the spacebar pan override.
func (s *Session) Tool() Tool {
	return s.tool
}

// SetTool switches the active tool and drops any tool lock. Switching away
// from the path tool finalizes a path under construction.
func (s *Session) SetTool(t Tool) {
	if _, building := s.state.Scene.Draft().(*scene.Path); building && t != ToolPath {
		s.finishPath()
	}
	s.locked = false
	if s.tool == t {
		return
	}
	s.tool = t
	s.state.Emit(app.EventToolChanged, t)
}

// LockTool pins a tool active across commits, suppressing the revert to
// selection after each drawn element.
func (s *Session) LockTool(t Tool) {
	s.SetTool(t)
	s.locked = true
}

// ToolLocked reports whether the active tool is pinned.
func (s *Session) ToolLocked() bool {
	return s.locked
}

// SetSpacePan toggles the spacebar pan override. While held, pointer drags
// pan the view regardless of the active tool.
func (s *Session) SetSpacePan(held bool) {
	if s.spacePan == held {
		return
	}
	s.spacePan = held
	s.state.Emit(app.EventToolChanged, s.effectiveTool())
}

// effectiveTool resolves the spacebar override.
func (s *Session) effectiveTool() Tool {
	if s.spacePan {
		return ToolHand
	}
	return s.tool
}

// Mode returns the current pointer interaction mode.
func (s *Session) Mode() Mode {
	return s.gesture.mode
}

// SelectionBox returns the active box-selection rectangle in world space.
func (s *Session) SelectionBox() (geometry.Rect, bool) {
	if s.gesture.mode != ModeSelectBox {
		return geometry.Rect{}, false
	}
	return geometry.RectFromCorners(s.gesture.startWorld, s.gesture.boxCurrent), true
}

// Camera returns the current view transform.
func (s *Session) Camera() geometry.Camera {
	return s.cam
}

// SetCamera replaces the view transform, e.g. when restoring a saved board.
func (s *Session) SetCamera(cam geometry.Camera) {
	cam.Scale = geometry.ClampScale(cam.Scale)
	if cam.Scale == 0 {
		cam = geometry.NewCamera()
	}
	s.cam = cam
	s.emitView()
}

// ZoomAt multiplies the zoom by factor keeping the world point under the
// given screen point stationary.
func (s *Session) ZoomAt(factor float64, screen geometry.Point2D) {
	s.cam = s.cam.ZoomAt(factor, screen)
	s.emitView()
}

// ZoomIn zooms one step towards the given screen point.
func (s *Session) ZoomIn(screen geometry.Point2D) {
	s.ZoomAt(zoomStep, screen)
}

// ZoomOut zooms one step away from the given screen point.
func (s *Session) ZoomOut(screen geometry.Point2D) {
	s.ZoomAt(1/zoomStep, screen)
}

// ResetZoom returns to 1:1 scale keeping the world point under the given
// screen point stationary.
func (s *Session) ResetZoom(screen geometry.Point2D) {
	s.ZoomAt(1/s.cam.Scale, screen)
}

// FitToContent frames every element inside a width x height viewport.
// An empty scene resets the camera.
func (s *Session) FitToContent(width, height float64) {
	els := s.state.Scene.Elements()
	if len(els) == 0 {
		s.cam = geometry.NewCamera()
		s.emitView()
		return
	}
	bounds := els[0].Bounds()
	for _, el := range els[1:] {
		bounds = bounds.Union(el.Bounds())
	}
	s.cam = s.cam.FitTo(bounds, width, height)
	s.emitView()
}

// PanBy translates the view by a raw screen-space delta.
func (s *Session) PanBy(dx, dy float64) {
	s.cam.Pan = s.cam.Pan.Add(geometry.NewPoint2D(dx, dy))
	s.emitView()
}

// SetTextMeasurer installs the text measurement hook. The render layer
// provides an exact one; the default is a rough estimate.
func (s *Session) SetTextMeasurer(m TextMeasurer) {
	if m != nil {
		s.measure = m
	}
}

// OnTextPrompt sets the callback asking the host UI to open the text entry
// dialog, either for a new element at a world point or to edit an existing
// one.
func (s *Session) OnTextPrompt(cb func(at geometry.Point2D, existing *scene.Text)) {
	s.textPrompt = cb
}

// OnImagePrompt sets the callback asking the host UI to pick an image file
// for a freshly drawn placeholder.
func (s *Session) OnImagePrompt(cb func(el *scene.Image)) {
	s.imagePrompt = cb
}

// OnConfirmClear sets the callback asking the user to confirm clearing the
// whole board. Without a callback the board is cleared immediately.
func (s *Session) OnConfirmClear(cb func()) {
	s.confirmClear = cb
}

// Undo steps the history back and restores that snapshot. Selection is
// always cleared. A no-op at the stack bottom.
func (s *Session) Undo() {
	snap, ok := s.state.History.Undo()
	if !ok {
		return
	}
	s.state.Scene.Restore(snap)
	s.state.SetModified(true)
	s.state.Emit(app.EventHistoryChanged, nil)
	s.emitScene()
	s.emitSelection()
}

// Redo steps the history forward. A no-op at the stack top.
func (s *Session) Redo() {
	snap, ok := s.state.History.Redo()
	if !ok {
		return
	}
	s.state.Scene.Restore(snap)
	s.state.SetModified(true)
	s.state.Emit(app.EventHistoryChanged, nil)
	s.emitScene()
	s.emitSelection()
}

// SelectAll selects every element.
func (s *Session) SelectAll() {
	els := s.state.Scene.Elements()
	ids := make([]string, len(els))
	for i, el := range els {
		ids[i] = el.ElementID()
	}
	s.state.Scene.SetSelection(ids)
	s.emitSelection()
	s.emitScene()
}

// DeleteSelection removes the selected elements and commits. With nothing
// selected and a non-empty scene it asks for clear-all confirmation.
func (s *Session) DeleteSelection() {
	ids := s.state.Scene.SelectedIDs()
	if len(ids) > 0 {
		for _, id := range ids {
			s.state.Scene.Remove(id)
		}
		s.commit()
		s.emitSelection()
		return
	}

	if s.state.Scene.Len() == 0 {
		return
	}
	if s.confirmClear != nil {
		s.confirmClear()
		return
	}
	s.ClearAll()
}

// ClearAll removes every element and commits. Undo restores the board.
func (s *Session) ClearAll() {
	if s.state.Scene.Len() == 0 {
		return
	}
	s.state.Scene.Clear()
	s.commit()
	s.emitSelection()
}

// Cancel aborts the in-flight gesture and discards any draft. With nothing
// in flight it clears the selection.
func (s *Session) Cancel() {
	s.gesture = gesture{}
	if s.state.Scene.TakeDraft() != nil {
		s.emitScene()
		return
	}
	if s.state.Scene.SelectionCount() > 0 {
		s.state.Scene.ClearSelection()
		s.emitSelection()
		s.emitScene()
	}
}

// AddExternalElement injects an element produced outside the interaction
// flow, e.g. by an automated collaborator, as if the user had drawn it.
func (s *Session) AddExternalElement(el scene.Element) {
	if el == nil {
		return
	}
	if el.ElementID() == "" {
		scene.AssignNewID(el)
	}
	scene.Normalize(el)
	s.state.Scene.Add(el)
	s.state.Scene.SelectOnly(el.ElementID())
	s.commit()
	s.emitSelection()
}

// commit pushes the current scene onto the history stack and marks the
// board modified.
func (s *Session) commit() {
	s.state.History.Commit(s.state.Scene.Snapshot())
	s.state.SetModified(true)
	s.state.Emit(app.EventHistoryChanged, nil)
	s.emitScene()
}

// commitIfChanged commits only when the scene differs from the last
// history entry, so gestures that end where they started leave no trace.
func (s *Session) commitIfChanged() {
	if scene.ElementsEqual(s.state.Scene.Elements(), s.state.History.Head()) {
		return
	}
	s.commit()
}

// revertToolAfterCommit flips back to the selection tool after one use,
// unless the tool is locked or is a continuous one.
func (s *Session) revertToolAfterCommit() {
	if s.locked || s.tool == ToolPencil || s.tool == ToolEraser || s.tool == ToolSelect {
		return
	}
	s.tool = ToolSelect
	s.state.Emit(app.EventToolChanged, s.tool)
}

func (s *Session) emitScene() {
	s.state.Emit(app.EventSceneChanged, nil)
}

func (s *Session) emitSelection() {
	s.state.Emit(app.EventSelectionChanged, nil)
}

func (s *Session) emitView() {
	s.state.Emit(app.EventViewChanged, s.cam)
}
