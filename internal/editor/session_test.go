package editor

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chart-board/internal/app"
	"chart-board/internal/imageio"
	"chart-board/internal/scene"
	"chart-board/pkg/geometry"
)

func TestToolLock(t *testing.T) {
	s := newTestSession()
	s.LockTool(ToolRectangle)

	drag(s, pt(0, 0), pt(10, 10))
	assert.Equal(t, ToolRectangle, s.Tool(), "locked tool survives a commit")
	assert.True(t, s.ToolLocked())

	drag(s, pt(20, 20), pt(30, 30))
	assert.Equal(t, 2, s.Scene().Len())

	s.SetTool(ToolRectangle)
	assert.False(t, s.ToolLocked(), "selecting a tool drops the lock")
	drag(s, pt(40, 40), pt(50, 50))
	assert.Equal(t, ToolSelect, s.Tool())
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolRectangle)
	drag(s, pt(0, 0), pt(10, 10))
	s.SetTool(ToolRectangle)
	drag(s, pt(20, 20), pt(30, 30))
	afterS2 := s.Scene().Snapshot()

	s.Undo()
	s.Redo()
	assert.True(t, scene.ElementsEqual(afterS2, s.Scene().Elements()))

	s.Undo()
	s.Undo()
	assert.Empty(t, s.Scene().Elements(), "two undos reach the empty baseline")

	s.Undo() // boundary no-op
	assert.Empty(t, s.Scene().Elements())
	assert.True(t, s.state.History.CanRedo())
}

func TestCommitTruncatesRedoTail(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolRectangle)
	drag(s, pt(0, 0), pt(10, 10))
	s.SetTool(ToolRectangle)
	drag(s, pt(20, 20), pt(30, 30))

	s.Undo()
	require.True(t, s.state.History.CanRedo())

	s.SetTool(ToolRectangle)
	drag(s, pt(40, 40), pt(50, 50))
	assert.False(t, s.state.History.CanRedo(), "a new commit drops the redo tail")
}

func TestCopyPasteOffsets(t *testing.T) {
	s := newTestSession()
	a := seedRect(s, 10, 10, 30, 30)
	b := &scene.Shape{ID: scene.NewID(), Kind: scene.KindEllipse, X: 100, Y: 10, Width: 20, Height: 20, Style: s.StyleDefaults()}
	seed(s, b)
	s.SetCamera(geometry.Camera{Scale: 2})
	s.Scene().SetSelection([]string{a.ID, b.ID})

	s.Copy()
	s.Paste()

	require.Equal(t, 4, s.Scene().Len())
	pasted := s.Scene().SelectedElements()
	require.Len(t, pasted, 2, "exactly the new copies are selected")

	// Offset is 20 screen pixels over scale 2 = 10 world units.
	first := pasted[0].(*scene.Shape)
	assert.Equal(t, 20.0, first.X)
	assert.Equal(t, 20.0, first.Y)
	second := pasted[1].(*scene.Shape)
	assert.Equal(t, 110.0, second.X)

	ids := map[string]bool{a.ID: true, b.ID: true}
	for _, el := range pasted {
		assert.False(t, ids[el.ElementID()], "pasted ids must be fresh")
		ids[el.ElementID()] = true
	}
	assert.False(t, s.Scene().IsSelected(a.ID))
}

func TestPasteEmptyClipboardNoOp(t *testing.T) {
	s := newTestSession()
	before := s.state.History.Len()
	s.Paste()
	assert.Equal(t, before, s.state.History.Len())
}

func TestCopyWithoutSelectionKeepsClipboard(t *testing.T) {
	s := newTestSession()
	a := seedRect(s, 0, 0, 10, 10)
	s.Scene().SelectOnly(a.ID)
	s.Copy()
	require.Equal(t, 1, s.ClipboardLen())

	s.Scene().ClearSelection()
	s.Copy()
	assert.Equal(t, 1, s.ClipboardLen())
}

func TestClipboardSurvivesSourceDeletion(t *testing.T) {
	s := newTestSession()
	a := seedRect(s, 0, 0, 10, 10)
	s.Scene().SelectOnly(a.ID)
	s.Copy()
	s.DeleteSelection()
	require.Equal(t, 0, s.Scene().Len())

	s.Paste()
	assert.Equal(t, 1, s.Scene().Len())
}

func TestDuplicate(t *testing.T) {
	s := newTestSession()
	a := seedRect(s, 0, 0, 10, 10)
	s.Scene().SelectOnly(a.ID)

	s.Duplicate()

	require.Equal(t, 2, s.Scene().Len())
	dup := s.Scene().SoleSelected().(*scene.Shape)
	assert.NotEqual(t, a.ID, dup.ID)
	assert.Equal(t, 20.0, dup.X)
	assert.Equal(t, 0, s.ClipboardLen(), "duplicate must not clobber the clipboard")
}

func TestDeleteSelectionCommits(t *testing.T) {
	s := newTestSession()
	a := seedRect(s, 0, 0, 10, 10)
	s.Scene().SelectOnly(a.ID)

	s.DeleteSelection()

	assert.Equal(t, 0, s.Scene().Len())
	s.Undo()
	assert.Equal(t, 1, s.Scene().Len())
}

func TestDeleteWithoutSelectionAsksConfirmation(t *testing.T) {
	s := newTestSession()
	seedRect(s, 0, 0, 10, 10)

	asked := false
	s.OnConfirmClear(func() { asked = true })

	s.DeleteSelection()

	assert.True(t, asked)
	assert.Equal(t, 1, s.Scene().Len(), "declining leaves the board untouched")

	s.ClearAll()
	assert.Equal(t, 0, s.Scene().Len())
	s.Undo()
	assert.Equal(t, 1, s.Scene().Len(), "clear-all is a single undoable step")
}

func TestDeleteOnEmptySceneNoOp(t *testing.T) {
	s := newTestSession()
	asked := false
	s.OnConfirmClear(func() { asked = true })

	s.DeleteSelection()

	assert.False(t, asked)
}

func TestSelectAll(t *testing.T) {
	s := newTestSession()
	seedRect(s, 0, 0, 10, 10)
	seedRect(s, 50, 0, 10, 10)

	s.SelectAll()

	assert.Equal(t, 2, s.Scene().SelectionCount())
}

func TestStyleChangeAppliesToSelectionAndDefaults(t *testing.T) {
	s := newTestSession()
	a := seedRect(s, 0, 0, 10, 10)
	s.Scene().SelectOnly(a.ID)
	before := s.state.History.Len()

	s.SetStrokeColor("#1971c2")
	s.SetStrokeWidth(5)
	s.SetStrokeStyle(scene.StrokeDashed)
	s.SetOpacity(60)

	assert.Equal(t, "#1971c2", a.Style.Color)
	assert.Equal(t, 5.0, a.Style.Width)
	assert.Equal(t, scene.StrokeDashed, a.Style.Stroke)
	assert.Equal(t, 60, a.Style.Opacity)
	assert.Equal(t, before+4, s.state.History.Len(), "one commit per control change")

	s.SetOpacity(140)
	assert.Equal(t, 100, a.Style.Opacity, "opacity clamps to 100")

	d := s.StyleDefaults()
	assert.Equal(t, "#1971c2", d.Color)
	assert.Equal(t, 5.0, d.Width)
}

func TestStyleChangeWithoutSelectionOnlyDefaults(t *testing.T) {
	s := newTestSession()
	seedRect(s, 0, 0, 10, 10)
	before := s.state.History.Len()

	s.SetStrokeColor("#e8590c")

	assert.Equal(t, "#e8590c", s.StyleDefaults().Color)
	assert.Equal(t, before, s.state.History.Len(), "no selection, no commit")
}

func TestFontChangeRemeasuresText(t *testing.T) {
	s := newTestSession()
	txt := s.AddText(pt(0, 0), "abc")
	require.NotNil(t, txt)
	w1, h1 := txt.Width, txt.Height

	s.SetFontSize(40)

	assert.Equal(t, 40.0, txt.FontSize)
	assert.Greater(t, txt.Width, w1)
	assert.Greater(t, txt.Height, h1)
}

func TestArrowheadsApplyToLinesAndPaths(t *testing.T) {
	s := newTestSession()
	line := &scene.Line{ID: scene.NewID(), Kind: scene.KindLine, X: 0, Y: 0, Width: 50, Height: 0, Style: s.StyleDefaults()}
	seed(s, line)
	s.Scene().SelectOnly(line.ID)

	s.SetEndArrowhead(scene.ArrowheadDot)

	assert.Equal(t, scene.ArrowheadDot, line.EndArrowhead)
	_, end := s.Arrowheads()
	assert.Equal(t, scene.ArrowheadDot, end)
}

func TestEraserRadiusClamped(t *testing.T) {
	s := newTestSession()
	s.SetEraserRadius(2)
	assert.Equal(t, 5.0, s.EraserRadius())
	s.SetEraserRadius(500)
	assert.Equal(t, 100.0, s.EraserRadius())
	s.SetEraserRadius(42)
	assert.Equal(t, 42.0, s.EraserRadius())
}

func TestAddTextUsesDefaults(t *testing.T) {
	s := newTestSession()
	s.SetFontFamily(scene.FontMono)
	s.SetBold(true)
	s.SetAlign(scene.AlignCenter)

	txt := s.AddText(pt(5, 7), "breakout level")

	require.NotNil(t, txt)
	assert.Equal(t, scene.FontMono, txt.FontFamily)
	assert.True(t, txt.Bold)
	assert.Equal(t, scene.AlignCenter, txt.Align)
	assert.Positive(t, txt.Width)
	assert.True(t, s.Scene().IsSelected(txt.ID))
}

func TestAddTextEmptyContentNoOp(t *testing.T) {
	s := newTestSession()
	assert.Nil(t, s.AddText(pt(0, 0), ""))
	assert.Equal(t, 0, s.Scene().Len())
}

func TestUpdateTextEmptyDeletes(t *testing.T) {
	s := newTestSession()
	txt := s.AddText(pt(0, 0), "target")

	s.UpdateText(txt.ID, "")

	assert.Equal(t, 0, s.Scene().Len())
	s.Undo()
	assert.Equal(t, 1, s.Scene().Len())
}

func encodedPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 120, B: 200, A: 255})
		}
	}
	data, err := imageio.EncodePNG(img)
	require.NoError(t, err)
	return data
}

func TestAddImageNaturalSizeCapped(t *testing.T) {
	s := newTestSession()
	data := encodedPNG(t, 500, 10)

	img := s.AddImage(pt(0, 0), data)

	require.NotNil(t, img)
	assert.Equal(t, 400.0, img.Width, "longest edge capped at the import limit")
	assert.Equal(t, 8.0, img.Height)
	assert.Equal(t, -200.0, img.X, "centered on the drop point")
	assert.True(t, s.Scene().IsSelected(img.ID))
}

func TestAddImageGarbageStillInserts(t *testing.T) {
	s := newTestSession()

	img := s.AddImage(pt(0, 0), []byte("junk"))

	require.NotNil(t, img)
	assert.Equal(t, 200.0, img.Width)
	assert.Equal(t, 150.0, img.Height)
}

func TestSetImageDataFitsDrawnBox(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolImage)
	drag(s, pt(0, 0), pt(100, 40))
	placeholder := s.Scene().Elements()[0].(*scene.Image)
	require.Empty(t, placeholder.Data)

	s.SetImageData(placeholder.ID, encodedPNG(t, 40, 40))

	assert.Equal(t, 40.0, placeholder.Width, "fitted inside the drawn box, aspect preserved")
	assert.Equal(t, 40.0, placeholder.Height)
	assert.NotEmpty(t, placeholder.Data)
}

func TestImagePromptFiresForPlaceholder(t *testing.T) {
	s := newTestSession()
	var prompted *scene.Image
	s.OnImagePrompt(func(el *scene.Image) { prompted = el })
	s.SetTool(ToolImage)

	drag(s, pt(0, 0), pt(60, 60))

	require.NotNil(t, prompted)
	assert.Equal(t, s.Scene().Elements()[0], scene.Element(prompted))
}

func TestAddExternalElement(t *testing.T) {
	s := newTestSession()
	el := &scene.Shape{Kind: scene.KindRectangle, X: 50, Y: 50, Width: -20, Height: 10, Style: s.StyleDefaults()}

	s.AddExternalElement(el)

	require.Equal(t, 1, s.Scene().Len())
	assert.NotEmpty(t, el.ID, "injected elements get identifiers")
	assert.Equal(t, 30.0, el.X, "injected geometry is normalized")
	assert.Equal(t, 20.0, el.Width)
	assert.True(t, s.Scene().IsSelected(el.ID))
	assert.True(t, s.state.History.CanUndo())
}

func TestLaserTrailFadesOut(t *testing.T) {
	s := newTestSession()
	current := time.Unix(1000, 0)
	s.now = func() time.Time { return current }
	s.SetTool(ToolLaser)

	s.PointerDown(pt(10, 10), Modifiers{})
	s.PointerDrag(pt(20, 20))
	s.PointerUp(pt(20, 20))

	require.Len(t, s.LaserPoints(), 2)
	assert.True(t, s.LaserActive())
	assert.Equal(t, 0, s.Scene().Len(), "laser never touches the scene")
	assert.False(t, s.state.History.CanUndo())

	// Half-life: alpha fades linearly.
	p := s.LaserPoints()[0]
	assert.InDelta(t, 0.5, s.LaserAlpha(p, current.Add(500*time.Millisecond)), 1e-9)

	current = current.Add(1001 * time.Millisecond)
	assert.False(t, s.LaserActive())
	assert.Empty(t, s.LaserPoints())
}

func TestZoomClampsAndKeepsCursorFixed(t *testing.T) {
	s := newTestSession()
	cursor := pt(200, 150)
	worldBefore := s.Camera().ScreenToWorld(cursor)

	s.ZoomIn(cursor)
	worldAfter := s.Camera().ScreenToWorld(cursor)
	assert.InDelta(t, worldBefore.X, worldAfter.X, 1e-9)
	assert.InDelta(t, worldBefore.Y, worldAfter.Y, 1e-9)

	for i := 0; i < 20; i++ {
		s.ZoomIn(cursor)
	}
	assert.Equal(t, 5.0, s.Camera().Scale)

	for i := 0; i < 40; i++ {
		s.ZoomOut(cursor)
	}
	assert.Equal(t, 0.1, s.Camera().Scale)

	s.ResetZoom(cursor)
	assert.Equal(t, 1.0, s.Camera().Scale)
}

func TestFitToContent(t *testing.T) {
	s := newTestSession()
	seedRect(s, 0, 0, 100, 100)
	s.SetCamera(geometry.Camera{Scale: 3, Pan: pt(999, 999)})

	s.FitToContent(800, 600)

	visible := s.Camera().VisibleWorldRect(800, 600)
	assert.True(t, visible.Contains(pt(50, 50)), "content center is visible after fit")
	assert.True(t, visible.Contains(pt(0, 0)))
	assert.True(t, visible.Contains(pt(100, 100)))
}

func TestFitToContentEmptyResets(t *testing.T) {
	s := newTestSession()
	s.SetCamera(geometry.Camera{Scale: 3, Pan: pt(999, 999)})

	s.FitToContent(800, 600)

	assert.Equal(t, geometry.NewCamera(), s.Camera())
}

func TestEventsEmittedDuringDraw(t *testing.T) {
	s := newTestSession()
	sceneEvents := 0
	s.State().On(app.EventSceneChanged, func(interface{}) { sceneEvents++ })
	historyEvents := 0
	s.State().On(app.EventHistoryChanged, func(interface{}) { historyEvents++ })

	s.SetTool(ToolRectangle)
	drag(s, pt(0, 0), pt(10, 10))

	assert.Greater(t, sceneEvents, 0)
	assert.Equal(t, 1, historyEvents)
	assert.True(t, s.State().Modified())
}
