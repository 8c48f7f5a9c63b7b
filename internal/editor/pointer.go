package editor

import (
	"chart-board/internal/app"
	"chart-board/internal/scene"
	"chart-board/pkg/geometry"
)

// PointerDown starts a gesture at a screen point. The mode is decided by
// the effective tool and, for the selection tool, by what lies under the
// pointer: a resize handle, an element, or empty canvas.
func (s *Session) PointerDown(screen geometry.Point2D, mods Modifiers) {
	world := s.cam.ScreenToWorld(screen)
	s.gesture = gesture{startScreen: screen, startWorld: world, lastScreen: screen}

	switch tool := s.effectiveTool(); tool {
	case ToolHand:
		s.gesture.mode = ModePan
	case ToolLaser:
		s.gesture.mode = ModeLaser
		s.appendLaser(screen)
	case ToolEraser:
		s.gesture.mode = ModeErase
		s.eraseAt(world)
	case ToolSelect:
		s.beginSelect(world, mods)
	case ToolPath:
		s.pathClick(world)
	case ToolText:
		if s.textPrompt != nil {
			s.textPrompt(world, nil)
		}
	default:
		s.gesture.mode = ModeDraw
		s.beginDraw(tool, world)
	}
}

// PointerDrag advances the gesture while the button is held.
func (s *Session) PointerDrag(screen geometry.Point2D) {
	world := s.cam.ScreenToWorld(screen)
	g := &s.gesture

	switch g.mode {
	case ModePan:
		// Raw screen-space delta; no world math involved.
		delta := screen.Sub(g.lastScreen)
		s.cam.Pan = s.cam.Pan.Add(delta)
		s.emitView()
	case ModeDraw:
		s.updateDraft(world)
	case ModeMove:
		dx := world.X - g.startWorld.X
		dy := world.Y - g.startWorld.Y
		for id, snap := range g.snapshots {
			moved := snap.Clone()
			moved.Translate(dx, dy)
			s.state.Scene.ReplaceElement(id, moved)
		}
		s.emitScene()
	case ModeResize:
		s.applyResize(world)
	case ModeSelectBox:
		g.boxCurrent = world
		s.emitScene()
	case ModeErase:
		s.eraseAt(world)
	case ModeLaser:
		s.appendLaser(screen)
	}

	g.lastScreen = screen
}

// PointerUp finishes the gesture, committing to history where the scene
// actually changed.
func (s *Session) PointerUp(screen geometry.Point2D) {
	g := &s.gesture
	mode := g.mode
	g.mode = ModeNone

	switch mode {
	case ModeDraw:
		s.finishDraw()
	case ModeMove:
		g.snapshots = nil
		s.commitIfChanged()
	case ModeResize:
		if el := s.state.Scene.Get(g.target); el != nil {
			scene.Normalize(el)
		}
		g.snapshots = nil
		s.commitIfChanged()
		s.emitScene()
	case ModeSelectBox:
		s.finishSelectBox()
	case ModeErase:
		s.commitIfChanged()
	}
}

// PointerHover tracks the pointer with no button held: it rubber-bands a
// path under construction and maintains the hover highlight.
func (s *Session) PointerHover(screen geometry.Point2D) {
	world := s.cam.ScreenToWorld(screen)

	if p, ok := s.state.Scene.Draft().(*scene.Path); ok {
		p.Points[len(p.Points)-1] = world
		s.emitScene()
		return
	}

	if s.gesture.mode != ModeNone || s.effectiveTool() != ToolSelect {
		return
	}
	var id string
	if hit := s.state.Scene.TopmostAt(world, s.cam.Scale); hit != nil {
		id = hit.ElementID()
	}
	if id != s.state.Scene.Hover() {
		s.state.Scene.SetHover(id)
		s.state.Emit(app.EventHoverChanged, id)
	}
}

// DoubleTap finalizes a path under construction, or opens the text editor
// when double-clicking a text element with the selection tool.
func (s *Session) DoubleTap(screen geometry.Point2D) {
	if _, ok := s.state.Scene.Draft().(*scene.Path); ok {
		s.finishPath()
		return
	}

	if s.effectiveTool() != ToolSelect {
		return
	}
	world := s.cam.ScreenToWorld(screen)
	if txt, ok := s.state.Scene.TopmostAt(world, s.cam.Scale).(*scene.Text); ok && s.textPrompt != nil {
		s.textPrompt(world, txt)
	}
}

// beginSelect decides between resizing, moving, and box selection.
func (s *Session) beginSelect(world geometry.Point2D, mods Modifiers) {
	g := &s.gesture
	sc := s.state.Scene

	// Resize handles win over element hits, single selection only.
	if sole := sc.SoleSelected(); sole != nil {
		if h := scene.HandleAt(sole, world, s.cam.Scale); h != scene.HandleNone {
			g.mode = ModeResize
			g.handle = h
			g.target = sole.ElementID()
			g.snapshots = map[string]scene.Element{g.target: sole.Clone()}
			return
		}
	}

	hit := sc.TopmostAt(world, s.cam.Scale)
	if hit == nil {
		g.mode = ModeSelectBox
		g.boxCurrent = world
		g.additive = mods.Shift
		if !mods.Shift && sc.SelectionCount() > 0 {
			sc.ClearSelection()
			s.emitSelection()
		}
		s.emitScene()
		return
	}

	id := hit.ElementID()
	switch {
	case mods.Shift && sc.IsSelected(id):
		// Shift-click on a selected element only deselects it.
		sc.ToggleSelect(id)
		s.emitSelection()
		s.emitScene()
		return
	case mods.Shift:
		sc.Select(id)
		s.emitSelection()
	case !sc.IsSelected(id):
		sc.SelectOnly(id)
		s.emitSelection()
	}

	g.mode = ModeMove
	g.snapshots = make(map[string]scene.Element)
	for _, el := range sc.SelectedElements() {
		g.snapshots[el.ElementID()] = el.Clone()
	}
}

// beginDraw pins a zero-extent draft of the tool's kind at the click point.
func (s *Session) beginDraw(tool Tool, world geometry.Point2D) {
	var draft scene.Element
	switch tool {
	case ToolRectangle:
		draft = s.newShape(scene.KindRectangle, world)
	case ToolDiamond:
		draft = s.newShape(scene.KindDiamond, world)
	case ToolEllipse:
		draft = s.newShape(scene.KindEllipse, world)
	case ToolArrow:
		end := s.endArrow
		if end == scene.ArrowheadNone {
			end = scene.ArrowheadArrow
		}
		draft = &scene.Line{ID: scene.NewID(), Kind: scene.KindArrow, X: world.X, Y: world.Y,
			StartArrowhead: s.startArrow, EndArrowhead: end, Style: s.style}
	case ToolLine:
		draft = &scene.Line{ID: scene.NewID(), Kind: scene.KindLine, X: world.X, Y: world.Y,
			StartArrowhead: s.startArrow, EndArrowhead: s.endArrow, Style: s.style}
	case ToolPencil:
		draft = scene.NewStroke(world, s.style)
	case ToolImage:
		draft = &scene.Image{ID: scene.NewID(), Kind: scene.KindImage, X: world.X, Y: world.Y, Style: s.style}
	case ToolLongPosition:
		draft = scene.NewPosition(scene.KindLongPosition, world, s.style)
	case ToolShortPosition:
		draft = scene.NewPosition(scene.KindShortPosition, world, s.style)
	default:
		s.gesture.mode = ModeNone
		return
	}
	s.state.Scene.SetDraft(draft)
	s.emitScene()
}

func (s *Session) newShape(kind scene.Kind, world geometry.Point2D) *scene.Shape {
	return &scene.Shape{ID: scene.NewID(), Kind: kind, X: world.X, Y: world.Y, Style: s.style}
}

// updateDraft stretches the draft's signed extent to the pointer, or
// appends a pencil point.
func (s *Session) updateDraft(world geometry.Point2D) {
	switch el := s.state.Scene.Draft().(type) {
	case nil:
		return
	case *scene.Stroke:
		el.AppendPoint(world)
	case *scene.Shape:
		el.Width = world.X - el.X
		el.Height = world.Y - el.Y
	case *scene.Line:
		el.Width = world.X - el.X
		el.Height = world.Y - el.Y
	case *scene.Image:
		el.Width = world.X - el.X
		el.Height = world.Y - el.Y
	case *scene.Position:
		el.Width = world.X - el.X
		el.Height = world.Y - el.Y
	}
	s.emitScene()
}

// finishDraw commits the draft: normalize, add, select, revert the tool.
func (s *Session) finishDraw() {
	d := s.state.Scene.TakeDraft()
	if d == nil {
		return
	}

	if st, ok := d.(*scene.Stroke); ok && s.smoothing {
		SmoothStroke(st)
	}

	scene.Normalize(d)
	s.state.Scene.Add(d)
	s.state.Scene.SelectOnly(d.ElementID())
	s.commit()
	s.emitSelection()

	// A drawn image is a placeholder until the host supplies its data.
	if img, ok := d.(*scene.Image); ok && len(img.Data) == 0 && s.imagePrompt != nil {
		s.imagePrompt(img)
	}

	s.revertToolAfterCommit()
}

// pathClick starts a path or pins its current rubber-band point.
func (s *Session) pathClick(world geometry.Point2D) {
	if p, ok := s.state.Scene.Draft().(*scene.Path); ok {
		p.Points = append(p.Points, world)
	} else {
		p := scene.NewPath(world, s.style)
		p.StartArrowhead = s.startArrow
		p.EndArrowhead = s.endArrow
		s.state.Scene.SetDraft(p)
	}
	s.emitScene()
}

// finishPath commits the path under construction. The double-click lands
// on the previous click, so trailing duplicate points are dropped first; a
// path left with fewer than two points is discarded.
func (s *Session) finishPath() {
	p, _ := s.state.Scene.TakeDraft().(*scene.Path)
	if p == nil {
		return
	}

	for len(p.Points) >= 2 && p.Points[len(p.Points)-1] == p.Points[len(p.Points)-2] {
		p.Points = p.Points[:len(p.Points)-1]
	}
	if len(p.Points) < 2 {
		s.emitScene()
		return
	}

	s.state.Scene.Add(p)
	s.state.Scene.SelectOnly(p.ID)
	s.commit()
	s.emitSelection()
	s.revertToolAfterCommit()
}

// finishSelectBox selects the elements fully inside the dragged box,
// strict containment. Shift unions with the prior selection.
func (s *Session) finishSelectBox() {
	g := &s.gesture
	box := geometry.RectFromCorners(g.startWorld, g.boxCurrent)
	ids := s.state.Scene.FullyInside(box)
	if g.additive {
		ids = append(s.state.Scene.SelectedIDs(), ids...)
	}
	s.state.Scene.SetSelection(ids)
	s.emitSelection()
	s.emitScene()
}

// applyResize rebuilds the resized element from its pointer-down snapshot
// with the accumulated delta, so intermediate moves never compound.
func (s *Session) applyResize(world geometry.Point2D) {
	g := &s.gesture
	snap := g.snapshots[g.target]
	if snap == nil {
		return
	}
	dx := world.X - g.startWorld.X
	dy := world.Y - g.startWorld.Y

	el := snap.Clone()
	switch e := el.(type) {
	case *scene.Shape:
		resizeBox(&e.X, &e.Y, &e.Width, &e.Height, g.handle, dx, dy)
	case *scene.Image:
		resizeBox(&e.X, &e.Y, &e.Width, &e.Height, g.handle, dx, dy)
	case *scene.Position:
		if g.handle == scene.HandleEntry {
			base := snap.(*scene.Position)
			if base.Height != 0 {
				ratio := (world.Y - base.Y) / base.Height
				e.EntryRatio = clampRatio(ratio)
			}
		} else {
			resizeBox(&e.X, &e.Y, &e.Width, &e.Height, g.handle, dx, dy)
		}
	default:
		return
	}

	s.state.Scene.ReplaceElement(g.target, el)
	s.emitScene()
}

// resizeBox applies a handle delta to box geometry. North and west handles
// move the origin and shrink the extent; south and east only grow it.
func resizeBox(x, y, w, h *float64, handle scene.Handle, dx, dy float64) {
	switch handle {
	case scene.HandleNW:
		*x += dx
		*y += dy
		*w -= dx
		*h -= dy
	case scene.HandleNE:
		*y += dy
		*w += dx
		*h -= dy
	case scene.HandleSW:
		*x += dx
		*w -= dx
		*h += dy
	case scene.HandleSE:
		*w += dx
		*h += dy
	case scene.HandleN:
		*y += dy
		*h -= dy
	case scene.HandleS:
		*h += dy
	}
}

// The divider must stay visibly inside the marker.
func clampRatio(r float64) float64 {
	if r < 0.05 {
		return 0.05
	}
	if r > 0.95 {
		return 0.95
	}
	return r
}

// eraseAt removes every element whose origin lies strictly within the
// eraser radius of the point. The radius is screen-fixed, so it is divided
// by scale; an element at exactly the radius is retained.
func (s *Session) eraseAt(world geometry.Point2D) {
	radius := s.eraserRadius / s.cam.Scale
	var victims []string
	for _, el := range s.state.Scene.Elements() {
		if radius > world.Distance(el.Origin()) {
			victims = append(victims, el.ElementID())
		}
	}
	if len(victims) == 0 {
		return
	}
	for _, id := range victims {
		s.state.Scene.Remove(id)
	}
	s.emitScene()
	s.emitSelection()
}
