package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"chart-board/internal/scene"
	"chart-board/pkg/colorutil"
	"chart-board/pkg/geometry"
)

// Decoration sizes in screen pixels.
const (
	selectionMarginPx = 4
	handleSizePx      = 8
	glowWidthPx       = 6
	laserThicknessPx  = 3
	pathVertexPx      = 3
)

// LaserDot is one screen-space laser trail point with its current fade
// alpha, computed by the canvas from the session clock.
type LaserDot struct {
	Pos   geometry.Point2D
	Alpha float64
}

// Frame is everything one paint pass needs. The renderer never reaches back
// into mutable state; the canvas assembles a frame per redraw.
type Frame struct {
	Elements []scene.Element
	Draft    scene.Element
	Selected []string
	Hover    string

	Cam  geometry.Camera
	Dark bool

	ShowGrid    bool
	GridSpacing float64
	ShowRulers  bool
	ShowMinimap bool

	// SelectionBox is the active rubber-band rectangle in world space.
	SelectionBox *geometry.Rect

	Laser []LaserDot
}

// Renderer paints frames onto RGBA images. It owns the decoded-image cache;
// everything else arrives with the frame.
type Renderer struct {
	images *ImageCache
}

// NewRenderer creates a renderer around the given cache. A nil cache gets a
// fresh one.
func NewRenderer(cache *ImageCache) *Renderer {
	if cache == nil {
		cache = NewImageCache()
	}
	return &Renderer{images: cache}
}

// Images returns the decoded-image cache, shared with the exporter.
func (r *Renderer) Images() *ImageCache {
	return r.images
}

// Paint renders a complete frame onto dst.
func (r *Renderer) Paint(dst *image.RGBA, f *Frame) {
	pal := PaletteFor(f.Dark)
	w := dst.Bounds().Dx()
	h := dst.Bounds().Dy()

	draw.Draw(dst, dst.Bounds(), image.NewUniform(pal.Background), image.Point{}, draw.Src)

	if f.ShowGrid {
		r.drawGrid(dst, f.Cam, f.GridSpacing, w, h, pal)
	}

	selected := make(map[string]bool, len(f.Selected))
	for _, id := range f.Selected {
		selected[id] = true
	}

	for _, el := range f.Elements {
		if selected[el.ElementID()] || el.ElementID() == f.Hover {
			r.glowElement(dst, el, f.Cam, pal)
		}
		r.drawElement(dst, el, f.Cam, pal)
	}

	if f.Draft != nil {
		r.drawElement(dst, f.Draft, f.Cam, pal)
	}

	r.drawSelectionDecorations(dst, f, selected, pal)

	if f.SelectionBox != nil {
		r.drawSelectionBox(dst, *f.SelectionBox, f.Cam, pal)
	}

	r.drawLaser(dst, f.Laser, pal)

	if f.ShowMinimap {
		drawMinimap(dst, f.Elements, f.Cam, w, h, pal)
	}
	if f.ShowRulers {
		drawRulers(dst, f.Cam, w, h, pal)
	}
}

// drawGrid draws world-space grid lines. The grid disappears when zoomed
// out so far that lines would merge.
func (r *Renderer) drawGrid(dst *image.RGBA, cam geometry.Camera, spacing float64, w, h int, pal Palette) {
	if spacing <= 0 {
		return
	}
	px := spacing * cam.Scale
	if px < 4 {
		return
	}

	vis := cam.VisibleWorldRect(float64(w), float64(h))

	for wx := math.Ceil(vis.X/spacing) * spacing; wx <= vis.X+vis.Width; wx += spacing {
		sx := int(wx*cam.Scale + cam.Pan.X)
		drawSeg(dst, sx, 0, sx, h-1, pal.Grid, 1, dashSpec{}, 0)
	}
	for wy := math.Ceil(vis.Y/spacing) * spacing; wy <= vis.Y+vis.Height; wy += spacing {
		sy := int(wy*cam.Scale + cam.Pan.Y)
		drawSeg(dst, 0, sy, w-1, sy, pal.Grid, 1, dashSpec{}, 0)
	}
}

// drawElement paints one element with its own stroke attributes.
func (r *Renderer) drawElement(dst *image.RGBA, el scene.Element, cam geometry.Camera, pal Palette) {
	r.drawElementStyled(dst, el, cam, pal, *el.StyleRef())
}

// glowElement paints a soft halo under a hovered or selected element:
// stroke kinds are repainted with a widened stroke at low alpha, filled and
// box kinds get a widened bounds outline instead.
func (r *Renderer) glowElement(dst *image.RGBA, el scene.Element, cam geometry.Camera, pal Palette) {
	switch el.ElementKind() {
	case scene.KindText, scene.KindImage, scene.KindLongPosition, scene.KindShortPosition:
		x1, y1, x2, y2 := screenBox(el.Bounds().Expand(2/cam.Scale), cam)
		glow := pal.Accent
		glow.A = 60
		strokeRect(dst, x1, y1, x2, y2, glow, 3, dashSpec{})
	default:
		st := *el.StyleRef()
		st.Color = colorutil.Hex(pal.Accent)
		st.Width += glowWidthPx / cam.Scale
		st.Opacity = 30
		r.drawElementStyled(dst, el, cam, pal, st)
	}
}

func (r *Renderer) drawElementStyled(dst *image.RGBA, el scene.Element, cam geometry.Camera, pal Palette, st scene.Style) {
	col := strokeColor(st.Color, st.Opacity, pal)
	th := thicknessFor(st.Width, cam.Scale)
	dash := dashFor(string(st.Stroke), th)

	switch e := el.(type) {
	case *scene.Shape:
		x1, y1, x2, y2 := screenBox(e.Bounds(), cam)
		switch e.Kind {
		case scene.KindDiamond:
			strokePolygon(dst, diamondPoints(x1, y1, x2, y2), col, th, dash)
		case scene.KindEllipse:
			strokeEllipse(dst, x1, y1, x2, y2, col, th, dash)
		default:
			strokeRect(dst, x1, y1, x2, y2, col, th, dash)
		}

	case *scene.Line:
		r.drawLineElement(dst, e, cam, col, th, dash)

	case *scene.Stroke:
		drawPolyline(dst, screenPts(e.Points, cam), col, th, dash)

	case *scene.Path:
		r.drawPathElement(dst, e, cam, col, th, dash)

	case *scene.Text:
		tl := cam.WorldToScreen(geometry.NewPoint2D(e.X, e.Y))
		drawText(dst, e, tl.X, tl.Y, e.Width*cam.Scale, cam.Scale, col)

	case *scene.Image:
		r.drawImageElement(dst, e, cam, st)

	case *scene.Position:
		r.drawPositionElement(dst, e, cam, pal, col, th, dash)
	}
}

// drawLineElement draws a single segment with optional arrowheads. The
// arrow kind always gets an end arrowhead, even on boards saved before one
// was chosen.
func (r *Renderer) drawLineElement(dst *image.RGBA, e *scene.Line, cam geometry.Camera, col color.RGBA, th int, dash dashSpec) {
	a := cam.WorldToScreen(geometry.NewPoint2D(e.X, e.Y))
	b := cam.WorldToScreen(geometry.NewPoint2D(e.X+e.Width, e.Y+e.Height))
	drawSeg(dst, int(a.X), int(a.Y), int(b.X), int(b.Y), col, th, dash, 0)

	start := normalizeArrowhead(e.StartArrowhead)
	end := normalizeArrowhead(e.EndArrowhead)
	if e.Kind == scene.KindArrow && start == scene.ArrowheadNone && end == scene.ArrowheadNone {
		end = scene.ArrowheadArrow
	}
	if start != scene.ArrowheadNone {
		drawArrowhead(dst, string(start), a.X, a.Y, b.X, b.Y, col, th)
	}
	if end != scene.ArrowheadNone {
		drawArrowhead(dst, string(end), b.X, b.Y, a.X, a.Y, col, th)
	}
}

// drawPathElement draws a polyline with a small circle at every vertex and
// arrowheads along the first/last segment tangents.
func (r *Renderer) drawPathElement(dst *image.RGBA, e *scene.Path, cam geometry.Camera, col color.RGBA, th int, dash dashSpec) {
	pts := screenPts(e.Points, cam)
	drawPolyline(dst, pts, col, th, dash)

	vr := pathVertexPx + th/2
	for _, p := range pts {
		fillCircle(dst, p.X, p.Y, vr, col)
	}

	if len(e.Points) < 2 {
		return
	}
	first := cam.WorldToScreen(e.Points[0])
	second := cam.WorldToScreen(e.Points[1])
	last := cam.WorldToScreen(e.Points[len(e.Points)-1])
	prev := cam.WorldToScreen(e.Points[len(e.Points)-2])

	if ah := normalizeArrowhead(e.StartArrowhead); ah != scene.ArrowheadNone {
		drawArrowhead(dst, string(ah), first.X, first.Y, second.X, second.Y, col, th)
	}
	if ah := normalizeArrowhead(e.EndArrowhead); ah != scene.ArrowheadNone {
		drawArrowhead(dst, string(ah), last.X, last.Y, prev.X, prev.Y, col, th)
	}
}

// normalizeArrowhead maps the zero value to "none". Boards written by other
// tools omit the fields entirely, so they decode as empty strings.
func normalizeArrowhead(a scene.Arrowhead) scene.Arrowhead {
	if a == "" {
		return scene.ArrowheadNone
	}
	return a
}

// drawImageElement composites the cached decoded bitmap scaled into the
// element box. Elements whose data never decoded are skipped.
func (r *Renderer) drawImageElement(dst *image.RGBA, e *scene.Image, cam geometry.Camera, st scene.Style) {
	src := r.images.Get(e.ID, e.Data)
	if src == nil {
		return
	}

	x1, y1, x2, y2 := screenBox(e.Bounds(), cam)
	dr := image.Rect(x1, y1, x2, y2)
	if dr.Empty() {
		return
	}

	if st.Opacity >= 100 {
		xdraw.ApproxBiLinear.Scale(dst, dr, src, src.Bounds(), xdraw.Over, nil)
		return
	}
	if st.Opacity <= 0 {
		return
	}

	tmp := image.NewRGBA(image.Rect(0, 0, dr.Dx(), dr.Dy()))
	xdraw.ApproxBiLinear.Scale(tmp, tmp.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	compositeWithOpacity(dst, tmp, dr.Min.X, dr.Min.Y, float64(st.Opacity)/100)
}

// compositeWithOpacity blends a premultiplied source image over dst with an
// extra opacity factor.
func compositeWithOpacity(dst, src *image.RGBA, atX, atY int, factor float64) {
	b := src.Bounds()
	db := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		dy := atY + y - b.Min.Y
		if dy < db.Min.Y || dy >= db.Max.Y {
			continue
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := atX + x - b.Min.X
			if dx < db.Min.X || dx >= db.Max.X {
				continue
			}
			p := src.RGBAAt(x, y)
			if p.A == 0 {
				continue
			}
			a := float64(p.A) / 255 * factor
			inv := 1 - a
			d := dst.RGBAAt(dx, dy)
			dst.SetRGBA(dx, dy, color.RGBA{
				R: uint8(float64(p.R)*factor + float64(d.R)*inv),
				G: uint8(float64(p.G)*factor + float64(d.G)*inv),
				B: uint8(float64(p.B)*factor + float64(d.B)*inv),
				A: 255,
			})
		}
	}
}

// drawPositionElement draws a trade marker: profit and loss zones split at
// the entry divider, a border, and the divider line. Long positions profit
// upward, so their profit zone is the upper one; short markers invert.
func (r *Renderer) drawPositionElement(dst *image.RGBA, e *scene.Position, cam geometry.Camera, pal Palette, col color.RGBA, th int, dash dashSpec) {
	b := e.Bounds()
	x1, y1, x2, y2 := screenBox(b, cam)
	divider := cam.WorldToScreen(geometry.NewPoint2D(b.X, b.Y+e.EntryRatio*b.Height))
	dy := int(divider.Y)

	top, bottom := pal.Profit, pal.Loss
	if e.Kind == scene.KindShortPosition {
		top, bottom = bottom, top
	}
	if dy > y1 {
		fillRect(dst, x1, y1, x2, dy, top)
	}
	if y2 > dy {
		fillRect(dst, x1, dy, x2, y2, bottom)
	}

	strokeRect(dst, x1, y1, x2, y2, col, th, dash)
	drawSeg(dst, x1, dy, x2, dy, col, th, dashSpec{}, 0)
}

// drawSelectionDecorations overlays dashed borders on every selected
// element and resize handles when exactly one resizable element is
// selected.
func (r *Renderer) drawSelectionDecorations(dst *image.RGBA, f *Frame, selected map[string]bool, pal Palette) {
	if len(selected) == 0 {
		return
	}

	margin := selectionMarginPx / f.Cam.Scale
	for _, el := range f.Elements {
		if !selected[el.ElementID()] {
			continue
		}
		x1, y1, x2, y2 := screenBox(el.Bounds().Expand(margin), f.Cam)
		strokeRect(dst, x1, y1, x2, y2, pal.Accent, 1, dashSpec{on: 4, off: 4})
	}

	if len(selected) != 1 {
		return
	}
	for _, el := range f.Elements {
		if selected[el.ElementID()] && scene.Resizable(el) {
			r.drawHandles(dst, el, f.Cam, pal)
			return
		}
	}
}

// drawHandles draws the corner resize grips, plus the midpoint and entry
// grips for position markers.
func (r *Renderer) drawHandles(dst *image.RGBA, el scene.Element, cam geometry.Camera, pal Palette) {
	b := el.Bounds()
	x1, y1, x2, y2 := screenBox(b, cam)

	for _, at := range []image.Point{{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x1, Y: y2}, {X: x2, Y: y2}} {
		r.drawHandleSquare(dst, at.X, at.Y, pal)
	}

	if pos, ok := el.(*scene.Position); ok {
		cx := (x1 + x2) / 2
		r.drawHandleSquare(dst, cx, y1, pal)
		r.drawHandleSquare(dst, cx, y2, pal)

		entry := cam.WorldToScreen(geometry.NewPoint2D(b.X+b.Width, b.Y+pos.EntryRatio*b.Height))
		fillCircle(dst, int(entry.X), int(entry.Y), handleSizePx/2, pal.Accent)
		strokeCircle(dst, int(entry.X), int(entry.Y), handleSizePx/2, 1, pal.HandleFill)
	}
}

func (r *Renderer) drawHandleSquare(dst *image.RGBA, cx, cy int, pal Palette) {
	half := handleSizePx / 2
	fillRect(dst, cx-half, cy-half, cx+half, cy+half, pal.HandleFill)
	strokeRect(dst, cx-half, cy-half, cx+half, cy+half, pal.Accent, 1, dashSpec{})
}

// drawSelectionBox overlays the in-progress rubber-band rectangle.
func (r *Renderer) drawSelectionBox(dst *image.RGBA, box geometry.Rect, cam geometry.Camera, pal Palette) {
	x1, y1, x2, y2 := screenBox(box, cam)
	fillRect(dst, x1, y1, x2, y2, pal.BoxFill)
	strokeRect(dst, x1, y1, x2, y2, pal.Accent, 1, dashSpec{})
}

// drawLaser strokes the fading trail. Each segment blends the alphas of its
// two endpoints.
func (r *Renderer) drawLaser(dst *image.RGBA, dots []LaserDot, pal Palette) {
	if len(dots) == 0 {
		return
	}

	if len(dots) == 1 {
		col := laserColor(pal, dots[0].Alpha)
		fillCircle(dst, int(dots[0].Pos.X), int(dots[0].Pos.Y), laserThicknessPx, col)
		return
	}

	for i := 0; i < len(dots)-1; i++ {
		a, b := dots[i], dots[i+1]
		col := laserColor(pal, (a.Alpha+b.Alpha)/2)
		drawSeg(dst, int(a.Pos.X), int(a.Pos.Y), int(b.Pos.X), int(b.Pos.Y), col, laserThicknessPx, dashSpec{}, 0)
		fillCircle(dst, int(b.Pos.X), int(b.Pos.Y), laserThicknessPx/2, col)
	}
}

func laserColor(pal Palette, alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	col := pal.Laser
	col.A = uint8(alpha * 255)
	return col
}

// screenBox converts a world rectangle to integer screen corners.
func screenBox(r geometry.Rect, cam geometry.Camera) (x1, y1, x2, y2 int) {
	tl := cam.WorldToScreen(r.TopLeft())
	br := cam.WorldToScreen(r.BottomRight())
	return int(tl.X), int(tl.Y), int(br.X), int(br.Y)
}

// screenPts converts world points to integer screen points.
func screenPts(pts []geometry.Point2D, cam geometry.Camera) []image.Point {
	out := make([]image.Point, len(pts))
	for i, p := range pts {
		s := cam.WorldToScreen(p)
		out[i] = image.Point{X: int(s.X), Y: int(s.Y)}
	}
	return out
}

func diamondPoints(x1, y1, x2, y2 int) []image.Point {
	cx := (x1 + x2) / 2
	cy := (y1 + y2) / 2
	return []image.Point{{X: cx, Y: y1}, {X: x2, Y: cy}, {X: cx, Y: y2}, {X: x1, Y: cy}}
}

func thicknessFor(width, scale float64) int {
	th := int(math.Round(width * scale))
	if th < 1 {
		th = 1
	}
	return th
}
