// Package scene defines the drawable element union and the mutable scene
// that owns the ordered element list, selection, and hover state.
package scene

import (
	"github.com/google/uuid"

	"chart-board/pkg/geometry"
)

// Kind identifies the concrete type of an element.
type Kind string

const (
	KindRectangle     Kind = "rectangle"
	KindDiamond       Kind = "diamond"
	KindEllipse       Kind = "ellipse"
	KindArrow         Kind = "arrow"
	KindLine          Kind = "line"
	KindPencil        Kind = "pencil"
	KindPath          Kind = "path"
	KindText          Kind = "text"
	KindImage         Kind = "image"
	KindLongPosition  Kind = "long_position"
	KindShortPosition Kind = "short_position"
)

// StrokeStyle selects the dash pattern of an outline.
type StrokeStyle string

const (
	StrokeSolid  StrokeStyle = "solid"
	StrokeDashed StrokeStyle = "dashed"
	StrokeDotted StrokeStyle = "dotted"
)

// Arrowhead selects the decoration drawn at a segment end.
type Arrowhead string

const (
	ArrowheadNone  Arrowhead = "none"
	ArrowheadArrow Arrowhead = "arrow"
	ArrowheadDot   Arrowhead = "dot"
)

// FontFamily selects one of the embedded font families.
type FontFamily string

const (
	FontSans FontFamily = "sans"
	FontMono FontFamily = "mono"
)

// TextAlign is the horizontal alignment of a text element.
type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// Style carries the stroke attributes shared by every element kind.
type Style struct {
	Color   string      `json:"color"`
	Width   float64     `json:"width"`
	Stroke  StrokeStyle `json:"stroke"`
	Opacity int         `json:"opacity"` // 0-100
}

// Element is the common interface implemented by every drawable kind.
type Element interface {
	// ElementID returns the unique identifier.
	ElementID() string

	// ElementKind returns the kind tag.
	ElementKind() Kind

	// Bounds returns the axis-aligned bounding box in world space.
	// Valid for signed (pre-normalization) extents.
	Bounds() geometry.Rect

	// Origin returns the element's stored origin point. This is what the
	// eraser measures against, not the bounding box.
	Origin() geometry.Point2D

	// Translate shifts the element by (dx, dy) world units.
	Translate(dx, dy float64)

	// Clone returns an independent deep copy.
	Clone() Element

	// StyleRef returns the mutable shared stroke attributes.
	StyleRef() *Style
}

// NewID returns a fresh element identifier.
func NewID() string {
	return uuid.NewString()
}

// AssignNewID gives the element a fresh identifier and returns it.
// Pasted copies must not collide with their sources.
func AssignNewID(el Element) string {
	id := NewID()
	switch e := el.(type) {
	case *Shape:
		e.ID = id
	case *Line:
		e.ID = id
	case *Stroke:
		e.ID = id
	case *Path:
		e.ID = id
	case *Text:
		e.ID = id
	case *Image:
		e.ID = id
	case *Position:
		e.ID = id
	}
	return id
}

// boxBounds computes bounds of a possibly negative-extent box.
func boxBounds(x, y, w, h float64) geometry.Rect {
	if w < 0 {
		x += w
		w = -w
	}
	if h < 0 {
		y += h
		h = -h
	}
	return geometry.Rect{X: x, Y: y, Width: w, Height: h}
}

// Shape is a box-bounded outline element: rectangle, diamond, or ellipse.
type Shape struct {
	ID     string  `json:"id"`
	Kind   Kind    `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Style  Style   `json:"style"`
}

func (s *Shape) ElementID() string { return s.ID }
func (s *Shape) ElementKind() Kind { return s.Kind }
func (s *Shape) Bounds() geometry.Rect { return boxBounds(s.X, s.Y, s.Width, s.Height) }
func (s *Shape) Origin() geometry.Point2D { return geometry.NewPoint2D(s.X, s.Y) }

func (s *Shape) Translate(dx, dy float64) {
	s.X += dx
	s.Y += dy
}

func (s *Shape) Clone() Element {
	c := *s
	return &c
}

func (s *Shape) StyleRef() *Style { return &s.Style }

// Line is a single segment from (X, Y) to (X+Width, Y+Height); the extent
// stays signed, lines are never normalized.
type Line struct {
	ID             string    `json:"id"`
	Kind           Kind      `json:"kind"`
	X              float64   `json:"x"`
	Y              float64   `json:"y"`
	Width          float64   `json:"width"`
	Height         float64   `json:"height"`
	StartArrowhead Arrowhead `json:"start_arrowhead,omitempty"`
	EndArrowhead   Arrowhead `json:"end_arrowhead,omitempty"`
	Style          Style     `json:"style"`
}

func (l *Line) ElementID() string { return l.ID }
func (l *Line) ElementKind() Kind { return l.Kind }
func (l *Line) Bounds() geometry.Rect { return boxBounds(l.X, l.Y, l.Width, l.Height) }
func (l *Line) Origin() geometry.Point2D { return geometry.NewPoint2D(l.X, l.Y) }

func (l *Line) Translate(dx, dy float64) {
	l.X += dx
	l.Y += dy
}

func (l *Line) Clone() Element {
	c := *l
	return &c
}

func (l *Line) StyleRef() *Style { return &l.Style }

// Stroke is a freehand pencil stroke. X/Y hold the first point and
// Width/Height grow as running maxima while drawing; rendering and bounds
// always derive from Points.
type Stroke struct {
	ID     string             `json:"id"`
	Kind   Kind               `json:"kind"`
	X      float64            `json:"x"`
	Y      float64            `json:"y"`
	Width  float64            `json:"width"`
	Height float64            `json:"height"`
	Points []geometry.Point2D `json:"points"`
	Style  Style              `json:"style"`
}

// NewStroke starts a pencil stroke at the given world point.
func NewStroke(at geometry.Point2D, style Style) *Stroke {
	return &Stroke{
		ID:     NewID(),
		Kind:   KindPencil,
		X:      at.X,
		Y:      at.Y,
		Points: []geometry.Point2D{at},
		Style:  style,
	}
}

// AppendPoint extends the stroke and updates the running extent maxima.
func (s *Stroke) AppendPoint(p geometry.Point2D) {
	s.Points = append(s.Points, p)
	if dx := p.X - s.X; dx > s.Width {
		s.Width = dx
	}
	if dy := p.Y - s.Y; dy > s.Height {
		s.Height = dy
	}
}

func (s *Stroke) ElementID() string { return s.ID }
func (s *Stroke) ElementKind() Kind { return s.Kind }
func (s *Stroke) Bounds() geometry.Rect { return geometry.BoundingBox(s.Points) }
func (s *Stroke) Origin() geometry.Point2D { return geometry.NewPoint2D(s.X, s.Y) }

func (s *Stroke) Translate(dx, dy float64) {
	s.X += dx
	s.Y += dy
	for i := range s.Points {
		s.Points[i].X += dx
		s.Points[i].Y += dy
	}
}

func (s *Stroke) Clone() Element {
	c := *s
	c.Points = append([]geometry.Point2D(nil), s.Points...)
	return &c
}

func (s *Stroke) StyleRef() *Style { return &s.Style }

// Path is a multi-click polyline committed on double-click. While being
// built, the last point rubber-bands with the pointer.
type Path struct {
	ID             string             `json:"id"`
	Kind           Kind               `json:"kind"`
	Points         []geometry.Point2D `json:"points"`
	StartArrowhead Arrowhead          `json:"start_arrowhead,omitempty"`
	EndArrowhead   Arrowhead          `json:"end_arrowhead,omitempty"`
	Style          Style              `json:"style"`
}

// NewPath starts a path with two coincident points at the click position;
// the second one is the rubber-band point.
func NewPath(at geometry.Point2D, style Style) *Path {
	return &Path{
		ID:     NewID(),
		Kind:   KindPath,
		Points: []geometry.Point2D{at, at},
		Style:  style,
	}
}

func (p *Path) ElementID() string { return p.ID }
func (p *Path) ElementKind() Kind { return p.Kind }
func (p *Path) Bounds() geometry.Rect { return geometry.BoundingBox(p.Points) }

// Origin is the first committed point of the path.
func (p *Path) Origin() geometry.Point2D {
	if len(p.Points) == 0 {
		return geometry.Point2D{}
	}
	return p.Points[0]
}

func (p *Path) Translate(dx, dy float64) {
	for i := range p.Points {
		p.Points[i].X += dx
		p.Points[i].Y += dy
	}
}

func (p *Path) Clone() Element {
	c := *p
	c.Points = append([]geometry.Point2D(nil), p.Points...)
	return &c
}

func (p *Path) StyleRef() *Style { return &p.Style }

// Text is a text label with stored font attributes. Width/Height are the
// measured extent at creation/edit time.
type Text struct {
	ID         string     `json:"id"`
	Kind       Kind       `json:"kind"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Content    string     `json:"content"`
	FontSize   float64    `json:"font_size"`
	FontFamily FontFamily `json:"font_family"`
	Bold       bool       `json:"bold,omitempty"`
	Italic     bool       `json:"italic,omitempty"`
	Align      TextAlign  `json:"align"`
	Style      Style      `json:"style"`
}

func (t *Text) ElementID() string { return t.ID }
func (t *Text) ElementKind() Kind { return t.Kind }
func (t *Text) Bounds() geometry.Rect { return boxBounds(t.X, t.Y, t.Width, t.Height) }
func (t *Text) Origin() geometry.Point2D { return geometry.NewPoint2D(t.X, t.Y) }

func (t *Text) Translate(dx, dy float64) {
	t.X += dx
	t.Y += dy
}

func (t *Text) Clone() Element {
	c := *t
	return &c
}

func (t *Text) StyleRef() *Style { return &t.Style }

// Image is an embedded raster element. Data holds the encoded bytes and is
// treated as immutable once set, so clones share it; the decoded bitmap
// lives in a separate cache keyed by element id and is never serialized.
type Image struct {
	ID     string  `json:"id"`
	Kind   Kind    `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Data   []byte  `json:"data,omitempty"`
	Style  Style   `json:"style"`
}

func (im *Image) ElementID() string { return im.ID }
func (im *Image) ElementKind() Kind { return im.Kind }
func (im *Image) Bounds() geometry.Rect { return boxBounds(im.X, im.Y, im.Width, im.Height) }
func (im *Image) Origin() geometry.Point2D { return geometry.NewPoint2D(im.X, im.Y) }

func (im *Image) Translate(dx, dy float64) {
	im.X += dx
	im.Y += dy
}

func (im *Image) Clone() Element {
	c := *im
	return &c
}

func (im *Image) StyleRef() *Style { return &im.Style }

// Position is a long/short trade marker: a box split by a horizontal entry
// divider into a profit zone and a loss zone. EntryRatio locates the divider
// as a fraction of the height from the top edge.
type Position struct {
	ID         string  `json:"id"`
	Kind       Kind    `json:"kind"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	EntryRatio float64 `json:"entry_ratio"`
	Style      Style   `json:"style"`
}

// NewPosition creates a long or short position marker with the divider
// centered.
func NewPosition(kind Kind, at geometry.Point2D, style Style) *Position {
	return &Position{
		ID:         NewID(),
		Kind:       kind,
		X:          at.X,
		Y:          at.Y,
		EntryRatio: 0.5,
		Style:      style,
	}
}

func (p *Position) ElementID() string { return p.ID }
func (p *Position) ElementKind() Kind { return p.Kind }
func (p *Position) Bounds() geometry.Rect { return boxBounds(p.X, p.Y, p.Width, p.Height) }
func (p *Position) Origin() geometry.Point2D { return geometry.NewPoint2D(p.X, p.Y) }

func (p *Position) Translate(dx, dy float64) {
	p.X += dx
	p.Y += dy
}

func (p *Position) Clone() Element {
	c := *p
	return &c
}

func (p *Position) StyleRef() *Style { return &p.Style }
