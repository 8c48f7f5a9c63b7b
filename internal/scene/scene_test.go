package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chart-board/pkg/geometry"
)

func addRect(s *Scene, x, y, w, h float64) *Shape {
	e := &Shape{ID: NewID(), Kind: KindRectangle, X: x, Y: y, Width: w, Height: h, Style: testStyle()}
	s.Add(e)
	return e
}

func TestReplaceElementKeepsZOrderAndSelection(t *testing.T) {
	s := New()
	a := addRect(s, 0, 0, 10, 10)
	b := addRect(s, 20, 20, 10, 10)
	addRect(s, 40, 40, 10, 10)
	s.Select(b.ID)

	moved := b.Clone()
	moved.Translate(5, 5)
	require.True(t, s.ReplaceElement(b.ID, moved))

	assert.Same(t, moved, s.Elements()[1])
	assert.True(t, s.IsSelected(b.ID))
	assert.False(t, s.ReplaceElement("absent", a.Clone()))
}

func TestSceneAddRemove(t *testing.T) {
	s := New()
	a := addRect(s, 0, 0, 10, 10)
	b := addRect(s, 20, 20, 10, 10)

	require.Equal(t, 2, s.Len())
	assert.Same(t, a, s.Get(a.ID))

	s.Select(b.ID)
	s.SetHover(b.ID)
	require.True(t, s.Remove(b.ID))

	assert.Equal(t, 1, s.Len())
	assert.Nil(t, s.Get(b.ID))
	assert.False(t, s.IsSelected(b.ID), "removal drops selection")
	assert.Equal(t, "", s.Hover(), "removal drops hover")
	assert.False(t, s.Remove(b.ID), "second removal is a no-op")
}

func TestSceneTopmostAt(t *testing.T) {
	s := New()
	bottom := addRect(s, 0, 0, 100, 100)
	top := addRect(s, 50, 50, 100, 100)

	// Overlap region resolves to the later (topmost) element.
	hit := s.TopmostAt(geometry.Point2D{X: 75, Y: 75}, 1)
	require.NotNil(t, hit)
	assert.Equal(t, top.ID, hit.ElementID())

	hit = s.TopmostAt(geometry.Point2D{X: 10, Y: 10}, 1)
	require.NotNil(t, hit)
	assert.Equal(t, bottom.ID, hit.ElementID())

	assert.Nil(t, s.TopmostAt(geometry.Point2D{X: 500, Y: 500}, 1))
}

func TestSceneFullyInsideIsStrictContainment(t *testing.T) {
	s := New()
	inside := addRect(s, 10, 10, 20, 20)
	partial := addRect(s, 90, 90, 40, 40)
	outside := addRect(s, 300, 300, 10, 10)

	box := geometry.NewRect(0, 0, 100, 100)
	ids := s.FullyInside(box)

	assert.Equal(t, []string{inside.ID}, ids)
	assert.NotContains(t, ids, partial.ID, "partial overlap must be excluded")
	assert.NotContains(t, ids, outside.ID)
}

func TestSceneSelection(t *testing.T) {
	s := New()
	a := addRect(s, 0, 0, 10, 10)
	b := addRect(s, 20, 0, 10, 10)
	c := addRect(s, 40, 0, 10, 10)

	s.Select(a.ID)
	s.Select(c.ID)
	assert.Equal(t, []string{a.ID, c.ID}, s.SelectedIDs(), "ids come back in z-order")

	s.ToggleSelect(a.ID)
	assert.False(t, s.IsSelected(a.ID))
	s.ToggleSelect(a.ID)
	assert.True(t, s.IsSelected(a.ID))

	s.SelectOnly(b.ID)
	assert.Equal(t, []string{b.ID}, s.SelectedIDs())
	require.NotNil(t, s.SoleSelected())
	assert.Equal(t, b.ID, s.SoleSelected().ElementID())

	s.Select(c.ID)
	assert.Nil(t, s.SoleSelected(), "two selected elements have no sole selection")

	s.Select("missing")
	assert.False(t, s.IsSelected("missing"), "unknown ids are not selectable")
}

func TestSceneSnapshotRestore(t *testing.T) {
	s := New()
	a := addRect(s, 0, 0, 10, 10)
	snap := s.Snapshot()

	// Mutating the scene leaves the snapshot untouched.
	a.Translate(100, 100)
	addRect(s, 50, 50, 5, 5)
	s.Select(a.ID)

	s.Restore(snap)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, geometry.NewRect(0, 0, 10, 10), s.Elements()[0].Bounds())
	assert.Equal(t, 0, s.SelectionCount(), "restore clears selection")
	assert.Nil(t, s.Draft())
}

func TestElementsEqual(t *testing.T) {
	s := New()
	addRect(s, 0, 0, 10, 10)

	snap := s.Snapshot()
	assert.True(t, ElementsEqual(s.Elements(), snap))

	s.Elements()[0].Translate(1, 0)
	assert.False(t, ElementsEqual(s.Elements(), snap))
}
