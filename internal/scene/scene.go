package scene

import (
	"reflect"

	"chart-board/pkg/geometry"
)

// Scene owns the ordered element collection. Slice order is the z-order:
// later elements draw on top. It also tracks the in-progress draft element,
// the selection set, and the single hovered element.
//
// The scene is single-threaded by contract: the interaction session is its
// only writer, the renderer a read-only observer.
type Scene struct {
	elements []Element
	draft    Element
	selected map[string]bool
	hover    string
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{selected: make(map[string]bool)}
}

// Elements returns the live z-ordered slice. Callers must not mutate it.
func (s *Scene) Elements() []Element {
	return s.elements
}

// Len returns the number of committed elements.
func (s *Scene) Len() int {
	return len(s.elements)
}

// Get returns the element with the given id, or nil.
func (s *Scene) Get(id string) Element {
	for _, el := range s.elements {
		if el.ElementID() == id {
			return el
		}
	}
	return nil
}

// Add appends an element on top of the z-order.
func (s *Scene) Add(el Element) {
	s.elements = append(s.elements, el)
}

// ReplaceElement swaps the element with the given id for a new value while
// keeping its z-position. Selection and hover survive because the id does.
func (s *Scene) ReplaceElement(id string, el Element) bool {
	for i, old := range s.elements {
		if old.ElementID() == id {
			s.elements[i] = el
			return true
		}
	}
	return false
}

// Remove deletes the element with the given id, dropping any selection and
// hover reference to it.
func (s *Scene) Remove(id string) bool {
	for i, el := range s.elements {
		if el.ElementID() == id {
			s.elements = append(s.elements[:i], s.elements[i+1:]...)
			delete(s.selected, id)
			if s.hover == id {
				s.hover = ""
			}
			return true
		}
	}
	return false
}

// Clear removes every element, the draft, the selection, and the hover.
func (s *Scene) Clear() {
	s.elements = nil
	s.draft = nil
	s.selected = make(map[string]bool)
	s.hover = ""
}

// Snapshot returns a deep copy of the committed elements, suitable for the
// history stack.
func (s *Scene) Snapshot() []Element {
	return CloneAll(s.elements)
}

// Restore replaces the committed elements with the given snapshot, taking
// ownership of it, and clears draft, selection, and hover.
func (s *Scene) Restore(snapshot []Element) {
	s.elements = snapshot
	s.draft = nil
	s.selected = make(map[string]bool)
	s.hover = ""
}

// SetDraft installs the in-progress element being drawn.
func (s *Scene) SetDraft(el Element) {
	s.draft = el
}

// Draft returns the in-progress element, or nil.
func (s *Scene) Draft() Element {
	return s.draft
}

// TakeDraft removes and returns the in-progress element.
func (s *Scene) TakeDraft() Element {
	d := s.draft
	s.draft = nil
	return d
}

// Select adds an element to the selection.
func (s *Scene) Select(id string) {
	if s.Get(id) != nil {
		s.selected[id] = true
	}
}

// SelectOnly replaces the selection with a single element.
func (s *Scene) SelectOnly(id string) {
	s.selected = make(map[string]bool)
	s.Select(id)
}

// ToggleSelect flips an element's selection membership.
func (s *Scene) ToggleSelect(id string) {
	if s.selected[id] {
		delete(s.selected, id)
	} else {
		s.Select(id)
	}
}

// SetSelection replaces the selection with the given ids.
func (s *Scene) SetSelection(ids []string) {
	s.selected = make(map[string]bool)
	for _, id := range ids {
		s.Select(id)
	}
}

// ClearSelection empties the selection set.
func (s *Scene) ClearSelection() {
	s.selected = make(map[string]bool)
}

// IsSelected reports selection membership.
func (s *Scene) IsSelected(id string) bool {
	return s.selected[id]
}

// SelectionCount returns the number of selected elements.
func (s *Scene) SelectionCount() int {
	return len(s.selected)
}

// SelectedIDs returns the selected ids in z-order.
func (s *Scene) SelectedIDs() []string {
	ids := make([]string, 0, len(s.selected))
	for _, el := range s.elements {
		if s.selected[el.ElementID()] {
			ids = append(ids, el.ElementID())
		}
	}
	return ids
}

// SelectedElements returns the selected elements in z-order.
func (s *Scene) SelectedElements() []Element {
	els := make([]Element, 0, len(s.selected))
	for _, el := range s.elements {
		if s.selected[el.ElementID()] {
			els = append(els, el)
		}
	}
	return els
}

// SoleSelected returns the single selected element, or nil when the
// selection is empty or holds more than one element.
func (s *Scene) SoleSelected() Element {
	if len(s.selected) != 1 {
		return nil
	}
	for id := range s.selected {
		return s.Get(id)
	}
	return nil
}

// SetHover records the hovered element id ("" for none).
func (s *Scene) SetHover(id string) {
	s.hover = id
}

// Hover returns the hovered element id.
func (s *Scene) Hover() string {
	return s.hover
}

// TopmostAt hit-tests the elements from topmost to bottommost and returns
// the first hit, or nil.
func (s *Scene) TopmostAt(p geometry.Point2D, scale float64) Element {
	for i := len(s.elements) - 1; i >= 0; i-- {
		if HitTest(s.elements[i], p, scale) {
			return s.elements[i]
		}
	}
	return nil
}

// FullyInside returns the ids of elements whose full bounds lie inside the
// given world rectangle. Strict containment: partial overlap is excluded.
func (s *Scene) FullyInside(box geometry.Rect) []string {
	var ids []string
	for _, el := range s.elements {
		if box.ContainsRect(el.Bounds()) {
			ids = append(ids, el.ElementID())
		}
	}
	return ids
}

// CloneAll deep-copies an element slice.
func CloneAll(els []Element) []Element {
	out := make([]Element, len(els))
	for i, el := range els {
		out[i] = el.Clone()
	}
	return out
}

// ElementsEqual reports whether two element slices hold identical content
// in identical order.
func ElementsEqual(a, b []Element) bool {
	if len(a) != len(b) {
		return false
	}
	return reflect.DeepEqual(a, b)
}
