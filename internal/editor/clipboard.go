package editor

import (
	"chart-board/internal/scene"
)

// Copy captures deep copies of the selected elements in z-order. An empty
// selection leaves the clipboard untouched.
func (s *Session) Copy() {
	sel := s.state.Scene.SelectedElements()
	if len(sel) == 0 {
		return
	}
	s.clipboard = scene.CloneAll(sel)
}

// Paste inserts clipboard copies offset by a fixed screen distance
// converted to world units, with fresh identifiers, and selects exactly
// the new copies.
func (s *Session) Paste() {
	if len(s.clipboard) == 0 {
		return
	}

	offset := pasteOffsetPx / s.cam.Scale
	ids := make([]string, 0, len(s.clipboard))
	for _, src := range s.clipboard {
		el := src.Clone()
		el.Translate(offset, offset)
		ids = append(ids, scene.AssignNewID(el))
		s.state.Scene.Add(el)
	}

	s.state.Scene.SetSelection(ids)
	s.commit()
	s.emitSelection()
}

// Duplicate copies and pastes the selection in one step without touching
// the clipboard.
func (s *Session) Duplicate() {
	sel := s.state.Scene.SelectedElements()
	if len(sel) == 0 {
		return
	}

	offset := pasteOffsetPx / s.cam.Scale
	ids := make([]string, 0, len(sel))
	for _, src := range sel {
		el := src.Clone()
		el.Translate(offset, offset)
		ids = append(ids, scene.AssignNewID(el))
		s.state.Scene.Add(el)
	}

	s.state.Scene.SetSelection(ids)
	s.commit()
	s.emitSelection()
}

// ClipboardLen returns the number of elements held in the clipboard.
func (s *Session) ClipboardLen() int {
	return len(s.clipboard)
}
