package scene

// History is a linear undo/redo stack over full scene snapshots. The entry
// at index 0 is the baseline the scene started from; committing while undone
// truncates the redo tail.
type History struct {
	stack [][]Element
	index int
}

// NewHistory creates a history whose baseline entry is the given snapshot.
func NewHistory(baseline []Element) *History {
	return &History{stack: [][]Element{baseline}}
}

// Commit truncates any redo tail and appends the snapshot, which the
// history takes ownership of.
func (h *History) Commit(snapshot []Element) {
	h.stack = append(h.stack[:h.index+1], snapshot)
	h.index = len(h.stack) - 1
}

// Undo steps back one entry and returns a copy of it. Returns false,
// without moving, at the bottom of the stack.
func (h *History) Undo() ([]Element, bool) {
	if h.index == 0 {
		return nil, false
	}
	h.index--
	return CloneAll(h.stack[h.index]), true
}

// Redo steps forward one entry and returns a copy of it. Returns false,
// without moving, at the top of the stack.
func (h *History) Redo() ([]Element, bool) {
	if h.index >= len(h.stack)-1 {
		return nil, false
	}
	h.index++
	return CloneAll(h.stack[h.index]), true
}

// CanUndo reports whether an undo step exists.
func (h *History) CanUndo() bool {
	return h.index > 0
}

// CanRedo reports whether a redo step exists.
func (h *History) CanRedo() bool {
	return h.index < len(h.stack)-1
}

// Head returns the snapshot at the current index. Callers must not mutate
// it; it is used to detect whether a gesture actually changed the scene.
func (h *History) Head() []Element {
	return h.stack[h.index]
}

// Reset discards all entries and starts over from the given baseline.
func (h *History) Reset(baseline []Element) {
	h.stack = [][]Element{baseline}
	h.index = 0
}

// Len returns the number of entries including the baseline.
func (h *History) Len() int {
	return len(h.stack)
}
