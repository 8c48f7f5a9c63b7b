// Package app provides application state, events, and board lifecycle.
package app

import (
	"fmt"
	"sync"

	"chart-board/internal/project"
	"chart-board/internal/scene"
)

// EventType identifies different application events.
type EventType int

const (
	EventBoardLoaded EventType = iota
	EventBoardSaved
	EventSceneChanged
	EventSelectionChanged
	EventHoverChanged
	EventToolChanged
	EventStyleChanged
	EventViewChanged
	EventHistoryChanged
	EventModified
	EventThemeChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the application state shared between the editor session and UI.
type State struct {
	mu sync.RWMutex

	// Scene and undo history. Mutated only from the UI goroutine.
	Scene   *scene.Scene
	History *scene.History

	// Board file
	boardPath string
	boardName string
	modified  bool

	darkMode bool

	// Event listeners
	listeners map[EventType][]EventListener
}

// NewState creates a new application state with an empty board.
func NewState() *State {
	sc := scene.New()
	return &State{
		Scene:     sc,
		History:   scene.NewHistory(sc.Snapshot()),
		boardName: "untitled",
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := make([]EventListener, len(s.listeners[event]))
	copy(listeners, s.listeners[event])
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// BoardPath returns the path of the open board file, or "" for a new board.
func (s *State) BoardPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.boardPath
}

// BoardName returns the display name of the open board.
func (s *State) BoardName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.boardName
}

// Modified reports whether the board has unsaved changes.
func (s *State) Modified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modified
}

// SetModified marks the board as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	changed := s.modified != modified
	s.modified = modified
	s.mu.Unlock()

	if changed {
		s.Emit(EventModified, modified)
	}
}

// DarkMode reports whether the dark theme is active.
func (s *State) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkMode
}

// SetDarkMode switches the theme and emits an event.
func (s *State) SetDarkMode(dark bool) {
	s.mu.Lock()
	changed := s.darkMode != dark
	s.darkMode = dark
	s.mu.Unlock()

	if changed {
		s.Emit(EventThemeChanged, dark)
	}
}

// NewBoard clears the scene and resets the board identity.
func (s *State) NewBoard() {
	s.Scene.Clear()
	s.History.Reset(s.Scene.Snapshot())

	s.mu.Lock()
	s.boardPath = ""
	s.boardName = "untitled"
	s.modified = false
	s.mu.Unlock()

	s.Emit(EventBoardLoaded, "")
	s.Emit(EventSceneChanged, nil)
	s.Emit(EventSelectionChanged, nil)
	s.Emit(EventHistoryChanged, nil)
	s.Emit(EventModified, false)
}

// LoadBoard replaces the scene with the contents of a board file.
// The loaded board becomes the new undo baseline.
func (s *State) LoadBoard(path string) (*project.Board, error) {
	b, err := project.Load(path)
	if err != nil {
		return nil, err
	}

	els, err := b.SceneElements()
	if err != nil {
		return nil, fmt.Errorf("board %s: %w", path, err)
	}

	s.Scene.Restore(els)
	s.History.Reset(s.Scene.Snapshot())

	s.mu.Lock()
	s.boardPath = path
	s.boardName = b.Name
	if s.boardName == "" {
		s.boardName = project.NameFromPath(path)
	}
	s.modified = false
	s.mu.Unlock()

	s.Emit(EventBoardLoaded, path)
	s.Emit(EventSceneChanged, nil)
	s.Emit(EventSelectionChanged, nil)
	s.Emit(EventHistoryChanged, nil)
	s.Emit(EventModified, false)
	return b, nil
}

// SaveBoard writes the current scene to a board file. A nil board starts
// a fresh file; passing the previously loaded board preserves its
// creation time and camera.
func (s *State) SaveBoard(path string, b *project.Board) error {
	if b == nil {
		b = project.New(project.NameFromPath(path))
	}
	b.Name = project.NameFromPath(path)

	if err := b.SetElements(s.Scene.Elements()); err != nil {
		return err
	}
	if err := b.Save(path); err != nil {
		return err
	}

	s.mu.Lock()
	s.boardPath = path
	s.boardName = b.Name
	s.modified = false
	s.mu.Unlock()

	s.Emit(EventBoardSaved, path)
	s.Emit(EventModified, false)
	return nil
}
