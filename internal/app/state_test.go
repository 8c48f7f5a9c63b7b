package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chart-board/internal/scene"
)

func TestEventBus(t *testing.T) {
	s := NewState()

	var got []interface{}
	s.On(EventSceneChanged, func(data interface{}) {
		got = append(got, data)
	})
	s.On(EventSceneChanged, func(data interface{}) {
		got = append(got, data)
	})

	s.Emit(EventSceneChanged, "x")
	s.Emit(EventToolChanged, "ignored")

	assert.Equal(t, []interface{}{"x", "x"}, got)
}

func TestSetModifiedEmitsOnChange(t *testing.T) {
	s := NewState()

	count := 0
	s.On(EventModified, func(data interface{}) { count++ })

	s.SetModified(true)
	s.SetModified(true)
	s.SetModified(false)

	assert.Equal(t, 2, count)
	assert.False(t, s.Modified())
}

func TestDarkModeToggle(t *testing.T) {
	s := NewState()

	var events []bool
	s.On(EventThemeChanged, func(data interface{}) {
		events = append(events, data.(bool))
	})

	s.SetDarkMode(true)
	s.SetDarkMode(true)
	s.SetDarkMode(false)

	assert.Equal(t, []bool{true, false}, events)
	assert.False(t, s.DarkMode())
}

func TestSaveAndLoadBoard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.chartboard")

	s := NewState()
	el := &scene.Shape{ID: scene.NewID(), Kind: scene.KindEllipse, X: 5, Y: 5, Width: 40, Height: 30,
		Style: scene.Style{Color: "#1971c2", Width: 1, Stroke: scene.StrokeSolid, Opacity: 100}}
	s.Scene.Add(el)
	s.SetModified(true)

	require.NoError(t, s.SaveBoard(path, nil))
	assert.False(t, s.Modified())
	assert.Equal(t, path, s.BoardPath())
	assert.Equal(t, "plan", s.BoardName())

	s2 := NewState()
	_, err := s2.LoadBoard(path)
	require.NoError(t, err)

	assert.True(t, scene.ElementsEqual(s.Scene.Elements(), s2.Scene.Elements()))
	assert.Equal(t, "plan", s2.BoardName())
	assert.False(t, s2.Modified())

	// The loaded board is the undo baseline, not an undoable step.
	assert.False(t, s2.History.CanUndo())
}

func TestLoadBoardMissing(t *testing.T) {
	s := NewState()
	_, err := s.LoadBoard(filepath.Join(t.TempDir(), "nope.chartboard"))
	assert.Error(t, err)
}

func TestNewBoardResets(t *testing.T) {
	s := NewState()
	s.Scene.Add(&scene.Shape{ID: scene.NewID(), Kind: scene.KindRectangle, Width: 10, Height: 10})
	s.History.Commit(s.Scene.Snapshot())
	s.SetModified(true)

	s.NewBoard()

	assert.Empty(t, s.Scene.Elements())
	assert.False(t, s.History.CanUndo())
	assert.False(t, s.Modified())
	assert.Equal(t, "", s.BoardPath())
	assert.Equal(t, "untitled", s.BoardName())
}

func TestBoardWatcherDetectsChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.chartboard")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":1}`), 0644))

	w := NewBoardWatcher(path, 10*time.Millisecond)
	require.NotNil(t, w)

	changed := make(chan string, 1)
	w.OnChanged(func(p string) { changed <- p })
	w.Start()
	defer w.Stop()

	// Bump the mod time well past the baseline.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	select {
	case p := <-changed:
		assert.Equal(t, path, p)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not report external change")
	}
}

func TestBoardWatcherMissingFile(t *testing.T) {
	assert.Nil(t, NewBoardWatcher(filepath.Join(t.TempDir(), "gone"), time.Second))
}
