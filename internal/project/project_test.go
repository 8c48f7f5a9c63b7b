package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chart-board/internal/scene"
	"chart-board/pkg/geometry"
)

func TestNewBoard(t *testing.T) {
	b := New("session-notes")

	assert.Equal(t, 1, b.Version)
	assert.Equal(t, "session-notes", b.Name)
	assert.False(t, b.Created.IsZero())
	assert.Equal(t, 1.0, b.Camera.Scale)

	els, err := b.SceneElements()
	require.NoError(t, err)
	assert.Empty(t, els)
}

func TestBoardRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "review"+DefaultExt)

	b := New("review")
	b.Camera = geometry.Camera{Scale: 2.5, Pan: geometry.NewPoint2D(-120, 40)}
	els := []scene.Element{
		&scene.Shape{ID: scene.NewID(), Kind: scene.KindRectangle, X: 10, Y: 20, Width: 100, Height: 50,
			Style: scene.Style{Color: "#e03131", Width: 3, Stroke: scene.StrokeSolid, Opacity: 100}},
		&scene.Position{ID: scene.NewID(), Kind: scene.KindLongPosition, X: 200, Y: 80, Width: 120, Height: 60,
			EntryRatio: 0.25,
			Style:      scene.Style{Color: "#2f9e44", Width: 1, Stroke: scene.StrokeSolid, Opacity: 100}},
	}
	require.NoError(t, b.SetElements(els))
	require.NoError(t, b.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, b.Version, loaded.Version)
	assert.Equal(t, "review", loaded.Name)
	assert.Equal(t, b.Camera, loaded.Camera)
	assert.False(t, loaded.Modified.Before(loaded.Created))

	got, err := loaded.SceneElements()
	require.NoError(t, err)
	assert.True(t, scene.ElementsEqual(els, got))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.chartboard"))
	assert.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.chartboard")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse board file")
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.chartboard")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":1,"name":"minimal"}`), 0644))

	b, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.0, b.Camera.Scale)

	els, err := b.SceneElements()
	require.NoError(t, err)
	assert.Empty(t, els)
}

func TestNameFromPath(t *testing.T) {
	assert.Equal(t, "trades", NameFromPath("/tmp/boards/trades.chartboard"))
	assert.Equal(t, "scratch", NameFromPath("scratch"))
}

func TestEnsureExt(t *testing.T) {
	assert.Equal(t, "notes.chartboard", EnsureExt("notes"))
	assert.Equal(t, "notes.json", EnsureExt("notes.json"))
}
