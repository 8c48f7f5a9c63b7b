// Package project provides board file handling and persistence.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chart-board/internal/scene"
	"chart-board/pkg/geometry"
)

// DefaultExt is the file extension for board files.
const DefaultExt = ".chartboard"

// Board represents a chart board file (.chartboard).
type Board struct {
	Version     int       `json:"version"`
	Name        string    `json:"name"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
	Description string    `json:"description,omitempty"`

	// Last view transform, restored on open.
	Camera geometry.Camera `json:"camera"`

	// Serialized elements in z-order. Kept raw so the file can be
	// inspected or partially read without decoding every element.
	Elements json.RawMessage `json:"elements"`
}

// New creates a new empty board.
func New(name string) *Board {
	now := time.Now()
	return &Board{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
		Camera:   geometry.NewCamera(),
		Elements: json.RawMessage("[]"),
	}
}

// Load loads a board from a .chartboard file.
func Load(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse board file: %w", err)
	}
	if b.Elements == nil {
		b.Elements = json.RawMessage("[]")
	}
	if b.Camera.Scale == 0 {
		b.Camera = geometry.NewCamera()
	}

	return &b, nil
}

// Save saves the board to a file.
func (b *Board) Save(path string) error {
	b.Modified = time.Now()

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetElements serializes the given elements into the board.
func (b *Board) SetElements(els []scene.Element) error {
	data, err := scene.MarshalElements(els)
	if err != nil {
		return err
	}
	b.Elements = data
	return nil
}

// SceneElements decodes the board's element payload.
func (b *Board) SceneElements() ([]scene.Element, error) {
	return scene.UnmarshalElements(b.Elements)
}

// NameFromPath derives a board name from its file path.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// EnsureExt appends the board extension if the path has none.
func EnsureExt(path string) string {
	if filepath.Ext(path) == "" {
		return path + DefaultExt
	}
	return path
}
