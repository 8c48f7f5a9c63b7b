// Package prefs persists window state between runs: the last board and
// directory, the view toggles, and the window size. Stored as JSON in
// ~/.config/chart-board/preferences.json.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const prefsFile = "preferences.json"

// Defaults applied when a key has never been written.
const (
	defaultWindowW = 1200
	defaultWindowH = 800
)

// Prefs stores window preferences backed by a JSON file.
type Prefs struct {
	mu     sync.RWMutex
	values map[string]interface{}
	path   string
}

// Load reads preferences from the user config dir. A missing or
// unreadable file yields defaults.
func Load() *Prefs {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return LoadFile(filepath.Join(configDir, "chart-board", prefsFile))
}

// LoadFile reads preferences from an explicit path.
func LoadFile(path string) *Prefs {
	p := &Prefs{
		values: make(map[string]interface{}),
		path:   path,
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return p
	}
	_ = json.Unmarshal(data, &p.values)
	return p
}

// Save writes preferences to disk, creating the directory if needed.
func (p *Prefs) Save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p.values, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return err
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

// LastDirectory is the directory of the most recent file dialog.
func (p *Prefs) LastDirectory() string { return p.str("lastDirectory") }

func (p *Prefs) SetLastDirectory(dir string) { p.set("lastDirectory", dir) }

// LastBoard is the path of the most recently opened board, restored on
// the next launch.
func (p *Prefs) LastBoard() string { return p.str("lastBoard") }

func (p *Prefs) SetLastBoard(path string) { p.set("lastBoard", path) }

func (p *Prefs) ShowGrid() bool { return p.boolean("showGrid", true) }

func (p *Prefs) SetShowGrid(on bool) { p.set("showGrid", on) }

func (p *Prefs) ShowRulers() bool { return p.boolean("showRulers", false) }

func (p *Prefs) SetShowRulers(on bool) { p.set("showRulers", on) }

func (p *Prefs) ShowMinimap() bool { return p.boolean("showMinimap", false) }

func (p *Prefs) SetShowMinimap(on bool) { p.set("showMinimap", on) }

func (p *Prefs) DarkMode() bool { return p.boolean("darkMode", false) }

func (p *Prefs) SetDarkMode(on bool) { p.set("darkMode", on) }

// WindowSize returns the saved window dimensions, or 1200x800.
func (p *Prefs) WindowSize() (w, h float64) {
	return p.num("windowWidth", defaultWindowW), p.num("windowHeight", defaultWindowH)
}

func (p *Prefs) SetWindowSize(w, h float64) {
	p.set("windowWidth", w)
	p.set("windowHeight", h)
}

func (p *Prefs) str(key string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if s, ok := p.values[key].(string); ok {
		return s
	}
	return ""
}

func (p *Prefs) boolean(key string, fallback bool) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if b, ok := p.values[key].(bool); ok {
		return b
	}
	return fallback
}

func (p *Prefs) num(key string, fallback float64) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	switch n := p.values[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return fallback
}

func (p *Prefs) set(key string, val interface{}) {
	p.mu.Lock()
	p.values[key] = val
	p.mu.Unlock()
}
