// Package config handles loading and validation of the editor configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the tunable editor settings. Values not present in the
// config file keep their defaults.
type Config struct {
	Canvas CanvasConfig `toml:"canvas"`
	Style  StyleConfig  `toml:"style"`
	Export ExportConfig `toml:"export"`
}

// CanvasConfig tunes the drawing surface.
type CanvasConfig struct {
	// GridSpacing is the world-space distance between grid lines.
	GridSpacing float64 `toml:"grid_spacing"`

	// EraserRadius is the eraser size in screen pixels, within [5, 100].
	EraserRadius float64 `toml:"eraser_radius"`

	// LaserFadeMs is how long a laser point stays visible.
	LaserFadeMs int `toml:"laser_fade_ms"`

	// SmoothFreehand resamples pencil strokes through a spline on commit.
	SmoothFreehand bool `toml:"smooth_freehand"`
}

// StyleConfig is the default stroke style applied to new elements.
type StyleConfig struct {
	Color      string  `toml:"color"`
	Width      float64 `toml:"width"`
	Stroke     string  `toml:"stroke"` // solid, dashed, dotted
	Opacity    int     `toml:"opacity"`
	FontSize   float64 `toml:"font_size"`
	FontFamily string  `toml:"font_family"` // sans, mono
}

// ExportConfig tunes snapshot export.
type ExportConfig struct {
	// Padding is the world-space margin added around the content bounds.
	Padding float64 `toml:"padding"`
}

// EraserRadius limits.
const (
	EraserMin = 5.0
	EraserMax = 100.0
)

// DefaultConfig returns a configuration with the stock defaults.
func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			GridSpacing:    20,
			EraserRadius:   30,
			LaserFadeMs:    1000,
			SmoothFreehand: true,
		},
		Style: StyleConfig{
			Color:      "#1e1e1e",
			Width:      1,
			Stroke:     "solid",
			Opacity:    100,
			FontSize:   20,
			FontFamily: "sans",
		},
		Export: ExportConfig{
			Padding: 50,
		},
	}
}

// ConfigPath returns the default configuration file path.
func ConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "chart-board", "config.toml")
}

// Load reads the configuration from path, or the default location when path
// is empty. A missing file yields the defaults; a present file overrides
// only the fields it names. Out-of-range values are clamped.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("decode TOML: %w", err)
	}

	cfg.sanitize()
	return cfg, nil
}

// sanitize clamps values into their supported ranges and restores defaults
// for fields that cannot be used as given.
func (c *Config) sanitize() {
	def := DefaultConfig()

	if c.Canvas.GridSpacing <= 0 {
		c.Canvas.GridSpacing = def.Canvas.GridSpacing
	}
	if c.Canvas.EraserRadius < EraserMin {
		c.Canvas.EraserRadius = EraserMin
	}
	if c.Canvas.EraserRadius > EraserMax {
		c.Canvas.EraserRadius = EraserMax
	}
	if c.Canvas.LaserFadeMs <= 0 {
		c.Canvas.LaserFadeMs = def.Canvas.LaserFadeMs
	}

	if c.Style.Width <= 0 {
		c.Style.Width = def.Style.Width
	}
	if c.Style.Opacity < 0 {
		c.Style.Opacity = 0
	}
	if c.Style.Opacity > 100 {
		c.Style.Opacity = 100
	}
	switch c.Style.Stroke {
	case "solid", "dashed", "dotted":
	default:
		c.Style.Stroke = def.Style.Stroke
	}
	switch c.Style.FontFamily {
	case "sans", "mono":
	default:
		c.Style.FontFamily = def.Style.FontFamily
	}
	if c.Style.FontSize <= 0 {
		c.Style.FontSize = def.Style.FontSize
	}

	if c.Export.Padding < 0 {
		c.Export.Padding = def.Export.Padding
	}
}
