// Package colorutil provides shared color utilities for the chart board application.
package colorutil

import (
	"fmt"
	"image/color"
	"strings"
)

// Common overlay colors used throughout the application.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// swatches is the fixed 15-color stroke palette offered in the style panel.
var swatches = []string{
	"#1e1e1e", // black
	"#495057", // gray
	"#e03131", // red
	"#c2255c", // pink
	"#9c36b5", // grape
	"#6741d9", // violet
	"#3b5bdb", // indigo
	"#1971c2", // blue
	"#0c8599", // cyan
	"#099268", // teal
	"#2f9e44", // green
	"#66a80f", // lime
	"#f59f00", // yellow
	"#e8590c", // orange
	"#ffffff", // white
}

// Palette returns the fixed stroke color swatches as hex strings.
func Palette() []string {
	out := make([]string, len(swatches))
	copy(out, swatches)
	return out
}

// ParseHex parses a "#rrggbb" or "#rgb" color string.
func ParseHex(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")

	var r, g, b uint8
	switch len(s) {
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, false
		}
	case 3:
		var r4, g4, b4 uint8
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r4, &g4, &b4); err != nil {
			return color.RGBA{}, false
		}
		r, g, b = r4*17, g4*17, b4*17
	default:
		return color.RGBA{}, false
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, true
}

// Hex formats a color as "#rrggbb", discarding alpha.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// WithAlpha returns the color with its alpha channel replaced.
func WithAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}

// Lighten moves the color toward white by factor (0 = unchanged, 1 = white).
func Lighten(c color.RGBA, factor float64) color.RGBA {
	factor = clamp01(factor)
	return color.RGBA{
		R: lerp8(c.R, 255, factor),
		G: lerp8(c.G, 255, factor),
		B: lerp8(c.B, 255, factor),
		A: c.A,
	}
}

// Darken moves the color toward black by factor (0 = unchanged, 1 = black).
func Darken(c color.RGBA, factor float64) color.RGBA {
	factor = clamp01(factor)
	return color.RGBA{
		R: lerp8(c.R, 0, factor),
		G: lerp8(c.G, 0, factor),
		B: lerp8(c.B, 0, factor),
		A: c.A,
	}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func lerp8(from uint8, to uint8, t float64) uint8 {
	return uint8(float64(from) + (float64(to)-float64(from))*t)
}
