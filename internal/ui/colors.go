package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Neon palette.
const (
	colorHead       = "#4ade80" // green-400
	colorTail       = "#065f46" // emerald-800
	colorFood       = "#f43f5e" // rose-500
	colorBorder     = "#1e293b" // slate-800
	colorFloor      = "#0f172a" // slate-900
	colorText       = "#e2e8f0" // slate-200
	colorMuted      = "#64748b" // slate-500
	colorHighScore  = "#facc15" // yellow-400
	colorCommentary = "#86efac" // green-300
	colorGameOver   = "#ef4444" // red-500
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	if len(hex) > 0 && hex[0] != '#' {
		hex = "#" + hex
	}
	if len(hex) != 7 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}
	return toTCell(c), nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}

// Gradient returns n colors blended in Lab space from the head color to the
// tail color. A single segment gets the head color.
func Gradient(n int) []tcell.Color {
	if n <= 0 {
		return nil
	}
	head, _ := colorful.Hex(colorHead)
	tail, _ := colorful.Hex(colorTail)

	colors := make([]tcell.Color, n)
	for i := range colors {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		colors[i] = toTCell(head.BlendLab(tail, t).Clamped())
	}
	return colors
}

func toTCell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
