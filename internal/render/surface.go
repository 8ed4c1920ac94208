// Package render lays transaction records out on fixed-geometry pages.
package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Align is the horizontal alignment of text inside its box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Font styles understood by every Surface.
const (
	Regular = ""
	Bold    = "B"
)

// Color is an RGB fill color.
type Color struct {
	R, G, B uint8
}

// Hex formats c as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor reads a #rrggbb (or rrggbb) color.
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Surface is any target that can place text, filled rectangles and rules at
// absolute coordinates on fixed-size pages. Coordinates are points from the
// top-left corner.
type Surface interface {
	AddPage()
	SetFont(style string, size float64)
	SetFillColor(c Color)
	FillRect(x, y, w, h float64)
	Line(x1, y1, x2, y2 float64)
	// Text draws s inside the box, aligned horizontally and centered vertically.
	Text(x, y, w, h float64, s string, align Align)
	TextWidth(s string) float64
}
