// Package annotation holds the vector markup model: freehand paths,
// circles, and the append-only store that defines their paint order.
package annotation

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Point is a position in canvas pixel space, the base image's natural
// coordinate system. Screen coordinates never appear here.
type Point struct {
	X float64
	Y float64
}

// Annotation is a committed markup item. The concrete types are Path
// and Circle.
type Annotation interface {
	annotation()
}

// Path is a freehand stroke. With Eraser set the stroke removes
// earlier ink instead of adding its own color.
type Path struct {
	Points []Point
	Color  color.RGBA
	Width  float64
	Eraser bool
}

func (Path) annotation() {}

// Circle is a stroked circle outline.
type Circle struct {
	Center Point
	Radius float64
	Color  color.RGBA
	Width  float64
}

func (Circle) annotation() {}

// ParseHex parses a #RRGGBB or #RRGGBBAA color string.
func ParseHex(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("color must start with #")
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 16),
			G: uint8((val >> 8) & 0xFF),
			B: uint8(val & 0xFF),
			A: 255,
		}, nil
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 24),
			G: uint8((val >> 16) & 0xFF),
			B: uint8((val >> 8) & 0xFF),
			A: uint8(val & 0xFF),
		}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid hex length")
}

// FormatHex renders a color as #RRGGBB, or #RRGGBBAA when not opaque.
func FormatHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
