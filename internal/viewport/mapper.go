package viewport

import (
	"image"

	"github.com/example/photomark/internal/annotation"
)

// Rect is the on-screen rectangle the canvas currently occupies, in
// screen pixels. It already reflects zoom and pan: at zoom 2 its width
// is twice the canvas width, so the ratio below needs no separate
// division by zoom.
type Rect struct {
	Min Point
	Max Point
}

func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Mapper converts between screen space and canvas pixel space. The
// canvas dimensions are the base image's natural size and never change
// with zoom; the same conversion serves the mouse pointer and every
// touch point.
type Mapper struct {
	Rect    Rect
	CanvasW float64
	CanvasH float64
}

// NewMapper builds a mapper for a canvas of the given natural size
// displayed under the viewport transform, anchored at origin in screen
// space before pan.
func NewMapper(bounds image.Rectangle, v Viewport, origin Point) Mapper {
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	min := Point{X: origin.X + v.Pan.X, Y: origin.Y + v.Pan.Y}
	return Mapper{
		Rect: Rect{
			Min: min,
			Max: Point{X: min.X + w*v.Zoom, Y: min.Y + h*v.Zoom},
		},
		CanvasW: w,
		CanvasH: h,
	}
}

// Canvas maps a screen position to canvas pixel space.
func (m Mapper) Canvas(clientX, clientY float64) annotation.Point {
	return annotation.Point{
		X: (clientX - m.Rect.Min.X) * m.CanvasW / m.Rect.Dx(),
		Y: (clientY - m.Rect.Min.Y) * m.CanvasH / m.Rect.Dy(),
	}
}

// Screen is the inverse of Canvas.
func (m Mapper) Screen(p annotation.Point) Point {
	return Point{
		X: m.Rect.Min.X + p.X*m.Rect.Dx()/m.CanvasW,
		Y: m.Rect.Min.Y + p.Y*m.Rect.Dy()/m.CanvasH,
	}
}
