// Package viewport models the display transform of the editor: zoom
// and pan applied to the base image, and the mapping between screen
// coordinates and canvas pixel coordinates under that transform.
package viewport

import "math"

// Zoom limits. The transform never leaves this range.
const (
	MinZoom = 0.5
	MaxZoom = 5.0
)

// DefaultWheelStep is the zoom increment per wheel notch.
const DefaultWheelStep = 0.25

// Point is a position in screen (client) space.
type Point struct {
	X float64
	Y float64
}

// Viewport is the current display transform. Pan is the translation of
// the displayed image in screen pixels and is deliberately unclamped;
// Reset recovers an image panned out of view.
type Viewport struct {
	Zoom float64
	Pan  Point
}

// New returns the identity transform: zoom 1, no pan.
func New() Viewport {
	return Viewport{Zoom: 1}
}

// Reset restores the identity transform.
func (v *Viewport) Reset() {
	*v = New()
}

// ClampZoom limits z to [MinZoom, MaxZoom].
func ClampZoom(z float64) float64 {
	return math.Min(MaxZoom, math.Max(MinZoom, z))
}

// StepZoom applies steps wheel notches of the given step size and
// clamps the result.
func (v *Viewport) StepZoom(steps, step float64) {
	v.Zoom = ClampZoom(v.Zoom + steps*step)
}

// Dist returns the euclidean distance between two screen points.
func Dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Mid returns the midpoint of two screen points.
func Mid(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
