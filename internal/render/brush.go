package render

import (
	"image"
	"image/color"
	"math"

	"github.com/example/photomark/internal/annotation"
)

// stampDisc fills a disc centered at (cx, cy). Erasing writes full
// transparency, removing whatever ink the overlay held there.
func stampDisc(dst *image.RGBA, cx, cy, radius int, col color.RGBA, eraser bool) {
	if radius < 0 {
		radius = 0
	}
	b := dst.Bounds()
	rr := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > rr {
				continue
			}
			x, y := cx+dx, cy+dy
			if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
				continue
			}
			if eraser {
				dst.SetRGBA(x, y, color.RGBA{})
			} else {
				dst.SetRGBA(x, y, col)
			}
		}
	}
}

// strokeSegment draws a round-capped stroke between two canvas points
// by stamping the brush disc along a Bresenham walk.
func strokeSegment(dst *image.RGBA, from, to annotation.Point, col color.RGBA, width float64, eraser bool) {
	radius := int(math.Round(width / 2))
	x0, y0 := int(math.Round(from.X)), int(math.Round(from.Y))
	x1, y1 := int(math.Round(to.X)), int(math.Round(to.Y))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		stampDisc(dst, x0, y0, radius, col, eraser)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// strokeCircle draws a circle outline as a closed round-capped
// polyline. The step count scales with the radius so large circles
// stay smooth.
func strokeCircle(dst *image.RGBA, c annotation.Circle) {
	if c.Radius <= 0 {
		return
	}
	steps := int(math.Ceil(2 * math.Pi * c.Radius / 2))
	if steps < 12 {
		steps = 12
	}
	prev := annotation.Point{X: c.Center.X + c.Radius, Y: c.Center.Y}
	for i := 1; i <= steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		next := annotation.Point{
			X: c.Center.X + c.Radius*math.Cos(theta),
			Y: c.Center.Y + c.Radius*math.Sin(theta),
		}
		strokeSegment(dst, prev, next, c.Color, c.Width, false)
		prev = next
	}
}

// segmentBounds is the pixel rectangle a stroke segment can touch,
// inflated by the brush radius.
func segmentBounds(from, to annotation.Point, width float64) image.Rectangle {
	radius := int(math.Round(width/2)) + 1
	x0 := int(math.Floor(math.Min(from.X, to.X))) - radius
	y0 := int(math.Floor(math.Min(from.Y, to.Y))) - radius
	x1 := int(math.Ceil(math.Max(from.X, to.X))) + radius
	y1 := int(math.Ceil(math.Max(from.Y, to.Y))) + radius
	return image.Rect(x0, y0, x1+1, y1+1)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
