package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/example/photomark/internal/annotation"
)

var (
	baseGray = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	green    = color.RGBA{G: 255, A: 255}
	red      = color.RGBA{R: 255, A: 255}
)

func grayBase(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(baseGray), image.Point{}, draw.Src)
	return img
}

func pixel(t *testing.T, img *image.RGBA, x, y int) color.RGBA {
	t.Helper()
	return img.RGBAAt(x, y)
}

func TestRedrawPaintsPathOverBase(t *testing.T) {
	r := New(grayBase(100, 100))
	store := annotation.NewStore()
	store.Append(annotation.Path{
		Points: []annotation.Point{{X: 10, Y: 50}, {X: 90, Y: 50}},
		Color:  green,
		Width:  4,
	})
	r.Redraw(store, nil)
	c := r.Canvas()
	if got := pixel(t, c, 50, 50); got != green {
		t.Errorf("on-stroke pixel = %v, want %v", got, green)
	}
	if got := pixel(t, c, 50, 10); got != baseGray {
		t.Errorf("off-stroke pixel = %v, want base %v", got, baseGray)
	}
}

func TestEraseShowsBaseThrough(t *testing.T) {
	r := New(grayBase(100, 100))
	store := annotation.NewStore()
	store.Append(annotation.Path{
		Points: []annotation.Point{{X: 10, Y: 50}, {X: 90, Y: 50}},
		Color:  green,
		Width:  6,
	})
	store.Append(annotation.Path{
		Points: []annotation.Point{{X: 40, Y: 50}, {X: 60, Y: 50}},
		Width:  10,
		Eraser: true,
	})
	r.Redraw(store, nil)
	c := r.Canvas()
	if got := pixel(t, c, 50, 50); got != baseGray {
		t.Errorf("erased pixel = %v, want base %v", got, baseGray)
	}
	if got := pixel(t, c, 15, 50); got != green {
		t.Errorf("unerased pixel = %v, want %v", got, green)
	}
}

func TestEraseIsOrderDependent(t *testing.T) {
	r := New(grayBase(100, 100))
	store := annotation.NewStore()
	// Erase first, ink after: the later ink must survive untouched.
	store.Append(annotation.Path{
		Points: []annotation.Point{{X: 40, Y: 50}, {X: 60, Y: 50}},
		Width:  10,
		Eraser: true,
	})
	store.Append(annotation.Path{
		Points: []annotation.Point{{X: 10, Y: 50}, {X: 90, Y: 50}},
		Color:  red,
		Width:  4,
	})
	r.Redraw(store, nil)
	if got := pixel(t, r.Canvas(), 50, 50); got != red {
		t.Errorf("ink after erase = %v, want %v", got, red)
	}
}

func TestCircleOutlineStroked(t *testing.T) {
	r := New(grayBase(200, 200))
	store := annotation.NewStore()
	store.Append(annotation.Circle{
		Center: annotation.Point{X: 100, Y: 100},
		Radius: 40,
		Color:  red,
		Width:  4,
	})
	r.Redraw(store, nil)
	c := r.Canvas()
	if got := pixel(t, c, 140, 100); got != red {
		t.Errorf("outline pixel = %v, want %v", got, red)
	}
	if got := pixel(t, c, 100, 100); got != baseGray {
		t.Errorf("circle interior = %v, want base %v (outline only)", got, baseGray)
	}
}

func TestPreviewLeavesNoTrace(t *testing.T) {
	r := New(grayBase(200, 200))
	store := annotation.NewStore()
	preview := &annotation.Circle{
		Center: annotation.Point{X: 100, Y: 100},
		Radius: 30,
		Color:  red,
		Width:  4,
	}
	r.Redraw(store, preview)
	if got := pixel(t, r.Canvas(), 130, 100); got != red {
		t.Fatalf("preview not painted: %v", got)
	}
	r.Redraw(store, nil)
	if got := pixel(t, r.Canvas(), 130, 100); got != baseGray {
		t.Errorf("stale preview pixel = %v, want base %v", got, baseGray)
	}
}

func TestIncrementalSegmentsMatchFullRedraw(t *testing.T) {
	points := []annotation.Point{{X: 10, Y: 10}, {X: 30, Y: 24}, {X: 55, Y: 40}, {X: 80, Y: 81}, {X: 95, Y: 90}}

	inc := New(grayBase(120, 120))
	for i := 1; i < len(points); i++ {
		inc.Segment(points[i-1], points[i], green, 5, false)
	}

	full := New(grayBase(120, 120))
	store := annotation.NewStore()
	store.Append(annotation.Path{Points: points, Color: green, Width: 5})
	full.Redraw(store, nil)

	a, b := inc.Canvas(), full.Canvas()
	if a.Bounds() != b.Bounds() {
		t.Fatalf("bounds differ: %v vs %v", a.Bounds(), b.Bounds())
	}
	for y := a.Bounds().Min.Y; y < a.Bounds().Max.Y; y++ {
		for x := a.Bounds().Min.X; x < a.Bounds().Max.X; x++ {
			if a.RGBAAt(x, y) != b.RGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d): incremental %v, full %v", x, y, a.RGBAAt(x, y), b.RGBAAt(x, y))
			}
		}
	}
}

func TestRendererDoesNotMutateSource(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 50, 50))
	draw.Draw(src, src.Bounds(), image.NewUniform(baseGray), image.Point{}, draw.Src)
	r := New(src)
	store := annotation.NewStore()
	store.Append(annotation.Path{Points: []annotation.Point{{X: 0, Y: 25}, {X: 49, Y: 25}}, Color: green, Width: 8})
	r.Redraw(store, nil)
	if got := src.RGBAAt(25, 25); got != baseGray {
		t.Errorf("source image mutated: %v", got)
	}
}
