// Package render composites the base photograph with the committed
// annotations. It keeps two layers: the untouched base image and a
// transparent annotation overlay. Ink paints onto the overlay; erasing
// punches the overlay back to transparency so the photograph shows
// through. The composite canvas is always base-then-overlay, at the
// image's natural resolution.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/example/photomark/internal/annotation"
)

// Renderer owns the layer buffers for one base image.
type Renderer struct {
	base    *image.RGBA
	overlay *image.RGBA
	canvas  *image.RGBA
}

// New builds a renderer around a decoded base image. The image is
// copied; the renderer never mutates the original.
func New(img image.Image) *Renderer {
	b := image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy())
	base := image.NewRGBA(b)
	draw.Draw(base, b, img, img.Bounds().Min, draw.Src)
	r := &Renderer{
		base:    base,
		overlay: image.NewRGBA(b),
		canvas:  image.NewRGBA(b),
	}
	r.composite(b)
	return r
}

// Bounds is the canvas rectangle, the base image's natural size.
func (r *Renderer) Bounds() image.Rectangle {
	return r.canvas.Bounds()
}

// Canvas returns the composited result. Callers must treat it as
// read-only; it is rewritten on the next Redraw or Segment.
func (r *Renderer) Canvas() *image.RGBA {
	return r.canvas
}

// Redraw rebuilds the canvas from scratch: clear the overlay, repaint
// every committed annotation in store order, then the optional live
// circle preview last. The preview is painted like a committed circle
// but belongs to no store; the next Redraw without it leaves no trace.
func (r *Renderer) Redraw(store *annotation.Store, preview *annotation.Circle) {
	b := r.overlay.Bounds()
	draw.Draw(r.overlay, b, image.Transparent, image.Point{}, draw.Src)
	for _, a := range store.All() {
		r.paint(a)
	}
	if preview != nil {
		strokeCircle(r.overlay, *preview)
	}
	r.composite(b)
}

// Segment paints one freehand stroke segment incrementally, without a
// full redraw. Correct only for monotonic appends to the stroke in
// flight; anything else goes through Redraw.
func (r *Renderer) Segment(from, to annotation.Point, col color.RGBA, width float64, eraser bool) {
	strokeSegment(r.overlay, from, to, col, width, eraser)
	r.composite(segmentBounds(from, to, width).Intersect(r.canvas.Bounds()))
}

func (r *Renderer) paint(a annotation.Annotation) {
	switch v := a.(type) {
	case annotation.Path:
		if len(v.Points) == 1 {
			p := v.Points[0]
			strokeSegment(r.overlay, p, p, v.Color, v.Width, v.Eraser)
			return
		}
		for i := 1; i < len(v.Points); i++ {
			strokeSegment(r.overlay, v.Points[i-1], v.Points[i], v.Color, v.Width, v.Eraser)
		}
	case annotation.Circle:
		strokeCircle(r.overlay, v)
	}
}

func (r *Renderer) composite(rect image.Rectangle) {
	draw.Draw(r.canvas, rect, r.base, rect.Min, draw.Src)
	draw.Draw(r.canvas, rect, r.overlay, rect.Min, draw.Over)
}
