package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/photomark/internal/gesture"
)

// palette is the ink color swatch set.
var palette = []color.RGBA{
	{255, 0, 0, 255},
	{0, 170, 0, 255},
	{0, 90, 255, 255},
	{255, 200, 0, 255},
	{255, 120, 0, 255},
	{170, 0, 255, 255},
	{0, 0, 0, 255},
	{255, 255, 255, 255},
}

// widths is the stroke width choice set, in canvas pixels.
var widths = []float64{2, 4, 6, 10}

type button struct {
	label   string
	rect    image.Rectangle
	swatch  *color.RGBA // palette buttons show a color, not a label
	onClick func()
	active  func() bool
}

// buildToolbar lays out the left toolbar controls. Rects are fixed;
// only the canvas area resizes with the window.
func (w *Window) buildToolbar() []*button {
	ed := w.Editor
	var out []*button
	y := 24

	toolBtn := func(label string, tool gesture.Tool) {
		out = append(out, &button{
			label: label,
			rect:  image.Rect(4, y, toolbarWidth-4, y+22),
			onClick: func() {
				ed.SetMode(gesture.ModeAnnotate)
				ed.SetTool(tool)
			},
			active: func() bool {
				return ed.Mode() == gesture.ModeAnnotate && ed.Tool() == tool
			},
		})
		y += 24
	}
	toolBtn("P:Draw", gesture.ToolPath)
	toolBtn("O:Circle", gesture.ToolCircle)
	toolBtn("E:Erase", gesture.ToolErase)

	out = append(out, &button{
		label:   "V:Pan",
		rect:    image.Rect(4, y, toolbarWidth-4, y+22),
		onClick: func() { ed.SetMode(gesture.ModePan) },
		active:  func() bool { return ed.Mode() == gesture.ModePan },
	})
	y += 28

	// Palette swatches, two columns.
	for i := range palette {
		c := palette[i]
		col := i % 2
		row := i / 2
		r := image.Rect(6+col*24, y+row*24, 6+col*24+20, y+row*24+20)
		out = append(out, &button{
			rect:    r,
			swatch:  &c,
			onClick: func() { ed.SetColorRGBA(c) },
			active:  func() bool { return ed.Color() == c },
		})
	}
	y += (len(palette)/2)*24 + 6

	// Stroke widths.
	for i := range widths {
		wd := widths[i]
		r := image.Rect(6, y, toolbarWidth-6, y+18)
		out = append(out, &button{
			label:   fmt.Sprintf("%gpx", wd),
			rect:    r,
			onClick: func() { ed.SetWidth(wd) },
			active:  func() bool { return ed.Width() == wd },
		})
		y += 20
	}
	y += 8

	out = append(out, &button{
		label:   "R:Reset",
		rect:    image.Rect(4, y, toolbarWidth-4, y+22),
		onClick: func() { ed.ResetView() },
	})
	y += 24
	out = append(out, &button{
		label:   "^C:Copy",
		rect:    image.Rect(4, y, toolbarWidth-4, y+22),
		onClick: func() { w.copyToClipboard() },
	})
	y += 24
	out = append(out, &button{
		label:   "^S:Save",
		rect:    image.Rect(4, y, toolbarWidth-4, y+22),
		onClick: func() { w.startSave() },
		active:  func() bool { return ed.HasChanges() && !ed.Saving() },
	})
	return out
}

func (w *Window) drawFrame(s screen.Screen, win screen.Window, buttons []*button) {
	buf, err := s.NewBuffer(image.Point{X: w.width, Y: w.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer buf.Release()
	rgba := buf.RGBA()

	th := w.Theme
	fillRect(rgba, rgba.Bounds(), th.Background)

	// Canvas area with checkerboard backdrop behind the image.
	canvasArea := image.Rect(toolbarWidth, 0, w.width, w.height-statusHeight)
	drawCheckerboard(rgba, canvasArea, th.CheckerLight, th.CheckerDark)
	if canvas := w.Editor.Canvas(); canvas != nil {
		m := w.mapper()
		dst := image.Rect(
			int(m.Rect.Min.X), int(m.Rect.Min.Y),
			int(m.Rect.Max.X), int(m.Rect.Max.Y),
		)
		if !dst.Intersect(canvasArea).Empty() {
			xdraw.NearestNeighbor.Scale(rgba, dst, canvas, canvas.Bounds(), draw.Over, nil)
		}
	}

	// Toolbar over the left edge.
	fillRect(rgba, image.Rect(0, 0, toolbarWidth, w.height), th.ToolbarBackground)
	drawText(rgba, 8, 16, "PhotoMark", th.Foreground)
	for _, b := range buttons {
		bg := th.ButtonBackground
		if b.active != nil && b.active() {
			bg = th.ButtonActive
		}
		fillRect(rgba, b.rect, bg)
		strokeRect(rgba, b.rect, th.ButtonBorder)
		switch {
		case b.swatch != nil:
			fillRect(rgba, b.rect.Inset(2), *b.swatch)
		case b.label != "":
			drawText(rgba, b.rect.Min.X+4, b.rect.Min.Y+15, b.label, th.ButtonText)
		}
	}

	// Status line.
	statusRect := image.Rect(0, w.height-statusHeight, w.width, w.height)
	fillRect(rgba, statusRect, th.ToolbarBackground)
	status := fmt.Sprintf("%s | %s | zoom %d%%",
		w.Editor.Tool(), w.Editor.Mode(), int(w.Editor.Zoom()*100))
	if w.Editor.Saving() {
		status += " | saving..."
	} else if w.Editor.HasChanges() {
		status += " | unsaved"
	}
	if w.message != "" && time.Now().Before(w.msgUntil) {
		status += " | " + w.message
	}
	drawText(rgba, 8, w.height-7, status, th.Foreground)

	win.Upload(image.Point{}, buf, buf.Bounds())
	win.Publish()
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.SetRGBA(x, r.Min.Y, c)
		dst.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.SetRGBA(r.Min.X, y, c)
		dst.SetRGBA(r.Max.X-1, y, c)
	}
}

func drawCheckerboard(dst *image.RGBA, r image.Rectangle, light, dark color.RGBA) {
	const cell = 12
	r = r.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if ((x/cell)+(y/cell))%2 == 0 {
				dst.SetRGBA(x, y, light)
			} else {
				dst.SetRGBA(x, y, dark)
			}
		}
	}
}

func drawText(dst *image.RGBA, x, y int, s string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
