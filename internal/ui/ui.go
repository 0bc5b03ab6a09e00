// Package ui is the shiny editor window. It owns no markup logic: all
// pointer input is translated into gesture router events against the
// editor facade, and every frame is painted from the editor's
// composited canvas.
package ui

import (
	"context"
	"image"
	"log"
	"path/filepath"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/photomark/internal/clipboard"
	"github.com/example/photomark/internal/editor"
	"github.com/example/photomark/internal/gesture"
	"github.com/example/photomark/internal/notify"
	"github.com/example/photomark/internal/persist"
	"github.com/example/photomark/internal/source"
	"github.com/example/photomark/internal/theme"
	"github.com/example/photomark/internal/viewport"
)

const (
	toolbarWidth = 104
	statusHeight = 22
)

// Window drives the editor UI.
type Window struct {
	Editor   *editor.Editor
	Theme    *theme.Theme
	Uploader persist.Uploader
	Notifier *notify.Notifier

	// SourcePath is shown in the title bar; when the editor has no
	// image yet it is also loaded asynchronously on startup.
	SourcePath string

	// ParentID is attached to saved derivatives.
	ParentID string

	width  int
	height int

	touches  []touchPoint
	mouseIn  bool
	message  string
	msgUntil time.Time

	saveDone chan saveResult
}

type touchPoint struct {
	seq touch.Sequence
	pos viewport.Point
}

type saveResult struct {
	blob persist.Blob
	err  error
}

type loadResult struct {
	img image.Image
	err error
}

// Option modifies a Window during creation.
type Option func(*Window)

// WithTheme sets the UI theme.
func WithTheme(t *theme.Theme) Option { return func(w *Window) { w.Theme = t } }

// WithUploader sets the destination for saved derivatives.
func WithUploader(up persist.Uploader) Option { return func(w *Window) { w.Uploader = up } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) Option { return func(w *Window) { w.Notifier = n } }

// WithSourcePath records the path of the image to edit.
func WithSourcePath(p string) Option { return func(w *Window) { w.SourcePath = p } }

// WithParentID sets the parent record id attached to saved derivatives.
func WithParentID(id string) Option { return func(w *Window) { w.ParentID = id } }

// New creates a window around an editor.
func New(ed *editor.Editor, opts ...Option) *Window {
	w := &Window{
		Editor:   ed,
		Theme:    theme.Default(),
		saveDone: make(chan saveResult, 1),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Run executes the UI loop using shiny's driver. It does not return
// until the window closes.
func (w *Window) Run() { driver.Main(w.main) }

func (w *Window) main(s screen.Screen) {
	bounds := w.Editor.Bounds()
	w.width = bounds.Dx() + toolbarWidth
	w.height = bounds.Dy() + statusHeight
	if w.width < 480 {
		w.width = 480
	}
	if w.height < 320 {
		w.height = 320
	}

	win, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  w.width,
		Height: w.height,
		Title:  "PhotoMark - " + w.SourcePath,
	})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer win.Release()

	w.Editor.OnRepaint = func() { win.Send(paint.Event{}) }

	// Decode off the event loop; the router stays disabled and the
	// frame shows only the backdrop until the image arrives.
	if !w.Editor.Loaded() && w.SourcePath != "" {
		source.Load(w.SourcePath, func(img image.Image, err error) {
			win.Send(loadResult{img: img, err: err})
		})
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case res := <-w.saveDone:
				win.Send(res)
			case <-done:
				return
			}
		}
	}()

	buttons := w.buildToolbar()

	for {
		switch e := win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			w.width = e.WidthPx
			w.height = e.HeightPx
			win.Send(paint.Event{})
		case paint.Event:
			w.drawFrame(s, win, buttons)
		case mouse.Event:
			w.handleMouse(win, e, buttons)
		case touch.Event:
			w.handleTouch(e)
		case key.Event:
			w.handleKey(win, e, buttons)
		case saveResult:
			w.finishSave(e)
			win.Send(paint.Event{})
		case loadResult:
			w.finishLoad(e)
			win.Send(paint.Event{})
		}
	}
}

func (w *Window) finishLoad(res loadResult) {
	if res.err != nil {
		log.Printf("load: %v", res.err)
		w.setMessage("load failed")
		if w.Notifier != nil {
			w.Notifier.Error(res.err.Error())
		}
		return
	}
	w.Editor.SetImage(res.img, filepath.Base(w.SourcePath), w.ParentID)
}

// mapper converts the current frame's screen coordinates to canvas
// space. The display rect already includes zoom and pan.
func (w *Window) mapper() viewport.Mapper {
	return viewport.NewMapper(
		w.Editor.Bounds(),
		w.Editor.Viewport(),
		viewport.Point{X: toolbarWidth},
	)
}

func (w *Window) pointerEvent(x, y float64) gesture.Event {
	client := viewport.Point{X: x, Y: y}
	return gesture.Event{
		Canvas:  w.mapper().Canvas(x, y),
		Client:  client,
		Touches: []viewport.Point{client},
	}
}

func (w *Window) handleMouse(win screen.Window, e mouse.Event, buttons []*button) {
	p := image.Pt(int(e.X), int(e.Y))
	r := w.Editor.Router()

	// Wheel zoom is independent of the button state machine.
	switch e.Button {
	case mouse.ButtonWheelUp:
		r.Wheel(1)
		return
	case mouse.ButtonWheelDown:
		r.Wheel(-1)
		return
	}

	if p.X < toolbarWidth {
		if w.mouseIn {
			// Pointer dragged off the canvas mid-gesture.
			r.Cancel()
			w.mouseIn = false
			win.Send(paint.Event{})
		}
		if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
			for _, b := range buttons {
				if p.In(b.rect) && b.onClick != nil {
					b.onClick()
					win.Send(paint.Event{})
					break
				}
			}
		}
		return
	}

	if !w.Editor.Loaded() {
		return
	}
	ev := w.pointerEvent(float64(e.X), float64(e.Y))
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		w.mouseIn = true
		r.Down(ev)
	case e.Direction == mouse.DirNone && w.mouseIn:
		r.Move(ev)
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		w.mouseIn = false
		r.Up(ev)
	}
}

// handleTouch tracks active touch sequences and forwards them to the
// router as multi-point events; two concurrent sequences become a
// pinch.
func (w *Window) handleTouch(e touch.Event) {
	if !w.Editor.Loaded() {
		return
	}
	pos := viewport.Point{X: float64(e.X), Y: float64(e.Y)}
	idx := -1
	for i, t := range w.touches {
		if t.seq == e.Sequence {
			idx = i
			break
		}
	}

	switch e.Type {
	case touch.TypeBegin:
		if idx < 0 {
			w.touches = append(w.touches, touchPoint{seq: e.Sequence, pos: pos})
		} else {
			w.touches[idx].pos = pos
		}
		w.Editor.Router().Down(w.touchEvent(pos))
	case touch.TypeMove:
		if idx < 0 {
			return
		}
		w.touches[idx].pos = pos
		w.Editor.Router().Move(w.touchEvent(pos))
	case touch.TypeEnd:
		if idx >= 0 {
			w.touches = append(w.touches[:idx], w.touches[idx+1:]...)
		}
		w.Editor.Router().Up(w.touchEvent(pos))
	}
}

func (w *Window) touchEvent(primary viewport.Point) gesture.Event {
	pts := make([]viewport.Point, len(w.touches))
	for i, t := range w.touches {
		pts[i] = t.pos
	}
	return gesture.Event{
		Canvas:  w.mapper().Canvas(primary.X, primary.Y),
		Client:  primary,
		Touches: pts,
	}
}

func (w *Window) handleKey(win screen.Window, e key.Event, buttons []*button) {
	if e.Direction != key.DirPress {
		return
	}
	ed := w.Editor
	switch unicode.ToLower(e.Rune) {
	case 'p':
		ed.SetMode(gesture.ModeAnnotate)
		ed.SetTool(gesture.ToolPath)
	case 'o':
		ed.SetMode(gesture.ModeAnnotate)
		ed.SetTool(gesture.ToolCircle)
	case 'e':
		ed.SetMode(gesture.ModeAnnotate)
		ed.SetTool(gesture.ToolErase)
	case 'v':
		ed.SetMode(gesture.ModePan)
	case 'r':
		ed.ResetView()
	case 'c':
		if e.Modifiers&key.ModControl != 0 {
			w.copyToClipboard()
		}
	case 's':
		if e.Modifiers&key.ModControl != 0 {
			w.startSave()
		}
	case 'q':
		win.Send(lifecycle.Event{To: lifecycle.StageDead})
		return
	}
	win.Send(paint.Event{})
}

func (w *Window) copyToClipboard() {
	canvas := w.Editor.Canvas()
	if canvas == nil {
		return
	}
	if err := clipboard.WriteImage(canvas); err != nil {
		log.Printf("copy: %v", err)
		w.setMessage("copy failed")
		return
	}
	w.setMessage("copied to clipboard")
}

// startSave flattens the canvas here on the event loop, then uploads
// the blob in the background. The engine's canvas and store are only
// ever touched on this goroutine; the upload reads nothing but the
// blob. Gesture input stays live; only the Save control is gated until
// the result arrives.
func (w *Window) startSave() {
	ed := w.Editor
	if !ed.HasChanges() || ed.Saving() || w.Uploader == nil {
		return
	}
	blob, err := ed.BeginSave()
	if err != nil {
		log.Printf("save: %v", err)
		w.setMessage("save failed")
		return
	}
	go func() {
		err := ed.Upload(context.Background(), blob, w.Uploader)
		w.saveDone <- saveResult{blob: blob, err: err}
	}()
}

// finishSave runs on the event loop via the saveDone forwarder.
func (w *Window) finishSave(res saveResult) {
	if res.err != nil {
		log.Printf("save: %v", res.err)
		w.setMessage("save failed")
		if w.Notifier != nil {
			w.Notifier.Error(res.err.Error())
		}
		return
	}
	w.Editor.MarkSaved()
	w.setMessage("saved " + res.blob.Filename)
	log.Printf("saved %s", res.blob.Filename)
	if w.Notifier != nil {
		w.Notifier.Save(res.blob.Filename, w.Editor.Canvas())
	}
}

func (w *Window) setMessage(msg string) {
	w.message = msg
	w.msgUntil = time.Now().Add(2 * time.Second)
}
