// Package editor is the engine facade: one base image, one annotation
// store, one gesture router, one renderer and one save bridge, wired
// together behind the toolbar-shaped API the UI and CLI drive.
package editor

import (
	"context"
	"errors"
	"image"
	"image/color"

	"github.com/example/photomark/internal/annotation"
	"github.com/example/photomark/internal/gesture"
	"github.com/example/photomark/internal/persist"
	"github.com/example/photomark/internal/render"
	"github.com/example/photomark/internal/viewport"
)

// ErrNoImage is returned when an operation needs a loaded base image.
var ErrNoImage = errors.New("no base image loaded")

// Editor owns the complete markup state for one image at a time. All
// methods are synchronous and single-goroutine, called from the host's
// event loop.
type Editor struct {
	store    *annotation.Store
	router   *gesture.Router
	renderer *render.Renderer
	bridge   *persist.Bridge

	sourceName string
	parentID   string
	hasChanges bool
	savedLen   int

	// OnRepaint fires whenever the composited canvas or the viewport
	// changed and the host should redraw its frame.
	OnRepaint func()
}

// New returns an editor with no image loaded. Input stays disabled
// until SetImage provides a base.
func New() *Editor {
	e := &Editor{
		store:  annotation.NewStore(),
		router: gesture.NewRouter(),
		bridge: persist.NewBridge(),
	}
	e.router.OnCommit = e.commit
	e.router.OnSegment = e.segment
	e.router.OnPreview = e.preview
	e.router.OnDiscard = e.discard
	e.router.OnViewport = func(viewport.Viewport) { e.repaint() }
	return e
}

// SetImage replaces the base image. Order is deliberate: the live
// gesture is cancelled uncommitted, the store is cleared, and only
// then does the new base become current, so stale annotations can
// never paint over the new photograph.
func (e *Editor) SetImage(img image.Image, name, parentID string) {
	e.router.Cancel()
	e.store.Clear()
	e.renderer = render.New(img)
	e.sourceName = name
	e.parentID = parentID
	e.hasChanges = false
	e.router.SetEnabled(true)
	e.repaint()
}

// Loaded reports whether a base image is current.
func (e *Editor) Loaded() bool {
	return e.renderer != nil
}

// Router exposes the gesture machine for event feeding.
func (e *Editor) Router() *gesture.Router {
	return e.router
}

// Canvas returns the composited canvas, or nil before the first image.
func (e *Editor) Canvas() *image.RGBA {
	if e.renderer == nil {
		return nil
	}
	return e.renderer.Canvas()
}

// Bounds is the canvas rectangle of the current image.
func (e *Editor) Bounds() image.Rectangle {
	if e.renderer == nil {
		return image.Rectangle{}
	}
	return e.renderer.Bounds()
}

// SetTool selects the annotate tool.
func (e *Editor) SetTool(t gesture.Tool) { e.router.Tool = t }

// Tool reports the selected tool.
func (e *Editor) Tool() gesture.Tool { return e.router.Tool }

// SetMode switches between annotating and panning.
func (e *Editor) SetMode(m gesture.Mode) { e.router.Mode = m }

// Mode reports the interaction mode.
func (e *Editor) Mode() gesture.Mode { return e.router.Mode }

// SetColor sets the ink color from a #RRGGBB(AA) string.
func (e *Editor) SetColor(hex string) error {
	c, err := annotation.ParseHex(hex)
	if err != nil {
		return err
	}
	e.router.Color = c
	return nil
}

// SetColorRGBA sets the ink color directly.
func (e *Editor) SetColorRGBA(c color.RGBA) { e.router.Color = c }

// Color reports the current ink color.
func (e *Editor) Color() color.RGBA { return e.router.Color }

// SetWidth sets the stroke width in canvas pixels.
func (e *Editor) SetWidth(w float64) {
	if w > 0 {
		e.router.Width = w
	}
}

// Width reports the stroke width.
func (e *Editor) Width() float64 { return e.router.Width }

// Zoom reports the current display zoom.
func (e *Editor) Zoom() float64 { return e.router.Viewport().Zoom }

// Viewport reports the display transform.
func (e *Editor) Viewport() viewport.Viewport { return e.router.Viewport() }

// ResetView restores zoom 1 and zero pan, recovering an image panned
// out of the window.
func (e *Editor) ResetView() {
	v := e.router.Viewport()
	v.Reset()
	e.router.SetViewport(v)
	e.repaint()
}

// HasChanges reports whether unsaved annotations exist; the host gates
// its Save control on this.
func (e *Editor) HasChanges() bool { return e.hasChanges }

// Annotations returns the committed history in paint order.
func (e *Editor) Annotations() []annotation.Annotation { return e.store.All() }

// ClearAnnotations drops all markup from the current image.
func (e *Editor) ClearAnnotations() {
	e.router.Cancel()
	e.store.Clear()
	e.hasChanges = false
	if e.renderer != nil {
		e.renderer.Redraw(e.store, nil)
	}
	e.repaint()
}

// SetQuality sets the JPEG quality of saved derivatives.
func (e *Editor) SetQuality(q int) {
	if q >= 1 && q <= 100 {
		e.bridge.Quality = q
	}
}

// Saving reports whether a save is in flight.
func (e *Editor) Saving() bool { return e.bridge.Saving() }

// BeginSave flattens the canvas into a derivative blob on the caller's
// goroutine and marks the save in flight. The canvas is not touched
// again afterwards, so new gestures may paint while the blob uploads.
func (e *Editor) BeginSave() (persist.Blob, error) {
	if e.renderer == nil {
		return persist.Blob{}, ErrNoImage
	}
	blob, err := e.bridge.Encode(e.renderer.Canvas(), e.sourceName, e.parentID)
	if err != nil {
		return persist.Blob{}, err
	}
	e.savedLen = e.store.Len()
	return blob, nil
}

// Upload ships a blob from BeginSave and ends the in-flight save. It
// reads nothing the engine owns, so hosts may run it on a background
// goroutine while the event loop keeps handling gestures.
func (e *Editor) Upload(ctx context.Context, b persist.Blob, up persist.Uploader) error {
	return e.bridge.Dispatch(ctx, b, up)
}

// MarkSaved clears HasChanges after a successful upload, unless new
// annotations were committed since the blob was flattened; those are
// still unsaved. Call on the goroutine that drives the editor.
func (e *Editor) MarkSaved() {
	if e.store.Len() == e.savedLen {
		e.hasChanges = false
	}
}

// Save is the synchronous path for headless hosts: flatten, upload and
// clear HasChanges on the caller's goroutine. Failure leaves the store
// and canvas untouched so the caller can retry.
func (e *Editor) Save(ctx context.Context, up persist.Uploader) (persist.Blob, error) {
	blob, err := e.BeginSave()
	if err != nil {
		return persist.Blob{}, err
	}
	if err := e.Upload(ctx, blob, up); err != nil {
		return persist.Blob{}, err
	}
	e.MarkSaved()
	return blob, nil
}

func (e *Editor) commit(a annotation.Annotation) {
	e.store.Append(a)
	e.hasChanges = true
	if e.renderer != nil {
		// A committed circle replaces its preview; a committed path is
		// already on the overlay from incremental segments. One full
		// redraw covers both and keeps the canvas canonical.
		e.renderer.Redraw(e.store, nil)
	}
	e.repaint()
}

func (e *Editor) segment(from, to annotation.Point, col color.RGBA, width float64, eraser bool) {
	if e.renderer == nil {
		return
	}
	e.renderer.Segment(from, to, col, width, eraser)
	e.repaint()
}

func (e *Editor) preview(c annotation.Circle) {
	if e.renderer == nil {
		return
	}
	e.renderer.Redraw(e.store, &c)
	e.repaint()
}

func (e *Editor) discard() {
	if e.renderer == nil {
		return
	}
	e.renderer.Redraw(e.store, nil)
	e.repaint()
}

func (e *Editor) repaint() {
	if e.OnRepaint != nil {
		e.OnRepaint()
	}
}
