package gesture

import (
	"image/color"

	"github.com/example/photomark/internal/annotation"
	"github.com/example/photomark/internal/viewport"
)

// Router turns pointer events into annotations and viewport changes.
// All methods are synchronous and must be called from one goroutine,
// the one delivering input events.
//
// Outputs are explicit: OnCommit for a finished annotation, OnSegment
// for an incremental freehand segment, OnPreview for the live circle
// outline, OnViewport after pan or zoom, OnDiscard when pending
// gesture data is thrown away and the canvas needs a clean repaint.
// Nil callbacks are skipped.
type Router struct {
	Tool  Tool
	Mode  Mode
	Color color.RGBA
	Width float64

	WheelStep float64

	OnCommit   func(annotation.Annotation)
	OnSegment  func(from, to annotation.Point, col color.RGBA, width float64, eraser bool)
	OnPreview  func(annotation.Circle)
	OnViewport func(viewport.Viewport)
	OnDiscard  func()

	view    viewport.Viewport
	state   session
	enabled bool
}

// NewRouter returns a router in Idle over the identity viewport. It
// starts disabled: until a base image is loaded no event leaves Idle.
func NewRouter() *Router {
	return &Router{
		Color:     color.RGBA{R: 255, A: 255},
		Width:     4,
		WheelStep: viewport.DefaultWheelStep,
		view:      viewport.New(),
		state:     idle{},
	}
}

// State reports the current session state.
func (r *Router) State() StateKind {
	return r.state.kind()
}

// Viewport returns the current display transform.
func (r *Router) Viewport() viewport.Viewport {
	return r.view
}

// SetViewport replaces the display transform, clamping zoom.
func (r *Router) SetViewport(v viewport.Viewport) {
	v.Zoom = viewport.ClampZoom(v.Zoom)
	r.view = v
}

// SetEnabled gates the machine. Disabling cancels any live gesture;
// while disabled the router refuses to leave Idle.
func (r *Router) SetEnabled(on bool) {
	if !on {
		r.Cancel()
	}
	r.enabled = on
}

// Enabled reports whether pointer events are accepted.
func (r *Router) Enabled() bool {
	return r.enabled
}

// Down handles a pointer press or an additional touch point.
func (r *Router) Down(ev Event) {
	if !r.enabled {
		return
	}
	if len(ev.Touches) >= 2 {
		// Second touch wins: whatever single-touch gesture was in
		// flight is discarded without a commit.
		switch r.state.(type) {
		case *drawing, *circlePending:
			r.discard()
		}
		r.state = r.startPinch(ev)
		return
	}
	switch r.state.(type) {
	case idle:
		if r.Mode == ModePan {
			r.state = &panning{origin: viewport.Point{
				X: ev.Client.X - r.view.Pan.X,
				Y: ev.Client.Y - r.view.Pan.Y,
			}}
			return
		}
		switch r.Tool {
		case ToolCircle:
			r.state = &circlePending{start: ev.Canvas, color: r.Color, width: r.Width}
		default:
			r.state = &drawing{
				points: []annotation.Point{ev.Canvas},
				color:  r.Color,
				width:  r.Width,
				eraser: r.Tool == ToolErase,
			}
		}
	}
}

// Move handles pointer motion.
func (r *Router) Move(ev Event) {
	switch st := r.state.(type) {
	case *drawing:
		prev := st.points[len(st.points)-1]
		st.points = append(st.points, ev.Canvas)
		if r.OnSegment != nil {
			r.OnSegment(prev, ev.Canvas, st.color, st.width, st.eraser)
		}
	case *circlePending:
		st.radius = dist(st.start, ev.Canvas)
		if r.OnPreview != nil {
			r.OnPreview(annotation.Circle{
				Center: st.start,
				Radius: st.radius,
				Color:  st.color,
				Width:  st.width,
			})
		}
	case *panning:
		r.view.Pan = viewport.Point{
			X: ev.Client.X - st.origin.X,
			Y: ev.Client.Y - st.origin.Y,
		}
		r.viewportChanged()
	case *pinching:
		if len(ev.Touches) < 2 {
			return
		}
		d := viewport.Dist(ev.Touches[0], ev.Touches[1])
		c := viewport.Mid(ev.Touches[0], ev.Touches[1])
		if st.baseDist > 0 {
			r.view.Zoom = viewport.ClampZoom(st.baseZoom * d / st.baseDist)
		}
		r.view.Pan = viewport.Point{
			X: st.basePan.X + c.X - st.baseCenter.X,
			Y: st.basePan.Y + c.Y - st.baseCenter.Y,
		}
		r.viewportChanged()
	}
}

// Up handles a pointer release.
func (r *Router) Up(ev Event) {
	switch st := r.state.(type) {
	case *drawing:
		if len(st.points) >= 2 {
			r.commit(annotation.Path{
				Points: st.points,
				Color:  st.color,
				Width:  st.width,
				Eraser: st.eraser,
			})
		}
		r.state = idle{}
	case *circlePending:
		if st.radius > 0 {
			r.commit(annotation.Circle{
				Center: st.start,
				Radius: st.radius,
				Color:  st.color,
				Width:  st.width,
			})
		} else {
			// Nothing committed; the host still repaints to drop any
			// stale preview.
			r.discard()
		}
		r.state = idle{}
	case *panning:
		r.state = idle{}
	case *pinching:
		if len(ev.Touches) >= 2 {
			// Fingers moved but both still down; rebaseline so the
			// remaining gesture continues smoothly.
			r.state = r.startPinch(ev)
			return
		}
		r.state = idle{}
	}
}

// Wheel applies wheel zoom: pan mode only, fixed step per notch,
// clamped independent of the touch machine.
func (r *Router) Wheel(steps float64) {
	if !r.enabled || r.Mode != ModePan {
		return
	}
	before := r.view.Zoom
	r.view.StepZoom(steps, r.WheelStep)
	if r.view.Zoom != before {
		r.viewportChanged()
	}
}

// Cancel aborts any live gesture without committing. Viewport changes
// already applied by pan or pinch stay.
func (r *Router) Cancel() {
	switch r.state.(type) {
	case *drawing, *circlePending:
		r.discard()
	}
	r.state = idle{}
}

func (r *Router) startPinch(ev Event) *pinching {
	return &pinching{
		baseDist:   viewport.Dist(ev.Touches[0], ev.Touches[1]),
		baseCenter: viewport.Mid(ev.Touches[0], ev.Touches[1]),
		baseZoom:   r.view.Zoom,
		basePan:    r.view.Pan,
	}
}

func (r *Router) commit(a annotation.Annotation) {
	if r.OnCommit != nil {
		r.OnCommit(a)
	}
}

func (r *Router) discard() {
	if r.OnDiscard != nil {
		r.OnDiscard()
	}
}

func (r *Router) viewportChanged() {
	if r.OnViewport != nil {
		r.OnViewport(r.view)
	}
}

func dist(a, b annotation.Point) float64 {
	return viewport.Dist(viewport.Point{X: a.X, Y: a.Y}, viewport.Point{X: b.X, Y: b.Y})
}
