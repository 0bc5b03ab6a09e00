package gesture

import (
	"image/color"
	"math"
	"testing"

	"github.com/example/photomark/internal/annotation"
	"github.com/example/photomark/internal/viewport"
)

type recorder struct {
	commits   []annotation.Annotation
	segments  int
	previews  []annotation.Circle
	viewports []viewport.Viewport
	discards  int
}

func newRouter(rec *recorder) *Router {
	r := NewRouter()
	r.SetEnabled(true)
	r.OnCommit = func(a annotation.Annotation) { rec.commits = append(rec.commits, a) }
	r.OnSegment = func(from, to annotation.Point, col color.RGBA, w float64, eraser bool) { rec.segments++ }
	r.OnPreview = func(c annotation.Circle) { rec.previews = append(rec.previews, c) }
	r.OnViewport = func(v viewport.Viewport) { rec.viewports = append(rec.viewports, v) }
	r.OnDiscard = func() { rec.discards++ }
	return r
}

func at(x, y float64) Event {
	return Event{
		Canvas:  annotation.Point{X: x, Y: y},
		Client:  viewport.Point{X: x, Y: y},
		Touches: []viewport.Point{{X: x, Y: y}},
	}
}

func twoTouches(a, b viewport.Point) Event {
	return Event{Client: a, Touches: []viewport.Point{a, b}}
}

func TestDrawCommitsPath(t *testing.T) {
	var rec recorder
	r := newRouter(&rec)
	r.Down(at(10, 10))
	if r.State() != StateDrawing {
		t.Fatalf("state after Down = %v, want drawing", r.State())
	}
	r.Move(at(20, 20))
	r.Move(at(30, 25))
	r.Up(at(30, 25))
	if r.State() != StateIdle {
		t.Fatalf("state after Up = %v, want idle", r.State())
	}
	if rec.segments != 2 {
		t.Errorf("segments = %d, want 2", rec.segments)
	}
	if len(rec.commits) != 1 {
		t.Fatalf("commits = %d, want 1", len(rec.commits))
	}
	p, ok := rec.commits[0].(annotation.Path)
	if !ok {
		t.Fatalf("committed %T, want Path", rec.commits[0])
	}
	if len(p.Points) != 3 {
		t.Errorf("path has %d points, want 3", len(p.Points))
	}
}

func TestTapWithoutMoveCommitsNothing(t *testing.T) {
	var rec recorder
	r := newRouter(&rec)
	r.Down(at(10, 10))
	r.Up(at(10, 10))
	if len(rec.commits) != 0 {
		t.Fatalf("single-point path committed: %v", rec.commits)
	}
}

func TestEraseToolCommitsEraserPath(t *testing.T) {
	var rec recorder
	r := newRouter(&rec)
	r.Tool = ToolErase
	r.Down(at(0, 0))
	r.Move(at(5, 5))
	r.Up(at(5, 5))
	p := rec.commits[0].(annotation.Path)
	if !p.Eraser {
		t.Fatal("erase tool committed a non-eraser path")
	}
}

func TestCirclePreviewAndCommit(t *testing.T) {
	var rec recorder
	r := newRouter(&rec)
	r.Tool = ToolCircle
	r.Down(at(100, 100))
	if r.State() != StateCirclePending {
		t.Fatalf("state = %v, want circle-pending", r.State())
	}
	r.Move(at(103, 104))
	if len(rec.previews) != 1 {
		t.Fatalf("previews = %d, want 1", len(rec.previews))
	}
	if got := rec.previews[0].Radius; math.Abs(got-5) > 1e-9 {
		t.Errorf("preview radius = %v, want 5", got)
	}
	r.Up(at(103, 104))
	c, ok := rec.commits[0].(annotation.Circle)
	if !ok {
		t.Fatalf("committed %T, want Circle", rec.commits[0])
	}
	if math.Abs(c.Radius-5) > 1e-9 || c.Center != (annotation.Point{X: 100, Y: 100}) {
		t.Errorf("committed circle %+v", c)
	}
}

func TestZeroRadiusCircleNotCommitted(t *testing.T) {
	var rec recorder
	r := newRouter(&rec)
	r.Tool = ToolCircle
	r.Down(at(100, 100))
	r.Up(at(100, 100))
	if len(rec.commits) != 0 {
		t.Fatalf("radius-0 circle committed: %v", rec.commits)
	}
	if rec.discards != 1 {
		t.Errorf("discards = %d, want 1", rec.discards)
	}
}

func TestSecondTouchDiscardsDrawing(t *testing.T) {
	var rec recorder
	r := newRouter(&rec)
	r.Down(at(10, 10))
	r.Move(at(40, 40))
	r.Down(twoTouches(viewport.Point{X: 40, Y: 40}, viewport.Point{X: 140, Y: 40}))
	if r.State() != StatePinching {
		t.Fatalf("state = %v, want pinching", r.State())
	}
	if rec.discards != 1 {
		t.Errorf("discards = %d, want 1", rec.discards)
	}
	// Pinch through to release: the abandoned stroke must never land.
	r.Move(twoTouches(viewport.Point{X: 20, Y: 40}, viewport.Point{X: 220, Y: 40}))
	r.Up(at(20, 40))
	if len(rec.commits) != 0 {
		t.Fatalf("discarded stroke committed: %v", rec.commits)
	}
	if r.State() != StateIdle {
		t.Errorf("state after pinch end = %v, want idle", r.State())
	}
}

func TestSecondTouchDiscardsCirclePending(t *testing.T) {
	var rec recorder
	r := newRouter(&rec)
	r.Tool = ToolCircle
	r.Down(at(50, 50))
	r.Move(at(80, 50))
	r.Down(twoTouches(viewport.Point{X: 80, Y: 50}, viewport.Point{X: 10, Y: 50}))
	if r.State() != StatePinching {
		t.Fatalf("state = %v, want pinching", r.State())
	}
	if rec.discards != 1 || len(rec.commits) != 0 {
		t.Errorf("discards = %d commits = %d, want 1 and 0", rec.discards, len(rec.commits))
	}
}

func TestPinchZoomAndPan(t *testing.T) {
	var rec recorder
	r := newRouter(&rec)
	r.Down(twoTouches(viewport.Point{X: 100, Y: 100}, viewport.Point{X: 200, Y: 100}))
	// Spread to double the distance around a center shifted +10 in x.
	r.Move(twoTouches(viewport.Point{X: 60, Y: 100}, viewport.Point{X: 260, Y: 100}))
	v := r.Viewport()
	if math.Abs(v.Zoom-2) > 1e-9 {
		t.Errorf("zoom = %v, want 2", v.Zoom)
	}
	if math.Abs(v.Pan.X-10) > 1e-9 || math.Abs(v.Pan.Y) > 1e-9 {
		t.Errorf("pan = %+v, want (10,0)", v.Pan)
	}
	if len(rec.viewports) == 0 {
		t.Error("no viewport callback fired")
	}
}

func TestPinchZoomClamped(t *testing.T) {
	var rec recorder
	r := newRouter(&rec)
	r.Down(twoTouches(viewport.Point{X: 100, Y: 100}, viewport.Point{X: 110, Y: 100}))
	r.Move(twoTouches(viewport.Point{X: 0, Y: 100}, viewport.Point{X: 500, Y: 100}))
	if got := r.Viewport().Zoom; got != viewport.MaxZoom {
		t.Errorf("zoom = %v, want clamp at %v", got, viewport.MaxZoom)
	}
	r.Move(twoTouches(viewport.Point{X: 100, Y: 100}, viewport.Point{X: 100.5, Y: 100}))
	if got := r.Viewport().Zoom; got != viewport.MinZoom {
		t.Errorf("zoom = %v, want clamp at %v", got, viewport.MinZoom)
	}
}

func TestPanDrag(t *testing.T) {
	var rec recorder
	r := newRouter(&rec)
	r.Mode = ModePan
	r.Down(at(100, 100))
	if r.State() != StatePanning {
		t.Fatalf("state = %v, want panning", r.State())
	}
	r.Move(at(130, 80))
	v := r.Viewport()
	if v.Pan != (viewport.Point{X: 30, Y: -20}) {
		t.Errorf("pan = %+v, want (30,-20)", v.Pan)
	}
	r.Up(at(130, 80))
	if r.State() != StateIdle {
		t.Errorf("state = %v, want idle", r.State())
	}
	// A second drag continues from the existing pan.
	r.Down(at(0, 0))
	r.Move(at(10, 10))
	if got := r.Viewport().Pan; got != (viewport.Point{X: 40, Y: -10}) {
		t.Errorf("pan after second drag = %+v, want (40,-10)", got)
	}
}

func TestWheelZoomPanModeOnly(t *testing.T) {
	var rec recorder
	r := newRouter(&rec)
	r.Wheel(1)
	if got := r.Viewport().Zoom; got != 1 {
		t.Fatalf("wheel in annotate mode changed zoom to %v", got)
	}
	r.Mode = ModePan
	r.Wheel(2)
	if got := r.Viewport().Zoom; got != 1.5 {
		t.Fatalf("zoom = %v, want 1.5", got)
	}
	r.Wheel(100)
	if got := r.Viewport().Zoom; got != viewport.MaxZoom {
		t.Fatalf("zoom = %v, want clamp at %v", got, viewport.MaxZoom)
	}
}

func TestDisabledRouterStaysIdle(t *testing.T) {
	var rec recorder
	r := newRouter(&rec)
	r.SetEnabled(false)
	r.Down(at(10, 10))
	if r.State() != StateIdle {
		t.Fatalf("disabled router left idle: %v", r.State())
	}
	r.Wheel(1)
	if got := r.Viewport().Zoom; got != 1 {
		t.Errorf("disabled router zoomed to %v", got)
	}
}

func TestCancelDiscardsLiveGesture(t *testing.T) {
	var rec recorder
	r := newRouter(&rec)
	r.Down(at(10, 10))
	r.Move(at(20, 20))
	r.Cancel()
	if r.State() != StateIdle {
		t.Fatalf("state after Cancel = %v, want idle", r.State())
	}
	if rec.discards != 1 || len(rec.commits) != 0 {
		t.Errorf("discards = %d commits = %d, want 1 and 0", rec.discards, len(rec.commits))
	}
}

func TestDownCapturesToolSettings(t *testing.T) {
	var rec recorder
	r := newRouter(&rec)
	r.Color = color.RGBA{B: 255, A: 255}
	r.Width = 9
	r.Down(at(0, 0))
	// Settings changed mid-stroke must not affect the live gesture.
	r.Color = color.RGBA{G: 255, A: 255}
	r.Width = 1
	r.Move(at(5, 5))
	r.Up(at(5, 5))
	p := rec.commits[0].(annotation.Path)
	if p.Color != (color.RGBA{B: 255, A: 255}) || p.Width != 9 {
		t.Errorf("committed path %+v, want color captured at press", p)
	}
}
