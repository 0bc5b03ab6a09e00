// Package gesture disambiguates pointer input into drawing, panning
// and pinch-zoom interactions. The Router is a pure state machine: it
// is driven only by pointer events and reports its effects through
// explicit callbacks, so it carries no canvas, store or UI dependency.
package gesture

import (
	"image/color"

	"github.com/example/photomark/internal/annotation"
	"github.com/example/photomark/internal/viewport"
)

// Tool selects what a one-finger drag in annotate mode produces.
type Tool int

const (
	ToolPath Tool = iota
	ToolCircle
	ToolErase
)

func (t Tool) String() string {
	switch t {
	case ToolPath:
		return "path"
	case ToolCircle:
		return "circle"
	case ToolErase:
		return "erase"
	}
	return "unknown"
}

// Mode selects whether a one-finger drag annotates or pans.
type Mode int

const (
	ModeAnnotate Mode = iota
	ModePan
)

func (m Mode) String() string {
	if m == ModePan {
		return "pan"
	}
	return "annotate"
}

// Event is one pointer event. Canvas is the primary pointer mapped to
// canvas pixel space; Client is its raw screen position. Touches holds
// the raw screen positions of every active touch point; for mouse
// input it has at most one entry. Pinch geometry is computed from
// Touches, never from Canvas.
type Event struct {
	Canvas  annotation.Point
	Client  viewport.Point
	Touches []viewport.Point
}

// StateKind identifies the router's current session state.
type StateKind int

const (
	StateIdle StateKind = iota
	StateDrawing
	StateCirclePending
	StatePanning
	StatePinching
)

func (k StateKind) String() string {
	switch k {
	case StateDrawing:
		return "drawing"
	case StateCirclePending:
		return "circle-pending"
	case StatePanning:
		return "panning"
	case StatePinching:
		return "pinching"
	}
	return "idle"
}

// session is the live interaction. Exactly one concrete state exists
// at a time; illegal combinations are unrepresentable.
type session interface {
	kind() StateKind
}

type idle struct{}

func (idle) kind() StateKind { return StateIdle }

type drawing struct {
	points []annotation.Point
	color  color.RGBA
	width  float64
	eraser bool
}

func (*drawing) kind() StateKind { return StateDrawing }

type circlePending struct {
	start  annotation.Point
	radius float64
	color  color.RGBA
	width  float64
}

func (*circlePending) kind() StateKind { return StateCirclePending }

type panning struct {
	origin viewport.Point // pointer minus pan at gesture start
}

func (*panning) kind() StateKind { return StatePanning }

type pinching struct {
	baseDist   float64
	baseCenter viewport.Point
	baseZoom   float64
	basePan    viewport.Point
}

func (*pinching) kind() StateKind { return StatePinching }
