// Package gesture consumes raw pointer and wheel events and routes them
// to pan, zoom, draw, or slider-drag behavior on the session state.
package gesture

import (
	"github.com/MicroSwitchers/sfh/internal/app"
	"github.com/MicroSwitchers/sfh/internal/ink"
	"github.com/MicroSwitchers/sfh/internal/magnet"
	"github.com/MicroSwitchers/sfh/pkg/geometry"
)

type phase int

const (
	phaseIdle phase = iota
	phaseDrawing
	phasePanning
	phasePinch
	phaseSlider
)

const (
	// Minimum world-unit spacing between appended stroke points. The
	// magnet uses a wider spacing to keep point density bounded and the
	// curve fitting stable.
	penSpacing    = 1.0
	magnetSpacing = 3.0

	// Magnet blending stages. The order and constants are tuned as a
	// set; reordering them changes the assist's felt behavior.
	seedSnapShare   = 0.7 // first point: 30% raw / 70% snapped
	moveSnapShare   = 0.8 // subsequent points: 20% raw / 80% snapped
	smoothPrevShare = 0.3 // then 70% snapped / 30% previous point
	driftClamp      = 4.0 // world units from the raw point

	// dividerBand is the half-width in screen units of the grab zone
	// around the divider; pointers starting inside it never draw.
	dividerBand = 10.0

	wheelZoomStep = 1.1

	// minPinchDist guards the zoom ratio against a zero inter-pointer
	// distance.
	minPinchDist = 1e-3
)

type pointerInfo struct {
	pos    geometry.Point2D
	source PointerSource
}

// Dispatcher is the gesture state machine. One instance is shared across
// both panes; each gesture is routed to whichever pane it started on.
// All methods must be called from the event-handling thread.
type Dispatcher struct {
	state    *app.State
	analyzer *magnet.Analyzer

	phase    phase
	pointers map[int]pointerInfo
	active   *app.Pane

	// Pinch and pan tracking, reset whenever the pointer count changes.
	lastPos  geometry.Point2D
	lastDist float64
	lastMid  geometry.Point2D
}

// NewDispatcher creates a dispatcher bound to the session state.
func NewDispatcher(state *app.State) *Dispatcher {
	return &Dispatcher{
		state:    state,
		analyzer: magnet.New(),
		pointers: make(map[int]pointerInfo),
	}
}

// PointerDown starts or escalates a gesture.
func (d *Dispatcher) PointerDown(ev PointerEvent) {
	d.pointers[ev.ID] = pointerInfo{pos: ev.Pos, source: ev.Source}

	if len(d.pointers) == 2 {
		d.enterPinch()
		return
	}
	if len(d.pointers) > 2 {
		// Extra pointers join an ongoing pinch without resetting it.
		return
	}

	if d.state.Compare && d.nearDivider(ev.Pos.X) {
		d.phase = phaseSlider
		return
	}

	d.active = d.state.PaneAt(ev.Pos)

	if d.state.Tool == app.ToolHand || ev.Button == ButtonMiddle {
		d.phase = phasePanning
		d.lastPos = ev.Pos
		return
	}

	d.phase = phaseDrawing
	rect := d.state.PaneRect(d.active.ID)
	world := d.active.Transform.ToWorld(ev.Pos, rect)
	if d.state.Tool == app.ToolMagnet {
		snapped := d.analyzer.Snap(world, d.active.Layer, nil)
		world = world.Lerp(snapped, seedSnapShare)
	}
	d.active.Current = ink.NewStroke(world, d.state.PenColor, d.state.PenWidth,
		d.state.Tool == app.ToolEraser)
	d.state.Emit(app.EventInkChanged, d.active.ID)
}

// PointerMove advances the current gesture.
func (d *Dispatcher) PointerMove(ev PointerEvent) {
	if _, ok := d.pointers[ev.ID]; !ok {
		return
	}
	d.pointers[ev.ID] = pointerInfo{pos: ev.Pos, source: ev.Source}

	switch d.phase {
	case phaseDrawing:
		d.moveDraw(ev)
	case phasePanning:
		delta := ev.Pos.Sub(d.lastPos)
		d.lastPos = ev.Pos
		d.active.Transform.PanBy(delta.X, delta.Y)
		d.state.Emit(app.EventViewChanged, nil)
	case phasePinch:
		d.movePinch()
	case phaseSlider:
		width := d.state.ViewSize().Width
		if width > 0 {
			d.state.SetSlider(ev.Pos.X / width)
		}
	}
}

// PointerUp finishes the gesture owned by the released pointer.
func (d *Dispatcher) PointerUp(ev PointerEvent) {
	delete(d.pointers, ev.ID)

	switch d.phase {
	case phaseDrawing:
		if d.active != nil && d.active.Current != nil {
			d.active.Ink.Commit(d.active.Current)
			d.active.Current = nil
			d.state.Emit(app.EventInkChanged, d.active.ID)
		}
		d.phase = phaseIdle
	case phasePinch:
		if len(d.pointers) < 2 {
			// The remaining pointer does not resume drawing or panning.
			d.phase = phaseIdle
		}
	default:
		if len(d.pointers) == 0 {
			d.phase = phaseIdle
		}
	}
}

// PointerCancel cleans up exactly like PointerUp; leave events must be
// funneled here as well.
func (d *Dispatcher) PointerCancel(ev PointerEvent) {
	d.PointerUp(ev)
}

// Wheel zooms the pane under the cursor, anchored at the cursor.
func (d *Dispatcher) Wheel(ev WheelEvent) {
	factor := wheelZoomStep
	if ev.DeltaY > 0 {
		factor = 1 / wheelZoomStep
	}
	pane := d.state.PaneAt(ev.Pos)
	rect := d.state.PaneRect(pane.ID)
	pane.Transform.ZoomAt(factor, ev.Pos, rect)
	d.state.Emit(app.EventViewChanged, nil)
}

func (d *Dispatcher) moveDraw(ev PointerEvent) {
	if d.active == nil || d.active.Current == nil {
		return
	}
	rect := d.state.PaneRect(d.active.ID)
	raw := d.active.Transform.ToWorld(ev.Pos, rect)

	p := raw
	spacing := penSpacing
	if d.state.Tool == app.ToolMagnet {
		spacing = magnetSpacing
		snapped := d.analyzer.Snap(raw, d.active.Layer, d.active.Current.Points)
		p = raw.Lerp(snapped, moveSnapShare)
		p = p.Lerp(d.active.Current.Last(), smoothPrevShare)
		if drift := p.Sub(raw); drift.Length() > driftClamp {
			p = raw.Add(drift.Scale(driftClamp / drift.Length()))
		}
	}

	if d.active.Current.Append(p, spacing) {
		d.state.Emit(app.EventInkChanged, d.active.ID)
	}
}

// enterPinch preempts any drawing or panning: two-finger input is
// reserved for transform gestures, so in-progress strokes are discarded
// without being committed.
func (d *Dispatcher) enterPinch() {
	discarded := false
	for _, pane := range []*app.Pane{d.state.Left, d.state.Right} {
		if pane.Current != nil {
			pane.Current = nil
			discarded = true
		}
	}
	if discarded {
		d.state.Emit(app.EventInkChanged, nil)
	}

	d.phase = phasePinch
	d.lastDist, d.lastMid = d.pinchSpan()
	d.active = d.state.PaneAt(d.lastMid)
}

func (d *Dispatcher) movePinch() {
	dist, mid := d.pinchSpan()
	if d.active == nil {
		return
	}
	rect := d.state.PaneRect(d.active.ID)
	if dist > minPinchDist && d.lastDist > minPinchDist {
		d.active.Transform.ZoomAt(dist/d.lastDist, mid, rect)
	}
	delta := mid.Sub(d.lastMid)
	d.active.Transform.PanBy(delta.X, delta.Y)
	d.lastDist, d.lastMid = dist, mid
	d.state.Emit(app.EventViewChanged, nil)
}

// pinchSpan returns the distance between and the midpoint of the first
// two registered pointers.
func (d *Dispatcher) pinchSpan() (float64, geometry.Point2D) {
	pts := make([]geometry.Point2D, 0, 2)
	for _, info := range d.pointers {
		pts = append(pts, info.pos)
		if len(pts) == 2 {
			break
		}
	}
	if len(pts) < 2 {
		return 0, geometry.Point2D{}
	}
	return pts[0].Distance(pts[1]), pts[0].Mid(pts[1])
}

func (d *Dispatcher) nearDivider(x float64) bool {
	dx := x - d.state.DividerX()
	if dx < 0 {
		dx = -dx
	}
	return dx <= dividerBand
}
