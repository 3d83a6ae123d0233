// Package surface provides the Fyne widget hosting the annotation
// canvas: it feeds raw input to the gesture dispatcher and paints frames
// produced by the render compositor.
package surface

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/MicroSwitchers/sfh/internal/app"
	"github.com/MicroSwitchers/sfh/internal/gesture"
	"github.com/MicroSwitchers/sfh/internal/render"
	"github.com/MicroSwitchers/sfh/pkg/geometry"
)

// mousePointerID is the stable pointer identifier for mouse input.
const mousePointerID = 0

// Surface is the interactive drawing widget.
type Surface struct {
	widget.BaseWidget

	state      *app.State
	dispatcher *gesture.Dispatcher
	compositor *render.Compositor
	scheduler  *render.Scheduler
	raster     *fynecanvas.Raster

	mouseDown   bool
	mouseButton gesture.Button
}

var _ desktop.Mouseable = (*Surface)(nil)
var _ desktop.Hoverable = (*Surface)(nil)
var _ fyne.Scrollable = (*Surface)(nil)

// New creates the surface bound to the session state. Every state
// mutation marks the frame dirty; the scheduler coalesces those marks
// into at most one repaint per refresh interval.
func New(state *app.State) *Surface {
	s := &Surface{
		state:      state,
		dispatcher: gesture.NewDispatcher(state),
		compositor: render.NewCompositor(),
	}
	s.raster = fynecanvas.NewRaster(s.draw)
	s.raster.ScaleMode = fynecanvas.ImageScalePixels
	s.raster.SetMinSize(fyne.NewSize(400, 300))
	s.scheduler = render.NewScheduler(render.FrameInterval, s.raster.Refresh)

	invalidate := func(interface{}) { s.scheduler.Invalidate() }
	state.On(app.EventInkChanged, invalidate)
	state.On(app.EventViewChanged, invalidate)
	state.On(app.EventSliderChanged, invalidate)
	state.On(app.EventCompareChanged, invalidate)
	state.On(app.EventImageLoaded, invalidate)

	s.ExtendBaseWidget(s)
	return s
}

// Close cancels any pending repaint; called on window teardown.
func (s *Surface) Close() {
	s.scheduler.Stop()
}

// CreateRenderer implements fyne.Widget.
func (s *Surface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.raster)
}

// draw is the raster drawing function.
func (s *Surface) draw(w, h int) image.Image {
	s.state.SetViewSize(float64(w), float64(h))
	return s.compositor.Render(s.state, w, h)
}

// MouseDown implements desktop.Mouseable.
func (s *Surface) MouseDown(ev *desktop.MouseEvent) {
	s.mouseDown = true
	s.mouseButton = mapButton(ev.Button)
	s.dispatcher.PointerDown(s.pointerEvent(ev.Position))
}

// MouseUp implements desktop.Mouseable.
func (s *Surface) MouseUp(ev *desktop.MouseEvent) {
	if !s.mouseDown {
		return
	}
	s.mouseDown = false
	s.dispatcher.PointerUp(s.pointerEvent(ev.Position))
}

// MouseMoved implements desktop.Hoverable.
func (s *Surface) MouseMoved(ev *desktop.MouseEvent) {
	if !s.mouseDown {
		return
	}
	s.dispatcher.PointerMove(s.pointerEvent(ev.Position))
}

// MouseIn implements desktop.Hoverable.
func (s *Surface) MouseIn(_ *desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable. Leaving the widget mid-gesture
// is handled like a pointer-up.
func (s *Surface) MouseOut() {
	if !s.mouseDown {
		return
	}
	s.mouseDown = false
	s.dispatcher.PointerCancel(gesture.PointerEvent{
		ID:     mousePointerID,
		Source: gesture.SourceMouse,
		Button: s.mouseButton,
	})
}

// Scrolled implements fyne.Scrollable: the wheel zooms the pane under
// the cursor. Fyne reports scroll-up as positive DY; the dispatcher
// treats negative deltas as zoom-in.
func (s *Surface) Scrolled(ev *fyne.ScrollEvent) {
	s.dispatcher.Wheel(gesture.WheelEvent{
		Pos:    geometry.NewPoint2D(float64(ev.Position.X), float64(ev.Position.Y)),
		DeltaY: -float64(ev.Scrolled.DY),
	})
}

func (s *Surface) pointerEvent(pos fyne.Position) gesture.PointerEvent {
	return gesture.PointerEvent{
		ID:     mousePointerID,
		Source: gesture.SourceMouse,
		Pos:    geometry.NewPoint2D(float64(pos.X), float64(pos.Y)),
		Button: s.mouseButton,
	}
}

func mapButton(b desktop.MouseButton) gesture.Button {
	switch b {
	case desktop.MouseButtonTertiary:
		return gesture.ButtonMiddle
	case desktop.MouseButtonSecondary:
		return gesture.ButtonSecondary
	default:
		return gesture.ButtonPrimary
	}
}
