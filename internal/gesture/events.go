package gesture

import (
	"github.com/MicroSwitchers/sfh/pkg/geometry"
)

// PointerSource distinguishes finger and mouse input.
type PointerSource int

const (
	SourceMouse PointerSource = iota
	SourceTouch
)

// Button is the button code carried by pointer down/up events.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// PointerEvent is one raw pointer event in surface coordinates. The ID is
// stable for the lifetime of a pointer contact; mouse input always uses
// the same ID.
type PointerEvent struct {
	ID     int
	Source PointerSource
	Pos    geometry.Point2D
	Button Button
}

// WheelEvent carries a scroll delta and the cursor position. Only the
// sign of DeltaY is meaningful: negative zooms in, positive zooms out.
type WheelEvent struct {
	Pos    geometry.Point2D
	DeltaY float64
}
