// Package app provides application state for the annotation session: the
// two panes, the active tool, the split slider, and the event bus that
// propagates dirty signals to the renderer.
package app

import (
	"image/color"
	"sync"

	"github.com/MicroSwitchers/sfh/internal/image"
	"github.com/MicroSwitchers/sfh/internal/view"
	"github.com/MicroSwitchers/sfh/pkg/colorutil"
	"github.com/MicroSwitchers/sfh/pkg/geometry"
)

// Tool represents the current interaction tool.
type Tool int

const (
	ToolPen Tool = iota
	ToolEraser
	ToolMagnet
	ToolHand
)

func (t Tool) String() string {
	switch t {
	case ToolEraser:
		return "Eraser"
	case ToolMagnet:
		return "Magnet"
	case ToolHand:
		return "Hand"
	default:
		return "Pen"
	}
}

// EventType identifies application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventInkChanged
	EventViewChanged
	EventSliderChanged
	EventToolChanged
	EventCompareChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the session state. Pane contents are mutated only from the
// event-handling thread; the mutex guards the listener registry and the
// scalar settings that the render path reads.
type State struct {
	mu sync.RWMutex

	Left  *Pane
	Right *Pane

	Tool     Tool
	PenColor color.RGBA
	PenWidth float64

	// Slider is the fractional split position in [0,1]; it only matters
	// while Compare is on.
	Slider  float64
	Compare bool

	viewW float64
	viewH float64

	listeners map[EventType][]EventListener
}

// NewState creates a session with two empty panes.
func NewState() *State {
	return &State{
		Left:      NewPane(PaneLeft),
		Right:     NewPane(PaneRight),
		Tool:      ToolPen,
		PenColor:  colorutil.Red,
		PenWidth:  4.0,
		Slider:    0.5,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Pane returns the pane with the given identity.
func (s *State) Pane(id PaneID) *Pane {
	if id == PaneRight {
		return s.Right
	}
	return s.Left
}

// SetViewSize records the size of the drawing surface in screen units.
func (s *State) SetViewSize(w, h float64) {
	s.mu.Lock()
	s.viewW, s.viewH = w, h
	s.mu.Unlock()
}

// ViewSize returns the size of the drawing surface.
func (s *State) ViewSize() geometry.Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return geometry.NewSize(s.viewW, s.viewH)
}

// SplitState returns the slider fraction and compare flag together,
// read under the lock. The render path runs off the event-handling
// thread and must take its scalars through here.
func (s *State) SplitState() (slider float64, compare bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Slider, s.Compare
}

// PaneRect returns the pane's current on-screen rectangle, which depends
// on the comparison split while comparison mode is active.
func (s *State) PaneRect(id PaneID) geometry.Rect {
	size := s.ViewSize()
	slider, compare := s.SplitState()
	left, right := view.SplitRects(size.Width, size.Height, slider, compare)
	if id == PaneRight {
		return right
	}
	return left
}

// PaneAt routes a screen point to the pane whose rectangle contains it.
// Outside comparison mode everything belongs to the left pane, as does
// any point off both rectangles.
func (s *State) PaneAt(p geometry.Point2D) *Pane {
	if _, compare := s.SplitState(); !compare {
		return s.Left
	}
	if s.PaneRect(PaneRight).Contains(p) {
		return s.Right
	}
	return s.Left
}

// DividerX returns the divider's screen x position.
func (s *State) DividerX() float64 {
	slider, _ := s.SplitState()
	return s.ViewSize().Width * geometry.Clamp(slider, 0, 1)
}

// SetSlider updates the split fraction, clamped to [0,1].
func (s *State) SetSlider(v float64) {
	s.mu.Lock()
	s.Slider = geometry.Clamp(v, 0, 1)
	s.mu.Unlock()
	s.Emit(EventSliderChanged, s.Slider)
}

// SetCompare toggles comparison mode.
func (s *State) SetCompare(on bool) {
	s.mu.Lock()
	s.Compare = on
	s.mu.Unlock()
	s.Emit(EventCompareChanged, on)
	s.Emit(EventViewChanged, nil)
}

// SetTool selects the active tool.
func (s *State) SetTool(t Tool) {
	s.mu.Lock()
	s.Tool = t
	s.mu.Unlock()
	s.Emit(EventToolChanged, t)
}

// SetPen updates the pen color and width.
func (s *State) SetPen(col color.RGBA, width float64) {
	s.mu.Lock()
	s.PenColor = col
	s.PenWidth = width
	s.mu.Unlock()
	s.Emit(EventToolChanged, s.Tool)
}

// LoadImage decodes an image file into the given pane, discarding the
// pane's strokes and history and refitting its transform.
func (s *State) LoadImage(id PaneID, path string) error {
	layer, err := image.Load(path)
	if err != nil {
		return err
	}
	s.SetImageLayer(id, layer)
	return nil
}

// SetImageLayer installs an already-decoded layer into the given pane.
func (s *State) SetImageLayer(id PaneID, layer *image.Layer) {
	pane := s.Pane(id)
	rect := s.PaneRect(id)
	pane.SetImage(layer, geometry.NewSize(rect.Width, rect.Height))
	s.Emit(EventImageLoaded, pane)
	s.Emit(EventViewChanged, nil)
}

// Undo reverses the most recent committed stroke change on a pane.
func (s *State) Undo(id PaneID) {
	s.Pane(id).Ink.Undo()
	s.Emit(EventInkChanged, id)
}

// Redo reapplies the most recently undone change on a pane.
func (s *State) Redo(id PaneID) {
	s.Pane(id).Ink.Redo()
	s.Emit(EventInkChanged, id)
}

// ClearPane removes all strokes from a pane as an undoable action.
func (s *State) ClearPane(id PaneID) {
	s.Pane(id).Ink.Clear()
	s.Emit(EventInkChanged, id)
}

// Recenter refits a pane's transform to its current on-screen area.
func (s *State) Recenter(id PaneID) {
	rect := s.PaneRect(id)
	s.Pane(id).Recenter(geometry.NewSize(rect.Width, rect.Height))
	s.Emit(EventViewChanged, nil)
}
