package app

import (
	"github.com/MicroSwitchers/sfh/internal/image"
	"github.com/MicroSwitchers/sfh/internal/ink"
	"github.com/MicroSwitchers/sfh/internal/view"
	"github.com/MicroSwitchers/sfh/pkg/geometry"
)

// PaneID identifies one of the two panes.
type PaneID int

const (
	PaneLeft PaneID = iota
	PaneRight
)

func (id PaneID) String() string {
	if id == PaneRight {
		return "right"
	}
	return "left"
}

// Pane is one independent annotation context: an optional source image,
// a viewport transform, the committed strokes with their history, and a
// nullable in-progress stroke. Both panes share this type; only their
// identity differs.
type Pane struct {
	ID        PaneID
	Layer     *image.Layer
	Transform view.Transform
	Ink       *ink.Model

	// Current is the stroke being drawn, nil outside an active draw
	// gesture. It is rendered but not part of the committed list.
	Current *ink.Stroke
}

// NewPane creates an empty pane.
func NewPane(id PaneID) *Pane {
	return &Pane{
		ID:        id,
		Transform: view.NewTransform(),
		Ink:       ink.NewModel(),
	}
}

// SetImage replaces the pane's image wholesale: strokes and history are
// discarded and the transform is refit to the available area.
func (p *Pane) SetImage(layer *image.Layer, avail geometry.Size) {
	p.Layer = layer
	p.Current = nil
	p.Ink.Reset()
	p.Transform.FitToContent(p.ImageSize(), avail)
}

// ImageSize returns the image dimensions in pixels, or zero if no image
// is loaded.
func (p *Pane) ImageSize() geometry.Size {
	return geometry.NewSize(float64(p.Layer.Width()), float64(p.Layer.Height()))
}

// Recenter refits the transform to the available area.
func (p *Pane) Recenter(avail geometry.Size) {
	p.Transform.FitToContent(p.ImageSize(), avail)
}
