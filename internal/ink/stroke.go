// Package ink provides the freehand stroke model and its linear undo/redo
// history.
package ink

import (
	"image/color"

	"github.com/google/uuid"

	"github.com/MicroSwitchers/sfh/pkg/geometry"
)

// Stroke is one continuous freehand ink path in world coordinates.
// A stroke always has at least one point once created and is immutable
// after it has been committed to a pane.
type Stroke struct {
	ID     uuid.UUID          `json:"id"`
	Points []geometry.Point2D `json:"points"`
	Color  color.RGBA         `json:"color"`
	Width  float64            `json:"width"`
	Eraser bool               `json:"eraser,omitempty"`
}

// NewStroke creates a stroke seeded with a single point.
func NewStroke(seed geometry.Point2D, col color.RGBA, width float64, eraser bool) *Stroke {
	return &Stroke{
		ID:     uuid.New(),
		Points: []geometry.Point2D{seed},
		Color:  col,
		Width:  width,
		Eraser: eraser,
	}
}

// Append adds a point if it is at least minSpacing world units away from
// the stroke's last point. Reports whether the point was added.
func (s *Stroke) Append(p geometry.Point2D, minSpacing float64) bool {
	last := s.Points[len(s.Points)-1]
	if last.Distance(p) < minSpacing {
		return false
	}
	s.Points = append(s.Points, p)
	return true
}

// Last returns the stroke's most recent point.
func (s *Stroke) Last() geometry.Point2D {
	return s.Points[len(s.Points)-1]
}

// Bounds returns the bounding rectangle of the stroke expanded by half
// its width.
func (s *Stroke) Bounds() geometry.Rect {
	box := geometry.BoundingBox(s.Points)
	hw := s.Width / 2
	return geometry.Rect{
		X:      box.X - hw,
		Y:      box.Y - hw,
		Width:  box.Width + s.Width,
		Height: box.Height + s.Width,
	}
}
