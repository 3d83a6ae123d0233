// Package view provides the per-pane viewport transform and the split-view
// pane geometry used to map between screen and world coordinates.
package view

import (
	"github.com/MicroSwitchers/sfh/pkg/geometry"
)

const (
	// MinScale and MaxScale bound the zoom factor.
	MinScale = 0.1
	MaxScale = 10.0

	// fitMargin leaves a small border around a fitted image.
	fitMargin = 0.9
)

// Transform holds a pane's pan offset (world units) and uniform scale.
// World space is the image's own pixel grid with the origin at the image
// center; a world point w maps to screen at center + (w + pan) * K, where
// center is the visual midpoint of the pane's on-screen rectangle.
type Transform struct {
	X float64
	Y float64
	K float64
}

// NewTransform returns an identity transform.
func NewTransform() Transform {
	return Transform{K: 1.0}
}

// ToWorld converts a screen-space point to world space for the given
// on-screen pane rectangle.
func (t Transform) ToWorld(s geometry.Point2D, pane geometry.Rect) geometry.Point2D {
	c := pane.Center()
	return geometry.Point2D{
		X: (s.X-c.X)/t.K - t.X,
		Y: (s.Y-c.Y)/t.K - t.Y,
	}
}

// ToScreen converts a world-space point to screen space for the given
// on-screen pane rectangle.
func (t Transform) ToScreen(w geometry.Point2D, pane geometry.Rect) geometry.Point2D {
	c := pane.Center()
	return geometry.Point2D{
		X: c.X + (w.X+t.X)*t.K,
		Y: c.Y + (w.Y+t.Y)*t.K,
	}
}

// ZoomAt multiplies the scale by factor, clamped to [MinScale, MaxScale],
// and adjusts the pan so the anchor screen point maps to the same world
// point before and after.
func (t *Transform) ZoomAt(factor float64, anchor geometry.Point2D, pane geometry.Rect) {
	w := t.ToWorld(anchor, pane)
	t.K = geometry.Clamp(t.K*factor, MinScale, MaxScale)
	c := pane.Center()
	t.X = (anchor.X-c.X)/t.K - w.X
	t.Y = (anchor.Y-c.Y)/t.K - w.Y
}

// PanBy shifts the view by a screen-space delta.
func (t *Transform) PanBy(dxScreen, dyScreen float64) {
	t.X += dxScreen / t.K
	t.Y += dyScreen / t.K
}

// FitToContent resets the pan and picks a scale so the image fills the
// available area with a small margin. Used on image load and on recenter.
func (t *Transform) FitToContent(img, avail geometry.Size) {
	t.X = 0
	t.Y = 0
	if img.Width <= 0 || img.Height <= 0 || avail.Width <= 0 || avail.Height <= 0 {
		t.K = 1.0
		return
	}
	k := avail.Width / img.Width
	if ky := avail.Height / img.Height; ky < k {
		k = ky
	}
	t.K = geometry.Clamp(k*fitMargin, MinScale, MaxScale)
}

// SplitRects returns the on-screen rectangles of the two panes.
// Outside comparison mode the left pane covers the whole surface and the
// right rectangle is empty. In comparison mode the surface is divided at
// the slider fraction and each pane is centered within its own region.
func SplitRects(width, height, slider float64, compare bool) (left, right geometry.Rect) {
	if !compare {
		return geometry.NewRect(0, 0, width, height), geometry.Rect{}
	}
	split := geometry.Clamp(slider, 0, 1) * width
	left = geometry.NewRect(0, 0, split, height)
	right = geometry.NewRect(split, 0, width-split, height)
	return left, right
}
