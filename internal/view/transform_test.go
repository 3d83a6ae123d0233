package view

import (
	"math"
	"testing"

	"github.com/MicroSwitchers/sfh/pkg/geometry"
)

func TestRoundTrip(t *testing.T) {
	pane := geometry.NewRect(0, 0, 800, 600)
	tr := Transform{X: 12.5, Y: -30, K: 2.5}

	pts := []geometry.Point2D{
		{X: 0, Y: 0},
		{X: 400, Y: 300},
		{X: 799, Y: 1},
		{X: 123.4, Y: 567.8},
	}
	for _, s := range pts {
		got := tr.ToScreen(tr.ToWorld(s, pane), pane)
		if math.Abs(got.X-s.X) > 1e-9 || math.Abs(got.Y-s.Y) > 1e-9 {
			t.Errorf("round trip of %v = %v", s, got)
		}
	}
}

func TestZoomAtPreservesAnchor(t *testing.T) {
	pane := geometry.NewRect(0, 0, 800, 600)
	tr := NewTransform()
	anchor := geometry.NewPoint2D(200, 150)

	before := tr.ToWorld(anchor, pane)
	tr.ZoomAt(1.5, anchor, pane)
	after := tr.ToWorld(anchor, pane)

	if before.Distance(after) > 1e-9 {
		t.Errorf("anchor world point moved from %v to %v", before, after)
	}
	if math.Abs(tr.K-1.5) > 1e-12 {
		t.Errorf("K = %v, want 1.5", tr.K)
	}
}

func TestZoomClamped(t *testing.T) {
	pane := geometry.NewRect(0, 0, 800, 600)
	anchor := pane.Center()

	tr := NewTransform()
	for i := 0; i < 100; i++ {
		tr.ZoomAt(1.1, anchor, pane)
	}
	if tr.K != MaxScale {
		t.Errorf("after repeated zoom in K = %v, want %v", tr.K, MaxScale)
	}

	tr = NewTransform()
	for i := 0; i < 100; i++ {
		tr.ZoomAt(1/1.1, anchor, pane)
	}
	if tr.K != MinScale {
		t.Errorf("after repeated zoom out K = %v, want %v", tr.K, MinScale)
	}
}

func TestPanBy(t *testing.T) {
	pane := geometry.NewRect(0, 0, 800, 600)
	tr := Transform{K: 2}

	world := tr.ToWorld(geometry.NewPoint2D(400, 300), pane)
	tr.PanBy(50, -20)

	// The world point that was under (400, 300) should now appear 50 px
	// right and 20 px up.
	s := tr.ToScreen(world, pane)
	if math.Abs(s.X-450) > 1e-9 || math.Abs(s.Y-280) > 1e-9 {
		t.Errorf("panned screen point = %v, want (450, 280)", s)
	}
}

func TestFitToContent(t *testing.T) {
	tests := []struct {
		name  string
		img   geometry.Size
		avail geometry.Size
		wantK float64
	}{
		{"wide image limited by width", geometry.NewSize(1000, 100), geometry.NewSize(500, 500), 0.5 * 0.9},
		{"tall image limited by height", geometry.NewSize(100, 1000), geometry.NewSize(500, 500), 0.5 * 0.9},
		{"tiny image clamped to max", geometry.NewSize(2, 2), geometry.NewSize(500, 500), MaxScale},
		{"huge image clamped to min", geometry.NewSize(1e6, 1e6), geometry.NewSize(500, 500), MinScale},
		{"zero image falls back to identity", geometry.Size{}, geometry.NewSize(500, 500), 1.0},
		{"zero viewport falls back to identity", geometry.NewSize(100, 100), geometry.Size{}, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Transform{X: 7, Y: 8, K: 3}
			tr.FitToContent(tt.img, tt.avail)
			if tr.X != 0 || tr.Y != 0 {
				t.Errorf("pan = (%v, %v), want reset to origin", tr.X, tr.Y)
			}
			if math.Abs(tr.K-tt.wantK) > 1e-12 {
				t.Errorf("K = %v, want %v", tr.K, tt.wantK)
			}
		})
	}
}

func TestSplitRects(t *testing.T) {
	t.Run("single pane outside compare", func(t *testing.T) {
		left, right := SplitRects(800, 600, 0.3, false)
		if left != geometry.NewRect(0, 0, 800, 600) {
			t.Errorf("left = %v, want full surface", left)
		}
		if right != (geometry.Rect{}) {
			t.Errorf("right = %v, want empty", right)
		}
	})

	t.Run("split at slider fraction", func(t *testing.T) {
		left, right := SplitRects(800, 600, 0.25, true)
		if left != geometry.NewRect(0, 0, 200, 600) {
			t.Errorf("left = %v", left)
		}
		if right != geometry.NewRect(200, 0, 600, 600) {
			t.Errorf("right = %v", right)
		}
	})

	t.Run("slider clamped to unit range", func(t *testing.T) {
		left, _ := SplitRects(800, 600, 1.7, true)
		if left.Width != 800 {
			t.Errorf("left width = %v, want 800", left.Width)
		}
		_, right := SplitRects(800, 600, -0.4, true)
		if right.X != 0 || right.Width != 800 {
			t.Errorf("right = %v, want full surface", right)
		}
	})
}
