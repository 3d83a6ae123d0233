package render

import (
	stdimage "image"
	"image/color"
	"testing"

	"github.com/MicroSwitchers/sfh/internal/app"
	"github.com/MicroSwitchers/sfh/internal/image"
	"github.com/MicroSwitchers/sfh/internal/ink"
	"github.com/MicroSwitchers/sfh/pkg/geometry"
)

var (
	inkRed = color.RGBA{R: 220, G: 50, B: 47, A: 255}
	white  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func dot(x, y float64, col color.RGBA, eraser bool) *ink.Stroke {
	return ink.NewStroke(geometry.NewPoint2D(x, y), col, 4, eraser)
}

func whiteLayer(w, h int) *image.Layer {
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, white)
		}
	}
	return image.NewLayer(img)
}

func TestRenderBackground(t *testing.T) {
	s := app.NewState()
	c := NewCompositor()

	frame := c.Render(s, 100, 80)
	if got := frame.Bounds(); got != stdimage.Rect(0, 0, 100, 80) {
		t.Fatalf("bounds = %v", got)
	}
	for _, p := range []stdimage.Point{{X: 0, Y: 0}, {X: 50, Y: 40}, {X: 99, Y: 79}} {
		if got := frame.RGBAAt(p.X, p.Y); got != c.Background {
			t.Errorf("pixel %v = %v, want background", p, got)
		}
	}
}

func TestRenderStroke(t *testing.T) {
	s := app.NewState()
	c := NewCompositor()

	// World origin maps to the frame center (50, 40) at identity scale.
	s.Left.Ink.Commit(dot(0, 0, inkRed, false))
	frame := c.Render(s, 100, 80)

	if got := frame.RGBAAt(50, 40); got != inkRed {
		t.Errorf("center pixel = %v, want ink", got)
	}
	if got := frame.RGBAAt(10, 10); got != c.Background {
		t.Errorf("far pixel = %v, want background", got)
	}
}

func TestRenderCurrentStroke(t *testing.T) {
	s := app.NewState()
	c := NewCompositor()

	s.Left.Current = dot(0, 0, inkRed, false)
	frame := c.Render(s, 100, 80)
	if got := frame.RGBAAt(50, 40); got != inkRed {
		t.Errorf("in-progress stroke not rendered, pixel = %v", got)
	}
}

func TestEraserSubtractsInk(t *testing.T) {
	s := app.NewState()
	c := NewCompositor()

	s.Left.Ink.Commit(dot(0, 0, inkRed, false))
	s.Left.Ink.Commit(dot(0, 0, color.RGBA{}, true))
	frame := c.Render(s, 100, 80)

	if got := frame.RGBAAt(50, 40); got != c.Background {
		t.Errorf("erased pixel = %v, want background restored", got)
	}
}

func TestEraserLeavesImageIntact(t *testing.T) {
	s := app.NewState()
	c := NewCompositor()

	s.Left.Layer = whiteLayer(20, 20)
	s.Left.Ink.Commit(dot(0, 0, inkRed, false))
	s.Left.Ink.Commit(dot(0, 0, color.RGBA{}, true))
	frame := c.Render(s, 100, 80)

	if got := frame.RGBAAt(50, 40); got != white {
		t.Errorf("pixel = %v, want underlying image showing through", got)
	}
}

func TestBlitImageBounds(t *testing.T) {
	s := app.NewState()
	c := NewCompositor()
	s.Left.Layer = whiteLayer(4, 4)

	frame := c.Render(s, 100, 80)
	// The 4x4 image spans world [-2, 2), screen [48, 52).
	if got := frame.RGBAAt(50, 40); got != white {
		t.Errorf("inside image = %v, want white", got)
	}
	if got := frame.RGBAAt(40, 40); got != c.Background {
		t.Errorf("outside image = %v, want background", got)
	}
}

func TestCompareDividerAndClip(t *testing.T) {
	s := app.NewState()
	s.SetViewSize(100, 80)
	s.Compare = true
	c := NewCompositor()

	// The right pane's region is [50, 100); a stroke whose screen
	// position falls left of the divider must be clipped away.
	// Right pane center is (75, 40), so world (-30, 0) is screen (45, 40).
	s.Right.Ink.Commit(dot(-30, 0, inkRed, false))
	frame := c.Render(s, 100, 80)

	if got := frame.RGBAAt(45, 40); got != c.Background {
		t.Errorf("clipped stroke leaked into left pane: %v", got)
	}

	// Divider columns at the split.
	if got := frame.RGBAAt(49, 10); got != c.Divider {
		t.Errorf("divider pixel = %v, want divider color", got)
	}
	if got := frame.RGBAAt(52, 10); got != c.Background {
		t.Errorf("pixel past divider = %v, want background", got)
	}
}

// Render runs on the scheduler's timer goroutine while the event thread
// adjusts the split; the scalar reads must go through the state lock.
func TestRenderConcurrentWithSplitChanges(t *testing.T) {
	s := app.NewState()
	s.SetViewSize(100, 80)
	c := NewCompositor()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			s.SetSlider(float64(i%10) / 10)
			s.SetCompare(i%2 == 0)
		}
	}()

	for i := 0; i < 50; i++ {
		if frame := c.Render(s, 100, 80); frame == nil {
			t.Fatal("nil frame")
		}
	}
	<-done
}

func TestSmoothedPathEndpoints(t *testing.T) {
	pts := []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 10}}
	path := smoothedPath(pts)

	if len(path) < len(pts) {
		t.Fatalf("smoothed path shorter than input: %d", len(path))
	}
	if path[0] != pts[0] {
		t.Errorf("first point = %v, want %v", path[0], pts[0])
	}
	if path[len(path)-1] != pts[len(pts)-1] {
		t.Errorf("last point = %v, want %v", path[len(path)-1], pts[len(pts)-1])
	}
}

func TestSmoothedPathShortStrokes(t *testing.T) {
	one := []geometry.Point2D{{X: 1, Y: 1}}
	if got := smoothedPath(one); len(got) != 1 {
		t.Errorf("single point smoothed to %d points", len(got))
	}
	two := []geometry.Point2D{{X: 0, Y: 0}, {X: 5, Y: 5}}
	if got := smoothedPath(two); len(got) != 2 {
		t.Errorf("two points smoothed to %d points", len(got))
	}
}
