package magnet

import (
	stdimage "image"
	"image/color"
	"testing"

	"github.com/MicroSwitchers/sfh/internal/image"
	"github.com/MicroSwitchers/sfh/pkg/geometry"
)

// edgeLayer builds a 64x64 opaque image that is black left of column 32
// and white from column 32 on, giving a single strong vertical edge.
func edgeLayer() *image.Layer {
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			c := color.RGBA{A: 255}
			if x >= 32 {
				c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return image.NewLayer(img)
}

func uniformLayer(c color.RGBA) *image.Layer {
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return image.NewLayer(img)
}

func TestSnapNoImage(t *testing.T) {
	a := New()
	p := geometry.NewPoint2D(3, 4)
	if got := a.Snap(p, nil, nil); got != p {
		t.Errorf("Snap without layer = %v, want input unchanged", got)
	}
}

func TestSnapUniformImage(t *testing.T) {
	a := New()
	layer := uniformLayer(color.RGBA{R: 128, G: 128, B: 128, A: 255})
	p := geometry.NewPoint2D(0, 0)
	if got := a.Snap(p, layer, nil); got != p {
		t.Errorf("Snap on uniform image = %v, want input unchanged", got)
	}
}

func TestSnapPullsToEdge(t *testing.T) {
	a := New()
	layer := edgeLayer()

	// World origin is the image center, so the white boundary column 32
	// sits at world x = 0 and the strongest gradient column 31 at x = -1.
	p := geometry.NewPoint2D(-2, 0)
	got := a.Snap(p, layer, nil)
	if got.X != -1 || got.Y != 0 {
		t.Errorf("Snap near edge = %v, want (-1, 0)", got)
	}
}

func TestSnapOffsetClamped(t *testing.T) {
	a := New()
	layer := edgeLayer()

	// The edge is 8 world units away, inside the search window but past
	// the maximum snap offset, so the pull is truncated to 6 units.
	p := geometry.NewPoint2D(-9, 0)
	got := a.Snap(p, layer, nil)
	if got.X != -3 || got.Y != 0 {
		t.Errorf("Snap far from edge = %v, want (-3, 0)", got)
	}
}

func TestSnapOutOfRange(t *testing.T) {
	a := New()
	layer := edgeLayer()

	// The edge lies entirely outside the search window.
	p := geometry.NewPoint2D(-20, 0)
	if got := a.Snap(p, layer, nil); got != p {
		t.Errorf("Snap with no edge in window = %v, want input unchanged", got)
	}
}

func TestSnapFollowsStrokeDirection(t *testing.T) {
	a := New()
	layer := edgeLayer()

	// A stroke running down the edge establishes a vertical direction;
	// the snap should stay on the gradient column at the stroke's level
	// rather than running ahead along it.
	stroke := []geometry.Point2D{
		{X: -1, Y: -8}, {X: -1, Y: -6}, {X: -1, Y: -4}, {X: -1, Y: -2},
	}
	got := a.Snap(geometry.NewPoint2D(-2, 0), layer, stroke)
	if got.X != -1 || got.Y != 0 {
		t.Errorf("Snap with direction = %v, want (-1, 0)", got)
	}
}

func TestSnapAlphaEdge(t *testing.T) {
	a := New()

	// Fully transparent left half, opaque right half, constant color.
	// Luminance barely changes but the alpha edge must still attract.
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			c := color.RGBA{}
			if x >= 32 {
				c = color.RGBA{R: 60, G: 60, B: 60, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	layer := image.NewLayer(img)

	got := a.Snap(geometry.NewPoint2D(-2, 0), layer, nil)
	if got.X != -1 || got.Y != 0 {
		t.Errorf("Snap on alpha edge = %v, want (-1, 0)", got)
	}
}

func TestPlaneCacheInvalidation(t *testing.T) {
	a := New()
	p := geometry.NewPoint2D(-2, 0)

	flat := uniformLayer(color.RGBA{R: 50, G: 50, B: 50, A: 255})
	if got := a.Snap(p, flat, nil); got != p {
		t.Fatalf("Snap on flat layer = %v, want input unchanged", got)
	}

	// Swapping the layer must rebuild the pixel planes; a stale cache
	// would still report no edges here.
	if got := a.Snap(p, edgeLayer(), nil); got.X != -1 || got.Y != 0 {
		t.Errorf("Snap after layer swap = %v, want (-1, 0)", got)
	}
}

func TestStrokeDirection(t *testing.T) {
	tests := []struct {
		name    string
		points  []geometry.Point2D
		wantDir geometry.Point2D
		wantOK  bool
	}{
		{
			name:   "too few points",
			points: []geometry.Point2D{{X: 0, Y: 0}},
			wantOK: false,
		},
		{
			name:    "straight right",
			points:  []geometry.Point2D{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 4, Y: 0}},
			wantDir: geometry.Point2D{X: 1, Y: 0},
			wantOK:  true,
		},
		{
			name:    "older segments outweigh the newest",
			points:  []geometry.Point2D{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 0}},
			wantDir: geometry.Point2D{X: 1, Y: 0},
			wantOK:  true,
		},
		{
			name:   "degenerate segments ignored",
			points: []geometry.Point2D{{X: 0, Y: 0}, {X: 0.1, Y: 0}, {X: 0.2, Y: 0}},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, ok := strokeDirection(tt.points)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && dir.Distance(tt.wantDir) > 1e-9 {
				t.Errorf("dir = %v, want %v", dir, tt.wantDir)
			}
		})
	}
}
