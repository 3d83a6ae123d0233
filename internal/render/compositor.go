// Package render produces composited raster frames from the session
// state and schedules repaints at most once per display refresh.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/MicroSwitchers/sfh/internal/app"
	"github.com/MicroSwitchers/sfh/internal/view"
	"github.com/MicroSwitchers/sfh/pkg/geometry"
)

// Compositor renders both panes into a single frame, clipping each to
// its split region in comparison mode.
type Compositor struct {
	Background color.RGBA
	Divider    color.RGBA
}

// NewCompositor returns a compositor with the default colors.
func NewCompositor() *Compositor {
	return &Compositor{
		Background: color.RGBA{40, 40, 40, 255},
		Divider:    color.RGBA{230, 230, 230, 255},
	}
}

// Render produces one frame of the given size. It may run off the
// event-handling thread: the split scalars are read under the state
// lock, and pane contents are only ever mutated on the event thread.
func (c *Compositor) Render(s *app.State, w, h int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), &image.Uniform{c.Background}, image.Point{}, draw.Src)
	if w <= 0 || h <= 0 {
		return out
	}

	slider, compare := s.SplitState()
	left, right := view.SplitRects(float64(w), float64(h), slider, compare)
	c.renderPane(out, s.Left, left)
	if compare {
		c.renderPane(out, s.Right, right)
		c.drawDivider(out, int(math.Round(left.X+left.Width)), h)
	}
	return out
}

// renderPane draws one pane's image, committed strokes, and in-progress
// stroke into its clipped screen region.
func (c *Compositor) renderPane(out *image.RGBA, pane *app.Pane, region geometry.Rect) {
	clip := image.Rect(
		int(math.Floor(region.X)), int(math.Floor(region.Y)),
		int(math.Ceil(region.X+region.Width)), int(math.Ceil(region.Y+region.Height)),
	).Intersect(out.Bounds())
	if clip.Empty() {
		return
	}

	t := pane.Transform
	if pane.Layer != nil && pane.Layer.Image != nil {
		c.blitImage(out, clip, pane, region)
	}

	strokes := pane.Ink.Strokes()
	if len(strokes) == 0 && pane.Current == nil {
		return
	}

	// Ink goes onto its own transparent overlay so eraser strokes
	// subtract previously drawn ink without touching the image layer;
	// normal compositing resumes when the overlay is merged down.
	overlay := image.NewRGBA(clip)
	toScreen := func(p geometry.Point2D) geometry.Point2D {
		return t.ToScreen(p, region)
	}
	for _, s := range strokes {
		DrawStroke(overlay, clip, s, toScreen, t.K)
	}
	if pane.Current != nil {
		DrawStroke(overlay, clip, pane.Current, toScreen, t.K)
	}
	draw.Draw(out, clip, overlay, clip.Min, draw.Over)
}

// blitImage samples the pane's image through the inverse viewport
// transform, leaving background outside the image bounds.
func (c *Compositor) blitImage(out *image.RGBA, clip image.Rectangle, pane *app.Pane, region geometry.Rect) {
	src := pane.Layer.Image
	imgW := pane.Layer.Width()
	imgH := pane.Layer.Height()
	t := pane.Transform

	halfW := float64(imgW) / 2
	halfH := float64(imgH) / 2
	bg := c.Background

	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			world := t.ToWorld(geometry.NewPoint2D(float64(x)+0.5, float64(y)+0.5), region)
			sx := int(math.Floor(world.X + halfW))
			sy := int(math.Floor(world.Y + halfH))
			if sx < 0 || sx >= imgW || sy < 0 || sy >= imgH {
				continue
			}

			px := src.RGBAAt(sx, sy)
			if px.A == 255 {
				out.SetRGBA(x, y, px)
				continue
			}
			// Source pixels are alpha-premultiplied; blend over the
			// background.
			inv := 1 - float64(px.A)/255
			out.SetRGBA(x, y, color.RGBA{
				R: uint8(float64(px.R) + float64(bg.R)*inv),
				G: uint8(float64(px.G) + float64(bg.G)*inv),
				B: uint8(float64(px.B) + float64(bg.B)*inv),
				A: 255,
			})
		}
	}
}

// drawDivider draws the vertical split line.
func (c *Compositor) drawDivider(out *image.RGBA, x, h int) {
	for t := -1; t <= 0; t++ {
		px := x + t
		if px < out.Bounds().Min.X || px >= out.Bounds().Max.X {
			continue
		}
		for y := 0; y < h; y++ {
			out.SetRGBA(px, y, c.Divider)
		}
	}
}
