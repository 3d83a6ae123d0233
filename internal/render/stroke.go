package render

import (
	"image"
	"image/color"
	"math"

	"github.com/MicroSwitchers/sfh/internal/ink"
	"github.com/MicroSwitchers/sfh/pkg/geometry"
)

// smoothedPath converts a stroke's vertices into a flattened smoothed
// polyline. Two points yield a straight segment; with three or more,
// each vertex becomes the control point of a quadratic whose endpoint is
// the midpoint to the next vertex, giving a continuous curve without
// stored tangents.
func smoothedPath(pts []geometry.Point2D) []geometry.Point2D {
	if len(pts) <= 2 {
		return pts
	}

	out := make([]geometry.Point2D, 0, len(pts)*4)
	out = append(out, pts[0])
	cur := pts[0]
	for i := 1; i < len(pts)-1; i++ {
		ctrl := pts[i]
		end := ctrl.Mid(pts[i+1])
		out = appendQuad(out, cur, ctrl, end)
		cur = end
	}
	out = append(out, pts[len(pts)-1])
	return out
}

// appendQuad flattens one quadratic segment into line steps sized to the
// segment's length.
func appendQuad(out []geometry.Point2D, p0, ctrl, p1 geometry.Point2D) []geometry.Point2D {
	approx := p0.Distance(ctrl) + ctrl.Distance(p1)
	steps := int(approx / 2)
	if steps < 2 {
		steps = 2
	}
	if steps > 24 {
		steps = 24
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		a := p0.Lerp(ctrl, t)
		b := ctrl.Lerp(p1, t)
		out = append(out, a.Lerp(b, t))
	}
	return out
}

// DrawStroke rasterizes a stroke onto dst within clip. Points are mapped
// through toScreen and the stroke width is scaled by widthScale, so the
// same routine serves on-screen rendering (pane transform, zoomed width)
// and export (identity mapping, native width).
//
// Eraser strokes clear pixels instead of painting them, which subtracts
// previously drawn coverage when dst is a transparent ink overlay.
func DrawStroke(dst *image.RGBA, clip image.Rectangle, s *ink.Stroke,
	toScreen func(geometry.Point2D) geometry.Point2D, widthScale float64) {

	mapped := make([]geometry.Point2D, len(s.Points))
	for i, p := range s.Points {
		mapped[i] = toScreen(p)
	}
	path := smoothedPath(mapped)

	radius := s.Width * widthScale / 2
	if radius < 0.75 {
		radius = 0.75
	}

	if len(path) == 1 {
		stampDisc(dst, clip, path[0], radius, s.Color, s.Eraser)
		return
	}
	for i := 1; i < len(path); i++ {
		drawSegment(dst, clip, path[i-1], path[i], radius, s.Color, s.Eraser)
	}
}

// drawSegment stamps discs along a line segment at sub-pixel steps.
func drawSegment(dst *image.RGBA, clip image.Rectangle, a, b geometry.Point2D,
	radius float64, col color.RGBA, eraser bool) {

	length := a.Distance(b)
	steps := int(length) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		stampDisc(dst, clip, a.Lerp(b, t), radius, col, eraser)
	}
}

func stampDisc(dst *image.RGBA, clip image.Rectangle, c geometry.Point2D,
	radius float64, col color.RGBA, eraser bool) {

	r2 := radius * radius
	minX := int(math.Floor(c.X - radius))
	maxX := int(math.Ceil(c.X + radius))
	minY := int(math.Floor(c.Y - radius))
	maxY := int(math.Ceil(c.Y + radius))

	for y := minY; y <= maxY; y++ {
		if y < clip.Min.Y || y >= clip.Max.Y {
			continue
		}
		for x := minX; x <= maxX; x++ {
			if x < clip.Min.X || x >= clip.Max.X {
				continue
			}
			dx := float64(x) + 0.5 - c.X
			dy := float64(y) + 0.5 - c.Y
			if dx*dx+dy*dy > r2 {
				continue
			}
			if eraser {
				dst.SetRGBA(x, y, color.RGBA{})
			} else {
				dst.SetRGBA(x, y, col)
			}
		}
	}
}
