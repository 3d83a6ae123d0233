// Package magnet provides the edge-snap analyzer: it biases a drawn point
// toward a nearby high-contrast image edge while tracking the stroke's
// drawing direction so the assist follows edges along the stroke instead
// of jumping across them.
package magnet

import (
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/MicroSwitchers/sfh/internal/image"
	"github.com/MicroSwitchers/sfh/pkg/colorutil"
	"github.com/MicroSwitchers/sfh/pkg/geometry"
)

const (
	// windowHalf is the half-width of the square pixel neighborhood
	// examined around the cursor.
	windowHalf = 8

	// trailingSegments caps how much of the in-progress stroke feeds the
	// direction estimate.
	trailingSegments = 25

	// ageWeightStep grows a segment's weight with its age, so the
	// estimate resists jitter from the newest, noisiest samples.
	ageWeightStep = 0.3

	// minSegmentLen rejects degenerate segments from the estimate.
	minSegmentLen = 0.5

	// alphaEdgeGain amplifies alpha-channel edges relative to luminance
	// edges when combining the two magnitudes.
	alphaEdgeGain = 80.0

	// strengthFloor rejects flat regions cheaply; it doubles as the
	// minimum winning score for a confident snap.
	strengthFloor = 5.0

	perpPenalty     = 8.0
	parallelPenalty = 1.5
	distancePenalty = 5.0
	orientationGain = 10.0

	// maxSnapOffset bounds the snap so it cannot jump to an unrelated
	// edge far from the raw point.
	maxSnapOffset = 6.0
)

// Analyzer scores edge candidates around a cursor position. It is a pure
// scoring function apart from its per-image pixel planes, which are
// rebuilt only when the target image identity changes.
type Analyzer struct {
	cacheID uuid.UUID
	lum     *mat.Dense
	alpha   *mat.Dense
}

// New creates an Analyzer with an empty pixel cache.
func New() *Analyzer {
	return &Analyzer{}
}

// Snap returns the point biased toward the most salient nearby edge, or
// the input point unchanged when no image is present, the clamped window
// collapses below 3x3, or no candidate clears the strength floor.
func (a *Analyzer) Snap(p geometry.Point2D, layer *image.Layer, stroke []geometry.Point2D) geometry.Point2D {
	if layer == nil || layer.Image == nil {
		return p
	}
	w, h := layer.Width(), layer.Height()
	lum, alpha := a.planes(layer)

	// World origin sits at the image center.
	px := p.X + float64(w)/2
	py := p.Y + float64(h)/2
	cx := int(math.Round(px))
	cy := int(math.Round(py))

	// Candidates need a 1-pixel border for central differences.
	x0, x1 := clampInt(cx-windowHalf, 1, w-2), clampInt(cx+windowHalf, 1, w-2)
	y0, y1 := clampInt(cy-windowHalf, 1, h-2), clampInt(cy+windowHalf, 1, h-2)
	if x1-x0 < 2 || y1-y0 < 2 {
		return p
	}

	dir, hasDir := strokeDirection(stroke)
	axis := dir.Perp()

	bestScore := math.Inf(-1)
	var bestX, bestY float64
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			gx := (lum.At(y, x+1) - lum.At(y, x-1)) / 2
			gy := (lum.At(y+1, x) - lum.At(y-1, x)) / 2
			ax := (alpha.At(y, x+1) - alpha.At(y, x-1)) / 2
			ay := (alpha.At(y+1, x) - alpha.At(y-1, x)) / 2

			strength := math.Hypot(gx, gy) + math.Hypot(ax, ay)*alphaEdgeGain
			if strength < strengthFloor {
				continue
			}

			offset := geometry.Point2D{X: float64(x) - px, Y: float64(y) - py}
			var score float64
			if hasDir {
				// Decompose the offset along and across the stroke;
				// drifting across the expected path costs far more
				// than running ahead or behind along it.
				par := offset.Dot(dir)
				perp := offset.Dot(axis)

				// An edge tangent to the stroke has its gradient on
				// the snap axis.
				grad := geometry.Point2D{
					X: gx + ax*alphaEdgeGain,
					Y: gy + ay*alphaEdgeGain,
				}.Normalized()
				align := math.Abs(grad.Dot(axis))

				score = strength + align*orientationGain -
					math.Abs(perp)*perpPenalty - math.Abs(par)*parallelPenalty
			} else {
				score = strength - offset.Length()*distancePenalty
			}

			if score > bestScore {
				bestScore = score
				bestX, bestY = float64(x), float64(y)
			}
		}
	}

	if bestScore < strengthFloor {
		return p
	}

	target := geometry.Point2D{
		X: bestX - float64(w)/2,
		Y: bestY - float64(h)/2,
	}
	offset := target.Sub(p)
	if l := offset.Length(); l > maxSnapOffset {
		target = p.Add(offset.Scale(maxSnapOffset / l))
	}
	return target
}

// planes returns the cached luminance and alpha planes for the layer,
// rebuilding them only when the image identity changes. Partial
// invalidation is never performed: stale planes after an image swap would
// silently corrupt every score.
func (a *Analyzer) planes(layer *image.Layer) (*mat.Dense, *mat.Dense) {
	if a.cacheID == layer.ID && a.lum != nil {
		return a.lum, a.alpha
	}

	rgba := layer.Image
	w, h := layer.Width(), layer.Height()
	lum := mat.NewDense(h, w, nil)
	alpha := mat.NewDense(h, w, nil)
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		for x := 0; x < w; x++ {
			r, g, b, av := row[x*4], row[x*4+1], row[x*4+2], row[x*4+3]
			lum.Set(y, x, colorutil.Luminance(r, g, b, av))
			alpha.Set(y, x, float64(av)/255.0)
		}
	}

	a.cacheID = layer.ID
	a.lum = lum
	a.alpha = alpha
	return lum, alpha
}

// strokeDirection estimates a unit drawing direction from the trailing
// portion of the in-progress stroke. Older segments weigh more than the
// most recent ones; if the weighted sum nearly cancels out, no direction
// is considered established.
func strokeDirection(points []geometry.Point2D) (geometry.Point2D, bool) {
	if len(points) < 2 {
		return geometry.Point2D{}, false
	}

	first := len(points) - 1 - trailingSegments
	if first < 0 {
		first = 0
	}

	var sum geometry.Point2D
	for i := first; i < len(points)-1; i++ {
		seg := points[i+1].Sub(points[i])
		if seg.Length() < minSegmentLen {
			continue
		}
		age := float64(len(points) - 2 - i) // newest segment has age 0
		sum = sum.Add(seg.Normalized().Scale(1 + age*ageWeightStep))
	}

	if sum.Length() < 1e-3 {
		return geometry.Point2D{}, false
	}
	return sum.Normalized(), true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
