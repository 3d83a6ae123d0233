// Package export flattens a pane's image and committed strokes into
// shareable artifacts: a raster at image-native resolution or a PDF of
// the stroke geometry.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/MicroSwitchers/sfh/internal/app"
	"github.com/MicroSwitchers/sfh/internal/render"
	"github.com/MicroSwitchers/sfh/pkg/geometry"
)

// Flatten renders the pane's image with its committed strokes at the
// image's native resolution, so the current zoom never affects exported
// line width. Without an image, a background-filled canvas of the given
// fallback size is used.
func Flatten(pane *app.Pane, fallback geometry.Size, background color.RGBA) *image.RGBA {
	w, h := pane.Layer.Width(), pane.Layer.Height()
	if w == 0 || h == 0 {
		w = int(fallback.Width)
		h = int(fallback.Height)
		if w <= 0 || h <= 0 {
			w, h = 640, 480
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), &image.Uniform{background}, image.Point{}, draw.Src)
	if pane.Layer != nil && pane.Layer.Image != nil {
		draw.Draw(out, out.Bounds(), pane.Layer.Image, image.Point{}, draw.Over)
	}

	strokes := pane.Ink.Strokes()
	if len(strokes) == 0 {
		return out
	}

	// World origin is the canvas center; strokes render at native scale.
	halfW, halfH := float64(w)/2, float64(h)/2
	toPixel := func(p geometry.Point2D) geometry.Point2D {
		return geometry.NewPoint2D(p.X+halfW, p.Y+halfH)
	}

	overlay := image.NewRGBA(out.Bounds())
	for _, s := range strokes {
		render.DrawStroke(overlay, overlay.Bounds(), s, toPixel, 1.0)
	}
	draw.Draw(out, out.Bounds(), overlay, image.Point{}, draw.Over)
	return out
}

// WritePNG encodes the flattened raster as PNG.
func WritePNG(w io.Writer, img *image.RGBA) error {
	return png.Encode(w, img)
}

// SavePNG writes the flattened raster to a PNG file.
func SavePNG(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
