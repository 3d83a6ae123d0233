// Package image provides image loading and the layer type that backs a pane.
package image

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Layer is a decoded raster image displayed underneath a pane's ink.
// The ID is a stable identity handle: it changes whenever the pixel
// content changes, so caches keyed by it are invalidated exactly on
// image replacement and never per access.
type Layer struct {
	ID    uuid.UUID
	Path  string
	Image *image.RGBA
}

// NewLayer wraps an already-decoded image in a Layer, converting it to
// RGBA once so per-pixel reads are cheap during rendering and analysis.
func NewLayer(img image.Image) *Layer {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return &Layer{
		ID:    uuid.New(),
		Image: rgba,
	}
}

// Load decodes an image file and returns it as a Layer.
// PNG, JPEG, GIF, TIFF, WebP and BMP are supported.
func Load(path string) (*Layer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	layer := NewLayer(img)
	layer.Path = path
	return layer, nil
}

// Width returns the image width in pixels.
func (l *Layer) Width() int {
	if l == nil || l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (l *Layer) Height() int {
	if l == nil || l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dy()
}

// Name returns a short display name for the layer.
func (l *Layer) Name() string {
	if l == nil {
		return ""
	}
	if l.Path == "" {
		return "untitled"
	}
	return strings.TrimSuffix(filepath.Base(l.Path), filepath.Ext(l.Path))
}
