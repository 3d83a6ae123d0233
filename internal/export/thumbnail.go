package export

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Thumbnail scales a flattened frame so its longer edge is at most
// maxEdge pixels, preserving aspect ratio. Frames already within the
// limit are returned unchanged.
func Thumbnail(img *image.RGBA, maxEdge int) *image.RGBA {
	if maxEdge <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return img
	}

	tw, th := maxEdge, maxEdge
	if w >= h {
		th = h * maxEdge / w
	} else {
		tw = w * maxEdge / h
	}
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	out := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, b, xdraw.Src, nil)
	return out
}
