// Package colorutil provides shared color utilities for the annotation surface.
package colorutil

import (
	"image/color"
)

// Common ink colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red     = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	Blue    = color.RGBA{R: 40, G: 80, B: 220, A: 255}
	Green   = color.RGBA{R: 30, G: 160, B: 60, A: 255}
	Yellow  = color.RGBA{R: 240, G: 200, B: 0, A: 255}
	Magenta = color.RGBA{R: 220, G: 40, B: 200, A: 255}
)

// Luminance returns the luminance of an 8-bit RGB triple weighted by its
// alpha. Fully transparent pixels contribute zero regardless of color, which
// keeps gradient analysis from reacting to colors hidden behind transparency.
func Luminance(r, g, b, a uint8) float64 {
	lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	return lum * float64(a) / 255.0
}
