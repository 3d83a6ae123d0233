package export

import (
	"github.com/jung-kurt/gofpdf"

	"github.com/MicroSwitchers/sfh/internal/app"
	"github.com/MicroSwitchers/sfh/pkg/geometry"
)

// A4 landscape drawing area in millimetres, with a 10mm margin.
const (
	pdfPageW  = 297.0
	pdfPageH  = 210.0
	pdfMargin = 10.0
)

// ExportPDF writes the pane's committed stroke geometry as vector lines
// on a single A4 landscape page, scaled to fit. Eraser strokes carry no
// ink of their own and are skipped.
func ExportPDF(path string, pane *app.Pane) error {
	p := gofpdf.New("L", "mm", "A4", "")
	p.AddPage()

	scale, offset := pdfFit(pane)
	for _, s := range pane.Ink.Strokes() {
		if s.Eraser || len(s.Points) < 2 {
			continue
		}
		p.SetDrawColor(int(s.Color.R), int(s.Color.G), int(s.Color.B))
		lw := s.Width * scale
		if lw < 0.2 {
			lw = 0.2
		}
		p.SetLineWidth(lw)
		for i := 1; i < len(s.Points); i++ {
			a := s.Points[i-1].Sub(offset).Scale(scale)
			b := s.Points[i].Sub(offset).Scale(scale)
			p.Line(pdfMargin+a.X, pdfMargin+a.Y, pdfMargin+b.X, pdfMargin+b.Y)
		}
	}
	return p.OutputFileAndClose(path)
}

// pdfFit computes the world-to-page scale and world offset that place
// the pane's content inside the page margins.
func pdfFit(pane *app.Pane) (float64, geometry.Point2D) {
	bounds := contentBounds(pane)
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return 1.0, geometry.NewPoint2D(bounds.X, bounds.Y)
	}
	availW := pdfPageW - 2*pdfMargin
	availH := pdfPageH - 2*pdfMargin
	scale := availW / bounds.Width
	if s := availH / bounds.Height; s < scale {
		scale = s
	}
	return scale, geometry.NewPoint2D(bounds.X, bounds.Y)
}

// contentBounds covers the image extent and every committed stroke.
func contentBounds(pane *app.Pane) geometry.Rect {
	size := pane.ImageSize()
	bounds := geometry.NewRect(-size.Width/2, -size.Height/2, size.Width, size.Height)
	for _, s := range pane.Ink.Strokes() {
		bounds = unionRect(bounds, s.Bounds())
	}
	return bounds
}

func unionRect(a, b geometry.Rect) geometry.Rect {
	if a.Width == 0 && a.Height == 0 {
		return b
	}
	if b.Width == 0 && b.Height == 0 {
		return a
	}
	minX := a.X
	if b.X < minX {
		minX = b.X
	}
	minY := a.Y
	if b.Y < minY {
		minY = b.Y
	}
	maxX := a.X + a.Width
	if x := b.X + b.Width; x > maxX {
		maxX = x
	}
	maxY := a.Y + a.Height
	if y := b.Y + b.Height; y > maxY {
		maxY = y
	}
	return geometry.NewRect(minX, minY, maxX-minX, maxY-minY)
}
