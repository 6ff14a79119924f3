package raster

import (
	"math"

	"github.com/cristianadrielbraun/qrstudio/internal/style"
	"github.com/fogleman/gg"
)

// Corner radii as a fraction of the cell size.
const (
	roundedRadius = 0.4
	pillRadius    = 0.6
)

// Inscribed radii as a fraction of half the cell size.
const (
	circleScale  = 0.9
	diamondScale = 0.9
	dotScale     = 0.8
)

// cellPath adds the outline of one module to the current path. Unknown shapes
// draw as dots.
func cellPath(dc *gg.Context, shape style.Shape, x, y, cell float64) {
	cx, cy := x+cell/2, y+cell/2
	half := cell / 2

	switch shape {
	case style.ShapeSquare:
		// Edges snap to whole pixels so neighbouring squares share a border
		// without an anti-aliased seam.
		x0, y0 := math.Round(x), math.Round(y)
		dc.DrawRectangle(x0, y0, math.Round(x+cell)-x0, math.Round(y+cell)-y0)
	case style.ShapeRounded:
		RoundedRect(dc, x, y, cell, cell, cell*roundedRadius)
	case style.ShapePill:
		RoundedRect(dc, x, y, cell, cell, cell*pillRadius)
	case style.ShapeDiamond:
		r := half * diamondScale
		dc.NewSubPath()
		dc.MoveTo(cx, cy-r)
		dc.LineTo(cx+r, cy)
		dc.LineTo(cx, cy+r)
		dc.LineTo(cx-r, cy)
		dc.ClosePath()
	case style.ShapeCircle:
		dc.DrawCircle(cx, cy, half*circleScale)
	default:
		dc.DrawCircle(cx, cy, half*dotScale)
	}
}

// RoundedRect adds a rounded rectangle built from quadratic corner curves.
// r is not clamped to half the edge; larger radii pinch the sides inward.
func RoundedRect(dc *gg.Context, x, y, w, h, r float64) {
	dc.NewSubPath()
	dc.MoveTo(x+r, y)
	dc.LineTo(x+w-r, y)
	dc.QuadraticTo(x+w, y, x+w, y+r)
	dc.LineTo(x+w, y+h-r)
	dc.QuadraticTo(x+w, y+h, x+w-r, y+h)
	dc.LineTo(x+r, y+h)
	dc.QuadraticTo(x, y+h, x, y+h-r)
	dc.LineTo(x, y+r)
	dc.QuadraticTo(x, y, x+r, y)
	dc.ClosePath()
}
