// Package raster paints a styled QR code from a module grid.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/cristianadrielbraun/qrstudio/internal/matrix"
	"github.com/cristianadrielbraun/qrstudio/internal/style"
	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

// DefaultCanvasSize is the edge length of the output raster.
const DefaultCanvasSize = 512

// DefaultMargin is the quiet zone on each side, in modules.
const DefaultMargin = 2

// ErrSurfaceUnavailable means no drawing surface could be acquired for the
// requested size. The render is aborted and no image is returned.
var ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

var (
	flagRed   = color.NRGBA{R: 0xed, G: 0x1c, B: 0x24, A: 0xff}
	flagWhite = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	flagGreen = color.NRGBA{R: 0x00, G: 0x92, B: 0x3f, A: 0xff}
)

// SurfaceFunc allocates the drawing surface for one render.
type SurfaceFunc func(size int) (*image.RGBA, error)

// Rasterizer paints BitMatrix values. It keeps no state between renders.
type Rasterizer struct {
	margin  int
	surface SurfaceFunc
	log     *zap.SugaredLogger
}

// Option configures a Rasterizer.
type Option func(*Rasterizer)

// WithMargin overrides the quiet zone width in modules.
func WithMargin(modules int) Option {
	return func(r *Rasterizer) {
		if modules >= 0 {
			r.margin = modules
		}
	}
}

// WithSurface replaces the surface allocator.
func WithSurface(fn SurfaceFunc) Option {
	return func(r *Rasterizer) { r.surface = fn }
}

// WithLogger sets the logger used for aborted renders.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(r *Rasterizer) { r.log = l }
}

// New returns a Rasterizer with a 2-module margin.
func New(opts ...Option) *Rasterizer {
	r := &Rasterizer{
		margin:  DefaultMargin,
		surface: newSurface,
		log:     zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func newSurface(size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrSurfaceUnavailable, size)
	}
	return image.NewRGBA(image.Rect(0, 0, size, size)), nil
}

// Margin returns the quiet zone width in modules.
func (r *Rasterizer) Margin() int { return r.margin }

// CellSize is the edge length of one module on a canvas of the given size.
func (r *Rasterizer) CellSize(n, canvasSize int) float64 {
	return float64(canvasSize) / float64(n+2*r.margin)
}

// Render paints m on a fresh canvasSize×canvasSize surface. The surface is
// cleared and fully repainted; a nil image is returned together with
// ErrSurfaceUnavailable when no surface can be acquired.
func (r *Rasterizer) Render(m matrix.BitMatrix, s style.RenderStyle, canvasSize int) (*image.RGBA, error) {
	img, err := r.surface(canvasSize)
	if err != nil {
		r.log.Errorw("render aborted", "size", canvasSize, "error", err)
		if !errors.Is(err, ErrSurfaceUnavailable) {
			err = fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
		}
		return nil, err
	}
	if img == nil || img.Bounds().Dx() != canvasSize || img.Bounds().Dy() != canvasSize {
		r.log.Errorw("render aborted", "size", canvasSize, "error", "surface has wrong bounds")
		return nil, fmt.Errorf("%w: surface bounds mismatch", ErrSurfaceUnavailable)
	}

	dc := gg.NewContextForRGBA(img)
	dc.SetColor(color.Transparent)
	dc.Clear()

	colors := s.Resolve()
	if !s.BackgroundTransparent {
		dc.SetColor(colors.Background)
		dc.Clear()
	}

	n := m.Size()
	size := float64(canvasSize)
	cell := r.CellSize(n, canvasSize)
	data := dataFill(s, colors, size)

	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if !m.Get(row, col) {
				continue
			}
			x := float64(col+r.margin) * cell
			y := float64(row+r.margin) * cell

			eye := m.EyeAt(row, col)
			if eye == matrix.NoEye {
				dc.SetFillStyle(data)
				cellPath(dc, s.ModuleShape, x, y, cell)
			} else {
				dc.SetColor(eyeColor(s, colors, eye))
				cellPath(dc, s.EyeShape, x, y, cell)
			}
			dc.Fill()
		}
	}
	return img, nil
}

// eyeColor picks the solid color of a finder-pattern module. Eyes are never
// filled with a gradient.
func eyeColor(s style.RenderStyle, colors style.Resolved, eye matrix.Eye) color.Color {
	// Flag preset with no explicit eye color: red top corners, green bottom-left.
	if s.PresetID == style.PresetFlag && s.EyeColor == "" {
		if eye == matrix.BottomLeft {
			return flagGreen
		}
		return flagRed
	}
	if colors.Eye != nil {
		return *colors.Eye
	}
	return colors.Primary
}

// dataFill builds the fill for data modules. Gradients span the whole canvas,
// not a single cell.
func dataFill(s style.RenderStyle, colors style.Resolved, size float64) gg.Pattern {
	switch s.GradientMode {
	case style.GradientLinear:
		// The flag preset ignores primary and secondary colors entirely.
		if s.PresetID == style.PresetFlag {
			return flagStripes{height: size}
		}
		g := gg.NewLinearGradient(0, 0, 0, size)
		g.AddColorStop(0, colors.Primary)
		g.AddColorStop(1, colors.Secondary)
		return g
	case style.GradientRadial:
		c := size / 2
		g := gg.NewRadialGradient(c, c, 0, c, c, c)
		g.AddColorStop(0, colors.Primary)
		g.AddColorStop(1, colors.Secondary)
		return g
	default:
		return gg.NewSolidPattern(colors.Primary)
	}
}

// flagStripes is a hard-edged three band fill: red for the top 36% of the
// canvas, white up to 64%, green below.
type flagStripes struct {
	height float64
}

func (f flagStripes) ColorAt(x, y int) color.Color {
	t := (float64(y) + 0.5) / f.height
	switch {
	case t < 0.36:
		return flagRed
	case t < 0.64:
		return flagWhite
	default:
		return flagGreen
	}
}
