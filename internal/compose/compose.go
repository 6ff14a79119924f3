// Package compose overlays a logo, or the flag preset's emblem, on a rendered
// QR image.
package compose

import (
	"context"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/cristianadrielbraun/qrstudio/internal/raster"
	"github.com/cristianadrielbraun/qrstudio/internal/style"
	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

const (
	// MaxLogoScale caps the logo edge as a percentage of the canvas, whatever
	// the requested scale.
	MaxLogoScale = 22.0
	// EmblemScale is the flag emblem edge as a fraction of the canvas.
	EmblemScale = 0.30
	// frameRadius is the logo backing corner radius as a fraction of its edge.
	frameRadius = 0.2

	DefaultAssetTimeout = 5 * time.Second
)

// Request is the compositing input for one render.
type Request struct {
	Logo   style.LogoConfig
	Preset style.Preset
	// Background fills the logo frame: the resolved background color or, in
	// transparent mode, the theme fallback.
	Background color.Color
}

// Compositor applies at most one overlay step per render.
type Compositor struct {
	emblem  Loader
	timeout time.Duration
	log     *zap.SugaredLogger
	steps   []step
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithEmblem sets the loader for the flag emblem.
func WithEmblem(l Loader) Option {
	return func(c *Compositor) { c.emblem = l }
}

// WithTimeout bounds each asset load.
func WithTimeout(d time.Duration) Option {
	return func(c *Compositor) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger for skipped steps.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Compositor) { c.log = l }
}

// New returns a Compositor. Without WithEmblem the flag emblem step always
// fails to load and is skipped.
func New(opts ...Option) *Compositor {
	c := &Compositor{
		timeout: DefaultAssetTimeout,
		log:     zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(c)
	}
	c.steps = []step{
		{
			name:    "emblem",
			applies: func(r Request) bool { return r.Preset == style.PresetFlag && !r.Logo.HasImage() },
			loader:  func(Request) Loader { return c.emblemLoader() },
			draw:    drawEmblem,
		},
		{
			name:    "logo",
			applies: func(r Request) bool { return r.Logo.HasImage() },
			loader:  func(r Request) Loader { return bytesLoader(r.Logo.Image) },
			draw:    drawLogo,
		},
	}
	return c
}

func (c *Compositor) emblemLoader() Loader {
	if c.emblem != nil {
		return c.emblem
	}
	return LoaderFunc(func(context.Context) (*Asset, error) {
		return nil, ErrAssetLoad
	})
}

// step is one overlay. Steps are evaluated in order and the first that
// applies is the only one run.
type step struct {
	name    string
	applies func(Request) bool
	loader  func(Request) Loader
	draw    func(dc *gg.Context, a *Asset, r Request)
}

// Compose draws the overlay selected for req onto base in place and returns
// base. A failed load leaves base untouched; the failure is logged only.
func (c *Compositor) Compose(ctx context.Context, base *image.RGBA, req Request) *image.RGBA {
	for _, s := range c.steps {
		if !s.applies(req) {
			continue
		}

		loadCtx, cancel := context.WithTimeout(ctx, c.timeout)
		asset, err := s.loader(req).Load(loadCtx)
		cancel()
		if err != nil {
			c.log.Warnw("overlay skipped", "step", s.name, "error", err)
			return base
		}

		s.draw(gg.NewContextForRGBA(base), asset, req)
		c.log.Debugw("overlay drawn", "step", s.name)
		return base
	}
	return base
}

func canvasEdge(dc *gg.Context) float64 {
	return math.Min(float64(dc.Width()), float64(dc.Height()))
}

// drawEmblem stretches the emblem to a centered square at full opacity with
// no frame or clip.
func drawEmblem(dc *gg.Context, a *Asset, _ Request) {
	size := canvasEdge(dc) * EmblemScale
	x := (float64(dc.Width()) - size) / 2
	y := (float64(dc.Height()) - size) / 2

	edge := int(math.Round(size))
	dc.DrawImage(a.Render(edge, edge), int(math.Round(x)), int(math.Round(y)))
}

// LogoSize returns the logo slot edge for a canvas: the scale is clamped to
// [0, MaxLogoScale] percent.
func LogoSize(canvas, scalePercent float64) float64 {
	scale := math.Min(scalePercent, MaxLogoScale)
	if scale < 0 || math.IsNaN(scale) {
		scale = 0
	}
	return canvas * scale / 100
}

// FitLogo fits a w×h image inside a square slot, scaling the longer side to
// slot and the shorter side proportionally.
func FitLogo(w, h, slot float64) (float64, float64) {
	aspect := 1.0
	if w > 0 && h > 0 {
		aspect = w / h
	}
	drawW, drawH := slot, slot
	if aspect > 1 {
		drawH = slot / aspect
	} else if aspect < 1 {
		drawW = slot * aspect
	}
	return drawW, drawH
}

func clampOpacity(v float64) float64 {
	if math.IsNaN(v) {
		return 1
	}
	return math.Min(math.Max(v, 0), 1)
}

func colorAlpha(opacity float64) color.Alpha {
	return color.Alpha{A: uint8(math.Round(opacity * 255))}
}

func drawLogo(dc *gg.Context, a *Asset, r Request) {
	size := LogoSize(canvasEdge(dc), r.Logo.ScalePercent)
	if size < 1 {
		return
	}
	x := (float64(dc.Width()) - size) / 2
	y := (float64(dc.Height()) - size) / 2

	// Push/Pop scope the clip so nothing drawn later is affected by it.
	dc.Push()
	defer dc.Pop()

	if r.Logo.Framed {
		raster.RoundedRect(dc, x, y, size, size, size*frameRadius)
		bg := r.Background
		if bg == nil {
			bg = color.White
		}
		dc.SetColor(bg)
		dc.FillPreserve()
		dc.Clip()
	}

	w, h := a.Size()
	drawW, drawH := FitLogo(w, h, size)
	offX := x + (size-drawW)/2
	offY := y + (size-drawH)/2

	img := a.Render(int(math.Round(drawW)), int(math.Round(drawH)))
	img = withOpacity(img, clampOpacity(r.Logo.Opacity))
	dc.DrawImage(img, int(math.Round(offX)), int(math.Round(offY)))
}
