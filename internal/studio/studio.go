// Package studio runs one generate request end to end: input check, rate
// gate, encode, rasterize, overlay and PNG encoding.
package studio

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
	"time"

	"github.com/cristianadrielbraun/qrstudio/internal/advisor"
	"github.com/cristianadrielbraun/qrstudio/internal/compose"
	"github.com/cristianadrielbraun/qrstudio/internal/encoder"
	"github.com/cristianadrielbraun/qrstudio/internal/raster"
	"github.com/cristianadrielbraun/qrstudio/internal/ratelimit"
	"github.com/cristianadrielbraun/qrstudio/internal/scan"
	"github.com/cristianadrielbraun/qrstudio/internal/style"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// Filename is the suggested name for a downloaded render.
const Filename = "qr-code.png"

// RateLimitMessage is shown when a request arrives inside the cooldown.
const RateLimitMessage = "Please wait a few seconds before generating another QR code."

var (
	// ErrEmptyInput is returned for blank text. Nothing is rendered and the
	// rate gate is not consulted.
	ErrEmptyInput = errors.New("empty input")
	// ErrRateLimited is matched by every *RateLimitError.
	ErrRateLimited = errors.New("rate limited")
	// ErrInvalidStyle wraps RenderStyle validation failures.
	ErrInvalidStyle = errors.New("invalid style")
)

// RateLimitError carries the user-facing message and the remaining cooldown.
type RateLimitError struct {
	Message   string
	Remaining time.Duration
}

func (e *RateLimitError) Error() string { return e.Message }

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// Request is one generate call. Style and Logo are explicit snapshots.
type Request struct {
	Text      string
	Style     style.RenderStyle
	Logo      style.LogoConfig
	ClientKey string
	// Verify decodes the final image and reports whether it round-trips.
	Verify bool
}

// Result is a successful render.
type Result struct {
	Image    *image.RGBA
	PNG      []byte
	Filename string
	Advice   advisor.Advice
	Hint     advisor.ShapeHint
	Scan     *scan.Result
}

// DataURL returns the PNG as an embeddable data URL.
func (r *Result) DataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(r.PNG)
}

// Generator holds the stateless render pipeline and the rate gate, which is
// the only state kept between calls.
type Generator struct {
	enc        encoder.Encoder
	rasterizer *raster.Rasterizer
	compositor *compose.Compositor
	gate       *ratelimit.Gate
	canvasSize int
	log        *zap.SugaredLogger
}

// Option configures a Generator.
type Option func(*Generator)

func WithRasterizer(r *raster.Rasterizer) Option {
	return func(g *Generator) { g.rasterizer = r }
}

func WithCompositor(c *compose.Compositor) Option {
	return func(g *Generator) { g.compositor = c }
}

func WithGate(gate *ratelimit.Gate) Option {
	return func(g *Generator) { g.gate = gate }
}

func WithCanvasSize(size int) Option {
	return func(g *Generator) { g.canvasSize = size }
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(g *Generator) { g.log = l }
}

// New returns a Generator using enc for the module grid.
func New(enc encoder.Encoder, opts ...Option) *Generator {
	g := &Generator{
		enc:        enc,
		rasterizer: raster.New(),
		compositor: compose.New(),
		gate:       ratelimit.NewGate(nil),
		canvasSize: raster.DefaultCanvasSize,
		log:        zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// CanvasSize returns the output edge length in pixels.
func (g *Generator) CanvasSize() int { return g.canvasSize }

// Generate renders req. Only a fully successful render moves the rate gate,
// and it records the time the request was admitted.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyInput
	}
	if err := req.Style.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStyle, err)
	}

	ticket, err := g.gate.Admit(ctx, req.ClientKey)
	if err != nil {
		var le *ratelimit.LimitedError
		if errors.As(err, &le) {
			g.log.Infow("generate rejected", "client", req.ClientKey, "remaining", le.Remaining)
			return nil, &RateLimitError{Message: RateLimitMessage, Remaining: le.Remaining}
		}
		return nil, err
	}

	m, err := g.enc.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("failed to encode text: %w", err)
	}

	img, err := g.rasterizer.Render(m, req.Style, g.canvasSize)
	if err != nil {
		return nil, err
	}

	bg := req.Style.EffectiveBackground()
	img = g.compositor.Compose(ctx, img, compose.Request{
		Logo:       req.Logo,
		Preset:     req.Style.PresetID,
		Background: bg,
	})

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.DefaultCompression)); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}

	res := &Result{
		Image:    img,
		PNG:      buf.Bytes(),
		Filename: Filename,
		Advice:   advisor.Evaluate(req.Style, req.Logo),
		Hint:     advisor.HintForShape(req.Style.ModuleShape),
	}
	if req.Verify {
		v := scan.Verify(img, bg, text)
		res.Scan = &v
	}

	if err := ticket.Commit(ctx); err != nil {
		g.log.Warnw("generation time not recorded", "client", req.ClientKey, "error", err)
	}
	g.log.Debugw("generated", "client", req.ClientKey, "modules", m.Size(), "preset", req.Style.PresetID)
	return res, nil
}
