package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/cristianadrielbraun/qrstudio/internal/advisor"
	"github.com/cristianadrielbraun/qrstudio/internal/raster"
	"github.com/cristianadrielbraun/qrstudio/internal/scan"
	"github.com/cristianadrielbraun/qrstudio/internal/studio"
	"github.com/cristianadrielbraun/qrstudio/internal/style"
	"github.com/cristianadrielbraun/qrstudio/web/components"
	toast "github.com/cristianadrielbraun/qrstudio/web/components/ui/toast"
	"github.com/gin-gonic/gin"
)

type qrResponse struct {
	Image    string            `json:"image"`
	Filename string            `json:"filename"`
	Size     int               `json:"size"`
	Advice   advisor.Advice    `json:"advice"`
	Hint     advisor.ShapeHint `json:"hint"`
	Scan     *scan.Result      `json:"scan,omitempty"`
}

// GenerateQR renders the posted text with the posted style and logo.
func (h *Handler) GenerateQR(c *gin.Context) {
	s, err := h.parseStyle(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	logo, err := h.parseLogo(c, true)
	if err != nil {
		h.respondError(c, err)
		return
	}
	verify, err := parseBoolParam(c.PostForm("verify"), false)
	if err != nil {
		h.respondError(c, err)
		return
	}

	res, err := h.gen.Generate(c.Request.Context(), studio.Request{
		Text:      c.PostForm("text"),
		Style:     s,
		Logo:      logo,
		ClientKey: clientKey(c),
		Verify:    verify,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("X-QR-Scanability", string(res.Advice.Label))
	if res.Scan != nil {
		c.Header("X-QR-Verified", strconv.FormatBool(res.Scan.Matches))
	}

	if c.DefaultPostForm("format", "png") == "json" {
		c.JSON(http.StatusOK, qrResponse{
			Image:    res.DataURL(),
			Filename: res.Filename,
			Size:     res.Image.Bounds().Dx(),
			Advice:   res.Advice,
			Hint:     res.Hint,
			Scan:     res.Scan,
		})
		return
	}

	if download, _ := parseBoolParam(c.PostForm("download"), false); download {
		c.Header("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	}
	c.Data(http.StatusOK, "image/png", res.PNG)
}

// respondError maps pipeline errors onto HTTP statuses.
func (h *Handler) respondError(c *gin.Context, err error) {
	var rl *studio.RateLimitError
	switch {
	case errors.Is(err, studio.ErrEmptyInput):
		c.Status(http.StatusNoContent)
	case errors.As(err, &rl):
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(rl.Remaining.Seconds()))))
		if isHTMX(c) {
			h.renderToast(c, http.StatusTooManyRequests, toast.Props{
				Title:       "Slow down",
				Description: rl.Message,
				Variant:     toast.VariantWarning,
				Position:    toast.PositionBottomRight,
				Duration:    3000,
				Dismissible: true,
			})
			return
		}
		c.JSON(http.StatusTooManyRequests, gin.H{"error": rl.Message, "retry_after_ms": rl.Remaining.Milliseconds()})
	case errors.Is(err, errBadRequest), errors.Is(err, studio.ErrInvalidStyle):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, raster.ErrSurfaceUnavailable):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render QR code"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create QR code"})
	}
}

type presetResponse struct {
	ID    style.Preset      `json:"id"`
	Style style.RenderStyle `json:"style"`
}

// ListPresets returns every preset resolved for the requested theme.
func (h *Handler) ListPresets(c *gin.Context) {
	theme := h.themeOf(c)
	out := make([]presetResponse, 0, len(style.Presets))
	for _, p := range style.Presets {
		out = append(out, presetResponse{ID: p, Style: style.ApplyPreset(p, theme)})
	}
	c.JSON(http.StatusOK, out)
}

// GetPreset returns one preset resolved for the requested theme.
func (h *Handler) GetPreset(c *gin.Context) {
	p, err := style.ParsePreset(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, presetResponse{ID: p, Style: style.ApplyPreset(p, h.themeOf(c))})
}

type scanabilityResponse struct {
	Advice advisor.Advice    `json:"advice"`
	Hint   advisor.ShapeHint `json:"hint"`
}

// Scanability evaluates the posted configuration without rendering it.
func (h *Handler) Scanability(c *gin.Context) {
	s, err := h.parseStyle(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	logo, err := h.parseLogo(c, false)
	if err != nil {
		h.respondError(c, err)
		return
	}

	advice := advisor.Evaluate(s, logo)
	hint := advisor.HintForShape(s.ModuleShape)

	if isHTMX(c) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		err := components.ScanabilityBadge(components.BadgeProps{
			Label:  string(advice.Label),
			Reason: advice.Reason,
			Risky:  advice.Risky(),
			Hint:   hint.Message,
		}).Render(c.Request.Context(), c.Writer)
		if err != nil {
			h.log.Warnw("badge render failed", "error", err)
		}
		return
	}
	c.JSON(http.StatusOK, scanabilityResponse{Advice: advice, Hint: hint})
}
