package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/cristianadrielbraun/qrstudio/internal/style"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// maxLogoBytes bounds uploaded and inline logos.
const maxLogoBytes = 8 << 20

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// parseColorParam validates a hex color form value. An empty value keeps def.
func parseColorParam(param, def string) (string, error) {
	param = strings.TrimSpace(param)
	if param == "" {
		return def, nil
	}
	if _, err := style.ParseHexColor(param); err != nil {
		return "", badRequest("%v", err)
	}
	return param, nil
}

func parseBoolParam(param string, def bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(param)) {
	case "":
		return def, nil
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(param))
	if err != nil {
		return false, badRequest("invalid boolean %q", param)
	}
	return v, nil
}

func parseFloatParam(param string, def float64) (float64, error) {
	param = strings.TrimSpace(param)
	if param == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(param, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, badRequest("invalid number %q", param)
	}
	return v, nil
}

// themeOf reads the theme field, falling back to the handler default.
func (h *Handler) themeOf(c *gin.Context) style.Theme {
	if t := c.PostForm("theme"); t != "" {
		return style.ParseTheme(t)
	}
	if t := c.Query("theme"); t != "" {
		return style.ParseTheme(t)
	}
	return h.theme
}

// parseStyle starts from the requested preset (classic when absent) and
// applies individual field edits on top. Edits never change the preset id.
func (h *Handler) parseStyle(c *gin.Context) (style.RenderStyle, error) {
	theme := h.themeOf(c)

	s := style.Default(theme)
	if p := c.PostForm("preset"); p != "" {
		preset, err := style.ParsePreset(p)
		if err != nil {
			return s, badRequest("%v", err)
		}
		s = style.ApplyPreset(preset, theme)
	}

	var err error
	if s.PrimaryColor, err = parseColorParam(c.PostForm("primary"), s.PrimaryColor); err != nil {
		return s, err
	}
	if s.SecondaryColor, err = parseColorParam(c.PostForm("secondary"), s.SecondaryColor); err != nil {
		return s, err
	}
	if s.BackgroundColor, err = parseColorParam(c.PostForm("background"), s.BackgroundColor); err != nil {
		return s, err
	}
	// A present but empty eye_color clears the eye color.
	if v, ok := c.GetPostForm("eye_color"); ok {
		if s.EyeColor, err = parseColorParam(v, ""); err != nil {
			return s, err
		}
	}
	if s.BackgroundTransparent, err = parseBoolParam(c.PostForm("transparent"), s.BackgroundTransparent); err != nil {
		return s, err
	}

	if v := c.PostForm("shape"); v != "" {
		if s.ModuleShape, err = style.ParseModuleShape(v); err != nil {
			return s, badRequest("%v", err)
		}
	}
	if v := c.PostForm("eye_shape"); v != "" {
		if s.EyeShape, err = style.ParseEyeShape(v); err != nil {
			return s, badRequest("%v", err)
		}
	}
	if v := c.PostForm("gradient"); v != "" {
		if s.GradientMode, err = style.ParseGradientMode(v); err != nil {
			return s, badRequest("%v", err)
		}
	}
	return s, nil
}

// parseLogo reads logo settings and, when withImage is set, the logo bytes
// from a multipart "logo" file or a "logo_data" data URL.
func (h *Handler) parseLogo(c *gin.Context, withImage bool) (style.LogoConfig, error) {
	logo := style.DefaultLogo()

	var err error
	if logo.ScalePercent, err = parseFloatParam(c.PostForm("logo_scale"), logo.ScalePercent); err != nil {
		return logo, err
	}
	if logo.Framed, err = parseBoolParam(c.PostForm("logo_frame"), logo.Framed); err != nil {
		return logo, err
	}
	if logo.Opacity, err = parseFloatParam(c.PostForm("logo_opacity"), logo.Opacity); err != nil {
		return logo, err
	}
	if !withImage {
		return logo, nil
	}

	fh, err := c.FormFile("logo")
	switch {
	case err == nil:
		f, err := fh.Open()
		if err != nil {
			return logo, badRequest("failed to open logo: %v", err)
		}
		defer f.Close()
		if logo.Image, err = readLimited(f); err != nil {
			return logo, err
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		if v := c.PostForm("logo_data"); v != "" {
			if logo.Image, err = decodeDataURL(v); err != nil {
				return logo, err
			}
		}
	default:
		return logo, badRequest("failed to read logo: %v", err)
	}

	if logo.HasImage() {
		h.log.Debugw("logo received", "bytes", len(logo.Image), "mime", mimetype.Detect(logo.Image).String())
	}
	return logo, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxLogoBytes+1))
	if err != nil {
		return nil, badRequest("failed to read logo: %v", err)
	}
	if len(data) > maxLogoBytes {
		return nil, badRequest("logo exceeds %d bytes", maxLogoBytes)
	}
	return data, nil
}

// decodeDataURL accepts data:[<mime>][;base64],<payload>.
func decodeDataURL(s string) ([]byte, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "data:")
	if !ok {
		return nil, badRequest("logo_data must be a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, badRequest("logo_data has no payload")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return []byte(payload), nil
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > maxLogoBytes {
		return nil, badRequest("logo exceeds %d bytes", maxLogoBytes)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, badRequest("logo_data is not valid base64")
	}
	return data, nil
}

// clientKey identifies the caller for the rate gate.
func clientKey(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader("X-Session-ID")); id != "" {
		return "session:" + id
	}
	return "ip:" + c.ClientIP()
}
