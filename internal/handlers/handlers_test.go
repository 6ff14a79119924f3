package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/cristianadrielbraun/qrstudio/internal/advisor"
	"github.com/cristianadrielbraun/qrstudio/internal/encoder"
	"github.com/cristianadrielbraun/qrstudio/internal/ratelimit"
	"github.com/cristianadrielbraun/qrstudio/internal/studio"
	"github.com/cristianadrielbraun/qrstudio/internal/style"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func setup(t *testing.T) (*gin.Engine, *fakeClock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	enc, err := encoder.New("")
	require.NoError(t, err)
	clk := &fakeClock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	gen := studio.New(enc, studio.WithGate(ratelimit.NewGate(nil, ratelimit.WithClock(clk.now))))

	r := gin.New()
	New(gen).Register(r)
	return r, clk
}

func postForm(r http.Handler, path string, form url.Values, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func pngBytes(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestGenerateQRPNG(t *testing.T) {
	r, _ := setup(t)
	w := postForm(r, "/api/qr", url.Values{"text": {"https://example.com"}}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "Good", w.Header().Get("X-QR-Scanability"))
	assert.Empty(t, w.Header().Get("Content-Disposition"))

	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 512, 512), img.Bounds())
}

func TestGenerateQRDownload(t *testing.T) {
	r, _ := setup(t)
	w := postForm(r, "/api/qr", url.Values{"text": {"hi"}, "download": {"1"}}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="qr-code.png"`, w.Header().Get("Content-Disposition"))
}

func TestGenerateQRJSON(t *testing.T) {
	r, _ := setup(t)
	w := postForm(r, "/api/qr", url.Values{
		"text":       {"hello"},
		"preset":     {"contrast"},
		"format":     {"json"},
		"verify":     {"true"},
		"logo_scale": {"30"},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body qrResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, strings.HasPrefix(body.Image, "data:image/png;base64,"))
	assert.Equal(t, "qr-code.png", body.Filename)
	assert.Equal(t, 512, body.Size)
	assert.Equal(t, advisor.Risky, body.Advice.Label, "logo scale above 22")
	assert.False(t, body.Hint.Recommended, "contrast uses dots")
	require.NotNil(t, body.Scan)
}

func TestGenerateQREmptyInput(t *testing.T) {
	r, _ := setup(t)
	w := postForm(r, "/api/qr", url.Values{"text": {"   "}}, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestGenerateQRRateLimited(t *testing.T) {
	r, clk := setup(t)
	session := map[string]string{"X-Session-ID": "abc"}

	w := postForm(r, "/api/qr", url.Values{"text": {"one"}}, session)
	require.Equal(t, http.StatusOK, w.Code)

	clk.t = clk.t.Add(1500 * time.Millisecond)
	w = postForm(r, "/api/qr", url.Values{"text": {"two"}}, session)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "4", w.Header().Get("Retry-After"))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, studio.RateLimitMessage, body["error"])

	hx := map[string]string{"X-Session-ID": "abc", "HX-Request": "true"}
	w = postForm(r, "/api/qr", url.Values{"text": {"two"}}, hx)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), studio.RateLimitMessage)

	w = postForm(r, "/api/qr", url.Values{"text": {"two"}}, map[string]string{"X-Session-ID": "other"})
	assert.Equal(t, http.StatusOK, w.Code)

	clk.t = clk.t.Add(3500 * time.Millisecond)
	w = postForm(r, "/api/qr", url.Values{"text": {"two"}}, session)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateQRBadInput(t *testing.T) {
	r, _ := setup(t)
	for name, form := range map[string]url.Values{
		"color":     {"text": {"x"}, "primary": {"#nothex"}},
		"preset":    {"text": {"x"}, "preset": {"neon"}},
		"shape":     {"text": {"x"}, "shape": {"star"}},
		"eye shape": {"text": {"x"}, "eye_shape": {"pill"}},
		"gradient":  {"text": {"x"}, "gradient": {"conic"}},
		"bool":      {"text": {"x"}, "transparent": {"maybe"}},
		"scale":     {"text": {"x"}, "logo_scale": {"big"}},
		"data url":  {"text": {"x"}, "logo_data": {"http://example.com/logo.png"}},
		"base64":    {"text": {"x"}, "logo_data": {"data:image/png;base64,@@@"}},
	} {
		w := postForm(r, "/api/qr", form, map[string]string{"X-Session-ID": name})
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}

func TestGenerateQRLogoDataURL(t *testing.T) {
	r, _ := setup(t)
	data := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, color.RGBA{255, 0, 0, 255}))
	w := postForm(r, "/api/qr", url.Values{"text": {"logo"}, "logo_data": {data}, "logo_frame": {"off"}}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	cr, cg, cb, _ := img.At(256, 256).RGBA()
	assert.Greater(t, cr>>8, uint32(240))
	assert.Less(t, cg>>8, uint32(15))
	assert.Less(t, cb>>8, uint32(15))
}

func TestGenerateQRLogoUpload(t *testing.T) {
	r, _ := setup(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("text", "upload"))
	require.NoError(t, mw.WriteField("background", "#123456"))
	fw, err := mw.CreateFormFile("logo", "logo.png")
	require.NoError(t, err)
	_, err = fw.Write(pngBytes(t, color.RGBA{0, 0, 255, 255}))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/qr", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	_, _, cb, _ := img.At(256, 256).RGBA()
	assert.Greater(t, cb>>8, uint32(240))
}

func TestPresets(t *testing.T) {
	r, _ := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/api/presets/soft?theme=dark", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var p presetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, style.PresetSoft, p.ID)
	assert.Equal(t, style.ApplyPreset(style.PresetSoft, style.ThemeDark), p.Style)

	req = httptest.NewRequest(http.MethodGet, "/api/presets/neon", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/presets", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var all []presetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, len(style.Presets))
}

func TestScanability(t *testing.T) {
	r, _ := setup(t)

	w := postForm(r, "/api/scanability", url.Values{"primary": {"#000000"}, "background": {"#000000"}}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body scanabilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, advisor.Risky, body.Advice.Label)

	w = postForm(r, "/api/scanability", url.Values{"transparent": {"true"}, "logo_scale": {"15"}}, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, advisor.Good, body.Advice.Label)

	w = postForm(r, "/api/scanability", url.Values{"shape": {"diamond"}}, map[string]string{"HX-Request": "true"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-label="Good"`)
	assert.Contains(t, w.Body.String(), "might not scan")
}

func TestGenericToast(t *testing.T) {
	r, _ := setup(t)
	w := postForm(r, "/api/htmx/toast", url.Values{"title": {"Copied"}, "variant": {"info"}}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Copied")
	assert.Contains(t, w.Body.String(), `data-variant="info"`)
}

func TestSitemapAndHealth(t *testing.T) {
	r, _ := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	req.Host = "localhost:8080"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<loc>http://localhost:8080/</loc>")

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLoggerAssignsID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop().Sugar()))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())
}
