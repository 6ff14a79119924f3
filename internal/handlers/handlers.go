package handlers

import (
	"net/http"

	"github.com/cristianadrielbraun/qrstudio/internal/studio"
	"github.com/cristianadrielbraun/qrstudio/internal/style"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler holds the dependencies shared by the HTTP handlers.
type Handler struct {
	gen   *studio.Generator
	theme style.Theme
	log   *zap.SugaredLogger
}

// Option configures a Handler.
type Option func(*Handler)

// WithTheme sets the theme used when a request does not send one.
func WithTheme(t style.Theme) Option {
	return func(h *Handler) { h.theme = t }
}

// WithLogger sets the handler logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(h *Handler) { h.log = l }
}

// New returns a new Handler instance.
func New(gen *studio.Generator, opts ...Option) *Handler {
	h := &Handler{gen: gen, theme: style.ThemeLight, log: zap.NewNop().Sugar()}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SitemapXML serves a minimal sitemap for the site.
func (h *Handler) SitemapXML(c *gin.Context) {
	c.Header("Content-Type", "application/xml; charset=utf-8")
	scheme := "https"
	host := c.Request.Host
	if xf := c.Request.Header.Get("X-Forwarded-Proto"); xf != "" {
		scheme = xf
	} else if c.Request.TLS == nil && (host == "localhost:8080" || host == "127.0.0.1:8080") {
		scheme = "http"
	}
	base := scheme + "://" + host
	xml := "" +
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n" +
		"  <url>\n" +
		"    <loc>" + base + "/" + "</loc>\n" +
		"    <changefreq>weekly</changefreq>\n" +
		"    <priority>1.0</priority>\n" +
		"  </url>\n" +
		"</urlset>\n"
	c.String(http.StatusOK, xml)
}
