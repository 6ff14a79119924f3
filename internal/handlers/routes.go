package handlers

import (
	"github.com/gin-gonic/gin"
)

// Register mounts the API on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/healthz", h.Healthz)
	r.GET("/sitemap.xml", h.SitemapXML)

	api := r.Group("/api")
	{
		api.POST("/qr", h.GenerateQR)
		api.GET("/presets", h.ListPresets)
		api.GET("/presets/:id", h.GetPreset)
		api.POST("/scanability", h.Scanability)
		api.POST("/htmx/toast", h.GenericToast)
	}
}
