package handlers

import (
	"net/http"
	"strconv"

	toast "github.com/cristianadrielbraun/qrstudio/web/components/ui/toast"
	"github.com/gin-gonic/gin"
)

// GenericToast returns a Toast component rendered as HTML for HTMX swaps.
func (h *Handler) GenericToast(c *gin.Context) {
	duration := 2000
	if d, err := strconv.Atoi(c.PostForm("duration")); err == nil && d >= 0 {
		duration = d
	}

	h.renderToast(c, http.StatusOK, toast.Props{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Variant:     toast.ParseVariant(c.PostForm("variant")),
		Position:    toast.PositionBottomRight,
		Duration:    duration,
		Dismissible: c.PostForm("dismissible") == "on",
	})
}

func (h *Handler) renderToast(c *gin.Context, status int, p toast.Props) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := toast.Toast(p).Render(c.Request.Context(), c.Writer); err != nil {
		h.log.Warnw("toast render failed", "error", err)
	}
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}
