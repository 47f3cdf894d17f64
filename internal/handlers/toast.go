package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cristianadrielbraun/qrcard/web/components"
)

// GenericToast returns a Toast component rendered as HTML for HTMX swaps.
func (h *Handler) GenericToast(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)

	err := components.Toast(components.ToastProps{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Variant:     components.ParseToastVariant(c.PostForm("variant")),
		Duration:    2000,
		Dismissible: c.PostForm("dismissible") == "on",
	}).Render(c.Request.Context(), c.Writer)
	if err != nil {
		h.logger.Warn("render toast", zap.Error(err))
	}
}
