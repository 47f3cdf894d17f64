package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cristianadrielbraun/qrcard/internal/payload"
	"github.com/cristianadrielbraun/qrcard/web/components"
	"github.com/cristianadrielbraun/qrcard/web/pages"
)

var typeLabels = map[payload.Type]string{
	payload.TypeURL:      "URL",
	payload.TypeSMS:      "SMS",
	payload.TypeWiFi:     "Wi-Fi",
	payload.TypeVCard:    "vCard",
	payload.TypePDF:      "PDF",
	payload.TypeMP3:      "MP3",
	payload.TypeAppStore: "App Store",
	payload.TypeWhatsApp: "WhatsApp",
}

func typeOptions() []components.TypeOption {
	types := payload.Types()
	out := make([]components.TypeOption, 0, len(types))
	for _, t := range types {
		label, ok := typeLabels[t]
		if !ok {
			label = strings.ToUpper(t.String()[:1]) + t.String()[1:]
		}
		out = append(out, components.TypeOption{Value: t.String(), Label: label, Fields: payload.FieldsOf(t)})
	}
	return out
}

// Home renders the main page.
func (h *Handler) Home(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := pages.HomePage(typeOptions()).Render(c.Request.Context(), c.Writer); err != nil {
		h.logger.Error("render home page", zap.Error(err))
		c.String(500, err.Error())
	}
}
