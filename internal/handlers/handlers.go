// Package handlers implements the HTTP endpoints of the web UI and API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cristianadrielbraun/qrcard/internal/apperr"
	"github.com/cristianadrielbraun/qrcard/internal/cache"
	"github.com/cristianadrielbraun/qrcard/internal/config"
	"github.com/cristianadrielbraun/qrcard/internal/idcard"
	"github.com/cristianadrielbraun/qrcard/internal/logger"
	"github.com/cristianadrielbraun/qrcard/internal/payload"
	"github.com/cristianadrielbraun/qrcard/internal/refine"
)

// Deps are the collaborators shared by all handlers. Cache and Refiner are
// optional.
type Deps struct {
	Config    *config.Config
	Formatter *payload.Formatter
	Cache     cache.Cache
	Cards     *idcard.Renderer
	Refiner   refine.Refiner
	Logger    *zap.Logger
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	cfg       *config.Config
	formatter *payload.Formatter
	cache     cache.Cache
	cards     *idcard.Renderer
	refiner   refine.Refiner
	logger    *zap.Logger
}

// New returns a Handler. Missing optional dependencies get no-op defaults.
func New(d Deps) *Handler {
	h := &Handler{
		cfg:       d.Config,
		formatter: d.Formatter,
		cache:     d.Cache,
		cards:     d.Cards,
		refiner:   d.Refiner,
		logger:    d.Logger,
	}
	if h.formatter == nil {
		h.formatter = payload.NewFormatter(h.cfg.Payload.CountryCode)
	}
	if h.cache == nil {
		h.cache = cache.Nop{}
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	return h
}

// RequestID tags each request with an id, reusing X-Request-ID when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(logger.RequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError writes err as {"error": {...}} with the status mapped from its code.
func (h *Handler) respondError(c *gin.Context, err error) {
	e := apperr.From(err)
	status := apperr.HTTPStatus(e)
	_ = c.Error(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("code", string(e.Code)),
			zap.String(logger.RequestIDKey, c.GetString(logger.RequestIDKey)),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": e})
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
		"  <url>\n" +
		"    <loc>" + base + "/#idcard" + "</loc>\n" +
		"    <changefreq>monthly</changefreq>\n" +
		"    <priority>0.6</priority>\n" +
		"  </url>\n" +
		"</urlset>\n"
	c.String(http.StatusOK, xml)
}

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Home)
	r.GET("/sitemap.xml", h.SitemapXML)
	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)
		api.POST("/payload", h.Payload)
		api.GET("/types", h.Types)
		api.POST("/htmx/toast", h.GenericToast)

		card := api.Group("/idcard")
		card.POST("/validate", h.ValidateCard)
		card.POST("/preview", h.PreviewCard)
		card.POST("/export", h.ExportCard)
		card.POST("/refine", h.RefineCard)
	}
}
