package handlers

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cristianadrielbraun/qrcard/internal/apperr"
	"github.com/cristianadrielbraun/qrcard/internal/cache"
	"github.com/cristianadrielbraun/qrcard/internal/metrics"
	"github.com/cristianadrielbraun/qrcard/internal/payload"
	"github.com/cristianadrielbraun/qrcard/internal/render"
)

const defaultLogoFile = "temp_logo.png"

// normalizeHTTPURL validates and normalizes a URL string for QR generation.
// It ensures an http/https scheme, a non-empty hostname, and returns a cleaned absolute URL.
func normalizeHTTPURL(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fmt.Errorf("URL parameter is required")
	}
	// If missing scheme, default to https
	if !strings.Contains(v, "://") {
		v = "https://" + v
	}
	u, err := url.ParseRequestURI(v)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("only http and https URLs are supported")
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL must include a valid host")
	}
	if len(v) > 4096 {
		return "", fmt.Errorf("URL is too long")
	}
	return u.String(), nil
}

// requestType reads the payload type; requests without one are URL codes.
func requestType(raw string) (payload.Type, error) {
	if strings.TrimSpace(raw) == "" {
		return payload.TypeURL, nil
	}
	t, err := payload.ParseType(raw)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeUnsupportedType, fmt.Sprintf("unsupported payload type %q", raw), err)
	}
	return t, nil
}

func fieldsFromQuery(c *gin.Context, t payload.Type) payload.Fields {
	fields := payload.Fields{}
	for _, k := range payload.FieldsOf(t) {
		if v, ok := c.GetQuery(k); ok {
			fields[k] = v
		}
	}
	return fields
}

// encodable formats the payload and checks that it can be put in a QR code.
func (h *Handler) encodable(t payload.Type, fields payload.Fields) (string, error) {
	if t == payload.TypeURL {
		normalized, err := normalizeHTTPURL(fields.Get(payload.FieldURL))
		if err != nil {
			return "", apperr.Invalid("%s", err.Error())
		}
		fields[payload.FieldURL] = normalized
	}

	content := h.formatter.Format(t, fields)
	metrics.PayloadsFormatted.WithLabelValues(t.String()).Inc()
	if content == "" {
		return "", apperr.Invalid("nothing to encode for type %s", t)
	}
	if max := h.cfg.Render.MaxContentLength; max > 0 && len(content) > max {
		return "", apperr.Invalid("payload is %d bytes, limit is %d", len(content), max)
	}
	return content, nil
}

// QRCodeHandler formats the requested payload and renders it as a QR image.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	t, err := requestType(c.Query("type"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	content, err := h.encodable(t, fieldsFromQuery(c, t))
	if err != nil {
		h.respondError(c, err)
		return
	}

	opts := render.FromParams(c.Query)
	if c.Query("ec") == "" {
		opts.ErrorCorrection = h.cfg.Render.ErrorCorrection
	}
	if c.Query("centerLogo") == "true" {
		logo, err := h.loadLogo(c.Query("logoFile"))
		if err != nil {
			h.logger.Warn("logo unavailable", zap.String("file", c.Query("logoFile")), zap.Error(err))
		} else {
			opts.Logo = logo
		}
	}

	c.Header("X-QR-Debug", fmt.Sprintf("type=%s;format=%s;size=%s;shape=%s;colorMode=%s;fg=%s",
		t, opts.Format, opts.Size, opts.Shape, c.DefaultQuery("colorMode", "flat"), render.HexColor(opts.Foreground)))

	key := cache.Key(content, c.Request.URL.Query().Encode())
	data, hit := h.cachedImage(c.Request.Context(), key)
	if !hit {
		res, err := h.render(content, opts)
		if err != nil {
			h.respondError(c, err)
			return
		}
		data = res.Data
		if err := h.cache.Set(c.Request.Context(), key, data, h.cfg.Render.CacheTTL); err != nil {
			h.logger.Warn("cache write failed", zap.Error(err))
		}
	}

	format := opts.Format
	if c.Query("download") == "true" {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="qr-%s.%s"`, t, format))
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, format.ContentType(), data)
}

func (h *Handler) cachedImage(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := h.cache.Get(ctx, key)
	switch {
	case err != nil:
		h.logger.Warn("cache read failed", zap.Error(err))
		metrics.CacheRequests.WithLabelValues(metrics.ResultError).Inc()
		return nil, false
	case ok:
		metrics.CacheRequests.WithLabelValues(metrics.ResultHit).Inc()
		return data, true
	default:
		metrics.CacheRequests.WithLabelValues(metrics.ResultMiss).Inc()
		return nil, false
	}
}

func (h *Handler) render(content string, opts render.Options) (*render.Result, error) {
	start := time.Now()
	res, err := render.Render(content, opts)
	format := string(opts.Format)
	metrics.RenderDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.Renders.WithLabelValues(format, metrics.ResultError).Inc()
		return nil, apperr.Wrap(apperr.CodeRenderFailed, "failed to render QR code", err)
	}
	metrics.Renders.WithLabelValues(format, metrics.ResultOK).Inc()
	h.logger.Debug("rendered QR code",
		zap.String("format", string(res.Format)),
		zap.Int("width", res.Width),
		zap.Int("bytes", len(res.Data)),
	)
	return res, nil
}

// loadLogo reads an uploaded logo from the logo directory. Only the base name
// of file is used.
func (h *Handler) loadLogo(file string) (image.Image, error) {
	name := defaultLogoFile
	if file != "" {
		name = filepath.Base(file)
	}
	f, err := os.Open(filepath.Join(h.cfg.Render.LogoDir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return render.DecodeLogo(f)
}

type payloadRequest struct {
	Type   string            `json:"type" binding:"required"`
	Fields map[string]string `json:"fields"`
}

// Payload returns the encodable string for a type and its fields without rendering.
func (h *Handler) Payload(c *gin.Context) {
	var req payloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Wrap(apperr.CodeInvalidInput, "invalid request body", err))
		return
	}
	t, err := payload.ParseType(req.Type)
	if err != nil {
		h.respondError(c, apperr.Wrap(apperr.CodeUnsupportedType, fmt.Sprintf("unsupported payload type %q", req.Type), err))
		return
	}
	s := h.formatter.Format(t, req.Fields)
	metrics.PayloadsFormatted.WithLabelValues(t.String()).Inc()
	c.JSON(http.StatusOK, gin.H{"type": t, "payload": s})
}

type typeInfo struct {
	Type   payload.Type `json:"type"`
	Fields []string     `json:"fields"`
}

// Types lists the payload types and the field keys each one reads.
func (h *Handler) Types(c *gin.Context) {
	types := payload.Types()
	out := make([]typeInfo, 0, len(types))
	for _, t := range types {
		out = append(out, typeInfo{Type: t, Fields: payload.FieldsOf(t)})
	}
	c.JSON(http.StatusOK, gin.H{"types": out, "countryCode": h.formatter.CountryCode()})
}
