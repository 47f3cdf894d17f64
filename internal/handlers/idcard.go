package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cristianadrielbraun/qrcard/internal/apperr"
	"github.com/cristianadrielbraun/qrcard/internal/idcard"
	"github.com/cristianadrielbraun/qrcard/internal/metrics"
	"github.com/cristianadrielbraun/qrcard/internal/refine"
)

var dobLayouts = []string{"2006-01-02", idcard.DateLayout, time.RFC3339}

// cardRequest is the wire form of a card. Multipart requests carry it as JSON
// in the "card" field next to a "photo" file; JSON requests may inline the
// photo as a base64 data URL.
type cardRequest struct {
	Name         string `json:"name"`
	NameHindi    string `json:"nameHindi"`
	DOB          string `json:"dob"`
	Gender       string `json:"gender"`
	Number       string `json:"adharNumber"`
	VID          string `json:"vid"`
	Address      string `json:"address"`
	AddressHindi string `json:"addressHindi"`
	FontSize     int    `json:"fontSize"`
	ShowQRCode   *bool  `json:"showQrCode"`
	Photo        string `json:"photo,omitempty"`
}

func (r cardRequest) card() (idcard.Card, error) {
	c := idcard.Card{
		Name:         strings.TrimSpace(r.Name),
		NameHindi:    strings.TrimSpace(r.NameHindi),
		Gender:       r.Gender,
		Number:       strings.TrimSpace(r.Number),
		VID:          strings.TrimSpace(r.VID),
		Address:      strings.TrimSpace(r.Address),
		AddressHindi: strings.TrimSpace(r.AddressHindi),
		FontSize:     r.FontSize,
		ShowQRCode:   r.ShowQRCode,
	}
	if dob := strings.TrimSpace(r.DOB); dob != "" {
		var err error
		for _, layout := range dobLayouts {
			if c.DOB, err = time.Parse(layout, dob); err == nil {
				break
			}
		}
		if err != nil {
			return c, apperr.Invalid("invalid date of birth %q", r.DOB)
		}
	}
	return c, nil
}

// bindCard reads a card and optional photo from a JSON or multipart request.
func (h *Handler) bindCard(c *gin.Context) (idcard.Card, image.Image, error) {
	maxPhoto := h.cfg.IDCard.MaxPhotoBytes

	var req cardRequest
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := json.Unmarshal([]byte(c.PostForm("card")), &req); err != nil {
			return idcard.Card{}, nil, apperr.Wrap(apperr.CodeInvalidInput, "invalid card field", err)
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		return idcard.Card{}, nil, apperr.Wrap(apperr.CodeInvalidInput, "invalid request body", err)
	}

	card, err := req.card()
	if err != nil {
		return card, nil, err
	}
	if err := idcard.CheckQRText(card, h.cfg.Render.MaxContentLength); err != nil {
		return card, nil, err
	}

	var photo image.Image
	if fh, ferr := c.FormFile("photo"); ferr == nil {
		if maxPhoto > 0 && fh.Size > maxPhoto {
			return card, nil, apperr.New(apperr.CodePhotoTooLarge, fmt.Sprintf("photo exceeds the %d byte limit", maxPhoto))
		}
		f, err := fh.Open()
		if err != nil {
			return card, nil, apperr.Wrap(apperr.CodeInvalidInput, "read photo", err)
		}
		defer f.Close()
		if photo, err = idcard.DecodePhoto(f, maxPhoto); err != nil {
			return card, nil, err
		}
	} else if req.Photo != "" {
		raw, err := decodeDataURL(req.Photo)
		if err != nil {
			return card, nil, err
		}
		if photo, err = idcard.DecodePhoto(bytes.NewReader(raw), maxPhoto); err != nil {
			return card, nil, err
		}
	}
	return card, photo, nil
}

func decodeDataURL(s string) ([]byte, error) {
	if i := strings.Index(s, ","); strings.HasPrefix(s, "data:") && i > 0 {
		s = s[i+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidInput, "photo is not valid base64", err)
	}
	return raw, nil
}

// ValidateCard reports field errors for a card.
func (h *Handler) ValidateCard(c *gin.Context) {
	var req cardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Wrap(apperr.CodeInvalidInput, "invalid request body", err))
		return
	}
	card, err := req.card()
	if err != nil {
		h.logger.Debug("card date of birth rejected", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"valid": false, "errors": []idcard.FieldError{{Field: "dob", Message: idcard.InvalidDOBMessage}}})
		return
	}
	errs, err := idcard.Validate(card)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if errs == nil {
		errs = []idcard.FieldError{}
	}
	c.JSON(http.StatusOK, gin.H{"valid": len(errs) == 0, "errors": errs})
}

// PreviewCard renders the card as PNG. Empty fields show placeholders.
func (h *Handler) PreviewCard(c *gin.Context) {
	card, photo, err := h.bindCard(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	img, err := h.cards.Preview(card, photo)
	if err != nil {
		h.respondError(c, apperr.Wrap(apperr.CodeRenderFailed, "failed to render card", err))
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		h.respondError(c, apperr.Wrap(apperr.CodeRenderFailed, "failed to encode card", err))
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// ExportCard renders a valid card as a PDF, PNG or JPEG attachment. Cards
// failing validation are answered with VALIDATION_FAILED and the field errors.
func (h *Handler) ExportCard(c *gin.Context) {
	format, err := idcard.ParseExportFormat(c.Query("format"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	card, photo, err := h.bindCard(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	fieldErrs, err := idcard.Validate(card)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if len(fieldErrs) > 0 {
		metrics.CardExports.WithLabelValues(string(format), metrics.ResultError).Inc()
		e := apperr.New(apperr.CodeValidationFailed, "card has invalid fields")
		c.AbortWithStatusJSON(apperr.HTTPStatus(e), gin.H{"error": e, "errors": fieldErrs})
		return
	}

	out, err := h.cards.Export(card, photo, format)
	if err != nil {
		metrics.CardExports.WithLabelValues(string(format), metrics.ResultError).Inc()
		h.respondError(c, err)
		return
	}
	metrics.CardExports.WithLabelValues(string(format), metrics.ResultOK).Inc()
	h.logger.Info("card exported", zap.String("format", string(format)), zap.Int("bytes", len(out.Data)))

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, out.FileName))
	c.Data(http.StatusOK, out.ContentType, out.Data)
}

// RefineCard asks the refinement service to correct and complete names and addresses.
func (h *Handler) RefineCard(c *gin.Context) {
	if h.refiner == nil {
		metrics.RefineRequests.WithLabelValues(metrics.ResultError).Inc()
		h.respondError(c, apperr.New(apperr.CodeRefineNotConfigured, "refinement service is not configured"))
		return
	}
	var in refine.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		h.respondError(c, apperr.Wrap(apperr.CodeInvalidInput, "invalid request body", err))
		return
	}
	out, err := h.refiner.Refine(c.Request.Context(), in)
	if err != nil {
		metrics.RefineRequests.WithLabelValues(metrics.ResultError).Inc()
		h.respondError(c, err)
		return
	}
	metrics.RefineRequests.WithLabelValues(metrics.ResultOK).Inc()
	c.JSON(http.StatusOK, out)
}
