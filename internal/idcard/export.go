package idcard

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/cristianadrielbraun/qrcard/internal/apperr"
)

// ExportFormat is a downloadable card format.
type ExportFormat string

const (
	ExportPDF  ExportFormat = "pdf"
	ExportPNG  ExportFormat = "png"
	ExportJPEG ExportFormat = "jpg"
)

// physical card width and page margin, in millimetres.
const (
	cardWidthMM  = 85.6
	pageMarginMM = 10.0
)

// ParseExportFormat accepts pdf, png, jpg and jpeg. Empty selects PDF.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pdf":
		return ExportPDF, nil
	case "png":
		return ExportPNG, nil
	case "jpg", "jpeg":
		return ExportJPEG, nil
	}
	return "", apperr.Invalid("unsupported export format %q", s)
}

// ContentType returns the MIME type for f.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportPNG:
		return "image/png"
	case ExportJPEG:
		return "image/jpeg"
	default:
		return "application/pdf"
	}
}

// Export is a rendered card ready for download.
type Export struct {
	Data        []byte
	ContentType string
	FileName    string
}

// Export renders c and encodes it as f.
func (r *Renderer) Export(c Card, photo image.Image, f ExportFormat) (*Export, error) {
	img, err := r.Preview(c, photo)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeExportFailed, "render card", err)
	}

	var data []byte
	switch f {
	case ExportPNG:
		data, err = encodePNG(img)
	case ExportJPEG:
		data, err = encodeJPEG(img)
	case ExportPDF:
		data, err = encodePDF(img, FileName(c, "pdf"))
	default:
		return nil, apperr.Invalid("unsupported export format %q", f)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeExportFailed, "encode card", err)
	}
	return &Export{Data: data, ContentType: f.ContentType(), FileName: FileName(c, string(f))}, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeJPEG(img image.Image) ([]byte, error) {
	b := img.Bounds()
	flat := image.NewRGBA(b)
	draw.Draw(flat, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, b, img, b.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: 92}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// encodePDF places img on an A4 portrait page at the physical card width,
// centered horizontally and vertically.
func encodePDF(img image.Image, title string) ([]byte, error) {
	raw, err := encodePNG(img)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("qrcard", true)
	pdf.AddPage()

	opt := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("card", opt, bytes.NewReader(raw))

	pageW, pageH := pdf.GetPageSize()
	w := cardWidthMM
	h := w * float64(img.Bounds().Dy()) / float64(img.Bounds().Dx())
	if maxH := pageH - 2*pageMarginMM; h > maxH {
		w = w * maxH / h
		h = maxH
	}
	pdf.ImageOptions("card", (pageW-w)/2, (pageH-h)/2, w, h, false, opt, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return out.Bytes(), nil
}
