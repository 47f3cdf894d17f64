// Package render turns encodable strings into QR images.
//
// PNG and JPEG go through yeqown's standard writer into memory and are then scaled,
// padded and framed. SVG is built directly from the QR matrix.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
	"github.com/yeqown/go-qrcode/writer/standard/shapes"
)

// ErrEmptyContent is returned when there is nothing to encode.
var ErrEmptyContent = errors.New("content is empty")

// downloadMinSize is the minimum edge of a download-size code before padding.
const downloadMinSize = 2000

// MaxPreviewSize caps the requested preview edge in pixels.
const MaxPreviewSize = downloadMinSize

// Result is an encoded image.
type Result struct {
	Data        []byte
	ContentType string
	Format      Format
	Width       int
	Height      int
}

// Render encodes content as a QR image according to opts.
func Render(content string, opts Options) (*Result, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	qrc, err := qrcode.NewWith(content, ecOption(opts.ErrorCorrection))
	if err != nil {
		return nil, fmt.Errorf("create QR code: %w", err)
	}

	if opts.Format == FormatSVG {
		mat, err := captureMatrix(qrc)
		if err != nil {
			return nil, err
		}
		svg, size := buildSVG(mat, opts)
		return &Result{Data: svg, ContentType: FormatSVG.ContentType(), Format: FormatSVG, Width: size, Height: size}, nil
	}

	img, err := Image(qrc, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	format := opts.Format
	if format == FormatJPG {
		if err := jpeg.Encode(&buf, flatten(img, opts.Background), &jpeg.Options{Quality: 92}); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	} else {
		format = FormatPNG
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	}
	b := img.Bounds()
	return &Result{
		Data:        buf.Bytes(),
		ContentType: format.ContentType(),
		Format:      format,
		Width:       b.Dx(),
		Height:      b.Dy(),
	}, nil
}

// Encode builds a QR code for content at the given error correction level (L, M, Q, H).
func Encode(content, level string) (*qrcode.QRCode, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	qrc, err := qrcode.NewWith(content, ecOption(level))
	if err != nil {
		return nil, fmt.Errorf("create QR code: %w", err)
	}
	return qrc, nil
}

// Image rasterizes qrc and applies scaling, padding and the frame.
func Image(qrc *qrcode.QRCode, opts Options) (*image.RGBA, error) {
	base, err := rasterize(qrc, opts)
	if err != nil {
		return nil, err
	}
	if opts.Background.A == 0 {
		base = clearAntiAliasing(base, opts.Foreground)
	}

	if opts.Size == SizeDownload && base.Bounds().Dx() < downloadMinSize {
		base = scaleNearest(base, downloadMinSize)
	}

	framePct := 0
	if opts.Frame.Enabled() {
		framePct = opts.frameWidthPercent()
	}

	// Scale the bare code so the padded and framed result lands on the preview
	// edge exactly; scaling the frame afterwards would alias its pattern.
	preview := opts.previewEdge()
	if opts.Size != SizeDownload && preview > 0 {
		multiplier := 1.0 + 2.0*(float64(opts.PaddingPercent+framePct)/100.0)
		if want := int(math.Round(float64(preview) / multiplier)); want > 0 && want != base.Bounds().Dx() {
			base = scaleNearest(base, want)
		}
	}

	size := base.Bounds().Dx()
	out := base
	if opts.PaddingPercent > 0 {
		out = pad(out, size*opts.PaddingPercent/100, opts.Background)
	}
	if opts.Frame.Enabled() {
		out = drawFrame(out, opts.Frame, size*framePct/100, opts.Background, opts.frameColor(), opts.Gradient)
	}

	if opts.Size != SizeDownload && preview > 0 && out.Bounds().Dx() != preview {
		out = scaleNearest(out, preview)
	}
	return out, nil
}

func rasterize(qrc *qrcode.QRCode, opts Options) (*image.RGBA, error) {
	wopts := []standard.ImageOption{
		standard.WithQRWidth(uint8(opts.moduleSize())),
		standard.WithBorderWidth(0),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	}
	if opts.Background.A == 0 {
		wopts = append(wopts, standard.WithBgTransparent())
	} else {
		wopts = append(wopts, standard.WithBgColor(opts.Background))
	}

	switch opts.Shape {
	case ShapeCircle:
		wopts = append(wopts, standard.WithCircleShape())
	case ShapeLiquid:
		wopts = append(wopts, standard.WithCustomShape(blockShape(shapes.LiquidBlock())))
	case ShapeChain:
		wopts = append(wopts, standard.WithCustomShape(blockShape(shapes.ChainBlock())))
	case ShapeHStripe:
		wopts = append(wopts, standard.WithCustomShape(blockShape(shapes.HStripeBlock(0.85))))
	case ShapeVStripe:
		wopts = append(wopts, standard.WithCustomShape(blockShape(shapes.VStripeBlock(0.85))))
	}

	if opts.Gradient != nil {
		g := opts.Gradient
		wopts = append(wopts, standard.WithFgGradient(standard.NewGradient(45,
			standard.ColorStop{T: 0, Color: g.Start},
			standard.ColorStop{T: 0.5, Color: g.Middle},
			standard.ColorStop{T: 1, Color: g.End},
		)))
	} else {
		wopts = append(wopts, standard.WithFgColor(opts.Foreground))
	}

	if opts.Logo != nil {
		maxEdge := qrc.Dimension() * opts.moduleSize() / 5
		wopts = append(wopts, standard.WithLogoImage(fitLogo(opts.Logo, maxEdge-1)))
	}

	var buf bytes.Buffer
	w := standard.NewWithWriter(nopCloser{&buf}, wopts...)
	if err := qrc.Save(w); err != nil {
		return nil, fmt.Errorf("write QR image: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode QR image: %w", err)
	}
	return toRGBA(img), nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// blockShape adapts a shapes block drawer to standard.IShape for both
// data modules and finder patterns.
type blockShape func(ctx *standard.DrawContext)

func (s blockShape) Draw(ctx *standard.DrawContext)       { s(ctx) }
func (s blockShape) DrawFinder(ctx *standard.DrawContext) { s(ctx) }

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// flatten composites img over an opaque background for formats without alpha.
func flatten(img image.Image, bg color.RGBA) *image.RGBA {
	opaque := color.RGBA{bg.R, bg.G, bg.B, 255}
	if bg.A == 0 {
		opaque = white
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, &image.Uniform{C: opaque}, image.Point{}, draw.Src)
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}
