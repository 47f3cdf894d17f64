package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
)

// svgLogoEdge is the raster size used for SVG logos before fitting.
const svgLogoEdge = 512

const maxLogoBytes = 8 << 20

// MaxImagePixels bounds the decoded size of logos and photos.
const MaxImagePixels = 4096 * 4096

// ErrImageTooLarge reports an image whose dimensions exceed MaxImagePixels.
var ErrImageTooLarge = errors.New("image dimensions exceed the pixel limit")

// CheckPixels reads only the header of an encoded image and rejects it when
// it would decode to more than MaxImagePixels. It returns the format name.
func CheckPixels(data []byte) (string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return format, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}
	return format, nil
}

// DecodeLogo reads a PNG, JPEG or SVG logo.
func DecodeLogo(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxLogoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read logo: %w", err)
	}
	if len(data) > maxLogoBytes {
		return nil, fmt.Errorf("logo exceeds the %d byte limit", maxLogoBytes)
	}
	if isSVG(data[:min(len(data), 512)]) {
		return rasterizeSVG(bytes.NewReader(data), svgLogoEdge)
	}
	if _, err := CheckPixels(data); err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	return img, nil
}

func isSVG(head []byte) bool {
	trimmed := bytes.TrimSpace(head)
	return bytes.HasPrefix(trimmed, []byte("<svg")) ||
		(bytes.HasPrefix(trimmed, []byte("<?xml")) && bytes.Contains(head, []byte("<svg")))
}

func rasterizeSVG(r io.Reader, edge int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse SVG logo: %w", err)
	}
	w, h := edge, edge
	if icon.ViewBox.W > 0 && icon.ViewBox.H > 0 {
		if icon.ViewBox.W > icon.ViewBox.H {
			h = max(int(float64(edge)*icon.ViewBox.H/icon.ViewBox.W), 1)
		} else {
			w = max(int(float64(edge)*icon.ViewBox.W/icon.ViewBox.H), 1)
		}
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.Draw(rasterx.NewDasher(w, h, rasterx.NewScannerGV(w, h, img, img.Bounds())), 1)
	return img, nil
}

// fitLogo downsizes img so neither edge exceeds maxEdge. The standard writer
// rejects logos larger than a fifth of the code.
func fitLogo(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	if maxEdge <= 0 || (b.Dx() <= maxEdge && b.Dy() <= maxEdge) {
		return img
	}
	scale := float64(maxEdge) / float64(max(b.Dx(), b.Dy()))
	w := max(int(float64(b.Dx())*scale), 1)
	h := max(int(float64(b.Dy())*scale), 1)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
