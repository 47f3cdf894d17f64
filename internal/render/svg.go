package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/yeqown/go-qrcode/v2"
)

// matrixWriter is a qrcode.Writer that keeps the module bitmap instead of drawing it.
type matrixWriter struct {
	bitmap [][]bool
}

func (w *matrixWriter) Write(mat qrcode.Matrix) error {
	w.bitmap = make([][]bool, mat.Height())
	for y := range w.bitmap {
		w.bitmap[y] = make([]bool, mat.Width())
	}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		w.bitmap[y][x] = v.IsSet()
	})
	return nil
}

func (w *matrixWriter) Close() error { return nil }

func captureMatrix(qrc *qrcode.QRCode) ([][]bool, error) {
	w := &matrixWriter{}
	if err := qrc.Save(w); err != nil {
		return nil, fmt.Errorf("read QR matrix: %w", err)
	}
	if len(w.bitmap) == 0 {
		return nil, fmt.Errorf("read QR matrix: empty matrix")
	}
	return w.bitmap, nil
}

func rgb(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// buildSVG draws mat as a vector image and returns it with its edge length.
func buildSVG(mat [][]bool, opts Options) ([]byte, int) {
	dimension := len(mat)
	target := 400
	if opts.Size == SizeDownload {
		target = downloadMinSize
	} else if edge := opts.previewEdge(); edge > 0 {
		target = edge
	}
	module := max(target/dimension, 1)
	qrSize := module * dimension

	padding := qrSize * opts.PaddingPercent / 100
	frame := 0
	if opts.Frame.Enabled() {
		frame = qrSize * opts.frameWidthPercent() / 100
	}
	total := qrSize + 2*(padding+frame)
	offset := frame + padding

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`, total, total, total, total)

	fill := rgb(opts.Foreground)
	frameFill := rgb(opts.frameColor())
	if g := opts.Gradient; g != nil {
		sb.WriteString(`<defs><linearGradient id="qrGradient" x1="0%" y1="100%" x2="100%" y2="0%">`)
		fmt.Fprintf(&sb, `<stop offset="0%%" stop-color="%s"/>`, rgb(g.Start))
		fmt.Fprintf(&sb, `<stop offset="50%%" stop-color="%s"/>`, rgb(g.Middle))
		fmt.Fprintf(&sb, `<stop offset="100%%" stop-color="%s"/>`, rgb(g.End))
		sb.WriteString(`</linearGradient></defs>`)
		fill = "url(#qrGradient)"
		if opts.FrameColor == nil {
			frameFill = fill
		}
	}

	if opts.Background.A > 0 {
		fmt.Fprintf(&sb, `<rect width="%d" height="%d" fill="%s"/>`, total, total, rgb(opts.Background))
	}

	if frame > 0 {
		inner := total - 2*frame
		fmt.Fprintf(&sb, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`, total, frame, frameFill)
		fmt.Fprintf(&sb, `<rect x="0" y="%d" width="%d" height="%d" fill="%s"/>`, total-frame, total, frame, frameFill)
		fmt.Fprintf(&sb, `<rect x="0" y="%d" width="%d" height="%d" fill="%s"/>`, frame, frame, inner, frameFill)
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`, total-frame, frame, frame, inner, frameFill)
	}

	fmt.Fprintf(&sb, `<g fill="%s">`, fill)
	for y, row := range mat {
		for x, set := range row {
			if !set {
				continue
			}
			mx := offset + x*module
			my := offset + y*module
			if opts.Shape == ShapeCircle {
				r := float64(module) / 2
				fmt.Fprintf(&sb, `<circle cx="%g" cy="%g" r="%g"/>`, float64(mx)+r, float64(my)+r, r)
			} else {
				fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d"/>`, mx, my, module, module)
			}
		}
	}
	sb.WriteString(`</g></svg>`)
	return []byte(sb.String()), total
}
