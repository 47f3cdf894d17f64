package render

import (
	"image"
	"image/color"
	"image/draw"
)

// scaleNearest resizes a square image to edge x edge. Nearest neighbour keeps
// module edges sharp.
func scaleNearest(src *image.RGBA, edge int) *image.RGBA {
	b := src.Bounds()
	if edge <= 0 || b.Dx() == 0 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, edge, edge))
	scale := float64(edge) / float64(b.Dx())
	for y := 0; y < edge; y++ {
		oy := min(int(float64(y)/scale), b.Dy()-1)
		for x := 0; x < edge; x++ {
			ox := min(int(float64(x)/scale), b.Dx()-1)
			dst.SetRGBA(x, y, src.RGBAAt(b.Min.X+ox, b.Min.Y+oy))
		}
	}
	return dst
}

// pad surrounds src with px pixels of bg. A transparent bg leaves the border clear.
func pad(src *image.RGBA, px int, bg color.RGBA) *image.RGBA {
	if px <= 0 {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()+2*px, b.Dy()+2*px))
	if bg.A != 0 {
		draw.Draw(dst, dst.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	}
	draw.Draw(dst, image.Rect(px, px, px+b.Dx(), px+b.Dy()), src, b.Min, draw.Src)
	return dst
}

// clearAntiAliasing drops the light, semi-transparent fringe the writer leaves
// around modules when the background is transparent.
func clearAntiAliasing(src *image.RGBA, fg color.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.RGBAAt(x, y)
			if isFringe(c, fg) {
				continue
			}
			dst.SetRGBA(x, y, c)
		}
	}
	return dst
}

func isFringe(c, fg color.RGBA) bool {
	switch {
	case c.A == 0:
		return false
	case c.A == 255 && c.R == fg.R && c.G == fg.G && c.B == fg.B:
		return false
	case c.A < 255:
		return true
	default:
		return c.R > 200 && c.G > 200 && c.B > 200
	}
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(a.R) + t*(float64(b.R)-float64(a.R))),
		G: uint8(float64(a.G) + t*(float64(b.G)-float64(a.G))),
		B: uint8(float64(a.B) + t*(float64(b.B)-float64(a.B))),
		A: 255,
	}
}

// gradientAt evaluates the 45 degree gradient (bottom-left to top-right) at x,y
// inside a w x h canvas.
func gradientAt(g *Gradient, x, y, w, h int) color.RGBA {
	t := (float64(x)/float64(w) + (1.0 - float64(y)/float64(h))) / 2.0
	t = max(0, min(1, t))
	if t <= 0.5 {
		return lerpColor(g.Start, g.Middle, t*2)
	}
	return lerpColor(g.Middle, g.End, (t-0.5)*2)
}
