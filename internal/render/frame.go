package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

type frameCanvas struct {
	img      *image.RGBA
	w, h     int
	width    int
	bg       color.RGBA
	color    color.RGBA
	gradient *Gradient
}

func (f *frameCanvas) ink(x, y int) {
	if f.gradient != nil {
		f.img.SetRGBA(x, y, gradientAt(f.gradient, x, y, f.w, f.h))
		return
	}
	f.img.SetRGBA(x, y, f.color)
}

func (f *frameCanvas) inBand(x, y int) bool {
	return x < f.width || x >= f.w-f.width || y < f.width || y >= f.h-f.width
}

func (f *frameCanvas) inCorner(x, y int) bool {
	c := f.width
	return (x < c || x >= f.w-c) && (y < c || y >= f.h-c)
}

// drawFrame surrounds src with a width-pixel decorative border.
func drawFrame(src *image.RGBA, frame Frame, width int, bg, fg color.RGBA, g *Gradient) *image.RGBA {
	if width <= 0 {
		return src
	}
	b := src.Bounds()
	f := &frameCanvas{
		img:      image.NewRGBA(image.Rect(0, 0, b.Dx()+2*width, b.Dy()+2*width)),
		width:    width,
		bg:       bg,
		color:    fg,
		gradient: g,
	}
	f.w, f.h = f.img.Bounds().Dx(), f.img.Bounds().Dy()
	if bg.A != 0 {
		draw.Draw(f.img, f.img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	}

	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			if !f.inBand(x, y) {
				continue
			}
			switch frame.Pattern {
			case FrameDashed:
				f.dashed(x, y, false)
			case FrameIrregular:
				f.dashed(x, y, true)
			case FrameDotted:
				f.perforated(x, y)
			case FrameDouble:
				f.double(x, y)
			case FrameDiagonal:
				f.diagonal(x, y)
			case FrameGrid:
				f.grid(x, y)
			default:
				f.ink(x, y)
			}
		}
	}

	draw.Draw(f.img, image.Rect(width, width, width+b.Dx(), width+b.Dy()), src, b.Min, draw.Src)
	if frame.Rounded {
		f.roundCorners()
	}
	return f.img
}

// dashed draws solid corners and dashes along the edges. Irregular dashes vary
// their length with position.
func (f *frameCanvas) dashed(x, y int, irregular bool) {
	if f.inCorner(x, y) {
		f.ink(x, y)
		return
	}
	pos := x
	if x < f.width || x >= f.w-f.width {
		pos = y
	}
	dash := max(f.width*3, 6)
	gap := dash / 2
	if irregular {
		hash := (pos * 13) % 17
		dash = 4 + hash%8
		gap = 2 + hash%4
	}
	if (pos-f.width)%(dash+gap) < dash {
		f.ink(x, y)
	}
}

// perforated draws a solid band with circular holes, like a postage stamp.
func (f *frameCanvas) perforated(x, y int) {
	f.ink(x, y)
	spacing := max(f.width, 6)
	r := max(f.width/3, 2)

	var cx, cy, along int
	switch {
	case y < f.width || y >= f.h-f.width:
		along = x
		cx = (x/spacing)*spacing + r
		cy = f.width / 2
		if y >= f.h-f.width {
			cy = f.h - f.width/2
		}
	default:
		along = y
		cy = (y/spacing)*spacing + r
		cx = f.width / 2
		if x >= f.w-f.width {
			cx = f.w - f.width/2
		}
	}
	if along%spacing >= r*2 {
		return
	}
	dx, dy := x-cx, y-cy
	if dx*dx+dy*dy <= r*r {
		f.img.SetRGBA(x, y, f.bg)
	}
}

// double draws an outer stroke, a gap and an inner stroke.
func (f *frameCanvas) double(x, y int) {
	outer := int(math.Max(2, math.Round(float64(f.width)*0.4)))
	gap := int(math.Max(1, math.Round(float64(f.width)*0.2)))
	inner := max(f.width-outer-gap, 1)

	edge := min(x, y, f.w-1-x, f.h-1-y)
	switch {
	case edge < outer:
		f.ink(x, y)
	case edge < outer+gap:
		f.img.SetRGBA(x, y, f.bg)
	case edge < outer+gap+inner:
		f.ink(x, y)
	}
}

func (f *frameCanvas) diagonal(x, y int) {
	spacing := max(f.width/2, 2)
	thickness := max(f.width/5, 2)
	if thickness >= spacing {
		thickness = max(spacing-1, 1)
	}
	if (x+y)%spacing < thickness {
		f.ink(x, y)
	}
}

func (f *frameCanvas) grid(x, y int) {
	cell := max(f.width/3, 2)
	if (x/cell+y/cell)%2 == 0 {
		f.ink(x, y)
	}
}

// roundCorners clears pixels outside a rounded outer rectangle and carves a
// rounded strip from the inner side of the band, leaving the code untouched.
func (f *frameCanvas) roundCorners() {
	innerR := int(math.Max(2, math.Round(float64(f.width)*0.55)))
	outerR := innerR + f.width
	cut := int(math.Max(2, math.Ceil(float64(f.width)*0.33)))

	carve := roundRect{
		left:   max(f.width-cut, 0),
		top:    max(f.width-cut, 0),
		right:  min(f.w-1-f.width+cut, f.w-1),
		bottom: min(f.h-1-f.width+cut, f.h-1),
		r:      innerR + cut,
	}
	outer := roundRect{left: 0, top: 0, right: f.w - 1, bottom: f.h - 1, r: outerR}
	innerFill := f.bg
	if f.bg.A == 0 {
		innerFill = transparent
	}

	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			if !f.inBand(x, y) {
				continue
			}
			if !outer.contains(x, y) {
				f.img.SetRGBA(x, y, transparent)
			} else if carve.contains(x, y) {
				f.img.SetRGBA(x, y, innerFill)
			}
		}
	}
}

type roundRect struct {
	left, top, right, bottom, r int
}

func (rr roundRect) contains(x, y int) bool {
	if rr.left > rr.right || rr.top > rr.bottom {
		return false
	}
	if rr.r <= 0 {
		return x >= rr.left && x <= rr.right && y >= rr.top && y <= rr.bottom
	}
	if x >= rr.left+rr.r && x <= rr.right-rr.r && y >= rr.top && y <= rr.bottom {
		return true
	}
	if y >= rr.top+rr.r && y <= rr.bottom-rr.r && x >= rr.left && x <= rr.right {
		return true
	}
	for _, c := range [4][2]int{
		{rr.left + rr.r, rr.top + rr.r},
		{rr.right - rr.r, rr.top + rr.r},
		{rr.left + rr.r, rr.bottom - rr.r},
		{rr.right - rr.r, rr.bottom - rr.r},
	} {
		dx, dy := x-c[0], y-c[1]
		if dx*dx+dy*dy <= rr.r*rr.r {
			return true
		}
	}
	return false
}
