package idcard

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/cristianadrielbraun/qrcard/internal/render"
)

// Layout is expressed in CSS pixels and rasterized at pixelScale.
const (
	cardWidth  = 360.0
	cardPad    = 12.0
	maxHeight  = 1400.0
	pixelScale = 2.0

	frontQREdge = 80.0
	backQREdge  = 64.0
)

const (
	colorSaffron = "#FF9933"
	colorGreen   = "#138808"
	colorRed     = "#D32F2F"
	colorText    = "#222222"
	colorMuted   = "#777777"
	colorBorder  = "#DDDDDD"
	colorPhoto   = "#EEEEEE"
)

const (
	headerHindi   = "भारत सरकार"
	headerEnglish = "Government of India"
	sloganHindi   = "मेरा आधार, मेरी पहचान"
	sloganEnglish = "My Aadhaar, My Identity"
)

// Renderer draws and exports cards.
type Renderer struct {
	fonts   *Fonts
	ecLevel string
}

// NewRenderer returns a Renderer using fonts and encoding the card QR code at
// ecLevel. An empty level selects M.
func NewRenderer(fonts *Fonts, ecLevel string) *Renderer {
	if ecLevel == "" {
		ecLevel = "M"
	}
	return &Renderer{fonts: fonts, ecLevel: ecLevel}
}

// Preview draws the front side, a cut line and the back side of c. photo may
// be nil, in which case a silhouette placeholder is drawn.
func (r *Renderer) Preview(c Card, photo image.Image) (*image.RGBA, error) {
	c = c.WithDefaults()

	var frontQR, backQR image.Image
	if c.QRVisible() {
		var err error
		if frontQR, err = r.qrImage(c, frontQREdge); err != nil {
			return nil, err
		}
		if backQR, err = r.qrImage(c, backQREdge); err != nil {
			return nil, err
		}
	}

	s := newSheet(r.fonts)
	defer s.faces.close()

	y := s.front(c, frontQR)
	y = s.cutLine(y)
	y = s.back(c, photo, backQR, y)
	return s.crop(y + cardPad), nil
}

func (r *Renderer) qrImage(c Card, edge float64) (image.Image, error) {
	qrc, err := render.Encode(QRText(c), r.ecLevel)
	if err != nil {
		return nil, fmt.Errorf("encode card QR: %w", err)
	}
	opts := render.Defaults()
	opts.ErrorCorrection = r.ecLevel
	opts.PreviewSize = int(edge * pixelScale)
	opts.PaddingPercent = 4
	img, err := render.Image(qrc, opts)
	if err != nil {
		return nil, fmt.Errorf("render card QR: %w", err)
	}
	return img, nil
}

type sheet struct {
	dc    *gg.Context
	faces *faceSet
	hindi bool
}

func newSheet(fonts *Fonts) *sheet {
	dc := gg.NewContext(int(cardWidth*pixelScale), int(maxHeight*pixelScale))
	dc.SetColor(color.White)
	dc.Clear()
	return &sheet{dc: dc, faces: newFaceSet(fonts), hindi: fonts.Hindi != nil}
}

func px(v float64) float64 { return v * pixelScale }

func (s *sheet) face(kind faceKind, size float64) font.Face {
	return s.faces.get(kind, px(size))
}

// text draws str with its top edge at y. ax anchors horizontally: 0 left,
// 0.5 centered, 1 right. It returns the line height.
func (s *sheet) text(str string, face font.Face, hex string, x, y, ax float64) float64 {
	s.dc.SetFontFace(face)
	s.dc.SetHexColor(hex)
	s.dc.DrawStringAnchored(str, px(x), px(y), ax, 1)
	return s.dc.FontHeight() / pixelScale
}

// paragraph word-wraps str into width and returns the block height.
func (s *sheet) paragraph(str string, face font.Face, hex string, x, y, width float64) float64 {
	s.dc.SetFontFace(face)
	lines := s.dc.WordWrap(str, px(width))
	lh := s.dc.FontHeight() / pixelScale * 1.35
	for i, line := range lines {
		s.text(line, face, hex, x, y+float64(i)*lh, 0)
	}
	return float64(len(lines)) * lh
}

func (s *sheet) rule(x1, y, x2 float64, hex string, width float64) {
	s.dc.SetHexColor(hex)
	s.dc.SetLineWidth(px(width))
	s.dc.DrawLine(px(x1), px(y), px(x2), px(y))
	s.dc.Stroke()
}

func (s *sheet) image(img image.Image, x, y float64) {
	s.dc.DrawImage(img, int(px(x)), int(px(y)))
}

func (s *sheet) crop(height float64) *image.RGBA {
	h := int(math.Ceil(px(math.Min(height, maxHeight))))
	src := s.dc.Image()
	out := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx(), h))
	xdraw.Draw(out, out.Bounds(), src, image.Point{}, xdraw.Src)
	return out
}

func (s *sheet) emblem(cx, cy, r float64) {
	s.dc.SetHexColor(colorSaffron)
	s.dc.SetLineWidth(px(1.5))
	s.dc.DrawCircle(px(cx), px(cy), px(r))
	s.dc.Stroke()
	s.dc.SetHexColor(colorRed)
	s.dc.DrawCircle(px(cx), px(cy), px(r/3))
	s.dc.Fill()
}

func (s *sheet) slogan(y float64) float64 {
	if s.hindi {
		return s.text(sloganHindi, s.face(faceHindi, 12), colorRed, cardWidth/2, y, 0.5)
	}
	return s.text(sloganEnglish, s.face(faceBold, 12), colorRed, cardWidth/2, y, 0.5)
}

func (s *sheet) front(c Card, qr image.Image) float64 {
	y := cardPad

	s.emblem(cardPad+14, y+14, 14)
	x := cardPad + 36
	if s.hindi {
		s.text(headerHindi, s.face(faceHindi, 10), colorSaffron, x, y, 0)
	}
	s.text(headerEnglish, s.face(faceRegular, 8), colorGreen, x, y+16, 0)
	s.text("AADHAAR", s.face(faceBold, 14), colorRed, cardWidth-cardPad, y+6, 1)
	y += 36
	s.rule(cardPad, y, cardWidth-cardPad, colorBorder, 1)
	y += 8

	textWidth := cardWidth - 2*cardPad
	if qr != nil {
		textWidth -= frontQREdge + 12
		s.image(qr, cardWidth-cardPad-frontQREdge, y)
	}
	ty := y
	ty += s.text("Address:", s.face(faceBold, 11), colorText, cardPad, ty, 0) + 4
	ty += s.text(strings.ToUpper(orPlaceholder(c.Name, "Your Name")), s.face(faceBold, 9), colorText, cardPad, ty, 0) + 2
	ty += s.paragraph(orPlaceholder(c.Address, "Your full address here..."), s.face(faceRegular, 9), colorText, cardPad, ty, textWidth)
	if s.hindi && c.AddressHindi != "" {
		ty += 2 + s.paragraph(c.AddressHindi, s.face(faceHindi, 9), colorText, cardPad, ty+2, textWidth)
	}
	if qr != nil {
		ty = math.Max(ty, y+frontQREdge)
	}
	y = ty + 8

	s.rule(cardPad, y, cardWidth-cardPad, colorRed, 2)
	y += 6
	y += s.text("Your Aadhaar No.:", s.face(faceRegular, 9), colorMuted, cardWidth/2, y, 0.5) + 2
	y += s.text(orPlaceholder(c.Number, "XXXX XXXX XXXX"), s.face(faceMono, 20), colorText, cardWidth/2, y, 0.5) + 4
	y += s.slogan(y)
	return y
}

func (s *sheet) cutLine(y float64) float64 {
	y += 14
	s.dc.SetHexColor(colorMuted)
	s.dc.SetLineWidth(px(1))
	s.dc.SetDash(px(4), px(3))
	s.dc.DrawLine(0, px(y), px(cardWidth), px(y))
	s.dc.Stroke()
	s.dc.SetDash()

	label := "Cut along this line"
	face := s.face(faceRegular, 8)
	s.dc.SetFontFace(face)
	w, h := s.dc.MeasureString(label)
	s.dc.SetColor(color.White)
	s.dc.DrawRectangle(px(cardWidth/2)-w/2-px(4), px(y)-h/2-px(2), w+px(8), h+px(4))
	s.dc.Fill()
	s.dc.SetHexColor(colorMuted)
	s.dc.DrawStringAnchored(label, px(cardWidth/2), px(y), 0.5, 0.35)
	return y + 14
}

func genderLabel(c Card, hindi bool) string {
	if c.Gender == "" {
		if hindi {
			return "लिंग / GENDER"
		}
		return "GENDER"
	}
	label := strings.ToUpper(c.Gender)
	if h, ok := genderHindi[c.Gender]; ok && hindi {
		return h + " / " + label
	}
	return label
}

func (s *sheet) back(c Card, photo image.Image, qr image.Image, y float64) float64 {
	f := float64(c.FontSize)
	photoW := (cardWidth - 2*cardPad) / 4
	photoH := photoW * 4 / 3
	s.photo(photo, cardPad, y, photoW, photoH)

	x := cardPad + photoW + 12
	ty := y
	if s.hindi {
		ty += s.text(orPlaceholder(c.NameHindi, "आपका नाम"), s.face(faceHindi, f), colorText, x, ty, 0) + 2
	}
	ty += s.text(strings.ToUpper(orPlaceholder(c.Name, "Your Name")), s.face(faceBold, f), colorText, x, ty, 0) + 4
	dob := "DOB: "
	if s.hindi {
		dob = "जन्म तिथि / DOB: "
	}
	ty += s.text(dob+orPlaceholder(c.FormattedDOB(), "DD/MM/YYYY"), s.face(faceRegular, f), colorText, x, ty, 0) + 2
	ty += s.text(genderLabel(c, s.hindi), s.face(faceRegular, f), colorText, x, ty, 0) + 2
	if c.VID != "" {
		ty += s.text("VID: "+c.VID, s.face(faceRegular, f*0.9), colorMuted, x, ty, 0) + 2
	}
	y = math.Max(ty, y+photoH) + 10

	y += s.text(orPlaceholder(c.Number, "XXXX XXXX XXXX"), s.face(faceMono, 20), colorText, cardWidth/2, y, 0.5) + 4
	s.rule(cardPad, y, cardWidth-cardPad, colorRed, 2)
	y += 6
	y += s.slogan(y) + 8
	s.rule(cardPad, y, cardWidth-cardPad, colorBorder, 1)
	y += 8

	textWidth := cardWidth - 2*cardPad
	if qr != nil {
		textWidth = textWidth * 8 / 12
		s.image(qr, cardWidth-cardPad-backQREdge, y)
	}
	ty = y
	ty += s.text("Address:", s.face(faceBold, 11), colorText, cardPad, ty, 0) + 4
	ty += s.paragraph(orPlaceholder(c.Address, "Your full address here..."), s.face(faceRegular, f*0.9), colorText, cardPad, ty, textWidth)
	if s.hindi && c.AddressHindi != "" {
		ty += 2 + s.paragraph(c.AddressHindi, s.face(faceHindi, f*0.9), colorText, cardPad, ty+2, textWidth)
	}
	if qr != nil {
		ty = math.Max(ty, y+backQREdge)
	}
	return ty
}

func (s *sheet) photo(img image.Image, x, y, w, h float64) {
	s.dc.SetHexColor(colorPhoto)
	s.dc.DrawRectangle(px(x), px(y), px(w), px(h))
	s.dc.Fill()

	if img == nil {
		s.dc.SetHexColor("#BBBBBB")
		s.dc.DrawCircle(px(x+w/2), px(y+h*0.38), px(w*0.2))
		s.dc.Fill()
		s.dc.DrawEllipse(px(x+w/2), px(y+h*0.88), px(w*0.36), px(h*0.22))
		s.dc.Fill()
		s.dc.SetHexColor(colorBorder)
		s.dc.SetLineWidth(px(1))
		s.dc.DrawRectangle(px(x), px(y), px(w), px(h))
		s.dc.Stroke()
		return
	}

	dst := image.NewRGBA(image.Rect(0, 0, int(px(w)), int(px(h))))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, coverRect(img.Bounds(), dst.Bounds()), xdraw.Src, nil)
	s.image(dst, x, y)
}

// coverRect returns the centered part of src with the aspect ratio of dst.
func coverRect(src, dst image.Rectangle) image.Rectangle {
	sw, sh := float64(src.Dx()), float64(src.Dy())
	want := float64(dst.Dx()) / float64(dst.Dy())
	if sw/sh > want {
		cw := int(sh * want)
		off := (src.Dx() - cw) / 2
		return image.Rect(src.Min.X+off, src.Min.Y, src.Min.X+off+cw, src.Max.Y)
	}
	ch := int(sw / want)
	off := (src.Dy() - ch) / 2
	return image.Rect(src.Min.X, src.Min.Y+off, src.Max.X, src.Min.Y+off+ch)
}
