package render

import (
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/yeqown/go-qrcode/v2"
)

// Format is the output image encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
	FormatSVG Format = "svg"
)

// ParseFormat maps user input to a Format, defaulting to PNG.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jpg", "jpeg":
		return FormatJPG
	case "svg":
		return FormatSVG
	default:
		return FormatPNG
	}
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatJPG:
		return "image/jpeg"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "image/png"
	}
}

// Size selects the output resolution class.
type Size string

const (
	SizePreview  Size = "preview"
	SizeDownload Size = "download"
)

// Shape is the module drawing style.
type Shape string

const (
	ShapeRectangle Shape = "rectangle"
	ShapeCircle    Shape = "circle"
	ShapeLiquid    Shape = "liquid"
	ShapeChain     Shape = "chain"
	ShapeHStripe   Shape = "hstripe"
	ShapeVStripe   Shape = "vstripe"
)

// Frame patterns drawn around the padded code.
const (
	FrameNone      = "none"
	FrameSimple    = "simple"
	FrameDashed    = "dashed"
	FrameDotted    = "dotted"
	FrameDouble    = "double"
	FrameDiagonal  = "diagonal"
	FrameGrid      = "grid"
	FrameIrregular = "irregular"
)

// Frame describes the decorative border.
type Frame struct {
	Pattern string
	Rounded bool
}

// Enabled reports whether a frame is drawn at all.
func (f Frame) Enabled() bool { return f.Pattern != "" && f.Pattern != FrameNone }

// Gradient is a 45 degree three-stop foreground gradient.
type Gradient struct {
	Start, Middle, End color.RGBA
}

// Options configures Render. Zero values select the defaults used by the web UI.
type Options struct {
	Format          Format
	Size            Size
	PreviewSize     int
	ErrorCorrection string
	Foreground      color.RGBA
	Background      color.RGBA
	Gradient        *Gradient
	Shape           Shape
	Frame           Frame
	FrameColor      *color.RGBA
	Logo            image.Image
	// ModuleSize overrides the pixel width of one module; 0 picks it from Size.
	ModuleSize int
	// PaddingPercent and FrameWidthPercent are relative to the bare code size.
	PaddingPercent    int
	FrameWidthPercent int
}

var (
	black       = color.RGBA{0, 0, 0, 255}
	white       = color.RGBA{255, 255, 255, 255}
	transparent = color.RGBA{0, 0, 0, 0}
)

// Defaults returns the options used when a request specifies nothing.
func Defaults() Options {
	return Options{
		Format:          FormatPNG,
		Size:            SizePreview,
		ErrorCorrection: "Q",
		Foreground:      black,
		Background:      white,
		Shape:           ShapeRectangle,
		Frame:           Frame{Pattern: FrameNone},
		PaddingPercent:  7,
	}
}

// previewEdge is PreviewSize capped at MaxPreviewSize, or 0 when unset.
func (o Options) previewEdge() int {
	if o.PreviewSize <= 0 {
		return 0
	}
	return min(o.PreviewSize, MaxPreviewSize)
}

// Getter reads a named parameter; it returns "" when the parameter is absent.
type Getter func(key string) string

// FromParams builds Options from request-style parameters (query string, CLI flags).
// Unknown or malformed values fall back to defaults.
func FromParams(get Getter) Options {
	o := Defaults()
	if v := get("format"); v != "" {
		o.Format = ParseFormat(v)
	}
	if get("size") == string(SizeDownload) {
		o.Size = SizeDownload
	}
	if ps, err := strconv.Atoi(get("previewSize")); err == nil && ps > 0 {
		o.PreviewSize = min(ps, MaxPreviewSize)
	}
	if ec := strings.ToUpper(get("ec")); ec != "" {
		if _, ok := ecLevels[ec]; ok {
			o.ErrorCorrection = ec
		}
	}

	o.Background = ParseColor(get("bg"), white)
	if get("colorMode") == "gradient" {
		o.Gradient = &Gradient{
			Start:  ParseColor(get("gradientStart"), black),
			Middle: ParseColor(get("gradientMiddle"), color.RGBA{128, 128, 128, 255}),
			End:    ParseColor(get("gradientEnd"), color.RGBA{255, 0, 0, 255}),
		}
	} else {
		o.Foreground = ParseColor(get("fg"), black)
	}

	switch s := Shape(get("qrShape")); s {
	case ShapeCircle, ShapeLiquid, ShapeChain, ShapeHStripe, ShapeVStripe:
		o.Shape = s
	}

	pattern := get("borderPattern")
	if pattern == "" {
		pattern = FrameSimple
	}
	switch get("cornerStyle") {
	case "", "none":
		o.Frame = Frame{Pattern: FrameNone}
	case "rounded":
		o.Frame = Frame{Pattern: pattern, Rounded: true}
	default:
		o.Frame = Frame{Pattern: pattern}
	}
	if bc := get("borderColor"); bc != "" {
		c := ParseColor(bc, black)
		o.FrameColor = &c
	}
	return o
}

// ParseColor parses "#rrggbb", "rrggbb" or "transparent"; anything else yields def.
func ParseColor(s string, def color.RGBA) color.RGBA {
	if s == "" {
		return def
	}
	if strings.EqualFold(s, "transparent") {
		return transparent
	}
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return def
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return def
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
}

// HexColor formats c as "#rrggbb".
func HexColor(c color.RGBA) string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range [3]uint8{c.R, c.G, c.B} {
		b[1+i*2] = digits[v>>4]
		b[2+i*2] = digits[v&0x0f]
	}
	return string(b)
}

var ecLevels = map[string]qrcode.EncodeOption{
	"L": qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow),
	"M": qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium),
	"Q": qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart),
	"H": qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest),
}

func ecOption(level string) qrcode.EncodeOption {
	if opt, ok := ecLevels[strings.ToUpper(level)]; ok {
		return opt
	}
	return ecLevels["Q"]
}

func (o Options) frameColor() color.RGBA {
	if o.FrameColor != nil {
		return *o.FrameColor
	}
	if o.Gradient != nil {
		return o.Gradient.Start
	}
	return o.Foreground
}

func (o Options) frameWidthPercent() int {
	if o.FrameWidthPercent > 0 {
		return o.FrameWidthPercent
	}
	// rounded frames lose part of their band to the inner carve
	if o.Frame.Rounded {
		return 6
	}
	return 4
}

func (o Options) moduleSize() int {
	if o.ModuleSize > 0 {
		return o.ModuleSize
	}
	if o.Size == SizeDownload {
		return 120
	}
	return 16
}
