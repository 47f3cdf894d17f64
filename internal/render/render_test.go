package render

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestRender_EmptyContent(t *testing.T) {
	_, err := Render("", Defaults())
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = Encode("", "Q")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestRender_PNGPreviewSize(t *testing.T) {
	opts := Defaults()
	opts.PreviewSize = 300

	res, err := Render("https://example.com", opts)
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.ContentType)
	assert.Equal(t, FormatPNG, res.Format)

	img := decodePNG(t, res.Data)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
	assert.Equal(t, 300, res.Width)
}

func TestRender_PreviewSizeIsCapped(t *testing.T) {
	opts := Defaults()
	opts.PreviewSize = 1 << 30

	res, err := Render("a", opts)
	require.NoError(t, err)
	assert.Equal(t, MaxPreviewSize, res.Width)

	opts.Format = FormatSVG
	res, err = Render("a", opts)
	require.NoError(t, err)
	assert.Less(t, res.Width, 2*MaxPreviewSize)
}

func TestRender_PaddingUsesBackground(t *testing.T) {
	opts := Defaults()
	opts.Background = color.RGBA{10, 200, 30, 255}

	res, err := Render("WIFI:T:WPA;S:Home;P:secret;;", opts)
	require.NoError(t, err)

	img := decodePNG(t, res.Data)
	r, g, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(10), r>>8)
	assert.Equal(t, uint32(200), g>>8)
	assert.Equal(t, uint32(30), b>>8)
	assert.Equal(t, uint32(255), a>>8)
}

func TestRender_TransparentBackground(t *testing.T) {
	opts := Defaults()
	opts.Background = ParseColor("transparent", white)

	res, err := Render("tel:919876543210", opts)
	require.NoError(t, err)

	img := decodePNG(t, res.Data)
	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a)
}

func TestRender_JPEG(t *testing.T) {
	opts := Defaults()
	opts.Format = FormatJPG
	opts.Background = transparent
	opts.PreviewSize = 200

	res, err := Render("mailto:a@b.com", opts)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", res.ContentType)

	img, err := jpeg.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestRender_SVG(t *testing.T) {
	opts := Defaults()
	opts.Format = FormatSVG

	res, err := Render("hello", opts)
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", res.ContentType)

	svg := string(res.Data)
	assert.True(t, strings.HasPrefix(svg, `<?xml`))
	assert.Contains(t, svg, `<svg xmlns="http://www.w3.org/2000/svg"`)
	assert.Contains(t, svg, `fill="rgb(255,255,255)"`)
	assert.Contains(t, svg, "<rect x=")
	assert.NotContains(t, svg, "linearGradient")
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
}

func TestRender_SVGGradientCircleFrame(t *testing.T) {
	opts := FromParams(params(map[string]string{
		"format":        "svg",
		"colorMode":     "gradient",
		"gradientStart": "#112233",
		"qrShape":       "circle",
		"cornerStyle":   "square",
		"borderPattern": "simple",
		"bg":            "transparent",
	}))

	res, err := Render("hello", opts)
	require.NoError(t, err)

	svg := string(res.Data)
	assert.Contains(t, svg, `<linearGradient id="qrGradient"`)
	assert.Contains(t, svg, `stop-color="rgb(17,34,51)"`)
	assert.Contains(t, svg, "<circle ")
	assert.Contains(t, svg, `fill="url(#qrGradient)"`)
	assert.NotContains(t, svg, `<rect width=`, "transparent background has no backdrop")
}

func TestRender_FramesKeepPreviewSize(t *testing.T) {
	patterns := []string{FrameSimple, FrameDashed, FrameDotted, FrameDouble, FrameDiagonal, FrameGrid, FrameIrregular}
	for _, p := range patterns {
		for _, rounded := range []bool{false, true} {
			name := p
			if rounded {
				name = "rounded-" + p
			}
			t.Run(name, func(t *testing.T) {
				opts := Defaults()
				opts.PreviewSize = 256
				opts.Frame = Frame{Pattern: p, Rounded: rounded}

				res, err := Render("frame test", opts)
				require.NoError(t, err)
				img := decodePNG(t, res.Data)
				assert.Equal(t, 256, img.Bounds().Dx())
			})
		}
	}
}

func TestRender_Shapes(t *testing.T) {
	for _, s := range []Shape{ShapeRectangle, ShapeCircle, ShapeLiquid, ShapeChain, ShapeHStripe, ShapeVStripe} {
		t.Run(string(s), func(t *testing.T) {
			opts := Defaults()
			opts.Shape = s
			opts.ModuleSize = 4
			res, err := Render("shape", opts)
			require.NoError(t, err)
			assert.NotEmpty(t, res.Data)
		})
	}
}

func TestRender_Gradient(t *testing.T) {
	opts := Defaults()
	opts.Gradient = &Gradient{Start: black, Middle: color.RGBA{0, 0, 255, 255}, End: color.RGBA{255, 0, 0, 255}}
	opts.Frame = Frame{Pattern: FrameSimple}

	res, err := Render("gradient", opts)
	require.NoError(t, err)
	decodePNG(t, res.Data)
}

func TestRender_WithLogo(t *testing.T) {
	logo := image.NewRGBA(image.Rect(0, 0, 400, 400))
	for y := 0; y < 400; y++ {
		for x := 0; x < 400; x++ {
			logo.SetRGBA(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	opts := Defaults()
	opts.ErrorCorrection = "H"
	opts.Logo = logo

	res, err := Render("https://example.com/with/logo", opts)
	require.NoError(t, err)
	decodePNG(t, res.Data)
}

func matrix(t *testing.T, content, level string) [][]bool {
	t.Helper()
	qrc, err := Encode(content, level)
	require.NoError(t, err)
	mat, err := captureMatrix(qrc)
	require.NoError(t, err)
	return mat
}

func TestCaptureMatrix(t *testing.T) {
	mat := matrix(t, "hi", "L")
	require.GreaterOrEqual(t, len(mat), 21)
	for _, row := range mat {
		assert.Len(t, row, len(mat))
	}
	// finder pattern corner is always dark
	assert.True(t, mat[0][0])

	assert.Equal(t, mat, matrix(t, "hi", "L"))
}
