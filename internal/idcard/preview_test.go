package idcard

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrcard/internal/apperr"
	"github.com/cristianadrielbraun/qrcard/internal/render"
)

var (
	testFontsOnce sync.Once
	testFonts     *Fonts
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	testFontsOnce.Do(func() {
		var err error
		testFonts, err = LoadFonts("")
		require.NoError(t, err)
	})
	return NewRenderer(testFonts, "M")
}

func TestLoadFontsMissingHindi(t *testing.T) {
	_, err := LoadFonts("/nonexistent/font.ttf")
	assert.Error(t, err)
}

func TestPreviewDimensions(t *testing.T) {
	r := newTestRenderer(t)
	img, err := r.Preview(validCard(), nil)
	require.NoError(t, err)
	assert.Equal(t, int(cardWidth*pixelScale), img.Bounds().Dx())
	assert.Greater(t, img.Bounds().Dy(), int(300*pixelScale))
	assert.Less(t, img.Bounds().Dy(), int(maxHeight*pixelScale))
}

func TestPreviewEmptyCardUsesPlaceholders(t *testing.T) {
	r := newTestRenderer(t)
	img, err := r.Preview(Card{}, nil)
	require.NoError(t, err)
	assert.NotZero(t, img.Bounds().Dy())
}

func TestPreviewHidesQRCode(t *testing.T) {
	r := newTestRenderer(t)
	shown, err := r.Preview(validCard(), nil)
	require.NoError(t, err)

	c := validCard()
	hidden := false
	c.ShowQRCode = &hidden
	without, err := r.Preview(c, nil)
	require.NoError(t, err)

	assert.NotEqual(t, shown.Pix, without.Pix)
}

func TestPreviewDrawsPhoto(t *testing.T) {
	r := newTestRenderer(t)
	photo := image.NewRGBA(image.Rect(0, 0, 60, 80))
	for i := range photo.Pix {
		photo.Pix[i] = 0x40
	}
	with, err := r.Preview(validCard(), photo)
	require.NoError(t, err)
	without, err := r.Preview(validCard(), nil)
	require.NoError(t, err)
	assert.NotEqual(t, with.Pix, without.Pix)
}

func TestCoverRect(t *testing.T) {
	wide := coverRect(image.Rect(0, 0, 400, 100), image.Rect(0, 0, 100, 100))
	assert.Equal(t, image.Rect(150, 0, 250, 100), wide)

	tall := coverRect(image.Rect(0, 0, 100, 400), image.Rect(0, 0, 100, 100))
	assert.Equal(t, image.Rect(0, 150, 100, 250), tall)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodePhoto(t *testing.T) {
	img, err := DecodePhoto(bytes.NewReader(pngBytes(t, 30, 40)), DefaultMaxPhotoBytes)
	require.NoError(t, err)
	assert.Equal(t, 30, img.Bounds().Dx())

	_, err = DecodePhoto(bytes.NewReader(pngBytes(t, 30, 40)), 10)
	assert.Equal(t, apperr.CodePhotoTooLarge, apperr.CodeOf(err))

	_, err = DecodePhoto(strings.NewReader("not an image"), DefaultMaxPhotoBytes)
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))
}

func TestDecodePhotoRejectsHugeDimensions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4097, 4097))))
	require.Less(t, buf.Len(), DefaultMaxPhotoBytes)

	_, err := DecodePhoto(&buf, DefaultMaxPhotoBytes)
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))
	assert.ErrorIs(t, err, render.ErrImageTooLarge)
}
