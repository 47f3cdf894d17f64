package idcard

import (
	"bytes"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrcard/internal/apperr"
)

func TestParseExportFormat(t *testing.T) {
	tests := map[string]ExportFormat{
		"":     ExportPDF,
		"PDF":  ExportPDF,
		"png":  ExportPNG,
		"jpg":  ExportJPEG,
		"jpeg": ExportJPEG,
	}
	for in, want := range tests {
		got, err := ParseExportFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseExportFormat("gif")
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))
}

func TestExportPDF(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Export(validCard(), nil, ExportPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out.Data, []byte("%PDF-")))
	assert.Equal(t, "application/pdf", out.ContentType)
	assert.Equal(t, "Asha_Verma_card.pdf", out.FileName)
}

func TestExportPNG(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Export(validCard(), nil, ExportPNG)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, int(cardWidth*pixelScale), img.Bounds().Dx())
	assert.Equal(t, "Asha_Verma_card.png", out.FileName)
}

func TestExportJPEG(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Export(Card{}, nil, ExportJPEG)
	require.NoError(t, err)
	_, err = jpeg.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", out.ContentType)
	assert.Equal(t, "adhar_card.jpg", out.FileName)
}
