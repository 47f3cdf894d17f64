package idcard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoding for photos
	_ "image/png"  // register PNG decoding for photos
	"io"

	"github.com/cristianadrielbraun/qrcard/internal/apperr"
	"github.com/cristianadrielbraun/qrcard/internal/render"
)

// DefaultMaxPhotoBytes is the upload limit for card photos.
const DefaultMaxPhotoBytes = 2 << 20

// DecodePhoto reads a PNG or JPEG photo of at most maxBytes bytes and
// render.MaxImagePixels pixels.
func DecodePhoto(r io.Reader, maxBytes int64) (image.Image, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxPhotoBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidInput, "read photo", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, apperr.New(apperr.CodePhotoTooLarge,
			fmt.Sprintf("photo exceeds the %d byte limit", maxBytes))
	}
	format, err := render.CheckPixels(data)
	if errors.Is(err, render.ErrImageTooLarge) {
		return nil, apperr.Wrap(apperr.CodeInvalidInput, "photo dimensions are too large", err)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidInput, "photo must be a PNG or JPEG image", err)
	}
	if format != "png" && format != "jpeg" {
		return nil, apperr.Invalid("photo must be a PNG or JPEG image, got %s", format)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidInput, "photo must be a PNG or JPEG image", err)
	}
	return img, nil
}
