package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOfAndStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   Code
		status int
	}{
		{"invalid", Invalid("bad %s", "input"), CodeInvalidInput, http.StatusBadRequest},
		{"wrapped", fmt.Errorf("render: %w", New(CodeRenderFailed, "boom")), CodeRenderFailed, http.StatusInternalServerError},
		{"validation", New(CodeValidationFailed, "nope"), CodeValidationFailed, http.StatusUnprocessableEntity},
		{"photo", New(CodePhotoTooLarge, "big"), CodePhotoTooLarge, http.StatusRequestEntityTooLarge},
		{"refine off", New(CodeRefineNotConfigured, "off"), CodeRefineNotConfigured, http.StatusServiceUnavailable},
		{"refine timeout", New(CodeRefineTimeout, "slow"), CodeRefineTimeout, http.StatusGatewayTimeout},
		{"refine failed", New(CodeRefineFailed, "bad"), CodeRefineFailed, http.StatusBadGateway},
		{"foreign", errors.New("plain"), CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, CodeOf(tt.err))
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestWrapAndIs(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeExportFailed, "export failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, New(CodeExportFailed, ""))
	assert.NotErrorIs(t, err, New(CodeRenderFailed, ""))
	assert.Equal(t, "disk full", err.Details)
	assert.Contains(t, err.Error(), "EXPORT_FAILED")

	assert.Equal(t, CodeInternal, From(cause).Code)
	assert.Same(t, err, From(err))
}
