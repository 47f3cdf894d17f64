// Package apperr provides coded application errors shared by the HTTP and CLI surfaces.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of failure.
type Code string

const (
	CodeInvalidInput        Code = "INVALID_INPUT"
	CodeUnsupportedType     Code = "UNSUPPORTED_TYPE"
	CodeRenderFailed        Code = "RENDER_FAILED"
	CodeValidationFailed    Code = "VALIDATION_FAILED"
	CodePhotoTooLarge       Code = "PHOTO_TOO_LARGE"
	CodeRefineNotConfigured Code = "REFINE_NOT_CONFIGURED"
	CodeRefineTimeout       Code = "REFINE_TIMEOUT"
	CodeRefineFailed        Code = "REFINE_FAILED"
	CodeExportFailed        Code = "EXPORT_FAILED"
	CodeInternal            Code = "INTERNAL"
)

// Error is a structured application error.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// New returns an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap returns an Error that wraps err. Details default to err's text.
func Wrap(code Code, message string, err error) *Error {
	e := &Error{Code: code, Message: message, Err: err}
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

// Invalid is shorthand for an INVALID_INPUT error.
func Invalid(format string, args ...any) *Error {
	return New(CodeInvalidInput, fmt.Sprintf(format, args...))
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// From returns err as an *Error, wrapping foreign errors as INTERNAL.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(CodeInternal, "internal error", err)
}

// HTTPStatus maps err to an HTTP status code.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeInvalidInput, CodeUnsupportedType:
		return http.StatusBadRequest
	case CodeValidationFailed:
		return http.StatusUnprocessableEntity
	case CodePhotoTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeRefineNotConfigured:
		return http.StatusServiceUnavailable
	case CodeRefineTimeout:
		return http.StatusGatewayTimeout
	case CodeRefineFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
