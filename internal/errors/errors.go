package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into one of the outcomes the API can report.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindInternal     Kind = "internal"
)

// AppError is a domain error carrying a kind, a stable code and a short message.
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *AppError) Unwrap() error { return e.Err }

// New creates an AppError.
func New(kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

// Wrap attaches a cause to a new AppError. The kind and code are taken from
// base, so errors.Is(result, base) holds.
func Wrap(base *AppError, err error) error {
	return &wrapped{base: base, err: err}
}

type wrapped struct {
	base *AppError
	err  error
}

func (w *wrapped) Error() string   { return fmt.Sprintf("%s: %v", w.base.Message, w.err) }
func (w *wrapped) Unwrap() []error { return []error{w.base, w.err} }

// Validation returns a 400-class error.
func Validation(message string) *AppError {
	return New(KindValidation, "VALIDATION_ERROR", message)
}

// NotFound returns a 404-class error.
func NotFound(code, message string) *AppError {
	return New(KindNotFound, code, message)
}

// Conflict returns a 409-class error.
func Conflict(code, message string) *AppError {
	return New(KindConflict, code, message)
}

// Internal wraps an unexpected failure. The underlying message is kept so it
// reaches the response body.
func Internal(err error) *AppError {
	msg := "internal server error"
	if err != nil {
		msg = err.Error()
	}
	return &AppError{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: msg, Err: err}
}

// KindOf reports the kind of err, KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

var statusByKind = map[Kind]int{
	KindValidation:   http.StatusBadRequest,
	KindConflict:     http.StatusConflict,
	KindUnauthorized: http.StatusUnauthorized,
	KindForbidden:    http.StatusForbidden,
	KindNotFound:     http.StatusNotFound,
	KindInternal:     http.StatusInternalServerError,
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var ae *AppError
	if !errors.As(err, &ae) {
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
	}
	status, ok := statusByKind[ae.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	return NewHTTPError(status, ae.Message, ae.Code)
}
