// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// NewValidation wraps multiple field errors.
func NewValidation(fields map[string]string) *APIError {
	return &APIError{Detail: "Error de validacion", Fields: fields}
}

// ── Business errors ──────────────────────────────────────────────────────────
// Services return *BusinessError for every failure that must reach the client
// with a specific HTTP status. Handlers translate them via StatusOf / respond.

// BusinessError is a client-facing failure with an associated HTTP status.
type BusinessError struct {
	Status int
	Detail string
	Fields map[string]string
}

func (e *BusinessError) Error() string { return e.Detail }

// Validation reports malformed or out-of-range input. 400.
func Validation(format string, args ...interface{}) *BusinessError {
	return &BusinessError{Status: http.StatusBadRequest, Detail: fmt.Sprintf(format, args...)}
}

// ValidationFields reports field-level validation failures. 400.
func ValidationFields(fields map[string]string) *BusinessError {
	return &BusinessError{Status: http.StatusBadRequest, Detail: "Error de validacion", Fields: fields}
}

// InsufficientStock reports a reservation/consumption that exceeds availability.
// Always discloses the quantity still available. 400.
func InsufficientStock(producto string, disponible int) *BusinessError {
	return &BusinessError{
		Status: http.StatusBadRequest,
		Detail: fmt.Sprintf("Sin stock disponible para %s. Disponible: %d", producto, disponible),
	}
}

// InvalidTransition reports a state machine violation with current-state context. 400.
func InvalidTransition(entidad, actual, intentada string) *BusinessError {
	return &BusinessError{
		Status: http.StatusBadRequest,
		Detail: fmt.Sprintf("Transicion invalida de %s: estado actual '%s', operacion '%s'", entidad, actual, intentada),
	}
}

// Conflict reports a deletion or mutation blocked by a business constraint. 409.
func Conflict(format string, args ...interface{}) *BusinessError {
	return &BusinessError{Status: http.StatusConflict, Detail: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing entity. 404.
func NotFound(format string, args ...interface{}) *BusinessError {
	return &BusinessError{Status: http.StatusNotFound, Detail: fmt.Sprintf(format, args...)}
}

// StatusOf extracts the HTTP status for err. Unknown errors map to 500 so that
// internals are never disclosed with a misleading 4xx.
func StatusOf(err error) int {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Status
	}
	return http.StatusInternalServerError
}

// Envelope converts err into the response body for its status.
func Envelope(err error) *APIError {
	var be *BusinessError
	if errors.As(err, &be) {
		return &APIError{Detail: be.Detail, Fields: be.Fields}
	}
	return New("Error interno del servidor")
}
