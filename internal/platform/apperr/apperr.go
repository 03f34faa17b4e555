// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error type every talento service returns.

An [AppError] pairs a machine-readable code with a message safe to show staff,
and the code alone decides the HTTP status. Storage failures are translated by
dberr; services build AppErrors directly for validation and business rules.

Callers branch on codes with [IsCode], never on message text. The Cause of an
AppError is logged server-side and never serialized.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodePayloadTooLarge    = "PAYLOAD_TOO_LARGE"
	CodeUnprocessable      = "UNPROCESSABLE"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

var statusByCode = map[string]int{
	CodeValidation:         http.StatusBadRequest,
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeNotFound:           http.StatusNotFound,
	CodeConflict:           http.StatusConflict,
	CodePayloadTooLarge:    http.StatusRequestEntityTooLarge,
	CodeUnprocessable:      http.StatusUnprocessableEntity,
	CodeRateLimited:        http.StatusTooManyRequests,
	CodeInternal:           http.StatusInternalServerError,
	CodeServiceUnavailable: http.StatusServiceUnavailable,
}

// AppError is the canonical error of the API.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError is one failed field of a VALIDATION_ERROR.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New builds an AppError for code. Unknown codes map to 500.
func New(code, message string) *AppError {
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause returns a copy of e carrying cause for the server log.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// ValidationError is a 400 with optional per-field details.
func ValidationError(message string, details ...FieldError) *AppError {
	err := New(CodeValidation, message)
	err.Details = details
	return err
}

func Unauthorized(message string) *AppError { return New(CodeUnauthorized, message) }

func Forbidden(message string) *AppError { return New(CodeForbidden, message) }

// NotFound names the missing resource: NotFound("Party") reads "Party not found".
func NotFound(resource string) *AppError { return New(CodeNotFound, resource+" not found") }

// Conflict reports a duplicate that the caller cannot resolve by retrying as is.
func Conflict(message string) *AppError { return New(CodeConflict, message) }

// PayloadTooLarge reports a request body over limit bytes.
func PayloadTooLarge(limit int64) *AppError {
	return New(CodePayloadTooLarge, fmt.Sprintf("Request body exceeds %d bytes", limit))
}

// Unprocessable reports input that is well formed but breaks a business rule,
// such as a percentage budget above 100.
func Unprocessable(message string) *AppError { return New(CodeUnprocessable, message) }

func RateLimited(retryAfterSeconds int) *AppError {
	return New(CodeRateLimited, fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	return New(CodeInternal, "An unexpected error occurred").WithCause(cause)
}

// ServiceUnavailable reports a backing store that cannot be reached; the request may be retried.
func ServiceUnavailable(message string) *AppError { return New(CodeServiceUnavailable, message) }

// As returns the first AppError in err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}

// IsCode reports whether err carries an AppError with code.
func IsCode(err error, code string) bool {
	appError := As(err)
	return appError != nil && appError.Code == code
}
