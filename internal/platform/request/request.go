// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package requestutil reads path parameters and JSON bodies for the handlers.
package requestutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/talento/internal/platform/apperr"
	"github.com/taibuivan/talento/internal/platform/constants"
)

/*
DecodeJSON decodes a single JSON object from the request body into target.

Description: The body is capped at constants.MaxRequestBodyBytes. Unknown
fields are rejected so a misspelt form field fails loudly instead of being
dropped, and trailing data after the object is refused.

Parameters:
  - request: *http.Request
  - target: any (pointer to the destination struct)

Returns:
  - error: VALIDATION_ERROR or PAYLOAD_TOO_LARGE
*/
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, request.Body, constants.MaxRequestBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return decodeError(err)
	}
	if decoder.More() {
		return apperr.ValidationError("Request body must contain a single JSON object")
	}
	return nil
}

func decodeError(err error) error {
	var (
		tooLarge  *http.MaxBytesError
		syntax    *json.SyntaxError
		wrongType *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &tooLarge):
		return apperr.PayloadTooLarge(tooLarge.Limit)
	case errors.Is(err, io.EOF):
		return apperr.ValidationError("Request body is empty")
	case errors.As(err, &syntax), errors.Is(err, io.ErrUnexpectedEOF):
		return apperr.ValidationError("Invalid JSON payload")
	case errors.As(err, &wrongType):
		return apperr.ValidationError("Invalid JSON payload", apperr.FieldError{
			Field:   wrongType.Field,
			Message: fmt.Sprintf("Must be a %s", wrongType.Type.Kind()),
		})
	}

	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return apperr.ValidationError("Invalid JSON payload", apperr.FieldError{
			Field:   strings.Trim(field, `"`),
			Message: "Unknown field",
		})
	}
	return apperr.ValidationError("Invalid JSON payload")
}

// ID returns the named chi path parameter.
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}
