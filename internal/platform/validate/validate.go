// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate collects field failures for the back-office forms and turns
// them into one VALIDATION_ERROR.
//
// Services build a [Validator] per call, chain the rules for each field, then
// return [Validator.Err]. Besides text rules it carries the two checks staff
// meet on every form: revenue-share percentages and IBANs.
package validate

import (
	"fmt"
	"math"
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/talento/internal/platform/apperr"
	"github.com/taibuivan/talento/pkg/iban"
	"github.com/taibuivan/talento/pkg/uuid"
)

const failedMessage = "Validation failed"

// MaxEmailLen is the longest address RFC 5321 allows on a forward path, and the
// width of every email column.
const MaxEmailLen = 254

// Validator accumulates field failures in the order rules ran. It is not safe
// for concurrent use.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails on an empty or whitespace-only value.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(field, strings.TrimSpace(value) == "", "This field is required")
}

// MaxLen counts characters, not bytes, so accented names are not penalised.
func (v *Validator) MaxLen(field, value string, limit int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) > limit, fmt.Sprintf("Maximum %d characters", limit))
}

// Email accepts a bare RFC 5322 address of at most [MaxEmailLen] characters.
// Display-name forms such as "Ana <ana@example.com>" are refused because only
// the address is stored.
func (v *Validator) Email(field, value string) *Validator {
	if utf8.RuneCountInString(value) > MaxEmailLen {
		return v.MaxLen(field, value, MaxEmailLen)
	}
	address, err := mail.ParseAddress(value)
	return v.Custom(field, err != nil || address.Address != strings.TrimSpace(value), "Must be a valid email address")
}

// Percentage fails outside [0, 100].
func (v *Validator) Percentage(field string, value float64) *Validator {
	return v.Custom(field, !PctOK(value), "Must be a percentage between 0 and 100")
}

// IBAN fails unless the value passes the MOD-97 check. Spaces and case are ignored.
func (v *Validator) IBAN(field, value string) *Validator {
	return v.Custom(field, !iban.Valid(value), "Must be a valid IBAN")
}

// UUID accepts only the canonical 36-character form.
func (v *Validator) UUID(field, value string) *Validator {
	return v.Custom(field, len(value) != 36 || !uuid.Valid(value), "Must be a valid UUID")
}

// OneOf fails unless value is one of allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	return v.Custom(field, !slices.Contains(allowed, value), "Must be one of: "+strings.Join(allowed, ", "))
}

// Custom records message against field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// HasErrors reports whether any rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Err returns nil when every rule passed. Call it once at the end of the chain.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError(failedMessage, v.errs...)
}

// FieldError is a one-field VALIDATION_ERROR for checks made outside a chain.
func FieldError(field, message string) *apperr.AppError {
	return apperr.ValidationError(failedMessage, apperr.FieldError{Field: field, Message: message})
}

// PctOK reports whether p is a usable revenue-share percentage: 0 <= p <= 100.
// NaN is rejected.
func PctOK(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 100
}
