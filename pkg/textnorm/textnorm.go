// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm canonicalizes free text for accent- and case-insensitive comparison.
//
// # Usage
//
// It backs the party search box and the duplicate check that runs before a new
// collaborator or provider is created. "Ágora Estudios", "AGORA estudios" and
// "agora estudios" all normalize to the same value.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fieldSeparator joins candidate fields; a query never spans two fields.
const fieldSeparator = "\x00"

// Normalize returns the comparison form of s.
//
// # Transformation Pipeline
//
// 1. Converts to lowercase.
// 2. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 3. Removes combining marks (accents).
// 4. Trims surrounding whitespace.
//
// The result is stable under a second pass: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// Lowercasing first: some uppercase letters lower into a base letter plus a mark (İ → i̇)
	lowered := strings.ToLower(s)

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, lowered)
	if err != nil {
		result = lowered
	}

	return strings.TrimSpace(result)
}

// NormalizePtr is [Normalize] for optional fields. A nil pointer yields "".
func NormalizePtr(s *string) string {
	if s == nil {
		return ""
	}
	return Normalize(*s)
}

// Matches reports whether the normalized query is contained in the normalized
// candidate fields.
//
// An empty or whitespace-only query never matches. Callers that want "no search"
// semantics for an empty box should use [Filter] or check [IsBlank] first.
func Matches(query string, fields ...string) bool {
	needle := Normalize(query)
	if needle == "" {
		return false
	}

	normalized := make([]string, 0, len(fields))
	for _, field := range fields {
		if value := Normalize(field); value != "" {
			normalized = append(normalized, value)
		}
	}

	return strings.Contains(strings.Join(normalized, fieldSeparator), needle)
}

// Filter keeps the items whose searchable fields contain query.
//
// A blank query means no search: the input is returned unchanged. Input order is
// preserved; ordering the result is left to the caller.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	if IsBlank(query) {
		return items
	}

	// Not pre-allocating to full length to avoid excessive memory on heavy filters
	var result []T
	for _, item := range items {
		if Matches(query, fields(item)...) {
			result = append(result, item)
		}
	}

	return result
}

// IsBlank reports whether s normalizes to the empty string.
func IsBlank(s string) bool {
	return Normalize(s) == ""
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
