// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer helps with the optional fields that run through the roster
entities, where nil means "not provided" and must survive JSON round trips.
*/
package pointer

import "strings"

// To returns a pointer to v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Trimmed returns the trimmed text of s, or nil when s is absent or blank.
//
// Optional text columns never store an empty string.
func Trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	value := strings.TrimSpace(*s)
	if value == "" {
		return nil
	}
	return &value
}
