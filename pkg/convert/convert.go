// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert turns raw query parameters into optional filter values.

A parameter that is missing or malformed yields nil, which list endpoints
read as "do not filter on this".
*/
package convert

import (
	"strconv"
	"strings"
)

// OptionalBool parses "true", "1", "false", "0" and friends. Anything else is nil.
func OptionalBool(s string) *bool {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

// OptionalString returns nil for a blank parameter, otherwise the trimmed value.
func OptionalString(s string) *string {
	value := strings.TrimSpace(s)
	if value == "" {
		return nil
	}
	return &value
}

// IntOr parses s as an int and falls back to def when it is empty or malformed.
func IntOr(s string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return v
	}
	return def
}
