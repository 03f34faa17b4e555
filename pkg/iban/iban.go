// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package iban checks International Bank Account Numbers against the ISO 13616 shape
and the ISO 7064 MOD-97-10 checksum.

It is a field-level validator only. It does not know per-country lengths beyond
the generic 9–30 trailing characters and never contacts a bank.
*/
package iban

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// shape is "two letters, two digits, then 9–30 alphanumerics" on the compact form.
var shape = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{9,30}$`)

// chunkDigits keeps every intermediate value below 10^11, far inside uint64.
const chunkDigits = 9

// Normalize returns the compact storage form: whitespace removed, uppercased.
func Normalize(s string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s))
}

// Valid reports whether s is a structurally valid IBAN with a correct checksum.
//
// Whitespace and letter case are ignored, so "es91 2100 0418 4502 0005 1332" is
// accepted just like "ES9121000418450200051332".
func Valid(s string) bool {
	compact := Normalize(s)
	if !shape.MatchString(compact) {
		return false
	}

	// Move country code and check digits to the end
	rearranged := compact[4:] + compact[:4]

	// Expand letters to their two-digit values (A=10 ... Z=35)
	var numeral strings.Builder
	numeral.Grow(len(rearranged) * 2)
	for _, r := range rearranged {
		if r >= 'A' && r <= 'Z' {
			numeral.WriteString(strconv.Itoa(int(r-'A') + 10))
			continue
		}
		numeral.WriteRune(r)
	}

	return mod97(numeral.String()) == 1
}

// mod97 computes digits mod 97 piecewise, carrying the remainder into each chunk.
func mod97(digits string) uint64 {
	var remainder uint64
	for start := 0; start < len(digits); start += chunkDigits {
		end := min(start+chunkDigits, len(digits))

		chunk := strconv.FormatUint(remainder, 10) + digits[start:end]
		value, err := strconv.ParseUint(chunk, 10, 64)
		if err != nil {
			return 0
		}
		remainder = value % 97
	}
	return remainder
}
