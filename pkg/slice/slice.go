// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice holds the generic helpers used when lists are filtered and paged
in process instead of in SQL.
*/
package slice

// Filter returns the elements for which keep reports true, preserving order.
func Filter[T any](input []T, keep func(T) bool) []T {
	if input == nil {
		return nil
	}

	var result []T
	for _, v := range input {
		if keep(v) {
			result = append(result, v)
		}
	}

	return result
}

// Window returns input[offset:offset+limit] clamped to the slice bounds.
//
// An offset past the end yields an empty, non-nil slice so JSON encodes "[]".
func Window[T any](input []T, offset, limit int) []T {
	offset = max(offset, 0)
	if offset >= len(input) || limit <= 0 {
		return []T{}
	}
	return input[offset:min(offset+limit, len(input))]
}
