// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/talento/pkg/pointer"
	"github.com/taibuivan/talento/pkg/textnorm"
)

/*
TestNormalize covers accent stripping, case folding and trimming.
*/
func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace_only", "   \t ", ""},
		{"accents", "Máquina", "maquina"},
		{"mixed_case", "El DOBLEH", "el dobleh"},
		{"surrounding_space", "  Ágora Estudios ", "agora estudios"},
		{"enye", "Peña", "pena"},
		{"cedilla", "Façade", "facade"},
		{"dotted_capital_i", "İstanbul", "istanbul"},
		{"already_normalized", "agora", "agora"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.Normalize(tt.input))
		})
	}
}

/*
TestNormalize_Idempotent verifies that a second pass changes nothing.
*/
func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"", "Máquina", "  ÀÉÎÕÜ  ", "İstanbul", "Ñandú S.L.", "B-12345678", "Ågot Øye"}

	for _, input := range inputs {
		once := textnorm.Normalize(input)
		assert.Equal(t, once, textnorm.Normalize(once), "input %q", input)
	}
}

/*
TestNormalize_AccentInsensitive verifies that accented and plain spellings collapse.
*/
func TestNormalize_AccentInsensitive(t *testing.T) {
	assert.Equal(t, textnorm.Normalize("Maquina"), textnorm.Normalize("Máquina"))
	assert.Equal(t, textnorm.Normalize("jose"), textnorm.Normalize("JOSÉ"))
}

/*
TestNormalizePtr verifies that an absent value normalizes to the empty string.
*/
func TestNormalizePtr(t *testing.T) {
	assert.Equal(t, "", textnorm.NormalizePtr(nil))
	assert.Equal(t, "", textnorm.NormalizePtr(pointer.To("")))
	assert.Equal(t, "agora", textnorm.NormalizePtr(pointer.To("Ágora")))
}

/*
TestMatches checks substring containment on normalized values.
*/
func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		fields []string
		want   bool
	}{
		{"accent_in_candidate", "agora", []string{"Ágora Estudios"}, true},
		{"accent_in_query", "ágora", []string{"Agora Estudios"}, true},
		{"second_field", "b123", []string{"Agora", "B12345678"}, true},
		{"no_match", "zeta", []string{"Agora", "Estudios"}, false},
		{"empty_query", "", []string{"Agora"}, false},
		{"blank_query", "   ", []string{"Agora"}, false},
		{"no_fields", "agora", nil, false},
		{"does_not_span_fields", "oraes", []string{"Agora", "Estudios"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.Matches(tt.query, tt.fields...))
		})
	}
}

/*
TestFilter verifies that a blank query returns everything and a query keeps order.
*/
func TestFilter(t *testing.T) {
	names := []string{"Ágora Estudios", "Zeta Sound", "Estudio Agorafobia", "Máquina"}
	fields := func(s string) []string { return []string{s} }

	t.Run("blank_query_is_no_search", func(t *testing.T) {
		assert.Equal(t, names, textnorm.Filter(names, " ", fields))
	})

	t.Run("keeps_input_order", func(t *testing.T) {
		got := textnorm.Filter(names, "AGORA", fields)
		assert.Equal(t, []string{"Ágora Estudios", "Estudio Agorafobia"}, got)
	})

	t.Run("no_hits", func(t *testing.T) {
		assert.Empty(t, textnorm.Filter(names, "xyz", fields))
	})
}
