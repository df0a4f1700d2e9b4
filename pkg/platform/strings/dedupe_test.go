package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupe(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{name: "empty slice", input: []string{}, expected: []string{}},
		{name: "first occurrence wins", input: []string{"cooking", "cooking", "cleaning"}, expected: []string{"cooking", "cleaning"}},
		{name: "no trimming", input: []string{" en", "en", " en"}, expected: []string{" en", "en"}},
		{name: "blanks are kept", input: []string{"", "", "ar"}, expected: []string{"", "ar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Dedupe(tt.input))
		})
	}
}

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{name: "empty slice", input: []string{}, expected: []string{}},
		{name: "trims whitespace", input: []string{"  Recruitment  ", "Training  "}, expected: []string{"Recruitment", "Training"}},
		{name: "dedupes after trimming", input: []string{"SA", " SA", "AE", "SA "}, expected: []string{"SA", "AE"}},
		{name: "drops blanks", input: []string{"Visa processing", "", "  "}, expected: []string{"Visa processing"}},
		{name: "only blanks", input: []string{" ", ""}, expected: []string{}},
		{name: "preserves case", input: []string{"Childcare", "childcare"}, expected: []string{"Childcare", "childcare"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestDedupeAndTrimLower(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{name: "skill codes", input: []string{" Cooking ", "cooking", "CLEANING"}, expected: []string{"cooking", "cleaning"}},
		{name: "language codes", input: []string{"EN", "en ", "", "Ar"}, expected: []string{"en", "ar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrimLower(tt.input))
		})
	}
}
