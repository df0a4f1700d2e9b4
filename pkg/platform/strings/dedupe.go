// Package strings normalises the string lists carried on profiles: skills,
// language codes, preferences and agency service lists.
package strings

import (
	"strings"
)

// Dedupe removes exact duplicates, keeping the first occurrence.
// Values are compared verbatim; nil stays nil.
func Dedupe(values []string) []string {
	return dedupeBy(values, func(v string) string { return v }, false)
}

// DedupeAndTrim trims each value, drops blanks, then dedupes in order.
// Case is preserved: "Recruitment" and "recruitment" both survive.
func DedupeAndTrim(values []string) []string {
	return dedupeBy(values, strings.TrimSpace, true)
}

// DedupeAndTrimLower is DedupeAndTrim for codes compared case-insensitively,
// such as skill and language codes.
func DedupeAndTrimLower(values []string) []string {
	return dedupeBy(values, func(v string) string {
		return strings.ToLower(strings.TrimSpace(v))
	}, true)
}

func dedupeBy(values []string, normalize func(string) string, dropBlank bool) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = normalize(v)
		if dropBlank && v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
