package adapter

import "strings"

// SanitizeFilterValue escapes a user-controlled value for interpolation
// into a filter expression. Backslashes are doubled first, then double
// quotes are escaped, so that the value always parses as a single string
// literal and can never alter the expression's structure.
func SanitizeFilterValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Eq builds a single `field = "value"` filter clause with the value
// sanitized.
func Eq(field, value string) string {
	return field + ` = "` + SanitizeFilterValue(value) + `"`
}

// And joins filter clauses with the backend's && operator. Empty clauses
// are skipped.
func And(clauses ...string) string {
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " && ")
}
