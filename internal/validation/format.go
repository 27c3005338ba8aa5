// Package validation formats enumeration choices for help text and errors.
package validation

import "strings"

// FormatChoices joins enumeration members as "A, B, C".
func FormatChoices[T ~string](values []T) string {
	names := make([]string, len(values))
	for i, value := range values {
		names[i] = string(value)
	}
	return strings.Join(names, ", ")
}
