package validation

import "strings"

// IsNonBlank is the single rule for required text fields: something other
// than whitespace must remain after trimming.
func IsNonBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// AllNonBlank reports whether every value passes IsNonBlank.
func AllNonBlank(values ...string) bool {
	for _, v := range values {
		if !IsNonBlank(v) {
			return false
		}
	}
	return true
}
