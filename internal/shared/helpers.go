// Package shared provides common utility functions used across multiple
// packages in the codescan-report codebase.
package shared

import (
	"strconv"
	"strings"
)

// SplitRepository parses an "owner/name" repository reference. Both
// parts must be non-empty and the name may not contain a further slash.
func SplitRepository(value string) (string, string, bool) {
	owner, name, found := strings.Cut(strings.TrimSpace(value), "/")
	if !found {
		return "", "", false
	}
	owner = strings.TrimSpace(owner)
	name = strings.TrimSpace(name)
	if owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", false
	}
	return owner, name, true
}

// OptionalInt formats an optional integer, rendering a nil pointer as an
// empty string.
func OptionalInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}
