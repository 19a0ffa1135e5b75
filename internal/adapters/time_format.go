package adapters

import (
	"time"
)

// formatTime renders a platform timestamp as RFC 3339 in UTC at second
// precision. The zero time stands for an absent field and renders empty.
func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}
