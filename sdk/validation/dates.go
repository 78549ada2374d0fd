// Package validation holds small conversion helpers shared by the bridges.
package validation

import "time"

// FormatTimeToString renders a time for JSON responses. Zero times render
// as an empty string rather than the zero-value timestamp.
func FormatTimeToString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// FormatTimePtrToString renders an optional time for JSON responses.
func FormatTimePtrToString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatTimeToString(*t)
}
