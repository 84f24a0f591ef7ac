package utils

import (
	"log"
)

// Logf prints consistent server logs.
func Logf(format string, v ...any) {
	log.Printf("[Storybook] "+format, v...)
}

// Detail produces the JSON error body returned to the frontend.
func Detail(msg string) map[string]string {
	return map[string]string{"detail": msg}
}

// LimitStr returns a string truncated to n runes with "..." appended if longer.
func LimitStr(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
