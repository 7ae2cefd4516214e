package utils

import "strings"

// Truncate is a simple string truncate
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Preview collapses newlines so a prompt or response fits on a single log line,
// then truncates it to maxLen.
func Preview(s string, maxLen int) string {
	return Truncate(strings.Join(strings.Fields(s), " "), maxLen)
}
