package util

import "unicode/utf8"

// TruncateBytes shortens s to at most n bytes without splitting a UTF-8
// sequence. Column widths in the schema are byte counts.
func TruncateBytes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
