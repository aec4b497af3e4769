// Package chunker bounds document text to an estimated token budget before it
// is sent to the completion service.
package chunker

import "strings"

const (
	// CharsPerToken is the heuristic used to estimate token counts.
	CharsPerToken = 4

	paragraphWindow = 0.30
	sentenceWindow  = 0.20
)

// EstimateTokens approximates the token count of text.
func EstimateTokens(text string) int {
	return (len(text) + CharsPerToken - 1) / CharsPerToken
}

// Truncate returns a prefix of text that fits tokenBudget. It prefers to cut
// at a paragraph break within the last 30% of the character budget, then at a
// sentence end within the last 20%, and otherwise cuts at the budget.
// Offsets are in bytes; a hard cut that would split a UTF-8 sequence backs up
// to the previous rune boundary.
func Truncate(text string, tokenBudget int) string {
	if tokenBudget <= 0 {
		return ""
	}
	maxChars := tokenBudget * CharsPerToken
	if len(text) <= maxChars {
		return text
	}

	head := text[:maxChars]

	if idx := strings.LastIndex(head, "\n\n"); idx >= 0 && idx >= windowStart(maxChars, paragraphWindow) {
		return text[:idx]
	}
	if idx := strings.LastIndex(head, "."); idx >= 0 && idx >= windowStart(maxChars, sentenceWindow) {
		return text[:idx+1]
	}
	return text[:runeBoundary(text, maxChars)]
}

func windowStart(maxChars int, window float64) int {
	return maxChars - int(float64(maxChars)*window)
}

// runeBoundary returns the largest offset <= n that does not split a rune.
func runeBoundary(s string, n int) int {
	for n > 0 && n < len(s) && !isRuneStart(s[n]) {
		n--
	}
	return n
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
