package parser

import (
	"errors"
	"regexp"
	"strings"
)

var (
	errNoObject         = errors.New("no JSON object found in response")
	errUnbalancedObject = errors.New("JSON object in response is not closed")

	codeFenceRe = regexp.MustCompile("```[A-Za-z0-9_-]*")
)

// stripThinkTags removes a leading <think>...</think> reasoning block that
// some local models emit before their answer.
func stripThinkTags(s string) string {
	start := strings.Index(s, "<think>")
	if start == -1 {
		return s
	}
	end := strings.Index(s, "</think>")
	if end == -1 || end < start {
		return s
	}
	return s[:start] + s[end+len("</think>"):]
}

// stripCodeFences removes markdown fence markers, keeping their contents.
func stripCodeFences(s string) string {
	return codeFenceRe.ReplaceAllString(s, "")
}

// cleanResponse removes wrappers models put around their JSON.
func cleanResponse(raw string) string {
	return strings.TrimSpace(stripCodeFences(stripThinkTags(raw)))
}

// extractObject returns the first balanced {...} span of raw. Braces inside
// double-quoted strings are not counted, so trailing prose containing braces
// does not extend or truncate the span.
func extractObject(raw string) (string, error) {
	s := cleanResponse(raw)
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", errNoObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", errUnbalancedObject
}
