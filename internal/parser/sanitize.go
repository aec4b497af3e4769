package parser

import (
	"strings"
	"unicode"
)

const maxTitleRunes = 200

const titlePunctuation = " -_.,:;!?'\"()&/+#"

// sanitizeTitle keeps ASCII letters and digits, common punctuation, and
// letters of the document's scripts. Everything else is dropped and
// whitespace is collapsed.
func sanitizeTitle(title string, scripts []*unicode.RangeTable) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case strings.ContainsRune(titlePunctuation, r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case unicode.In(r, scripts...) && (unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)):
			b.WriteRune(r)
		}
	}

	out := strings.Join(strings.Fields(b.String()), " ")
	if runes := []rune(out); len(runes) > maxTitleRunes {
		out = strings.TrimSpace(string(runes[:maxTitleRunes]))
	}
	return out
}
