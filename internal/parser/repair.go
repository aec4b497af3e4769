package parser

import (
	"regexp"
	"strings"
)

var (
	smartQuotes = strings.NewReplacer(
		"“", `"`, "”", `"`, "„", `"`, "‟", `"`, "″", `"`,
		"‘", "'", "’", "'", "‚", "'", "‛", "'", "′", "'",
	)

	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
	unquotedKeyRe   = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_\-]*)(\s*:)`)
	unquotedValueRe = regexp.MustCompile(`(:\s*)([A-Za-z][^,}\]\n"]*?)(\s*[,}\]\n])`)
	quotedLiteralRe = regexp.MustCompile(`^"(-?\d+(?:\.\d+)?|true|false|null)"$`)
	valueContextRe  = regexp.MustCompile(`:\s*$`)
)

// segment is a run of text that is either entirely inside one double-quoted
// string literal (quotes included) or entirely outside any.
type segment struct {
	text   string
	quoted bool
}

func splitStrings(s string) []segment {
	var segs []segment
	var cur strings.Builder
	inString := false
	escaped := false

	flush := func(quoted bool) {
		if cur.Len() > 0 {
			segs = append(segs, segment{text: cur.String(), quoted: quoted})
			cur.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if !inString {
			if c == '"' {
				flush(false)
				inString = true
			}
			cur.WriteByte(c)
			continue
		}
		cur.WriteByte(c)
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			inString = false
			flush(true)
		}
	}
	flush(inString)
	return segs
}

// repairJSON applies a fixed set of textual repairs for the malformations
// models commonly produce. Structural rewrites only touch text outside string
// literals.
func repairJSON(s string) string {
	s = smartQuotes.Replace(s)
	segs := splitStrings(s)

	for i := range segs {
		if segs[i].quoted {
			continue
		}
		t := segs[i].text
		t = trailingCommaRe.ReplaceAllString(t, "$1")
		t = unquotedKeyRe.ReplaceAllString(t, `$1"$2"$3`)
		t = unquotedValueRe.ReplaceAllStringFunc(t, quoteBareValue)
		segs[i].text = t
	}

	var b strings.Builder
	for i, seg := range segs {
		if seg.quoted && i > 0 && !segs[i-1].quoted &&
			valueContextRe.MatchString(segs[i-1].text) && quotedLiteralRe.MatchString(seg.text) {
			b.WriteString(seg.text[1 : len(seg.text)-1])
			continue
		}
		b.WriteString(seg.text)
	}
	return b.String()
}

func quoteBareValue(match string) string {
	parts := unquotedValueRe.FindStringSubmatch(match)
	value := strings.TrimSpace(parts[2])
	switch value {
	case "true", "false", "null":
		return match
	}
	return parts[1] + `"` + value + `"` + parts[3]
}
