package prompt

import (
	"strings"
	"unicode"
)

// DefaultLanguage is used for unsupported language codes.
const DefaultLanguage = "en"

// Language holds the localized tokens used in prompts and validation.
type Language struct {
	Code      string
	Name      string
	TrueWord  string
	FalseWord string
	// Directive tells the model which language to write in.
	Directive string
	// Scripts are the Unicode ranges allowed in quiz titles besides ASCII.
	Scripts []*unicode.RangeTable
}

// TrueFalseOptions returns the canonical [true, false] pair.
func (l Language) TrueFalseOptions() []string {
	return []string{l.TrueWord, l.FalseWord}
}

var languages = map[string]Language{
	"en": {
		Code: "en", Name: "English", TrueWord: "True", FalseWord: "False",
		Directive: "Write every question, option, and explanation in English.",
		Scripts:   []*unicode.RangeTable{unicode.Latin},
	},
	"fr": {
		Code: "fr", Name: "French", TrueWord: "Vrai", FalseWord: "Faux",
		Directive: "Rédige toutes les questions, options et explications en français.",
		Scripts:   []*unicode.RangeTable{unicode.Latin},
	},
	"es": {
		Code: "es", Name: "Spanish", TrueWord: "Verdadero", FalseWord: "Falso",
		Directive: "Escribe todas las preguntas, opciones y explicaciones en español.",
		Scripts:   []*unicode.RangeTable{unicode.Latin},
	},
	"de": {
		Code: "de", Name: "German", TrueWord: "Wahr", FalseWord: "Falsch",
		Directive: "Schreibe alle Fragen, Antwortoptionen und Erklärungen auf Deutsch.",
		Scripts:   []*unicode.RangeTable{unicode.Latin},
	},
	"ar": {
		Code: "ar", Name: "Arabic", TrueWord: "صحيح", FalseWord: "خطأ",
		Directive: "اكتب جميع الأسئلة والخيارات والشروحات باللغة العربية.",
		Scripts:   []*unicode.RangeTable{unicode.Arabic},
	},
}

// Lookup returns the language for code, falling back to DefaultLanguage.
// Region suffixes such as "fr-CA" are ignored.
func Lookup(code string) Language {
	if lang, ok := languages[baseCode(code)]; ok {
		return lang
	}
	return languages[DefaultLanguage]
}

// Supported reports whether code names a language with its own tokens.
// It normalizes code the same way Lookup does.
func Supported(code string) bool {
	_, ok := languages[baseCode(code)]
	return ok
}

func baseCode(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	return code
}
