package prompt

import (
	"strings"
	"testing"

	"studion/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildQuizPrompt_MultipleChoice(t *testing.T) {
	cfg := domain.GenerationConfig{
		QuestionType:  domain.QuizMultipleChoice,
		QuestionCount: 7,
		Difficulty:    "hard",
		Language:      "en",
	}
	out := BuildQuizPrompt("Cells are the unit of life.", cfg)

	assert.Contains(t, out, `exactly 7 questions of type "multiple_choice" at "hard" difficulty`)
	assert.Contains(t, out, "exactly 4 distinct strings")
	assert.Contains(t, out, "Never ask about the document itself")
	assert.Contains(t, out, "Cells are the unit of life.")
	// one worked example per type
	assert.Contains(t, out, "multiple_choice:\n{")
	assert.Contains(t, out, "true_false:\n{")
	assert.Contains(t, out, "fill_blank:\n{")
}

func TestBuildQuizPrompt_LocalizedTrueFalse(t *testing.T) {
	cfg := domain.GenerationConfig{QuestionType: domain.QuizTrueFalse, QuestionCount: 3, Language: "fr"}
	out := BuildQuizPrompt("texte", cfg)

	assert.Contains(t, out, `exactly ["Vrai", "Faux"]`)
	assert.Contains(t, out, "en français")
	assert.Contains(t, out, `"medium" difficulty`, "empty difficulty defaults to medium")
}

func TestBuildQuizPrompt_UnsupportedLanguageFallsBack(t *testing.T) {
	cfg := domain.GenerationConfig{QuestionType: domain.QuizTrueFalse, QuestionCount: 3, Language: "xx"}
	out := BuildQuizPrompt("text", cfg)
	assert.Contains(t, out, `["True", "False"]`)
}

func TestBuildQuizPrompt_Deterministic(t *testing.T) {
	cfg := domain.GenerationConfig{QuestionType: domain.QuizFillBlank, QuestionCount: 2, Language: "es"}
	assert.Equal(t, BuildQuizPrompt("a", cfg), BuildQuizPrompt("a", cfg))
}

func TestBuildSummaryPrompt(t *testing.T) {
	out := BuildSummaryPrompt("the text", "de")
	assert.Contains(t, out, "in German")
	assert.Contains(t, out, `"keyPoints"`)
	assert.True(t, strings.HasSuffix(out, "the text\n"))
}

func TestLookup(t *testing.T) {
	assert.Equal(t, "Vrai", Lookup("FR").TrueWord)
	assert.Equal(t, "fr", Lookup("fr-CA").Code)
	assert.Equal(t, DefaultLanguage, Lookup("").Code)
	assert.Equal(t, []string{"صحيح", "خطأ"}, Lookup("ar").TrueFalseOptions())
	assert.True(t, Supported("es"))
	assert.False(t, Supported("zz"))
}

func TestSupported_MatchesLookupNormalization(t *testing.T) {
	for _, code := range []string{"fr-CA", "FR_ca", " de-AT ", "ar-EG", "EN"} {
		assert.True(t, Supported(code), code)
		assert.NotEqual(t, "", Lookup(code).Code)
	}
	assert.Equal(t, "fr", Lookup("fr-CA").Code)
	assert.False(t, Supported("zz-ZZ"))
	assert.False(t, Supported("-fr"))
}
