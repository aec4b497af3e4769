// Package prompt assembles the instruction blocks sent to the completion
// service for the summary and quiz-generation stages.
package prompt

import (
	"fmt"
	"strings"

	"studion/internal/domain"
)

// BuildQuizPrompt returns the quiz-generation instruction for text, which the
// caller has already bounded with the chunker.
func BuildQuizPrompt(text string, cfg domain.GenerationConfig) string {
	lang := Lookup(cfg.Language)
	difficulty := cfg.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}

	var b strings.Builder
	b.WriteString("You are an expert educator creating study quizzes from a document.\n")
	b.WriteString(lang.Directive)
	b.WriteString("\n\n")

	b.WriteString("REQUIREMENTS:\n")
	fmt.Fprintf(&b, "1. Create exactly %d questions of type \"%s\" at \"%s\" difficulty.\n", cfg.QuestionCount, cfg.QuestionType, difficulty)
	b.WriteString(typeRequirement(cfg.QuestionType, lang))
	b.WriteString("3. Every question object must contain: \"question\", \"options\", \"correctAnswer\", \"explanation\", " +
		"\"skillCategory\", \"topicArea\", \"strength\", \"weakness\".\n")
	b.WriteString("4. \"skillCategory\" must be one of: factual_recall, conceptual_understanding, analytical_thinking, " +
		"procedural_knowledge, critical_thinking.\n")
	b.WriteString("5. \"strength\" is one sentence of feedback shown when the answer is correct; " +
		"\"weakness\" is one sentence shown when it is wrong.\n")
	b.WriteString("6. Ask only about the subject matter of the document. Never ask about the document itself: " +
		"its title, author, file name, page numbers, formatting, or structure.\n")
	b.WriteString("7. Respond with a single JSON object and nothing else. No markdown, no commentary.\n\n")

	b.WriteString("OUTPUT FORMAT:\n")
	fmt.Fprintf(&b, `{"quizzes": [{"title": "...", "type": "%s", "difficulty": "%s", "questions": [ ... ]}]}`, cfg.QuestionType, difficulty)
	b.WriteString("\n\n")

	b.WriteString("EXAMPLES OF ONE QUESTION OBJECT PER TYPE:\n")
	for _, t := range []domain.QuizType{domain.QuizMultipleChoice, domain.QuizTrueFalse, domain.QuizFillBlank} {
		fmt.Fprintf(&b, "%s:\n%s\n", t, example(t, lang))
	}

	b.WriteString("\nDOCUMENT CONTENT:\n")
	b.WriteString(text)
	b.WriteString("\n")
	return b.String()
}

// BuildSummaryPrompt returns the instruction for the summary stage.
func BuildSummaryPrompt(text string, language string) string {
	lang := Lookup(language)

	var b strings.Builder
	b.WriteString("You are an expert educator writing a study summary of a document.\n")
	fmt.Fprintf(&b, "Write the summary in %s.\n\n", lang.Name)
	b.WriteString("Respond with a single JSON object and nothing else:\n")
	b.WriteString(`{"summary": "3-6 paragraph study summary", "keyPoints": ["5-10 key points"], ` +
		`"topics": ["3-8 main topics"], "language": "ISO 639-1 code of the document", ` +
		`"complexity": "basic | intermediate | advanced | expert"}`)
	b.WriteString("\n\nSummarize the subject matter only, never the file or its formatting.\n\n")
	b.WriteString("DOCUMENT CONTENT:\n")
	b.WriteString(text)
	b.WriteString("\n")
	return b.String()
}

func typeRequirement(t domain.QuizType, lang Language) string {
	switch t {
	case domain.QuizTrueFalse:
		return fmt.Sprintf("2. \"options\" must be exactly [\"%s\", \"%s\"] and \"correctAnswer\" must be one of them.\n",
			lang.TrueWord, lang.FalseWord)
	case domain.QuizFillBlank:
		return "2. The question must contain a blank written as \"____\". \"options\" must be an empty list and " +
			"\"correctAnswer\" is the word or short phrase that fills the blank.\n"
	default:
		return fmt.Sprintf("2. \"options\" must contain exactly %d distinct strings and \"correctAnswer\" "+
			"must be copied verbatim from \"options\".\n", domain.MultipleChoiceOptionCount)
	}
}

func example(t domain.QuizType, lang Language) string {
	switch t {
	case domain.QuizTrueFalse:
		return fmt.Sprintf(`{"question": "Photosynthesis releases oxygen as a by-product.", "options": ["%s", "%s"], `+
			`"correctAnswer": "%s", "explanation": "Oxygen is released when water molecules are split.", `+
			`"skillCategory": "factual_recall", "topicArea": "Photosynthesis", `+
			`"strength": "You know the products of photosynthesis.", `+
			`"weakness": "Review which gases photosynthesis consumes and releases."}`,
			lang.TrueWord, lang.FalseWord, lang.TrueWord)
	case domain.QuizFillBlank:
		return `{"question": "The green pigment that absorbs light in plants is called ____.", "options": [], ` +
			`"correctAnswer": "chlorophyll", "explanation": "Chlorophyll absorbs red and blue light.", ` +
			`"skillCategory": "factual_recall", "topicArea": "Plant biology", ` +
			`"strength": "You recall the key pigment.", "weakness": "Review the role of chlorophyll."}`
	default:
		return `{"question": "Which organelle carries out photosynthesis?", ` +
			`"options": ["Mitochondrion", "Chloroplast", "Ribosome", "Nucleus"], "correctAnswer": "Chloroplast", ` +
			`"explanation": "Chloroplasts contain chlorophyll and host the light reactions.", ` +
			`"skillCategory": "conceptual_understanding", "topicArea": "Cell structure", ` +
			`"strength": "You can link organelles to their functions.", ` +
			`"weakness": "Review which organelles handle energy conversion."}`
	}
}
