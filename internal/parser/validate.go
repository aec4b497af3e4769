package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"studion/internal/domain"
	"studion/internal/prompt"
)

const (
	defaultTopicArea = "General"
	defaultStrength  = "You understand this part of the material."
	defaultWeakness  = "Review this part of the document summary."
	defaultPoints    = 1
)

// dropReason explains why a question or quiz was discarded.
type dropReason struct {
	quiz     int
	question int
	reason   string
}

func (d dropReason) String() string {
	if d.question < 0 {
		return fmt.Sprintf("quiz %d: %s", d.quiz, d.reason)
	}
	return fmt.Sprintf("quiz %d question %d: %s", d.quiz, d.question, d.reason)
}

type validator struct {
	cfg     domain.GenerationConfig
	lang    prompt.Language
	dropped []dropReason
}

func newValidator(cfg domain.GenerationConfig) *validator {
	return &validator{cfg: cfg, lang: prompt.Lookup(cfg.Language)}
}

func (v *validator) drop(quiz, question int, format string, args ...interface{}) {
	v.dropped = append(v.dropped, dropReason{quiz: quiz, question: question, reason: fmt.Sprintf(format, args...)})
}

// collection validates every quiz. Quizzes left without any valid question
// are dropped; an empty result is a validation failure.
func (v *validator) collection(raw rawCollection) (*domain.GeneratedCollection, error) {
	if raw.Quizzes == nil {
		return nil, domain.NewGenerationValidationError("response has no \"quizzes\" list")
	}
	if len(*raw.Quizzes) == 0 {
		return nil, domain.NewGenerationValidationError("response \"quizzes\" list is empty")
	}

	out := &domain.GeneratedCollection{}
	for i, msg := range *raw.Quizzes {
		var rq rawQuiz
		if err := json.Unmarshal(msg, &rq); err != nil {
			v.drop(i, -1, "malformed quiz object: %v", err)
			continue
		}
		quiz, ok := v.quiz(i, rq)
		if !ok {
			continue
		}
		out.Quizzes = append(out.Quizzes, quiz)
	}
	out.Dropped = v.droppedQuestions()

	if len(out.Quizzes) == 0 {
		return nil, domain.NewGenerationValidationError("no valid questions in response").
			WithContext("dropped", len(v.dropped))
	}
	return out, nil
}

func (v *validator) droppedQuestions() int {
	n := 0
	for _, d := range v.dropped {
		if d.question >= 0 {
			n++
		}
	}
	return n
}

func (v *validator) quiz(idx int, rq rawQuiz) (domain.GeneratedQuiz, bool) {
	if len(rq.Questions) == 0 {
		v.drop(idx, -1, "quiz has no questions")
		return domain.GeneratedQuiz{}, false
	}

	quizType, ok := domain.ParseQuizType(rq.Type.trimmed())
	if !ok {
		quizType = v.cfg.QuestionType
	}

	quiz := domain.GeneratedQuiz{
		Title:      sanitizeTitle(rq.Title.text, v.lang.Scripts),
		Type:       quizType,
		Difficulty: v.difficulty(rq.Difficulty.trimmed()),
	}
	if quiz.Title == "" {
		quiz.Title = fmt.Sprintf("Quiz %d", idx+1)
	}

	for j, msg := range rq.Questions {
		var raw rawQuestion
		if err := json.Unmarshal(msg, &raw); err != nil {
			v.drop(idx, j, "malformed question object: %v", err)
			continue
		}
		q, reason := v.question(quizType, raw)
		if reason != "" {
			v.drop(idx, j, "%s", reason)
			continue
		}
		quiz.Questions = append(quiz.Questions, q)
	}

	if len(quiz.Questions) == 0 {
		v.drop(idx, -1, "no valid questions left")
		return domain.GeneratedQuiz{}, false
	}
	return quiz, true
}

// difficulty prefers the requested difficulty over the model's.
func (v *validator) difficulty(fromModel string) string {
	if d := strings.TrimSpace(v.cfg.Difficulty); d != "" {
		return d
	}
	if fromModel != "" {
		return fromModel
	}
	return "medium"
}

// question returns the normalized question, or a non-empty reason when it
// must be dropped.
func (v *validator) question(t domain.QuizType, raw rawQuestion) (domain.Question, string) {
	text := raw.questionText()
	if text == "" {
		return domain.Question{}, "missing question text"
	}
	if !raw.CorrectAnswer.present || (!raw.CorrectAnswer.isBool && raw.CorrectAnswer.trimmed() == "") {
		return domain.Question{}, "missing correct answer"
	}

	q := domain.Question{
		Text:          text,
		Explanation:   raw.Explanation.trimmed(),
		Points:        raw.Points.intOr(defaultPoints),
		SkillCategory: domain.SkillConceptualUnderstanding,
		TopicArea:     orDefault(raw.TopicArea.trimmed(), defaultTopicArea),
		Strength:      orDefault(raw.Strength.trimmed(), defaultStrength),
		Weakness:      orDefault(raw.Weakness.trimmed(), defaultWeakness),
	}
	if q.Points <= 0 {
		q.Points = defaultPoints
	}
	if sc, ok := domain.ParseSkillCategory(strings.ToLower(raw.SkillCategory.trimmed())); ok {
		q.SkillCategory = sc
	}

	switch t {
	case domain.QuizTrueFalse:
		return v.trueFalse(q, raw.CorrectAnswer)
	case domain.QuizFillBlank:
		q.Options = []string{}
		q.CorrectAnswer = raw.CorrectAnswer.trimmed()
		q.CorrectAnswerIndex = -1
		return q, ""
	default:
		return multipleChoice(q, raw)
	}
}

func multipleChoice(q domain.Question, raw rawQuestion) (domain.Question, string) {
	if len(raw.Options) != domain.MultipleChoiceOptionCount {
		return domain.Question{}, fmt.Sprintf("expected %d options, got %d", domain.MultipleChoiceOptionCount, len(raw.Options))
	}
	options := make([]string, len(raw.Options))
	for i, o := range raw.Options {
		options[i] = o.trimmed()
		if options[i] == "" {
			return domain.Question{}, fmt.Sprintf("option %d is empty", i)
		}
	}

	answer := raw.CorrectAnswer.trimmed()
	for i, o := range options {
		if o == answer {
			q.Options = options
			q.CorrectAnswer = o
			q.CorrectAnswerIndex = i
			return q, ""
		}
	}
	return domain.Question{}, fmt.Sprintf("correct answer %q is not one of the options", truncateForLog(answer))
}

// trueFalse forces the options to the localized canonical pair. A JSON
// boolean answer maps onto the pair directly.
func (v *validator) trueFalse(q domain.Question, answer scalar) (domain.Question, string) {
	q.Options = v.lang.TrueFalseOptions()

	switch {
	case answer.isBool && answer.boolVal, !answer.isBool && answer.trimmed() == v.lang.TrueWord:
		q.CorrectAnswer = v.lang.TrueWord
		q.CorrectAnswerIndex = 0
	case answer.isBool, answer.trimmed() == v.lang.FalseWord:
		q.CorrectAnswer = v.lang.FalseWord
		q.CorrectAnswerIndex = 1
	default:
		return domain.Question{}, fmt.Sprintf("correct answer %q is not %q or %q",
			truncateForLog(answer.trimmed()), v.lang.TrueWord, v.lang.FalseWord)
	}
	return q, ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
