package service

import (
	"math"
	"strings"

	"studion/internal/domain"
)

// AnswerInput is a submitted answer: free text, or an option index.
type AnswerInput struct {
	Text  string
	Index *int
}

func (a AnswerInput) empty() bool {
	return a.Index == nil && strings.TrimSpace(a.Text) == ""
}

// resolveAnswer maps an option index onto its option text. Types without
// options keep the submitted text.
func resolveAnswer(q domain.Question, in AnswerInput) (string, error) {
	if in.Index == nil || len(q.Options) == 0 {
		return strings.TrimSpace(in.Text), nil
	}
	idx := *in.Index
	if idx < 0 || idx >= len(q.Options) {
		return "", domain.NewBadInputError("answer index out of range")
	}
	return q.Options[idx], nil
}

// isCorrect compares a resolved answer with the canonical one. Multiple
// choice must match an option exactly; other types ignore case.
func isCorrect(t domain.QuizType, q domain.Question, answer string) bool {
	answer = strings.TrimSpace(answer)
	if t == domain.QuizMultipleChoice {
		return answer == q.CorrectAnswer
	}
	return strings.EqualFold(answer, strings.TrimSpace(q.CorrectAnswer))
}

func percentOf(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// attemptScore is the outcome of completing an attempt.
type attemptScore struct {
	correct    int
	total      int
	score      int
	maxScore   int
	percentage float64
	level      domain.PerformanceLevel
	passed     bool
	strengths  []string
	weaknesses []string
}

// scoreAttempt scores the latest answer per question. Unanswered questions
// count as incorrect.
func scoreAttempt(quiz *domain.Quiz, attempt *domain.QuizAttempt, pointsPerCorrect, passingScore int) attemptScore {
	latest := attempt.LatestAnswers()
	s := attemptScore{total: len(quiz.Questions), maxScore: quiz.TotalPoints(pointsPerCorrect)}

	seenStrength, seenWeakness := map[string]bool{}, map[string]bool{}
	for i, q := range quiz.Questions {
		ans, answered := latest[i]
		if answered && ans.IsCorrect {
			s.correct++
			if q.Strength != "" && !seenStrength[q.Strength] {
				seenStrength[q.Strength] = true
				s.strengths = append(s.strengths, q.Strength)
			}
			continue
		}
		if q.Weakness != "" && !seenWeakness[q.Weakness] {
			seenWeakness[q.Weakness] = true
			s.weaknesses = append(s.weaknesses, q.Weakness)
		}
	}

	s.score = s.correct * pointsPerCorrect
	s.percentage = percentOf(s.correct, s.total)
	s.level = domain.PerformanceLevelFor(s.percentage)
	s.passed = s.percentage >= float64(passingScore)
	if s.strengths == nil {
		s.strengths = []string{}
	}
	if s.weaknesses == nil {
		s.weaknesses = []string{}
	}
	return s
}

func feedbackFor(level domain.PerformanceLevel, passed bool) string {
	var msg string
	switch level {
	case domain.PerformanceExcellent:
		msg = "Outstanding work. You have mastered this material."
	case domain.PerformanceGood:
		msg = "Good job. A little more review will make this solid."
	case domain.PerformanceAverage:
		msg = "Fair result. Review the explanations for the questions you missed."
	case domain.PerformanceNeedsImprovement:
		msg = "Keep practicing. Revisit the document summary and key points."
	default:
		msg = "This topic needs more study. Start again from the key points."
	}
	if passed {
		return msg + " You passed."
	}
	return msg + " You did not reach the passing score."
}

var skillOrder = []domain.SkillCategory{
	domain.SkillFactualRecall,
	domain.SkillConceptualUnderstanding,
	domain.SkillAnalyticalThinking,
	domain.SkillProceduralKnowledge,
	domain.SkillCriticalThinking,
}
