package domain

import (
	"time"
)

// QuizType is the question format of a quiz.
type QuizType string

const (
	QuizMultipleChoice QuizType = "multiple_choice"
	QuizTrueFalse      QuizType = "true_false"
	QuizFillBlank      QuizType = "fill_blank"
)

// ParseQuizType returns the type and whether s names a supported one.
func ParseQuizType(s string) (QuizType, bool) {
	switch QuizType(s) {
	case QuizMultipleChoice, QuizTrueFalse, QuizFillBlank:
		return QuizType(s), true
	default:
		return "", false
	}
}

// SkillCategory classifies what a question tests.
type SkillCategory string

const (
	SkillFactualRecall           SkillCategory = "factual_recall"
	SkillConceptualUnderstanding SkillCategory = "conceptual_understanding"
	SkillAnalyticalThinking      SkillCategory = "analytical_thinking"
	SkillProceduralKnowledge     SkillCategory = "procedural_knowledge"
	SkillCriticalThinking        SkillCategory = "critical_thinking"
)

// ParseSkillCategory returns the category and whether s names a known one.
func ParseSkillCategory(s string) (SkillCategory, bool) {
	switch SkillCategory(s) {
	case SkillFactualRecall, SkillConceptualUnderstanding, SkillAnalyticalThinking,
		SkillProceduralKnowledge, SkillCriticalThinking:
		return SkillCategory(s), true
	default:
		return "", false
	}
}

// MultipleChoiceOptionCount is the exact number of options a multiple-choice question carries.
const MultipleChoiceOptionCount = 4

// Question is embedded in a Quiz and never modified once stored.
type Question struct {
	ID                 string        `json:"id"`
	Text               string        `json:"text"`
	Options            []string      `json:"options"`
	CorrectAnswer      string        `json:"correctAnswer"`
	CorrectAnswerIndex int           `json:"correctAnswerIndex"`
	Explanation        string        `json:"explanation"`
	Points             int           `json:"points"`
	SkillCategory      SkillCategory `json:"skillCategory"`
	TopicArea          string        `json:"topicArea"`
	Strength           string        `json:"strength"`
	Weakness           string        `json:"weakness"`
}

// QuizStatus supports soft deletion.
type QuizStatus string

const (
	QuizActive  QuizStatus = "active"
	QuizDeleted QuizStatus = "deleted"
)

// QuizAnalytics aggregates completed attempts.
type QuizAnalytics struct {
	AttemptCount     int
	AverageScore     float64
	AverageTimeSpent float64
	LastAttemptAt    *time.Time
}

// Quiz is a generated set of questions of one type, derived from one document.
type Quiz struct {
	ID           string
	DocumentID   string
	OwnerID      string
	Title        string
	Type         QuizType
	Difficulty   string
	Language     string
	PassingScore int
	Questions    []Question
	Analytics    QuizAnalytics
	Status       QuizStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TotalPoints is the maximum score attainable at pointsPerQuestion per question.
func (q *Quiz) TotalPoints(pointsPerQuestion int) int {
	return len(q.Questions) * pointsPerQuestion
}

// IsActive reports whether the quiz can be taken.
func (q *Quiz) IsActive() bool {
	return q.Status == QuizActive
}

// RecordAttempt folds one completed attempt into the running averages.
func (a *QuizAnalytics) RecordAttempt(percentage float64, timeSpentSeconds int, at time.Time) {
	n := float64(a.AttemptCount)
	a.AverageScore = (a.AverageScore*n + percentage) / (n + 1)
	a.AverageTimeSpent = (a.AverageTimeSpent*n + float64(timeSpentSeconds)) / (n + 1)
	a.AttemptCount++
	a.LastAttemptAt = &at
}

// Validate validates the quiz
func (q *Quiz) Validate() error {
	if q.DocumentID == "" {
		return NewBadInputError("document id is required")
	}
	if q.OwnerID == "" {
		return NewBadInputError("owner id is required")
	}
	if len(q.Questions) == 0 {
		return NewGenerationValidationError("quiz has no questions")
	}
	return nil
}
