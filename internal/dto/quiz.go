package dto

import "time"

// QuestionView is a question as shown to a quiz taker. Answers are withheld.
type QuestionView struct {
	Index         int      `json:"index"`
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	SkillCategory string   `json:"skill_category"`
	TopicArea     string   `json:"topic_area"`
}

// QuizAnalyticsResponse summarises completed attempts.
type QuizAnalyticsResponse struct {
	AttemptCount     int        `json:"attempt_count"`
	AverageScore     float64    `json:"average_score"`
	AverageTimeSpent float64    `json:"average_time_spent"`
	LastAttemptAt    *time.Time `json:"last_attempt_at,omitempty"`
}

// QuizResponse represents a quiz in the API response
// @Description Quiz information without answers
type QuizResponse struct {
	ID            string                `json:"id"`
	DocumentID    string                `json:"document_id"`
	Title         string                `json:"title"`
	Type          string                `json:"type"`
	Difficulty    string                `json:"difficulty"`
	Language      string                `json:"language"`
	PassingScore  int                   `json:"passing_score"`
	QuestionCount int                   `json:"question_count"`
	Questions     []QuestionView        `json:"questions"`
	Analytics     QuizAnalyticsResponse `json:"analytics"`
	CreatedAt     time.Time             `json:"created_at"`
}

// QuizListResponse lists the active quizzes of a document.
type QuizListResponse struct {
	DocumentID string         `json:"document_id"`
	Quizzes    []QuizResponse `json:"quizzes"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Details interface{} `json:"details,omitempty"`
}
