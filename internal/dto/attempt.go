package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// DeviceRequest is client metadata captured when an attempt starts.
type DeviceRequest struct {
	UserAgent string `json:"user_agent,omitempty"`
	Platform  string `json:"platform,omitempty"`
}

// StartAttemptRequest represents the request body for starting an attempt
// @Description Request body for starting or resuming a quiz attempt
type StartAttemptRequest struct {
	QuizID string        `json:"quiz_id"`
	Device DeviceRequest `json:"device"`
}

// ProgressResponse is the running progress of an attempt.
type ProgressResponse struct {
	Answered   int     `json:"answered"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// AttemptResponse is returned by start. Resumed is true when an open
// attempt already existed.
type AttemptResponse struct {
	AttemptID string           `json:"attempt_id"`
	QuizID    string           `json:"quiz_id"`
	Status    string           `json:"status"`
	Resumed   bool             `json:"resumed"`
	StartedAt time.Time        `json:"started_at"`
	Progress  ProgressResponse `json:"progress"`
	Quiz      QuizResponse     `json:"quiz"`
}

// AnswerValue accepts either a JSON string or an option index.
type AnswerValue struct {
	Text  string
	Index *int
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *AnswerValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*a = AnswerValue{}
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &a.Text)
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("user_answer must be a string or an option index: %w", err)
	}
	a.Text = strconv.Itoa(n)
	a.Index = &n
	return nil
}

// SubmitAnswerRequest represents the request body for submitting an answer
// @Description Request body for answering one question of an attempt
type SubmitAnswerRequest struct {
	QuestionIndex *int        `json:"question_index"`
	UserAnswer    AnswerValue `json:"user_answer" swaggertype:"string"`
	TimeSpentMs   int64       `json:"time_spent_ms"`
}

// AnswerFeedbackResponse is returned for every submitted answer.
type AnswerFeedbackResponse struct {
	QuestionIndex int              `json:"question_index"`
	IsCorrect     bool             `json:"is_correct"`
	PointsEarned  int              `json:"points_earned"`
	CorrectAnswer string           `json:"correct_answer"`
	Explanation   string           `json:"explanation"`
	Feedback      string           `json:"feedback"`
	Progress      ProgressResponse `json:"progress"`
}

// AttemptSummaryResponse is returned when an attempt is completed.
type AttemptSummaryResponse struct {
	AttemptID        string     `json:"attempt_id"`
	QuizID           string     `json:"quiz_id"`
	Status           string     `json:"status"`
	Score            int        `json:"score"`
	MaxScore         int        `json:"max_score"`
	Percentage       float64    `json:"percentage"`
	CorrectCount     int        `json:"correct_count"`
	TotalQuestions   int        `json:"total_questions"`
	TimeSpentSeconds int        `json:"time_spent_seconds"`
	PerformanceLevel string     `json:"performance_level"`
	Passed           bool       `json:"passed"`
	PassingScore     int        `json:"passing_score"`
	Feedback         string     `json:"feedback"`
	Strengths        []string   `json:"strengths"`
	Weaknesses       []string   `json:"weaknesses"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// QuestionResult joins one question with the answer given to it.
type QuestionResult struct {
	Index         int      `json:"index"`
	QuestionID    string   `json:"question_id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	SkillCategory string   `json:"skill_category"`
	TopicArea     string   `json:"topic_area"`
	Answered      bool     `json:"answered"`
	UserAnswer    string   `json:"user_answer,omitempty"`
	IsCorrect     bool     `json:"is_correct"`
	PointsEarned  int      `json:"points_earned"`
	TimeSpentMs   int64    `json:"time_spent_ms"`
	Feedback      string   `json:"feedback,omitempty"`
}

// SkillBreakdown counts correct answers per skill category.
type SkillBreakdown struct {
	SkillCategory string  `json:"skill_category"`
	Correct       int     `json:"correct"`
	Total         int     `json:"total"`
	Percentage    float64 `json:"percentage"`
}

// AttemptResultsResponse is the full review of a completed attempt.
type AttemptResultsResponse struct {
	Summary   AttemptSummaryResponse `json:"summary"`
	QuizTitle string                 `json:"quiz_title"`
	Questions []QuestionResult       `json:"questions"`
	Skills    []SkillBreakdown       `json:"skills"`
}
