package models

import (
	"database/sql"
	"time"
)

// Answer is the stored JSON shape of one answer record.
type Answer struct {
	QuestionID    string    `json:"questionId"`
	QuestionIndex int       `json:"questionIndex"`
	UserAnswer    string    `json:"userAnswer"`
	IsCorrect     bool      `json:"isCorrect"`
	PointsEarned  int       `json:"pointsEarned"`
	TimeSpentMs   int64     `json:"timeSpent"`
	AnsweredAt    time.Time `json:"answeredAt"`
}

// Device is the stored JSON shape of the client metadata.
type Device struct {
	UserAgent string `json:"userAgent,omitempty"`
	IPAddress string `json:"ipAddress,omitempty"`
	Platform  string `json:"platform,omitempty"`
}

// QuizAttempt is a row of the quiz_attempts table.
type QuizAttempt struct {
	ID               string         `db:"id"`
	QuizID           string         `db:"quiz_id"`
	UserID           string         `db:"user_id"`
	Status           string         `db:"status"`
	Answers          JSON[[]Answer] `db:"answers"`
	Score            int            `db:"score"`
	MaxScore         int            `db:"max_score"`
	Percentage       float64        `db:"percentage"`
	PointsEarned     int            `db:"points_earned"`
	CorrectCount     int            `db:"correct_count"`
	TimeSpentSeconds int            `db:"time_spent_seconds"`
	PerformanceLevel sql.NullString `db:"performance_level"`
	Passed           int            `db:"passed"`
	Feedback         sql.NullString `db:"feedback"`
	Strengths        StringSlice    `db:"strengths"`
	Weaknesses       StringSlice    `db:"weaknesses"`
	Device           JSON[Device]   `db:"device"`
	StartedAt        time.Time      `db:"started_at"`
	CompletedAt      sql.NullTime   `db:"completed_at"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

// QuizAttemptColumns lists the quiz_attempts columns in the order of QuizAttempt.Args.
var QuizAttemptColumns = []string{
	"id", "quiz_id", "user_id", "status", "answers", "score", "max_score", "percentage",
	"points_earned", "correct_count", "time_spent_seconds", "performance_level", "passed",
	"feedback", "strengths", "weaknesses", "device", "started_at", "completed_at",
	"created_at", "updated_at",
}

// Args returns the bind values in QuizAttemptColumns order.
func (a *QuizAttempt) Args() []interface{} {
	return []interface{}{
		a.ID, a.QuizID, a.UserID, a.Status, a.Answers, a.Score, a.MaxScore, a.Percentage,
		a.PointsEarned, a.CorrectCount, a.TimeSpentSeconds, a.PerformanceLevel, a.Passed,
		a.Feedback, a.Strengths, a.Weaknesses, a.Device, a.StartedAt, a.CompletedAt,
		a.CreatedAt, a.UpdatedAt,
	}
}
