package models

import (
	"database/sql"
	"time"
)

// Question is the stored JSON shape of one question inside quizzes.questions.
type Question struct {
	ID                 string   `json:"id"`
	Text               string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswer      string   `json:"correctAnswer"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
	Points             int      `json:"points"`
	SkillCategory      string   `json:"skillCategory"`
	TopicArea          string   `json:"topicArea"`
	Strength           string   `json:"strength"`
	Weakness           string   `json:"weakness"`
}

// Quiz is a row of the quizzes table.
type Quiz struct {
	ID               string           `db:"id"`
	DocumentID       string           `db:"document_id"`
	OwnerID          string           `db:"owner_id"`
	Title            string           `db:"title"`
	QuizType         string           `db:"quiz_type"`
	Difficulty       sql.NullString   `db:"difficulty"`
	Language         sql.NullString   `db:"language"`
	PassingScore     int              `db:"passing_score"`
	Questions        JSON[[]Question] `db:"questions"`
	AttemptCount     int              `db:"attempt_count"`
	AverageScore     float64          `db:"average_score"`
	AverageTimeSpent float64          `db:"average_time_spent"`
	LastAttemptAt    sql.NullTime     `db:"last_attempt_at"`
	Status           string           `db:"status"`
	CreatedAt        time.Time        `db:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at"`
}

// QuizColumns lists the quizzes columns in the order of Quiz.Args.
var QuizColumns = []string{
	"id", "document_id", "owner_id", "title", "quiz_type", "difficulty", "language",
	"passing_score", "questions", "attempt_count", "average_score", "average_time_spent",
	"last_attempt_at", "status", "created_at", "updated_at",
}

// Args returns the bind values in QuizColumns order.
func (q *Quiz) Args() []interface{} {
	return []interface{}{
		q.ID, q.DocumentID, q.OwnerID, q.Title, q.QuizType, q.Difficulty, q.Language,
		q.PassingScore, q.Questions, q.AttemptCount, q.AverageScore, q.AverageTimeSpent,
		q.LastAttemptAt, q.Status, q.CreatedAt, q.UpdatedAt,
	}
}
