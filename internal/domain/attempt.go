package domain

import (
	"time"
)

// AttemptStatus is the state of a quiz attempt.
type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
)

// PerformanceLevel buckets a completed attempt by percentage.
type PerformanceLevel string

const (
	PerformanceExcellent        PerformanceLevel = "excellent"
	PerformanceGood             PerformanceLevel = "good"
	PerformanceAverage          PerformanceLevel = "average"
	PerformanceNeedsImprovement PerformanceLevel = "needs_improvement"
	PerformancePoor             PerformanceLevel = "poor"
)

// PerformanceLevelFor returns the bucket for a percentage in [0, 100].
func PerformanceLevelFor(percentage float64) PerformanceLevel {
	switch {
	case percentage >= 90:
		return PerformanceExcellent
	case percentage >= 75:
		return PerformanceGood
	case percentage >= 60:
		return PerformanceAverage
	case percentage >= 40:
		return PerformanceNeedsImprovement
	default:
		return PerformancePoor
	}
}

// AttemptAnswer is one submitted answer. Records are append-only.
type AttemptAnswer struct {
	QuestionID    string    `json:"questionId"`
	QuestionIndex int       `json:"questionIndex"`
	UserAnswer    string    `json:"userAnswer"`
	IsCorrect     bool      `json:"isCorrect"`
	PointsEarned  int       `json:"pointsEarned"`
	TimeSpentMs   int64     `json:"timeSpent"`
	AnsweredAt    time.Time `json:"answeredAt"`
}

// DeviceMetadata is supplied by the quiz-taking client on start.
type DeviceMetadata struct {
	UserAgent string `json:"userAgent,omitempty"`
	IPAddress string `json:"ipAddress,omitempty"`
	Platform  string `json:"platform,omitempty"`
}

// QuizAttempt is one user's pass through a quiz.
type QuizAttempt struct {
	ID               string
	QuizID           string
	UserID           string
	Status           AttemptStatus
	Answers          []AttemptAnswer
	Score            int
	MaxScore         int
	Percentage       float64
	PointsEarned     int
	CorrectCount     int
	TimeSpentSeconds int
	PerformanceLevel PerformanceLevel
	Passed           bool
	Feedback         string
	Strengths        []string
	Weaknesses       []string
	Device           DeviceMetadata
	StartedAt        time.Time
	CompletedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewQuizAttempt creates an in-progress attempt with no answers.
func NewQuizAttempt(id, quizID, userID string, device DeviceMetadata) *QuizAttempt {
	now := time.Now()
	return &QuizAttempt{
		ID:        id,
		QuizID:    quizID,
		UserID:    userID,
		Status:    AttemptInProgress,
		Answers:   []AttemptAnswer{},
		Device:    device,
		StartedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsInProgress reports whether answers may still be submitted.
func (a *QuizAttempt) IsInProgress() bool {
	return a.Status == AttemptInProgress
}

// AnsweredCount is the number of distinct question indexes answered so far.
func (a *QuizAttempt) AnsweredCount() int {
	return len(a.LatestAnswers())
}

// LatestAnswers returns the most recent record per question index.
func (a *QuizAttempt) LatestAnswers() map[int]AttemptAnswer {
	latest := make(map[int]AttemptAnswer, len(a.Answers))
	for _, ans := range a.Answers {
		latest[ans.QuestionIndex] = ans
	}
	return latest
}
