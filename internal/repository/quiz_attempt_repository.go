package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"studion/internal/domain"
	"studion/internal/repository/models"
	"studion/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxQuizAttemptRepository implements domain.QuizAttemptRepository using sqlx.
// At most one in_progress row per (user_id, quiz_id) is enforced by the
// ux_attempt_in_progress function-based unique index.
type sqlxQuizAttemptRepository struct {
	db *sqlx.DB
}

// NewQuizAttemptRepository creates a new instance of sqlxQuizAttemptRepository.
func NewQuizAttemptRepository(db *sqlx.DB) domain.QuizAttemptRepository {
	return &sqlxQuizAttemptRepository{db: db}
}

var (
	attemptSelect = "SELECT " + aliasColumns(models.QuizAttemptColumns) + " FROM quiz_attempts"
	attemptInsert = insertQuery("quiz_attempts", models.QuizAttemptColumns)

	// every column except id, quiz_id, user_id and created_at
	attemptUpdateColumns = append(append([]string{},
		models.QuizAttemptColumns[3:len(models.QuizAttemptColumns)-2]...), "updated_at")
	attemptUpdate = fmt.Sprintf("UPDATE quiz_attempts SET %s WHERE id = :%d AND status = :%d",
		assignments(1, attemptUpdateColumns), len(attemptUpdateColumns)+1, len(attemptUpdateColumns)+2)
)

func toDomainQuizAttempt(m *models.QuizAttempt) *domain.QuizAttempt {
	if m == nil {
		return nil
	}
	answers := make([]domain.AttemptAnswer, 0, len(m.Answers.V))
	for _, a := range m.Answers.V {
		answers = append(answers, domain.AttemptAnswer{
			QuestionID:    a.QuestionID,
			QuestionIndex: a.QuestionIndex,
			UserAnswer:    a.UserAnswer,
			IsCorrect:     a.IsCorrect,
			PointsEarned:  a.PointsEarned,
			TimeSpentMs:   a.TimeSpentMs,
			AnsweredAt:    a.AnsweredAt,
		})
	}
	strengths, weaknesses := []string(m.Strengths), []string(m.Weaknesses)
	if strengths == nil {
		strengths = []string{}
	}
	if weaknesses == nil {
		weaknesses = []string{}
	}
	return &domain.QuizAttempt{
		ID:               m.ID,
		QuizID:           m.QuizID,
		UserID:           m.UserID,
		Status:           domain.AttemptStatus(m.Status),
		Answers:          answers,
		Score:            m.Score,
		MaxScore:         m.MaxScore,
		Percentage:       m.Percentage,
		PointsEarned:     m.PointsEarned,
		CorrectCount:     m.CorrectCount,
		TimeSpentSeconds: m.TimeSpentSeconds,
		PerformanceLevel: domain.PerformanceLevel(m.PerformanceLevel.String),
		Passed:           m.Passed == 1,
		Feedback:         m.Feedback.String,
		Strengths:        strengths,
		Weaknesses:       weaknesses,
		Device: domain.DeviceMetadata{
			UserAgent: m.Device.V.UserAgent,
			IPAddress: m.Device.V.IPAddress,
			Platform:  m.Device.V.Platform,
		},
		StartedAt:   m.StartedAt,
		CompletedAt: util.NullTimeToPtr(m.CompletedAt),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromDomainQuizAttempt(a *domain.QuizAttempt) *models.QuizAttempt {
	if a == nil {
		return nil
	}
	answers := make([]models.Answer, 0, len(a.Answers))
	for _, ans := range a.Answers {
		answers = append(answers, models.Answer{
			QuestionID:    ans.QuestionID,
			QuestionIndex: ans.QuestionIndex,
			UserAnswer:    ans.UserAnswer,
			IsCorrect:     ans.IsCorrect,
			PointsEarned:  ans.PointsEarned,
			TimeSpentMs:   ans.TimeSpentMs,
			AnsweredAt:    ans.AnsweredAt,
		})
	}
	return &models.QuizAttempt{
		ID:               a.ID,
		QuizID:           a.QuizID,
		UserID:           a.UserID,
		Status:           string(a.Status),
		Answers:          models.NewJSON(answers),
		Score:            a.Score,
		MaxScore:         a.MaxScore,
		Percentage:       a.Percentage,
		PointsEarned:     a.PointsEarned,
		CorrectCount:     a.CorrectCount,
		TimeSpentSeconds: a.TimeSpentSeconds,
		PerformanceLevel: util.StringToNullString(string(a.PerformanceLevel)),
		Passed:           util.BoolToInt(a.Passed),
		Feedback:         util.StringToNullString(a.Feedback),
		Strengths:        models.StringSlice(a.Strengths),
		Weaknesses:       models.StringSlice(a.Weaknesses),
		Device: models.NewJSON(models.Device{
			UserAgent: a.Device.UserAgent,
			IPAddress: a.Device.IPAddress,
			Platform:  a.Device.Platform,
		}),
		StartedAt:   a.StartedAt,
		CompletedAt: util.TimePtrToNullTime(a.CompletedAt),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// Create inserts a new attempt. It returns domain.ErrAttemptAlreadyInProgress
// when the unique index rejects a second in-progress attempt.
func (r *sqlxQuizAttemptRepository) Create(ctx context.Context, attempt *domain.QuizAttempt) error {
	now := time.Now()
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = now
	}
	if attempt.StartedAt.IsZero() {
		attempt.StartedAt = now
	}
	attempt.UpdatedAt = now

	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, attemptInsert, fromDomainQuizAttempt(attempt).Args()...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAttemptAlreadyInProgress
		}
		return fmt.Errorf("failed to create quiz attempt: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when the attempt does not exist.
func (r *sqlxQuizAttemptRepository) GetByID(ctx context.Context, id string) (*domain.QuizAttempt, error) {
	var m models.QuizAttempt
	err := GetExecutor(ctx, r.db).GetContext(ctx, &m, attemptSelect+" WHERE id = :1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz attempt by id: %w", err)
	}
	return toDomainQuizAttempt(&m), nil
}

// FindInProgress returns nil, nil when the user has no open attempt on the quiz.
func (r *sqlxQuizAttemptRepository) FindInProgress(ctx context.Context, quizID, userID string) (*domain.QuizAttempt, error) {
	var m models.QuizAttempt
	query := attemptSelect + " WHERE quiz_id = :1 AND user_id = :2 AND status = :3"
	err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, quizID, userID, string(domain.AttemptInProgress))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find in-progress attempt: %w", err)
	}
	return toDomainQuizAttempt(&m), nil
}

// UpdateIfStatus writes the attempt only while the stored status is expected.
func (r *sqlxQuizAttemptRepository) UpdateIfStatus(ctx context.Context, attempt *domain.QuizAttempt, expected domain.AttemptStatus) (bool, error) {
	attempt.UpdatedAt = time.Now()
	m := fromDomainQuizAttempt(attempt)

	all := m.Args()
	args := append(append([]interface{}{}, all[3:len(all)-2]...), all[len(all)-1], m.ID, string(expected))

	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, attemptUpdate, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update quiz attempt: %w", err)
	}
	return rowsAffected(res)
}
