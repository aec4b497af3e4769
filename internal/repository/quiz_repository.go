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

// sqlxQuizRepository implements domain.QuizRepository using sqlx.
type sqlxQuizRepository struct {
	db *sqlx.DB
}

// NewQuizRepository creates a new instance of sqlxQuizRepository.
func NewQuizRepository(db *sqlx.DB) domain.QuizRepository {
	return &sqlxQuizRepository{db: db}
}

var (
	quizSelect = "SELECT " + aliasColumns(models.QuizColumns) + " FROM quizzes"
	quizInsert = insertQuery("quizzes", models.QuizColumns)
)

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	questions := make([]domain.Question, 0, len(m.Questions.V))
	for _, q := range m.Questions.V {
		options := q.Options
		if options == nil {
			options = []string{}
		}
		questions = append(questions, domain.Question{
			ID:                 q.ID,
			Text:               q.Text,
			Options:            options,
			CorrectAnswer:      q.CorrectAnswer,
			CorrectAnswerIndex: q.CorrectAnswerIndex,
			Explanation:        q.Explanation,
			Points:             q.Points,
			SkillCategory:      domain.SkillCategory(q.SkillCategory),
			TopicArea:          q.TopicArea,
			Strength:           q.Strength,
			Weakness:           q.Weakness,
		})
	}
	return &domain.Quiz{
		ID:           m.ID,
		DocumentID:   m.DocumentID,
		OwnerID:      m.OwnerID,
		Title:        m.Title,
		Type:         domain.QuizType(m.QuizType),
		Difficulty:   m.Difficulty.String,
		Language:     m.Language.String,
		PassingScore: m.PassingScore,
		Questions:    questions,
		Analytics: domain.QuizAnalytics{
			AttemptCount:     m.AttemptCount,
			AverageScore:     m.AverageScore,
			AverageTimeSpent: m.AverageTimeSpent,
			LastAttemptAt:    util.NullTimeToPtr(m.LastAttemptAt),
		},
		Status:    domain.QuizStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromDomainQuiz(q *domain.Quiz) *models.Quiz {
	if q == nil {
		return nil
	}
	questions := make([]models.Question, 0, len(q.Questions))
	for _, dq := range q.Questions {
		questions = append(questions, models.Question{
			ID:                 dq.ID,
			Text:               dq.Text,
			Options:            dq.Options,
			CorrectAnswer:      dq.CorrectAnswer,
			CorrectAnswerIndex: dq.CorrectAnswerIndex,
			Explanation:        dq.Explanation,
			Points:             dq.Points,
			SkillCategory:      string(dq.SkillCategory),
			TopicArea:          dq.TopicArea,
			Strength:           dq.Strength,
			Weakness:           dq.Weakness,
		})
	}
	return &models.Quiz{
		ID:               q.ID,
		DocumentID:       q.DocumentID,
		OwnerID:          q.OwnerID,
		Title:            q.Title,
		QuizType:         string(q.Type),
		Difficulty:       util.StringToNullString(q.Difficulty),
		Language:         util.StringToNullString(q.Language),
		PassingScore:     q.PassingScore,
		Questions:        models.NewJSON(questions),
		AttemptCount:     q.Analytics.AttemptCount,
		AverageScore:     q.Analytics.AverageScore,
		AverageTimeSpent: q.Analytics.AverageTimeSpent,
		LastAttemptAt:    util.TimePtrToNullTime(q.Analytics.LastAttemptAt),
		Status:           string(q.Status),
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}

// SaveQuizzes inserts every quiz. Callers wanting all-or-nothing run it
// inside a transaction.
func (r *sqlxQuizRepository) SaveQuizzes(ctx context.Context, quizzes []*domain.Quiz) error {
	exec := GetExecutor(ctx, r.db)
	now := time.Now()
	for _, q := range quizzes {
		if q.CreatedAt.IsZero() {
			q.CreatedAt = now
		}
		q.UpdatedAt = now
		if q.Status == "" {
			q.Status = domain.QuizActive
		}
		if _, err := exec.ExecContext(ctx, quizInsert, fromDomainQuiz(q).Args()...); err != nil {
			return fmt.Errorf("failed to save quiz %s: %w", q.ID, err)
		}
	}
	return nil
}

// GetByID returns nil, nil when the quiz does not exist.
func (r *sqlxQuizRepository) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var m models.Quiz
	err := GetExecutor(ctx, r.db).GetContext(ctx, &m, quizSelect+" WHERE id = :1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by id: %w", err)
	}
	return toDomainQuiz(&m), nil
}

// ListByDocument returns the active quizzes generated from a document.
func (r *sqlxQuizRepository) ListByDocument(ctx context.Context, documentID string) ([]*domain.Quiz, error) {
	var rows []models.Quiz
	query := quizSelect + " WHERE document_id = :1 AND status = :2 ORDER BY created_at ASC"
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, documentID, string(domain.QuizActive)); err != nil {
		return nil, fmt.Errorf("failed to list quizzes by document: %w", err)
	}
	quizzes := make([]*domain.Quiz, 0, len(rows))
	for i := range rows {
		quizzes = append(quizzes, toDomainQuiz(&rows[i]))
	}
	return quizzes, nil
}

// RecordAttempt updates the running averages from their stored values, so
// concurrent completions do not overwrite each other.
func (r *sqlxQuizRepository) RecordAttempt(ctx context.Context, quizID string, percentage float64, timeSpentSeconds int, at time.Time) error {
	query := `UPDATE quizzes SET
		average_score = (average_score * attempt_count + :1) / (attempt_count + 1),
		average_time_spent = (average_time_spent * attempt_count + :2) / (attempt_count + 1),
		attempt_count = attempt_count + 1,
		last_attempt_at = :3,
		updated_at = :4
		WHERE id = :5`
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, percentage, timeSpentSeconds, at, time.Now(), quizID)
	if err != nil {
		return fmt.Errorf("failed to record quiz attempt: %w", err)
	}
	ok, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFoundError("quiz not found: " + quizID)
	}
	return nil
}

// SoftDelete marks the quiz deleted. Attempts keep referencing it.
func (r *sqlxQuizRepository) SoftDelete(ctx context.Context, id string) error {
	query := "UPDATE quizzes SET status = :1, updated_at = :2 WHERE id = :3 AND status = :4"
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, string(domain.QuizDeleted), time.Now(), id, string(domain.QuizActive))
	if err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}
	ok, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFoundError("quiz not found: " + id)
	}
	return nil
}
