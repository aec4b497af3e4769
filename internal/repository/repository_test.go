package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"studion/internal/domain"
	"studion/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a new sqlx.DB instance and sqlmock for repository testing.
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })
	return sqlxDB, mock
}

func TestQueryBuilders(t *testing.T) {
	assert.Equal(t, `id "id", owner_id "owner_id"`, aliasColumns([]string{"id", "owner_id"}))
	assert.Equal(t, ":3, :4", placeholders(3, 2))
	assert.Equal(t, "a = :1, b = :2", assignments(1, []string{"a", "b"}))
	assert.Equal(t, "INSERT INTO t (a, b) VALUES (:1, :2)", insertQuery("t", []string{"a", "b"}))

	assert.Contains(t, documentUpdate, "updated_at = :29 WHERE id = :30")
	assert.NotContains(t, documentUpdate, "created_at")
	assert.Contains(t, attemptUpdate, "WHERE id = :18 AND status = :19")
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(errors.New("ORA-00001: unique constraint (STUDION.UX_ATTEMPT_IN_PROGRESS) violated")))
	assert.False(t, isUniqueViolation(errors.New("ORA-12541: TNS:no listener")))
	assert.False(t, isUniqueViolation(nil))
}

func documentRow(now time.Time) []driver.Value {
	return []driver.Value{
		"doc1", "user1", "failed", "failed", "notes.md", "uploads/notes.md",
		"text", "summary", `["k1"]`, nil, int64(1), int64(250),
		"en", "basic", "fair", int64(3), int64(1), int64(0),
		now, nil, nil, int64(0), int64(0),
		nil, nil, "AI_SERVICE_FAILURE:timeout", "AI completion failed", "processing", now,
		now, now,
	}
}

func TestDocumentRepository_GetByID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewDocumentRepository(db)
	now := time.Now().Truncate(time.Second)

	mock.ExpectQuery(`FROM documents WHERE id = :1`).
		WithArgs("doc1").
		WillReturnRows(sqlmock.NewRows(models.DocumentColumns).AddRow(documentRow(now)...))

	doc, err := repo.GetByID(context.Background(), "doc1")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, domain.DocumentFailed, doc.Status)
	assert.Equal(t, "summary", doc.Content.Summary)
	assert.Equal(t, []string{"k1"}, doc.Content.KeyPoints)
	assert.Equal(t, []string{}, doc.Content.Topics)
	assert.Equal(t, 250, doc.Metadata.WordCount)
	assert.Equal(t, domain.QualityFair, doc.Metadata.Quality)
	require.NotNil(t, doc.Analytics.LastViewedAt)
	assert.Nil(t, doc.Processing.ProcessedAt)
	require.NotNil(t, doc.Error)
	assert.Equal(t, domain.StageProcessing, doc.Error.Stage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewDocumentRepository(db)

	mock.ExpectQuery(`FROM documents WHERE id = :1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(models.DocumentColumns))

	doc, err := repo.GetByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, doc)
}

func TestDocumentRepository_CreateAndUpdate(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewDocumentRepository(db)
	doc := domain.NewDocument("doc1", "user1", "notes.md", "uploads/notes.md")

	mock.ExpectExec(`INSERT INTO documents \(id, owner_id`).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Create(context.Background(), doc))

	mock.ExpectExec(`UPDATE documents SET owner_id = :1`).WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.Update(context.Background(), doc)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_TransitionStatus(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewDocumentRepository(db)
	from := []domain.DocumentStatus{domain.DocumentPending, domain.DocumentFailed}

	query := regexp.QuoteMeta("WHERE id = :4 AND status IN (:5, :6)")
	mock.ExpectExec(query).
		WithArgs("processing", sqlmock.AnyArg(), sqlmock.AnyArg(), "doc1", "pending", "failed").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.TransitionStatus(context.Background(), "doc1", from, domain.DocumentProcessing, domain.StageAIAnalysis)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TransitionStatus(context.Background(), "doc1", from, domain.DocumentProcessing, domain.StageAIAnalysis)
	require.NoError(t, err)
	assert.False(t, ok, "second caller loses the race")

	_, err = repo.TransitionStatus(context.Background(), "doc1", nil, domain.DocumentProcessing, domain.StageAIAnalysis)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_ListByStatus(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewDocumentRepository(db)
	now := time.Now()

	mock.ExpectQuery(`WHERE status = :1 ORDER BY created_at ASC FETCH FIRST :2 ROWS ONLY`).
		WithArgs("failed", 5).
		WillReturnRows(sqlmock.NewRows(models.DocumentColumns).AddRow(documentRow(now)...))

	docs, err := repo.ListByStatus(context.Background(), domain.DocumentFailed, 5)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "doc1", docs[0].ID)
}

func sampleQuiz() *domain.Quiz {
	return &domain.Quiz{
		ID: "quiz1", DocumentID: "doc1", OwnerID: "user1", Title: "Cells",
		Type: domain.QuizMultipleChoice, Difficulty: "medium", Language: "en", PassingScore: 70,
		Questions: []domain.Question{{
			ID: "q1", Text: "Which?", Options: []string{"A", "B", "C", "D"},
			CorrectAnswer: "B", CorrectAnswerIndex: 1, Points: 1, SkillCategory: domain.SkillFactualRecall,
		}},
	}
}

func TestQuizRepository_SaveQuizzesInTransaction(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizRepository(db)
	tm := NewTransactionManagerAdapter(db, nil)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO quizzes`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO quizzes`).WillReturnError(errors.New("ORA-01400: cannot insert NULL"))
	mock.ExpectRollback()

	second := sampleQuiz()
	second.ID = "quiz2"
	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		return repo.SaveQuizzes(ctx, []*domain.Quiz{sampleQuiz(), second})
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepository_GetByID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizRepository(db)
	now := time.Now()

	questions, err := fromDomainQuiz(sampleQuiz()).Questions.Value()
	require.NoError(t, err)

	mock.ExpectQuery(`FROM quizzes WHERE id = :1`).WithArgs("quiz1").WillReturnRows(
		sqlmock.NewRows(models.QuizColumns).AddRow(
			"quiz1", "doc1", "user1", "Cells", "multiple_choice", "medium", "en",
			int64(70), questions, int64(2), 65.0, 120.0,
			now, "active", now, now,
		))

	quiz, err := repo.GetByID(context.Background(), "quiz1")
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "B", quiz.Questions[0].CorrectAnswer)
	assert.Equal(t, domain.SkillFactualRecall, quiz.Questions[0].SkillCategory)
	assert.Equal(t, 2, quiz.Analytics.AttemptCount)
	assert.True(t, quiz.IsActive())
}

func TestQuizRepository_RecordAttemptAndSoftDelete(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizRepository(db)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("attempt_count = attempt_count + 1")).
		WithArgs(60.0, 300, now, sqlmock.AnyArg(), "quiz1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.RecordAttempt(context.Background(), "quiz1", 60, 300, now))

	mock.ExpectExec(`UPDATE quizzes SET status = :1`).
		WithArgs("deleted", sqlmock.AnyArg(), "quiz1", "active").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.SoftDelete(context.Background(), "quiz1")
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizAttemptRepository_CreateDuplicateInProgress(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizAttemptRepository(db)

	mock.ExpectExec(`INSERT INTO quiz_attempts`).
		WillReturnError(errors.New("ORA-00001: unique constraint (STUDION.UX_ATTEMPT_IN_PROGRESS) violated"))

	err := repo.Create(context.Background(), domain.NewQuizAttempt("a1", "quiz1", "user1", domain.DeviceMetadata{}))
	assert.ErrorIs(t, err, domain.ErrAttemptAlreadyInProgress)
}

func TestQuizAttemptRepository_FindInProgress(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizAttemptRepository(db)
	now := time.Now()

	mock.ExpectQuery(`WHERE quiz_id = :1 AND user_id = :2 AND status = :3`).
		WithArgs("quiz1", "user1", "in_progress").
		WillReturnRows(sqlmock.NewRows(models.QuizAttemptColumns).AddRow(
			"a1", "quiz1", "user1", "in_progress",
			`[{"questionId":"q1","questionIndex":0,"userAnswer":"B","isCorrect":true,"pointsEarned":10,"timeSpent":1500}]`,
			int64(0), int64(0), 0.0, int64(0), int64(0), int64(0), nil, int64(0),
			nil, nil, nil, `{"platform":"web"}`, now, nil, now, now,
		))
	mock.ExpectQuery(`WHERE quiz_id = :1 AND user_id = :2 AND status = :3`).
		WillReturnRows(sqlmock.NewRows(models.QuizAttemptColumns))

	attempt, err := repo.FindInProgress(context.Background(), "quiz1", "user1")
	require.NoError(t, err)
	require.NotNil(t, attempt)
	require.Len(t, attempt.Answers, 1)
	assert.Equal(t, int64(1500), attempt.Answers[0].TimeSpentMs)
	assert.Equal(t, "web", attempt.Device.Platform)
	assert.Equal(t, []string{}, attempt.Strengths)
	assert.False(t, attempt.Passed)
	assert.Nil(t, attempt.CompletedAt)

	attempt, err = repo.FindInProgress(context.Background(), "quiz1", "user2")
	assert.NoError(t, err)
	assert.Nil(t, attempt)
}

func TestQuizAttemptRepository_UpdateIfStatus(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizAttemptRepository(db)
	attempt := domain.NewQuizAttempt("a1", "quiz1", "user1", domain.DeviceMetadata{})
	attempt.Status = domain.AttemptCompleted
	attempt.Passed = true

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = :18 AND status = :19")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.UpdateIfStatus(context.Background(), attempt, domain.AttemptInProgress)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
