package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"studion/internal/config"
	"studion/internal/domain"
	"studion/internal/dto"
	"studion/internal/handler"
	"studion/internal/middleware"
	"studion/internal/service"
	"studion/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUser    = "user-1"
	testDocID   = "01HZX3Q4V5W6X7Y8Z9A0B1C2D3"
	testQuizID  = "01HZX3Q4V5W6X7Y8Z9A0B1C2D4"
	testAttempt = "01HZX3Q4V5W6X7Y8Z9A0B1C2D5"
)

// --- Manual Mocks ---

type MockDocumentService struct {
	CreateDocumentFunc  func(ctx context.Context, in service.UploadInput) (*dto.DocumentResponse, error)
	GetDocumentFunc     func(ctx context.Context, documentID, ownerID string) (*dto.DocumentResponse, error)
	StartProcessingFunc func(ctx context.Context, documentID, ownerID string, req config.GenerationRequest) (*dto.ProcessingAckResponse, error)
	RecordViewFunc      func(ctx context.Context, documentID, ownerID string) (*dto.DocumentResponse, error)
	RecordDownloadFunc  func(ctx context.Context, documentID, ownerID string) (*dto.DocumentResponse, error)
}

func (m *MockDocumentService) CreateDocument(ctx context.Context, in service.UploadInput) (*dto.DocumentResponse, error) {
	if m.CreateDocumentFunc != nil {
		return m.CreateDocumentFunc(ctx, in)
	}
	panic("MockDocumentService.CreateDocumentFunc not implemented")
}
func (m *MockDocumentService) GetDocument(ctx context.Context, documentID, ownerID string) (*dto.DocumentResponse, error) {
	if m.GetDocumentFunc != nil {
		return m.GetDocumentFunc(ctx, documentID, ownerID)
	}
	panic("MockDocumentService.GetDocumentFunc not implemented")
}
func (m *MockDocumentService) StartProcessing(ctx context.Context, documentID, ownerID string, req config.GenerationRequest) (*dto.ProcessingAckResponse, error) {
	if m.StartProcessingFunc != nil {
		return m.StartProcessingFunc(ctx, documentID, ownerID, req)
	}
	panic("MockDocumentService.StartProcessingFunc not implemented")
}
func (m *MockDocumentService) RecordView(ctx context.Context, documentID, ownerID string) (*dto.DocumentResponse, error) {
	if m.RecordViewFunc != nil {
		return m.RecordViewFunc(ctx, documentID, ownerID)
	}
	panic("MockDocumentService.RecordViewFunc not implemented")
}
func (m *MockDocumentService) RecordDownload(ctx context.Context, documentID, ownerID string) (*dto.DocumentResponse, error) {
	if m.RecordDownloadFunc != nil {
		return m.RecordDownloadFunc(ctx, documentID, ownerID)
	}
	panic("MockDocumentService.RecordDownloadFunc not implemented")
}
func (m *MockDocumentService) ProcessPending(ctx context.Context, limit, workers int) (int, error) {
	panic("MockDocumentService.ProcessPending not used by handlers")
}

type MockQuizService struct {
	GetQuizFunc             func(ctx context.Context, quizID, ownerID string) (*dto.QuizResponse, error)
	ListDocumentQuizzesFunc func(ctx context.Context, documentID, ownerID string) (*dto.QuizListResponse, error)
	DeleteQuizFunc          func(ctx context.Context, quizID, ownerID string) error
}

func (m *MockQuizService) GetQuiz(ctx context.Context, quizID, ownerID string) (*dto.QuizResponse, error) {
	if m.GetQuizFunc != nil {
		return m.GetQuizFunc(ctx, quizID, ownerID)
	}
	panic("MockQuizService.GetQuizFunc not implemented")
}
func (m *MockQuizService) ListDocumentQuizzes(ctx context.Context, documentID, ownerID string) (*dto.QuizListResponse, error) {
	if m.ListDocumentQuizzesFunc != nil {
		return m.ListDocumentQuizzesFunc(ctx, documentID, ownerID)
	}
	panic("MockQuizService.ListDocumentQuizzesFunc not implemented")
}
func (m *MockQuizService) DeleteQuiz(ctx context.Context, quizID, ownerID string) error {
	if m.DeleteQuizFunc != nil {
		return m.DeleteQuizFunc(ctx, quizID, ownerID)
	}
	panic("MockQuizService.DeleteQuizFunc not implemented")
}

type MockAttemptService struct {
	StartAttemptFunc    func(ctx context.Context, quizID, userID string, device domain.DeviceMetadata) (*dto.AttemptResponse, error)
	SubmitAnswerFunc    func(ctx context.Context, in service.SubmitAnswerInput) (*dto.AnswerFeedbackResponse, error)
	CompleteAttemptFunc func(ctx context.Context, attemptID, userID string) (*dto.AttemptSummaryResponse, error)
	GetResultsFunc      func(ctx context.Context, attemptID, userID string) (*dto.AttemptResultsResponse, error)
}

func (m *MockAttemptService) StartAttempt(ctx context.Context, quizID, userID string, device domain.DeviceMetadata) (*dto.AttemptResponse, error) {
	if m.StartAttemptFunc != nil {
		return m.StartAttemptFunc(ctx, quizID, userID, device)
	}
	panic("MockAttemptService.StartAttemptFunc not implemented")
}
func (m *MockAttemptService) SubmitAnswer(ctx context.Context, in service.SubmitAnswerInput) (*dto.AnswerFeedbackResponse, error) {
	if m.SubmitAnswerFunc != nil {
		return m.SubmitAnswerFunc(ctx, in)
	}
	panic("MockAttemptService.SubmitAnswerFunc not implemented")
}
func (m *MockAttemptService) CompleteAttempt(ctx context.Context, attemptID, userID string) (*dto.AttemptSummaryResponse, error) {
	if m.CompleteAttemptFunc != nil {
		return m.CompleteAttemptFunc(ctx, attemptID, userID)
	}
	panic("MockAttemptService.CompleteAttemptFunc not implemented")
}
func (m *MockAttemptService) GetResults(ctx context.Context, attemptID, userID string) (*dto.AttemptResultsResponse, error) {
	if m.GetResultsFunc != nil {
		return m.GetResultsFunc(ctx, attemptID, userID)
	}
	panic("MockAttemptService.GetResultsFunc not implemented")
}

// --- Helpers ---

type mocks struct {
	docs     *MockDocumentService
	quizzes  *MockQuizService
	attempts *MockAttemptService
}

func setupApp(m mocks, checks map[string]handler.HealthCheck) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	v := validation.NewValidator()
	handler.RegisterRoutes(app.Group("/api"), handler.Handlers{
		Documents: handler.NewDocumentHandler(m.docs, m.quizzes, v),
		Quizzes:   handler.NewQuizHandler(m.quizzes, v),
		Attempts:  handler.NewAttemptHandler(m.attempts, v),
		Health:    handler.NewHealthHandler(checks),
	})
	return app
}

func newMocks() mocks {
	return mocks{docs: &MockDocumentService{}, quizzes: &MockQuizService{}, attempts: &MockAttemptService{}}
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(middleware.UserIDHeader, testUser)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

// --- Tests ---

func TestRoutes_RequireUser(t *testing.T) {
	app := setupApp(newMocks(), nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/documents/"+testDocID, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateDocument(t *testing.T) {
	m := newMocks()
	var got service.UploadInput
	m.docs.CreateDocumentFunc = func(ctx context.Context, in service.UploadInput) (*dto.DocumentResponse, error) {
		got = in
		return &dto.DocumentResponse{ID: testDocID, OwnerID: in.OwnerID, Status: "processing"}, nil
	}
	app := setupApp(m, nil)

	resp, body := doRequest(t, app, http.MethodPost, "/api/documents", map[string]interface{}{
		"file_name":      "notes.txt",
		"file_path":      "uploads/notes.txt",
		"immediate":      true,
		"question_type":  "true_false",
		"question_count": 5,
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, testUser, got.OwnerID)
	assert.True(t, got.Immediate)
	assert.Equal(t, "true_false", got.Generation.QuestionType)
	assert.Equal(t, 5, got.Generation.QuestionCount)

	var doc dto.DocumentResponse
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, testDocID, doc.ID)
}

func TestCreateDocument_ValidationError(t *testing.T) {
	app := setupApp(newMocks(), nil)

	resp, body := doRequest(t, app, http.MethodPost, "/api/documents", map[string]interface{}{
		"question_type": "essay",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var out middleware.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "VALIDATION_ERROR", out.Code)
	assert.Len(t, out.Errors, 2)
}

func TestGetDocument(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		err    error
		status int
		code   string
	}{
		{name: "found", id: testDocID, status: http.StatusOK},
		{name: "bad id", id: "nope", status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
		{name: "not found", id: testDocID, err: domain.NewNotFoundError("document not found"), status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "internal", id: testDocID, err: errors.New("db down"), status: http.StatusInternalServerError, code: "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks()
			m.docs.GetDocumentFunc = func(ctx context.Context, documentID, ownerID string) (*dto.DocumentResponse, error) {
				assert.Equal(t, testUser, ownerID)
				if tt.err != nil {
					return nil, tt.err
				}
				return &dto.DocumentResponse{ID: documentID}, nil
			}
			app := setupApp(m, nil)

			resp, body := doRequest(t, app, http.MethodGet, "/api/documents/"+tt.id, nil)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.code != "" {
				assert.Contains(t, string(body), `"code":"`+tt.code+`"`)
			}
		})
	}
}

func TestProcessDocument(t *testing.T) {
	m := newMocks()
	m.docs.StartProcessingFunc = func(ctx context.Context, documentID, ownerID string, req config.GenerationRequest) (*dto.ProcessingAckResponse, error) {
		assert.Equal(t, "fill_blank", req.QuestionType)
		return &dto.ProcessingAckResponse{DocumentID: documentID, Status: "processing", ProcessingStage: "ai_analysis"}, nil
	}
	app := setupApp(m, nil)

	resp, body := doRequest(t, app, http.MethodPost, "/api/documents/"+testDocID+"/process", map[string]interface{}{
		"question_type": "fill_blank",
	})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Contains(t, string(body), `"processing_stage":"ai_analysis"`)
}

func TestProcessDocument_EmptyBodyAndConflict(t *testing.T) {
	m := newMocks()
	m.docs.StartProcessingFunc = func(ctx context.Context, documentID, ownerID string, req config.GenerationRequest) (*dto.ProcessingAckResponse, error) {
		assert.Equal(t, config.GenerationRequest{}, req)
		return nil, domain.NewInvalidStateError("document is already processing")
	}
	app := setupApp(m, nil)

	resp, body := doRequest(t, app, http.MethodPost, "/api/documents/"+testDocID+"/process", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), `"code":"INVALID_STATE"`)
}

func TestRecordViewAndDownload(t *testing.T) {
	m := newMocks()
	m.docs.RecordViewFunc = func(ctx context.Context, documentID, ownerID string) (*dto.DocumentResponse, error) {
		return &dto.DocumentResponse{ID: documentID, ViewCount: 3}, nil
	}
	m.docs.RecordDownloadFunc = func(ctx context.Context, documentID, ownerID string) (*dto.DocumentResponse, error) {
		return &dto.DocumentResponse{ID: documentID, DownloadCount: 1}, nil
	}
	app := setupApp(m, nil)

	resp, body := doRequest(t, app, http.MethodPost, "/api/documents/"+testDocID+"/view", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"view_count":3`)

	resp, body = doRequest(t, app, http.MethodPost, "/api/documents/"+testDocID+"/download", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"download_count":1`)
}

func TestListAndDeleteQuizzes(t *testing.T) {
	m := newMocks()
	m.quizzes.ListDocumentQuizzesFunc = func(ctx context.Context, documentID, ownerID string) (*dto.QuizListResponse, error) {
		return &dto.QuizListResponse{DocumentID: documentID, Quizzes: []dto.QuizResponse{{ID: testQuizID}}}, nil
	}
	var deleted string
	m.quizzes.DeleteQuizFunc = func(ctx context.Context, quizID, ownerID string) error {
		deleted = quizID
		return nil
	}
	m.quizzes.GetQuizFunc = func(ctx context.Context, quizID, ownerID string) (*dto.QuizResponse, error) {
		return nil, domain.NewNotFoundError("quiz not found")
	}
	app := setupApp(m, nil)

	resp, body := doRequest(t, app, http.MethodGet, "/api/documents/"+testDocID+"/quizzes", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.QuizListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list.Quizzes, 1)

	resp, _ = doRequest(t, app, http.MethodDelete, "/api/quizzes/"+testQuizID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, testQuizID, deleted)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/quizzes/"+testQuizID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStartAttempt(t *testing.T) {
	for _, resumed := range []bool{false, true} {
		m := newMocks()
		m.attempts.StartAttemptFunc = func(ctx context.Context, quizID, userID string, device domain.DeviceMetadata) (*dto.AttemptResponse, error) {
			assert.Equal(t, testQuizID, quizID)
			assert.Equal(t, "ios", device.Platform)
			return &dto.AttemptResponse{AttemptID: testAttempt, QuizID: quizID, Status: "in_progress", Resumed: resumed}, nil
		}
		app := setupApp(m, nil)

		resp, _ := doRequest(t, app, http.MethodPost, "/api/attempts", map[string]interface{}{
			"quiz_id": testQuizID,
			"device":  map[string]string{"platform": "ios"},
		})
		want := http.StatusCreated
		if resumed {
			want = http.StatusOK
		}
		assert.Equal(t, want, resp.StatusCode)
	}
}

func TestSubmitAnswer(t *testing.T) {
	m := newMocks()
	var got service.SubmitAnswerInput
	m.attempts.SubmitAnswerFunc = func(ctx context.Context, in service.SubmitAnswerInput) (*dto.AnswerFeedbackResponse, error) {
		got = in
		return &dto.AnswerFeedbackResponse{QuestionIndex: *in.QuestionIndex, IsCorrect: true, PointsEarned: 10}, nil
	}
	app := setupApp(m, nil)

	resp, body := doRequest(t, app, http.MethodPost, "/api/attempts/"+testAttempt+"/answers", map[string]interface{}{
		"question_index": 1,
		"user_answer":    2,
		"time_spent_ms":  1500,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"points_earned":10`)
	require.NotNil(t, got.Answer.Index)
	assert.Equal(t, 2, *got.Answer.Index)
	assert.Equal(t, testUser, got.UserID)
	assert.Equal(t, int64(1500), got.TimeSpentMs)
}

func TestSubmitAnswer_Errors(t *testing.T) {
	m := newMocks()
	m.attempts.SubmitAnswerFunc = func(ctx context.Context, in service.SubmitAnswerInput) (*dto.AnswerFeedbackResponse, error) {
		return nil, domain.NewInvalidStateError("attempt is already completed")
	}
	app := setupApp(m, nil)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/attempts/"+testAttempt+"/answers", map[string]interface{}{
		"user_answer": "Paris",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/attempts/"+testAttempt+"/answers", map[string]interface{}{
		"question_index": 0,
		"user_answer":    true,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/attempts/"+testAttempt+"/answers", map[string]interface{}{
		"question_index": 0,
		"user_answer":    "Paris",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCompleteAndResults(t *testing.T) {
	m := newMocks()
	m.attempts.CompleteAttemptFunc = func(ctx context.Context, attemptID, userID string) (*dto.AttemptSummaryResponse, error) {
		return &dto.AttemptSummaryResponse{AttemptID: attemptID, Score: 60, MaxScore: 100, Percentage: 60}, nil
	}
	m.attempts.GetResultsFunc = func(ctx context.Context, attemptID, userID string) (*dto.AttemptResultsResponse, error) {
		return nil, domain.NewInvalidStateError("attempt is not completed")
	}
	app := setupApp(m, nil)

	resp, body := doRequest(t, app, http.MethodPost, "/api/attempts/"+testAttempt+"/complete", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var summary dto.AttemptSummaryResponse
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, 60, summary.Score)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/attempts/"+testAttempt+"/results", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := setupApp(newMocks(), map[string]handler.HealthCheck{
		"db":    func(ctx context.Context) error { return nil },
		"cache": func(ctx context.Context) error { return errors.New("connection refused") },
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var out handler.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "degraded", out.Status)
	assert.Equal(t, "ok", out.Checks["db"])
}
