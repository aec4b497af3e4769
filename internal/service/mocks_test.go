package service

import (
	"context"
	"sync"
	"time"

	"studion/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockDocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) Update(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) TransitionStatus(ctx context.Context, id string, from []domain.DocumentStatus, to domain.DocumentStatus, stage domain.ProcessingStage) (bool, error) {
	args := m.Called(ctx, id, from, to, stage)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentRepository) ListByStatus(ctx context.Context, status domain.DocumentStatus, limit int) ([]*domain.Document, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Document), args.Error(1)
}

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) SaveQuizzes(ctx context.Context, quizzes []*domain.Quiz) error {
	args := m.Called(ctx, quizzes)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) ListByDocument(ctx context.Context, documentID string) ([]*domain.Quiz, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) RecordAttempt(ctx context.Context, quizID string, percentage float64, timeSpentSeconds int, at time.Time) error {
	args := m.Called(ctx, quizID, percentage, timeSpentSeconds, at)
	return args.Error(0)
}

func (m *MockQuizRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- MockQuizAttemptRepository ---
type MockQuizAttemptRepository struct {
	mock.Mock
}

func (m *MockQuizAttemptRepository) Create(ctx context.Context, attempt *domain.QuizAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockQuizAttemptRepository) GetByID(ctx context.Context, id string) (*domain.QuizAttempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizAttempt), args.Error(1)
}

func (m *MockQuizAttemptRepository) FindInProgress(ctx context.Context, quizID, userID string) (*domain.QuizAttempt, error) {
	args := m.Called(ctx, quizID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizAttempt), args.Error(1)
}

func (m *MockQuizAttemptRepository) UpdateIfStatus(ctx context.Context, attempt *domain.QuizAttempt, expected domain.AttemptStatus) (bool, error) {
	args := m.Called(ctx, attempt, expected)
	return args.Bool(0), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// inlineTx runs fn directly and counts calls.
type inlineTx struct {
	calls int
}

func (t *inlineTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

// scriptedAI returns its responses in order and records the prompts.
type scriptedAI struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	prompts   []string
	opts      []domain.CompletionOptions
}

func (s *scriptedAI) Complete(_ context.Context, prompt string, opts domain.CompletionOptions) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := len(s.prompts)
	s.prompts = append(s.prompts, prompt)
	s.opts = append(s.opts, opts)
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", nil
}

// fakeExtractor returns a fixed text for every path.
type fakeExtractor struct {
	text *domain.ExtractedText
	err  error
}

func (f *fakeExtractor) Extract(context.Context, string) (*domain.ExtractedText, error) {
	return f.text, f.err
}
