package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"studion/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestQuizCache_ReadThrough(t *testing.T) {
	c := new(MockCache)
	repo := new(MockQuizRepository)
	qc := NewQuizCache(c, repo, time.Minute, nil)
	ctx := context.Background()
	key := "studion:attempt:quiz:v1:quiz-1"
	quiz := mcQuiz(2)

	c.On("Get", ctx, key).Return("", domain.ErrCacheMiss).Once()
	repo.On("GetByID", ctx, "quiz-1").Return(quiz, nil).Once()
	c.On("Set", ctx, key, mock.AnythingOfType("string"), time.Minute).Return(nil).Once()

	got, err := qc.Get(ctx, "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, quiz.ID, got.ID)

	data, err := json.Marshal(quiz)
	require.NoError(t, err)
	c.On("Get", ctx, key).Return(string(data), nil).Once()

	got, err = qc.Get(ctx, "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, quiz.Questions, got.Questions)
	repo.AssertNumberOfCalls(t, "GetByID", 1)
	c.AssertExpectations(t)
}

func TestQuizCache_CacheErrorsFallBackToRepository(t *testing.T) {
	c := new(MockCache)
	repo := new(MockQuizRepository)
	qc := NewQuizCache(c, repo, time.Minute, nil)
	ctx := context.Background()

	c.On("Get", ctx, mock.Anything).Return("", errors.New("redis down"))
	c.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))
	repo.On("GetByID", ctx, "quiz-1").Return(mcQuiz(1), nil)
	repo.On("GetByID", ctx, "missing").Return(nil, nil)

	got, err := qc.Get(ctx, "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, "quiz-1", got.ID)

	got, err = qc.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestQuizService_DeleteQuiz(t *testing.T) {
	c := new(MockCache)
	repo := new(MockQuizRepository)
	docs := new(MockDocumentRepository)
	svc := NewQuizService(docs, repo, NewQuizCache(c, repo, time.Minute, nil), nil)
	ctx := context.Background()

	c.On("Get", ctx, mock.Anything).Return("", domain.ErrCacheMiss)
	c.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	c.On("Delete", ctx, "studion:attempt:quiz:v1:quiz-1").Return(nil).Once()
	repo.On("GetByID", ctx, "quiz-1").Return(mcQuiz(1), nil)
	repo.On("SoftDelete", ctx, "quiz-1").Return(nil).Once()

	err := svc.DeleteQuiz(ctx, "quiz-1", "user-2")
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))

	require.NoError(t, svc.DeleteQuiz(ctx, "quiz-1", "user-1"))
	repo.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestQuizService_ListDocumentQuizzes(t *testing.T) {
	repo := new(MockQuizRepository)
	docs := new(MockDocumentRepository)
	svc := NewQuizService(docs, repo, NewQuizCache(nil, repo, time.Minute, nil), nil)

	docs.On("GetByID", mock.Anything, "doc-1").Return(domain.NewDocument("doc-1", "user-1", "a", "a"), nil)
	repo.On("ListByDocument", mock.Anything, "doc-1").Return([]*domain.Quiz{mcQuiz(2)}, nil)

	resp, err := svc.ListDocumentQuizzes(context.Background(), "doc-1", "user-1")
	require.NoError(t, err)
	require.Len(t, resp.Quizzes, 1)
	assert.Equal(t, 2, resp.Quizzes[0].QuestionCount)

	_, err = svc.ListDocumentQuizzes(context.Background(), "doc-1", "user-2")
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}
