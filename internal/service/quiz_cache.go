package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"studion/internal/cache"
	"studion/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuizCache is a read-through cache over the quiz repository. Questions never
// change after generation, so a cached quiz stays valid until it is deleted.
type QuizCache interface {
	Get(ctx context.Context, quizID string) (*domain.Quiz, error)
	Invalidate(ctx context.Context, quizID string)
}

type quizCacheImpl struct {
	cache  domain.Cache
	repo   domain.QuizRepository
	ttl    time.Duration
	group  singleflight.Group
	logger *zap.Logger
}

// NewQuizCache creates a read-through quiz cache. A nil cache reads straight
// from the repository.
func NewQuizCache(c domain.Cache, repo domain.QuizRepository, ttl time.Duration, logger *zap.Logger) QuizCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if c == nil {
		logger.Warn("QuizCache initialized with nil cache. Reads go to the repository.")
		return &noopQuizCache{repo: repo}
	}
	return &quizCacheImpl{cache: c, repo: repo, ttl: ttl, logger: logger}
}

func quizCacheKey(quizID string) string {
	return cache.QuizKey(quizID)
}

// Get returns nil, nil when the quiz does not exist. Concurrent misses for
// the same id share one repository read.
func (q *quizCacheImpl) Get(ctx context.Context, quizID string) (*domain.Quiz, error) {
	key := quizCacheKey(quizID)

	if raw, err := q.cache.Get(ctx, key); err == nil {
		var quiz domain.Quiz
		if err := json.Unmarshal([]byte(raw), &quiz); err == nil {
			return &quiz, nil
		}
		q.logger.Warn("Failed to unmarshal cached quiz", zap.String("quiz_id", quizID))
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		q.logger.Warn("Quiz cache read failed", zap.String("quiz_id", quizID), zap.Error(err))
	}

	v, err, _ := q.group.Do(key, func() (interface{}, error) {
		quiz, err := q.repo.GetByID(ctx, quizID)
		if err != nil || quiz == nil {
			return quiz, err
		}
		if data, err := json.Marshal(quiz); err == nil {
			if err := q.cache.Set(ctx, key, string(data), q.ttl); err != nil {
				q.logger.Warn("Quiz cache write failed", zap.String("quiz_id", quizID), zap.Error(err))
			}
		}
		return quiz, nil
	})
	if err != nil {
		return nil, err
	}
	quiz, _ := v.(*domain.Quiz)
	return quiz, nil
}

// Invalidate drops the cached copy. Failures are logged only.
func (q *quizCacheImpl) Invalidate(ctx context.Context, quizID string) {
	if err := q.cache.Delete(ctx, quizCacheKey(quizID)); err != nil {
		q.logger.Warn("Quiz cache delete failed", zap.String("quiz_id", quizID), zap.Error(err))
	}
}

type noopQuizCache struct {
	repo domain.QuizRepository
}

func (n *noopQuizCache) Get(ctx context.Context, quizID string) (*domain.Quiz, error) {
	return n.repo.GetByID(ctx, quizID)
}

func (n *noopQuizCache) Invalidate(context.Context, string) {}
