package service

import (
	"context"

	"studion/internal/domain"
	"studion/internal/dto"

	"go.uber.org/zap"
)

// QuizService exposes generated quizzes to their owner.
type QuizService interface {
	GetQuiz(ctx context.Context, quizID, ownerID string) (*dto.QuizResponse, error)
	ListDocumentQuizzes(ctx context.Context, documentID, ownerID string) (*dto.QuizListResponse, error)
	DeleteQuiz(ctx context.Context, quizID, ownerID string) error
}

type quizService struct {
	docs   domain.DocumentRepository
	repo   domain.QuizRepository
	cache  QuizCache
	logger *zap.Logger
}

// NewQuizService creates a new instance of quizService.
func NewQuizService(docs domain.DocumentRepository, repo domain.QuizRepository, cache QuizCache, logger *zap.Logger) QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &quizService{docs: docs, repo: repo, cache: cache, logger: logger}
}

func (s *quizService) GetQuiz(ctx context.Context, quizID, ownerID string) (*dto.QuizResponse, error) {
	quiz, err := s.ownedActiveQuiz(ctx, quizID, ownerID)
	if err != nil {
		return nil, err
	}
	resp := toQuizResponse(quiz)
	return &resp, nil
}

func (s *quizService) ListDocumentQuizzes(ctx context.Context, documentID, ownerID string) (*dto.QuizListResponse, error) {
	doc, err := s.docs.GetByID(ctx, documentID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get document", err)
	}
	if doc == nil || doc.OwnerID != ownerID {
		return nil, domain.NewNotFoundError("document not found: " + documentID)
	}

	quizzes, err := s.repo.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}
	resp := &dto.QuizListResponse{DocumentID: documentID, Quizzes: make([]dto.QuizResponse, 0, len(quizzes))}
	for _, q := range quizzes {
		resp.Quizzes = append(resp.Quizzes, toQuizResponse(q))
	}
	return resp, nil
}

// DeleteQuiz soft-deletes the quiz. Existing attempts keep their data but
// no new attempt can start.
func (s *quizService) DeleteQuiz(ctx context.Context, quizID, ownerID string) error {
	if _, err := s.ownedActiveQuiz(ctx, quizID, ownerID); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, quizID); err != nil {
		if domain.IsCode(err, domain.CodeNotFound) {
			return err
		}
		return domain.NewInternalError("Failed to delete quiz", err)
	}
	s.cache.Invalidate(ctx, quizID)
	s.logger.Info("Quiz deleted", zap.String("quiz_id", quizID), zap.String("owner_id", ownerID))
	return nil
}

func (s *quizService) ownedActiveQuiz(ctx context.Context, quizID, ownerID string) (*domain.Quiz, error) {
	quiz, err := s.cache.Get(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil || quiz.OwnerID != ownerID || !quiz.IsActive() {
		return nil, domain.NewNotFoundError("quiz not found: " + quizID)
	}
	return quiz, nil
}

func toQuizResponse(q *domain.Quiz) dto.QuizResponse {
	questions := make([]dto.QuestionView, len(q.Questions))
	for i, question := range q.Questions {
		questions[i] = dto.QuestionView{
			Index:         i,
			ID:            question.ID,
			Text:          question.Text,
			Options:       nonNil(question.Options),
			SkillCategory: string(question.SkillCategory),
			TopicArea:     question.TopicArea,
		}
	}
	return dto.QuizResponse{
		ID:            q.ID,
		DocumentID:    q.DocumentID,
		Title:         q.Title,
		Type:          string(q.Type),
		Difficulty:    q.Difficulty,
		Language:      q.Language,
		PassingScore:  q.PassingScore,
		QuestionCount: len(q.Questions),
		Questions:     questions,
		Analytics: dto.QuizAnalyticsResponse{
			AttemptCount:     q.Analytics.AttemptCount,
			AverageScore:     q.Analytics.AverageScore,
			AverageTimeSpent: q.Analytics.AverageTimeSpent,
			LastAttemptAt:    q.Analytics.LastAttemptAt,
		},
		CreatedAt: q.CreatedAt,
	}
}
