package service

import (
	"context"
	"errors"
	"time"

	"studion/internal/config"
	"studion/internal/domain"
	"studion/internal/dto"
	"studion/internal/util"

	"go.uber.org/zap"
)

// SubmitAnswerInput is one answer from the quiz-taking client.
type SubmitAnswerInput struct {
	AttemptID     string
	UserID        string
	QuestionIndex *int
	Answer        AnswerInput
	TimeSpentMs   int64
}

// AttemptService runs quiz attempts from start to results.
type AttemptService interface {
	StartAttempt(ctx context.Context, quizID, userID string, device domain.DeviceMetadata) (*dto.AttemptResponse, error)
	SubmitAnswer(ctx context.Context, in SubmitAnswerInput) (*dto.AnswerFeedbackResponse, error)
	CompleteAttempt(ctx context.Context, attemptID, userID string) (*dto.AttemptSummaryResponse, error)
	GetResults(ctx context.Context, attemptID, userID string) (*dto.AttemptResultsResponse, error)
}

type attemptService struct {
	attempts domain.QuizAttemptRepository
	quizzes  domain.QuizRepository
	cache    QuizCache
	tx       domain.TransactionManager
	cfg      config.AttemptConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewAttemptService creates a new instance of attemptService.
func NewAttemptService(
	attempts domain.QuizAttemptRepository,
	quizzes domain.QuizRepository,
	cache QuizCache,
	tx domain.TransactionManager,
	cfg config.AttemptConfig,
	logger *zap.Logger,
) AttemptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PointsPerCorrect <= 0 {
		cfg.PointsPerCorrect = 10
	}
	return &attemptService{
		attempts: attempts,
		quizzes:  quizzes,
		cache:    cache,
		tx:       tx,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// StartAttempt resumes the open attempt for (user, quiz) or creates one.
func (s *attemptService) StartAttempt(ctx context.Context, quizID, userID string, device domain.DeviceMetadata) (*dto.AttemptResponse, error) {
	if userID == "" {
		return nil, domain.NewBadInputError("user id is required")
	}
	quiz, err := s.cache.Get(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil || !quiz.IsActive() || quiz.OwnerID != userID {
		return nil, domain.NewNotFoundError("quiz not found: " + quizID)
	}

	existing, err := s.attempts.FindInProgress(ctx, quizID, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up attempts", err)
	}
	if existing != nil {
		return s.attemptResponse(existing, quiz, true), nil
	}

	attempt := domain.NewQuizAttempt(util.NewULID(), quizID, userID, device)
	attempt.MaxScore = quiz.TotalPoints(s.cfg.PointsPerCorrect)
	if err := s.attempts.Create(ctx, attempt); err != nil {
		if !errors.Is(err, domain.ErrAttemptAlreadyInProgress) {
			return nil, domain.NewInternalError("Failed to create attempt", err)
		}
		// lost a race with a concurrent start; return the winner
		existing, err = s.attempts.FindInProgress(ctx, quizID, userID)
		if err != nil {
			return nil, domain.NewInternalError("Failed to look up attempts", err)
		}
		if existing == nil {
			return nil, domain.NewInvalidStateError("attempt could not be started, retry")
		}
		return s.attemptResponse(existing, quiz, true), nil
	}

	s.logger.Info("Attempt started",
		zap.String("attempt_id", attempt.ID),
		zap.String("quiz_id", quizID),
		zap.String("user_id", userID))
	return s.attemptResponse(attempt, quiz, false), nil
}

// SubmitAnswer appends an answer record. Resubmitting an index appends
// another record; completion scores the latest one.
func (s *attemptService) SubmitAnswer(ctx context.Context, in SubmitAnswerInput) (*dto.AnswerFeedbackResponse, error) {
	if in.QuestionIndex == nil {
		return nil, domain.NewBadInputError("question index is required")
	}
	if in.Answer.empty() {
		return nil, domain.NewBadInputError("user answer is required")
	}
	if in.TimeSpentMs < 0 {
		return nil, domain.NewBadInputError("time spent must not be negative")
	}

	attempt, quiz, err := s.load(ctx, in.AttemptID, in.UserID)
	if err != nil {
		return nil, err
	}
	if !attempt.IsInProgress() {
		return nil, domain.NewInvalidStateError("attempt is already completed")
	}

	idx := *in.QuestionIndex
	if idx < 0 || idx >= len(quiz.Questions) {
		return nil, domain.NewBadInputError("question index out of range")
	}
	question := quiz.Questions[idx]

	answer, err := resolveAnswer(question, in.Answer)
	if err != nil {
		return nil, err
	}
	correct := isCorrect(quiz.Type, question, answer)
	points := 0
	if correct {
		points = s.cfg.PointsPerCorrect
	}

	attempt.Answers = append(attempt.Answers, domain.AttemptAnswer{
		QuestionID:    question.ID,
		QuestionIndex: idx,
		UserAnswer:    answer,
		IsCorrect:     correct,
		PointsEarned:  points,
		TimeSpentMs:   in.TimeSpentMs,
		AnsweredAt:    s.now(),
	})
	ok, err := s.attempts.UpdateIfStatus(ctx, attempt, domain.AttemptInProgress)
	if err != nil {
		return nil, domain.NewInternalError("Failed to save answer", err)
	}
	if !ok {
		return nil, domain.NewInvalidStateError("attempt is already completed")
	}

	feedback := question.Weakness
	if correct {
		feedback = question.Strength
	}
	return &dto.AnswerFeedbackResponse{
		QuestionIndex: idx,
		IsCorrect:     correct,
		PointsEarned:  points,
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
		Feedback:      feedback,
		Progress:      progress(attempt, quiz),
	}, nil
}

// CompleteAttempt scores the attempt, closes it and folds it into the quiz
// analytics in one transaction.
func (s *attemptService) CompleteAttempt(ctx context.Context, attemptID, userID string) (*dto.AttemptSummaryResponse, error) {
	attempt, quiz, err := s.load(ctx, attemptID, userID)
	if err != nil {
		return nil, err
	}
	if !attempt.IsInProgress() {
		return nil, domain.NewInvalidStateError("attempt is already completed")
	}

	passing := s.passingScore(quiz)
	score := scoreAttempt(quiz, attempt, s.cfg.PointsPerCorrect, passing)
	now := s.now()
	elapsed := int(now.Sub(attempt.StartedAt).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}

	attempt.Status = domain.AttemptCompleted
	attempt.CompletedAt = &now
	attempt.Score = score.score
	attempt.MaxScore = score.maxScore
	attempt.PointsEarned = score.score
	attempt.CorrectCount = score.correct
	attempt.Percentage = score.percentage
	attempt.TimeSpentSeconds = elapsed
	attempt.PerformanceLevel = score.level
	attempt.Passed = score.passed
	attempt.Feedback = feedbackFor(score.level, score.passed)
	attempt.Strengths = score.strengths
	attempt.Weaknesses = score.weaknesses

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		ok, err := s.attempts.UpdateIfStatus(txCtx, attempt, domain.AttemptInProgress)
		if err != nil {
			return domain.NewInternalError("Failed to complete attempt", err)
		}
		if !ok {
			return domain.NewInvalidStateError("attempt is already completed")
		}
		if err := s.quizzes.RecordAttempt(txCtx, quiz.ID, score.percentage, elapsed, now); err != nil {
			return domain.NewInternalError("Failed to update quiz analytics", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, quiz.ID)

	s.logger.Info("Attempt completed",
		zap.String("attempt_id", attempt.ID),
		zap.String("quiz_id", quiz.ID),
		zap.Float64("percentage", score.percentage),
		zap.Bool("passed", score.passed))
	return summaryResponse(attempt, quiz, passing), nil
}

// GetResults is only available once the attempt is completed.
func (s *attemptService) GetResults(ctx context.Context, attemptID, userID string) (*dto.AttemptResultsResponse, error) {
	attempt, quiz, err := s.load(ctx, attemptID, userID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != domain.AttemptCompleted {
		return nil, domain.NewInvalidStateError("attempt is not completed")
	}

	latest := attempt.LatestAnswers()
	questions := make([]dto.QuestionResult, len(quiz.Questions))
	type tally struct{ correct, total int }
	skills := map[domain.SkillCategory]*tally{}

	for i, q := range quiz.Questions {
		r := dto.QuestionResult{
			Index:         i,
			QuestionID:    q.ID,
			Text:          q.Text,
			Options:       nonNil(q.Options),
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			SkillCategory: string(q.SkillCategory),
			TopicArea:     q.TopicArea,
		}
		t := skills[q.SkillCategory]
		if t == nil {
			t = &tally{}
			skills[q.SkillCategory] = t
		}
		t.total++
		if ans, ok := latest[i]; ok {
			r.Answered = true
			r.UserAnswer = ans.UserAnswer
			r.IsCorrect = ans.IsCorrect
			r.PointsEarned = ans.PointsEarned
			r.TimeSpentMs = ans.TimeSpentMs
			if ans.IsCorrect {
				r.Feedback = q.Strength
				t.correct++
			} else {
				r.Feedback = q.Weakness
			}
		} else {
			r.Feedback = q.Weakness
		}
		questions[i] = r
	}

	breakdown := make([]dto.SkillBreakdown, 0, len(skills))
	for _, cat := range skillOrder {
		if t, ok := skills[cat]; ok {
			breakdown = append(breakdown, dto.SkillBreakdown{
				SkillCategory: string(cat),
				Correct:       t.correct,
				Total:         t.total,
				Percentage:    percentOf(t.correct, t.total),
			})
		}
	}

	return &dto.AttemptResultsResponse{
		Summary:   *summaryResponse(attempt, quiz, s.passingScore(quiz)),
		QuizTitle: quiz.Title,
		Questions: questions,
		Skills:    breakdown,
	}, nil
}

// load returns the attempt owned by userID and its quiz. Deleted quizzes
// still resolve so open attempts can finish.
func (s *attemptService) load(ctx context.Context, attemptID, userID string) (*domain.QuizAttempt, *domain.Quiz, error) {
	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		return nil, nil, domain.NewInternalError("Failed to get attempt", err)
	}
	if attempt == nil || attempt.UserID != userID {
		return nil, nil, domain.NewNotFoundError("attempt not found: " + attemptID)
	}
	quiz, err := s.cache.Get(ctx, attempt.QuizID)
	if err != nil {
		return nil, nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, nil, domain.NewNotFoundError("quiz not found: " + attempt.QuizID)
	}
	return attempt, quiz, nil
}

func (s *attemptService) passingScore(quiz *domain.Quiz) int {
	if quiz.PassingScore > 0 {
		return quiz.PassingScore
	}
	return s.cfg.DefaultPassingScore
}

func (s *attemptService) attemptResponse(a *domain.QuizAttempt, quiz *domain.Quiz, resumed bool) *dto.AttemptResponse {
	return &dto.AttemptResponse{
		AttemptID: a.ID,
		QuizID:    a.QuizID,
		Status:    string(a.Status),
		Resumed:   resumed,
		StartedAt: a.StartedAt,
		Progress:  progress(a, quiz),
		Quiz:      toQuizResponse(quiz),
	}
}

func progress(a *domain.QuizAttempt, quiz *domain.Quiz) dto.ProgressResponse {
	answered := a.AnsweredCount()
	return dto.ProgressResponse{
		Answered:   answered,
		Total:      len(quiz.Questions),
		Percentage: percentOf(answered, len(quiz.Questions)),
	}
}

func summaryResponse(a *domain.QuizAttempt, quiz *domain.Quiz, passing int) *dto.AttemptSummaryResponse {
	return &dto.AttemptSummaryResponse{
		AttemptID:        a.ID,
		QuizID:           a.QuizID,
		Status:           string(a.Status),
		Score:            a.Score,
		MaxScore:         a.MaxScore,
		Percentage:       a.Percentage,
		CorrectCount:     a.CorrectCount,
		TotalQuestions:   len(quiz.Questions),
		TimeSpentSeconds: a.TimeSpentSeconds,
		PerformanceLevel: string(a.PerformanceLevel),
		Passed:           a.Passed,
		PassingScore:     passing,
		Feedback:         a.Feedback,
		Strengths:        nonNil(a.Strengths),
		Weaknesses:       nonNil(a.Weaknesses),
		StartedAt:        a.StartedAt,
		CompletedAt:      a.CompletedAt,
	}
}
