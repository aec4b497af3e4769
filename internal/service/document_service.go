package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"studion/internal/chunker"
	"studion/internal/config"
	"studion/internal/domain"
	"studion/internal/dto"
	"studion/internal/parser"
	"studion/internal/prompt"
	"studion/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	failurePersistTimeout = 10 * time.Second
	maxErrorMessageBytes  = 2000
	maxLanguageBytes      = 10
)

// TaskRunner executes a detached pipeline run. Production code hands the task
// to a goroutine; tests run it inline.
type TaskRunner func(task func())

// GoRunner runs each task on its own goroutine.
func GoRunner(task func()) { go task() }

// UploadInput is what the upload collaborator supplies for a stored file.
type UploadInput struct {
	OwnerID    string
	FileName   string
	FilePath   string
	Immediate  bool
	Generation config.GenerationRequest
}

// DocumentService drives documents through extraction, summary and quiz generation.
type DocumentService interface {
	CreateDocument(ctx context.Context, in UploadInput) (*dto.DocumentResponse, error)
	GetDocument(ctx context.Context, documentID, ownerID string) (*dto.DocumentResponse, error)
	StartProcessing(ctx context.Context, documentID, ownerID string, req config.GenerationRequest) (*dto.ProcessingAckResponse, error)
	RecordView(ctx context.Context, documentID, ownerID string) (*dto.DocumentResponse, error)
	RecordDownload(ctx context.Context, documentID, ownerID string) (*dto.DocumentResponse, error)
	ProcessPending(ctx context.Context, limit, workers int) (int, error)
}

// DocumentServiceDeps groups the collaborators of the document service.
type DocumentServiceDeps struct {
	Documents domain.DocumentRepository
	Quizzes   domain.QuizRepository
	Tx        domain.TransactionManager
	Extractor domain.TextExtractor
	AI        domain.CompletionClient
	Parser    *parser.Parser
	Config    *config.Config
	Runner    TaskRunner
	Logger    *zap.Logger
}

type documentService struct {
	docs      domain.DocumentRepository
	quizzes   domain.QuizRepository
	tx        domain.TransactionManager
	extractor domain.TextExtractor
	ai        domain.CompletionClient
	parser    *parser.Parser
	cfg       *config.Config
	run       TaskRunner
	logger    *zap.Logger
	now       func() time.Time
}

// NewDocumentService creates a new instance of documentService.
func NewDocumentService(deps DocumentServiceDeps) DocumentService {
	run := deps.Runner
	if run == nil {
		run = GoRunner
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	p := deps.Parser
	if p == nil {
		p = parser.New(logger)
	}
	return &documentService{
		docs:      deps.Documents,
		quizzes:   deps.Quizzes,
		tx:        deps.Tx,
		extractor: deps.Extractor,
		ai:        deps.AI,
		parser:    p,
		cfg:       deps.Config,
		run:       run,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateDocument stores a pending document. With Immediate set the
// pipeline is scheduled and the processing document is returned.
func (s *documentService) CreateDocument(ctx context.Context, in UploadInput) (*dto.DocumentResponse, error) {
	name := strings.TrimSpace(in.FileName)
	if name == "" {
		name = in.FilePath
	}
	doc := domain.NewDocument(util.NewULID(), in.OwnerID, name, in.FilePath)
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	var genCfg domain.GenerationConfig
	if in.Immediate {
		var err error
		if genCfg, err = s.generationConfig(in.Generation); err != nil {
			return nil, err
		}
	}

	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, domain.NewInternalError("Failed to create document", err)
	}
	s.logger.Info("Document created", zap.String("document_id", doc.ID), zap.String("owner_id", doc.OwnerID))

	if in.Immediate {
		snapshot, err := s.claimAndSchedule(ctx, doc, genCfg, in.Generation.Language == "")
		if err != nil {
			return nil, err
		}
		return toDocumentResponse(snapshot), nil
	}
	return toDocumentResponse(doc), nil
}

// GetDocument returns the document if it belongs to ownerID.
func (s *documentService) GetDocument(ctx context.Context, documentID, ownerID string) (*dto.DocumentResponse, error) {
	doc, err := s.ownedDocument(ctx, documentID, ownerID)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// StartProcessing accepts a run only from pending or failed and returns
// before the AI round trips happen.
func (s *documentService) StartProcessing(ctx context.Context, documentID, ownerID string, req config.GenerationRequest) (*dto.ProcessingAckResponse, error) {
	doc, err := s.ownedDocument(ctx, documentID, ownerID)
	if err != nil {
		return nil, err
	}
	if !doc.CanProcess() {
		return nil, domain.NewInvalidStateError("document cannot be processed while " + string(doc.Status))
	}
	genCfg, err := s.generationConfig(req)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.claimAndSchedule(ctx, doc, genCfg, req.Language == "")
	if err != nil {
		return nil, err
	}
	return &dto.ProcessingAckResponse{
		DocumentID:      snapshot.ID,
		Status:          string(snapshot.Status),
		ProcessingStage: string(snapshot.ProcessingStage),
	}, nil
}

// claimAndSchedule performs the conditional status transition. Only the
// caller whose update matched a row gets to run the pipeline. The pipeline
// owns doc once scheduled; callers read the returned claim-time copy.
func (s *documentService) claimAndSchedule(ctx context.Context, doc *domain.Document, genCfg domain.GenerationConfig, detectLanguage bool) (*domain.Document, error) {
	claimed, err := s.claim(ctx, doc)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, domain.NewInvalidStateError("document is already being processed")
	}

	snapshot := doc.Clone()
	bg := context.WithoutCancel(ctx)
	s.run(func() { s.runPipeline(bg, doc, genCfg, detectLanguage) })
	return snapshot, nil
}

func (s *documentService) claim(ctx context.Context, doc *domain.Document) (bool, error) {
	ok, err := s.docs.TransitionStatus(ctx, doc.ID, domain.ReprocessableStatuses, domain.DocumentProcessing, domain.StageAIAnalysis)
	if err != nil {
		return false, domain.NewInternalError("Failed to start document processing", err)
	}
	if !ok {
		return false, nil
	}
	doc.Status = domain.DocumentProcessing
	doc.ProcessingStage = domain.StageAIAnalysis
	doc.Error = nil
	return true, nil
}

// RecordView bumps the view counter.
func (s *documentService) RecordView(ctx context.Context, documentID, ownerID string) (*dto.DocumentResponse, error) {
	return s.touch(ctx, documentID, ownerID, func(doc *domain.Document, now time.Time) {
		doc.Analytics.ViewCount++
		doc.Analytics.LastViewedAt = &now
		doc.Analytics.LastAccessedAt = &now
	})
}

// RecordDownload bumps the download counter.
func (s *documentService) RecordDownload(ctx context.Context, documentID, ownerID string) (*dto.DocumentResponse, error) {
	return s.touch(ctx, documentID, ownerID, func(doc *domain.Document, now time.Time) {
		doc.Analytics.DownloadCount++
		doc.Analytics.LastAccessedAt = &now
	})
}

func (s *documentService) touch(ctx context.Context, documentID, ownerID string, apply func(*domain.Document, time.Time)) (*dto.DocumentResponse, error) {
	doc, err := s.ownedDocument(ctx, documentID, ownerID)
	if err != nil {
		return nil, err
	}
	apply(doc, s.now())
	if err := s.docs.Update(ctx, doc); err != nil {
		if domain.IsCode(err, domain.CodeNotFound) {
			return nil, err
		}
		return nil, domain.NewInternalError("Failed to update document analytics", err)
	}
	return toDocumentResponse(doc), nil
}

// ProcessPending runs the pipeline synchronously for up to limit pending
// documents, at most workers at a time, and returns how many it claimed.
// A failed claim is reported but does not cancel the other runs.
func (s *documentService) ProcessPending(ctx context.Context, limit, workers int) (int, error) {
	pending, err := s.docs.ListByStatus(ctx, domain.DocumentPending, limit)
	if err != nil {
		return 0, domain.NewInternalError("Failed to list pending documents", err)
	}
	genCfg, err := s.generationConfig(config.GenerationRequest{})
	if err != nil {
		return 0, err
	}
	if workers <= 0 {
		workers = 1
	}

	claimed := make([]bool, len(pending))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, doc := range pending {
		g.Go(func() error {
			ok, err := s.claim(ctx, doc)
			if err != nil {
				s.logger.Error("Failed to claim pending document", zap.String("document_id", doc.ID), zap.Error(err))
				return err
			}
			if !ok {
				s.logger.Info("Pending document claimed elsewhere", zap.String("document_id", doc.ID))
				return nil
			}
			claimed[i] = true
			s.runPipeline(ctx, doc, genCfg, true)
			return nil
		})
	}
	err = g.Wait()

	n := 0
	for _, c := range claimed {
		if c {
			n++
		}
	}
	return n, err
}

func (s *documentService) ownedDocument(ctx context.Context, documentID, ownerID string) (*domain.Document, error) {
	doc, err := s.docs.GetByID(ctx, documentID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get document", err)
	}
	if doc == nil || doc.OwnerID != ownerID {
		return nil, domain.NewNotFoundError("document not found: " + documentID)
	}
	return doc, nil
}

func (s *documentService) generationConfig(req config.GenerationRequest) (domain.GenerationConfig, error) {
	genCfg := s.cfg.Generation.ForRequest(req, s.cfg.LLM, s.cfg.Attempt.DefaultPassingScore)
	if err := genCfg.Validate(); err != nil {
		return genCfg, err
	}
	return genCfg, nil
}

// runPipeline executes every stage in order. Errors never escape: they are
// persisted on the document as its failure state. With detectLanguage the
// quizzes follow the language reported by the summary stage when supported.
func (s *documentService) runPipeline(ctx context.Context, doc *domain.Document, genCfg domain.GenerationConfig, detectLanguage bool) {
	log := s.logger.With(zap.String("document_id", doc.ID))
	start := s.now()
	log.Info("Document processing started", zap.String("question_type", string(genCfg.QuestionType)))

	if err := s.pipeline(ctx, doc, genCfg, detectLanguage, log); err != nil {
		s.fail(ctx, doc, err, log)
		return
	}
	log.Info("Document processing completed",
		zap.Int("quiz_count", doc.Processing.QuizCount),
		zap.Int("question_count", doc.Processing.QuestionCount),
		zap.Duration("duration", s.now().Sub(start)))
}

func (s *documentService) pipeline(ctx context.Context, doc *domain.Document, genCfg domain.GenerationConfig, detectLanguage bool, log *zap.Logger) error {
	// ai_analysis: extract, then summarise
	extracted, err := s.extractor.Extract(ctx, doc.Metadata.FilePath)
	if err != nil {
		if domain.IsCode(err, domain.CodeExtractionFailure) {
			return err
		}
		return domain.NewExtractionError(err)
	}
	doc.Content.ExtractedText = extracted.Text
	doc.Metadata.PageCount = extracted.PageCount
	doc.Metadata.WordCount = extracted.WordCount
	doc.Metadata.Quality = domain.QualityForWordCount(extracted.WordCount)
	if strings.TrimSpace(extracted.Text) == "" {
		return domain.NewExtractionError(errors.New("document contains no text"))
	}

	bounded := chunker.Truncate(extracted.Text, genCfg.TokenBudget)
	log.Debug("Prepared document text",
		zap.Int("estimated_tokens", chunker.EstimateTokens(extracted.Text)),
		zap.Int("bounded_tokens", chunker.EstimateTokens(bounded)))

	raw, err := s.complete(ctx, prompt.BuildSummaryPrompt(bounded, genCfg.Language), genCfg.SummaryMaxTokens, genCfg.Temperature, domain.StageAIAnalysis, log)
	if err != nil {
		return err
	}
	summary, err := s.parser.ParseSummary(raw)
	if err != nil {
		return err
	}
	doc.Content.Summary = summary.Summary
	doc.Content.KeyPoints = summary.KeyPoints
	doc.Content.Topics = summary.Topics
	doc.Metadata.Language = normalizeLanguage(summary.Language)
	doc.Metadata.Complexity = summary.Complexity
	if detectLanguage && prompt.Supported(summary.Language) {
		genCfg.Language = doc.Metadata.Language
	}

	doc.ProcessingStage = domain.StageProcessing
	if err := s.docs.Update(ctx, doc); err != nil {
		return domain.NewInternalError("Failed to persist document summary", err)
	}

	// processing: quiz generation
	raw, err = s.complete(ctx, prompt.BuildQuizPrompt(bounded, genCfg), genCfg.QuizMaxTokens, genCfg.Temperature, domain.StageProcessing, log)
	if err != nil {
		return err
	}
	collection, err := s.parser.ParseQuizCollection(raw, genCfg)
	if err != nil {
		return err
	}

	// finalization: quizzes and the completed state commit together
	doc.ProcessingStage = domain.StageFinalization
	quizzes := buildQuizzes(doc, collection, genCfg)
	processedAt := s.now()

	// doc only takes the completed state once the transaction commits
	done := *doc
	done.Status = domain.DocumentCompleted
	done.ProcessingStage = domain.StageCompleted
	done.Error = nil
	done.Analytics.QuizGenerationCount++
	done.Processing = domain.ProcessingInfo{
		ProcessedAt:   &processedAt,
		QuizCount:     len(quizzes),
		QuestionCount: collection.QuestionCount(),
		QuestionType:  genCfg.QuestionType,
		Difficulty:    genCfg.Difficulty,
	}
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.quizzes.SaveQuizzes(txCtx, quizzes); err != nil {
			return domain.NewInternalError("Failed to save generated quizzes", err)
		}
		if err := s.docs.Update(txCtx, &done); err != nil {
			return domain.NewInternalError("Failed to mark document completed", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	*doc = done
	return nil
}

func (s *documentService) complete(ctx context.Context, promptText string, maxTokens int, temperature float64, stage domain.ProcessingStage, log *zap.Logger) (string, error) {
	start := s.now()
	raw, err := s.ai.Complete(ctx, promptText, domain.CompletionOptions{MaxOutputTokens: maxTokens, Temperature: temperature})
	log.Info("AI completion finished",
		zap.String("stage", string(stage)),
		zap.Duration("duration", s.now().Sub(start)),
		zap.Int("response_length", len(raw)),
		zap.Error(err))
	if err != nil {
		if domain.IsCode(err, domain.CodeAIServiceFailure) {
			return "", err
		}
		return "", domain.NewAIServiceError(domain.AIFailureServiceError, err)
	}
	return raw, nil
}

// fail records err on the document. Content persisted by earlier stages is
// kept. The write outlives cancellation of ctx so a cancelled run still
// leaves the document reprocessable.
func (s *documentService) fail(ctx context.Context, doc *domain.Document, err error, log *zap.Logger) {
	stage := doc.ProcessingStage
	if stage == domain.StageNone {
		stage = domain.StageAIAnalysis
	}
	kind := domain.FailureKind(err)
	doc.Status = domain.DocumentFailed
	doc.ProcessingStage = domain.StageFailed
	doc.Error = &domain.ErrorInfo{
		Kind:       kind,
		Message:    util.TruncateBytes(err.Error(), maxErrorMessageBytes),
		Stage:      stage,
		OccurredAt: s.now(),
	}
	log.Error("Document processing failed",
		zap.String("stage", string(stage)),
		zap.String("kind", kind),
		zap.Error(err))

	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), failurePersistTimeout)
	defer cancel()
	if updateErr := s.docs.Update(persistCtx, doc); updateErr != nil {
		log.Error("Failed to persist document failure", zap.Error(updateErr))
	}
}

// normalizeLanguage maps supported codes to their base code and caps
// anything else to the width of the language columns.
func normalizeLanguage(code string) string {
	if prompt.Supported(code) {
		return prompt.Lookup(code).Code
	}
	return util.TruncateBytes(strings.ToLower(strings.TrimSpace(code)), maxLanguageBytes)
}

func buildQuizzes(doc *domain.Document, collection *domain.GeneratedCollection, genCfg domain.GenerationConfig) []*domain.Quiz {
	quizzes := make([]*domain.Quiz, 0, len(collection.Quizzes))
	for _, gq := range collection.Quizzes {
		questions := make([]domain.Question, len(gq.Questions))
		for i, q := range gq.Questions {
			q.ID = util.NewULID()
			questions[i] = q
		}
		quizzes = append(quizzes, &domain.Quiz{
			ID:           util.NewULID(),
			DocumentID:   doc.ID,
			OwnerID:      doc.OwnerID,
			Title:        gq.Title,
			Type:         gq.Type,
			Difficulty:   gq.Difficulty,
			Language:     genCfg.Language,
			PassingScore: genCfg.PassingScore,
			Questions:    questions,
			Status:       domain.QuizActive,
		})
	}
	return quizzes
}

func toDocumentResponse(doc *domain.Document) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:              doc.ID,
		OwnerID:         doc.OwnerID,
		Status:          string(doc.Status),
		ProcessingStage: string(doc.ProcessingStage),
		OriginalName:    doc.Metadata.OriginalName,
		PageCount:       doc.Metadata.PageCount,
		WordCount:       doc.Metadata.WordCount,
		Language:        doc.Metadata.Language,
		Complexity:      string(doc.Metadata.Complexity),
		Quality:         string(doc.Metadata.Quality),
		Summary:         doc.Content.Summary,
		KeyPoints:       nonNil(doc.Content.KeyPoints),
		Topics:          nonNil(doc.Content.Topics),
		ViewCount:       doc.Analytics.ViewCount,
		DownloadCount:   doc.Analytics.DownloadCount,
		QuizGenerations: doc.Analytics.QuizGenerationCount,
		QuizCount:       doc.Processing.QuizCount,
		QuestionCount:   doc.Processing.QuestionCount,
		ProcessedAt:     doc.Processing.ProcessedAt,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
	if doc.Error != nil {
		resp.Error = &dto.ErrorInfoResponse{
			Kind:       doc.Error.Kind,
			Message:    doc.Error.Message,
			Stage:      string(doc.Error.Stage),
			OccurredAt: doc.Error.OccurredAt,
		}
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
