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

// sqlxDocumentRepository implements domain.DocumentRepository using sqlx.
type sqlxDocumentRepository struct {
	db *sqlx.DB
}

// NewDocumentRepository creates a new instance of sqlxDocumentRepository.
func NewDocumentRepository(db *sqlx.DB) domain.DocumentRepository {
	return &sqlxDocumentRepository{db: db}
}

var (
	documentSelect = "SELECT " + aliasColumns(models.DocumentColumns) + " FROM documents"
	documentInsert = insertQuery("documents", models.DocumentColumns)

	// every column except id and created_at
	documentUpdateColumns = append(append([]string{},
		models.DocumentColumns[1:len(models.DocumentColumns)-2]...), "updated_at")
	documentUpdate = fmt.Sprintf("UPDATE documents SET %s WHERE id = :%d",
		assignments(1, documentUpdateColumns), len(documentUpdateColumns)+1)
)

func toDomainDocument(m *models.Document) *domain.Document {
	if m == nil {
		return nil
	}
	doc := &domain.Document{
		ID:              m.ID,
		OwnerID:         m.OwnerID,
		Status:          domain.DocumentStatus(m.Status),
		ProcessingStage: domain.ProcessingStage(m.ProcessingStage.String),
		Content: domain.DocumentContent{
			ExtractedText: m.ExtractedText.String,
			Summary:       m.Summary.String,
			KeyPoints:     []string(m.KeyPoints),
			Topics:        []string(m.Topics),
		},
		Metadata: domain.FileMetadata{
			OriginalName: m.OriginalName,
			FilePath:     m.FilePath,
			PageCount:    m.PageCount,
			WordCount:    m.WordCount,
			Language:     m.Language.String,
			Complexity:   domain.Complexity(m.Complexity.String),
			Quality:      domain.Quality(m.Quality.String),
		},
		Analytics: domain.DocumentAnalytics{
			ViewCount:           m.ViewCount,
			DownloadCount:       m.DownloadCount,
			QuizGenerationCount: m.QuizGenerationCount,
			LastViewedAt:        util.NullTimeToPtr(m.LastViewedAt),
			LastAccessedAt:      util.NullTimeToPtr(m.LastAccessedAt),
		},
		Processing: domain.ProcessingInfo{
			ProcessedAt:   util.NullTimeToPtr(m.ProcessedAt),
			QuizCount:     m.QuizCount,
			QuestionCount: m.QuestionCount,
			QuestionType:  domain.QuizType(m.QuestionType.String),
			Difficulty:    m.Difficulty.String,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if doc.Content.KeyPoints == nil {
		doc.Content.KeyPoints = []string{}
	}
	if doc.Content.Topics == nil {
		doc.Content.Topics = []string{}
	}
	if m.ErrorKind.Valid {
		doc.Error = &domain.ErrorInfo{
			Kind:       m.ErrorKind.String,
			Message:    m.ErrorMessage.String,
			Stage:      domain.ProcessingStage(m.ErrorStage.String),
			OccurredAt: m.ErrorOccurredAt.Time,
		}
	}
	return doc
}

func fromDomainDocument(d *domain.Document) *models.Document {
	if d == nil {
		return nil
	}
	m := &models.Document{
		ID:                  d.ID,
		OwnerID:             d.OwnerID,
		Status:              string(d.Status),
		ProcessingStage:     util.StringToNullString(string(d.ProcessingStage)),
		OriginalName:        d.Metadata.OriginalName,
		FilePath:            d.Metadata.FilePath,
		ExtractedText:       util.StringToNullString(d.Content.ExtractedText),
		Summary:             util.StringToNullString(d.Content.Summary),
		KeyPoints:           models.StringSlice(d.Content.KeyPoints),
		Topics:              models.StringSlice(d.Content.Topics),
		PageCount:           d.Metadata.PageCount,
		WordCount:           d.Metadata.WordCount,
		Language:            util.StringToNullString(d.Metadata.Language),
		Complexity:          util.StringToNullString(string(d.Metadata.Complexity)),
		Quality:             util.StringToNullString(string(d.Metadata.Quality)),
		ViewCount:           d.Analytics.ViewCount,
		DownloadCount:       d.Analytics.DownloadCount,
		QuizGenerationCount: d.Analytics.QuizGenerationCount,
		LastViewedAt:        util.TimePtrToNullTime(d.Analytics.LastViewedAt),
		LastAccessedAt:      util.TimePtrToNullTime(d.Analytics.LastAccessedAt),
		ProcessedAt:         util.TimePtrToNullTime(d.Processing.ProcessedAt),
		QuizCount:           d.Processing.QuizCount,
		QuestionCount:       d.Processing.QuestionCount,
		QuestionType:        util.StringToNullString(string(d.Processing.QuestionType)),
		Difficulty:          util.StringToNullString(d.Processing.Difficulty),
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
	if d.Error != nil {
		m.ErrorKind = util.StringToNullString(d.Error.Kind)
		m.ErrorMessage = util.StringToNullString(d.Error.Message)
		m.ErrorStage = util.StringToNullString(string(d.Error.Stage))
		m.ErrorOccurredAt = util.TimeToNullTime(d.Error.OccurredAt)
	}
	return m
}

// Create inserts a new document.
func (r *sqlxDocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	m := fromDomainDocument(doc)
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, documentInsert, m.Args()...); err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when the document does not exist.
func (r *sqlxDocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	var m models.Document
	err := GetExecutor(ctx, r.db).GetContext(ctx, &m, documentSelect+" WHERE id = :1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document by id: %w", err)
	}
	return toDomainDocument(&m), nil
}

// Update writes every mutable column of doc.
func (r *sqlxDocumentRepository) Update(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now()
	m := fromDomainDocument(doc)

	all := m.Args()
	// drop id (first) and created_at, keep updated_at, then bind id last
	args := append(append([]interface{}{}, all[1:len(all)-2]...), all[len(all)-1], m.ID)

	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, documentUpdate, args...)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	ok, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFoundError("document not found: " + doc.ID)
	}
	return nil
}

// TransitionStatus moves the document to (to, stage) only while its status
// is one of from. Error info is cleared on a successful transition.
func (r *sqlxDocumentRepository) TransitionStatus(ctx context.Context, id string, from []domain.DocumentStatus, to domain.DocumentStatus, stage domain.ProcessingStage) (bool, error) {
	if len(from) == 0 {
		return false, fmt.Errorf("transition requires at least one source status")
	}

	args := []interface{}{string(to), util.StringToNullString(string(stage)), time.Now(), id}
	query := fmt.Sprintf(`UPDATE documents SET status = :1, processing_stage = :2,
		error_kind = NULL, error_message = NULL, error_stage = NULL, error_occurred_at = NULL,
		updated_at = :3 WHERE id = :4 AND status IN (%s)`, placeholders(5, len(from)))
	for _, s := range from {
		args = append(args, string(s))
	}

	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to transition document status: %w", err)
	}
	return rowsAffected(res)
}

// ListByStatus returns up to limit documents in status, oldest first.
func (r *sqlxDocumentRepository) ListByStatus(ctx context.Context, status domain.DocumentStatus, limit int) ([]*domain.Document, error) {
	var rows []models.Document
	query := documentSelect + " WHERE status = :1 ORDER BY created_at ASC FETCH FIRST :2 ROWS ONLY"
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, string(status), limit); err != nil {
		return nil, fmt.Errorf("failed to list documents by status: %w", err)
	}

	docs := make([]*domain.Document, 0, len(rows))
	for i := range rows {
		docs = append(docs, toDomainDocument(&rows[i]))
	}
	return docs, nil
}
