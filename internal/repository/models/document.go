package models

import (
	"database/sql"
	"time"
)

// Document is a row of the documents table.
type Document struct {
	ID                  string         `db:"id"`
	OwnerID             string         `db:"owner_id"`
	Status              string         `db:"status"`
	ProcessingStage     sql.NullString `db:"processing_stage"`
	OriginalName        string         `db:"original_name"`
	FilePath            string         `db:"file_path"`
	ExtractedText       sql.NullString `db:"extracted_text"`
	Summary             sql.NullString `db:"summary"`
	KeyPoints           StringSlice    `db:"key_points"`
	Topics              StringSlice    `db:"topics"`
	PageCount           int            `db:"page_count"`
	WordCount           int            `db:"word_count"`
	Language            sql.NullString `db:"language"`
	Complexity          sql.NullString `db:"complexity"`
	Quality             sql.NullString `db:"quality"`
	ViewCount           int            `db:"view_count"`
	DownloadCount       int            `db:"download_count"`
	QuizGenerationCount int            `db:"quiz_generation_count"`
	LastViewedAt        sql.NullTime   `db:"last_viewed_at"`
	LastAccessedAt      sql.NullTime   `db:"last_accessed_at"`
	ProcessedAt         sql.NullTime   `db:"processed_at"`
	QuizCount           int            `db:"quiz_count"`
	QuestionCount       int            `db:"question_count"`
	QuestionType        sql.NullString `db:"question_type"`
	Difficulty          sql.NullString `db:"difficulty"`
	ErrorKind           sql.NullString `db:"error_kind"`
	ErrorMessage        sql.NullString `db:"error_message"`
	ErrorStage          sql.NullString `db:"error_stage"`
	ErrorOccurredAt     sql.NullTime   `db:"error_occurred_at"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

// DocumentColumns lists the documents columns in the order of Document.Args.
var DocumentColumns = []string{
	"id", "owner_id", "status", "processing_stage", "original_name", "file_path",
	"extracted_text", "summary", "key_points", "topics", "page_count", "word_count",
	"language", "complexity", "quality", "view_count", "download_count", "quiz_generation_count",
	"last_viewed_at", "last_accessed_at", "processed_at", "quiz_count", "question_count",
	"question_type", "difficulty", "error_kind", "error_message", "error_stage", "error_occurred_at",
	"created_at", "updated_at",
}

// Args returns the bind values in DocumentColumns order.
func (d *Document) Args() []interface{} {
	return []interface{}{
		d.ID, d.OwnerID, d.Status, d.ProcessingStage, d.OriginalName, d.FilePath,
		d.ExtractedText, d.Summary, d.KeyPoints, d.Topics, d.PageCount, d.WordCount,
		d.Language, d.Complexity, d.Quality, d.ViewCount, d.DownloadCount, d.QuizGenerationCount,
		d.LastViewedAt, d.LastAccessedAt, d.ProcessedAt, d.QuizCount, d.QuestionCount,
		d.QuestionType, d.Difficulty, d.ErrorKind, d.ErrorMessage, d.ErrorStage, d.ErrorOccurredAt,
		d.CreatedAt, d.UpdatedAt,
	}
}
