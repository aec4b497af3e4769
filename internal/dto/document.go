package dto

import "time"

// CreateDocumentRequest registers an uploaded file.
// @Description Request body for registering an uploaded document
type CreateDocumentRequest struct {
	FileName  string `json:"file_name"`
	FilePath  string `json:"file_path"`
	Immediate bool   `json:"immediate"`
	GenerationOptions
}

// GenerationOptions override the configured generation defaults.
type GenerationOptions struct {
	QuestionType  string `json:"question_type,omitempty"`
	QuestionCount int    `json:"question_count,omitempty"`
	Difficulty    string `json:"difficulty,omitempty"`
	Language      string `json:"language,omitempty"`
}

// ProcessDocumentRequest triggers a (re)processing run.
type ProcessDocumentRequest struct {
	GenerationOptions
}

// ErrorInfoResponse explains why a document failed.
type ErrorInfoResponse struct {
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	Stage      string    `json:"stage"`
	OccurredAt time.Time `json:"occurred_at"`
}

// DocumentResponse represents a document in the API response
// @Description Document with derived content and processing state
type DocumentResponse struct {
	ID              string             `json:"id"`
	OwnerID         string             `json:"owner_id"`
	Status          string             `json:"status"`
	ProcessingStage string             `json:"processing_stage,omitempty"`
	OriginalName    string             `json:"original_name"`
	PageCount       int                `json:"page_count"`
	WordCount       int                `json:"word_count"`
	Language        string             `json:"language,omitempty"`
	Complexity      string             `json:"complexity,omitempty"`
	Quality         string             `json:"quality,omitempty"`
	Summary         string             `json:"summary,omitempty"`
	KeyPoints       []string           `json:"key_points"`
	Topics          []string           `json:"topics"`
	ViewCount       int                `json:"view_count"`
	DownloadCount   int                `json:"download_count"`
	QuizGenerations int                `json:"quiz_generation_count"`
	QuizCount       int                `json:"quiz_count"`
	QuestionCount   int                `json:"question_count"`
	ProcessedAt     *time.Time         `json:"processed_at,omitempty"`
	Error           *ErrorInfoResponse `json:"error,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// ProcessingAckResponse is returned as soon as a run is scheduled.
type ProcessingAckResponse struct {
	DocumentID      string `json:"document_id"`
	Status          string `json:"status"`
	ProcessingStage string `json:"processing_stage"`
}
