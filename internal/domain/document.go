package domain

import (
	"time"
)

// DocumentStatus is the coarse lifecycle state of a document.
type DocumentStatus string

const (
	DocumentPending    DocumentStatus = "pending"
	DocumentProcessing DocumentStatus = "processing"
	DocumentCompleted  DocumentStatus = "completed"
	DocumentFailed     DocumentStatus = "failed"
)

// ProcessingStage is the sub-state while a document is processing.
type ProcessingStage string

const (
	StageNone         ProcessingStage = ""
	StageAIAnalysis   ProcessingStage = "ai_analysis"
	StageProcessing   ProcessingStage = "processing"
	StageCompleted    ProcessingStage = "completed"
	StageFailed       ProcessingStage = "failed"
	StageFinalization ProcessingStage = "finalization"
)

// Complexity bands reported by the summary stage.
type Complexity string

const (
	ComplexityBasic        Complexity = "basic"
	ComplexityIntermediate Complexity = "intermediate"
	ComplexityAdvanced     Complexity = "advanced"
	ComplexityExpert       Complexity = "expert"
)

// ParseComplexity maps a free-form label onto a band, defaulting to intermediate.
func ParseComplexity(s string) Complexity {
	switch Complexity(s) {
	case ComplexityBasic, ComplexityIntermediate, ComplexityAdvanced, ComplexityExpert:
		return Complexity(s)
	default:
		return ComplexityIntermediate
	}
}

// Quality bands derived from the extracted word count.
type Quality string

const (
	QualityPoor      Quality = "poor"
	QualityFair      Quality = "fair"
	QualityGood      Quality = "good"
	QualityExcellent Quality = "excellent"
)

// QualityForWordCount classifies a document by how much text it yielded.
func QualityForWordCount(words int) Quality {
	switch {
	case words < 100:
		return QualityPoor
	case words < 500:
		return QualityFair
	case words < 2000:
		return QualityGood
	default:
		return QualityExcellent
	}
}

// DocumentContent holds the extracted text and the AI-derived content.
type DocumentContent struct {
	ExtractedText string
	Summary       string
	KeyPoints     []string
	Topics        []string
}

// FileMetadata describes the uploaded file and its classification.
type FileMetadata struct {
	OriginalName string
	FilePath     string
	PageCount    int
	WordCount    int
	Language     string
	Complexity   Complexity
	Quality      Quality
}

// DocumentAnalytics holds usage counters.
type DocumentAnalytics struct {
	ViewCount           int
	DownloadCount       int
	QuizGenerationCount int
	LastViewedAt        *time.Time
	LastAccessedAt      *time.Time
}

// ProcessingInfo is written when the pipeline completes.
type ProcessingInfo struct {
	ProcessedAt   *time.Time
	QuizCount     int
	QuestionCount int
	QuestionType  QuizType
	Difficulty    string
}

// ErrorInfo is present only when the document failed.
type ErrorInfo struct {
	Kind       string
	Message    string
	Stage      ProcessingStage
	OccurredAt time.Time
}

// Document is an uploaded source file plus its derived AI content.
type Document struct {
	ID              string
	OwnerID         string
	Status          DocumentStatus
	ProcessingStage ProcessingStage
	Content         DocumentContent
	Metadata        FileMetadata
	Analytics       DocumentAnalytics
	Processing      ProcessingInfo
	Error           *ErrorInfo
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewDocument creates a pending document for an upload.
func NewDocument(id, ownerID, originalName, filePath string) *Document {
	now := time.Now()
	return &Document{
		ID:      id,
		OwnerID: ownerID,
		Status:  DocumentPending,
		Metadata: FileMetadata{
			OriginalName: originalName,
			FilePath:     filePath,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ReprocessableStatuses are the states that accept a processing trigger.
var ReprocessableStatuses = []DocumentStatus{DocumentPending, DocumentFailed}

// CanProcess reports whether a processing run may start from the current status.
func (d *Document) CanProcess() bool {
	for _, s := range ReprocessableStatuses {
		if d.Status == s {
			return true
		}
	}
	return false
}

// Validate validates the document
func (d *Document) Validate() error {
	if d.OwnerID == "" {
		return NewBadInputError("owner id is required")
	}
	if d.Metadata.FilePath == "" {
		return NewBadInputError("file path is required")
	}
	return nil
}

// Clone returns a deep copy that shares no slices or pointers with d.
func (d *Document) Clone() *Document {
	c := *d
	c.Content.KeyPoints = append([]string(nil), d.Content.KeyPoints...)
	c.Content.Topics = append([]string(nil), d.Content.Topics...)
	c.Analytics.LastViewedAt = cloneTime(d.Analytics.LastViewedAt)
	c.Analytics.LastAccessedAt = cloneTime(d.Analytics.LastAccessedAt)
	c.Processing.ProcessedAt = cloneTime(d.Processing.ProcessedAt)
	if d.Error != nil {
		e := *d.Error
		c.Error = &e
	}
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
