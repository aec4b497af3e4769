package domain

import (
	"context"
	"errors"
	"time"
)

// ErrAttemptAlreadyInProgress is returned by the attempt store when an
// in-progress attempt already exists for the (user, quiz) pair.
var ErrAttemptAlreadyInProgress = errors.New("an in-progress attempt already exists for this user and quiz")

// CompletionOptions are the sampling parameters sent with a prompt.
type CompletionOptions struct {
	MaxOutputTokens int
	Temperature     float64
}

// CompletionClient sends a prompt to the external AI service and returns the
// raw text of its first response. Implementations do not retry.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
}

// ExtractedText is what the text extraction collaborator returns.
type ExtractedText struct {
	Text      string
	PageCount int
	WordCount int
}

// TextExtractor turns a stored file into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, filePath string) (*ExtractedText, error)
}

// TransactionManager runs fn inside a single store transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DocumentRepository defines the interface for document persistence
type DocumentRepository interface {
	Create(ctx context.Context, doc *Document) error

	// GetByID returns nil, nil when the document does not exist.
	GetByID(ctx context.Context, id string) (*Document, error)

	// Update persists every mutable field of the document.
	Update(ctx context.Context, doc *Document) error

	// TransitionStatus moves the document to (to, stage) only if its current
	// status is one of from, clearing any error info. It reports whether the
	// transition happened.
	TransitionStatus(ctx context.Context, id string, from []DocumentStatus, to DocumentStatus, stage ProcessingStage) (bool, error)

	ListByStatus(ctx context.Context, status DocumentStatus, limit int) ([]*Document, error)
}

// QuizRepository defines the interface for quiz persistence
type QuizRepository interface {
	SaveQuizzes(ctx context.Context, quizzes []*Quiz) error

	// GetByID returns nil, nil when the quiz does not exist.
	GetByID(ctx context.Context, id string) (*Quiz, error)

	ListByDocument(ctx context.Context, documentID string) ([]*Quiz, error)

	// RecordAttempt folds one completed attempt into the stored running
	// averages in a single statement.
	RecordAttempt(ctx context.Context, quizID string, percentage float64, timeSpentSeconds int, at time.Time) error

	SoftDelete(ctx context.Context, id string) error
}

// QuizAttemptRepository defines the interface for attempt persistence
type QuizAttemptRepository interface {
	// Create returns ErrAttemptAlreadyInProgress if another in-progress
	// attempt exists for the same user and quiz.
	Create(ctx context.Context, attempt *QuizAttempt) error

	// GetByID returns nil, nil when the attempt does not exist.
	GetByID(ctx context.Context, id string) (*QuizAttempt, error)

	// FindInProgress returns nil, nil when no in-progress attempt exists.
	FindInProgress(ctx context.Context, quizID, userID string) (*QuizAttempt, error)

	// UpdateIfStatus writes the attempt only while its stored status equals
	// expected, and reports whether a row was written.
	UpdateIfStatus(ctx context.Context, attempt *QuizAttempt, expected AttemptStatus) (bool, error)
}
