package validation

import (
	"strings"

	"studion/internal/domain"
	"studion/internal/dto"
	"studion/internal/util"
)

const (
	maxFileNameLength = 255
	maxAnswerLength   = 2000
	maxQuestionCount  = 50
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateID checks that a path or body identifier is a ULID.
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if !util.IsULID(id) {
		errors = append(errors, domain.NewInvalidFormatError(field, id))
	}

	return errors
}

// ValidateCreateDocumentRequest validates the document registration body
func (v *Validator) ValidateCreateDocumentRequest(req dto.CreateDocumentRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.FilePath) == "" {
		errors = append(errors, domain.NewMissingFieldError("file_path"))
	} else if strings.Contains(req.FilePath, "..") {
		errors = append(errors, domain.NewInvalidFormatError("file_path", req.FilePath))
	}

	if len(req.FileName) > maxFileNameLength {
		errors = append(errors, domain.NewOutOfRangeError("file_name", len(req.FileName), 0, maxFileNameLength))
	}

	return append(errors, v.ValidateGenerationOptions(req.GenerationOptions)...)
}

// ValidateGenerationOptions validates optional generation overrides.
// Zero values mean "use the configured default".
func (v *Validator) ValidateGenerationOptions(opts dto.GenerationOptions) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if opts.QuestionType != "" {
		if _, ok := domain.ParseQuizType(opts.QuestionType); !ok {
			errors = append(errors, domain.NewInvalidFormatError("question_type", opts.QuestionType))
		}
	}

	if opts.QuestionCount < 0 || opts.QuestionCount > maxQuestionCount {
		errors = append(errors, domain.NewOutOfRangeError("question_count", opts.QuestionCount, 1, maxQuestionCount))
	}

	if opts.Language != "" && !isValidLanguageCode(opts.Language) {
		errors = append(errors, domain.NewInvalidFormatError("language", opts.Language))
	}

	return errors
}

// ValidateStartAttemptRequest validates the start attempt body
func (v *Validator) ValidateStartAttemptRequest(req dto.StartAttemptRequest) domain.ValidationErrors {
	return v.ValidateID("quiz_id", req.QuizID)
}

// ValidateSubmitAnswerRequest validates the submit answer body
func (v *Validator) ValidateSubmitAnswerRequest(req dto.SubmitAnswerRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.QuestionIndex == nil {
		errors = append(errors, domain.NewMissingFieldError("question_index"))
	} else if *req.QuestionIndex < 0 {
		errors = append(errors, domain.NewInvalidFormatError("question_index", *req.QuestionIndex))
	}

	if req.UserAnswer.Index == nil && strings.TrimSpace(req.UserAnswer.Text) == "" {
		errors = append(errors, domain.NewMissingFieldError("user_answer"))
	} else if len(req.UserAnswer.Text) > maxAnswerLength {
		errors = append(errors, domain.NewOutOfRangeError("user_answer", len(req.UserAnswer.Text), 1, maxAnswerLength))
	}

	if req.TimeSpentMs < 0 {
		errors = append(errors, domain.NewInvalidFormatError("time_spent_ms", req.TimeSpentMs))
	}

	return errors
}

// Helper functions for validation

// isValidLanguageCode accepts two-letter lowercase codes such as "en".
func isValidLanguageCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
