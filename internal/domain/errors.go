package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
	CodeNotFound   ErrorCode = "NOT_FOUND"
	CodeBadInput   ErrorCode = "BAD_INPUT"
	CodeValidation ErrorCode = "VALIDATION_ERROR"

	// Lifecycle errors
	CodeInvalidState ErrorCode = "INVALID_STATE"

	// Pipeline errors
	CodeExtractionFailure ErrorCode = "EXTRACTION_FAILURE"
	CodeAIServiceFailure  ErrorCode = "AI_SERVICE_FAILURE"
	CodeParseFailure      ErrorCode = "PARSE_FAILURE"
	CodeValidationFailure ErrorCode = "VALIDATION_FAILURE"
)

// AIFailureKind distinguishes why a completion call failed.
type AIFailureKind string

const (
	AIFailureTimeout      AIFailureKind = "timeout"
	AIFailureServiceError AIFailureKind = "service_error"
	AIFailureNetworkError AIFailureKind = "network_error"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Err     error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// WithContext attaches a detail entry and returns the same error.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewBadInputError(message string) *DomainError {
	return NewError(CodeBadInput, message, nil)
}

func NewInvalidStateError(message string) *DomainError {
	return NewError(CodeInvalidState, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewExtractionError(err error) *DomainError {
	return NewError(CodeExtractionFailure, "Failed to extract document text", err)
}

func NewParseError(message string, err error) *DomainError {
	return NewError(CodeParseFailure, message, err)
}

func NewGenerationValidationError(message string) *DomainError {
	return NewError(CodeValidationFailure, message, nil)
}

// AIServiceError is returned by completion clients. Kind tells a timeout
// apart from a provider or transport failure.
type AIServiceError struct {
	Kind AIFailureKind
	Err  error
}

func (e *AIServiceError) Error() string {
	return fmt.Sprintf("ai service %s: %v", e.Kind, e.Err)
}

func (e *AIServiceError) Unwrap() error {
	return e.Err
}

// NewAIServiceError wraps a completion failure as a DomainError.
func NewAIServiceError(kind AIFailureKind, err error) *DomainError {
	return NewError(CodeAIServiceFailure, "AI completion failed", &AIServiceError{Kind: kind, Err: err}).
		WithContext("ai_failure_kind", string(kind))
}

// CodeOf returns the ErrorCode carried by err, or CodeInternal.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// FailureKind is the value persisted as errorInfo.kind for a pipeline failure.
// AI failures are reported by their sub-kind.
func FailureKind(err error) string {
	var aiErr *AIServiceError
	if errors.As(err, &aiErr) {
		return string(CodeAIServiceFailure) + ":" + string(aiErr.Kind)
	}
	return string(CodeOf(err))
}

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationErrors is a list of field-level request validation failures.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s: %s", v[0].Field, v[0].Message)
}

func NewMissingFieldError(field string) FieldError {
	return FieldError{Field: field, Message: "field is required"}
}

func NewInvalidFormatError(field string, value interface{}) FieldError {
	return FieldError{Field: field, Message: "invalid format", Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) FieldError {
	return FieldError{Field: field, Message: fmt.Sprintf("must be between %d and %d", min, max), Value: value}
}
