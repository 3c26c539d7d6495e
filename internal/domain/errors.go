package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCacheMiss is returned by Cache implementations when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Quiz specific errors
	CodeQuizNotFound   ErrorCode = "QUIZ_NOT_FOUND"
	CodeExtraction     ErrorCode = "EXTRACTION_ERROR"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
	CodeGeneration     ErrorCode = "GENERATION_ERROR"
	CodeLLMService     ErrorCode = "LLM_SERVICE_ERROR"
	CodeDuplicateEmail ErrorCode = "DUPLICATE_EMAIL"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
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
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper constructors for common errors

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

// NewExtractionError covers both missing JSON boundaries in an LLM response
// and document text that is too short to generate from.
func NewExtractionError(message string) *DomainError {
	return NewError(CodeExtraction, message, nil)
}

func NewValidationError(message string) *DomainError {
	return NewError(CodeValidation, message, nil)
}

// NewGenerationError is fatal: it means even the fallback bank produced
// nothing for the request.
func NewGenerationError(message string) *DomainError {
	return NewError(CodeGeneration, message, nil)
}

func NewLLMServiceError(cause error) *DomainError {
	return NewError(CodeLLMService, "Failed to process with LLM service", cause)
}

// IsCode reports whether err is a DomainError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	if de, ok := err.(*DomainError); ok {
		return de.Code == code
	}
	return false
}
