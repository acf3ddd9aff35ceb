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
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Store errors
	ErrStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	ErrStore            ErrorCode = "STORE_ERROR"

	// Generation errors
	ErrNoQuizzesAvailable ErrorCode = "NO_QUIZZES_AVAILABLE"
	ErrLLMServiceError    ErrorCode = "LLM_SERVICE_ERROR"
	ErrGenerationFailed   ErrorCode = "GENERATION_FAILED"
	ErrInvalidQuiz        ErrorCode = "INVALID_QUIZ"
	ErrDuplicateQuiz      ErrorCode = "DUPLICATE_QUIZ"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
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

// HasCode reports whether err is (or wraps) a DomainError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

// Helper functions for common errors
func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewStoreUnavailableError(reason string) *DomainError {
	return NewError(ErrStoreUnavailable, "document store unavailable", errors.New(reason))
}

func NewStoreError(message string, err error) *DomainError {
	return NewError(ErrStore, message, err)
}

func NewNoQuizzesAvailableError(slotCount int) *DomainError {
	return NewError(ErrNoQuizzesAvailable, fmt.Sprintf("no quiz could be generated for any of %d slots", slotCount), nil)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(ErrLLMServiceError, "Failed to process with LLM service", err)
}

func NewGenerationFailedError(message string, err error) *DomainError {
	return NewError(ErrGenerationFailed, message, err)
}

func NewInvalidQuizError(err error) *DomainError {
	return NewError(ErrInvalidQuiz, "generated quiz violates option invariants", err)
}

func NewDuplicateQuizError(similarity float64) *DomainError {
	return NewError(ErrDuplicateQuiz, fmt.Sprintf("generated question too similar to an accepted one (%.3f)", similarity), nil)
}
