package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/quiz-session-service/internal/errors"
	"github.com/SAP-F-2025/quiz-session-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-session-service/internal/session"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Session specific errors
	ErrSessionNotFound = errors.New("session not found")
	ErrQuizNotFound    = session.ErrQuizNotFound
	ErrSessionClosed   = session.ErrSessionClosed
	ErrInvalidState    = session.ErrInvalidState
	ErrNoAnswer        = session.ErrNoAnswer
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// RedirectError asks the host to navigate to the quiz's parent container
type RedirectError = session.RedirectError

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		repositories.IsNotFoundError(err)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	return apperrors.IsValidationError(err)
}

// IsRedirect checks if the caller should leave the quiz
func IsRedirect(err error) bool {
	return session.IsRedirect(err)
}

// IsConflict checks if a command was rejected by the session state
func IsConflict(err error) bool {
	return errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrSessionClosed) ||
		errors.Is(err, ErrNoAnswer) ||
		errors.Is(err, session.ErrAnswerTypeMismatch) ||
		errors.Is(err, session.ErrUnknownAnswerTarget)
}
