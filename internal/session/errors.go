package session

import (
	"errors"
	"fmt"
)

var (
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrInvalidState        = errors.New("operation not permitted in current session state")
	ErrSessionClosed       = errors.New("session closed")
	ErrNoAnswer            = errors.New("no answer provided")
	ErrAnswerTypeMismatch  = errors.New("answer does not match question type")
	ErrUnknownAnswerTarget = errors.New("answer refers to an unknown item")
	ErrUnsupportedContent  = errors.New("unsupported question content")
	ErrInvariantViolation  = errors.New("session invariant violated")
)

// RedirectError tells the host to leave the quiz and navigate to its parent
// container. It is returned when a quiz definition cannot be resolved.
type RedirectError struct {
	QuizID   string
	ParentID string
	Err      error
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("quiz %q unavailable, redirect to %q: %v", e.QuizID, e.ParentID, e.Err)
}

func (e *RedirectError) Unwrap() error {
	return e.Err
}

// IsRedirect reports whether err asks the caller to navigate away.
func IsRedirect(err error) bool {
	var re *RedirectError
	return errors.As(err, &re)
}
