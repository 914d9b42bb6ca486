package domain

import (
	"errors"
	"strings"
)

var (
	// Auth flow.
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrAccountUnavailable = errors.New("account unavailable")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrDuplicateUsername  = errors.New("username already taken")

	// Access guard. ErrInvalidToken covers bad signatures and garbage tokens;
	// ErrSessionExpired covers expired tokens and revoked session correlators.
	// Clients distinguish "log in again" from "session expired" by these.
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrInvalidToken   = errors.New("invalid token")
	ErrSessionExpired = errors.New("session expired")
	ErrForbidden      = errors.New("forbidden")

	// Resources.
	ErrUserNotFound      = errors.New("user not found")
	ErrActivityNotFound  = errors.New("activity not found")
	ErrNewsNotFound      = errors.New("news not found")
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrUploadFailed = errors.New("upload failed")
)

// ValidationError aggregates field-level problems so the client receives the
// full list in one response.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NewValidationError builds a ValidationError from one or more messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}
