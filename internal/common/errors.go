package common

import (
	"errors"
	"fmt"
)

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Permission errors
	ErrPermissionDenied = errors.New("permission denied")
	ErrNoBoardAccess    = errors.New("no access to this board")

	// Entity errors
	ErrBoardNotFound       = errors.New("board not found")
	ErrDealNotFound        = errors.New("deal not found")
	ErrMemoNotFound        = errors.New("memo not found")
	ErrMemoVersionNotFound = errors.New("memo version not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrMemberNotFound      = errors.New("member not found")

	// Validation errors
	ErrValidation   = errors.New("validation failed")
	ErrInvalidInput = errors.New("invalid input")

	// Write conflicts (retryable; triggers optimistic rollback)
	ErrConflict = errors.New("write conflict")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
)

// ValidationError reports the offending field so callers can render
// field-level feedback, distinct from permission failures.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a field-level validation error
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
