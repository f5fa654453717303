// Package apperrors provides error code definitions for the folio services.
package apperrors

import (
	"errors"
	"fmt"
)

// Code identifies a class of service failure.
type Code string

const (
	// General errors
	ErrInternal   Code = "INTERNAL_ERROR"
	ErrInvalid    Code = "INVALID_INPUT"
	ErrNotFound   Code = "NOT_FOUND"
	ErrValidation Code = "VALIDATION_ERROR"

	// Record store errors
	ErrDuplicateSlug     Code = "DUPLICATE_SLUG"
	ErrCorruptRecord     Code = "CORRUPT_RECORD"
	ErrInvalidTransition Code = "INVALID_TRANSITION"

	// Backend errors
	ErrBackendUnavailable Code = "BACKEND_UNAVAILABLE"
)

// AppError represents an application error with code and message.
type AppError struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code Code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message.
func Newf(code Code, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an error code.
func Wrap(code Code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Is checks if an error carries a specific code anywhere in its chain.
func Is(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
