package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeIngestion ErrorType = "INGESTION"
	ErrTypeStorage   ErrorType = "STORAGE"
	ErrTypeConfig    ErrorType = "CONFIG"
	ErrTypeNotFound  ErrorType = "NOT_FOUND"
)

// AppError represents an application-specific error. Only whole-run
// structural problems surface as AppError; per-record data-quality issues
// travel as findings, never as errors.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewIngestionError creates an error for a broken contract with the upstream
// source: an unreadable raw stream or a schema missing a required column. A
// run that hits one of these yields no canonical table at all.
func NewIngestionError(message string, cause error) *AppError {
	return NewAppError(ErrTypeIngestion, message, cause)
}

// NewStorageError creates an error for failures writing pipeline output.
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates an error for invalid configuration.
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewNotFoundError creates an error for a missing resource.
func NewNotFoundError(message string) *AppError {
	return NewAppError(ErrTypeNotFound, message, nil)
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// IsIngestionError reports whether err is a structural ingestion failure.
func IsIngestionError(err error) bool {
	return IsType(err, ErrTypeIngestion)
}
