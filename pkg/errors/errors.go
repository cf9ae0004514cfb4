package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeConfiguration indicates a required credential or setting is missing
	ErrorTypeConfiguration ErrorType = "CONFIGURATION"

	// ErrorTypeTransient indicates a retryable failure of an external service
	ErrorTypeTransient ErrorType = "TRANSIENT"

	// ErrorTypeRequestDenied indicates an external provider rejected the request
	// (bad credential, quota); not retryable without operator action
	ErrorTypeRequestDenied ErrorType = "REQUEST_DENIED"

	// ErrorTypeNoResult indicates the provider processed the request but found
	// nothing for the input; a user-input problem, not a system fault
	ErrorTypeNoResult ErrorType = "NO_RESULT"

	// ErrorTypeProvider indicates an unclassified non-success provider status
	ErrorTypeProvider ErrorType = "PROVIDER"

	// ErrorTypeRepository indicates the datastore was unavailable or a query failed
	ErrorTypeRepository ErrorType = "REPOSITORY"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// TypeOf returns the ErrorType of err, or ErrorTypeInternal for errors that
// did not originate from this package.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// IsType reports whether err carries the given ErrorType.
func IsType(err error, t ErrorType) bool {
	return TypeOf(err) == t
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConfiguration,
		Message: message,
	}
}

// NewTransientError creates a new transient external-service error
func NewTransientError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeTransient,
		Message: message,
		Err:     err,
	}
}

// NewRequestDeniedError creates a new request denied error
func NewRequestDeniedError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeRequestDenied,
		Message: message,
	}
}

// NewNoResultError creates a new no result error
func NewNoResultError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNoResult,
		Message: message,
	}
}

// NewProviderError creates a provider error carrying the raw provider status
func NewProviderError(status string) *AppError {
	return &AppError{
		Type:    ErrorTypeProvider,
		Message: fmt.Sprintf("provider returned status %s", status),
	}
}

// NewRepositoryError creates a new repository error
func NewRepositoryError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeRepository,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}
