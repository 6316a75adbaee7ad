// Package errors provides custom error types and error handling utilities.
package errors

import (
	"fmt"
)

// Error codes.
const (
	// Caller errors.
	CodeValidation    = "VALIDATION_ERROR"
	CodeConfiguration = "CONFIGURATION_ERROR"
	CodeUnknownKind   = "UNKNOWN_KIND"
	CodeUnsupported   = "UNSUPPORTED"
	CodeParse         = "PARSE_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"

	// Internal errors.
	CodeInternal = "INTERNAL_ERROR"
)

// AppError represents an application error with code and details.
type AppError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	Err     error             `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with an AppError.
func Wrap(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails adds details to the error.
func (e *AppError) WithDetails(details map[string]string) *AppError {
	e.Details = details
	return e
}

// WithDetail adds a single detail to the error.
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// Convenience constructors.

// ValidationError creates a validation error.
func ValidationError(message string) *AppError {
	return New(CodeValidation, message)
}

// ConfigurationError creates a configuration error.
func ConfigurationError(message string) *AppError {
	return New(CodeConfiguration, message)
}

// UnknownKindError creates an error for an unregistered DSL kind.
func UnknownKindError(kind string) *AppError {
	return New(CodeUnknownKind, fmt.Sprintf("unknown DSL kind %q", kind))
}

// UnsupportedError creates an error for an explicitly unsupported input form.
func UnsupportedError(message string) *AppError {
	return New(CodeUnsupported, message)
}

// ParseError creates a parse error.
func ParseError(message string, err error) *AppError {
	return Wrap(CodeParse, message, err)
}

// NotFoundError creates a not found error.
func NotFoundError(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

// AlreadyExistsError creates an already exists error.
func AlreadyExistsError(resource string) *AppError {
	return New(CodeAlreadyExists, fmt.Sprintf("%s already exists", resource))
}

// InternalError creates an internal error.
func InternalError(message string, err error) *AppError {
	return Wrap(CodeInternal, message, err)
}

// IsValidation checks if error is a validation error.
func IsValidation(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == CodeValidation
	}
	return false
}

// IsConfiguration checks if error is a configuration error.
func IsConfiguration(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == CodeConfiguration
	}
	return false
}

// IsUnknownKind checks if error is an unknown kind error.
func IsUnknownKind(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == CodeUnknownKind
	}
	return false
}

// IsUnsupported checks if error is an unsupported input error.
func IsUnsupported(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == CodeUnsupported
	}
	return false
}

// IsParse checks if error is a parse error.
func IsParse(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == CodeParse
	}
	return false
}

// IsNotFound checks if error is a not found error.
func IsNotFound(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == CodeNotFound
	}
	return false
}

// IsAlreadyExists checks if error is an already exists error.
func IsAlreadyExists(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == CodeAlreadyExists
	}
	return false
}
