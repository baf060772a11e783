package errors

import (
	"errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	return GetCode(err) == code
}

// Error codes. LoadError and ConfigInvalid are the only fatal families the
// engine produces; everything non-fatal is an omission, not an error.
const (
	CodeLoadError     = "LOAD_ERROR"
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInternalError = "INTERNAL_ERROR"
)

// LoadError marks a fatal loader failure: undecodable bytes, empty table,
// or too few columns. Analysis does not proceed past it.
func LoadError(message string) *AppError {
	return New(CodeLoadError, message)
}

// ConfigInvalid marks invalid caller configuration.
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// InvalidInput marks malformed caller input outside configuration.
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// InternalError marks an unexpected engine failure.
func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

// IsLoadError reports whether err is a fatal loader error.
func IsLoadError(err error) bool { return HasCode(err, CodeLoadError) }

// IsConfigInvalid reports whether err is a configuration error.
func IsConfigInvalid(err error) bool { return HasCode(err, CodeConfigInvalid) }
