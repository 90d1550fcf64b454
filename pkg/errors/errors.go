// Package errors defines archup's coded error type.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of failure. Tests and callers branch on
// codes, never on messages.
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Platform errors
	ErrUnsupportedPlatform ErrorCode = "UNSUPPORTED_PLATFORM"

	// External command errors
	ErrCommandFailed   ErrorCode = "COMMAND_FAILED"
	ErrCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"

	// FileSystem errors
	ErrFileNotFound   ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess     ErrorCode = "FILE_ACCESS"
	ErrFileWrite      ErrorCode = "FILE_WRITE"
	ErrMarkerMismatch ErrorCode = "MARKER_MISMATCH"
	ErrUnsafePath     ErrorCode = "UNSAFE_PATH"

	// Database errors
	ErrDBUnavailable ErrorCode = "DB_UNAVAILABLE"
	ErrDBInvalidName ErrorCode = "DB_INVALID_NAME"

	// Authentication errors
	ErrAuthFailed    ErrorCode = "AUTH_FAILED"
	ErrAuthCancelled ErrorCode = "AUTH_CANCELLED"

	// Run coordination
	ErrLocked ErrorCode = "LOCKED"
)

// ArchupError carries a stable code next to the human message, plus
// optional details (path, command, exit code) for the final error line.
type ArchupError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func build(code ErrorCode, message string, wrapped error) *ArchupError {
	return &ArchupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: wrapped,
	}
}

// New creates an error with the given code.
func New(code ErrorCode, message string) *ArchupError {
	return build(code, message, nil)
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *ArchupError {
	return build(code, fmt.Sprintf(format, args...), nil)
}

// Wrap attaches a code and message to err. A nil err stays nil.
func Wrap(err error, code ErrorCode, message string) *ArchupError {
	if err == nil {
		return nil
	}
	return build(code, message, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ArchupError {
	if err == nil {
		return nil
	}
	return build(code, fmt.Sprintf(format, args...), err)
}

func (e *ArchupError) Error() string {
	if e.Wrapped == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
}

func (e *ArchupError) Unwrap() error {
	return e.Wrapped
}

// Is matches any ArchupError carrying the same code.
func (e *ArchupError) Is(target error) bool {
	var other *ArchupError
	return errors.As(target, &other) && e.Code == other.Code
}

// WithDetail records key on the error and returns it for chaining.
func (e *ArchupError) WithDetail(key string, value interface{}) *ArchupError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode reports whether any error in err's chain has code.
func IsErrorCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, &ArchupError{Code: code})
}

// GetErrorCode returns the outermost code in err's chain, or ErrUnknown.
func GetErrorCode(err error) ErrorCode {
	if e := outermost(err); e != nil {
		return e.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the outermost details in err's chain, or nil.
func GetErrorDetails(err error) map[string]interface{} {
	if e := outermost(err); e != nil {
		return e.Details
	}
	return nil
}

func outermost(err error) *ArchupError {
	var e *ArchupError
	if errors.As(err, &e) {
		return e
	}
	return nil
}
