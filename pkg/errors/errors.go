package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrPermission   ErrorCode = "PERMISSION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
	ErrValidation  ErrorCode = "VALIDATION"

	// Planning errors
	ErrPlanConflict ErrorCode = "PLAN_CONFLICT"
	ErrPathEncoding ErrorCode = "PATH_ENCODING"

	// FileSystem errors
	ErrFileNotFound  ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileCreate    ErrorCode = "FILE_CREATE"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"

	// Crypto errors
	ErrPassphraseMismatch ErrorCode = "PASSPHRASE_MISMATCH"
	ErrCrypto             ErrorCode = "CRYPTO"
	ErrInvalidName        ErrorCode = "INVALID_NAME"
)

// LkdotsError represents a structured error with code and details
type LkdotsError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LkdotsError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LkdotsError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LkdotsError) Is(target error) bool {
	var targetErr *LkdotsError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LkdotsError with the given code and message
func New(code ErrorCode, message string) *LkdotsError {
	return &LkdotsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LkdotsError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LkdotsError {
	return &LkdotsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LkdotsError
func Wrap(err error, code ErrorCode, message string) *LkdotsError {
	if err == nil {
		return nil
	}
	return &LkdotsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LkdotsError {
	if err == nil {
		return nil
	}
	return &LkdotsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LkdotsError) WithDetail(key string, value interface{}) *LkdotsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var lkErr *LkdotsError
	if errors.As(err, &lkErr) {
		return lkErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LkdotsError
func GetErrorCode(err error) ErrorCode {
	var lkErr *LkdotsError
	if errors.As(err, &lkErr) {
		return lkErr.Code
	}
	return ErrUnknown
}
