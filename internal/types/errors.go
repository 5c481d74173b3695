package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for Willow errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
	CONFIG_NOT_FOUND         ErrorCode = "CONFIG_NOT_FOUND"
)

// I/O error codes used by the deploy and backup tooling.
const (
	IO_READ_FAILED  ErrorCode = "IO_READ_FAILED"
	IO_WRITE_FAILED ErrorCode = "IO_WRITE_FAILED"
)

// WillowError represents a structured error with error code, message, and optional cause.
// It supports error wrapping and retryability hints for error handling logic.
type WillowError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *WillowError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *WillowError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
// Returns true if target is a WillowError with the same Code.
func (e *WillowError) Is(target error) bool {
	var willowErr *WillowError
	if errors.As(target, &willowErr) {
		return e.Code == willowErr.Code
	}
	return false
}

// NewError creates a new non-retryable WillowError with the given code and message.
func NewError(code ErrorCode, message string) *WillowError {
	return &WillowError{
		Code:    code,
		Message: message,
	}
}

// NewRetryableError creates a new retryable WillowError with the given code and message.
// Use this for transient errors that may succeed on retry (e.g., network timeouts).
func NewRetryableError(code ErrorCode, message string) *WillowError {
	return &WillowError{
		Code:      code,
		Message:   message,
		Retryable: true,
	}
}

// WrapError creates a new non-retryable WillowError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *WillowError {
	return &WillowError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapRetryableError creates a new retryable WillowError that wraps an existing error.
func WrapRetryableError(code ErrorCode, message string, cause error) *WillowError {
	return &WillowError{
		Code:      code,
		Message:   message,
		Retryable: true,
		Cause:     cause,
	}
}

// IsRetryable reports whether any WillowError in the chain is marked retryable.
func IsRetryable(err error) bool {
	var willowErr *WillowError
	if errors.As(err, &willowErr) {
		return willowErr.Retryable
	}
	return false
}

// GetErrorCode returns the code of the first WillowError in the chain,
// or an empty code if there is none.
func GetErrorCode(err error) ErrorCode {
	var willowErr *WillowError
	if errors.As(err, &willowErr) {
		return willowErr.Code
	}
	return ""
}
