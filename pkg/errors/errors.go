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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid  ErrorCode = "CONFIG_INVALID"
	ErrConfigWrite    ErrorCode = "CONFIG_WRITE"

	// Request assembly errors
	ErrRequestBuild   ErrorCode = "REQUEST_BUILD"
	ErrRequestInvalid ErrorCode = "REQUEST_INVALID"

	// Worker execution errors
	ErrWorkerRun    ErrorCode = "WORKER_RUN"
	ErrWorkerOutput ErrorCode = "WORKER_OUTPUT"

	// Response validation errors
	ErrEnvelopeInvalid  ErrorCode = "ENVELOPE_INVALID"
	ErrSchemaParse      ErrorCode = "SCHEMA_PARSE"
	ErrResponseMismatch ErrorCode = "RESPONSE_MISMATCH"

	// Per-step errors
	ErrStepFailed  ErrorCode = "STEP_FAILED"
	ErrStepAnalyze ErrorCode = "STEP_ANALYZE"

	// Structure errors
	ErrMoleculeParse ErrorCode = "MOLECULE_PARSE"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// StepError represents a structured error with code and details
type StepError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *StepError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *StepError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *StepError) Is(target error) bool {
	var targetErr *StepError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new StepError with the given code and message
func New(code ErrorCode, message string) *StepError {
	return &StepError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new StepError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *StepError {
	return &StepError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a StepError
func Wrap(err error, code ErrorCode, message string) *StepError {
	if err == nil {
		return nil
	}
	return &StepError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *StepError {
	if err == nil {
		return nil
	}
	return &StepError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *StepError) WithDetail(key string, value interface{}) *StepError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *StepError) WithDetails(details map[string]interface{}) *StepError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a StepError
func GetErrorCode(err error) ErrorCode {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a StepError
func GetErrorDetails(err error) map[string]interface{} {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Details
	}
	return nil
}
