package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes, grouped by the pipeline stage that raises them
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrCanceled      ErrorCode = "CANCELED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Acquisition errors
	ErrAcquire       ErrorCode = "ACQUIRE"
	ErrSourceInvalid ErrorCode = "SOURCE_INVALID"

	// Reducer module errors
	ErrReducerLoad      ErrorCode = "REDUCER_LOAD"
	ErrReducerForbidden ErrorCode = "REDUCER_FORBIDDEN"

	// Reduction errors
	ErrReduce           ErrorCode = "REDUCE"
	ErrManifestParse    ErrorCode = "MANIFEST_PARSE"
	ErrParameterInvalid ErrorCode = "PARAMETER_INVALID"
	ErrResolve          ErrorCode = "RESOLVE"
	ErrFinish           ErrorCode = "FINISH"

	// Install errors
	ErrInstall ErrorCode = "INSTALL"

	// Test harness errors
	ErrTestMatrix ErrorCode = "TEST_MATRIX"
	ErrTestCase   ErrorCode = "TEST_CASE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// MorphError represents a structured error with code and details
type MorphError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MorphError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MorphError) Unwrap() error {
	return e.Wrapped
}

// Is matches any MorphError carrying the same code
func (e *MorphError) Is(target error) bool {
	var targetErr *MorphError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MorphError with the given code and message
func New(code ErrorCode, message string) *MorphError {
	return &MorphError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MorphError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MorphError {
	return &MorphError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MorphError
func Wrap(err error, code ErrorCode, message string) *MorphError {
	if err == nil {
		return nil
	}
	return &MorphError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MorphError {
	if err == nil {
		return nil
	}
	return &MorphError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MorphError) WithDetail(key string, value interface{}) *MorphError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code anywhere in its chain
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var morphErr *MorphError
		if !errors.As(err, &morphErr) {
			return false
		}
		if morphErr.Code == code {
			return true
		}
		err = morphErr.Wrapped
	}
	return false
}

// GetErrorCode returns the outermost error code, or ErrUnknown if not a MorphError
func GetErrorCode(err error) ErrorCode {
	var morphErr *MorphError
	if errors.As(err, &morphErr) {
		return morphErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a MorphError
func GetErrorDetails(err error) map[string]interface{} {
	var morphErr *MorphError
	if errors.As(err, &morphErr) {
		return morphErr.Details
	}
	return nil
}
