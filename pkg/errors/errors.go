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
	ErrInterrupted  ErrorCode = "INTERRUPTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Resolution errors
	ErrScriptNotFound  ErrorCode = "SCRIPT_NOT_FOUND"
	ErrDependencyCycle ErrorCode = "DEPENDENCY_CYCLE"

	// Command errors
	ErrCommandSpawn       ErrorCode = "COMMAND_SPAWN"
	ErrCommandWait        ErrorCode = "COMMAND_WAIT"
	ErrCommandSignal      ErrorCode = "COMMAND_SIGNAL"
	ErrCommandNonZeroExit ErrorCode = "COMMAND_NONZERO_EXIT"
)

// Detail keys shared between the packages that build errors and the
// ones that report them.
const (
	DetailScript      = "script"
	DetailCommand     = "command"
	DetailExitCode    = "exit_code"
	DetailCycle       = "cycle"
	DetailSuggestions = "suggestions"
	DetailPath        = "path"
)

// Process exit statuses for failures that carry no exit code of their own.
const (
	ExitFailure     = 1
	ExitInterrupted = 130
)

// FaeError represents a structured error with code and details
type FaeError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *FaeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *FaeError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *FaeError) Is(target error) bool {
	var targetErr *FaeError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new FaeError with the given code and message
func New(code ErrorCode, message string) *FaeError {
	return &FaeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new FaeError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *FaeError {
	return &FaeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a FaeError
func Wrap(err error, code ErrorCode, message string) *FaeError {
	if err == nil {
		return nil
	}
	return &FaeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *FaeError {
	if err == nil {
		return nil
	}
	return &FaeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *FaeError) WithDetail(key string, value interface{}) *FaeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *FaeError) WithDetails(details map[string]interface{}) *FaeError {
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
	var faeErr *FaeError
	if errors.As(err, &faeErr) {
		return faeErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a FaeError
func GetErrorCode(err error) ErrorCode {
	var faeErr *FaeError
	if errors.As(err, &faeErr) {
		return faeErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a FaeError
func GetErrorDetails(err error) map[string]interface{} {
	var faeErr *FaeError
	if errors.As(err, &faeErr) {
		return faeErr.Details
	}
	return nil
}

// ExitCode maps an error to the status the process should exit with.
// A failed command hands its own exit code through; nil maps to 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var faeErr *FaeError
	if !errors.As(err, &faeErr) {
		return ExitFailure
	}

	switch faeErr.Code {
	case ErrInterrupted:
		return ExitInterrupted
	case ErrCommandNonZeroExit:
		if code, ok := faeErr.Details[DetailExitCode].(int); ok && code > 0 && code < 256 {
			return code
		}
	}
	return ExitFailure
}
