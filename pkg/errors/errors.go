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

	// Configuration errors
	ErrConfigLoad      ErrorCode = "CONFIG_LOAD"
	ErrConfigParse     ErrorCode = "CONFIG_PARSE"
	ErrConfigSerialize ErrorCode = "CONFIG_SERIALIZE"
	ErrConfigWrite     ErrorCode = "CONFIG_WRITE"
	ErrConfigNested    ErrorCode = "CONFIG_NESTED"
	ErrConfigAbsolute  ErrorCode = "CONFIG_ABSOLUTE"

	// Path classification errors raised while planning an add
	ErrOutsideValidDir    ErrorCode = "OUTSIDE_VALID_DIR"
	ErrBothPathsExist     ErrorCode = "BOTH_PATHS_EXIST"
	ErrRepoContentMissing ErrorCode = "REPO_CONTENT_MISSING"
	// ErrExistingParent means the candidate is an ancestor of an existing mapping
	ErrExistingParent ErrorCode = "EXISTING_PARENT"
	// ErrExistingChild means the candidate lies inside an existing mapping
	ErrExistingChild ErrorCode = "EXISTING_CHILD"

	// FileSystem errors
	ErrUserLocation  ErrorCode = "USER_LOCATION"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileMove      ErrorCode = "FILE_MOVE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"

	// Plan execution
	ErrChangeExecute ErrorCode = "CHANGE_EXECUTE"
)

// DotfilesError represents a structured error with code and details
type DotfilesError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DotfilesError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Wrapped)
	}
	return e.Message
}

// Unwrap implements the errors.Unwrap interface
func (e *DotfilesError) Unwrap() error {
	return e.Wrapped
}

// Is matches any DotfilesError carrying the same code.
func (e *DotfilesError) Is(target error) bool {
	var targetErr *DotfilesError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotfilesError with the given code and message
func New(code ErrorCode, message string) *DotfilesError {
	return &DotfilesError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotfilesError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotfilesError {
	return &DotfilesError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DotfilesError
func Wrap(err error, code ErrorCode, message string) *DotfilesError {
	if err == nil {
		return nil
	}
	return &DotfilesError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotfilesError {
	if err == nil {
		return nil
	}
	return &DotfilesError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DotfilesError) WithDetail(key string, value interface{}) *DotfilesError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dfErr *DotfilesError
	if errors.As(err, &dfErr) {
		return dfErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DotfilesError
func GetErrorCode(err error) ErrorCode {
	var dfErr *DotfilesError
	if errors.As(err, &dfErr) {
		return dfErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DotfilesError
func GetErrorDetails(err error) map[string]interface{} {
	var dfErr *DotfilesError
	if errors.As(err, &dfErr) {
		return dfErr.Details
	}
	return nil
}
