// internal/extract/errors.go
package extract

import (
	"errors"
	"fmt"
)

// Common extraction errors
var (
	ErrDocumentUnreadable = errors.New("document unreadable")
	ErrMissingTitle       = errors.New("document has no readable title")
	ErrNoExtractor        = errors.New("no extractor registered for platform")
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	ErrCodeDocumentUnreadable ErrorCode = "DOCUMENT_UNREADABLE"
	ErrCodeNoExtractor        ErrorCode = "NO_EXTRACTOR"
)

// Error wraps extraction failures with additional context
type Error struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Details    map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is matches another *Error by code, ErrDocumentUnreadable for the
// unreadable code, and otherwise defers to the underlying error.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	if target == ErrDocumentUnreadable && e.Code == ErrCodeDocumentUnreadable {
		return true
	}
	return errors.Is(e.Underlying, target)
}

// NewError creates a new Error
func NewError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Underlying: err,
		Details:    make(map[string]interface{}),
	}
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.Details[key] = value
	return e
}

// unreadable builds the hard failure returned when a page cannot be classified
func unreadable(message string, err error) *Error {
	return NewError(ErrCodeDocumentUnreadable, message, err)
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not an *Error
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
