// Package errors provides structured error types for vnav.
//
// Errors carry a machine-readable [Code] alongside a human-readable message so
// the CLI, the HTTP API and library callers can branch on the category of a
// failure without string matching.
//
// INVALID_* codes mark bad input, ANCHOR_* codes name the reason a drawing
// was removed by repair, and the remaining codes cover lookups and internal
// failures.
//
//	if err := errors.ValidateDiagramPath(path); err != nil {
//	    return err // INVALID_PATH
//	}
//	data, err := os.ReadFile(path)
//	if err != nil {
//	    return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an error for programmatic handling.
type Code string

const (
	// Malformed input
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidDrawing  Code = "INVALID_DRAWING"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Anchor problems found while repairing a diagram
	ErrCodeAnchorNotFound   Code = "ANCHOR_NOT_FOUND"
	ErrCodeAnchorSelf       Code = "ANCHOR_SELF_REFERENCE"
	ErrCodeAnchorNotCapable Code = "ANCHOR_NOT_CAPABLE"
	ErrCodeAnchorCycle      Code = "ANCHOR_CYCLE"
	ErrCodeAnchorCascade    Code = "ANCHOR_CASCADE"

	// Lookups
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a failure with a [Code]. Cause, when set, is reachable through
// errors.Unwrap.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error renders "CODE: message" followed by ": cause" when there is one.
func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message and no cause.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// as finds the outermost *Error in err's chain.
func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := as(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code
// prefix or cause, falling back to err.Error() for other errors.
func UserMessage(err error) string {
	if e, ok := as(err); ok {
		return e.Message
	}
	return err.Error()
}
