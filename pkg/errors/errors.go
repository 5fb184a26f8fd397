package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an operation outcome
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
	KindConflict
	KindUnimplemented
	KindUnavailable
)

// Error is the application error carried from services to the transport layer
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Error constructors
func NotFound(resource string, id interface{}) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NotFoundMsg(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{
		Kind:    KindConflict,
		Message: fmt.Sprintf(format, args...),
	}
}

func Unimplemented(operation string) *Error {
	return &Error{
		Kind:    KindUnimplemented,
		Message: fmt.Sprintf("%s is not implemented", operation),
	}
}

func Unavailable(err error) *Error {
	return &Error{
		Kind:    KindUnavailable,
		Message: "storage unavailable",
		Err:     err,
	}
}

// KindOf returns the kind of err, or 0 if err carries no kind
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsNotFound(err error) bool      { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool    { return KindOf(err) == KindValidation }
func IsConflict(err error) bool      { return KindOf(err) == KindConflict }
func IsUnimplemented(err error) bool { return KindOf(err) == KindUnimplemented }
func IsUnavailable(err error) bool   { return KindOf(err) == KindUnavailable }
