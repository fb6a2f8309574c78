// Package apperr classifies service-level failures so handlers can map them
// to HTTP statuses without string matching.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind int

const (
	Internal        Kind = iota // unexpected storage or infrastructure failure
	InvalidArgument             // malformed input: bad date format, non-integer id, unknown status
	NotFound                    // referenced entity absent
	Conflict                    // mutually exclusive parameters, duplicate main image
	PastDate                    // delivering date before today
)

// Error carries a kind, the offending field (may be empty) and a message
// detailed enough for the caller to correct its input.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error of the given kind.
func New(kind Kind, field, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches kind and field to an underlying error, keeping it unwrappable.
func Wrap(err error, kind Kind, field, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or Internal when err carries no kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}
