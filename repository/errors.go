package repository

import "errors"

// Kind classifies repository failures so controllers can map each one to a
// distinct client-facing status. NotFound and Validation must never be conflated.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindForbidden
	KindUpstream
)

// Error carries a failure kind plus a user-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound builds a NotFound error.
func NotFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }

// Validation builds a Validation error.
func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }

// Conflict builds a Conflict error.
func Conflict(msg string) error { return &Error{Kind: KindConflict, Message: msg} }

// Forbidden builds a Forbidden error.
func Forbidden(msg string) error { return &Error{Kind: KindForbidden, Message: msg} }

// Upstream wraps an image-host or other collaborator failure.
func Upstream(msg string, err error) error {
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}

func internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
