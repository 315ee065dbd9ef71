// internal/apperrors/apperrors.go
package apperrors

import "errors"

// Sentinel kinds. Services wrap these into *Error values; handlers map them to
// HTTP statuses with errors.Is.
var (
	ErrValidation   = errors.New("validation")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrDependency   = errors.New("dependency failure")
)

type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.kind }

func Validation(message string) error {
	return &Error{kind: ErrValidation, message: message}
}

func Conflict(message string) error {
	return &Error{kind: ErrConflict, message: message}
}

func Unauthorized(message string) error {
	return &Error{kind: ErrUnauthorized, message: message}
}

func Forbidden(message string) error {
	return &Error{kind: ErrForbidden, message: message}
}

// NotFound covers both missing entities and unauthorized ownership. The two are
// deliberately indistinguishable in responses so callers cannot probe for
// existence of other users' records.
func NotFound(message string) error {
	return &Error{kind: ErrNotFound, message: message}
}

func Dependency(message string) error {
	return &Error{kind: ErrDependency, message: message}
}
