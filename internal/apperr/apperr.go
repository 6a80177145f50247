package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a service-level failure. Transports map kinds to stable
// wire codes; callers branch on kind, never on message text.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindConflict       Kind = "conflict"
	KindAuthentication Kind = "authentication"
	KindNotFound       Kind = "not_found"
	KindInternal       Kind = "internal"
)

// Error carries a kind plus a caller-safe message. The wrapped cause is for
// logs only and must not reach a response body.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.err }
func (e *Error) Kind() Kind    { return e.kind }

func New(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap keeps cause available to errors.Is/As while presenting msg outward.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...), err: cause}
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(KindConflict, format, args...)
}

func Authentication(format string, args ...any) *Error {
	return New(KindAuthentication, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

func Internal(cause error, format string, args ...any) *Error {
	return Wrap(KindInternal, cause, format, args...)
}

// KindOf reports the kind of err, defaulting to KindInternal for anything
// that did not originate in a service.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
