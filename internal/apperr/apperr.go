// Package apperr defines the error kinds every handler translates to an HTTP status.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidRequest
	KindInvalidCredentials
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindInvalidState
	KindConflict
	KindRateLimited
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindInvalidState:
		return "invalid_state"
	case KindConflict:
		return "conflict"
	case KindRateLimited:
		return "rate_limited"
	case KindUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// Error carries a kind, a client-facing message and an optional cause.
// Only Message is ever shown to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newErr(k Kind, msg string) *Error { return &Error{Kind: k, Message: msg} }

func InvalidRequest(msg string) *Error { return newErr(KindInvalidRequest, msg) }

// InvalidCredentials is shared by every login failure so callers cannot tell
// an unknown email from a wrong password.
func InvalidCredentials() *Error { return newErr(KindInvalidCredentials, "Invalid email or password") }

func Unauthenticated(msg string) *Error { return newErr(KindUnauthenticated, msg) }
func Forbidden(msg string) *Error       { return newErr(KindForbidden, msg) }
func NotFound(msg string) *Error        { return newErr(KindNotFound, msg) }
func InvalidState(msg string) *Error    { return newErr(KindInvalidState, msg) }
func Conflict(msg string) *Error        { return newErr(KindConflict, msg) }
func RateLimited(msg string) *Error     { return newErr(KindRateLimited, msg) }

// Upstream wraps a store or dependency failure.
func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}

// KindOf returns the kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err has kind k.
func Is(err error, k Kind) bool {
	return KindOf(err) == k
}
