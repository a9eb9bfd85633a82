// Package apperr defines the error taxonomy shared by all resolvers.
// Each error carries a kind and only the fields that kind needs; the
// GraphQL layer surfaces the kind's status code and any violation list
// through the response's error extensions.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the failure modes the API exposes.
type Kind int

const (
	// KindInternal is an unhandled persistence or hashing failure.
	KindInternal Kind = iota
	// KindValidation is a rejected input carrying a violation list.
	KindValidation
	// KindConflict is an attempt to create a resource that already exists.
	KindConflict
	// KindAuthentication is a failed credential check during login.
	KindAuthentication
	// KindAuthorization is a request lacking a valid session.
	KindAuthorization
	// KindNotFound is a referenced entity that no longer exists.
	KindNotFound
)

// Code returns the status code clients receive for this kind.
// A missing acting user is reported as 401 rather than 404 so that an
// expired account behaves exactly like a missing session.
func (k Kind) Code() int {
	switch k {
	case KindValidation:
		return 422
	case KindConflict:
		return 409
	case KindAuthentication, KindAuthorization, KindNotFound:
		return 401
	default:
		return 500
	}
}

// Violation is a single machine-readable input violation.
type Violation struct {
	Message string `json:"message"`
}

// Error is a tagged application error.
type Error struct {
	Kind       Kind
	Message    string
	Violations []Violation // KindValidation only
	Err        error       // wrapped cause, KindInternal only
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Extensions reports the structured error payload attached to the
// GraphQL error object: the status code and, for validation failures,
// the violation list.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.Kind.Code()}
	if len(e.Violations) > 0 {
		ext["data"] = e.Violations
	}
	return ext
}

// Validation creates a 422 error carrying the given violations.
func Validation(message string, violations []Violation) *Error {
	return &Error{Kind: KindValidation, Message: message, Violations: violations}
}

// Conflict creates an already-exists error.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Authentication creates a failed-credentials error.
func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// Authorization creates a missing-or-invalid-session error.
func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// NotFound creates a missing-entity error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Internal wraps an unexpected failure. The cause stays server-side;
// only the message crosses the API boundary.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal when err is not an
// application error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
