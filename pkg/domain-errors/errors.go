// Package domainerrors provides coded errors for the service layer. Stores
// return sentinel errors (pkg/platform/sentinel) for infrastructure facts;
// services translate those into coded errors that the HTTP layer can map to
// status codes without inspecting error strings.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for transport mapping and retry decisions.
type Code string

const (
	// CodeBadRequest marks a structurally invalid request (bad JSON, missing body).
	CodeBadRequest Code = "bad_request"
	// CodeInvalidInput marks a well-formed request with semantically invalid
	// content, including edited views that reference unknown record ids.
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound marks a missing entity.
	CodeNotFound Code = "not_found"
	// CodeConflict marks an operation rejected by current state, such as
	// instantiating a checklist for a scheme that already has one.
	CodeConflict Code = "conflict"
	// CodeInvariantViolation marks a domain invariant breach.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeUnauthorized marks missing or invalid credentials.
	CodeUnauthorized Code = "unauthorized"
	// CodeForbidden marks valid credentials without sufficient rights.
	CodeForbidden Code = "forbidden"
	// CodeUnavailable marks a storage read or write that did not complete.
	// The message carries the operation and target id so the caller can retry
	// precisely.
	CodeUnavailable Code = "unavailable"
	// CodeInternal marks everything else; details are not exposed to clients.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error, optionally wrapping a cause.
type Error struct {
	code    Code
	message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *Error) Unwrap() error { return e.cause }

// Code returns the error's classification.
func (e *Error) Code() Code { return e.code }

// Message returns the client-safe description without the cause chain.
func (e *Error) Message() string { return e.message }

// New creates a coded error with no cause.
func New(code Code, message string) error {
	return &Error{code: code, message: message}
}

// Wrap attaches a code and message to an underlying cause. A nil cause
// returns nil so call sites can wrap unconditionally.
func Wrap(cause error, code Code, message string) error {
	if cause == nil {
		return nil
	}
	return &Error{code: code, message: message, cause: cause}
}

// HasCode reports whether err or anything it wraps carries the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf extracts the code from an error chain, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return CodeInternal
}
