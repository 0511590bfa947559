// Copyright (c) 2026 Offline-LAN Project. All rights reserved.
// Author: krazywes.dev@gmail.com

/*
Package apperr defines the centralized error handling framework for the
Offline-LAN account authority.

It provides a rich error type that bridges the gap between low-level storage
errors and the short human-readable messages the UI layer displays.

Architecture:

  - Error: A struct carrying a machine-readable Kind and a user-friendly message.
  - Kind: A closed taxonomy (Invalid, Conflict, NotFound, Forbidden, Unavailable, Unknown).
  - Cause chain: The underlying fault is preserved for logs, never for display.

Every error that leaves the service layer must be an [*Error] so callers can
branch on [Kind] and render [Message] without inspecting storage internals.
*/
package apperr

import (
	"errors"
	"fmt"
)

// # Error Taxonomy

// Kind is a machine-readable classification of a failure.
type Kind string

const (
	// KindInvalid marks malformed input caught before it reaches storage
	// (unknown role, empty username, bad field values).
	KindInvalid Kind = "INVALID"

	// KindConflict marks a uniqueness violation (duplicate username,
	// second super-admin).
	KindConflict Kind = "CONFLICT"

	// KindNotFound marks a mutation or lookup whose target row is absent.
	KindNotFound Kind = "NOT_FOUND"

	// KindForbidden marks a refused mutation against a protected row.
	KindForbidden Kind = "FORBIDDEN"

	// KindUnavailable marks storage that is unreachable or timed out.
	KindUnavailable Kind = "UNAVAILABLE"

	// KindUnknown marks an unexpected storage failure; the underlying
	// message is passed through verbatim for diagnostics.
	KindUnknown Kind = "UNKNOWN"
)

// Error is the canonical error type for the account authority.
//
// # Security
//
// The Cause field is for server-side logging only and is never shown to the
// operator, to avoid leaking SQL text or connection strings.
type Error struct {
	// ErrKind is the machine-readable classification.
	ErrKind Kind
	// Message is a short human-readable description safe to display.
	Message string
	// Cause is the underlying error, used for logging only.
	Cause error
	// Details holds per-field validation errors for Invalid failures.
	Details []FieldError
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the input field name that failed validation.
	Field string
	// Message is the human-readable description of the failure.
	Message string
}

// Error implements the error interface. It returns the display-safe message.
func (e *Error) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *Error) Unwrap() error { return e.Cause }

// # Constructors

// Invalid creates an INVALID [Error] with optional per-field details.
func Invalid(msg string, details ...FieldError) *Error {
	return &Error{ErrKind: KindInvalid, Message: msg, Details: details}
}

// Conflict creates a CONFLICT [Error] for uniqueness violations.
func Conflict(msg string) *Error {
	return &Error{ErrKind: KindConflict, Message: msg}
}

// NotFound creates a NOT_FOUND [Error] for a named resource.
//
// Example:
//
//	apperr.NotFound("Account") // Returns "Account not found"
func NotFound(resource string) *Error {
	return &Error{ErrKind: KindNotFound, Message: resource + " not found"}
}

// Forbidden creates a FORBIDDEN [Error] for refused mutations.
func Forbidden(msg string) *Error {
	return &Error{ErrKind: KindForbidden, Message: msg}
}

// Unavailable creates an UNAVAILABLE [Error] wrapping a connectivity fault.
func Unavailable(cause error) *Error {
	return &Error{
		ErrKind: KindUnavailable,
		Message: "Cannot connect to database",
		Cause:   cause,
	}
}

// Unknown creates an UNKNOWN [Error]. The cause's own message is passed
// through verbatim so operators can report the exact storage fault.
func Unknown(cause error) *Error {
	msg := "An unexpected error occurred"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{ErrKind: KindUnknown, Message: msg, Cause: cause}
}

// # Helpers

// As extracts the [*Error] from err's chain. It returns nil if not found.
func As(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// KindOf returns the classification of err, or KindUnknown for errors that
// did not originate in this package.
func KindOf(err error) Kind {
	if ae := As(err); ae != nil {
		return ae.ErrKind
	}
	return KindUnknown
}

// IsKind reports whether err (or any error in its chain) carries the kind.
func IsKind(err error, kind Kind) bool {
	ae := As(err)
	return ae != nil && ae.ErrKind == kind
}

// IsNotFound reports whether err is a NOT_FOUND failure.
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// IsConflict reports whether err is a CONFLICT failure.
func IsConflict(err error) bool { return IsKind(err, KindConflict) }

// DisplayMessage returns the short human-readable text for err, suitable for
// the UI layer. Non-apperr errors fall back to a generic message.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	if ae := As(err); ae != nil {
		if len(ae.Details) > 0 {
			return fmt.Sprintf("%s: %s", ae.Message, ae.Details[0].Message)
		}
		return ae.Message
	}
	return "An unexpected error occurred"
}
