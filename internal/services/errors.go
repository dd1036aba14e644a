// Package services implements the business logic of the catalogue: request
// validation, the book store, and the borrow/return consistency rules.
// This file defines the tagged error type shared by all service methods,
// so that handlers can branch on the error kind instead of matching
// message text.
package services

import "errors"

// ErrorKind classifies a service failure. Kinds are stable identifiers and
// double as machine-readable codes in HTTP error envelopes.
type ErrorKind string

const (
	// KindRequired marks a missing request or missing mandatory field.
	KindRequired ErrorKind = "required"

	// KindOutOfRange marks a field whose length or numeric value falls
	// outside its allowed bounds.
	KindOutOfRange ErrorKind = "out_of_range"

	// KindFormatInvalid marks a field that does not parse or match its
	// expected format (ISBN, publication year).
	KindFormatInvalid ErrorKind = "format_invalid"

	// KindNotFound marks a lookup miss on a book or borrow record id.
	KindNotFound ErrorKind = "not_found"

	// KindUnavailable marks a borrow attempt against a book with no free
	// copies.
	KindUnavailable ErrorKind = "unavailable"

	// KindConflict marks a return attempt when nothing is outstanding.
	KindConflict ErrorKind = "conflict"
)

// DomainError is a service failure carrying a kind for programmatic
// handling and a human-readable message safe to surface to clients.
type DomainError struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *DomainError) Error() string { return e.Message }

// Errf constructs a DomainError of the given kind.
func Errf(kind ErrorKind, msg string) *DomainError {
	return &DomainError{Kind: kind, Message: msg}
}

// KindOf extracts the ErrorKind from err. The second return value is false
// when err is nil or not a DomainError.
func KindOf(err error) (ErrorKind, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}
