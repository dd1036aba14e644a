// Package handlers defines HTTP-layer error codes used across all API
// endpoints. Codes are lowercase snake_case, stable, and machine-readable;
// they supplement the human-readable message in the error envelope.
//
// Domain failures carry a services.ErrorKind which maps 1:1 onto a code
// here, so clients can branch on `code` without parsing messages.
package handlers

import (
	"github.com/dkoutsos/go-library-backend/internal/services"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeUnavailable      = "unavailable"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeInternal         = "internal_error"
)

// codeFor translates a service error kind into a stable HTTP error code.
func codeFor(kind services.ErrorKind) string {
	switch kind {
	case services.KindRequired, services.KindOutOfRange, services.KindFormatInvalid:
		return string(kind)
	case services.KindNotFound:
		return ErrCodeNotFound
	case services.KindUnavailable:
		return ErrCodeUnavailable
	case services.KindConflict:
		return ErrCodeConflict
	default:
		return ErrCodeInternal
	}
}
