// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response utilities shared by all endpoints: a
// structured error envelope and helpers for the common success shapes.
// Every failure path goes through fail() so errors look the same everywhere.
//
// Example error response:
//
//	HTTP/1.1 400 Bad Request
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "unavailable",
//	  "message": "no copies available"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkoutsos/go-library-backend/internal/http/middleware"
	"github.com/dkoutsos/go-library-backend/internal/services"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// RequestID correlates server logs and client errors.
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Code is a stable, machine-readable identifier (see errors.go constants).
	Code string `json:"code" example:"not_found"`
	// Message is a human-readable description, safe to show to users.
	Message string `json:"message" example:"book not found"`
}

// fail aborts the request with a structured error envelope. Server errors
// (>=500) are additionally logged with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail(), for use by router fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failDomain maps a service error to a response. notFoundStatus lets direct
// id lookups answer 404 while borrow/return endpoints answer 400 for the
// same kind, matching the external contract.
func failDomain(c *gin.Context, err error, notFoundStatus int) {
	kind, ok := services.KindOf(err)
	if !ok {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	status := http.StatusBadRequest
	if kind == services.KindNotFound {
		status = notFoundStatus
	}
	fail(c, status, codeFor(kind), err.Error())
}

// ok writes a success JSON response with the given status.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// acknowledged writes a bodyless 200, the plain success acknowledgement used
// by borrow/return endpoints.
func acknowledged(c *gin.Context) {
	c.Status(http.StatusOK)
}
