// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all
// endpoints. Every error raised on the request path funnels through fail(),
// which is the single point where errors are classified into an HTTP status
// and a stable user-facing message; handlers never format error bodies
// themselves.
//
// Example error response (development mode):
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "error": "Resource not found.",
//	  "details": "record not found"
//	}
//
// In production configuration the details field is omitted.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-car-backend/internal/httperr"
	"github.com/tbourn/go-car-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Fields:
//   - RequestID: correlation ID echoed from the X-Request-ID header.
//   - Code: stable machine-readable code derived from the HTTP status.
//   - Error: human-readable message, safe for display to users.
//   - Details: raw underlying error; present only outside production mode.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Error string `json:"error" example:"Resource not found."`
	// Raw underlying error, development only
	Details string `json:"details,omitempty" example:"record not found"`
}

// MessageResponse is the confirmation body returned by delete endpoints.
type MessageResponse struct {
	Message string `json:"message" example:"Car deleted successfully"`
}

// fail classifies err, logs it with the request-scoped logger, and aborts
// the request with the classified status and envelope. All errors are
// logged server-side regardless of classification; 5xx at error level,
// everything else at warn.
func (h *Handlers) fail(c *gin.Context, err error) {
	status, msg, detail := httperr.Classify(err)
	reqID := c.Writer.Header().Get("X-Request-ID")

	lg := middleware.LoggerFrom(c)
	ev := lg.Warn()
	if status >= http.StatusInternalServerError {
		ev = lg.Error()
	}
	ev.Int("status", status).
		Str("code", httperr.CodeFor(status)).
		Str("message", msg).
		Err(err).
		Msg("api error")

	resp := ErrorResponse{
		RequestID: reqID,
		Code:      httperr.CodeFor(status),
		Error:     msg,
	}
	if !h.production {
		resp.Details = detail
	}
	c.AbortWithStatusJSON(status, resp)
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
