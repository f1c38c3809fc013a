// Package httperr defines the closed error taxonomy for the API and the
// single classifier that maps any error raised on the request path to an
// HTTP status and a stable user-facing message.
//
// Handlers and services never format HTTP error bodies themselves. They
// raise either one of the typed conditions below or a recognized library
// error (validator.ValidationErrors, gorm.ErrRecordNotFound,
// gorm.ErrDuplicatedKey), and the HTTP boundary calls Classify exactly once
// to produce the response.
package httperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Kind enumerates the closed set of error classes.
type Kind int

const (
	// KindUnclassified passes through an explicit status/message, defaulting
	// to 500 / "Internal Server Error".
	KindUnclassified Kind = iota
	// KindValidation is a schema validation failure (400).
	KindValidation
	// KindMalformedID is a non-conforming resource identifier (400).
	KindMalformedID
	// KindDuplicateKey is a uniqueness constraint violation (400).
	KindDuplicateKey
	// KindNotFound is an explicit lookup miss (404).
	KindNotFound
	// KindUnauthorized is a rejected mutating request without identity (401).
	KindUnauthorized
)

// Stable user-facing messages. These are part of the API contract.
const (
	MsgValidation   = "Validation failed. Please check your input data."
	MsgMalformedID  = "Invalid ID format."
	MsgDuplicateKey = "Duplicate key error. That value already exists."
	MsgNotFound     = "Resource not found."
	MsgUnauthorized = "You do not have access. Please log in."
	MsgInternal     = "Internal Server Error"
)

// Error is a typed condition carrying its classification. Status and
// Message are only consulted for KindUnclassified; every other kind maps to
// a fixed status/message pair.
type Error struct {
	Kind    Kind
	Status  int    // optional, KindUnclassified only
	Message string // optional, KindUnclassified only
	Err     error  // underlying cause, surfaced as detail outside production
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	return MsgInternal
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.Err }

// Validation wraps err as a schema validation failure.
func Validation(err error) *Error { return &Error{Kind: KindValidation, Err: err} }

// MalformedID wraps err as an invalid-identifier condition.
func MalformedID(err error) *Error { return &Error{Kind: KindMalformedID, Err: err} }

// DuplicateKey wraps err as a uniqueness violation.
func DuplicateKey(err error) *Error { return &Error{Kind: KindDuplicateKey, Err: err} }

// NotFound signals a lookup-by-ID miss.
func NotFound(err error) *Error { return &Error{Kind: KindNotFound, Err: err} }

// Unauthorized signals a mutating request without an established identity.
func Unauthorized() *Error { return &Error{Kind: KindUnauthorized} }

// Wrap builds an unclassified error with an explicit status and message,
// passed through by Classify as-is.
func Wrap(status int, msg string, err error) *Error {
	return &Error{Kind: KindUnclassified, Status: status, Message: msg, Err: err}
}

// Classify maps any error to (status, message, detail). Detail is the raw
// underlying message; the caller decides whether to expose it (it is hidden
// in production configuration).
//
// Precedence: validation, malformed identifier, duplicate key, not found,
// unauthorized, then pass-through of an explicit status/message, and
// finally 500 / "Internal Server Error".
func Classify(err error) (status int, message, detail string) {
	if err == nil {
		return http.StatusInternalServerError, MsgInternal, ""
	}
	detail = err.Error()

	var verrs validator.ValidationErrors
	var te *Error
	isTyped := errors.As(err, &te)

	switch {
	case (isTyped && te.Kind == KindValidation) || errors.As(err, &verrs):
		return http.StatusBadRequest, MsgValidation, detail
	case isTyped && te.Kind == KindMalformedID:
		return http.StatusBadRequest, MsgMalformedID, detail
	case (isTyped && te.Kind == KindDuplicateKey) || isDuplicate(err):
		return http.StatusBadRequest, MsgDuplicateKey, detail
	case (isTyped && te.Kind == KindNotFound) || errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, MsgNotFound, detail
	case isTyped && te.Kind == KindUnauthorized:
		return http.StatusUnauthorized, MsgUnauthorized, detail
	}

	status = http.StatusInternalServerError
	message = MsgInternal
	if isTyped {
		if te.Status != 0 {
			status = te.Status
		}
		if te.Message != "" {
			message = te.Message
		}
	}
	return status, message, detail
}

// isDuplicate reports whether err is a uniqueness violation, either via the
// gorm sentinel or the raw SQLite constraint text (the glebarez driver does
// not translate it).
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// CodeFor returns the stable machine-readable code for a status/message
// pair produced by Classify. Codes supplement the human-readable message in
// the error envelope.
func CodeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	default:
		if status >= 500 {
			return "internal_error"
		}
		return "bad_request"
	}
}
