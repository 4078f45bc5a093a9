package admin

import (
	"context"
	"errors"
	"net/http"

	"github.com/mcdev12/clubadmin/go/internal/backend"
)

// Category tells callers what kind of failure an Error is without
// looking at its message.
type Category string

const (
	CategoryConfiguration  Category = "configuration"
	CategoryAuthorization  Category = "authorization"
	CategoryValidation     Category = "validation"
	CategoryUnknownAction  Category = "unknown_action"
	CategoryRemoteWrite    Category = "remote_write"
	CategoryRemoteUpload   Category = "remote_upload"
	CategoryPartialReplace Category = "partial_replace"
)

// Error is the only error type the dispatcher returns. Message is safe
// to show to the operator.
type Error struct {
	Category Category
	Message  string
	Err      error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func newError(category Category, message string) *Error {
	return &Error{Category: category, Message: message}
}

func validationError(message string) *Error {
	return newError(CategoryValidation, message)
}

// CategoryOf returns the category of err, or "" for foreign errors.
func CategoryOf(err error) Category {
	var e *Error
	if errors.As(err, &e) {
		return e.Category
	}
	return ""
}

// StatusCode maps an error to the HTTP status the endpoint answers with.
func StatusCode(err error) int {
	switch CategoryOf(err) {
	case CategoryAuthorization:
		return http.StatusUnauthorized
	case CategoryValidation, CategoryUnknownAction:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fromBackend converts a backend failure into an Error, keeping the
// upstream status and message available through Unwrap.
func fromBackend(err error) *Error {
	var writeErr *backend.RemoteWriteError
	var uploadErr *backend.RemoteUploadError
	switch {
	case errors.As(err, &uploadErr):
		return &Error{Category: CategoryRemoteUpload, Message: uploadErr.Error(), Err: err}
	case errors.As(err, &writeErr):
		return &Error{Category: CategoryRemoteWrite, Message: writeErr.Error(), Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Category: CategoryRemoteWrite, Message: "request timed out", Err: err}
	default:
		return &Error{Category: CategoryRemoteWrite, Message: err.Error(), Err: err}
	}
}
