// Package errs defines the structured error values returned to API clients.
//
// An *Error carries the HTTP status and the message written in the
// {"msg": "..."} response body. Services return the sentinels below so that
// handlers and tests can compare them with errors.Is.
package errs

import "net/http"

// Error is an error with a fixed HTTP status and client-facing message.
type Error struct {
	Status int    `json:"-"`
	Msg    string `json:"msg"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Msg
}

// New creates an Error with the given status and message.
func New(status int, msg string) *Error {
	return &Error{Status: status, Msg: msg}
}

// BadRequest creates a 400 Error.
func BadRequest(msg string) *Error {
	return New(http.StatusBadRequest, msg)
}

// NotFound creates a 404 Error.
func NotFound(msg string) *Error {
	return New(http.StatusNotFound, msg)
}

// Validation errors
var (
	ErrBadRequest        = BadRequest("Bad request")
	ErrMissingFields     = BadRequest("Bad request, missing required fields")
	ErrInvalidDataType   = BadRequest("Bad request, invalid data type")
	ErrUnexpectedFields  = BadRequest("Bad request, unexpected fields")
	ErrInvalidSortBy     = BadRequest("Invalid sorting query")
	ErrInvalidOrder      = BadRequest("Invalid order query")
	ErrInvalidPagination = BadRequest("Invalid pagination query")
)

// Not found errors
var (
	ErrArticleNotFound = NotFound("article id does not exist")
	ErrCommentNotFound = NotFound("comment does not exist")
	ErrUserNotFound    = NotFound("username does not exist")
	ErrTopicNotFound   = NotFound("topic does not exist")
	ErrPathNotFound    = NotFound("Path not found")
	ErrNotFound        = NotFound("Not found")
)

// ErrInternal is written for any error that matches no known shape.
var ErrInternal = New(http.StatusInternalServerError, "Internal server error")
