package api

import (
	"fmt"
	"net/http"
)

// Error is the outcome of a rejected operation, carrying the HTTP status
// and the human readable reason returned to the caller.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Conflict reports a uniqueness violation. The API answers these with 400.
func Conflict(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

func BadRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Invalid reports a payload that decoded but failed field validation.
func Invalid(msg string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: msg}
}

func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "internal server error", Err: err}
}
