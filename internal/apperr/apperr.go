// Package apperr defines the application error taxonomy. Services
// return these typed errors and the router's HTTP error handler is the
// single place that turns them into a status code and JSON body, so
// handlers never build error responses themselves.
package apperr

import "net/http"

// Error is an operational application error with a fixed HTTP mapping.
// Name is the coarse category echoed in the `error` field of the
// response body; Message is the user-facing detail.
type Error struct {
	Name    string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"statusCode"`
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Validation signals malformed or missing input (HTTP 400).
func Validation(msg string) *Error {
	return &Error{Name: "Validation Error", Message: msg, Status: http.StatusBadRequest}
}

// Unauthorized signals a missing or invalid credential (HTTP 401).
func Unauthorized(msg string) *Error {
	return &Error{Name: "Unauthorized", Message: msg, Status: http.StatusUnauthorized}
}

// NotFound signals that a referenced entity is absent (HTTP 404).
func NotFound(msg string) *Error {
	return &Error{Name: "Not Found", Message: msg, Status: http.StatusNotFound}
}

// Conflict signals a unique-constraint violation (HTTP 409).
func Conflict(msg string) *Error {
	return &Error{Name: "Conflict", Message: msg, Status: http.StatusConflict}
}

// Internal wraps an unexpected failure. The supplied message is what
// the client sees; internal detail stays in the server log.
func Internal(msg string) *Error {
	return &Error{Name: "Internal Server Error", Message: msg, Status: http.StatusInternalServerError}
}

// From returns err unchanged when it already is an *Error and degrades
// anything else to a generic Internal error so no store or driver
// detail leaks to the client.
func From(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return Internal("Something went wrong")
}
