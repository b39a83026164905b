package client

import (
	"errors"
	"net/http"
)

// APIError is a non-2xx answer from the booking service.  Message is the
// service's own message when it sent one, otherwise a fixed fallback.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// TransportError is a request that never produced a usable answer: the
// connection failed, the context ended, or the body was not JSON.
type TransportError struct {
	Op      string
	Message string
	Err     error
}

func (e *TransportError) Error() string { return e.Message + ": " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a 404 from the booking service.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Message returns the user-facing text carried by a client error, or "" when
// err did not come from this package.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr.Message
	}
	return ""
}
