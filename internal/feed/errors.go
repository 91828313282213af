package feed

import (
	"errors"
	"fmt"
)

// Failure classes for feed requests. Returned errors wrap one of these or
// carry a *StatusError / *APIError.
var (
	ErrTimeout   = errors.New("request timed out")
	ErrTransport = errors.New("http request failed")
	ErrMalformed = errors.New("malformed json response")
)

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status code: %d: %s", e.StatusCode, e.Body)
}

// APIError reports an envelope whose code is not 200.
type APIError struct {
	// Code is the envelope's code as sent, empty when there was none.
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api returned error (no code): %s", e.Message)
	}
	return fmt.Sprintf("api returned error (code %s): %s", e.Code, e.Message)
}
