package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrCancelled marks a call abandoned through its context. Callers should treat it as a non-error.
	ErrCancelled = errors.New("request cancelled")
	// ErrInvalidResponse is returned when a 2xx response carries a body that is not JSON.
	ErrInvalidResponse = errors.New("invalid JSON response")
)

// HTTPError is returned when the server answered with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Status     string
	Method     string
	URL        string
	Header     http.Header
	Body       []byte
}

func (e *HTTPError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
}

// Message returns the "message" field of a JSON error body, or "" when there is none.
func (e *HTTPError) Message() string {
	if len(e.Body) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return ""
	}
	return body.Message
}

// NetworkError is returned when no response was received at all.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func cancelled(cause error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, cause)
}

// IsCancelled reports whether err comes from a cancelled context.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// IsNetworkError reports whether the server could not be reached.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an HTTP status failure.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

func IsCSRFMismatch(err error) bool {
	return StatusCode(err) == StatusCSRFMismatch
}
