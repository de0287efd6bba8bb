package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-league-admin/transport"
)

const unexpectedMessage = "An unexpected error occurred"

// AppError is the single application error shape resource services return. It unwraps to the transport failure.
type AppError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationError carries per-field messages from a 422 response.
type ValidationError struct {
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// First returns the first message for field, or "".
func (e *ValidationError) First(field string) string {
	if msgs := e.Fields[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Normalize maps a transport failure onto the application taxonomy. Validation errors pass through unchanged,
// HTTP status failures become an AppError carrying the server's message and anything else becomes an AppError
// with a generic message. Normalize(nil) is nil.
func Normalize(err error) error {
	if err == nil {
		return nil
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var httpErr *transport.HTTPError
	if !errors.As(err, &httpErr) {
		return &AppError{Message: unexpectedMessage, Err: err}
	}

	if httpErr.StatusCode == http.StatusUnprocessableEntity {
		if fields := validationFields(httpErr.Body); len(fields) > 0 {
			return &ValidationError{Message: messageOr(httpErr, "The given data was invalid."), Fields: fields, Err: err}
		}
	}
	return &AppError{Message: messageOr(httpErr, ""), StatusCode: httpErr.StatusCode, Err: err}
}

// IsValidation reports whether err carries field errors.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

func validationFields(body []byte) map[string][]string {
	var payload struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	return payload.Errors
}

func messageOr(httpErr *transport.HTTPError, fallback string) string {
	if msg := httpErr.Message(); msg != "" {
		return msg
	}
	if fallback != "" {
		return fallback
	}
	if text := http.StatusText(httpErr.StatusCode); text != "" {
		return text
	}
	return unexpectedMessage
}
