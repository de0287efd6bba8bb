package api

import (
	"encoding/json"
	"fmt"
)

// Envelope is the {success, data, message} wrapper around single resources.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// Page is the paginated variant of Envelope.
type Page[T any] struct {
	Success bool   `json:"success"`
	Data    []T    `json:"data"`
	Meta    Meta   `json:"meta"`
	Message string `json:"message,omitempty"`
}

type Meta struct {
	CurrentPage int    `json:"current_page"`
	PerPage     int    `json:"per_page"`
	Total       int    `json:"total"`
	LastPage    int    `json:"last_page"`
	From        int    `json:"from"`
	To          int    `json:"to"`
	Path        string `json:"path,omitempty"`
}

// HasMore reports whether pages follow the current one.
func (m Meta) HasMore() bool {
	return m.CurrentPage < m.LastPage
}

// Unwrap decodes a single-resource envelope and returns its data. An empty body yields the zero value.
func Unwrap[T any](raw json.RawMessage) (T, error) {
	var env Envelope[T]
	if len(raw) == 0 {
		return env.Data, nil
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		var zero T
		return zero, &AppError{Message: "The server returned an unexpected response", Err: fmt.Errorf("decode envelope: %w", err)}
	}
	if !env.Success {
		var zero T
		return zero, failed(env.Message)
	}
	return env.Data, nil
}

// UnwrapPage decodes a paginated envelope.
func UnwrapPage[T any](raw json.RawMessage) (*Page[T], error) {
	page := &Page[T]{}
	if len(raw) == 0 {
		return page, nil
	}
	if err := json.Unmarshal(raw, page); err != nil {
		return nil, &AppError{Message: "The server returned an unexpected response", Err: fmt.Errorf("decode page: %w", err)}
	}
	if !page.Success {
		return nil, failed(page.Message)
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	return page, nil
}

// Fetch unwraps the result of a transport call, normalizing any failure. It takes the call's results directly:
//
//	user, err := api.Fetch[User](r.Get(ctx, "/users/1"))
func Fetch[T any](raw json.RawMessage, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, Normalize(err)
	}
	return Unwrap[T](raw)
}

func FetchPage[T any](raw json.RawMessage, err error) (*Page[T], error) {
	if err != nil {
		return nil, Normalize(err)
	}
	return UnwrapPage[T](raw)
}

// Check is Fetch for calls whose data is irrelevant, such as deletes.
func Check(raw json.RawMessage, err error) error {
	_, err = Fetch[json.RawMessage](raw, err)
	return err
}

func failed(message string) error {
	if message == "" {
		message = "The request was not successful"
	}
	return &AppError{Message: message}
}
