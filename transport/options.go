package transport

import (
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. A client without a cookie jar gets the default one, the
// session and anti-forgery cookies depend on it. A zero Timeout is replaced by the configured HTTP timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		cp := *hc
		c.httpClient = &cp
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithCurrentPath sets the function that reports the caller's current navigation path. It is published with
// unauthorized events so a router can send the user back after login. Defaults to the failed request's path.
func WithCurrentPath(fn func() string) Option {
	return func(c *Client) {
		c.currentPath = fn
	}
}

// WithEventBuffer enables the Unauthorized channel with the given buffer size.
func WithEventBuffer(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.events = make(chan UnauthorizedEvent, size)
		}
	}
}

// RequestOption configures a single call.
type RequestOption func(*requestOptions)

type requestOptions struct {
	query   url.Values
	headers map[string]string
}

func newRequestOptions(opts []RequestOption) requestOptions {
	ro := requestOptions{query: url.Values{}, headers: map[string]string{}}
	for _, opt := range opts {
		opt(&ro)
	}
	return ro
}

// WithParams adds query parameters. Empty values are skipped.
func WithParams(params map[string]string) RequestOption {
	return func(ro *requestOptions) {
		for k, v := range params {
			if v != "" {
				ro.query.Set(k, v)
			}
		}
	}
}

// WithQuery merges already encoded query values.
func WithQuery(values url.Values) RequestOption {
	return func(ro *requestOptions) {
		for k, vs := range values {
			for _, v := range vs {
				ro.query.Add(k, v)
			}
		}
	}
}

func WithHeader(key, value string) RequestOption {
	return func(ro *requestOptions) {
		ro.headers[key] = value
	}
}

func WithHeaders(headers map[string]string) RequestOption {
	return func(ro *requestOptions) {
		for k, v := range headers {
			ro.headers[k] = v
		}
	}
}

// ResolveOptions applies opts and returns the query and headers they describe.
func ResolveOptions(opts ...RequestOption) (url.Values, map[string]string) {
	ro := newRequestOptions(opts)
	return ro.query, ro.headers
}
