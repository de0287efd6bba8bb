package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-league-admin/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/singleflight"
)

const (
	HeaderCSRFToken = "X-CSRF-TOKEN"
	HeaderXSRFToken = "X-XSRF-TOKEN"
	HeaderRequestID = "X-Request-ID"

	// StatusCSRFMismatch is the non-standard status the backend uses for a stale anti-forgery token.
	StatusCSRFMismatch = 419

	maxResponseBytes = 10 << 20
	refreshKey       = "csrf-refresh"
)

// Client issues JSON requests against the league API. It keeps the session cookies, attaches the anti-forgery
// token to mutating requests and recovers once from a stale token by refreshing it and resubmitting.
type Client struct {
	httpClient  *http.Client
	baseURL     *url.URL
	apiPrefix   string
	csrfPath    string
	cookieName  string
	metaName    string
	maxRetries  int
	coalesce    bool
	refreshes   singleflight.Group
	logger      zerolog.Logger
	currentPath func() string

	mu       sync.Mutex // guards token and docToken
	token    string
	docToken string

	observersMu  sync.RWMutex
	observers    []observer
	nextObserver int
	events       chan UnauthorizedEvent
}

// pendingRequest is everything needed to replay a call after the token was refreshed.
type pendingRequest struct {
	method  string
	path    string
	query   url.Values
	headers map[string]string
	body    []byte
}

// retryState travels with one call through execute. Concurrent calls never share it.
type retryState struct {
	attempt int
}

func New(cfg config.ClientConfig, opts ...Option) (*Client, error) {
	base, err := url.Parse(cfg.GetBaseURL())
	if err != nil {
		return nil, fmt.Errorf("[transport.New] invalid base url %q: %w", cfg.GetBaseURL(), err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("[transport.New] base url %q must be absolute", cfg.GetBaseURL())
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("[transport.New] failed to create cookie jar: %w", err)
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.GetHTTPTimeout()},
		baseURL:    base,
		apiPrefix:  cfg.GetAPIPrefix(),
		csrfPath:   cfg.GetCSRFCookiePath(),
		cookieName: cfg.GetCSRFCookieName(),
		metaName:   cfg.GetCSRFMetaName(),
		maxRetries: cfg.GetMaxCSRFRetries(),
		coalesce:   cfg.GetCoalesceRefresh(),
		logger:     log.Logger.With().Str("component", "transport").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient.Timeout == 0 {
		c.httpClient.Timeout = cfg.GetHTTPTimeout()
	}
	if c.httpClient.Jar == nil {
		c.httpClient.Jar = jar
	}
	return c, nil
}

func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, path, nil, opts)
}

func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (json.RawMessage, error) {
	return c.request(ctx, http.MethodPost, path, body, opts)
}

func (c *Client) Put(ctx context.Context, path string, body any, opts ...RequestOption) (json.RawMessage, error) {
	return c.request(ctx, http.MethodPut, path, body, opts)
}

func (c *Client) Patch(ctx context.Context, path string, body any, opts ...RequestOption) (json.RawMessage, error) {
	return c.request(ctx, http.MethodPatch, path, body, opts)
}

func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (json.RawMessage, error) {
	return c.request(ctx, http.MethodDelete, path, nil, opts)
}

func (c *Client) request(ctx context.Context, method, path string, body any, opts []RequestOption) (json.RawMessage, error) {
	ro := newRequestOptions(opts)
	pending := &pendingRequest{
		method:  method,
		path:    path,
		query:   ro.query,
		headers: ro.headers,
	}
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("[transport] failed to encode %s %s body: %w", method, path, err)
		}
		pending.body = encoded
	}
	return c.execute(ctx, pending, retryState{})
}

// execute sends the request once and applies the status handling: 401 notifies observers and fails, 419 runs
// the bounded refresh-and-resubmit, anything else propagates unchanged.
func (c *Client) execute(ctx context.Context, req *pendingRequest, state retryState) (json.RawMessage, error) {
	body, err := c.send(ctx, req)
	if err == nil {
		return body, nil
	}

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return nil, err
	}

	switch httpErr.StatusCode {
	case http.StatusUnauthorized:
		c.notifyUnauthorized(req)
		return nil, err
	case StatusCSRFMismatch:
		return c.recoverCSRF(ctx, req, state, err)
	default:
		return nil, err
	}
}

func (c *Client) recoverCSRF(ctx context.Context, req *pendingRequest, state retryState, original error) (json.RawMessage, error) {
	logger := c.logger.With().Str("method", req.method).Str("path", req.path).Int("attempt", state.attempt).Logger()

	if state.attempt >= c.maxRetries {
		logger.Debug().Int("max_retries", c.maxRetries).Msg("csrf retry budget exhausted")
		return nil, original
	}
	if ctx.Err() != nil {
		return nil, cancelled(ctx.Err())
	}

	state.attempt++
	if err := c.RefreshToken(ctx); err != nil {
		if IsCancelled(err) {
			return nil, err
		}
		logger.Warn().Err(err).Msg("csrf token refresh failed, keeping original error")
		return nil, original
	}

	logger.Debug().Msg("csrf token refreshed, resubmitting request")
	body, err := c.execute(ctx, req, state)
	if err != nil {
		if IsCancelled(err) {
			return nil, err
		}
		return nil, original
	}
	return body, nil
}

func (c *Client) send(ctx context.Context, req *pendingRequest) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}

	target, err := c.apiURL(req.path, req.query)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if req.body != nil {
		bodyReader = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("[transport] failed to create %s %s request: %w", req.method, req.path, err)
	}

	requestID := uuid.New().String()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Requested-With", "XMLHttpRequest")
	httpReq.Header.Set(HeaderRequestID, requestID)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}
	if isMutating(req.method) {
		if token := c.Token(); token != "" {
			httpReq.Header.Set(HeaderCSRFToken, token)
			httpReq.Header.Set(HeaderXSRFToken, token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, cancelled(ctx.Err())
		}
		c.logger.Debug().Err(err).Str("request_id", requestID).Str("method", req.method).Str("path", req.path).Msg("request failed")
		return nil, &NetworkError{Method: req.method, URL: req.path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctx.Err() != nil {
			return nil, cancelled(ctx.Err())
		}
		return nil, &NetworkError{Method: req.method, URL: req.path, Err: err}
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", req.method).
		Str("path", req.path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Method:     req.method,
			URL:        req.path,
			Header:     resp.Header.Clone(),
			Body:       body,
		}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s %s", ErrInvalidResponse, req.method, req.path)
	}
	return json.RawMessage(body), nil
}

// apiURL joins the base URL, API prefix and path. A query string embedded in path is merged with query.
func (c *Client) apiURL(path string, query url.Values) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("[transport] invalid path %q: %w", path, err)
	}
	u := c.baseURL.JoinPath(c.apiPrefix, ref.Path)

	values := ref.Query()
	for k, vs := range query {
		for _, v := range vs {
			values.Add(k, v)
		}
	}
	u.RawQuery = values.Encode()
	return u.String(), nil
}

func isMutating(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
