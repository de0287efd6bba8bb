package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Token returns the anti-forgery token, reading it on first use from the loaded document's meta tag and
// otherwise from the URL-encoded token cookie. The value stays cached until RefreshToken runs.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token
	}
	if c.docToken != "" {
		c.token = c.docToken
		return c.token
	}
	c.token = c.cookieToken()
	return c.token
}

func (c *Client) cookieToken() string {
	if c.httpClient.Jar == nil {
		return ""
	}
	for _, cookie := range c.httpClient.Jar.Cookies(c.baseURL) {
		if cookie.Name != c.cookieName {
			continue
		}
		value, err := url.QueryUnescape(cookie.Value)
		if err != nil {
			return cookie.Value
		}
		return value
	}
	return ""
}

// invalidate drops the cached token. The document token goes too, a refreshed session makes it stale.
func (c *Client) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.docToken = ""
}

// RefreshToken discards the cached token and asks the bootstrap endpoint to issue a fresh token cookie. The
// response body is ignored. With CoalesceRefresh enabled concurrent callers share one round trip.
//
// A failed refresh is logged and returned as a *NetworkError, *HTTPError or ErrCancelled. The resubmit path
// swallows it and reports the original 419 instead; direct callers such as auth.Login see it.
func (c *Client) RefreshToken(ctx context.Context) error {
	if !c.coalesce {
		return c.refreshToken(ctx)
	}
	_, err, shared := c.refreshes.Do(refreshKey, func() (any, error) {
		return nil, c.refreshToken(ctx)
	})
	if shared {
		c.logger.Debug().Msg("joined in-flight csrf refresh")
	}
	return err
}

func (c *Client) refreshToken(ctx context.Context) error {
	c.invalidate()

	target := c.baseURL.JoinPath(c.csrfPath).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("[transport] failed to create csrf refresh request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return cancelled(ctx.Err())
		}
		c.logger.Warn().Err(err).Str("path", c.csrfPath).Msg("csrf refresh request failed")
		return &NetworkError{Method: http.MethodGet, URL: c.csrfPath, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn().Int("status", resp.StatusCode).Str("path", c.csrfPath).Msg("csrf refresh rejected")
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Method:     http.MethodGet,
			URL:        c.csrfPath,
			Header:     resp.Header.Clone(),
			Body:       body,
		}
	}
	// A call that started during the round trip may have cached the old cookie again; drop it so the next
	// read picks up the cookie this response set.
	c.invalidate()
	c.logger.Debug().Msg("csrf token refreshed")
	return nil
}

// LoadDocument fetches an HTML page (outside the API prefix) and keeps its csrf meta token as the preferred
// token source.
func (c *Client) LoadDocument(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.JoinPath(path).String(), nil)
	if err != nil {
		return fmt.Errorf("[transport] failed to create document request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return cancelled(ctx.Err())
		}
		return &NetworkError{Method: http.MethodGet, URL: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Method:     http.MethodGet,
			URL:        path,
			Header:     resp.Header.Clone(),
			Body:       body,
		}
	}
	return c.SetDocument(io.LimitReader(resp.Body, maxResponseBytes))
}

// SetDocument parses an HTML document and records its csrf meta token. A document without the tag clears the
// document token so reads fall through to the cookie.
func (c *Client) SetDocument(r io.Reader) error {
	token, err := metaContent(r, c.metaName)
	if err != nil {
		return fmt.Errorf("[transport] failed to parse document: %w", err)
	}
	if token == "" {
		c.logger.Debug().Str("meta", c.metaName).Msg("document has no csrf meta tag")
	}

	c.mu.Lock()
	c.docToken = token
	c.mu.Unlock()
	return nil
}

func metaContent(r io.Reader, name string) (string, error) {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return "", nil
			}
			return "", z.Err()
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.DataAtom != atom.Meta {
				continue
			}
			var metaName, content string
			for _, attr := range tok.Attr {
				switch attr.Key {
				case "name":
					metaName = attr.Val
				case "content":
					content = attr.Val
				}
			}
			if strings.EqualFold(metaName, name) {
				return content, nil
			}
		}
	}
}
