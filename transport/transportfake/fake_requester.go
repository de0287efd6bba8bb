package transportfake

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/jrsteele09/go-league-admin/api"
	"github.com/jrsteele09/go-league-admin/transport"
)

var _ api.Requester = (*FakeRequester)(nil)

// Call is one recorded request.
type Call struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    json.RawMessage
}

type reply struct {
	body json.RawMessage
	err  error
}

// FakeRequester answers transport calls from canned replies keyed by method and path. Unknown routes fail with a
// 404 *transport.HTTPError, like the real API would.
type FakeRequester struct {
	lock       sync.RWMutex
	replies    map[string][]reply
	calls      []Call
	refreshes  int
	refreshErr error
}

func New() *FakeRequester {
	return &FakeRequester{replies: make(map[string][]reply)}
}

// Respond queues v, JSON-encoded, as the next reply for method and path. The last reply for a route repeats.
func (f *FakeRequester) Respond(method, path string, v any) *FakeRequester {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("transportfake: cannot encode reply for %s %s: %v", method, path, err))
	}
	return f.queue(method, path, reply{body: raw})
}

// RespondRaw queues a raw body. A nil body stands for an empty 204 reply.
func (f *FakeRequester) RespondRaw(method, path string, body []byte) *FakeRequester {
	return f.queue(method, path, reply{body: body})
}

// Fail queues err as the next reply for method and path.
func (f *FakeRequester) Fail(method, path string, err error) *FakeRequester {
	return f.queue(method, path, reply{err: err})
}

// FailStatus queues an HTTP failure with a JSON body.
func (f *FakeRequester) FailStatus(method, path string, status int, body any) *FakeRequester {
	raw, _ := json.Marshal(body)
	return f.Fail(method, path, &transport.HTTPError{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Method:     method,
		URL:        path,
		Body:       raw,
	})
}

func (f *FakeRequester) queue(method, path string, r reply) *FakeRequester {
	f.lock.Lock()
	defer f.lock.Unlock()
	key := method + " " + path
	f.replies[key] = append(f.replies[key], r)
	return f
}

// RefreshToken counts token refreshes. It fails with the error set by FailRefresh.
func (f *FakeRequester) RefreshToken(ctx context.Context) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.refreshes++
	return f.refreshErr
}

func (f *FakeRequester) FailRefresh(err error) *FakeRequester {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.refreshErr = err
	return f
}

func (f *FakeRequester) Refreshes() int {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.refreshes
}

// Calls returns a copy of every recorded call.
func (f *FakeRequester) Calls() []Call {
	f.lock.RLock()
	defer f.lock.RUnlock()
	calls := make([]Call, len(f.calls))
	copy(calls, f.calls)
	return calls
}

// LastCall returns the most recent call, or the zero Call.
func (f *FakeRequester) LastCall() Call {
	f.lock.RLock()
	defer f.lock.RUnlock()
	if len(f.calls) == 0 {
		return Call{}
	}
	return f.calls[len(f.calls)-1]
}

func (f *FakeRequester) Get(ctx context.Context, path string, opts ...transport.RequestOption) (json.RawMessage, error) {
	return f.do(ctx, http.MethodGet, path, nil, opts)
}

func (f *FakeRequester) Post(ctx context.Context, path string, body any, opts ...transport.RequestOption) (json.RawMessage, error) {
	return f.do(ctx, http.MethodPost, path, body, opts)
}

func (f *FakeRequester) Put(ctx context.Context, path string, body any, opts ...transport.RequestOption) (json.RawMessage, error) {
	return f.do(ctx, http.MethodPut, path, body, opts)
}

func (f *FakeRequester) Patch(ctx context.Context, path string, body any, opts ...transport.RequestOption) (json.RawMessage, error) {
	return f.do(ctx, http.MethodPatch, path, body, opts)
}

func (f *FakeRequester) Delete(ctx context.Context, path string, opts ...transport.RequestOption) (json.RawMessage, error) {
	return f.do(ctx, http.MethodDelete, path, nil, opts)
}

func (f *FakeRequester) do(ctx context.Context, method, path string, body any, opts []transport.RequestOption) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", transport.ErrCancelled, err)
	}

	query, headers := transport.ResolveOptions(opts...)
	call := Call{Method: method, Path: path, Query: query, Headers: headers}
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("transportfake: encode body: %w", err)
		}
		call.Body = raw
	}

	f.lock.Lock()
	defer f.lock.Unlock()
	f.calls = append(f.calls, call)

	key := method + " " + path
	queued := f.replies[key]
	if len(queued) == 0 {
		return nil, &transport.HTTPError{
			StatusCode: http.StatusNotFound,
			Status:     "404 Not Found",
			Method:     method,
			URL:        path,
			Body:       []byte(`{"message":"Not Found"}`),
		}
	}
	next := queued[0]
	if len(queued) > 1 {
		f.replies[key] = queued[1:]
	}
	return next.body, next.err
}
