package api

import (
	"context"
	"encoding/json"

	"github.com/jrsteele09/go-league-admin/transport"
)

// Requester is the transport surface the resource services use. *transport.Client satisfies it.
type Requester interface {
	Get(ctx context.Context, path string, opts ...transport.RequestOption) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any, opts ...transport.RequestOption) (json.RawMessage, error)
	Put(ctx context.Context, path string, body any, opts ...transport.RequestOption) (json.RawMessage, error)
	Patch(ctx context.Context, path string, body any, opts ...transport.RequestOption) (json.RawMessage, error)
	Delete(ctx context.Context, path string, opts ...transport.RequestOption) (json.RawMessage, error)
}

var _ Requester = (*transport.Client)(nil)
