package api

import (
	"context"
	"strconv"
	"strings"

	"github.com/jrsteele09/go-league-admin/transport"
)

// Collection is the CRUD surface shared by every resource living under one base path.
type Collection[T any] struct {
	r    Requester
	base string
}

func NewCollection[T any](r Requester, base string) *Collection[T] {
	return &Collection[T]{r: r, base: "/" + strings.Trim(base, "/")}
}

// Path joins the base path with the given elements.
func (c *Collection[T]) Path(elems ...any) string {
	var b strings.Builder
	b.WriteString(c.base)
	for _, e := range elems {
		b.WriteByte('/')
		switch v := e.(type) {
		case int:
			b.WriteString(strconv.Itoa(v))
		case string:
			b.WriteString(strings.Trim(v, "/"))
		}
	}
	return b.String()
}

func (c *Collection[T]) List(ctx context.Context, params ListParams) (*Page[T], error) {
	return FetchPage[T](c.r.Get(ctx, c.base, transport.WithQuery(params.Query())))
}

func (c *Collection[T]) Get(ctx context.Context, id int) (T, error) {
	return Fetch[T](c.r.Get(ctx, c.Path(id)))
}

func (c *Collection[T]) Create(ctx context.Context, body any) (T, error) {
	return Fetch[T](c.r.Post(ctx, c.base, body))
}

func (c *Collection[T]) Update(ctx context.Context, id int, body any) (T, error) {
	return Fetch[T](c.r.Put(ctx, c.Path(id), body))
}

func (c *Collection[T]) Delete(ctx context.Context, id int) error {
	return Check(c.r.Delete(ctx, c.Path(id)))
}

// All walks every page of a list, starting at params.Page (or 1).
func (c *Collection[T]) All(ctx context.Context, params ListParams) ([]T, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	var all []T
	for {
		page, err := c.List(ctx, params)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Data...)
		if !page.Meta.HasMore() || len(page.Data) == 0 {
			return all, nil
		}
		params.Page = page.Meta.CurrentPage + 1
	}
}
