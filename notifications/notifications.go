package notifications

import (
	"context"
	"time"

	"github.com/jrsteele09/go-league-admin/api"
)

const basePath = "/notifications"

// Notification is an admin inbox entry. IDs are uuids.
type Notification struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Body      string         `json:"body,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

type unreadCount struct {
	Count int `json:"count"`
}

type Service struct {
	r   api.Requester
	col *api.Collection[Notification]
}

func New(r api.Requester) *Service {
	return &Service{r: r, col: api.NewCollection[Notification](r, basePath)}
}

func (s *Service) List(ctx context.Context, params api.ListParams) (*api.Page[Notification], error) {
	return s.col.List(ctx, params)
}

func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	count, err := api.Fetch[unreadCount](s.r.Get(ctx, s.col.Path("unread-count")))
	return count.Count, err
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	return api.Check(s.r.Post(ctx, s.col.Path(id, "read"), nil))
}

func (s *Service) MarkAllRead(ctx context.Context) error {
	return api.Check(s.r.Post(ctx, s.col.Path("read-all"), nil))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return api.Check(s.r.Delete(ctx, s.col.Path(id)))
}
