package contacts

import (
	"context"
	"time"

	"github.com/jrsteele09/go-league-admin/api"
)

const (
	submitPath = "/contact"
	basePath   = "/contacts"
)

// Contact is a message sent through the public contact form.
type Contact struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Subject   string     `json:"subject,omitempty"`
	Message   string     `json:"message"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (c *Contact) IsRead() bool {
	return c.ReadAt != nil
}

type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

type Service struct {
	r   api.Requester
	col *api.Collection[Contact]
}

func New(r api.Requester) *Service {
	return &Service{r: r, col: api.NewCollection[Contact](r, basePath)}
}

// Submit posts the public contact form.
func (s *Service) Submit(ctx context.Context, in Submission) (Contact, error) {
	return api.Fetch[Contact](s.r.Post(ctx, submitPath, in))
}

// List returns the inbox. unreadOnly narrows it to unread messages.
func (s *Service) List(ctx context.Context, params api.ListParams, unreadOnly bool) (*api.Page[Contact], error) {
	if unreadOnly {
		params = params.With("unread", "1")
	}
	return s.col.List(ctx, params)
}

func (s *Service) Get(ctx context.Context, id int) (Contact, error) {
	return s.col.Get(ctx, id)
}

func (s *Service) MarkRead(ctx context.Context, id int) (Contact, error) {
	return api.Fetch[Contact](s.r.Patch(ctx, s.col.Path(id, "read"), nil))
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.col.Delete(ctx, id)
}
