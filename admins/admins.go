package admins

import (
	"context"
	"time"

	"github.com/jrsteele09/go-league-admin/api"
	"github.com/jrsteele09/go-league-admin/users"
)

const basePath = "/admins"

type Status string

const (
	StatusActive    Status = "active"
	StatusInvited   Status = "invited"
	StatusSuspended Status = "suspended"
)

type Admin struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Role        users.RoleType `json:"role"`
	Status      Status         `json:"status"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Invite creates an admin account that is activated from the emailed link.
type Invite struct {
	Name  string         `json:"name"`
	Email string         `json:"email"`
	Role  users.RoleType `json:"role"`
}

type Update struct {
	Name   *string         `json:"name,omitempty"`
	Role   *users.RoleType `json:"role,omitempty"`
	Status *Status         `json:"status,omitempty"`
}

type Service struct {
	col *api.Collection[Admin]
}

func New(r api.Requester) *Service {
	return &Service{col: api.NewCollection[Admin](r, basePath)}
}

func (s *Service) List(ctx context.Context, params api.ListParams) (*api.Page[Admin], error) {
	return s.col.List(ctx, params)
}

func (s *Service) Get(ctx context.Context, id int) (Admin, error) {
	return s.col.Get(ctx, id)
}

// Create sends an invitation. Role defaults to admin.
func (s *Service) Create(ctx context.Context, in Invite) (Admin, error) {
	if in.Role == "" {
		in.Role = users.RoleAdmin
	}
	return s.col.Create(ctx, in)
}

func (s *Service) Update(ctx context.Context, id int, in Update) (Admin, error) {
	return s.col.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.col.Delete(ctx, id)
}
