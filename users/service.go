package users

import (
	"context"

	"github.com/jrsteele09/go-league-admin/api"
)

const basePath = "/users"

type Service struct {
	col *api.Collection[User]
}

func New(r api.Requester) *Service {
	return &Service{col: api.NewCollection[User](r, basePath)}
}

func (s *Service) List(ctx context.Context, params api.ListParams) (*api.Page[User], error) {
	return s.col.List(ctx, params)
}

// ListByRole filters the list to one role.
func (s *Service) ListByRole(ctx context.Context, role RoleType, params api.ListParams) (*api.Page[User], error) {
	return s.col.List(ctx, params.With("role", string(role)))
}

func (s *Service) Get(ctx context.Context, id int) (User, error) {
	return s.col.Get(ctx, id)
}

// Create validates req locally and only then posts it.
func (s *Service) Create(ctx context.Context, req CreateRequest) (User, error) {
	if err := req.Validate(); err != nil {
		return User{}, err
	}
	return s.col.Create(ctx, req)
}

func (s *Service) Update(ctx context.Context, id int, req UpdateRequest) (User, error) {
	return s.col.Update(ctx, id, req)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.col.Delete(ctx, id)
}
