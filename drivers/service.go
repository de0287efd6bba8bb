package drivers

import (
	"context"

	"github.com/jrsteele09/go-league-admin/api"
)

const basePath = "/drivers"

type Service struct {
	col *api.Collection[Driver]
}

func New(r api.Requester) *Service {
	return &Service{col: api.NewCollection[Driver](r, basePath)}
}

func (s *Service) List(ctx context.Context, params api.ListParams) (*api.Page[Driver], error) {
	return s.col.List(ctx, params)
}

func (s *Service) All(ctx context.Context, params api.ListParams) ([]Driver, error) {
	return s.col.All(ctx, params)
}

func (s *Service) Get(ctx context.Context, id int) (Driver, error) {
	return s.col.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (Driver, error) {
	return s.col.Create(ctx, in)
}

func (s *Service) Update(ctx context.Context, id int, in Input) (Driver, error) {
	return s.col.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.col.Delete(ctx, id)
}
