package leagues

import (
	"context"

	"github.com/jrsteele09/go-league-admin/api"
	"github.com/jrsteele09/go-league-admin/drivers"
	"github.com/jrsteele09/go-league-admin/transport"
)

const basePath = "/leagues"

type Service struct {
	r   api.Requester
	col *api.Collection[League]
}

func New(r api.Requester) *Service {
	return &Service{r: r, col: api.NewCollection[League](r, basePath)}
}

func (s *Service) List(ctx context.Context, params api.ListParams) (*api.Page[League], error) {
	return s.col.List(ctx, params)
}

func (s *Service) Get(ctx context.Context, id int) (League, error) {
	return s.col.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (League, error) {
	return s.col.Create(ctx, in)
}

func (s *Service) Update(ctx context.Context, id int, in Input) (League, error) {
	return s.col.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.col.Delete(ctx, id)
}

// Drivers lists the drivers entered in a league.
func (s *Service) Drivers(ctx context.Context, leagueID int, params api.ListParams) (*api.Page[drivers.Driver], error) {
	return api.FetchPage[drivers.Driver](s.r.Get(ctx, s.col.Path(leagueID, "drivers"), transport.WithQuery(params.Query())))
}

func (s *Service) AddDriver(ctx context.Context, leagueID int, m Membership) error {
	return api.Check(s.r.Post(ctx, s.col.Path(leagueID, "drivers"), m))
}

func (s *Service) RemoveDriver(ctx context.Context, leagueID, driverID int) error {
	return api.Check(s.r.Delete(ctx, s.col.Path(leagueID, "drivers", driverID)))
}
