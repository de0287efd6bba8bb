package platformcars

import (
	"context"

	"github.com/jrsteele09/go-league-admin/api"
)

const basePath = "/platform-cars"

// Car is a car model available on one sim platform.
type Car struct {
	ID           int    `json:"id"`
	Platform     string `json:"platform"`
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer,omitempty"`
	CarClass     string `json:"car_class,omitempty"`
	Year         int    `json:"year,omitempty"`
	ExternalID   string `json:"external_id,omitempty"`
	IsActive     bool   `json:"is_active"`
}

type Input struct {
	Platform     string `json:"platform,omitempty"`
	Name         string `json:"name,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	CarClass     string `json:"car_class,omitempty"`
	Year         int    `json:"year,omitempty"`
	ExternalID   string `json:"external_id,omitempty"`
	IsActive     *bool  `json:"is_active,omitempty"`
}

type Service struct {
	col *api.Collection[Car]
}

func New(r api.Requester) *Service {
	return &Service{col: api.NewCollection[Car](r, basePath)}
}

// List returns cars, optionally for one platform only.
func (s *Service) List(ctx context.Context, platform string, params api.ListParams) (*api.Page[Car], error) {
	if platform != "" {
		params = params.With("platform", platform)
	}
	return s.col.List(ctx, params)
}

func (s *Service) Get(ctx context.Context, id int) (Car, error) {
	return s.col.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (Car, error) {
	return s.col.Create(ctx, in)
}

func (s *Service) Update(ctx context.Context, id int, in Input) (Car, error) {
	return s.col.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.col.Delete(ctx, id)
}
