package siteconfig

import (
	"context"

	"github.com/jrsteele09/go-league-admin/api"
)

const path = "/site-config"

// Config is the singleton site configuration edited by super admins.
type Config struct {
	SiteName         string            `json:"site_name"`
	Tagline          string            `json:"tagline,omitempty"`
	ContactEmail     string            `json:"contact_email,omitempty"`
	Timezone         string            `json:"timezone,omitempty"`
	MaintenanceMode  bool              `json:"maintenance_mode"`
	RegistrationOpen bool              `json:"registration_open"`
	SocialLinks      map[string]string `json:"social_links,omitempty"`
}

// Update changes only the non-nil fields.
type Update struct {
	SiteName         *string           `json:"site_name,omitempty"`
	Tagline          *string           `json:"tagline,omitempty"`
	ContactEmail     *string           `json:"contact_email,omitempty"`
	Timezone         *string           `json:"timezone,omitempty"`
	MaintenanceMode  *bool             `json:"maintenance_mode,omitempty"`
	RegistrationOpen *bool             `json:"registration_open,omitempty"`
	SocialLinks      map[string]string `json:"social_links,omitempty"`
}

type Service struct {
	r api.Requester
}

func New(r api.Requester) *Service {
	return &Service{r: r}
}

func (s *Service) Get(ctx context.Context) (Config, error) {
	return api.Fetch[Config](s.r.Get(ctx, path))
}

func (s *Service) Update(ctx context.Context, in Update) (Config, error) {
	return api.Fetch[Config](s.r.Put(ctx, path, in))
}
