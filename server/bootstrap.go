package server

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/jrsteele09/go-league-admin/admins"
	"github.com/jrsteele09/go-league-admin/drivers"
	"github.com/jrsteele09/go-league-admin/internal/config"
	"github.com/jrsteele09/go-league-admin/internal/utils"
	"github.com/jrsteele09/go-league-admin/leagues"
	"github.com/jrsteele09/go-league-admin/platformcars"
	"github.com/jrsteele09/go-league-admin/queuestats"
	"github.com/jrsteele09/go-league-admin/siteconfig"
	"github.com/jrsteele09/go-league-admin/users"
)

const DefaultSuperAdminName = "Super Admin"

// InitialiseSystem creates the super admin account and seeds sample league data. When no admin password is
// configured a random one is generated and logged once.
func (s *Server) InitialiseSystem(cfg config.ServerConfig) error {
	email := strings.ToLower(strings.TrimSpace(cfg.GetAdminEmail()))
	if email == "" {
		return fmt.Errorf("[server.InitialiseSystem] admin email is required")
	}

	password := cfg.GetAdminPassword()
	if password == "" {
		generated, err := generatePassword()
		if err != nil {
			return fmt.Errorf("[server.InitialiseSystem] failed to generate admin password: %w", err)
		}
		password = generated
		s.logger.Warn().Str("email", email).Str("password", password).Msg("generated super admin password")
	}

	if _, err := s.seedUser(DefaultSuperAdminName, email, password, users.RoleSuperAdmin); err != nil {
		return fmt.Errorf("[server.InitialiseSystem] failed to create super admin: %w", err)
	}
	s.seedSampleData()

	s.logger.Info().Str("email", email).Msg("system initialised")
	return nil
}

func (s *Server) seedUser(name, email, password string, role users.RoleType) (users.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return users.User{}, err
	}
	now := s.now().UTC()
	user := s.data.users.insert(users.User{
		Name:            name,
		Email:           email,
		Role:            role,
		EmailVerifiedAt: utils.Ptr(now),
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	s.data.mu.Lock()
	s.data.passwords[user.ID] = hash
	s.data.mu.Unlock()

	if role == users.RoleAdmin || role == users.RoleSuperAdmin {
		s.data.admins.insert(admins.Admin{
			Name:      name,
			Email:     email,
			Role:      role,
			Status:    admins.StatusActive,
			CreatedAt: now,
		})
	}
	return user, nil
}

func (s *Server) seedSampleData() {
	now := s.now().UTC()

	gt3 := s.data.leagues.insert(leagues.League{
		Name: "GT3 Sprint Series", Slug: "gt3-sprint-series", Description: "Weekly 45 minute GT3 sprints.",
		Platforms: []string{"acc"}, Timezone: "Europe/London", Visibility: leagues.VisibilityPublic, IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	})
	s.data.leagues.insert(leagues.League{
		Name: "Endurance Cup", Slug: "endurance-cup", Description: "Monthly multi-class endurance rounds.",
		Platforms: []string{"iracing", "lmu"}, Timezone: "UTC", Visibility: leagues.VisibilityPrivate, IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	})

	for i, d := range []drivers.Driver{
		{FirstName: "Lewis", LastName: "Marsh", Nickname: "lmarsh", Nationality: "GB", RacingNumber: utils.Ptr(44)},
		{FirstName: "Ana", LastName: "Costa", Nationality: "PT", RacingNumber: utils.Ptr(7)},
		{FirstName: "Jonas", LastName: "Berg", Nationality: "DE", RacingNumber: utils.Ptr(88)},
	} {
		d.Status = drivers.StatusActive
		d.PlatformIDs = map[string]string{"acc": fmt.Sprintf("S7656119%08d", i+1)}
		d.CreatedAt, d.UpdatedAt = now, now
		driver := s.data.drivers.insert(d)
		s.data.memberships[gt3.ID] = append(s.data.memberships[gt3.ID], leagues.Membership{DriverID: driver.ID})
	}
	s.recountLeague(gt3.ID)

	for _, c := range []platformcars.Car{
		{Platform: "acc", Name: "911 GT3 R", Manufacturer: "Porsche", CarClass: "GT3", Year: 2023, ExternalID: "porsche_992_gt3_r"},
		{Platform: "acc", Name: "M4 GT3", Manufacturer: "BMW", CarClass: "GT3", Year: 2022, ExternalID: "bmw_m4_gt3"},
		{Platform: "iracing", Name: "LMDh", Manufacturer: "Cadillac", CarClass: "GTP", Year: 2023, ExternalID: "cadillacvseriesrgtp"},
	} {
		c.IsActive = true
		s.data.cars.insert(c)
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	s.data.siteConfig = siteconfig.Config{
		SiteName:         s.config.GetAppName(),
		Tagline:          "Sim racing leagues, run properly",
		Timezone:         "UTC",
		RegistrationOpen: true,
	}
	s.data.queue = queuestats.Stats{
		Pending:   3,
		Processed: 1280,
		Queues: []queuestats.Queue{
			{Name: "default", Pending: 2},
			{Name: "mail", Pending: 1, Delayed: 1},
		},
	}
	s.data.failedJobs = []queuestats.FailedJob{{
		ID:         1,
		UUID:       newUUID(),
		Connection: "database",
		Queue:      "mail",
		Job:        "SendRaceReminder",
		Exception:  "connection refused: smtp:587",
		FailedAt:   now.Add(-time.Hour),
	}}
}

func generatePassword() (string, error) {
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	// Guarantee the mixed case and digit ValidatePasswordStrength asks for.
	return "Aa1" + base64.RawURLEncoding.EncodeToString(buf), nil
}
