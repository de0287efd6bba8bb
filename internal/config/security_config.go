package config

import (
	"fmt"
	"strings"
	"time"
)

// ServerConfig configures the development backend.
type ServerConfig interface {
	GetPort() string
	GetAdminEmail() string
	GetAdminPassword() string
	GetCSRFSecret() []byte
	GetCSRFTokenTTL() time.Duration
	GetMaxSessionAge() time.Duration
}

type Security struct {
	Port          string        `envconfig:"PORT" default:"8080"`
	AdminEmail    string        `envconfig:"ADMIN_EMAIL" default:"admin@league.local"`
	AdminPassword string        `envconfig:"ADMIN_PASSWORD" default:"Password123"`
	CSRFSecret    string        `envconfig:"CSRF_SECRET" default:"dev-only-csrf-secret"`
	CSRFTokenTTL  time.Duration `envconfig:"CSRF_TOKEN_TTL" default:"2h"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"2h"`
}

var _ ServerConfig = Security{}

func (s Security) GetPort() string {
	port := s.Port
	if port == "" {
		port = "8080"
	}
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (s Security) GetAdminEmail() string {
	return s.AdminEmail
}

func (s Security) GetAdminPassword() string {
	return s.AdminPassword
}

func (s Security) GetCSRFSecret() []byte {
	return []byte(s.CSRFSecret)
}

func (s Security) GetCSRFTokenTTL() time.Duration {
	return s.CSRFTokenTTL
}

func (s Security) GetMaxSessionAge() time.Duration {
	return s.SessionTTL
}
