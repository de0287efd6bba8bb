package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config interface {
	EnvConfig
	ClientConfig
	ServerConfig
	CorsConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

// ClientConfig is everything the transport client needs to talk to the league API.
type ClientConfig interface {
	GetBaseURL() string
	GetAPIPrefix() string
	GetCSRFCookiePath() string
	GetCSRFCookieName() string
	GetCSRFMetaName() string
	GetMaxCSRFRetries() int
	GetCoalesceRefresh() bool
	GetHTTPTimeout() time.Duration
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Client
	Security
	Cors
}

// New loads the full configuration (client and development server) from the environment.
func New() (Config, error) {
	var c mainConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("[config.New] failed to process environment: %w", err)
	}
	return c, nil
}

// NewClient loads only the client settings, used by the CLI.
func NewClient() (*Client, error) {
	var c Client
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("[config.NewClient] failed to process environment: %w", err)
	}
	return &c, nil
}
