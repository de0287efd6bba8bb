package config

import (
	"strings"
	"time"
)

const (
	DefaultBaseURL        = "http://localhost:8080"
	DefaultAPIPrefix      = "/api"
	DefaultCSRFCookiePath = "/sanctum/csrf-cookie"
	DefaultCSRFCookieName = "XSRF-TOKEN"
	DefaultCSRFMetaName   = "csrf-token"
	DefaultMaxCSRFRetries = 1
	DefaultHTTPTimeout    = 30 * time.Second
)

// Client holds the transport settings. The zero value is not usable; load it with NewClient or start from
// DefaultClient.
type Client struct {
	BaseURL         string        `envconfig:"LEAGUE_BASE_URL" default:"http://localhost:8080"`
	APIPrefix       string        `envconfig:"LEAGUE_API_PREFIX" default:"/api"`
	CSRFCookiePath  string        `envconfig:"LEAGUE_CSRF_COOKIE_PATH" default:"/sanctum/csrf-cookie"`
	CSRFCookieName  string        `envconfig:"LEAGUE_CSRF_COOKIE_NAME" default:"XSRF-TOKEN"`
	CSRFMetaName    string        `envconfig:"LEAGUE_CSRF_META_NAME" default:"csrf-token"`
	MaxCSRFRetries  int           `envconfig:"LEAGUE_MAX_CSRF_RETRIES" default:"1"`
	CoalesceRefresh bool          `envconfig:"LEAGUE_COALESCE_REFRESH" default:"false"`
	HTTPTimeout     time.Duration `envconfig:"LEAGUE_HTTP_TIMEOUT" default:"30s"`
}

var _ ClientConfig = Client{}

// DefaultClient returns the client settings with every default applied.
func DefaultClient() Client {
	return Client{
		BaseURL:        DefaultBaseURL,
		APIPrefix:      DefaultAPIPrefix,
		CSRFCookiePath: DefaultCSRFCookiePath,
		CSRFCookieName: DefaultCSRFCookieName,
		CSRFMetaName:   DefaultCSRFMetaName,
		MaxCSRFRetries: DefaultMaxCSRFRetries,
		HTTPTimeout:    DefaultHTTPTimeout,
	}
}

func (c Client) GetBaseURL() string {
	return strings.TrimSuffix(c.BaseURL, "/")
}

func (c Client) GetAPIPrefix() string {
	if c.APIPrefix == "" {
		return ""
	}
	return "/" + strings.Trim(c.APIPrefix, "/")
}

func (c Client) GetCSRFCookiePath() string {
	return c.CSRFCookiePath
}

func (c Client) GetCSRFCookieName() string {
	return c.CSRFCookieName
}

func (c Client) GetCSRFMetaName() string {
	return c.CSRFMetaName
}

// GetMaxCSRFRetries is the number of refresh-and-resubmit attempts after a 419. Zero disables the retry.
func (c Client) GetMaxCSRFRetries() int {
	if c.MaxCSRFRetries < 0 {
		return 0
	}
	return c.MaxCSRFRetries
}

func (c Client) GetCoalesceRefresh() bool {
	return c.CoalesceRefresh
}

func (c Client) GetHTTPTimeout() time.Duration {
	return c.HTTPTimeout
}
