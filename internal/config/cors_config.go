package config

import (
	"maps"
	"slices"
	"strings"
)

type Cors struct {
	Origins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`
}

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

// String lists the origins sorted, as they appear in the startup log.
func (a AllowedOrigins) String() string {
	return strings.Join(slices.Sorted(maps.Keys(a)), ", ")
}

func (c Cors) GetAllowedOrigins() AllowedOrigins {
	origins := make(AllowedOrigins, len(c.Origins))
	for _, o := range c.Origins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins[o] = nullValue{}
		}
	}
	return origins
}

func (Cors) GetAllowedMethods() string {
	return "GET, POST, PUT, PATCH, DELETE, OPTIONS"
}

// The anti-forgery headers must be allowed or the browser strips them on cross-origin calls.
func (Cors) GetAllowedHeaders() string {
	return "Content-Type, Accept, X-Requested-With, X-CSRF-TOKEN, X-XSRF-TOKEN, X-Request-ID"
}
