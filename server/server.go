package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/go-league-admin/internal/config"
	"github.com/jrsteele09/go-league-admin/server/loginsession"
	"github.com/jrsteele09/go-league-admin/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RoleSet is a group of roles any one of which grants access.
type RoleSet []users.RoleType

var (
	adminRoles      = RoleSet{users.RoleAdmin, users.RoleSuperAdmin}
	superAdminRoles = RoleSet{users.RoleSuperAdmin}
)

// Server is a development backend speaking the league API: cookie sessions, anti-forgery tokens, envelopes and
// in-memory resources.
type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	logger    zerolog.Logger
	sessions  loginsession.Repo
	csrf      *csrfIssuer
	data      *store
	adminPage *template.Template
	now       func() time.Time
}

type Option func(*Server)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithClock replaces time.Now, for expiry tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

func New(cfg config.Config, sessions loginsession.Repo, opts ...Option) (*Server, error) {
	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		config:   cfg,
		logger:   log.Logger.With().Str("component", "devserver").Logger(),
		sessions: sessions,
		data:     newStore(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.csrf = newCSRFIssuer(cfg.GetCSRFSecret(), cfg.GetCSRFTokenTTL(), s.now)

	page, err := parseAdminPage()
	if err != nil {
		return nil, err
	}
	s.adminPage = page

	if err := s.InitialiseSystem(cfg); err != nil {
		return nil, fmt.Errorf("[server.New] failed to initialise the system: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes lists every registered pattern.
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

// PurgeExpiredSessions drops expired sessions and returns how many were removed.
func (s *Server) PurgeExpiredSessions() int {
	return s.sessions.DeleteExpired(s.now())
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		method, path, found := strings.Cut(route, " ")
		if !found {
			method, path = "", route
		}
		s.logger.Debug().Str("method", colouredMethod(method)).Str("path", path).Msg("route")
	}
}
