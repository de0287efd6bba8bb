package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-league-admin/api"
	"github.com/jrsteele09/go-league-admin/transport"
	"github.com/jrsteele09/go-league-admin/users"
)

const (
	loginPath  = "/login"
	logoutPath = "/logout"
	mePath     = "/user"
)

// TokenRefresher fetches a fresh anti-forgery token. *transport.Client implements it.
type TokenRefresher interface {
	RefreshToken(ctx context.Context) error
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember,omitempty"`
}

type Service struct {
	r api.Requester
}

func New(r api.Requester) *Service {
	return &Service{r: r}
}

// Login bootstraps the anti-forgery token, then signs in. The backend rotates the session on login, so callers
// should expect the token to be stale afterwards; the transport recovers from that on the next mutation.
func (s *Service) Login(ctx context.Context, creds Credentials) (users.User, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return users.User{}, ErrMissingCredentials
	}

	if refresher, ok := s.r.(TokenRefresher); ok {
		if err := refresher.RefreshToken(ctx); err != nil {
			return users.User{}, api.Normalize(err)
		}
	}
	return api.Fetch[users.User](s.r.Post(ctx, loginPath, creds))
}

// LoginAdmin is Login for the admin console: accounts without an admin role are signed out again.
func (s *Service) LoginAdmin(ctx context.Context, creds Credentials) (users.User, error) {
	user, err := s.Login(ctx, creds)
	if err != nil {
		return user, err
	}
	if !user.IsAdmin() {
		if logoutErr := s.Logout(ctx); logoutErr != nil {
			return users.User{}, fmt.Errorf("%w: %w", ErrNotAdmin, logoutErr)
		}
		return users.User{}, ErrNotAdmin
	}
	return user, nil
}

func (s *Service) Logout(ctx context.Context) error {
	return api.Check(s.r.Post(ctx, logoutPath, nil))
}

// Me returns the signed-in user.
func (s *Service) Me(ctx context.Context) (users.User, error) {
	return api.Fetch[users.User](s.r.Get(ctx, mePath))
}

// IsUnauthenticated reports whether err means there is no live session.
func IsUnauthenticated(err error) bool {
	return transport.IsUnauthorized(err)
}
