package server_test

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/go-league-admin/api"
	"github.com/jrsteele09/go-league-admin/auth"
	"github.com/jrsteele09/go-league-admin/drivers"
	"github.com/jrsteele09/go-league-admin/internal/config"
	"github.com/jrsteele09/go-league-admin/internal/utils"
	"github.com/jrsteele09/go-league-admin/server"
	"github.com/jrsteele09/go-league-admin/server/loginsession"
	"github.com/jrsteele09/go-league-admin/transport"
	"github.com/jrsteele09/go-league-admin/users"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@league.test"
	adminPassword = "Secret123"
)

var adminCreds = auth.Credentials{Email: adminEmail, Password: adminPassword}

// counter wraps the default transport and counts token refreshes and mismatch responses.
type counter struct {
	refreshes  atomic.Int32
	mismatches atomic.Int32
}

func (c *counter) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.URL.Path == server.RouteCSRFCookie {
		c.refreshes.Add(1)
	}
	resp, err := http.DefaultTransport.RoundTrip(r)
	if err == nil && resp.StatusCode == transport.StatusCSRFMismatch {
		c.mismatches.Add(1)
	}
	return resp, err
}

type harness struct {
	srv *httptest.Server
	app *server.Server
}

func newHarness(t *testing.T, opts ...server.Option) *harness {
	t.Helper()
	t.Setenv("ENV", "TEST")
	t.Setenv("APP_NAME", "Test League")
	t.Setenv("ADMIN_EMAIL", adminEmail)
	t.Setenv("ADMIN_PASSWORD", adminPassword)
	t.Setenv("CSRF_SECRET", "test-secret")
	cfg, err := config.New()
	require.NoError(t, err)

	opts = append([]server.Option{server.WithLogger(zerolog.Nop())}, opts...)
	app, err := server.New(cfg, loginsession.NewInMemoryRepo(), opts...)
	require.NoError(t, err)

	srv := httptest.NewServer(app)
	t.Cleanup(srv.Close)
	return &harness{srv: srv, app: app}
}

// client returns a fresh browser-like client with its own cookie jar.
func (h *harness) client(t *testing.T, opts ...transport.Option) (*transport.Client, *counter) {
	t.Helper()
	cfg := config.DefaultClient()
	cfg.BaseURL = h.srv.URL
	counts := &counter{}
	opts = append([]transport.Option{
		transport.WithLogger(zerolog.Nop()),
		transport.WithHTTPClient(&http.Client{Transport: counts, Timeout: 5 * time.Second}),
	}, opts...)
	c, err := transport.New(cfg, opts...)
	require.NoError(t, err)
	return c, counts
}

// admin returns a client signed in as the seeded super admin.
func (h *harness) admin(t *testing.T) *transport.Client {
	t.Helper()
	c, _ := h.client(t)
	_, err := auth.New(c).Login(context.Background(), adminCreds)
	require.NoError(t, err)
	return c
}

// raw is a plain cookie-jar client for asserting status codes directly.
func (h *harness) raw(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func (h *harness) cookie(t *testing.T, c *http.Client, name string) string {
	t.Helper()
	u, err := url.Parse(h.srv.URL)
	require.NoError(t, err)
	for _, cookie := range c.Jar.Cookies(u) {
		if cookie.Name == name {
			value, err := url.QueryUnescape(cookie.Value)
			require.NoError(t, err)
			return value
		}
	}
	return ""
}

func TestCSRFCookie_StartsSessionAndIssuesToken(t *testing.T) {
	h := newHarness(t)
	c := h.raw(t)

	resp, err := c.Get(h.srv.URL + server.RouteCSRFCookie)
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.NotEmpty(t, h.cookie(t, c, server.SessionCookieName))
	require.NotEmpty(t, h.cookie(t, c, server.CSRFCookieName))
}

func TestCSRFMiddleware(t *testing.T) {
	h := newHarness(t)
	body := `{"name":"Jo","email":"jo@example.com","message":"Hello"}`

	post := func(c *http.Client, token string) *http.Response {
		req, err := http.NewRequest(http.MethodPost, h.srv.URL+server.RouteContactSubmit, strings.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set(transport.HeaderXSRFToken, token)
		}
		resp, err := c.Do(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		return resp
	}

	t.Run("no session", func(t *testing.T) {
		require.Equal(t, transport.StatusCSRFMismatch, post(h.raw(t), "").StatusCode)
	})

	t.Run("missing header", func(t *testing.T) {
		c := h.raw(t)
		resp, err := c.Get(h.srv.URL + server.RouteCSRFCookie)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, transport.StatusCSRFMismatch, post(c, "").StatusCode)
	})

	t.Run("token of another session", func(t *testing.T) {
		other := h.raw(t)
		resp, err := other.Get(h.srv.URL + server.RouteCSRFCookie)
		require.NoError(t, err)
		_ = resp.Body.Close()

		c := h.raw(t)
		resp, err = c.Get(h.srv.URL + server.RouteCSRFCookie)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, transport.StatusCSRFMismatch, post(c, h.cookie(t, other, server.CSRFCookieName)).StatusCode)
	})

	t.Run("matching token", func(t *testing.T) {
		c := h.raw(t)
		resp, err := c.Get(h.srv.URL + server.RouteCSRFCookie)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusCreated, post(c, h.cookie(t, c, server.CSRFCookieName)).StatusCode)
	})

	t.Run("reads are not checked", func(t *testing.T) {
		resp, err := h.raw(t).Get(h.srv.URL + server.RouteSiteConfig)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestLogin_RotatesSessionAndClientRecovers(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c, counts := h.client(t)

	user, err := auth.New(c).Login(ctx, adminCreds)
	require.NoError(t, err)
	require.Equal(t, adminEmail, user.Email)
	require.True(t, user.IsSuperAdmin())
	require.Equal(t, int32(1), counts.refreshes.Load())

	// The cached token belongs to the pre-login session, so the first mutation is rejected once.
	driver, err := drivers.New(c).Create(ctx, drivers.Input{FirstName: "Max", LastName: "Verano", RacingNumber: utils.Ptr(33)})
	require.NoError(t, err)
	require.Equal(t, "Max Verano", driver.FullName())
	require.Equal(t, int32(1), counts.mismatches.Load())
	require.Equal(t, int32(2), counts.refreshes.Load())

	_, err = drivers.New(c).Create(ctx, drivers.Input{Nickname: "rookie"})
	require.NoError(t, err)
	require.Equal(t, int32(1), counts.mismatches.Load())
	require.Equal(t, int32(2), counts.refreshes.Load())
}

func TestLogin_BadCredentials(t *testing.T) {
	h := newHarness(t)
	c, _ := h.client(t)

	_, err := auth.New(c).Login(context.Background(), auth.Credentials{Email: adminEmail, Password: "wrong"})
	var verr *api.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "These credentials do not match our records.", verr.First("email"))
}

func TestMe_RequiresSession(t *testing.T) {
	h := newHarness(t)
	c, _ := h.client(t, transport.WithEventBuffer(1))

	_, err := auth.New(c).Me(context.Background())
	require.True(t, auth.IsUnauthenticated(err))

	select {
	case ev := <-c.Unauthorized():
		require.Equal(t, http.MethodGet, ev.Method)
	case <-time.After(time.Second):
		t.Fatal("expected an unauthorized event")
	}
}

func TestLogout_EndsSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := h.admin(t)
	svc := auth.New(c)

	me, err := svc.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, adminEmail, me.Email)

	require.NoError(t, svc.Logout(ctx))
	_, err = svc.Me(ctx)
	require.True(t, auth.IsUnauthenticated(err))
}

func TestSession_Expires(t *testing.T) {
	var mu sync.Mutex
	now := time.Now()
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	h := newHarness(t, server.WithClock(clock))
	ctx := context.Background()
	c := h.admin(t)

	_, err := auth.New(c).Me(ctx)
	require.NoError(t, err)

	mu.Lock()
	now = now.Add(3 * time.Hour)
	mu.Unlock()

	_, err = auth.New(c).Me(ctx)
	require.True(t, auth.IsUnauthenticated(err))
	require.Equal(t, 0, h.app.PurgeExpiredSessions())
}

func TestAdminPage_EmbedsToken(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c, counts := h.client(t)

	require.NoError(t, c.LoadDocument(ctx, server.RouteAdminPage))
	require.NotEmpty(t, c.Token())

	// The page token is bound to the session the page started, so a mutation needs no refresh.
	_, err := c.Post(ctx, "/contact", map[string]string{"name": "Jo", "email": "jo@example.com", "message": "Hi"})
	require.NoError(t, err)
	require.Equal(t, int32(0), counts.refreshes.Load())
	require.Equal(t, int32(0), counts.mismatches.Load())
}

func TestRoles(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := users.New(h.admin(t)).Create(ctx, users.CreateRequest{
		Name:                 "Pat Driver",
		Email:                "pat@example.com",
		Password:             "Password1",
		PasswordConfirmation: "Password1",
		Role:                 users.RoleUser,
	})
	require.NoError(t, err)

	c, _ := h.client(t)
	_, err = auth.New(c).LoginAdmin(ctx, auth.Credentials{Email: "pat@example.com", Password: "Password1"})
	require.ErrorIs(t, err, auth.ErrNotAdmin)

	_, err = auth.New(c).Login(ctx, auth.Credentials{Email: "pat@example.com", Password: "Password1"})
	require.NoError(t, err)
	_, err = drivers.New(c).List(ctx, api.ListParams{})
	var appErr *api.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, http.StatusForbidden, appErr.StatusCode)
	require.Equal(t, "This action is unauthorized.", appErr.Message)
}

func TestCORS_Preflight(t *testing.T) {
	h := newHarness(t)
	req, err := http.NewRequest(http.MethodOptions, h.srv.URL+server.RouteDrivers, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}
