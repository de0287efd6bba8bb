package server

import (
	"context"
	"net/http"
	"slices"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-league-admin/internal/errors"
	"github.com/jrsteele09/go-league-admin/server/loginsession"
	"github.com/jrsteele09/go-league-admin/transport"
	"github.com/jrsteele09/go-league-admin/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the current loginsession.Session
const ContextKeySession ContextKey = "session"

const (
	messageUnauthenticated = "Unauthenticated."
	messageCSRFMismatch    = "CSRF token mismatch."
	messageForbidden       = "This action is unauthorized."
)

// SessionFromContext returns the session placed by CSRFMiddleware or RequireSession.
func SessionFromContext(ctx context.Context) (loginsession.Session, bool) {
	session, ok := ctx.Value(ContextKeySession).(loginsession.Session)
	return session, ok
}

// currentSession resolves the session cookie. Expired sessions are deleted and reported as ErrSessionExpired.
func (s *Server) currentSession(r *http.Request) (loginsession.Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return loginsession.Session{}, errors.ErrNoSessionCookie
	}
	session, err := s.sessions.Get(cookie.Value)
	if err != nil {
		return loginsession.Session{}, err
	}
	if session.Expired(s.now()) {
		_ = s.sessions.Delete(session.ID)
		return loginsession.Session{}, errors.Wrapf(errors.ErrSessionExpired, "[server.currentSession] session %q", session.ID)
	}
	return session, nil
}

// ensureSession returns the current session, starting an anonymous one when there is none.
func (s *Server) ensureSession(w http.ResponseWriter, r *http.Request) (loginsession.Session, error) {
	if session, err := s.currentSession(r); err == nil {
		return session, nil
	}
	return s.startSession(w, r, loginsession.Session{})
}

// startSession stores a fresh session id carrying the identity in template and sets its cookie.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, template loginsession.Session) (loginsession.Session, error) {
	now := s.now()
	session := template
	session.ID = uuid.New().String()
	session.CreatedAt = now
	session.ExpiresAt = now.Add(s.config.GetMaxSessionAge())
	if err := s.sessions.Upsert(session); err != nil {
		return loginsession.Session{}, err
	}
	s.SetSessionCookie(w, r, session.ID)
	return session, nil
}

// CSRFMiddleware rejects mutating requests whose anti-forgery header does not match the session with 419.
func (s *Server) CSRFMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next(w, r)
			return
		}

		session, err := s.currentSession(r)
		if err != nil {
			s.logger.Debug().Str("path", r.URL.Path).Str("reason", errors.Reason(err)).Msg("csrf check without session")
			writeMessage(w, transport.StatusCSRFMismatch, messageCSRFMismatch)
			return
		}

		token := r.Header.Get(transport.HeaderXSRFToken)
		if token == "" {
			token = r.Header.Get(transport.HeaderCSRFToken)
		}
		if err := s.csrf.Verify(token, session.ID); err != nil {
			s.logger.Debug().Str("path", r.URL.Path).Str("reason", errors.Reason(err)).Msg("csrf check failed")
			writeMessage(w, transport.StatusCSRFMismatch, messageCSRFMismatch)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), ContextKeySession, session)))
	}
}

// RequireSession answers 401 unless the request belongs to a logged-in session.
func (s *Server) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := s.currentSession(r)
		if err != nil || !session.Authenticated() {
			if err != nil {
				s.logger.Debug().Str("path", r.URL.Path).Str("reason", errors.Reason(err)).Msg("request without session")
			}
			writeMessage(w, http.StatusUnauthorized, messageUnauthenticated)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), ContextKeySession, session)))
	}
}

// RequireRole answers 403 unless the session user holds one of roles. It must run after RequireSession.
func (s *Server) RequireRole(roles ...users.RoleType) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFromContext(r.Context())
			if !ok || !slices.Contains(roles, session.Role) {
				writeMessage(w, http.StatusForbidden, messageForbidden)
				return
			}
			next(w, r)
		}
	}
}
