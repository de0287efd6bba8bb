package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/go-league-admin/auth"
	"github.com/jrsteele09/go-league-admin/server/loginsession"
	"github.com/jrsteele09/go-league-admin/users"
	"golang.org/x/crypto/bcrypt"
)

const messageBadCredentials = "These credentials do not match our records."

// CSRFCookieHandler makes sure the visitor has a session and issues an anti-forgery token cookie bound to it.
func (s *Server) CSRFCookieHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := s.ensureSession(w, r)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to start session")
			writeMessage(w, http.StatusInternalServerError, "Server Error")
			return
		}
		token, err := s.csrf.Issue(session.ID)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to issue csrf token")
			writeMessage(w, http.StatusInternalServerError, "Server Error")
			return
		}
		s.SetCSRFCookie(w, r, token)
		w.WriteHeader(http.StatusNoContent)
	}
}

// AdminPageHandler serves the admin shell with the anti-forgery token in its meta tag.
func (s *Server) AdminPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := s.ensureSession(w, r)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to start session")
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}
		token, err := s.csrf.Issue(session.ID)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to issue csrf token")
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}

		data := adminPageData{
			AppName:   s.config.GetAppName(),
			CSRFToken: token,
			UserName:  session.Name,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.adminPage.Execute(w, data); err != nil {
			s.logger.Error().Err(err).Msg("failed to render admin page")
		}
	}
}

// LoginHandler checks the credentials and rotates the session. Anti-forgery tokens of the old session stop
// working; a fresh token cookie is issued with the response.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds auth.Credentials
		if err := decodeJSON(r, &creds); err != nil {
			writeMessage(w, http.StatusBadRequest, "Malformed JSON.")
			return
		}
		creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))

		fields := map[string][]string{}
		if creds.Email == "" {
			fields["email"] = []string{"The email field is required."}
		}
		if creds.Password == "" {
			fields["password"] = []string{"The password field is required."}
		}
		if len(fields) > 0 {
			writeValidation(w, fields)
			return
		}

		user, ok := s.checkCredentials(creds.Email, creds.Password)
		if !ok {
			s.logger.Info().Str("email", creds.Email).Msg("failed login")
			writeValidation(w, map[string][]string{"email": {messageBadCredentials}})
			return
		}

		if old, ok := SessionFromContext(r.Context()); ok {
			_ = s.sessions.Delete(old.ID)
		}
		session, err := s.startSession(w, r, loginsession.Session{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.Name,
			Role:   user.Role,
		})
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to rotate session")
			writeMessage(w, http.StatusInternalServerError, "Server Error")
			return
		}
		if token, err := s.csrf.Issue(session.ID); err == nil {
			s.SetCSRFCookie(w, r, token)
		}

		s.logger.Info().Str("email", user.Email).Msg("login")
		s.recordAs(session, "auth", "login", "user", user.ID, user.Name+" logged in")
		writeData(w, http.StatusOK, user)
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if ok {
			_ = s.sessions.Delete(session.ID)
			s.recordAs(session, "auth", "logout", "user", session.UserID, session.Name+" logged out")
		}
		s.ClearSessionCookie(w, r)
		writeSuccess(w, "Logged out")
	}
}

func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := SessionFromContext(r.Context())
		user, ok := s.data.users.get(session.UserID)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, messageUnauthenticated)
			return
		}
		writeData(w, http.StatusOK, user)
	}
}

func (s *Server) checkCredentials(email, password string) (users.User, bool) {
	user, ok := s.data.users.find(func(u *users.User) bool { return strings.EqualFold(u.Email, email) })
	if !ok {
		return users.User{}, false
	}
	s.data.mu.Lock()
	hash, ok := s.data.passwords[user.ID]
	s.data.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return users.User{}, false
	}
	return user, true
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}
