package server

import (
	"encoding/json"
	"errors"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/jrsteele09/go-league-admin/api"
)

const (
	SessionCookieName = "league_session"
	CSRFCookieName    = "XSRF-TOKEN"

	maxBodyBytes = 1 << 20
)

var errMalformedJSON = errors.New("malformed JSON body")

func (s *Server) SetSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(s.config.GetMaxSessionAge().Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) ClearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetCSRFCookie hands the token to scripts, so the cookie is readable (not HttpOnly) and URL-encoded.
func (s *Server) SetCSRFCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    url.QueryEscape(token),
		Path:     "/",
		MaxAge:   int(s.config.GetCSRFTokenTTL().Seconds()),
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData[T any](w http.ResponseWriter, status int, data T) {
	writeJSON(w, status, api.Envelope[T]{Success: true, Data: data})
}

func writeSuccess(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, api.Envelope[any]{Success: true, Message: message})
}

// writeMessage writes the {"message": ...} body the client's error handling expects.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}

func writeValidation(w http.ResponseWriter, fields map[string][]string) {
	message := "The given data was invalid."
	for _, field := range slices.Sorted(maps.Keys(fields)) {
		if msgs := fields[field]; len(msgs) > 0 {
			message = msgs[0]
			break
		}
	}
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": message, "errors": fields})
}

func writeNotFound(w http.ResponseWriter) {
	writeMessage(w, http.StatusNotFound, "Not Found")
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errMalformedJSON
	}
	return nil
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func pathInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(r.PathValue(name))
}
