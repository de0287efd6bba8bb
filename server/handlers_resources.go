package server

import (
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-league-admin/api"
	"github.com/jrsteele09/go-league-admin/drivers"
	"github.com/jrsteele09/go-league-admin/leagues"
	"github.com/jrsteele09/go-league-admin/users"
)

// CreateUserHandler registers an account. The password is hashed and never returned.
func (s *Server) CreateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req users.CreateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Malformed JSON.")
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Role == "" {
			req.Role = users.RoleUser
		}

		fields := fieldErrors{}
		var verr *api.ValidationError
		if err := req.Validate(); errors.As(err, &verr) {
			for field, msgs := range verr.Fields {
				fields[field] = append(fields[field], msgs...)
			}
		}
		if _, taken := s.data.users.find(func(u *users.User) bool { return u.Email == req.Email }); taken {
			fields.add("email", "The email has already been taken.")
		}
		if len(fields) > 0 {
			writeValidation(w, fields)
			return
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to hash password")
			writeMessage(w, http.StatusInternalServerError, "Server Error")
			return
		}
		now := s.now().UTC()
		user := s.data.users.insert(users.User{
			Name:      strings.TrimSpace(req.Name),
			Email:     req.Email,
			Role:      req.Role,
			CreatedAt: now,
			UpdatedAt: now,
		})
		s.data.mu.Lock()
		s.data.passwords[user.ID] = hash
		s.data.mu.Unlock()

		s.record(r, "user", "created", user.ID, "User "+user.Email)
		writeData(w, http.StatusCreated, user)
	}
}

// LeagueDriversHandler lists the drivers entered in a league.
func (s *Server) LeagueDriversHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, ok := pathID(r)
		if !ok {
			writeNotFound(w)
			return
		}
		if _, ok := s.data.leagues.get(leagueID); !ok {
			writeNotFound(w)
			return
		}
		s.data.mu.Lock()
		entries := slices.Clone(s.data.memberships[leagueID])
		s.data.mu.Unlock()

		entered := make([]drivers.Driver, 0, len(entries))
		for _, m := range entries {
			if d, ok := s.data.drivers.get(m.DriverID); ok {
				if m.RacingNumber != nil {
					d.RacingNumber = m.RacingNumber
				}
				entered = append(entered, d)
			}
		}
		writeJSON(w, http.StatusOK, paginate(entered, r.URL.Query(), r.URL.Path))
	}
}

func (s *Server) AddLeagueDriverHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, ok := pathID(r)
		if !ok {
			writeNotFound(w)
			return
		}
		league, ok := s.data.leagues.get(leagueID)
		if !ok {
			writeNotFound(w)
			return
		}
		var m leagues.Membership
		if err := decodeJSON(r, &m); err != nil {
			writeMessage(w, http.StatusBadRequest, "Malformed JSON.")
			return
		}
		driver, ok := s.data.drivers.get(m.DriverID)
		if !ok {
			writeValidation(w, fieldErrors{"driver_id": {"The selected driver id is invalid."}})
			return
		}

		s.data.mu.Lock()
		entries := s.data.memberships[leagueID]
		if slices.ContainsFunc(entries, func(e leagues.Membership) bool { return e.DriverID == m.DriverID }) {
			s.data.mu.Unlock()
			writeValidation(w, fieldErrors{"driver_id": {"The driver is already entered in this league."}})
			return
		}
		s.data.memberships[leagueID] = append(entries, m)
		s.data.mu.Unlock()

		s.recountLeague(leagueID)
		s.record(r, "league", "driver_added", leagueID, driver.DisplayName()+" joined "+league.Name)
		writeSuccess(w, "Driver added")
	}
}

func (s *Server) RemoveLeagueDriverHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, ok := pathID(r)
		if !ok {
			writeNotFound(w)
			return
		}
		driverID, err := pathInt(r, "driverID")
		if err != nil {
			writeNotFound(w)
			return
		}

		s.data.mu.Lock()
		entries := s.data.memberships[leagueID]
		i := slices.IndexFunc(entries, func(e leagues.Membership) bool { return e.DriverID == driverID })
		if i < 0 {
			s.data.mu.Unlock()
			writeNotFound(w)
			return
		}
		s.data.memberships[leagueID] = slices.Delete(entries, i, i+1)
		s.data.mu.Unlock()

		s.recountLeague(leagueID)
		s.record(r, "league", "driver_removed", leagueID, "Driver removed from league")
		writeSuccess(w, "Driver removed")
	}
}

// recountLeague refreshes the cached driver count of a league.
func (s *Server) recountLeague(leagueID int) {
	s.data.mu.Lock()
	n := len(s.data.memberships[leagueID])
	s.data.mu.Unlock()
	_, _, _ = s.data.leagues.update(leagueID, func(l *leagues.League) error {
		l.DriverCount = n
		return nil
	})
}

// dropDriverMemberships removes a deleted driver from every league.
func (s *Server) dropDriverMemberships(driverID int) {
	var touched []int
	s.data.mu.Lock()
	for leagueID, entries := range s.data.memberships {
		kept := slices.DeleteFunc(entries, func(e leagues.Membership) bool { return e.DriverID == driverID })
		if len(kept) != len(entries) {
			touched = append(touched, leagueID)
		}
		s.data.memberships[leagueID] = kept
	}
	s.data.mu.Unlock()
	for _, leagueID := range touched {
		s.recountLeague(leagueID)
	}
}

func (s *Server) dropLeagueMemberships(leagueID int) {
	s.data.mu.Lock()
	delete(s.data.memberships, leagueID)
	s.data.mu.Unlock()
}

// withoutParam returns a copy of q without key.
func withoutParam(q url.Values, key string) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		if k != key {
			out[k] = v
		}
	}
	return out
}

func newUUID() string {
	return uuid.New().String()
}
