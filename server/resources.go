package server

import (
	"fmt"
	"net/http"
	"net/mail"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/jrsteele09/go-league-admin/admins"
	"github.com/jrsteele09/go-league-admin/contacts"
	"github.com/jrsteele09/go-league-admin/drivers"
	"github.com/jrsteele09/go-league-admin/leagues"
	"github.com/jrsteele09/go-league-admin/platformcars"
	"github.com/jrsteele09/go-league-admin/users"
)

var (
	knownPlatforms = []string{"acc", "iracing", "gt7", "ac", "lmu", "f1"}
	slugUnsafe     = regexp.MustCompile(`[^a-z0-9]+`)
)

type fieldErrors map[string][]string

func (f fieldErrors) add(field, message string) {
	f[field] = append(f[field], message)
}

func required(f fieldErrors, field, value string) {
	if strings.TrimSpace(value) == "" {
		f.add(field, fmt.Sprintf("The %s field is required.", strings.ReplaceAll(field, "_", " ")))
	}
}

func validEmail(f fieldErrors, field, value string) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		f.add(field, fmt.Sprintf("The %s must be a valid email address.", field))
	}
}

func slugify(name string) string {
	return strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

func (s *Server) userResource() *resource[users.User] {
	return &resource[users.User]{
		path:    RouteUsers,
		subject: "user",
		coll:    s.data.users,
		validate: func(u *users.User, id int) map[string][]string {
			f := fieldErrors{}
			required(f, "name", u.Name)
			required(f, "email", u.Email)
			validEmail(f, "email", u.Email)
			if !u.Role.Valid() {
				f.add("role", "The selected role is invalid.")
			}
			if _, taken := s.data.users.find(func(other *users.User) bool {
				return other.ID != id && strings.EqualFold(other.Email, u.Email)
			}); taken {
				f.add("email", "The email has already been taken.")
			}
			return f
		},
		prepare: func(u *users.User, now time.Time, created bool) {
			u.Email = strings.ToLower(strings.TrimSpace(u.Email))
			stamp(&u.CreatedAt, &u.UpdatedAt, now, created)
		},
		describe: func(u *users.User) string { return "User " + u.Email },
		guardDelete: func(r *http.Request, u *users.User) string {
			if session, ok := SessionFromContext(r.Context()); ok && session.UserID == u.ID {
				return "You cannot delete yourself."
			}
			return ""
		},
		removed: func(u *users.User) {
			s.data.mu.Lock()
			delete(s.data.passwords, u.ID)
			s.data.mu.Unlock()
		},
	}
}

func (s *Server) driverResource() *resource[drivers.Driver] {
	return &resource[drivers.Driver]{
		path:    RouteDrivers,
		subject: "driver",
		coll:    s.data.drivers,
		validate: func(d *drivers.Driver, id int) map[string][]string {
			f := fieldErrors{}
			if strings.TrimSpace(d.FirstName) == "" && strings.TrimSpace(d.LastName) == "" && strings.TrimSpace(d.Nickname) == "" {
				f.add("first_name", "A first name, last name or nickname is required.")
			}
			validEmail(f, "email", d.Email)
			if n := d.RacingNumber; n != nil {
				if *n < 1 || *n > 999 {
					f.add("racing_number", "The racing number must be between 1 and 999.")
				} else if _, taken := s.data.drivers.find(func(other *drivers.Driver) bool {
					return other.ID != id && other.RacingNumber != nil && *other.RacingNumber == *n
				}); taken {
					f.add("racing_number", "The racing number has already been taken.")
				}
			}
			for platform := range d.PlatformIDs {
				if !slices.Contains(knownPlatforms, platform) {
					f.add("platform_ids", fmt.Sprintf("The platform %q is not supported.", platform))
				}
			}
			switch d.Status {
			case "", drivers.StatusActive, drivers.StatusInactive, drivers.StatusBanned:
			default:
				f.add("status", "The selected status is invalid.")
			}
			return f
		},
		prepare: func(d *drivers.Driver, now time.Time, created bool) {
			if d.Status == "" {
				d.Status = drivers.StatusActive
			}
			stamp(&d.CreatedAt, &d.UpdatedAt, now, created)
		},
		describe: func(d *drivers.Driver) string { return "Driver " + d.DisplayName() },
		removed:  func(d *drivers.Driver) { s.dropDriverMemberships(d.ID) },
	}
}

func (s *Server) leagueResource() *resource[leagues.League] {
	return &resource[leagues.League]{
		path:    RouteLeagues,
		subject: "league",
		coll:    s.data.leagues,
		validate: func(l *leagues.League, id int) map[string][]string {
			f := fieldErrors{}
			required(f, "name", l.Name)
			if _, taken := s.data.leagues.find(func(other *leagues.League) bool {
				return other.ID != id && other.Slug == slugify(l.Name)
			}); taken && l.Name != "" {
				f.add("name", "The name has already been taken.")
			}
			for _, platform := range l.Platforms {
				if !slices.Contains(knownPlatforms, platform) {
					f.add("platforms", fmt.Sprintf("The platform %q is not supported.", platform))
				}
			}
			switch l.Visibility {
			case "", leagues.VisibilityPublic, leagues.VisibilityPrivate, leagues.VisibilityUnlisted:
			default:
				f.add("visibility", "The selected visibility is invalid.")
			}
			return f
		},
		prepare: func(l *leagues.League, now time.Time, created bool) {
			l.Slug = slugify(l.Name)
			if l.Visibility == "" {
				l.Visibility = leagues.VisibilityPublic
			}
			if created {
				l.IsActive = true
			}
			stamp(&l.CreatedAt, &l.UpdatedAt, now, created)
		},
		describe: func(l *leagues.League) string { return "League " + l.Name },
		removed:  func(l *leagues.League) { s.dropLeagueMemberships(l.ID) },
	}
}

func (s *Server) adminResource() *resource[admins.Admin] {
	return &resource[admins.Admin]{
		path:    RouteAdmins,
		subject: "admin",
		coll:    s.data.admins,
		validate: func(a *admins.Admin, id int) map[string][]string {
			f := fieldErrors{}
			required(f, "name", a.Name)
			required(f, "email", a.Email)
			validEmail(f, "email", a.Email)
			if a.Role != users.RoleAdmin && a.Role != users.RoleSuperAdmin {
				f.add("role", "The selected role is invalid.")
			}
			if _, taken := s.data.admins.find(func(other *admins.Admin) bool {
				return other.ID != id && strings.EqualFold(other.Email, a.Email)
			}); taken {
				f.add("email", "The email has already been taken.")
			}
			return f
		},
		prepare: func(a *admins.Admin, now time.Time, created bool) {
			a.Email = strings.ToLower(strings.TrimSpace(a.Email))
			if created {
				a.Status = admins.StatusInvited
				a.CreatedAt = now.UTC()
			}
		},
		describe: func(a *admins.Admin) string { return "Admin " + a.Email },
	}
}

func (s *Server) carResource() *resource[platformcars.Car] {
	return &resource[platformcars.Car]{
		path:    RoutePlatformCars,
		subject: "platform_car",
		coll:    s.data.cars,
		validate: func(c *platformcars.Car, id int) map[string][]string {
			f := fieldErrors{}
			required(f, "name", c.Name)
			required(f, "platform", c.Platform)
			if c.Platform != "" && !slices.Contains(knownPlatforms, c.Platform) {
				f.add("platform", fmt.Sprintf("The platform %q is not supported.", c.Platform))
			}
			if c.Year != 0 && (c.Year < 1950 || c.Year > 2100) {
				f.add("year", "The year must be between 1950 and 2100.")
			}
			return f
		},
		prepare: func(c *platformcars.Car, _ time.Time, created bool) {
			if created {
				c.IsActive = true
			}
		},
		describe: func(c *platformcars.Car) string { return c.Platform + " car " + c.Name },
	}
}

func stamp(createdAt, updatedAt *time.Time, now time.Time, created bool) {
	now = now.UTC()
	if created {
		*createdAt = now
	}
	*updatedAt = now
}

// contactResource exposes stored contact messages for get and delete. Contacts are created by the public form.
func (s *Server) contactResource() *resource[contacts.Contact] {
	return &resource[contacts.Contact]{
		path:     RouteContacts,
		subject:  "contact",
		coll:     s.data.contacts,
		describe: func(c *contacts.Contact) string { return "Contact from " + c.Email },
	}
}
