package server

import (
	"sync"

	"github.com/jrsteele09/go-league-admin/activitylog"
	"github.com/jrsteele09/go-league-admin/admins"
	"github.com/jrsteele09/go-league-admin/contacts"
	"github.com/jrsteele09/go-league-admin/drivers"
	"github.com/jrsteele09/go-league-admin/leagues"
	"github.com/jrsteele09/go-league-admin/notifications"
	"github.com/jrsteele09/go-league-admin/platformcars"
	"github.com/jrsteele09/go-league-admin/queuestats"
	"github.com/jrsteele09/go-league-admin/siteconfig"
	"github.com/jrsteele09/go-league-admin/users"
)

// store is the backend's in-memory state. Collections carry their own locks, mu guards the rest.
type store struct {
	users    *collection[users.User]
	drivers  *collection[drivers.Driver]
	leagues  *collection[leagues.League]
	admins   *collection[admins.Admin]
	contacts *collection[contacts.Contact]
	cars     *collection[platformcars.Car]
	activity *collection[activitylog.Activity]

	mu            sync.Mutex
	passwords     map[int]string // user id -> bcrypt hash
	memberships   map[int][]leagues.Membership
	notifications []notifications.Notification
	siteConfig    siteconfig.Config
	queue         queuestats.Stats
	failedJobs    []queuestats.FailedJob
}

func newStore() *store {
	return &store{
		users: newCollection(
			func(u *users.User) int { return u.ID },
			func(u *users.User, id int) { u.ID = id }),
		drivers: newCollection(
			func(d *drivers.Driver) int { return d.ID },
			func(d *drivers.Driver, id int) { d.ID = id }),
		leagues: newCollection(
			func(l *leagues.League) int { return l.ID },
			func(l *leagues.League, id int) { l.ID = id }),
		admins: newCollection(
			func(a *admins.Admin) int { return a.ID },
			func(a *admins.Admin, id int) { a.ID = id }),
		contacts: newCollection(
			func(c *contacts.Contact) int { return c.ID },
			func(c *contacts.Contact, id int) { c.ID = id }),
		cars: newCollection(
			func(c *platformcars.Car) int { return c.ID },
			func(c *platformcars.Car, id int) { c.ID = id }),
		activity: newCollection(
			func(a *activitylog.Activity) int { return a.ID },
			func(a *activitylog.Activity, id int) { a.ID = id }),
		passwords:   make(map[int]string),
		memberships: make(map[int][]leagues.Membership),
	}
}
