package loginsession

import (
	"time"

	"github.com/jrsteele09/go-league-admin/users"
)

// Session is a browser session. UserID is zero until the visitor logs in.
type Session struct {
	ID     string
	UserID int
	Email  string
	Name   string
	Role   users.RoleType

	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s Session) Authenticated() bool {
	return s.UserID != 0
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

type Repo interface {
	Upsert(session Session) error
	Get(sessionID string) (Session, error)
	Delete(sessionID string) error
	// DeleteExpired removes every session that expired before now and returns how many went.
	DeleteExpired(now time.Time) int
}
