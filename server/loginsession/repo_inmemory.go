package loginsession

import (
	"sync"
	"time"

	"github.com/jrsteele09/go-league-admin/internal/errors"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo keeps sessions in a map. Everything is lost on restart.
type InMemoryRepo struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		sessions: make(map[string]Session),
	}
}

func (r *InMemoryRepo) Upsert(session Session) error {
	if session.ID == "" {
		return errors.Wrapf(errors.ErrInvalidID, "[loginsession.Upsert] session id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

func (r *InMemoryRepo) Get(sessionID string) (Session, error) {
	if sessionID == "" {
		return Session{}, errors.Wrapf(errors.ErrInvalidID, "[loginsession.Get] session id is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return Session{}, errors.Wrapf(errors.ErrSessionNotFound, "[loginsession.Get] session %q", sessionID)
	}
	return session, nil
}

func (r *InMemoryRepo) Delete(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

func (r *InMemoryRepo) DeleteExpired(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		if session.Expired(now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
