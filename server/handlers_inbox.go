package server

import (
	"cmp"
	"net/http"
	"slices"
	"strings"

	"github.com/jrsteele09/go-league-admin/contacts"
	"github.com/jrsteele09/go-league-admin/internal/utils"
	"github.com/jrsteele09/go-league-admin/notifications"
)

// ContactSubmitHandler accepts the public contact form and raises an admin notification.
func (s *Server) ContactSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in contacts.Submission
		if err := decodeJSON(r, &in); err != nil {
			writeMessage(w, http.StatusBadRequest, "Malformed JSON.")
			return
		}
		fields := fieldErrors{}
		required(fields, "name", in.Name)
		required(fields, "email", in.Email)
		validEmail(fields, "email", in.Email)
		required(fields, "message", in.Message)
		if len(in.Message) > 5000 {
			fields.add("message", "The message may not be greater than 5000 characters.")
		}
		if len(fields) > 0 {
			writeValidation(w, fields)
			return
		}

		contact := s.data.contacts.insert(contacts.Contact{
			Name:      strings.TrimSpace(in.Name),
			Email:     strings.TrimSpace(in.Email),
			Subject:   strings.TrimSpace(in.Subject),
			Message:   in.Message,
			CreatedAt: s.now().UTC(),
		})
		s.notify("contact.received", "New contact message", contact.Name+": "+cmp.Or(contact.Subject, "(no subject)"),
			map[string]any{"contact_id": contact.ID})
		writeData(w, http.StatusCreated, contact)
	}
}

// ContactListHandler lists the inbox; unread=1 narrows it to unread messages.
func (s *Server) ContactListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items := s.data.contacts.all()
		if q.Get("unread") == "1" {
			items = slices.DeleteFunc(items, func(c contacts.Contact) bool { return c.IsRead() })
		}
		slices.Reverse(items)
		writeJSON(w, http.StatusOK, paginate(items, withoutParam(q, "unread"), RouteContacts))
	}
}

func (s *Server) ContactMarkReadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeNotFound(w)
			return
		}
		contact, found, _ := s.data.contacts.update(id, func(c *contacts.Contact) error {
			if c.ReadAt == nil {
				c.ReadAt = utils.Ptr(s.now().UTC())
			}
			return nil
		})
		if !found {
			writeNotFound(w)
			return
		}
		writeData(w, http.StatusOK, contact)
	}
}

// notify pushes an entry onto the admin inbox.
func (s *Server) notify(kind, title, body string, data map[string]any) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	s.data.notifications = append(s.data.notifications, notifications.Notification{
		ID:        newUUID(),
		Type:      kind,
		Title:     title,
		Body:      body,
		Data:      data,
		CreatedAt: s.now().UTC(),
	})
}

// NotificationListHandler returns the inbox newest first.
func (s *Server) NotificationListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.data.mu.Lock()
		items := slices.Clone(s.data.notifications)
		s.data.mu.Unlock()
		slices.Reverse(items)
		writeJSON(w, http.StatusOK, paginate(items, r.URL.Query(), RouteNotifications))
	}
}

func (s *Server) NotificationUnreadCountHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.data.mu.Lock()
		n := 0
		for i := range s.data.notifications {
			if !s.data.notifications[i].IsRead() {
				n++
			}
		}
		s.data.mu.Unlock()
		writeData(w, http.StatusOK, map[string]int{"count": n})
	}
}

func (s *Server) NotificationMarkReadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		s.data.mu.Lock()
		i := slices.IndexFunc(s.data.notifications, func(n notifications.Notification) bool { return n.ID == id })
		if i >= 0 && s.data.notifications[i].ReadAt == nil {
			s.data.notifications[i].ReadAt = utils.Ptr(s.now().UTC())
		}
		s.data.mu.Unlock()
		if i < 0 {
			writeNotFound(w)
			return
		}
		writeSuccess(w, "Marked as read")
	}
}

func (s *Server) NotificationMarkAllReadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := s.now().UTC()
		s.data.mu.Lock()
		for i := range s.data.notifications {
			if s.data.notifications[i].ReadAt == nil {
				s.data.notifications[i].ReadAt = utils.Ptr(now)
			}
		}
		s.data.mu.Unlock()
		writeSuccess(w, "All notifications marked as read")
	}
}

func (s *Server) NotificationDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		s.data.mu.Lock()
		before := len(s.data.notifications)
		s.data.notifications = slices.DeleteFunc(s.data.notifications, func(n notifications.Notification) bool { return n.ID == id })
		removed := before != len(s.data.notifications)
		s.data.mu.Unlock()
		if !removed {
			writeNotFound(w)
			return
		}
		writeSuccess(w, "Deleted")
	}
}
