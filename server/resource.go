package server

import (
	"fmt"
	"net/http"
	"time"
)

// resource describes a collection exposed as REST CRUD under path.
type resource[T any] struct {
	path    string
	subject string // activity log subject type, e.g. "driver"
	coll    *collection[T]
	// validate returns field errors for item. id is zero on create.
	validate func(item *T, id int) map[string][]string
	// prepare fills derived fields before the item is stored.
	prepare func(item *T, now time.Time, created bool)
	// describe names an item in the activity log.
	describe func(item *T) string
	// guardDelete returns a message when the current request may not delete item.
	guardDelete func(r *http.Request, item *T) string
	// removed runs after item was deleted.
	removed func(item *T)
}

func listHandler[T any](s *Server, res *resource[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, paginate(res.coll.all(), r.URL.Query(), res.path))
	}
}

func getHandler[T any](s *Server, res *resource[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeNotFound(w)
			return
		}
		item, ok := res.coll.get(id)
		if !ok {
			writeNotFound(w)
			return
		}
		writeData(w, http.StatusOK, item)
	}
}

func createHandler[T any](s *Server, res *resource[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item T
		if err := decodeJSON(r, &item); err != nil {
			writeMessage(w, http.StatusBadRequest, "Malformed JSON.")
			return
		}
		if res.validate != nil {
			if fields := res.validate(&item, 0); len(fields) > 0 {
				writeValidation(w, fields)
				return
			}
		}
		if res.prepare != nil {
			res.prepare(&item, s.now(), true)
		}
		created := res.coll.insert(item)
		s.record(r, res.subject, "created", res.coll.id(&created), res.label(&created))
		writeData(w, http.StatusCreated, created)
	}
}

// updateHandler merges the JSON body onto the stored item, so absent fields keep their values.
func updateHandler[T any](s *Server, res *resource[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeNotFound(w)
			return
		}
		merged, ok := res.coll.get(id)
		if !ok {
			writeNotFound(w)
			return
		}
		if err := decodeJSON(r, &merged); err != nil {
			writeMessage(w, http.StatusBadRequest, "Malformed JSON.")
			return
		}
		if res.validate != nil {
			if fields := res.validate(&merged, id); len(fields) > 0 {
				writeValidation(w, fields)
				return
			}
		}
		if res.prepare != nil {
			res.prepare(&merged, s.now(), false)
		}
		updated, found, err := res.coll.update(id, func(item *T) error {
			*item = merged
			return nil
		})
		if !found || err != nil {
			writeNotFound(w)
			return
		}
		s.record(r, res.subject, "updated", id, res.label(&updated))
		writeData(w, http.StatusOK, updated)
	}
}

func deleteHandler[T any](s *Server, res *resource[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeNotFound(w)
			return
		}
		if res.guardDelete != nil {
			if item, ok := res.coll.get(id); ok {
				if msg := res.guardDelete(r, &item); msg != "" {
					writeMessage(w, http.StatusForbidden, msg)
					return
				}
			}
		}
		removed, ok := res.coll.remove(id)
		if !ok {
			writeNotFound(w)
			return
		}
		if res.removed != nil {
			res.removed(&removed)
		}
		s.record(r, res.subject, "deleted", id, res.label(&removed))
		writeSuccess(w, "Deleted")
	}
}

func (res *resource[T]) label(item *T) string {
	if res.describe == nil {
		return fmt.Sprintf("%s #%d", res.subject, res.coll.id(item))
	}
	return res.describe(item)
}

// registerResource exposes the full CRUD surface of res behind mw.
func registerResource[T any](s *Server, res *resource[T], mw []Middleware) {
	s.RegisterRouteFunc("GET "+res.path, ChainMiddleware(listHandler(s, res), mw...))
	s.RegisterRouteFunc("POST "+res.path, ChainMiddleware(createHandler(s, res), mw...))
	s.RegisterRouteFunc("GET "+res.path+"/{id}", ChainMiddleware(getHandler(s, res), mw...))
	s.RegisterRouteFunc("PUT "+res.path+"/{id}", ChainMiddleware(updateHandler(s, res), mw...))
	s.RegisterRouteFunc("PATCH "+res.path+"/{id}", ChainMiddleware(updateHandler(s, res), mw...))
	s.RegisterRouteFunc("DELETE "+res.path+"/{id}", ChainMiddleware(deleteHandler(s, res), mw...))
}
