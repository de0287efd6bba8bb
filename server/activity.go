package server

import (
	"net/http"

	"github.com/jrsteele09/go-league-admin/activitylog"
	"github.com/jrsteele09/go-league-admin/internal/utils"
	"github.com/jrsteele09/go-league-admin/server/loginsession"
)

// record appends an activity entry caused by the request's session user.
func (s *Server) record(r *http.Request, subject, event string, subjectID int, description string) {
	session, _ := SessionFromContext(r.Context())
	s.recordAs(session, subject, event, subject, subjectID, description)
}

func (s *Server) recordAs(session loginsession.Session, logName, event, subjectType string, subjectID int, description string) {
	entry := activitylog.Activity{
		LogName:     logName,
		Description: description,
		Event:       event,
		SubjectType: subjectType,
		CreatedAt:   s.now().UTC(),
	}
	if subjectID != 0 {
		entry.SubjectID = utils.Ptr(subjectID)
	}
	if session.Authenticated() {
		entry.CauserID = utils.Ptr(session.UserID)
		entry.CauserName = session.Name
	}
	s.data.activity.insert(entry)
	s.logger.Debug().Str("log", logName).Str("event", event).Int("subject_id", subjectID).Msg(description)
}
