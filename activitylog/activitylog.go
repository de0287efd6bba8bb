package activitylog

import (
	"context"
	"strconv"
	"time"

	"github.com/jrsteele09/go-league-admin/api"
)

const basePath = "/activity-logs"

// Activity is one audit entry: who (causer) did what (event) to which record (subject).
type Activity struct {
	ID          int            `json:"id"`
	LogName     string         `json:"log_name"`
	Description string         `json:"description"`
	Event       string         `json:"event"`
	SubjectType string         `json:"subject_type,omitempty"`
	SubjectID   *int           `json:"subject_id,omitempty"`
	CauserID    *int           `json:"causer_id,omitempty"`
	CauserName  string         `json:"causer_name,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Filter narrows the log. Zero fields are ignored.
type Filter struct {
	api.ListParams
	LogName     string
	Event       string
	SubjectType string
	CauserID    int
}

func (f Filter) params() api.ListParams {
	p := f.ListParams
	if f.LogName != "" {
		p = p.With("log_name", f.LogName)
	}
	if f.Event != "" {
		p = p.With("event", f.Event)
	}
	if f.SubjectType != "" {
		p = p.With("subject_type", f.SubjectType)
	}
	if f.CauserID != 0 {
		p = p.With("causer_id", strconv.Itoa(f.CauserID))
	}
	return p
}

type Service struct {
	col *api.Collection[Activity]
}

func New(r api.Requester) *Service {
	return &Service{col: api.NewCollection[Activity](r, basePath)}
}

func (s *Service) List(ctx context.Context, f Filter) (*api.Page[Activity], error) {
	return s.col.List(ctx, f.params())
}

func (s *Service) Get(ctx context.Context, id int) (Activity, error) {
	return s.col.Get(ctx, id)
}
