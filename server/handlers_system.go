package server

import (
	"net/http"
	"slices"
	"time"

	"github.com/jrsteele09/go-league-admin/activitylog"
	"github.com/jrsteele09/go-league-admin/queuestats"
	"github.com/jrsteele09/go-league-admin/siteconfig"
)

func (s *Server) SiteConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.data.mu.Lock()
		cfg := s.data.siteConfig
		s.data.mu.Unlock()
		writeData(w, http.StatusOK, cfg)
	}
}

// UpdateSiteConfigHandler applies the non-nil fields of a siteconfig.Update.
func (s *Server) UpdateSiteConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in siteconfig.Update
		if err := decodeJSON(r, &in); err != nil {
			writeMessage(w, http.StatusBadRequest, "Malformed JSON.")
			return
		}
		fields := fieldErrors{}
		if in.SiteName != nil {
			required(fields, "site_name", *in.SiteName)
		}
		if in.ContactEmail != nil {
			validEmail(fields, "contact_email", *in.ContactEmail)
		}
		if in.Timezone != nil {
			if _, err := time.LoadLocation(*in.Timezone); err != nil {
				fields.add("timezone", "The timezone must be a valid zone.")
			}
		}
		if len(fields) > 0 {
			writeValidation(w, fields)
			return
		}

		s.data.mu.Lock()
		cfg := &s.data.siteConfig
		setIfPresent(&cfg.SiteName, in.SiteName)
		setIfPresent(&cfg.Tagline, in.Tagline)
		setIfPresent(&cfg.ContactEmail, in.ContactEmail)
		setIfPresent(&cfg.Timezone, in.Timezone)
		setIfPresent(&cfg.MaintenanceMode, in.MaintenanceMode)
		setIfPresent(&cfg.RegistrationOpen, in.RegistrationOpen)
		if in.SocialLinks != nil {
			cfg.SocialLinks = in.SocialLinks
		}
		updated := *cfg
		s.data.mu.Unlock()

		s.record(r, "site_config", "updated", 0, "Site configuration updated")
		writeData(w, http.StatusOK, updated)
	}
}

func setIfPresent[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (s *Server) QueueStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.data.mu.Lock()
		stats := s.data.queue
		stats.Queues = slices.Clone(stats.Queues)
		stats.Failed = len(s.data.failedJobs)
		s.data.mu.Unlock()
		writeData(w, http.StatusOK, stats)
	}
}

// FailedJobsHandler lists failed jobs, most recent failure first.
func (s *Server) FailedJobsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.data.mu.Lock()
		jobs := slices.Clone(s.data.failedJobs)
		s.data.mu.Unlock()
		slices.SortStableFunc(jobs, func(a, b queuestats.FailedJob) int { return b.FailedAt.Compare(a.FailedAt) })
		writeJSON(w, http.StatusOK, paginate(jobs, r.URL.Query(), RouteQueueFailed))
	}
}

// RetryJobHandler moves a failed job back onto its queue.
func (s *Server) RetryJobHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("uuid")
		s.data.mu.Lock()
		i := slices.IndexFunc(s.data.failedJobs, func(j queuestats.FailedJob) bool { return j.UUID == id })
		if i < 0 {
			s.data.mu.Unlock()
			writeNotFound(w)
			return
		}
		job := s.data.failedJobs[i]
		s.data.failedJobs = slices.Delete(s.data.failedJobs, i, i+1)
		s.data.queue.Pending++
		for q := range s.data.queue.Queues {
			if s.data.queue.Queues[q].Name == job.Queue {
				s.data.queue.Queues[q].Pending++
			}
		}
		s.data.mu.Unlock()

		s.record(r, "queue", "retried", job.ID, "Retried job "+job.Job)
		writeSuccess(w, "The failed job has been pushed back onto the queue.")
	}
}

func (s *Server) FlushFailedJobsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.data.mu.Lock()
		s.data.failedJobs = nil
		s.data.mu.Unlock()
		s.record(r, "queue", "flushed", 0, "Flushed failed jobs")
		writeSuccess(w, "All failed jobs deleted successfully.")
	}
}

// ActivityListHandler returns the audit log newest first.
func (s *Server) ActivityListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := s.data.activity.all()
		slices.Reverse(items)
		writeJSON(w, http.StatusOK, paginate(items, r.URL.Query(), RouteActivityLogs))
	}
}

func (s *Server) ActivityGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeNotFound(w)
			return
		}
		entry, ok := s.data.activity.get(id)
		if !ok {
			writeNotFound(w)
			return
		}
		writeData[activitylog.Activity](w, http.StatusOK, entry)
	}
}
