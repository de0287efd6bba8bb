package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/go-league-admin/activitylog"
	"github.com/jrsteele09/go-league-admin/admins"
	"github.com/jrsteele09/go-league-admin/api"
	"github.com/jrsteele09/go-league-admin/contacts"
	"github.com/jrsteele09/go-league-admin/drivers"
	"github.com/jrsteele09/go-league-admin/internal/output"
	"github.com/jrsteele09/go-league-admin/leagues"
	"github.com/jrsteele09/go-league-admin/notifications"
	"github.com/jrsteele09/go-league-admin/platformcars"
	"github.com/jrsteele09/go-league-admin/queuestats"
	"github.com/jrsteele09/go-league-admin/users"
)

const timeLayout = "2006-01-02 15:04"

// resource is a listable (and optionally deletable) API collection.
type resource struct {
	name    string
	aliases []string
	list    func(ctx context.Context, r api.Requester, p api.ListParams) (any, output.Table, error)
	// remove is nil for collections the CLI cannot delete from.
	remove func(ctx context.Context, r api.Requester, id string) error
}

// pageLister adapts a service's paginated List to resource.list.
func pageLister[T any](headers []string, list func(context.Context, api.Requester, api.ListParams) (*api.Page[T], error), row func(T) []string) func(context.Context, api.Requester, api.ListParams) (any, output.Table, error) {
	return func(ctx context.Context, r api.Requester, p api.ListParams) (any, output.Table, error) {
		page, err := list(ctx, r, p)
		if err != nil {
			return nil, output.Table{}, err
		}
		t := output.Table{Headers: headers, Footer: pageFooter(page.Meta)}
		for _, item := range page.Data {
			t.Rows = append(t.Rows, row(item))
		}
		return page, t, nil
	}
}

// intRemover parses the id for collections keyed by integers.
func intRemover(remove func(context.Context, api.Requester, int) error) func(context.Context, api.Requester, string) error {
	return func(ctx context.Context, r api.Requester, raw string) error {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			return fmt.Errorf("invalid id %q", raw)
		}
		return remove(ctx, r, id)
	}
}

func pageFooter(m api.Meta) string {
	if m.Total == 0 {
		return ""
	}
	return fmt.Sprintf("%d-%d of %d (page %d of %d)", m.From, m.To, m.Total, m.CurrentPage, m.LastPage)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func when(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func optionalInt(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}

var resources = []resource{
	{
		name: "drivers",
		list: pageLister([]string{"ID", "NAME", "NUMBER", "NATIONALITY", "STATUS"},
			func(ctx context.Context, r api.Requester, p api.ListParams) (*api.Page[drivers.Driver], error) {
				return drivers.New(r).List(ctx, p)
			},
			func(d drivers.Driver) []string {
				return []string{strconv.Itoa(d.ID), d.DisplayName(), optionalInt(d.RacingNumber), d.Nationality, string(d.Status)}
			}),
		remove: intRemover(func(ctx context.Context, r api.Requester, id int) error { return drivers.New(r).Delete(ctx, id) }),
	},
	{
		name: "leagues",
		list: pageLister([]string{"ID", "NAME", "SLUG", "PLATFORMS", "DRIVERS", "ACTIVE"},
			func(ctx context.Context, r api.Requester, p api.ListParams) (*api.Page[leagues.League], error) {
				return leagues.New(r).List(ctx, p)
			},
			func(l leagues.League) []string {
				return []string{strconv.Itoa(l.ID), l.Name, l.Slug, strings.Join(l.Platforms, ","), strconv.Itoa(l.DriverCount), yesNo(l.IsActive)}
			}),
		remove: intRemover(func(ctx context.Context, r api.Requester, id int) error { return leagues.New(r).Delete(ctx, id) }),
	},
	{
		name: "users",
		list: pageLister([]string{"ID", "NAME", "EMAIL", "ROLE", "VERIFIED"},
			func(ctx context.Context, r api.Requester, p api.ListParams) (*api.Page[users.User], error) {
				return users.New(r).List(ctx, p)
			},
			func(u users.User) []string {
				return []string{strconv.Itoa(u.ID), u.Name, u.Email, string(u.Role), yesNo(u.Verified())}
			}),
		remove: intRemover(func(ctx context.Context, r api.Requester, id int) error { return users.New(r).Delete(ctx, id) }),
	},
	{
		name: "admins",
		list: pageLister([]string{"ID", "NAME", "EMAIL", "ROLE", "STATUS", "LAST LOGIN"},
			func(ctx context.Context, r api.Requester, p api.ListParams) (*api.Page[admins.Admin], error) {
				return admins.New(r).List(ctx, p)
			},
			func(a admins.Admin) []string {
				return []string{strconv.Itoa(a.ID), a.Name, a.Email, string(a.Role), string(a.Status), when(a.LastLoginAt)}
			}),
		remove: intRemover(func(ctx context.Context, r api.Requester, id int) error { return admins.New(r).Delete(ctx, id) }),
	},
	{
		name: "contacts",
		list: pageLister([]string{"ID", "FROM", "SUBJECT", "RECEIVED", "READ"},
			func(ctx context.Context, r api.Requester, p api.ListParams) (*api.Page[contacts.Contact], error) {
				return contacts.New(r).List(ctx, p, false)
			},
			func(c contacts.Contact) []string {
				return []string{strconv.Itoa(c.ID), c.Name + " <" + c.Email + ">", c.Subject, when(&c.CreatedAt), yesNo(c.IsRead())}
			}),
		remove: intRemover(func(ctx context.Context, r api.Requester, id int) error { return contacts.New(r).Delete(ctx, id) }),
	},
	{
		name: "notifications",
		list: pageLister([]string{"ID", "TYPE", "TITLE", "CREATED", "READ"},
			func(ctx context.Context, r api.Requester, p api.ListParams) (*api.Page[notifications.Notification], error) {
				return notifications.New(r).List(ctx, p)
			},
			func(n notifications.Notification) []string {
				return []string{n.ID, n.Type, n.Title, when(&n.CreatedAt), yesNo(n.IsRead())}
			}),
		remove: func(ctx context.Context, r api.Requester, id string) error { return notifications.New(r).Delete(ctx, id) },
	},
	{
		name:    "activity",
		aliases: []string{"activity-logs"},
		list: pageLister([]string{"ID", "WHEN", "LOG", "EVENT", "DESCRIPTION", "BY"},
			func(ctx context.Context, r api.Requester, p api.ListParams) (*api.Page[activitylog.Activity], error) {
				return activitylog.New(r).List(ctx, activitylog.Filter{ListParams: p})
			},
			func(a activitylog.Activity) []string {
				return []string{strconv.Itoa(a.ID), when(&a.CreatedAt), a.LogName, a.Event, a.Description, a.CauserName}
			}),
	},
	{
		name:    "cars",
		aliases: []string{"platform-cars"},
		list: pageLister([]string{"ID", "PLATFORM", "NAME", "CLASS", "YEAR", "ACTIVE"},
			func(ctx context.Context, r api.Requester, p api.ListParams) (*api.Page[platformcars.Car], error) {
				return platformcars.New(r).List(ctx, "", p)
			},
			func(c platformcars.Car) []string {
				return []string{strconv.Itoa(c.ID), c.Platform, strings.TrimSpace(c.Manufacturer + " " + c.Name), c.CarClass, strconv.Itoa(c.Year), yesNo(c.IsActive)}
			}),
		remove: intRemover(func(ctx context.Context, r api.Requester, id int) error { return platformcars.New(r).Delete(ctx, id) }),
	},
	{
		name:    "failed-jobs",
		aliases: []string{"failed"},
		list: pageLister([]string{"UUID", "QUEUE", "JOB", "FAILED AT", "EXCEPTION"},
			func(ctx context.Context, r api.Requester, p api.ListParams) (*api.Page[queuestats.FailedJob], error) {
				return queuestats.New(r).FailedJobs(ctx, p)
			},
			func(j queuestats.FailedJob) []string {
				return []string{j.UUID, j.Queue, j.Job, when(&j.FailedAt), j.Exception}
			}),
	},
}

func findResource(name string) (resource, error) {
	name = strings.ToLower(name)
	for _, r := range resources {
		if r.name == name {
			return r, nil
		}
		for _, alias := range r.aliases {
			if alias == name {
				return r, nil
			}
		}
	}
	return resource{}, fmt.Errorf("unknown resource %q (want one of %s)", name, strings.Join(resourceNames(), ", "))
}

func resourceNames() []string {
	names := make([]string, 0, len(resources))
	for _, r := range resources {
		names = append(names, r.name)
	}
	return names
}
