package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jrsteele09/go-league-admin/api"
	"github.com/jrsteele09/go-league-admin/auth"
	"github.com/jrsteele09/go-league-admin/contacts"
	"github.com/jrsteele09/go-league-admin/drivers"
	"github.com/jrsteele09/go-league-admin/internal/output"
	"github.com/jrsteele09/go-league-admin/leagues"
	"github.com/jrsteele09/go-league-admin/notifications"
	"github.com/jrsteele09/go-league-admin/queuestats"
	"github.com/jrsteele09/go-league-admin/siteconfig"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Sign in and show the admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()
			if _, err := a.login(ctx); err != nil {
				return err
			}
			me, err := auth.New(a.client).Me(ctx)
			if err != nil {
				return err
			}
			return a.write(me, output.Table{
				Headers: []string{"ID", "NAME", "EMAIL", "ROLE"},
				Rows:    [][]string{{strconv.Itoa(me.ID), me.Name, me.Email, string(me.Role)}},
			})
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	var (
		params  api.ListParams
		filters map[string]string
	)
	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "List a collection: " + strings.Join(resourceNames(), ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := findResource(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()
			if _, err := a.login(ctx); err != nil {
				return err
			}
			params.Filters = filters
			value, t, err := res.list(ctx, a.client, params)
			if err != nil {
				return err
			}
			return a.write(value, t)
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&params.Page, "page", 0, "Page number")
	flags.IntVar(&params.PerPage, "per-page", 0, "Results per page")
	flags.StringVar(&params.Search, "search", "", "Free text search")
	flags.StringVar(&params.Sort, "sort", "", "Sort field, prefix with - for descending")
	flags.StringToStringVar(&filters, "filter", nil, "Exact match filters, e.g. --filter status=active")
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <resource> <id>",
		Short: "Delete one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := findResource(args[0])
			if err != nil {
				return err
			}
			if res.remove == nil {
				return fmt.Errorf("%s cannot be deleted", res.name)
			}
			ctx, cancel := a.context(cmd)
			defer cancel()
			if _, err := a.login(ctx); err != nil {
				return err
			}
			if err := res.remove(ctx, a.client, args[1]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.out, "Deleted %s %s\n", strings.TrimSuffix(res.name, "s"), args[1])
			return err
		},
	}
}

func (a *app) queueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the job queues",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "stats",
			Short: "Show queue counters",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ctx, cancel := a.context(cmd)
				defer cancel()
				if _, err := a.login(ctx); err != nil {
					return err
				}
				stats, err := queuestats.New(a.client).Stats(ctx)
				if err != nil {
					return err
				}
				t := output.Table{Headers: []string{"QUEUE", "PENDING", "DELAYED"}}
				for _, q := range stats.Queues {
					t.Rows = append(t.Rows, []string{q.Name, strconv.Itoa(q.Pending), strconv.Itoa(q.Delayed)})
				}
				t.Footer = fmt.Sprintf("pending %d, processing %d, failed %d, processed %d",
					stats.Pending, stats.Processing, stats.Failed, stats.Processed)
				return a.write(stats, t)
			},
		},
		&cobra.Command{
			Use:   "retry <uuid>",
			Short: "Push a failed job back onto its queue",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := a.context(cmd)
				defer cancel()
				if _, err := a.login(ctx); err != nil {
					return err
				}
				if err := queuestats.New(a.client).RetryJob(ctx, args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintf(a.out, "Retrying job %s\n", args[0])
				return err
			},
		},
		&cobra.Command{
			Use:   "flush",
			Short: "Delete every failed job",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ctx, cancel := a.context(cmd)
				defer cancel()
				if _, err := a.login(ctx); err != nil {
					return err
				}
				if err := queuestats.New(a.client).FlushFailed(ctx); err != nil {
					return err
				}
				_, err := fmt.Fprintln(a.out, "Flushed failed jobs")
				return err
			},
		},
	)
	return cmd
}

func siteConfigTable(c siteconfig.Config) output.Table {
	return output.Table{
		Headers: []string{"SETTING", "VALUE"},
		Rows: [][]string{
			{"site_name", c.SiteName},
			{"tagline", c.Tagline},
			{"contact_email", c.ContactEmail},
			{"timezone", c.Timezone},
			{"maintenance_mode", yesNo(c.MaintenanceMode)},
			{"registration_open", yesNo(c.RegistrationOpen)},
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the site configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the public site configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()
			cfg, err := siteconfig.New(a.client).Get(ctx)
			if err != nil {
				return err
			}
			return a.write(cfg, siteConfigTable(cfg))
		},
	}

	var (
		update      siteconfig.Update
		siteName    string
		tagline     string
		email       string
		timezone    string
		maintenance bool
		register    bool
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Change site settings (super admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			setString := func(name string, value *string, dst **string) {
				if flags.Changed(name) {
					*dst = value
				}
			}
			setString("site-name", &siteName, &update.SiteName)
			setString("tagline", &tagline, &update.Tagline)
			setString("contact-email", &email, &update.ContactEmail)
			setString("timezone", &timezone, &update.Timezone)
			if flags.Changed("maintenance") {
				update.MaintenanceMode = &maintenance
			}
			if flags.Changed("registration-open") {
				update.RegistrationOpen = &register
			}
			if update.SiteName == nil && update.Tagline == nil && update.ContactEmail == nil && update.Timezone == nil &&
				update.MaintenanceMode == nil && update.RegistrationOpen == nil {
				return fmt.Errorf("nothing to change")
			}

			ctx, cancel := a.context(cmd)
			defer cancel()
			if _, err := a.login(ctx); err != nil {
				return err
			}
			cfg, err := siteconfig.New(a.client).Update(ctx, update)
			if err != nil {
				return err
			}
			return a.write(cfg, siteConfigTable(cfg))
		},
	}
	flags := set.Flags()
	flags.StringVar(&siteName, "site-name", "", "Site name")
	flags.StringVar(&tagline, "tagline", "", "Tagline")
	flags.StringVar(&email, "contact-email", "", "Contact email")
	flags.StringVar(&timezone, "timezone", "", "IANA timezone")
	flags.BoolVar(&maintenance, "maintenance", false, "Maintenance mode")
	flags.BoolVar(&register, "registration-open", false, "Allow new registrations")

	cmd.AddCommand(show, set)
	return cmd
}

// Dashboard is the overview shown by the dashboard command.
type Dashboard struct {
	Leagues             int              `json:"leagues"`
	Drivers             int              `json:"drivers"`
	UnreadContacts      int              `json:"unread_contacts"`
	UnreadNotifications int              `json:"unread_notifications"`
	Queue               queuestats.Stats `json:"queue"`
}

func (d Dashboard) table() output.Table {
	health := "healthy"
	if !d.Queue.Healthy() {
		health = fmt.Sprintf("%d failed", d.Queue.Failed)
	}
	return output.Table{
		Headers: []string{"METRIC", "VALUE"},
		Rows: [][]string{
			{"Leagues", strconv.Itoa(d.Leagues)},
			{"Drivers", strconv.Itoa(d.Drivers)},
			{"Unread contacts", strconv.Itoa(d.UnreadContacts)},
			{"Unread notifications", strconv.Itoa(d.UnreadNotifications)},
			{"Pending jobs", strconv.Itoa(d.Queue.Pending)},
			{"Queue", health},
		},
	}
}

// loadDashboard fetches every figure concurrently. The first failure cancels the rest.
func loadDashboard(ctx context.Context, r api.Requester) (Dashboard, error) {
	var d Dashboard
	one := api.ListParams{PerPage: 1}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		page, err := leagues.New(r).List(ctx, one)
		if err == nil {
			d.Leagues = page.Meta.Total
		}
		return err
	})
	g.Go(func() error {
		page, err := drivers.New(r).List(ctx, one)
		if err == nil {
			d.Drivers = page.Meta.Total
		}
		return err
	})
	g.Go(func() error {
		page, err := contacts.New(r).List(ctx, one, true)
		if err == nil {
			d.UnreadContacts = page.Meta.Total
		}
		return err
	})
	g.Go(func() error {
		n, err := notifications.New(r).UnreadCount(ctx)
		d.UnreadNotifications = n
		return err
	})
	g.Go(func() error {
		stats, err := queuestats.New(r).Stats(ctx)
		d.Queue = stats
		return err
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show an overview of the platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()
			if _, err := a.login(ctx); err != nil {
				return err
			}
			d, err := loadDashboard(ctx, a.client)
			if err != nil {
				return err
			}
			return a.write(d, d.table())
		},
	}
}
