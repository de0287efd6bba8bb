package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/jrsteele09/go-league-admin/api"
	"github.com/jrsteele09/go-league-admin/auth"
	"github.com/jrsteele09/go-league-admin/internal/config"
	"github.com/jrsteele09/go-league-admin/internal/logging"
	"github.com/jrsteele09/go-league-admin/internal/output"
	"github.com/jrsteele09/go-league-admin/transport"
	"github.com/jrsteele09/go-league-admin/users"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app is the state shared by every command: flags, the API client and the output writer.
type app struct {
	out      io.Writer
	baseURL  string
	email    string
	password string
	format   string
	logLevel string
	timeout  time.Duration

	outputFormat output.Format
	client       *transport.Client
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out}
	root := &cobra.Command{
		Use:           "leaguectl",
		Short:         "Administer a sim racing league platform from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(errOut)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.baseURL, "base-url", "", "API base url (default $LEAGUE_BASE_URL)")
	flags.StringVar(&a.email, "email", os.Getenv("LEAGUE_EMAIL"), "Admin email (or set LEAGUE_EMAIL)")
	flags.StringVar(&a.password, "password", os.Getenv("LEAGUE_PASSWORD"), "Admin password (or set LEAGUE_PASSWORD)")
	flags.StringVarP(&a.format, "output", "o", string(output.FormatTable), "Output format: table, json, yaml or csv")
	flags.StringVar(&a.logLevel, "log-level", "warn", "Log level")
	flags.DurationVar(&a.timeout, "timeout", 30*time.Second, "Timeout for the whole command")

	root.AddCommand(
		a.whoamiCmd(),
		a.listCmd(),
		a.deleteCmd(),
		a.queueCmd(),
		a.configCmd(),
		a.dashboardCmd(),
	)
	return root
}

func (a *app) setup(errOut io.Writer) error {
	logging.SetupWriter(errOut, a.logLevel, "DEV")

	format, err := output.ParseFormat(a.format)
	if err != nil {
		return err
	}
	a.outputFormat = format

	cfg, err := config.NewClient()
	if err != nil {
		return err
	}
	if a.baseURL != "" {
		cfg.BaseURL = a.baseURL
	}
	client, err := transport.New(cfg, transport.WithLogger(log.Logger))
	if err != nil {
		return err
	}
	a.client = client
	return nil
}

// context bounds a command by --timeout.
func (a *app) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.timeout)
}

// login signs in with an admin account. Every command except config show needs it.
func (a *app) login(ctx context.Context) (users.User, error) {
	if a.email == "" || a.password == "" {
		return users.User{}, errors.New("credentials required: pass --email and --password or set LEAGUE_EMAIL and LEAGUE_PASSWORD")
	}
	return auth.New(a.client).LoginAdmin(ctx, auth.Credentials{Email: a.email, Password: a.password})
}

func (a *app) write(value any, t output.Table) error {
	return output.Write(a.out, a.outputFormat, value, t)
}

// describeError turns API errors into one readable message, listing validation failures per field.
func describeError(err error) string {
	var verr *api.ValidationError
	if errors.As(err, &verr) {
		var b strings.Builder
		b.WriteString(verr.Message)
		for _, field := range slices.Sorted(maps.Keys(verr.Fields)) {
			for _, msg := range verr.Fields[field] {
				fmt.Fprintf(&b, "\n  %s: %s", field, msg)
			}
		}
		return b.String()
	}
	switch {
	case errors.Is(err, auth.ErrNotAdmin):
		return "this account has no admin role"
	case auth.IsUnauthenticated(err):
		return "not signed in: check the credentials"
	case transport.IsCancelled(err):
		return "cancelled: " + err.Error()
	}
	return err.Error()
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describeError(err))
		os.Exit(1)
	}
}
