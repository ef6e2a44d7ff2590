package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/hongminglow/society-be/internal/models"
	"github.com/hongminglow/society-be/internal/session"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "societyctl:", err)
		os.Exit(1)
	}
}

type options struct {
	server      string
	sessionFile string
}

func (o *options) client() (*session.Client, error) {
	path := o.sessionFile
	if path == "" {
		var err error
		if path, err = session.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return session.NewClient(o.server, session.NewFileStore(path)), nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "societyctl",
		Short:         "Command line client for the society management backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.server, "server", envOr("SOCIETY_SERVER", "http://localhost:8080"), "backend base URL")
	root.PersistentFlags().StringVar(&opts.sessionFile, "session-file", os.Getenv("SOCIETY_SESSION_FILE"), "where the session is stored")

	root.AddCommand(newLoginCmd(opts), newLogoutCmd(opts), newWhoamiCmd(opts), newNoticesCmd(opts), newTotalCmd(opts))
	return root
}

func newLoginCmd(opts *options) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			if current, err := client.Current(); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "already logged in as %s (%s)\n", current.UserID, current.Role)
				return nil
			}

			outcome := client.Login(cmd.Context(), email, password)
			if outcome.Err != nil {
				return outcome.Err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s)\n", outcome.Session.UserID, outcome.Session.Role)
			if outcome.Route != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "landing view: %s\n", outcome.Route)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			return client.Logout()
		},
	}
}

func newWhoamiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			current, err := client.Current()
			if errors.Is(err, session.ErrNoSession) {
				return errors.New("not logged in")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", current.UserID, current.Role)
			return nil
		},
	}
}

func newNoticesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "notices",
		Short: "List notices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var notices []models.Notice
			if err := fetch(cmd.Context(), opts, "/api/secretary/fetchnotices", &notices); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(notices)
		},
	}
}

func newTotalCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Print the sum of all fund transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var total decimal.Decimal
			if err := fetch(cmd.Context(), opts, "/api/secretary/TotalFunds", &total); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), total.String())
			return nil
		},
	}
}

func fetch(ctx context.Context, opts *options, path string, out any) error {
	client, err := opts.client()
	if err != nil {
		return err
	}
	err = client.Do(ctx, http.MethodGet, path, nil, out)
	if session.IsUnauthorized(err) {
		return fmt.Errorf("%w; run `societyctl login` first", err)
	}
	return err
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
