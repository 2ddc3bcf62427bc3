// Package cli implements the userdash command tree: the terminal
// rendition of the account dashboard, built on the session store and
// the user-management API client.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabwave/userdash/internal/dashboard/app"
)

var rootCmd = &cobra.Command{
	Use:           "userdash",
	Short:         "Account dashboard for the user-management service.",
	Long:          "Account dashboard for the user-management service: log in, inspect your profile, and manage users.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute invokes the command tree and exits non-zero on error.
func Execute() {
	bindSubcommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func bindSubcommands() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(usersCmd)
}

// withApp builds the Application, resumes the persisted session, runs
// fn, and releases resources. Every subcommand funnels through here so
// they all see the same startup behavior.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.Application) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.New(ctx, app.LoadConfig())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			a.Logger().Warn("failed to close credential store", "error", cerr)
		}
	}()

	a.Session.Start(ctx)

	return fn(ctx, a)
}
