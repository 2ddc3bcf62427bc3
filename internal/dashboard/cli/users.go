package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tabwave/userdash/internal/dashboard/app"
	"github.com/tabwave/userdash/pkg/usersdk"
)

var (
	listPage   int
	listLimit  int
	listSearch string

	updateFirstName string
	updateLastName  string
	updateActive    bool
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users in the directory.",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			env, err := a.Client.ListUsers(ctx, listPage, listLimit, listSearch)
			if err != nil {
				return err
			}
			if !env.Success || env.Data == nil {
				return fmt.Errorf("list users failed: %s", envelopeMessage(env.Message, env.Error))
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tUSERNAME\tACTIVE\tCREATED")
			for _, user := range *env.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n",
					user.ID, user.Email, user.Username, user.IsActive,
					user.CreatedAt.Format(time.DateOnly))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if p := env.Pagination; p != nil {
				fmt.Printf("\nPage %d of %d (%d users total)\n", p.Page, p.Pages, p.Total)
			}
			return nil
		})
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a user by ID.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			env, err := a.Client.GetUser(ctx, args[0])
			if err != nil {
				if usersdk.IsNotFound(err) {
					return fmt.Errorf("no user with id %s", args[0])
				}
				return err
			}
			if !env.Success || env.Data == nil {
				return fmt.Errorf("get user failed: %s", envelopeMessage(env.Message, env.Error))
			}

			printUser(env.Data)
			return nil
		})
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user without signing in as them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			req, err := promptUserDetails()
			if err != nil {
				return err
			}

			env, err := a.Client.CreateUser(ctx, req)
			if err != nil {
				return err
			}
			if !env.Success || env.Data == nil {
				return fmt.Errorf("create user failed: %s", envelopeMessage(env.Message, env.Error))
			}

			fmt.Printf("Created user %s (%s).\n", env.Data.Username, env.Data.ID)
			return nil
		})
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user's profile fields.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			// Only touched flags become part of the partial update.
			var req usersdk.UpdateUserRequest
			if cmd.Flags().Changed("first-name") {
				req.FirstName = &updateFirstName
			}
			if cmd.Flags().Changed("last-name") {
				req.LastName = &updateLastName
			}
			if cmd.Flags().Changed("active") {
				req.IsActive = &updateActive
			}
			if req.FirstName == nil && req.LastName == nil && req.IsActive == nil {
				return errors.New("nothing to update, pass at least one of --first-name, --last-name, --active")
			}

			env, err := a.Client.UpdateUser(ctx, args[0], req)
			if err != nil {
				return err
			}
			if !env.Success || env.Data == nil {
				return fmt.Errorf("update user failed: %s", envelopeMessage(env.Message, env.Error))
			}

			// Keep the local session in sync when editing yourself.
			if current := a.Session.User(); current != nil && current.ID == env.Data.ID {
				a.Session.UpdateUser(req)
			}

			printUser(env.Data)
			return nil
		})
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user by ID.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			env, err := a.Client.DeleteUser(ctx, args[0])
			if err != nil {
				return err
			}
			if !env.Success {
				return fmt.Errorf("delete user failed: %s", envelopeMessage(env.Message, env.Error))
			}

			if env.Data != nil && env.Data.Message != "" {
				fmt.Println(env.Data.Message)
			} else {
				fmt.Printf("Deleted user %s.\n", args[0])
			}
			return nil
		})
	},
}

func init() {
	usersListCmd.Flags().IntVar(&listPage, "page", 1, "page number")
	usersListCmd.Flags().IntVar(&listLimit, "limit", 10, "users per page")
	usersListCmd.Flags().StringVar(&listSearch, "search", "", "filter by email or username")

	usersUpdateCmd.Flags().StringVar(&updateFirstName, "first-name", "", "new first name")
	usersUpdateCmd.Flags().StringVar(&updateLastName, "last-name", "", "new last name")
	usersUpdateCmd.Flags().BoolVar(&updateActive, "active", true, "whether the account is active")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersGetCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)
}

func envelopeMessage(message, errStr string) string {
	if message != "" {
		return message
	}
	if errStr != "" {
		return errStr
	}
	return "unknown error"
}

func printUser(user *usersdk.User) {
	fmt.Printf("ID:         %s\n", user.ID)
	fmt.Printf("Email:      %s\n", user.Email)
	fmt.Printf("Username:   %s\n", user.Username)
	if user.FirstName != "" || user.LastName != "" {
		fmt.Printf("Name:       %s %s\n", user.FirstName, user.LastName)
	}
	fmt.Printf("Active:     %t\n", user.IsActive)
	if user.LastLogin != nil {
		fmt.Printf("Last login: %s\n", user.LastLogin.Format(time.RFC1123))
	}
	fmt.Printf("Created:    %s\n", user.CreatedAt.Format(time.RFC1123))
	fmt.Printf("Updated:    %s\n", user.UpdatedAt.Format(time.RFC1123))
}
