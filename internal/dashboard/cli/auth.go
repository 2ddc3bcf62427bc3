package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabwave/userdash/internal/dashboard/app"
	"github.com/tabwave/userdash/pkg/usersdk"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			if a.Session.IsAuthenticated() {
				user := a.Session.User()
				fmt.Printf("Already signed in as %s. Run `userdash logout` first to switch accounts.\n", user.Email)
				return nil
			}

			email, err := prompt("Email", true)
			if err != nil {
				return err
			}
			password, err := prompt("Password", false)
			if err != nil {
				return err
			}

			if !a.Session.Login(ctx, email, password) {
				return errors.New("sign in failed, check your credentials and try again")
			}

			fmt.Printf("Signed in as %s.\n", a.Session.User().Username)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the persisted session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			a.Session.Logout(ctx)
			fmt.Println("Signed out.")
			return nil
		})
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			req, err := promptUserDetails()
			if err != nil {
				return err
			}

			if !a.Session.Register(ctx, req) {
				return errors.New("registration failed")
			}

			fmt.Printf("Account created for %s. Run `userdash login` to sign in.\n", req.Email)
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account's profile.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			user := a.Session.User()
			if user == nil {
				return errors.New("not signed in, run `userdash login` first")
			}

			printUser(user)
			return nil
		})
	},
}

// promptUserDetails collects the fields shared by register and users
// create.
func promptUserDetails() (usersdk.CreateUserRequest, error) {
	var req usersdk.CreateUserRequest
	var err error

	if req.Email, err = prompt("Email", true); err != nil {
		return req, err
	}
	if req.Username, err = prompt("Username", true); err != nil {
		return req, err
	}
	if req.Password, err = prompt("Password", false); err != nil {
		return req, err
	}
	if req.FirstName, err = prompt("First name (optional)", true); err != nil {
		return req, err
	}
	if req.LastName, err = prompt("Last name (optional)", true); err != nil {
		return req, err
	}

	return req, nil
}
