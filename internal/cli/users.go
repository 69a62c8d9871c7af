package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fabiareis/trading-journal/users"
)

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage local users and the login session",
	}
	cmd.AddCommand(
		newUserRegisterCmd(a),
		newUserLoginCmd(a),
		newUserLogoutCmd(a),
		newUserDeleteCmd(a),
		newUserUpdateCmd(a),
		newUserListCmd(a),
		newUserWhoamiCmd(a),
	)
	return cmd
}

// result prints res.Message and turns a failure into a command error.
func result(cmd *cobra.Command, res users.Result) error {
	if res.Success {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", res.Message)
		return nil
	}
	if res.Err == nil {
		return errors.New(res.Message)
	}
	return fmt.Errorf("%s: %w", res.Message, res.Err)
}

func newUserRegisterCmd(a *app) *cobra.Command {
	var fullName, username, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return result(cmd, a.users.Register(ctx(cmd), fullName, username, password))
		},
	}
	cmd.Flags().StringVar(&fullName, "name", "", "Full name")
	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	return cmd
}

func newUserLoginCmd(a *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Open a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return result(cmd, a.users.Login(ctx(cmd), username, password))
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	return cmd
}

func newUserLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Close the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return result(cmd, a.users.Logout(ctx(cmd)))
		},
	}
}

func newUserDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return result(cmd, a.users.DeleteUser(ctx(cmd), args[0]))
		},
	}
}

func newUserUpdateCmd(a *app) *cobra.Command {
	var fullName, username, password string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a user's name, username or password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var upd users.UserUpdate
			if cmd.Flags().Changed("name") {
				upd.FullName = &fullName
			}
			if cmd.Flags().Changed("username") {
				upd.Username = &username
			}
			if cmd.Flags().Changed("password") {
				upd.Password = &password
			}
			return result(cmd, a.users.UpdateUser(ctx(cmd), args[0], upd))
		},
	}
	cmd.Flags().StringVar(&fullName, "name", "", "New full name")
	cmd.Flags().StringVar(&username, "username", "", "New username")
	cmd.Flags().StringVar(&password, "password", "", "New password")
	return cmd
}

func newUserListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tUsuário\tNome\tCriado em\t")
			for _, u := range a.users.Users() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", u.ID, u.Username, u.FullName, u.CreatedAt.Format("02/01/2006 15:04"))
			}
			return tw.Flush()
		},
	}
}

func newUserWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, ok := a.users.CurrentUser()
			if !a.users.IsLoggedIn() || !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", u.FullName, u.Username)
			return nil
		},
	}
}
