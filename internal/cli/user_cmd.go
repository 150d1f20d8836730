package cli

import (
	"fmt"

	"github.com/alexanderramin/kanri/internal/cli/formatter"
	"github.com/alexanderramin/kanri/internal/domain"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(newUserAddCmd(app), newUserListCmd(app))
	return cmd
}

func newUserAddCmd(app *App) *cobra.Command {
	var name string
	var admin bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Users.Create(cmd.Context(), name, admin)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s [%s]\n", u.Name, domain.ShortID(u.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "User name")
	cmd.Flags().BoolVar(&admin, "admin", false, "Grant administrator rights")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Users.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUserList(users))
			return nil
		},
	}
}
