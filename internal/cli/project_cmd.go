package cli

import (
	"fmt"

	"github.com/alexanderramin/kanri/internal/cli/formatter"
	"github.com/alexanderramin/kanri/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Create(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROJECT",
		Short: "Show a project's board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Board.GetProject(ctx, projectID)
			if err != nil {
				return err
			}
			cols, err := app.Board.ListColumns(ctx, projectID)
			if err != nil {
				return err
			}
			cards, err := app.Board.ListCards(ctx, projectID)
			if err != nil {
				return err
			}
			tags, err := app.Board.ListTags(ctx, projectID)
			if err != nil {
				return err
			}
			users, err := app.Board.ListUsers(ctx)
			if err != nil {
				return err
			}

			view := formatter.BoardView{
				Project: p,
				Columns: cols,
				Cards:   make(map[string]*domain.Card, len(cards)),
				Tags:    make(map[string]*domain.Tag, len(tags)),
				Users:   make(map[string]*domain.User, len(users)),
			}
			for _, c := range cards {
				view.Cards[c.ID] = c
			}
			for _, t := range tags {
				view.Tags[t.ID] = t
			}
			for _, u := range users {
				view.Users[u.ID] = u
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBoard(view))
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROJECT",
		Short: "Remove a project and everything on its board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, projectID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s\n", domain.ShortID(projectID))
			return nil
		},
	}
}
