package cli

import (
	"fmt"

	"github.com/alexanderramin/kanri/internal/domain"
	"github.com/alexanderramin/kanri/internal/snapshot"
	"github.com/spf13/cobra"
)

func newColumnCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Manage board columns",
	}
	cmd.AddCommand(newColumnAddCmd(app))
	return cmd
}

func newColumnAddCmd(app *App) *cobra.Command {
	var name, actor string

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Append a column to a project's board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			userID, err := resolveUserID(ctx, app, actor)
			if err != nil {
				return err
			}
			id, err := app.Board.CreateColumn(ctx, projectID, name, userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created column %s [%s]\n", name, domain.ShortID(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Column name")
	cmd.Flags().StringVar(&actor, "as", "", "Acting user (ID, ID prefix or name)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("as")

	return cmd
}

func newTagCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage project tags",
	}
	cmd.AddCommand(newTagAddCmd(app))
	return cmd
}

func newTagAddCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Create a tag in a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			id, err := app.Board.CreateTag(ctx, projectID, name, color)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created tag %s [%s]\n", name, domain.ShortID(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Tag name")
	cmd.Flags().StringVar(&color, "color", "", "Tag color (#rrggbb)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage cards",
	}
	cmd.AddCommand(newCardAddCmd(app))
	return cmd
}

func newCardAddCmd(app *App) *cobra.Command {
	var column, title, description, assignee, due, actor string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Add a card to the end of a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			userID, err := resolveUserID(ctx, app, actor)
			if err != nil {
				return err
			}
			columnID, err := resolveColumnID(ctx, app, projectID, column)
			if err != nil {
				return err
			}
			tagIDs, err := resolveTagIDs(ctx, app, projectID, tags)
			if err != nil {
				return err
			}
			var assigneeID *string
			if assignee != "" {
				id, err := resolveUserID(ctx, app, assignee)
				if err != nil {
					return err
				}
				assigneeID = &id
			}
			var dueMs *int64
			if due != "" {
				ms, err := snapshot.ISOToMillis(due)
				if err != nil {
					return fmt.Errorf("invalid due date %q: %w", due, err)
				}
				dueMs = &ms
			}

			cardID, err := app.Board.CreateCard(ctx, domain.NewCard{
				ProjectID:   projectID,
				ColumnID:    columnID,
				Title:       title,
				Description: description,
				CreatedBy:   userID,
			})
			if err != nil {
				return err
			}
			if assigneeID != nil {
				if err := app.Board.AssignCard(ctx, cardID, assigneeID, userID); err != nil {
					return fmt.Errorf("assigning card: %w", err)
				}
			}
			if len(tagIDs) > 0 {
				if err := app.Board.UpdateCardTags(ctx, cardID, tagIDs, userID); err != nil {
					return fmt.Errorf("tagging card: %w", err)
				}
			}
			if dueMs != nil {
				if err := app.Board.UpdateCardDueDate(ctx, cardID, dueMs, userID); err != nil {
					return fmt.Errorf("setting due date: %w", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created card %s [%s]\n", title, cardID)
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Column (ID, ID prefix or name)")
	cmd.Flags().StringVar(&title, "title", "", "Card title")
	cmd.Flags().StringVar(&description, "description", "", "Card description")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee (ID, ID prefix or name)")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag name or ID (repeatable)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&actor, "as", "", "Acting user (ID, ID prefix or name)")
	_ = cmd.MarkFlagRequired("column")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("as")

	return cmd
}

func newCommentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Manage card comments",
	}
	cmd.AddCommand(newCommentAddCmd(app))
	return cmd
}

func newCommentAddCmd(app *App) *cobra.Command {
	var text, actor string

	cmd := &cobra.Command{
		Use:   "add CARD_ID",
		Short: "Comment on a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := resolveUserID(ctx, app, actor)
			if err != nil {
				return err
			}
			id, err := app.Board.AddComment(ctx, args[0], userID, text)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added comment [%s]\n", domain.ShortID(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Comment text")
	cmd.Flags().StringVar(&actor, "as", "", "Author (ID, ID prefix or name)")
	_ = cmd.MarkFlagRequired("text")
	_ = cmd.MarkFlagRequired("as")

	return cmd
}
