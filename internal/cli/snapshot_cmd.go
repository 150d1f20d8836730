package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/kanri/internal/cli/formatter"
	"github.com/alexanderramin/kanri/internal/domain"
	"github.com/alexanderramin/kanri/internal/snapshot"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrImportFailed is returned when an import ran but recorded errors.
var ErrImportFailed = errors.New("import finished with errors")

// modeFlag parses --mode into a snapshot.Mode.
type modeFlag struct {
	mode *snapshot.Mode
}

var _ pflag.Value = modeFlag{}

func (f modeFlag) String() string {
	if f.mode == nil {
		return ""
	}
	return string(*f.mode)
}

func (f modeFlag) Set(s string) error {
	m, err := snapshot.ParseMode(s)
	if err != nil {
		return err
	}
	*f.mode = m
	return nil
}

func (f modeFlag) Type() string { return "mode" }

func newExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export PROJECT",
		Short: "Export a project board as a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				doc, err := app.Exports.ExportProject(ctx, projectID)
				if err != nil {
					return err
				}
				return snapshot.WriteDocument(cmd.OutOrStdout(), doc)
			}

			var doc *snapshot.Document
			err = withSpinner(ctx, app.Interactive, cmd.ErrOrStderr(), "Exporting "+args[0], func(ctx context.Context) error {
				var err error
				doc, err = app.Exports.ExportToFile(ctx, projectID, output)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%s, %s) to %s\n",
				doc.Project.Name,
				formatter.Plural(len(doc.Project.Columns), "column"),
				formatter.Plural(doc.CardCount(), "card"),
				output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to FILE instead of stdout")

	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var projectRef, newProject, actor string
	var yes, jsonOut bool
	mode := snapshot.ModeMerge

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a JSON snapshot into a project",
		Long: `Import a JSON snapshot into an existing project (--project) or a new one (--new-project).

Merge mode adds to the board and reuses users and tags that already exist by name.
Replace mode first deletes the project's columns, cards, tags and filter presets.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			doc, err := snapshot.LoadDocument(args[0])
			if err != nil {
				return err
			}
			userID, err := resolveUserID(ctx, app, actor)
			if err != nil {
				return err
			}

			var project *domain.Project
			if newProject != "" {
				if project, err = app.Projects.Create(ctx, newProject); err != nil {
					return err
				}
			} else {
				projectID, err := resolveProjectID(ctx, app, projectRef)
				if err != nil {
					return err
				}
				if project, err = app.Projects.GetByID(ctx, projectID); err != nil {
					return err
				}
			}

			if mode == snapshot.ModeReplace && newProject == "" && !yes {
				if !app.Interactive {
					return fmt.Errorf("replace mode deletes the columns, cards, tags and filter presets of %q; pass --yes to confirm", project.Name)
				}
				ok, err := app.confirm(
					fmt.Sprintf("Replace the board of %q?", project.Name),
					"Existing columns, cards, tags and filter presets are deleted before the snapshot is imported.",
				)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Import cancelled.")
					return nil
				}
			}

			var res *snapshot.ImportResult
			err = withSpinner(ctx, app.Interactive && !jsonOut, cmd.ErrOrStderr(), "Importing "+args[0], func(ctx context.Context) error {
				var err error
				res, err = app.Imports.ImportDocument(ctx, doc, project.ID, userID, mode)
				return err
			})
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, formatter.FormatImportResult(res, formatter.ImportReport{
					ProjectName:   project.Name,
					Mode:          mode,
					DocumentCards: doc.CardCount(),
				}))
			}

			if !res.Success {
				return ErrImportFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Target project (ID, ID prefix or name)")
	cmd.Flags().StringVar(&newProject, "new-project", "", "Create a new project with this name and import into it")
	cmd.Flags().StringVar(&actor, "as", "", "Acting user (ID, ID prefix or name)")
	cmd.Flags().Var(modeFlag{&mode}, "mode", "Import mode: merge or replace")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the replace confirmation")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the import result as JSON")
	_ = cmd.MarkFlagRequired("as")
	cmd.MarkFlagsMutuallyExclusive("project", "new-project")
	cmd.MarkFlagsOneRequired("project", "new-project")

	return cmd
}
