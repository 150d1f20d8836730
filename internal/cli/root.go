package cli

import (
	"github.com/alexanderramin/kanri/internal/service"
	"github.com/alexanderramin/kanri/internal/snapshot"
	"github.com/spf13/cobra"
)

// App holds references to the services used by CLI commands.
type App struct {
	Projects service.ProjectService
	Users    service.UserService
	Board    snapshot.Backend
	Imports  service.ImportService
	Exports  service.ExportService

	// Interactive enables confirmation prompts and progress spinners.
	// Set it only when stdin and stdout are terminals.
	Interactive bool

	// Confirm asks a yes/no question. Nil uses a huh prompt.
	Confirm func(title, description string) (bool, error)
}

// NewRootCmd creates the top-level "kanri" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "kanri",
		Short:         "Project boards with portable JSON snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newUserCmd(app),
		newColumnCmd(app),
		newTagCmd(app),
		newCardCmd(app),
		newCommentCmd(app),
		newExportCmd(app),
		newImportCmd(app),
	)

	return root
}
