package cli

import (
	"github.com/dkoval/hirepath/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Applications service.ApplicationService
	Pipeline     service.PipelineService
}

// NewRootCmd creates the top-level "hirepath" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "hirepath",
		Short: "Recruitment pipeline tracker",
	}

	root.AddCommand(
		newAppCmd(app),
		newStageCmd(app),
		newTimelineCmd(app),
	)

	return root
}
