package cli

import (
	"github.com/spf13/cobra"

	"storedesk/internal/config"
	"storedesk/internal/repository"
)

// App holds references to the repositories and configuration used by CLI
// commands and the TUI.
type App struct {
	Tasks   repository.TaskRepo
	Tickets repository.TicketRepo
	Clients repository.ClientRepo
	KPIs    repository.KPIRepo
	Reports repository.ReportRepo

	Config config.Config

	// IsInteractive reports whether stdin is attached to a terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "storedesk" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "storedesk",
		Short: "Store operations client: tasks, tickets, clients, and reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation in a terminal opens the TUI.
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newTUICmd(app),
		newTaskCmd(app),
		newTicketCmd(app),
		newClientCmd(app),
		newReportCmd(app),
		newSeedCmd(app),
		newServeCmd(),
	)

	return root
}
