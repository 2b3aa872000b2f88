package cli

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"storedesk/internal/seed"
)

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed FILE",
		Short: "Populate the configured record store from a YAML seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logrus.New()

			doc, err := seed.Load(args[0])
			if err != nil {
				return err
			}

			repos := seed.Repos{
				Tasks:   app.Tasks,
				Tickets: app.Tickets,
				Clients: app.Clients,
				KPIs:    app.KPIs,
				Reports: app.Reports,
			}
			return seed.Apply(context.Background(), doc, repos, log)
		},
	}
}
