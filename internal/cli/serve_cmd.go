package cli

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"storedesk/internal/db"
	"storedesk/internal/record"
	"storedesk/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr, dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local record-store server backed by SQLite",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logrus.New()

			database, err := db.OpenDB(dbPath)
			if err != nil {
				return err
			}
			defer database.Close()

			store := record.NewSQLiteStore(database)
			srv := server.New(store, log)

			log.WithFields(logrus.Fields{
				"addr": addr,
				"db":   dbPath,
			}).Info("serving record store")
			return http.ListenAndServe(addr, srv.Router())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8170", "Listen address")
	cmd.Flags().StringVar(&dbPath, "db", "storedesk.db", "SQLite database path")

	return cmd
}
