package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"storedesk/internal/cli"
	"storedesk/internal/config"
	"storedesk/internal/db"
	"storedesk/internal/record"
	"storedesk/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	store, cleanup, err := openStore(&cfg)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	app := &cli.App{
		Tasks:   repository.NewRecordTaskRepo(store),
		Tickets: repository.NewRecordTicketRepo(store),
		Clients: repository.NewRecordClientRepo(store),
		KPIs:    repository.NewRecordKPIRepo(store),
		Reports: repository.NewRecordReportRepo(store),
		Config:  cfg,
	}

	// Detect interactive terminal for the TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// openStore builds the record store driver named by the configuration.
func openStore(cfg *config.Config) (record.Store, func(), error) {
	switch cfg.Backend {
	case config.BackendHTTP:
		return record.NewHTTPStore(cfg.Endpoint, cfg.Token), nil, nil

	case config.BackendMemory:
		return record.NewMemoryStore(), nil, nil

	default: // sqlite
		path := cfg.DBPath
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, nil, fmt.Errorf("finding home directory: %w", err)
			}
			path = filepath.Join(home, ".storedesk", "storedesk.db")
			cfg.DBPath = path
		}
		database, err := db.OpenDB(path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		store := record.NewSQLiteStore(database)
		return store, func() { database.Close() }, nil
	}
}
