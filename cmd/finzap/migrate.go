package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/finzap/finzap/internal/config"
	"github.com/finzap/finzap/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			store, err := initStorage(c.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			slog.Info("Database schema is up to date", "path", cfg.DatabasePath)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()

			version, err := store.SchemaVersion(c.Context())
			if err != nil {
				return err
			}

			fmt.Printf("schema version: %d (expected %d)\n", version, storage.ExpectedSchemaVersion)
			return nil
		},
	})

	return cmd
}
