package main

import (
	"context"
	"fmt"

	"github.com/finzap/finzap/internal/config"
	"github.com/finzap/finzap/internal/storage"
)

// initStorage opens the database and brings the schema up to date.
func initStorage(ctx context.Context, cfg *config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
