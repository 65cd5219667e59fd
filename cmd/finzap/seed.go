package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/finzap/finzap/internal/cache"
	"github.com/finzap/finzap/internal/category"
	"github.com/finzap/finzap/internal/config"
	"github.com/finzap/finzap/internal/model"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default expense categories",
		Long:  `Create the built-in categories if they do not exist yet. Safe to run repeatedly.`,
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

			categories := category.New(store, cache.New[[]model.Category](time.Minute))
			if err := categories.Seed(c.Context()); err != nil {
				return err
			}

			slog.Info("Default categories in place")
			return nil
		},
	}
}
