package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/finzap/finzap/internal/bot"
	"github.com/finzap/finzap/internal/cache"
	"github.com/finzap/finzap/internal/category"
	"github.com/finzap/finzap/internal/chart"
	"github.com/finzap/finzap/internal/config"
	"github.com/finzap/finzap/internal/message"
	"github.com/finzap/finzap/internal/model"
	"github.com/finzap/finzap/internal/report"
	"github.com/finzap/finzap/internal/server"
	"github.com/finzap/finzap/internal/transport"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server",
		Long:  `Start the HTTP server that receives Evolution API webhooks and replies over WhatsApp.`,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateEvolution(); err != nil {
		return err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close storage", "error", closeErr)
		}
	}()

	categories := category.New(store, cache.New[[]model.Category](cfg.CacheTTL))
	if err := categories.Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	client, err := transport.NewClient(cfg.Evolution.URL, cfg.Evolution.APIKey, cfg.Evolution.InstanceID)
	if err != nil {
		return err
	}

	charts, err := chart.NewRenderer(cfg.ChartsDir)
	if err != nil {
		return err
	}

	b := bot.New(
		store,
		message.NewClassifier(categories),
		report.NewGenerator(store),
		client,
		charts,
	)

	srv := server.New(cfg.ServerAddr, b, client)
	return srv.Start(ctx)
}
