package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bubblegoods/catalogsync/internal/cli"
	"github.com/bubblegoods/catalogsync/internal/service"
	"github.com/bubblegoods/catalogsync/internal/shopify"
	"github.com/bubblegoods/catalogsync/internal/ui"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "compare-catalogs",
		Short:         "Compare Online Store and Hydrogen product availability",
		Long:          "Fetches every product with its sales channel publications, classifies it as Online Store only, Hydrogen only, both or neither, prints a summary and exports a CSV report.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	console := ui.NewConsole(os.Stdout)

	cfg, logger, err := cli.Bootstrap(console, "compare-catalogs")
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := shopify.NewClient(cfg.Shopify, logger)
	fetcher := service.NewCatalogFetcher(client, cfg.Catalog, logger)
	comparison := service.NewComparison(fetcher, cfg.Report.Dir, console, logger)

	logger.Info("Starting catalog comparison",
		zap.String("shop", cfg.Shopify.ShopDomain),
		zap.String("api_version", cfg.Shopify.APIVersion),
	)
	if _, err := comparison.Run(ctx); err != nil {
		logger.Error("Catalog comparison failed", zap.Error(err))
		console.Error("❌ Error: %v", err)
		return err
	}
	return nil
}
