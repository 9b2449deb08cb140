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
		Use:   "publish-to-hydrogen",
		Short: "Publish Online-Store-only products to the Hydrogen channel",
		Long: "Reads the newest catalog-diff report, selects the products that are only on the Online Store " +
			"and publishes them to the Hydrogen/Headless publication in paced batches, then spot-checks the result.",
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

	cfg, logger, err := cli.Bootstrap(console, "publish-to-hydrogen")
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := shopify.NewClient(cfg.Shopify, logger)
	fetcher := service.NewCatalogFetcher(client, cfg.Catalog, logger)
	driver := service.NewPublishDriver(service.NewChannelPublisher(client, logger), cfg.Publish, logger)
	publishRun := service.NewPublishRun(fetcher, driver, cfg, console, logger)

	console.Title("🚀 Publishing products to Hydrogen channel...")

	// per-product failures are reported in the outcome and do not fail the run
	outcome, err := publishRun.Run(ctx)
	if err != nil {
		logger.Error("Publish run failed", zap.Error(err))
		console.Error("❌ Error: %v", err)
		return err
	}
	logger.Info("Publish run complete",
		zap.String("report", outcome.ReportPath),
		zap.Int("candidates", len(outcome.Candidates)),
		zap.Int("succeeded", len(outcome.Succeeded)),
		zap.Int("failed", len(outcome.Failed)),
	)
	return nil
}
