package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bubblegoods/catalogsync/internal/catalog"
	"github.com/bubblegoods/catalogsync/internal/cli"
	"github.com/bubblegoods/catalogsync/internal/service"
	"github.com/bubblegoods/catalogsync/internal/shopify"
	"github.com/bubblegoods/catalogsync/internal/ui"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "list-channels",
		Short:         "List the shop's sales channels and how they are recognised",
		Long:          "Prints every publication with its id and whether it is treated as the Online Store or the headless storefront. Useful for finding HYDROGEN_PUBLICATION_ID.",
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

	cfg, logger, err := cli.Bootstrap(console, "list-channels")
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fetcher := service.NewCatalogFetcher(shopify.NewClient(cfg.Shopify, logger), cfg.Catalog, logger)

	console.Info("🔍 Fetching sales channels...")
	channels, err := fetcher.FetchChannels(ctx)
	if err != nil {
		logger.Error("Failed to fetch channels", zap.Error(err))
		console.Error("❌ Error: %v", err)
		return err
	}

	res := catalog.Resolve(channels)
	console.Heading("\n📢 Sales channels (%d):", len(channels))
	for _, ch := range channels {
		role := res.Role(ch)
		if role == "" {
			console.Println("  - %s (%s)", ch.Name, ch.ID)
			continue
		}
		console.Accent("  - %s (%s) [%s]", ch.Name, ch.ID, role)
	}

	if res.OnlineStore == nil {
		console.Warn("\n⚠️  Could not find 'Online Store' publication")
	}
	if res.Headless == nil {
		console.Warn("⚠️  Could not find Hydrogen/Headless storefront publication")
	}
	if cfg.Publish.HydrogenPublicationID != "" {
		console.Muted("\nHYDROGEN_PUBLICATION_ID is set to %s", cfg.Publish.HydrogenPublicationID)
	}
	return nil
}
