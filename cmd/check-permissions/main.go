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
		Use:           "check-permissions",
		Short:         "Check the Admin API token has the scopes the catalog tools need",
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

	cfg, logger, err := cli.Bootstrap(console, "check-permissions")
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := shopify.NewClient(cfg.Shopify, logger)

	console.Info("Checking API permissions...")
	checks, err := service.CheckAccess(ctx, client)
	if err != nil {
		logger.Error("Failed to check access scopes", zap.Error(err))
		console.Error("❌ Error: %v", err)
		return err
	}

	missing := 0
	for i, c := range checks {
		if c.Granted {
			console.Success("%d. ✅ %s (%s)", i+1, c.Handle, c.Purpose)
			continue
		}
		missing++
		console.Error("%d. ❌ %s (%s)", i+1, c.Handle, c.Purpose)
	}

	if missing == 0 {
		console.Success("\nAll required scopes are granted.")
		return nil
	}
	console.Heading("\nTo add scopes:")
	console.Println("   1. Go to Shopify Admin → Settings → Apps and sales channels")
	console.Println("   2. Click 'Develop apps' → Your app")
	console.Println("   3. Click 'Configure Admin API scopes'")
	console.Println("   4. Add the missing scopes and reinstall the app")
	return nil
}
