package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bubblegoods/catalogsync/internal/catalog"
	"github.com/bubblegoods/catalogsync/internal/config"
	"github.com/bubblegoods/catalogsync/internal/domain"
	"github.com/bubblegoods/catalogsync/internal/report"
	"github.com/bubblegoods/catalogsync/internal/ui"
	apperrors "github.com/bubblegoods/catalogsync/pkg/errors"
)

const previewLimit = 5

// PublishRun reads the latest diff report and publishes its Online-Store-only products
// to the headless channel
type PublishRun struct {
	fetcher *CatalogFetcher
	driver  *PublishDriver
	cfg     *config.Config
	console *ui.Console
	logger  *zap.Logger
}

// PublishOutcome is what a publish run did
type PublishOutcome struct {
	ReportPath   string
	Target       domain.SalesChannel
	Candidates   []domain.ReportProduct
	Succeeded    []domain.PublishResult
	Failed       []domain.PublishResult
	Verification domain.Verification
}

// NewPublishRun creates a new publish run
func NewPublishRun(fetcher *CatalogFetcher, driver *PublishDriver, cfg *config.Config, console *ui.Console, logger *zap.Logger) *PublishRun {
	return &PublishRun{
		fetcher: fetcher,
		driver:  driver,
		cfg:     cfg,
		console: console,
		logger:  logger,
	}
}

// ResolveTarget picks the channel to publish to: the configured publication id wins,
// otherwise the resolver's headless match.
func ResolveTarget(overrideID string, channels []domain.SalesChannel, res catalog.Resolution) (domain.SalesChannel, error) {
	if overrideID != "" {
		for _, ch := range channels {
			if ch.ID == overrideID {
				return ch, nil
			}
		}
		return domain.SalesChannel{ID: overrideID, Name: "configured publication"}, nil
	}
	if res.Headless == nil {
		return domain.SalesChannel{}, &apperrors.ErrNotFound{Resource: "Hydrogen/Headless storefront publication"}
	}
	return *res.Headless, nil
}

func hasChannel(channels []domain.SalesChannel, id string) bool {
	for _, ch := range channels {
		if ch.ID == id {
			return true
		}
	}
	return false
}

// Run executes the publish flow. Only precondition and lookup failures are returned as
// errors; per-product failures are part of the outcome.
func (r *PublishRun) Run(ctx context.Context) (*PublishOutcome, error) {
	path, err := report.FindLatest(r.cfg.Report.Dir)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("no catalog diff file found, run compare-catalogs first: %w", err)
		}
		return nil, err
	}
	outcome := &PublishOutcome{ReportPath: path}
	r.console.Info("📄 Reading from: %s", path)

	channels, err := r.fetcher.FetchChannels(ctx)
	if err != nil {
		return nil, err
	}
	res := catalog.Resolve(channels)
	onlineStoreID := ""
	if res.OnlineStore != nil {
		onlineStoreID = res.OnlineStore.ID
	}

	candidates, err := report.ReadOnlineStoreOnly(path, onlineStoreID)
	if err != nil {
		return nil, fmt.Errorf("error reading CSV file: %w", err)
	}
	outcome.Candidates = candidates
	for _, p := range candidates {
		if !p.Status.IsValid() {
			r.logger.Warn("Report row has an unknown product status",
				zap.String("product_id", p.ID),
				zap.String("status", string(p.Status)),
			)
		}
	}
	r.console.Success("📦 Found %d products to publish to Hydrogen", len(candidates))

	if len(candidates) == 0 {
		r.console.Warn("🎉 No products need to be published - everything is already in sync!")
		return outcome, nil
	}

	target, err := ResolveTarget(r.cfg.Publish.HydrogenPublicationID, channels, res)
	if err != nil {
		return nil, err
	}
	outcome.Target = target
	if override := r.cfg.Publish.HydrogenPublicationID; override != "" && !hasChannel(channels, override) {
		r.logger.Warn("HYDROGEN_PUBLICATION_ID is not among the shop's publications",
			zap.String("publication_id", override),
			zap.Int("publications", len(channels)),
		)
		r.console.Warn("⚠️  HYDROGEN_PUBLICATION_ID %s is not one of the shop's publications, it may be stale", override)
	}
	r.console.Info("🎯 Target: %s (%s)", target.Name, target.ID)

	r.console.Warn("\n⚠️  About to publish %d products to %s.", len(candidates), target.Name)
	r.console.Muted("\nFirst few products to be published:")
	for i, p := range candidates {
		if i == previewLimit {
			r.console.Muted("  ... and %d more", len(candidates)-previewLimit)
			break
		}
		r.console.Muted("  - %s", p.Title)
	}

	r.console.Info("\n📤 Starting publication process...")
	bar := ui.NewBar(r.console.Writer(), "Publishing", "products")
	bar.Start(len(candidates))
	results := r.driver.PublishAll(ctx, candidates, target.ID, bar)
	bar.Stop()

	outcome.Succeeded, outcome.Failed = Tally(results)
	r.logger.Info("Publish finished",
		zap.String("publication_id", target.ID),
		zap.Int("succeeded", len(outcome.Succeeded)),
		zap.Int("failed", len(outcome.Failed)),
	)

	r.console.Success("\n✅ Successfully published: %d products", len(outcome.Succeeded))
	if len(outcome.Failed) > 0 {
		r.console.Error("❌ Failed to publish: %d products", len(outcome.Failed))
		r.console.Error("\nFailed products:")
		for _, f := range outcome.Failed {
			r.console.Error("  - %s: %v", f.Product.Title, f.Err)
		}
	}

	if len(outcome.Succeeded) > 0 {
		r.console.Info("\n🔍 Verifying publications...")
		outcome.Verification = r.driver.Verify(ctx, outcome.Succeeded, target.ID)
		r.console.Success("✅ Verified: %d products successfully published", len(outcome.Verification.Verified))
		if len(outcome.Verification.Failed) > 0 {
			r.console.Error("❌ Failed verification: %d products", len(outcome.Verification.Failed))
			for _, f := range outcome.Verification.Failed {
				r.console.Println("  - %s: %s", f.Product.Title, f.Reason)
			}
		}
	}

	r.console.Success("\n🎉 Publication process complete!")
	r.console.Info("💡 Run the catalog comparison again to verify all products are now synchronized.")
	return outcome, nil
}
