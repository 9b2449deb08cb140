package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bubblegoods/catalogsync/internal/catalog"
	"github.com/bubblegoods/catalogsync/internal/domain"
	"github.com/bubblegoods/catalogsync/internal/report"
	"github.com/bubblegoods/catalogsync/internal/ui"
)

const (
	summaryListLimit        = 10
	summaryNeitherListLimit = 5
)

// Comparison fetches channels and products, classifies the catalog and writes the diff report
type Comparison struct {
	fetcher   *CatalogFetcher
	reportDir string
	console   *ui.Console
	logger    *zap.Logger
	now       func() time.Time
}

// ComparisonResult is what a comparison run produced
type ComparisonResult struct {
	Channels       []domain.SalesChannel
	Classification domain.Classification
	ReportPath     string
}

// NewComparison creates a new catalog comparison
func NewComparison(fetcher *CatalogFetcher, reportDir string, console *ui.Console, logger *zap.Logger) *Comparison {
	return &Comparison{
		fetcher:   fetcher,
		reportDir: reportDir,
		console:   console,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes the comparison end to end. Any fetch or write failure is fatal.
func (c *Comparison) Run(ctx context.Context) (*ComparisonResult, error) {
	c.console.Info("📡 Fetching sales channels...")
	channels, err := c.fetcher.FetchChannels(ctx)
	if err != nil {
		return nil, err
	}
	c.console.Success("✅ Found %d sales channels:", len(channels))
	for _, ch := range channels {
		c.console.Println("  - %s (%s)", ch.Name, ch.ID)
	}

	c.console.Info("\n📦 Fetching products...")
	total, err := c.fetcher.CountProducts(ctx)
	if err != nil {
		// the bar then grows with the fetched count
		c.logger.Debug("Products count unavailable", zap.Error(err))
		total = 0
	}

	bar := ui.NewBar(c.console.Writer(), "Progress", "products")
	bar.Start(total)
	products, err := c.fetcher.FetchProducts(ctx, bar.Increment)
	bar.SetTotal(len(products))
	bar.Stop()
	if err != nil {
		return nil, err
	}
	c.console.Success("✅ Fetched %d products", len(products))

	c.console.Info("\n🔍 Analyzing product catalog...")
	res := catalog.Resolve(channels)
	if res.OnlineStore == nil {
		c.console.Warn("⚠️  Could not find 'Online Store' publication")
	}
	if res.Headless == nil {
		c.console.Warn("⚠️  Could not find Hydrogen/Headless storefront publication")
	}

	classification := catalog.ClassifyResolved(products, res)
	c.logger.Info("Catalog classified",
		zap.Int("total", classification.TotalCount),
		zap.Int("both", len(classification.BothChannels)),
		zap.Int("online_store_only", len(classification.OnlineStoreOnly)),
		zap.Int("hydrogen_only", len(classification.HydrogenOnly)),
		zap.Int("neither", len(classification.NeitherChannel)),
	)

	PrintSummary(c.console, classification)

	path, err := report.Write(c.reportDir, classification, c.now())
	if err != nil {
		return nil, fmt.Errorf("failed to export report: %w", err)
	}
	c.console.Success("\n💾 Full report exported to: %s", path)

	return &ComparisonResult{
		Channels:       channels,
		Classification: classification,
		ReportPath:     path,
	}, nil
}

// PrintSummary writes the comparison statistics and a sample of each one-sided bucket.
func PrintSummary(console *ui.Console, c domain.Classification) {
	onlineName := catalog.OnlineStoreName(c)
	headlessName := catalog.HeadlessName(c)

	console.Heading("\n📊 CATALOG COMPARISON SUMMARY")
	console.Println("==================================================")
	console.Info("\n🏪 %s", onlineName)
	console.Info("⚡ %s", headlessName)

	summary := catalog.Summarize(c)
	console.Heading("\n📈 STATISTICS:")
	console.Println("Total Products: %s", ui.Count(summary.Total))
	for _, b := range summary.Buckets {
		console.Println("%s: %s (%.1f%%)", b.Label, ui.Count(b.Count), b.Percent)
	}

	if len(c.OnlineStoreOnly) > 0 {
		console.Warn("\n🔍 Products only in %s:", onlineName)
		printSample(console, c.OnlineStoreOnly, summaryListLimit)
	}
	if len(c.HydrogenOnly) > 0 {
		console.Accent("\n⚡ Products only in %s:", headlessName)
		printSample(console, c.HydrogenOnly, summaryListLimit)
	}
	if len(c.NeitherChannel) > 0 {
		console.Error("\n❌ Products not published to either channel:")
		printSample(console, c.NeitherChannel, summaryNeitherListLimit)
	}
}

func printSample(console *ui.Console, products []domain.Product, limit int) {
	for i, p := range products {
		if i == limit {
			console.Muted("    ... and %d more", len(products)-limit)
			return
		}
		console.Println("  - %s (%s)", p.Title, p.Handle)
	}
}
