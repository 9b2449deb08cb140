package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bubblegoods/catalogsync/internal/config"
	"github.com/bubblegoods/catalogsync/internal/domain"
	apperrors "github.com/bubblegoods/catalogsync/pkg/errors"
)

// Publisher publishes a product to a channel and reads back its publication state
type Publisher interface {
	Publish(ctx context.Context, productID, publicationID string, publishDate time.Time) error
	IsPublishedTo(ctx context.Context, productID, publicationID string) (bool, error)
}

// Progress receives one tick per finished publish
type Progress interface {
	Increment(n int)
}

// PublishDriver issues one publish per product, a batch at a time. It is best effort:
// failures are recorded per product and never abort the run.
type PublishDriver struct {
	publisher Publisher
	cfg       config.PublishConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewPublishDriver creates a new publish driver
func NewPublishDriver(publisher Publisher, cfg config.PublishConfig, logger *zap.Logger) *PublishDriver {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	return &PublishDriver{
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// PublishAll publishes every product to publicationID. Results are returned in input order.
// Each batch runs concurrently and is joined before the next one starts.
func (d *PublishDriver) PublishAll(ctx context.Context, products []domain.ReportProduct, publicationID string, progress Progress) []domain.PublishResult {
	results := make([]domain.PublishResult, len(products))

	for start := 0; start < len(products); start += d.cfg.BatchSize {
		end := min(start+d.cfg.BatchSize, len(products))

		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				results[i] = d.publishOne(ctx, products[i], publicationID)
				if progress != nil {
					progress.Increment(1)
				}
				return nil
			})
		}
		_ = g.Wait()

		d.logger.Debug("Publish batch finished", zap.Int("from", start), zap.Int("to", end))

		if end < len(products) {
			// a cancelled context surfaces as per-product failures in the next batch
			_ = sleep(ctx, d.cfg.BatchDelay)
		}
	}

	return results
}

func (d *PublishDriver) publishOne(ctx context.Context, p domain.ReportProduct, publicationID string) domain.PublishResult {
	result := domain.PublishResult{Product: p}

	if err := sleep(ctx, d.cfg.CallDelay); err != nil {
		result.Err = err
		return result
	}

	throttle := newThrottleBackOff(d.cfg.RetryBackoff)
	op := func() error {
		result.Attempts++
		err := d.publisher.Publish(ctx, p.ID, publicationID, d.now())
		if err == nil {
			return nil
		}
		if apperrors.IsRateLimited(err) {
			throttle.observe(err)
			return err
		}
		return backoff.Permanent(err)
	}

	// throttled publishes get exactly one retry
	b := backoff.WithContext(backoff.WithMaxRetries(throttle, 1), ctx)
	notify := func(err error, wait time.Duration) {
		d.logger.Warn("Rate limit hit, retrying once",
			zap.String("product_id", p.ID),
			zap.String("title", p.Title),
			zap.Duration("wait", wait),
		)
	}

	if err := backoff.RetryNotify(op, b, notify); err != nil {
		result.Err = err
		d.logger.Warn("Failed to publish product",
			zap.String("product_id", p.ID),
			zap.String("title", p.Title),
			zap.Int("attempts", result.Attempts),
			zap.Error(err),
		)
		return result
	}

	result.Success = true
	return result
}

// Verify re-queries the first VerifySample successful products and checks that
// publicationID now lists them as published. Mismatches are reported, not retried.
func (d *PublishDriver) Verify(ctx context.Context, results []domain.PublishResult, publicationID string) domain.Verification {
	var v domain.Verification
	checked := 0

	for _, r := range results {
		if checked >= d.cfg.VerifySample {
			break
		}
		if !r.Success {
			continue
		}
		checked++

		if err := sleep(ctx, d.cfg.VerifyDelay); err != nil {
			v.Failed = append(v.Failed, domain.VerificationFailure{Product: r.Product, Reason: err.Error()})
			continue
		}

		ok, err := d.publisher.IsPublishedTo(ctx, r.Product.ID, publicationID)
		switch {
		case err != nil:
			v.Failed = append(v.Failed, domain.VerificationFailure{Product: r.Product, Reason: fmt.Sprintf("could not verify: %v", err)})
		case !ok:
			v.Failed = append(v.Failed, domain.VerificationFailure{Product: r.Product, Reason: "not published to target channel"})
		default:
			v.Verified = append(v.Verified, r.Product)
		}
	}

	return v
}

// Tally splits results into successes and failures, preserving order.
func Tally(results []domain.PublishResult) (succeeded, failed []domain.PublishResult) {
	for _, r := range results {
		if r.Success {
			succeeded = append(succeeded, r)
		} else {
			failed = append(failed, r)
		}
	}
	return succeeded, failed
}
