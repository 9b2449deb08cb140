package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/bubblegoods/catalogsync/internal/config"
	"github.com/bubblegoods/catalogsync/internal/domain"
	"github.com/bubblegoods/catalogsync/internal/shopify"
	apperrors "github.com/bubblegoods/catalogsync/pkg/errors"
)

const publicationsPageSize = 50

// GraphQLExecutor is the part of *shopify.Client the services depend on
type GraphQLExecutor interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error)
}

// CatalogFetcher reads sales channels and the full product catalog from the Admin API
type CatalogFetcher struct {
	client GraphQLExecutor
	cfg    config.CatalogConfig
	logger *zap.Logger
}

// NewCatalogFetcher creates a new catalog fetcher
func NewCatalogFetcher(client GraphQLExecutor, cfg config.CatalogConfig, logger *zap.Logger) *CatalogFetcher {
	return &CatalogFetcher{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// FetchChannels lists the shop's publications.
func (f *CatalogFetcher) FetchChannels(ctx context.Context) ([]domain.SalesChannel, error) {
	resp, err := f.client.Execute(ctx, shopify.PublicationsQuery, map[string]interface{}{
		"first": publicationsPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch publications: %w", err)
	}

	var result struct {
		Publications *struct {
			Edges []struct {
				Node struct {
					ID                       string `json:"id"`
					Name                     string `json:"name"`
					SupportsFuturePublishing bool   `json:"supportsFuturePublishing"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"publications"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse publications response: %w", err)
	}
	if result.Publications == nil {
		return nil, errors.New("unexpected API response structure: missing publications")
	}

	channels := make([]domain.SalesChannel, 0, len(result.Publications.Edges))
	for _, edge := range result.Publications.Edges {
		channels = append(channels, domain.SalesChannel{
			ID:                       edge.Node.ID,
			Name:                     edge.Node.Name,
			SupportsFuturePublishing: edge.Node.SupportsFuturePublishing,
		})
	}
	return channels, nil
}

// CountProducts returns the shop's product count.
func (f *CatalogFetcher) CountProducts(ctx context.Context) (int, error) {
	resp, err := f.client.Execute(ctx, shopify.ProductsCountQuery, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	var result struct {
		ProductsCount *struct {
			Count int `json:"count"`
		} `json:"productsCount"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return 0, fmt.Errorf("failed to parse products count: %w", err)
	}
	if result.ProductsCount == nil {
		return 0, errors.New("unexpected API response structure: missing productsCount")
	}
	return result.ProductsCount.Count, nil
}

type productsPage struct {
	products    []domain.Product
	hasNextPage bool
	endCursor   string
}

// FetchProducts walks every page of products sequentially. onPage, if set, is called with
// the number of products in each page. A throttled page is retried after the configured
// backoff up to MaxFetchRetries times; any other failure aborts the fetch.
func (f *CatalogFetcher) FetchProducts(ctx context.Context, onPage func(n int)) ([]domain.Product, error) {
	var products []domain.Product
	cursor := ""
	pageNum := 0

	for {
		if err := sleep(ctx, f.cfg.PageDelay); err != nil {
			return nil, err
		}

		page, err := f.fetchPageWithRetry(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch products page %d: %w", pageNum+1, err)
		}
		pageNum++

		products = append(products, page.products...)
		if onPage != nil {
			onPage(len(page.products))
		}
		f.logger.Debug("Fetched products page",
			zap.Int("page", pageNum),
			zap.Int("count", len(page.products)),
			zap.String("end_cursor", page.endCursor),
		)

		if !page.hasNextPage || page.endCursor == "" {
			break
		}
		cursor = page.endCursor
	}

	return products, nil
}

func (f *CatalogFetcher) fetchPageWithRetry(ctx context.Context, cursor string) (*productsPage, error) {
	var page *productsPage
	throttle := newThrottleBackOff(f.cfg.RateLimitBackoff)
	op := func() error {
		p, err := f.fetchPage(ctx, cursor)
		if err != nil {
			if apperrors.IsRateLimited(err) {
				throttle.observe(err)
				return err
			}
			return backoff.Permanent(err)
		}
		page = p
		return nil
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(throttle, uint64(f.cfg.MaxFetchRetries)),
		ctx,
	)
	notify := func(err error, wait time.Duration) {
		f.logger.Warn("Rate limit hit while fetching products, waiting", zap.Duration("wait", wait), zap.Error(err))
	}
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		if apperrors.IsRateLimited(err) {
			return nil, fmt.Errorf("still throttled after %d retries: %w", f.cfg.MaxFetchRetries, err)
		}
		return nil, err
	}
	return page, nil
}

func (f *CatalogFetcher) fetchPage(ctx context.Context, cursor string) (*productsPage, error) {
	variables := map[string]interface{}{
		"first": f.cfg.PageSize,
	}
	if cursor != "" {
		variables["after"] = cursor
	}

	resp, err := f.client.Execute(ctx, shopify.ProductsWithPublicationsQuery, variables)
	if err != nil {
		return nil, err
	}

	var result struct {
		Products *struct {
			Edges []struct {
				Node productNode `json:"node"`
			} `json:"edges"`
			PageInfo struct {
				HasNextPage bool   `json:"hasNextPage"`
				EndCursor   string `json:"endCursor"`
			} `json:"pageInfo"`
		} `json:"products"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse products response: %w", err)
	}
	if result.Products == nil {
		return nil, errors.New("unexpected API response structure")
	}

	page := &productsPage{
		products:    make([]domain.Product, 0, len(result.Products.Edges)),
		hasNextPage: result.Products.PageInfo.HasNextPage,
		endCursor:   result.Products.PageInfo.EndCursor,
	}
	for _, edge := range result.Products.Edges {
		page.products = append(page.products, edge.Node.toDomain())
	}
	return page, nil
}

type productNode struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Handle               string    `json:"handle"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
	ResourcePublications struct {
		Edges []struct {
			Node resourcePublication `json:"node"`
		} `json:"edges"`
	} `json:"resourcePublications"`
}

type resourcePublication struct {
	Publication *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"publication"`
	IsPublished bool `json:"isPublished"`
}

func (n productNode) toDomain() domain.Product {
	p := domain.Product{
		ID:        n.ID,
		Title:     n.Title,
		Handle:    n.Handle,
		Status:    domain.ProductStatus(n.Status),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	for _, edge := range n.ResourcePublications.Edges {
		// only live publications count
		if !edge.Node.IsPublished || edge.Node.Publication == nil {
			continue
		}
		p.PublishedChannelIDs = append(p.PublishedChannelIDs, edge.Node.Publication.ID)
		p.PublishedChannelNames = append(p.PublishedChannelNames, edge.Node.Publication.Name)
	}
	return p
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
