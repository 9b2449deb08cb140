package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bubblegoods/catalogsync/internal/shopify"
	apperrors "github.com/bubblegoods/catalogsync/pkg/errors"
)

// ChannelPublisher publishes products to a sales channel through publishablePublish
type ChannelPublisher struct {
	client GraphQLExecutor
	logger *zap.Logger
}

// NewChannelPublisher creates a new channel publisher
func NewChannelPublisher(client GraphQLExecutor, logger *zap.Logger) *ChannelPublisher {
	return &ChannelPublisher{
		client: client,
		logger: logger,
	}
}

// Publish publishes productID to publicationID with the given publish date.
// Mutation userErrors are returned as *errors.ErrUserErrors.
func (p *ChannelPublisher) Publish(ctx context.Context, productID, publicationID string, publishDate time.Time) error {
	variables := map[string]interface{}{
		"id": productID,
		"input": []shopify.PublicationInput{
			{
				PublicationID: publicationID,
				PublishDate:   publishDate.UTC().Format(time.RFC3339),
			},
		},
	}

	resp, err := p.client.Execute(ctx, shopify.PublishablePublishMutation, variables)
	if err != nil {
		return fmt.Errorf("publishablePublish: %w", err)
	}

	var result struct {
		PublishablePublish *struct {
			UserErrors []shopify.UserError `json:"userErrors"`
		} `json:"publishablePublish"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("parse publishablePublish response: %w", err)
	}
	if result.PublishablePublish == nil {
		return fmt.Errorf("publishablePublish: unexpected API response structure")
	}
	if len(result.PublishablePublish.UserErrors) > 0 {
		msgs := make([]string, len(result.PublishablePublish.UserErrors))
		for i, ue := range result.PublishablePublish.UserErrors {
			msgs[i] = ue.Message
		}
		return &apperrors.ErrUserErrors{Operation: "publishablePublish", Messages: msgs}
	}

	p.logger.Debug("Published product", zap.String("product_id", productID), zap.String("publication_id", publicationID))
	return nil
}

// IsPublishedTo re-reads the product's publication edges and reports whether
// publicationID is live.
func (p *ChannelPublisher) IsPublishedTo(ctx context.Context, productID, publicationID string) (bool, error) {
	resp, err := p.client.Execute(ctx, shopify.ProductPublicationsQuery, map[string]interface{}{"id": productID})
	if err != nil {
		return false, fmt.Errorf("get product publications: %w", err)
	}

	var result struct {
		Product *struct {
			ResourcePublications struct {
				Edges []struct {
					Node resourcePublication `json:"node"`
				} `json:"edges"`
			} `json:"resourcePublications"`
		} `json:"product"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return false, fmt.Errorf("parse product publications: %w", err)
	}
	if result.Product == nil {
		return false, &apperrors.ErrNotFound{Resource: "product", ID: productID}
	}

	for _, edge := range result.Product.ResourcePublications.Edges {
		if edge.Node.IsPublished && edge.Node.Publication != nil && edge.Node.Publication.ID == publicationID {
			return true, nil
		}
	}
	return false, nil
}
