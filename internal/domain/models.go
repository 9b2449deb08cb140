package domain

import "time"

// SalesChannel is a Shopify publication (Online Store, Hydrogen storefront, POS, ...)
type SalesChannel struct {
	ID                       string
	Name                     string
	SupportsFuturePublishing bool
}

// Product is a catalog entry together with the channels currently publishing it.
// PublishedChannelIDs and PublishedChannelNames hold only isPublished=true edges, in the
// same order.
type Product struct {
	ID                    string // Product GID (gid://shopify/Product/123)
	Title                 string
	Handle                string
	Status                ProductStatus
	CreatedAt             time.Time
	UpdatedAt             time.Time
	PublishedChannelIDs   []string
	PublishedChannelNames []string
}

// PublishedTo reports whether the product is live on channelID. An empty id never matches.
func (p Product) PublishedTo(channelID string) bool {
	if channelID == "" {
		return false
	}
	for _, id := range p.PublishedChannelIDs {
		if id == channelID {
			return true
		}
	}
	return false
}

// Classification partitions a catalog into four disjoint buckets. OnlineStore and Headless
// are nil when the resolver found no matching channel.
type Classification struct {
	OnlineStoreOnly []Product
	HydrogenOnly    []Product
	BothChannels    []Product
	NeitherChannel  []Product
	TotalCount      int
	OnlineStore     *SalesChannel
	Headless        *SalesChannel
}

// ReportProduct is a diff-report row selected for publishing
type ReportProduct struct {
	ID        string // Product GID, re-prefixed from the stored numeric id
	ShopifyID string // numeric id as stored in the report
	Title     string
	Handle    string
	Status    ProductStatus
}

// PublishResult is the outcome of one publishablePublish call
type PublishResult struct {
	Product  ReportProduct
	Success  bool
	Err      error
	Attempts int
}

// Verification is the outcome of re-querying a sample of published products
type Verification struct {
	Verified []ReportProduct
	Failed   []VerificationFailure
}

type VerificationFailure struct {
	Product ReportProduct
	Reason  string
}
