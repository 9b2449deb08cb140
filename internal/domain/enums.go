package domain

// ProductStatus mirrors Shopify's ProductStatus enum
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusArchived ProductStatus = "ARCHIVED"
	ProductStatusUnlisted ProductStatus = "UNLISTED"
)

// IsValid checks if the product status is one Shopify documents
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive,
		ProductStatusDraft,
		ProductStatusArchived,
		ProductStatusUnlisted:
		return true
	default:
		return false
	}
}

// Availability labels written to the diff report
const (
	AvailabilityBoth    = "Both"
	AvailabilityNeither = "Neither"

	// AvailabilityOnlineStore is the label an "Online Store only" row carries when the
	// channel has its default name.
	AvailabilityOnlineStore = "Online Store"

	OnlineStoreNotFound = "Online Store (not found)"
	HydrogenNotFound    = "Hydrogen Store (not found)"
)
