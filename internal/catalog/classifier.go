package catalog

import "github.com/bubblegoods/catalogsync/internal/domain"

// Classify places every product in exactly one bucket according to whether it is published
// to the Online Store, the headless channel, both or neither. A nil channel is treated as
// "never published there". Input order is preserved inside each bucket and the input is
// not modified.
func Classify(products []domain.Product, onlineStore, headless *domain.SalesChannel) domain.Classification {
	result := domain.Classification{
		TotalCount:  len(products),
		OnlineStore: onlineStore,
		Headless:    headless,
	}

	onlineID := channelID(onlineStore)
	headlessID := channelID(headless)

	for _, p := range products {
		onOnline := p.PublishedTo(onlineID)
		onHeadless := p.PublishedTo(headlessID)

		switch {
		case onOnline && onHeadless:
			result.BothChannels = append(result.BothChannels, p)
		case onOnline:
			result.OnlineStoreOnly = append(result.OnlineStoreOnly, p)
		case onHeadless:
			result.HydrogenOnly = append(result.HydrogenOnly, p)
		default:
			result.NeitherChannel = append(result.NeitherChannel, p)
		}
	}

	return result
}

// ClassifyResolved is Classify over a Resolution.
func ClassifyResolved(products []domain.Product, res Resolution) domain.Classification {
	return Classify(products, res.OnlineStore, res.Headless)
}

func channelID(ch *domain.SalesChannel) string {
	if ch == nil {
		return ""
	}
	return ch.ID
}

// OnlineStoreName is the label used for the Online Store side of a classification.
func OnlineStoreName(c domain.Classification) string {
	if c.OnlineStore == nil {
		return domain.OnlineStoreNotFound
	}
	return c.OnlineStore.Name
}

// HeadlessName is the label used for the headless side of a classification.
func HeadlessName(c domain.Classification) string {
	if c.Headless == nil {
		return domain.HydrogenNotFound
	}
	return c.Headless.Name
}
