package catalog

import (
	"strings"

	"github.com/bubblegoods/catalogsync/internal/domain"
)

const onlineStoreMarker = "online store"

var headlessMarkers = []string{"hydrogen", "storefront", "headless"}

// Resolution holds the channels picked out of the shop's publication list.
// Either side is nil when nothing matched; no placeholder is ever synthesised.
type Resolution struct {
	OnlineStore *domain.SalesChannel
	Headless    *domain.SalesChannel
}

// Resolve finds the Online Store and the headless (Hydrogen) channel by name.
// Matching is case-insensitive and the first match in input order wins.
func Resolve(channels []domain.SalesChannel) Resolution {
	var res Resolution
	for i := range channels {
		ch := channels[i]
		switch {
		case IsOnlineStore(ch.Name):
			if res.OnlineStore == nil {
				res.OnlineStore = &ch
			}
		case IsHeadless(ch.Name):
			if res.Headless == nil {
				res.Headless = &ch
			}
		}
	}
	return res
}

// IsOnlineStore reports whether a channel name denotes the default Online Store.
func IsOnlineStore(name string) bool {
	return strings.Contains(strings.ToLower(name), onlineStoreMarker)
}

// IsHeadless reports whether a channel name denotes a headless storefront. Names that
// also match the Online Store never qualify.
func IsHeadless(name string) bool {
	lower := strings.ToLower(name)
	if strings.Contains(lower, onlineStoreMarker) {
		return false
	}
	for _, m := range headlessMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// Role names the part a channel plays for the resolver ("online store", "headless" or "").
func (r Resolution) Role(ch domain.SalesChannel) string {
	switch {
	case r.OnlineStore != nil && r.OnlineStore.ID == ch.ID:
		return "online store"
	case r.Headless != nil && r.Headless.ID == ch.ID:
		return "headless"
	default:
		return ""
	}
}
