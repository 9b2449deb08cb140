package catalog

import "github.com/bubblegoods/catalogsync/internal/domain"

// BucketStat is one line of the comparison summary
type BucketStat struct {
	Label   string
	Count   int
	Percent float64
}

// Summary holds per-bucket counts in report order: both, online store only, headless only, neither.
type Summary struct {
	Total   int
	Buckets []BucketStat
}

// Summarize computes bucket counts and their share of the catalog. An empty catalog yields 0%.
func Summarize(c domain.Classification) Summary {
	stat := func(label string, n int) BucketStat {
		pct := 0.0
		if c.TotalCount > 0 {
			pct = float64(n) / float64(c.TotalCount) * 100
		}
		return BucketStat{Label: label, Count: n, Percent: pct}
	}
	return Summary{
		Total: c.TotalCount,
		Buckets: []BucketStat{
			stat("Both Channels", len(c.BothChannels)),
			stat(OnlineStoreName(c)+" Only", len(c.OnlineStoreOnly)),
			stat(HeadlessName(c)+" Only", len(c.HydrogenOnly)),
			stat("Neither Channel", len(c.NeitherChannel)),
		},
	}
}
