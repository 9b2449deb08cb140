package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bubblegoods/catalogsync/internal/catalog"
	"github.com/bubblegoods/catalogsync/internal/domain"
	"github.com/bubblegoods/catalogsync/internal/shopify"
)

const (
	FilePrefix = "catalog-diff-"
	FileExt    = ".csv"

	// timestampLayout sorts lexicographically in chronological order
	timestampLayout = "2006-01-02T15-04-05"

	channelSeparator = "; "
)

// Header is the diff report's column row.
var Header = []string{
	"Product ID",
	"Title",
	"Handle",
	"Status",
	"Channel Availability",
	"Published Channels",
	"Created At",
	"Updated At",
	"Availability Channel ID",
}

const (
	colID = iota
	colTitle
	colHandle
	colStatus
	colAvailability
	colPublishedChannels
	colCreatedAt
	colUpdatedAt
	colChannelID
)

// minColumns is the fewest columns a row needs to be usable for publishing
const minColumns = colAvailability + 1

// FileName returns the report file name for a run started at now.
func FileName(now time.Time) string {
	return FilePrefix + now.UTC().Format(timestampLayout) + FileExt
}

// Write serialises a classification into dir and returns the file path. Rows are emitted
// bucket by bucket: both, online store only, headless only, neither.
func Write(dir string, c domain.Classification, now time.Time) (string, error) {
	path := filepath.Join(dir, FileName(now))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return "", fmt.Errorf("write report header: %w", err)
	}

	onlineID, headlessID := "", ""
	if c.OnlineStore != nil {
		onlineID = c.OnlineStore.ID
	}
	if c.Headless != nil {
		headlessID = c.Headless.ID
	}

	buckets := []struct {
		products  []domain.Product
		label     string
		channelID string
	}{
		{c.BothChannels, domain.AvailabilityBoth, ""},
		{c.OnlineStoreOnly, catalog.OnlineStoreName(c), onlineID},
		{c.HydrogenOnly, catalog.HeadlessName(c), headlessID},
		{c.NeitherChannel, domain.AvailabilityNeither, ""},
	}
	for _, b := range buckets {
		for _, p := range b.products {
			if err := w.Write(row(p, b.label, b.channelID)); err != nil {
				return "", fmt.Errorf("write report row %s: %w", p.ID, err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	return path, nil
}

func row(p domain.Product, label, channelID string) []string {
	return []string{
		shopify.ProductNumericID(p.ID),
		textField(p.Title),
		textField(p.Handle),
		string(p.Status),
		label,
		strings.Join(p.PublishedChannelNames, channelSeparator),
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
		channelID,
	}
}

// textField folds CRLF to LF. A CSV reader returns CRLF inside a quoted field as LF, so
// this is the form the value reads back in.
func textField(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
