package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bubblegoods/catalogsync/internal/domain"
	"github.com/bubblegoods/catalogsync/internal/shopify"
	apperrors "github.com/bubblegoods/catalogsync/pkg/errors"
)

// FindLatest returns the lexicographically greatest catalog-diff-*.csv file in dir.
func FindLatest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("list report dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, FilePrefix) || !strings.HasSuffix(name, FileExt) {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", &apperrors.ErrNotFound{Resource: "catalog diff report", ID: dir}
	}

	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}

// ReadOnlineStoreOnly returns the rows of a diff report that are published to the Online
// Store only. When onlineStoreID is set and a row carries a channel id, rows are matched
// on that id; otherwise the availability label must read "Online Store". The first line is
// the header even when it does not parse. Rows with fewer than five columns, or that do
// not parse, are skipped.
func ReadOnlineStoreOnly(path, onlineStoreID string) ([]domain.ReportProduct, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var products []domain.ReportProduct
	header := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				header = false
				continue
			}
			return nil, fmt.Errorf("read report: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(rec) < minColumns || strings.TrimSpace(rec[colID]) == "" {
			continue
		}
		if !isOnlineStoreOnly(rec, onlineStoreID) {
			continue
		}

		id := strings.TrimSpace(rec[colID])
		products = append(products, domain.ReportProduct{
			ID:        shopify.ProductGID(id),
			ShopifyID: id,
			Title:     rec[colTitle],
			Handle:    rec[colHandle],
			Status:    domain.ProductStatus(rec[colStatus]),
		})
	}

	return products, nil
}

func isOnlineStoreOnly(rec []string, onlineStoreID string) bool {
	if onlineStoreID != "" && len(rec) > colChannelID && rec[colChannelID] != "" {
		return rec[colChannelID] == onlineStoreID
	}
	return rec[colAvailability] == domain.AvailabilityOnlineStore
}
