package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bubblegoods/catalogsync/internal/shopify"
)

// RequiredScopes are the Admin API scopes the catalog tools use, with what each is needed for.
var RequiredScopes = []ScopeCheck{
	{Handle: "read_products", Purpose: "read products and their publications"},
	{Handle: "read_publications", Purpose: "list sales channels"},
	{Handle: "write_publications", Purpose: "publish products to the Hydrogen channel"},
}

// ScopeCheck is one required scope and whether the token has it
type ScopeCheck struct {
	Handle  string
	Purpose string
	Granted bool
}

// CheckAccess compares the token's granted scopes against RequiredScopes.
// write_products implies read_products, and likewise for publications.
func CheckAccess(ctx context.Context, client GraphQLExecutor) ([]ScopeCheck, error) {
	resp, err := client.Execute(ctx, shopify.AccessScopesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query access scopes: %w", err)
	}

	var result struct {
		CurrentAppInstallation *struct {
			AccessScopes []struct {
				Handle string `json:"handle"`
			} `json:"accessScopes"`
		} `json:"currentAppInstallation"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal access scopes: %w", err)
	}
	if result.CurrentAppInstallation == nil {
		return nil, fmt.Errorf("unexpected API response structure: missing currentAppInstallation")
	}

	granted := make(map[string]bool)
	for _, s := range result.CurrentAppInstallation.AccessScopes {
		granted[s.Handle] = true
	}

	checks := make([]ScopeCheck, len(RequiredScopes))
	for i, req := range RequiredScopes {
		checks[i] = req
		checks[i].Granted = granted[req.Handle] || granted[impliedBy(req.Handle)]
	}
	return checks, nil
}

func impliedBy(handle string) string {
	if rest, ok := strings.CutPrefix(handle, "read_"); ok {
		return "write_" + rest
	}
	return ""
}
