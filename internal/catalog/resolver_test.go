package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bubblegoods/catalogsync/internal/domain"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name         string
		channels     []domain.SalesChannel
		wantOnline   string
		wantHeadless string
	}{
		{
			name: "online store and hydrogen storefront",
			channels: []domain.SalesChannel{
				{ID: "pub-1", Name: "Online Store"},
				{ID: "pub-2", Name: "Hydrogen Storefront"},
			},
			wantOnline:   "pub-1",
			wantHeadless: "pub-2",
		},
		{
			name: "case insensitive",
			channels: []domain.SalesChannel{
				{ID: "pub-1", Name: "ONLINE STORE"},
				{ID: "pub-2", Name: "My HEADLESS shop"},
			},
			wantOnline:   "pub-1",
			wantHeadless: "pub-2",
		},
		{
			name: "online store storefront is never headless",
			channels: []domain.SalesChannel{
				{ID: "pub-1", Name: "Online Store Storefront"},
				{ID: "pub-2", Name: "Point of Sale"},
			},
			wantOnline: "pub-1",
		},
		{
			name: "first match wins",
			channels: []domain.SalesChannel{
				{ID: "pub-1", Name: "Hydrogen Bubble Goods"},
				{ID: "pub-2", Name: "Online Store"},
				{ID: "pub-3", Name: "Storefront API"},
				{ID: "pub-4", Name: "Online Store (legacy)"},
			},
			wantOnline:   "pub-2",
			wantHeadless: "pub-1",
		},
		{
			name: "no headless channel",
			channels: []domain.SalesChannel{
				{ID: "pub-1", Name: "Online Store"},
				{ID: "pub-2", Name: "Point of Sale"},
				{ID: "pub-3", Name: "Shop"},
			},
			wantOnline: "pub-1",
		},
		{
			name: "nothing matches",
			channels: []domain.SalesChannel{
				{ID: "pub-1", Name: "Point of Sale"},
			},
		},
		{
			name: "empty list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.channels)

			if tt.wantOnline == "" {
				assert.Nil(t, res.OnlineStore)
			} else {
				require.NotNil(t, res.OnlineStore)
				assert.Equal(t, tt.wantOnline, res.OnlineStore.ID)
			}
			if tt.wantHeadless == "" {
				assert.Nil(t, res.Headless)
			} else {
				require.NotNil(t, res.Headless)
				assert.Equal(t, tt.wantHeadless, res.Headless.ID)
			}
		})
	}
}

func TestResolve_DoesNotAliasInput(t *testing.T) {
	channels := []domain.SalesChannel{{ID: "pub-1", Name: "Online Store"}}
	res := Resolve(channels)
	require.NotNil(t, res.OnlineStore)

	channels[0].Name = "renamed"
	assert.Equal(t, "Online Store", res.OnlineStore.Name)
}

func TestResolution_Role(t *testing.T) {
	channels := []domain.SalesChannel{
		{ID: "pub-1", Name: "Online Store"},
		{ID: "pub-2", Name: "Hydrogen"},
		{ID: "pub-3", Name: "Point of Sale"},
	}
	res := Resolve(channels)

	assert.Equal(t, "online store", res.Role(channels[0]))
	assert.Equal(t, "headless", res.Role(channels[1]))
	assert.Equal(t, "", res.Role(channels[2]))
	assert.Equal(t, "", Resolution{}.Role(channels[0]))
}
