package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bubblegoods/catalogsync/internal/ui"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("production", "warn")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))

	logger, err = NewLogger("development", "debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	_, err = NewLogger("development", "loud")
	assert.Error(t, err)
}

func TestBootstrap_MissingCredentials(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"SHOPIFY_ADMIN_ACCESS_TOKEN", "SHOPIFY_STORE_URL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	var out bytes.Buffer

	_, _, err := Bootstrap(ui.NewConsole(&out), "compare-catalogs")
	require.Error(t, err)
	assert.Contains(t, out.String(), "SHOPIFY_ADMIN_ACCESS_TOKEN, SHOPIFY_STORE_URL")
	assert.Contains(t, out.String(), ".env.catalog")
}

func TestBootstrap_ReadsDotenv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{"SHOPIFY_ADMIN_ACCESS_TOKEN", "SHOPIFY_STORE_URL", "LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	content := "SHOPIFY_ADMIN_ACCESS_TOKEN=shpat_x\nSHOPIFY_STORE_URL=bubble-goods.myshopify.com\nLOG_LEVEL=error\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.catalog"), []byte(content), 0o600))
	t.Cleanup(func() {
		// godotenv sets real process env vars
		os.Unsetenv("SHOPIFY_ADMIN_ACCESS_TOKEN")
		os.Unsetenv("SHOPIFY_STORE_URL")
		os.Unsetenv("LOG_LEVEL")
	})
	var out bytes.Buffer

	cfg, logger, err := Bootstrap(ui.NewConsole(&out), "list-channels")
	require.NoError(t, err)
	assert.Equal(t, "bubble-goods.myshopify.com", cfg.Shopify.ShopDomain)
	assert.False(t, logger.Core().Enabled(zap.WarnLevel))
	assert.Empty(t, out.String())
}
