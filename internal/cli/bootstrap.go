// Package cli holds the startup sequence shared by the catalog tools.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bubblegoods/catalogsync/internal/config"
	"github.com/bubblegoods/catalogsync/internal/ui"
	apperrors "github.com/bubblegoods/catalogsync/pkg/errors"
)

// Bootstrap loads configuration and builds the run logger. Configuration problems are
// reported on the console before being returned.
func Bootstrap(console *ui.Console, tool string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		var missing *apperrors.ErrMissingConfig
		if errors.As(err, &missing) {
			console.Error("❌ Missing required environment variables: %s", strings.Join(missing.Keys, ", "))
			console.Muted("Please create a %s file with SHOPIFY_ADMIN_ACCESS_TOKEN and SHOPIFY_STORE_URL", config.EnvFile)
			return nil, nil, err
		}
		console.Error("❌ Failed to load configuration: %v", err)
		return nil, nil, err
	}

	logger, err := NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		console.Error("❌ %v", err)
		return nil, nil, err
	}
	logger = logger.With(
		zap.String("tool", tool),
		zap.String("run_id", uuid.NewString()),
	)
	return cfg, logger, nil
}

// NewLogger builds a production logger for environment "production" and a development
// logger otherwise, at the given level.
func NewLogger(environment, level string) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if environment == "production" {
		zcfg = zap.NewProductionConfig()
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	zcfg.Level = lvl
	return zcfg.Build()
}
