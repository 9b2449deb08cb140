package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "github.com/bubblegoods/catalogsync/pkg/errors"
)

// EnvFile is the dotenv file both tools read before consulting the process environment.
const EnvFile = ".env.catalog"

type Config struct {
	Environment string
	LogLevel    string
	Shopify     ShopifyConfig
	Catalog     CatalogConfig
	Publish     PublishConfig
	Report      ReportConfig
}

type ShopifyConfig struct {
	ShopDomain  string // SHOPIFY_STORE_URL, scheme is stripped by the client
	AccessToken string // SHOPIFY_ADMIN_ACCESS_TOKEN
	APIVersion  string
	HTTPTimeout time.Duration
}

// CatalogConfig controls the paginated product fetch
type CatalogConfig struct {
	PageSize         int
	PageDelay        time.Duration
	RateLimitBackoff time.Duration
	MaxFetchRetries  int
}

// PublishConfig controls batching, pacing and verification of publishablePublish calls
type PublishConfig struct {
	// HydrogenPublicationID overrides the resolved headless channel when set
	HydrogenPublicationID string
	BatchSize             int
	BatchDelay            time.Duration
	CallDelay             time.Duration
	RetryBackoff          time.Duration
	VerifySample          int
	VerifyDelay           time.Duration
}

type ReportConfig struct {
	Dir string
}

// Load reads .env.catalog (if present) and the environment. A missing access token or
// store URL yields *errors.ErrMissingConfig naming every missing key.
func Load() (*Config, error) {
	return LoadFrom(EnvFile)
}

// LoadFrom is Load with an explicit dotenv path.
func LoadFrom(envFile string) (*Config, error) {
	// Missing file is fine, values may come from the environment. godotenv never overrides
	// variables that are already set.
	_ = godotenv.Load(envFile)

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHOPIFY_API_VERSION", "2024-10")
	v.SetDefault("SHOPIFY_HTTP_TIMEOUT", "30s")
	v.SetDefault("CATALOG_PAGE_SIZE", 50)
	v.SetDefault("CATALOG_PAGE_DELAY", "250ms")
	v.SetDefault("CATALOG_RATE_LIMIT_BACKOFF", "5s")
	v.SetDefault("CATALOG_MAX_FETCH_RETRIES", 10)
	v.SetDefault("PUBLISH_BATCH_SIZE", 10)
	v.SetDefault("PUBLISH_BATCH_DELAY", "1s")
	v.SetDefault("PUBLISH_CALL_DELAY", "300ms")
	v.SetDefault("PUBLISH_RETRY_BACKOFF", "5s")
	v.SetDefault("PUBLISH_VERIFY_SAMPLE", 5)
	v.SetDefault("PUBLISH_VERIFY_DELAY", "200ms")
	v.SetDefault("REPORT_DIR", ".")

	cfg := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Shopify: ShopifyConfig{
			ShopDomain:  strings.TrimSpace(os.Getenv("SHOPIFY_STORE_URL")),
			AccessToken: strings.TrimSpace(os.Getenv("SHOPIFY_ADMIN_ACCESS_TOKEN")),
			APIVersion:  v.GetString("SHOPIFY_API_VERSION"),
			HTTPTimeout: v.GetDuration("SHOPIFY_HTTP_TIMEOUT"),
		},
		Catalog: CatalogConfig{
			PageSize:         v.GetInt("CATALOG_PAGE_SIZE"),
			PageDelay:        v.GetDuration("CATALOG_PAGE_DELAY"),
			RateLimitBackoff: v.GetDuration("CATALOG_RATE_LIMIT_BACKOFF"),
			MaxFetchRetries:  v.GetInt("CATALOG_MAX_FETCH_RETRIES"),
		},
		Publish: PublishConfig{
			HydrogenPublicationID: strings.TrimSpace(v.GetString("HYDROGEN_PUBLICATION_ID")),
			BatchSize:             v.GetInt("PUBLISH_BATCH_SIZE"),
			BatchDelay:            v.GetDuration("PUBLISH_BATCH_DELAY"),
			CallDelay:             v.GetDuration("PUBLISH_CALL_DELAY"),
			RetryBackoff:          v.GetDuration("PUBLISH_RETRY_BACKOFF"),
			VerifySample:          v.GetInt("PUBLISH_VERIFY_SAMPLE"),
			VerifyDelay:           v.GetDuration("PUBLISH_VERIFY_DELAY"),
		},
		Report: ReportConfig{
			Dir: v.GetString("REPORT_DIR"),
		},
	}

	var missing []string
	if cfg.Shopify.AccessToken == "" {
		missing = append(missing, "SHOPIFY_ADMIN_ACCESS_TOKEN")
	}
	if cfg.Shopify.ShopDomain == "" {
		missing = append(missing, "SHOPIFY_STORE_URL")
	}
	if len(missing) > 0 {
		return nil, &apperrors.ErrMissingConfig{Keys: missing}
	}

	if cfg.Catalog.PageSize <= 0 {
		cfg.Catalog.PageSize = 50
	}
	if cfg.Catalog.MaxFetchRetries < 0 {
		cfg.Catalog.MaxFetchRetries = 0
	}
	if cfg.Publish.BatchSize <= 0 {
		cfg.Publish.BatchSize = 10
	}
	if cfg.Publish.VerifySample < 0 {
		cfg.Publish.VerifySample = 0
	}

	return cfg, nil
}
