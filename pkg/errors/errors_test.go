package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrMissingConfig_NamesEveryKey(t *testing.T) {
	err := &ErrMissingConfig{Keys: []string{"SHOPIFY_ADMIN_ACCESS_TOKEN", "SHOPIFY_STORE_URL"}}
	assert.Equal(t, "missing required environment variables: SHOPIFY_ADMIN_ACCESS_TOKEN, SHOPIFY_STORE_URL", err.Error())
}

func TestIsRateLimited(t *testing.T) {
	wrapped := fmt.Errorf("fetch page: %w", &ErrRateLimited{Message: "Throttled"})
	assert.True(t, IsRateLimited(wrapped))
	assert.Equal(t, "fetch page: rate limit: Throttled", wrapped.Error())

	assert.False(t, IsRateLimited(errors.New("rate limit in plain text")))
	assert.False(t, IsRateLimited(nil))
}

func TestIsNotFound(t *testing.T) {
	err := fmt.Errorf("publish: %w", &ErrNotFound{Resource: "catalog diff report"})
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "publish: catalog diff report not found", err.Error())
	assert.Equal(t, "publication not found: gid://shopify/Publication/1", (&ErrNotFound{Resource: "publication", ID: "gid://shopify/Publication/1"}).Error())
}

func TestRetryAfterHint(t *testing.T) {
	assert.Equal(t, 2*time.Second, RetryAfterHint(fmt.Errorf("wrapped: %w", &ErrRateLimited{RetryAfter: 2 * time.Second})))
	assert.Zero(t, RetryAfterHint(&ErrRateLimited{Message: "Throttled"}))
	assert.Zero(t, RetryAfterHint(errors.New("other")))
}
