package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/bubblegoods/catalogsync/pkg/errors"
)

func TestThrottleBackOff(t *testing.T) {
	b := newThrottleBackOff(time.Second)

	assert.Equal(t, time.Second, b.NextBackOff(), "no hint uses the configured interval")

	b.observe(fmt.Errorf("page 1: %w", &apperrors.ErrRateLimited{RetryAfter: 3 * time.Second}))
	assert.Equal(t, 3*time.Second, b.NextBackOff(), "a longer hint wins")
	assert.Equal(t, time.Second, b.NextBackOff(), "the hint applies to one wait only")

	b.observe(&apperrors.ErrRateLimited{RetryAfter: 10 * time.Millisecond})
	assert.Equal(t, time.Second, b.NextBackOff(), "a shorter hint never shortens the wait")

	b.observe(errors.New("boom"))
	assert.Equal(t, time.Second, b.NextBackOff())
}

func TestThrottleBackOff_RespectsRetryCap(t *testing.T) {
	b := newThrottleBackOff(0)
	capped := backoff.WithMaxRetries(b, 1)

	b.observe(&apperrors.ErrRateLimited{RetryAfter: time.Second})
	assert.Equal(t, time.Second, capped.NextBackOff())

	b.observe(&apperrors.ErrRateLimited{RetryAfter: time.Second})
	assert.Equal(t, backoff.Stop, capped.NextBackOff())
}
