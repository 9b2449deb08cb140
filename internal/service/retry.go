package service

import (
	"time"

	"github.com/cenkalti/backoff/v4"

	apperrors "github.com/bubblegoods/catalogsync/pkg/errors"
)

// throttleBackOff waits the configured interval, or longer when the last throttled
// response carried a Retry-After hint.
type throttleBackOff struct {
	backoff.BackOff
	hint time.Duration
}

func newThrottleBackOff(interval time.Duration) *throttleBackOff {
	return &throttleBackOff{BackOff: backoff.NewConstantBackOff(interval)}
}

// observe records the Retry-After hint of err for the next wait.
func (b *throttleBackOff) observe(err error) {
	b.hint = apperrors.RetryAfterHint(err)
}

func (b *throttleBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next != backoff.Stop && b.hint > next {
		next = b.hint
	}
	b.hint = 0
	return next
}
