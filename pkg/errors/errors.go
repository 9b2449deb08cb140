package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrMissingConfig is returned when required configuration keys are unset
type ErrMissingConfig struct {
	Keys []string
}

func (e *ErrMissingConfig) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Keys, ", "))
}

// ErrRateLimited is returned when Shopify throttles a request (HTTP 429 or a THROTTLED GraphQL error).
// RetryAfter is zero when the response carried no hint.
type ErrRateLimited struct {
	Message    string
	RetryAfter time.Duration
}

func (e *ErrRateLimited) Error() string {
	if e.Message != "" {
		return "rate limit: " + e.Message
	}
	return "rate limit exceeded"
}

// ErrUserErrors wraps the userErrors list of a mutation payload
type ErrUserErrors struct {
	Operation string
	Messages  []string
}

func (e *ErrUserErrors) Error() string {
	return fmt.Sprintf("%s userErrors: %s", e.Operation, strings.Join(e.Messages, ", "))
}

// IsRateLimited reports whether err (or anything it wraps) is a throttling signal.
func IsRateLimited(err error) bool {
	var rl *ErrRateLimited
	return errors.As(err, &rl)
}

// IsNotFound reports whether err wraps an *ErrNotFound.
func IsNotFound(err error) bool {
	var nf *ErrNotFound
	return errors.As(err, &nf)
}

// RetryAfterHint returns how long a throttled response asked the caller to wait, or zero.
func RetryAfterHint(err error) time.Duration {
	var rl *ErrRateLimited
	if errors.As(err, &rl) {
		return rl.RetryAfter
	}
	return 0
}
