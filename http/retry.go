package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fwojciec/vidinfo"
)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// withRetry calls fetch until it succeeds, fails permanently, or the delays
// are exhausted (1 initial attempt + len(delays) retries).
func withRetry(ctx context.Context, url string, delays []time.Duration, logger LogFunc, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := fetch(ctx)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || !retryable(ctx, err) {
			break
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, &vidinfo.FetchError{URL: url, Err: ctx.Err()}
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}

// retryable reports whether err is transient: a network failure, a server
// error or throttling. Client errors and cancellation are permanent.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var fe *vidinfo.FetchError
	if !errors.As(err, &fe) {
		return false
	}
	switch {
	case fe.Status == 0:
		return !errors.Is(fe.Err, ErrBodyTooLarge)
	case fe.Status == http.StatusTooManyRequests:
		return true
	case fe.Status >= 500:
		return true
	}
	return false
}
