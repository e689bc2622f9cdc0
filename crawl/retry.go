package crawl

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/cellscan"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// fetchWithRetry attempts a fetch with backoff delays between attempts.
// Client errors (HTTP 4xx) are not retried: the server answered, the page
// simply isn't there.
func fetchWithRetry(ctx context.Context, fetcher cellscan.Fetcher, url string, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if status := HTTPStatus(err); status >= 400 && status < 500 {
			break
		}
		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

// HTTPStatus extracts the HTTP status code attached to a fetch error,
// or 0 when the error carries none (transport failures, timeouts).
func HTTPStatus(err error) int {
	var sc interface{ HTTPStatus() int }
	if errors.As(err, &sc) {
		return sc.HTTPStatus()
	}
	return 0
}
