package cellscan

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch returns the response body for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)
}

// Limiter rate-limits requests on a per-domain basis.
type Limiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled before then.
	Wait(ctx context.Context, domain string) error
}
