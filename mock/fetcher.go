// Package mock provides function-field mock implementations of cellscan
// interfaces for testing.
package mock

import (
	"context"

	"github.com/fwojciec/cellscan"
)

var _ cellscan.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of cellscan.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

var _ cellscan.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of cellscan.Limiter.
type Limiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *Limiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}
