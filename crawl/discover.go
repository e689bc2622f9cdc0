package crawl

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/fwojciec/cellscan"
	"github.com/fwojciec/cellscan/bloom"
	"github.com/fwojciec/cellscan/goquery"
)

// Discovery configuration defaults.
const (
	// discoveryExpectedURLs sizes the Bloom filter used for URL dedup.
	discoveryExpectedURLs = 10000
	// discoveryFalsePositiveRate is the acceptable false positive rate.
	discoveryFalsePositiveRate = 0.01
	// DefaultMaxPages caps the pagination walk to prevent a runaway loop
	// when the site stops returning 404 for out-of-range pages.
	DefaultMaxPages = 200
)

// Discoverer walks the paginated cell explorer listing and collects the
// detail URLs of every cell it links to.
//
// The walk stops at the first page that answers 404, or at the first page
// that contributes no URL not already seen.
type Discoverer struct {
	Fetcher cellscan.Fetcher
	Limiter cellscan.Limiter

	// BaseURL is the listing root, e.g.
	// https://www.batemo.com/products/batemo-cell-explorer/
	BaseURL string

	// Mode and View are the explorer's query parameters.
	Mode string
	View string

	// MaxPages caps the walk; 0 means DefaultMaxPages.
	MaxPages int

	RetryDelays []time.Duration
}

// ListingURL builds the URL for a listing page. Page 1 carries no
// pagination parameter; later pages use product-page=N.
func (d *Discoverer) ListingURL(page int) string {
	if page <= 1 {
		return fmt.Sprintf("%s?mode=%s&view=%s", d.BaseURL, d.Mode, d.View)
	}
	return fmt.Sprintf("%s?mode=%s&view=%s&product-page=%d", d.BaseURL, d.Mode, d.View, page)
}

// Discover walks the listing pages and returns the sorted set of detail
// URLs found.
func (d *Discoverer) Discover(ctx context.Context) ([]string, error) {
	base, err := url.Parse(d.BaseURL)
	if err != nil {
		return nil, cellscan.Errorf(cellscan.EINVALID, "invalid base URL: %v", err)
	}
	pathPrefix := base.Path

	maxPages := d.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	delays := d.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	seen := bloom.NewSeenSet(discoveryExpectedURLs, discoveryFalsePositiveRate)
	var collected []string

	for page := 1; page <= maxPages; page++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		listingURL := d.ListingURL(page)

		if d.Limiter != nil {
			if err := d.Limiter.Wait(ctx, base.Host); err != nil {
				return nil, err
			}
		}

		html, err := fetchWithRetry(ctx, d.Fetcher, listingURL, delays)
		if err != nil {
			if HTTPStatus(err) == 404 {
				// Past the last page.
				break
			}
			return nil, fmt.Errorf("fetch listing page %d: %w", page, err)
		}

		links, err := goquery.ExtractListingLinks(html, d.BaseURL, pathPrefix)
		if err != nil {
			return nil, fmt.Errorf("extract links from page %d: %w", page, err)
		}

		newCount := 0
		for _, link := range links {
			// The listing page links to itself; only deeper paths are
			// cell detail pages.
			if u, err := url.Parse(link); err == nil && samePath(u.Path, pathPrefix) {
				continue
			}
			if seen.Seen(link) {
				continue
			}
			seen.Mark(link)
			collected = append(collected, link)
			newCount++
		}

		if newCount == 0 {
			break
		}
	}

	sort.Strings(collected)
	return collected, nil
}

// samePath reports whether two URL paths are equal modulo a trailing slash.
func samePath(a, b string) bool {
	if len(a) > 1 && a[len(a)-1] == '/' {
		a = a[:len(a)-1]
	}
	if len(b) > 1 && b[len(b)-1] == '/' {
		b = b[:len(b)-1]
	}
	return a == b
}
