package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cellscan"
)

// ExtractListingLinks extracts cell detail URLs from a listing page.
// Anchors are resolved against baseURL; only same-host links whose path
// starts with pathPrefix are kept. The returned URLs are deduplicated and
// maintain document order of first occurrence.
func ExtractListingLinks(html, baseURL, pathPrefix string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, cellscan.Errorf(cellscan.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, cellscan.Errorf(cellscan.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" || isNonHTTPLink(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		resolved.Fragment = ""

		if resolved.Host != base.Host {
			return
		}
		if !strings.HasPrefix(resolved.Path, pathPrefix) {
			return
		}

		u := resolved.String()
		if !seen[u] {
			seen[u] = true
			links = append(links, u)
		}
	})

	return links, nil
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
