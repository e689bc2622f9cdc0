// Package bloom tracks which detail URLs a listing walk has already
// collected, using a Bloom filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// SeenSet answers "has this URL been collected before?" for the
// pagination walk. A false positive drops a URL that was never seen;
// sized generously, that chance stays below the configured rate, and a
// re-run picks the URL up again. False negatives cannot occur.
type SeenSet struct {
	f *bloom.BloomFilter
}

// NewSeenSet creates a set sized for the expected number of URLs at the
// given false positive rate.
func NewSeenSet(expected uint, fpRate float64) *SeenSet {
	return &SeenSet{
		f: bloom.NewWithEstimates(expected, fpRate),
	}
}

// Seen reports whether the URL was possibly marked before.
func (s *SeenSet) Seen(url string) bool {
	return s.f.TestString(url)
}

// Mark records the URL as collected.
func (s *SeenSet) Mark(url string) {
	s.f.AddString(url)
}

// ApproxLen returns the approximate number of URLs marked so far.
func (s *SeenSet) ApproxLen() uint {
	return uint(s.f.ApproximatedSize())
}
