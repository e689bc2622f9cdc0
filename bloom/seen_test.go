package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/cellscan/bloom"
	"github.com/stretchr/testify/assert"
)

func TestSeenSet_MarkAndSeen(t *testing.T) {
	t.Parallel()

	s := bloom.NewSeenSet(1000, 0.01)

	url := "https://www.batemo.com/products/batemo-cell-explorer/lg-hg2/"
	assert.False(t, s.Seen(url))

	s.Mark(url)
	assert.True(t, s.Seen(url))
}

func TestSeenSet_UnmarkedURLsStayUnseen(t *testing.T) {
	t.Parallel()

	s := bloom.NewSeenSet(10000, 0.01)

	for i := 0; i < 100; i++ {
		s.Mark(fmt.Sprintf("https://www.batemo.com/products/batemo-cell-explorer/cell-%d/", i))
	}

	// At this fill level the false positive chance is far below the
	// configured rate, so distinct URLs must test negative.
	for i := 0; i < 100; i++ {
		assert.False(t, s.Seen(fmt.Sprintf("https://www.batemo.com/products/batemo-cell-explorer/other-%d/", i)))
	}
}

func TestSeenSet_ApproxLen(t *testing.T) {
	t.Parallel()

	s := bloom.NewSeenSet(10000, 0.01)
	for i := 0; i < 100; i++ {
		s.Mark(fmt.Sprintf("https://example.com/cell-%d/", i))
	}

	assert.InDelta(t, 100, float64(s.ApproxLen()), 5)
}
