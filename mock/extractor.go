package mock

import "github.com/fwojciec/cellscan"

var _ cellscan.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of cellscan.Extractor.
type Extractor struct {
	ExtractFn func(html, detailURL string) (*cellscan.Cell, error)
}

func (e *Extractor) Extract(html, detailURL string) (*cellscan.Cell, error) {
	return e.ExtractFn(html, detailURL)
}
