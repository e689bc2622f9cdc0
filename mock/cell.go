package mock

import (
	"context"

	"github.com/fwojciec/cellscan"
)

var _ cellscan.CellService = (*CellService)(nil)

// CellService is a mock implementation of cellscan.CellService.
type CellService struct {
	UpsertCellFn     func(ctx context.Context, cell *cellscan.Cell) error
	FindCellBySlugFn func(ctx context.Context, slug string) (*cellscan.Cell, error)
	FindCellsFn      func(ctx context.Context, filter cellscan.CellFilter) ([]*cellscan.Cell, error)
}

func (s *CellService) UpsertCell(ctx context.Context, cell *cellscan.Cell) error {
	return s.UpsertCellFn(ctx, cell)
}

func (s *CellService) FindCellBySlug(ctx context.Context, slug string) (*cellscan.Cell, error) {
	return s.FindCellBySlugFn(ctx, slug)
}

func (s *CellService) FindCells(ctx context.Context, filter cellscan.CellFilter) ([]*cellscan.Cell, error) {
	return s.FindCellsFn(ctx, filter)
}
