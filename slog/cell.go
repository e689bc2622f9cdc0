package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cellscan"
)

// Ensure LoggingCellService implements cellscan.CellService.
var _ cellscan.CellService = (*LoggingCellService)(nil)

// LoggingCellService wraps a CellService with logging of writes.
type LoggingCellService struct {
	next   cellscan.CellService
	logger *slog.Logger
}

// NewLoggingCellService creates a new LoggingCellService.
func NewLoggingCellService(next cellscan.CellService, logger *slog.Logger) *LoggingCellService {
	return &LoggingCellService{next: next, logger: logger}
}

// UpsertCell delegates to the wrapped service and logs the write.
func (s *LoggingCellService) UpsertCell(ctx context.Context, cell *cellscan.Cell) error {
	begin := time.Now()
	err := s.next.UpsertCell(ctx, cell)
	if err != nil {
		s.logger.Warn("upsert cell failed",
			"slug", cell.Slug,
			"error", err,
		)
		return err
	}
	s.logger.Debug("upserted cell",
		"slug", cell.Slug,
		"duration", time.Since(begin),
	)
	return nil
}

// FindCellBySlug delegates to the wrapped service.
func (s *LoggingCellService) FindCellBySlug(ctx context.Context, slug string) (*cellscan.Cell, error) {
	return s.next.FindCellBySlug(ctx, slug)
}

// FindCells delegates to the wrapped service.
func (s *LoggingCellService) FindCells(ctx context.Context, filter cellscan.CellFilter) ([]*cellscan.Cell, error) {
	return s.next.FindCells(ctx, filter)
}
