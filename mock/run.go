package mock

import (
	"context"

	"github.com/fwojciec/cellscan"
)

var _ cellscan.RunService = (*RunService)(nil)

// RunService is a mock implementation of cellscan.RunService.
type RunService struct {
	BeginRunFn       func(ctx context.Context, run *cellscan.Run) error
	FinishRunFn      func(ctx context.Context, run *cellscan.Run) error
	LogResultFn      func(ctx context.Context, entry *cellscan.LogEntry) error
	FindRunByIDFn    func(ctx context.Context, id string) (*cellscan.Run, error)
	FindRunsFn       func(ctx context.Context) ([]*cellscan.Run, error)
	FindLogEntriesFn func(ctx context.Context, runID string) ([]*cellscan.LogEntry, error)
}

func (s *RunService) BeginRun(ctx context.Context, run *cellscan.Run) error {
	return s.BeginRunFn(ctx, run)
}

func (s *RunService) FinishRun(ctx context.Context, run *cellscan.Run) error {
	return s.FinishRunFn(ctx, run)
}

func (s *RunService) LogResult(ctx context.Context, entry *cellscan.LogEntry) error {
	return s.LogResultFn(ctx, entry)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*cellscan.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context) ([]*cellscan.Run, error) {
	return s.FindRunsFn(ctx)
}

func (s *RunService) FindLogEntries(ctx context.Context, runID string) ([]*cellscan.LogEntry, error) {
	return s.FindLogEntriesFn(ctx, runID)
}
