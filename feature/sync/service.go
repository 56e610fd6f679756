package sync

import (
	"context"

	"ck-services/core/feed"
	"ck-services/feature/catalog"

	"go.uber.org/zap"
)

// Service orchestrates reconciliation runs: lock acquisition, feed fetch and
// engine execution.
type Service struct {
	engine *Engine
	source feed.Source
	lock   *RunLock
	logger *zap.Logger
}

// NewService creates a new sync service.
func NewService(store catalog.Store, source feed.Source, logger *zap.Logger) *Service {
	return &Service{
		engine: NewEngine(store, logger),
		source: source,
		lock:   NewRunLock(),
		logger: logger,
	}
}

// RunOnce executes a single reconciliation run. If the feed cannot be
// fetched the run fails fast with the source error, performs zero writes and
// produces no report. Overlapping runs fail with ErrRunActive.
func (s *Service) RunOnce(ctx context.Context) (*Report, error) {
	token, ok := s.lock.TryAcquire()
	if !ok {
		return nil, ErrRunActive
	}
	defer token.Release()

	s.logger.Info("Fetching feed snapshot")
	rows, err := s.source.Fetch(ctx)
	if err != nil {
		s.logger.Error("Feed fetch failed, aborting run", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Feed snapshot fetched", zap.Int("rows", len(rows)))

	return s.engine.Run(ctx, token, rows)
}
