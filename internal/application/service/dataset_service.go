// Package service wires storage to the allocation engine: it owns the
// in-memory dataset snapshot the engine reads and the ledger writes that
// invalidate it.
package service

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/config"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/domain/dataset"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/infrastructure/storage"
)

// DatasetService serves a consistent snapshot of the retained transaction
// window. Snapshots are rebuilt from storage when the TTL elapses, on
// explicit refresh, or after a new issuance is recorded; in-flight readers
// keep the snapshot they were handed, so a refresh never tears a
// calculation.
type DatasetService struct {
	repo           storage.Repository
	logger         *slog.Logger
	ttl            time.Duration
	retentionYears int
	now            func() time.Time

	mu   sync.RWMutex
	snap *dataset.Snapshot
}

// NewDatasetService creates a dataset service over the given repository.
func NewDatasetService(repo storage.Repository, cfg config.DatasetConfig, logger *slog.Logger) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetService{
		repo:           repo,
		logger:         logger,
		ttl:            cfg.CacheTTL(),
		retentionYears: cfg.RetentionYears,
		now:            time.Now,
	}
}

// Snapshot returns the current dataset snapshot, rebuilding it from
// storage when none is cached or the cached one has expired.
func (s *DatasetService) Snapshot() (*dataset.Snapshot, error) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	if snap != nil && s.now().Sub(snap.LoadedAt) < s.ttl {
		return snap, nil
	}
	return s.Refresh()
}

// Refresh rebuilds the snapshot from storage unconditionally.
func (s *DatasetService) Refresh() (*dataset.Snapshot, error) {
	since := s.retentionStart()

	transactions, err := s.repo.LoadTransactions(since)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh dataset snapshot: %w", err)
	}

	snap := dataset.NewSnapshot(transactions)
	snap.LoadedAt = s.now().UTC()

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.logger.Info("dataset snapshot refreshed",
		"transactions", snap.Len(),
		"since", since.Format("2006-01-02"),
	)
	return snap, nil
}

// Invalidate drops the cached snapshot; the next Snapshot call rebuilds it.
func (s *DatasetService) Invalidate() {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()
}

// RecordIssuance persists a new ledger row and invalidates the snapshot so
// subsequent calculations see it.
func (s *DatasetService) RecordIssuance(tx *dataset.Transaction) error {
	if err := s.repo.SaveTransaction(tx); err != nil {
		return fmt.Errorf("failed to record issuance: %w", err)
	}
	s.Invalidate()
	return nil
}

// retentionStart returns the first instant of the oldest retained
// calendar year.
func (s *DatasetService) retentionStart() time.Time {
	year := s.now().UTC().Year() - s.retentionYears
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}
