// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SnapshotMaintainer is satisfied by *snapshot.Store.
type SnapshotMaintainer interface {
	Prune(ctx context.Context) (int, error)
	RunGC() error
}

// SnapshotMaintenanceService prunes old snapshots and runs BadgerDB value
// log GC on a fixed interval.
type SnapshotMaintenanceService struct {
	store    SnapshotMaintainer
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewSnapshotMaintenanceService creates the service. A non-positive
// interval defaults to one hour.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSnapshotMaintenanceService(store SnapshotMaintainer, interval time.Duration, logger zerolog.Logger) *SnapshotMaintenanceService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SnapshotMaintenanceService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "snapshot-maintenance").Logger(),
		name:     "snapshot-maintenance",
	}
}

// Serve implements suture.Service.
func (s *SnapshotMaintenanceService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.maintain(ctx)
		}
	}
}

func (s *SnapshotMaintenanceService) maintain(ctx context.Context) {
	removed, err := s.store.Prune(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("snapshot prune failed")
	} else if removed > 0 {
		s.logger.Info().Int("removed", removed).Msg("pruned old snapshots")
	}

	if err := s.store.RunGC(); err != nil {
		s.logger.Warn().Err(err).Msg("snapshot value log GC failed")
	}
}

// String returns the service name for logging.
func (s *SnapshotMaintenanceService) String() string {
	return s.name
}
