// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/travelrec/internal/catalog"
)

// CatalogLoader is satisfied by *catalog.Catalog.
type CatalogLoader interface {
	Load(ctx context.Context) (*catalog.Table, error)
}

// CatalogReloadConfig holds configuration for the reload service.
type CatalogReloadConfig struct {
	// LoadOnStartup loads the catalog when the service starts.
	LoadOnStartup bool

	// Interval between reloads. Zero disables periodic reloads; the service
	// then only loads on startup and waits for shutdown.
	Interval time.Duration

	// Timeout bounds a single load. Default: 2m
	Timeout time.Duration
}

// CatalogReloadService re-reads the dataset on a fixed interval so that a
// replaced CSV or DuckDB file is picked up without a restart. Unchanged data
// is cheap to reload because normalization is memoized by checksum.
type CatalogReloadService struct {
	catalog CatalogLoader
	config  CatalogReloadConfig
	logger  zerolog.Logger
	name    string
}

// NewCatalogReloadService creates a new reload service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogReloadService(cat CatalogLoader, cfg CatalogReloadConfig, logger zerolog.Logger) *CatalogReloadService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &CatalogReloadService{
		catalog: cat,
		config:  cfg,
		logger:  logger.With().Str("service", "catalog-reload").Logger(),
		name:    "catalog-reload",
	}
}

// Serve implements suture.Service.
func (s *CatalogReloadService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("load_on_startup", s.config.LoadOnStartup).
		Dur("interval", s.config.Interval).
		Msg("catalog reload service starting")

	if s.config.LoadOnStartup {
		s.reload(ctx)
	}

	if s.config.Interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("catalog reload service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.reload(ctx)
		}
	}
}

// reload performs one load. Failures are logged; the previous table stays
// in place and the next tick tries again.
func (s *CatalogReloadService) reload(ctx context.Context) {
	loadCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	table, err := s.catalog.Load(loadCtx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("scheduled catalog reload failed")
		}
		return
	}

	s.logger.Debug().
		Str("checksum", table.Checksum()).
		Bool("available", table.Available()).
		Dur("duration", time.Since(start)).
		Msg("catalog reloaded")
}

// String returns the service name for logging.
func (s *CatalogReloadService) String() string {
	return s.name
}
