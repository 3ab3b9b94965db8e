// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/travelrec/internal/catalog"
	"github.com/tomtom215/travelrec/internal/config"
	"github.com/tomtom215/travelrec/internal/dataset"
	"github.com/tomtom215/travelrec/internal/recommend"
	"github.com/tomtom215/travelrec/internal/recommend/similarity"
	"github.com/tomtom215/travelrec/internal/snapshot"
)

// buildEngineConfig creates the engine config from the application config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	r := cfg.Recommend
	return &recommend.Config{
		Similarity: similarity.Weights{
			Cosine:      r.SimilarityCosine,
			Budget:      r.SimilarityBudget,
			Categorical: r.SimilarityCategorical,
		},
		BudgetDecay: r.BudgetDecay,
		General: recommend.GeneralWeights{
			Tourism: r.GeneralTourism,
			Economy: r.GeneralEconomy,
		},
		Final: recommend.FinalWeights{
			Similarity: r.FinalSimilarity,
			General:    r.FinalGeneral,
		},
		Limits: recommend.LimitsConfig{
			DefaultTopN: r.DefaultTopN,
			MaxTopN:     r.MaxTopN,
		},
		Cache: recommend.CacheConfig{
			Enabled:    r.CacheEnabled,
			TTL:        r.CacheTTL,
			MaxEntries: r.CacheMaxEntries,
		},
	}
}

// buildSnapshotConfig maps the snapshot section onto the store config.
func buildSnapshotConfig(cfg *config.Config) snapshot.Config {
	s := cfg.Snapshot
	return snapshot.Config{
		Path:        s.Path,
		InMemory:    s.InMemory,
		Compression: s.Compression,
		EntryTTL:    s.EntryTTL,
		Retain:      s.Retain,
		GCRatio:     s.GCRatio,
	}
}

// newDatasetSource picks the reader for DATASET_FORMAT.
func newDatasetSource(cfg *config.Config) (dataset.Source, error) {
	d := cfg.Dataset
	switch d.Format {
	case config.FormatCSV, "":
		return &dataset.CSVSource{Path: d.Path}, nil
	case config.FormatDuckDB:
		return &dataset.DuckDBSource{DatabasePath: d.DuckDBPath, Table: d.Table}, nil
	case config.FormatDuckDBCSV:
		return &dataset.DuckDBSource{CSVPath: d.Path}, nil
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", d.Format)
	}
}

// initCatalog wires the dataset source, the optional snapshot memo and the
// engine cache invalidation into a new catalog. The catalog is not loaded.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initCatalog(cfg *config.Config, store *snapshot.Store, engine *recommend.Engine, logger zerolog.Logger) (*catalog.Catalog, error) {
	src, err := newDatasetSource(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Dataset.BreakerFailures > 0 {
		src = dataset.NewBreakerSource(src, dataset.BreakerConfig{
			Failures: uint32(cfg.Dataset.BreakerFailures), //nolint:gosec // validated non-negative
			Timeout:  cfg.Dataset.BreakerTimeout,
		})
	}

	opts := catalog.Options{
		Source:         src,
		EnrichmentPath: cfg.Dataset.EnrichmentPath,
	}
	if store != nil {
		opts.Memo = &snapshot.Memo{Backend: store, Source: src.Name()}
	}

	cat := catalog.New(opts)
	cat.OnReload(func(t *catalog.Table) {
		engine.ClearCache()
		logger.Debug().Str("checksum", t.Checksum()).Msg("recommendation cache cleared after reload")
	})

	logger.Info().
		Str("source", src.Name()).
		Str("enrichment", cfg.Dataset.EnrichmentPath).
		Bool("snapshots", store != nil).
		Int("breaker_failures", cfg.Dataset.BreakerFailures).
		Msg("catalog configured")

	return cat, nil
}
