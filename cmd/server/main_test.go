// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/travelrec/internal/config"
	"github.com/tomtom215/travelrec/internal/recommend"
	"github.com/tomtom215/travelrec/internal/snapshot"
)

const testCSV = `country,country_code,year,tourism_receipts,tourism_arrivals,tourism_departures,gdp,inflation,unemployment
Spain,ESP,2019,79.7e9,83.5e6,..,1.39e12,0.7,14.1
Japan,JPN,2019,46e9,31.9e6,20e6,5.1e12,0.5,2.4
`

func defaultRecommendSection() config.RecommendConfig {
	return config.RecommendConfig{
		SimilarityCosine:      0.5,
		SimilarityBudget:      0.3,
		SimilarityCategorical: 0.2,
		BudgetDecay:           1000,
		GeneralTourism:        0.6,
		GeneralEconomy:        0.4,
		FinalSimilarity:       0.7,
		FinalGeneral:          0.3,
		DefaultTopN:           10,
		MaxTopN:               50,
		CacheEnabled:          true,
		CacheTTL:              5 * time.Minute,
		CacheMaxEntries:       1000,
	}
}

func TestBuildEngineConfig_DefaultsMatchEngine(t *testing.T) {
	cfg := &config.Config{Recommend: defaultRecommendSection()}

	got := buildEngineConfig(cfg)
	assert.Equal(t, recommend.DefaultConfig(), got)
	require.NoError(t, got.Validate())
}

func TestBuildEngineConfig_Overrides(t *testing.T) {
	section := defaultRecommendSection()
	section.FinalSimilarity = 0.5
	section.FinalGeneral = 0.5
	section.MaxTopN = 20
	section.CacheEnabled = false

	got := buildEngineConfig(&config.Config{Recommend: section})
	assert.InDelta(t, 0.5, got.Final.Similarity, 1e-12)
	assert.InDelta(t, 0.5, got.Final.General, 1e-12)
	assert.Equal(t, 20, got.Limits.MaxTopN)
	assert.False(t, got.Cache.Enabled)
}

func TestBuildSnapshotConfig(t *testing.T) {
	cfg := &config.Config{Snapshot: config.SnapshotConfig{
		Enabled:     true,
		Path:        "/var/lib/travelrec/snapshots",
		Compression: true,
		Retain:      3,
		EntryTTL:    24 * time.Hour,
		GCRatio:     0.7,
	}}

	got := buildSnapshotConfig(cfg)
	assert.Equal(t, snapshot.Config{
		Path:        "/var/lib/travelrec/snapshots",
		Compression: true,
		EntryTTL:    24 * time.Hour,
		Retain:      3,
		GCRatio:     0.7,
	}, got)
}

func TestNewDatasetSource(t *testing.T) {
	tests := []struct {
		name     string
		dataset  config.DatasetConfig
		wantName string
		wantErr  bool
	}{
		{
			name:     "csv",
			dataset:  config.DatasetConfig{Format: config.FormatCSV, Path: "data.csv"},
			wantName: "csv:data.csv",
		},
		{
			name:     "empty format reads csv",
			dataset:  config.DatasetConfig{Path: "data.csv"},
			wantName: "csv:data.csv",
		},
		{
			name:     "duckdb table",
			dataset:  config.DatasetConfig{Format: config.FormatDuckDB, DuckDBPath: "t.duckdb", Table: "rows"},
			wantName: "duckdb:t.duckdb/rows",
		},
		{
			name:     "duckdb over csv",
			dataset:  config.DatasetConfig{Format: config.FormatDuckDBCSV, Path: "data.csv"},
			wantName: "duckdb-csv:data.csv",
		},
		{
			name:    "unknown format",
			dataset: config.DatasetConfig{Format: "parquet"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := newDatasetSource(&config.Config{Dataset: tt.dataset})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, src.Name())
		})
	}
}

func TestInitCatalog_MemoizesAndClearsCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tourism.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o600))

	store, err := snapshot.Open(snapshot.Config{InMemory: true, Retain: 2, GCRatio: 0.5})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	engine, err := recommend.NewEngine(nil, zerolog.Nop())
	require.NoError(t, err)

	cfg := &config.Config{Dataset: config.DatasetConfig{
		Format:          config.FormatCSV,
		Path:            path,
		BreakerFailures: 3,
		BreakerTimeout:  time.Minute,
	}}
	cat, err := initCatalog(cfg, store, engine, zerolog.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	first, err := cat.Load(ctx)
	require.NoError(t, err)
	require.True(t, first.Available())
	assert.False(t, first.Memoized())
	assert.True(t, strings.HasPrefix(first.Source(), "csv:"), "breaker keeps the wrapped source name")

	req := recommend.Request{
		Budget:     2000,
		Popularity: recommend.PopularityPopular,
		Economic:   recommend.EconomicFlexible,
		TopN:       2,
		DatasetKey: first.Checksum(),
	}
	_, err = engine.Recommend(ctx, first.Profiles(), req)
	require.NoError(t, err)
	_, err = engine.Recommend(ctx, first.Profiles(), req)
	require.NoError(t, err)
	require.Equal(t, int64(1), engine.GetStats().CacheHits)

	second, err := cat.Load(ctx)
	require.NoError(t, err)
	assert.True(t, second.Memoized(), "unchanged dataset should come from the snapshot store")
	assert.Equal(t, first.Checksum(), second.Checksum())

	_, err = engine.Recommend(ctx, second.Profiles(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), engine.GetStats().CacheHits, "reload should have emptied the response cache")
}
