// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Configuration Categories:
//
//  1. Data:
//     - Dataset: tourism/economy dataset location and format, city enrichment
//     - Snapshot: BadgerDB store memoizing normalized tables
//
//  2. Engine:
//     - Recommend: scoring weights, result limits and response cache
//
//  3. Serving:
//     - Server: HTTP listener
//     - Security: CORS and rate limiting
//
//  4. Observability:
//     - Logging: Log levels and output formats
type Config struct {
	Dataset   DatasetConfig   `koanf:"dataset"`
	Snapshot  SnapshotConfig  `koanf:"snapshot"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// Dataset formats.
const (
	FormatCSV       = "csv"
	FormatDuckDB    = "duckdb"
	FormatDuckDBCSV = "duckdb-csv"
)

// DatasetConfig locates the tourism/economy dataset.
type DatasetConfig struct {
	// Path is the CSV export. Read directly for format "csv", through
	// DuckDB's read_csv for "duckdb-csv".
	// Default: ./data/tourism_economy.csv
	Path string `koanf:"path"`

	// Format selects the reader: csv, duckdb or duckdb-csv.
	// Default: csv
	Format string `koanf:"format"`

	// DuckDBPath is the database file read when Format is duckdb.
	DuckDBPath string `koanf:"duckdb_path"`

	// Table is the DuckDB table holding the records.
	// Default: tourism_economy
	Table string `koanf:"table"`

	// EnrichmentPath is the city/hotel CSV. Empty disables enrichment.
	EnrichmentPath string `koanf:"enrichment_path"`

	// ReloadInterval re-reads the dataset periodically. Zero loads once.
	// Default: 0
	ReloadInterval time.Duration `koanf:"reload_interval"`

	// BreakerFailures is the number of consecutive failed reads that opens
	// the circuit breaker around the source. Zero disables the breaker.
	// Default: 3
	BreakerFailures int `koanf:"breaker_failures"`

	// BreakerTimeout is how long the breaker stays open before a trial read.
	// Default: 5m
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`
}

// SnapshotConfig controls memoization of normalized tables.
type SnapshotConfig struct {
	// Enabled stores normalized tables keyed by dataset checksum so that an
	// unchanged dataset is not normalized again after a restart.
	// Default: true
	Enabled bool `koanf:"enabled"`

	// Path is the BadgerDB directory.
	// Default: ./data/snapshots
	Path string `koanf:"path"`

	// InMemory keeps snapshots in memory only.
	InMemory bool `koanf:"in_memory"`

	// Compression enables Snappy block compression.
	// Default: true
	Compression bool `koanf:"compression"`

	// Retain is the number of snapshots kept after each store.
	// Default: 5
	Retain int `koanf:"retain"`

	// EntryTTL expires snapshots. Zero keeps them until pruned.
	EntryTTL time.Duration `koanf:"entry_ttl"`

	// GCRatio is the BadgerDB value log discard ratio.
	// Default: 0.5
	GCRatio float64 `koanf:"gc_ratio"`

	// GCInterval is how often value log GC runs.
	// Default: 1h
	GCInterval time.Duration `koanf:"gc_interval"`
}

// RecommendConfig holds the ranking weights and limits.
// The defaults are the fixed production weights; overrides are explicit.
type RecommendConfig struct {
	// Similarity blend: cosine, budget distance and categorical overlap.
	// Default: 0.5 / 0.3 / 0.2
	SimilarityCosine      float64 `koanf:"similarity_cosine"`
	SimilarityBudget      float64 `koanf:"similarity_budget"`
	SimilarityCategorical float64 `koanf:"similarity_categorical"`

	// BudgetDecay is the USD gap at which budget similarity falls to 1/e.
	// Default: 1000
	BudgetDecay float64 `koanf:"budget_decay"`

	// General score blend of tourism and economy scores.
	// Default: 0.6 / 0.4
	GeneralTourism float64 `koanf:"general_tourism"`
	GeneralEconomy float64 `koanf:"general_economy"`

	// Final score blend of similarity and general score.
	// Default: 0.7 / 0.3
	FinalSimilarity float64 `koanf:"final_similarity"`
	FinalGeneral    float64 `koanf:"final_general"`

	// DefaultTopN is the result count when a request does not set one.
	// Default: 10
	DefaultTopN int `koanf:"default_top_n"`

	// MaxTopN caps a request's result count.
	// Default: 50
	MaxTopN int `koanf:"max_top_n"`

	// CacheEnabled turns on the response cache.
	// Default: true
	CacheEnabled bool `koanf:"cache_enabled"`

	// CacheTTL is how long to cache recommendation results.
	// Default: 5m
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// CacheMaxEntries bounds the response cache.
	// Default: 1000
	CacheMaxEntries int `koanf:"cache_max_entries"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // Environment mode: "development", "staging", "production" (default: "development")
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration for zerolog.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// ShouldWarnAboutCORS reports whether a wildcard origin is configured
// outside production, where validation would have rejected it.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS()
}
