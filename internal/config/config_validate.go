// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package config

import (
	"fmt"
	"math"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}

	if err := c.validateSnapshot(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validDatasetFormats defines the allowed dataset readers
var validDatasetFormats = map[string]bool{
	FormatCSV:       true,
	FormatDuckDB:    true,
	FormatDuckDBCSV: true,
}

func (c *Config) validateDataset() error {
	if !validDatasetFormats[c.Dataset.Format] {
		return fmt.Errorf("DATASET_FORMAT must be one of: csv, duckdb, duckdb-csv")
	}

	switch c.Dataset.Format {
	case FormatDuckDB:
		if c.Dataset.DuckDBPath == "" {
			return fmt.Errorf("DUCKDB_PATH is required when DATASET_FORMAT=duckdb")
		}
	default:
		if c.Dataset.Path == "" {
			return fmt.Errorf("DATASET_PATH is required when DATASET_FORMAT=%s", c.Dataset.Format)
		}
	}

	if c.Dataset.ReloadInterval < 0 {
		return fmt.Errorf("DATASET_RELOAD_INTERVAL must be non-negative")
	}
	if c.Dataset.ReloadInterval > 0 && c.Dataset.ReloadInterval < minReloadInterval {
		return fmt.Errorf("DATASET_RELOAD_INTERVAL must be at least %v", minReloadInterval)
	}
	if c.Dataset.BreakerFailures < 0 {
		return fmt.Errorf("DATASET_BREAKER_FAILURES must be non-negative")
	}
	if c.Dataset.BreakerFailures > 0 && c.Dataset.BreakerTimeout <= 0 {
		return fmt.Errorf("DATASET_BREAKER_TIMEOUT must be positive when the breaker is enabled")
	}
	return nil
}

const minReloadInterval = 10 * time.Second

func (c *Config) validateSnapshot() error {
	if !c.Snapshot.Enabled {
		return nil
	}
	if !c.Snapshot.InMemory && c.Snapshot.Path == "" {
		return fmt.Errorf("SNAPSHOT_PATH is required when snapshots are enabled")
	}
	if c.Snapshot.Retain < 1 {
		return fmt.Errorf("SNAPSHOT_RETAIN must be at least 1")
	}
	if c.Snapshot.EntryTTL < 0 {
		return fmt.Errorf("SNAPSHOT_ENTRY_TTL must be non-negative")
	}
	if c.Snapshot.GCRatio <= 0 || c.Snapshot.GCRatio >= 1 {
		return fmt.Errorf("SNAPSHOT_GC_RATIO must be between 0 and 1 (exclusive)")
	}
	if c.Snapshot.GCInterval <= 0 {
		return fmt.Errorf("SNAPSHOT_GC_INTERVAL must be positive")
	}
	return nil
}

// validateRecommend checks weights and limits. Weights must be finite and
// non-negative; they are not required to sum to 1.
func (c *Config) validateRecommend() error {
	r := &c.Recommend
	weights := []struct {
		env   string
		value float64
	}{
		{"RECOMMEND_SIMILARITY_COSINE", r.SimilarityCosine},
		{"RECOMMEND_SIMILARITY_BUDGET", r.SimilarityBudget},
		{"RECOMMEND_SIMILARITY_CATEGORICAL", r.SimilarityCategorical},
		{"RECOMMEND_GENERAL_TOURISM", r.GeneralTourism},
		{"RECOMMEND_GENERAL_ECONOMY", r.GeneralEconomy},
		{"RECOMMEND_FINAL_SIMILARITY", r.FinalSimilarity},
		{"RECOMMEND_FINAL_GENERAL", r.FinalGeneral},
	}
	for _, w := range weights {
		if math.IsNaN(w.value) || math.IsInf(w.value, 0) || w.value < 0 {
			return fmt.Errorf("%s must be a non-negative number, got %v", w.env, w.value)
		}
	}

	if math.IsNaN(r.BudgetDecay) || math.IsInf(r.BudgetDecay, 0) || r.BudgetDecay <= 0 {
		return fmt.Errorf("RECOMMEND_BUDGET_DECAY must be positive, got %v", r.BudgetDecay)
	}
	if r.DefaultTopN < 1 {
		return fmt.Errorf("RECOMMEND_TOP_N must be at least 1")
	}
	if r.MaxTopN < r.DefaultTopN {
		return fmt.Errorf("RECOMMEND_MAX_TOP_N (%d) must be >= RECOMMEND_TOP_N (%d)", r.MaxTopN, r.DefaultTopN)
	}
	if r.CacheEnabled {
		if r.CacheTTL <= 0 {
			return fmt.Errorf("RECOMMEND_CACHE_TTL must be positive when the cache is enabled")
		}
		if r.CacheMaxEntries < 1 {
			return fmt.Errorf("RECOMMEND_CACHE_MAX_ENTRIES must be at least 1 when the cache is enabled")
		}
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

// validateSecurity validates security configuration
func (c *Config) validateSecurity() error {
	if err := c.validateCORS(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

// validateCORS rejects wildcard origins in production.
func (c *Config) validateCORS() error {
	if c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production. " +
			"Set specific origins: CORS_ORIGINS=https://yourdomain.com " +
			"or use ENVIRONMENT=development for testing purposes")
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
