// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/travelrec/config.yaml",
	"/etc/travelrec/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path:            "./data/tourism_economy.csv",
			Format:          FormatCSV,
			DuckDBPath:      "",
			Table:           "tourism_economy",
			EnrichmentPath:  "",
			ReloadInterval:  0, // load once
			BreakerFailures: 3,
			BreakerTimeout:  5 * time.Minute,
		},
		Snapshot: SnapshotConfig{
			Enabled:     true,
			Path:        "./data/snapshots",
			InMemory:    false,
			Compression: true,
			Retain:      5,
			EntryTTL:    0,
			GCRatio:     0.5,
			GCInterval:  time.Hour,
		},
		Recommend: RecommendConfig{
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
		},
		Server: ServerConfig{
			Port:        8501,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// DATASET_PATH -> dataset.path
	// RECOMMEND_TOP_N -> recommend.default_top_n
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Dataset
	"dataset_path":             "dataset.path",
	"dataset_format":           "dataset.format",
	"duckdb_path":              "dataset.duckdb_path",
	"dataset_table":            "dataset.table",
	"enrichment_path":          "dataset.enrichment_path",
	"dataset_reload_interval":  "dataset.reload_interval",
	"dataset_breaker_failures": "dataset.breaker_failures",
	"dataset_breaker_timeout":  "dataset.breaker_timeout",

	// Snapshot store
	"snapshot_enabled":     "snapshot.enabled",
	"snapshot_path":        "snapshot.path",
	"snapshot_in_memory":   "snapshot.in_memory",
	"snapshot_compression": "snapshot.compression",
	"snapshot_retain":      "snapshot.retain",
	"snapshot_entry_ttl":   "snapshot.entry_ttl",
	"snapshot_gc_ratio":    "snapshot.gc_ratio",
	"snapshot_gc_interval": "snapshot.gc_interval",

	// Recommendation engine
	"recommend_similarity_cosine":      "recommend.similarity_cosine",
	"recommend_similarity_budget":      "recommend.similarity_budget",
	"recommend_similarity_categorical": "recommend.similarity_categorical",
	"recommend_budget_decay":           "recommend.budget_decay",
	"recommend_general_tourism":        "recommend.general_tourism",
	"recommend_general_economy":        "recommend.general_economy",
	"recommend_final_similarity":       "recommend.final_similarity",
	"recommend_final_general":          "recommend.final_general",
	"recommend_top_n":                  "recommend.default_top_n",
	"recommend_max_top_n":              "recommend.max_top_n",
	"recommend_cache_enabled":          "recommend.cache_enabled",
	"recommend_cache_ttl":              "recommend.cache_ttl",
	"recommend_cache_max_entries":      "recommend.cache_max_entries",

	// Server
	"http_host":    "server.host",
	"http_port":    "server.port",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - DATASET_PATH -> dataset.path
//   - HTTP_PORT -> server.port
//   - RECOMMEND_TOP_N -> recommend.default_top_n
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped variables are skipped so the environment cannot pollute config.
	return ""
}
