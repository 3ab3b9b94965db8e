// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Dataset.Format != FormatCSV {
		t.Errorf("Dataset.Format = %q, want csv", cfg.Dataset.Format)
	}
	if cfg.Dataset.Table != "tourism_economy" {
		t.Errorf("Dataset.Table = %q, want tourism_economy", cfg.Dataset.Table)
	}
	if cfg.Dataset.ReloadInterval != 0 {
		t.Errorf("Dataset.ReloadInterval = %v, want 0", cfg.Dataset.ReloadInterval)
	}
	if cfg.Dataset.BreakerFailures != 3 || cfg.Dataset.BreakerTimeout != 5*time.Minute {
		t.Errorf("breaker = %d/%v, want 3/5m", cfg.Dataset.BreakerFailures, cfg.Dataset.BreakerTimeout)
	}

	r := cfg.Recommend
	if r.SimilarityCosine != 0.5 || r.SimilarityBudget != 0.3 || r.SimilarityCategorical != 0.2 {
		t.Errorf("similarity weights = %v/%v/%v, want 0.5/0.3/0.2", r.SimilarityCosine, r.SimilarityBudget, r.SimilarityCategorical)
	}
	if r.GeneralTourism != 0.6 || r.GeneralEconomy != 0.4 {
		t.Errorf("general weights = %v/%v, want 0.6/0.4", r.GeneralTourism, r.GeneralEconomy)
	}
	if r.FinalSimilarity != 0.7 || r.FinalGeneral != 0.3 {
		t.Errorf("final weights = %v/%v, want 0.7/0.3", r.FinalSimilarity, r.FinalGeneral)
	}
	if r.DefaultTopN != 10 {
		t.Errorf("Recommend.DefaultTopN = %d, want 10", r.DefaultTopN)
	}
	if r.BudgetDecay != 1000 {
		t.Errorf("Recommend.BudgetDecay = %v, want 1000", r.BudgetDecay)
	}

	if !cfg.Snapshot.Enabled || cfg.Snapshot.Retain != 5 {
		t.Errorf("Snapshot = %+v, want enabled with retain 5", cfg.Snapshot)
	}

	if cfg.Server.Port != 8501 {
		t.Errorf("Server.Port = %d, want 8501", cfg.Server.Port)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"DATASET_PATH", "dataset.path"},
		{"DUCKDB_PATH", "dataset.duckdb_path"},
		{"ENRICHMENT_PATH", "dataset.enrichment_path"},
		{"DATASET_BREAKER_FAILURES", "dataset.breaker_failures"},
		{"HTTP_PORT", "server.port"},
		{"RECOMMEND_TOP_N", "recommend.default_top_n"},
		{"RECOMMEND_FINAL_SIMILARITY", "recommend.final_similarity"},
		{"SNAPSHOT_ENABLED", "snapshot.enabled"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"LOG_LEVEL", "logging.level"},
		{"log_level", "logging.level"},
		{"HOME", ""},
		{"PATH", ""},
		{"RANDOM_VAR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		path := filepath.Join(dir, "custom.yaml")
		if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		t.Setenv(ConfigPathEnvVar, path)

		if got := findConfigFile(); got != path {
			t.Errorf("findConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("CONFIG_PATH env var with non-existent file", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))

		if got := findConfigFile(); strings.HasSuffix(got, "missing.yaml") {
			t.Errorf("findConfigFile() returned a missing file: %q", got)
		}
	})
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv("DATASET_PATH", "/srv/data/world.csv")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("RECOMMEND_TOP_N", "5")
	t.Setenv("RECOMMEND_CACHE_TTL", "90s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Dataset.Path != "/srv/data/world.csv" {
		t.Errorf("Dataset.Path = %q", cfg.Dataset.Path)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Recommend.DefaultTopN != 5 {
		t.Errorf("Recommend.DefaultTopN = %d, want 5", cfg.Recommend.DefaultTopN)
	}
	if cfg.Recommend.CacheTTL != 90*time.Second {
		t.Errorf("Recommend.CacheTTL = %v, want 90s", cfg.Recommend.CacheTTL)
	}
	wantOrigins := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, wantOrigins) {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, wantOrigins)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
dataset:
  format: duckdb
  duckdb_path: /srv/data/tourism.duckdb
  enrichment_path: /srv/data/cities.csv
recommend:
  final_similarity: 0.8
  final_general: 0.2
snapshot:
  in_memory: true
server:
  port: 7000
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Dataset.Format != FormatDuckDB || cfg.Dataset.DuckDBPath != "/srv/data/tourism.duckdb" {
		t.Errorf("Dataset = %+v", cfg.Dataset)
	}
	if cfg.Dataset.EnrichmentPath != "/srv/data/cities.csv" {
		t.Errorf("Dataset.EnrichmentPath = %q", cfg.Dataset.EnrichmentPath)
	}
	if cfg.Recommend.FinalSimilarity != 0.8 || cfg.Recommend.FinalGeneral != 0.2 {
		t.Errorf("final weights = %v/%v, want 0.8/0.2", cfg.Recommend.FinalSimilarity, cfg.Recommend.FinalGeneral)
	}
	// Untouched defaults survive the file layer.
	if cfg.Recommend.GeneralTourism != 0.6 {
		t.Errorf("Recommend.GeneralTourism = %v, want default 0.6", cfg.Recommend.GeneralTourism)
	}
	if !cfg.Snapshot.InMemory {
		t.Error("Snapshot.InMemory should be true")
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7000\nlogging:\n  level: warn\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7100")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7100 {
		t.Errorf("Server.Port = %d, want env value 7100", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want file value warn", cfg.Logging.Level)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad format", map[string]string{"DATASET_FORMAT": "parquet"}, "DATASET_FORMAT"},
		{"duckdb without path", map[string]string{"DATASET_FORMAT": "duckdb"}, "DUCKDB_PATH"},
		{"port out of range", map[string]string{"HTTP_PORT": "70000"}, "HTTP_PORT"},
		{"negative weight", map[string]string{"RECOMMEND_FINAL_GENERAL": "-0.1"}, "RECOMMEND_FINAL_GENERAL"},
		{"zero top n", map[string]string{"RECOMMEND_TOP_N": "0"}, "RECOMMEND_TOP_N"},
		{"max below default", map[string]string{"RECOMMEND_TOP_N": "20", "RECOMMEND_MAX_TOP_N": "10"}, "RECOMMEND_MAX_TOP_N"},
		{"wildcard cors in production", map[string]string{"ENVIRONMENT": "production"}, "CORS_ORIGINS"},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"reload too frequent", map[string]string{"DATASET_RELOAD_INTERVAL": "1s"}, "DATASET_RELOAD_INTERVAL"},
		{"negative breaker threshold", map[string]string{"DATASET_BREAKER_FAILURES": "-1"}, "DATASET_BREAKER_FAILURES"},
		{"breaker without timeout", map[string]string{"DATASET_BREAKER_TIMEOUT": "0s"}, "DATASET_BREAKER_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "none.yaml"))
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %s", err, tt.want)
			}
		})
	}
}

func TestValidate_RateLimitDisabledSkipsBounds(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.RateLimitDisabled = true
	cfg.Security.RateLimitReqs = 0

	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled rate limit should skip bounds: %v", err)
	}
}

func TestValidate_SnapshotDisabledSkipsChecks(t *testing.T) {
	cfg := defaultConfig()
	cfg.Snapshot.Enabled = false
	cfg.Snapshot.Path = ""
	cfg.Snapshot.Retain = 0

	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled snapshot store should skip checks: %v", err)
	}
}

func TestAddr(t *testing.T) {
	cfg := defaultConfig()
	if got := cfg.Addr(); got != "0.0.0.0:8501" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8501", got)
	}
}
