// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

/*
Package config provides centralized configuration management for Travelrec.

Configuration is layered with Koanf v2: struct defaults, then an optional
YAML file, then environment variables. Only mapped environment variables are
read; anything else in the environment is ignored.

# Config File

The first existing file wins:

  - $CONFIG_PATH
  - config.yaml, config.yml
  - /etc/travelrec/config.yaml, /etc/travelrec/config.yml

Example:

	dataset:
	  path: ./data/tourism_economy.csv
	  format: csv
	  enrichment_path: ./data/city_hotels.csv
	recommend:
	  default_top_n: 10
	  final_similarity: 0.7
	  final_general: 0.3
	server:
	  port: 8501

# Environment Variables

Dataset:
  - DATASET_PATH: CSV export (default: ./data/tourism_economy.csv)
  - DATASET_FORMAT: csv, duckdb or duckdb-csv (default: csv)
  - DUCKDB_PATH: DuckDB database file for format duckdb
  - DATASET_TABLE: DuckDB table (default: tourism_economy)
  - ENRICHMENT_PATH: city/hotel CSV (optional)
  - DATASET_RELOAD_INTERVAL: periodic reload, 0 disables (default: 0)
  - DATASET_BREAKER_FAILURES: consecutive failed reads that open the source
    circuit breaker, 0 disables (default: 3)
  - DATASET_BREAKER_TIMEOUT: open period before a trial read (default: 5m)

Snapshots:
  - SNAPSHOT_ENABLED, SNAPSHOT_PATH, SNAPSHOT_IN_MEMORY, SNAPSHOT_RETAIN
  - SNAPSHOT_COMPRESSION, SNAPSHOT_ENTRY_TTL, SNAPSHOT_GC_RATIO, SNAPSHOT_GC_INTERVAL

Recommendation engine:
  - RECOMMEND_SIMILARITY_COSINE / _BUDGET / _CATEGORICAL (default: 0.5/0.3/0.2)
  - RECOMMEND_GENERAL_TOURISM / _ECONOMY (default: 0.6/0.4)
  - RECOMMEND_FINAL_SIMILARITY / _GENERAL (default: 0.7/0.3)
  - RECOMMEND_BUDGET_DECAY (default: 1000)
  - RECOMMEND_TOP_N, RECOMMEND_MAX_TOP_N (default: 10, 50)
  - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_TTL, RECOMMEND_CACHE_MAX_ENTRIES

Server and security:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8501), HTTP_TIMEOUT
  - ENVIRONMENT: development, staging or production
  - CORS_ORIGINS: comma-separated list
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
