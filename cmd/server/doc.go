// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

/*
Package main is the entry point for the Travelrec server application.

Travelrec ranks countries as travel destinations from a tourism/economy
dataset. A general ranking blends tourism and economic scores; a traveler
who names liked or disliked countries gets a personalized ranking that adds
similarity to the profile built from those countries.

# Application Architecture

The server runs under Suture v4 process supervision:

	RootSupervisor ("travelrec")
	├── DataSupervisor ("data-layer")
	│   ├── CatalogReloadService (DATASET_RELOAD_INTERVAL > 0)
	│   └── SnapshotMaintenanceService (SNAPSHOT_ENABLED=true)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Snapshot store: BadgerDB memo of normalized tables (optional)
 4. Catalog: dataset source (CSV or DuckDB) behind a circuit breaker, plus city enrichment
 5. Engine: scoring weights from configuration, response cache
 6. HTTP Server: Chi router with CORS, rate limiting and Prometheus metrics

The initial dataset load happens before the listener starts. A dataset that
cannot be read leaves the server running with an unavailable catalog; the
health endpoint reports "degraded" and recommendation responses carry a
warning until a reload succeeds.

# Configuration

Commonly used environment variables:

	DATASET_PATH=./data/tourism_economy.csv
	DATASET_FORMAT=csv            # csv, duckdb or duckdb-csv
	DUCKDB_PATH=./data/tourism.duckdb
	ENRICHMENT_PATH=./data/cities.csv
	DATASET_RELOAD_INTERVAL=1h
	DATASET_BREAKER_FAILURES=3
	SNAPSHOT_ENABLED=true
	SNAPSHOT_PATH=./data/snapshots
	HTTP_PORT=8501
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests, the supervisor stops the data layer and the snapshot store is
closed last.

# Example Usage

	export DATASET_PATH=./data/tourism_economy.csv
	export ENRICHMENT_PATH=./data/cities.csv
	./travelrec

	curl -s localhost:8501/api/v1/recommendations \
	  -d '{"budget":2000,"popularity_preference":"emerging","economic_preference":"stable",
	       "liked_countries":["Spain"],"disliked_countries":["Japan"],"top_n":5}'
*/
package main
