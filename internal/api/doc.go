// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

/*
Package api provides the HTTP API for Travelrec using the Chi router.

Endpoints:

	GET  /api/v1/health                         service and dataset status
	GET  /api/v1/health/live                    liveness probe
	GET  /api/v1/health/ready                   readiness probe, 503 until data is loaded
	POST /api/v1/recommendations                ranked destinations
	POST /api/v1/profile                        taste profile from liked/disliked countries
	GET  /api/v1/countries                      normalized country table (?region=)
	GET  /api/v1/countries/{country}            one country with its city aggregate
	GET  /api/v1/countries/{country}/cities     cities with ambiance (?order=, ?ambiance=)
	GET  /api/v1/dataset/summary                checksum, budget range, snapshots, engine counters
	POST /api/v1/dataset/reload                 re-read the dataset and swap the catalog
	GET  /metrics                               Prometheus metrics

Every JSON response uses the models.APIResponse envelope. Request bodies are
limited to 1 MiB, decoded with unknown fields rejected, and validated with
go-playground/validator before any scoring happens.

Middleware (global): request ID with logging context, RealIP, Recoverer,
go-chi/cors and gzip compression. API routes add go-chi/httprate limits,
security headers and Prometheus request metrics.

Handlers read the catalog's current table once per request, so a concurrent
reload never mixes two datasets within one response.
*/
package api
