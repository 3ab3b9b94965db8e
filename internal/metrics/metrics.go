// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

// Package metrics exposes Prometheus instrumentation for the recommender,
// the dataset catalog and the HTTP API. All collectors register with the
// default registry and are served at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"personalized", "outcome"}, // outcome: ranked, empty_filter, no_data
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time spent ranking candidates for one request",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)

	RecommendCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates",
			Help:    "Number of candidates remaining after hard filters",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 200},
		},
	)

	SimilarityFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_similarity_failures_total",
			Help: "Similarity batches that failed and fell back to the general score",
		},
		[]string{"scorer"},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	// Dataset Metrics
	DatasetLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_loads_total",
			Help: "Dataset load attempts by origin",
		},
		[]string{"origin", "result"}, // origin: source, snapshot; result: ok, unavailable, stale
	)

	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Time spent reading and normalizing the dataset",
			Buckets: prometheus.DefBuckets,
		},
	)

	CatalogCountries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_countries",
			Help: "Countries in the active normalized table",
		},
	)

	CatalogCities = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_enrichment_cities",
			Help: "Cities in the active enrichment table",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Calls made through a circuit breaker by result",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordRecommendation records one ranking pass.
func RecordRecommendation(personalized bool, outcome string, candidates int, duration time.Duration) {
	label := "false"
	if personalized {
		label = "true"
	}
	RecommendRequests.WithLabelValues(label, outcome).Inc()
	RecommendCandidates.Observe(float64(candidates))
	RecommendDuration.Observe(duration.Seconds())
}

// RecordSimilarityFailure counts a batch that fell back to the general score.
func RecordSimilarityFailure(scorer string) {
	SimilarityFailures.WithLabelValues(scorer).Inc()
}

// RecordCacheLookup counts a recommendation cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
		return
	}
	RecommendCacheMisses.Inc()
}

// RecordDatasetLoad records a dataset load and updates the catalog gauges.
func RecordDatasetLoad(origin, result string, duration time.Duration, countries, cities int) {
	DatasetLoads.WithLabelValues(origin, result).Inc()
	DatasetLoadDuration.Observe(duration.Seconds())
	CatalogCountries.Set(float64(countries))
	CatalogCities.Set(float64(cities))
}

// RecordBreakerCall counts one call through the named circuit breaker.
func RecordBreakerCall(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordBreakerTransition records a state change; states are 0 closed,
// 1 half-open and 2 open.
func RecordBreakerTransition(name, from, to string, state float64) {
	CircuitBreakerState.WithLabelValues(name).Set(state)
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
