// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

/*
Package middleware provides HTTP instrumentation middleware.

PrometheusMetrics records request counts, latency and in-flight requests for
every API call. The endpoint label is the chi route pattern
("/api/v1/countries/{country}"), never the raw path, so that country names in
URLs do not create one time series each.

	r := chi.NewRouter()
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
