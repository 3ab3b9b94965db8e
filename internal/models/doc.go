// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

/*
Package models defines the HTTP API data structures for Travelrec.

Key Components:

  - APIResponse: Standard response wrapper with Metadata and APIError
  - RecommendationRequest / RecommendationResponse: ranking boundary
  - ProfileRequest / ProfileResponse: taste profile extraction
  - CountryListResponse, CountryDetail, CityListResponse: catalog browsing
  - DatasetSummaryResponse: loaded dataset, snapshots and engine counters
  - HealthStatus: health check payload

Request types carry go-playground/validator tags and are validated with the
internal/validation package before they reach the engine. Domain types
(dataset.CountryProfile, recommend.ScoredCandidate) are embedded rather than
copied so that their JSON shape stays defined in one place.
*/
package models
