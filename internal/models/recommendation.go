// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package models

import (
	"time"

	"github.com/tomtom215/travelrec/internal/dataset"
	"github.com/tomtom215/travelrec/internal/enrichment"
	"github.com/tomtom215/travelrec/internal/profile"
	"github.com/tomtom215/travelrec/internal/recommend"
	"github.com/tomtom215/travelrec/internal/snapshot"
)

// Request size limits shared by the recommendation and profile endpoints.
const (
	MaxSelectedCountries = 50
	MaxNameLength        = 100
)

// RecommendationRequest is the body of POST /api/v1/recommendations.
//
// Example:
//
//	{
//	  "budget": 2500,
//	  "popularity_preference": "emerging",
//	  "economic_preference": "stable",
//	  "liked_countries": ["Portugal", "Greece"],
//	  "disliked_countries": ["Germany"],
//	  "top_n": 10
//	}
type RecommendationRequest struct {
	Budget               *float64 `json:"budget" validate:"required,finite,gte=0,lte=1000000"`
	PopularityPreference string   `json:"popularity_preference" validate:"required,oneof=hidden_gems emerging popular"`
	EconomicPreference   string   `json:"economic_preference" validate:"required,oneof=flexible stable growing"`
	RegionFilter         string   `json:"region_filter,omitempty" validate:"omitempty,max=100,printable"`
	LikedCountries       []string `json:"liked_countries,omitempty" validate:"max=50,dive,required,max=100,printable"`
	DislikedCountries    []string `json:"disliked_countries,omitempty" validate:"max=50,dive,required,max=100,printable"`

	// TopN defaults to 10 when omitted. The engine clamps it to
	// RECOMMEND_MAX_TOP_N.
	TopN int `json:"top_n,omitempty" validate:"min=0,max=50"`

	// SegmentByBudget adds the results grouped into budget bands.
	SegmentByBudget bool `json:"segment_by_budget,omitempty"`
}

// HasSelection reports whether any liked or disliked country was given.
func (r *RecommendationRequest) HasSelection() bool {
	return len(r.LikedCountries) > 0 || len(r.DislikedCountries) > 0
}

// RecommendationItem is one ranked country with its city enrichment, when known.
type RecommendationItem struct {
	recommend.ScoredCandidate
	Enrichment *enrichment.CountryAggregate `json:"enrichment,omitempty"`
}

// BudgetSegment groups items within one budget band.
type BudgetSegment struct {
	Band  recommend.BudgetBand `json:"band"`
	Items []RecommendationItem `json:"items"`
}

// RecommendationResponse is the data payload of POST /api/v1/recommendations.
type RecommendationResponse struct {
	Items           []RecommendationItem `json:"items"`
	Segments        []BudgetSegment      `json:"segments,omitempty"`
	Warnings        []string             `json:"warnings"`
	TotalCandidates int                  `json:"total_candidates"`
	Personalized    bool                 `json:"personalized"`
	Degraded        bool                 `json:"degraded"`
	DataAvailable   bool                 `json:"data_available"`
	DatasetChecksum string               `json:"dataset_checksum,omitempty"`
	Profile         *ProfileResponse     `json:"profile,omitempty"`
}

// ProfileRequest is the body of POST /api/v1/profile.
type ProfileRequest struct {
	LikedCountries    []string `json:"liked_countries" validate:"max=50,dive,required,max=100,printable"`
	DislikedCountries []string `json:"disliked_countries" validate:"max=50,dive,required,max=100,printable"`
}

// ProfileResponse describes an extracted profile.
type ProfileResponse struct {
	Profile *profile.UserProfile `json:"profile"`
	Summary string               `json:"summary"`

	// Unmatched lists requested names absent from the country table.
	Unmatched []string `json:"unmatched"`
}

// CountryListResponse is the data payload of GET /api/v1/countries.
type CountryListResponse struct {
	Countries     []dataset.CountryProfile `json:"countries"`
	Total         int                      `json:"total"`
	DataAvailable bool                     `json:"data_available"`
}

// CountryDetail is the data payload of GET /api/v1/countries/{country}.
type CountryDetail struct {
	dataset.CountryProfile
	DensityCategory profile.DensityCategory      `json:"density_category"`
	Enrichment      *enrichment.CountryAggregate `json:"enrichment,omitempty"`
}

// CityListResponse is the data payload of GET /api/v1/countries/{country}/cities.
type CityListResponse struct {
	Country    string                    `json:"country"`
	Order      enrichment.Order          `json:"order"`
	Ambiance   enrichment.Ambiance       `json:"ambiance,omitempty"`
	Thresholds *enrichment.Thresholds    `json:"thresholds,omitempty"`
	Cities     []enrichment.CityAmbiance `json:"cities"`
}

// DatasetSummaryResponse is the data payload of GET /api/v1/dataset/summary.
type DatasetSummaryResponse struct {
	dataset.Summary
	Source              string          `json:"source"`
	Checksum            string          `json:"checksum,omitempty"`
	DataAvailable       bool            `json:"data_available"`
	Memoized            bool            `json:"memoized"`
	LoadedAt            time.Time       `json:"loaded_at"`
	EnrichmentCountries int             `json:"enrichment_countries"`
	Snapshots           []snapshot.Info `json:"snapshots,omitempty"`
	Engine              recommend.Stats `json:"engine"`
}
