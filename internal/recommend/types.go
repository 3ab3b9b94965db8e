// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package recommend

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/travelrec/internal/dataset"
	"github.com/tomtom215/travelrec/internal/profile"
	"github.com/tomtom215/travelrec/internal/recommend/similarity"
)

// ErrInvalidRequest is returned for requests the engine cannot interpret.
var ErrInvalidRequest = errors.New("invalid recommendation request")

// PopularityPreference selects how the tourism score is computed.
type PopularityPreference string

const (
	// PopularityHiddenGems favours few arrivals and strong growth.
	PopularityHiddenGems PopularityPreference = "hidden_gems"
	// PopularityEmerging favours positive arrival growth.
	PopularityEmerging PopularityPreference = "emerging"
	// PopularityPopular favours arrival volume.
	PopularityPopular PopularityPreference = "popular"
)

// Valid reports whether p is a known preference.
func (p PopularityPreference) Valid() bool {
	switch p {
	case PopularityHiddenGems, PopularityEmerging, PopularityPopular:
		return true
	default:
		return false
	}
}

// ParsePopularityPreference accepts "hidden_gems", "hidden-gems" and the
// other values case-insensitively.
func ParsePopularityPreference(s string) (PopularityPreference, error) {
	p := PopularityPreference(normalizeEnum(s))
	if !p.Valid() {
		return "", fmt.Errorf("%w: unknown popularity preference %q", ErrInvalidRequest, s)
	}
	return p, nil
}

// EconomicPreference selects how the economic score is computed.
type EconomicPreference string

const (
	// EconomicFlexible scores every country 0.5.
	EconomicFlexible EconomicPreference = "flexible"
	// EconomicStable favours low inflation and unemployment.
	EconomicStable EconomicPreference = "stable"
	// EconomicGrowing favours arrival growth.
	EconomicGrowing EconomicPreference = "growing"
)

// Valid reports whether p is a known preference.
func (p EconomicPreference) Valid() bool {
	switch p {
	case EconomicFlexible, EconomicStable, EconomicGrowing:
		return true
	default:
		return false
	}
}

// ParseEconomicPreference parses an economic preference case-insensitively.
func ParseEconomicPreference(s string) (EconomicPreference, error) {
	p := EconomicPreference(normalizeEnum(s))
	if !p.Valid() {
		return "", fmt.Errorf("%w: unknown economic preference %q", ErrInvalidRequest, s)
	}
	return p, nil
}

func normalizeEnum(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
}

// Request contains parameters for a recommendation request.
type Request struct {
	// Budget is the ceiling on cost per tourist, in USD.
	Budget float64 `json:"budget"`

	// Popularity and Economic select the general score formulas.
	Popularity PopularityPreference `json:"popularity_preference"`
	Economic   EconomicPreference   `json:"economic_preference"`

	// RegionFilter, when set, keeps only the candidate whose country name
	// equals it exactly.
	RegionFilter string `json:"region_filter,omitempty"`

	// Profile enables personalized ranking. Nil ranks by general score only.
	Profile *profile.UserProfile `json:"profile,omitempty"`

	// TopN is the number of items to return. Zero uses the configured default.
	TopN int `json:"top_n,omitempty"`

	// DatasetKey identifies the country table, normally its checksum.
	// Responses are cached only when it is set.
	DatasetKey string `json:"dataset_key,omitempty"`

	// RequestID is used for tracing. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Personalized reports whether the request carries a profile.
func (r *Request) Personalized() bool {
	return r.Profile != nil
}

// ScoredCandidate is a country with its ranking scores.
type ScoredCandidate struct {
	dataset.CountryProfile

	ScoreTourism    float64 `json:"score_tourism"`
	ScoreEconomy    float64 `json:"score_economy"`
	ScoreGeneral    float64 `json:"score_general"`
	SimilarityScore float64 `json:"similarity_score"`
	ScoreFinal      float64 `json:"score_final"`

	// Similarity holds the hybrid components when similarity was computed.
	Similarity *similarity.Components `json:"similarity_components,omitempty"`

	DensityCategory profile.DensityCategory `json:"density_category"`
}

// Response contains recommendations and metadata.
type Response struct {
	// Items are the ranked candidates, best first.
	Items []ScoredCandidate `json:"items"`

	// Warnings lists recoverable problems, such as a similarity failure.
	Warnings []string `json:"warnings,omitempty"`

	// TotalCandidates is the number of candidates that passed the filters.
	TotalCandidates int `json:"total_candidates"`

	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains information about how recommendations were generated.
type ResponseMetadata struct {
	RequestID    string    `json:"request_id"`
	Personalized bool      `json:"personalized"`
	Degraded     bool      `json:"degraded"`
	Scorer       string    `json:"scorer,omitempty"`
	DatasetKey   string    `json:"dataset_key,omitempty"`
	LatencyMS    int64     `json:"latency_ms"`
	CacheHit     bool      `json:"cache_hit"`
	Timestamp    time.Time `json:"timestamp"`
}

// Stats holds engine counters.
type Stats struct {
	RequestCount       int64 `json:"request_count"`
	EmptyResults       int64 `json:"empty_results"`
	SimilarityFailures int64 `json:"similarity_failures"`
	CacheHits          int64 `json:"cache_hits"`
	CacheMisses        int64 `json:"cache_misses"`
}
