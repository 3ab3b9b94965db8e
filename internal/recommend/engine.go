// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/travelrec/internal/cache"
	"github.com/tomtom215/travelrec/internal/dataset"
	"github.com/tomtom215/travelrec/internal/logging"
	"github.com/tomtom215/travelrec/internal/metrics"
	"github.com/tomtom215/travelrec/internal/profile"
	"github.com/tomtom215/travelrec/internal/recommend/similarity"
)

// Metric outcome labels.
const (
	outcomeRanked      = "ranked"
	outcomeEmptyFilter = "empty_filter"
	outcomeNoData      = "no_data"
)

// Engine ranks candidate countries. It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	scorer   similarity.Scorer
	scorerMu sync.RWMutex

	// nil when caching is disabled
	cache *cache.LRUCache[*Response]

	requestCount       atomic.Int64
	emptyResults       atomic.Int64
	similarityFailures atomic.Int64
	cacheHits          atomic.Int64
	cacheMisses        atomic.Int64
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
		scorer: similarity.NewHybridScorer(cfg.Similarity, cfg.BudgetDecay),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRUCache[*Response](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// SetScorer replaces the similarity scorer.
func (e *Engine) SetScorer(s similarity.Scorer) {
	e.scorerMu.Lock()
	defer e.scorerMu.Unlock()

	e.scorer = s
	e.logger.Info().
		Str("scorer", s.Name()).
		Msg("registered similarity scorer")
}

func (e *Engine) getScorer() similarity.Scorer {
	e.scorerMu.RLock()
	defer e.scorerMu.RUnlock()
	return e.scorer
}

// Recommend ranks profiles for req. The profiles slice is not modified.
//
// Only malformed requests return an error. An empty table or a filter that
// removes every candidate yields an empty response, and a similarity failure
// yields a degraded response with a warning.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, profiles []dataset.CountryProfile, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req, err := e.prepareRequest(req)
	if err != nil {
		return nil, err
	}
	logger := e.createRequestLogger(ctx, req)
	logger.Debug().Msg("processing recommendation request")

	cacheKey := e.cacheKey(req)
	if resp := e.tryGetCachedResponse(cacheKey, req, start, logger); resp != nil {
		return resp, nil
	}

	if len(profiles) == 0 {
		logger.Debug().Msg("country table is empty")
		return e.emptyResponse(req, start, outcomeNoData), nil
	}

	// 1. Hard filters
	candidates := filterCandidates(profiles, req.Budget, req.RegionFilter)

	// 2. Nothing left to score
	if len(candidates) == 0 {
		logger.Debug().
			Float64("budget", req.Budget).
			Str("region_filter", req.RegionFilter).
			Msg("no candidates passed the filters")
		return e.emptyResponse(req, start, outcomeEmptyFilter), nil
	}

	// 3-5. Tourism, economy and general scores
	items := e.scoreGeneral(candidates, req)

	// 6-7. Similarity and final score
	resp := &Response{TotalCandidates: len(candidates)}
	scorerName := ""
	if req.Personalized() {
		scorer := e.getScorer()
		scorerName = scorer.Name()
		if err := e.applySimilarity(ctx, scorer, req.Profile, candidates, items); err != nil {
			e.similarityFailures.Add(1)
			metrics.RecordSimilarityFailure(scorerName)
			logger.Warn().Err(err).
				Str("scorer", scorerName).
				Int("candidates", len(candidates)).
				Msg("similarity scoring failed, ranking by general score")
			resp.Warnings = append(resp.Warnings, "similarity scoring unavailable; results ranked by general score")
			resp.Metadata.Degraded = true
			degrade(items)
		}
	} else {
		degrade(items)
	}

	// 8. Sort and truncate
	sortCandidates(items, req.Personalized())
	if len(items) > req.TopN {
		items = items[:req.TopN]
	}

	resp.Items = items
	resp.Metadata = e.buildResponseMetadata(req, scorerName, start, false, resp.Metadata.Degraded)
	if !resp.Metadata.Degraded {
		e.cacheResponse(cacheKey, resp)
	}

	metrics.RecordRecommendation(req.Personalized(), outcomeRanked, len(candidates), time.Since(start))
	logger.Debug().
		Int("candidates", len(candidates)).
		Int("returned", len(items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// prepareRequest validates the request and applies defaults.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, error) {
	if !dataset.IsFinite(req.Budget) || req.Budget < 0 {
		return req, fmt.Errorf("%w: budget must be a non-negative number, got %v", ErrInvalidRequest, req.Budget)
	}
	if !req.Popularity.Valid() {
		return req, fmt.Errorf("%w: unknown popularity preference %q", ErrInvalidRequest, req.Popularity)
	}
	if !req.Economic.Valid() {
		return req, fmt.Errorf("%w: unknown economic preference %q", ErrInvalidRequest, req.Economic)
	}
	if req.TopN < 0 {
		return req, fmt.Errorf("%w: top_n must be non-negative, got %d", ErrInvalidRequest, req.TopN)
	}

	if req.RequestID == "" {
		req.RequestID = logging.GenerateRequestID()
	}
	if req.TopN == 0 {
		req.TopN = e.config.Limits.DefaultTopN
	}
	if req.TopN > e.config.Limits.MaxTopN {
		req.TopN = e.config.Limits.MaxTopN
	}

	return req, nil
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(ctx context.Context, req Request) zerolog.Logger {
	lc := e.logger.With().
		Str("request_id", req.RequestID).
		Str("popularity", string(req.Popularity)).
		Str("economic", string(req.Economic)).
		Bool("personalized", req.Personalized())
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		lc = lc.Str("correlation_id", id)
	}
	return lc.Logger()
}

// scoreGeneral builds the candidate rows with tourism, economy and general scores.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) scoreGeneral(candidates []dataset.CountryProfile, req Request) []ScoredCandidate {
	tourism := tourismScores(candidates, req.Popularity)
	economy := economyScores(candidates, req.Economic)

	items := make([]ScoredCandidate, len(candidates))
	for i := range candidates {
		items[i] = ScoredCandidate{
			CountryProfile:  candidates[i],
			ScoreTourism:    tourism[i],
			ScoreEconomy:    economy[i],
			ScoreGeneral:    e.config.General.Tourism*tourism[i] + e.config.General.Economy*economy[i],
			DensityCategory: profile.DensityCategoryOf(candidates[i].TourismArrivals),
		}
	}
	return items
}

// applySimilarity fills similarity and final scores for the whole batch, or
// leaves items untouched and returns an error.
func (e *Engine) applySimilarity(ctx context.Context, scorer similarity.Scorer, u *profile.UserProfile, candidates []dataset.CountryProfile, items []ScoredCandidate) error {
	scores, err := scoreAll(ctx, scorer, u, candidates)
	if err != nil {
		return err
	}
	if len(scores) != len(items) {
		return fmt.Errorf("%w: scorer %s returned %d scores for %d candidates",
			similarity.ErrScoringFailed, scorer.Name(), len(scores), len(items))
	}
	for i := range scores {
		if !dataset.IsFinite(scores[i].Hybrid) {
			return fmt.Errorf("%w: non-finite similarity for %q", similarity.ErrScoringFailed, items[i].Country)
		}
	}

	for i := range items {
		comp := scores[i]
		items[i].Similarity = &comp
		items[i].SimilarityScore = comp.Hybrid
		items[i].ScoreFinal = e.config.Final.Similarity*comp.Hybrid + e.config.Final.General*items[i].ScoreGeneral
	}
	return nil
}

// scoreAll converts a scorer panic into ErrScoringFailed.
func scoreAll(ctx context.Context, scorer similarity.Scorer, u *profile.UserProfile, candidates []dataset.CountryProfile) (scores []similarity.Components, err error) {
	defer func() {
		if r := recover(); r != nil {
			scores = nil
			err = fmt.Errorf("%w: scorer %s panicked: %v", similarity.ErrScoringFailed, scorer.Name(), r)
		}
	}()
	return scorer.ScoreAll(ctx, u, candidates)
}

// degrade sets similarity to 0 and the final score to the general score.
func degrade(items []ScoredCandidate) {
	for i := range items {
		items[i].Similarity = nil
		items[i].SimilarityScore = 0
		items[i].ScoreFinal = items[i].ScoreGeneral
	}
}

// sortCandidates orders by similarity then final score when personalized,
// by final score otherwise. Country name breaks remaining ties.
func sortCandidates(items []ScoredCandidate, personalized bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := &items[i], &items[j]
		if personalized && a.SimilarityScore != b.SimilarityScore {
			return a.SimilarityScore > b.SimilarityScore
		}
		if a.ScoreFinal != b.ScoreFinal {
			return a.ScoreFinal > b.ScoreFinal
		}
		return a.Country < b.Country
	})
}

// tryGetCachedResponse attempts to retrieve a cached response.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryGetCachedResponse(key string, req Request, start time.Time, logger zerolog.Logger) *Response {
	if e.cache == nil || key == "" {
		return nil
	}

	cached, ok := e.cache.Get(key)
	metrics.RecordCacheLookup(ok)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}

	e.cacheHits.Add(1)
	resp := copyResponse(cached)
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	resp.Metadata.Timestamp = time.Now()
	logger.Debug().Msg("cache hit")
	return resp
}

// cacheResponse stores a copy of resp when caching is enabled.
func (e *Engine) cacheResponse(key string, resp *Response) {
	if e.cache == nil || key == "" {
		return
	}
	e.cache.Add(key, copyResponse(resp))
}

// cacheKey hashes every request field that affects the ranking. Requests
// without a DatasetKey are not cached.
//
//nolint:gocritic // hugeParam: req passed by value for simplicity
func (e *Engine) cacheKey(req Request) string {
	if e.cache == nil || req.DatasetKey == "" {
		return ""
	}

	keyed := req
	keyed.RequestID = ""
	data, err := json.Marshal(keyed)
	if err != nil {
		e.logger.Debug().Err(err).Msg("failed to build cache key")
		return ""
	}
	sum := sha256.Sum256(data)
	return "rec:" + hex.EncodeToString(sum[:])
}

// copyResponse creates a copy of a cached response.
func copyResponse(resp *Response) *Response {
	items := make([]ScoredCandidate, len(resp.Items))
	copy(items, resp.Items)

	var warnings []string
	if len(resp.Warnings) > 0 {
		warnings = append([]string(nil), resp.Warnings...)
	}

	return &Response{
		Items:           items,
		Warnings:        warnings,
		TotalCandidates: resp.TotalCandidates,
		Metadata:        resp.Metadata,
	}
}

// buildResponseMetadata constructs response metadata.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponseMetadata(req Request, scorer string, start time.Time, cacheHit, degraded bool) ResponseMetadata {
	return ResponseMetadata{
		RequestID:    req.RequestID,
		Personalized: req.Personalized(),
		Degraded:     degraded,
		Scorer:       scorer,
		DatasetKey:   req.DatasetKey,
		LatencyMS:    time.Since(start).Milliseconds(),
		CacheHit:     cacheHit,
		Timestamp:    time.Now(),
	}
}

// emptyResponse returns an empty response for cases with no candidates.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) emptyResponse(req Request, start time.Time, outcome string) *Response {
	e.emptyResults.Add(1)
	metrics.RecordRecommendation(req.Personalized(), outcome, 0, time.Since(start))
	return &Response{
		Items:           []ScoredCandidate{},
		TotalCandidates: 0,
		Metadata:        e.buildResponseMetadata(req, "", start, false, false),
	}
}

// GetStats returns the current engine counters.
func (e *Engine) GetStats() Stats {
	return Stats{
		RequestCount:       e.requestCount.Load(),
		EmptyResults:       e.emptyResults.Load(),
		SimilarityFailures: e.similarityFailures.Load(),
		CacheHits:          e.cacheHits.Load(),
		CacheMisses:        e.cacheMisses.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// ClearCache drops every cached response, typically after a dataset reload.
func (e *Engine) ClearCache() {
	if e.cache == nil {
		return
	}
	e.cache.Clear()
	e.logger.Debug().Msg("cache cleared")
}
