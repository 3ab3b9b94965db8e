// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/travelrec/internal/catalog"
	"github.com/tomtom215/travelrec/internal/logging"
	"github.com/tomtom215/travelrec/internal/models"
	"github.com/tomtom215/travelrec/internal/profile"
	"github.com/tomtom215/travelrec/internal/recommend"
)

const warnDataUnavailable = "tourism dataset unavailable; no recommendations can be made"

// Recommend handles POST /api/v1/recommendations.
//
// A profile is extracted only when the caller selected liked or disliked
// countries; otherwise the ranking uses general scores alone.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecommendationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), recommendTimeout)
	defer cancel()

	table := h.catalog.Current()

	var extracted *models.ProfileResponse
	engineReq := recommend.Request{
		Budget:       *req.Budget,
		Popularity:   recommend.PopularityPreference(req.PopularityPreference),
		Economic:     recommend.EconomicPreference(req.EconomicPreference),
		RegionFilter: req.RegionFilter,
		TopN:         req.TopN,
		DatasetKey:   table.Checksum(),
		RequestID:    logging.RequestIDFromContext(ctx),
	}
	if req.HasSelection() {
		extracted = extractProfile(table, req.LikedCountries, req.DislikedCountries)
		engineReq.Profile = extracted.Profile
	}

	resp, err := h.engine.Recommend(ctx, table.Profiles(), engineReq)
	if err != nil {
		if errors.Is(err, recommend.ErrInvalidRequest) {
			respondError(w, http.StatusBadRequest, CodeValidation, err.Error(), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, CodeRecommendFailed, "Failed to generate recommendations", err)
		return
	}

	out := models.RecommendationResponse{
		Items:           enrichItems(table, resp.Items),
		Warnings:        make([]string, 0, len(resp.Warnings)+2),
		TotalCandidates: resp.TotalCandidates,
		Personalized:    resp.Metadata.Personalized,
		Degraded:        resp.Metadata.Degraded,
		DataAvailable:   table.Available(),
		DatasetChecksum: table.Checksum(),
		Profile:         extracted,
	}
	out.Warnings = append(out.Warnings, resp.Warnings...)
	if !table.Available() {
		out.Warnings = append(out.Warnings, warnDataUnavailable)
	}
	if extracted != nil && len(extracted.Unmatched) > 0 {
		out.Warnings = append(out.Warnings, fmt.Sprintf("%d selected countries are not in the dataset and were ignored", len(extracted.Unmatched)))
	}

	if req.SegmentByBudget {
		segments := recommend.SegmentByBudget(resp.Items, recommend.DefaultBudgetBands())
		out.Segments = make([]models.BudgetSegment, 0, len(segments))
		for _, s := range segments {
			out.Segments = append(out.Segments, models.BudgetSegment{
				Band:  s.Band,
				Items: enrichItems(table, s.Items),
			})
		}
	}

	respondSuccess(w, r, out, start, resp.Metadata.CacheHit)
}

// Profile handles POST /api/v1/profile.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	table := h.catalog.Current()
	respondSuccess(w, r, extractProfile(table, req.LikedCountries, req.DislikedCountries), start, false)
}

// extractProfile builds the profile and reports names the table lacks.
func extractProfile(table *catalog.Table, liked, disliked []string) *models.ProfileResponse {
	u := profile.Extract(table.Profiles(), liked, disliked)

	matched := make(map[string]struct{}, len(u.Liked)+len(u.Disliked))
	for _, name := range u.Liked {
		matched[name] = struct{}{}
	}
	for _, name := range u.Disliked {
		matched[name] = struct{}{}
	}

	unmatched := []string{}
	seen := make(map[string]struct{})
	for _, list := range [][]string{liked, disliked} {
		for _, name := range list {
			if _, ok := matched[name]; ok {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			unmatched = append(unmatched, name)
		}
	}

	return &models.ProfileResponse{
		Profile:   u,
		Summary:   u.Summary(),
		Unmatched: unmatched,
	}
}

// enrichItems attaches city aggregates to ranked candidates.
func enrichItems(table *catalog.Table, items []recommend.ScoredCandidate) []models.RecommendationItem {
	cities := table.Enrichment()
	out := make([]models.RecommendationItem, len(items))
	for i := range items {
		out[i].ScoredCandidate = items[i]
		if agg, ok := cities.Aggregate(items[i].Country); ok {
			out[i].Enrichment = &agg
		}
	}
	return out
}
