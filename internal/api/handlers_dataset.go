// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/travelrec/internal/catalog"
	"github.com/tomtom215/travelrec/internal/logging"
	"github.com/tomtom215/travelrec/internal/models"
)

// DatasetSummary handles GET /api/v1/dataset/summary.
func (h *Handler) DatasetSummary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	resp := h.summary(r.Context(), h.catalog.Current())
	respondSuccess(w, r, resp, start, false)
}

// DatasetReload handles POST /api/v1/dataset/reload. The new table replaces
// the current one only when the load finishes. An unreadable dataset keeps
// the previously loaded table and answers 503.
func (h *Handler) DatasetReload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), reloadTimeout)
	defer cancel()

	table, err := h.catalog.Load(ctx)
	if errors.Is(err, catalog.ErrStale) {
		respondError(w, http.StatusServiceUnavailable, CodeReloadFailed, "Dataset unavailable, previous table kept", err)
		return
	}
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, CodeReloadFailed, "Dataset reload did not complete", err)
		return
	}

	logging.Ctx(ctx).Info().
		Str("checksum", table.Checksum()).
		Bool("available", table.Available()).
		Msg("dataset reloaded via API")

	respondSuccess(w, r, h.summary(ctx, table), start, false)
}

func (h *Handler) summary(ctx context.Context, table *catalog.Table) models.DatasetSummaryResponse {
	resp := models.DatasetSummaryResponse{
		Summary:             table.Summary(),
		Source:              table.Source(),
		Checksum:            table.Checksum(),
		DataAvailable:       table.Available(),
		Memoized:            table.Memoized(),
		LoadedAt:            table.LoadedAt(),
		EnrichmentCountries: len(table.Enrichment().Countries()),
		Engine:              h.engine.GetStats(),
	}

	if h.snapshots != nil {
		infos, err := h.snapshots.List(ctx)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("failed to list snapshots")
		} else {
			resp.Snapshots = infos
		}
	}
	return resp
}
