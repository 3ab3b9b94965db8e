// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/travelrec/internal/models"
)

// Health handles health check requests. The service stays up with an
// unavailable dataset, so the status is "degraded" rather than an error.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	table := h.catalog.Current()

	status := "healthy"
	if !table.Available() {
		status = "degraded"
	}

	health := models.HealthStatus{
		Status:        status,
		Version:       Version,
		DataAvailable: table.Available(),
		Countries:     len(table.Profiles()),
		Checksum:      table.Checksum(),
		LoadedAt:      table.LoadedAt(),
		Uptime:        time.Since(h.startTime).Seconds(),
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of the dataset.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 503 until a dataset has been loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	table := h.catalog.Current()
	ready := table.Available()

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"data_available": ready,
			"countries":      len(table.Profiles()),
			"ready_to_serve": ready,
			"uptime":         time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}
