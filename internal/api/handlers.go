// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package api

import (
	"context"
	"time"

	"github.com/tomtom215/travelrec/internal/catalog"
	"github.com/tomtom215/travelrec/internal/recommend"
	"github.com/tomtom215/travelrec/internal/snapshot"
)

// Version is reported by the health endpoint. Set at build time.
var Version = "dev"

// Timeouts applied to handler work.
const (
	recommendTimeout = 10 * time.Second
	reloadTimeout    = 2 * time.Minute
)

// SnapshotLister lists stored dataset snapshots. *snapshot.Store satisfies it.
type SnapshotLister interface {
	List(ctx context.Context) ([]snapshot.Info, error)
}

// Handler serves the HTTP API.
type Handler struct {
	catalog   *catalog.Catalog
	engine    *recommend.Engine
	snapshots SnapshotLister
	startTime time.Time
}

// NewHandler creates a new API handler.
func NewHandler(cat *catalog.Catalog, engine *recommend.Engine) *Handler {
	return &Handler{
		catalog:   cat,
		engine:    engine,
		startTime: time.Now(),
	}
}

// SetSnapshotLister enables the snapshot listing in the dataset summary.
func (h *Handler) SetSnapshotLister(l SnapshotLister) {
	h.snapshots = l
}
