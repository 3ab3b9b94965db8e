// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

// Package catalog owns the shared, read-only country table and city
// enrichment table. Requests read the current Table without locking; a
// reload builds a new Table and swaps it in atomically.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/travelrec/internal/dataset"
	"github.com/tomtom215/travelrec/internal/enrichment"
	"github.com/tomtom215/travelrec/internal/logging"
	"github.com/tomtom215/travelrec/internal/metrics"
)

// ErrStale is returned by Load when the source could not be read and the
// previously loaded table stays active.
var ErrStale = errors.New("dataset unavailable, previous table kept")

// Table is an immutable view of the loaded data. Callers must not modify
// the slices it returns.
type Table struct {
	profiles  []dataset.CountryProfile
	byCountry map[string]int

	checksum  string
	source    string
	available bool
	memoized  bool
	loadedAt  time.Time

	summary    dataset.Summary
	enrichment *enrichment.Table
}

func newTable(result dataset.LoadResult, source string, cities *enrichment.Table) *Table {
	if cities == nil {
		cities = enrichment.Empty()
	}
	t := &Table{
		profiles:   result.Profiles,
		byCountry:  make(map[string]int, len(result.Profiles)),
		checksum:   result.Checksum,
		source:     source,
		available:  result.Available,
		memoized:   result.Memoized,
		loadedAt:   time.Now().UTC(),
		summary:    dataset.Summarize(result.Profiles),
		enrichment: cities,
	}
	if t.profiles == nil {
		t.profiles = []dataset.CountryProfile{}
	}
	for i := range t.profiles {
		t.byCountry[t.profiles[i].Country] = i
	}
	return t
}

func emptyTable() *Table {
	return newTable(dataset.LoadResult{}, "", nil)
}

// Profiles returns the normalized country table, sorted by country.
func (t *Table) Profiles() []dataset.CountryProfile { return t.profiles }

// Country returns the profile of one country.
func (t *Table) Country(name string) (dataset.CountryProfile, bool) {
	i, ok := t.byCountry[name]
	if !ok {
		return dataset.CountryProfile{}, false
	}
	return t.profiles[i], true
}

// Checksum identifies the raw dataset. Empty when no data is available.
func (t *Table) Checksum() string { return t.checksum }

// Source names where the data was read from.
func (t *Table) Source() string { return t.source }

// Available is false when the dataset could not be read.
func (t *Table) Available() bool { return t.available }

// Memoized reports whether the profiles came from the snapshot store.
func (t *Table) Memoized() bool { return t.memoized }

// LoadedAt is when the table was built.
func (t *Table) LoadedAt() time.Time { return t.loadedAt }

// Summary returns the dataset summary computed at load time.
func (t *Table) Summary() dataset.Summary { return t.summary }

// Enrichment returns the city table. Never nil.
func (t *Table) Enrichment() *enrichment.Table { return t.enrichment }

// Options configures a Catalog.
type Options struct {
	// Source provides the raw country-year records.
	Source dataset.Source

	// Memo memoizes normalization by checksum. Optional.
	Memo dataset.Memo

	// EnrichmentPath is the city CSV. Optional.
	EnrichmentPath string
}

// Catalog holds the current Table.
type Catalog struct {
	opts Options

	current atomic.Pointer[Table]

	// serializes loads
	loadMu sync.Mutex

	hooksMu sync.RWMutex
	hooks   []func(*Table)
}

// New creates a catalog holding an empty table. Call Load to read data.
func New(opts Options) *Catalog {
	c := &Catalog{opts: opts}
	c.current.Store(emptyTable())
	return c
}

// Current returns the active table. Never nil.
func (c *Catalog) Current() *Table {
	return c.current.Load()
}

// OnReload registers fn to run after every successful swap.
func (c *Catalog) OnReload(fn func(*Table)) {
	c.hooksMu.Lock()
	defer c.hooksMu.Unlock()
	c.hooks = append(c.hooks, fn)
}

// Load reads the source and the enrichment file and swaps in the result.
// An unreadable source produces an empty, unavailable table rather than an
// error, unless a usable table is already loaded: that table stays active
// and Load returns it with ErrStale. Context cancellation aborts the swap.
func (c *Catalog) Load(ctx context.Context) (*Table, error) {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	start := time.Now()
	logger := logging.Ctx(ctx).With().Str("component", "catalog").Logger()
	ctx = logging.ContextWithLogger(ctx, logger)

	var result dataset.LoadResult
	source := ""
	if c.opts.Source != nil {
		source = c.opts.Source.Name()
		result = dataset.LoadProfiles(ctx, c.opts.Source, c.opts.Memo)
	} else {
		logger.Warn().Msg("no dataset source configured")
		result = dataset.LoadResult{Profiles: []dataset.CountryProfile{}}
	}

	if err := ctx.Err(); err != nil {
		return c.Current(), err
	}

	if !result.Available {
		if prev := c.Current(); prev.available {
			metrics.RecordDatasetLoad(loadOrigin(prev), "stale", time.Since(start), len(prev.profiles), prev.enrichment.Len())
			logger.Warn().
				Str("source", source).
				Str("checksum", prev.checksum).
				Time("loaded_at", prev.loadedAt).
				Msg("dataset unavailable, keeping previously loaded table")
			return prev, fmt.Errorf("%w: keeping table loaded at %s", ErrStale, prev.loadedAt.Format(time.RFC3339))
		}
	}

	cities := enrichment.Load(ctx, c.opts.EnrichmentPath)
	t := newTable(result, source, cities)

	previous := c.current.Swap(t)
	metrics.RecordDatasetLoad(loadOrigin(t), loadResult(t), time.Since(start), len(t.profiles), cities.Len())

	logger.Info().
		Str("source", source).
		Str("checksum", t.checksum).
		Bool("available", t.available).
		Bool("memoized", t.memoized).
		Bool("changed", previous == nil || previous.checksum != t.checksum).
		Int("countries", len(t.profiles)).
		Int("cities", cities.Len()).
		Dur("duration", time.Since(start)).
		Msg("catalog loaded")

	c.hooksMu.RLock()
	hooks := slices.Clone(c.hooks)
	c.hooksMu.RUnlock()
	for _, fn := range hooks {
		fn(t)
	}

	return t, nil
}

func loadOrigin(t *Table) string {
	if t.memoized {
		return "snapshot"
	}
	return "source"
}

func loadResult(t *Table) string {
	if !t.available {
		return "unavailable"
	}
	return "ok"
}
