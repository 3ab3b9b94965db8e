// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/tomtom215/travelrec/internal/dataset"
	"github.com/tomtom215/travelrec/internal/snapshot"
)

const countriesCSV = `country,country_code,year,tourism_receipts,tourism_arrivals,tourism_departures,gdp,inflation,unemployment
Spain,ESP,2018,73.8e9,82.8e6,..,1.4e12,1.7,15.3
Spain,ESP,2019,79.7e9,83.5e6,..,1.39e12,0.7,14.1
World,WLD,2019,1.7e12,1.4e9,..,8.7e13,2.3,5.4
Japan,JPN,2019,46e9,31.9e6,20e6,5.1e12,0.5,2.4
`

const citiesCSV = `country,city,hotel_count
Spain,Madrid,300
Spain,Barcelona,250
Japan,Tokyo,900
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// staticSource serves fixed records or an error.
type staticSource struct {
	mu      sync.Mutex
	records []dataset.CountryYearRecord
	err     error
	calls   int
}

func (s *staticSource) Name() string { return "static" }

func (s *staticSource) Records(context.Context) ([]dataset.CountryYearRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func TestCatalog_InitiallyEmpty(t *testing.T) {
	c := New(Options{})
	table := c.Current()
	if table == nil {
		t.Fatal("Current() = nil before Load")
	}
	if table.Available() || len(table.Profiles()) != 0 {
		t.Errorf("initial table = available %v, %d profiles; want empty", table.Available(), len(table.Profiles()))
	}
	if table.Enrichment() == nil {
		t.Error("Enrichment() = nil")
	}
}

func TestCatalog_Load(t *testing.T) {
	c := New(Options{
		Source:         &dataset.CSVSource{Path: writeFile(t, "countries.csv", countriesCSV)},
		EnrichmentPath: writeFile(t, "cities.csv", citiesCSV),
	})

	table, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if table != c.Current() {
		t.Error("Load() did not swap in the new table")
	}
	if !table.Available() {
		t.Fatal("table unavailable")
	}
	if got := len(table.Profiles()); got != 2 {
		t.Fatalf("got %d countries, want 2 (World excluded)", got)
	}
	if _, ok := table.Country("World"); ok {
		t.Error("aggregate World present in catalog")
	}
	spain, ok := table.Country("Spain")
	if !ok || spain.Year != 2019 {
		t.Errorf("Country(Spain) = %+v, %v", spain, ok)
	}
	if len(table.Checksum()) != 64 {
		t.Errorf("Checksum() = %q", table.Checksum())
	}
	if table.Summary().Countries != 2 {
		t.Errorf("Summary().Countries = %d, want 2", table.Summary().Countries)
	}
	if agg, ok := table.Enrichment().Aggregate("Spain"); !ok || agg.TotalHotels != 550 {
		t.Errorf("Spain aggregate = %+v, %v", agg, ok)
	}
}

func TestCatalog_SourceUnavailable(t *testing.T) {
	src := &staticSource{err: dataset.ErrDataUnavailable}
	c := New(Options{Source: src})

	table, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v, want soft failure", err)
	}
	if table.Available() {
		t.Error("Available() = true for failing source")
	}
	if table.Profiles() == nil || len(table.Profiles()) != 0 {
		t.Errorf("Profiles() = %v, want empty non-nil", table.Profiles())
	}
}

func TestCatalog_FailedReloadKeepsPrevious(t *testing.T) {
	src := &staticSource{records: []dataset.CountryYearRecord{
		{Country: "Spain", Year: 2019, TourismArrivals: dataset.Float64(1e6), TourismReceipts: dataset.Float64(1e9)},
	}}
	c := New(Options{Source: src})

	reloads := 0
	c.OnReload(func(*Table) { reloads++ })

	good, err := c.Load(context.Background())
	if err != nil || !good.Available() {
		t.Fatalf("first Load() = %v, available %v", err, good.Available())
	}

	src.mu.Lock()
	src.err = dataset.ErrDataUnavailable
	src.mu.Unlock()

	table, err := c.Load(context.Background())
	if !errors.Is(err, ErrStale) {
		t.Fatalf("Load() error = %v, want ErrStale", err)
	}
	if table != good || c.Current() != good {
		t.Error("failed reload replaced the usable table")
	}
	if reloads != 1 {
		t.Errorf("reload hooks ran %d times, want 1", reloads)
	}
}

func TestCatalog_CancelledContext(t *testing.T) {
	src := &staticSource{records: []dataset.CountryYearRecord{
		{Country: "Spain", Year: 2019, TourismArrivals: dataset.Float64(1)},
	}}
	c := New(Options{Source: src})
	before := c.Current()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Load(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
	if c.Current() != before {
		t.Error("cancelled load swapped the table")
	}
}

func TestCatalog_SnapshotMemo(t *testing.T) {
	cfg := snapshot.DefaultConfig()
	cfg.InMemory = true
	store, err := snapshot.Open(cfg)
	if err != nil {
		t.Fatalf("snapshot.Open() error = %v", err)
	}
	defer store.Close()

	c := New(Options{
		Source: &dataset.CSVSource{Path: writeFile(t, "countries.csv", countriesCSV)},
		Memo:   &snapshot.Memo{Backend: store, Source: "test"},
	})

	first, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("first Load() error = %v", err)
	}
	if first.Memoized() {
		t.Error("first load reported memoized")
	}

	second, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if !second.Memoized() {
		t.Error("second load should reuse the snapshot")
	}
	if len(second.Profiles()) != len(first.Profiles()) {
		t.Errorf("memoized table has %d countries, want %d", len(second.Profiles()), len(first.Profiles()))
	}
}

func TestCatalog_OnReload(t *testing.T) {
	src := &staticSource{records: []dataset.CountryYearRecord{
		{Country: "Spain", Year: 2019, TourismArrivals: dataset.Float64(1e6), TourismReceipts: dataset.Float64(1e9)},
	}}
	c := New(Options{Source: src})

	var got []string
	c.OnReload(func(t *Table) { got = append(got, t.Checksum()) })

	for i := 0; i < 2; i++ {
		if _, err := c.Load(context.Background()); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
	}
	if len(got) != 2 || got[0] == "" || got[0] != got[1] {
		t.Errorf("reload hook checksums = %v", got)
	}
}

func TestCatalog_HookRegistersHook(t *testing.T) {
	src := &staticSource{records: []dataset.CountryYearRecord{
		{Country: "Spain", Year: 2019, TourismArrivals: dataset.Float64(1e6), TourismReceipts: dataset.Float64(1e9)},
	}}
	c := New(Options{Source: src})

	var outer, inner int
	c.OnReload(func(*Table) {
		outer++
		if outer == 1 {
			c.OnReload(func(*Table) { inner++ })
		}
	})

	if _, err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if inner != 0 {
		t.Errorf("hook added during a reload ran %d times in that reload, want 0", inner)
	}

	if _, err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if outer != 2 || inner != 1 {
		t.Errorf("hook runs = %d outer / %d inner, want 2 / 1", outer, inner)
	}
}

func TestCatalog_ConcurrentReadsDuringReload(t *testing.T) {
	src := &staticSource{records: []dataset.CountryYearRecord{
		{Country: "Spain", Year: 2019, TourismArrivals: dataset.Float64(1e6), TourismReceipts: dataset.Float64(1e9)},
	}}
	c := New(Options{Source: src})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = c.Load(context.Background())
		}()
		go func() {
			defer wg.Done()
			table := c.Current()
			if _, ok := table.Country("Spain"); table.Available() && !ok {
				t.Error("available table is missing Spain")
			}
		}()
	}
	wg.Wait()

	if src.calls != 8 {
		t.Errorf("source read %d times, want 8", src.calls)
	}
}
