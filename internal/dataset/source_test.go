// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "\xEF\xBB\xBF country , country_code,year,tourism_receipts,tourism_arrivals,tourism_departures,gdp,inflation,unemployment\n" +
	"Spain,ESP,2019,80000000000,80000000,..,1.4e12,0.7,14.1\n" +
	"Spain,ESP,2020,20000000000,40000000,..,1.2e12,..,15.5\n" +
	"World,WLD,2020,1e12,1e9,,,,\n" +
	"Japan,JPN,2020,..,30000000,,5e12,0.0,2.8\n" +
	"Broken,BRK,not-a-year,1,1,,,,\n"

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tourism.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseCSV(t *testing.T) {
	t.Parallel()

	records, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 4, "row with unparseable year is skipped")

	spain := records[1]
	assert.Equal(t, "Spain", spain.Country)
	assert.Equal(t, "ESP", spain.CountryCode)
	assert.Equal(t, 2020, spain.Year)
	require.NotNil(t, spain.TourismArrivals)
	assert.InDelta(t, 40e6, *spain.TourismArrivals, 1e-6)
	assert.Nil(t, spain.TourismDepartures, `".." is null`)
	assert.Nil(t, spain.Inflation)
	assert.Empty(t, spain.Region)

	japan := records[3]
	assert.Nil(t, japan.TourismReceipts)
	require.NotNil(t, japan.Inflation)
	assert.Zero(t, *japan.Inflation)
}

func TestParseCSV_Errors(t *testing.T) {
	t.Parallel()

	_, err := ParseCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ParseCSV(strings.NewReader("country,tourism_arrivals\nSpain,1\n"))
	assert.ErrorContains(t, err, "year")
}

func TestParseCSV_OptionalColumns(t *testing.T) {
	t.Parallel()

	input := "country,year,tourism_arrivals,region,cost_per_tourist,annual_growth\n" +
		"Kenya,2020,1000,Sub-Saharan Africa,812.5,-3.5\n"

	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Sub-Saharan Africa", records[0].Region)
	require.NotNil(t, records[0].CostPerTourist)
	assert.InDelta(t, 812.5, *records[0].CostPerTourist, 1e-9)
	require.NotNil(t, records[0].AnnualGrowth)
	assert.InDelta(t, -3.5, *records[0].AnnualGrowth, 1e-9)
}

func TestParseNullable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want *float64
	}{
		{"", nil},
		{"..", nil},
		{" .. ", nil},
		{"abc", nil},
		{"NaN", nil},
		{"Inf", nil},
		{"12.5", Float64(12.5)},
		{" 3 ", Float64(3)},
		{"-1e3", Float64(-1000)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseNullable(tt.in), "ParseNullable(%q)", tt.in)
	}
}

func TestCSVSource_MissingFile(t *testing.T) {
	t.Parallel()

	src := &CSVSource{Path: filepath.Join(t.TempDir(), "missing.csv")}
	_, err := src.Records(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataUnavailable))
}

func TestLoadProfiles(t *testing.T) {
	t.Parallel()

	src := &CSVSource{Path: writeTempCSV(t, sampleCSV)}
	result := LoadProfiles(context.Background(), src, nil)

	assert.True(t, result.Available)
	assert.Equal(t, 4, result.Records)
	require.Len(t, result.Profiles, 2)
	assert.Equal(t, "Japan", result.Profiles[0].Country)
	assert.Equal(t, "Spain", result.Profiles[1].Country)
	assert.Len(t, result.Checksum, 64)
}

func TestLoadProfiles_Unavailable(t *testing.T) {
	t.Parallel()

	src := &CSVSource{Path: filepath.Join(t.TempDir(), "missing.csv")}
	result := LoadProfiles(context.Background(), src, nil)

	assert.False(t, result.Available)
	assert.NotNil(t, result.Profiles)
	assert.Empty(t, result.Profiles)
	assert.Empty(t, result.Checksum)
}

// mapMemo is an in-memory Memo.
type mapMemo struct {
	tables map[string][]CountryProfile
	stores int
}

func (m *mapMemo) Lookup(_ context.Context, key string) ([]CountryProfile, bool) {
	p, ok := m.tables[key]
	return p, ok
}

func (m *mapMemo) Store(_ context.Context, key string, profiles []CountryProfile) {
	m.tables[key] = profiles
	m.stores++
}

func TestLoadProfiles_Memo(t *testing.T) {
	t.Parallel()

	src := &CSVSource{Path: writeTempCSV(t, sampleCSV)}
	memo := &mapMemo{tables: make(map[string][]CountryProfile)}

	first := LoadProfiles(context.Background(), src, memo)
	require.True(t, first.Available)
	assert.False(t, first.Memoized)
	assert.Equal(t, 1, memo.stores)

	second := LoadProfiles(context.Background(), src, memo)
	assert.True(t, second.Memoized)
	assert.Equal(t, first.Checksum, second.Checksum)
	assert.Equal(t, first.Profiles, second.Profiles)
	assert.Equal(t, 1, memo.stores, "memoized load must not store again")
}

func TestLoadProfiles_MemoKeyedByNormalizerVersion(t *testing.T) {
	t.Parallel()

	src := &CSVSource{Path: writeTempCSV(t, sampleCSV)}
	records, err := src.Records(context.Background())
	require.NoError(t, err)
	checksum := Checksum(records)

	// Tables written under the bare checksum or another version must not
	// be served.
	stale := []CountryProfile{{Country: "Stale"}}
	memo := &mapMemo{tables: map[string][]CountryProfile{
		checksum:           stale,
		"n0:" + checksum:   stale,
		"n999:" + checksum: stale,
	}}

	result := LoadProfiles(context.Background(), src, memo)
	require.True(t, result.Available)
	assert.False(t, result.Memoized)
	assert.NotEqual(t, stale, result.Profiles)
	assert.Equal(t, result.Profiles, memo.tables[MemoKey(checksum)])
	assert.True(t, strings.HasPrefix(MemoKey(checksum), "n1:"))
}

func TestChecksum(t *testing.T) {
	t.Parallel()

	records, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, Checksum(records), Checksum(records))

	changed := make([]CountryYearRecord, len(records))
	copy(changed, records)
	changed[0].TourismArrivals = Float64(1)
	assert.NotEqual(t, Checksum(records), Checksum(changed))

	nulled := make([]CountryYearRecord, len(records))
	copy(nulled, records)
	nulled[3].Inflation = nil
	assert.NotEqual(t, Checksum(records), Checksum(nulled), "null differs from zero")
}

func TestDuckDBSource_ReadCSV(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping DuckDB test in short mode")
	}

	src := &DuckDBSource{CSVPath: writeTempCSV(t, strings.TrimPrefix(sampleCSV, "\xEF\xBB\xBF"))}
	records, err := src.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 4)

	byCountry := make(map[string]int)
	for _, r := range records {
		byCountry[r.Country]++
	}
	assert.Equal(t, 2, byCountry["Spain"])
	assert.Equal(t, 1, byCountry["World"])

	csvRecords, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, Normalize(csvRecords), Normalize(records), "both sources normalize identically")
}

func TestDuckDBSource_Config(t *testing.T) {
	t.Parallel()

	_, err := (&DuckDBSource{}).Records(context.Background())
	assert.True(t, errors.Is(err, ErrDataUnavailable))

	_, err = (&DuckDBSource{DatabasePath: "x.duckdb", Table: "t; DROP TABLE t"}).Records(context.Background())
	assert.ErrorContains(t, err, "invalid table name")
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	profiles := make([]CountryProfile, 0, 21)
	for i := 0; i <= 20; i++ {
		profiles = append(profiles, CountryProfile{
			Country:        string(rune('A' + i)),
			Year:           2000 + i,
			CostPerTourist: float64(i * 100),
		})
	}

	s := Summarize(profiles)
	assert.Equal(t, 21, s.Countries)
	assert.Equal(t, 2020, s.LatestYear)
	assert.InDelta(t, 100, s.Budget.Min, 1e-9)
	assert.InDelta(t, 1900, s.Budget.Max, 1e-9)
	assert.InDelta(t, 1000, s.Budget.Median, 1e-9)

	empty := Summarize(nil)
	assert.Equal(t, BudgetRange{Min: DefaultBudgetMin, Max: DefaultBudgetMax, Median: DefaultBudgetMedian}, empty.Budget)
}
