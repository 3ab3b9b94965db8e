// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package enrichment

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *Table {
	return NewTable([]City{
		{Country: "Spain", City: "Madrid", HotelCount: 300},
		{Country: "Spain", City: "Barcelona", HotelCount: 250},
		{Country: "Spain", City: "Sevilla", HotelCount: 80},
		{Country: "Spain", City: "Valencia", HotelCount: 60},
		{Country: "Spain", City: "Granada", HotelCount: 20},
		{Country: "Andorra", City: "Andorra la Vella", HotelCount: 5},
		{Country: "Peru", City: "Lima", HotelCount: 10},
		{Country: "Peru", City: "Lima", HotelCount: 4},
		{Country: " ", City: "Nowhere", HotelCount: 1},
	})
}

func cityNames(rows []City) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.City
	}
	return out
}

func TestTable_Aggregate(t *testing.T) {
	table := testTable()

	agg, ok := table.Aggregate("Spain")
	require.True(t, ok)
	assert.Equal(t, CountryAggregate{Country: "Spain", TotalHotels: 710, Cities: 5}, agg)

	// Duplicate city rows count once as a city but both add hotels.
	agg, ok = table.Aggregate("Peru")
	require.True(t, ok)
	assert.Equal(t, 14, agg.TotalHotels)
	assert.Equal(t, 1, agg.Cities)

	_, ok = table.Aggregate("Atlantis")
	assert.False(t, ok)
}

func TestTable_Aggregates(t *testing.T) {
	table := testTable()

	aggs := table.Aggregates()
	require.Len(t, aggs, 3)
	assert.Equal(t, "Andorra", aggs[0].Country)
	assert.Equal(t, "Peru", aggs[1].Country)
	assert.Equal(t, "Spain", aggs[2].Country)
	assert.Equal(t, 8, table.Len(), "blank country row is skipped")
	assert.Equal(t, []string{"Andorra", "Peru", "Spain"}, table.Countries())
}

func TestTable_Cities(t *testing.T) {
	table := testTable()

	desc := table.Cities("Spain", OrderDesc)
	assert.Equal(t, []string{"Madrid", "Barcelona", "Sevilla", "Valencia", "Granada"}, cityNames(desc))

	asc := table.Cities("Spain", OrderAsc)
	assert.Equal(t, []string{"Granada", "Valencia", "Sevilla", "Barcelona", "Madrid"}, cityNames(asc))

	assert.Empty(t, table.Cities("Atlantis", OrderDesc))
}

func TestTable_Thresholds(t *testing.T) {
	table := testTable()

	th, ok := table.Thresholds("Spain")
	require.True(t, ok)
	assert.InDelta(t, 66.4, th.Low, 1e-9)
	assert.InDelta(t, 188.8, th.High, 1e-9)
}

func TestTable_Ambiance(t *testing.T) {
	table := testTable()

	got := make(map[string]Ambiance)
	for _, c := range table.Ambiance("Spain") {
		got[c.City.City] = c.Ambiance
	}
	assert.Equal(t, map[string]Ambiance{
		"Madrid":    AmbianceVibrant,
		"Barcelona": AmbianceVibrant,
		"Sevilla":   AmbianceBalanced,
		"Valencia":  AmbianceQuiet,
		"Granada":   AmbianceQuiet,
	}, got)

	// A single city cannot be above or below itself.
	andorra := table.Ambiance("Andorra")
	require.Len(t, andorra, 1)
	assert.Equal(t, AmbianceBalanced, andorra[0].Ambiance)

	assert.Empty(t, table.Ambiance("Atlantis"))
}

func TestTable_CitiesByAmbiance(t *testing.T) {
	table := testTable()

	quiet := table.CitiesByAmbiance("Spain", AmbianceQuiet)
	require.Len(t, quiet, 2)
	assert.Equal(t, "Valencia", quiet[0].City.City)
	assert.Equal(t, "Granada", quiet[1].City.City)

	assert.Empty(t, table.CitiesByAmbiance("Andorra", AmbianceVibrant))
}

func TestThresholds_Classify(t *testing.T) {
	tests := []struct {
		name   string
		th     Thresholds
		hotels int
		want   Ambiance
	}{
		{"below low", Thresholds{Low: 10, High: 20}, 5, AmbianceQuiet},
		{"at low", Thresholds{Low: 10, High: 20}, 10, AmbianceQuiet},
		{"between", Thresholds{Low: 10, High: 20}, 15, AmbianceBalanced},
		{"at high", Thresholds{Low: 10, High: 20}, 20, AmbianceVibrant},
		{"flat distribution", Thresholds{Low: 7, High: 7}, 7, AmbianceBalanced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.th.Classify(tt.hotels))
		})
	}
}

func TestParseAmbiance(t *testing.T) {
	for input, want := range map[string]Ambiance{
		"quiet":         AmbianceQuiet,
		"Quiet Retreat": AmbianceQuiet,
		"balanced":      AmbianceBalanced,
		"vibrant_hub":   AmbianceVibrant,
	} {
		got, err := ParseAmbiance(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseAmbiance("loud")
	assert.Error(t, err)
}

func TestParseCSV(t *testing.T) {
	t.Run("canonical header", func(t *testing.T) {
		rows, err := ParseCSV(strings.NewReader("country,city,hotel_count\nSpain,Madrid,300\nSpain,Toledo,12.0\n"))
		require.NoError(t, err)
		assert.Equal(t, []City{
			{Country: "Spain", City: "Madrid", HotelCount: 300},
			{Country: "Spain", City: "Toledo", HotelCount: 12},
		}, rows)
	})

	t.Run("dashboard header with BOM", func(t *testing.T) {
		rows, err := ParseCSV(strings.NewReader("\ufeffPais,Ciudad,Hoteles\nPeru,Cusco,40\n"))
		require.NoError(t, err)
		assert.Equal(t, []City{{Country: "Peru", City: "Cusco", HotelCount: 40}}, rows)
	})

	t.Run("bad counts skipped", func(t *testing.T) {
		rows, err := ParseCSV(strings.NewReader("country,city,hotel_count\nA,X,-1\nA,Y,many\nA,Z,\nA,W,3\n"))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "W", rows[0].City)
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader("country,city\nSpain,Madrid\n"))
		assert.ErrorContains(t, err, "hotel_count")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(""))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cities.csv")
	require.NoError(t, os.WriteFile(path, []byte("country,city,hotel_count\nSpain,Madrid,300\n"), 0o600))

	table := Load(context.Background(), path)
	assert.Equal(t, 1, table.Len())

	_, err := LoadFile(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, ErrUnavailable)

	missing := Load(context.Background(), filepath.Join(dir, "missing.csv"))
	assert.Equal(t, 0, missing.Len())

	assert.Equal(t, 0, Load(context.Background(), "").Len())
}
