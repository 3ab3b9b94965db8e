// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

// Package enrichment holds the per-city hotel counts produced by the offline
// mapping batch job. The table is read-only once built and is safe to share
// between goroutines.
package enrichment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/travelrec/internal/dataset"
)

// City is one row of the enrichment table.
type City struct {
	Country    string `json:"country"`
	City       string `json:"city"`
	HotelCount int    `json:"hotel_count"`
}

// Ambiance classifies a city by hotel density within its country.
type Ambiance string

const (
	AmbianceQuiet    Ambiance = "quiet retreat"
	AmbianceBalanced Ambiance = "balanced"
	AmbianceVibrant  Ambiance = "vibrant hub"
)

// ParseAmbiance accepts the labels above plus the short forms "quiet" and
// "vibrant".
func ParseAmbiance(s string) (Ambiance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quiet", "quiet retreat", "quiet_retreat":
		return AmbianceQuiet, nil
	case "balanced":
		return AmbianceBalanced, nil
	case "vibrant", "vibrant hub", "vibrant_hub":
		return AmbianceVibrant, nil
	default:
		return "", fmt.Errorf("unknown ambiance %q", s)
	}
}

// Order sorts cities by hotel count.
type Order string

const (
	OrderDesc Order = "desc"
	OrderAsc  Order = "asc"
)

// CountryAggregate summarizes one country's cities.
type CountryAggregate struct {
	Country     string `json:"country"`
	TotalHotels int    `json:"total_hotels"`
	Cities      int    `json:"cities"`
}

// Thresholds are the 33rd and 66th percentiles of a country's hotel counts.
type Thresholds struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Classify returns the ambiance of a city with the given hotel count.
func (t Thresholds) Classify(hotels int) Ambiance {
	h := float64(hotels)
	switch {
	case h <= t.Low && h < t.High:
		return AmbianceQuiet
	case h >= t.High && h > t.Low:
		return AmbianceVibrant
	default:
		return AmbianceBalanced
	}
}

// CityAmbiance pairs a city with its ambiance class.
type CityAmbiance struct {
	City
	Ambiance Ambiance `json:"ambiance"`
}

// Table indexes cities by country.
type Table struct {
	byCountry map[string][]City
	countries []string
	cities    int
}

// NewTable builds a table from rows. Rows with an empty country or city are
// skipped; the input slice is not retained.
func NewTable(rows []City) *Table {
	t := &Table{byCountry: make(map[string][]City)}
	for _, r := range rows {
		r.Country = strings.TrimSpace(r.Country)
		r.City = strings.TrimSpace(r.City)
		if r.Country == "" || r.City == "" {
			continue
		}
		t.byCountry[r.Country] = append(t.byCountry[r.Country], r)
		t.cities++
	}

	t.countries = make([]string, 0, len(t.byCountry))
	for c := range t.byCountry {
		t.countries = append(t.countries, c)
	}
	sort.Strings(t.countries)
	return t
}

// Empty returns a table with no rows.
func Empty() *Table {
	return NewTable(nil)
}

// Len returns the number of city rows.
func (t *Table) Len() int {
	return t.cities
}

// Countries returns the countries with at least one city, sorted.
func (t *Table) Countries() []string {
	return append([]string(nil), t.countries...)
}

// Aggregate returns the hotel total and distinct city count for country.
func (t *Table) Aggregate(country string) (CountryAggregate, bool) {
	rows, ok := t.byCountry[country]
	if !ok {
		return CountryAggregate{}, false
	}

	agg := CountryAggregate{Country: country}
	distinct := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		agg.TotalHotels += r.HotelCount
		distinct[r.City] = struct{}{}
	}
	agg.Cities = len(distinct)
	return agg, true
}

// Aggregates returns the aggregate of every country, sorted by country.
func (t *Table) Aggregates() []CountryAggregate {
	out := make([]CountryAggregate, 0, len(t.countries))
	for _, c := range t.countries {
		agg, _ := t.Aggregate(c)
		out = append(out, agg)
	}
	return out
}

// Cities returns a country's cities ordered by hotel count, ties by name.
func (t *Table) Cities(country string, order Order) []City {
	rows := append([]City(nil), t.byCountry[country]...)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].HotelCount != rows[j].HotelCount {
			if order == OrderAsc {
				return rows[i].HotelCount < rows[j].HotelCount
			}
			return rows[i].HotelCount > rows[j].HotelCount
		}
		return rows[i].City < rows[j].City
	})
	return rows
}

// Thresholds returns the tercile cut points for country.
func (t *Table) Thresholds(country string) (Thresholds, bool) {
	rows, ok := t.byCountry[country]
	if !ok {
		return Thresholds{}, false
	}

	counts := make([]float64, len(rows))
	for i, r := range rows {
		counts[i] = float64(r.HotelCount)
	}
	low, _ := dataset.Quantile(counts, 0.33)
	high, _ := dataset.Quantile(counts, 0.66)
	return Thresholds{Low: low, High: high}, true
}

// Ambiance classifies every city of country, ordered by hotel count descending.
func (t *Table) Ambiance(country string) []CityAmbiance {
	th, ok := t.Thresholds(country)
	if !ok {
		return []CityAmbiance{}
	}

	cities := t.Cities(country, OrderDesc)
	out := make([]CityAmbiance, len(cities))
	for i, c := range cities {
		out[i] = CityAmbiance{City: c, Ambiance: th.Classify(c.HotelCount)}
	}
	return out
}

// CitiesByAmbiance returns the cities of country in the given class.
func (t *Table) CitiesByAmbiance(country string, class Ambiance) []CityAmbiance {
	out := []CityAmbiance{}
	for _, c := range t.Ambiance(country) {
		if c.Ambiance == class {
			out = append(out, c)
		}
	}
	return out
}
