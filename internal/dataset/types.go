// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package dataset

import (
	"context"
	"errors"
)

// ErrDataUnavailable is returned when the source table is missing or unreadable.
// LoadProfiles absorbs it into an empty table.
var ErrDataUnavailable = errors.New("dataset unavailable")

// Source yields the raw per-country, per-year records.
type Source interface {
	Records(ctx context.Context) ([]CountryYearRecord, error)
	Name() string
}

// CountryYearRecord is one row of the raw tourism/economy table.
// Numeric fields are nil when the source cell is empty or "..".
type CountryYearRecord struct {
	Country           string   `json:"country"`
	CountryCode       string   `json:"country_code"`
	Region            string   `json:"region,omitempty"`
	Year              int      `json:"year"`
	TourismReceipts   *float64 `json:"tourism_receipts"`
	TourismArrivals   *float64 `json:"tourism_arrivals"`
	TourismDepartures *float64 `json:"tourism_departures"`
	GDP               *float64 `json:"gdp"`
	Inflation         *float64 `json:"inflation"`
	Unemployment      *float64 `json:"unemployment"`

	// Derived columns are only present when an already normalized table
	// is read back. When set, Normalize keeps them instead of recomputing.
	CostPerTourist *float64 `json:"cost_per_tourist,omitempty"`
	AnnualGrowth   *float64 `json:"annual_growth,omitempty"`
}

// hasTourismSignal reports whether the record carries receipts or arrivals.
func (r *CountryYearRecord) hasTourismSignal() bool {
	return r.TourismReceipts != nil || r.TourismArrivals != nil
}

// CountryProfile is the single representative record for one country.
type CountryProfile struct {
	Country           string   `json:"country"`
	CountryCode       string   `json:"country_code"`
	Region            string   `json:"region,omitempty"`
	Year              int      `json:"year"`
	TourismReceipts   float64  `json:"tourism_receipts"`
	TourismArrivals   float64  `json:"tourism_arrivals"`
	TourismDepartures *float64 `json:"tourism_departures"`
	GDP               *float64 `json:"gdp"`
	Inflation         *float64 `json:"inflation"`
	Unemployment      *float64 `json:"unemployment"`
	CostPerTourist    float64  `json:"cost_per_tourist"`
	AnnualGrowth      float64  `json:"annual_growth"`
}

// Record converts the profile back into a raw record carrying its derived columns.
func (p *CountryProfile) Record() CountryYearRecord {
	return CountryYearRecord{
		Country:           p.Country,
		CountryCode:       p.CountryCode,
		Region:            p.Region,
		Year:              p.Year,
		TourismReceipts:   Float64(p.TourismReceipts),
		TourismArrivals:   Float64(p.TourismArrivals),
		TourismDepartures: copyFloat(p.TourismDepartures),
		GDP:               copyFloat(p.GDP),
		Inflation:         copyFloat(p.Inflation),
		Unemployment:      copyFloat(p.Unemployment),
		CostPerTourist:    Float64(p.CostPerTourist),
		AnnualGrowth:      Float64(p.AnnualGrowth),
	}
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 {
	return &v
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return Float64(*v)
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
