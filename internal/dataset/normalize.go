// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package dataset

import (
	"sort"
)

// Normalize reduces raw records to one CountryProfile per non-aggregate
// country, sorted by country name. It never fails: an empty or fully
// filtered input yields an empty, non-nil table.
func Normalize(records []CountryYearRecord) []CountryProfile {
	rows := excludeAggregations(records)
	if len(rows) == 0 {
		return []CountryProfile{}
	}

	imputeEconomicIndicators(rows)

	histories := groupByCountry(rows)
	selected := selectRepresentatives(histories)
	if len(selected) == 0 {
		return []CountryProfile{}
	}

	costs := costsPerTourist(selected)

	profiles := make([]CountryProfile, 0, len(selected))
	for i := range selected {
		rec := &selected[i]
		profiles = append(profiles, CountryProfile{
			Country:           rec.Country,
			CountryCode:       rec.CountryCode,
			Region:            rec.Region,
			Year:              rec.Year,
			TourismReceipts:   valueOr(rec.TourismReceipts, 0),
			TourismArrivals:   valueOr(rec.TourismArrivals, 0),
			TourismDepartures: copyFloat(rec.TourismDepartures),
			GDP:               copyFloat(rec.GDP),
			Inflation:         copyFloat(rec.Inflation),
			Unemployment:      copyFloat(rec.Unemployment),
			CostPerTourist:    costs[i],
			AnnualGrowth:      growthFor(rec, histories[rec.Country]),
		})
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].Country < profiles[j].Country
	})
	return profiles
}

// NormalizeProfiles re-applies normalization to an already normalized table.
// The output equals the input for any table produced by Normalize.
func NormalizeProfiles(profiles []CountryProfile) []CountryProfile {
	records := make([]CountryYearRecord, len(profiles))
	for i := range profiles {
		records[i] = profiles[i].Record()
	}
	return Normalize(records)
}

// excludeAggregations copies the records whose country is not an aggregate.
func excludeAggregations(records []CountryYearRecord) []CountryYearRecord {
	rows := make([]CountryYearRecord, 0, len(records))
	for i := range records {
		if records[i].Country == "" || IsAggregation(records[i].Country) {
			continue
		}
		rows = append(rows, records[i])
	}
	return rows
}

// imputeEconomicIndicators fills inflation and unemployment gaps with the
// median over all remaining rows. Columns that are entirely null stay null.
func imputeEconomicIndicators(rows []CountryYearRecord) {
	inflation := make([]*float64, len(rows))
	unemployment := make([]*float64, len(rows))
	for i := range rows {
		inflation[i] = rows[i].Inflation
		unemployment[i] = rows[i].Unemployment
	}

	if median, ok := medianOf(inflation); ok {
		for i := range rows {
			if rows[i].Inflation == nil {
				rows[i].Inflation = Float64(median)
			}
		}
	}
	if median, ok := medianOf(unemployment); ok {
		for i := range rows {
			if rows[i].Unemployment == nil {
				rows[i].Unemployment = Float64(median)
			}
		}
	}
}

// groupByCountry returns each country's records ordered by year.
func groupByCountry(rows []CountryYearRecord) map[string][]CountryYearRecord {
	histories := make(map[string][]CountryYearRecord)
	for i := range rows {
		histories[rows[i].Country] = append(histories[rows[i].Country], rows[i])
	}
	for country := range histories {
		history := histories[country]
		sort.SliceStable(history, func(i, j int) bool {
			return history[i].Year < history[j].Year
		})
	}
	return histories
}

// selectRepresentatives picks the latest year with receipts or arrivals for
// every country. When no row in the table has either, the latest year is
// used regardless. Countries whose pick has no tourism signal are dropped.
func selectRepresentatives(histories map[string][]CountryYearRecord) []CountryYearRecord {
	anySignal := false
	for _, history := range histories {
		for i := range history {
			if history[i].hasTourismSignal() {
				anySignal = true
				break
			}
		}
		if anySignal {
			break
		}
	}

	countries := make([]string, 0, len(histories))
	for country := range histories {
		countries = append(countries, country)
	}
	sort.Strings(countries)

	selected := make([]CountryYearRecord, 0, len(countries))
	for _, country := range countries {
		history := histories[country]
		for i := len(history) - 1; i >= 0; i-- {
			if anySignal && !history[i].hasTourismSignal() {
				continue
			}
			if history[i].hasTourismSignal() {
				selected = append(selected, history[i])
			}
			break
		}
	}
	return selected
}

// costsPerTourist derives receipts per arrival for the selected rows, filling
// gaps with the cross-country median of the computed values.
func costsPerTourist(selected []CountryYearRecord) []float64 {
	computed := make([]*float64, len(selected))
	for i := range selected {
		rec := &selected[i]
		if rec.CostPerTourist != nil && validCost(*rec.CostPerTourist) {
			computed[i] = Float64(*rec.CostPerTourist)
			continue
		}
		if rec.TourismReceipts == nil || rec.TourismArrivals == nil {
			continue
		}
		if cost := *rec.TourismReceipts / *rec.TourismArrivals; validCost(cost) {
			computed[i] = Float64(cost)
		}
	}

	median, ok := medianOf(computed)
	if !ok {
		median = 0
	}

	costs := make([]float64, len(selected))
	for i := range computed {
		costs[i] = valueOr(computed[i], median)
	}
	return costs
}

func validCost(v float64) bool {
	return IsFinite(v) && v >= 0
}

// growthFor returns the percentage change of arrivals against the previous
// calendar year. A missing or zero prior year yields 0.
func growthFor(rec *CountryYearRecord, history []CountryYearRecord) float64 {
	if rec.AnnualGrowth != nil && IsFinite(*rec.AnnualGrowth) {
		return *rec.AnnualGrowth
	}
	if rec.TourismArrivals == nil {
		return 0
	}

	var prev *float64
	for i := range history {
		if history[i].Year == rec.Year-1 {
			prev = history[i].TourismArrivals
		}
	}
	if prev == nil || *prev == 0 {
		return 0
	}

	growth := (*rec.TourismArrivals - *prev) / *prev * 100
	if !IsFinite(growth) {
		return 0
	}
	return growth
}
