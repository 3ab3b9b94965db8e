// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package recommend

import (
	"math"

	"github.com/tomtom215/travelrec/internal/dataset"
)

// filterCandidates applies the budget ceiling and the region filter. The
// filter names a single country; the Region column is not consulted.
// Aggregate names are dropped as well so an unnormalized table cannot rank them.
func filterCandidates(profiles []dataset.CountryProfile, budget float64, region string) []dataset.CountryProfile {
	out := make([]dataset.CountryProfile, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		if dataset.IsAggregation(p.Country) {
			continue
		}
		if p.CostPerTourist > budget {
			continue
		}
		if region != "" && p.Country != region {
			continue
		}
		out = append(out, *p)
	}
	return out
}

// tourismScores computes score_tourism for every candidate.
func tourismScores(candidates []dataset.CountryProfile, pref PopularityPreference) []float64 {
	scores := make([]float64, len(candidates))

	arrivals := make([]float64, len(candidates))
	for i := range candidates {
		arrivals[i] = candidates[i].TourismArrivals
	}
	maxArrivals := maxOf(arrivals)

	for i := range candidates {
		c := &candidates[i]
		switch pref {
		case PopularityHiddenGems:
			scores[i] = ((1 - ratio(c.TourismArrivals, maxArrivals)) + c.AnnualGrowth/100) / 2
		case PopularityEmerging:
			scores[i] = math.Max(c.AnnualGrowth, 0) / 100
		case PopularityPopular:
			scores[i] = ratio(c.TourismArrivals, maxArrivals)
		}
	}
	return scores
}

// economyScores computes score_economy for every candidate. For the stable
// preference, missing inflation and unemployment take the median of the
// candidates that report them.
func economyScores(candidates []dataset.CountryProfile, pref EconomicPreference) []float64 {
	scores := make([]float64, len(candidates))

	switch pref {
	case EconomicFlexible:
		for i := range scores {
			scores[i] = 0.5
		}
	case EconomicGrowing:
		for i := range candidates {
			scores[i] = candidates[i].AnnualGrowth / 100
		}
	case EconomicStable:
		inflation := imputed(candidates, func(c *dataset.CountryProfile) *float64 { return c.Inflation })
		unemployment := imputed(candidates, func(c *dataset.CountryProfile) *float64 { return c.Unemployment })
		maxInflation, maxUnemployment := maxOf(inflation), maxOf(unemployment)
		for i := range candidates {
			scores[i] = ((1 - ratio(inflation[i], maxInflation)) + (1 - ratio(unemployment[i], maxUnemployment))) / 2
		}
	}
	return scores
}

// imputed extracts a nullable column and fills nulls with the column median,
// or 0 when the column is entirely null.
func imputed(candidates []dataset.CountryProfile, column func(*dataset.CountryProfile) *float64) []float64 {
	present := make([]float64, 0, len(candidates))
	for i := range candidates {
		if v := column(&candidates[i]); v != nil {
			present = append(present, *v)
		}
	}
	median, ok := dataset.Median(present)
	if !ok {
		median = 0
	}

	values := make([]float64, len(candidates))
	for i := range candidates {
		if v := column(&candidates[i]); v != nil {
			values[i] = *v
		} else {
			values[i] = median
		}
	}
	return values
}

// ratio returns v/maxValue, or 0 when maxValue is zero.
func ratio(v, maxValue float64) float64 {
	if maxValue == 0 {
		return 0
	}
	return v / maxValue
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
