// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

// Package profile derives a traveller's implicit preference vector from the
// countries they liked and disliked.
//
// A profile is ephemeral: it is built per request from the shared country
// table and the caller's selection, and is never stored.
package profile

import (
	"sort"

	"github.com/tomtom215/travelrec/internal/dataset"
)

// Tourism type labels used when no density classification is available.
const (
	TypeBalanced = "balanced"
	TypeUnknown  = "unknown"
	TypeNone     = "none"
)

// FeatureVector is the (density, budget, revenue) triple compared against a
// candidate's (arrivals, cost per tourist, receipts). The order is fixed.
type FeatureVector struct {
	Density float64 `json:"density"`
	Budget  float64 `json:"budget"`
	Revenue float64 `json:"revenue"`
}

// Array returns the vector components in their canonical order.
func (v FeatureVector) Array() [3]float64 {
	return [3]float64{v.Density, v.Budget, v.Revenue}
}

// CandidateVector returns a country's features in FeatureVector order.
func CandidateVector(p *dataset.CountryProfile) FeatureVector {
	return FeatureVector{
		Density: p.TourismArrivals,
		Budget:  p.CostPerTourist,
		Revenue: p.TourismReceipts,
	}
}

// UserProfile summarizes liked and disliked countries.
//
// The avoid fields are nil when no disliked country was given or none of
// them is in the table. Nil means "no avoidance data", never zero.
type UserProfile struct {
	DensityIdealMean float64  `json:"density_ideal_mean"`
	BudgetIdealMean  float64  `json:"budget_ideal_mean"`
	RevenueIdealMean float64  `json:"revenue_ideal_mean"`
	TourismTypeIdeal string   `json:"tourism_type_ideal"`
	RegionsIdeal     []string `json:"regions_ideal"`

	DensityAvoidMean *float64 `json:"density_avoid_mean"`
	BudgetAvoidMean  *float64 `json:"budget_avoid_mean"`
	TourismTypeAvoid *string  `json:"tourism_type_avoid"`
	RegionsAvoid     []string `json:"regions_avoid"`

	Vector FeatureVector `json:"vector"`

	// Liked and Disliked hold the requested names found in the table.
	Liked    []string `json:"liked"`
	Disliked []string `json:"disliked"`
}

// HasPreferredRegions reports whether any liked country carries a region.
func (u *UserProfile) HasPreferredRegions() bool {
	return len(u.RegionsIdeal) > 0
}

// HasAvoidedRegions reports whether any disliked country carries a region.
func (u *UserProfile) HasAvoidedRegions() bool {
	return len(u.RegionsAvoid) > 0
}

// Extract builds a UserProfile from the country table and the caller's
// selection. Aggregate entities are excluded again here so that a table that
// skipped normalization still cannot leak them into the profile.
//
// With an empty liked list the ideal statistics fall back to population
// medians and the tourism type to "balanced".
func Extract(profiles []dataset.CountryProfile, liked, disliked []string) *UserProfile {
	population := make([]dataset.CountryProfile, 0, len(profiles))
	for i := range profiles {
		if !dataset.IsAggregation(profiles[i].Country) {
			population = append(population, profiles[i])
		}
	}

	u := &UserProfile{
		RegionsIdeal: []string{},
		RegionsAvoid: []string{},
		Liked:        []string{},
		Disliked:     []string{},
	}

	if len(liked) > 0 {
		matched := selectCountries(population, liked)
		u.Liked = names(matched)
		density, budget, revenue := means(matched)
		u.DensityIdealMean, u.BudgetIdealMean, u.RevenueIdealMean = density, budget, revenue
		u.TourismTypeIdeal = tourismTypeMode(matched, TypeUnknown)
		u.RegionsIdeal = regions(matched)
	} else {
		u.DensityIdealMean, u.BudgetIdealMean, u.RevenueIdealMean = medians(population)
		u.TourismTypeIdeal = TypeBalanced
	}

	if len(disliked) > 0 {
		matched := selectCountries(population, disliked)
		u.Disliked = names(matched)
		if len(matched) > 0 {
			density, budget, _ := means(matched)
			u.DensityAvoidMean = &density
			u.BudgetAvoidMean = &budget
		}
		avoidType := tourismTypeMode(matched, TypeNone)
		u.TourismTypeAvoid = &avoidType
		u.RegionsAvoid = regions(matched)
	}

	u.Vector = FeatureVector{
		Density: u.DensityIdealMean,
		Budget:  u.BudgetIdealMean,
		Revenue: u.RevenueIdealMean,
	}
	return u
}

// selectCountries returns the rows whose country is in want, in table order.
func selectCountries(population []dataset.CountryProfile, want []string) []dataset.CountryProfile {
	set := make(map[string]struct{}, len(want))
	for _, name := range want {
		set[name] = struct{}{}
	}

	matched := make([]dataset.CountryProfile, 0, len(want))
	for i := range population {
		if _, ok := set[population[i].Country]; ok {
			matched = append(matched, population[i])
		}
	}
	return matched
}

// means averages arrivals, cost and receipts. An empty set yields zeros,
// which the similarity engine treats as a degenerate vector.
func means(rows []dataset.CountryProfile) (density, budget, revenue float64) {
	if len(rows) == 0 {
		return 0, 0, 0
	}
	for i := range rows {
		density += rows[i].TourismArrivals
		budget += rows[i].CostPerTourist
		revenue += rows[i].TourismReceipts
	}
	n := float64(len(rows))
	return density / n, budget / n, revenue / n
}

func medians(rows []dataset.CountryProfile) (density, budget, revenue float64) {
	arrivals := make([]float64, len(rows))
	costs := make([]float64, len(rows))
	receipts := make([]float64, len(rows))
	for i := range rows {
		arrivals[i] = rows[i].TourismArrivals
		costs[i] = rows[i].CostPerTourist
		receipts[i] = rows[i].TourismReceipts
	}
	density, _ = dataset.Median(arrivals)
	budget, _ = dataset.Median(costs)
	revenue, _ = dataset.Median(receipts)
	return density, budget, revenue
}

func names(rows []dataset.CountryProfile) []string {
	out := make([]string, len(rows))
	for i := range rows {
		out[i] = rows[i].Country
	}
	sort.Strings(out)
	return out
}

// regions returns the distinct non-empty regions of rows, sorted.
func regions(rows []dataset.CountryProfile) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for i := range rows {
		r := rows[i].Region
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// tourismTypeMode returns the most frequent density category of rows. Ties
// resolve to the lexicographically smallest label.
func tourismTypeMode(rows []dataset.CountryProfile, empty string) string {
	if len(rows) == 0 {
		return empty
	}

	counts := make(map[string]int)
	for i := range rows {
		counts[string(DensityCategoryOf(rows[i].TourismArrivals))]++
	}

	best, bestCount := "", 0
	for label, count := range counts {
		if count > bestCount || (count == bestCount && label < best) {
			best, bestCount = label, count
		}
	}
	return best
}
