// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package dataset

// Budget slider fallbacks used when the table carries no cost data.
const (
	DefaultBudgetMin    = 100
	DefaultBudgetMax    = 10000
	DefaultBudgetMedian = 2000
)

// BudgetRange is the suggested budget slider range in USD per tourist.
type BudgetRange struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// Summary describes a normalized table.
type Summary struct {
	Countries  int         `json:"countries"`
	Regions    int         `json:"regions"`
	LatestYear int         `json:"latest_year"`
	Budget     BudgetRange `json:"budget"`
}

// Summarize computes table statistics. The budget range spans the 5th to
// 95th percentile of cost per tourist.
func Summarize(profiles []CountryProfile) Summary {
	costs := make([]float64, len(profiles))
	regions := make(map[string]struct{})
	latest := 0
	for i := range profiles {
		costs[i] = profiles[i].CostPerTourist
		if profiles[i].Region != "" {
			regions[profiles[i].Region] = struct{}{}
		}
		if profiles[i].Year > latest {
			latest = profiles[i].Year
		}
	}

	budget := BudgetRange{Min: DefaultBudgetMin, Max: DefaultBudgetMax, Median: DefaultBudgetMedian}
	if v, ok := Quantile(costs, 0.05); ok {
		budget.Min = v
	}
	if v, ok := Quantile(costs, 0.95); ok {
		budget.Max = v
	}
	if v, ok := Median(costs); ok {
		budget.Median = v
	}

	return Summary{
		Countries:  len(profiles),
		Regions:    len(regions),
		LatestYear: latest,
		Budget:     budget,
	}
}
