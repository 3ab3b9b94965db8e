// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package recommend

import (
	"math"
	"sort"
)

// BudgetBand is a half-open cost range [Min, Max). A zero Max is unbounded.
type BudgetBand struct {
	Label string  `json:"label" koanf:"label"`
	Min   float64 `json:"min" koanf:"min"`
	Max   float64 `json:"max,omitempty" koanf:"max"`
}

// Contains reports whether cost falls in the band.
func (b BudgetBand) Contains(cost float64) bool {
	upper := b.Max
	if upper == 0 {
		upper = math.Inf(1)
	}
	return cost >= b.Min && cost < upper
}

// DefaultBudgetBands returns the low, medium, high and luxury bands.
func DefaultBudgetBands() []BudgetBand {
	return []BudgetBand{
		{Label: "low", Min: 0, Max: 1000},
		{Label: "medium", Min: 1000, Max: 3000},
		{Label: "high", Min: 3000, Max: 5000},
		{Label: "luxury", Min: 5000},
	}
}

// Segment groups ranked candidates that share a budget band.
type Segment struct {
	Band  BudgetBand        `json:"band"`
	Items []ScoredCandidate `json:"items"`
}

// SegmentByBudget splits items by cost per tourist. Each segment is ordered
// by similarity, best first, and empty segments are omitted. A candidate is
// placed in the first band that contains it; candidates outside every band
// are dropped.
func SegmentByBudget(items []ScoredCandidate, bands []BudgetBand) []Segment {
	if len(bands) == 0 {
		bands = DefaultBudgetBands()
	}

	grouped := make([][]ScoredCandidate, len(bands))
	for i := range items {
		for b := range bands {
			if bands[b].Contains(items[i].CostPerTourist) {
				grouped[b] = append(grouped[b], items[i])
				break
			}
		}
	}

	segments := make([]Segment, 0, len(bands))
	for b, group := range grouped {
		if len(group) == 0 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].SimilarityScore != group[j].SimilarityScore {
				return group[i].SimilarityScore > group[j].SimilarityScore
			}
			return group[i].Country < group[j].Country
		})
		segments = append(segments, Segment{Band: bands[b], Items: group})
	}
	return segments
}
