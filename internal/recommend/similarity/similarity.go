// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

// Package similarity scores candidate countries against a UserProfile.
//
// Three independent components, each in [0, 1]:
//
//   - Cosine: angle between the profile's (density, budget, revenue) vector
//     and the candidate's (arrivals, cost per tourist, receipts)
//   - Budget: exp(-|profile budget - candidate cost| / decay), a single
//     dimension distance that isolates price compatibility
//   - Categorical: region preference and avoidance overlap
//
// Hybrid blends them with Weights, 0.5/0.3/0.2 by default, and clamps the
// result to [0, 1].
package similarity

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomtom215/travelrec/internal/dataset"
	"github.com/tomtom215/travelrec/internal/profile"
)

// DefaultBudgetDecay is the USD gap at which budget similarity falls to 1/e.
const DefaultBudgetDecay = 1000.0

// NeutralCategorical is returned when the profile has no region criteria.
const NeutralCategorical = 0.5

// Weights controls the hybrid blend.
type Weights struct {
	Cosine      float64 `json:"cosine" koanf:"cosine"`
	Budget      float64 `json:"budget" koanf:"budget"`
	Categorical float64 `json:"categorical" koanf:"categorical"`
}

// DefaultWeights returns the 0.5/0.3/0.2 blend.
func DefaultWeights() Weights {
	return Weights{Cosine: 0.5, Budget: 0.3, Categorical: 0.2}
}

// Validate checks that every weight is a finite non-negative number.
func (w Weights) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"cosine", w.Cosine},
		{"budget", w.Budget},
		{"categorical", w.Categorical},
	}
	for _, f := range fields {
		if !dataset.IsFinite(f.value) || f.value < 0 {
			return fmt.Errorf("similarity.%s weight must be non-negative, got %f", f.name, f.value)
		}
	}
	return nil
}

// Components holds the individual scores behind a hybrid similarity.
type Components struct {
	Cosine      float64 `json:"cosine"`
	Budget      float64 `json:"budget"`
	Categorical float64 `json:"categorical"`
	Hybrid      float64 `json:"hybrid"`
}

// Cosine returns 1 - cosine distance between u and c, or 0 when either
// vector has zero magnitude. Opposed vectors score 0, not negative.
func Cosine(u, c profile.FeatureVector) float64 {
	a, b := u.Array(), c.Array()

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return clamp01(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// Budget returns exp(-|profileBudget - candidateCost| / decay).
// A non-positive decay falls back to DefaultBudgetDecay.
func Budget(profileBudget, candidateCost, decay float64) float64 {
	if decay <= 0 {
		decay = DefaultBudgetDecay
	}
	return math.Exp(-math.Abs(profileBudget-candidateCost) / decay)
}

// Categorical scores region overlap. Each criterion carries half the weight
// and is enabled only when its region set is non-empty:
//
//   - preferred regions: 0.5 for a match, 0.25 for a region that is not
//     explicitly avoided
//   - avoided regions: 0.5 when the region is not avoided
//
// The score is normalized by the enabled weight; with no criteria it is
// NeutralCategorical.
func Categorical(u *profile.UserProfile, region string) float64 {
	var score, total float64

	if u.HasPreferredRegions() {
		total += 0.5
		switch {
		case contains(u.RegionsIdeal, region):
			score += 0.5
		case !contains(u.RegionsAvoid, region):
			score += 0.25
		}
	}

	if u.HasAvoidedRegions() {
		total += 0.5
		if !contains(u.RegionsAvoid, region) {
			score += 0.5
		}
	}

	if total == 0 {
		return NeutralCategorical
	}
	return score / total
}

// Hybrid blends the three components for one candidate.
func Hybrid(u *profile.UserProfile, c *dataset.CountryProfile, w Weights, decay float64) Components {
	comp := Components{
		Cosine:      Cosine(u.Vector, profile.CandidateVector(c)),
		Budget:      Budget(u.Vector.Budget, c.CostPerTourist, decay),
		Categorical: Categorical(u, c.Region),
	}
	comp.Hybrid = clamp01(w.Cosine*comp.Cosine + w.Budget*comp.Budget + w.Categorical*comp.Categorical)
	return comp
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// ErrScoringFailed wraps any failure raised while scoring a batch.
var ErrScoringFailed = errors.New("similarity scoring failed")
