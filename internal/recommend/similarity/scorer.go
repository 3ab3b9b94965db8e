// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package similarity

import (
	"context"
	"fmt"

	"github.com/tomtom215/travelrec/internal/dataset"
	"github.com/tomtom215/travelrec/internal/profile"
)

// Scorer computes similarity for a whole candidate batch. Implementations
// either score every candidate or return an error; there is no partial result.
type Scorer interface {
	// Name returns the scorer identifier used in logs and metrics.
	Name() string

	// ScoreAll returns one Components per candidate, in candidate order.
	ScoreAll(ctx context.Context, u *profile.UserProfile, candidates []dataset.CountryProfile) ([]Components, error)
}

// HybridScorer applies Hybrid row-wise.
type HybridScorer struct {
	Weights     Weights
	BudgetDecay float64
}

// NewHybridScorer creates a scorer with the given weights.
func NewHybridScorer(w Weights, budgetDecay float64) *HybridScorer {
	return &HybridScorer{Weights: w, BudgetDecay: budgetDecay}
}

// Name implements Scorer.
func (s *HybridScorer) Name() string {
	return "hybrid"
}

// ScoreAll implements Scorer. A panic while scoring, or a non-finite
// component, fails the whole batch with ErrScoringFailed.
func (s *HybridScorer) ScoreAll(ctx context.Context, u *profile.UserProfile, candidates []dataset.CountryProfile) (scores []Components, err error) {
	defer func() {
		if r := recover(); r != nil {
			scores = nil
			err = fmt.Errorf("%w: panic: %v", ErrScoringFailed, r)
		}
	}()

	if u == nil {
		return nil, fmt.Errorf("%w: nil profile", ErrScoringFailed)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScoringFailed, err)
	}
	if err := s.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScoringFailed, err)
	}

	scores = make([]Components, len(candidates))
	for i := range candidates {
		comp := Hybrid(u, &candidates[i], s.Weights, s.BudgetDecay)
		if !finiteComponents(comp) {
			return nil, fmt.Errorf("%w: non-finite score for %q", ErrScoringFailed, candidates[i].Country)
		}
		scores[i] = comp
	}
	return scores, nil
}

func finiteComponents(c Components) bool {
	return dataset.IsFinite(c.Cosine) &&
		dataset.IsFinite(c.Budget) &&
		dataset.IsFinite(c.Categorical) &&
		dataset.IsFinite(c.Hybrid)
}
