// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

// Package recommend ranks candidate countries for a traveller.
//
// # Pipeline
//
// Engine.Recommend runs a fixed sequence over the normalized country table:
//
//  1. Hard filters: cost per tourist within budget, optional exact region
//     filter. An empty result ends the request with an empty list.
//  2. Tourism score from the popularity preference (hidden gems, emerging,
//     popular), normalized against the filtered set.
//  3. Economic score from the economic preference (flexible, stable,
//     growing).
//  4. General score, 0.6 tourism + 0.4 economy by default.
//  5. Similarity against the UserProfile when one is present, blended into
//     the final score 0.7 similarity + 0.3 general. A scoring failure
//     degrades the whole batch to the general score and is reported as a
//     warning.
//  6. Stable sort and truncation to TopN.
//
// # Determinism
//
// The engine holds no per-user state. Identical inputs yield identical
// ordered items; ties are broken by country name. The optional response
// cache is keyed by the full request and the dataset checksum.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	resp, err := engine.Recommend(ctx, catalog.Profiles(), recommend.Request{
//	    Budget:     2500,
//	    Popularity: recommend.PopularityHiddenGems,
//	    Economic:   recommend.EconomicStable,
//	    Profile:    profile.Extract(catalog.Profiles(), liked, disliked),
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. The country table passed to
// Recommend is only read.
package recommend
