// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package dataset

import (
	"math"
	"sort"
)

// Quantile returns the q-th quantile of values using linear interpolation
// between closest ranks. NaN and infinite values are ignored. The second
// return value is false when no finite value is present.
func Quantile(values []float64, q float64) (float64, bool) {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return 0, false
	}
	sort.Float64s(finite)

	if q <= 0 {
		return finite[0], true
	}
	if q >= 1 {
		return finite[len(finite)-1], true
	}

	pos := q * float64(len(finite)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return finite[lower], true
	}
	frac := pos - float64(lower)
	return finite[lower] + (finite[upper]-finite[lower])*frac, true
}

// Median returns the 50th percentile of values.
func Median(values []float64) (float64, bool) {
	return Quantile(values, 0.5)
}

// medianOf returns the median of the non-nil values.
func medianOf(values []*float64) (float64, bool) {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if v != nil {
			present = append(present, *v)
		}
	}
	return Median(present)
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
